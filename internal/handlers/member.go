package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lakshaylalia/Taskflow-Backend/internal/models"
	"github.com/lakshaylalia/Taskflow-Backend/internal/types"
	"github.com/lakshaylalia/Taskflow-Backend/internal/utils"
)

type AddMemberRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Role   string `json:"role"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type MemberResponse struct {
	ID        uint       `json:"id"`
	ProjectID uint       `json:"projectId"`
	UserID    uint       `json:"userId"`
	Role      types.Role `json:"role"`
	FullName  string     `json:"fullName,omitempty"`
	Email     string     `json:"email,omitempty"`
}

func memberResponse(member models.ProjectMember) MemberResponse {
	email := ""
	if member.User.Email != nil {
		email = *member.User.Email
	}

	return MemberResponse{
		ID:        member.ID,
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Role:      member.Role,
		FullName:  member.User.FullName,
		Email:     email,
	}
}

// ListMembers returns a project's membership list. The caller's own
// membership is the read gate.
func (h *ProjectHandler) ListMembers(ctx *gin.Context) {
	projectID, userID, ok := h.requestIDs(ctx)

	if !ok {
		return
	}

	if _, err := h.membership(projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, types.NewApiError(http.StatusForbidden, "Access denied"))
			return
		}
		utils.RespondError(ctx, err)
		return
	}

	var members []models.ProjectMember

	err := h.db.
		Preload("User").
		Where("project_id = ?", projectID).
		Find(&members).Error

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	response := make([]MemberResponse, 0, len(members))

	for _, member := range members {
		response = append(response, memberResponse(member))
	}

	utils.Respond(ctx, http.StatusOK, response, "Members fetched successfully")
}

// AddMember adds a user to a project with role admin or member. Owner is
// assigned only at project creation and never through this path.
func (h *ProjectHandler) AddMember(ctx *gin.Context) {
	projectID, _, ok := h.requestIDs(ctx)

	if !ok {
		return
	}

	var req AddMemberRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "User id is required"))
		return
	}

	if req.Role == "" {
		req.Role = string(types.RoleMember)
	}

	role, valid := types.ParseRole(req.Role)

	if !valid || !role.Assignable() {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "Invalid role"))
		return
	}

	var project models.Project

	if err := h.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, types.NewApiError(http.StatusNotFound, "Project not found"))
			return
		}
		utils.RespondError(ctx, err)
		return
	}

	var user models.User

	if err := h.db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, types.NewApiError(http.StatusNotFound, "User not found"))
			return
		}
		utils.RespondError(ctx, err)
		return
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      role,
	}

	if err := h.db.Create(&member).Error; err != nil {
		// The composite unique index decides between concurrent adds.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "User already a project member"))
			return
		}
		utils.RespondError(ctx, err)
		return
	}

	member.User = user
	utils.Respond(ctx, http.StatusCreated, memberResponse(member), "Member added successfully")
}

// UpdateMemberRole changes a member's role. Owner rows are immutable
// regardless of who asks.
func (h *ProjectHandler) UpdateMemberRole(ctx *gin.Context) {
	projectID, _, ok := h.requestIDs(ctx)

	if !ok {
		return
	}

	targetID, valid := parseID(ctx.Param("userId"))

	if !valid {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "Invalid user id"))
		return
	}

	var req UpdateMemberRoleRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "Role is required"))
		return
	}

	role, valid := types.ParseRole(req.Role)

	if !valid || !role.Assignable() {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "Invalid role"))
		return
	}

	member, err := h.membership(projectID, targetID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, types.NewApiError(http.StatusNotFound, "Project member not found"))
			return
		}
		utils.RespondError(ctx, err)
		return
	}

	if member.Role == types.RoleOwner {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "Owner role cannot be changed"))
		return
	}

	member.Role = role

	if err := h.db.Save(&member).Error; err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.Respond(ctx, http.StatusOK, memberResponse(member), "Role updated successfully")
}

// RemoveMember deletes a membership row. The owner row can only disappear
// through project deletion.
func (h *ProjectHandler) RemoveMember(ctx *gin.Context) {
	projectID, _, ok := h.requestIDs(ctx)

	if !ok {
		return
	}

	targetID, valid := parseID(ctx.Param("userId"))

	if !valid {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "Invalid user id"))
		return
	}

	member, err := h.membership(projectID, targetID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, types.NewApiError(http.StatusNotFound, "Project member not found"))
			return
		}
		utils.RespondError(ctx, err)
		return
	}

	if member.Role == types.RoleOwner {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "Owner cannot be removed"))
		return
	}

	if err := h.db.Delete(&member).Error; err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.Respond(ctx, http.StatusOK, gin.H{}, "Member removed successfully")
}
