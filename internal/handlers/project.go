package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lakshaylalia/Taskflow-Backend/internal/models"
	"github.com/lakshaylalia/Taskflow-Backend/internal/types"
	"github.com/lakshaylalia/Taskflow-Backend/internal/utils"
)

type ProjectHandler struct {
	db *gorm.DB
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{db: db}
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=50"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     uint   `json:"ownerId"`
}

func projectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
	}
}

// CreateProject creates a project and its owner membership row as one unit.
func (h *ProjectHandler) CreateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusUnauthorized, "User not authenticated"))
		return
	}

	var req CreateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "Project name must be 3 to 50 characters"))
		return
	}

	project := models.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		OwnerID:     userID,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		return tx.Create(&models.ProjectMember{
			ProjectID: project.ID,
			UserID:    userID,
			Role:      types.RoleOwner,
		}).Error
	})

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.Respond(ctx, http.StatusCreated, projectResponse(project), "Project created successfully")
}

// ListProjects returns the projects the current user is a member of.
func (h *ProjectHandler) ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusUnauthorized, "User not authenticated"))
		return
	}

	projects, err := h.projectsForUser(userID)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.Respond(ctx, http.StatusOK, projects, "Projects fetched successfully")
}

// GetUserProjects returns the projects another user is a member of.
func (h *ProjectHandler) GetUserProjects(ctx *gin.Context) {
	userID, ok := parseID(ctx.Param("userId"))

	if !ok {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "Invalid user id"))
		return
	}

	projects, err := h.projectsForUser(userID)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.Respond(ctx, http.StatusOK, projects, "User projects fetched")
}

func (h *ProjectHandler) GetProject(ctx *gin.Context) {
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

	var project models.Project

	if err := h.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, types.NewApiError(http.StatusNotFound, "Project not found"))
			return
		}
		utils.RespondError(ctx, err)
		return
	}

	utils.Respond(ctx, http.StatusOK, projectResponse(project), "Project fetched successfully")
}

func (h *ProjectHandler) UpdateProject(ctx *gin.Context) {
	projectID, userID, ok := h.requestIDs(ctx)

	if !ok {
		return
	}

	member, err := h.membership(projectID, userID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, types.NewApiError(http.StatusNotFound, "Project member not found"))
			return
		}
		utils.RespondError(ctx, err)
		return
	}

	if !member.Role.CanManageProject() {
		utils.RespondError(ctx, types.NewApiError(http.StatusForbidden, "Only admin or owner can update project"))
		return
	}

	var req UpdateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "Invalid request"))
		return
	}

	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)

	if name == "" && description == "" {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "At least one field is required to update"))
		return
	}

	// Count runes, not bytes, to match the create-path validator.
	if name != "" && (utf8.RuneCountInString(name) < 3 || utf8.RuneCountInString(name) > 50) {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "Project name must be 3 to 50 characters"))
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

	if name != "" {
		project.Name = name
	}

	if description != "" {
		project.Description = description
	}

	if err := h.db.Save(&project).Error; err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.Respond(ctx, http.StatusOK, projectResponse(project), "Project updated successfully")
}

// DeleteProject removes the project and all its membership rows in one
// transaction so neither can survive without the other.
func (h *ProjectHandler) DeleteProject(ctx *gin.Context) {
	projectID, userID, ok := h.requestIDs(ctx)

	if !ok {
		return
	}

	member, err := h.membership(projectID, userID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, types.NewApiError(http.StatusNotFound, "Project member not found"))
			return
		}
		utils.RespondError(ctx, err)
		return
	}

	if !member.Role.CanManageProject() {
		utils.RespondError(ctx, types.NewApiError(http.StatusForbidden, "Only admin or owner can delete project"))
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, projectID).Error
	})

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	utils.Respond(ctx, http.StatusOK, gin.H{}, "Project deleted successfully")
}

func (h *ProjectHandler) projectsForUser(userID uint) ([]ProjectResponse, error) {
	var projects []models.Project

	err := h.db.
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Find(&projects).Error

	if err != nil {
		return nil, err
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, projectResponse(project))
	}

	return response, nil
}

// membership loads the (project, user) membership row; its absence is the
// access gate for reads.
func (h *ProjectHandler) membership(projectID, userID uint) (models.ProjectMember, error) {
	var member models.ProjectMember

	err := h.db.
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error

	return member, err
}

// requestIDs parses the project id param and resolves the current user,
// writing the error response itself when either is missing.
func (h *ProjectHandler) requestIDs(ctx *gin.Context) (projectID, userID uint, ok bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, types.NewApiError(http.StatusUnauthorized, "User not authenticated"))
		return 0, 0, false
	}

	projectID, valid := parseID(ctx.Param("projectId"))

	if !valid {
		utils.RespondError(ctx, types.NewApiError(http.StatusBadRequest, "Invalid project id"))
		return 0, 0, false
	}

	return projectID, userID, true
}

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)

	if err != nil || id == 0 {
		return 0, false
	}

	return uint(id), true
}
