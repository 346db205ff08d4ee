package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func membersPath(projectID uint) string {
	return fmt.Sprintf("/api/v1/projects/%d/members", projectID)
}

func memberPath(projectID, userID uint) string {
	return fmt.Sprintf("/api/v1/projects/%d/members/%d", projectID, userID)
}

func TestAddMember(t *testing.T) {
	r, _ := setupRouter(t)

	_, ownerToken := registerUser(t, r, 1)
	otherID, _ := registerUser(t, r, 2)

	projectID := createProject(t, r, ownerToken, "Apollo")

	w, env := doJSON(t, r, http.MethodPost, membersPath(projectID), ownerToken, gin.H{
		"userId": otherID,
		"role":   "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		UserID uint   `json:"userId"`
		Role   string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, otherID, data.UserID)
	assert.Equal(t, "admin", data.Role)
}

func TestAddMemberDefaultsToMemberRole(t *testing.T) {
	r, _ := setupRouter(t)

	_, ownerToken := registerUser(t, r, 1)
	otherID, _ := registerUser(t, r, 2)

	projectID := createProject(t, r, ownerToken, "Apollo")

	w, env := doJSON(t, r, http.MethodPost, membersPath(projectID), ownerToken, gin.H{"userId": otherID})
	require.Equal(t, http.StatusCreated, w.Code)

	var data struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "member", data.Role)
}

func TestAddMemberFailures(t *testing.T) {
	r, _ := setupRouter(t)

	_, ownerToken := registerUser(t, r, 1)
	otherID, _ := registerUser(t, r, 2)

	projectID := createProject(t, r, ownerToken, "Apollo")
	addMember(t, r, ownerToken, projectID, otherID, "member")

	// Already a member.
	w, env := doJSON(t, r, http.MethodPost, membersPath(projectID), ownerToken, gin.H{"userId": otherID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already a project member", env.Message)

	// Owner is never assignable through this path.
	w, _ = doJSON(t, r, http.MethodPost, membersPath(projectID), ownerToken, gin.H{"userId": otherID, "role": "owner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown role.
	w, _ = doJSON(t, r, http.MethodPost, membersPath(projectID), ownerToken, gin.H{"userId": otherID, "role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown user.
	w, env = doJSON(t, r, http.MethodPost, membersPath(projectID), ownerToken, gin.H{"userId": 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", env.Message)

	// Unknown project.
	w, env = doJSON(t, r, http.MethodPost, membersPath(9999), ownerToken, gin.H{"userId": otherID})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Project not found", env.Message)
}

func TestListMembers(t *testing.T) {
	r, _ := setupRouter(t)

	_, ownerToken := registerUser(t, r, 1)
	otherID, _ := registerUser(t, r, 2)
	_, strangerToken := registerUser(t, r, 3)

	projectID := createProject(t, r, ownerToken, "Apollo")
	addMember(t, r, ownerToken, projectID, otherID, "member")

	w, env := doJSON(t, r, http.MethodGet, membersPath(projectID), ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var members []struct {
		UserID   uint   `json:"userId"`
		Role     string `json:"role"`
		FullName string `json:"fullName"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &members))
	require.Len(t, members, 2)

	// Non-members cannot see the roster.
	w, _ = doJSON(t, r, http.MethodGet, membersPath(projectID), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateMemberRole(t *testing.T) {
	r, _ := setupRouter(t)

	_, ownerToken := registerUser(t, r, 1)
	otherID, _ := registerUser(t, r, 2)

	projectID := createProject(t, r, ownerToken, "Apollo")
	addMember(t, r, ownerToken, projectID, otherID, "member")

	w, env := doJSON(t, r, http.MethodPut, memberPath(projectID, otherID), ownerToken, gin.H{"role": "admin"})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "admin", data.Role)

	// Owner is not a valid target role.
	w, _ = doJSON(t, r, http.MethodPut, memberPath(projectID, otherID), ownerToken, gin.H{"role": "owner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown member.
	w, _ = doJSON(t, r, http.MethodPut, memberPath(projectID, 9999), ownerToken, gin.H{"role": "admin"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOwnerRowIsImmutable(t *testing.T) {
	r, _ := setupRouter(t)

	ownerID, ownerToken := registerUser(t, r, 1)
	otherID, otherToken := registerUser(t, r, 2)

	projectID := createProject(t, r, ownerToken, "Apollo")
	addMember(t, r, ownerToken, projectID, otherID, "admin")

	// Regardless of who asks, the owner row cannot be changed or removed.
	for _, token := range []string{ownerToken, otherToken} {
		w, env := doJSON(t, r, http.MethodPut, memberPath(projectID, ownerID), token, gin.H{"role": "member"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Owner role cannot be changed", env.Message)

		w, env = doJSON(t, r, http.MethodDelete, memberPath(projectID, ownerID), token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Owner cannot be removed", env.Message)
	}
}

func TestRemoveMember(t *testing.T) {
	r, _ := setupRouter(t)

	_, ownerToken := registerUser(t, r, 1)
	otherID, otherToken := registerUser(t, r, 2)

	projectID := createProject(t, r, ownerToken, "Apollo")
	addMember(t, r, ownerToken, projectID, otherID, "member")

	w, _ := doJSON(t, r, http.MethodDelete, memberPath(projectID, otherID), ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Membership was the access gate.
	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", projectID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Removing again reports the row as gone.
	w, _ = doJSON(t, r, http.MethodDelete, memberPath(projectID, otherID), ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A removed member can be added back.
	addMember(t, r, ownerToken, projectID, otherID, "member")
}
