package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appdb "github.com/lakshaylalia/Taskflow-Backend/db"
	"github.com/lakshaylalia/Taskflow-Backend/internal/auth"
	"github.com/lakshaylalia/Taskflow-Backend/internal/config"
	"github.com/lakshaylalia/Taskflow-Backend/internal/oauth"
	"github.com/lakshaylalia/Taskflow-Backend/internal/router"
)

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, appdb.Migrate(database))

	cfg := config.Config{
		JWTSecret:   "test-secret",
		JWTTTL:      time.Hour,
		CORSOrigin:  "http://localhost:5173",
		FrontendURL: "http://localhost:5173",
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	linker := oauth.NewLinker(database)

	return router.New(database, issuer, linker, nil, nil, cfg), database
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer

	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope

	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}

	return w, env
}

// registerUser registers a distinct local user and returns its id and token.
func registerUser(t *testing.T, r *gin.Engine, n int) (uint, string) {
	t.Helper()

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"firstName":     "Test",
		"lastName":      fmt.Sprintf("User%d", n),
		"email":         fmt.Sprintf("user%d@example.com", n),
		"password":      "Secret123",
		"contactNumber": fmt.Sprintf("+9112345678%02d", n),
		"employeeId":    fmt.Sprintf("E%03d", n),
	})
	require.Equal(t, http.StatusCreated, w.Code, "register user %d: %s", n, w.Body.String())

	var data struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotZero(t, data.User.ID)
	require.NotEmpty(t, data.Token)

	return data.User.ID, data.Token
}

func createProject(t *testing.T, r *gin.Engine, token, name string) uint {
	t.Helper()

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/projects", token, gin.H{
		"name":        name,
		"description": "a test project",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotZero(t, data.ID)

	return data.ID
}

func addMember(t *testing.T, r *gin.Engine, token string, projectID, userID uint, role string) {
	t.Helper()

	body := gin.H{"userId": userID}

	if role != "" {
		body["role"] = role
	}

	w, _ := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/members", projectID), token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
