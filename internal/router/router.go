package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lakshaylalia/Taskflow-Backend/internal/auth"
	"github.com/lakshaylalia/Taskflow-Backend/internal/config"
	"github.com/lakshaylalia/Taskflow-Backend/internal/handlers"
	"github.com/lakshaylalia/Taskflow-Backend/internal/middleware"
	"github.com/lakshaylalia/Taskflow-Backend/internal/oauth"
)

func New(db *gorm.DB, issuer *auth.Issuer, linker *oauth.Linker, google *oauth.Google, github *oauth.GitHub, cfg config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthCheck)

	authHandler := handlers.NewAuthHandler(db, issuer, linker, google, github, cfg)
	projectHandler := handlers.NewProjectHandler(db)
	requireAuth := middleware.Auth(db, issuer)

	v1 := r.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", requireAuth, authHandler.Me)
			authRoutes.GET("/google", authHandler.GoogleLogin)
			authRoutes.GET("/google/callback", authHandler.GoogleCallback)
			authRoutes.GET("/github", authHandler.GitHubLogin)
			authRoutes.GET("/github/callback", authHandler.GitHubCallback)
		}

		projects := v1.Group("/projects", requireAuth)
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/user/:userId", projectHandler.GetUserProjects)
			projects.GET("/:projectId", projectHandler.GetProject)
			projects.PUT("/:projectId", projectHandler.UpdateProject)
			projects.DELETE("/:projectId", projectHandler.DeleteProject)
			projects.GET("/:projectId/members", projectHandler.ListMembers)
			projects.POST("/:projectId/members", projectHandler.AddMember)
			projects.PUT("/:projectId/members/:userId", projectHandler.UpdateMemberRole)
			projects.DELETE("/:projectId/members/:userId", projectHandler.RemoveMember)
		}
	}

	return r
}
