package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/lakshaylalia/Taskflow-Backend/db"
	"github.com/lakshaylalia/Taskflow-Backend/internal/auth"
	"github.com/lakshaylalia/Taskflow-Backend/internal/config"
	"github.com/lakshaylalia/Taskflow-Backend/internal/oauth"
	"github.com/lakshaylalia/Taskflow-Backend/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseDSN)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	linker := oauth.NewLinker(database)

	var google *oauth.Google

	if cfg.GoogleClientID != "" {
		google, err = oauth.NewGoogle(context.Background(), oauth.GoogleConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL(),
		})

		if err != nil {
			log.Fatalf("Failed to initialize Google OAuth: %v", err)
		}
	}

	var github *oauth.GitHub

	if cfg.GitHubClientID != "" {
		github = oauth.NewGitHub(oauth.GitHubConfig{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  cfg.GitHubRedirectURL(),
		})
	}

	r := router.New(database, issuer, linker, google, github, cfg)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
