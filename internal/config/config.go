package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all environment-driven settings. It is loaded once at startup
// and passed down read-only; business logic never reads the environment.
type Config struct {
	Port        string `envconfig:"PORT" default:"3000"`
	DatabaseDSN string `envconfig:"DATABASE_DSN" required:"true"`
	CORSOrigin  string `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"168h"`

	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	GitHubClientID     string `envconfig:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string `envconfig:"GITHUB_CLIENT_SECRET"`

	FrontendURL  string `envconfig:"FRONTEND_URL" default:"http://localhost:5173"`
	BackendURL   string `envconfig:"BACKEND_URL" default:"http://localhost:3000"`
	CookieDomain string `envconfig:"DOMAIN"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

func (c Config) GoogleRedirectURL() string {
	return c.BackendURL + "/api/v1/auth/google/callback"
}

func (c Config) GitHubRedirectURL() string {
	return c.BackendURL + "/api/v1/auth/github/callback"
}
