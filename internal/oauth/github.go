package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const githubUserURL = "https://api.github.com/user"

// GitHub exchanges authorization codes for GitHub identities. GitHub has no
// OIDC id token, so the profile comes from the REST API.
type GitHub struct {
	cfg *oauth2.Config
}

type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func NewGitHub(cfg GitHubConfig) *GitHub {
	return &GitHub{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     endpoints.GitHub,
		},
	}
}

func (g *GitHub) LoginURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

func (g *GitHub) Exchange(ctx context.Context, code string) (Profile, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return Profile{}, fmt.Errorf("exchange code: %w", err)
	}

	resp, err := g.cfg.Client(ctx, tok).Get(githubUserURL)
	if err != nil {
		return Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("fetch profile: unexpected status %d", resp.StatusCode)
	}

	var user struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}

	return Profile{
		ID:      strconv.FormatInt(user.ID, 10),
		Email:   user.Email,
		Name:    name,
		Picture: user.AvatarURL,
	}, nil
}
