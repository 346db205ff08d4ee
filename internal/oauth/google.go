package oauth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const googleIssuerURL = "https://accounts.google.com"

// Google exchanges authorization codes for verified Google identities using
// the provider's OIDC id token.
type Google struct {
	cfg      *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func NewGoogle(ctx context.Context, cfg GoogleConfig) (*Google, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuerURL)
	if err != nil {
		return nil, fmt.Errorf("new oidc provider: %w", err)
	}

	return &Google{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			Endpoint:     endpoints.Google,
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

func (g *Google) LoginURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

func (g *Google) Exchange(ctx context.Context, code string) (Profile, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return Profile{}, fmt.Errorf("exchange code: %w", err)
	}

	raw, ok := tok.Extra("id_token").(string)
	if !ok {
		return Profile{}, errors.New("token response missing id_token")
	}

	idTok, err := g.verifier.Verify(ctx, raw)
	if err != nil {
		return Profile{}, fmt.Errorf("verify id token: %w", err)
	}

	var claims struct {
		Sub      string `json:"sub"`
		Email    string `json:"email"`
		Verified bool   `json:"email_verified"`
		Name     string `json:"name"`
		Picture  string `json:"picture"`
	}

	if err := idTok.Claims(&claims); err != nil {
		return Profile{}, fmt.Errorf("read claims: %w", err)
	}

	email := ""
	if claims.Verified {
		email = claims.Email
	}

	return Profile{
		ID:      claims.Sub,
		Email:   email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
