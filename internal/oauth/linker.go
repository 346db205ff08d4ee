package oauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lakshaylalia/Taskflow-Backend/internal/models"
	"github.com/lakshaylalia/Taskflow-Backend/internal/types"
)

var ErrUnknownProvider = errors.New("unknown oauth provider")

// Linker maps external OAuth identities to local user accounts.
type Linker struct {
	db *gorm.DB
}

func NewLinker(db *gorm.DB) *Linker {
	return &Linker{db: db}
}

// Resolve returns the user linked to the external identity, creating one on
// first login. The unique index on the provider id column is the
// authoritative dedup: when a concurrent callback wins the creation race,
// the duplicate-key failure is retried as a lookup rather than surfaced.
func (l *Linker) Resolve(ctx context.Context, provider types.Provider, profile Profile) (models.User, error) {
	column, err := idColumn(provider)
	if err != nil {
		return models.User{}, err
	}

	var user models.User

	err = l.db.WithContext(ctx).Where(column+" = ?", profile.ID).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("lookup %s user: %w", provider, err)
	}

	user = newLinkedUser(provider, profile)

	if createErr := l.db.WithContext(ctx).Create(&user).Error; createErr != nil {
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return models.User{}, fmt.Errorf("create %s user: %w", provider, createErr)
		}

		if err := l.db.WithContext(ctx).Where(column+" = ?", profile.ID).First(&user).Error; err != nil {
			return models.User{}, fmt.Errorf("lookup %s user after duplicate: %w", provider, err)
		}
	}

	return user, nil
}

func newLinkedUser(provider types.Provider, profile Profile) models.User {
	user := models.User{
		Provider: provider,
		FullName: profile.Name,
	}

	if user.FullName == "" {
		user.FullName = fmt.Sprintf("%s_%s", provider, profile.ID)
	}

	externalID := profile.ID
	switch provider {
	case types.ProviderGoogle:
		user.GoogleID = &externalID
	case types.ProviderGitHub:
		user.GitHubID = &externalID
	}

	if profile.Email != "" {
		email := strings.ToLower(strings.TrimSpace(profile.Email))
		user.Email = &email
	}

	if profile.Picture != "" {
		user.AvatarImage = profile.Picture
	}

	return user
}

func idColumn(provider types.Provider) (string, error) {
	switch provider {
	case types.ProviderGoogle:
		return "google_id", nil
	case types.ProviderGitHub:
		return "github_id", nil
	}
	return "", ErrUnknownProvider
}
