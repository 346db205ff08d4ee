package models

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lakshaylalia/Taskflow-Backend/internal/types"
)

const DefaultAvatarImage = "/images/defaultUserImage.webp"

// ErrCredentialState is returned when a user record violates the rule that
// local accounts carry a password hash and OAuth accounts carry exactly the
// external id matching their provider.
var ErrCredentialState = errors.New("user credentials inconsistent with provider")

// User is an account created through local registration or OAuth linking.
// Sparse-unique columns (email, provider ids, contact number, employee id)
// are pointers so absent values stay NULL and never collide in the unique
// indexes; those indexes are the authoritative dedup under concurrent writes.
type User struct {
	gorm.Model

	FirstName     string
	LastName      string
	FullName      string  `gorm:"not null"`
	Email         *string `gorm:"uniqueIndex"`
	PasswordHash  string
	Provider      types.Provider `gorm:"not null;default:local"`
	GoogleID      *string        `gorm:"column:google_id;uniqueIndex"`
	GitHubID      *string        `gorm:"column:github_id;uniqueIndex"`
	AvatarImage   string
	ContactNumber *string `gorm:"uniqueIndex"`
	EmployeeID    *string `gorm:"uniqueIndex"`

	// Relationships
	OwnedProjects      []Project       `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ProjectMemberships []ProjectMember `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.AvatarImage == "" {
		u.AvatarImage = DefaultAvatarImage
	}
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	switch u.Provider {
	case types.ProviderLocal:
		if u.PasswordHash == "" || u.GoogleID != nil || u.GitHubID != nil {
			return ErrCredentialState
		}
	case types.ProviderGoogle:
		if u.GoogleID == nil || u.PasswordHash != "" {
			return ErrCredentialState
		}
	case types.ProviderGitHub:
		if u.GitHubID == nil || u.PasswordHash != "" {
			return ErrCredentialState
		}
	default:
		return ErrCredentialState
	}
	return nil
}
