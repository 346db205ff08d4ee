package models

import (
	"time"

	"github.com/lakshaylalia/Taskflow-Backend/internal/types"
)

// ProjectMember grants a user a role within a project. The composite unique
// index enforces at most one row per (project, user) pair at the store level.
// Rows are hard-deleted: a removed member must not shadow a later re-add
// through the unique index, so there is no soft-delete column here.
type ProjectMember struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ProjectID uint       `gorm:"not null;uniqueIndex:idx_project_user"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_project_user"`
	Role      types.Role `gorm:"not null;default:member"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
