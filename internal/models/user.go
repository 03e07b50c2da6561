package models

import (
	"time"

	"gorm.io/gorm"
)

// User mirrors a member of the external identity provider. Accounts are
// managed elsewhere; this table exists so author references on posts and
// comments can be resolved, and to keep the member's display name.
type User struct {
	// ID is the opaque identifier assigned by the external auth system.
	ID          string         `gorm:"primaryKey;size:64" json:"user_id"`
	Name        string         `gorm:"not null;size:100" json:"user_name"`
	IsModerator bool           `gorm:"not null;default:false" json:"is_moderator"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
