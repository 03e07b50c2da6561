// Package models contains the persisted entities and the application error
// taxonomy shared by the repository, service, and server layers.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is feedback attached to a post or to another comment. PostID is
// always the root of the thread; ParentID is nil for comments directly under
// the post. The parent chain always terminates at the post and is acyclic.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    string         `gorm:"not null;size:36;index" json:"post_id"`
	ParentID  *uint          `gorm:"index" json:"parent_id,omitempty"`
	UserID    string         `gorm:"not null;size:64" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Content   string         `gorm:"not null;type:text" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
