package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a top-level source-code submission.
type Post struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	Title   string `gorm:"not null;size:300" json:"title"`
	Content string `gorm:"not null;type:text" json:"content"`
	UserID  string `gorm:"not null;size:64;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	Likes   int    `gorm:"not null;default:0" json:"likes"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"-" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns the server-generated identifier. The ID is immutable
// after this point.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
