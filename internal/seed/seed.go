// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"codemmunity/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers           int
	NumPosts           int
	MaxCommentsPerPost int
	ShouldClean        bool
}

// Seed populates the database with demo members, posts and comment threads.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	f := NewFactory(db)

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d demo users created", len(users))

	posts, err := f.CreatePosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d demo posts created", len(posts))

	comments := 0
	for _, post := range posts {
		n, err := f.CreateThread(post, users, opts.MaxCommentsPerPost)
		if err != nil {
			return fmt.Errorf("failed to create comments for post %s: %w", post.ID, err)
		}
		comments += n
	}
	log.Printf("✓ %d demo comments created", comments)

	log.Println("🌱 Seeding complete")
	return nil
}

// clearData removes seeded rows, children before parents.
func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Comment{},
		&models.Post{},
		&models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
