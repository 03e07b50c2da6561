// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"codemmunity/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, id string) error
	Unlike(ctx context.Context, id string) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := r.populateCommentCounts(ctx, []*models.Post{&post}); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if err := r.populateCommentCounts(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// List returns a page of posts, newest first. The identifier tie-break keeps
// pagination deterministic: unchanged data yields identical pages.
func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if err := r.populateCommentCounts(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes the post and every comment attached to it in one
// transaction. The post row is locked first so a concurrent comment
// creation either completes before the cascade or observes the post gone;
// a partial cascade never survives.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := lockForUpdate(tx).Select("id").First(&post, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

func (r *postRepository) Like(ctx context.Context, id string) error {
	return r.adjustLikes(ctx, id, "likes + 1")
}

// Unlike decrements the counter, clamped at zero.
func (r *postRepository) Unlike(ctx context.Context, id string) error {
	return r.adjustLikes(ctx, id, "CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END")
}

func (r *postRepository) adjustLikes(ctx context.Context, id string, expr string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("likes", gorm.Expr(expr))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// populateCommentCounts fills the computed CommentsCount field with one
// grouped query instead of a count per post.
func (r *postRepository) populateCommentCounts(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	type postCount struct {
		PostID string
		Count  int
	}
	var counts []postCount
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("post_id, count(*) as count").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&counts).Error
	if err != nil {
		return err
	}

	byID := make(map[string]int, len(counts))
	for _, c := range counts {
		byID[c.PostID] = c.Count
	}
	for _, p := range posts {
		p.CommentsCount = byID[p.ID]
	}
	return nil
}
