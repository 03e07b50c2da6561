package repository

import (
	"context"
	"errors"
	"fmt"

	"codemmunity/internal/models"

	"gorm.io/gorm"
)

// ErrParentNotFound distinguishes a missing reply parent from a missing
// post. It wraps gorm.ErrRecordNotFound so generic not-found handling still
// applies.
var ErrParentNotFound = fmt.Errorf("parent comment: %w", gorm.ErrRecordNotFound)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create validates the parent references and inserts the comment in one
// transaction. The post row is locked FOR UPDATE so creation serializes
// with a concurrent cascade delete: either the comment lands before the
// cascade (and is swept with it) or the post is already gone and the
// insert fails with record-not-found. An orphan is never visible.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := lockForUpdate(tx).Select("id").First(&post, "id = ?", comment.PostID).Error; err != nil {
			return err
		}

		if comment.ParentID != nil {
			var parent models.Comment
			if err := tx.Select("id", "post_id").First(&parent, "id = ?", *comment.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrParentNotFound
				}
				return err
			}
			// A parent from another thread cannot anchor this comment.
			if parent.PostID != comment.PostID {
				return ErrParentNotFound
			}
		}

		return tx.Create(comment).Error
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns every comment of the post, creation-ordered. Thread
// assembly happens in the service layer.
func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// Delete removes the comment together with its reply subtree in one
// transaction (hard cascade). The owning post row is locked first so the
// cascade serializes with concurrent comment creation on the same thread.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Select("id", "post_id").First(&comment, "id = ?", id).Error; err != nil {
			return err
		}

		var post models.Post
		if err := lockForUpdate(tx).Select("id").First(&post, "id = ?", comment.PostID).Error; err != nil {
			return err
		}

		subtree, err := collectSubtree(tx, comment.PostID, id)
		if err != nil {
			return err
		}

		return tx.Where("id IN ?", subtree).Delete(&models.Comment{}).Error
	})
}

// collectSubtree walks parent references breadth-first and returns the IDs
// of the comment and all its transitive replies. The walk is bounded by the
// post's comment count, so a corrupt cyclic chain cannot loop it forever.
func collectSubtree(tx *gorm.DB, postID string, rootID uint) ([]uint, error) {
	seen := map[uint]bool{rootID: true}
	all := []uint{rootID}
	frontier := []uint{rootID}

	for len(frontier) > 0 {
		var children []uint
		err := tx.Model(&models.Comment{}).
			Where("post_id = ? AND parent_id IN ?", postID, frontier).
			Pluck("id", &children).Error
		if err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, child := range children {
			if seen[child] {
				continue
			}
			seen[child] = true
			all = append(all, child)
			frontier = append(frontier, child)
		}
	}

	return all, nil
}
