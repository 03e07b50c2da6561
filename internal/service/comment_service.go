package service

import (
	"context"
	"errors"

	"codemmunity/internal/models"
	"codemmunity/internal/repository"
)

const maxCommentLen = 10000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

type CreateCommentInput struct {
	UserID   string
	PostID   string
	ParentID *uint
	Content  string
}

type UpdateCommentInput struct {
	UserID    string
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    string
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	exists, err := s.userRepo.Exists(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("User", in.UserID)
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		ParentID: in.ParentID,
		UserID:   in.UserID,
		Content:  in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrParentNotFound) && in.ParentID != nil {
			return nil, models.NewNotFoundError("Comment parent", *in.ParentID)
		}
		return nil, models.WrapRecordNotFound(err, "Post", in.PostID)
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.WrapRecordNotFound(err, "Comment", id)
	}
	return comment, nil
}

// ListThread returns the post's comments in thread order
// (parent-before-child, siblings by creation time per order).
func (s *CommentService) ListThread(ctx context.Context, postID string, order ThreadOrder) ([]*models.Comment, error) {
	if order == "" {
		order = ThreadOrderAsc
	}
	if order != ThreadOrderAsc && order != ThreadOrderDesc {
		return nil, models.NewValidationError("order must be asc or desc")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, models.WrapRecordNotFound(err, "Post", postID)
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	thread, err := BuildThread(comments, order)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return thread, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, models.WrapRecordNotFound(err, "Comment", in.CommentID)
	}

	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes the comment and its reply subtree. Allowed for the
// author and for moderators.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return models.WrapRecordNotFound(err, "Comment", in.CommentID)
	}

	if comment.UserID != in.UserID {
		user, err := s.userRepo.GetByID(ctx, in.UserID)
		if err != nil {
			return models.WrapRecordNotFound(err, "User", in.UserID)
		}
		if !user.IsModerator {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return models.WrapRecordNotFound(err, "Comment", in.CommentID)
	}
	return nil
}
