// Package service implements the business rules on top of the repositories:
// input validation, ownership checks, and thread assembly.
package service

import (
	"context"

	"codemmunity/internal/cache"
	"codemmunity/internal/models"
	"codemmunity/internal/repository"
)

const (
	maxTitleLen   = 300
	maxContentLen = 50000

	defaultPageSize = 20
	maxPageSize     = 100
)

// LikeMode selects the direction of a likes adjustment.
type LikeMode string

const (
	LikeIncrement LikeMode = "increment"
	LikeDecrement LikeMode = "decrement"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	pages    *cache.PostPages
}

type CreatePostInput struct {
	UserID  string
	Title   string
	Content string
}

type ListPostsInput struct {
	Page     int
	PageSize int
}

type UpdatePostInput struct {
	UserID  string
	PostID  string
	Title   string
	Content string
}

type DeletePostInput struct {
	UserID string
	PostID string
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	pages *cache.PostPages,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		pages:    pages,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	exists, err := s.userRepo.Exists(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("User", in.UserID)
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	s.pages.Invalidate(ctx)

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.WrapRecordNotFound(err, "Post", id)
	}
	return post, nil
}

// ListPosts returns the requested page, newest first. Repeated calls with
// unchanged data return identical pages.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	if posts, ok := s.pages.Get(ctx, page, pageSize); ok {
		return posts, nil
	}

	posts, err := s.postRepo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	s.pages.Set(ctx, page, pageSize, posts)
	return posts, nil
}

func (s *PostService) GetUserPosts(ctx context.Context, userID string, in ListPostsInput) ([]*models.Post, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return s.postRepo.GetByUserID(ctx, userID, pageSize, (page-1)*pageSize)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, models.WrapRecordNotFound(err, "Post", in.PostID)
	}

	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	post.Title = in.Title
	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	s.pages.Invalidate(ctx)

	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes the post and its whole comment tree. Allowed for the
// author and for moderators.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return models.WrapRecordNotFound(err, "Post", in.PostID)
	}

	if post.UserID != in.UserID {
		moderator, err := s.isModerator(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !moderator {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return models.WrapRecordNotFound(err, "Post", in.PostID)
	}
	s.pages.Invalidate(ctx)
	return nil
}

// AdjustLikes applies an increment or decrement to the post's likes counter.
func (s *PostService) AdjustLikes(ctx context.Context, postID string, mode LikeMode) (*models.Post, error) {
	var err error
	switch mode {
	case LikeIncrement:
		err = s.postRepo.Like(ctx, postID)
	case LikeDecrement:
		err = s.postRepo.Unlike(ctx, postID)
	default:
		return nil, models.NewValidationError("mode must be increment or decrement")
	}
	if err != nil {
		return nil, models.WrapRecordNotFound(err, "Post", postID)
	}
	s.pages.Invalidate(ctx)

	return s.postRepo.GetByID(ctx, postID)
}

func (s *PostService) isModerator(ctx context.Context, userID string) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, models.WrapRecordNotFound(err, "User", userID)
	}
	return user.IsModerator, nil
}
