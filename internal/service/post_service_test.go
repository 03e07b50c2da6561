package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codemmunity/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, string) (*models.Post, error)
	getByUserIDFn func(context.Context, string, int, int) ([]*models.Post, error)
	listFn        func(context.Context, int, int) ([]*models.Post, error)
	updateFn      func(context.Context, *models.Post) error
	deleteFn      func(context.Context, string) error
	likeFn        func(context.Context, string) error
	unlikeFn      func(context.Context, string) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Like(ctx context.Context, id string) error {
	return s.likeFn(ctx, id)
}
func (s *postRepoStub) Unlike(ctx context.Context, id string) error {
	return s.unlikeFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Post, error) {
			return &models.Post{ID: id, Title: "title", Content: "content", UserID: "author"}, nil
		},
		getByUserIDFn: func(context.Context, string, int, int) ([]*models.Post, error) { return nil, nil },
		listFn:        func(context.Context, int, int) ([]*models.Post, error) { return nil, nil },
		updateFn:      func(context.Context, *models.Post) error { return nil },
		deleteFn:      func(context.Context, string) error { return nil },
		likeFn:        func(context.Context, string) error { return nil },
		unlikeFn:      func(context.Context, string) error { return nil },
	}
}

func TestPostService_CreatePost(t *testing.T) {
	repo := noopPostRepo()
	repo.createFn = func(_ context.Context, post *models.Post) error {
		post.ID = "generated-id"
		return nil
	}
	var fetched string
	repo.getByIDFn = func(_ context.Context, id string) (*models.Post, error) {
		fetched = id
		return &models.Post{ID: id, Title: "Hello", Content: "World", UserID: "author"}, nil
	}

	svc := NewPostService(repo, noopUserRepo(), nil)

	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:  "author",
		Title:   "Hello",
		Content: "World",
	})
	require.NoError(t, err)
	assert.Equal(t, "generated-id", post.ID)
	assert.Equal(t, "generated-id", fetched)
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopUserRepo(), nil)

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{"Empty title", CreatePostInput{UserID: "author", Content: "body"}},
		{"Empty content", CreatePostInput{UserID: "author", Title: "title"}},
		{"Title too long", CreatePostInput{UserID: "author", Title: strings.Repeat("x", maxTitleLen+1), Content: "body"}},
		{"Content too long", CreatePostInput{UserID: "author", Title: "title", Content: strings.Repeat("x", maxContentLen+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, models.CodeValidation, err.(*models.AppError).Code)
		})
	}
}

func TestPostService_CreatePost_UnknownAuthor(t *testing.T) {
	users := noopUserRepo()
	users.existsFn = func(context.Context, string) (bool, error) { return false, nil }

	svc := NewPostService(noopPostRepo(), users, nil)

	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:  "ghost",
		Title:   "Hello",
		Content: "World",
	})
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, err.(*models.AppError).Code)
}

func TestPostService_GetPost_NotFound(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(context.Context, string) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewPostService(repo, noopUserRepo(), nil)

	_, err := svc.GetPost(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, err.(*models.AppError).Code)
}

func TestPostService_ListPosts_PaginationClamping(t *testing.T) {
	repo := noopPostRepo()
	var gotLimit, gotOffset int
	repo.listFn = func(_ context.Context, limit, offset int) ([]*models.Post, error) {
		gotLimit, gotOffset = limit, offset
		return []*models.Post{}, nil
	}

	svc := NewPostService(repo, noopUserRepo(), nil)

	tests := []struct {
		name       string
		input      ListPostsInput
		wantLimit  int
		wantOffset int
	}{
		{"Defaults", ListPostsInput{}, defaultPageSize, 0},
		{"Negative page", ListPostsInput{Page: -3, PageSize: 10}, 10, 0},
		{"Oversized page size", ListPostsInput{Page: 2, PageSize: 500}, maxPageSize, maxPageSize},
		{"Second page", ListPostsInput{Page: 3, PageSize: 10}, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ListPosts(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, gotLimit)
			assert.Equal(t, tt.wantOffset, gotOffset)
		})
	}
}

func TestPostService_UpdatePost_Ownership(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id string) (*models.Post, error) {
		return &models.Post{ID: id, Title: "old", Content: "old", UserID: "owner"}, nil
	}

	svc := NewPostService(repo, noopUserRepo(), nil)

	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
		UserID:  "intruder",
		PostID:  "post-1",
		Title:   "new",
		Content: "new",
	})
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, err.(*models.AppError).Code)
}

func TestPostService_DeletePost_Moderator(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id string) (*models.Post, error) {
		return &models.Post{ID: id, UserID: "owner"}, nil
	}
	deleted := ""
	repo.deleteFn = func(_ context.Context, id string) error {
		deleted = id
		return nil
	}

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id string) (*models.User, error) {
		return &models.User{ID: id, IsModerator: true}, nil
	}

	svc := NewPostService(repo, users, nil)

	err := svc.DeletePost(context.Background(), DeletePostInput{UserID: "mod", PostID: "post-1"})
	require.NoError(t, err)
	assert.Equal(t, "post-1", deleted)
}

func TestPostService_DeletePost_Forbidden(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id string) (*models.Post, error) {
		return &models.Post{ID: id, UserID: "owner"}, nil
	}

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id string) (*models.User, error) {
		return &models.User{ID: id, IsModerator: false}, nil
	}

	svc := NewPostService(repo, users, nil)

	err := svc.DeletePost(context.Background(), DeletePostInput{UserID: "stranger", PostID: "post-1"})
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, err.(*models.AppError).Code)
}

func TestPostService_AdjustLikes(t *testing.T) {
	repo := noopPostRepo()
	likes := 0
	repo.likeFn = func(context.Context, string) error {
		likes++
		return nil
	}
	repo.unlikeFn = func(context.Context, string) error {
		if likes > 0 {
			likes--
		}
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id string) (*models.Post, error) {
		return &models.Post{ID: id, Likes: likes}, nil
	}

	svc := NewPostService(repo, noopUserRepo(), nil)

	post, err := svc.AdjustLikes(context.Background(), "post-1", LikeIncrement)
	require.NoError(t, err)
	assert.Equal(t, 1, post.Likes)

	post, err = svc.AdjustLikes(context.Background(), "post-1", LikeDecrement)
	require.NoError(t, err)
	assert.Equal(t, 0, post.Likes)

	// Decrement is clamped at zero.
	post, err = svc.AdjustLikes(context.Background(), "post-1", LikeDecrement)
	require.NoError(t, err)
	assert.Equal(t, 0, post.Likes)
}

func TestPostService_AdjustLikes_InvalidMode(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopUserRepo(), nil)

	_, err := svc.AdjustLikes(context.Background(), "post-1", LikeMode("sideways"))
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, err.(*models.AppError).Code)
}

func TestPostService_AdjustLikes_MissingPost(t *testing.T) {
	repo := noopPostRepo()
	repo.likeFn = func(context.Context, string) error { return gorm.ErrRecordNotFound }

	svc := NewPostService(repo, noopUserRepo(), nil)

	_, err := svc.AdjustLikes(context.Background(), "missing", LikeIncrement)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, err.(*models.AppError).Code)
}

func TestPostService_RepoErrorPassthrough(t *testing.T) {
	boom := errors.New("connection refused")
	repo := noopPostRepo()
	repo.listFn = func(context.Context, int, int) ([]*models.Post, error) { return nil, boom }

	svc := NewPostService(repo, noopUserRepo(), nil)

	_, err := svc.ListPosts(context.Background(), ListPostsInput{})
	assert.ErrorIs(t, err, boom)
}
