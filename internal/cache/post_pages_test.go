package cache

import (
	"context"
	"testing"

	"codemmunity/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPages(t *testing.T) *PostPages {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPostPages(client)
}

func TestPostPages_RoundTrip(t *testing.T) {
	pages := testPages(t)
	ctx := context.Background()

	_, ok := pages.Get(ctx, 1, 20)
	assert.False(t, ok)

	posts := []*models.Post{
		{ID: "a", Title: "first", UserID: "u1", Likes: 2},
		{ID: "b", Title: "second", UserID: "u2"},
	}
	pages.Set(ctx, 1, 20, posts)

	got, ok := pages.Get(ctx, 1, 20)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, 2, got[0].Likes)

	// A different page size is a different key.
	_, ok = pages.Get(ctx, 1, 10)
	assert.False(t, ok)
}

func TestPostPages_Invalidate(t *testing.T) {
	pages := testPages(t)
	ctx := context.Background()

	pages.Set(ctx, 1, 20, []*models.Post{{ID: "a"}})
	pages.Set(ctx, 2, 20, []*models.Post{{ID: "b"}})

	pages.Invalidate(ctx)

	_, ok := pages.Get(ctx, 1, 20)
	assert.False(t, ok)
	_, ok = pages.Get(ctx, 2, 20)
	assert.False(t, ok)
}

func TestPostPages_NilClient(t *testing.T) {
	var pages *PostPages
	ctx := context.Background()

	// Every operation degrades to a no-op.
	_, ok := pages.Get(ctx, 1, 20)
	assert.False(t, ok)
	pages.Set(ctx, 1, 20, nil)
	pages.Invalidate(ctx)

	pages = NewPostPages(nil)
	_, ok = pages.Get(ctx, 1, 20)
	assert.False(t, ok)
	pages.Set(ctx, 1, 20, nil)
	pages.Invalidate(ctx)
}
