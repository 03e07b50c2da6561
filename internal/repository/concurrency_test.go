package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"codemmunity/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openSharedDB returns a sqlite database reachable from every pooled
// connection, so concurrent goroutines run real separate transactions. The
// busy timeout makes writers wait for each other instead of failing.
func openSharedDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=10000", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}))
	return db
}

// Deleting a post while comments are being created on it must never leave a
// comment pointing at the deleted post: each creation either lands before
// the cascade and is swept with it, or observes the post gone and fails.
func TestPostDelete_ConcurrentCommentCreates(t *testing.T) {
	db := openSharedDB(t, "cascade_race")

	user := &models.User{ID: "member-1", Name: "racer"}
	require.NoError(t, db.Create(user).Error)
	post := &models.Post{Title: "going away", Content: "fn main() {}", UserID: user.ID}
	require.NoError(t, db.Create(post).Error)

	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	ctx := context.Background()

	const writers = 8
	start := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			// Failures are expected once the post is gone.
			_ = commentRepo.Create(ctx, &models.Comment{
				PostID:  post.ID,
				UserID:  user.ID,
				Content: fmt.Sprintf("reply %d", i),
			})
		}(i)
	}

	var deleteErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		for attempt := 0; attempt < 100; attempt++ {
			if deleteErr = postRepo.Delete(ctx, post.ID); deleteErr == nil {
				return
			}
		}
	}()

	close(start)
	wg.Wait()
	require.NoError(t, deleteErr)

	_, err := postRepo.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var survivors int64
	require.NoError(t, db.Model(&models.Comment{}).
		Where("post_id = ?", post.ID).
		Count(&survivors).Error)
	assert.Zero(t, survivors, "no comment may outlive its post")
}
