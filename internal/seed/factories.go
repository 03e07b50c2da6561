package seed

import (
	"fmt"
	"math/rand"
	"time"

	"codemmunity/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildUser constructs a member without persisting it. Identifiers mimic
// what the external identity provider hands out.
func (f *Factory) BuildUser() *models.User {
	return &models.User{
		ID:   fmt.Sprintf("seed-%s", gofakeit.UUID()),
		Name: gofakeit.Username(),
	}
}

// CreateUsers persists count members; roughly one in ten is a moderator.
func (f *Factory) CreateUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user := f.BuildUser()
		if i%10 == 0 {
			user.IsModerator = true
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return users, nil
	}
	if err := f.db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// BuildPost constructs a post for a random author with a creation time
// spread over the past 90 days, so listings paginate realistically.
func (f *Factory) BuildPost(users []*models.User) *models.Post {
	author := users[f.rng.Intn(len(users))]
	post := &models.Post{
		Title:   gofakeit.Sentence(5),
		Content: gofakeit.Paragraph(2, 4, 8, "\n"),
		UserID:  author.ID,
		Likes:   f.rng.Intn(50),
	}
	daysBack := f.rng.Intn(90)
	minsBack := f.rng.Intn(24 * 60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(minsBack)*time.Minute)
	return post
}

// CreatePosts persists count posts authored by random members.
func (f *Factory) CreatePosts(users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("cannot create posts without users")
	}
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		posts = append(posts, f.BuildPost(users))
	}
	if len(posts) == 0 {
		return posts, nil
	}
	if err := f.db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateThread persists up to maxComments comments under post, replying to
// earlier comments about half the time so real nesting shows up.
func (f *Factory) CreateThread(post *models.Post, users []*models.User, maxComments int) (int, error) {
	if maxComments <= 0 {
		maxComments = 8
	}
	count := f.rng.Intn(maxComments + 1)

	created := make([]*models.Comment, 0, count)
	at := post.CreatedAt
	for i := 0; i < count; i++ {
		at = at.Add(time.Duration(1+f.rng.Intn(180)) * time.Minute)
		comment := &models.Comment{
			PostID:    post.ID,
			UserID:    users[f.rng.Intn(len(users))].ID,
			Content:   gofakeit.Sentence(12),
			CreatedAt: at,
		}
		if len(created) > 0 && f.rng.Intn(2) == 0 {
			parent := created[f.rng.Intn(len(created))]
			comment.ParentID = &parent.ID
		}
		if err := f.db.Create(comment).Error; err != nil {
			return len(created), err
		}
		created = append(created, comment)
	}
	return len(created), nil
}
