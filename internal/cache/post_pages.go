package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"codemmunity/internal/models"
	"codemmunity/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	postPageTTL       = 30 * time.Second
	postPageKeyPrefix = "posts:page:"
)

// PostPages caches rendered pages of the post listing. Entries are short
// lived and the whole keyspace is dropped on any post write, so a cached
// page never outlives the data it was built from by more than the TTL.
type PostPages struct {
	client *redis.Client
}

// NewPostPages returns a page cache backed by client. A nil client yields a
// cache whose operations are all no-ops.
func NewPostPages(client *redis.Client) *PostPages {
	return &PostPages{client: client}
}

func postPageKey(page, pageSize int) string {
	return fmt.Sprintf("%s%d:%d", postPageKeyPrefix, page, pageSize)
}

// Get returns the cached page and whether it was present.
func (p *PostPages) Get(ctx context.Context, page, pageSize int) ([]*models.Post, bool) {
	if p == nil || p.client == nil {
		return nil, false
	}

	payload, err := p.client.Get(ctx, postPageKey(page, pageSize)).Bytes()
	if err != nil {
		if err != redis.Nil {
			observability.RedisErrorRate.WithLabelValues("get").Inc()
		}
		return nil, false
	}

	var posts []*models.Post
	if err := json.Unmarshal(payload, &posts); err != nil {
		observability.RedisErrorRate.WithLabelValues("decode").Inc()
		return nil, false
	}
	return posts, true
}

// Set stores the page. Failures are counted and otherwise ignored.
func (p *PostPages) Set(ctx context.Context, page, pageSize int, posts []*models.Post) {
	if p == nil || p.client == nil {
		return
	}

	payload, err := json.Marshal(posts)
	if err != nil {
		observability.RedisErrorRate.WithLabelValues("encode").Inc()
		return
	}
	if err := p.client.Set(ctx, postPageKey(page, pageSize), payload, postPageTTL).Err(); err != nil {
		observability.RedisErrorRate.WithLabelValues("set").Inc()
	}
}

// Invalidate drops every cached page. Called after any post write.
func (p *PostPages) Invalidate(ctx context.Context) {
	if p == nil || p.client == nil {
		return
	}

	iter := p.client.Scan(ctx, 0, postPageKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		observability.RedisErrorRate.WithLabelValues("scan").Inc()
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := p.client.Del(ctx, keys...).Err(); err != nil {
		observability.RedisErrorRate.WithLabelValues("del").Inc()
	}
}
