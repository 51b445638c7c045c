package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/favboard/favboard-api/internal/core/domain"
)

const (
	defaultPostTTL = 5 * time.Minute

	postListKey    = "posts:list"
	postItemKey    = "posts:item:"
	postGenKey     = "posts:gen"
	postKeyPattern = "posts:*"
	scanBatch      = 100
)

// PostCache implements ports.PostCache with JSON values in Redis.
// Key format: posts:list and posts:item:<id>. posts:gen holds the generation
// counter; it has no TTL and survives Purge.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPostCache creates a PostCache wrapping the given Redis client.
func NewPostCache(client *redis.Client, ttl time.Duration) *PostCache {
	if ttl <= 0 {
		ttl = defaultPostTTL
	}
	return &PostCache{client: client, ttl: ttl}
}

func (c *PostCache) GetList(ctx context.Context) ([]*domain.Post, bool, error) {
	var posts []*domain.Post
	ok, err := c.get(ctx, postListKey, &posts)
	return posts, ok, err
}

// Generation returns the counter bumped by Invalidate and Purge. A missing
// counter reads as zero.
func (c *PostCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, postGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("post cache generation: %w", err)
	}
	return gen, nil
}

func (c *PostCache) SetList(ctx context.Context, gen int64, posts []*domain.Post) error {
	if posts == nil {
		posts = []*domain.Post{}
	}
	return c.set(ctx, gen, postListKey, posts)
}

func (c *PostCache) GetPost(ctx context.Context, id string) (*domain.Post, bool, error) {
	var post domain.Post
	ok, err := c.get(ctx, postItemKey+id, &post)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &post, true, nil
}

func (c *PostCache) SetPost(ctx context.Context, gen int64, post *domain.Post) error {
	return c.set(ctx, gen, postItemKey+post.ID, post)
}

// Invalidate bumps the generation and drops the list and the item keys for
// ids in one transaction.
func (c *PostCache) Invalidate(ctx context.Context, ids ...string) error {
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, postListKey)
	for _, id := range ids {
		keys = append(keys, postItemKey+id)
	}
	if err := c.bumpAndDelete(ctx, keys); err != nil {
		return fmt.Errorf("post cache invalidate: %w", err)
	}
	return nil
}

// Purge bumps the generation and drops every other posts:* key.
func (c *PostCache) Purge(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, postKeyPattern, scanBatch).Iterator()
	var keys []string
	for iter.Next(ctx) {
		if key := iter.Val(); key != postGenKey {
			keys = append(keys, key)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("post cache scan: %w", err)
	}
	if err := c.bumpAndDelete(ctx, keys); err != nil {
		return fmt.Errorf("post cache purge: %w", err)
	}
	return nil
}

func (c *PostCache) bumpAndDelete(ctx context.Context, keys []string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, postGenKey)
		if len(keys) > 0 {
			pipe.Del(ctx, keys...)
		}
		return nil
	})
	return err
}

func (c *PostCache) get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("post cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A corrupt entry is a miss; the next write replaces it.
		_ = c.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

// set stores v under key only while the generation still equals gen. The
// generation key is watched, so an Invalidate landing between the check and
// the write aborts the transaction and the value is dropped.
func (c *PostCache) set(ctx context.Context, gen int64, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("post cache encode: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, postGenKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, c.ttl)
			return nil
		})
		return err
	}, postGenKey)
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("post cache set %s: %w", key, err)
	}
	return nil
}
