package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskdeck/taskdeck/internal/application"
	"github.com/taskdeck/taskdeck/internal/domain/entity"
)

const listKeyPrefix = "tasks:list:"

// TaskCache is a read-through cache of each owner's task list. Entries are
// keyed per owner, so invalidation on a write never touches other owners.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

func listKey(ownerID string) string {
	return listKeyPrefix + ownerID
}

// GetList returns the cached list for the owner, or nil on a miss. A miss is
// not an error.
func (c *TaskCache) GetList(ctx context.Context, ownerID string) ([]entity.Task, error) {
	raw, err := c.rdb.Get(ctx, listKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []entity.Task
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = make([]entity.Task, 0)
	}
	return list, nil
}

// SetList stores the owner's list with the configured TTL.
func (c *TaskCache) SetList(ctx context.Context, ownerID string, list []entity.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(ownerID), b, c.ttl).Err()
}

// Invalidate drops the owner's cached list after any write.
func (c *TaskCache) Invalidate(ctx context.Context, ownerID string) error {
	return c.rdb.Del(ctx, listKey(ownerID)).Err()
}

var _ application.ListCache = (*TaskCache)(nil)
