package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain/entity"
	repo "github.com/taskdeck/taskdeck/internal/domain/repository"
)

// In-memory repositories backing the service tests. They mirror the storage
// semantics: case-insensitive email uniqueness, monotonically increasing task
// ids, owner-scoped mutations.

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]entity.User // keyed by id

	getByEmailErr error // injected storage failure
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repo.ErrDuplicate
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getByEmailErr != nil {
		return nil, r.getByEmailErr
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

var _ repo.UserRepository = (*memUserRepo)(nil)

type memTaskRepo struct {
	mu    sync.Mutex
	seq   int64
	tasks map[int64]entity.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[int64]entity.Task{}}
}

func (r *memTaskRepo) Create(_ context.Context, t *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	t.ID = r.seq
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.tasks[t.ID] = *t
	return nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id int64) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := t
	return &cp, nil
}

func (r *memTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]entity.Task, 0)
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *memTaskRepo) Update(_ context.Context, id int64, ownerID string, p repo.TaskPatch) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repo.ErrNotFound
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	t.UpdatedAt = time.Now()
	r.tasks[id] = t
	cp := t
	return &cp, nil
}

func (r *memTaskRepo) Delete(_ context.Context, id int64, ownerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

func (r *memTaskRepo) Toggle(_ context.Context, id int64, ownerID string) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repo.ErrNotFound
	}
	t.IsCompleted = !t.IsCompleted
	t.UpdatedAt = time.Now()
	r.tasks[id] = t
	cp := t
	return &cp, nil
}

var _ repo.TaskRepository = (*memTaskRepo)(nil)

// memListCache is an in-memory stand-in for the Redis task-list cache.
type memListCache struct {
	mu            sync.Mutex
	lists         map[string][]entity.Task
	invalidations map[string]int
}

func newMemListCache() *memListCache {
	return &memListCache{
		lists:         map[string][]entity.Task{},
		invalidations: map[string]int{},
	}
}

func (c *memListCache) GetList(_ context.Context, ownerID string) ([]entity.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.lists[ownerID]
	if !ok {
		return nil, nil
	}
	cp := make([]entity.Task, len(list))
	copy(cp, list)
	return cp, nil
}

func (c *memListCache) SetList(_ context.Context, ownerID string, list []entity.Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]entity.Task, len(list))
	copy(cp, list)
	c.lists[ownerID] = cp
	return nil
}

func (c *memListCache) Invalidate(_ context.Context, ownerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lists, ownerID)
	c.invalidations[ownerID]++
	return nil
}

func (c *memListCache) cached(ownerID string) ([]entity.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.lists[ownerID]
	return list, ok
}

var _ ListCache = (*memListCache)(nil)
