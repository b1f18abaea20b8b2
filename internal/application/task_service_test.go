package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain/entity"
)

func newTaskService() *TaskService {
	return NewTaskService(newMemTaskRepo(), nil, nil)
}

func TestTaskCreate(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", "  Buy milk  ", "two liters")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title) // surrounding whitespace trimmed
	assert.Equal(t, "two liters", task.Description)
	assert.False(t, task.IsCompleted)
	assert.Positive(t, task.ID)
}

func TestTaskCreateValidation(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "owner-1", "", "")
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = svc.Create(ctx, "owner-1", "   ", "")
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = svc.Create(ctx, "owner-1", strings.Repeat("x", TitleMaxLen+1), "")
	assert.ErrorIs(t, err, ErrTitleTooLong)

	_, err = svc.Create(ctx, "owner-1", "ok", strings.Repeat("x", DescriptionMaxLen+1))
	assert.ErrorIs(t, err, ErrDescTooLong)

	// Limits count runes, not bytes.
	_, err = svc.Create(ctx, "owner-1", strings.Repeat("ю", TitleMaxLen), "")
	assert.NoError(t, err)
}

func TestTaskListCreationOrder(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, "owner-1", title, "")
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "owner-2", "someone else's", "")
	require.NoError(t, err)

	list, err := svc.List(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, "second", list[1].Title)
	assert.Equal(t, "third", list[2].Title)
}

func TestTaskListEmpty(t *testing.T) {
	svc := newTaskService()

	list, err := svc.List(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTaskGetNotFoundVsForbidden(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", "mine", "")
	require.NoError(t, err)

	_, err = svc.Get(ctx, task.ID+999, "owner-1")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = svc.Get(ctx, task.ID, "owner-2")
	assert.ErrorIs(t, err, ErrTaskForbidden)

	got, err := svc.Get(ctx, task.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)
}

func TestTaskUpdatePartial(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", "title", "desc")
	require.NoError(t, err)

	newTitle := "new title"
	got, err := svc.Update(ctx, task.ID, "owner-1", UpdateInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "desc", got.Description) // untouched

	empty := ""
	got, err = svc.Update(ctx, task.ID, "owner-1", UpdateInput{Description: &empty})
	require.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "", got.Description) // explicit empty clears it
}

func TestTaskUpdateValidation(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", "title", "desc")
	require.NoError(t, err)

	blank := "   "
	_, err = svc.Update(ctx, task.ID, "owner-1", UpdateInput{Title: &blank})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	long := strings.Repeat("x", DescriptionMaxLen+1)
	_, err = svc.Update(ctx, task.ID, "owner-1", UpdateInput{Description: &long})
	assert.ErrorIs(t, err, ErrDescTooLong)

	// Failed updates leave the task alone.
	got, err := svc.Get(ctx, task.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "title", got.Title)
	assert.Equal(t, "desc", got.Description)
}

func TestTaskUpdateForeignTask(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", "title", "")
	require.NoError(t, err)

	newTitle := "stolen"
	_, err = svc.Update(ctx, task.ID, "owner-2", UpdateInput{Title: &newTitle})
	assert.ErrorIs(t, err, ErrTaskForbidden)
}

func TestTaskDelete(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", "doomed", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, task.ID, "owner-1"))

	_, err = svc.Get(ctx, task.ID, "owner-1")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	// A second delete finds nothing.
	err = svc.Delete(ctx, task.ID, "owner-1")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskDeleteForeignTask(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", "keep", "")
	require.NoError(t, err)

	err = svc.Delete(ctx, task.ID, "owner-2")
	assert.ErrorIs(t, err, ErrTaskForbidden)

	// Still there for its owner.
	_, err = svc.Get(ctx, task.ID, "owner-1")
	assert.NoError(t, err)
}

func TestTaskToggleRoundTrip(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", "flip me", "")
	require.NoError(t, err)
	require.False(t, task.IsCompleted)

	got, err := svc.Toggle(ctx, task.ID, "owner-1")
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)

	got, err = svc.Toggle(ctx, task.ID, "owner-1")
	require.NoError(t, err)
	assert.False(t, got.IsCompleted)
}

func TestTaskListFillsCache(t *testing.T) {
	c := newMemListCache()
	svc := NewTaskService(newMemTaskRepo(), c, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "owner-1", "one", "")
	require.NoError(t, err)

	_, ok := c.cached("owner-1")
	require.False(t, ok, "create must not populate the cache")

	list, err := svc.List(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	cached, ok := c.cached("owner-1")
	require.True(t, ok, "list must fill the cache on a miss")
	assert.Equal(t, list, cached)
}

func TestTaskListServedFromCache(t *testing.T) {
	c := newMemListCache()
	repo := newMemTaskRepo()
	svc := NewTaskService(repo, c, nil)
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", "one", "")
	require.NoError(t, err)

	first, err := svc.List(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A row written behind the service's back stays invisible while the
	// cached entry is live.
	sneaky := entity.Task{OwnerID: "owner-1", Title: "sneaky"}
	require.NoError(t, repo.Create(ctx, &sneaky))

	second, err := svc.List(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, task.ID, second[0].ID)
}

func TestTaskWritesInvalidateOwnCacheOnly(t *testing.T) {
	c := newMemListCache()
	svc := NewTaskService(newMemTaskRepo(), c, nil)
	ctx := context.Background()

	mine, err := svc.Create(ctx, "owner-1", "mine", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "owner-2", "other", "")
	require.NoError(t, err)

	newTitle := "renamed"
	mutations := []struct {
		name string
		op   func() error
	}{
		{"create", func() error { _, err := svc.Create(ctx, "owner-1", "more", ""); return err }},
		{"update", func() error { _, err := svc.Update(ctx, mine.ID, "owner-1", UpdateInput{Title: &newTitle}); return err }},
		{"toggle", func() error { _, err := svc.Toggle(ctx, mine.ID, "owner-1"); return err }},
		{"delete", func() error { return svc.Delete(ctx, mine.ID, "owner-1") }},
	}
	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			// Warm both owners' entries.
			_, err := svc.List(ctx, "owner-1")
			require.NoError(t, err)
			_, err = svc.List(ctx, "owner-2")
			require.NoError(t, err)

			require.NoError(t, m.op())

			_, ok := c.cached("owner-1")
			assert.False(t, ok, "write must drop the writer's cached list")
			_, ok = c.cached("owner-2")
			assert.True(t, ok, "write must leave other owners' entries alone")
		})
	}
	assert.Zero(t, c.invalidations["owner-2"])
}

func TestTaskFailedWritesLeaveCacheAlone(t *testing.T) {
	c := newMemListCache()
	svc := NewTaskService(newMemTaskRepo(), c, nil)
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", "mine", "")
	require.NoError(t, err)
	_, err = svc.List(ctx, "owner-1")
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, task.ID, "owner-2")
	require.ErrorIs(t, err, ErrTaskForbidden)
	err = svc.Delete(ctx, task.ID+999, "owner-1")
	require.ErrorIs(t, err, ErrTaskNotFound)

	_, ok := c.cached("owner-1")
	assert.True(t, ok, "rejected writes must not invalidate")
}

func TestTaskIDsNotReused(t *testing.T) {
	svc := newTaskService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "owner-1", "one", "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, first.ID, "owner-1"))

	second, err := svc.Create(ctx, "owner-1", "two", "")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}
