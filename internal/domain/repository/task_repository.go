package repository

import (
	"context"

	"github.com/taskdeck/taskdeck/internal/domain/entity"
)

// TaskPatch carries optional field updates; nil means leave unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
}

// TaskRepository defines the interface for task persistence. GetByID loads a
// task regardless of owner so the service can tell absent from foreign-owned;
// all mutations are scoped by both id and owner and report whether a row
// matched, which serializes concurrent writes at the storage layer.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error)
	Update(ctx context.Context, id int64, ownerID string, patch TaskPatch) (*entity.Task, error)
	Delete(ctx context.Context, id int64, ownerID string) (bool, error)
	Toggle(ctx context.Context, id int64, ownerID string) (*entity.Task, error)
}
