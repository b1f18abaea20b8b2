package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/taskdeck/internal/domain/entity"
	"github.com/taskdeck/taskdeck/internal/domain/repository"
)

const taskColumns = "id, owner_id, title, description, is_completed, created_at, updated_at"

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (owner_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, is_completed, created_at, updated_at
	`, t.OwnerID, t.Title, t.Description)

	return row.Scan(&t.ID, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt)
}

// GetByID loads a task by id alone. Owner checks happen in the service so an
// absent task and a foreign-owned one surface as different failures.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	t := &entity.Task{}
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	if err := scanTask(row, t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListByOwner returns the owner's tasks in creation order. Ids are assigned
// from a sequence, so ordering by id is stable and deterministic.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE owner_id = $1 ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]entity.Task, 0)
	for rows.Next() {
		var t entity.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update changes only the supplied fields. The statement matches both id and
// owner, so concurrent writes serialize on the row and a row owned by someone
// else is never touched.
func (r *TaskRepository) Update(ctx context.Context, id int64, ownerID string, patch repository.TaskPatch) (*entity.Task, error) {
	t := &entity.Task{}
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = COALESCE($3, title),
		    description = COALESCE($4, description),
		    updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING `+taskColumns+`
	`, id, ownerID, patch.Title, patch.Description)

	if err := scanTask(row, t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Delete removes the row permanently. Ids come from a sequence and are never
// reassigned.
func (r *TaskRepository) Delete(ctx context.Context, id int64, ownerID string) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// Toggle flips is_completed in a single read-modify-write statement.
func (r *TaskRepository) Toggle(ctx context.Context, id int64, ownerID string) (*entity.Task, error) {
	t := &entity.Task{}
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET is_completed = NOT is_completed, updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING `+taskColumns+`
	`, id, ownerID)

	if err := scanTask(row, t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func scanTask(row pgx.Row, t *entity.Task) error {
	return row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt)
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
