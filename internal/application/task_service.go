package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/taskdeck/taskdeck/internal/domain/entity"
	repo "github.com/taskdeck/taskdeck/internal/domain/repository"
)

// ListCache caches each owner's task list. GetList answers nil on a miss;
// Invalidate drops exactly one owner's entry.
type ListCache interface {
	GetList(ctx context.Context, ownerID string) ([]entity.Task, error)
	SetList(ctx context.Context, ownerID string, list []entity.Task) error
	Invalidate(ctx context.Context, ownerID string) error
}

const (
	TitleMaxLen       = 200
	DescriptionMaxLen = 2000
)

var (
	// ErrTaskNotFound means no task with that id exists at all.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskForbidden means the task exists but belongs to another owner.
	// Existence leaks less than ownership, so the two stay distinct.
	ErrTaskForbidden = errors.New("task belongs to another user")
	ErrEmptyTitle    = errors.New("title must not be empty")
	ErrTitleTooLong  = fmt.Errorf("title must be at most %d characters", TitleMaxLen)
	ErrDescTooLong   = fmt.Errorf("description must be at most %d characters", DescriptionMaxLen)
)

// IsValidationError reports whether err is a task input validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyTitle) || errors.Is(err, ErrTitleTooLong) || errors.Is(err, ErrDescTooLong)
}

// TaskService owns all task operations. Every method takes the owner id
// resolved from the request token; no owner identifier ever comes from the
// request payload. If cache is nil, caching is disabled.
type TaskService struct {
	Repo   repo.TaskRepository
	Cache  ListCache
	Logger *logrus.Logger
	sf     singleflight.Group
}

func NewTaskService(r repo.TaskRepository, c ListCache, logger *logrus.Logger) *TaskService {
	return &TaskService{Repo: r, Cache: c, Logger: logger}
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > TitleMaxLen {
		return "", ErrTitleTooLong
	}
	return title, nil
}

func validateDescription(desc string) error {
	if utf8.RuneCountInString(desc) > DescriptionMaxLen {
		return ErrDescTooLong
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, ownerID, title, description string) (*entity.Task, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	t := &entity.Task{OwnerID: ownerID, Title: title, Description: description}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	return t, nil
}

// List returns the owner's tasks in creation order; an owner with no tasks
// gets an empty slice, not an error.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]entity.Task, error) {
	if s.Cache == nil {
		return s.Repo.ListByOwner(ctx, ownerID)
	}
	v, err, _ := s.sf.Do("list:"+ownerID, func() (interface{}, error) {
		if list, err := s.Cache.GetList(ctx, ownerID); err == nil && list != nil {
			return list, nil
		}
		list, err := s.Repo.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if cErr := s.Cache.SetList(ctx, ownerID, list); cErr != nil && s.Logger != nil {
			s.Logger.WithError(cErr).Warn("task list cache write failed")
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]entity.Task), nil
}

func (s *TaskService) Get(ctx context.Context, id int64, ownerID string) (*entity.Task, error) {
	return s.authorize(ctx, id, ownerID)
}

// UpdateInput carries optional field changes; nil leaves a field untouched.
type UpdateInput struct {
	Title       *string
	Description *string
}

func (s *TaskService) Update(ctx context.Context, id int64, ownerID string, in UpdateInput) (*entity.Task, error) {
	if _, err := s.authorize(ctx, id, ownerID); err != nil {
		return nil, err
	}
	patch := repo.TaskPatch{Description: in.Description}
	if in.Title != nil {
		title, err := validateTitle(*in.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if in.Description != nil {
		if err := validateDescription(*in.Description); err != nil {
			return nil, err
		}
	}
	t, err := s.Repo.Update(ctx, id, ownerID, patch)
	if err != nil {
		// The row vanished between the ownership check and the write.
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64, ownerID string) error {
	if _, err := s.authorize(ctx, id, ownerID); err != nil {
		return err
	}
	deleted, err := s.Repo.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTaskNotFound
	}
	s.invalidate(ctx, ownerID)
	return nil
}

// Toggle flips completion between the task's two states. Applying it twice
// returns the task to its original state.
func (s *TaskService) Toggle(ctx context.Context, id int64, ownerID string) (*entity.Task, error) {
	if _, err := s.authorize(ctx, id, ownerID); err != nil {
		return nil, err
	}
	t, err := s.Repo.Toggle(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	return t, nil
}

// authorize loads the task by id alone and checks ownership, so an absent id
// answers not-found while someone else's task answers forbidden.
func (s *TaskService) authorize(ctx context.Context, id int64, ownerID string) (*entity.Task, error) {
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if t.OwnerID != ownerID {
		return nil, ErrTaskForbidden
	}
	return t, nil
}

func (s *TaskService) invalidate(ctx context.Context, ownerID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, ownerID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("owner_id", ownerID).Warn("task list cache invalidation failed")
	}
}
