package entity

import "time"

// Task belongs to exactly one owner. OwnerID is set once at creation from
// the resolved identity of the caller, never from client input, and every
// query and mutation is scoped by it.
type Task struct {
	ID          int64
	OwnerID     string
	Title       string
	Description string
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
