package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCompletionNotFound = errors.New("habit completion not found")
	ErrCompletionConflict = errors.New("habit completion version conflict")
)

type CompletionRepository interface {
	// Create persists a new check-in.
	Create(ctx context.Context, completion *Completion) error

	// Update modifies an existing check-in. Implementations must handle
	// optimistic locking (version check) to prevent data races.
	Update(ctx context.Context, completion *Completion) error

	// Delete performs a soft delete. It requires userID to ensure the user
	// actually owns the completion being deleted.
	Delete(ctx context.Context, id string, userID string) error

	// GetByID retrieves a single active (non-deleted) completion.
	GetByID(ctx context.Context, id string) (*Completion, error)

	// ListByHabitID retrieves every active completion for a habit, most
	// recent first. This feeds the streak computation.
	ListByHabitID(ctx context.Context, habitID string) ([]*Completion, error)

	// ListByHabitIDInRange retrieves completions within [from, to]
	// inclusive. This feeds calendar views.
	ListByHabitIDInRange(ctx context.Context, habitID string, from, to time.Time) ([]*Completion, error)

	// GetChanges returns all changes (creations, updates, soft deletes)
	// after the 'since' timestamp, for offline-first synchronization.
	GetChanges(ctx context.Context, userID string, since time.Time) ([]*Completion, error)
}
