package domain

import (
	"context"
	"errors"
)

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrGoalConflict  = errors.New("goal version conflict")
	ErrEntryNotFound = errors.New("progress entry not found")
	ErrEntryConflict = errors.New("progress entry version conflict")
)

// GoalFilter narrows goal listings. Zero values match everything.
type GoalFilter struct {
	Status string
	Type   string
}

type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) error

	GetByID(ctx context.Context, id string) (*Goal, error)

	ListByUserID(ctx context.Context, userID string, filter GoalFilter) ([]*Goal, error)

	// Update modifies an existing goal with an optimistic-lock version check.
	Update(ctx context.Context, goal *Goal) error

	// Delete soft-deletes a goal and cascades to its progress entries.
	Delete(ctx context.Context, id string) error
}

type ProgressEntryRepository interface {
	Create(ctx context.Context, entry *ProgressEntry) error

	Update(ctx context.Context, entry *ProgressEntry) error

	// Delete soft-deletes an entry, checking ownership via userID.
	Delete(ctx context.Context, id string, userID string) error

	GetByID(ctx context.Context, id string) (*ProgressEntry, error)

	// ListByGoalID retrieves every active entry for a goal in ascending
	// entry-date order. This feeds totals, projections and recalculation.
	ListByGoalID(ctx context.Context, goalID string) ([]*ProgressEntry, error)
}
