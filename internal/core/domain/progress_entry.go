package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

var ErrInvalidEntryValue = errors.New("entry value must be a non-negative finite number")

// ProgressEntry is a dated, valued event recording incremental advancement
// toward a goal.
type ProgressEntry struct {
	ID     string `json:"id" db:"id"`
	GoalID string `json:"goal_id" db:"goal_id"`
	UserID string `json:"user_id" db:"user_id"`

	EntryDate time.Time `json:"entry_date" db:"entry_date"`
	Value     float64   `json:"value" db:"value"`
	Note      string    `json:"note,omitempty" db:"note"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewProgressEntry(goalID, userID string, date time.Time, value float64, note string) *ProgressEntry {
	now := time.Now().UTC()

	if date.IsZero() {
		date = now
	}

	return &ProgressEntry{
		GoalID:    goalID,
		UserID:    userID,
		EntryDate: date.UTC(),
		Value:     value,
		Note:      note,

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (e *ProgressEntry) Validate() error {
	if strings.TrimSpace(e.GoalID) == "" {
		return errors.New("goal_id is required")
	}
	if strings.TrimSpace(e.UserID) == "" {
		return errors.New("user_id is required")
	}
	if e.Value < 0 || math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
		return ErrInvalidEntryValue
	}
	if len(e.Note) > MaxNoteLen {
		return ErrNoteTooLong
	}
	return nil
}
