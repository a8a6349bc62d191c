package domain

import (
	"errors"
	"strings"
	"time"
)

const MaxNoteLen = 1000

var ErrNoteTooLong = errors.New("note is too long (max 1000 chars)")

// Completion is a single habit check-in on a calendar day. The time of day
// is preserved as delivered; the analytics engine buckets to UTC days.
type Completion struct {
	ID      string `json:"id" db:"id"`
	HabitID string `json:"habit_id" db:"habit_id"`
	UserID  string `json:"user_id" db:"user_id"`

	CompletionDate time.Time `json:"completion_date" db:"completion_date"`
	Note           string    `json:"note,omitempty" db:"note"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewCompletion(habitID, userID string, date time.Time, note string) *Completion {
	now := time.Now().UTC()

	return &Completion{
		HabitID:        habitID,
		UserID:         userID,
		CompletionDate: date.UTC(),
		Note:           note,

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Completion) Validate() error {
	if strings.TrimSpace(c.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user_id is required")
	}
	if c.CompletionDate.IsZero() {
		return errors.New("completion_date is required")
	}
	if len(c.Note) > MaxNoteLen {
		return ErrNoteTooLong
	}
	return nil
}
