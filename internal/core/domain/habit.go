package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitTitleEmpty    = errors.New("habit title cannot be empty")
	ErrHabitTitleTooLong  = errors.New("habit title is too long (max 255 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrInvalidFrequency   = errors.New("invalid frequency type")
	ErrInvalidWeekdays    = errors.New("invalid weekdays (must be 0-6)")
	ErrInvalidInterval    = errors.New("interval cannot be negative")
	ErrHabitArchived      = errors.New("cannot update an archived habit")
)

const (
	HabitFreqDaily        = "daily"
	HabitFreqSpecificDays = "specific_days"
	HabitFreqInterval     = "interval"
	MaxHabitTitleLen      = 255
)

type Habit struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Title         string     `json:"title"`
	CategoryID    *string    `json:"category_id,omitempty"`
	FrequencyType string     `json:"frequency"`
	Weekdays      []int      `json:"weekdays,omitempty"`
	Interval      int        `json:"interval,omitempty"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ArchivedAt    *time.Time `json:"archived_at,omitempty"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

func normalizeWeekdays(days []int) []int {
	if len(days) == 0 {
		return nil
	}

	seen := make(map[int]bool)
	var unique []int
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			unique = append(unique, d)
		}
	}

	sort.Ints(unique)
	return unique
}

func validateHabit(title string, interval int, weekdays []int) (string, int, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", 0, ErrHabitTitleEmpty
	}
	if len(trimmed) > MaxHabitTitleLen {
		return "", 0, ErrHabitTitleTooLong
	}

	if interval < 0 {
		return "", 0, ErrInvalidInterval
	}

	for _, day := range weekdays {
		if day < 0 || day > 6 {
			return "", 0, ErrInvalidWeekdays
		}
	}

	safeInterval := interval
	if safeInterval < 1 {
		safeInterval = 1
	}

	return trimmed, safeInterval, nil
}

// frequencyFor derives the frequency tag from the schedule configuration:
// explicit weekdays win, an interval above one means every-N-days, anything
// else is daily.
func frequencyFor(weekdays []int, interval int) string {
	if len(weekdays) > 0 {
		return HabitFreqSpecificDays
	}
	if interval > 1 {
		return HabitFreqInterval
	}
	return HabitFreqDaily
}

func NewHabit(userID, title string, categoryID *string, interval int, weekdays []int) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}

	cleanTitle, safeInterval, err := validateHabit(title, interval, weekdays)
	if err != nil {
		return nil, err
	}

	safeWeekdays := normalizeWeekdays(weekdays)
	now := time.Now().UTC()

	return &Habit{
		ID:            uuid.New().String(),
		UserID:        userID,
		Title:         cleanTitle,
		CategoryID:    categoryID,
		FrequencyType: frequencyFor(safeWeekdays, safeInterval),
		Weekdays:      safeWeekdays,
		Interval:      safeInterval,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (h *Habit) Update(title string, categoryID *string, interval int, weekdays []int) error {
	if h.ArchivedAt != nil {
		return ErrHabitArchived
	}

	cleanTitle, safeInterval, err := validateHabit(title, interval, weekdays)
	if err != nil {
		return err
	}

	safeWeekdays := normalizeWeekdays(weekdays)

	h.Title = cleanTitle
	h.CategoryID = categoryID
	h.Weekdays = safeWeekdays
	h.Interval = safeInterval
	h.FrequencyType = frequencyFor(safeWeekdays, safeInterval)
	h.UpdatedAt = time.Now().UTC()

	return nil
}

// UpdateStreak stores engine-computed streaks so list views don't have to
// recompute them per request.
func (h *Habit) UpdateStreak(current, longest int) {
	h.CurrentStreak = current
	h.LongestStreak = longest
	h.UpdatedAt = time.Now().UTC()
}

func (h *Habit) Archive() {
	if h.ArchivedAt != nil {
		return
	}

	now := time.Now().UTC()
	h.ArchivedAt = &now
	h.UpdatedAt = now
}

func (h *Habit) Restore() {
	if h.ArchivedAt == nil {
		return
	}
	h.ArchivedAt = nil
	h.UpdatedAt = time.Now().UTC()
}
