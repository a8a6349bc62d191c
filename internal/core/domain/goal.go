package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalTitleEmpty     = errors.New("goal title cannot be empty")
	ErrGoalTitleTooLong   = errors.New("goal title is too long (max 255 chars)")
	ErrGoalUnitEmpty      = errors.New("goal unit cannot be empty")
	ErrGoalInvalidUserID  = errors.New("invalid user id")
	ErrInvalidGoalType    = errors.New("invalid goal type")
	ErrInvalidGoalStatus  = errors.New("invalid goal status")
	ErrInvalidTargetValue = errors.New("target value must be positive")
	ErrMissingDeadline    = errors.New("target-based goal requires a deadline")
	ErrGoalCompleted      = errors.New("cannot update a completed goal")
)

const (
	// GoalTypeTargetBased accumulates toward a target value by a deadline
	// and is the only variant the projection applies to.
	GoalTypeTargetBased = "TARGET_BASED"
	// GoalTypeContinuousCounter counts indefinitely from a start date.
	GoalTypeContinuousCounter = "CONTINUOUS_COUNTER"

	GoalStatusActive    = "ACTIVE"
	GoalStatusCompleted = "COMPLETED"

	MaxGoalTitleLen = 255
)

// Goal is a tagged variant: Type selects which of the optional fields are
// meaningful. TargetValue and Deadline are set only for target-based goals,
// StartDate only for continuous counters. CurrentValue caches the sum of
// all progress entries and is maintained by the service layer.
type Goal struct {
	ID           string     `json:"id" db:"id"`
	UserID       string     `json:"user_id" db:"user_id"`
	Title        string     `json:"title" db:"title"`
	Type         string     `json:"goal_type" db:"goal_type"`
	Unit         string     `json:"unit" db:"unit"`
	Status       string     `json:"status" db:"status"`
	TargetValue  *float64   `json:"target_value,omitempty" db:"target_value"`
	Deadline     *time.Time `json:"deadline,omitempty" db:"deadline"`
	StartDate    *time.Time `json:"start_date,omitempty" db:"start_date"`
	CurrentValue float64    `json:"current_value" db:"current_value"`
	Version      int        `json:"version" db:"version"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func validateGoalCommon(userID, title, unit string) (string, string, error) {
	if userID == "" {
		return "", "", ErrGoalInvalidUserID
	}

	cleanTitle := strings.TrimSpace(title)
	if cleanTitle == "" {
		return "", "", ErrGoalTitleEmpty
	}
	if len(cleanTitle) > MaxGoalTitleLen {
		return "", "", ErrGoalTitleTooLong
	}

	cleanUnit := strings.TrimSpace(unit)
	if cleanUnit == "" {
		return "", "", ErrGoalUnitEmpty
	}

	return cleanTitle, cleanUnit, nil
}

func NewTargetBasedGoal(userID, title, unit string, targetValue float64, deadline time.Time) (*Goal, error) {
	cleanTitle, cleanUnit, err := validateGoalCommon(userID, title, unit)
	if err != nil {
		return nil, err
	}

	if targetValue <= 0 {
		return nil, ErrInvalidTargetValue
	}
	if deadline.IsZero() {
		return nil, ErrMissingDeadline
	}

	now := time.Now().UTC()
	dl := deadline.UTC()

	return &Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       cleanTitle,
		Type:        GoalTypeTargetBased,
		Unit:        cleanUnit,
		Status:      GoalStatusActive,
		TargetValue: &targetValue,
		Deadline:    &dl,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func NewContinuousCounterGoal(userID, title, unit string, startDate time.Time) (*Goal, error) {
	cleanTitle, cleanUnit, err := validateGoalCommon(userID, title, unit)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	start := startDate.UTC()
	if startDate.IsZero() {
		start = now
	}

	return &Goal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     cleanTitle,
		Type:      GoalTypeContinuousCounter,
		Unit:      cleanUnit,
		Status:    GoalStatusActive,
		StartDate: &start,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (g *Goal) IsTargetBased() bool {
	return g.Type == GoalTypeTargetBased
}

func (g *Goal) Rename(title string) error {
	cleanTitle := strings.TrimSpace(title)
	if cleanTitle == "" {
		return ErrGoalTitleEmpty
	}
	if len(cleanTitle) > MaxGoalTitleLen {
		return ErrGoalTitleTooLong
	}

	g.Title = cleanTitle
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// Retarget adjusts the target and/or deadline of a target-based goal.
// Continuous counters have neither.
func (g *Goal) Retarget(targetValue *float64, deadline *time.Time) error {
	if !g.IsTargetBased() {
		return ErrInvalidGoalType
	}

	if targetValue != nil {
		if *targetValue <= 0 {
			return ErrInvalidTargetValue
		}
		g.TargetValue = targetValue
	}

	if deadline != nil {
		dl := deadline.UTC()
		g.Deadline = &dl
	}

	g.UpdatedAt = time.Now().UTC()
	return nil
}

// ApplyProgress replaces the cached current value with a freshly computed
// total and auto-completes target-based goals that reached their target.
// Completed goals stay completed even if entries are later removed;
// reactivation is an explicit status change.
func (g *Goal) ApplyProgress(total float64) {
	g.CurrentValue = total
	g.UpdatedAt = time.Now().UTC()

	if g.IsTargetBased() && g.Status == GoalStatusActive &&
		g.TargetValue != nil && total >= *g.TargetValue {
		g.Status = GoalStatusCompleted
	}
}

func (g *Goal) SetStatus(status string) error {
	if status != GoalStatusActive && status != GoalStatusCompleted {
		return ErrInvalidGoalStatus
	}
	g.Status = status
	g.UpdatedAt = time.Now().UTC()
	return nil
}
