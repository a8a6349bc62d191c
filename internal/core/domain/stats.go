package domain

import (
	"time"

	"github.com/mfiorvanti/stride/internal/core/analytics"
)

// API-facing analytics shapes. Each view is built by an explicit, total
// mapping from engine results: every field's presence is declared here, not
// inferred from serialization behavior.

type HabitStreakView struct {
	HabitID          string     `json:"habit_id"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	TotalCompletions int        `json:"total_completions"`
	LastCompletion   *time.Time `json:"last_completion"`
}

type HabitCalendarView struct {
	HabitID      string         `json:"habit_id"`
	Year         int            `json:"year"`
	Month        int            `json:"month"`
	CalendarData map[string]int `json:"calendar_data"`
}

type ProjectionView struct {
	Date          string `json:"date"`
	DaysRemaining int    `json:"days_remaining"`
	Confidence    string `json:"confidence"`
}

type GoalProgressView struct {
	GoalID        string          `json:"goal_id"`
	TotalProgress float64         `json:"total_progress"`
	AveragePerDay float64         `json:"average_per_day"`
	DaysActive    int             `json:"days_active"`
	CurrentStreak int             `json:"current_streak"`
	Projection    *ProjectionView `json:"projected_completion,omitempty"`
}

func NewHabitStreakView(habitID string, streak analytics.StreakResult, total int, last *time.Time) *HabitStreakView {
	return &HabitStreakView{
		HabitID:          habitID,
		CurrentStreak:    streak.Current,
		LongestStreak:    streak.Longest,
		TotalCompletions: total,
		LastCompletion:   last,
	}
}

func NewHabitCalendarView(habitID string, year int, month time.Month, days map[string]int) *HabitCalendarView {
	return &HabitCalendarView{
		HabitID:      habitID,
		Year:         year,
		Month:        int(month),
		CalendarData: days,
	}
}

func NewGoalProgressView(goalID string, stats analytics.ProgressStats) *GoalProgressView {
	view := &GoalProgressView{
		GoalID:        goalID,
		TotalProgress: stats.Total,
		AveragePerDay: stats.AveragePerDay,
		DaysActive:    stats.DaysActive,
		CurrentStreak: stats.CurrentStreak,
	}

	if stats.Projection != nil {
		view.Projection = &ProjectionView{
			Date:          stats.Projection.Date.Format(analytics.DayFormat),
			DaysRemaining: stats.Projection.DaysRemaining,
			Confidence:    string(stats.Projection.Confidence),
		}
	}

	return view
}
