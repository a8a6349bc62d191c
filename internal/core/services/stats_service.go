package services

import (
	"context"
	"time"

	"github.com/mfiorvanti/stride/internal/core/analytics"
	"github.com/mfiorvanti/stride/internal/core/domain"
)

// StatsService is the boundary between storage and the pure analytics
// engine: it fetches authorization-filtered event snapshots, hands them to
// the engine, and maps the results into API-facing views.
type StatsService struct {
	habitRepo      domain.HabitRepository
	completionRepo domain.CompletionRepository
	goalRepo       domain.GoalRepository
	entryRepo      domain.ProgressEntryRepository
}

func NewStatsService(
	habitRepo domain.HabitRepository,
	completionRepo domain.CompletionRepository,
	goalRepo domain.GoalRepository,
	entryRepo domain.ProgressEntryRepository,
) *StatsService {
	return &StatsService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		goalRepo:       goalRepo,
		entryRepo:      entryRepo,
	}
}

func (s *StatsService) HabitStreak(ctx context.Context, habitID, userID string) (*domain.HabitStreakView, error) {
	habit, err := s.ownedHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	completions, err := s.completionRepo.ListByHabitID(ctx, habitID)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(completions))
	var last *time.Time
	for _, c := range completions {
		dates = append(dates, c.CompletionDate)
		if last == nil || c.CompletionDate.After(*last) {
			d := c.CompletionDate
			last = &d
		}
	}

	streak := analytics.ComputeStreak(dates, time.Now())

	return domain.NewHabitStreakView(habit.ID, streak, len(completions), last), nil
}

// HabitCalendar aggregates a month of completions into a heatmap. Zero
// year/month default to the current UTC date.
func (s *StatsService) HabitCalendar(ctx context.Context, habitID, userID string, year int, month time.Month) (*domain.HabitCalendarView, error) {
	habit, err := s.ownedHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	completions, err := s.completionRepo.ListByHabitIDInRange(ctx, habitID, first, last.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		dates = append(dates, c.CompletionDate)
	}

	days := analytics.ComputeCalendar(dates, year, month)

	return domain.NewHabitCalendarView(habit.ID, year, month, days), nil
}

// GoalProgress computes totals, rate, streak and, for target-based goals
// with a deadline, the completion projection.
func (s *StatsService) GoalProgress(ctx context.Context, goalID, userID string) (*domain.GoalProgressView, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}

	entries, err := s.entryRepo.ListByGoalID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	events := make([]analytics.ValuedEvent, 0, len(entries))
	for _, e := range entries {
		events = append(events, analytics.ValuedEvent{Date: e.EntryDate, Value: e.Value})
	}

	// The projection only applies to the target-based variant; continuous
	// counters get totals and streak with no target to extrapolate toward.
	var (
		target   *float64
		deadline *time.Time
	)
	if goal.IsTargetBased() {
		target = goal.TargetValue
		deadline = goal.Deadline
	}

	stats := analytics.ComputeProgress(events, target, deadline, time.Now())

	return domain.NewGoalProgressView(goal.ID, stats), nil
}

func (s *StatsService) ownedHabit(ctx context.Context, habitID, userID string) (*domain.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}
