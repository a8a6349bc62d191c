package workers

import (
	"context"
	"log"
	"time"

	"github.com/mfiorvanti/stride/internal/core/analytics"
	"github.com/mfiorvanti/stride/internal/core/domain"
)

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type CompletionRepository interface {
	ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error)
}

type StreakJob struct {
	HabitID string
}

// StreakWorker recomputes a habit's cached streaks off the request path.
// Completion writes enqueue a job; the worker fetches the full completion
// history and runs the streak engine over it.
type StreakWorker struct {
	habitRepo      HabitRepository
	completionRepo CompletionRepository
	jobs           chan StreakJob
}

func NewStreakWorker(hRepo HabitRepository, cRepo CompletionRepository) *StreakWorker {
	return &StreakWorker{
		habitRepo:      hRepo,
		completionRepo: cRepo,
		jobs:           make(chan StreakJob, 100),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Streak worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Streak worker shutting down...")
				return
			}
		}
	}()
}

func (w *StreakWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- StreakJob{HabitID: habitID}:
	default:
		log.Printf("Streak worker queue full! Dropping job for habit %s", habitID)
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	habit, err := w.habitRepo.GetByID(ctx, job.HabitID)
	if err != nil {
		log.Printf("Worker error fetching habit %s: %v", job.HabitID, err)
		return
	}

	completions, err := w.completionRepo.ListByHabitID(ctx, job.HabitID)
	if err != nil {
		log.Printf("Worker error fetching completions for %s: %v", job.HabitID, err)
		return
	}

	dates := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		dates = append(dates, c.CompletionDate)
	}

	streak := analytics.ComputeStreak(dates, time.Now())

	if habit.CurrentStreak == streak.Current && habit.LongestStreak == streak.Longest {
		return
	}

	if err := w.habitRepo.UpdateStreaks(ctx, habit.ID, streak.Current, streak.Longest); err != nil {
		log.Printf("Worker failed to update streaks for %s: %v", habit.ID, err)
		return
	}

	log.Printf("Streaks updated for %s: current=%d, longest=%d", habit.Title, streak.Current, streak.Longest)
}
