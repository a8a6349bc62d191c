package services

import (
	"context"
	"time"

	"github.com/mfiorvanti/stride/internal/core/domain"
	"github.com/mfiorvanti/stride/internal/core/workers"
)

type CompletionService struct {
	repo      domain.CompletionRepository
	habitRepo domain.HabitRepository
	worker    *workers.StreakWorker
}

func NewCompletionService(repo domain.CompletionRepository, habitRepo domain.HabitRepository, worker *workers.StreakWorker) *CompletionService {
	return &CompletionService{
		repo:      repo,
		habitRepo: habitRepo,
		worker:    worker,
	}
}

type CreateCompletionInput struct {
	HabitID        string
	UserID         string
	CompletionDate time.Time
	Note           string
}

type UpdateCompletionInput struct {
	ID             string
	UserID         string
	CompletionDate time.Time
	Note           string
	Version        int
}

func (s *CompletionService) Create(ctx context.Context, input CreateCompletionInput) (*domain.Completion, error) {
	completion := domain.NewCompletion(input.HabitID, input.UserID, input.CompletionDate, input.Note)

	if err := completion.Validate(); err != nil {
		return nil, err
	}

	habit, err := s.habitRepo.GetByID(ctx, completion.HabitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != completion.UserID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.repo.Create(ctx, completion); err != nil {
		return nil, err
	}

	s.worker.Enqueue(completion.HabitID)

	return completion, nil
}

func (s *CompletionService) Update(ctx context.Context, input UpdateCompletionInput) (*domain.Completion, error) {
	existing, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && existing.Version != input.Version {
		return nil, domain.ErrCompletionConflict
	}

	if !input.CompletionDate.IsZero() {
		existing.CompletionDate = input.CompletionDate.UTC()
	}
	existing.Note = input.Note

	existing.Version++
	existing.UpdatedAt = time.Now().UTC()

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.worker.Enqueue(existing.HabitID)

	return existing, nil
}

func (s *CompletionService) GetByID(ctx context.Context, id, userID string) (*domain.Completion, error) {
	completion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if completion.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return completion, nil
}

func (s *CompletionService) ListByHabitID(ctx context.Context, habitID, userID string, from, to time.Time) ([]*domain.Completion, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	if from.IsZero() && to.IsZero() {
		return s.repo.ListByHabitID(ctx, habitID)
	}
	if to.IsZero() {
		to = time.Now().UTC()
	}

	return s.repo.ListByHabitIDInRange(ctx, habitID, from, to)
}

func (s *CompletionService) Delete(ctx context.Context, id, userID string) error {
	completion, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	habitID := completion.HabitID

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.worker.Enqueue(habitID)

	return nil
}

func (s *CompletionService) GetDelta(ctx context.Context, userID string, since time.Time) ([]*domain.Completion, error) {
	return s.repo.GetChanges(ctx, userID, since)
}
