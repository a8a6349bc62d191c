package services

import (
	"context"
	"log"
	"time"

	"github.com/mfiorvanti/stride/internal/core/domain"
)

type EntryService struct {
	repo     domain.ProgressEntryRepository
	goalRepo domain.GoalRepository
	goals    *GoalService
}

func NewEntryService(repo domain.ProgressEntryRepository, goalRepo domain.GoalRepository, goals *GoalService) *EntryService {
	return &EntryService{
		repo:     repo,
		goalRepo: goalRepo,
		goals:    goals,
	}
}

type CreateEntryInput struct {
	GoalID    string
	UserID    string
	EntryDate time.Time
	Value     float64
	Note      string
}

type UpdateEntryInput struct {
	ID        string
	GoalID    string
	UserID    string
	EntryDate time.Time
	Value     *float64
	Note      string
	Version   int
}

func (s *EntryService) Create(ctx context.Context, input CreateEntryInput) (*domain.ProgressEntry, error) {
	entry := domain.NewProgressEntry(input.GoalID, input.UserID, input.EntryDate, input.Value, input.Note)

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	goal, err := s.goalRepo.GetByID(ctx, entry.GoalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != entry.UserID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.recalculate(ctx, entry.GoalID)

	return entry, nil
}

func (s *EntryService) Update(ctx context.Context, input UpdateEntryInput) (*domain.ProgressEntry, error) {
	existing, err := s.getOwned(ctx, input.ID, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && existing.Version != input.Version {
		return nil, domain.ErrEntryConflict
	}

	if !input.EntryDate.IsZero() {
		existing.EntryDate = input.EntryDate.UTC()
	}
	if input.Value != nil {
		existing.Value = *input.Value
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

	s.recalculate(ctx, existing.GoalID)

	return existing, nil
}

func (s *EntryService) ListByGoalID(ctx context.Context, goalID, userID string) ([]*domain.ProgressEntry, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	return s.repo.ListByGoalID(ctx, goalID)
}

func (s *EntryService) Delete(ctx context.Context, id, goalID, userID string) error {
	entry, err := s.getOwned(ctx, id, goalID, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, entry.ID, userID); err != nil {
		return err
	}

	s.recalculate(ctx, entry.GoalID)

	return nil
}

func (s *EntryService) getOwned(ctx context.Context, id, goalID, userID string) (*domain.ProgressEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID || entry.GoalID != goalID {
		return nil, domain.ErrEntryNotFound
	}
	return entry, nil
}

// recalculate keeps the goal's cached total in sync after a mutation.
// A failed recalc leaves a stale cache, not a lost entry, so it logs
// instead of failing the request.
func (s *EntryService) recalculate(ctx context.Context, goalID string) {
	if _, err := s.goals.Recalculate(ctx, goalID); err != nil {
		log.Printf("Failed to recalculate goal %s: %v", goalID, err)
	}
}
