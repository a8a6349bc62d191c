package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mfiorvanti/stride/internal/core/domain"
)

type GoalService struct {
	repo      domain.GoalRepository
	entryRepo domain.ProgressEntryRepository
}

func NewGoalService(repo domain.GoalRepository, entryRepo domain.ProgressEntryRepository) *GoalService {
	return &GoalService{
		repo:      repo,
		entryRepo: entryRepo,
	}
}

type CreateGoalInput struct {
	UserID      string
	Type        string
	Title       string
	Unit        string
	TargetValue float64
	Deadline    time.Time
	StartDate   time.Time
}

type UpdateGoalInput struct {
	ID          string
	UserID      string
	Title       string
	TargetValue *float64
	Deadline    *time.Time
	Status      string
	Version     int
}

// Create constructs the variant named by input.Type; the two cases are
// matched exhaustively so an unknown tag is rejected up front.
func (s *GoalService) Create(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	var (
		goal *domain.Goal
		err  error
	)

	switch input.Type {
	case domain.GoalTypeTargetBased:
		goal, err = domain.NewTargetBasedGoal(input.UserID, input.Title, input.Unit, input.TargetValue, input.Deadline)
	case domain.GoalTypeContinuousCounter:
		goal, err = domain.NewContinuousCounterGoal(input.UserID, input.Title, input.Unit, input.StartDate)
	default:
		return nil, domain.ErrInvalidGoalType
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) GetByID(ctx context.Context, id, userID string) (*domain.Goal, error) {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	return goal, nil
}

func (s *GoalService) ListByUserID(ctx context.Context, userID string, filter domain.GoalFilter) ([]*domain.Goal, error) {
	return s.repo.ListByUserID(ctx, userID, filter)
}

func (s *GoalService) Update(ctx context.Context, input UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && goal.Version != input.Version {
		return nil, fmt.Errorf("%w: client v%d vs server v%d", domain.ErrGoalConflict, input.Version, goal.Version)
	}

	if input.Title != "" {
		if err := goal.Rename(input.Title); err != nil {
			return nil, err
		}
	}

	if input.TargetValue != nil || input.Deadline != nil {
		if err := goal.Retarget(input.TargetValue, input.Deadline); err != nil {
			return nil, err
		}
	}

	if input.Status != "" {
		if err := goal.SetStatus(input.Status); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// Recalculate re-sums all progress entries into the goal's cached current
// value and applies the auto-complete rule for target-based goals.
func (s *GoalService) Recalculate(ctx context.Context, goalID string) (*domain.Goal, error) {
	goal, err := s.repo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListByGoalID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, e := range entries {
		total += e.Value
	}

	goal.ApplyProgress(total)

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}
