package services_test

import (
	"context"
	"sort"
	"time"

	"github.com/mfiorvanti/stride/internal/core/domain"
)

// Map-backed fakes shared by the service tests. Each one honors the same
// sentinel errors as the real postgres adapters and can be armed with a
// forced error to exercise failure paths.

func ptr[T any](v T) *T {
	return &v
}

type fakeUserRepo struct {
	store         map[string]*domain.User
	simulateError error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{store: make(map[string]*domain.User)}
}

func (m *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	for _, u := range m.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	clone := *user
	m.store[user.ID] = &clone
	return nil
}

func (m *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	for _, u := range m.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	m.store[user.ID] = &clone
	return nil
}

type fakeHabitRepo struct {
	store         map[string]*domain.Habit
	simulateError error
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{store: make(map[string]*domain.Habit)}
}

func (m *fakeHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *habit
	m.store[habit.ID] = &clone
	return nil
}

func (m *fakeHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	h, ok := m.store[id]
	if !ok || h.DeletedAt != nil {
		return nil, domain.ErrHabitNotFound
	}
	clone := *h
	return &clone, nil
}

func (m *fakeHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var habits []*domain.Habit
	for _, h := range m.store {
		if h.UserID == userID && h.DeletedAt == nil {
			clone := *h
			habits = append(habits, &clone)
		}
	}
	return habits, nil
}

func (m *fakeHabitRepo) Update(ctx context.Context, habit *domain.Habit) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}
	habit.Version++
	clone := *habit
	m.store[habit.ID] = &clone
	return nil
}

func (m *fakeHabitRepo) Delete(ctx context.Context, id string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	h, ok := m.store[id]
	if !ok {
		return domain.ErrHabitNotFound
	}
	now := time.Now().UTC()
	h.DeletedAt = &now
	return nil
}

func (m *fakeHabitRepo) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var habits []*domain.Habit
	for _, h := range m.store {
		if h.UserID == userID && h.UpdatedAt.After(since) {
			clone := *h
			habits = append(habits, &clone)
		}
	}
	return habits, nil
}

func (m *fakeHabitRepo) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	h, ok := m.store[id]
	if !ok {
		return domain.ErrHabitNotFound
	}
	h.CurrentStreak = current
	h.LongestStreak = longest
	return nil
}

type fakeCompletionRepo struct {
	store         map[string]*domain.Completion
	simulateError error
}

func newFakeCompletionRepo() *fakeCompletionRepo {
	return &fakeCompletionRepo{store: make(map[string]*domain.Completion)}
}

func (m *fakeCompletionRepo) Create(ctx context.Context, c *domain.Completion) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if c.ID == "" {
		c.ID = "c-" + time.Now().Format("150405.000000000")
	}
	clone := *c
	m.store[c.ID] = &clone
	return nil
}

func (m *fakeCompletionRepo) Update(ctx context.Context, c *domain.Completion) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[c.ID]; !ok {
		return domain.ErrCompletionNotFound
	}
	clone := *c
	m.store[c.ID] = &clone
	return nil
}

func (m *fakeCompletionRepo) Delete(ctx context.Context, id, userID string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	c, ok := m.store[id]
	if !ok || c.UserID != userID {
		return domain.ErrCompletionNotFound
	}
	now := time.Now().UTC()
	c.DeletedAt = &now
	return nil
}

func (m *fakeCompletionRepo) GetByID(ctx context.Context, id string) (*domain.Completion, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	c, ok := m.store[id]
	if !ok || c.DeletedAt != nil {
		return nil, domain.ErrCompletionNotFound
	}
	clone := *c
	return &clone, nil
}

func (m *fakeCompletionRepo) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var out []*domain.Completion
	for _, c := range m.store {
		if c.HabitID == habitID && c.DeletedAt == nil {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletionDate.After(out[j].CompletionDate)
	})
	return out, nil
}

func (m *fakeCompletionRepo) ListByHabitIDInRange(ctx context.Context, habitID string, from, to time.Time) ([]*domain.Completion, error) {
	all, err := m.ListByHabitID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	var out []*domain.Completion
	for _, c := range all {
		if !c.CompletionDate.Before(from) && !c.CompletionDate.After(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *fakeCompletionRepo) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Completion, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var out []*domain.Completion
	for _, c := range m.store {
		if c.UserID == userID && c.UpdatedAt.After(since) {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeGoalRepo struct {
	store         map[string]*domain.Goal
	simulateError error
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{store: make(map[string]*domain.Goal)}
}

func (m *fakeGoalRepo) Create(ctx context.Context, goal *domain.Goal) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *goal
	m.store[goal.ID] = &clone
	return nil
}

func (m *fakeGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	g, ok := m.store[id]
	if !ok || g.DeletedAt != nil {
		return nil, domain.ErrGoalNotFound
	}
	clone := *g
	return &clone, nil
}

func (m *fakeGoalRepo) ListByUserID(ctx context.Context, userID string, filter domain.GoalFilter) ([]*domain.Goal, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var goals []*domain.Goal
	for _, g := range m.store {
		if g.UserID != userID || g.DeletedAt != nil {
			continue
		}
		if filter.Status != "" && g.Status != filter.Status {
			continue
		}
		if filter.Type != "" && g.Type != filter.Type {
			continue
		}
		clone := *g
		goals = append(goals, &clone)
	}
	return goals, nil
}

func (m *fakeGoalRepo) Update(ctx context.Context, goal *domain.Goal) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[goal.ID]; !ok {
		return domain.ErrGoalNotFound
	}
	goal.Version++
	clone := *goal
	m.store[goal.ID] = &clone
	return nil
}

func (m *fakeGoalRepo) Delete(ctx context.Context, id string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	g, ok := m.store[id]
	if !ok {
		return domain.ErrGoalNotFound
	}
	now := time.Now().UTC()
	g.DeletedAt = &now
	return nil
}

type fakeEntryRepo struct {
	store         map[string]*domain.ProgressEntry
	simulateError error
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{store: make(map[string]*domain.ProgressEntry)}
}

func (m *fakeEntryRepo) Create(ctx context.Context, e *domain.ProgressEntry) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if e.ID == "" {
		e.ID = "e-" + time.Now().Format("150405.000000000")
	}
	clone := *e
	m.store[e.ID] = &clone
	return nil
}

func (m *fakeEntryRepo) Update(ctx context.Context, e *domain.ProgressEntry) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[e.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	clone := *e
	m.store[e.ID] = &clone
	return nil
}

func (m *fakeEntryRepo) Delete(ctx context.Context, id, userID string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	e, ok := m.store[id]
	if !ok || e.UserID != userID {
		return domain.ErrEntryNotFound
	}
	now := time.Now().UTC()
	e.DeletedAt = &now
	return nil
}

func (m *fakeEntryRepo) GetByID(ctx context.Context, id string) (*domain.ProgressEntry, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	e, ok := m.store[id]
	if !ok || e.DeletedAt != nil {
		return nil, domain.ErrEntryNotFound
	}
	clone := *e
	return &clone, nil
}

func (m *fakeEntryRepo) ListByGoalID(ctx context.Context, goalID string) ([]*domain.ProgressEntry, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var out []*domain.ProgressEntry
	for _, e := range m.store {
		if e.GoalID == goalID && e.DeletedAt == nil {
			clone := *e
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EntryDate.Before(out[j].EntryDate)
	})
	return out, nil
}
