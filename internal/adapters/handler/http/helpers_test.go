package http

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mfiorvanti/stride/internal/adapters/handler/http/middleware"
	"github.com/mfiorvanti/stride/internal/core/domain"
)

// asUser injects an authenticated user into the request context, standing
// in for the JWT middleware in handler tests.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, userID)
		c.Next()
	}
}

type memCompletionRepo struct {
	mu    sync.Mutex
	store map[string]*domain.Completion
	next  int
}

func newMemCompletionRepo() *memCompletionRepo {
	return &memCompletionRepo{store: make(map[string]*domain.Completion)}
}

func (m *memCompletionRepo) Create(ctx context.Context, c *domain.Completion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		m.next++
		c.ID = "c-" + time.Now().Format("150405") + "-" + string(rune('a'+m.next))
	}
	clone := *c
	m.store[c.ID] = &clone
	return nil
}

func (m *memCompletionRepo) Update(ctx context.Context, c *domain.Completion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[c.ID]; !ok {
		return domain.ErrCompletionNotFound
	}
	clone := *c
	m.store[c.ID] = &clone
	return nil
}

func (m *memCompletionRepo) Delete(ctx context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.store[id]
	if !ok || c.UserID != userID || c.DeletedAt != nil {
		return domain.ErrCompletionNotFound
	}
	now := time.Now().UTC()
	c.DeletedAt = &now
	return nil
}

func (m *memCompletionRepo) GetByID(ctx context.Context, id string) (*domain.Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.store[id]
	if !ok || c.DeletedAt != nil {
		return nil, domain.ErrCompletionNotFound
	}
	clone := *c
	return &clone, nil
}

func (m *memCompletionRepo) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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

func (m *memCompletionRepo) ListByHabitIDInRange(ctx context.Context, habitID string, from, to time.Time) ([]*domain.Completion, error) {
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

func (m *memCompletionRepo) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Completion
	for _, c := range m.store {
		if c.UserID == userID && c.UpdatedAt.After(since) {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

type memGoalRepo struct {
	mu    sync.Mutex
	store map[string]*domain.Goal
}

func newMemGoalRepo() *memGoalRepo {
	return &memGoalRepo{store: make(map[string]*domain.Goal)}
}

func (m *memGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *g
	m.store[g.ID] = &clone
	return nil
}

func (m *memGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.store[id]
	if !ok || g.DeletedAt != nil {
		return nil, domain.ErrGoalNotFound
	}
	clone := *g
	return &clone, nil
}

func (m *memGoalRepo) ListByUserID(ctx context.Context, userID string, filter domain.GoalFilter) ([]*domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Goal
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
		out = append(out, &clone)
	}
	return out, nil
}

func (m *memGoalRepo) Update(ctx context.Context, g *domain.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[g.ID]; !ok {
		return domain.ErrGoalNotFound
	}
	g.Version++
	clone := *g
	m.store[g.ID] = &clone
	return nil
}

func (m *memGoalRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.store[id]
	if !ok || g.DeletedAt != nil {
		return domain.ErrGoalNotFound
	}
	now := time.Now().UTC()
	g.DeletedAt = &now
	return nil
}

type memEntryRepo struct {
	mu    sync.Mutex
	store map[string]*domain.ProgressEntry
	next  int
}

func newMemEntryRepo() *memEntryRepo {
	return &memEntryRepo{store: make(map[string]*domain.ProgressEntry)}
}

func (m *memEntryRepo) Create(ctx context.Context, e *domain.ProgressEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		m.next++
		e.ID = "e-" + time.Now().Format("150405") + "-" + string(rune('a'+m.next))
	}
	clone := *e
	m.store[e.ID] = &clone
	return nil
}

func (m *memEntryRepo) Update(ctx context.Context, e *domain.ProgressEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[e.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	clone := *e
	m.store[e.ID] = &clone
	return nil
}

func (m *memEntryRepo) Delete(ctx context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[id]
	if !ok || e.UserID != userID || e.DeletedAt != nil {
		return domain.ErrEntryNotFound
	}
	now := time.Now().UTC()
	e.DeletedAt = &now
	return nil
}

func (m *memEntryRepo) GetByID(ctx context.Context, id string) (*domain.ProgressEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[id]
	if !ok || e.DeletedAt != nil {
		return nil, domain.ErrEntryNotFound
	}
	clone := *e
	return &clone, nil
}

func (m *memEntryRepo) ListByGoalID(ctx context.Context, goalID string) ([]*domain.ProgressEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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
