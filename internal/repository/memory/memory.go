// Package memory keeps checks and their history in process memory. It backs
// the service tests and can stand in for postgres in local runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/NordCoder/uptime-monitor/internal/domain"
	"github.com/NordCoder/uptime-monitor/internal/domain/check"
	"github.com/NordCoder/uptime-monitor/internal/domain/history"
)

var (
	_ check.Repo   = (*Store)(nil)
	_ history.Repo = (*Store)(nil)
)

type Store struct {
	mu      sync.RWMutex
	checks  map[uuid.UUID]*check.Check
	order   []uuid.UUID
	history map[uuid.UUID][]*history.History
}

func New() *Store {
	return &Store{
		checks:  make(map[uuid.UUID]*check.Check),
		history: make(map[uuid.UUID][]*history.History),
	}
}

// WithTx runs fn directly. Each store call is atomic on its own; there is no
// rollback.
func (m *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func cloneCheck(c *check.Check) *check.Check {
	cp := *c
	if c.ExpectedBody != nil {
		cp.ExpectedBody = append([]byte(nil), c.ExpectedBody...)
	}
	if c.Hook != nil {
		h := *c.Hook
		cp.Hook = &h
	}
	return &cp
}

func (m *Store) Create(ctx context.Context, c *check.Check) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if _, ok := m.checks[c.ID]; ok {
		return domain.ErrConflict
	}
	m.checks[c.ID] = cloneCheck(c)
	m.order = append(m.order, c.ID)
	return nil
}

func (m *Store) GetByID(ctx context.Context, id uuid.UUID) (*check.Check, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.checks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneCheck(c), nil
}

func (m *Store) GetForUpdate(ctx context.Context, id uuid.UUID) (*check.Check, error) {
	return m.GetByID(ctx, id)
}

func (m *Store) List(ctx context.Context) ([]*check.Check, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*check.Check, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, cloneCheck(m.checks[id]))
	}
	return out, nil
}

func (m *Store) Update(ctx context.Context, c *check.Check) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.checks[c.ID]; !ok {
		return domain.ErrNotFound
	}
	m.checks[c.ID] = cloneCheck(c)
	return nil
}

// Delete removes the check together with its history.
func (m *Store) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.checks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.checks, id)
	delete(m.history, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Store) Append(ctx context.Context, h *history.History) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.checks[h.CheckID]; !ok {
		return domain.ErrNotFound
	}
	cp := *h
	m.history[h.CheckID] = append(m.history[h.CheckID], &cp)
	return nil
}

// newestFirst orders by CreatedAt descending; later appends win ties.
func newestFirst(rows []*history.History) []*history.History {
	out := make([]*history.History, len(rows))
	for i, r := range rows {
		cp := *r
		out[len(rows)-1-i] = &cp
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *Store) Latest(ctx context.Context, checkID uuid.UUID) (*history.History, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.history[checkID]
	if len(rows) == 0 {
		return nil, nil
	}
	return newestFirst(rows)[0], nil
}

func (m *Store) ListByCheck(ctx context.Context, checkID uuid.UUID, limit int) ([]*history.History, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := newestFirst(m.history[checkID])
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Store) DeleteByCheck(ctx context.Context, checkID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.history[checkID]))
	delete(m.history, checkID)
	return n, nil
}
