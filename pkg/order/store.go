package order

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/perfwall/pkg/errors"
)

// Store persists orders.
type Store interface {
	// Save inserts o. Saving an existing ID fails.
	Save(ctx context.Context, o *Order) error

	// Get returns the order with the given ID or ErrCodeNotFound.
	Get(ctx context.Context, id string) (*Order, error)

	// List returns up to limit orders, newest first. A limit <= 0 means
	// no limit.
	List(ctx context.Context, limit int) ([]*Order, error)

	Close() error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "order %s not found", id)
}

// MemoryStore keeps orders in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]*Order
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]*Order)}
}

func (s *MemoryStore) Save(_ context.Context, o *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; ok {
		return errors.New(errors.ErrCodeInvalidOrder, "order %s already exists", o.ID)
	}
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, notFound(id)
	}
	cp := *o
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]*Order, error) {
	s.mu.RLock()
	out := make([]*Order, 0, len(s.orders))
	for _, o := range s.orders {
		cp := *o
		out = append(out, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
