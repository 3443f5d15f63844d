package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore implements Store with in-memory maps. Used for testing
// and development. Not suitable for production (no persistence).
type MemoryStore struct {
	mu          sync.RWMutex
	settlements map[string]*Settlement
	byRound     map[string][]string
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		settlements: make(map[string]*Settlement),
		byRound:     make(map[string][]string),
	}
}

func (s *MemoryStore) SaveSettlement(_ context.Context, st *Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.settlements[st.ID]; ok {
		return fmt.Errorf("settlement %s already exists", st.ID)
	}
	copy := *st
	s.settlements[st.ID] = &copy
	s.byRound[st.RoundID] = append(s.byRound[st.RoundID], st.ID)
	return nil
}

func (s *MemoryStore) GetSettlement(_ context.Context, id string) (*Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.settlements[id]
	if !ok {
		return nil, fmt.Errorf("settlement %s: %w", id, ErrNotFound)
	}
	copy := *st
	return &copy, nil
}

func (s *MemoryStore) ListSettlementsByRound(_ context.Context, roundID string) ([]Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Settlement, 0, len(s.byRound[roundID]))
	for _, id := range s.byRound[roundID] {
		out = append(out, *s.settlements[id])
	}
	sortSettlements(out)
	return out, nil
}

func (s *MemoryStore) ListPaymentsByPlayer(_ context.Context, playerID string) ([]PlayerPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]Settlement, 0, len(s.settlements))
	for _, st := range s.settlements {
		all = append(all, *st)
	}
	sortSettlements(all)

	var out []PlayerPayment
	for _, st := range all {
		for _, p := range st.Result.Payments {
			if touches(p, playerID) {
				out = append(out, PlayerPayment{
					SettlementID: st.ID,
					RoundID:      st.RoundID,
					CreatedAt:    st.CreatedAt,
					Payment:      p,
				})
			}
		}
	}
	return out, nil
}

func sortSettlements(list []Settlement) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}
