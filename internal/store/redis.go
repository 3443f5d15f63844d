package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedStore wraps a primary Store (PostgreSQL) with a Redis read-through
// cache. Settlements are immutable, so single records are cached on write;
// list entries are invalidated when a new settlement touches them.
type CachedStore struct {
	primary Store
	rdb     *redis.Client
	ttl     time.Duration
}

// NewCachedStore creates a cached wrapper around a primary store.
func NewCachedStore(primary Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{
		primary: primary,
		rdb:     rdb,
		ttl:     ttl,
	}
}

func (s *CachedStore) SaveSettlement(ctx context.Context, st *Settlement) error {
	if err := s.primary.SaveSettlement(ctx, st); err != nil {
		return err
	}
	s.cache(ctx, settlementKey(st.ID), st)

	keys := []string{roundKey(st.RoundID)}
	for _, id := range st.Result.Players {
		keys = append(keys, paymentsKey(id))
	}
	s.rdb.Del(ctx, keys...)
	return nil
}

func (s *CachedStore) GetSettlement(ctx context.Context, id string) (*Settlement, error) {
	var st Settlement
	if s.lookup(ctx, settlementKey(id), &st) {
		return &st, nil
	}

	found, err := s.primary.GetSettlement(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, settlementKey(id), found)
	return found, nil
}

func (s *CachedStore) ListSettlementsByRound(ctx context.Context, roundID string) ([]Settlement, error) {
	var list []Settlement
	if s.lookup(ctx, roundKey(roundID), &list) {
		return list, nil
	}

	list, err := s.primary.ListSettlementsByRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, roundKey(roundID), list)
	return list, nil
}

func (s *CachedStore) ListPaymentsByPlayer(ctx context.Context, playerID string) ([]PlayerPayment, error) {
	var list []PlayerPayment
	if s.lookup(ctx, paymentsKey(playerID), &list) {
		return list, nil
	}

	list, err := s.primary.ListPaymentsByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, paymentsKey(playerID), list)
	return list, nil
}

// --- Cache helpers ---

func (s *CachedStore) lookup(ctx context.Context, key string, dst any) bool {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (s *CachedStore) cache(ctx context.Context, key string, v any) {
	if data, err := json.Marshal(v); err == nil {
		s.rdb.Set(ctx, key, data, s.ttl)
	}
}

func settlementKey(id string) string { return fmt.Sprintf("settlement:%s", id) }
func roundKey(id string) string      { return fmt.Sprintf("round:%s:settlements", id) }
func paymentsKey(id string) string   { return fmt.Sprintf("player:%s:payments", id) }
