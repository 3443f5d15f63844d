// Package store defines the persistence interface for computed settlements.
// Implementations include PostgreSQL (source of truth), Redis (read-through
// cache), and in-memory (for testing).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/fairway/settlement-engine/internal/engine"
	"github.com/fairway/settlement-engine/internal/model"
)

// ErrNotFound is returned when a settlement does not exist.
var ErrNotFound = errors.New("store: not found")

// Settlement is a persisted settlement run. Records are immutable once saved.
type Settlement struct {
	ID        string        `json:"id"`
	RoundID   string        `json:"round_id"`
	CreatedAt time.Time     `json:"created_at"`
	Result    engine.Result `json:"result"`
}

// PlayerPayment is one netted payment touching a player, with the
// settlement it belongs to.
type PlayerPayment struct {
	SettlementID string              `json:"settlement_id"`
	RoundID      string              `json:"round_id"`
	CreatedAt    time.Time           `json:"created_at"`
	Payment      model.NettedPayment `json:"payment"`
}

// Store is the persistence interface. PostgreSQL is the source of truth;
// Redis provides a read-through cache layer.
type Store interface {
	// SaveSettlement persists a new settlement and its payments.
	SaveSettlement(ctx context.Context, s *Settlement) error

	// GetSettlement retrieves a settlement by its ID.
	GetSettlement(ctx context.Context, id string) (*Settlement, error)

	// ListSettlementsByRound returns every settlement of a round, oldest first.
	ListSettlementsByRound(ctx context.Context, roundID string) ([]Settlement, error)

	// ListPaymentsByPlayer returns every netted payment the player makes or
	// receives, oldest first.
	ListPaymentsByPlayer(ctx context.Context, playerID string) ([]PlayerPayment, error)
}

func touches(p model.NettedPayment, playerID string) bool {
	return p.FromPlayerID == playerID || p.ToPlayerID == playerID
}
