package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the settlement tables. Payments are denormalized into
// their own table so player lookups do not scan result documents.
const Schema = `
CREATE TABLE IF NOT EXISTS settlements (
	id         UUID PRIMARY KEY,
	round_id   TEXT NOT NULL,
	game_type  TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	result     JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS settlements_round_idx ON settlements (round_id, created_at);

CREATE TABLE IF NOT EXISTS settlement_payments (
	settlement_id  UUID NOT NULL REFERENCES settlements (id),
	seq            INT NOT NULL,
	from_player_id TEXT NOT NULL,
	to_player_id   TEXT NOT NULL,
	amount_cents   BIGINT NOT NULL CHECK (amount_cents > 0),
	payment        JSONB NOT NULL,
	PRIMARY KEY (settlement_id, seq)
);
CREATE INDEX IF NOT EXISTS settlement_payments_from_idx ON settlement_payments (from_player_id);
CREATE INDEX IF NOT EXISTS settlement_payments_to_idx ON settlement_payments (to_player_id);
`

// PostgresStore implements Store using PostgreSQL as the source of truth.
// Amounts are stored as BIGINT cents.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate applies Schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, Schema)
	return err
}

func (s *PostgresStore) SaveSettlement(ctx context.Context, st *Settlement) error {
	result, err := json.Marshal(st.Result)
	if err != nil {
		return fmt.Errorf("encode settlement %s: %w", st.ID, err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO settlements (id, round_id, game_type, created_at, result)
		 VALUES ($1, $2, $3, $4, $5)`,
		st.ID, st.RoundID, st.Result.GameType, st.CreatedAt, result,
	); err != nil {
		return fmt.Errorf("insert settlement %s: %w", st.ID, err)
	}

	for i, p := range st.Result.Payments {
		payment, err := json.Marshal(p)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO settlement_payments (settlement_id, seq, from_player_id, to_player_id, amount_cents, payment)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			st.ID, i, p.FromPlayerID, p.ToPlayerID, p.AmountCents, payment,
		); err != nil {
			return fmt.Errorf("insert payment %d of settlement %s: %w", i, st.ID, err)
		}
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) GetSettlement(ctx context.Context, id string) (*Settlement, error) {
	var st Settlement
	var result []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id::TEXT, round_id, created_at, result
		 FROM settlements WHERE id = $1`, id).
		Scan(&st.ID, &st.RoundID, &st.CreatedAt, &result)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("settlement %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get settlement %s: %w", id, err)
	}
	if err := json.Unmarshal(result, &st.Result); err != nil {
		return nil, fmt.Errorf("decode settlement %s: %w", id, err)
	}
	return &st, nil
}

func (s *PostgresStore) ListSettlementsByRound(ctx context.Context, roundID string) ([]Settlement, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id::TEXT, round_id, created_at, result
		 FROM settlements WHERE round_id = $1 ORDER BY created_at, id`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Settlement{}
	for rows.Next() {
		var st Settlement
		var result []byte
		if err := rows.Scan(&st.ID, &st.RoundID, &st.CreatedAt, &result); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(result, &st.Result); err != nil {
			return nil, fmt.Errorf("decode settlement %s: %w", st.ID, err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListPaymentsByPlayer(ctx context.Context, playerID string) ([]PlayerPayment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT s.id::TEXT, s.round_id, s.created_at, p.payment
		 FROM settlement_payments p
		 JOIN settlements s ON s.id = p.settlement_id
		 WHERE p.from_player_id = $1 OR p.to_player_id = $1
		 ORDER BY s.created_at, s.id, p.seq`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PlayerPayment
	for rows.Next() {
		var pp PlayerPayment
		var payment []byte
		if err := rows.Scan(&pp.SettlementID, &pp.RoundID, &pp.CreatedAt, &payment); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payment, &pp.Payment); err != nil {
			return nil, err
		}
		out = append(out, pp)
	}
	return out, rows.Err()
}
