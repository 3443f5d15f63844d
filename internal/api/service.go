// Package api provides the HTTP handlers that run settlements, persist
// them, and serve settlement and payment history.
//
// All amounts on the wire are integer cents.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fairway/settlement-engine/internal/engine"
	"github.com/fairway/settlement-engine/internal/limits"
	"github.com/fairway/settlement-engine/internal/metrics"
	"github.com/fairway/settlement-engine/internal/model"
	"github.com/fairway/settlement-engine/internal/store"
)

// Service handles settlement requests. The engine is pure, so requests
// are not serialized.
type Service struct {
	store     store.Store
	limiter   *limits.StakeLimiter
	validator *Validator
	wsHub     *WSHub // optional WebSocket hub for settlement events
	now       func() time.Time
}

// NewService creates a new settlement service.
// Pass nil for hub if WebSocket broadcasting is not needed.
func NewService(st store.Store, limiter *limits.StakeLimiter, hub *WSHub) *Service {
	return &Service{
		store:     st,
		limiter:   limiter,
		validator: NewValidator(),
		wsHub:     hub,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Routes mounts the API under the given router.
func (s *Service) Routes(r chi.Router) {
	r.Post("/settlements", s.CreateSettlement)
	r.Get("/settlements/{settlementID}", s.GetSettlement)
	r.Get("/rounds/{roundID}/settlements", s.ListRoundSettlements)
	r.Get("/players/{playerID}/payments", s.ListPlayerPayments)
	r.Post("/presses/validate", s.ValidatePress)
	if s.wsHub != nil {
		r.Get("/ws", s.wsHub.HandleWS)
	}
}

// CreateSettlement handles POST /api/v1/settlements
// Runs the engine, stores the result and announces it to WebSocket clients.
func (s *Service) CreateSettlement(w http.ResponseWriter, r *http.Request) {
	var req SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	args := req.Args()
	gameType := string(req.Game.Type)

	if s.limiter != nil {
		if err := s.limiter.CheckLimit(args); err != nil {
			metrics.StakeLimitRejections.Inc()
			metrics.SettlementsTotal.WithLabelValues(gameType, metrics.OutcomeRejected).Inc()
			writeError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}

	start := time.Now()
	result, err := engine.Settle(args)
	metrics.SettlementDuration.WithLabelValues(gameType).Observe(time.Since(start).Seconds())
	if err != nil {
		s.writeSettleError(w, req.RoundID, gameType, err)
		return
	}
	record(result)

	st := &store.Settlement{
		ID:        uuid.New().String(),
		RoundID:   req.RoundID,
		CreatedAt: s.now(),
		Result:    result,
	}
	if err := s.store.SaveSettlement(r.Context(), st); err != nil {
		slog.Error("save settlement failed", "round_id", req.RoundID, "err", err)
		writeError(w, "failed to save settlement", http.StatusInternalServerError)
		return
	}

	slog.Info("settlement computed",
		"settlement_id", st.ID,
		"round_id", st.RoundID,
		"game_type", gameType,
		"raw_transactions", len(result.RawTransactions),
		"payments", len(result.Payments),
		"presses", len(result.Presses),
	)

	if s.wsHub != nil {
		s.wsHub.Broadcast(WSMessage{
			Type:         "settlement_completed",
			SettlementID: st.ID,
			RoundID:      st.RoundID,
			GameType:     gameType,
			Payments:     result.Payments,
		})
	}

	writeJSON(w, http.StatusCreated, st)
}

func (s *Service) writeSettleError(w http.ResponseWriter, roundID, gameType string, err error) {
	switch {
	case errors.Is(err, model.ErrInvariant):
		metrics.InvariantViolations.Inc()
		metrics.SettlementsTotal.WithLabelValues(gameType, metrics.OutcomeInvariant).Inc()
		slog.Error("settlement invariant violated", "round_id", roundID, "err", err)
		writeError(w, "internal settlement error", http.StatusInternalServerError)
	case errors.Is(err, model.ErrIncomplete):
		metrics.SettlementsTotal.WithLabelValues(gameType, metrics.OutcomeIncomplete).Inc()
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, model.ErrConfiguration):
		metrics.SettlementsTotal.WithLabelValues(gameType, metrics.OutcomeRejected).Inc()
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		slog.Error("settlement failed", "round_id", roundID, "err", err)
		writeError(w, "internal settlement error", http.StatusInternalServerError)
	}
}

func record(res engine.Result) {
	gameType := string(res.GameType)
	metrics.SettlementsTotal.WithLabelValues(gameType, metrics.OutcomeSettled).Inc()
	metrics.RawTransactionsTotal.WithLabelValues(gameType).Add(float64(len(res.RawTransactions)))
	metrics.NettedPaymentsTotal.Add(float64(len(res.Payments)))
	for _, d := range res.PressDecisions {
		metrics.PressesTotal.WithLabelValues(string(model.PressSourceManual), decision(d.Accepted)).Inc()
	}
	for _, p := range res.Presses {
		if p.Source == model.PressSourceAuto {
			metrics.PressesTotal.WithLabelValues(string(model.PressSourceAuto), decision(true)).Inc()
		}
	}
}

func decision(accepted bool) string {
	if accepted {
		return "accepted"
	}
	return "rejected"
}

// GetSettlement handles GET /api/v1/settlements/{settlementID}
func (s *Service) GetSettlement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "settlementID")

	st, err := s.store.GetSettlement(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, "settlement not found", http.StatusNotFound)
		return
	}
	if err != nil {
		writeError(w, "failed to load settlement", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ListRoundSettlements handles GET /api/v1/rounds/{roundID}/settlements
func (s *Service) ListRoundSettlements(w http.ResponseWriter, r *http.Request) {
	roundID := chi.URLParam(r, "roundID")

	list, err := s.store.ListSettlementsByRound(r.Context(), roundID)
	if err != nil {
		writeError(w, "failed to list settlements", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []store.Settlement{}
	}
	writeJSON(w, http.StatusOK, list)
}

// ListPlayerPayments handles GET /api/v1/players/{playerID}/payments
// Returns every netted payment the player makes or receives.
func (s *Service) ListPlayerPayments(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	list, err := s.store.ListPaymentsByPlayer(r.Context(), playerID)
	if err != nil {
		writeError(w, "failed to list payments", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []store.PlayerPayment{}
	}
	writeJSON(w, http.StatusOK, list)
}

// ValidatePress handles POST /api/v1/presses/validate
// Decides one manual press request against the holes played so far.
func (s *Service) ValidatePress(w http.ResponseWriter, r *http.Request) {
	var req PressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := engine.CheckPress(req.Args(), req.Request)
	if err != nil {
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	metrics.PressesTotal.WithLabelValues(string(model.PressSourceManual), decision(d.Accepted)).Inc()
	writeJSON(w, http.StatusOK, d)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
