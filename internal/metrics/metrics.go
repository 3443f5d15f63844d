// Package metrics provides Prometheus instrumentation for the settlement service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Settlement outcomes.
const (
	OutcomeSettled    = "settled"
	OutcomeRejected   = "rejected"
	OutcomeIncomplete = "incomplete"
	OutcomeInvariant  = "invariant_violation"
)

var (
	// SettlementsTotal counts settlement runs by game type and outcome.
	SettlementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golfsettle_settlements_total",
		Help: "Total settlement runs",
	}, []string{"game_type", "outcome"})

	// SettlementDuration tracks how long the engine takes per run.
	SettlementDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "golfsettle_settlement_duration_seconds",
		Help:    "Settlement computation time in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	}, []string{"game_type"})

	RawTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golfsettle_raw_transactions_total",
		Help: "Raw transactions produced by game calculators",
	}, []string{"game_type"})

	NettedPaymentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golfsettle_netted_payments_total",
		Help: "Netted payments produced by settlements",
	})

	// PressesTotal counts presses by source (manual/auto) and decision.
	PressesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golfsettle_presses_total",
		Help: "Presses evaluated",
	}, []string{"source", "decision"})

	InvariantViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golfsettle_invariant_violations_total",
		Help: "Settlements that failed an invariant check",
	})

	// StakeLimitRejections counts settlements rejected by the stake limiter.
	StakeLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golfsettle_stake_limit_rejections_total",
		Help: "Settlements rejected by the stake limiter",
	})

	// WebSocketClients tracks connected WebSocket clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "golfsettle_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golfsettle_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "golfsettle_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		path := routePattern(r)
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern labels requests by chi route pattern so settlement and
// player ids do not blow up label cardinality.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
