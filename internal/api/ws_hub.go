package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fairway/settlement-engine/internal/metrics"
	"github.com/fairway/settlement-engine/internal/model"
)

const (
	wsWriteWait  = 5 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait / 2
	wsQueueSize  = 16
)

// WSMessage is a settlement event pushed to WebSocket subscribers.
type WSMessage struct {
	Type         string                `json:"type"`
	SettlementID string                `json:"settlement_id"`
	RoundID      string                `json:"round_id"`
	GameType     string                `json:"game_type"`
	Payments     []model.NettedPayment `json:"payments,omitempty"`
}

type wsEvent struct {
	roundID string
	data    []byte
}

// wsSubscriber is one connection. Only its writer goroutine touches conn
// for data frames; the hub closes send to stop it.
type wsSubscriber struct {
	conn    *websocket.Conn
	roundID string // empty: every round
	send    chan []byte
}

func (s *wsSubscriber) wants(roundID string) bool {
	return s.roundID == "" || s.roundID == roundID
}

// WSHub fans settlement events out to subscribers. Clients connect to
// GET /api/v1/ws, optionally with ?round_id= to follow a single round.
// A subscriber whose queue is full is dropped.
type WSHub struct {
	subscribers map[*wsSubscriber]struct{}
	events      chan wsEvent
	join        chan *wsSubscriber
	leave       chan *wsSubscriber
	done        chan struct{}
}

// NewWSHub creates an idle hub; start it with Run.
func NewWSHub() *WSHub {
	return &WSHub{
		subscribers: make(map[*wsSubscriber]struct{}),
		events:      make(chan wsEvent, 256),
		join:        make(chan *wsSubscriber),
		leave:       make(chan *wsSubscriber),
		done:        make(chan struct{}),
	}
}

// Run owns the subscriber set until ctx is cancelled, then disconnects
// every subscriber.
func (h *WSHub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for sub := range h.subscribers {
				h.drop(sub)
			}
			return

		case sub := <-h.join:
			h.subscribers[sub] = struct{}{}
			metrics.WebSocketClients.Set(float64(len(h.subscribers)))
			slog.Info("ws subscriber joined", "round_id", sub.roundID, "total", len(h.subscribers))

		case sub := <-h.leave:
			if _, ok := h.subscribers[sub]; ok {
				h.drop(sub)
			}

		case ev := <-h.events:
			for sub := range h.subscribers {
				if !sub.wants(ev.roundID) {
					continue
				}
				select {
				case sub.send <- ev.data:
				default:
					slog.Warn("ws subscriber too slow, disconnecting", "round_id", sub.roundID)
					h.drop(sub)
				}
			}
		}
	}
}

func (h *WSHub) drop(sub *wsSubscriber) {
	delete(h.subscribers, sub)
	close(sub.send)
	metrics.WebSocketClients.Set(float64(len(h.subscribers)))
}

// Broadcast queues a settlement event. It never blocks; events are
// dropped when the hub is backed up or stopped.
func (h *WSHub) Broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("ws encode failed", "type", msg.Type, "err", err)
		return
	}
	select {
	case h.events <- wsEvent{roundID: msg.RoundID, data: data}:
	default:
		slog.Warn("ws event queue full, dropping event", "type", msg.Type, "round_id", msg.RoundID)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// HandleWS upgrades the request and subscribes the connection.
func (h *WSHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("ws upgrade failed", "err", err)
		return
	}
	sub := &wsSubscriber{
		conn:    conn,
		roundID: r.URL.Query().Get("round_id"),
		send:    make(chan []byte, wsQueueSize),
	}
	select {
	case h.join <- sub:
	case <-h.done:
		conn.Close()
		return
	}
	go h.writeLoop(sub)
	go h.readLoop(sub)
}

// readLoop discards client frames and notices disconnects.
func (h *WSHub) readLoop(sub *wsSubscriber) {
	defer func() {
		select {
		case h.leave <- sub:
		case <-h.done:
		}
	}()
	sub.conn.SetReadLimit(512)
	sub.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := sub.conn.NextReader(); err != nil {
			return
		}
	}
}

// writeLoop is the connection's only writer.
func (h *WSHub) writeLoop(sub *wsSubscriber) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()
	for {
		select {
		case data, ok := <-sub.send:
			sub.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				sub.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			sub.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
