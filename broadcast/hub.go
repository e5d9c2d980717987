package broadcast

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// defaultWriteTimeout bounds how long one stalled subscriber can hold up a
// fan-out before it is evicted.
const defaultWriteTimeout = 5 * time.Second

var (
	ConnectedSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_connected_subscribers",
			Help: "Current number of connected WebSocket subscribers",
		},
	)

	BroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ws_broadcasts_total",
			Help: "Total number of change notifications fanned out",
		},
	)
)

// Event is the fixed-shape change notification. It carries no payload;
// clients re-fetch /tasks and /stats on receipt.
type Event struct {
	Type string `json:"type"`
}

const EventDataUpdate = "DATA_UPDATE"

// Hub is the registry of connected subscribers. The signal is global, not
// owner-scoped: any successful mutation tells every open client to re-fetch.
type Hub struct {
	mu          sync.Mutex
	subscribers map[*websocket.Conn]string // conn -> client label for logs

	// writeMu serializes fan-outs: gorilla connections allow only one
	// concurrent writer, and mutations can commit on concurrent requests.
	writeMu sync.Mutex

	writeTimeout time.Duration
}

func NewHub() *Hub {
	return &Hub{
		subscribers:  make(map[*websocket.Conn]string),
		writeTimeout: defaultWriteTimeout,
	}
}

// Add registers a subscriber connection. The client label (parsed from the
// User-Agent) is only used for logging.
func (h *Hub) Add(conn *websocket.Conn, client string) {
	h.mu.Lock()
	h.subscribers[conn] = client
	count := len(h.subscribers)
	h.mu.Unlock()

	ConnectedSubscribers.Set(float64(count))
	log.Printf("Subscriber connected (%s), %d total", client, count)
}

// Remove drops a subscriber and closes its connection. Safe to call twice;
// the second call is a no-op.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.subscribers[conn]
	if ok {
		delete(h.subscribers, conn)
	}
	count := len(h.subscribers)
	h.mu.Unlock()

	if !ok {
		return
	}
	conn.Close()
	ConnectedSubscribers.Set(float64(count))
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Notify fans a DATA_UPDATE event out to every subscriber, best effort.
// The set is snapshotted first so connects and disconnects during the fan-out
// cannot upset the loop. Every send carries a write deadline: a subscriber
// that stopped reading (half-open TCP, suspended client) times out and is
// evicted like any other failed send, so a slow or dead subscriber can never
// hold up the mutation path behind writeMu. Callers invoke this only after
// their storage write has committed.
func (h *Hub) Notify() {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.subscribers))
	for conn := range h.subscribers {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	event := Event{Type: EventDataUpdate}
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Dropping subscriber after failed send: %v", err)
			h.Remove(conn)
		}
	}

	BroadcastsTotal.Inc()
}
