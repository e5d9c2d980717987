package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mileusna/useragent"

	"tempo/broadcast"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is bearer-token protected; origin filtering adds nothing here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	hub *broadcast.Hub
}

func NewWSHandler(hub *broadcast.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Subscribe upgrades the request and registers the client for DATA_UPDATE
// pushes. Subscribers get nothing retroactively; events before the
// connection are simply missed.
func (h *WSHandler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.hub.Add(conn, clientLabel(c.Request.UserAgent()))

	go h.readLoop(conn)
}

// readLoop drains inbound frames so pings are answered and the close
// handshake is noticed. Clients never send meaningful data on this channel.
func (h *WSHandler) readLoop(conn *websocket.Conn) {
	defer h.hub.Remove(conn)

	conn.SetReadLimit(512)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func clientLabel(rawUA string) string {
	ua := useragent.Parse(rawUA)
	label := strings.TrimSpace(ua.Name + " " + ua.OS)
	if label == "" {
		return "unknown"
	}
	return label
}
