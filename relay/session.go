package relay

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"dboard/wire"
)

const (
	// pingPeriod is how often the relay pings an idle session.
	pingPeriod = 5 * time.Second
	// pongWait is how long a session may stay silent before it is
	// considered gone.
	pongWait = 10 * time.Second
	// writeWait bounds a single write, pings included.
	writeWait = 5 * time.Second
	// maxBatchSize bounds one inbound batch.
	maxBatchSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Session is one websocket participant on a board.
type Session struct {
	hub   *Hub
	conn  *websocket.Conn
	board string
	user  string
	send  chan []byte
	log   *slog.Logger
}

// ServeWS upgrades the request and runs a session on the named board.
// The user id comes from the "user" query parameter, or is minted when
// the client sends none.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, board string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrade failed", "board", board, "err", err)
		return
	}
	user := r.URL.Query().Get("user")
	if user == "" {
		user = uuid.NewString()
	}
	s := &Session{
		hub:   h,
		conn:  conn,
		board: board,
		user:  user,
		send:  make(chan []byte, 64),
		log:   h.log.With("board", board, "user", user),
	}
	h.register <- s
	go s.writePump()
	go s.readPump()
}

// readPump drains inbound batches and hands the well-formed ones to the
// hub. It owns all reads on the connection.
func (s *Session) readPump() {
	defer func() {
		s.hub.unregister <- s
		s.conn.Close()
	}()
	s.conn.SetReadLimit(maxBatchSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("read failed", "err", err)
			}
			return
		}
		if _, err := wire.DecodeBatch(data); err != nil {
			s.log.Warn("dropping malformed batch", "err", err)
			continue
		}
		s.hub.forward <- envelope{from: s, data: data}
	}
}

// writePump sends queued batches and keeps the session alive with pings.
// It owns all writes on the connection.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()
	for {
		select {
		case data, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
