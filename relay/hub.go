// Package relay is the board relay: it accepts websocket sessions, groups
// them by board, and forwards every batch a session sends to the other
// sessions on the same board. The relay never parses batch contents; a
// board is a fan-out group, nothing more.
package relay

import (
	"log/slog"
)

// Hub routes batches between the sessions of each board. Run owns all
// state; sessions talk to it over channels only.
type Hub struct {
	register   chan *Session
	unregister chan *Session
	forward    chan envelope

	boards map[string]map[*Session]bool
	log    *slog.Logger
}

type envelope struct {
	from *Session
	data []byte
}

// NewHub creates a hub. A nil logger discards everything.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Hub{
		register:   make(chan *Session),
		unregister: make(chan *Session),
		forward:    make(chan envelope, 64),
		boards:     make(map[string]map[*Session]bool),
		log:        log,
	}
}

// Run processes registrations and forwards until the channels close.
// Call it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case s := <-h.register:
			sessions := h.boards[s.board]
			if sessions == nil {
				sessions = make(map[*Session]bool)
				h.boards[s.board] = sessions
			}
			sessions[s] = true
			h.log.Info("session joined", "board", s.board, "user", s.user, "peers", len(sessions))
		case s := <-h.unregister:
			sessions := h.boards[s.board]
			if sessions[s] {
				delete(sessions, s)
				close(s.send)
				if len(sessions) == 0 {
					delete(h.boards, s.board)
				}
				h.log.Info("session left", "board", s.board, "user", s.user, "peers", len(sessions))
			}
		case env := <-h.forward:
			for s := range h.boards[env.from.board] {
				if s == env.from {
					continue
				}
				select {
				case s.send <- env.data:
				default:
					// A session that cannot keep up is dropped rather
					// than allowed to stall the board.
					delete(h.boards[env.from.board], s)
					close(s.send)
					h.log.Warn("session dropped, send queue full", "board", s.board, "user", s.user)
				}
			}
		}
	}
}
