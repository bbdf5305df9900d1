package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/previewkit/internal/dom"
	"github.com/ziadkadry99/previewkit/internal/session"
	"github.com/ziadkadry99/previewkit/internal/store"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleSocket runs one session for the page on the other end of the
// socket. Events are read here and executed on the session loop, which is
// also the only writer to the connection.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "preview not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	send := func(patches []dom.Patch) error {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(patches)
	}
	sess, err := s.sessions.Open(ctx, p.ID, p.Kind, p.Content, send)
	if err != nil {
		log.Printf("server: opening session for %s: %v", p.ID, err)
		return
	}
	if err := s.store.OpenSession(ctx, sess.ID, p.ID); err != nil {
		log.Printf("server: %v", err)
	}
	defer func() {
		sess.Close()
		if err := s.store.CloseSession(context.Background(), sess.ID, sess.Events()); err != nil {
			log.Printf("server: %v", err)
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		ev, err := session.DecodeEvent(msg)
		if err != nil {
			log.Printf("server: %s: %v", sess.ID, err)
			continue
		}
		sess.Dispatch(ev)
	}
}
