package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The widget is served from a different origin in development
	CheckOrigin: func(r *http.Request) bool { return true },
}

const writeWait = 10 * time.Second

// handleRatesWebsocket upgrades the connection and pushes the price table on
// every snapshot update, starting with the current one
func (s *Server) handleRatesWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Drain client frames so close messages are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	push := func() error {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(s.buildRatesResponse(r))
	}

	if err := push(); err != nil {
		log.Printf("Websocket: initial push failed: %v", err)
		return
	}

	subscription := s.quoterService.SubscribeSnapshotUpdate()
	defer subscription.Cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-subscription.Chan():
			if !ok {
				return
			}
			if err := push(); err != nil {
				log.Printf("Websocket: push failed, closing: %v", err)
				return
			}
		}
	}
}
