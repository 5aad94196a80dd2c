package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pkordes/travel-planner/internal/domain"
)

const (
	watchWriteWait  = 10 * time.Second
	watchPongWait   = 60 * time.Second
	watchPingPeriod = watchPongWait * 9 / 10
)

// WatchMessage is one frame of the itinerary change feed.
type WatchMessage struct {
	Type        string             `json:"type"`
	Itineraries []domain.Itinerary `json:"itineraries"`
}

// WatchItineraries handles GET /itineraries/watch.
// After the websocket upgrade the client receives the current collection and
// then a fresh copy after every change. A client that falls behind skips
// intermediate snapshots. Anything the client sends is ignored.
func (s *Server) WatchItineraries(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		s.log.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	snapshots, cancel := s.observer.Subscribe()
	defer cancel()

	// The read loop only services control frames and notices disconnects.
	gone := make(chan struct{})
	conn.SetReadLimit(512)
	//nolint:errcheck
	conn.SetReadDeadline(time.Now().Add(watchPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(watchPongWait))
	})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(watchPingPeriod)
	defer ping.Stop()

	for {
		select {
		case items, ok := <-snapshots:
			if !ok {
				return
			}
			//nolint:errcheck
			conn.SetWriteDeadline(time.Now().Add(watchWriteWait))
			if err := conn.WriteJSON(WatchMessage{Type: "snapshot", Itineraries: items}); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(watchWriteWait)); err != nil {
				return
			}
		case <-gone:
			return
		case <-r.Context().Done():
			return
		}
	}
}
