package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/status-im/user-directory/events"
)

const streamWriteWait = 10 * time.Second

// cacheStreamMessage is pushed to devtools clients. Event is empty for the
// first message sent on connect.
type cacheStreamMessage struct {
	Event   *events.Event    `json:"event,omitempty"`
	Entries []queryStateView `json:"entries"`
}

// handleCacheStream streams the cache snapshot over a websocket, once on
// connect and again after every cache change
func (s *Server) handleCacheStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("Devtools: websocket upgrade failed")
		return
	}
	defer conn.Close()

	sub := s.cacheService.SubscribeOnUpdate()
	defer sub.Cancel()

	// the client only sends control frames, reading detects disconnects
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	if err := s.writeStreamMessage(conn, nil); err != nil {
		return
	}

	for {
		select {
		case <-closed:
			return
		case <-s.shutdown:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(streamWriteWait))
			return
		case event, ok := <-sub.Chan():
			if !ok {
				return
			}
			if err := s.writeStreamMessage(conn, &event); err != nil {
				logrus.WithError(err).Debug("Devtools: stream closed")
				return
			}
		}
	}
}

func (s *Server) writeStreamMessage(conn *websocket.Conn, event *events.Event) error {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(cacheStreamMessage{
		Event:   event,
		Entries: s.snapshotViews(),
	})
}
