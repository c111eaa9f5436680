package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	// pingInterval keeps the connection alive through local proxies and
	// lets the server drop dead clients.
	pingInterval = 30 * time.Second

	// eventBuffer absorbs bursts while the consumer is busy.
	eventBuffer = 64
)

// subscriptionMessage is a client-to-server control record.
type subscriptionMessage struct {
	Type   string  `json:"type"`
	Filter *Filter `json:"filter,omitempty"`
}

// controlResponse is a server-to-client control record. Stream events carry
// an id; control responses do not.
type controlResponse struct {
	Type     string `json:"type"`
	ClientID string `json:"client_id,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Stream is a live event subscription.
//
// Events arrive on Events() until the connection drops or Close is called;
// the channel is then closed and Err reports why.
type Stream struct {
	log  *slog.Logger
	conn *websocket.Conn

	events chan StreamEvent

	eg     *errgroup.Group
	cancel context.CancelFunc

	closeOnce sync.Once

	mu      sync.Mutex // serializes writes to conn
	closing bool
	readErr error
}

// Dial connects to the event endpoint, e.g. "ws://127.0.0.1:9001".
func Dial(ctx context.Context, log *slog.Logger, url string) (*Stream, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial event stream %s: %w", url, err)
	}

	streamCtx, cancel := context.WithCancel(context.Background())
	eg, streamCtx := errgroup.WithContext(streamCtx)

	s := &Stream{
		log:    log.With("component", "events"),
		conn:   conn,
		events: make(chan StreamEvent, eventBuffer),
		eg:     eg,
		cancel: cancel,
	}

	eg.Go(func() error { return s.readPump(streamCtx) })
	eg.Go(func() error { return s.pingLoop(streamCtx) })

	s.log.Info("Event stream connected", "url", url)

	return s, nil
}

// Subscribe installs filter on the connection. Call once after Dial;
// calling again replaces the server-side filter.
func (s *Stream) Subscribe(filter Filter) error {
	return s.writeControl(subscriptionMessage{Type: "subscribe", Filter: &filter})
}

// Unsubscribe stops event delivery without closing the connection.
func (s *Stream) Unsubscribe() error {
	return s.writeControl(subscriptionMessage{Type: "unsubscribe"})
}

// Events returns the event channel. It is closed when the stream ends.
func (s *Stream) Events() <-chan StreamEvent {
	return s.events
}

// Err reports why the event channel closed. Nil after a clean Close.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readErr
}

// Close tears down the connection and waits for the pumps to exit.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closing = true
		deadline := time.Now().Add(time.Second)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		s.mu.Unlock()

		s.cancel()
		_ = s.conn.Close()
		_ = s.eg.Wait()

		s.log.Info("Event stream closed")
	})

	return nil
}

func (s *Stream) writeControl(msg subscriptionMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// readPump decodes incoming records, forwarding events and logging control
// responses.
func (s *Stream) readPump(ctx context.Context) error {
	defer close(s.events)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			if !s.closing && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				s.readErr = err
			}
			s.mu.Unlock()

			s.cancel()

			return nil
		}

		var ev StreamEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			s.log.Warn("Undecodable stream record", "error", err)

			continue
		}

		// Control responses (subscribed, pong, ...) carry no event id.
		if ev.ID == "" {
			var ctrl controlResponse
			if err := json.Unmarshal(data, &ctrl); err == nil {
				s.log.Debug("Control response", "type", ctrl.Type, "message", ctrl.Message)
			}

			continue
		}

		select {
		case s.events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}

// pingLoop keeps the subscription alive.
func (s *Stream) pingLoop(ctx context.Context) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.writeControl(subscriptionMessage{Type: "ping"}); err != nil {
				s.log.Debug("Ping failed", "error", err)

				return nil
			}
		}
	}
}
