// pkg/pumpportal/stream.go
package pumpportal

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	DefaultWebSocketURL = "wss://pumpportal.fun/api/data"

	writeTimeout = 10 * time.Second
)

// MessageHandler receives every inbound frame as raw text.
type MessageHandler func(data string)

type streamConfig struct {
	url    string
	dialer *websocket.Dialer
}

// StreamOption customizes Dial.
type StreamOption func(*streamConfig)

// WithWebSocketURL overrides the feed endpoint.
func WithWebSocketURL(url string) StreamOption {
	return func(c *streamConfig) { c.url = url }
}

// WithDialer overrides the websocket dialer (proxy, TLS, handshake timeout).
func WithDialer(d *websocket.Dialer) StreamOption {
	return func(c *streamConfig) { c.dialer = d }
}

// Stream owns a single connection to the PumpPortal data feed and tracks which
// events have been subscribed on it. The connection is never re-established:
// once it drops, control messages are logged and discarded.
type Stream struct {
	url    string
	logger *zap.Logger

	// writeMu serializes control frames; mu only guards the fields below it.
	writeMu sync.Mutex

	mu         sync.Mutex
	conn       *websocket.Conn
	open       bool
	handler    MessageHandler
	subscribed map[Event]struct{}

	closing   atomic.Bool
	closeOnce sync.Once
	done      chan struct{}
}

func newStream(url string, logger *zap.Logger) *Stream {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stream{
		url:        url,
		logger:     logger.Named("pumpportal-stream"),
		subscribed: make(map[Event]struct{}),
		done:       make(chan struct{}),
	}
}

// Dial connects to the feed and starts delivering inbound frames to the
// registered handler. It does not retry.
//
// Dial is the only call that reports a connection failure as an error. Once
// connected, socket errors are logged and the stream stops; watch Done.
func Dial(ctx context.Context, logger *zap.Logger, opts ...StreamOption) (*Stream, error) {
	cfg := streamConfig{
		url:    DefaultWebSocketURL,
		dialer: websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := newStream(cfg.url, logger)

	conn, _, err := cfg.dialer.DialContext(ctx, cfg.url, nil)
	if err != nil {
		s.logger.Error("WebSocket error", zap.String("url", cfg.url), zap.Error(err))
		return nil, fmt.Errorf("dial %s: %w", cfg.url, err)
	}

	s.mu.Lock()
	s.conn = conn
	s.open = true
	s.mu.Unlock()

	s.logger.Info("Connected to PumpPortal", zap.String("url", cfg.url))

	go s.readLoop()

	return s, nil
}

func (s *Stream) readLoop() {
	defer close(s.done)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			s.open = false
			s.mu.Unlock()

			if !s.closing.Load() && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Error("WebSocket error", zap.Error(err))
			}
			s.logger.Info("Connection closed")
			return
		}

		s.mu.Lock()
		handler := s.handler
		s.mu.Unlock()

		if handler != nil {
			handler(string(data))
		}
	}
}

// OnMessage registers handler as the only receiver of inbound frames,
// replacing any previous one. A nil handler makes the stream drop frames.
func (s *Stream) OnMessage(handler MessageHandler) {
	s.mu.Lock()
	s.handler = handler
	s.mu.Unlock()
}

// Subscribe asks the feed for event, optionally scoped to keys (mints or
// accounts). Repeated calls for an already subscribed event are ignored.
func (s *Stream) Subscribe(event Event, keys ...string) error {
	if !event.Valid() {
		return fmt.Errorf("subscribe: %w: %d", ErrUnknownEvent, uint8(event))
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if _, ok := s.subscribed[event]; ok {
		s.mu.Unlock()
		s.logger.Info("You are already subscribed", zap.Stringer("event", event))
		return nil
	}
	s.subscribed[event] = struct{}{}
	conn, open := s.conn, s.open
	s.mu.Unlock()

	s.send(conn, open, ControlMessage{Method: event.SubscribeMethod(), Keys: keys})
	s.logger.Info("Subscribing", zap.Stringer("event", event), zap.Strings("keys", keys))
	return nil
}

// Unsubscribe is the inverse of Subscribe. Events that are not subscribed are ignored.
func (s *Stream) Unsubscribe(event Event, keys ...string) error {
	if !event.Valid() {
		return fmt.Errorf("unsubscribe: %w: %d", ErrUnknownEvent, uint8(event))
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if _, ok := s.subscribed[event]; !ok {
		s.mu.Unlock()
		s.logger.Info("You are not subscribed", zap.Stringer("event", event))
		return nil
	}
	delete(s.subscribed, event)
	conn, open := s.conn, s.open
	s.mu.Unlock()

	s.send(conn, open, ControlMessage{Method: event.UnsubscribeMethod(), Keys: keys})
	s.logger.Info("Unsubscribing", zap.Stringer("event", event), zap.Strings("keys", keys))
	return nil
}

// send writes msg if the connection was open and drops it otherwise.
// s.writeMu must be held.
func (s *Stream) send(conn *websocket.Conn, open bool, msg ControlMessage) {
	if !open || conn == nil {
		s.logger.Warn("WebSocket is not open", zap.String("method", msg.Method))
		return
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Error("WebSocket error", zap.String("method", msg.Method), zap.Error(err))
	}
}

// IsSubscribed reports whether event is in the subscription set.
func (s *Stream) IsSubscribed(event Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.subscribed[event]
	return ok
}

// Subscribed returns a sorted snapshot of the subscription set.
func (s *Stream) Subscribed() []Event {
	s.mu.Lock()
	out := make([]Event, 0, len(s.subscribed))
	for e := range s.subscribed {
		out = append(out, e)
	}
	s.mu.Unlock()

	slices.Sort(out)
	return out
}

// IsOpen reports whether control messages would currently be transmitted.
func (s *Stream) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Done is closed once the connection has gone away for any reason.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Close shuts the connection down. The subscription set is left as is.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		s.closing.Store(true)

		s.mu.Lock()
		conn := s.conn
		wasOpen := s.open
		s.open = false
		s.mu.Unlock()

		// WriteControl may run concurrently with WriteJSON.
		if conn != nil && wasOpen {
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeTimeout),
			)
		}

		if conn != nil {
			_ = conn.Close()
		}
		s.logger.Info("WebSocket connection closed")
	})
}
