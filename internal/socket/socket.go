// Package socket maintains the single realtime connection to the Hoy
// backend. It dispatches named JSON events to registered handlers and
// reconnects automatically with exponential backoff.
package socket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hoyapp/hoygo/internal/logger"
	"github.com/hoyapp/hoygo/internal/models"
)

// State is the connection state of the socket service.
type State int32

// Connection states.
const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Handler receives the raw payload of one event.
type Handler func(payload json.RawMessage)

// envelope is the wire frame of every realtime event, both directions.
type envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	handshakeTimeout = 10 * time.Second
	heartbeatPeriod  = 25 * time.Second
	writeTimeout     = 10 * time.Second
)

// ErrNotConnected is returned by Emit when the socket is down.
var ErrNotConnected = errors.New("socket not connected")

// Options configures the socket service.
type Options struct {
	// URL of the websocket endpoint (ws:// or wss://).
	URL string

	// Token supplies the current access token per (re)connect, so a
	// refreshed token is picked up on the next dial.
	Token func() string

	// UserID supplies the current user for the join announcement sent
	// after every successful connect.
	UserID func() string

	// BackoffMin and BackoffMax bound the reconnect delay.
	BackoffMin time.Duration
	BackoffMax time.Duration

	// MaxAttempts caps consecutive failed reconnects before the
	// service gives up. Zero means keep trying.
	MaxAttempts int

	// OnStateChange is invoked on every connection state transition.
	OnStateChange func(State)
}

// Service is the socket wrapper. One instance holds at most one
// connection; all methods are safe for concurrent use.
type Service struct {
	opts Options

	mu       sync.RWMutex
	conn     *websocket.Conn
	handlers map[string][]Handler
	done     chan struct{}

	writeMu sync.Mutex
	state   atomic.Int32
	closed  atomic.Bool
}

// New creates a disconnected socket service.
func New(opts Options) *Service {
	if opts.BackoffMin <= 0 {
		opts.BackoffMin = 500 * time.Millisecond
	}
	if opts.BackoffMax <= 0 {
		opts.BackoffMax = 30 * time.Second
	}

	return &Service{
		opts:     opts,
		handlers: map[string][]Handler{},
	}
}

// State returns the current connection state.
func (s *Service) State() State {
	return State(s.state.Load())
}

func (s *Service) setState(next State) {
	prev := State(s.state.Swap(int32(next)))
	if prev == next {
		return
	}

	logger.Log.Debugw("socket state", "from", prev.String(), "to", next.String())

	if s.opts.OnStateChange != nil {
		s.opts.OnStateChange(next)
	}
}

// On registers a handler for the named event. Multiple handlers per
// event are allowed and run in registration order.
func (s *Service) On(event string, h Handler) {
	s.mu.Lock()
	s.handlers[event] = append(s.handlers[event], h)
	s.mu.Unlock()
}

// Off removes every handler registered for the named event.
func (s *Service) Off(event string) {
	s.mu.Lock()
	delete(s.handlers, event)
	s.mu.Unlock()
}

// Connect dials the backend and starts the read and heartbeat pumps.
// Connecting an already connected service is a no-op.
func (s *Service) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return nil
	}
	s.closed.Store(false)

	return s.dialLocked(ctx)
}

// dialLocked performs one dial attempt. Callers hold s.mu.
func (s *Service) dialLocked(ctx context.Context) error {
	s.setState(Connecting)

	endpoint, err := url.Parse(s.opts.URL)
	if err != nil {
		s.setState(Disconnected)
		return fmt.Errorf("socket url: %w", err)
	}
	if s.opts.Token != nil {
		q := endpoint.Query()
		q.Set("token", s.opts.Token())
		endpoint.RawQuery = q.Encode()
	}

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, endpoint.String(), nil)
	if err != nil {
		s.setState(Disconnected)
		return fmt.Errorf("socket dial: %w", err)
	}

	s.conn = conn
	s.done = make(chan struct{})
	s.setState(Connected)

	go s.readPump(conn, s.done)
	go s.heartbeat(conn, s.done)

	s.announceJoin(conn)

	return nil
}

// announceJoin tells the backend which user this connection belongs
// to. It is re-sent after every reconnect.
func (s *Service) announceJoin(conn *websocket.Conn) {
	if s.opts.UserID == nil {
		return
	}
	userID := s.opts.UserID()
	if userID == "" {
		return
	}

	payload := struct {
		UserID string `json:"userId"`
	}{UserID: userID}

	if err := s.writeEvent(conn, models.EventJoin, payload); err != nil {
		logger.Log.Debugw("join announce failed", "error", err)
	}
}

// Emit sends one event to the backend.
func (s *Service) Emit(event string, payload any) error {
	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()

	if conn == nil || s.State() != Connected {
		return ErrNotConnected
	}

	return s.writeEvent(conn, event, payload)
}

func (s *Service) writeEvent(conn *websocket.Conn, event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}

	return conn.WriteJSON(envelope{Event: event, Payload: raw})
}

// Close shuts the connection down and disables reconnection.
func (s *Service) Close() error {
	s.closed.Store(true)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		s.setState(Disconnected)
		return nil
	}

	close(s.done)

	s.writeMu.Lock()
	err := s.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
	s.writeMu.Unlock()

	closeErr := s.conn.Close()
	s.conn = nil
	s.setState(Disconnected)

	if err != nil {
		return fmt.Errorf("close message: %w", err)
	}
	return closeErr
}

func (s *Service) readPump(conn *websocket.Conn, done chan struct{}) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-done:
				return
			default:
			}

			logger.Log.Debugw("socket read failed", "error", err)
			s.lostConnection(conn)
			return
		}

		var ev envelope
		if err := json.Unmarshal(data, &ev); err != nil {
			logger.Log.Warnw("malformed socket frame", "error", err)
			continue
		}

		s.dispatch(ev)
	}
}

func (s *Service) dispatch(ev envelope) {
	s.mu.RLock()
	handlers := make([]Handler, len(s.handlers[ev.Event]))
	copy(handlers, s.handlers[ev.Event])
	s.mu.RUnlock()

	for _, h := range handlers {
		h(ev.Payload)
	}
}

func (s *Service) heartbeat(conn *websocket.Conn, done chan struct{}) {
	ticker := time.NewTicker(heartbeatPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.writeMu.Lock()
			err := conn.WriteControl(
				websocket.PingMessage,
				nil,
				time.Now().Add(writeTimeout),
			)
			s.writeMu.Unlock()
			if err != nil {
				logger.Log.Debugw("socket ping failed", "error", err)
				return
			}
		}
	}
}

// lostConnection tears down the broken connection and starts the
// reconnect loop, unless Close was called.
func (s *Service) lostConnection(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn != conn {
		// A newer connection already replaced this one.
		s.mu.Unlock()
		return
	}
	close(s.done)
	_ = conn.Close()
	s.conn = nil
	s.mu.Unlock()

	s.setState(Disconnected)

	if s.closed.Load() {
		return
	}

	go s.reconnectLoop()
}

func (s *Service) reconnectLoop() {
	for attempt := 1; ; attempt++ {
		if s.closed.Load() {
			return
		}
		if s.opts.MaxAttempts > 0 && attempt > s.opts.MaxAttempts {
			logger.Log.Warnw("socket reconnect giving up", "attempts", attempt-1)
			return
		}

		wait := backoff(s.opts.BackoffMin, s.opts.BackoffMax, attempt)
		logger.Log.Debugw("socket reconnecting", "attempt", attempt, "wait", wait)
		time.Sleep(wait)

		if s.closed.Load() {
			return
		}

		s.mu.Lock()
		// Close may have finished between the load above and taking
		// the lock; without this re-check the dial would resurrect a
		// connection the caller already shut down.
		if s.closed.Load() || s.conn != nil {
			s.mu.Unlock()
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), handshakeTimeout)
		err := s.dialLocked(ctx)
		cancel()
		s.mu.Unlock()

		if err == nil {
			logger.Log.Infow("socket reconnected", "attempts", attempt)
			return
		}
	}
}

// backoff returns the exponential delay for the given attempt with
// ±10% jitter.
func backoff(min, max time.Duration, attempt int) time.Duration {
	d := min << uint(attempt-1)
	if d > max || d <= 0 {
		d = max
	}

	jitter := time.Duration(rand.Int63n(int64(d)/5+1)) - d/10

	return d + jitter
}
