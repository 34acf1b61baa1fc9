package subscriber

import (
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/domain"
	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/metrics"
)

const dialTimeout = 10 * time.Second

// State is the connection state of a Subscriber.
type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateConnected
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// registration is one (topic, handler) pair. Identity matters: the
// unsubscribe closure removes exactly this registration, so the same handler
// function can be registered twice and removed once.
type registration struct {
	topic   domain.Topic
	handler func(payload json.RawMessage)
}

// Subscriber maintains one logical websocket connection to the hub and
// dispatches incoming envelopes to registered topic handlers.
type Subscriber struct {
	url    string
	clock  clockwork.Clock
	dialer *websocket.Dialer

	state atomic.Int32

	mu       sync.Mutex
	handlers map[domain.Topic][]*registration
	started  bool
	conn     *websocket.Conn

	backoff   *backoff
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a Subscriber for the given websocket URL. The connection is
// established lazily on the first Connect or Subscribe call.
func New(serverURL string, clock clockwork.Clock) *Subscriber {
	return &Subscriber{
		url:      serverURL,
		clock:    clock,
		dialer:   &websocket.Dialer{HandshakeTimeout: dialTimeout},
		handlers: make(map[domain.Topic][]*registration),
		backoff:  newBackoff(defaultBackoffFloor, defaultBackoffCeiling, defaultBackoffFactor),
		done:     make(chan struct{}),
	}
}

// Connect ensures the shared connection is establishing or established.
// Idempotent; the run loop is started at most once.
func (s *Subscriber) Connect() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go s.run()
}

// Subscribe registers handler for envelopes on topic and ensures the shared
// connection is up. Handlers for a topic fire in registration order. The
// returned function removes exactly this registration and never touches the
// underlying connection.
func (s *Subscriber) Subscribe(topic domain.Topic, handler func(payload json.RawMessage)) func() {
	reg := &registration{topic: topic, handler: handler}

	s.mu.Lock()
	s.handlers[topic] = append(s.handlers[topic], reg)
	s.mu.Unlock()

	s.Connect()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(reg) })
	}
}

// State reports the current connection state.
func (s *Subscriber) State() State {
	return State(s.state.Load())
}

// Close tears down the connection and stops the run loop. Only process/page
// teardown should call this; it frees the server-side session slot promptly
// instead of waiting on a timeout.
func (s *Subscriber) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.mu.Lock()
		if s.conn != nil {
			_ = s.conn.Close()
		}
		s.mu.Unlock()
	})
}

func (s *Subscriber) remove(reg *registration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	regs := s.handlers[reg.topic]
	for i, r := range regs {
		if r == reg {
			s.handlers[reg.topic] = slices.Delete(regs, i, i+1)
			break
		}
	}
	if len(s.handlers[reg.topic]) == 0 {
		delete(s.handlers, reg.topic)
	}
}

func (s *Subscriber) run() {
	attempt := 0
	for {
		s.state.Store(int32(StateConnecting))
		if attempt > 0 {
			metrics.SubscriberReconnectsTotal.Inc()
		}
		attempt++

		conn, _, err := s.dialer.Dial(s.url, nil)
		if err != nil {
			s.state.Store(int32(StateDisconnected))
			delay := s.backoff.Next()
			slog.Warn("Live connection failed, retrying", "url", s.url, "delay", delay, "error", err)
			if !s.wait(delay) {
				return
			}
			continue
		}

		s.backoff.Reset()
		s.state.Store(int32(StateConnected))
		slog.Info("Live connection established", "url", s.url)

		s.mu.Lock()
		s.conn = conn
		s.mu.Unlock()

		s.readLoop(conn)
		_ = conn.Close()

		select {
		case <-s.done:
			s.state.Store(int32(StateIdle))
			return
		default:
		}

		s.state.Store(int32(StateDisconnected))
		delay := s.backoff.Next()
		slog.Warn("Live connection lost, reconnecting", "url", s.url, "delay", delay)
		if !s.wait(delay) {
			return
		}
	}
}

// wait sleeps for the backoff delay. Returns false if Close was called.
func (s *Subscriber) wait(delay time.Duration) bool {
	timer := s.clock.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.Chan():
		return true
	case <-s.done:
		return false
	}
}

func (s *Subscriber) readLoop(conn *websocket.Conn) {
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.dispatch(frame)
	}
}

// dispatch delivers one frame to every handler registered for its topic, in
// registration order. Malformed frames are dropped without destabilizing the
// connection; a panicking handler never prevents delivery to the others.
func (s *Subscriber) dispatch(frame []byte) {
	topic, payload, err := domain.DecodeEnvelope(frame)
	if err != nil {
		slog.Warn("Dropping malformed envelope", "error", err)
		metrics.SubscriberEnvelopesDroppedTotal.WithLabelValues("malformed").Inc()
		return
	}

	s.mu.Lock()
	regs := slices.Clone(s.handlers[topic])
	s.mu.Unlock()

	for _, reg := range regs {
		s.invoke(reg, payload)
	}
}

func (s *Subscriber) invoke(reg *registration, payload json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Subscriber handler panicked", "topic", string(reg.topic), "panic", r)
			metrics.SubscriberHandlerPanicsTotal.Inc()
		}
	}()
	reg.handler(payload)
}

// On registers a typed handler for topic. Payloads that fail to decode into T
// are logged and dropped, matching the subscriber's malformed-frame policy.
func On[T any](s *Subscriber, topic domain.Topic, handler func(T)) func() {
	return s.Subscribe(topic, func(payload json.RawMessage) {
		var value T
		if err := json.Unmarshal(payload, &value); err != nil {
			slog.Warn("Dropping undecodable payload", "topic", string(topic), "error", err)
			metrics.SubscriberEnvelopesDroppedTotal.WithLabelValues("undecodable").Inc()
			return
		}
		handler(value)
	})
}
