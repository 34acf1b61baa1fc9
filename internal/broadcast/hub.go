package broadcast

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/domain"
	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/metrics"
)

const (
	commandTimeout = 5 * time.Second
	stopTimeout    = 10 * time.Second
)

// hubCmd is the command interface for the Hub actor.
type hubCmd interface{ isHubCmd() }

type baseHubCmd struct{}

func (baseHubCmd) isHubCmd() {}

type registerCmd struct {
	baseHubCmd
	connection   *websocket.Conn
	errorChannel chan error
}

type unregisterCmd struct {
	baseHubCmd
	connection *websocket.Conn
}

type publishCmd struct {
	baseHubCmd
	topic domain.Topic
	frame []byte
}

type sessionCountCmd struct {
	baseHubCmd
	replyChannel chan int
}

type stopCmd struct {
	baseHubCmd
}

// session is one live, anonymous transport connection. The uuid exists only
// for log correlation; nothing is persisted and a reconnecting client always
// shows up as a brand-new session.
type session struct {
	id     uuid.UUID
	writer *sessionWriter
}

// Hub fans committed catalog changes out to every connected storefront client.
// All sessions receive all envelopes; topic filtering happens client-side.
type Hub struct {
	cmdCh       chan hubCmd
	clock       clockwork.Clock
	sessions    map[*websocket.Conn]*session
	done        chan struct{}
	maxSessions int
}

// NewHub creates the hub and starts its actor goroutine.
// maxSessions limits concurrent connections (prevents resource exhaustion).
func NewHub(clock clockwork.Clock, maxSessions int) *Hub {
	h := &Hub{
		cmdCh:       make(chan hubCmd, 256),
		clock:       clock,
		sessions:    make(map[*websocket.Conn]*session),
		done:        make(chan struct{}),
		maxSessions: maxSessions,
	}
	go h.run()
	return h
}

// Register adds a freshly upgraded connection to the live set.
// Returns an error only if the session limit is reached or the hub is stuck.
func (h *Hub) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	h.cmdCh <- registerCmd{connection: conn, errorChannel: errCh}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		return err
	case <-timer.Chan():
		return fmt.Errorf("register command timed out after %v", commandTimeout)
	}
}

// Unregister removes a connection from the live set. Safe to call for
// connections that were never registered or were already removed.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.cmdCh <- unregisterCmd{connection: conn}
}

// Publish serializes the event and queues it for fan-out to every live
// session. Fire-and-forget: failures are logged and swallowed so a publish
// can never fail the mutation that triggered it.
func (h *Hub) Publish(event domain.Event) {
	frame, err := domain.EncodeEnvelope(event)
	if err != nil {
		slog.Error("Failed to encode envelope", "topic", string(event.EventTopic()), "error", err)
		metrics.HubEncodeFailuresTotal.Inc()
		return
	}

	select {
	case h.cmdCh <- publishCmd{topic: event.EventTopic(), frame: frame}:
	default:
		// Command channel full - drop rather than block the mutation path.
		slog.Warn("Dropping publish, hub command channel full", "topic", string(event.EventTopic()))
		metrics.HubPublishDropsTotal.Inc()
	}
}

// SessionCount returns the number of live sessions. Returns -1 if the
// command times out.
func (h *Hub) SessionCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- sessionCountCmd{replyChannel: replyCh}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case count := <-replyCh:
		return count
	case <-timer.Chan():
		slog.Warn("SessionCount timed out", "timeout", commandTimeout)
		return -1
	}
}

// Stop shuts down the hub, closing all live sessions.
// Blocks until the actor goroutine has exited or timeout is reached.
func (h *Hub) Stop() {
	h.cmdCh <- stopCmd{}

	timeout := h.clock.NewTimer(stopTimeout)
	defer timeout.Stop()

	select {
	case <-h.done:
		slog.Info("Hub stopped gracefully")
	case <-timeout.Chan():
		slog.Warn("Hub stop timeout exceeded", "timeout", stopTimeout)
	}
}

func (h *Hub) run() {
	defer close(h.done)

	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case registerCmd:
			h.handleRegister(c)
		case unregisterCmd:
			h.handleUnregister(c)
		case publishCmd:
			h.handlePublish(c)
		case sessionCountCmd:
			c.replyChannel <- len(h.sessions)
		case stopCmd:
			h.handleStop()
			return
		default:
			slog.Warn("Hub received unknown command type", "command_type", fmt.Sprintf("%T", cmd))
		}
	}
}

func (h *Hub) handleRegister(c registerCmd) {
	if len(h.sessions) >= h.maxSessions {
		slog.Warn("Rejecting session: max sessions reached", "max_sessions", h.maxSessions)
		metrics.WebSocketConnectionsTotal.WithLabelValues("rejected").Inc()
		c.connection.Close()
		c.errorChannel <- fmt.Errorf("max sessions (%d) reached", h.maxSessions)
		return
	}

	s := &session{
		id:     uuid.New(),
		writer: newSessionWriter(c.connection, h.clock),
	}
	h.sessions[c.connection] = s

	metrics.HubActiveSessions.Set(float64(len(h.sessions)))
	metrics.WebSocketConnectionsTotal.WithLabelValues("success").Inc()

	slog.Debug("Session registered", "session_id", s.id.String(), "total_sessions", len(h.sessions))
	c.errorChannel <- nil
}

func (h *Hub) handleUnregister(c unregisterCmd) {
	s, exists := h.sessions[c.connection]
	if !exists {
		// Idempotent: already removed (e.g. evicted as slow) or never registered.
		return
	}

	s.writer.stop()
	delete(h.sessions, c.connection)

	metrics.HubActiveSessions.Set(float64(len(h.sessions)))
	slog.Debug("Session unregistered", "session_id", s.id.String(), "remaining_sessions", len(h.sessions))
}

func (h *Hub) handlePublish(c publishCmd) {
	metrics.HubEnvelopesPublishedTotal.WithLabelValues(string(c.topic)).Inc()

	var slow []*websocket.Conn
	for conn, s := range h.sessions {
		select {
		case s.writer.sendChannel <- c.frame:
		default:
			// Session can't keep up; mark for eviction so it never blocks
			// delivery to the others.
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		s := h.sessions[conn]
		slog.Warn("Evicting slow session", "session_id", s.id.String(), "topic", string(c.topic))
		metrics.HubSlowSessionsEvicted.Inc()
		h.handleUnregister(unregisterCmd{connection: conn})
	}
}

func (h *Hub) handleStop() {
	slog.Info("Hub shutting down", "sessions", len(h.sessions))

	for conn, s := range h.sessions {
		s.writer.stopGraceful("Server shutting down")
		delete(h.sessions, conn)
	}
	metrics.HubActiveSessions.Set(0)
}
