package realtime

import (
	"context"
	"log"
	"sync"

	"DirectChat/models"
)

// MessageRecorder persists a message before it is relayed.
type MessageRecorder interface {
	RecordMessage(ctx context.Context, from, to, body string, kind models.MessageKind) (*models.Message, error)
}

// Hub tracks live sessions and the username each one has claimed, and
// relays private messages between them. Recipients are found by scanning
// every session, so one username may map to any number of sessions.
type Hub struct {
	recorder MessageRecorder

	mu       sync.RWMutex
	sessions map[*Session]struct{}
	closed   bool

	wg sync.WaitGroup
}

func NewHub(recorder MessageRecorder) *Hub {
	return &Hub{
		recorder: recorder,
		sessions: make(map[*Session]struct{}),
	}
}

// Register adds a freshly connected session. It has no username yet, so
// the user list does not change and nothing is broadcast.
func (h *Hub) Register(s *Session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.sessions[s] = struct{}{}
	h.wg.Add(1)
	log.Printf("[ws] session %s connected from %s. Total sessions: %d", s.id, s.addr, len(h.sessions))
	return true
}

// Join sets the username claimed by s and broadcasts the new user list.
// Any string is accepted; there is no account check.
func (h *Hub) Join(s *Session, username string) {
	h.mu.Lock()
	if _, ok := h.sessions[s]; !ok {
		h.mu.Unlock()
		return
	}
	s.username = username
	h.mu.Unlock()

	log.Printf("[ws] session %s joined as %q", s.id, username)
	h.broadcastUserList()
}

// Send stores a message from the username claimed by s and relays it to
// every session claiming either the recipient's or the sender's name.
// A session that never joined is ignored. If the store fails the message
// is logged and not relayed.
func (h *Hub) Send(ctx context.Context, s *Session, to, body string, kind models.MessageKind) {
	from := h.usernameOf(s)
	if from == "" {
		return
	}

	if _, err := h.recorder.RecordMessage(ctx, from, to, body, kind); err != nil {
		log.Printf("[ws] failed to save message %s -> %s: %v", from, to, err)
		return
	}

	payload, err := Encode(IncomingMessageEvent{From: from, Message: body, Type: kind})
	if err != nil {
		log.Printf("[ws] encode message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for peer := range h.sessions {
		if peer.username != "" && (peer.username == to || peer.username == from) {
			peer.enqueue(payload)
		}
	}
}

// Leave drops s, closes its outbound queue and broadcasts the new user
// list. Calling it twice is harmless.
func (h *Hub) Leave(s *Session) {
	h.mu.Lock()
	if _, ok := h.sessions[s]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, s)
	close(s.send)
	remaining := len(h.sessions)
	h.mu.Unlock()
	h.wg.Done()

	log.Printf("[ws] session %s disconnected. Total sessions: %d", s.id, remaining)
	h.broadcastUserList()
}

// Users returns the claimed usernames, one entry per joined session.
func (h *Hub) Users() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.usersNoLock()
}

func (h *Hub) usersNoLock() []string {
	users := make([]string, 0, len(h.sessions))
	for s := range h.sessions {
		if s.username != "" {
			users = append(users, s.username)
		}
	}
	return users
}

func (h *Hub) usernameOf(s *Session) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return s.username
}

func (h *Hub) broadcastUserList() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	payload, err := Encode(UserListEvent{Users: h.usersNoLock()})
	if err != nil {
		log.Printf("[ws] encode user list: %v", err)
		return
	}
	for s := range h.sessions {
		s.enqueue(payload)
	}
}

// Shutdown refuses new sessions, closes every live connection and waits
// until their sessions have left or ctx is done.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	sessions := make([]*Session, 0, len(h.sessions))
	for s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	log.Printf("[ws] shutting down %d sessions", len(sessions))
	for _, s := range sessions {
		s.closeConn()
	}

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
