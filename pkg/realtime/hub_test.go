package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"

	"DirectChat/models"
)

type recorded struct {
	from, to, body string
	kind           models.MessageKind
}

type fakeRecorder struct {
	mu   sync.Mutex
	msgs []recorded
	err  error
}

func (f *fakeRecorder) RecordMessage(_ context.Context, from, to, body string, kind models.MessageKind) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.msgs = append(f.msgs, recorded{from, to, body, kind})
	return &models.Message{ID: uint(len(f.msgs)), FromUser: from, ToUser: to, Body: body, Kind: kind}, nil
}

func (f *fakeRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

// connectedSession registers a session without a network connection; its
// outbound events are read straight from the send queue.
func connectedSession(t *testing.T, h *Hub) *Session {
	t.Helper()
	s := NewSession(nil, h, "test")
	if !h.Register(s) {
		t.Fatalf("register refused")
	}
	return s
}

func nextEvent(t *testing.T, s *Session) Envelope {
	t.Helper()
	select {
	case raw, ok := <-s.send:
		if !ok {
			t.Fatalf("send queue closed")
		}
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("bad frame %s: %v", raw, err)
		}
		return env
	default:
		t.Fatalf("expected a queued event for session %s", s.id)
	}
	return Envelope{}
}

func drainEvents(s *Session) {
	for {
		select {
		case <-s.send:
		default:
			return
		}
	}
}

func expectNoEvent(t *testing.T, s *Session) {
	t.Helper()
	select {
	case raw := <-s.send:
		t.Fatalf("unexpected event %s", raw)
	default:
	}
}

func decodeUserList(t *testing.T, env Envelope) []string {
	t.Helper()
	if env.Event != EventUserList {
		t.Fatalf("expected userList, got %s", env.Event)
	}
	var users []string
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	sort.Strings(users)
	return users
}

func decodeIncoming(t *testing.T, env Envelope) IncomingMessageEvent {
	t.Helper()
	if env.Event != EventPrivateMessage {
		t.Fatalf("expected privateMessage, got %s", env.Event)
	}
	var msg IncomingMessageEvent
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	return msg
}

func TestJoinBroadcastsUserListToEverySession(t *testing.T) {
	h := NewHub(&fakeRecorder{})
	anon := connectedSession(t, h)
	alice := connectedSession(t, h)

	h.Join(alice, "alice")

	for _, s := range []*Session{anon, alice} {
		users := decodeUserList(t, nextEvent(t, s))
		if len(users) != 1 || users[0] != "alice" {
			t.Fatalf("expected [alice], got %v", users)
		}
	}
}

func TestSendRelaysToSenderAndRecipient(t *testing.T) {
	rec := &fakeRecorder{}
	h := NewHub(rec)
	alice := connectedSession(t, h)
	bob := connectedSession(t, h)
	carol := connectedSession(t, h)
	h.Join(alice, "alice")
	h.Join(bob, "bob")
	h.Join(carol, "carol")
	for _, s := range []*Session{alice, bob, carol} {
		drainEvents(s)
	}

	h.Send(context.Background(), alice, "bob", "hi", models.KindText)

	for _, s := range []*Session{alice, bob} {
		got := decodeIncoming(t, nextEvent(t, s))
		want := IncomingMessageEvent{From: "alice", Message: "hi", Type: models.KindText}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	}
	expectNoEvent(t, carol)

	if rec.count() != 1 || rec.msgs[0] != (recorded{"alice", "bob", "hi", models.KindText}) {
		t.Fatalf("unexpected recorded messages %+v", rec.msgs)
	}
}

func TestSendReachesEverySessionSharingAName(t *testing.T) {
	h := NewHub(&fakeRecorder{})
	b1 := connectedSession(t, h)
	b2 := connectedSession(t, h)
	a1 := connectedSession(t, h)
	a2 := connectedSession(t, h)
	h.Join(b1, "B")
	h.Join(b2, "B")
	h.Join(a1, "A")
	h.Join(a2, "A")
	for _, s := range []*Session{a1, a2, b1, b2} {
		drainEvents(s)
	}

	h.Send(context.Background(), b1, "A", "yo", models.KindGIF)

	for _, s := range []*Session{a1, a2, b1, b2} {
		if got := decodeIncoming(t, nextEvent(t, s)); got.From != "B" {
			t.Fatalf("expected from=B, got %+v", got)
		}
	}
}

func TestSendWithoutJoinIsIgnored(t *testing.T) {
	rec := &fakeRecorder{}
	h := NewHub(rec)
	anon := connectedSession(t, h)
	bob := connectedSession(t, h)
	h.Join(bob, "bob")
	drainEvents(anon)
	drainEvents(bob)

	h.Send(context.Background(), anon, "bob", "hi", models.KindText)

	if rec.count() != 0 {
		t.Fatalf("expected nothing recorded, got %d", rec.count())
	}
	expectNoEvent(t, anon)
	expectNoEvent(t, bob)
}

func TestSendSkipsRelayWhenStoreFails(t *testing.T) {
	h := NewHub(&fakeRecorder{err: errors.New("db down")})
	alice := connectedSession(t, h)
	bob := connectedSession(t, h)
	h.Join(alice, "alice")
	h.Join(bob, "bob")
	drainEvents(alice)
	drainEvents(bob)

	h.Send(context.Background(), alice, "bob", "hi", models.KindText)

	expectNoEvent(t, alice)
	expectNoEvent(t, bob)
}

func TestLeaveRemovesUsernameFromBroadcast(t *testing.T) {
	h := NewHub(&fakeRecorder{})
	alice := connectedSession(t, h)
	bob := connectedSession(t, h)
	h.Join(alice, "alice")
	h.Join(bob, "bob")
	drainEvents(alice)
	drainEvents(bob)

	h.Leave(alice)

	if _, ok := <-alice.send; ok {
		t.Fatalf("expected alice's queue to be closed")
	}
	users := decodeUserList(t, nextEvent(t, bob))
	if len(users) != 1 || users[0] != "bob" {
		t.Fatalf("expected [bob], got %v", users)
	}
	if got := h.Users(); len(got) != 1 || got[0] != "bob" {
		t.Fatalf("expected Users()=[bob], got %v", got)
	}

	// second Leave is a no-op
	h.Leave(alice)
	expectNoEvent(t, bob)
}

func TestRejoinReplacesUsername(t *testing.T) {
	h := NewHub(&fakeRecorder{})
	s := connectedSession(t, h)
	h.Join(s, "alice")
	h.Join(s, "alice2")

	users := h.Users()
	if len(users) != 1 || users[0] != "alice2" {
		t.Fatalf("expected [alice2], got %v", users)
	}
}

func TestFullQueueDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub(&fakeRecorder{})
	s := connectedSession(t, h)
	h.Join(s, "alice")
	for i := 0; i < sendBuffer*2; i++ {
		h.Send(context.Background(), s, "alice", "spam", models.KindText)
	}
	if len(s.send) != sendBuffer {
		t.Fatalf("expected full buffer of %d, got %d", sendBuffer, len(s.send))
	}
}

func TestShutdownRefusesNewSessions(t *testing.T) {
	h := NewHub(&fakeRecorder{})
	if err := h.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if h.Register(NewSession(nil, h, "late")) {
		t.Fatalf("expected register to be refused after shutdown")
	}
}

func TestShutdownHonoursContext(t *testing.T) {
	h := NewHub(&fakeRecorder{})
	connectedSession(t, h) // never leaves

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.Shutdown(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
