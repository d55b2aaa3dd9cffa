package realtime

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 1 << 20 // 1MB, base64 media bodies included
	sendBuffer     = 256
)

// Session is one live websocket connection, optionally bound to a
// username through a join event. username is guarded by the hub lock.
type Session struct {
	id       string
	addr     string
	conn     *websocket.Conn
	hub      *Hub
	send     chan []byte
	username string
}

func NewSession(conn *websocket.Conn, hub *Hub, addr string) *Session {
	return &Session{
		id:   uuid.NewString(),
		addr: addr,
		conn: conn,
		hub:  hub,
		send: make(chan []byte, sendBuffer),
	}
}

func (s *Session) ID() string { return s.id }

// Serve registers the session and pumps frames until the connection
// closes. It blocks for the lifetime of the connection.
func (s *Session) Serve(ctx context.Context) {
	if !s.hub.Register(s) {
		s.closeConn()
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.writePump()
	}()

	s.readPump(ctx)
	s.hub.Leave(s)
	<-done
}

// enqueue hands payload to the write pump without blocking. Must be called
// with the hub lock held so the channel cannot be closed underneath.
func (s *Session) enqueue(payload []byte) {
	select {
	case s.send <- payload:
	default:
		log.Printf("[ws] session %s send buffer full; dropping event", s.id)
	}
}

func (s *Session) closeConn() {
	if s.conn == nil {
		return
	}
	if err := s.conn.Close(); err != nil && !isExpectedCloseError(err) {
		log.Printf("[ws] close %s: %v", s.id, err)
	}
}

func (s *Session) readPump(ctx context.Context) {
	defer s.closeConn()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		mt, raw, err := s.conn.ReadMessage()
		if err != nil {
			s.logReadError(err)
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}
		s.dispatch(ctx, raw)
	}
}

func (s *Session) dispatch(ctx context.Context, raw []byte) {
	ev, err := DecodeClientEvent(raw)
	if err != nil {
		log.Printf("[ws] session %s: %v", s.id, err)
		return
	}
	switch ev := ev.(type) {
	case JoinEvent:
		s.hub.Join(s, ev.Username)
	case PrivateMessageEvent:
		s.hub.Send(ctx, s, ev.To, ev.Message, ev.Type)
	}
}

func (s *Session) logReadError(err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		log.Printf("[ws] session %s exceeded %d bytes", s.id, maxMessageSize)
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway),
		errors.Is(err, io.EOF), isExpectedCloseError(err):
		// normal disconnect
	default:
		log.Printf("[ws] read error from %s: %v", s.addr, err)
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.closeConn()
	}()

	for {
		select {
		case payload, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				if !isExpectedCloseError(err) {
					log.Printf("[ws] write to %s: %v", s.addr, err)
				}
				s.closeConn()
				s.drain()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.closeConn()
				s.drain()
				return
			}
		}
	}
}

// drain discards queued events until the hub closes the queue, so a dead
// writer never leaves the hub holding a full buffer.
func (s *Session) drain() {
	for range s.send {
	}
}

func isExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, websocket.ErrCloseSent) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "use of closed network connection") ||
		strings.Contains(msg, "broken pipe")
}
