package realtime

import (
	"encoding/json"
	"errors"
	"fmt"

	"DirectChat/models"
)

// Event names on the wire.
const (
	EventJoin           = "join"
	EventPrivateMessage = "privateMessage"
	EventUserList       = "userList"
)

var ErrUnknownEvent = errors.New("unknown event")

// Envelope is the frame exchanged in both directions:
//
//	{"event": "join", "data": "alice"}
//	{"event": "privateMessage", "data": {"to": "bob", "message": "hi", "type": "text"}}
//	{"event": "privateMessage", "data": {"from": "alice", "message": "hi", "type": "text"}}
//	{"event": "userList", "data": ["alice", "bob"]}
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ClientEvent is implemented by JoinEvent and PrivateMessageEvent.
type ClientEvent interface {
	clientEvent()
}

// JoinEvent claims a username for the session.
type JoinEvent struct {
	Username string
}

// PrivateMessageEvent asks the server to store and relay a message.
type PrivateMessageEvent struct {
	To      string             `json:"to"`
	Message string             `json:"message"`
	Type    models.MessageKind `json:"type"`
}

func (JoinEvent) clientEvent()           {}
func (PrivateMessageEvent) clientEvent() {}

// ServerEvent is implemented by IncomingMessageEvent and UserListEvent.
type ServerEvent interface {
	eventName() string
	payload() any
}

// IncomingMessageEvent is delivered to sender and recipient sessions.
type IncomingMessageEvent struct {
	From    string             `json:"from"`
	Message string             `json:"message"`
	Type    models.MessageKind `json:"type"`
}

// UserListEvent carries every currently claimed username.
type UserListEvent struct {
	Users []string
}

func (e IncomingMessageEvent) eventName() string { return EventPrivateMessage }
func (e IncomingMessageEvent) payload() any      { return e }
func (e UserListEvent) eventName() string        { return EventUserList }

func (e UserListEvent) payload() any {
	if e.Users == nil {
		return []string{}
	}
	return e.Users
}

// DecodeClientEvent parses one inbound frame.
func DecodeClientEvent(raw []byte) (ClientEvent, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Event {
	case EventJoin:
		var username string
		if err := json.Unmarshal(env.Data, &username); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Event, err)
		}
		return JoinEvent{Username: username}, nil
	case EventPrivateMessage:
		var msg PrivateMessageEvent
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Event, err)
		}
		return msg, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Event)
	}
}

// Encode renders a server event as an envelope.
func Encode(ev ServerEvent) ([]byte, error) {
	data, err := json.Marshal(ev.payload())
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: ev.eventName(), Data: data})
}
