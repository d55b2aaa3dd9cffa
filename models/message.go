package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// MessageKind is the content type of a message body.
type MessageKind string

const (
	KindText  MessageKind = "text"
	KindImage MessageKind = "image"
	KindVideo MessageKind = "video"
	KindGIF   MessageKind = "gif"
)

// ErrInvalidMessage is returned by the create hook when a message breaks
// the table invariants.
var ErrInvalidMessage = errors.New("invalid message")

func (k MessageKind) Valid() bool {
	switch k {
	case KindText, KindImage, KindVideo, KindGIF:
		return true
	}
	return false
}

// Message is one private message between two usernames. Records are
// append-only. Column names follow the JSON shape served by the history
// endpoint.
type Message struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	FromUser  string      `gorm:"size:50;not null;index:idx_messages_pair,priority:1" json:"from_user"`
	ToUser    string      `gorm:"size:50;not null;index:idx_messages_pair,priority:2" json:"to_user"`
	Body      string      `gorm:"column:message;type:text;not null" json:"message"`
	Kind      MessageKind `gorm:"column:type;size:10;not null;check:chk_messages_type,type IN ('text','image','video','gif')" json:"type"`
	CreatedAt time.Time   `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	switch {
	case strings.TrimSpace(m.FromUser) == "":
		return fmt.Errorf("%w: from_user is empty", ErrInvalidMessage)
	case strings.TrimSpace(m.ToUser) == "":
		return fmt.Errorf("%w: to_user is empty", ErrInvalidMessage)
	case m.Body == "":
		return fmt.Errorf("%w: message is empty", ErrInvalidMessage)
	case !m.Kind.Valid():
		return fmt.Errorf("%w: unknown type %q", ErrInvalidMessage, m.Kind)
	}
	return nil
}
