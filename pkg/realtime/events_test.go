package realtime

import (
	"errors"
	"testing"

	"DirectChat/models"
)

func TestDecodeClientEvent(t *testing.T) {
	ev, err := DecodeClientEvent([]byte(`{"event":"join","data":"alice"}`))
	if err != nil {
		t.Fatalf("decode join: %v", err)
	}
	if ev != (JoinEvent{Username: "alice"}) {
		t.Fatalf("unexpected join %+v", ev)
	}

	ev, err = DecodeClientEvent([]byte(`{"event":"privateMessage","data":{"to":"bob","message":"hi","type":"image"}}`))
	if err != nil {
		t.Fatalf("decode privateMessage: %v", err)
	}
	want := PrivateMessageEvent{To: "bob", Message: "hi", Type: models.KindImage}
	if ev != want {
		t.Fatalf("expected %+v, got %+v", want, ev)
	}
}

func TestDecodeClientEventErrors(t *testing.T) {
	if _, err := DecodeClientEvent([]byte(`{"event":"typing","data":null}`)); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
	if _, err := DecodeClientEvent([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for malformed frame")
	}
	if _, err := DecodeClientEvent([]byte(`{"event":"join","data":{"name":"x"}}`)); err == nil {
		t.Fatalf("expected error for non-string join payload")
	}
}

func TestEncodeServerEvents(t *testing.T) {
	raw, err := Encode(IncomingMessageEvent{From: "alice", Message: "hi", Type: models.KindText})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(raw) != `{"event":"privateMessage","data":{"from":"alice","message":"hi","type":"text"}}` {
		t.Fatalf("unexpected frame %s", raw)
	}

	raw, err = Encode(UserListEvent{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(raw) != `{"event":"userList","data":[]}` {
		t.Fatalf("unexpected frame %s", raw)
	}
}
