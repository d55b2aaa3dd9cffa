package models

import (
	"errors"
	"testing"
)

func TestMessageKindValid(t *testing.T) {
	for _, k := range []MessageKind{KindText, KindImage, KindVideo, KindGIF} {
		if !k.Valid() {
			t.Fatalf("expected %q to be valid", k)
		}
	}
	for _, k := range []MessageKind{"", "audio", "TEXT"} {
		if k.Valid() {
			t.Fatalf("expected %q to be rejected", k)
		}
	}
}

func TestMessageBeforeCreate(t *testing.T) {
	ok := Message{FromUser: "alice", ToUser: "bob", Body: "hi", Kind: KindText}
	if err := ok.BeforeCreate(nil); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}

	cases := map[string]Message{
		"no sender":    {ToUser: "bob", Body: "hi", Kind: KindText},
		"no recipient": {FromUser: "alice", Body: "hi", Kind: KindText},
		"no body":      {FromUser: "alice", ToUser: "bob", Kind: KindText},
		"bad kind":     {FromUser: "alice", ToUser: "bob", Body: "hi", Kind: "sticker"},
	}
	for name, m := range cases {
		if err := m.BeforeCreate(nil); !errors.Is(err, ErrInvalidMessage) {
			t.Fatalf("%s: expected ErrInvalidMessage, got %v", name, err)
		}
	}
}

func TestUserPassword(t *testing.T) {
	var u User
	if err := u.SetPassword("pw1"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if u.PasswordHash == "pw1" || u.PasswordHash == "" {
		t.Fatalf("expected a hashed password")
	}
	if !u.CheckPassword("pw1") {
		t.Fatalf("expected password to match")
	}
	if u.CheckPassword("wrong") {
		t.Fatalf("expected wrong password to fail")
	}
}
