package token

import "testing"

func TestUserCommandRoundTrip(t *testing.T) {
	id := UserCommand("123456789", "help")
	raw, err := Decode(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	uid, cmd := ParseUserCommand(raw)
	if uid != "123456789" {
		t.Errorf("userID = %q, want %q", uid, "123456789")
	}
	if cmd != "help" {
		t.Errorf("command = %q, want %q", cmd, "help")
	}
}

func TestPlayerActionRoundTrip(t *testing.T) {
	id := PlayerAction("stop")
	raw, err := Decode(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	action, ok := SplitPlayerAction(raw)
	if !ok {
		t.Fatal("SplitPlayerAction = !ok, want ok")
	}
	if action != "stop" {
		t.Errorf("action = %q, want %q", action, "stop")
	}
}

func TestSplitPlayerAction_NotPlayer(t *testing.T) {
	if _, ok := SplitPlayerAction("123_help"); ok {
		t.Error("expected !ok for non-player payload")
	}
	if _, ok := SplitPlayerAction("player"); ok {
		t.Error("expected !ok for bare namespace")
	}
}

func TestDecode_Malformed(t *testing.T) {
	if _, err := Decode("not-base64!!"); err == nil {
		t.Error("expected error for malformed id")
	}
}
