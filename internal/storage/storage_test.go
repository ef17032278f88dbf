package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "data.bin"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCommandHistoryRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	rec := CommandHistoryRecord{
		ChannelID: "c1",
		UserID:    "u1",
		Username:  "alice",
		Command:   "play",
		Category:  "music",
		Datetime:  time.Now().UTC(),
	}
	if err := s.AppendCommandHistory("g1", rec); err != nil {
		t.Fatalf("AppendCommandHistory: %v", err)
	}

	got, err := s.CommandHistory("g1")
	if err != nil {
		t.Fatalf("CommandHistory: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Command != "play" || got[0].Username != "alice" {
		t.Errorf("got %+v, want the appended record", got[0])
	}
}

func TestCommandHistoryCapped(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < commandHistoryLimit+5; i++ {
		rec := CommandHistoryRecord{Command: fmt.Sprintf("cmd%d", i)}
		if err := s.AppendCommandHistory("g1", rec); err != nil {
			t.Fatalf("AppendCommandHistory: %v", err)
		}
	}

	got, err := s.CommandHistory("g1")
	if err != nil {
		t.Fatalf("CommandHistory: %v", err)
	}
	if len(got) != commandHistoryLimit {
		t.Fatalf("got %d records, want %d", len(got), commandHistoryLimit)
	}
	if got[len(got)-1].Command != fmt.Sprintf("cmd%d", commandHistoryLimit+4) {
		t.Errorf("newest record is %q, want the last appended", got[len(got)-1].Command)
	}
}

func TestCommandHistoryUnknownGuildEmpty(t *testing.T) {
	s := newTestStorage(t)

	got, err := s.CommandHistory("missing")
	if err != nil {
		t.Fatalf("CommandHistory: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d records for unknown guild, want 0", len(got))
	}
}

func TestCommandHashes(t *testing.T) {
	s := newTestStorage(t)

	if got := s.CommandHashes("global"); len(got) != 0 {
		t.Fatalf("got %d hashes before any save, want 0", len(got))
	}

	want := map[string]string{"ping": "abc", "help": "def"}
	if err := s.SetCommandHashes("global", want); err != nil {
		t.Fatalf("SetCommandHashes: %v", err)
	}

	got := s.CommandHashes("global")
	if len(got) != len(want) {
		t.Fatalf("got %d hashes, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("hash[%q] = %q, want %q", k, got[k], v)
		}
	}

	if got := s.CommandHashes("guild:g1"); len(got) != 0 {
		t.Errorf("scopes must be independent, got %d hashes", len(got))
	}
}
