package player

import (
	"sort"
	"testing"
)

func TestLoopModeCycle(t *testing.T) {
	if LoopOff.Next() != LoopTrack {
		t.Error("off should cycle to track")
	}
	if LoopTrack.Next() != LoopQueue {
		t.Error("track should cycle to queue")
	}
	if LoopQueue.Next() != LoopOff {
		t.Error("queue should cycle to off")
	}
}

func TestEnqueueAndCurrent(t *testing.T) {
	s := &Session{}
	if _, ok := s.Current(); ok {
		t.Fatal("empty session reports a current track")
	}
	s.Enqueue(Track{Title: "first"})
	s.Enqueue(Track{Title: "second"})

	cur, ok := s.Current()
	if !ok || cur.Title != "first" {
		t.Errorf("Current = (%v, %v), want first", cur.Title, ok)
	}
	if q := s.Queue(); len(q) != 1 || q[0].Title != "second" {
		t.Errorf("Queue = %v, want [second]", q)
	}
}

func TestSkip(t *testing.T) {
	s := &Session{}
	s.Enqueue(Track{Title: "a"})
	s.Enqueue(Track{Title: "b"})

	next, ok := s.Skip()
	if !ok || next.Title != "b" {
		t.Errorf("Skip = (%v, %v), want b", next.Title, ok)
	}
	if _, ok := s.Skip(); ok {
		t.Error("skipping past the last track should end playback")
	}
	if _, ok := s.Current(); ok {
		t.Error("session still has a current track after final skip")
	}
}

func TestSkipWithLoopQueue(t *testing.T) {
	s := &Session{}
	s.Enqueue(Track{Title: "a"})
	s.Enqueue(Track{Title: "b"})
	s.SetLoop(LoopQueue)

	next, ok := s.Skip()
	if !ok || next.Title != "b" {
		t.Fatalf("Skip = (%v, %v), want b", next.Title, ok)
	}
	if q := s.Queue(); len(q) != 1 || q[0].Title != "a" {
		t.Errorf("Queue = %v, want [a] re-appended", q)
	}
}

func TestTogglePause(t *testing.T) {
	s := &Session{}
	if !s.TogglePause() {
		t.Error("first toggle should pause")
	}
	if s.TogglePause() {
		t.Error("second toggle should resume")
	}
}

func TestShuffleKeepsTracks(t *testing.T) {
	s := &Session{}
	s.Enqueue(Track{Title: "now"})
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		s.Enqueue(Track{Title: title})
	}
	s.Shuffle()

	got := make([]string, 0, 5)
	for _, tr := range s.Queue() {
		got = append(got, tr.Title)
	}
	sort.Strings(got)
	want := []string{"a", "b", "c", "d", "e"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("queue after shuffle = %v, want permutation of %v", got, want)
		}
	}
}

func TestManager(t *testing.T) {
	m := NewManager()
	if _, ok := m.Get("g1"); ok {
		t.Fatal("Get on empty manager returned a session")
	}
	s := m.GetOrCreate("g1")
	if s.GuildID() != "g1" {
		t.Errorf("GuildID = %q, want g1", s.GuildID())
	}
	if again := m.GetOrCreate("g1"); again != s {
		t.Error("GetOrCreate returned a different session for the same guild")
	}
	m.Destroy("g1")
	if _, ok := m.Get("g1"); ok {
		t.Error("session survived Destroy")
	}
}
