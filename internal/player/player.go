// Package player models the playback session the dispatch engine
// collaborates with: one session per guild, exposing only the coarse state
// and actions the router and music commands need. Audio transport itself
// lives behind this surface.
package player

import (
	"math/rand"
	"sync"
)

// LoopMode controls what happens when the current track ends.
type LoopMode int

const (
	LoopOff LoopMode = iota
	LoopTrack
	LoopQueue
)

// Next cycles off -> track -> queue -> off.
func (m LoopMode) Next() LoopMode {
	switch m {
	case LoopOff:
		return LoopTrack
	case LoopTrack:
		return LoopQueue
	default:
		return LoopOff
	}
}

func (m LoopMode) String() string {
	switch m {
	case LoopTrack:
		return "track"
	case LoopQueue:
		return "queue"
	default:
		return "off"
	}
}

// ParseLoopMode maps a user-supplied argument to a LoopMode.
func ParseLoopMode(s string) (LoopMode, bool) {
	switch s {
	case "off", "none":
		return LoopOff, true
	case "track", "one", "song":
		return LoopTrack, true
	case "queue", "all":
		return LoopQueue, true
	}
	return LoopOff, false
}

// Track is a queued item. Resolution of the actual media is out of scope.
type Track struct {
	Title       string
	URL         string
	RequesterID string
}

// Session is the per-guild playback state.
type Session struct {
	mu      sync.Mutex
	guildID string
	paused  bool
	loop    LoopMode
	current *Track
	queue   []Track
}

// GuildID returns the guild this session belongs to.
func (s *Session) GuildID() string { return s.guildID }

// Enqueue appends a track. The first enqueued track starts "playing".
func (s *Session) Enqueue(t Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		s.current = &t
		return
	}
	s.queue = append(s.queue, t)
}

// Current returns the playing track, if any.
func (s *Session) Current() (Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Track{}, false
	}
	return *s.current, true
}

// Queue returns a copy of the pending tracks.
func (s *Session) Queue() []Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Track, len(s.queue))
	copy(out, s.queue)
	return out
}

// TogglePause flips the pause state and reports the new state.
func (s *Session) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	return s.paused
}

// Paused reports whether playback is paused.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Loop returns the current loop mode.
func (s *Session) Loop() LoopMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loop
}

// SetLoop sets the loop mode.
func (s *Session) SetLoop(m LoopMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop = m
}

// Skip advances to the next queued track. With LoopQueue the skipped track
// is re-appended to the tail. Returns the new current track, if any.
func (s *Session) Skip() (Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Track{}, false
	}
	if s.loop == LoopQueue {
		s.queue = append(s.queue, *s.current)
	}
	if len(s.queue) == 0 {
		s.current = nil
		return Track{}, false
	}
	next := s.queue[0]
	s.queue = s.queue[1:]
	s.current = &next
	return next, true
}

// Shuffle randomizes the pending queue order. The current track is untouched.
func (s *Session) Shuffle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	rand.Shuffle(len(s.queue), func(i, j int) {
		s.queue[i], s.queue[j] = s.queue[j], s.queue[i]
	})
}

// Reset clears all playback state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
	s.loop = LoopOff
	s.current = nil
	s.queue = nil
}

// Manager owns the per-guild sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the session for a guild, if one exists.
func (m *Manager) Get(guildID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[guildID]
	return s, ok
}

// GetOrCreate returns the session for a guild, creating it on first use.
func (m *Manager) GetOrCreate(guildID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[guildID]
	if !ok {
		s = &Session{guildID: guildID}
		m.sessions[guildID] = s
	}
	return s
}

// Destroy removes a guild's session.
func (m *Manager) Destroy(guildID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, guildID)
}
