// Package cooldown rate-limits command use per (command, user) pair with a
// fixed window: a user inside the window is denied outright, not smoothed.
package cooldown

import (
	"context"
	"log"
	"math"
	"sync"
	"time"
)

// DefaultSeconds is applied when a command does not declare a cooldown.
const DefaultSeconds = 3

// Tracker owns all cooldown records. It is safe for concurrent use; records
// self-expire once their window elapses.
type Tracker struct {
	mu      sync.Mutex
	expiry  map[string]map[string]time.Time // command -> user -> next-eligible time
	now     func() time.Time
	nowOnce bool // set when now was overridden; disables async expiry timers
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{
		expiry: make(map[string]map[string]time.Time),
		now:    time.Now,
	}
}

// Check admits or denies an invocation of command by userID. seconds is the
// command's declared cooldown; zero or negative means DefaultSeconds.
// Privileged users are always admitted and never accumulate records. On
// denial, remaining is the time left in seconds rounded to one decimal.
func (t *Tracker) Check(command, userID string, seconds int, privileged bool) (remaining float64, ok bool) {
	if seconds <= 0 {
		seconds = DefaultSeconds
	}
	window := time.Duration(seconds) * time.Second

	t.mu.Lock()
	defer t.mu.Unlock()

	if privileged {
		if users, exists := t.expiry[command]; exists {
			delete(users, userID)
		}
		return 0, true
	}

	now := t.now()
	users := t.expiry[command]
	if users == nil {
		users = make(map[string]time.Time)
		t.expiry[command] = users
	}

	next, exists := users[userID]
	if exists && now.Before(next) {
		remaining = math.Round(next.Sub(now).Seconds()*10) / 10
		return remaining, false
	}

	next = now.Add(window)
	users[userID] = next
	t.scheduleExpiry(command, userID, next, window)
	return 0, true
}

// scheduleExpiry drops the record once its window elapses, unless it was
// refreshed in the meantime. Must be called with the lock held.
func (t *Tracker) scheduleExpiry(command, userID string, next time.Time, window time.Duration) {
	if t.nowOnce {
		return
	}
	time.AfterFunc(window, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if users, exists := t.expiry[command]; exists && users[userID].Equal(next) {
			delete(users, userID)
		}
	})
}

// Sweep removes every record whose window has already elapsed. The timers
// set by Check normally handle this; Sweep is the periodic backstop.
func (t *Tracker) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	removed := 0
	for command, users := range t.expiry {
		for userID, next := range users {
			if !now.Before(next) {
				delete(users, userID)
				removed++
			}
		}
		if len(users) == 0 {
			delete(t.expiry, command)
		}
	}
	return removed
}

// Len returns the number of live records.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, users := range t.expiry {
		n += len(users)
	}
	return n
}

// RunSweeper sweeps stale records every interval until ctx is done.
// Call from main or app lifecycle.
func RunSweeper(ctx context.Context, t *Tracker, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := t.Sweep(); n > 0 {
				log.Printf("[INFO] Swept %d expired cooldown record(s)", n)
			}
		}
	}
}
