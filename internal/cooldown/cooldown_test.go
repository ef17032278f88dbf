package cooldown

import (
	"testing"
	"time"
)

// fakeClock returns a tracker pinned to a controllable time.
func fakeClock(t *Tracker) func(d time.Duration) {
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t.now = func() time.Time { return current }
	t.nowOnce = true
	return func(d time.Duration) { current = current.Add(d) }
}

func TestCheck_FirstUseAdmitted(t *testing.T) {
	tr := New()
	fakeClock(tr)

	if rem, ok := tr.Check("ping", "user", 3, false); !ok || rem != 0 {
		t.Fatalf("Check = (%v, %v), want (0, true)", rem, ok)
	}
	if tr.Len() != 1 {
		t.Errorf("Len = %d, want 1", tr.Len())
	}
}

func TestCheck_DeniedWithinWindow(t *testing.T) {
	tr := New()
	advance := fakeClock(tr)

	tr.Check("ping", "user", 3, false)
	advance(1 * time.Second)

	rem, ok := tr.Check("ping", "user", 3, false)
	if ok {
		t.Fatal("second invocation within window admitted, want denied")
	}
	if rem <= 0 || rem > 3 {
		t.Errorf("remaining = %v, want in (0, 3]", rem)
	}
	if rem != 2.0 {
		t.Errorf("remaining = %v, want 2.0", rem)
	}
}

func TestCheck_AdmittedAfterWindow(t *testing.T) {
	tr := New()
	advance := fakeClock(tr)

	tr.Check("ping", "user", 3, false)
	advance(3 * time.Second)

	if _, ok := tr.Check("ping", "user", 3, false); !ok {
		t.Fatal("invocation after window denied, want admitted")
	}
}

func TestCheck_DenialDoesNotRefresh(t *testing.T) {
	tr := New()
	advance := fakeClock(tr)

	tr.Check("ping", "user", 3, false)
	advance(2 * time.Second)
	tr.Check("ping", "user", 3, false) // denied
	advance(1 * time.Second)           // 3s since first use

	if _, ok := tr.Check("ping", "user", 3, false); !ok {
		t.Fatal("denied invocation extended the window")
	}
}

func TestCheck_PrivilegedNeverDenied(t *testing.T) {
	tr := New()
	fakeClock(tr)

	for i := 0; i < 10; i++ {
		if _, ok := tr.Check("ping", "dev", 3, true); !ok {
			t.Fatalf("privileged user denied on invocation %d", i)
		}
	}
	if tr.Len() != 0 {
		t.Errorf("Len = %d, want 0 records for privileged user", tr.Len())
	}
}

func TestCheck_DefaultSeconds(t *testing.T) {
	tr := New()
	advance := fakeClock(tr)

	tr.Check("ping", "user", 0, false)
	advance(2 * time.Second)
	if _, ok := tr.Check("ping", "user", 0, false); ok {
		t.Fatal("expected default 3s window to still deny at t+2s")
	}
	advance(1 * time.Second)
	if _, ok := tr.Check("ping", "user", 0, false); !ok {
		t.Fatal("expected default 3s window to admit at t+3s")
	}
}

func TestCheck_PairsAreIndependent(t *testing.T) {
	tr := New()
	fakeClock(tr)

	tr.Check("ping", "alice", 3, false)
	if _, ok := tr.Check("ping", "bob", 3, false); !ok {
		t.Error("bob denied by alice's cooldown")
	}
	if _, ok := tr.Check("queue", "alice", 3, false); !ok {
		t.Error("alice denied on a different command")
	}
}

func TestSweep(t *testing.T) {
	tr := New()
	advance := fakeClock(tr)

	tr.Check("ping", "alice", 3, false)
	tr.Check("queue", "bob", 10, false)
	advance(5 * time.Second)

	if n := tr.Sweep(); n != 1 {
		t.Errorf("Sweep removed %d records, want 1", n)
	}
	if tr.Len() != 1 {
		t.Errorf("Len = %d, want 1", tr.Len())
	}
}
