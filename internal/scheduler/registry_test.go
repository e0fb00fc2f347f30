package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestRegistry_ScheduleAndFire(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	var fired atomic.Int32
	done := make(chan struct{})
	r.Schedule(ScheduledReminder{FireAt: now.Add(10 * time.Millisecond), Kind: ReminderPrimary}, now, func(ScheduledReminder) {
		fired.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}

	if fired.Load() != 1 {
		t.Errorf("expected exactly one fire, got %d", fired.Load())
	}
	if got := len(r.Pending()); got != 0 {
		t.Errorf("fired timer should leave the registry, %d pending", got)
	}
}

func TestRegistry_Cancel(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	id := r.Schedule(ScheduledReminder{FireAt: now.Add(time.Hour), Kind: ReminderPrimary}, now, func(ScheduledReminder) {
		t.Error("cancelled timer must not fire")
	})

	if !r.Cancel(id) {
		t.Error("Cancel should report true for a pending timer")
	}
	if r.Cancel(id) {
		t.Error("Cancel should report false for an already-cancelled timer")
	}
	if got := len(r.Pending()); got != 0 {
		t.Errorf("expected empty registry after cancel, %d pending", got)
	}
}

func TestRegistry_CancelAll(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	for i := 0; i < 3; i++ {
		r.Schedule(ScheduledReminder{FireAt: now.Add(time.Hour), Kind: ReminderSecondary}, now, func(ScheduledReminder) {
			t.Error("cancelled timer must not fire")
		})
	}

	if n := r.CancelAll(); n != 3 {
		t.Errorf("CancelAll = %d, want 3", n)
	}
	if n := r.CancelAll(); n != 0 {
		t.Errorf("second CancelAll = %d, want 0", n)
	}
}

func TestRegistry_PendingOrderedByFireTime(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	r.Schedule(ScheduledReminder{FireAt: now.Add(2 * time.Hour), Kind: ReminderSecondary}, now, func(ScheduledReminder) {})
	r.Schedule(ScheduledReminder{FireAt: now.Add(1 * time.Hour), Kind: ReminderPrimary}, now, func(ScheduledReminder) {})

	pending := r.Pending()
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}
	if !pending[0].FireAt.Before(pending[1].FireAt) {
		t.Error("pending timers should be ordered by fire time")
	}
	if pending[0].Kind != ReminderPrimary {
		t.Errorf("earliest pending should be the primary, got %v", pending[0].Kind)
	}

	r.CancelAll()
}
