package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ScheduledTimer is the registry's view of one pending fire.
type ScheduledTimer struct {
	ID     string
	Kind   ReminderKind
	FireAt time.Time
}

// Registry tracks every scheduled reminder fire as a cancellable value.
// Entries are invalidated as a group when their triggering condition becomes
// stale: goal reached, settings edited, or day rollover.
type Registry struct {
	mu     sync.Mutex
	timers map[string]*registryEntry
}

type registryEntry struct {
	ScheduledTimer
	timer *time.Timer
}

func NewRegistry() *Registry {
	return &Registry{
		timers: make(map[string]*registryEntry),
	}
}

// Schedule registers a reminder and arms a timer that invokes fire at its
// FireAt instant. The entry removes itself from the registry before firing,
// so a fired timer is never also cancellable.
func (r *Registry) Schedule(rem ScheduledReminder, now time.Time, fire func(ScheduledReminder)) string {
	id := uuid.NewString()

	delay := rem.FireAt.Sub(now)
	if delay < 0 {
		delay = 0
	}

	r.mu.Lock()
	entry := &registryEntry{
		ScheduledTimer: ScheduledTimer{
			ID:     id,
			Kind:   rem.Kind,
			FireAt: rem.FireAt,
		},
	}
	entry.timer = time.AfterFunc(delay, func() {
		if r.take(id) {
			fire(rem)
		}
	})
	r.timers[id] = entry
	r.mu.Unlock()

	return id
}

// take removes the entry if still present. Returns false when the entry was
// cancelled between the timer firing and the callback running.
func (r *Registry) take(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.timers[id]; !ok {
		return false
	}
	delete(r.timers, id)
	return true
}

// Cancel stops and removes a single timer. Returns true if it was pending.
func (r *Registry) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.timers[id]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(r.timers, id)
	return true
}

// CancelAll stops every pending timer and returns how many were cancelled.
func (r *Registry) CancelAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.timers)
	for id, entry := range r.timers {
		entry.timer.Stop()
		delete(r.timers, id)
	}
	return n
}

// Pending returns the currently registered timers, ordered by fire time.
func (r *Registry) Pending() []ScheduledTimer {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]ScheduledTimer, 0, len(r.timers))
	for _, entry := range r.timers {
		out = append(out, entry.ScheduledTimer)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FireAt.Before(out[j].FireAt)
	})
	return out
}
