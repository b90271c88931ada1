// Package scheduler provides ports.Scheduler implementations.
package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/doeshing/passgen-go/internal/ports"
)

// Timer schedules callbacks with time.AfterFunc.
type Timer struct{}

// New returns the wall-clock scheduler.
func New() Timer {
	return Timer{}
}

// AfterFunc implements ports.Scheduler.
func (Timer) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}

var _ ports.Scheduler = Timer{}

// Manual is a scheduler driven by explicit Advance calls. Callbacks run on
// the goroutine that calls Advance, in due-time order.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTask
}

type manualTask struct {
	due     time.Duration
	f       func()
	stopped bool
	fired   bool
}

// NewManual returns a scheduler whose clock starts at zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc implements ports.Scheduler.
func (m *Manual) AfterFunc(d time.Duration, f func()) ports.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTask{due: m.now + d, f: f}
	m.tasks = append(m.tasks, t)
	return &manualTimer{m: m, t: t}
}

// Advance moves the clock forward by d and runs every callback that became due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []*manualTask
	remaining := m.tasks[:0]
	for _, t := range m.tasks {
		if t.stopped {
			continue
		}
		if t.due <= m.now {
			t.fired = true
			due = append(due, t)
			continue
		}
		remaining = append(remaining, t)
	}
	m.tasks = remaining
	m.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, t := range due {
		t.f()
	}
}

// Pending reports how many callbacks are scheduled and not stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

type manualTimer struct {
	m *Manual
	t *manualTask
}

func (mt *manualTimer) Stop() bool {
	mt.m.mu.Lock()
	defer mt.m.mu.Unlock()
	if mt.t.stopped || mt.t.fired {
		return false
	}
	mt.t.stopped = true
	return true
}

var _ ports.Scheduler = (*Manual)(nil)
