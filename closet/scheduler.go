package closet

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs f once after d. Scheduled work cannot be cancelled.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// TimerScheduler uses real timers.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ManualScheduler only runs work when Advance moves its clock past the due
// time, so the state between scheduling and running can be inspected.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []manualTask
}

type manualTask struct {
	at  time.Duration
	seq int
	f   func()
}

func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.tasks = append(m.tasks, manualTask{at: m.now + d, seq: m.seq, f: f})
}

// Advance moves the clock forward by d and runs everything that became due,
// in due order.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due, rest []manualTask
	for _, t := range m.tasks {
		if t.at <= m.now {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	m.tasks = rest
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.f()
	}
}

// Pending reports how many tasks are waiting.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
