package game

import "time"

// Timer is a scheduled callback. Stop is idempotent.
type Timer interface {
	Stop()
}

// Scheduler runs deferred and repeating callbacks for a session.
// Callbacks must be delivered on the goroutine that drives the session.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}

// ManualScheduler is a Scheduler driven by a virtual clock. Callbacks only
// run inside Advance, on the caller's goroutine.
type ManualScheduler struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	every   time.Duration
	seq     int
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() {
	t.stopped = true
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc schedules f once, d after the current virtual time.
func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return m.add(d, 0, f)
}

// Every schedules f every d. It panics if d is not positive, like time.NewTicker.
func (m *ManualScheduler) Every(d time.Duration, f func()) Timer {
	if d <= 0 {
		panic("game: non-positive interval for ManualScheduler.Every")
	}
	return m.add(d, d, f)
}

func (m *ManualScheduler) add(d, every time.Duration, f func()) Timer {
	m.seq++
	t := &manualTimer{at: m.now + d, every: every, seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Now returns the virtual time elapsed since creation.
func (m *ManualScheduler) Now() time.Duration {
	return m.now
}

// Pending returns the number of timers that have not been stopped or fired.
func (m *ManualScheduler) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due callbacks in time order.
// Callbacks may schedule or stop other timers.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.now = t.at
		if t.every > 0 {
			t.at += t.every
		} else {
			t.stopped = true
		}
		t.f()
	}
	m.now = target
	m.compact()
}

func (m *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	var next *manualTimer
	for _, t := range m.timers {
		if t.stopped || t.at > target {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (m *ManualScheduler) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.timers); i++ {
		m.timers[i] = nil
	}
	m.timers = live
}
