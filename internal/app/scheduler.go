package app

import (
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/foodmaze/internal/game"
)

// poster queues events for the goroutine that polls the screen.
type poster interface {
	PostEvent(ev tcell.Event) error
}

// loopScheduler runs session timers on the event loop. Timers fire on their
// own goroutines but only post an interrupt; the callback itself runs when
// the loop handles that interrupt.
type loopScheduler struct {
	post poster
}

func newLoopScheduler(p poster) *loopScheduler {
	return &loopScheduler{post: p}
}

// loopTimer is stopped from the loop goroutine and checked there before each
// callback, so a callback already queued when Stop is called never runs.
type loopTimer struct {
	stopped bool
	timer   *time.Timer
	done    chan struct{}
	once    sync.Once
}

func (t *loopTimer) Stop() {
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.done != nil {
		t.once.Do(func() { close(t.done) })
	}
}

// AfterFunc runs f on the loop once d has elapsed.
func (s *loopScheduler) AfterFunc(d time.Duration, f func()) game.Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() { s.dispatch(t, f) })
	return t
}

// Every runs f on the loop every d until stopped.
func (s *loopScheduler) Every(d time.Duration, f func()) game.Timer {
	t := &loopTimer{done: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C:
				s.dispatch(t, f)
			}
		}
	}()
	return t
}

func (s *loopScheduler) dispatch(t *loopTimer, f func()) {
	ev := tcell.NewEventInterrupt(func() {
		if !t.stopped {
			f()
		}
	})
	if err := s.post.PostEvent(ev); err != nil {
		log.Printf("Dropped timer event: %v", err)
	}
}

// runInterrupt executes a callback posted by loopScheduler. It reports
// whether ev carried one.
func runInterrupt(ev *tcell.EventInterrupt) bool {
	f, ok := ev.Data().(func())
	if !ok {
		return false
	}
	f()
	return true
}
