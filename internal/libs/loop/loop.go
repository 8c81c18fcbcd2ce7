// Package loop provides a single-threaded task loop and a single-slot
// debouncer for page event handling.
package loop

import (
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
)

const defaultQueueSize = 256

// Loop runs posted tasks one at a time on a single dispatch goroutine
type Loop struct {
	tasks  chan func()
	quit   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
	logger zerolog.Logger
}

// New creates a loop and starts its dispatcher
func New(logger zerolog.Logger) *Loop {
	l := &Loop{
		tasks:  make(chan func(), defaultQueueSize),
		quit:   make(chan struct{}),
		logger: logger,
	}

	l.wg.Add(1)
	go l.dispatch()

	return l
}

// Post queues fn without blocking. It reports false when the loop is
// closed or the queue is full, in which case fn is dropped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.quit:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	default:
		l.logger.Warn().Msg("task queue full, dropping task")
		return false
	}
}

// Do runs fn on the loop and waits for it to finish.
// Calling Do from inside a task deadlocks.
func (l *Loop) Do(fn func()) bool {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return false
	}

	select {
	case <-done:
		return true
	case <-l.quit:
		return false
	}
}

// Close stops the dispatcher; queued tasks are discarded
func (l *Loop) Close() {
	l.once.Do(func() {
		close(l.quit)
	})
	l.wg.Wait()
}

func (l *Loop) dispatch() {
	defer l.wg.Done()

	for {
		select {
		case fn := <-l.tasks:
			l.run(fn)
		case <-l.quit:
			for {
				select {
				case <-l.tasks:
				default:
					return
				}
			}
		}
	}
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("task panicked")
		}
	}()
	fn()
}
