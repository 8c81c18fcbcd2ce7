package loop

import (
	"sync"
	"time"
)

// Debouncer holds at most one pending task. Each Trigger replaces the
// pending task and restarts the wait; only the trailing call runs.
type Debouncer struct {
	loop *Loop
	wait time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewDebouncer creates a debouncer that runs its tasks on l after wait
func NewDebouncer(l *Loop, wait time.Duration) *Debouncer {
	return &Debouncer{loop: l, wait: wait}
}

// Trigger schedules fn to run on the loop once wait has passed without
// another Trigger or Cancel.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() {
		d.loop.Post(func() {
			if d.current(gen) {
				fn()
			}
		})
	})
}

// Cancel drops the pending task, including one whose timer already fired
// but has not run yet.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
}

// Pending reports whether a task is scheduled and not yet superseded
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.timer != nil
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

func (d *Debouncer) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.gen {
		return false
	}
	d.timer = nil
	return true
}
