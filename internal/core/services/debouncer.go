package services

import (
	"sync"
	"time"
)

// Debouncer delays values until no new value has arrived for an interval.
// At most one commit is pending at a time; each Push replaces it and
// restarts the timer. After Stop no commit is ever delivered.
type Debouncer struct {
	interval time.Duration
	commit   func(string)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewDebouncer creates a debouncer that calls commit with the latest value.
// commit runs on a timer goroutine and must not call back into the debouncer.
func NewDebouncer(interval time.Duration, commit func(string)) *Debouncer {
	return &Debouncer{interval: interval, commit: commit}
}

// Push records value and restarts the quiet period.
func (d *Debouncer) Push(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() { d.fire(gen, value) })
}

// fire delivers a commit unless it was superseded or the debouncer stopped.
// The lock is held across commit so Stop cannot return while one is running.
func (d *Debouncer) fire(gen uint64, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || gen != d.gen {
		return
	}
	d.timer = nil
	d.commit(value)
}

// Cancel drops the pending value, if any. Later pushes still work.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a commit is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels the pending value and disables the debouncer.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
