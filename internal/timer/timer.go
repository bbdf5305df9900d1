// Package timer provides cancellable one-shot timers and a throttle guard
// for the preview engines. Timers are not safe for concurrent use; the
// owner is expected to run them on a single event loop and route callbacks
// back onto it through the scheduler's Post hook.
package timer

import (
	"time"
)

// Stopper cancels a scheduled callback. *time.Timer satisfies it.
type Stopper interface {
	Stop() bool
}

// Scheduler runs fn after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Stopper
}

// Real schedules with time.AfterFunc. When Post is set, callbacks are handed
// to it instead of running on the timer goroutine.
type Real struct {
	Post func(func())
}

// AfterFunc implements Scheduler.
func (r Real) AfterFunc(d time.Duration, fn func()) Stopper {
	return time.AfterFunc(d, func() {
		if r.Post != nil {
			r.Post(fn)
			return
		}
		fn()
	})
}

// Timer is a restartable one-shot timer.
type Timer struct {
	sched   Scheduler
	pending Stopper
	gen     uint64
}

// New returns a Timer driven by sched.
func New(sched Scheduler) *Timer {
	return &Timer{sched: sched}
}

// Start schedules fn after d, cancelling any callback still pending.
func (t *Timer) Start(d time.Duration, fn func()) {
	t.Cancel()
	t.gen++
	gen := t.gen
	t.pending = t.sched.AfterFunc(d, func() {
		// A callback that was already queued when Cancel ran must not fire.
		if gen != t.gen || t.pending == nil {
			return
		}
		t.pending = nil
		fn()
	})
}

// Cancel drops the pending callback. It reports whether one was pending.
func (t *Timer) Cancel() bool {
	if t.pending == nil {
		return false
	}
	t.pending.Stop()
	t.pending = nil
	t.gen++
	return true
}

// Pending reports whether a callback is scheduled and has not run.
func (t *Timer) Pending() bool {
	return t.pending != nil
}

// Throttle runs at most one callback per interval. Triggers that arrive
// while a callback is pending are dropped, not queued.
type Throttle struct {
	interval time.Duration
	timer    *Timer
}

// NewThrottle returns a Throttle with the given interval.
func NewThrottle(sched Scheduler, interval time.Duration) *Throttle {
	return &Throttle{interval: interval, timer: New(sched)}
}

// Trigger schedules fn unless a callback is already pending. It reports
// whether fn was scheduled.
func (th *Throttle) Trigger(fn func()) bool {
	if th.timer.Pending() {
		return false
	}
	th.timer.Start(th.interval, fn)
	return true
}

// Cancel drops any pending callback.
func (th *Throttle) Cancel() bool {
	return th.timer.Cancel()
}

// Pending reports whether a callback is waiting.
func (th *Throttle) Pending() bool {
	return th.timer.Pending()
}
