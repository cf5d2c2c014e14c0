package sched

import (
	"sort"
	"time"
)

// Fake is a manually advanced clock for tests. Nothing fires until Advance or
// Drain is called.
type Fake struct {
	now   time.Duration
	seq   int
	queue []timer
}

type timer struct {
	due time.Duration
	seq int
	fn  func()
}

// NewFake returns a Fake at time zero.
func NewFake() *Fake {
	return &Fake{}
}

// After implements Scheduler.
func (f *Fake) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	f.seq++
	f.queue = append(f.queue, timer{due: f.now + d, seq: f.seq, fn: fn})
}

// Now returns the virtual time elapsed since creation.
func (f *Fake) Now() time.Duration {
	return f.now
}

// Pending returns the number of callbacks waiting to fire.
func (f *Fake) Pending() int {
	return len(f.queue)
}

// Advance moves the clock forward by d, firing every callback that becomes
// due, including callbacks scheduled by other callbacks within the window.
// It returns the number of callbacks fired.
func (f *Fake) Advance(d time.Duration) int {
	target := f.now + d
	fired := 0
	for {
		next, ok := f.pop(target)
		if !ok {
			break
		}
		f.now = next.due
		next.fn()
		fired++
	}
	f.now = target
	return fired
}

// Drain fires callbacks in due order until none remain or limit callbacks have
// run, and returns the virtual time consumed. Use it to run a finite state
// machine to completion.
func (f *Fake) Drain(limit int) time.Duration {
	start := f.now
	for i := 0; i < limit; i++ {
		next, ok := f.pop(-1)
		if !ok {
			break
		}
		f.now = next.due
		next.fn()
	}
	return f.now - start
}

// pop removes and returns the earliest timer due at or before limit.
// A negative limit accepts any timer.
func (f *Fake) pop(limit time.Duration) (timer, bool) {
	if len(f.queue) == 0 {
		return timer{}, false
	}
	sort.SliceStable(f.queue, func(i, j int) bool {
		if f.queue[i].due != f.queue[j].due {
			return f.queue[i].due < f.queue[j].due
		}
		return f.queue[i].seq < f.queue[j].seq
	})
	head := f.queue[0]
	if limit >= 0 && head.due > limit {
		return timer{}, false
	}
	f.queue = f.queue[1:]
	return head, true
}
