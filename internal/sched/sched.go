// Package sched is the timer facility shared by folio's widgets.
//
// Widgets never sleep or start goroutines of their own; they ask a Scheduler
// to run a continuation after a delay. Every implementation runs callbacks
// serially, so widget state needs no locking.
package sched

import "time"

// Scheduler runs fn once after d has elapsed. Callbacks never run concurrently
// with each other.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Func adapts a function to the Scheduler interface.
type Func func(d time.Duration, fn func())

// After implements Scheduler.
func (f Func) After(d time.Duration, fn func()) {
	f(d, fn)
}
