package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// fireMsg delivers a scheduled callback back into Update.
type fireMsg struct {
	id int
}

// tickScheduler implements sched.Scheduler on top of tea.Tick so that
// callbacks run inside Update, serialized with every other message. Callbacks
// queue tea.Cmds that the model hands to bubbletea after each Update.
type tickScheduler struct {
	next  int
	fns   map[int]func()
	queue []tea.Cmd
}

func newTickScheduler() *tickScheduler {
	return &tickScheduler{fns: make(map[int]func())}
}

// After implements sched.Scheduler.
func (s *tickScheduler) After(d time.Duration, fn func()) {
	s.next++
	id := s.next
	s.fns[id] = fn
	s.queue = append(s.queue, tea.Tick(d, func(time.Time) tea.Msg {
		return fireMsg{id: id}
	}))
}

// fire runs the callback for id. Unknown ids belong to a reset schedule and
// are ignored.
func (s *tickScheduler) fire(id int) {
	fn, ok := s.fns[id]
	if !ok {
		return
	}
	delete(s.fns, id)
	fn()
}

// flush returns the ticks queued since the last flush.
func (s *tickScheduler) flush() tea.Cmd {
	if len(s.queue) == 0 {
		return nil
	}
	cmds := s.queue
	s.queue = nil
	return tea.Batch(cmds...)
}

// reset forgets every pending callback.
func (s *tickScheduler) reset() {
	clear(s.fns)
	s.queue = nil
}

func (s *tickScheduler) pending() int {
	return len(s.fns)
}
