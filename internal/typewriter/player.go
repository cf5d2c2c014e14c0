// Package typewriter animates a scripted terminal session: commands are typed
// one character per tick, their output appears at once, and the next command
// starts after a pause.
package typewriter

import (
	"fmt"
	"strings"
	"time"

	"github.com/moriz82/folio/internal/normalize"
	"github.com/moriz82/folio/internal/sched"
	"github.com/moriz82/folio/pkg/core"
)

// State is a typewriter player state.
type State int

// Player states. Transitions:
//
//	Idle -> TypingCommand -> Emitted -> NextCommand -> TypingCommand ...
//	                                 -> Finished (or Idle again in loop mode)
const (
	Idle State = iota
	TypingCommand
	Emitted
	NextCommand
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case TypingCommand:
		return "typing"
	case Emitted:
		return "emitted"
	case NextCommand:
		return "next"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Default timings.
const (
	DefaultTypingDelay  = 200 * time.Millisecond
	DefaultCommandDelay = 1050 * time.Millisecond
	DefaultLoopDelay    = 3 * time.Second
)

// Config controls prompt and timing. Zero durations take the defaults.
type Config struct {
	Prompt       string
	TypingDelay  time.Duration
	CommandDelay time.Duration
	// Loop restarts the transcript after LoopDelay instead of finishing.
	Loop      bool
	LoopDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.Prompt == "" {
		c.Prompt = core.DefaultPrompt
	}
	if c.TypingDelay <= 0 {
		c.TypingDelay = DefaultTypingDelay
	}
	if c.CommandDelay <= 0 {
		c.CommandDelay = DefaultCommandDelay
	}
	if c.LoopDelay <= 0 {
		c.LoopDelay = DefaultLoopDelay
	}
	return c
}

// Frame is a snapshot delivered to OnChange subscribers after every step.
type Frame struct {
	Text  string
	State State
	Entry int
}

// Player is the typewriter state machine. All methods must be called from the
// scheduler's goroutine.
type Player struct {
	cfg     Config
	entries []core.TranscriptEntry
	sched   sched.Scheduler

	state   State
	cursor  int
	command []rune
	typed   int
	text    strings.Builder

	listeners []func(Frame)
}

// New creates an idle player for entries.
func New(entries []core.TranscriptEntry, cfg Config, s sched.Scheduler) *Player {
	return &Player{
		cfg:     cfg.withDefaults(),
		entries: entries,
		sched:   s,
	}
}

// ParseScript parses a JSON transcript. A blank script is ErrConfigMissing.
func ParseScript(raw []byte) ([]core.TranscriptEntry, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("typewriter: %w: no transcript", core.ErrConfigMissing)
	}
	return normalize.Transcript(raw)
}

// FromScript parses a JSON transcript and creates a player. A malformed or
// empty script returns an error and no player: the widget stays disabled.
func FromScript(raw []byte, cfg Config, s sched.Scheduler) (*Player, error) {
	entries, err := ParseScript(raw)
	if err != nil {
		return nil, err
	}
	return New(entries, cfg, s), nil
}

// OnChange registers fn to receive a frame after every state change or typed
// character. Subscriptions live as long as the player.
func (p *Player) OnChange(fn func(Frame)) {
	p.listeners = append(p.listeners, fn)
}

// Start begins playback. It is a no-op unless the player is Idle and has at
// least one entry.
func (p *Player) Start() {
	if p.state != Idle || len(p.entries) == 0 {
		return
	}
	p.text.Reset()
	p.text.WriteString(p.cfg.Prompt + " ")
	p.cursor = 0
	p.beginCommand()
}

// Text returns the terminal contents revealed so far.
func (p *Player) Text() string {
	return p.text.String()
}

// State returns the current state.
func (p *Player) State() State {
	return p.state
}

// Status describes the player for the widget status line.
func (p *Player) Status() string {
	switch p.state {
	case Idle:
		return fmt.Sprintf("Ready: %d commands", len(p.entries))
	case TypingCommand, NextCommand:
		return fmt.Sprintf("Typing command %d of %d", p.cursor+1, len(p.entries))
	case Emitted:
		return fmt.Sprintf("Output of command %d of %d", p.cursor, len(p.entries))
	case Finished:
		return "Session finished"
	default:
		return ""
	}
}

func (p *Player) beginCommand() {
	p.state = TypingCommand
	p.command = []rune(p.entries[p.cursor].Command)
	p.typed = 0
	p.notify()
	p.typeNext()
}

// typeNext reveals one character and schedules the next. Once the command is
// fully shown it emits the output on the following tick; an empty command
// emits immediately.
func (p *Player) typeNext() {
	if p.typed < len(p.command) {
		p.text.WriteRune(p.command[p.typed])
		p.typed++
		p.notify()
		p.sched.After(p.cfg.TypingDelay, p.typeNext)
		return
	}
	p.emit()
}

func (p *Player) emit() {
	p.state = Emitted
	outputs := p.entries[p.cursor].Outputs

	p.text.WriteString("\n")
	if len(outputs) > 0 {
		p.text.WriteString(strings.Join(outputs, "\n"))
		p.text.WriteString("\n")
	}
	p.text.WriteString(p.cfg.Prompt + " ")
	p.cursor++

	p.notify()
	switch {
	case p.cursor < len(p.entries):
		p.sched.After(p.cfg.CommandDelay, p.next)
	case p.cfg.Loop:
		p.sched.After(p.cfg.LoopDelay, p.restart)
	default:
		p.sched.After(p.cfg.CommandDelay, p.finish)
	}
}

// finish settles the player once the last output has been on screen for a
// command delay.
func (p *Player) finish() {
	p.state = Finished
	p.notify()
}

func (p *Player) next() {
	p.state = NextCommand
	p.notify()
	p.beginCommand()
}

func (p *Player) restart() {
	p.state = Idle
	p.notify()
	p.Start()
}

func (p *Player) notify() {
	if len(p.listeners) == 0 {
		return
	}
	f := Frame{Text: p.text.String(), State: p.state, Entry: p.cursor}
	for _, fn := range p.listeners {
		fn(f)
	}
}
