package typewriter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moriz82/folio/internal/sched"
	"github.com/moriz82/folio/pkg/core"
)

func TestPlayer_SingleEntry(t *testing.T) {
	clock := sched.NewFake()
	p := New([]core.TranscriptEntry{{Command: "scan", Outputs: []string{"ok"}}}, Config{}, clock)

	p.Start()
	assert.Equal(t, "$ s", p.Text())
	assert.Equal(t, TypingCommand, p.State())

	clock.Advance(DefaultTypingDelay)
	assert.Equal(t, "$ sc", p.Text())

	clock.Advance(2 * DefaultTypingDelay)
	assert.Equal(t, "$ scan", p.Text())
	assert.Equal(t, TypingCommand, p.State(), "one more tick before output")

	clock.Advance(DefaultTypingDelay)
	assert.Equal(t, "$ scan\nok\n$ ", p.Text())
	assert.Equal(t, Emitted, p.State(), "last output stays on screen")

	clock.Advance(DefaultCommandDelay - time.Millisecond)
	assert.Equal(t, Emitted, p.State())

	clock.Advance(time.Millisecond)
	assert.Equal(t, Finished, p.State())
	assert.Equal(t, "$ scan\nok\n$ ", p.Text())
	assert.Equal(t, 0, clock.Pending())
}

func TestPlayer_MultipleEntries(t *testing.T) {
	clock := sched.NewFake()
	entries := []core.TranscriptEntry{
		{Command: "ls", Outputs: []string{"a", "b"}},
		{Command: "pwd", Outputs: []string{"/root"}},
	}
	p := New(entries, Config{Prompt: "operator@lab:~$"}, clock)

	var states []State
	p.OnChange(func(f Frame) {
		if len(states) == 0 || states[len(states)-1] != f.State {
			states = append(states, f.State)
		}
	})

	p.Start()
	clock.Drain(100)

	assert.Equal(t, "operator@lab:~$ ls\na\nb\noperator@lab:~$ pwd\n/root\noperator@lab:~$ ", p.Text())
	assert.Equal(t, []State{TypingCommand, Emitted, NextCommand, TypingCommand, Emitted, Finished}, states)
}

func TestPlayer_CommandDelay(t *testing.T) {
	clock := sched.NewFake()
	entries := []core.TranscriptEntry{{Command: "a"}, {Command: "b"}}
	p := New(entries, Config{TypingDelay: 10 * time.Millisecond, CommandDelay: 100 * time.Millisecond}, clock)

	p.Start()
	clock.Advance(10 * time.Millisecond)
	require.Equal(t, Emitted, p.State())
	assert.Equal(t, "$ a\n$ ", p.Text())

	clock.Advance(99 * time.Millisecond)
	assert.Equal(t, Emitted, p.State())

	clock.Advance(time.Millisecond)
	assert.Equal(t, TypingCommand, p.State())
	assert.Equal(t, "$ a\n$ b", p.Text())
}

func TestPlayer_EmptyCommandEmitsImmediately(t *testing.T) {
	clock := sched.NewFake()
	p := New([]core.TranscriptEntry{{Command: "", Outputs: []string{"banner"}}}, Config{}, clock)

	p.Start()
	assert.Equal(t, Emitted, p.State())
	assert.Equal(t, "$ \nbanner\n$ ", p.Text())

	clock.Advance(DefaultCommandDelay)
	assert.Equal(t, Finished, p.State())
	assert.Equal(t, 0, clock.Pending())
}

func TestPlayer_UnicodeTypedPerRune(t *testing.T) {
	clock := sched.NewFake()
	p := New([]core.TranscriptEntry{{Command: "héllo"}}, Config{}, clock)

	p.Start()
	clock.Advance(DefaultTypingDelay)
	assert.Equal(t, "$ hé", p.Text())
}

func TestPlayer_Loop(t *testing.T) {
	clock := sched.NewFake()
	p := New([]core.TranscriptEntry{{Command: "x", Outputs: []string{"y"}}}, Config{Loop: true, LoopDelay: time.Second}, clock)

	p.Start()
	clock.Advance(DefaultTypingDelay)
	assert.Equal(t, "$ x\ny\n$ ", p.Text())
	assert.Equal(t, Emitted, p.State())

	clock.Advance(time.Second)
	assert.Equal(t, "$ x", p.Text())
	assert.Equal(t, TypingCommand, p.State())
}

func TestPlayer_StartIsIdempotent(t *testing.T) {
	clock := sched.NewFake()
	p := New([]core.TranscriptEntry{{Command: "ab"}}, Config{}, clock)

	p.Start()
	p.Start()
	assert.Equal(t, "$ a", p.Text())
	assert.Equal(t, 1, clock.Pending())
}

func TestPlayer_NoEntries(t *testing.T) {
	clock := sched.NewFake()
	p := New(nil, Config{}, clock)

	p.Start()
	assert.Equal(t, Idle, p.State())
	assert.Empty(t, p.Text())
	assert.Equal(t, 0, clock.Pending())
}

func TestFromScript(t *testing.T) {
	clock := sched.NewFake()

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "valid", raw: `[{"command": "scan", "output": ["ok"]}]`},
		{name: "malformed", raw: `[{"command": `, wantErr: core.ErrParseFailure},
		{name: "not an array", raw: `{"command": "scan"}`, wantErr: core.ErrParseFailure},
		{name: "empty array", raw: `[]`, wantErr: core.ErrEmptyResult},
		{name: "missing", raw: "  ", wantErr: core.ErrConfigMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := FromScript([]byte(tt.raw), Config{}, clock)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			p.Start()
			clock.Drain(100)
			text := p.Text()
			assert.True(t, strings.HasSuffix(text, "$ "))
			assert.Less(t, strings.Index(text, "scan"), strings.Index(text, "ok"))
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "typing", TypingCommand.String())
	assert.Equal(t, "finished", Finished.String())
	assert.Equal(t, "unknown", State(42).String())
}
