package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/moriz82/folio/internal/sched"
	"github.com/moriz82/folio/internal/typewriter"
	"github.com/moriz82/folio/internal/widgets"
)

// PlayOptions holds options for the play command.
type PlayOptions struct {
	Loop         bool
	TypingDelay  time.Duration
	CommandDelay time.Duration
}

// NewPlayCommand creates the play command.
func NewPlayCommand() *cobra.Command {
	opts := &PlayOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the page's terminal transcript",
		Long: `Play the typewriter transcript embedded in the host page on stdout, one
character at a time, without the rest of the interface.`,
		Example: `  # Play once
  folio play

  # Fast replay for recording
  folio play --typing-delay 20ms --command-delay 300ms

  # Repeat until interrupted
  folio play --loop`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Loop, "loop", false, "Restart after the last command")
	cmd.Flags().DurationVar(&opts.TypingDelay, "typing-delay", 0, "Delay between typed characters")
	cmd.Flags().DurationVar(&opts.CommandDelay, "command-delay", 0, "Pause before the next command")

	return cmd
}

func runPlay(cmd *cobra.Command, opts *PlayOptions) error {
	cc := NewCommandContext(cmd)

	p, err := cc.LoadPage()
	if err != nil {
		return err
	}

	cfg := cc.Cfg.PlayerConfig()
	if cmd.Flags().Changed("loop") {
		cfg.Loop = opts.Loop
	}
	if cmd.Flags().Changed("typing-delay") {
		cfg.TypingDelay = opts.TypingDelay
	}
	if cmd.Flags().Changed("command-delay") {
		cfg.CommandDelay = opts.CommandDelay
	}

	loop := sched.NewLoop()
	player, status := widgets.Typewriter(p, cfg, loop)
	if player == nil {
		return errors.New(status)
	}

	w := &framePrinter{w: cc.Out}
	player.OnChange(func(f typewriter.Frame) {
		w.print(f.Text)
		if f.State == typewriter.Finished {
			loop.Stop()
		}
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cc.Logger.Debug("playing transcript", "loop", cfg.Loop)
	loop.Post(player.Start)
	err = loop.Run(ctx)
	_, _ = fmt.Fprintln(cc.Out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// framePrinter writes only what each frame adds to the previous one. A frame
// that does not extend the printed text starts a new block.
type framePrinter struct {
	w       io.Writer
	printed string
}

func (p *framePrinter) print(text string) {
	if !strings.HasPrefix(text, p.printed) {
		_, _ = io.WriteString(p.w, "\n\n")
		p.printed = ""
	}
	_, _ = io.WriteString(p.w, text[len(p.printed):])
	p.printed = text
}
