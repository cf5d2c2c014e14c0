package commands

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/moriz82/folio/internal/page"
	"github.com/moriz82/folio/internal/ui"
	"github.com/moriz82/folio/internal/ui/notifier"
)

// TUIOptions holds options for the tui command.
type TUIOptions struct {
	Watch bool
	Plain bool
}

// NewTUICommand creates the tui command.
func NewTUICommand() *cobra.Command {
	opts := &TUIOptions{}

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive portfolio",
		Long: `Open the full-screen portfolio: the animated terminal transcript, the
repository grid, the paginated blog carousel and the challenge statistics.

The page file is watched and the widgets rebuild when it changes.`,
		Example: `  # Open the page in the current directory
  folio tui

  # Another page, logging to a file
  folio tui --page site/index.html --log-file folio.log`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Rebuild widgets when the page changes")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "Disable colors")

	return cmd
}

func runTUI(cmd *cobra.Command, opts *TUIOptions) error {
	cc := NewCommandContext(cmd)

	// The screen belongs to the program: only a log file may receive logs.
	logger := cc.Logger
	if cc.Cfg.LogFile == "" {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var reloads chan string
	if opts.Watch {
		n := notifier.New[string]()
		defer n.Close()
		reloads = n.Subscribe()

		go func() {
			err := page.Watch(ctx, cc.Cfg.Page, page.DefaultDebounce, logger, func() {
				n.Broadcast(cc.Cfg.Page)
			})
			if err != nil {
				logger.Warn("page watch stopped", "error", err)
			}
		}()
	}

	m, err := ui.New(ui.Options{
		PagePath:    cc.Cfg.Page,
		Widgets:     cc.Cfg.WidgetOptions(),
		Typewriter:  cc.Cfg.PlayerConfig(),
		Breakpoints: cc.Cfg.Carousel.Breakpoints,
		Logger:      logger,
		Reloads:     reloads,
		Output:      cc.Out,
		Plain:       opts.Plain,
		Context:     ctx,
	})
	if err != nil {
		return err
	}

	prog := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cc.Out),
	)
	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
