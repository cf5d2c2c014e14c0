// Package commands implements the folio subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/moriz82/folio/internal/cli/config"
	"github.com/moriz82/folio/internal/page"
	"github.com/moriz82/folio/internal/widgets"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Out    io.Writer
	Err    io.Writer
}

// NewCommandContext collects the loaded config, the logger and the command's
// output streams.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(),
		Logger: config.GetLogger(cmd.Context()),
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
	}
}

// LoadPage reads the configured host page.
func (c *CommandContext) LoadPage() (*page.Page, error) {
	p, err := page.Load(c.Cfg.Page)
	if err != nil {
		return nil, fmt.Errorf("%w (set --page or page: in folio.yaml)", err)
	}
	c.Logger.Debug("page loaded", "path", p.Path)
	return p, nil
}

// Widgets builds the widget chains for p from the configuration.
func (c *CommandContext) Widgets(p *page.Page) *widgets.Set {
	opts := c.Cfg.WidgetOptions()
	opts.Logger = c.Logger
	return widgets.New(p, opts)
}

// getConfig returns the loaded configuration, or the defaults when no command
// loaded one.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}
