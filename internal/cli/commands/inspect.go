package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/moriz82/folio/internal/cli/config"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show which widgets the page enables",
		Long: `Read the host page and report, for every widget, whether its mount point is
present and what data source it will use. Nothing is fetched.`,
		RunE: runInspect,
	}
}

type diagnosticJSON struct {
	Widget  string `json:"widget"`
	Enabled bool   `json:"enabled"`
	Detail  string `json:"detail"`
}

func runInspect(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)

	p, err := cc.LoadPage()
	if err != nil {
		return err
	}
	diags := p.Diagnostics()

	if cc.Cfg.Output == config.OutputJSON {
		out := make([]diagnosticJSON, 0, len(diags))
		for _, d := range diags {
			out = append(out, diagnosticJSON{d.Widget, d.Enabled, d.Reason})
		}
		enc := json.NewEncoder(cc.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cc.Out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Widget", "Enabled", "Detail"})
	for _, d := range diags {
		enabled := "no"
		if d.Enabled {
			enabled = "yes"
		}
		t.AppendRow(table.Row{d.Widget, enabled, d.Reason})
	}

	if cc.Cfg.Output == config.OutputMarkdown {
		t.RenderMarkdown()
	} else {
		t.SetTitle(p.Path)
		t.Render()
	}

	if used := config.GetConfigFileUsed(); used != "" {
		_, _ = fmt.Fprintf(cc.Out, "config: %s\n", used)
	}
	return nil
}
