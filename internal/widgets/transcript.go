package widgets

import (
	"errors"

	"github.com/moriz82/folio/internal/page"
	"github.com/moriz82/folio/internal/sched"
	"github.com/moriz82/folio/internal/typewriter"
	"github.com/moriz82/folio/pkg/core"
)

// TypewriterMalformed is the status of a page whose transcript cannot be parsed.
const TypewriterMalformed = "Typewriter disabled: transcript is malformed."

// Typewriter builds the transcript player for p. The configured prompt wins
// over the page's data-prompt. On failure it returns a nil player and the
// status to display instead.
func Typewriter(p *page.Page, cfg typewriter.Config, s sched.Scheduler) (*typewriter.Player, string) {
	if !p.Transcript.Present {
		return nil, TypewriterDisabled
	}
	if cfg.Prompt == "" {
		cfg.Prompt = p.Transcript.Prompt
	}

	player, err := typewriter.FromScript(p.Transcript.Script, cfg, s)
	switch {
	case err == nil:
		return player, ""
	case errors.Is(err, core.ErrParseFailure):
		return nil, TypewriterMalformed
	default:
		return nil, TypewriterDisabled
	}
}
