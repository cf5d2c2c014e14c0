package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(OutputFormats, c.Output) {
		errs = append(errs, fmt.Errorf("output must be one of %s, got %q", strings.Join(OutputFormats, ", "), c.Output))
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q is not a level (debug, info, warn, error)", c.LogLevel))
	}

	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}

	bp := c.Carousel.Breakpoints
	if bp.Medium <= 0 || bp.Wide <= 0 {
		errs = append(errs, fmt.Errorf("carousel breakpoints must be positive, got wide=%d medium=%d", bp.Wide, bp.Medium))
	} else if bp.Medium > bp.Wide {
		errs = append(errs, fmt.Errorf("carousel.breakpoints.medium (%d) exceeds wide (%d)", bp.Medium, bp.Wide))
	}

	if c.GitHub.Limit < 0 {
		errs = append(errs, fmt.Errorf("github.limit must not be negative, got %d", c.GitHub.Limit))
	}

	tw := c.Typewriter
	if tw.TypingDelay < 0 || tw.CommandDelay < 0 || tw.LoopDelay < 0 {
		errs = append(errs, errors.New("typewriter delays must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
