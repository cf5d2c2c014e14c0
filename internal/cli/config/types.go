// Package config loads folio configuration: built-in defaults, then folio.yaml,
// then FOLIO_ environment variables, then explicitly set command-line flags.
package config

import (
	"time"

	"github.com/moriz82/folio/internal/carousel"
	"github.com/moriz82/folio/internal/source"
	"github.com/moriz82/folio/internal/typewriter"
	"github.com/moriz82/folio/internal/widgets"
)

// Config holds all folio configuration.
type Config struct {
	// Page is the host page. Relative paths from the config file resolve
	// against the config file's directory.
	Page     string        `koanf:"page"`
	LogLevel string        `koanf:"log_level"`
	LogFile  string        `koanf:"log_file"`
	Output   string        `koanf:"output"`
	Timeout  time.Duration `koanf:"timeout"`

	Carousel   CarouselConfig   `koanf:"carousel"`
	GitHub     GitHubConfig     `koanf:"github"`
	Stats      StatsConfig      `koanf:"stats"`
	Typewriter TypewriterConfig `koanf:"typewriter"`
}

// CarouselConfig overrides the page's blog carousel attributes.
type CarouselConfig struct {
	Source          string               `koanf:"source"`
	SecondarySource string               `koanf:"secondary_source"`
	Breakpoints     carousel.Breakpoints `koanf:"breakpoints"`
}

// GitHubConfig configures the repository grid.
type GitHubConfig struct {
	User           string `koanf:"user"`
	PinnedEndpoint string `koanf:"pinned_endpoint"`
	APIBaseURL     string `koanf:"api_base_url"`
	// Token may reference an environment variable as ${VAR}.
	Token string `koanf:"token"`
	Limit int    `koanf:"limit"`
}

// StatsConfig overrides the page's statistics source.
type StatsConfig struct {
	Primary   string `koanf:"primary"`
	Secondary string `koanf:"secondary"`
}

// TypewriterConfig controls the transcript animation.
type TypewriterConfig struct {
	Prompt       string        `koanf:"prompt"`
	TypingDelay  time.Duration `koanf:"typing_delay"`
	CommandDelay time.Duration `koanf:"command_delay"`
	Loop         bool          `koanf:"loop"`
	LoopDelay    time.Duration `koanf:"loop_delay"`
}

// Output formats.
const (
	OutputTable    = "table"
	OutputJSON     = "json"
	OutputMarkdown = "markdown"
	OutputHTML     = "html"
	OutputText     = "text"
)

// Default configuration values.
const (
	DefaultPage     = "index.html"
	DefaultLogLevel = "info"
	DefaultOutput   = OutputTable
	DefaultTimeout  = source.DefaultTimeout
)

// OutputFormats lists the accepted output values.
var OutputFormats = []string{OutputTable, OutputJSON, OutputMarkdown, OutputHTML, OutputText}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Page:     DefaultPage,
		LogLevel: DefaultLogLevel,
		Output:   DefaultOutput,
		Timeout:  DefaultTimeout,
		Carousel: CarouselConfig{
			Breakpoints: carousel.DefaultBreakpoints(),
		},
		GitHub: GitHubConfig{
			PinnedEndpoint: widgets.DefaultPinnedEndpoint,
			Limit:          widgets.DefaultRepoLimit,
		},
		Typewriter: TypewriterConfig{
			TypingDelay:  typewriter.DefaultTypingDelay,
			CommandDelay: typewriter.DefaultCommandDelay,
			LoopDelay:    typewriter.DefaultLoopDelay,
		},
	}
}

// WidgetOptions maps the configuration onto widget overrides.
func (c *Config) WidgetOptions() widgets.Options {
	return widgets.Options{
		Timeout:             c.Timeout,
		PostSource:          c.Carousel.Source,
		SecondaryPostSource: c.Carousel.SecondarySource,
		GitHubUser:          c.GitHub.User,
		PinnedEndpoint:      c.GitHub.PinnedEndpoint,
		GitHubAPIURL:        c.GitHub.APIBaseURL,
		GitHubToken:         c.GitHub.Token,
		RepoLimit:           c.GitHub.Limit,
		StatsPrimary:        c.Stats.Primary,
		StatsSecondary:      c.Stats.Secondary,
	}
}

// PlayerConfig maps the configuration onto the typewriter player.
func (c *Config) PlayerConfig() typewriter.Config {
	return typewriter.Config{
		Prompt:       c.Typewriter.Prompt,
		TypingDelay:  c.Typewriter.TypingDelay,
		CommandDelay: c.Typewriter.CommandDelay,
		Loop:         c.Typewriter.Loop,
		LoopDelay:    c.Typewriter.LoopDelay,
	}
}
