// Package ui hosts the page widgets in a bubbletea program.
package ui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moriz82/folio/internal/carousel"
	"github.com/moriz82/folio/internal/page"
	"github.com/moriz82/folio/internal/render"
	"github.com/moriz82/folio/internal/source"
	"github.com/moriz82/folio/internal/typewriter"
	"github.com/moriz82/folio/internal/widgets"
	"github.com/moriz82/folio/pkg/core"
)

// Widget names used for loading state and logs.
const (
	widgetPosts = "posts"
	widgetRepos = "repos"
	widgetStats = "stats"
)

// Options configures the TUI.
type Options struct {
	PagePath    string
	Widgets     widgets.Options
	Typewriter  typewriter.Config
	Breakpoints carousel.Breakpoints
	Logger      *slog.Logger
	// Reloads receives the page path whenever the page file changes.
	Reloads <-chan string
	// Output is the terminal the program draws on. Defaults to stdout.
	Output io.Writer
	// Plain disables colors and text attributes.
	Plain   bool
	Now     func() time.Time
	Context context.Context
}

// Model is the bubbletea model. All widget state is mutated only from Update.
type Model struct {
	opts   Options
	ctx    context.Context
	logger *slog.Logger

	page *page.Page
	set  *widgets.Set
	// gen increments on every page (re)load; results from older generations
	// are dropped.
	gen int

	clock            *tickScheduler
	player           *typewriter.Player
	typewriterStatus string

	carousel *carousel.Controller
	posts    source.Result[core.ContentCard]
	repos    source.Result[core.RepoSummary]
	stats    source.Result[core.StatSnapshot]
	loading  map[string]bool
	notice   string

	term    *render.Terminal
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	width   int
	height  int
}

// =============================================================================
// Messages
// =============================================================================

type postsMsg struct {
	gen int
	res source.Result[core.ContentCard]
}

type reposMsg struct {
	gen int
	res source.Result[core.RepoSummary]
}

type statsMsg struct {
	gen int
	res source.Result[core.StatSnapshot]
}

type reloadMsg struct {
	path string
}

type pageMsg struct {
	page *page.Page
	err  error
}

// =============================================================================
// Construction
// =============================================================================

// New loads the page and builds the model.
func New(opts Options) (*Model, error) {
	p, err := page.Load(opts.PagePath)
	if err != nil {
		return nil, err
	}

	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	opts.Widgets.Logger = opts.Logger

	term := render.NewTerminal(opts.Output, 80)
	if opts.Plain {
		term = render.NewPlainTerminal(opts.Output, 80)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		opts:     opts,
		ctx:      opts.Context,
		logger:   opts.Logger,
		clock:    newTickScheduler(),
		carousel: carousel.New(opts.Breakpoints),
		loading:  make(map[string]bool),
		term:     term,
		spinner:  sp,
		help:     help.New(),
		keys:     defaultKeys(),
	}
	m.applyPage(p)
	return m, nil
}

// applyPage rebuilds every widget for p. Data already on screen stays until
// the new chains answer.
func (m *Model) applyPage(p *page.Page) {
	m.page = p
	m.gen++
	m.clock.reset()
	m.set = widgets.New(p, m.opts.Widgets)
	m.player, m.typewriterStatus = widgets.Typewriter(p, m.opts.Typewriter, m.clock)
	if m.typewriterStatus != "" {
		m.logger.Info("typewriter disabled", "reason", m.typewriterStatus)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start(), m.waitForReload())
}

func (m *Model) start() tea.Cmd {
	if m.player != nil {
		m.player.Start()
	}
	return tea.Batch(m.clock.flush(), m.fetchAll())
}

func (m *Model) fetchAll() tea.Cmd {
	ctx, gen, set := m.ctx, m.gen, m.set
	for _, name := range []string{widgetPosts, widgetRepos, widgetStats} {
		m.loading[name] = true
	}
	return tea.Batch(
		func() tea.Msg { return postsMsg{gen: gen, res: set.Posts.Resolve(ctx)} },
		func() tea.Msg { return reposMsg{gen: gen, res: set.Repos.Resolve(ctx)} },
		func() tea.Msg { return statsMsg{gen: gen, res: set.Stats.Resolve(ctx)} },
	)
}

func (m *Model) waitForReload() tea.Cmd {
	ch := m.opts.Reloads
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg{path: path}
	}
}

func loadPage(path string) tea.Cmd {
	return func() tea.Msg {
		p, err := page.Load(path)
		return pageMsg{page: p, err: err}
	}
}

// =============================================================================
// Update
// =============================================================================

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case fireMsg:
		m.clock.fire(msg.id)
		return m, m.clock.flush()

	case postsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.posts = msg.res
		m.carousel.SetItems(msg.res.Entities)
		m.resolved(widgetPosts, msg.res.Provenance, len(msg.res.Entities))
		return m, nil

	case reposMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.repos = msg.res
		m.resolved(widgetRepos, msg.res.Provenance, len(msg.res.Entities))
		return m, nil

	case statsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.stats = msg.res
		m.resolved(widgetStats, msg.res.Provenance, len(msg.res.Entities))
		return m, nil

	case reloadMsg:
		m.logger.Info("page changed, reloading", "path", msg.path)
		return m, tea.Batch(loadPage(msg.path), m.waitForReload())

	case pageMsg:
		if msg.err != nil {
			m.logger.Warn("page reload failed", "error", msg.err)
			m.notice = "Page reload failed; showing the previous version."
			return m, nil
		}
		m.notice = ""
		m.applyPage(msg.page)
		return m, m.start()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) resolved(widget string, prov core.Provenance, n int) {
	m.loading[widget] = false
	m.logger.Debug("widget resolved", "widget", widget, "provenance", prov.String(), "entities", n)
}

// resize applies a new terminal size immediately; there is no debounce.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	if width > 0 {
		m.term.Width = width
		m.help.Width = width
	}
	m.carousel.Resize(width)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Prev):
		m.carousel.Prev()
	case key.Matches(msg, m.keys.Next):
		m.carousel.Next()
	case key.Matches(msg, m.keys.Page):
		m.carousel.GoTo(int(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchAll()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// =============================================================================
// View
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	var sections []*render.Node

	if m.notice != "" {
		sections = append(sections, render.Status(m.notice))
	}

	if m.player != nil {
		sections = append(sections, render.Section("Terminal", render.Transcript(m.player.Text())))
	} else {
		sections = append(sections, render.Section("Terminal", render.Status(m.typewriterStatus)))
	}

	sections = append(sections, m.reposSection(), m.postsSection(), m.statsSection())

	parts := make([]string, 0, len(sections)+1)
	for _, s := range sections {
		parts = append(parts, m.term.Render(s))
	}
	parts = append(parts, m.help.View(m.keys))
	return strings.Join(parts, "\n\n")
}

func (m *Model) loadingStatus(what string) *render.Node {
	return render.Status(m.spinner.View() + " Loading " + what + "…")
}

func (m *Model) reposSection() *render.Node {
	if !m.set.Repos.Enabled() {
		return render.Section("Projects", render.Status(widgets.ReposDisabled))
	}
	if m.loading[widgetRepos] && m.repos.Provenance == "" {
		return render.Section("Projects", m.loadingStatus("repositories"))
	}
	return render.Section("Projects", render.RepoGrid(m.repos.Entities, m.opts.Now()), render.Status(m.repos.Label))
}

func (m *Model) postsSection() *render.Node {
	if !m.set.Posts.Enabled() {
		return render.Section("Writing", render.Status(widgets.PostsDisabled))
	}
	if m.loading[widgetPosts] && m.posts.Provenance == "" {
		return render.Section("Writing", m.loadingStatus("posts"))
	}
	return render.Section("Writing", render.Carousel(m.carousel.View(), m.posts.Label))
}

func (m *Model) statsSection() *render.Node {
	if !m.set.Stats.Enabled() {
		return render.Section("Challenges", render.Status(widgets.StatsDisabled))
	}
	if m.loading[widgetStats] && m.stats.Provenance == "" {
		return render.Section("Challenges", m.loadingStatus("stats"))
	}
	if len(m.stats.Entities) == 0 {
		return render.Section("Challenges", render.Status(m.stats.Label))
	}
	return render.Section("Challenges", render.Stats(m.stats.Entities[0]), render.Status(m.stats.Label))
}
