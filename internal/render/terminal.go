package render

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles used by the terminal renderer.
type Styles struct {
	Heading  lipgloss.Style
	Card     lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Tag      lipgloss.Style
	Status   lipgloss.Style
	Active   lipgloss.Style
	Disabled lipgloss.Style
	Terminal lipgloss.Style
}

// Palette colors.
var (
	accentColor = lipgloss.AdaptiveColor{Light: "#6a2fd6", Dark: "#8d4cff"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	borderColor = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#374151"}
	promptColor = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#3ddc84"}
)

// DefaultStyles builds the standard styles on r.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Heading:  r.NewStyle().Bold(true).Foreground(accentColor).MarginBottom(1),
		Card:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor).Padding(0, 1),
		Title:    r.NewStyle().Bold(true),
		Body:     r.NewStyle(),
		Muted:    r.NewStyle().Foreground(mutedColor),
		Tag:      r.NewStyle().Foreground(accentColor),
		Status:   r.NewStyle().Italic(true).Foreground(mutedColor),
		Active:   r.NewStyle().Foreground(accentColor).Bold(true),
		Disabled: r.NewStyle().Foreground(mutedColor).Faint(true),
		Terminal: r.NewStyle().Foreground(promptColor),
	}
}

// Terminal renders node trees as styled terminal text.
type Terminal struct {
	Width    int
	Styles   Styles
	renderer *lipgloss.Renderer
}

// NewTerminal returns a terminal renderer writing for w. The color profile is
// detected from w.
func NewTerminal(w io.Writer, width int) *Terminal {
	return NewTerminalWithRenderer(lipgloss.NewRenderer(w), width)
}

// NewPlainTerminal returns a renderer that emits no escape sequences.
func NewPlainTerminal(w io.Writer, width int) *Terminal {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.Ascii)
	return NewTerminalWithRenderer(r, width)
}

// NewTerminalWithRenderer uses an explicit lipgloss renderer.
func NewTerminalWithRenderer(r *lipgloss.Renderer, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{Width: width, Styles: DefaultStyles(r), renderer: r}
}

// Render renders n at the renderer's width.
func (t *Terminal) Render(n *Node) string {
	return t.render(n, t.Width)
}

// inlineSeparators lists containers whose children sit on one line.
var inlineSeparators = map[string]string{
	"blog-card-meta": " · ",
	"repo-meta":      " · ",
	"tag-list":       " ",
	"carousel-nav":   "   ",
	"carousel-dots":  " ",
}

func (t *Terminal) render(n *Node, width int) string {
	if n == nil || n.HasAttr("hidden") {
		return ""
	}
	if n.Tag == "" {
		return n.Text
	}

	switch {
	case n.HasClass("carousel-track"), n.HasClass("github-grid"):
		return t.grid(n, width)
	case n.HasClass("blog-card"), n.HasClass("repo-card"):
		return t.card(n, width)
	case n.HasClass("pie-bar"):
		return t.bar(n, width)
	case n.HasClass("carousel-dot"):
		if n.HasClass("is-active") {
			return t.Styles.Active.Render("●")
		}
		return t.Styles.Muted.Render("○")
	case n.HasClass("swatch"):
		return t.renderer.NewStyle().Foreground(lipgloss.Color(n.Attr("data-color"))).Render("■") + " "
	case n.HasClass("status"):
		return t.Styles.Status.Width(width).Render(n.TextContent())
	case n.HasClass("typewriter"):
		return t.Styles.Terminal.Width(width).Render(n.TextContent())
	}

	for class, sep := range inlineSeparators {
		if n.HasClass(class) {
			return t.inline(n, sep, width)
		}
	}

	switch n.Tag {
	case "h2":
		return t.Styles.Heading.Render(n.TextContent())
	case "h3", "h4":
		return t.Styles.Title.Width(width).Render(n.TextContent())
	case "p":
		return t.Styles.Body.Width(width).Render(n.Text)
	case "img":
		return t.Styles.Muted.Render("▣ " + n.Attr("alt"))
	case "time":
		return t.Styles.Muted.Render(n.Text)
	case "button":
		if n.HasAttr("disabled") {
			return t.Styles.Disabled.Render(n.Text)
		}
		return t.Styles.Active.Render(n.Text)
	case "li":
		if n.Text != "" && len(n.Children) == 0 {
			return t.Styles.Tag.Render("#" + n.Text)
		}
		return t.inline(n, "", width)
	case "a", "span":
		if len(n.Children) == 0 {
			return n.Text
		}
		return t.inline(n, "", width)
	}

	if n.HasClass("htb-meta") {
		return t.Styles.Muted.Width(width).Render(n.Text)
	}
	return t.block(n, width)
}

func (t *Terminal) block(n *Node, width int) string {
	parts := make([]string, 0, len(n.Children)+1)
	if n.Text != "" {
		parts = append(parts, n.Text)
	}
	for _, c := range n.Children {
		if s := t.render(c, width); s != "" {
			parts = append(parts, s)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (t *Terminal) inline(n *Node, sep string, width int) string {
	parts := make([]string, 0, len(n.Children)+1)
	if n.Text != "" {
		parts = append(parts, n.Text)
	}
	for _, c := range n.Children {
		if s := t.render(c, width); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

func (t *Terminal) card(n *Node, width int) string {
	inner := max(width-t.Styles.Card.GetHorizontalFrameSize(), 8)
	return t.Styles.Card.Width(inner + t.Styles.Card.GetHorizontalPadding()).Render(t.block(n, inner))
}

// grid lays children out in rows. data-columns fixes the column count;
// otherwise as many columns as fit at 36 cells each, at most three.
func (t *Terminal) grid(n *Node, width int) string {
	if len(n.Children) == 0 {
		return ""
	}
	cols, err := strconv.Atoi(n.Attr("data-columns"))
	if err != nil || cols < 1 {
		cols = min(max(width/36, 1), defaultRepoColumns)
	}
	cols = min(cols, len(n.Children))
	cellWidth := max(width/cols, 12)

	var rows []string
	for i := 0; i < len(n.Children); i += cols {
		end := min(i+cols, len(n.Children))
		cells := make([]string, 0, end-i)
		for _, c := range n.Children[i:end] {
			cells = append(cells, t.render(c, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// bar draws the distribution as one line of colored blocks whose widths are
// proportional to the segment boundaries.
func (t *Terminal) bar(n *Node, width int) string {
	var sb strings.Builder
	for _, seg := range n.Children {
		start, _ := strconv.ParseFloat(seg.Attr("data-start"), 64)
		end, _ := strconv.ParseFloat(seg.Attr("data-end"), 64)
		cells := cellAt(end, width) - cellAt(start, width)
		if cells <= 0 {
			continue
		}
		style := t.renderer.NewStyle().Foreground(lipgloss.Color(seg.Attr("data-color")))
		sb.WriteString(style.Render(strings.Repeat("█", cells)))
	}
	return sb.String()
}

func cellAt(pct float64, width int) int {
	return int(math.Round(pct * float64(width) / 100))
}
