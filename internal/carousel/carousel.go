// Package carousel paginates content cards across a viewport whose width
// decides how many cards fit on a page.
package carousel

import (
	"fmt"
	"strings"

	"github.com/moriz82/folio/pkg/core"
)

// Default breakpoints in terminal columns.
const (
	DefaultWide   = 120
	DefaultMedium = 80
)

// Breakpoints maps a viewport width to a page size: at least Wide columns
// shows three cards, at least Medium shows two, anything narrower shows one.
type Breakpoints struct {
	Wide   int `koanf:"wide"`
	Medium int `koanf:"medium"`
}

// DefaultBreakpoints returns the 120/80 column breakpoints.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{Wide: DefaultWide, Medium: DefaultMedium}
}

// PageSize returns the number of cards per page for width.
func (b Breakpoints) PageSize(width int) int {
	switch {
	case width >= b.Wide:
		return 3
	case width >= b.Medium:
		return 2
	default:
		return 1
	}
}

// Indicator is one page dot.
type Indicator struct {
	Page   int
	Active bool
	Label  string
}

// View is everything a renderer needs to draw the carousel.
type View struct {
	Cards        []core.ContentCard
	Indicators   []Indicator
	Page         int
	PageCount    int
	PageSize     int
	PrevDisabled bool
	NextDisabled bool
	Status       string
}

// Empty reports whether there is nothing to show.
func (v View) Empty() bool {
	return len(v.Cards) == 0
}

// NoItemsStatus is the status of a carousel without items.
const NoItemsStatus = "No posts available yet."

// Controller owns a CarouselState and notifies subscribers whenever the
// visible page changes. It is not safe for concurrent use.
type Controller struct {
	state     core.CarouselState
	bp        Breakpoints
	listeners []func(View)
}

// New returns an empty controller showing one card per page until the first
// Resize.
func New(bp Breakpoints) *Controller {
	if bp.Wide <= 0 {
		bp.Wide = DefaultWide
	}
	if bp.Medium <= 0 || bp.Medium > bp.Wide {
		bp.Medium = min(DefaultMedium, bp.Wide)
	}
	return &Controller{
		state: core.NewCarouselState(nil, 1),
		bp:    bp,
	}
}

// OnRender registers fn to receive the view after every re-render.
func (c *Controller) OnRender(fn func(View)) {
	c.listeners = append(c.listeners, fn)
}

// State returns a copy of the pagination state.
func (c *Controller) State() core.CarouselState {
	return c.state
}

// SetItems replaces the items and returns to the first page.
func (c *Controller) SetItems(items []core.ContentCard) {
	c.state = core.NewCarouselState(items, c.state.PageSize)
	c.render()
}

// SetPageSize changes the page size, clamping the current page down.
func (c *Controller) SetPageSize(size int) {
	c.state = c.state.WithPageSize(size)
	c.render()
}

// GoTo moves to page. Out-of-range pages are ignored and report false.
func (c *Controller) GoTo(page int) bool {
	next, ok := c.state.WithPage(page)
	if !ok {
		return false
	}
	c.state = next
	c.render()
	return true
}

// Next advances one page. It is a no-op on the last page.
func (c *Controller) Next() bool {
	return c.GoTo(c.state.CurrentPage + 1)
}

// Prev goes back one page. It is a no-op on the first page.
func (c *Controller) Prev() bool {
	return c.GoTo(c.state.CurrentPage - 1)
}

// Resize records a new viewport width. It re-renders and returns true only
// when the width crosses a breakpoint; otherwise the page is kept and only
// the layout needs adjusting.
func (c *Controller) Resize(width int) bool {
	size := c.bp.PageSize(width)
	if size == c.state.PageSize {
		return false
	}
	c.SetPageSize(size)
	return true
}

// View builds the current view.
func (c *Controller) View() View {
	s := c.state
	v := View{
		Cards:        s.Visible(),
		Page:         s.CurrentPage,
		PageCount:    s.PageCount,
		PageSize:     s.PageSize,
		PrevDisabled: s.CurrentPage <= 0,
		NextDisabled: s.CurrentPage >= s.PageCount,
	}

	total := len(s.Items)
	if total == 0 {
		v.Status = NoItemsStatus
		return v
	}

	v.Indicators = make([]Indicator, 0, s.PageCount+1)
	for page := 0; page <= s.PageCount; page++ {
		first := page*s.PageSize + 1
		last := min(first+s.PageSize-1, total)
		v.Indicators = append(v.Indicators, Indicator{
			Page:   page,
			Active: page == s.CurrentPage,
			Label:  fmt.Sprintf("Show posts %d through %d", first, last),
		})
	}
	v.Status = status(s)
	return v
}

func status(s core.CarouselState) string {
	start, end := s.PageBounds()
	titles := make([]string, 0, end-start)
	for _, card := range s.Items[start:end] {
		if card.Title != "" {
			titles = append(titles, card.Title)
		}
	}

	msg := fmt.Sprintf("Showing posts %d–%d of %d.", start+1, end, len(s.Items))
	if len(titles) > 0 {
		msg += " Featuring " + strings.Join(titles, " · ") + "."
	}
	return msg
}

func (c *Controller) render() {
	if len(c.listeners) == 0 {
		return
	}
	v := c.View()
	for _, fn := range c.listeners {
		fn(v)
	}
}
