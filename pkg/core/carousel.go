package core

// CarouselState is the pagination state of a card carousel.
//
// Invariants: PageSize >= 1, 0 <= CurrentPage <= PageCount and
// PageCount == max(ceil(len(Items)/PageSize)-1, 0).
type CarouselState struct {
	Items       []ContentCard
	PageSize    int
	CurrentPage int
	PageCount   int
}

// PageCount returns the index of the last page for n items shown size at a time.
// It is 0 for an empty list.
func PageCount(n, size int) int {
	if size < 1 {
		size = 1
	}
	if n <= 0 {
		return 0
	}
	pages := (n + size - 1) / size
	return max(pages-1, 0)
}

// NewCarouselState builds a state on the first page.
func NewCarouselState(items []ContentCard, pageSize int) CarouselState {
	if pageSize < 1 {
		pageSize = 1
	}
	return CarouselState{
		Items:     items,
		PageSize:  pageSize,
		PageCount: PageCount(len(items), pageSize),
	}
}

// WithPageSize returns a copy with a new page size, clamping CurrentPage down if needed.
func (s CarouselState) WithPageSize(size int) CarouselState {
	if size < 1 {
		size = 1
	}
	s.PageSize = size
	s.PageCount = PageCount(len(s.Items), size)
	if s.CurrentPage > s.PageCount {
		s.CurrentPage = s.PageCount
	}
	return s
}

// WithPage returns a copy on the given page and true, or the unchanged state
// and false when page is outside [0, PageCount].
func (s CarouselState) WithPage(page int) (CarouselState, bool) {
	if page < 0 || page > s.PageCount {
		return s, false
	}
	s.CurrentPage = page
	return s, true
}

// PageBounds returns the half-open item range [start, end) of the current page.
func (s CarouselState) PageBounds() (start, end int) {
	start = s.CurrentPage * s.PageSize
	if start > len(s.Items) {
		start = len(s.Items)
	}
	end = min(start+s.PageSize, len(s.Items))
	return start, end
}

// Visible returns the items on the current page.
func (s CarouselState) Visible() []ContentCard {
	start, end := s.PageBounds()
	return s.Items[start:end]
}
