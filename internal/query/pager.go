package query

// DefaultPageSize is the window used by the country list.
const DefaultPageSize = 10

// Pager is a [Start, End) window over a list.
type Pager struct {
	Start int
	End   int
	Size  int
}

func NewPager(size int) Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Pager{Start: 0, End: size, Size: size}
}

func (p Pager) HasPrev() bool { return p.Start > 0 }

func (p Pager) HasNext(total int) bool { return p.End < total }

func (p Pager) Next(total int) Pager {
	if !p.HasNext(total) {
		return p
	}
	return Pager{Start: p.Start + p.Size, End: p.End + p.Size, Size: p.Size}
}

func (p Pager) Prev() Pager {
	if !p.HasPrev() {
		return p
	}
	start := max(0, p.Start-p.Size)
	return Pager{Start: start, End: start + p.Size, Size: p.Size}
}

func (p Pager) Reset() Pager { return NewPager(p.Size) }

// Bounds clamps the window to a list of length total.
func (p Pager) Bounds(total int) (start, end int) {
	start = min(p.Start, total)
	end = min(p.End, total)
	return start, end
}

// Window slices items to the current page.
func Window[T any](p Pager, items []T) []T {
	start, end := p.Bounds(len(items))
	return items[start:end]
}
