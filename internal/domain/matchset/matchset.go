package matchset

import "github.com/advolink/lawmatch/internal/domain/lawyer"

// Composed is the ordered, duplicate-free result of blending the primary
// and secondary pools. topMatches and combined never share an identity.
type Composed struct {
	topMatches []lawyer.Lawyer
	combined   []lawyer.Lawyer
}

// New creates a composed result set.
func New(topMatches, combined []lawyer.Lawyer) Composed {
	return Composed{topMatches: topMatches, combined: combined}
}

// TopMatches returns the bounded head slice of the ranked primary pool.
func (c *Composed) TopMatches() []lawyer.Lawyer { return c.topMatches }

// Combined returns the blended, deduplicated tail.
func (c *Composed) Combined() []lawyer.Lawyer { return c.combined }

// Total returns the count across topMatches and combined.
func (c *Composed) Total() int { return len(c.topMatches) + len(c.combined) }

// TotalPages returns ceil(len(combined)/pageSize), minimum 1.
func (c *Composed) TotalPages(pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	n := (len(c.combined) + pageSize - 1) / pageSize
	if n < 1 {
		n = 1
	}
	return n
}

// Page slices the combined sequence into the requested fixed-size page.
// Page numbers outside [1, totalPages] are clamped. Top matches are carried
// only on page 1; pages cover combined exactly once with no gaps or overlap.
func (c *Composed) Page(number, size int) Page {
	totalPages := c.TotalPages(size)
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * size
	end := start + size
	if start > len(c.combined) {
		start = len(c.combined)
	}
	if end > len(c.combined) {
		end = len(c.combined)
	}

	p := Page{
		items:      c.combined[start:end],
		number:     number,
		size:       size,
		totalPages: totalPages,
		total:      c.Total(),
	}
	if number == 1 {
		p.topMatches = c.topMatches
	}
	return p
}

// Page is one contiguous, non-overlapping slice of a composed result set.
type Page struct {
	topMatches []lawyer.Lawyer
	items      []lawyer.Lawyer
	number     int
	size       int
	totalPages int
	total      int
}

// TopMatches returns the separately rendered head matches (page 1 only).
func (p *Page) TopMatches() []lawyer.Lawyer { return p.topMatches }

// Items returns the page's slice of the combined sequence.
func (p *Page) Items() []lawyer.Lawyer { return p.items }

// Number returns the 1-based page number.
func (p *Page) Number() int { return p.number }

// Size returns the page size.
func (p *Page) Size() int { return p.size }

// TotalPages returns the page count over the combined sequence.
func (p *Page) TotalPages() int { return p.totalPages }

// Total returns the composed result total.
func (p *Page) Total() int { return p.total }
