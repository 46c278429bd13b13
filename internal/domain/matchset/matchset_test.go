package matchset

import (
	"fmt"
	"testing"

	"github.com/advolink/lawmatch/internal/domain/lawyer"
)

func makeLawyers(n int) []lawyer.Lawyer {
	out := make([]lawyer.Lawyer, n)
	for i := range out {
		out[i] = lawyer.Reconstruct(fmt.Sprintf("l-%d", i), lawyer.Attributes{}, nil)
	}
	return out
}

func TestPage_CoversCombinedExactlyOnce(t *testing.T) {
	combined := makeLawyers(23)
	c := New(makeLawyers(3), combined)

	const pageSize = 10
	if got := c.TotalPages(pageSize); got != 3 {
		t.Fatalf("TotalPages = %d, want 3", got)
	}

	seen := make(map[string]int)
	for n := 1; n <= c.TotalPages(pageSize); n++ {
		p := c.Page(n, pageSize)
		for _, l := range p.Items() {
			seen[l.ID()]++
		}
	}

	if len(seen) != len(combined) {
		t.Fatalf("pages covered %d unique ids, want %d", len(seen), len(combined))
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("id %s appeared %d times across pages", id, count)
		}
	}
}

func TestPage_TopMatchesOnlyOnFirstPage(t *testing.T) {
	c := New(makeLawyers(2), makeLawyers(15))

	p1 := c.Page(1, 10)
	if len(p1.TopMatches()) != 2 {
		t.Errorf("page 1 should carry 2 top matches, got %d", len(p1.TopMatches()))
	}

	p2 := c.Page(2, 10)
	if len(p2.TopMatches()) != 0 {
		t.Errorf("page 2 should carry no top matches, got %d", len(p2.TopMatches()))
	}
	if len(p2.Items()) != 5 {
		t.Errorf("page 2 should have 5 items, got %d", len(p2.Items()))
	}
}

func TestPage_ClampsOutOfRange(t *testing.T) {
	c := New(nil, makeLawyers(5))

	p := c.Page(0, 10)
	if p.Number() != 1 {
		t.Errorf("page 0 should clamp to 1, got %d", p.Number())
	}

	p = c.Page(99, 10)
	if p.Number() != 1 {
		t.Errorf("page 99 of a 1-page set should clamp to 1, got %d", p.Number())
	}
}

func TestPage_EmptyCombined(t *testing.T) {
	c := New(nil, nil)
	if got := c.TotalPages(10); got != 1 {
		t.Errorf("TotalPages of empty set = %d, want 1", got)
	}
	p := c.Page(1, 10)
	if len(p.Items()) != 0 || p.Total() != 0 {
		t.Errorf("empty set page should be empty, got %d items total %d", len(p.Items()), p.Total())
	}
}

func TestTotal(t *testing.T) {
	c := New(makeLawyers(3), makeLawyers(7))
	if c.Total() != 10 {
		t.Errorf("Total = %d, want 10", c.Total())
	}
}
