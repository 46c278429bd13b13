package criteria

import (
	"strings"
	"unicode/utf8"
)

// RawParams are the unnormalized request parameters as they arrive from the
// transport layer. Token lists are comma-separated strings.
type RawParams struct {
	PracticeArea  string
	Locations     string
	BudgetBand    string
	Languages     string
	Keywords      string
	Urgency       string
	SearchID      string
	SpecificIssue string
	MinExperience int
	MinRating     float64
}

// RateRange is a half-open hourly-rate interval. A nil bound means
// "no constraint" on that side.
type RateRange struct {
	Min *float64
	Max *float64
}

// budgetBands maps budget band labels to rate intervals. An unrecognized
// label maps to no constraint rather than erroring.
var budgetBands = map[string]RateRange{
	"Under $150/hr":  {Max: rate(150)},
	"$150 - $300/hr": {Min: rate(150), Max: rate(300)},
	"$300 - $600/hr": {Min: rate(300), Max: rate(600)},
	"$600+/hr":       {Min: rate(600)},
	"No preference":  {},
}

func rate(v float64) *float64 { return &v }

// minKeywordLen drops noise tokens from the keyword list.
const minKeywordLen = 2

// Criteria is the canonical, normalized search input (immutable value
// object). An empty practice area means "no practice-area constraint",
// never "no results".
type Criteria struct {
	practiceArea  string
	locations     []string
	rates         RateRange
	languages     []string
	keywords      []string
	urgency       string
	searchID      string
	specificIssue string
	minExperience int
	minRating     float64
}

// Normalize turns raw request parameters into canonical filter values.
// Pure function: no side effects, no I/O.
func Normalize(raw RawParams) Criteria {
	keywords := splitTokens(raw.Keywords)
	kept := keywords[:0]
	for _, k := range keywords {
		if utf8.RuneCountInString(k) >= minKeywordLen {
			kept = append(kept, k)
		}
	}

	return Criteria{
		practiceArea:  strings.TrimSpace(raw.PracticeArea),
		locations:     splitTokens(raw.Locations),
		rates:         budgetBands[raw.BudgetBand],
		languages:     splitTokens(raw.Languages),
		keywords:      kept,
		urgency:       strings.TrimSpace(raw.Urgency),
		searchID:      strings.TrimSpace(raw.SearchID),
		specificIssue: strings.TrimSpace(raw.SpecificIssue),
		minExperience: raw.MinExperience,
		minRating:     raw.MinRating,
	}
}

// splitTokens splits a comma-separated list, trims entries, drops empties,
// and removes duplicates by case-insensitive key keeping the first
// occurrence. Original casing is preserved for display.
func splitTokens(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := strings.ToLower(p)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// PracticeArea returns the practice-area term, empty meaning "any".
func (c *Criteria) PracticeArea() string { return c.practiceArea }

// HasPracticeArea reports whether a strict practice-area constraint exists.
func (c *Criteria) HasPracticeArea() bool { return c.practiceArea != "" }

// Locations returns location tokens in priority order.
func (c *Criteria) Locations() []string { return c.locations }

// PrimaryLocation returns the highest-priority location, or empty.
func (c *Criteria) PrimaryLocation() string {
	if len(c.locations) == 0 {
		return ""
	}
	return c.locations[0]
}

// Rates returns the normalized hourly-rate interval.
func (c *Criteria) Rates() RateRange { return c.rates }

// Languages returns the requested language tokens (display casing).
func (c *Criteria) Languages() []string { return c.languages }

// LanguageSet returns the case-folded language set for containment checks.
func (c *Criteria) LanguageSet() map[string]struct{} {
	if len(c.languages) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(c.languages))
	for _, l := range c.languages {
		set[strings.ToLower(l)] = struct{}{}
	}
	return set
}

// Keywords returns the free-text keyword tokens (length >= 2).
func (c *Criteria) Keywords() []string { return c.keywords }

// Urgency returns the urgency label.
func (c *Criteria) Urgency() string { return c.urgency }

// SearchID returns the opaque pre-classified search id, empty when absent.
func (c *Criteria) SearchID() string { return c.searchID }

// SpecificIssue returns the specific legal issue term.
func (c *Criteria) SpecificIssue() string { return c.specificIssue }

// MinExperience returns the minimum experience threshold in years.
func (c *Criteria) MinExperience() int { return c.minExperience }

// MinRating returns the minimum rating threshold.
func (c *Criteria) MinRating() float64 { return c.minRating }
