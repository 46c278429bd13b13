package lawmatch

// SearchParams carries the search criteria as the client captured them.
// Zero values are omitted from the request.
type SearchParams struct {
	PracticeArea  string
	Locations     string // comma-separated
	Budget        string // budget band label, e.g. "$150 - $300/hr"
	Languages     string // comma-separated
	Keywords      string // comma-separated
	Urgency       string
	SearchID      string
	SpecificIssue string
	MinExperience int
	MinRating     float64
	Sort          string // relevance (default), rating, price
	Page          int    // 1-based, defaults to 1
}

// Match is one ranked lawyer in a result page.
type Match struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	AvatarURL       string   `json:"avatar_url,omitempty"`
	HourlyRate      *float64 `json:"hourly_rate,omitempty"`
	ExperienceYears int      `json:"experience_years"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"review_count"`
	Languages       []string `json:"languages,omitempty"`
	Locations       []string `json:"locations,omitempty"`
	PracticeAreas   []string `json:"practice_areas,omitempty"`
	MatchScore      *float64 `json:"match_score,omitempty"`
}

// SearchResult is one page of composed matches.
type SearchResult struct {
	TopMatches []Match `json:"top_matches"`
	Items      []Match `json:"items"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
	Tier       string  `json:"tier"`
}

// HealthReport is the service health response.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
