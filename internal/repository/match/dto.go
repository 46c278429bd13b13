package match

import (
	"strconv"
	"strings"

	"github.com/advolink/lawmatch/internal/db"
	"github.com/advolink/lawmatch/internal/domain/lawyer"
)

// lawyerDTO is the wire shape returned by the backend matching functions.
type lawyerDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	AvatarURL     string   `json:"avatar_url"`
	HourlyRate    *float64 `json:"hourly_rate"`
	Experience    int      `json:"experience_years"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	Languages     []string `json:"languages"`
	Locations     []string `json:"locations"`
	PracticeAreas []string `json:"practice_areas"`
	MatchScore    *float64 `json:"match_score"`
}

func (d *lawyerDTO) toDomain() lawyer.Lawyer {
	return lawyer.Reconstruct(d.ID, lawyer.Attributes{
		Name:          d.Name,
		AvatarURL:     d.AvatarURL,
		HourlyRate:    d.HourlyRate,
		Experience:    d.Experience,
		Rating:        d.Rating,
		ReviewCount:   d.ReviewCount,
		Languages:     d.Languages,
		Locations:     d.Locations,
		PracticeAreas: d.PracticeAreas,
	}, d.MatchScore)
}

// entryToDomain hydrates a Lawyer from flat listing-index hash fields.
func entryToDomain(keyPrefix string, e db.SearchEntry) lawyer.Lawyer {
	id := strings.TrimPrefix(e.Key, keyPrefix)

	attrs := lawyer.Attributes{
		Name:          e.Fields["name"],
		AvatarURL:     e.Fields["avatar_url"],
		Languages:     splitField(e.Fields["languages"]),
		Locations:     splitField(e.Fields["locations"]),
		PracticeAreas: splitField(e.Fields["practice_areas"]),
	}
	if v, err := strconv.ParseFloat(e.Fields["hourly_rate"], 64); err == nil {
		attrs.HourlyRate = &v
	}
	if v, err := strconv.Atoi(e.Fields["experience_years"]); err == nil {
		attrs.Experience = v
	}
	if v, err := strconv.ParseFloat(e.Fields["rating"], 64); err == nil {
		attrs.Rating = v
	}
	if v, err := strconv.Atoi(e.Fields["review_count"]); err == nil {
		attrs.ReviewCount = v
	}

	return lawyer.Reconstruct(id, attrs, nil)
}

func splitField(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
