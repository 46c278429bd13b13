package lawyer

import "fmt"

// Lawyer is a match candidate (immutable value object for the duration of
// one search). Identity is unique within any composed result set.
type Lawyer struct {
	id            string
	name          string
	avatarURL     string
	hourlyRate    *float64
	experience    int
	rating        float64
	reviewCount   int
	languages     []string
	locations     []string
	practiceAreas []string
	matchScore    *float64
}

// Attributes carries the display fields for construction.
type Attributes struct {
	Name          string
	AvatarURL     string
	HourlyRate    *float64
	Experience    int
	Rating        float64
	ReviewCount   int
	Languages     []string
	Locations     []string
	PracticeAreas []string
}

// New validates and creates a Lawyer. matchScore may be nil when the backend
// supplied no relevance score.
func New(id string, attrs Attributes, matchScore *float64) (Lawyer, error) {
	if id == "" {
		return Lawyer{}, fmt.Errorf("lawyer ID is required")
	}
	return Reconstruct(id, attrs, matchScore), nil
}

// Reconstruct creates a Lawyer without validation (storage hydration).
func Reconstruct(id string, attrs Attributes, matchScore *float64) Lawyer {
	return Lawyer{
		id:            id,
		name:          attrs.Name,
		avatarURL:     attrs.AvatarURL,
		hourlyRate:    attrs.HourlyRate,
		experience:    attrs.Experience,
		rating:        attrs.Rating,
		reviewCount:   attrs.ReviewCount,
		languages:     attrs.Languages,
		locations:     attrs.Locations,
		practiceAreas: attrs.PracticeAreas,
		matchScore:    matchScore,
	}
}

// ID returns the lawyer identifier.
func (l *Lawyer) ID() string { return l.id }

// Name returns the display name.
func (l *Lawyer) Name() string { return l.name }

// AvatarURL returns the avatar image URL.
func (l *Lawyer) AvatarURL() string { return l.avatarURL }

// HourlyRate returns the hourly rate, nil when the profile has none.
func (l *Lawyer) HourlyRate() *float64 { return l.hourlyRate }

// Experience returns years of experience.
func (l *Lawyer) Experience() int { return l.experience }

// Rating returns the average review rating.
func (l *Lawyer) Rating() float64 { return l.rating }

// ReviewCount returns the number of reviews.
func (l *Lawyer) ReviewCount() int { return l.reviewCount }

// Languages returns the spoken languages.
func (l *Lawyer) Languages() []string { return l.languages }

// Locations returns the served locations.
func (l *Lawyer) Locations() []string { return l.locations }

// PracticeAreas returns the practice areas.
func (l *Lawyer) PracticeAreas() []string { return l.practiceAreas }

// MatchScore returns the backend relevance score, nil when absent.
func (l *Lawyer) MatchScore() *float64 { return l.matchScore }

// WithMatchScore returns a copy with the given score set. Used by the
// full-listing tier to assign its flat default score.
func (l *Lawyer) WithMatchScore(score float64) Lawyer {
	c := *l
	c.matchScore = &score
	return c
}
