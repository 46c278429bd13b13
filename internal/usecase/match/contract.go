package match

import (
	"context"

	"github.com/advolink/lawmatch/internal/domain/lawyer"
)

// AdvancedQuery carries the full criteria for the advanced matching tier.
type AdvancedQuery struct {
	PracticeArea  string
	Locations     []string
	RateMin       *float64
	RateMax       *float64
	SpecificIssue string
	Languages     []string
	Keywords      []string
	Urgency       string
	Limit         int
}

// BasicQuery carries the reduced criteria for the basic matching tier.
type BasicQuery struct {
	PracticeArea  string
	Location      string
	RateMin       *float64
	RateMax       *float64
	SpecificIssue string
	Languages     []string
	Limit         int
}

// Matcher executes the backend matching tiers. A tier whose operation does
// not exist on the backend returns domain.ErrCapabilityAbsent; any other
// error is a real backend failure.
type Matcher interface {
	MatchBySearchID(ctx context.Context, searchID string, limit int) ([]lawyer.Lawyer, error)
	MatchAdvanced(ctx context.Context, q AdvancedQuery) ([]lawyer.Lawyer, error)
	MatchBasic(ctx context.Context, q BasicQuery) ([]lawyer.Lawyer, error)
	ListAll(ctx context.Context) ([]lawyer.Lawyer, error)
}

// Persister writes matched lawyer ids back to the originating search record.
type Persister interface {
	UpdateMatchedLawyers(ctx context.Context, searchID string, ids []string) error
}
