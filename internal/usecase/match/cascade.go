package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/advolink/lawmatch/internal/domain"
	"github.com/advolink/lawmatch/internal/domain/criteria"
	"github.com/advolink/lawmatch/internal/domain/lawyer"
	"github.com/advolink/lawmatch/internal/metrics"
)

// Tier identifies which cascade capability produced the primary pool.
type Tier string

// Cascade tiers in descending specificity order.
const (
	TierBySearchID Tier = "by_search_id"
	TierAdvanced   Tier = "advanced"
	TierBasic      Tier = "basic"
	TierListing    Tier = "full_listing"
	TierNone       Tier = "none"
)

// runCascade tries matching tiers strictly sequentially. A tier advances to
// the next only on domain.ErrCapabilityAbsent; any other error aborts the
// whole cascade. The full-listing tier is refused when a strict
// practice-area constraint is present (precision over recall).
func (s *Service) runCascade(ctx context.Context, crit *criteria.Criteria) ([]lawyer.Lawyer, Tier, error) {
	if crit.SearchID() != "" {
		res, err := s.matcher.MatchBySearchID(ctx, crit.SearchID(), s.fetchLimit)
		if err == nil {
			return res, TierBySearchID, nil
		}
		if !errors.Is(err, domain.ErrCapabilityAbsent) {
			return nil, TierBySearchID, fmt.Errorf("match by search id: %w", err)
		}
		metrics.CascadeTierTotal.WithLabelValues(string(TierBySearchID), "absent").Inc()
	}

	rates := crit.Rates()

	res, err := s.matcher.MatchAdvanced(ctx, AdvancedQuery{
		PracticeArea:  crit.PracticeArea(),
		Locations:     crit.Locations(),
		RateMin:       rates.Min,
		RateMax:       rates.Max,
		SpecificIssue: crit.SpecificIssue(),
		Languages:     crit.Languages(),
		Keywords:      crit.Keywords(),
		Urgency:       crit.Urgency(),
		Limit:         s.fetchLimit,
	})
	if err == nil {
		return res, TierAdvanced, nil
	}
	if !errors.Is(err, domain.ErrCapabilityAbsent) {
		return nil, TierAdvanced, fmt.Errorf("match advanced: %w", err)
	}
	metrics.CascadeTierTotal.WithLabelValues(string(TierAdvanced), "absent").Inc()

	res, err = s.matcher.MatchBasic(ctx, BasicQuery{
		PracticeArea:  crit.PracticeArea(),
		Location:      crit.PrimaryLocation(),
		RateMin:       rates.Min,
		RateMax:       rates.Max,
		SpecificIssue: crit.SpecificIssue(),
		Languages:     crit.Languages(),
		Limit:         s.fetchLimit,
	})
	if err == nil {
		return res, TierBasic, nil
	}
	if !errors.Is(err, domain.ErrCapabilityAbsent) {
		return nil, TierBasic, fmt.Errorf("match basic: %w", err)
	}
	metrics.CascadeTierTotal.WithLabelValues(string(TierBasic), "absent").Inc()

	// No matching capability left. A strict practice-area request must not
	// silently degrade to the unfiltered listing.
	if crit.HasPracticeArea() {
		return nil, TierNone, domain.ErrSearchUnavailable
	}

	res, err = s.matcher.ListAll(ctx)
	if err != nil {
		return nil, TierListing, fmt.Errorf("list all: %w", err)
	}

	// Listing results carry no backend score; assign the flat default so
	// they rank below genuinely scored candidates under relevance.
	scored := make([]lawyer.Lawyer, len(res))
	for i := range res {
		scored[i] = res[i].WithMatchScore(s.listingScore)
	}
	return scored, TierListing, nil
}
