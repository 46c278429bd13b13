package match

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/advolink/lawmatch/internal/domain"
	"github.com/advolink/lawmatch/internal/domain/criteria"
	"github.com/advolink/lawmatch/internal/domain/lawyer"
	"github.com/advolink/lawmatch/internal/domain/matchset"
	"github.com/advolink/lawmatch/internal/domain/policy"
	"github.com/advolink/lawmatch/internal/metrics"
)

// Default engine limits.
const (
	DefaultTopMatches   = 6
	DefaultPageSize     = 10
	DefaultFetchLimit   = 50
	DefaultPersistTopK  = 10
	DefaultListingScore = 50
)

// Service composes, ranks and paginates lawyer matches over a cascade of
// backend matching tiers.
type Service struct {
	matcher   Matcher
	persister Persister
	pool      *ants.Pool
	logger    *zap.Logger

	topMatches   int
	pageSize     int
	fetchLimit   int
	persistTopK  int
	listingScore float64

	// generation implements last-request-wins: background completions check
	// it before touching shared state.
	generation atomic.Uint64

	// lastRequestKey is process-wide, matching the one-client-session model:
	// an embedded Client serves a single browsing session. A multi-tenant
	// deployment that needs independent pagination per caller should hold
	// one Service per session rather than share this fingerprint.
	mu             sync.Mutex
	lastRequestKey string
	persistedID    string // search id already written back (reset on id change)
}

// New creates a match service. persister may be nil to disable write-back.
func New(matcher Matcher, persister Persister, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		matcher:      matcher,
		persister:    persister,
		logger:       logger,
		topMatches:   DefaultTopMatches,
		pageSize:     DefaultPageSize,
		fetchLimit:   DefaultFetchLimit,
		persistTopK:  DefaultPersistTopK,
		listingScore: DefaultListingScore,
	}
}

// WithLimits overrides the engine sizes. Non-positive values keep defaults.
func (s *Service) WithLimits(topMatches, pageSize, fetchLimit, persistTopK int) *Service {
	if topMatches > 0 {
		s.topMatches = topMatches
	}
	if pageSize > 0 {
		s.pageSize = pageSize
	}
	if fetchLimit > 0 {
		s.fetchLimit = fetchLimit
	}
	if persistTopK > 0 {
		s.persistTopK = persistTopK
	}
	return s
}

// WithPool runs secondary fetches and persistence on the given worker pool
// instead of bare goroutines.
func (s *Service) WithPool(pool *ants.Pool) *Service {
	s.pool = pool
	return s
}

// Search runs the full pipeline: normalize, cascade, refine, blend with the
// secondary pool, rank, paginate. The returned Tier names the capability
// that produced the primary pool.
func (s *Service) Search(
	ctx context.Context, raw criteria.RawParams, pol policy.Policy, page int,
) (matchset.Page, Tier, error) {
	start := time.Now()
	crit := criteria.Normalize(raw)
	gen := s.generation.Add(1)

	// Fire the secondary fetch immediately; the cascade does not wait on it.
	secCh := make(chan []lawyer.Lawyer, 1)
	s.submit(func() { secCh <- s.fetchSecondary(ctx, &crit) })

	primary, tier, err := s.runCascade(ctx, &crit)
	if err != nil {
		outcome := "error"
		if errors.Is(err, domain.ErrSearchUnavailable) {
			outcome = "refused"
		}
		metrics.CascadeTierTotal.WithLabelValues(string(tier), outcome).Inc()
		return matchset.Page{}, tier, err
	}
	metrics.CascadeTierTotal.WithLabelValues(string(tier), "hit").Inc()

	primary = refine(primary, &crit, tier == TierListing)

	s.schedulePersist(ctx, &crit, pol, primary, gen)

	var secondary []lawyer.Lawyer
	select {
	case secondary = <-secCh:
	case <-ctx.Done():
		return matchset.Page{}, tier, ctx.Err()
	}

	composed := s.compose(primary, secondary, pol)
	page = s.effectivePage(&crit, pol, page)

	metrics.SearchDuration.WithLabelValues(string(pol), string(tier)).Observe(time.Since(start).Seconds())
	return composed.Page(page, s.pageSize), tier, nil
}

// fetchSecondary loads the criteria-relaxed backfill pool: the advanced
// tier with only the practice-area term, or — when no practice-area
// constraint exists — the full listing. Best-effort: any failure yields an
// empty pool. A practice-area search never backfills from the unfiltered
// listing; an off-area tail is worse than no tail.
func (s *Service) fetchSecondary(ctx context.Context, crit *criteria.Criteria) []lawyer.Lawyer {
	if crit.HasPracticeArea() {
		res, err := s.matcher.MatchAdvanced(ctx, AdvancedQuery{
			PracticeArea: crit.PracticeArea(),
			Limit:        s.fetchLimit,
		})
		if err != nil {
			s.logger.Debug("secondary pool fetch failed", zap.Error(err))
			metrics.SecondaryPoolTotal.WithLabelValues("empty").Inc()
			return nil
		}
		metrics.SecondaryPoolTotal.WithLabelValues("advanced").Inc()
		return res
	}

	res, err := s.matcher.ListAll(ctx)
	if err != nil {
		s.logger.Debug("secondary pool listing failed", zap.Error(err))
		metrics.SecondaryPoolTotal.WithLabelValues("empty").Inc()
		return nil
	}
	metrics.SecondaryPoolTotal.WithLabelValues("listing").Inc()
	return res
}

// schedulePersist writes the top-K relevance-ranked ids back to the search
// record, at most once per search id. The flag is set before the write is
// awaited so a concurrent re-render cannot re-enter; a superseded search
// skips silently instead of clobbering a newer search's matched list.
func (s *Service) schedulePersist(
	ctx context.Context, crit *criteria.Criteria, pol policy.Policy,
	primary []lawyer.Lawyer, gen uint64,
) {
	searchID := crit.SearchID()
	if s.persister == nil || pol != policy.Relevance || searchID == "" || len(primary) == 0 {
		return
	}

	s.mu.Lock()
	if s.persistedID == searchID {
		s.mu.Unlock()
		metrics.MatchPersistTotal.WithLabelValues("skipped").Inc()
		return
	}
	s.persistedID = searchID
	s.mu.Unlock()

	ranked := make([]lawyer.Lawyer, len(primary))
	copy(ranked, primary)
	rank(ranked, policy.Relevance)
	if len(ranked) > s.persistTopK {
		ranked = ranked[:s.persistTopK]
	}
	ids := make([]string, len(ranked))
	for i := range ranked {
		ids[i] = ranked[i].ID()
	}

	// Outlives the originating request; persistence is fire-and-forget.
	bgCtx := context.WithoutCancel(ctx)
	s.submit(func() {
		if s.generation.Load() != gen {
			metrics.MatchPersistTotal.WithLabelValues("skipped").Inc()
			return
		}
		if err := s.persister.UpdateMatchedLawyers(bgCtx, searchID, ids); err != nil {
			// Non-critical recall feature: log and swallow.
			s.logger.Warn("persist matched lawyers",
				zap.String("search_id", searchID), zap.Error(err))
			metrics.MatchPersistTotal.WithLabelValues("error").Inc()
			return
		}
		metrics.MatchPersistTotal.WithLabelValues("ok").Inc()
	})
}

// effectivePage resets to page 1 whenever criteria or policy changed since
// the previous request.
func (s *Service) effectivePage(crit *criteria.Criteria, pol policy.Policy, page int) int {
	key := requestKey(crit, pol)

	s.mu.Lock()
	defer s.mu.Unlock()
	if key != s.lastRequestKey {
		s.lastRequestKey = key
		return 1
	}
	if page < 1 {
		return 1
	}
	return page
}

func requestKey(crit *criteria.Criteria, pol policy.Policy) string {
	rates := crit.Rates()
	parts := []string{
		string(pol),
		crit.PracticeArea(),
		strings.Join(crit.Locations(), "|"),
		strings.Join(crit.Languages(), "|"),
		strings.Join(crit.Keywords(), "|"),
		crit.Urgency(),
		crit.SearchID(),
		crit.SpecificIssue(),
		fmtBound(rates.Min),
		fmtBound(rates.Max),
		strconv.Itoa(crit.MinExperience()),
		strconv.FormatFloat(crit.MinRating(), 'f', -1, 64),
	}
	return strings.ToLower(strings.Join(parts, "\x1f"))
}

func fmtBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// submit runs fn on the worker pool, falling back to a plain goroutine when
// no pool is configured or it is saturated.
func (s *Service) submit(fn func()) {
	if s.pool != nil {
		if err := s.pool.Submit(fn); err == nil {
			return
		}
	}
	go fn()
}
