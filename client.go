package lawmatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/advolink/lawmatch/internal/db"
	dbRedis "github.com/advolink/lawmatch/internal/db/redis"
	"github.com/advolink/lawmatch/internal/domain/criteria"
	"github.com/advolink/lawmatch/internal/domain/policy"
	matchrepo "github.com/advolink/lawmatch/internal/repository/match"
	matchuc "github.com/advolink/lawmatch/internal/usecase/match"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the embedded lawmatch entry point. It talks to the matching
// backend directly, without the HTTP API in between.
type Client struct {
	store   db.Store
	repo    *matchrepo.Repo
	matches *matchuc.Service
}

// New creates a lawmatch Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("lawmatch: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("lawmatch: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("lawmatch: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	repo := matchrepo.New(store)
	if cfg.listLimit > 0 {
		repo = repo.WithListLimit(cfg.listLimit)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	matches := matchuc.New(repo, repo, logger)
	if cfg.topMatches > 0 || cfg.pageSize > 0 || cfg.fetchLimit > 0 || cfg.persistTopK > 0 {
		matches = matches.WithLimits(cfg.topMatches, cfg.pageSize, cfg.fetchLimit, cfg.persistTopK)
	}

	return &Client{store: store, repo: repo, matches: matches}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs the criteria through the matcher cascade and returns one
// ranked page of results.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	pol, ok := policy.Parse(params.Sort)
	if !ok {
		return nil, fmt.Errorf("lawmatch: unknown sort %q", params.Sort)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}

	raw := criteria.RawParams{
		PracticeArea:  params.PracticeArea,
		Locations:     params.Locations,
		BudgetBand:    params.Budget,
		Languages:     params.Languages,
		Keywords:      params.Keywords,
		Urgency:       params.Urgency,
		SearchID:      params.SearchID,
		SpecificIssue: params.SpecificIssue,
		MinExperience: params.MinExperience,
		MinRating:     params.MinRating,
	}

	result, tier, err := c.matches.Search(ctx, raw, pol, page)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return searchResultFromPage(&result, string(tier)), nil
}

// MatchedLawyers returns the lawyer ids persisted for a previously ranked
// search id. domain.ErrNotFound is returned when the search was never
// matched.
func (c *Client) MatchedLawyers(ctx context.Context, searchID string) ([]string, error) {
	ids, err := c.repo.MatchedLawyers(ctx, searchID)
	if err != nil {
		return nil, fmt.Errorf("matched lawyers: %w", err)
	}
	return ids, nil
}
