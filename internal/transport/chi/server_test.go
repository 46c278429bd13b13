package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/advolink/lawmatch/internal/domain"
	"github.com/advolink/lawmatch/internal/domain/lawyer"
	healthuc "github.com/advolink/lawmatch/internal/usecase/health"
	matchuc "github.com/advolink/lawmatch/internal/usecase/match"
)

type stubMatcher struct {
	bySearchIDErr error
	advanced      []lawyer.Lawyer
	advancedErr   error
	basicErr      error
	listErr       error
}

func (m *stubMatcher) MatchBySearchID(_ context.Context, _ string, _ int) ([]lawyer.Lawyer, error) {
	if m.bySearchIDErr != nil {
		return nil, m.bySearchIDErr
	}
	return nil, fmt.Errorf("match_by_search_id: %w", domain.ErrCapabilityAbsent)
}

func (m *stubMatcher) MatchAdvanced(_ context.Context, q matchuc.AdvancedQuery) ([]lawyer.Lawyer, error) {
	if m.advancedErr != nil {
		return nil, m.advancedErr
	}
	return m.advanced, nil
}

func (m *stubMatcher) MatchBasic(_ context.Context, _ matchuc.BasicQuery) ([]lawyer.Lawyer, error) {
	if m.basicErr != nil {
		return nil, m.basicErr
	}
	return nil, fmt.Errorf("match_lawyers_basic: %w", domain.ErrCapabilityAbsent)
}

func (m *stubMatcher) ListAll(_ context.Context) ([]lawyer.Lawyer, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return nil, nil
}

type stubPinger struct{ err error }

func (p *stubPinger) Ping(context.Context) error { return p.err }

func score(v float64) *float64 { return &v }

func candidate(id string, s float64) lawyer.Lawyer {
	return lawyer.Reconstruct(id, lawyer.Attributes{
		Name:          "Lawyer " + id,
		Rating:        4.5,
		ReviewCount:   10,
		Experience:    8,
		PracticeAreas: []string{"family law"},
		Locations:     []string{"Austin"},
	}, score(s))
}

func newTestRouter(matcher matchuc.Matcher, pinger healthuc.BackendPinger) *chirouter.Mux {
	matches := matchuc.New(matcher, nil, zap.NewNop())
	health := healthuc.New(pinger)
	srv := NewServer(matches, health, zap.NewNop())

	r := chirouter.NewRouter()
	srv.Register(r)
	return r
}

func TestSearchLawyers_ReturnsPage(t *testing.T) {
	matcher := &stubMatcher{
		advanced: []lawyer.Lawyer{candidate("L1", 95), candidate("L2", 80), candidate("L3", 70)},
	}
	r := newTestRouter(matcher, &stubPinger{})

	req := httptest.NewRequest("GET",
		"/api/v1/lawyers/search?practice_area=family+law&locations=Austin&sort=relevance", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp searchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Total != 3 {
		t.Errorf("expected total=3, got %d", resp.Total)
	}
	if resp.Page != 1 {
		t.Errorf("expected page=1, got %d", resp.Page)
	}
	if resp.Tier != "advanced" {
		t.Errorf("expected tier=advanced, got %q", resp.Tier)
	}
	if len(resp.TopMatches) != 3 {
		t.Errorf("expected 3 top matches, got %d", len(resp.TopMatches))
	}
	if len(resp.TopMatches) > 0 && resp.TopMatches[0].ID != "L1" {
		t.Errorf("expected highest scored lawyer first, got %q", resp.TopMatches[0].ID)
	}
}

func TestSearchLawyers_InvalidSort(t *testing.T) {
	r := newTestRouter(&stubMatcher{}, &stubPinger{})

	req := httptest.NewRequest("GET", "/api/v1/lawyers/search?sort=popularity", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "validation_failed" {
		t.Errorf("expected code validation_failed, got %q", resp.Code)
	}
}

func TestSearchLawyers_InvalidPage(t *testing.T) {
	r := newTestRouter(&stubMatcher{}, &stubPinger{})

	for _, page := range []string{"0", "-2", "abc"} {
		t.Run("page="+page, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/lawyers/search?page="+page, http.NoBody)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestSearchLawyers_StrictAreaNoCapability_503(t *testing.T) {
	matcher := &stubMatcher{
		advancedErr: fmt.Errorf("match_lawyers_advanced: %w", domain.ErrCapabilityAbsent),
	}
	r := newTestRouter(matcher, &stubPinger{})

	req := httptest.NewRequest("GET", "/api/v1/lawyers/search?practice_area=tax+law", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "search_unavailable" {
		t.Errorf("expected code search_unavailable, got %q", resp.Code)
	}
}

func TestSearchLawyers_BackendFailure_502(t *testing.T) {
	matcher := &stubMatcher{
		advancedErr: errors.New("connection reset"),
	}
	r := newTestRouter(matcher, &stubPinger{})

	req := httptest.NewRequest("GET", "/api/v1/lawyers/search?practice_area=family+law", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "error loading results" {
		t.Errorf("expected generic failure message, got %q", resp.Message)
	}
}

func TestSearchLawyers_NoCriteria_FullListing(t *testing.T) {
	matcher := &stubMatcher{
		advancedErr: fmt.Errorf("match_lawyers_advanced: %w", domain.ErrCapabilityAbsent),
	}
	r := newTestRouter(matcher, &stubPinger{})

	req := httptest.NewRequest("GET", "/api/v1/lawyers/search", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp searchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Tier != "full_listing" {
		t.Errorf("expected tier=full_listing, got %q", resp.Tier)
	}
	if resp.TotalPages != 1 {
		t.Errorf("expected total_pages=1 for empty listing, got %d", resp.TotalPages)
	}
}

func TestSearchLawyers_InvalidThresholds(t *testing.T) {
	r := newTestRouter(&stubMatcher{}, &stubPinger{})

	for _, qs := range []string{"min_experience=-1", "min_experience=two", "min_rating=-0.5", "min_rating=high"} {
		t.Run(qs, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/lawyers/search?"+qs, http.NoBody)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestHealthCheck_Healthy(t *testing.T) {
	r := newTestRouter(&stubMatcher{}, &stubPinger{})

	req := httptest.NewRequest("GET", "/healthz", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %v", resp["status"])
	}
}

func TestHealthCheck_BackendDown(t *testing.T) {
	r := newTestRouter(&stubMatcher{}, &stubPinger{err: errors.New("connection refused")})

	req := httptest.NewRequest("GET", "/healthz", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}
