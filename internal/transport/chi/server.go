package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/advolink/lawmatch/internal/domain"
	"github.com/advolink/lawmatch/internal/domain/criteria"
	"github.com/advolink/lawmatch/internal/domain/lawyer"
	"github.com/advolink/lawmatch/internal/domain/policy"
	healthuc "github.com/advolink/lawmatch/internal/usecase/health"
	matchuc "github.com/advolink/lawmatch/internal/usecase/match"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the match pipeline over HTTP.
type Server struct {
	matches       *matchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(matches *matchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		matches: matches,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrSearchUnavailable, http.StatusServiceUnavailable, "search_unavailable"),
		sentinelHandler(domain.ErrInvalidCriteria, http.StatusBadRequest, "invalid_criteria"),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not_found"),
	}
	return s
}

// Register attaches the API routes to a chi router.
func (s *Server) Register(r chi.Router) {
	r.Get("/api/v1/lawyers/search", s.SearchLawyers)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// searchResponse is the wire shape of one result page.
type searchResponse struct {
	TopMatches []lawyerItem `json:"top_matches"`
	Items      []lawyerItem `json:"items"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
	Tier       string       `json:"tier"`
}

type lawyerItem struct {
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

// SearchLawyers handles GET /api/v1/lawyers/search.
func (s *Server) SearchLawyers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pol, ok := policy.Parse(q.Get("sort"))
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_failed",
			"sort must be one of: relevance, rating, price")
		return
	}

	page := 1
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "validation_failed", "page must be a positive integer")
			return
		}
		page = n
	}

	minExperience := 0
	if v := q.Get("min_experience"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "validation_failed", "min_experience must be a non-negative integer")
			return
		}
		minExperience = n
	}

	minRating := 0.0
	if v := q.Get("min_rating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			writeError(w, http.StatusBadRequest, "validation_failed", "min_rating must be a non-negative number")
			return
		}
		minRating = f
	}

	raw := criteria.RawParams{
		PracticeArea:  q.Get("practice_area"),
		Locations:     q.Get("locations"),
		BudgetBand:    q.Get("budget"),
		Languages:     q.Get("languages"),
		Keywords:      q.Get("keywords"),
		Urgency:       q.Get("urgency"),
		SearchID:      q.Get("search_id"),
		SpecificIssue: q.Get("specific_issue"),
		MinExperience: minExperience,
		MinRating:     minRating,
	}

	result, tier, err := s.matches.Search(r.Context(), raw, pol, page)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		TopMatches: lawyersToItems(result.TopMatches()),
		Items:      lawyersToItems(result.Items()),
		Total:      result.Total(),
		Page:       result.Number(),
		PageSize:   result.Size(),
		TotalPages: result.TotalPages(),
		Tier:       string(tier),
	})
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": string(report.Status),
		"checks": checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func lawyersToItems(ls []lawyer.Lawyer) []lawyerItem {
	items := make([]lawyerItem, len(ls))
	for i := range ls {
		items[i] = lawyerToItem(&ls[i])
	}
	return items
}

func lawyerToItem(l *lawyer.Lawyer) lawyerItem {
	return lawyerItem{
		ID:              l.ID(),
		Name:            l.Name(),
		AvatarURL:       l.AvatarURL(),
		HourlyRate:      l.HourlyRate(),
		ExperienceYears: l.Experience(),
		Rating:          l.Rating(),
		ReviewCount:     l.ReviewCount(),
		Languages:       l.Languages(),
		Locations:       l.Locations(),
		PracticeAreas:   l.PracticeAreas(),
		MatchScore:      l.MatchScore(),
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrSearchUnavailable,
		domain.ErrInvalidCriteria,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "error loading results"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	// Backend failures surface as a gateway error, never a partial page.
	s.logger.Error("backend error", zap.Error(err))
	writeError(w, http.StatusBadGateway, "backend_error", "error loading results")
}
