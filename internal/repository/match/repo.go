package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/advolink/lawmatch/internal/db"
	"github.com/advolink/lawmatch/internal/domain"
	"github.com/advolink/lawmatch/internal/domain/lawyer"
	matchuc "github.com/advolink/lawmatch/internal/usecase/match"
)

// Backend function names for the matching tiers. These are server-side
// deployables; a tier may be absent at runtime.
const (
	fnMatchBySearchID = "match_by_search_id"
	fnMatchAdvanced   = "match_lawyers_advanced"
	fnMatchBasic      = "match_lawyers_basic"
)

// Default listing query bounds.
const (
	defaultListLimit = 500
)

// DefaultKeyPrefix namespaces all lawmatch keys.
const DefaultKeyPrefix = "lawmatch:"

// store is the consumer interface for matching operations (ISP).
type store interface {
	FCall(ctx context.Context, function string, keys, args []string) ([]byte, error)
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Repo implements usecase/match.Matcher and usecase/match.Persister over
// the Redis backend.
type Repo struct {
	store     store
	listLimit int
	prefix    string
}

var (
	_ matchuc.Matcher   = (*Repo)(nil)
	_ matchuc.Persister = (*Repo)(nil)
)

// New creates a match repository.
func New(s store) *Repo {
	return &Repo{store: s, listLimit: defaultListLimit, prefix: DefaultKeyPrefix}
}

// WithListLimit overrides the full-listing fetch bound.
func (r *Repo) WithListLimit(n int) *Repo {
	if n > 0 {
		r.listLimit = n
	}
	return r
}

// WithPrefix overrides the key namespace.
func (r *Repo) WithPrefix(prefix string) *Repo {
	if prefix != "" {
		r.prefix = prefix
	}
	return r
}

// MatchBySearchID runs the most specific tier against a pre-classified
// search record.
func (r *Repo) MatchBySearchID(ctx context.Context, searchID string, limit int) ([]lawyer.Lawyer, error) {
	data, err := r.store.FCall(ctx, fnMatchBySearchID,
		[]string{r.searchKey(searchID)}, []string{strconv.Itoa(limit)})
	if err != nil {
		return nil, classify(fnMatchBySearchID, err)
	}
	return decodeLawyers(data)
}

// MatchAdvanced runs the full-criteria tier.
func (r *Repo) MatchAdvanced(ctx context.Context, q matchuc.AdvancedQuery) ([]lawyer.Lawyer, error) {
	payload, err := json.Marshal(advancedArgs{
		PracticeArea:  q.PracticeArea,
		Locations:     q.Locations,
		RateMin:       q.RateMin,
		RateMax:       q.RateMax,
		SpecificIssue: q.SpecificIssue,
		Languages:     q.Languages,
		Keywords:      q.Keywords,
		Urgency:       q.Urgency,
		Limit:         q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("encode advanced query: %w", err)
	}

	data, err := r.store.FCall(ctx, fnMatchAdvanced, nil, []string{string(payload)})
	if err != nil {
		return nil, classify(fnMatchAdvanced, err)
	}
	return decodeLawyers(data)
}

// MatchBasic runs the reduced-criteria tier.
func (r *Repo) MatchBasic(ctx context.Context, q matchuc.BasicQuery) ([]lawyer.Lawyer, error) {
	payload, err := json.Marshal(basicArgs{
		PracticeArea:  q.PracticeArea,
		Location:      q.Location,
		RateMin:       q.RateMin,
		RateMax:       q.RateMax,
		SpecificIssue: q.SpecificIssue,
		Languages:     q.Languages,
		Limit:         q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("encode basic query: %w", err)
	}

	data, err := r.store.FCall(ctx, fnMatchBasic, nil, []string{string(payload)})
	if err != nil {
		return nil, classify(fnMatchBasic, err)
	}
	return decodeLawyers(data)
}

// ListAll returns every active, verified lawyer from the listing index.
// This tier always exists; its errors are real failures.
func (r *Repo) ListAll(ctx context.Context) ([]lawyer.Lawyer, error) {
	index := r.prefix + "lawyers:idx"
	sr, err := r.store.SearchList(ctx, index, "@status:{active} @verified:{yes}", 0, r.listLimit, nil)
	if err != nil {
		return nil, fmt.Errorf("list lawyers: %w", err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	prefix := r.prefix + "lawyers:"
	out := make([]lawyer.Lawyer, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		out = append(out, entryToDomain(prefix, e))
	}
	return out, nil
}

// UpdateMatchedLawyers writes the matched ids back to the search record.
func (r *Repo) UpdateMatchedLawyers(ctx context.Context, searchID string, ids []string) error {
	encoded, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode matched ids: %w", err)
	}

	err = r.store.HSet(ctx, r.searchKey(searchID), map[string]string{
		"matched_lawyers": string(encoded),
		"matched_at":      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("update matched lawyers %s: %w", searchID, err)
	}
	return nil
}

// MatchedLawyers reads back the persisted match ids for a search record.
// Returns domain.ErrNotFound when the record does not exist or was never
// matched.
func (r *Repo) MatchedLawyers(ctx context.Context, searchID string) ([]string, error) {
	fields, err := r.store.HGetAll(ctx, r.searchKey(searchID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("search record %s: %w", searchID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read search record %s: %w", searchID, err)
	}

	raw, ok := fields["matched_lawyers"]
	if !ok || raw == "" {
		return nil, fmt.Errorf("search record %s not matched: %w", searchID, domain.ErrNotFound)
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode matched ids: %w", err)
	}
	return ids, nil
}

type advancedArgs struct {
	PracticeArea  string   `json:"practice_area,omitempty"`
	Locations     []string `json:"locations,omitempty"`
	RateMin       *float64 `json:"rate_min,omitempty"`
	RateMax       *float64 `json:"rate_max,omitempty"`
	SpecificIssue string   `json:"specific_issue,omitempty"`
	Languages     []string `json:"languages,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	Urgency       string   `json:"urgency,omitempty"`
	Limit         int      `json:"limit"`
}

type basicArgs struct {
	PracticeArea  string   `json:"practice_area,omitempty"`
	Location      string   `json:"location,omitempty"`
	RateMin       *float64 `json:"rate_min,omitempty"`
	RateMax       *float64 `json:"rate_max,omitempty"`
	SpecificIssue string   `json:"specific_issue,omitempty"`
	Languages     []string `json:"languages,omitempty"`
	Limit         int      `json:"limit"`
}

func (r *Repo) searchKey(searchID string) string {
	return r.prefix + "search:" + searchID
}

func decodeLawyers(data []byte) ([]lawyer.Lawyer, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var dtos []lawyerDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("decode match reply: %w", err)
	}
	out := make([]lawyer.Lawyer, 0, len(dtos))
	for i := range dtos {
		out = append(out, dtos[i].toDomain())
	}
	return out, nil
}

// classify recognizes the legacy capability-absence signature and converts
// it to the typed sentinel. The backend reports a missing server-side
// function with a "Function not found"-style message; this string match is
// the actual legacy contract and must be preserved for compatibility.
func classify(function string, err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "function not found") || strings.Contains(msg, "unknown command") {
		return fmt.Errorf("%s: %w", function, domain.ErrCapabilityAbsent)
	}
	return fmt.Errorf("%s: %w", function, err)
}
