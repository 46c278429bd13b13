package lawmatch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client is the lawmatch HTTP API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	obs        *observer
}

// New creates a client for the lawmatch API at the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	if baseURL == "" {
		return nil, fmt.Errorf("lawmatch: base URL required")
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.apiKey,
		httpClient: hc,
		obs:        obs,
	}, nil
}

// Search runs a lawyer search and returns one composed result page.
func (c *Client) Search(ctx context.Context, params SearchParams) (res *SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	q := url.Values{}
	setIfNotEmpty(q, "practice_area", params.PracticeArea)
	setIfNotEmpty(q, "locations", params.Locations)
	setIfNotEmpty(q, "budget", params.Budget)
	setIfNotEmpty(q, "languages", params.Languages)
	setIfNotEmpty(q, "keywords", params.Keywords)
	setIfNotEmpty(q, "urgency", params.Urgency)
	setIfNotEmpty(q, "search_id", params.SearchID)
	setIfNotEmpty(q, "specific_issue", params.SpecificIssue)
	setIfNotEmpty(q, "sort", params.Sort)
	if params.MinExperience > 0 {
		q.Set("min_experience", strconv.Itoa(params.MinExperience))
	}
	if params.MinRating > 0 {
		q.Set("min_rating", strconv.FormatFloat(params.MinRating, 'f', -1, 64))
	}
	if params.Page > 1 {
		q.Set("page", strconv.Itoa(params.Page))
	}

	var out SearchResult
	if err = c.get(ctx, "/api/v1/lawyers/search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health fetches the service health report.
func (c *Client) Health(ctx context.Context) (rep *HealthReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	var out HealthReport
	if err = c.get(ctx, "/healthz", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("lawmatch: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lawmatch: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("lawmatch: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	if apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = resp.Status
	}
	return apiErr
}

func setIfNotEmpty(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}
