// Package api is the HTTP client for the agency statistics REST API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"regscope/internal/domain"
)

const maxErrorBody = 512

// Client fetches agencies and statistics. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout of the default http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithRateLimit paces requests to rps per second. Zero disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger for request tracing
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Agencies fetches the top-level agency list
func (c *Client) Agencies(ctx context.Context) ([]domain.Agency, error) {
	var agencies []domain.Agency
	if err := c.get(ctx, "/api/agencies", &agencies); err != nil {
		return nil, err
	}
	if agencies == nil {
		agencies = []domain.Agency{}
	}
	return agencies, nil
}

// Agency fetches one agency and its children by slug
func (c *Client) Agency(ctx context.Context, slug string) (domain.AgencyDetail, error) {
	if slug == "" {
		return domain.AgencyDetail{}, errors.New("agency slug must not be empty")
	}

	var detail domain.AgencyDetail
	if err := c.get(ctx, "/api/agencies/"+url.PathEscape(slug), &detail); err != nil {
		return domain.AgencyDetail{}, err
	}
	if detail.Children == nil {
		detail.Children = []domain.Agency{}
	}
	return detail, nil
}

// Corrections fetches the number of corrections per year
func (c *Client) Corrections(ctx context.Context) ([]domain.CorrectionCount, error) {
	var corrections []domain.CorrectionCount
	if err := c.get(ctx, "/api/corrections", &corrections); err != nil {
		return nil, err
	}
	if corrections == nil {
		corrections = []domain.CorrectionCount{}
	}
	return corrections, nil
}

// TotalStatistics fetches aggregate counts across all agencies
func (c *Client) TotalStatistics(ctx context.Context) (domain.TotalStatistics, error) {
	var totals domain.TotalStatistics
	if err := c.get(ctx, "/api/statistics/total", &totals); err != nil {
		return domain.TotalStatistics{}, err
	}
	return totals, nil
}

// Analytics fetches corrections and totals in parallel. Either failure fails
// the whole call.
func (c *Client) Analytics(ctx context.Context) (domain.Analytics, error) {
	var out domain.Analytics
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		corrections, err := c.Corrections(gctx)
		if err != nil {
			return err
		}
		out.Corrections = corrections
		return nil
	})
	g.Go(func() error {
		totals, err := c.TotalStatistics(gctx)
		if err != nil {
			return err
		}
		out.Totals = totals
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.Analytics{}, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("GET %s: %w", path, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{
			Method:     http.MethodGet,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", path, err)
	}
	return nil
}
