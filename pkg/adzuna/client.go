package adzuna

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://api.adzuna.com"
	defaultCountry  = "in"
	defaultPageSize = 20
	defaultTimeout  = 30 * time.Second

	maxBodySize  = 8 << 20
	maxErrorBody = 4096
)

var (
	ErrMissingCredentials = errors.New("adzuna: app_id and app_key are required")
	ErrUnsupportedCountry = errors.New("adzuna: unsupported country")
	ErrInvalidParameter   = errors.New("adzuna: invalid parameter")
	ErrDecode             = errors.New("adzuna: unexpected response format")
	ErrTimeout            = errors.New("adzuna: request timed out")
	ErrUnreachable        = errors.New("adzuna: provider unreachable")
)

// APIError is returned when Adzuna answers with a non-success status
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("adzuna: API error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("adzuna: API error (%d): %s", e.StatusCode, e.Message)
}

// NewClient instantiates an Adzuna API client
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.AppID) == "" || strings.TrimSpace(cfg.AppKey) == "" {
		return nil, ErrMissingCredentials
	}

	country := NormalizeCountry(cfg.Country)
	if country == "" {
		country = defaultCountry
	}
	if !IsSupportedCountry(country) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCountry, cfg.Country)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		appID:      strings.TrimSpace(cfg.AppID),
		appKey:     strings.TrimSpace(cfg.AppKey),
		country:    country,
		baseURL:    baseURL,
		httpClient: httpClient,
		pageSize:   ClampResultsPerPage(pageSize),
	}, nil
}

// Country returns the default country used when a request omits one
func (c *Client) Country() string {
	return c.country
}

// Search runs one search request against Adzuna
func (c *Client) Search(ctx context.Context, params SearchParams) (SearchPage, error) {
	q, err := c.BuildSearchQuery(params)
	if err != nil {
		return SearchPage{}, err
	}

	body, err := c.get(ctx, q)
	if err != nil {
		return SearchPage{}, err
	}

	return DecodeSearchResponse(body)
}

// Categories lists the category tags for a country
func (c *Client) Categories(ctx context.Context, country string) ([]Category, error) {
	q, err := c.BuildCategoriesQuery(country)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, q)
	if err != nil {
		return nil, err
	}

	return DecodeCategoriesResponse(body)
}

func (c *Client) get(ctx context.Context, q Query) ([]byte, error) {
	u, err := q.URL(c.baseURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("adzuna: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		reqErr := &requestError{err: err}
		switch {
		case isTimeout(err):
			return nil, fmt.Errorf("%w: %w", ErrTimeout, reqErr)
		case errors.Is(err, context.Canceled):
			return nil, fmt.Errorf("adzuna: request canceled: %w", reqErr)
		default:
			return nil, fmt.Errorf("%w: %w", ErrUnreachable, reqErr)
		}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: reading body", ErrTimeout)
		}
		return nil, fmt.Errorf("adzuna: read response: %w", err)
	}
	return body, nil
}

// errorMessage extracts the human-readable part of an Adzuna error body
func errorMessage(body []byte) string {
	var payload struct {
		Display   string `json:"display"`
		Exception string `json:"exception"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Display != "" && payload.Exception != "":
			return payload.Exception + ": " + payload.Display
		case payload.Display != "":
			return payload.Display
		case payload.Exception != "":
			return payload.Exception
		}
	}
	return strings.TrimSpace(string(body))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// requestError is a transport failure whose message has the app key masked
type requestError struct {
	err error
}

func (e *requestError) Error() string {
	var urlErr *url.Error
	if errors.As(e.err, &urlErr) {
		return fmt.Sprintf("%s %q: %v", urlErr.Op, redactURL(urlErr.URL), urlErr.Err)
	}
	return e.err.Error()
}

func (e *requestError) Unwrap() error {
	return e.err
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "REDACTED"
	}
	q := u.Query()
	if q.Has("app_key") {
		q.Set("app_key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
