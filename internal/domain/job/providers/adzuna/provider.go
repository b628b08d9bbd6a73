package adzuna

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain"
	jobdomain "github.com/honeycarbs/adzuna-jobs-mcp/internal/domain/job"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/adzuna"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/metrics"
)

const providerName = "adzuna"

// apiClient describes the subset of the Adzuna client used by the provider.
type apiClient interface {
	Search(ctx context.Context, params adzuna.SearchParams) (adzuna.SearchPage, error)
	Categories(ctx context.Context, country string) ([]adzuna.Category, error)
}

// Provider implements job.Provider using Adzuna API
type Provider struct {
	client  apiClient
	metrics *metrics.Collector
	clock   func() time.Time
}

// NewProvider builds an Adzuna provider; collector may be nil
func NewProvider(client apiClient, collector *metrics.Collector) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("adzuna provider: client is required")
	}
	return &Provider{
		client:  client,
		metrics: collector,
		clock:   time.Now,
	}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return providerName
}

// Search queries Adzuna and returns normalized listings
func (p *Provider) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	params := adzuna.SearchParams{
		What:           req.Keywords,
		Where:          req.Location,
		Country:        req.Country,
		Page:           req.Page,
		ResultsPerPage: req.ResultsPerPage,
		Category:       req.Category,
		SortBy:         req.SortBy,
		MaxDaysOld:     req.MaxDaysOld,
		FullTime:       req.ContractTime == "full_time",
		PartTime:       req.ContractTime == "part_time",
		Permanent:      req.ContractType == "permanent",
		Contract:       req.ContractType == "contract",
	}

	page, err := p.client.Search(ctx, params)
	err = translateError(err)
	p.metrics.ObserveUpstream("search", domain.ErrorKind(err))
	if err != nil {
		return domain.SearchResult{}, err
	}

	currency := adzuna.Currency(req.Country)
	out := make([]domain.JobListing, 0, len(page.Jobs))
	for _, j := range page.Jobs {
		out = append(out, toListing(j, currency))
	}

	return domain.SearchResult{
		Jobs:           out,
		TotalAvailable: page.Count,
		FetchedAt:      p.clock().UTC(),
	}, nil
}

// Categories lists Adzuna categories for a country
func (p *Provider) Categories(ctx context.Context, country string) ([]domain.Category, error) {
	cats, err := p.client.Categories(ctx, country)
	err = translateError(err)
	p.metrics.ObserveUpstream("categories", domain.ErrorKind(err))
	if err != nil {
		return nil, err
	}

	out := make([]domain.Category, 0, len(cats))
	for _, c := range cats {
		label := c.Label
		if label == "" {
			label = domain.Unavailable
		}
		out = append(out, domain.Category{Tag: c.Tag, Label: label})
	}
	return out, nil
}

var _ jobdomain.Provider = (*Provider)(nil)

func toListing(j adzuna.Job, currency string) domain.JobListing {
	id := j.ID
	if id == "" {
		id = uuid.NewString()
	}

	created := j.PostedAtRaw
	if !j.PostedAt.IsZero() {
		created = j.PostedAt.Format(time.RFC3339)
	}

	return domain.JobListing{
		ID:           id,
		Title:        orUnavailable(j.Title),
		Company:      orUnavailable(j.CompanyName),
		Location:     orUnavailable(j.Location),
		Category:     orUnavailable(j.Category),
		SalaryMin:    amount(j.SalaryMin),
		SalaryMax:    amount(j.SalaryMax),
		Salary:       formatSalary(j.SalaryMin, j.SalaryMax, j.SalaryPredicted, currency),
		ContractType: orUnavailable(j.ContractType),
		ContractTime: orUnavailable(j.ContractTime),
		URL:          orUnavailable(j.URL),
		CreatedDate:  orUnavailable(created),
		Description:  orUnavailable(j.Description),
		Remote:       j.Remote,
		IsInternship: j.IsInternship,
		Source:       providerName,
	}
}

func orUnavailable(v string) string {
	if strings.TrimSpace(v) == "" {
		return domain.Unavailable
	}
	return v
}

func amount(v *float64) string {
	if v == nil || *v <= 0 {
		return domain.Unavailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// formatSalary renders a human range such as "INR 50,000 - 80,000"
func formatSalary(lo, hi *float64, predicted bool, currency string) string {
	hasLo := lo != nil && *lo > 0
	hasHi := hi != nil && *hi > 0

	var s string
	switch {
	case hasLo && hasHi && math.Round(*lo) == math.Round(*hi):
		s = money(currency, *lo)
	case hasLo && hasHi:
		s = money(currency, *lo) + " - " + humanize.Comma(int64(math.Round(*hi)))
	case hasLo:
		s = money(currency, *lo) + "+"
	case hasHi:
		s = "up to " + money(currency, *hi)
	default:
		return domain.Unavailable
	}

	if predicted {
		s += " (estimated)"
	}
	return s
}

func money(currency string, v float64) string {
	n := humanize.Comma(int64(math.Round(v)))
	if currency == "" {
		return n
	}
	return currency + " " + n
}

// translateError maps Adzuna client errors onto domain error kinds
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *adzuna.APIError
	switch {
	case errors.As(err, &apiErr):
		return &domain.UpstreamError{StatusCode: apiErr.StatusCode, Message: apiErr.Message}
	case errors.Is(err, adzuna.ErrTimeout):
		return fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
	case errors.Is(err, adzuna.ErrUnreachable):
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnreachable, err)
	case errors.Is(err, adzuna.ErrDecode):
		return fmt.Errorf("%w: %v", domain.ErrUpstreamFormat, err)
	case errors.Is(err, adzuna.ErrMissingCredentials):
		return fmt.Errorf("%w: %v", domain.ErrConfigurationMissing, err)
	case errors.Is(err, adzuna.ErrUnsupportedCountry), errors.Is(err, adzuna.ErrInvalidParameter):
		return fmt.Errorf("%w: %v", domain.ErrInvalidParameter, err)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return &domain.UpstreamError{Message: err.Error()}
	}
}
