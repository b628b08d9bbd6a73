package job

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/logging"
)

const (
	internshipKeyword = "intern"
	remoteKeyword     = "remote"

	// company searches fetch this many times the requested page size before filtering
	companyOverFetch = 3
)

// Service exposes the five search operations
type Service interface {
	SearchJobs(ctx context.Context, req domain.SearchRequest) (Result, error)
	SearchInternships(ctx context.Context, req domain.SearchRequest) (Result, error)
	SearchCompanyJobs(ctx context.Context, req domain.SearchRequest) (Result, error)
	SearchRemoteJobs(ctx context.Context, req domain.SearchRequest) (Result, error)
	GetJobCategories(ctx context.Context, country string) ([]domain.Category, error)
}

// Result is a search outcome together with the normalized request that produced it
type Result struct {
	Request        domain.SearchRequest
	Jobs           []domain.JobListing
	TotalAvailable int
	FetchedAt      time.Time
}

// TotalFound is the number of listings returned to the caller
func (r Result) TotalFound() int {
	return len(r.Jobs)
}

// Option configures Service
type Option func(*config)

type config struct {
	provider Provider
	clock    func() time.Time
	logger   *logging.Logger
}

// WithProvider sets the job provider
func WithProvider(provider Provider) Option {
	return func(c *config) {
		c.provider = provider
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets the service logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.provider == nil {
		return nil, fmt.Errorf("job.Service: provider is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	return &service{
		provider: cfg.provider,
		clock:    cfg.clock,
		logger:   cfg.logger.Named("job_service"),
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(provider Provider, logger *logging.Logger) (Service, error) {
	return NewService(WithProvider(provider), WithLogger(logger))
}

type service struct {
	provider Provider
	clock    func() time.Time
	logger   *logging.Logger
}

// SearchJobs runs a general keyword search
func (s *service) SearchJobs(ctx context.Context, req domain.SearchRequest) (Result, error) {
	req = NormalizeRequest(req)
	if err := ValidateRequest(domain.OpSearchJobs, req); err != nil {
		return Result{}, err
	}

	return s.search(ctx, domain.OpSearchJobs, req, req)
}

// SearchInternships is a general search narrowed by the "intern" keyword
func (s *service) SearchInternships(ctx context.Context, req domain.SearchRequest) (Result, error) {
	req = NormalizeRequest(req)
	if err := ValidateRequest(domain.OpSearchInternships, req); err != nil {
		return Result{}, err
	}

	upstream := req
	upstream.Keywords = appendKeyword(req.Keywords, internshipKeyword)

	return s.search(ctx, domain.OpSearchInternships, req, upstream)
}

// SearchCompanyJobs searches by company name and drops listings from other companies.
// The substring match is a heuristic: legal-entity names that differ from the
// requested name (e.g. "Alphabet Inc" for "Google") are false negatives.
func (s *service) SearchCompanyJobs(ctx context.Context, req domain.SearchRequest) (Result, error) {
	req = NormalizeRequest(req)
	if err := ValidateRequest(domain.OpSearchCompanyJobs, req); err != nil {
		return Result{}, err
	}

	upstream := req
	upstream.Keywords = appendKeyword(req.Company, req.Keywords)
	upstream.ResultsPerPage = min(req.ResultsPerPage*companyOverFetch, MaxResultsPerPage)

	res, err := s.search(ctx, domain.OpSearchCompanyJobs, req, upstream)
	if err != nil {
		return Result{}, err
	}

	before := len(res.Jobs)
	res.Jobs = FilterByCompany(res.Jobs, req.Company, req.ResultsPerPage)
	s.logger.Debug("company filter applied",
		"company", req.Company,
		"before", before,
		"after", len(res.Jobs),
	)
	return res, nil
}

// SearchRemoteJobs searches with the "remote" keyword and keeps remote listings only
func (s *service) SearchRemoteJobs(ctx context.Context, req domain.SearchRequest) (Result, error) {
	req = NormalizeRequest(req)
	if err := ValidateRequest(domain.OpSearchRemoteJobs, req); err != nil {
		return Result{}, err
	}

	upstream := req
	upstream.Keywords = appendKeyword(req.Keywords, remoteKeyword)

	res, err := s.search(ctx, domain.OpSearchRemoteJobs, req, upstream)
	if err != nil {
		return Result{}, err
	}

	res.Jobs = FilterRemote(res.Jobs)
	return res, nil
}

// GetJobCategories lists provider categories for a country
func (s *service) GetJobCategories(ctx context.Context, country string) ([]domain.Category, error) {
	req := NormalizeRequest(domain.SearchRequest{Country: country})
	if err := ValidateRequest(domain.OpGetJobCategories, req); err != nil {
		return nil, err
	}

	categories, err := s.provider.Categories(ctx, req.Country)
	if err != nil {
		s.logger.Warn("category listing failed",
			"provider", s.provider.Name(),
			"country", req.Country,
			"err", err,
		)
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (s *service) search(ctx context.Context, op domain.Operation, req, upstream domain.SearchRequest) (Result, error) {
	now := s.clock()

	out, err := s.provider.Search(ctx, upstream)
	if err != nil {
		s.logger.Warn("provider search failed",
			"op", op,
			"provider", s.provider.Name(),
			"err", err,
		)
		return Result{}, err
	}

	jobs := out.Jobs
	if jobs == nil {
		jobs = []domain.JobListing{}
	}

	fetchedAt := out.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = now
	}

	return Result{
		Request:        req,
		Jobs:           jobs,
		TotalAvailable: out.TotalAvailable,
		FetchedAt:      fetchedAt.UTC(),
	}, nil
}

// FilterByCompany keeps listings whose company contains name, case-insensitively,
// up to limit entries (limit <= 0 means no cap). Order is preserved.
func FilterByCompany(jobs []domain.JobListing, name string, limit int) []domain.JobListing {
	needle := strings.ToLower(strings.TrimSpace(name))
	out := make([]domain.JobListing, 0, len(jobs))
	if needle == "" {
		return out
	}

	for _, j := range jobs {
		if j.Company == domain.Unavailable {
			continue
		}
		if !strings.Contains(strings.ToLower(j.Company), needle) {
			continue
		}
		out = append(out, j)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// FilterRemote keeps listings flagged as remote
func FilterRemote(jobs []domain.JobListing) []domain.JobListing {
	out := make([]domain.JobListing, 0, len(jobs))
	for _, j := range jobs {
		if j.Remote {
			out = append(out, j)
		}
	}
	return out
}

func appendKeyword(base, extra string) string {
	return strings.TrimSpace(base + " " + extra)
}
