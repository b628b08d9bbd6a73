package tools

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain"
	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain/job"
)

// SearchJobsParams defines the arguments for the search_jobs tool
type SearchJobsParams struct {
	Keywords       string `json:"keywords,omitempty" jsonschema:"Job search keywords, e.g. Software Engineer or Marketing Manager"`
	Location       string `json:"location,omitempty" jsonschema:"City or region to search, e.g. Bangalore or Mumbai"`
	Country        string `json:"country,omitempty" jsonschema:"Two-letter country code such as in, us or gb"`
	Page           int    `json:"page,omitempty" jsonschema:"Page number for pagination, default 1"`
	ResultsPerPage int    `json:"results_per_page,omitempty" jsonschema:"Results per page, default 20, max 50"`
	Category       string `json:"category,omitempty" jsonschema:"Category tag from get_job_categories, e.g. it-jobs"`
	SortBy         string `json:"sort_by,omitempty" jsonschema:"Result order: default, hybrid, date, salary or relevance"`
	MaxDaysOld     int    `json:"max_days_old,omitempty" jsonschema:"Only listings posted within this many days"`
	ContractTime   string `json:"contract_time,omitempty" jsonschema:"full_time or part_time"`
	ContractType   string `json:"contract_type,omitempty" jsonschema:"permanent or contract"`
}

// SearchInternshipsParams defines the arguments for the search_internships tool
type SearchInternshipsParams struct {
	Keywords       string `json:"keywords,omitempty" jsonschema:"Field or role to find internships for, e.g. data science"`
	Location       string `json:"location,omitempty" jsonschema:"City or region to search"`
	Country        string `json:"country,omitempty" jsonschema:"Two-letter country code such as in, us or gb"`
	Page           int    `json:"page,omitempty" jsonschema:"Page number for pagination, default 1"`
	ResultsPerPage int    `json:"results_per_page,omitempty" jsonschema:"Results per page, default 20, max 50"`
}

// SearchRemoteJobsParams defines the arguments for the search_remote_jobs tool
type SearchRemoteJobsParams struct {
	Keywords       string `json:"keywords,omitempty" jsonschema:"Job search keywords"`
	Location       string `json:"location,omitempty" jsonschema:"Optional city or region the remote role is advertised in"`
	Country        string `json:"country,omitempty" jsonschema:"Two-letter country code to search within"`
	Page           int    `json:"page,omitempty" jsonschema:"Page number for pagination, default 1"`
	ResultsPerPage int    `json:"results_per_page,omitempty" jsonschema:"Results per page, default 20, max 50"`
}

// SearchResponse is the envelope returned by the search tools
type SearchResponse struct {
	SearchTerms    string              `json:"search_terms"`
	Company        string              `json:"company,omitempty"`
	JobDescription string              `json:"job_description,omitempty"`
	Location       string              `json:"location"`
	Country        string              `json:"country"`
	Page           int                 `json:"page"`
	ResultsPerPage int                 `json:"results_per_page"`
	SortBy         string              `json:"sort_by,omitempty"`
	MaxDaysOld     int                 `json:"max_days_old,omitempty"`
	ContractTime   string              `json:"contract_time,omitempty"`
	ContractType   string              `json:"contract_type,omitempty"`
	RemoteOnly     bool                `json:"remote_only,omitempty"`
	Jobs           []domain.JobListing `json:"jobs"`
	TotalFound     int                 `json:"total_found"`
	TotalAvailable int                 `json:"total_available"`
	Timestamp      string              `json:"timestamp"`
}

func newSearchResponse(res job.Result) SearchResponse {
	req := res.Request
	location := req.Location
	if location == "" {
		location = "anywhere"
	}
	return SearchResponse{
		SearchTerms:    req.Keywords,
		Location:       location,
		Country:        req.Country,
		Page:           req.Page,
		ResultsPerPage: req.ResultsPerPage,
		SortBy:         req.SortBy,
		MaxDaysOld:     req.MaxDaysOld,
		ContractTime:   req.ContractTime,
		ContractType:   req.ContractType,
		Jobs:           res.Jobs,
		TotalFound:     res.TotalFound(),
		TotalAvailable: res.TotalAvailable,
		Timestamp:      res.FetchedAt.Format(time.RFC3339),
	}
}

type searchTools struct {
	reg *registry
	svc job.Service
}

// WithJobSearch registers search_jobs, search_internships and search_remote_jobs
func WithJobSearch(svc job.Service) Option {
	return func(reg *registry) {
		reg.add(func(reg *registry) {
			t := searchTools{reg: reg, svc: svc}

			sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
				Name:        string(domain.OpSearchJobs),
				Description: "Search Adzuna for job opportunities across all industries",
			}, t.searchJobs)

			sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
				Name:        string(domain.OpSearchInternships),
				Description: "Search Adzuna for internships, trainee and apprentice roles",
			}, t.searchInternships)

			sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
				Name:        string(domain.OpSearchRemoteJobs),
				Description: "Search Adzuna for remote and work-from-home roles; only listings flagged remote are returned",
			}, t.searchRemoteJobs)
		})
	}
}

func (t searchTools) searchJobs(ctx context.Context, _ *sdkmcp.CallToolRequest, params SearchJobsParams) (*sdkmcp.CallToolResult, any, error) {
	c := t.reg.begin(string(domain.OpSearchJobs), "keywords", params.Keywords, "location", params.Location)

	res, err := t.svc.SearchJobs(ctx, domain.SearchRequest{
		Keywords:       params.Keywords,
		Location:       params.Location,
		Country:        t.reg.country(params.Country),
		Page:           params.Page,
		ResultsPerPage: params.ResultsPerPage,
		Category:       params.Category,
		SortBy:         params.SortBy,
		MaxDaysOld:     params.MaxDaysOld,
		ContractTime:   params.ContractTime,
		ContractType:   params.ContractType,
	})
	if err != nil {
		return c.fail(err)
	}
	return c.done(newSearchResponse(res), res.TotalFound())
}

func (t searchTools) searchInternships(ctx context.Context, _ *sdkmcp.CallToolRequest, params SearchInternshipsParams) (*sdkmcp.CallToolResult, any, error) {
	c := t.reg.begin(string(domain.OpSearchInternships), "keywords", params.Keywords, "location", params.Location)

	res, err := t.svc.SearchInternships(ctx, domain.SearchRequest{
		Keywords:       params.Keywords,
		Location:       params.Location,
		Country:        t.reg.country(params.Country),
		Page:           params.Page,
		ResultsPerPage: params.ResultsPerPage,
	})
	if err != nil {
		return c.fail(err)
	}
	return c.done(newSearchResponse(res), res.TotalFound())
}

func (t searchTools) searchRemoteJobs(ctx context.Context, _ *sdkmcp.CallToolRequest, params SearchRemoteJobsParams) (*sdkmcp.CallToolResult, any, error) {
	c := t.reg.begin(string(domain.OpSearchRemoteJobs), "keywords", params.Keywords)

	res, err := t.svc.SearchRemoteJobs(ctx, domain.SearchRequest{
		Keywords:       params.Keywords,
		Location:       params.Location,
		Country:        t.reg.country(params.Country),
		Page:           params.Page,
		ResultsPerPage: params.ResultsPerPage,
	})
	if err != nil {
		return c.fail(err)
	}
	out := newSearchResponse(res)
	out.RemoteOnly = true
	return c.done(out, res.TotalFound())
}
