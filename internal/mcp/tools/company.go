package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain"
	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain/job"
)

// SearchCompanyJobsParams defines the arguments for the search_company_jobs tool
type SearchCompanyJobsParams struct {
	CompanyName    string `json:"company_name,omitempty" jsonschema:"Name of the company to search, matched case-insensitively against the listing company"`
	JobDescription string `json:"job_description,omitempty" jsonschema:"Optional job title or description keywords"`
	Location       string `json:"location,omitempty" jsonschema:"City or region to search"`
	Country        string `json:"country,omitempty" jsonschema:"Two-letter country code such as in, us or gb"`
	Page           int    `json:"page,omitempty" jsonschema:"Page number for pagination, default 1"`
	ResultsPerPage int    `json:"results_per_page,omitempty" jsonschema:"Results per page, default 20, max 50"`
}

const companySearchDescription = "Search Adzuna for openings at a specific company. Listings whose company name " +
	"does not contain the requested name are dropped, so subsidiaries under a different legal name may be missed"

type companyTool struct {
	reg *registry
	svc job.Service
}

// WithCompanySearch registers the search_company_jobs tool
func WithCompanySearch(svc job.Service) Option {
	return func(reg *registry) {
		reg.add(func(reg *registry) {
			t := companyTool{reg: reg, svc: svc}
			sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
				Name:        string(domain.OpSearchCompanyJobs),
				Description: companySearchDescription,
			}, t.handle)
		})
	}
}

func (t companyTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SearchCompanyJobsParams) (*sdkmcp.CallToolResult, any, error) {
	c := t.reg.begin(string(domain.OpSearchCompanyJobs), "company", params.CompanyName)

	res, err := t.svc.SearchCompanyJobs(ctx, domain.SearchRequest{
		Company:        params.CompanyName,
		Keywords:       params.JobDescription,
		Location:       params.Location,
		Country:        t.reg.country(params.Country),
		Page:           params.Page,
		ResultsPerPage: params.ResultsPerPage,
	})
	if err != nil {
		return c.fail(err)
	}

	out := newSearchResponse(res)
	out.Company = res.Request.Company
	out.JobDescription = res.Request.Keywords
	return c.done(out, res.TotalFound())
}
