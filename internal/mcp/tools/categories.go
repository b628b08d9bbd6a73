package tools

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain"
	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain/job"
)

// GetJobCategoriesParams defines the arguments for the get_job_categories tool
type GetJobCategoriesParams struct {
	Country string `json:"country,omitempty" jsonschema:"Two-letter country code such as in, us or gb"`
}

// CategoriesResponse is the envelope returned by get_job_categories
type CategoriesResponse struct {
	Country    string            `json:"country"`
	Categories []domain.Category `json:"categories"`
	TotalFound int               `json:"total_found"`
	Timestamp  string            `json:"timestamp"`
}

type categoriesTool struct {
	reg   *registry
	svc   job.Service
	clock func() time.Time
}

// WithJobCategories registers the get_job_categories tool
func WithJobCategories(svc job.Service) Option {
	return func(reg *registry) {
		reg.add(func(reg *registry) {
			t := categoriesTool{reg: reg, svc: svc, clock: time.Now}
			sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
				Name:        string(domain.OpGetJobCategories),
				Description: "List the Adzuna job category tags available for a country; tags can be passed to search_jobs",
			}, t.handle)
		})
	}
}

func (t categoriesTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params GetJobCategoriesParams) (*sdkmcp.CallToolResult, any, error) {
	country := t.reg.country(params.Country)
	c := t.reg.begin(string(domain.OpGetJobCategories), "country", country)

	cats, err := t.svc.GetJobCategories(ctx, country)
	if err != nil {
		return c.fail(err)
	}

	out := CategoriesResponse{
		Country:    job.NormalizeRequest(domain.SearchRequest{Country: country}).Country,
		Categories: cats,
		TotalFound: len(cats),
		Timestamp:  t.clock().UTC().Format(time.RFC3339),
	}
	return c.done(out, len(cats))
}
