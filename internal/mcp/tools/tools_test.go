package tools

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain"
	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain/job"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/logging"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type stubProvider struct {
	mu   sync.Mutex
	last domain.SearchRequest
	jobs []domain.JobListing
	cats []domain.Category
	err  error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Search(_ context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = req
	if p.err != nil {
		return domain.SearchResult{}, p.err
	}
	return domain.SearchResult{Jobs: p.jobs, TotalAvailable: 99, FetchedAt: fixedNow}, nil
}

func (p *stubProvider) Categories(_ context.Context, country string) ([]domain.Category, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = domain.SearchRequest{Country: country}
	if p.err != nil {
		return nil, p.err
	}
	return p.cats, nil
}

func (p *stubProvider) lastRequest() domain.SearchRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func newStubService(t *testing.T, p *stubProvider) job.Service {
	t.Helper()
	svc, err := job.NewService(job.WithProvider(p), job.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return svc
}

func testRegistry() *registry {
	return &registry{logger: logging.NewNop(), defaultCountry: "in"}
}

func resultText(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	txt, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return txt.Text
}

func decode[T any](t *testing.T, res *sdkmcp.CallToolResult) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &v))
	return v
}

func sampleJobs() []domain.JobListing {
	return []domain.JobListing{
		{Title: "Go Developer", Company: "Google India", Location: "Bengaluru, Karnataka", Remote: true, URL: "https://a"},
		{Title: "Chef", Company: "Alphabet Foods", Location: "Pune", URL: "https://b", SalaryMin: domain.Unavailable},
		{Title: "SRE", Company: "google cloud", Location: "Remote", Remote: true, URL: "https://c"},
	}
}

func TestSearchJobsHandler(t *testing.T) {
	p := &stubProvider{jobs: sampleJobs()}
	tool := searchTools{reg: testRegistry(), svc: newStubService(t, p)}

	res, out, err := tool.searchJobs(context.Background(), nil, SearchJobsParams{Keywords: "golang", Location: "Bengaluru"})
	require.NoError(t, err)
	require.False(t, res.IsError)

	resp, ok := out.(SearchResponse)
	require.True(t, ok)
	require.Equal(t, "golang", resp.SearchTerms)
	require.Equal(t, "Bengaluru", resp.Location)
	require.Equal(t, "in", resp.Country)
	require.Equal(t, 1, resp.Page)
	require.Equal(t, 3, resp.TotalFound)
	require.Equal(t, 99, resp.TotalAvailable)
	require.Equal(t, "2024-06-01T12:00:00Z", resp.Timestamp)

	decoded := decode[map[string]any](t, res)
	require.Contains(t, decoded, "jobs")
	require.Contains(t, decoded, "total_found")
	jobs := decoded["jobs"].([]any)
	require.Equal(t, domain.Unavailable, jobs[1].(map[string]any)["salary_min"])

	require.Equal(t, "in", p.lastRequest().Country)
}

func TestSearchJobsHandlerInvalidParameter(t *testing.T) {
	p := &stubProvider{}
	tool := searchTools{reg: testRegistry(), svc: newStubService(t, p)}

	res, out, err := tool.searchJobs(context.Background(), nil, SearchJobsParams{Keywords: "   "})
	require.NoError(t, err)
	require.True(t, res.IsError)

	payload := out.(ErrorPayload)
	require.Equal(t, "invalid_parameter", payload.Kind)
	require.False(t, payload.Retryable)
	require.Contains(t, payload.Error, "keywords is required")

	decoded := decode[ErrorPayload](t, res)
	require.Equal(t, payload, decoded)
}

func TestSearchJobsHandlerUpstreamErrors(t *testing.T) {
	cases := []struct {
		err       error
		kind      string
		retryable bool
	}{
		{&domain.UpstreamError{StatusCode: 500, Message: "boom"}, "upstream_error", false},
		{domain.ErrUpstreamFormat, "upstream_format_error", false},
		{domain.ErrUpstreamTimeout, "upstream_timeout", true},
		{domain.ErrUpstreamUnreachable, "upstream_unreachable", true},
		{context.Canceled, "canceled", false},
		{domain.ErrConfigurationMissing, "configuration_missing", false},
		{errors.New("weird"), "internal_error", false},
	}

	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			tool := searchTools{reg: testRegistry(), svc: newStubService(t, &stubProvider{err: tc.err})}

			res, _, err := tool.searchJobs(context.Background(), nil, SearchJobsParams{Keywords: "go"})
			require.NoError(t, err)
			require.True(t, res.IsError)

			payload := decode[ErrorPayload](t, res)
			require.Equal(t, tc.kind, payload.Kind)
			require.Equal(t, tc.retryable, payload.Retryable)
		})
	}
}

func TestSearchInternshipsHandler(t *testing.T) {
	p := &stubProvider{jobs: sampleJobs()[:1]}
	tool := searchTools{reg: testRegistry(), svc: newStubService(t, p)}

	res, _, err := tool.searchInternships(context.Background(), nil, SearchInternshipsParams{Keywords: "marketing", Country: "gb"})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Equal(t, "marketing intern", p.lastRequest().Keywords)
	require.Equal(t, "gb", p.lastRequest().Country)

	resp := decode[SearchResponse](t, res)
	require.Equal(t, "marketing", resp.SearchTerms)
	require.Equal(t, "anywhere", resp.Location)
}

func TestSearchRemoteJobsHandler(t *testing.T) {
	p := &stubProvider{jobs: sampleJobs()}
	tool := searchTools{reg: testRegistry(), svc: newStubService(t, p)}

	res, _, err := tool.searchRemoteJobs(context.Background(), nil, SearchRemoteJobsParams{Keywords: "devops"})
	require.NoError(t, err)

	resp := decode[SearchResponse](t, res)
	require.True(t, resp.RemoteOnly)
	require.Equal(t, 2, resp.TotalFound)
	require.Equal(t, "Go Developer", resp.Jobs[0].Title)
	require.Equal(t, "SRE", resp.Jobs[1].Title)
}

func TestSearchCompanyJobsHandler(t *testing.T) {
	p := &stubProvider{jobs: sampleJobs()}
	tool := companyTool{reg: testRegistry(), svc: newStubService(t, p)}

	res, _, err := tool.handle(context.Background(), nil, SearchCompanyJobsParams{
		CompanyName:    "Google",
		JobDescription: "engineer",
		ResultsPerPage: 5,
	})
	require.NoError(t, err)

	resp := decode[SearchResponse](t, res)
	require.Equal(t, "Google", resp.Company)
	require.Equal(t, "engineer", resp.JobDescription)
	require.Equal(t, 2, resp.TotalFound)
	for _, j := range resp.Jobs {
		require.NotEqual(t, "Alphabet Foods", j.Company)
	}
	require.Equal(t, 15, p.lastRequest().ResultsPerPage)
}

func TestSearchCompanyJobsHandlerRequiresCompany(t *testing.T) {
	tool := companyTool{reg: testRegistry(), svc: newStubService(t, &stubProvider{})}

	res, _, err := tool.handle(context.Background(), nil, SearchCompanyJobsParams{JobDescription: "engineer"})
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Equal(t, "invalid_parameter", decode[ErrorPayload](t, res).Kind)
}

func TestGetJobCategoriesHandler(t *testing.T) {
	p := &stubProvider{cats: []domain.Category{{Tag: "it-jobs", Label: "IT Jobs"}, {Tag: "sales-jobs", Label: "Sales Jobs"}}}
	tool := categoriesTool{reg: testRegistry(), svc: newStubService(t, p), clock: func() time.Time { return fixedNow }}

	res, _, err := tool.handle(context.Background(), nil, GetJobCategoriesParams{Country: "US"})
	require.NoError(t, err)

	resp := decode[CategoriesResponse](t, res)
	require.Equal(t, "us", resp.Country)
	require.Equal(t, 2, resp.TotalFound)
	require.Equal(t, "it-jobs", resp.Categories[0].Tag)
	require.Equal(t, "2024-06-01T12:00:00Z", resp.Timestamp)
}

type recordingExporter struct {
	got SheetsExportParams
	err error
}

func (e *recordingExporter) Export(_ context.Context, params SheetsExportParams) (SheetsExportResult, error) {
	e.got = params
	if e.err != nil {
		return SheetsExportResult{}, e.err
	}
	return SheetsExportResult{SpreadsheetID: params.Sheet.SpreadsheetID, WrittenRows: len(params.Rows), Mode: "append"}, nil
}

func TestSheetsExportHandler(t *testing.T) {
	exp := &recordingExporter{}
	tool := sheetsExportTool{reg: testRegistry(), exporter: exp}

	res, _, err := tool.handle(context.Background(), nil, SheetsExportParams{
		Jobs:  sampleJobs()[:2],
		Rows:  []SheetRow{{Title: "Manual", Status: "applied"}},
		Sheet: SheetTarget{SpreadsheetID: "sheet-1", Tab: "Jobs"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	require.Len(t, exp.got.Rows, 3)
	require.Equal(t, "Go Developer", exp.got.Rows[0].Title)
	require.Equal(t, "new", exp.got.Rows[0].Status)
	require.Equal(t, "Manual", exp.got.Rows[2].Title)
	require.Equal(t, 3, decode[SheetsExportResult](t, res).WrittenRows)
}

func TestSheetsExportHandlerRequiresSpreadsheet(t *testing.T) {
	exp := &recordingExporter{}
	tool := sheetsExportTool{reg: testRegistry(), exporter: exp}

	res, _, err := tool.handle(context.Background(), nil, SheetsExportParams{Rows: []SheetRow{{Title: "x"}}})
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Empty(t, exp.got.Rows)
}

func connect(t *testing.T, opts ...Option) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test-server", Version: "v0.0.1"}, nil)
	Register(server, opts...)

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	_, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestRegisterListsTools(t *testing.T) {
	svc := newStubService(t, &stubProvider{})
	session := connect(t,
		WithJobSearch(svc),
		WithCompanySearch(svc),
		WithJobCategories(svc),
		WithSheetsExport(nil),
		WithLogger(logging.NewNop()),
	)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"search_jobs", "search_internships", "search_remote_jobs", "search_company_jobs", "get_job_categories",
	}, names)
}

func TestCallToolOverSession(t *testing.T) {
	p := &stubProvider{jobs: sampleJobs()}
	svc := newStubService(t, p)
	session := connect(t, WithJobSearch(svc), WithDefaultCountry("gb"))

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name: "search_jobs",
		Arguments: map[string]any{
			"keywords":         "golang developer",
			"results_per_page": 75,
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	resp := decode[SearchResponse](t, res)
	require.Equal(t, "gb", resp.Country)
	require.Equal(t, 50, resp.ResultsPerPage)
	require.Len(t, resp.Jobs, 3)
	require.Equal(t, 50, p.lastRequest().ResultsPerPage)
}

func TestMissingArgumentsReturnToolErrors(t *testing.T) {
	p := &stubProvider{jobs: sampleJobs()}
	svc := newStubService(t, p)
	session := connect(t, WithJobSearch(svc), WithCompanySearch(svc))

	cases := []struct {
		tool string
		args map[string]any
		msg  string
	}{
		{"search_jobs", map[string]any{"country": "in"}, "keywords is required"},
		{"search_internships", map[string]any{}, "keywords is required"},
		{"search_remote_jobs", map[string]any{"location": "Pune"}, "keywords is required"},
		{"search_company_jobs", map[string]any{"job_description": "engineer"}, "company is required"},
		{"search_jobs", map[string]any{"keywords": "go", "sort_by": "newest"}, "sort_by must be one of"},
	}

	for _, tc := range cases {
		t.Run(tc.tool+"/"+tc.msg, func(t *testing.T) {
			res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: tc.tool, Arguments: tc.args})
			require.NoError(t, err)
			require.True(t, res.IsError)

			payload := decode[ErrorPayload](t, res)
			require.Equal(t, "invalid_parameter", payload.Kind)
			require.Contains(t, payload.Error, tc.msg)
		})
	}
	require.Equal(t, domain.SearchRequest{}, p.lastRequest())
}

func TestSearchJobsForwardsFiltersOverSession(t *testing.T) {
	p := &stubProvider{jobs: sampleJobs()}
	session := connect(t, WithJobSearch(newStubService(t, p)))

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name: "search_jobs",
		Arguments: map[string]any{
			"keywords":      "golang",
			"sort_by":       "date",
			"max_days_old":  7,
			"contract_time": "full_time",
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	got := p.lastRequest()
	require.Equal(t, "date", got.SortBy)
	require.Equal(t, 7, got.MaxDaysOld)
	require.Equal(t, "full_time", got.ContractTime)

	resp := decode[SearchResponse](t, res)
	require.Equal(t, "date", resp.SortBy)
	require.Equal(t, 7, resp.MaxDaysOld)
}

func TestCountriesResource(t *testing.T) {
	session := connect(t, WithCountriesResource())

	res, err := session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: countriesURI})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	var countries []CountryInfo
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &countries))
	require.Contains(t, countries, CountryInfo{Code: "in", Currency: "INR"})
	require.Contains(t, countries, CountryInfo{Code: "gb", Currency: "GBP"})
}
