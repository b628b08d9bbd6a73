package mcp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/config"
	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain"
	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain/job"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/logging"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/metrics"
)

type staticProvider struct{}

func (staticProvider) Name() string { return "static" }

func (staticProvider) Search(_ context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	return domain.SearchResult{
		Jobs: []domain.JobListing{
			{Title: "Platform Engineer", Company: "Acme", Location: "Pune", URL: "https://example.test/1"},
		},
		TotalAvailable: 1,
	}, nil
}

func (staticProvider) Categories(_ context.Context, _ string) ([]domain.Category, error) {
	return []domain.Category{{Tag: "it-jobs", Label: "IT Jobs"}}, nil
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	svc, err := job.NewService(job.WithProvider(staticProvider{}))
	require.NoError(t, err)

	cfg := config.Config{
		Transport: config.TransportHTTP,
		Host:      "127.0.0.1",
		Port:      "0",
		Adzuna:    config.AdzunaConfig{Country: "in", Timeout: config.DefaultAdzunaTimeout},
	}
	res := &Resources{JobService: svc, Metrics: metrics.New(ServerName, "test")}

	srv := NewServer(logging.NewNop(), cfg, res, "test")
	httpSrv := httptest.NewServer(srv.Handler())
	t.Cleanup(httpSrv.Close)
	return srv, httpSrv
}

func TestHealthz(t *testing.T) {
	_, httpSrv := newTestServer(t)

	resp, err := http.Get(httpSrv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))
}

func TestStreamableHTTPToolCall(t *testing.T) {
	_, httpSrv := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: httpSrv.URL + streamPath}, nil)
	require.NoError(t, err)
	defer func() { _ = session.Close() }()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 5)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "search_company_jobs",
		Arguments: map[string]any{"company_name": "acme"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var out map[string]any
	txt := res.Content[0].(*sdkmcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(txt), &out))
	require.Equal(t, "acme", out["company"])
	require.EqualValues(t, 1, out["total_found"])

	metricsResp, err := http.Get(httpSrv.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	body, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), `adzuna_jobs_mcp_tool_calls_total{outcome="ok",tool="search_company_jobs"} 1`))
}

func TestRunIsIdempotent(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.started.Store(true)
	require.NoError(t, srv.Run(context.Background()))
}

func TestShutdownStdioWithoutRun(t *testing.T) {
	svc, err := job.NewService(job.WithProvider(staticProvider{}))
	require.NoError(t, err)

	srv := NewServer(logging.NewNop(), config.Config{Transport: config.TransportStdio}, &Resources{JobService: svc}, "test")
	require.NoError(t, srv.Shutdown(context.Background()))
}
