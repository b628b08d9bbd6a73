package mcp

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/config"
	"github.com/honeycarbs/adzuna-jobs-mcp/internal/mcp/tools"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/logging"
)

const (
	ServerName = "adzuna-jobs-mcp"

	streamPath = "/mcp/stream"
)

// Server wraps an MCP SDK server with its stdio or HTTP transport
type Server struct {
	logger *logging.Logger
	config config.Config

	mcp     *sdkmcp.Server
	handler http.Handler
	srv     *http.Server
	started atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewServer constructs the MCP server and registers every tool backed by res
func NewServer(log *logging.Logger, cfg config.Config, res *Resources, version string) *Server {
	impl := &sdkmcp.Implementation{
		Name:    ServerName,
		Version: version,
	}

	mcpServer := sdkmcp.NewServer(impl, nil)

	tools.Register(mcpServer,
		tools.WithLogger(log),
		tools.WithMetrics(res.Metrics),
		tools.WithDefaultCountry(cfg.Adzuna.Country),
		tools.WithJobSearch(res.JobService),
		tools.WithCompanySearch(res.JobService),
		tools.WithJobCategories(res.JobService),
		tools.WithSheetsExport(res.Sheets),
		tools.WithCountriesResource(),
	)

	streamHandler := sdkmcp.NewStreamableHTTPHandler(func(req *http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(streamPath, streamHandler)
	mux.Handle("/metrics", res.Metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		logger:  log.Named("server"),
		config:  cfg,
		mcp:     mcpServer,
		handler: mux,
		srv:     httpSrv,
	}
}

// MCP exposes the underlying SDK server, used to attach extra transports
func (s *Server) MCP() *sdkmcp.Server {
	return s.mcp
}

// Handler returns the HTTP mux serving the stream endpoint, /healthz and /metrics
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves the configured transport and blocks until shutdown
func (s *Server) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	if s.config.Transport == config.TransportHTTP {
		return s.runHTTP()
	}
	return s.runStdio(ctx)
}

func (s *Server) runHTTP() error {
	s.logger.Info("MCP HTTP server listening", "addr", s.srv.Addr, "path", streamPath)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) runStdio(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	s.logger.Info("MCP stdio server started")

	err := s.mcp.Run(ctx, &sdkmcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Shutdown stops whichever transport is running
func (s *Server) Shutdown(ctx context.Context) error {
	if s.config.Transport != config.TransportHTTP {
		s.mu.Lock()
		cancel := s.cancel
		s.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		s.logger.Info("MCP stdio server shutdown complete")
		return nil
	}

	s.logger.Info("shutdown requested for MCP HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("MCP HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("MCP HTTP server shutdown complete")
	return nil
}
