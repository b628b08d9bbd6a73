package main

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/config"
	"github.com/honeycarbs/adzuna-jobs-mcp/internal/mcp"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/logging"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/metrics"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/shutdown"
)

var version = "dev"

// CLI flags override the matching environment variables
type CLI struct {
	VersionFlag kong.VersionFlag `name:"version" help:"Print version."`

	Transport string   `help:"MCP transport: stdio or http (env MCP_TRANSPORT)."`
	Host      string   `help:"HTTP listen host (env MCP_HOST)."`
	Port      string   `help:"HTTP listen port (env PORT)."`
	LogLevel  string   `name:"log-level" help:"debug, info, warn or error (env LOG_LEVEL)."`
	EnvFile   []string `name:"env-file" type:"path" help:"Load environment from these files instead of ./.env."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("adzuna-jobs-mcp"),
		kong.Description("MCP server exposing Adzuna job search tools."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)

	if err := config.LoadEnvFiles(cli.EnvFile...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cli.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	collector := metrics.New(mcp.ServerName, version)

	res, err := mcp.InitializeResources(ctx, cfg, logger, collector)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}
	logger.Info("Adzuna provider initialized", "country", cfg.Adzuna.Country, "timeout", cfg.Adzuna.Timeout)

	srv := mcp.NewServer(logger, cfg, res, version)

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		srv,
		10*time.Second,
		logger,
	)

	logger.Info("MCP server initialized and starting", "transport", cfg.Transport, "version", version)

	if err := srv.Run(ctx); err != nil {
		logger.Error("MCP server exited with error", "err", err)
		os.Exit(1)
	}
	logger.Info("MCP server stopped")
}

func (c CLI) apply(cfg *config.Config) {
	if c.Transport != "" {
		cfg.Transport = c.Transport
	}
	if c.Host != "" {
		cfg.Host = c.Host
	}
	if c.Port != "" {
		cfg.Port = c.Port
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
}
