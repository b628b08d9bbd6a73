package mcp

import (
	"context"
	"fmt"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/config"
	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain/job"
	adzunaProvider "github.com/honeycarbs/adzuna-jobs-mcp/internal/domain/job/providers/adzuna"
	"github.com/honeycarbs/adzuna-jobs-mcp/internal/mcp/tools"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/adzuna"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/logging"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/metrics"
	sheetsclient "github.com/honeycarbs/adzuna-jobs-mcp/pkg/sheets"
)

// Resources are the dependencies tool handlers run against
type Resources struct {
	JobService job.Service
	Sheets     tools.SheetsExporter // nil when Sheets is not configured
	Metrics    *metrics.Collector
}

// provideAdzunaConfig extracts Adzuna config from main config
func provideAdzunaConfig(cfg config.Config) adzuna.Config {
	return adzuna.Config{
		AppID:   cfg.Adzuna.AppID,
		AppKey:  cfg.Adzuna.AppKey,
		Country: cfg.Adzuna.Country,
		BaseURL: cfg.Adzuna.BaseURL,
		Timeout: cfg.Adzuna.Timeout,
	}
}

// provideAdzunaProvider creates an Adzuna provider from client
func provideAdzunaProvider(client *adzuna.Client, collector *metrics.Collector) (*adzunaProvider.Provider, error) {
	return adzunaProvider.NewProvider(client, collector)
}

// provideSheetsExporter builds the Sheets adapter, or nil when no credentials are configured
func provideSheetsExporter(ctx context.Context, cfg config.Config, logger *logging.Logger) (tools.SheetsExporter, error) {
	if !cfg.Sheets.Enabled() {
		logger.Info("Google Sheets export disabled", "reason", "GOOGLE_SHEETS_CREDENTIALS_PATH not set")
		return nil, nil
	}

	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		return nil, fmt.Errorf("sheets export: %w", err)
	}

	logger.Info("Google Sheets export enabled")
	return newSheetsExporter(client), nil
}
