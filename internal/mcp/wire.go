//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/config"
	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain/job"
	adzunaProvider "github.com/honeycarbs/adzuna-jobs-mcp/internal/domain/job/providers/adzuna"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/adzuna"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/logging"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/metrics"
)

// InitializeResources creates Resources with all dependencies wired up
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger, collector *metrics.Collector) (*Resources, error) {
	wire.Build(
		// Infrastructure - Adzuna
		provideAdzunaConfig,
		adzuna.NewClient,

		// Providers
		provideAdzunaProvider,
		wire.Bind(new(job.Provider), new(*adzunaProvider.Provider)),

		// Services
		job.NewServiceWithDeps,

		// Export
		provideSheetsExporter,

		wire.Struct(new(Resources), "*"),
	)

	return &Resources{}, nil
}
