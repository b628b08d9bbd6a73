package job

import (
	"context"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain"
)

// Provider represents an external job data source
type Provider interface {
	// e.g. "adzuna"
	Name() string

	// Search runs one upstream search and returns normalized listings in provider order
	Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error)

	// Categories lists the provider's job categories for a country
	Categories(ctx context.Context, country string) ([]domain.Category, error)
}
