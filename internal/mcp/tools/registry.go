package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/logging"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/metrics"
)

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server         *sdkmcp.Server
	logger         *logging.Logger
	metrics        *metrics.Collector
	defaultCountry string

	pending []func(*registry)
}

// Register applies the provided tool options.
// Settings such as WithLogger apply to every tool regardless of option order.
func Register(server *sdkmcp.Server, opts ...Option) {
	reg := &registry{
		server:         server,
		logger:         logging.NewNop(),
		defaultCountry: "in",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
	for _, add := range reg.pending {
		add(reg)
	}
}

// WithLogger sets the logger used by tool handlers
func WithLogger(logger *logging.Logger) Option {
	return func(reg *registry) {
		if logger != nil {
			reg.logger = logger.Named("tools")
		}
	}
}

// WithMetrics records every tool call on collector
func WithMetrics(collector *metrics.Collector) Option {
	return func(reg *registry) {
		reg.metrics = collector
	}
}

// WithDefaultCountry sets the country used when a call omits one
func WithDefaultCountry(country string) Option {
	return func(reg *registry) {
		if country != "" {
			reg.defaultCountry = country
		}
	}
}

func (reg *registry) add(fn func(*registry)) {
	reg.pending = append(reg.pending, fn)
}

func (reg *registry) country(v string) string {
	if v == "" {
		return reg.defaultCountry
	}
	return v
}
