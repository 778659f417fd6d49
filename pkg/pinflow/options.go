package pinflow

import (
	"log/slog"

	"github.com/gzp-crey/pinflow/pkg/pinflow/journal"
	"github.com/gzp-crey/pinflow/pkg/pinflow/observability"
)

// systemConfig holds the ambient configuration of a System.
type systemConfig struct {
	name    string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	tracing bool
	journal journal.Store
}

func defaultSystemConfig() systemConfig {
	return systemConfig{
		name:    "pinflow",
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a System at construction time.
type Option func(*systemConfig)

// WithName sets the system name used in logs, spans, and DOT exports.
// Default: "pinflow".
func WithName(name string) Option {
	return func(c *systemConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger enables structured logging of rounds and node firings.
// A nil logger disables logging (the default).
func WithLogger(logger *slog.Logger) Option {
	return func(c *systemConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder for rounds and node firings.
// Default: observability.NoopMetrics.
//
// Example:
//
//	sys := pinflow.NewSystem(pinflow.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *systemConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing enables span creation around rounds and node firings.
// Default: disabled.
func WithTracing(sm observability.SpanManager) Option {
	return func(c *systemConfig) {
		if sm != nil {
			c.spans = sm
			c.tracing = true
		}
	}
}

// WithJournal records every propagation round to the given store for
// later inspection. Journal failures are logged, never propagated:
// diagnostics must not influence propagation.
func WithJournal(store journal.Store) Option {
	return func(c *systemConfig) {
		c.journal = store
	}
}

// NodeOption configures a node at registration time.
type NodeOption func(*node)

// WithNodeName overrides the default node name (derived from the
// behavior's type) used in logs, journals, and DOT exports.
func WithNodeName(name string) NodeOption {
	return func(n *node) {
		if name != "" {
			n.name = name
		}
	}
}
