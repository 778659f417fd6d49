package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records pinflow metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordNodeFire records one node firing with its duration.
	RecordNodeFire(ctx context.Context, nodeID string, duration time.Duration)

	// RecordRound records a completed propagation round.
	RecordRound(ctx context.Context, duration time.Duration, nodesFired int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	nodeFires    metric.Int64Counter
	nodeLatency  metric.Float64Histogram
	rounds       metric.Int64Counter
	roundLatency metric.Float64Histogram
	roundFired   metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("pinflow")

	nodeFires, err := meter.Int64Counter("pinflow.node.fires",
		metric.WithDescription("Number of node firings"),
	)
	if err != nil {
		return nil, err
	}

	nodeLatency, err := meter.Float64Histogram("pinflow.node.latency_ms",
		metric.WithDescription("Node firing latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	rounds, err := meter.Int64Counter("pinflow.round.count",
		metric.WithDescription("Number of propagation rounds"),
	)
	if err != nil {
		return nil, err
	}

	roundLatency, err := meter.Float64Histogram("pinflow.round.latency_ms",
		metric.WithDescription("Propagation round latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	roundFired, err := meter.Int64Histogram("pinflow.round.nodes_fired",
		metric.WithDescription("Nodes fired per propagation round"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		nodeFires:    nodeFires,
		nodeLatency:  nodeLatency,
		rounds:       rounds,
		roundLatency: roundLatency,
		roundFired:   roundFired,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordNodeFire records one node firing.
func (m *otelMetrics) RecordNodeFire(ctx context.Context, nodeID string, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("node_id", nodeID),
	}
	m.nodeFires.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.nodeLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordRound records a completed propagation round.
func (m *otelMetrics) RecordRound(ctx context.Context, duration time.Duration, nodesFired int) {
	m.rounds.Add(ctx, 1)
	m.roundLatency.Record(ctx, float64(duration.Milliseconds()))
	m.roundFired.Record(ctx, int64(nodesFired))
}
