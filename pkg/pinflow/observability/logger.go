// Package observability provides structured logging, metrics, and
// distributed tracing for pinflow systems.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import "log/slog"

// EnrichLogger adds propagation context to a logger.
// Returns a new logger with system and round_id fields.
func EnrichLogger(logger *slog.Logger, system, roundID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("system", system),
		slog.String("round_id", roundID),
	)
}

// LogRoundStart logs the start of a propagation round.
func LogRoundStart(logger *slog.Logger, system, roundID string) {
	if logger == nil {
		return
	}
	logger.Debug("propagation round starting",
		slog.String("system", system),
		slog.String("round_id", roundID),
	)
}

// LogRoundComplete logs the completion of a propagation round.
func LogRoundComplete(logger *slog.Logger, roundID string, durationMs float64, nodesFired int) {
	if logger == nil {
		return
	}
	logger.Debug("propagation round completed",
		slog.String("round_id", roundID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("nodes_fired", nodesFired),
	)
}

// LogNodeFired logs one node firing within a round.
func LogNodeFired(logger *slog.Logger, nodeID, name string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("node fired",
		slog.String("node_id", nodeID),
		slog.String("node_name", name),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogNodeAdded logs node registration.
func LogNodeAdded(logger *slog.Logger, nodeID, name string) {
	if logger == nil {
		return
	}
	logger.Debug("node added",
		slog.String("node_id", nodeID),
		slog.String("node_name", name),
	)
}

// LogConnect logs a committed connection. fromNode is empty for edges
// originating at a system input.
func LogConnect(logger *slog.Logger, fromNode, toNode, event string) {
	if logger == nil {
		return
	}
	logger.Debug("pins connected",
		slog.String("from_node", fromNode),
		slog.String("to_node", toNode),
		slog.String("event", event),
	)
}

// LogJournalError logs a failed journal append. Journal failures are
// diagnostic-only and never interrupt propagation.
func LogJournalError(logger *slog.Logger, roundID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal append failed",
		slog.String("round_id", roundID),
		slog.String("error", err.Error()),
	)
}
