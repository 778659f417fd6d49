package blueprint

import (
	"log/slog"

	"github.com/gzp-crey/pinflow/pkg/pinflow"
	"github.com/gzp-crey/pinflow/pkg/pinflow/behaviors"
	"github.com/gzp-crey/pinflow/pkg/pinflow/config"
)

// Builtin behavior kinds available to every blueprint.
func init() {
	// Binary float operators: pins "a", "b" -> "out".
	MustRegister("add", func(config.Config) (pinflow.Behavior, error) { return behaviors.Add(), nil })
	MustRegister("sub", func(config.Config) (pinflow.Behavior, error) { return behaviors.Sub(), nil })
	MustRegister("mul", func(config.Config) (pinflow.Behavior, error) { return behaviors.Mul(), nil })
	MustRegister("min", func(config.Config) (pinflow.Behavior, error) { return behaviors.Min(), nil })
	MustRegister("max", func(config.Config) (pinflow.Behavior, error) { return behaviors.Max(), nil })
	MustRegister("avg", func(config.Config) (pinflow.Behavior, error) { return behaviors.Avg(), nil })

	// scale multiplies its float input by "factor" (default 1).
	MustRegister("scale", func(cfg config.Config) (pinflow.Behavior, error) {
		factor := cfg.Float64("factor", 1)
		return behaviors.NewMapper(func(v float64) float64 { return v * factor }), nil
	})

	// offset adds "delta" (default 0) to its float input.
	MustRegister("offset", func(cfg config.Config) (pinflow.Behavior, error) {
		delta := cfg.Float64("delta", 0)
		return behaviors.NewMapper(func(v float64) float64 { return v + delta }), nil
	})

	// suffix appends "value" to its string input.
	MustRegister("suffix", func(cfg config.Config) (pinflow.Behavior, error) {
		suffix := cfg.String("value", "")
		return behaviors.NewMapper(func(s string) string { return s + suffix }), nil
	})

	// Inspectors: sink pins "in"; set "log: true" to log every event.
	MustRegister("inspect-string", func(cfg config.Config) (pinflow.Behavior, error) {
		return behaviors.NewInspector[string](inspectorLogger(cfg)), nil
	})
	MustRegister("inspect-float", func(cfg config.Config) (pinflow.Behavior, error) {
		return behaviors.NewInspector[float64](inspectorLogger(cfg)), nil
	})
}

func inspectorLogger(cfg config.Config) *slog.Logger {
	if cfg.Bool("log", false) {
		return slog.Default()
	}
	return nil
}
