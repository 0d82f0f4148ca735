// Package telemetry aggregates and persists periodic simulation
// summaries: CSV time series for offline analysis and structured
// log lines for live monitoring.
package telemetry

import "log/slog"

// WindowStats holds the simulation summary sampled at one step
// boundary: total mass (for the mass-conservation invariant), the
// global mean velocity, and how many swaps the optional body-force
// operator made since the previous flush.
type WindowStats struct {
	Step int `csv:"step"`

	TotalMass int `csv:"total_mass"`

	MeanDensity float64 `csv:"mean_density"`

	MeanVelocityX float64 `csv:"mean_velocity_x"`
	MeanVelocityY float64 `csv:"mean_velocity_y"`

	BodyForceSwaps int `csv:"body_force_swaps"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("step", s.Step),
		slog.Int("total_mass", s.TotalMass),
		slog.Float64("mean_density", s.MeanDensity),
		slog.Float64("mean_velocity_x", s.MeanVelocityX),
		slog.Float64("mean_velocity_y", s.MeanVelocityY),
		slog.Int("body_force_swaps", s.BodyForceSwaps),
	)
}
