package driver

import (
	"globalint/internal/observ"
)

// TimingPayload is the machine-readable form of --timings.
type TimingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// Timings returns the payload of the run, or nil when timings were off.
func (r *Result) Timings(kind, path string) *TimingPayload {
	if r == nil || r.Timer == nil {
		return nil
	}
	if kind == "" {
		kind = "check"
	}
	report := r.Timer.Report()
	return &TimingPayload{Kind: kind, Path: path, TotalMS: report.TotalMS, Phases: report.Phases}
}
