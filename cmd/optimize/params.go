package main

import (
	"github.com/pthm-cable/smallworld/config"
)

// ParamSpec is one tunable physics constant and its search bounds.
type ParamSpec struct {
	Name    string
	Path    string // config key, for reports
	Min     float64
	Max     float64
	Default float64

	field func(*config.PhysicsConfig) *float64
}

func (s ParamSpec) toUnit(v float64) float64   { return (v - s.Min) / (s.Max - s.Min) }
func (s ParamSpec) fromUnit(u float64) float64 { return s.Min + u*(s.Max-s.Min) }
func (s ParamSpec) clamp(v float64) float64    { return min(max(v, s.Min), s.Max) }

// ParamVector maps between config physics and the optimizer's unit cube.
// dt, epsilon and the grid cell size are not tuned.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{Specs: []ParamSpec{
		{Name: "repulsion", Path: "physics.repulsion", Min: 20, Max: 400, Default: 120,
			field: func(p *config.PhysicsConfig) *float64 { return &p.Repulsion }},
		{Name: "attraction", Path: "physics.attraction", Min: 0.005, Max: 0.1, Default: 0.03,
			field: func(p *config.PhysicsConfig) *float64 { return &p.Attraction }},
		{Name: "gravity", Path: "physics.gravity", Min: 0.0005, Max: 0.03, Default: 0.006,
			field: func(p *config.PhysicsConfig) *float64 { return &p.Gravity }},
		{Name: "damping", Path: "physics.damping", Min: 0.5, Max: 0.98, Default: 0.85,
			field: func(p *config.PhysicsConfig) *float64 { return &p.Damping }},
		{Name: "max_displacement", Path: "physics.max_displacement", Min: 1, Max: 15, Default: 5,
			field: func(p *config.PhysicsConfig) *float64 { return &p.MaxDisplacement }},
	}}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

func (pv *ParamVector) each(in []float64, f func(ParamSpec, float64) float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = f(s, in[i])
	}
	return out
}

// DefaultVector returns the declared defaults.
func (pv *ParamVector) DefaultVector() []float64 {
	return pv.each(make([]float64, pv.Dim()), func(s ParamSpec, _ float64) float64 { return s.Default })
}

// Normalize maps raw values into the unit cube.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	return pv.each(raw, ParamSpec.toUnit)
}

// Denormalize maps unit-cube values back to raw values.
func (pv *ParamVector) Denormalize(unit []float64) []float64 {
	return pv.each(unit, ParamSpec.fromUnit)
}

// Clamp limits raw values to their bounds.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	return pv.each(raw, ParamSpec.clamp)
}

// ApplyToConfig writes clamped values into cfg's physics section.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.Specs[i].field(&cfg.Physics) = v
	}
}

// ExtractFromConfig reads the tuned values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return pv.each(make([]float64, pv.Dim()), func(s ParamSpec, _ float64) float64 {
		return *s.field(&cfg.Physics)
	})
}
