package conveyor

import (
	"math"

	"Beltline/internal/calc/components"
	"Beltline/internal/calc/construction"
	"Beltline/internal/calc/geometry"
	"Beltline/internal/calc/outcome"
	"Beltline/internal/calc/tension"
	"Beltline/internal/calc/trajectory"
	errs "Beltline/internal/errors"
	"Beltline/internal/material"
	"Beltline/internal/units"
)

// Spec is one conveyor to evaluate, in metric units.
type Spec struct {
	CapacityTPH float64 `json:"capacity_tph"`
	BeltWidthMM float64 `json:"belt_width_mm"`
	SpeedMPS    float64 `json:"speed_mps"`
	LengthM     float64 `json:"length_m"`
	LiftM       float64 `json:"lift_m"`
	TroughDeg   float64 `json:"trough_deg"`
	MaxLumpMM   float64 `json:"max_lump_mm"`
}

// MinSpeedMPS is the slowest belt accepted. Below it the speed index falls
// under float64 resolution and the discharge angle rounds to exactly 90°.
const MinSpeedMPS = 0.1

// Validate rejects inputs the formulas cannot take. Poor but physical
// designs (overload, slip) pass and are flagged in the result instead.
func (s Spec) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"capacity", s.CapacityTPH},
		{"belt width", s.BeltWidthMM},
		{"speed", s.SpeedMPS},
		{"length", s.LengthM},
		{"lift", s.LiftM},
		{"trough", s.TroughDeg},
		{"lump", s.MaxLumpMM},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errs.Wrapf(errs.ErrInvalidInput, "%s is not a finite number", f.name)
		}
	}
	switch {
	case s.BeltWidthMM <= 0:
		return errs.Wrapf(errs.ErrInvalidInput, "belt width %.1f mm", s.BeltWidthMM)
	case s.SpeedMPS <= 0:
		return errs.Wrapf(errs.ErrInvalidInput, "belt speed %.2f m/s", s.SpeedMPS)
	case s.SpeedMPS < MinSpeedMPS:
		return errs.WithHintf(
			errs.Wrapf(errs.ErrInvalidInput, "belt speed %g m/s", s.SpeedMPS),
			"belt speed must be at least %.1f m/s", MinSpeedMPS)
	case s.CapacityTPH < 0:
		return errs.Wrapf(errs.ErrInvalidInput, "capacity %.1f t/h", s.CapacityTPH)
	case s.LengthM < 0:
		return errs.Wrapf(errs.ErrInvalidInput, "length %.1f m", s.LengthM)
	case s.MaxLumpMM < 0:
		return errs.Wrapf(errs.ErrInvalidInput, "lump size %.1f mm", s.MaxLumpMM)
	case s.TroughDeg < 0 || s.TroughDeg >= 90:
		return errs.Wrapf(errs.ErrInvalidInput, "trough angle %.1f deg", s.TroughDeg)
	}
	return nil
}

func (s Spec) metric() units.Metric {
	return units.Metric{
		CapacityTPH: s.CapacityTPH,
		BeltWidthMM: s.BeltWidthMM,
		SpeedMPS:    s.SpeedMPS,
		LengthM:     s.LengthM,
		LiftM:       s.LiftM,
		TroughDeg:   s.TroughDeg,
		LumpMM:      s.MaxLumpMM,
	}
}

// DesignResult is everything derived from one material and spec. It is
// built once by Evaluate and never changed.
type DesignResult struct {
	Material material.Profile `json:"material"`
	Spec     Spec             `json:"spec"`

	Geometry     geometry.Result     `json:"geometry"`
	Tension      tension.Result      `json:"tension"`
	Components   components.Result   `json:"components"`
	Construction construction.Result `json:"construction"`

	input units.Normalized
}

// LoadPercent is the share of belt capacity the target throughput uses.
// Undefined for degenerate geometry.
func (r DesignResult) LoadPercent() outcome.Value { return r.Geometry.LoadPercent }

func (r DesignResult) LumpOK() bool   { return r.Geometry.LumpOK }
func (r DesignResult) SlipRisk() bool { return r.Tension.SlipRisk }

func (r DesignResult) Normalized() units.Normalized { return r.input }

// Evaluate runs the calculation pipeline for one conveyor.
func Evaluate(mat material.Profile, spec Spec) (DesignResult, error) {
	if err := mat.Validate(); err != nil {
		return DesignResult{}, err
	}
	if err := spec.Validate(); err != nil {
		return DesignResult{}, err
	}
	n := units.Normalize(spec.metric())

	geo, err := geometry.Calculate(geometry.Input{
		BeltWidth:   n.BeltWidth,
		BeltWidthMM: n.BeltWidthMM,
		Trough:      n.Trough,
		Surcharge:   mat.Surcharge,
		BulkDensity: mat.BulkDensity,
		Speed:       n.Speed,
		Capacity:    n.Capacity,
		LumpMM:      n.LumpMM,
	})
	if err != nil {
		return DesignResult{}, errs.Wrap(err, "geometry")
	}

	ten, err := tension.Calculate(tension.Input{
		BeltWidth: n.BeltWidth,
		Capacity:  n.Capacity,
		Speed:     n.Speed,
		Length:    n.Length,
		Lift:      n.Lift,
	})
	if err != nil {
		return DesignResult{}, errs.Wrap(err, "tension")
	}

	comp, err := components.Calculate(components.Input{
		BeltWidth:    n.BeltWidth,
		TightTension: ten.TightTension,
		BeltMass:     ten.BeltMass,
		MaterialMass: ten.MaterialMass,
	})
	if err != nil {
		return DesignResult{}, errs.Wrap(err, "components")
	}

	cons, err := construction.Calculate(construction.Input{
		BeltWidth: n.BeltWidth,
		Trough:    n.Trough,
		Length:    n.Length,
	})
	if err != nil {
		return DesignResult{}, errs.Wrap(err, "construction")
	}

	return DesignResult{
		Material:     mat,
		Spec:         spec,
		Geometry:     geo,
		Tension:      ten,
		Components:   comp,
		Construction: cons,
		input:        n,
	}, nil
}

// Trajectory traces discharge off a head pulley of the given diameter for an
// evaluated design.
func Trajectory(r DesignResult, pulleyDiameterMM float64) (trajectory.Result, error) {
	if r.input.BeltWidth <= 0 {
		return trajectory.Result{}, errs.Wrap(errs.ErrInvalidInput, "design result was not produced by Evaluate")
	}
	return trajectory.Calculate(trajectory.Input{
		BeltWidth:           r.input.BeltWidth,
		Speed:               r.input.Speed,
		PulleyDiameterMM:    pulleyDiameterMM,
		MinPulleyDiameterMM: r.Components.MinPulleyDiameterMM,
	})
}
