// Package trajectory computes the path of material thrown off a head pulley,
// for sizing the discharge chute.
package trajectory

import (
	"iter"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	errs "Beltline/internal/errors"
	"Beltline/internal/units"
)

const (
	// HorizonSeconds and Samples fix the time window the path is traced over.
	HorizonSeconds = 1.5
	Samples        = 80

	// MaxPulleyDiameterMM bounds the pulley accepted. Together with the
	// minimum belt speed it keeps the speed index well above float64
	// resolution, so a wrap discharge angle stays below 90°.
	MaxPulleyDiameterMM = 5000.0

	// Effective orbit radius grows by this share of belt width to account
	// for the material layer riding on the belt.
	materialLayerFactor = 0.1
)

type Regime string

const (
	// RegimeWrap: material rides the pulley past top dead centre and leaves
	// where centrifugal force equals the radial component of gravity.
	RegimeWrap Regime = "wrap"
	// RegimeTangent: speed index >= 1, material leaves at the tangent point.
	RegimeTangent Regime = "tangent"
)

type Input struct {
	BeltWidth        units.Inches
	Speed            units.FeetPerMinute
	PulleyDiameterMM float64
	// MinPulleyDiameterMM, when set, flags pulleys smaller than the minimum
	// selected for the belt tension.
	MinPulleyDiameterMM float64
}

// Point is a position in metres relative to the pulley centre, x forward
// along the belt and y up.
type Point struct {
	T float64 `json:"t_s"`
	X float64 `json:"x_m"`
	Y float64 `json:"y_m"`
}

type Result struct {
	SpeedIndex         float64 `json:"speed_index"`
	DischargeAngle     float64 `json:"discharge_angle_rad"`
	DischargeAngleDeg  float64 `json:"discharge_angle_deg"`
	Regime             Regime  `json:"regime"`
	PulleyRadius       float64 `json:"pulley_radius_m"`
	EffectiveRadius    float64 `json:"effective_radius_m"`
	BelowMinimumPulley bool    `json:"below_minimum_pulley"`

	// Orbit radius and belt speed in the units the path is traced in.
	OrbitRadius units.Feet          `json:"orbit_radius_ft"`
	BeltSpeed   units.FeetPerSecond `json:"belt_speed_fps"`
}

func Calculate(in Input) (Result, error) {
	if in.PulleyDiameterMM <= 0 {
		return Result{}, errs.WithHint(
			errs.Wrapf(errs.ErrInvalidInput, "pulley diameter %.1f mm", in.PulleyDiameterMM),
			"pulley diameter must be positive")
	}
	if in.PulleyDiameterMM > MaxPulleyDiameterMM {
		return Result{}, errs.Wrapf(errs.ErrInvalidInput, "pulley diameter %.0f mm is above %.0f mm", in.PulleyDiameterMM, MaxPulleyDiameterMM)
	}
	if in.BeltWidth <= 0 || in.Speed <= 0 {
		return Result{}, errs.Wrapf(errs.ErrInvalidInput, "width %.2f in, speed %.2f ft/min", in.BeltWidth, in.Speed)
	}

	rp := units.MillimetersToInches(in.PulleyDiameterMM).Feet() / 2
	r := rp + units.Inches(float64(in.BeltWidth)*materialLayerFactor).Feet()
	v := in.Speed.PerSecond()

	idx := SpeedIndex(v, r)
	gamma := DischargeAngle(idx)
	regime := RegimeWrap
	if idx >= 1 {
		regime = RegimeTangent
	}

	return Result{
		SpeedIndex:         idx,
		DischargeAngle:     gamma,
		DischargeAngleDeg:  float64(units.FromRadians(gamma)),
		Regime:             regime,
		PulleyRadius:       rp.Meters(),
		EffectiveRadius:    r.Meters(),
		BelowMinimumPulley: in.MinPulleyDiameterMM > 0 && in.PulleyDiameterMM < in.MinPulleyDiameterMM,
		OrbitRadius:        r,
		BeltSpeed:          v,
	}, nil
}

// SpeedIndex is v²/(g·r), dimensionless.
func SpeedIndex(v units.FeetPerSecond, r units.Feet) float64 {
	return float64(v) * float64(v) / (units.Gravity * float64(r))
}

// DischargeAngle returns the angle from top dead centre, in radians, at which
// material leaves the pulley. It is 0 for index >= 1. For an index below
// about 1e-16, acos rounds to exactly π/2.
func DischargeAngle(index float64) float64 {
	if index >= 1 {
		return 0
	}
	return math.Acos(index)
}

// Points yields the path over HorizonSeconds. Each call starts over. A
// Result without orbit radius or belt speed yields nothing.
func (r Result) Points() iter.Seq[Point] {
	rad := float64(r.OrbitRadius)
	v := float64(r.BeltSpeed)
	sin, cos := math.Sincos(r.DischargeAngle)
	return func(yield func(Point) bool) {
		if rad <= 0 || v <= 0 {
			return
		}
		for i := 0; i < Samples; i++ {
			t := HorizonSeconds * float64(i) / float64(Samples-1)
			x := rad*sin + v*cos*t
			y := rad*cos - v*sin*t - 0.5*units.Gravity*t*t
			p := Point{T: t, X: units.Feet(x).Meters(), Y: units.Feet(y).Meters()}
			if !yield(p) {
				return
			}
		}
	}
}

// Path collects Points into a slice.
func (r Result) Path() []Point {
	return slices.Collect(r.Points())
}

// Envelope bounds the path for chute layout.
type Envelope struct {
	MaxThrow float64 `json:"max_throw_m"`
	Lowest   float64 `json:"lowest_m"`
	Highest  float64 `json:"highest_m"`
}

func (r Result) Envelope() Envelope {
	var xs, ys []float64
	for p := range r.Points() {
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	if len(xs) == 0 {
		return Envelope{}
	}
	return Envelope{
		MaxThrow: floats.Max(xs),
		Lowest:   floats.Min(ys),
		Highest:  floats.Max(ys),
	}
}
