package construction

import (
	errs "Beltline/internal/errors"
	"Beltline/internal/units"
)

// TakeupElongation is the expected belt stretch as a share of conveyor length.
const TakeupElongation = 0.015

// TroughFactor is the transition distance, in belt widths, for a trough angle.
type TroughFactor struct {
	Trough units.Degrees
	Factor float64
}

// TroughFactors lists the conventional trough angles. Angles not listed use
// DefaultTroughFactor.
var TroughFactors = []TroughFactor{
	{20, 2.0},
	{35, 3.2},
	{45, 4.0},
}

const DefaultTroughFactor = 2.0

type Input struct {
	BeltWidth units.Inches
	Trough    units.Degrees
	Length    units.Feet
}

type Result struct {
	TroughFactor       float64 `json:"trough_factor"`
	TransitionDistance float64 `json:"transition_distance_m"`
	TakeupTravel       float64 `json:"takeup_travel_m"`
}

func Calculate(in Input) (Result, error) {
	if in.BeltWidth <= 0 || in.Length < 0 {
		return Result{}, errs.Wrapf(errs.ErrInvalidInput, "width %.2f in, length %.2f ft", in.BeltWidth, in.Length)
	}
	f := FactorFor(in.Trough)
	return Result{
		TroughFactor:       f,
		TransitionDistance: units.Inches(f * float64(in.BeltWidth)).Meters(),
		TakeupTravel:       in.Length.Meters() * TakeupElongation,
	}, nil
}

func FactorFor(trough units.Degrees) float64 {
	for _, tf := range TroughFactors {
		if tf.Trough == trough {
			return tf.Factor
		}
	}
	return DefaultTroughFactor
}
