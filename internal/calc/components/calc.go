package components

import (
	"math"

	errs "Beltline/internal/errors"
	"Beltline/internal/units"
)

const (
	// Material loads at or above this (lbs/ft) move idlers closer together.
	HeavyMaterialLoad = 100.0
	LightSpacingFeet  = 4.0
	HeavySpacingFeet  = 3.0

	curveTensionFactor = 1.6
)

type Input struct {
	BeltWidth    units.Inches
	TightTension units.Pounds
	BeltMass     units.PoundsPerFoot
	MaterialMass units.PoundsPerFoot
}

type Result struct {
	IdlerSpacing           units.Feet   `json:"idler_spacing_ft"`
	IdlerLoad              units.Pounds `json:"idler_load_lbs"`
	IdlerClass             string       `json:"idler_class"`
	IdlerRating            float64      `json:"idler_rating_lbs"`
	MinPulleyDiameterMM    float64      `json:"min_pulley_diameter_mm"`
	MinVerticalCurveRadius float64      `json:"min_vertical_curve_radius_m"`
}

func Calculate(in Input) (Result, error) {
	if in.BeltWidth <= 0 || in.BeltMass <= 0 {
		return Result{}, errs.Wrapf(errs.ErrInvalidInput, "width %.2f in, belt mass %.2f lbs/ft", in.BeltWidth, in.BeltMass)
	}

	spacing := IdlerSpacing(in.MaterialMass)
	load := float64(in.BeltMass+in.MaterialMass) * float64(spacing)
	class := TierFor(float64(in.BeltWidth)).Select(load)

	// A regenerative decline can report a negative T1; size by magnitude.
	t1 := math.Abs(float64(in.TightTension))
	piw := t1 / float64(in.BeltWidth)
	// Radius in feet, reported in metres.
	rMin := units.Feet(curveTensionFactor * t1 / float64(in.BeltMass))

	return Result{
		IdlerSpacing:           spacing,
		IdlerLoad:              units.Pounds(load),
		IdlerClass:             class.Name,
		IdlerRating:            class.MaxLoad,
		MinPulleyDiameterMM:    MinPulleyDiameter(piw),
		MinVerticalCurveRadius: rMin.Meters(),
	}, nil
}

func IdlerSpacing(materialMass units.PoundsPerFoot) units.Feet {
	if float64(materialMass) < HeavyMaterialLoad {
		return LightSpacingFeet
	}
	return HeavySpacingFeet
}
