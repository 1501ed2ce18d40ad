package geometry

import (
	"math"

	errs "Beltline/internal/errors"
	"Beltline/internal/calc/outcome"
	"Beltline/internal/units"
)

// Loading above this share of belt capacity is flagged as overload.
const OverloadPercent = 100.0

type Input struct {
	BeltWidth   units.Inches
	BeltWidthMM float64
	Trough      units.Degrees
	Surcharge   units.Degrees
	BulkDensity float64 // lbs/ft³
	Speed       units.FeetPerMinute
	Capacity    units.ShortTonsPerHour
	LumpMM      float64
}

type Result struct {
	DesignCapacity       units.ShortTonsPerHour `json:"design_capacity_stph"`
	LoadPercent          outcome.Value          `json:"load_percent"`
	EffectiveBurdenWidth units.Inches           `json:"effective_burden_width_in"`
	CenterRollWidth      units.Inches           `json:"center_roll_width_in"`
	MaxBurdenWidth       units.Inches           `json:"max_burden_width_in"`
	EdgeClearance        units.Inches           `json:"edge_clearance_in"`
	LumpOK               bool                   `json:"lump_ok"`
	MaxAllowedLumpMM     float64                `json:"max_allowed_lump_mm"`
	Degenerate           bool                   `json:"degenerate"`
	Overload             bool                   `json:"overload"`
}

func Calculate(in Input) (Result, error) {
	if in.BeltWidth <= 0 || in.Speed <= 0 {
		return Result{}, errs.Wrapf(errs.ErrInvalidInput, "belt width %.2f in, speed %.2f ft/min", in.BeltWidth, in.Speed)
	}
	if in.BulkDensity <= 0 || in.Capacity < 0 || in.LumpMM < 0 {
		return Result{}, errs.Wrapf(errs.ErrInvalidInput, "density %.2f, capacity %.2f, lump %.2f", in.BulkDensity, in.Capacity, in.LumpMM)
	}

	w := float64(in.BeltWidth)

	// CEMA standard edge distance, inches.
	edge := 0.055*w + 0.9
	bwMax := w - 2*edge
	center := 0.371 * w

	wing := (bwMax - center) / 2
	rise := wing * math.Sin(in.Trough.Radians())
	areaTrap := center*rise + wing*rise
	areaSur := bwMax * bwMax * math.Tan(in.Surcharge.Radians()) / 6

	designCap := designCapacity(areaTrap+areaSur, in.Speed, in.BulkDensity)

	res := Result{
		DesignCapacity:  designCap,
		CenterRollWidth: units.Inches(center),
		MaxBurdenWidth:  units.Inches(bwMax),
	}

	if bwMax <= 0 || designCap <= 0 {
		res.Degenerate = true
		res.LoadPercent = outcome.Undefined()
	} else {
		load := float64(in.Capacity) / float64(designCap) * 100
		res.LoadPercent = outcome.Valid(load)
		res.Overload = load > OverloadPercent
		if load > 0 {
			// Area goes with the square of burden width.
			res.EffectiveBurdenWidth = units.Inches(bwMax * math.Sqrt(math.Min(load, OverloadPercent)/100))
		}
	}
	res.EdgeClearance = (in.BeltWidth - res.EffectiveBurdenWidth) / 2

	res.MaxAllowedLumpMM = MaxAllowedLump(in.BeltWidthMM)
	res.LumpOK = in.LumpMM <= res.MaxAllowedLumpMM

	return res, nil
}

// MaxAllowedLump is the largest lump, in mm, a belt of the given width carries.
func MaxAllowedLump(beltWidthMM float64) float64 {
	return beltWidthMM / 3
}

// designCapacity converts a load cross-section in in² to short tons per hour.
func designCapacity(area float64, speed units.FeetPerMinute, density float64) units.ShortTonsPerHour {
	ft2 := area / units.SquareInchesPerFoot
	lbsPerHour := ft2 * float64(speed) * units.MinutesPerHour * density
	return units.ShortTonsPerHour(lbsPerHour / units.PoundsPerShortTon)
}
