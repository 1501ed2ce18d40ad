package tension

import (
	"math"

	errs "Beltline/internal/errors"
	"Beltline/internal/units"
)

const (
	// Conveyors at least this long (ft) use the lower friction factor.
	LongConveyorFeet = 500.0
	KyLong           = 0.025
	KyShort          = 0.035

	idlerResistance = 0.2   // Kx, lbs/ft
	flexResistance  = 0.015 // belt flexure, per lb/ft of belt

	slackFraction      = 0.35
	sagTensionPerPound = 12.5
	// DriveEfficiency is applied as a divisor on absorbed power.
	DriveEfficiency = 0.90
	// MaxTractionRatio is the T1/T2 bound above which the drive may slip.
	MaxTractionRatio = 3.0
)

type Input struct {
	BeltWidth units.Inches
	Capacity  units.ShortTonsPerHour
	Speed     units.FeetPerMinute
	Length    units.Feet
	Lift      units.Feet
}

type Result struct {
	BeltMass         units.PoundsPerFoot `json:"belt_mass_lbs_ft"`
	MaterialMass     units.PoundsPerFoot `json:"material_mass_lbs_ft"`
	AccessoryTension units.Pounds        `json:"accessory_tension_lbs"`
	Ky               float64             `json:"ky"`
	EffectiveTension units.Pounds        `json:"effective_tension_lbs"`
	TightTension     units.Pounds        `json:"tight_tension_lbs"`
	SlackTension     units.Pounds        `json:"slack_tension_lbs"`
	PIW              float64             `json:"piw"`
	Horsepower       float64             `json:"horsepower"`
	PowerKW          float64             `json:"power_kw"`
	TractionRatio    float64             `json:"traction_ratio"`
	SlipRisk         bool                `json:"slip_risk"`
	// Regenerative is set when the load drives the belt downhill (Te < 0).
	// Tensions and power keep their sign; T1 may then be negative.
	Regenerative bool `json:"regenerative"`
}

func Calculate(in Input) (Result, error) {
	if in.Speed <= 0 {
		return Result{}, errs.WithHint(
			errs.Wrapf(errs.ErrInvalidInput, "belt speed %.2f ft/min", in.Speed),
			"material load per foot is undefined at zero speed")
	}
	if in.BeltWidth <= 0 || in.Capacity < 0 || in.Length < 0 {
		return Result{}, errs.Wrapf(errs.ErrInvalidInput, "width %.2f in, capacity %.2f, length %.2f ft", in.BeltWidth, in.Capacity, in.Length)
	}

	w := float64(in.BeltWidth)
	L := float64(in.Length)

	wb := 3 + w/4
	wm := 33.3 * float64(in.Capacity) / float64(in.Speed)
	tac := 200 + 5*w
	ky := FrictionFactor(in.Length)

	te := L*(idlerResistance+ky*wb+flexResistance*wb) + wm*(L*ky+float64(in.Lift)) + tac
	t2 := math.Max(slackFraction*te, sagTensionPerPound*(wb+wm))
	t1 := te + t2

	hp := units.Horsepower(units.Pounds(te), in.Speed)
	ratio := t1 / t2

	return Result{
		BeltMass:         units.PoundsPerFoot(wb),
		MaterialMass:     units.PoundsPerFoot(wm),
		AccessoryTension: units.Pounds(tac),
		Ky:               ky,
		EffectiveTension: units.Pounds(te),
		TightTension:     units.Pounds(t1),
		SlackTension:     units.Pounds(t2),
		PIW:              t1 / w,
		Horsepower:       hp,
		PowerKW:          hp * units.KilowattsPerHP / DriveEfficiency,
		TractionRatio:    ratio,
		SlipRisk:         ratio > MaxTractionRatio,
		Regenerative:     te < 0,
	}, nil
}

// FrictionFactor returns Ky for a conveyor length.
func FrictionFactor(length units.Feet) float64 {
	if float64(length) < LongConveyorFeet {
		return KyShort
	}
	return KyLong
}
