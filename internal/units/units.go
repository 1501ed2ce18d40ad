// Package units is the single place where metric inputs are turned into the
// imperial units the CEMA formulas are written in. Every conversion factor
// used by the calculators lives here as a named constant.
package units

import "math"

// Conversion factors.
const (
	ShortTonsPerMetricTon = 1.1023
	MillimetersPerInch    = 25.4
	FeetPerMeter          = 3.281
	MetersPerFoot         = 0.3048
	MetersPerInch         = 0.0254
	InchesPerFoot         = 12.0
	FPMPerMPS             = 196.85 // m/s -> ft/min
	SecondsPerMinute      = 60.0
	MinutesPerHour        = 60.0
	SquareInchesPerFoot   = 144.0 // in² per ft²
	PoundsPerShortTon     = 2000.0
	FootPoundsPerMinPerHP = 33000.0
	KilowattsPerHP        = 0.746
	Gravity               = 32.17 // ft/s²
)

type (
	Inches           float64
	Feet             float64
	FeetPerMinute    float64
	FeetPerSecond    float64
	ShortTonsPerHour float64
	PoundsPerFoot    float64
	Pounds           float64
	Degrees          float64
)

func MillimetersToInches(mm float64) Inches { return Inches(mm / MillimetersPerInch) }

func MetersToFeet(m float64) Feet { return Feet(m * FeetPerMeter) }

func MPSToFPM(mps float64) FeetPerMinute { return FeetPerMinute(mps * FPMPerMPS) }

func MetricTPHToShortTPH(tph float64) ShortTonsPerHour {
	return ShortTonsPerHour(tph * ShortTonsPerMetricTon)
}

func (in Inches) Feet() Feet      { return Feet(float64(in) / InchesPerFoot) }
func (in Inches) Meters() float64 { return float64(in) * MetersPerInch }

func (in Inches) Millimeters() float64 { return float64(in) * MillimetersPerInch }

func (f Feet) Meters() float64 { return float64(f) * MetersPerFoot }

func (v FeetPerMinute) PerSecond() FeetPerSecond {
	return FeetPerSecond(float64(v) / SecondsPerMinute)
}

func (d Degrees) Radians() float64 { return float64(d) * math.Pi / 180 }

// FromRadians converts an angle in radians to degrees.
func FromRadians(rad float64) Degrees { return Degrees(rad * 180 / math.Pi) }

// Horsepower returns shaft horsepower for a belt pull at a belt speed.
func Horsepower(pull Pounds, speed FeetPerMinute) float64 {
	return float64(pull) * float64(speed) / FootPoundsPerMinPerHP
}
