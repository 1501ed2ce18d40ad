package components

import "math"

// IdlerClass is a CEMA idler load class with its rated load in lbs.
type IdlerClass struct {
	Name    string  `json:"name"`
	MaxLoad float64 `json:"max_load_lbs"`
}

// IdlerTier holds the classes offered for belts up to MaxWidth inches,
// ordered by ascending capacity.
type IdlerTier struct {
	MaxWidth float64
	Classes  []IdlerClass
}

// PulleyBand maps belt loads up to MaxPIW (inclusive) to a minimum pulley
// diameter in mm.
type PulleyBand struct {
	MaxPIW     float64
	DiameterMM float64
}

var IdlerTiers = []IdlerTier{
	{MaxWidth: 36, Classes: []IdlerClass{{"B", 410}, {"C", 900}, {"D", 1200}}},
	{MaxWidth: 48, Classes: []IdlerClass{{"B", 410}, {"C", 900}, {"D", 1200}}},
	{MaxWidth: math.Inf(1), Classes: []IdlerClass{{"C", 850}, {"D", 1200}, {"E", 1800}}},
}

var PulleyBands = []PulleyBand{
	{150, 315},
	{250, 400},
	{400, 500},
	{600, 630},
	{800, 800},
	{math.Inf(1), 1000},
}

// TierFor returns the idler tier for a belt width in inches.
func TierFor(widthIn float64) IdlerTier {
	for _, t := range IdlerTiers {
		if widthIn <= t.MaxWidth {
			return t
		}
	}
	return IdlerTiers[len(IdlerTiers)-1]
}

// Select returns the first class whose rating exceeds load, or the
// heaviest class in the tier when none does.
func (t IdlerTier) Select(load float64) IdlerClass {
	for _, c := range t.Classes {
		if load < c.MaxLoad {
			return c
		}
	}
	return t.Classes[len(t.Classes)-1]
}

// Rank is the position of a class inside the tier, 0 for the lightest.
func (t IdlerTier) Rank(name string) int {
	for i, c := range t.Classes {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// MinPulleyDiameter returns the smallest standard pulley for a PIW load.
func MinPulleyDiameter(piw float64) float64 {
	for _, b := range PulleyBands {
		if piw <= b.MaxPIW {
			return b.DiameterMM
		}
	}
	return PulleyBands[len(PulleyBands)-1].DiameterMM
}
