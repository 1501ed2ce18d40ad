package conveyor

import (
	"fmt"

	"Beltline/internal/calc/tension"
)

// Loads above this percentage are inside capacity but leave no margin for
// surges.
const RecommendedMaxLoad = 85.0

type Level string

const (
	LevelSafe    Level = "safe"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Condition names one flagged aspect of a design.
type Condition string

const (
	DegenerateGeometry Condition = "degenerate_geometry"
	LumpTooLarge       Condition = "lump_too_large"
	Overload           Condition = "overload"
	HighLoad           Condition = "high_load"
	SlipRisk           Condition = "slip_risk"
	SpeedAboveMaterial Condition = "speed_above_material_limit"
	Regenerative       Condition = "regenerative"
)

type Finding struct {
	Condition Condition `json:"condition"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
}

type Status struct {
	Level    Level     `json:"level"`
	Findings []Finding `json:"findings"`
}

// Assess reads the flags of a design and grades it. Findings come in the
// order a status banner shows them; the grade is the worst level found.
// The material speed limit is advisory and never raises the grade.
func Assess(r DesignResult) Status {
	var fs []Finding
	add := func(c Condition, l Level, format string, args ...any) {
		fs = append(fs, Finding{Condition: c, Level: l, Message: fmt.Sprintf(format, args...)})
	}

	g := r.Geometry
	load, defined := g.LoadPercent.Get()
	if !defined {
		add(DegenerateGeometry, LevelDanger, "belt cross-section has no design capacity at %.0f mm width", r.Spec.BeltWidthMM)
	}
	if !g.LumpOK {
		add(LumpTooLarge, LevelDanger, "lump %.0f mm exceeds %.0f mm allowed on a %.0f mm belt", r.Spec.MaxLumpMM, g.MaxAllowedLumpMM, r.Spec.BeltWidthMM)
	}
	switch {
	case !defined:
	case g.Overload:
		add(Overload, LevelDanger, "load %.0f%%: %.0f t/h does not fit on this belt", load, r.Spec.CapacityTPH)
	case load > RecommendedMaxLoad:
		add(HighLoad, LevelWarning, "load %.0f%% is above the %.0f%% surge margin", load, RecommendedMaxLoad)
	}
	if r.Tension.SlipRisk {
		add(SlipRisk, LevelDanger, "traction ratio %.2f exceeds %.1f; add take-up weight", r.Tension.TractionRatio, tension.MaxTractionRatio)
	}
	if r.Tension.Regenerative {
		add(Regenerative, LevelWarning, "decline drives the belt (Te %.0f lbs); fit a brake or regenerative drive", r.Tension.EffectiveTension)
	}
	if limit := r.Material.MaxSpeed; limit > 0 && r.input.Speed > limit {
		add(SpeedAboveMaterial, LevelSafe, "belt speed %.0f ft/min is above the %.0f ft/min advised for %s", r.input.Speed, limit, r.Material.Name)
	}

	st := Status{Level: LevelSafe, Findings: fs}
	for _, f := range fs {
		if rank(f.Level) > rank(st.Level) {
			st.Level = f.Level
		}
	}
	return st
}

func (s Status) Has(c Condition) bool {
	for _, f := range s.Findings {
		if f.Condition == c {
			return true
		}
	}
	return false
}

func rank(l Level) int {
	switch l {
	case LevelDanger:
		return 2
	case LevelWarning:
		return 1
	default:
		return 0
	}
}
