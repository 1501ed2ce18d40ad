package autodesign

import (
	"sync"

	"Beltline/internal/calc/conveyor"
	errs "Beltline/internal/errors"
	"Beltline/internal/material"
)

// StandardWidthsMM are the belt widths searched, ascending.
var StandardWidthsMM = []float64{500, 650, 800, 1000, 1200, 1400, 1600, 2000}

// DefaultWidthMM is kept when no candidate qualifies and nothing was
// recommended before.
const DefaultWidthMM = 800.0

type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
)

var presetSpeeds = map[SpeedPreset]float64{
	SpeedSlow:   1.5,
	SpeedNormal: 2.2,
	SpeedFast:   3.0,
}

// PresetSpeed returns the belt speed in m/s for a preset.
func PresetSpeed(p SpeedPreset) (float64, error) {
	v, ok := presetSpeeds[p]
	if !ok {
		return 0, errs.Wrapf(errs.ErrInvalidInput, "unknown speed preset %q", p)
	}
	return v, nil
}

type SizeInput struct {
	Spec conveyor.Spec `json:"spec"`
	// Candidates defaults to StandardWidthsMM and is searched in ascending order.
	Candidates []float64 `json:"candidates_mm,omitempty"`
	// Previous is the width recommended by an earlier search; it is returned
	// unchanged when no candidate qualifies.
	Previous float64 `json:"previous_width_mm,omitempty"`
}

type Candidate struct {
	WidthMM     float64  `json:"width_mm"`
	LoadPercent *float64 `json:"load_percent"`
	LumpOK      bool     `json:"lump_ok"`
	Qualifies   bool     `json:"qualifies"`
	Error       string   `json:"error,omitempty"`
}

type SizeResult struct {
	WidthMM    float64                `json:"width_mm"`
	Found      bool                   `json:"found"`
	Design     *conveyor.DesignResult `json:"design,omitempty"`
	Candidates []Candidate            `json:"candidates"`
	Notes      string                 `json:"notes"`
}

// Qualifies reports whether a design is acceptable for automatic sizing:
// load within the surge margin and lumps that fit the belt.
func Qualifies(r conveyor.DesignResult) bool {
	load, ok := r.LoadPercent().Get()
	return ok && load <= conveyor.RecommendedMaxLoad && r.LumpOK()
}

// SizeWidth evaluates every candidate width and picks the narrowest that
// qualifies. Candidates are evaluated concurrently; selection follows the
// ascending order.
func SizeWidth(mat material.Profile, in SizeInput) (SizeResult, error) {
	widths := in.Candidates
	if len(widths) == 0 {
		widths = StandardWidthsMM
	}
	for i, w := range widths {
		if w <= 0 {
			return SizeResult{}, errs.Wrapf(errs.ErrInvalidInput, "candidate width %.1f mm", w)
		}
		if i > 0 && w <= widths[i-1] {
			return SizeResult{}, errs.Wrap(errs.ErrInvalidInput, "candidate widths must be ascending")
		}
	}

	designs := make([]conveyor.DesignResult, len(widths))
	failures := make([]error, len(widths))
	var wg sync.WaitGroup
	for i, w := range widths {
		wg.Add(1)
		go func() {
			defer wg.Done()
			spec := in.Spec
			spec.BeltWidthMM = w
			designs[i], failures[i] = conveyor.Evaluate(mat, spec)
		}()
	}
	wg.Wait()

	out := SizeResult{Candidates: make([]Candidate, len(widths))}
	for i, w := range widths {
		c := Candidate{WidthMM: w}
		if failures[i] != nil {
			// A spec that is invalid at one width is invalid at all of them.
			if errs.Is(failures[i], errs.ErrInvalidInput) {
				return SizeResult{}, failures[i]
			}
			c.Error = failures[i].Error()
		} else {
			if load, ok := designs[i].LoadPercent().Get(); ok {
				c.LoadPercent = &load
			}
			c.LumpOK = designs[i].LumpOK()
			c.Qualifies = Qualifies(designs[i])
		}
		out.Candidates[i] = c
		if c.Qualifies && !out.Found {
			out.Found = true
			out.WidthMM = w
			d := designs[i]
			out.Design = &d
		}
	}

	if !out.Found {
		out.WidthMM = in.Previous
		if out.WidthMM <= 0 {
			out.WidthMM = DefaultWidthMM
		}
		out.Notes = "No standard width keeps load within 85% with an admissible lump; previous width kept."
		return out, nil
	}
	out.Notes = "Narrowest standard width with load within 85% and an admissible lump."
	return out, nil
}
