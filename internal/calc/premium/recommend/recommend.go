// Package recommend turns an evaluated conveyor into a procurement list.
package recommend

import (
	"fmt"
	"math"

	"Beltline/internal/calc/conveyor"
	errs "Beltline/internal/errors"
)

const (
	// Belt rating margin over the running PIW, rounded down to a 10 EP step.
	beltSafetyFactor = 1.5
	epStep           = 10.0

	// Carry + return strand plus wrap and take-up allowance.
	beltLengthFactor = 2.1
)

type Line struct {
	Item        string `json:"item"`
	Description string `json:"description"`
	Rating      string `json:"rating"`
	Quantity    string `json:"quantity"`
}

type BOM struct {
	BeltRatingEP     int     `json:"belt_rating_ep"`
	BeltLengthM      int     `json:"belt_length_m"`
	MotorKW          float64 `json:"motor_kw"`
	IdlerSeries      string  `json:"idler_series"`
	IdlerSets        int     `json:"idler_sets"`
	IdlerSetLoadLbs  int     `json:"idler_set_load_lbs"`
	PulleyDiameterMM float64 `json:"pulley_diameter_mm"`
	ChuteLiner       string  `json:"chute_liner"`
	Lines            []Line  `json:"lines"`
}

// BeltRating is the EP class for a running tension in PIW. Sign is
// ignored so regenerative declines are rated by tension magnitude.
func BeltRating(piw float64) int {
	return int(math.Floor(math.Abs(piw)*beltSafetyFactor/epStep) * epStep)
}

// BillOfMaterials lists the major purchased items. A zero pulley diameter
// uses the selected minimum pulley; a smaller one than that is rejected.
func BillOfMaterials(r conveyor.DesignResult, pulleyDiameterMM float64) (BOM, error) {
	if r.Normalized().BeltWidth <= 0 {
		return BOM{}, errs.Wrap(errs.ErrInvalidInput, "design result was not produced by Evaluate")
	}
	minDia := r.Components.MinPulleyDiameterMM
	switch {
	case pulleyDiameterMM == 0:
		pulleyDiameterMM = minDia
	case pulleyDiameterMM < 0:
		return BOM{}, errs.Wrapf(errs.ErrInvalidInput, "pulley diameter %.0f mm", pulleyDiameterMM)
	case pulleyDiameterMM < minDia:
		return BOM{}, errs.WithHintf(
			errs.Wrapf(errs.ErrInvalidInput, "pulley diameter %.0f mm is below the %.0f mm minimum", pulleyDiameterMM, minDia),
			"use at least %.0f mm", minDia)
	}

	b := BOM{
		BeltRatingEP:     BeltRating(r.Tension.PIW),
		BeltLengthM:      int(math.Floor(r.Spec.LengthM * beltLengthFactor)),
		MotorKW:          r.Tension.PowerKW,
		IdlerSeries:      r.Components.IdlerClass,
		IdlerSets:        int(math.Floor(r.Spec.LengthM)),
		IdlerSetLoadLbs:  int(math.Floor(float64(r.Tension.BeltMass + r.Tension.MaterialMass))),
		PulleyDiameterMM: pulleyDiameterMM,
		ChuteLiner:       r.Material.Liner,
	}
	b.Lines = []Line{
		{
			Item:        "Conveyor belt",
			Description: fmt.Sprintf("EP-%d, %s", b.BeltRatingEP, r.Material.Name),
			Rating:      fmt.Sprintf("%.0f mm", r.Spec.BeltWidthMM),
			Quantity:    fmt.Sprintf("%d m", b.BeltLengthM),
		},
		{
			Item:        "Drive motor",
			Description: "Squirrel cage, 4 pole, IE3",
			Rating:      fmt.Sprintf("%.2f kW", b.MotorKW),
			Quantity:    "1 unit",
		},
		{
			Item:        "Idler sets",
			Description: fmt.Sprintf("CEMA %s, %.0f deg", b.IdlerSeries, r.Spec.TroughDeg),
			Rating:      fmt.Sprintf("%d lbs load", b.IdlerSetLoadLbs),
			Quantity:    fmt.Sprintf("%d sets", b.IdlerSets),
		},
		{
			Item:        "Head pulley",
			Description: "Rubber lagged, diamond groove, 60 Shore A",
			Rating:      fmt.Sprintf("%.0f mm dia", b.PulleyDiameterMM),
			Quantity:    "1 unit",
		},
		{
			Item:        "Chute liner",
			Description: b.ChuteLiner,
			Rating:      "10-12 mm thick",
			Quantity:    "1 lot",
		},
	}
	return b, nil
}
