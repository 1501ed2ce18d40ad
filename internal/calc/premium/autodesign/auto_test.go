package autodesign

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Beltline/internal/calc/conveyor"
	errs "Beltline/internal/errors"
	"Beltline/internal/material"
)

func urea(t *testing.T) material.Profile {
	t.Helper()
	p, err := material.Default().Lookup("Urea (Prills)")
	require.NoError(t, err)
	return p
}

func spec(tph, lump float64) conveyor.Spec {
	return conveyor.Spec{
		CapacityTPH: tph,
		SpeedMPS:    2.2,
		LengthM:     100,
		LiftM:       10,
		TroughDeg:   35,
		MaxLumpMM:   lump,
	}
}

func TestSizeWidth(t *testing.T) {
	tests := []struct {
		name  string
		tph   float64
		lump  float64
		width float64
	}{
		{"moderate capacity", 500, 50, 1000},
		{"high capacity", 1200, 50, 1400},
		{"light duty", 100, 50, 500},
		// 1000 mm carries the load but only takes 333 mm lumps.
		{"lump governs", 500, 400, 1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := SizeWidth(urea(t), SizeInput{Spec: spec(tt.tph, tt.lump)})
			require.NoError(t, err)
			require.True(t, res.Found)
			assert.Equal(t, tt.width, res.WidthMM)
			require.NotNil(t, res.Design)
			assert.Equal(t, tt.width, res.Design.Spec.BeltWidthMM)
			assert.Len(t, res.Candidates, len(StandardWidthsMM))

			// Minimality: every narrower candidate fails a criterion.
			for _, c := range res.Candidates {
				if c.WidthMM < res.WidthMM {
					assert.False(t, c.Qualifies, "width %v", c.WidthMM)
				}
				if c.WidthMM == res.WidthMM {
					assert.True(t, c.Qualifies)
					require.NotNil(t, c.LoadPercent)
					assert.LessOrEqual(t, *c.LoadPercent, 85.0)
					assert.True(t, c.LumpOK)
				}
			}
		})
	}
}

func TestSizeWidthNothingQualifies(t *testing.T) {
	res, err := SizeWidth(urea(t), SizeInput{Spec: spec(5000, 50), Previous: 1200})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, 1200.0, res.WidthMM)
	assert.Nil(t, res.Design)

	res, err = SizeWidth(urea(t), SizeInput{Spec: spec(5000, 50)})
	require.NoError(t, err)
	assert.Equal(t, DefaultWidthMM, res.WidthMM)
}

func TestSizeWidthCustomCandidates(t *testing.T) {
	res, err := SizeWidth(urea(t), SizeInput{Spec: spec(500, 50), Candidates: []float64{900, 1100, 1300}})
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, 1100.0, res.WidthMM)
}

func TestSizeWidthRejectsBadCandidates(t *testing.T) {
	for name, c := range map[string][]float64{
		"descending": {1000, 800},
		"zero":       {0, 800},
		"duplicate":  {800, 800},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := SizeWidth(urea(t), SizeInput{Spec: spec(500, 50), Candidates: c})
			assert.True(t, errs.Is(err, errs.ErrInvalidInput))
		})
	}
}

func TestSizeWidthRejectsInvalidSpec(t *testing.T) {
	s := spec(500, 50)
	s.SpeedMPS = 0
	_, err := SizeWidth(urea(t), SizeInput{Spec: s})
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
}

func TestPresetSpeed(t *testing.T) {
	v, err := PresetSpeed(SpeedNormal)
	require.NoError(t, err)
	assert.Equal(t, 2.2, v)

	_, err = PresetSpeed("warp")
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
}

func TestHandlerWidth(t *testing.T) {
	h := &Handler{Catalog: material.Default(), Log: zap.NewNop().Sugar()}
	body := `{
		"material": "Urea (Prills)",
		"speed_preset": "normal",
		"spec": {"capacity_tph": 500, "length_m": 100, "lift_m": 10, "trough_deg": 35, "max_lump_mm": 50}
	}`
	rec := httptest.NewRecorder()
	h.Width(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res SizeResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.True(t, res.Found)
	assert.Equal(t, 1000.0, res.WidthMM)
}
