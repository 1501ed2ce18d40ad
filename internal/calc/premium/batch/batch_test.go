package batch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Beltline/internal/calc/conveyor"
	errs "Beltline/internal/errors"
	"Beltline/internal/material"
)

func item(mat string, width float64) Item {
	return Item{
		Material: mat,
		Spec: conveyor.Spec{
			CapacityTPH: 500,
			BeltWidthMM: width,
			SpeedMPS:    2.0,
			LengthM:     100,
			LiftM:       10,
			TroughDeg:   35,
			MaxLumpMM:   50,
		},
	}
}

func TestEvaluateKeepsOrder(t *testing.T) {
	widths := []float64{500, 650, 800, 1000, 1200, 1400, 1600, 1800, 2000}
	items := make([]Item, 0, len(widths))
	for _, w := range widths {
		items = append(items, item("Coal", w))
	}

	res, err := Evaluate(material.Default(), items)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.JobID)
	assert.Equal(t, len(widths), res.OK)
	assert.Zero(t, res.Failed)

	for i, r := range res.Results {
		assert.Equal(t, i, r.Index)
		require.NotNil(t, r.Result)
		require.NotNil(t, r.Status)
		assert.Equal(t, widths[i], r.Result.Spec.BeltWidthMM)

		// Same answer as a direct evaluation.
		coal, err := material.Default().Lookup("Coal")
		require.NoError(t, err)
		direct, err := conveyor.Evaluate(coal, items[i].Spec)
		require.NoError(t, err)
		assert.Equal(t, direct, *r.Result)
	}
}

func TestEvaluateReportsFailuresInPlace(t *testing.T) {
	bad := item("Coal", 800)
	bad.SpeedMPS = 0
	items := []Item{item("Coal", 800), item("Gravel", 800), bad}

	res, err := Evaluate(material.Default(), items)
	require.NoError(t, err)
	assert.Equal(t, 1, res.OK)
	assert.Equal(t, 2, res.Failed)
	assert.Empty(t, res.Results[0].Error)
	assert.Contains(t, res.Results[1].Error, "Gravel")
	assert.Contains(t, res.Results[2].Error, "invalid input")
	assert.Nil(t, res.Results[2].Result)
}

func TestEvaluateRejectsEmptyAndOversized(t *testing.T) {
	_, err := Evaluate(material.Default(), nil)
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))

	_, err = Evaluate(material.Default(), make([]Item, MaxItems+1))
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
}

func TestHandler(t *testing.T) {
	h := &Handler{Catalog: material.Default(), Log: zap.NewNop().Sugar()}
	body := `{"items": [
		{"material": "Sulfur", "capacity_tph": 300, "belt_width_mm": 1000, "speed_mps": 2, "length_m": 50, "lift_m": 5, "trough_deg": 35, "max_lump_mm": 30},
		{"material": "Sulfur", "capacity_tph": 300, "belt_width_mm": 1000, "speed_mps": 0, "length_m": 50, "lift_m": 5, "trough_deg": 35, "max_lump_mm": 30}
	]}`
	rec := httptest.NewRecorder()
	h.Conveyors(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		OK     int `json:"ok"`
		Failed int `json:"failed"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 1, res.OK)
	assert.Equal(t, 1, res.Failed)

	rec = httptest.NewRecorder()
	h.Conveyors(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"items": []}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
