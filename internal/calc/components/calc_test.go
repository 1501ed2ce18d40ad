package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "Beltline/internal/errors"
)

func TestTierFor(t *testing.T) {
	assert.Equal(t, "B", TierFor(24).Classes[0].Name)
	assert.Equal(t, 36.0, TierFor(36).MaxWidth)
	assert.Equal(t, 48.0, TierFor(36.01).MaxWidth)
	assert.Equal(t, "C", TierFor(48.01).Classes[0].Name)
	assert.Equal(t, "E", TierFor(78.7).Classes[2].Name)
}

func TestIdlerSelect(t *testing.T) {
	narrow := TierFor(31.5)
	wide := TierFor(63)

	tests := []struct {
		tier IdlerTier
		load float64
		want string
	}{
		{narrow, 0, "B"},
		{narrow, 409.99, "B"},
		{narrow, 410, "C"},
		{narrow, 899, "C"},
		{narrow, 900, "D"},
		{narrow, 1199, "D"},
		// Past the heaviest rating the heaviest class of the tier is kept.
		{narrow, 1200, "D"},
		{narrow, 5000, "D"},
		{wide, 100, "C"},
		{wide, 850, "D"},
		{wide, 1200, "E"},
		{wide, 9000, "E"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.tier.Select(tt.load).Name, "width %v load %v", tt.tier.MaxWidth, tt.load)
	}
}

func TestIdlerSelectMonotonic(t *testing.T) {
	for _, width := range []float64{20, 40, 60, 80} {
		tier := TierFor(width)
		prev := -1
		for load := 0.0; load <= 2500; load += 5 {
			rank := tier.Rank(tier.Select(load).Name)
			require.GreaterOrEqual(t, rank, 0)
			assert.GreaterOrEqual(t, rank, prev, "width %v load %v", width, load)
			prev = rank
		}
	}
}

func TestMinPulleyDiameter(t *testing.T) {
	tests := []struct {
		piw  float64
		want float64
	}{
		{0, 315},
		{150, 315},
		{150.01, 400},
		{250, 400},
		{400, 500},
		{600, 630},
		{601, 800},
		{800, 800},
		{800.5, 1000},
		{5000, 1000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MinPulleyDiameter(tt.piw), "piw %v", tt.piw)
	}

	prev := 0.0
	for piw := 0.0; piw < 1200; piw += 10 {
		d := MinPulleyDiameter(piw)
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}
}

func TestIdlerSpacing(t *testing.T) {
	assert.Equal(t, 4.0, float64(IdlerSpacing(99.9)))
	assert.Equal(t, 3.0, float64(IdlerSpacing(100)))
}

func TestCalculate(t *testing.T) {
	res, err := Calculate(Input{
		BeltWidth:    800 / 25.4,
		TightTension: 3599.557812,
		BeltMass:     10.874016,
		MaterialMass: 46.617463,
	})
	require.NoError(t, err)

	assert.Equal(t, 4.0, float64(res.IdlerSpacing))
	assert.InDelta(t, 229.966, float64(res.IdlerLoad), 1e-3)
	assert.Equal(t, "B", res.IdlerClass)
	assert.Equal(t, 410.0, res.IdlerRating)
	assert.Equal(t, 315.0, res.MinPulleyDiameterMM)
	assert.InDelta(t, 1.6*3599.557812/10.874016*0.3048, res.MinVerticalCurveRadius, 1e-9)
}

func TestCalculateHeavyMaterialTightensSpacing(t *testing.T) {
	res, err := Calculate(Input{
		BeltWidth:    1400 / 25.4,
		TightTension: 20000,
		BeltMass:     16.78,
		MaterialMass: 180,
	})
	require.NoError(t, err)

	assert.Equal(t, 3.0, float64(res.IdlerSpacing))
	assert.InDelta(t, 590.34, float64(res.IdlerLoad), 1e-9)
	assert.Equal(t, "C", res.IdlerClass)
	assert.Equal(t, 500.0, res.MinPulleyDiameterMM)
}

func TestCalculateSizesByTensionMagnitude(t *testing.T) {
	in := Input{
		BeltWidth:    800 / 25.4,
		TightTension: 3599.557812,
		BeltMass:     10.874016,
		MaterialMass: 46.617463,
	}
	up, err := Calculate(in)
	require.NoError(t, err)

	in.TightTension = -in.TightTension
	down, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, up, down)
	assert.Greater(t, down.MinVerticalCurveRadius, 0.0)
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	_, err := Calculate(Input{BeltWidth: 0, BeltMass: 10})
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
	_, err = Calculate(Input{BeltWidth: 30, BeltMass: 0})
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
}
