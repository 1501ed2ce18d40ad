package tension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "Beltline/internal/errors"
	"Beltline/internal/units"
)

func metric(tph, widthMM, speedMPS, lengthM, liftM float64) Input {
	return Input{
		BeltWidth: units.MillimetersToInches(widthMM),
		Capacity:  units.MetricTPHToShortTPH(tph),
		Speed:     units.MPSToFPM(speedMPS),
		Length:    units.MetersToFeet(lengthM),
		Lift:      units.MetersToFeet(liftM),
	}
}

func TestCalculateReference(t *testing.T) {
	res, err := Calculate(metric(500, 800, 2.0, 100, 10))
	require.NoError(t, err)

	assert.InDelta(t, 10.874016, float64(res.BeltMass), 1e-6)
	assert.InDelta(t, 46.617463, float64(res.MaterialMass), 1e-6)
	assert.Equal(t, KyShort, res.Ky)
	assert.InDelta(t, 2666.339, float64(res.EffectiveTension), 1e-3)
	assert.InDelta(t, 933.219, float64(res.SlackTension), 1e-3)
	assert.InDelta(t, 3599.558, float64(res.TightTension), 1e-3)
	assert.InDelta(t, 114.286, res.PIW, 1e-3)
	assert.InDelta(t, 26.367, res.PowerKW, 1e-3)
	assert.InDelta(t, 3.857143, res.TractionRatio, 1e-6)
	assert.True(t, res.SlipRisk)
}

func TestCalculateLongConveyorUsesLowerKy(t *testing.T) {
	res, err := Calculate(metric(500, 1000, 2.2, 400, 20))
	require.NoError(t, err)
	assert.Equal(t, KyLong, res.Ky)
	assert.InDelta(t, 5504.927, float64(res.EffectiveTension), 1e-3)
	assert.InDelta(t, 59.881, res.PowerKW, 1e-3)
}

func TestFrictionFactorThreshold(t *testing.T) {
	assert.Equal(t, KyShort, FrictionFactor(499.999))
	assert.Equal(t, KyLong, FrictionFactor(500))
	assert.Equal(t, KyLong, FrictionFactor(5000))
}

func TestSagFloorGovernsLightLoads(t *testing.T) {
	res, err := Calculate(metric(50, 800, 2.0, 10, 0))
	require.NoError(t, err)

	floor := 12.5 * float64(res.BeltMass+res.MaterialMass)
	assert.InDelta(t, floor, float64(res.SlackTension), 1e-9)
	assert.InDelta(t, 2.994029, res.TractionRatio, 1e-6)
	assert.False(t, res.SlipRisk)
}

func TestTensionInvariants(t *testing.T) {
	for _, tph := range []float64{50, 200, 500, 1500, 4000} {
		for _, width := range []float64{500, 800, 1200, 2000} {
			for _, length := range []float64{10, 100, 152.4, 153, 1000} {
				for _, lift := range []float64{-30, 0, 25} {
					res, err := Calculate(metric(tph, width, 2.5, length, lift))
					require.NoError(t, err)

					assert.Equal(t, res.EffectiveTension+res.SlackTension, res.TightTension)
					assert.GreaterOrEqual(t, float64(res.SlackTension), 0.35*float64(res.EffectiveTension))
					assert.GreaterOrEqual(t, float64(res.SlackTension), 12.5*float64(res.BeltMass+res.MaterialMass))
					assert.Equal(t, res.TractionRatio > MaxTractionRatio, res.SlipRisk)
				}
			}
		}
	}
}

func TestDecliningConveyorRegenerates(t *testing.T) {
	res, err := Calculate(metric(500, 800, 2.0, 100, -30))
	require.NoError(t, err)
	assert.Less(t, float64(res.EffectiveTension), 0.0)
	assert.Less(t, res.PowerKW, 0.0)
	assert.Equal(t, res.EffectiveTension+res.SlackTension, res.TightTension)
	assert.True(t, res.Regenerative)

	uphill, err := Calculate(metric(500, 800, 2.0, 100, 10))
	require.NoError(t, err)
	assert.False(t, uphill.Regenerative)
}

func TestCalculateRejectsZeroSpeed(t *testing.T) {
	in := metric(500, 800, 0, 100, 10)
	_, err := Calculate(in)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
	assert.Contains(t, errs.FlattenHint(err), "zero speed")

	in.Speed = -10
	_, err = Calculate(in)
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
}

func TestCalculateRejectsBadDimensions(t *testing.T) {
	for name, in := range map[string]Input{
		"zero width":      metric(500, 0, 2, 100, 0),
		"negative length": metric(500, 800, 2, -1, 0),
		"negative tph":    metric(-5, 800, 2, 100, 0),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Calculate(in)
			assert.True(t, errs.Is(err, errs.ErrInvalidInput))
		})
	}
}
