package construction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "Beltline/internal/errors"
	"Beltline/internal/units"
)

func TestFactorFor(t *testing.T) {
	assert.Equal(t, 2.0, FactorFor(20))
	assert.Equal(t, 3.2, FactorFor(35))
	assert.Equal(t, 4.0, FactorFor(45))
	assert.Equal(t, DefaultTroughFactor, FactorFor(30))
	assert.Equal(t, DefaultTroughFactor, FactorFor(0))

	prev := 0.0
	for _, tf := range TroughFactors {
		assert.Greater(t, tf.Factor, prev)
		prev = tf.Factor
	}
}

func TestCalculate(t *testing.T) {
	res, err := Calculate(Input{
		BeltWidth: units.MillimetersToInches(800),
		Trough:    35,
		Length:    units.MetersToFeet(100),
	})
	require.NoError(t, err)

	assert.Equal(t, 3.2, res.TroughFactor)
	// 3.2 widths of an 800 mm belt.
	assert.InDelta(t, 2.56, res.TransitionDistance, 1e-9)
	assert.InDelta(t, 328.1*0.3048*0.015, res.TakeupTravel, 1e-12)
}

func TestSteeperTroughNeedsLongerTransition(t *testing.T) {
	var prev float64
	for _, trough := range []units.Degrees{20, 35, 45} {
		res, err := Calculate(Input{BeltWidth: 48, Trough: trough, Length: 500})
		require.NoError(t, err)
		assert.Greater(t, res.TransitionDistance, prev)
		prev = res.TransitionDistance
	}
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	_, err := Calculate(Input{BeltWidth: 0, Trough: 35, Length: 10})
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
	_, err = Calculate(Input{BeltWidth: 30, Trough: 35, Length: -1})
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
}
