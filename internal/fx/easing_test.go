package fx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCubicBezier_Endpoints(t *testing.T) {
	for _, e := range []Easing{
		CubicBezier(.6, 0, .4, 1),
		CubicBezier(.25, .1, .25, 1),
		CubicBezier(0, 0, 1, 1),
		Linear,
	} {
		assert.Equal(t, 0.0, e(0))
		assert.Equal(t, 1.0, e(1))
		assert.Equal(t, 0.0, e(-3))
		assert.Equal(t, 1.0, e(7))
	}
}

func TestCubicBezier_LinearControlPoints(t *testing.T) {
	e := CubicBezier(0, 0, 1, 1)
	for i := 1; i < 100; i++ {
		x := float64(i) / 100
		assert.InDelta(t, x, e(x), 1e-6)
	}
}

func TestCubicBezier_EaseInOut(t *testing.T) {
	e := CubicBezier(.6, 0, .4, 1)

	assert.InDelta(t, 0.5, e(0.5), 1e-6)
	assert.Less(t, e(0.2), 0.2, "slow start")
	assert.Greater(t, e(0.8), 0.8, "slow end")
	assert.InDelta(t, 1-e(0.3), e(0.7), 1e-6, "point symmetric")

	prev := 0.0
	for i := 1; i <= 200; i++ {
		v := e(float64(i) / 200)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}
