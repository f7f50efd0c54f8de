package shader

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viewport-core/math"
)

func TestGridPeriodicity(t *testing.T) {
	s := NewGridShader(DefaultGridConfig())
	ddx := math.Vec2{X: 0.1, Y: 0}
	ddy := math.Vec2{X: 0, Y: 0.1}

	base := DefaultGridConfig().BaseSize
	samples := []math.Vec2{
		{X: 0, Y: 0},
		{X: 1.3, Y: 4.2},
		{X: 9.99, Y: 0.01},
		{X: 5, Y: 10},
	}

	for _, p := range samples {
		ref := s.Fragment(p, ddx, ddy, 1)
		for _, shift := range []math.Vec2{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 3}, {X: -1, Y: -2}} {
			moved := p.Add(base.MulVec(shift))
			got := s.Fragment(moved, ddx, ddy, 1)
			assert.InDelta(t, ref.R, got.R, 1e-3, "sample %v shift %v", p, shift)
			assert.InDelta(t, ref.A, got.A, 1e-3, "sample %v shift %v", p, shift)
		}
	}
}

func TestGridGammaMonotonic(t *testing.T) {
	prev := float32(-1)
	for i := 0; i <= 1000; i++ {
		x := float32(i) / 1000
		g := gamma(x)
		require.GreaterOrEqual(t, g, prev, "gamma must be non-decreasing at %v", x)
		prev = g
	}
	assert.Equal(t, float32(0), gamma(0))
	assert.InDelta(t, 1.0, gamma(1), 1e-6)
}

func TestGridLevelCount(t *testing.T) {
	s := NewGridShader(DefaultGridConfig())

	// floor(log10(1000)) + 3 = 6
	assert.Equal(t, 6, s.LevelCount(1000))
	assert.Equal(t, 3, s.LevelCount(1))
	assert.Equal(t, 4, s.LevelCount(10))
	assert.Equal(t, 0, s.LevelCount(0))
	assert.Equal(t, 0, s.LevelCount(1e-4))
}

func TestGridLevelWeights(t *testing.T) {
	s := NewGridShader(DefaultGridConfig())

	// weight_i = min(1, log10(zoom) - i + 3) at zoom = 1000
	expected := []float32{1, 1, 1, 1, 1, 0}
	for i := 1; i <= 6; i++ {
		assert.InDelta(t, expected[i-1], s.LevelWeight(1000, i), 1e-3, "level %d", i)
	}

	// the top level fades in continuously
	assert.InDelta(t, 0.5, s.LevelWeight(math32.Pow(10, 1.5), 4), 1e-2)
}

func TestGridDiscardMidCell(t *testing.T) {
	s := NewGridShader(DefaultGridConfig())
	base := DefaultGridConfig().BaseSize

	// Mid-cell sample with no detail levels active: nothing to draw,
	// so the fragment must be discarded rather than written black.
	mid := base.Mul(0.5)
	c := s.Fragment(mid, math.Vec2{X: 0.01}, math.Vec2{Y: 0.01}, 1e-4)
	assert.True(t, c.Discard())

	// A sample dead on a grid line is fully lit.
	on := s.Fragment(math.Vec2{}, math.Vec2{X: 0.01}, math.Vec2{Y: 0.01}, 1e-4)
	assert.False(t, on.Discard())
	assert.InDelta(t, 1.0, on.A, 1e-4)
}

func TestGridFixedLevels(t *testing.T) {
	s := NewGridShader(DefaultGridConfig())
	base := DefaultGridConfig().BaseSize

	// Position off the base grid but exactly on a level-1 line: only
	// the attenuated fine level contributes.
	pos := base.Mul(0.1)
	c := s.FragmentFixed(pos, math.Vec2{X: 0.1}, math.Vec2{Y: 0.1}, 2)
	assert.False(t, c.Discard())
	assert.InDelta(t, 0.3, c.A, 1e-3)

	// With zero levels the same position is empty.
	c = s.FragmentFixed(pos, math.Vec2{X: 0.1}, math.Vec2{Y: 0.1}, 0)
	assert.True(t, c.Discard())
}

func TestQuadCornerTable(t *testing.T) {
	// Six corners, two triangles, covering [-1,1]^2 without an index
	// buffer.
	for i := 0; i < 6; i++ {
		c := QuadCorner(i)
		assert.InDelta(t, 1.0, math32.Abs(c.X), 1e-6)
		assert.InDelta(t, 1.0, math32.Abs(c.Y), 1e-6)
	}
	assert.Equal(t, QuadCorner(0), QuadCorner(3))
	assert.Equal(t, QuadCorner(2), QuadCorner(4))
}
