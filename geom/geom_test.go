package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 32},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Mixed", []float64{1, -1, 2}, []float64{1, 1, -2}, -4},
		{"TwoD", []float64{3, 4}, []float64{1, 2}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Dot(tt.a, tt.b), 1e-12)
		})
	}
}

func TestCross3(t *testing.T) {
	var out [3]float32
	Cross3(out[:], []float32{1, 0, 0}, []float32{0, 1, 0})
	assert.Equal(t, [3]float32{0, 0, 1}, out)

	Cross3(out[:], []float32{0, 1, 0}, []float32{1, 0, 0})
	assert.Equal(t, [3]float32{0, 0, -1}, out)
}

func TestTriangleArea(t *testing.T) {
	t.Run("3D", func(t *testing.T) {
		area := TriangleArea3([]float64{0, 0, 0}, []float64{1, 0, 0}, []float64{0, 1, 0})
		assert.InDelta(t, 0.5, area, 1e-12)
	})

	t.Run("2DSigned", func(t *testing.T) {
		ccw := TriangleSignedArea2([]float32{0, 0}, []float32{1, 0}, []float32{0, 1})
		assert.InDelta(t, 0.5, ccw, 1e-6)
		cw := TriangleSignedArea2([]float32{0, 0}, []float32{0, 1}, []float32{1, 0})
		assert.InDelta(t, -0.5, cw, 1e-6)
	})
}

func TestNormalize(t *testing.T) {
	v := []float64{3, 4, 0}
	require.True(t, Normalize(v))
	assert.InDelta(t, 1.0, math.Sqrt(SquaredNorm(v)), 1e-12)

	zero := []float64{0, 0, 0}
	assert.False(t, Normalize(zero))
}

func TestBox(t *testing.T) {
	t.Run("EmptyThenExtend", func(t *testing.T) {
		b := NewBox[float64](3)
		b.Extend([]float64{1, 2, 3})
		assert.Equal(t, []float64{1, 2, 3}, b.Min)
		assert.Equal(t, []float64{1, 2, 3}, b.Max)

		b.Extend([]float64{-1, 5, 0})
		assert.Equal(t, []float64{-1, 2, 0}, b.Min)
		assert.Equal(t, []float64{1, 5, 3}, b.Max)
	})

	t.Run("LongestAxis", func(t *testing.T) {
		b := NewBox[float64](3)
		b.Extend([]float64{0, 0, 0})
		b.Extend([]float64{1, 5, 2})
		assert.Equal(t, 1, b.LongestAxis())
	})

	t.Run("SquaredExteriorDistance", func(t *testing.T) {
		b := NewBox[float64](2)
		b.Extend([]float64{0, 0})
		b.Extend([]float64{1, 1})

		assert.Equal(t, 0.0, b.SquaredExteriorDistance([]float64{0.5, 0.5}))
		assert.Equal(t, 0.0, b.SquaredExteriorDistance([]float64{1, 1}))
		assert.InDelta(t, 2.0, b.SquaredExteriorDistance([]float64{2, 2}), 1e-12)
		assert.InDelta(t, 0.25, b.SquaredExteriorDistance([]float64{-0.5, 0.5}), 1e-12)
	})

	t.Run("Intersects", func(t *testing.T) {
		a := NewBox[float64](2)
		a.Extend([]float64{0, 0})
		a.Extend([]float64{1, 1})

		c := NewBox[float64](2)
		c.Extend([]float64{1, 1})
		c.Extend([]float64{2, 2})
		assert.True(t, a.Intersects(c)) // touching boundary counts

		d := NewBox[float64](2)
		d.Extend([]float64{1.5, 1.5})
		d.Extend([]float64{2, 2})
		assert.False(t, a.Intersects(d))
	})
}

func TestPointSegmentSquaredDistance(t *testing.T) {
	closest := make([]float64, 3)

	t.Run("Interior", func(t *testing.T) {
		d2, t0, t1 := PointSegmentSquaredDistance(
			[]float64{0.5, 1, 0}, []float64{0, 0, 0}, []float64{1, 0, 0}, closest)
		assert.InDelta(t, 1.0, d2, 1e-12)
		assert.InDelta(t, 0.5, t0, 1e-12)
		assert.InDelta(t, 0.5, t1, 1e-12)
		assert.InDelta(t, 0.5, closest[0], 1e-12)
	})

	t.Run("ClampToEndpoint", func(t *testing.T) {
		d2, t0, t1 := PointSegmentSquaredDistance(
			[]float64{2, 0, 0}, []float64{0, 0, 0}, []float64{1, 0, 0}, closest)
		assert.InDelta(t, 1.0, d2, 1e-12)
		assert.InDelta(t, 0.0, t0, 1e-12)
		assert.InDelta(t, 1.0, t1, 1e-12)
	})

	t.Run("DegenerateSegment", func(t *testing.T) {
		d2, t0, _ := PointSegmentSquaredDistance(
			[]float64{1, 1, 0}, []float64{0, 0, 0}, []float64{0, 0, 0}, closest)
		assert.InDelta(t, 2.0, d2, 1e-12)
		assert.InDelta(t, 1.0, t0, 1e-12)
	})
}

func TestPointTriangleSquaredDistance(t *testing.T) {
	v0 := []float64{0, 0, 0}
	v1 := []float64{1, 0, 0}
	v2 := []float64{0, 1, 0}
	closest := make([]float64, 3)

	t.Run("AbovePlaneInterior", func(t *testing.T) {
		d2, l0, l1, l2 := PointTriangleSquaredDistance(
			[]float64{0.25, 0.25, 1}, v0, v1, v2, closest)
		assert.InDelta(t, 1.0, d2, 1e-12)
		assert.InDelta(t, 0.25, closest[0], 1e-12)
		assert.InDelta(t, 0.25, closest[1], 1e-12)
		assert.InDelta(t, 0.0, closest[2], 1e-12)
		assert.InDelta(t, 1.0, l0+l1+l2, 1e-12)
	})

	t.Run("OnTriangle", func(t *testing.T) {
		d2, _, _, _ := PointTriangleSquaredDistance(
			[]float64{0.1, 0.1, 0}, v0, v1, v2, closest)
		assert.InDelta(t, 0.0, d2, 1e-12)
	})

	t.Run("ClosestToVertex", func(t *testing.T) {
		d2, l0, l1, l2 := PointTriangleSquaredDistance(
			[]float64{-1, -1, 0}, v0, v1, v2, closest)
		assert.InDelta(t, 2.0, d2, 1e-12)
		assert.InDelta(t, 1.0, l0, 1e-12)
		assert.InDelta(t, 0.0, l1, 1e-12)
		assert.InDelta(t, 0.0, l2, 1e-12)
	})

	t.Run("ClosestToEdge", func(t *testing.T) {
		// Beyond the hypotenuse; closest point is its midpoint.
		d2, _, l1, l2 := PointTriangleSquaredDistance(
			[]float64{1, 1, 0}, v0, v1, v2, closest)
		assert.InDelta(t, 0.5, d2, 1e-12)
		assert.InDelta(t, 0.5, closest[0], 1e-12)
		assert.InDelta(t, 0.5, closest[1], 1e-12)
		assert.InDelta(t, 0.5, l1, 1e-12)
		assert.InDelta(t, 0.5, l2, 1e-12)
	})

	t.Run("Degenerate", func(t *testing.T) {
		// All three vertices collinear; falls back to segment distance.
		d2, _, _, _ := PointTriangleSquaredDistance(
			[]float64{0.5, 1, 0},
			[]float64{0, 0, 0}, []float64{1, 0, 0}, []float64{2, 0, 0}, closest)
		assert.InDelta(t, 1.0, d2, 1e-12)
	})

	t.Run("BarycentricReconstruction", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 100; i++ {
			p := []float64{rng.Float64()*4 - 2, rng.Float64()*4 - 2, rng.Float64()*4 - 2}
			_, l0, l1, l2 := PointTriangleSquaredDistance(p, v0, v1, v2, closest)
			for d := 0; d < 3; d++ {
				recon := l0*v0[d] + l1*v1[d] + l2*v2[d]
				assert.InDelta(t, closest[d], recon, 1e-9)
			}
		}
	})
}

func TestEps(t *testing.T) {
	assert.Equal(t, float32(0x1p-23), Eps[float32]())
	assert.Equal(t, float64(0x1p-52), Eps[float64]())

	// The defining property: 1+eps is the next value after 1.
	assert.NotEqual(t, float64(1), 1+Eps[float64]())
	assert.Equal(t, float64(1), 1+Eps[float64]()/2)
}
