package construction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/euclid"
)

func pt(id string, x, y float64) Point {
	p := NewPoint(x, y, "")
	p.ID = id
	return p
}

func TestLineLine(t *testing.T) {
	l1 := newLine("l1", "a", "b", "")
	l2 := newLine("l2", "c", "d", "")

	t.Run("crossing", func(t *testing.T) {
		got := LineLine(l1, pt("a", 0, 0), pt("b", 2, 0), l2, pt("c", 1, -1), pt("d", 1, 1))
		require.Len(t, got, 1)
		assert.InDelta(t, 1.0, got[0].Pos.X, 1e-10)
		assert.InDelta(t, 0.0, got[0].Pos.Y, 1e-10)
		assert.True(t, got[0].Constructed)
		assert.Equal(t, []string{"l1", "l2"}, got[0].Dependencies)
		assert.Empty(t, got[0].ID)
	})

	t.Run("parallel", func(t *testing.T) {
		got := LineLine(l1, pt("a", 0, 0), pt("b", 1, 0), l2, pt("c", 0, 1), pt("d", 1, 1))
		assert.Empty(t, got)
	})

	t.Run("coincident", func(t *testing.T) {
		got := LineLine(l1, pt("a", 0, 0), pt("b", 1, 1), l2, pt("c", 2, 2), pt("d", 5, 5))
		assert.Empty(t, got)
	})

	t.Run("crossing outside the defining points", func(t *testing.T) {
		got := LineLine(l1, pt("a", 0, 0), pt("b", 1, 1), l2, pt("c", 10, 0), pt("d", 11, -1))
		require.Len(t, got, 1)
		assert.InDelta(t, 5.0, got[0].Pos.X, 1e-10)
		assert.InDelta(t, 5.0, got[0].Pos.Y, 1e-10)
	})
}

func TestLineCircle(t *testing.T) {
	l := newLine("l", "a", "b", "")
	c := newCircle("c", "o", "r", "")
	center := pt("o", 0, 0)
	radius := pt("r", 1, 0)

	t.Run("secant", func(t *testing.T) {
		got := LineCircle(l, pt("a", -2, 0), pt("b", 2, 0), c, center, radius)
		require.Len(t, got, 2)
		assert.InDelta(t, 1.0, got[0].Pos.X, 1e-10)
		assert.InDelta(t, -1.0, got[1].Pos.X, 1e-10)
		for _, p := range got {
			assert.InDelta(t, 0.0, p.Pos.Y, 1e-10)
			assert.Equal(t, []string{"l", "c"}, p.Dependencies)
		}
	})

	t.Run("tangent", func(t *testing.T) {
		got := LineCircle(l, pt("a", -2, 1), pt("b", 2, 1), c, center, radius)
		require.Len(t, got, 1)
		assert.InDelta(t, 0.0, got[0].Pos.X, 1e-10)
		assert.InDelta(t, 1.0, got[0].Pos.Y, 1e-10)
	})

	t.Run("miss", func(t *testing.T) {
		got := LineCircle(l, pt("a", -2, 1.5), pt("b", 2, 1.5), c, center, radius)
		assert.Empty(t, got)
	})

	t.Run("large radius", func(t *testing.T) {
		huge := pt("r", 1e200, 0)
		got := LineCircle(l, pt("a", -1e200, 1), pt("b", 1e200, 1), c, center, huge)
		require.Len(t, got, 2)
		for _, p := range got {
			assert.True(t, p.Pos.IsFinite())
			assert.InDelta(t, 1.0, p.Pos.Y, 1e-10)
			assert.InDelta(t, 1.0, p.DistanceTo(center)/1e200, 1e-12)
		}
	})

	t.Run("points lie on both", func(t *testing.T) {
		p1, p2 := pt("a", -3, -1), pt("b", 2, 1.5)
		big := newCircle("c", "o", "r", "")
		o, r := pt("o", 0.5, 0.25), pt("r", 3, 2)
		got := LineCircle(l, p1, p2, big, o, r)
		require.Len(t, got, 2)
		for _, p := range got {
			assert.True(t, l.ContainsPoint(p, p1, p2, 1e-9))
			assert.True(t, big.ContainsPoint(p, o, r, 1e-9))
		}
	})
}

func TestCircleCircle(t *testing.T) {
	c1 := newCircle("c1", "o1", "r1", "")
	c2 := newCircle("c2", "o2", "r2", "")

	t.Run("two points", func(t *testing.T) {
		o1, r1 := pt("o1", 0, 0), pt("r1", 1, 0)
		o2, r2 := pt("o2", 1, 0), pt("r2", 2, 0)
		got := CircleCircle(c1, o1, r1, c2, o2, r2)
		require.Len(t, got, 2)

		assert.InDelta(t, got[0].Pos.X, got[1].Pos.X, 1e-10)
		assert.InDelta(t, -got[0].Pos.Y, got[1].Pos.Y, 1e-10)
		assert.Greater(t, got[0].Pos.Y, 0.0)
		for _, p := range got {
			assert.InDelta(t, 1.0, p.DistanceTo(o1), 1e-10)
			assert.InDelta(t, 1.0, p.DistanceTo(o2), 1e-10)
			assert.Equal(t, []string{"c1", "c2"}, p.Dependencies)
		}
	})

	t.Run("external tangent", func(t *testing.T) {
		got := CircleCircle(c1, pt("o1", 0, 0), pt("r1", 1, 0), c2, pt("o2", 2, 0), pt("r2", 3, 0))
		require.Len(t, got, 1)
		assert.InDelta(t, 1.0, got[0].Pos.X, 1e-10)
		assert.InDelta(t, 0.0, got[0].Pos.Y, 1e-10)
	})

	t.Run("internal tangent", func(t *testing.T) {
		got := CircleCircle(c1, pt("o1", 0, 0), pt("r1", 2, 0), c2, pt("o2", 1, 0), pt("r2", 2, 0))
		require.Len(t, got, 1)
		assert.InDelta(t, 2.0, got[0].Pos.X, 1e-10)
	})

	t.Run("too far", func(t *testing.T) {
		got := CircleCircle(c1, pt("o1", 0, 0), pt("r1", 1, 0), c2, pt("o2", 5, 0), pt("r2", 6, 0))
		assert.Empty(t, got)
	})

	t.Run("nested", func(t *testing.T) {
		got := CircleCircle(c1, pt("o1", 0, 0), pt("r1", 5, 0), c2, pt("o2", 1, 0), pt("r2", 2, 0))
		assert.Empty(t, got)
	})

	t.Run("identical", func(t *testing.T) {
		got := CircleCircle(c1, pt("o1", 0, 0), pt("r1", 1, 0), c2, pt("o2", 0, 0), pt("r2", 0, 1))
		assert.Empty(t, got)
	})

	t.Run("concentric", func(t *testing.T) {
		got := CircleCircle(c1, pt("o1", 0, 0), pt("r1", 1, 0), c2, pt("o2", 0, 0), pt("r2", 0, 3))
		assert.Empty(t, got)
	})

	t.Run("nearly concentric without crossing", func(t *testing.T) {
		// The centers pass the concentric check but a² is far above r1².
		o1, r1 := pt("o1", 0, 0), pt("r1", 1, 0)
		o2, r2 := pt("o2", 2e-10, 0), pt("r2", 2e-10+1+2.9e-10, 0)
		got := CircleCircle(c1, o1, r1, c2, o2, r2)
		for _, p := range got {
			assert.InDelta(t, c1.Radius(o1, r1), p.DistanceTo(o1), 1e-9)
			assert.InDelta(t, c2.Radius(o2, r2), p.DistanceTo(o2), 1e-9)
		}
		assert.Empty(t, got)
	})
}

func TestCircumcenter(t *testing.T) {
	cc, err := Circumcenter(pt("a", 0, 0), pt("b", 4, 0), pt("c", 0, 3))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, cc.Pos.X, 1e-10)
	assert.InDelta(t, 1.5, cc.Pos.Y, 1e-10)
	assert.Equal(t, "Circumcenter", cc.Label)
	assert.True(t, cc.Constructed)
	assert.Equal(t, []string{"a", "b", "c"}, cc.Dependencies)

	_, err = Circumcenter(pt("a", 0, 0), pt("b", 1, 1), pt("c", 2, 2))
	require.Error(t, err)
	assert.True(t, IsInvalidConstruction(err))
}

func TestAuxiliaryConstructions(t *testing.T) {
	assert.True(t, AreCollinear(pt("a", 0, 0), pt("b", 1, 1), pt("c", 3, 3), euclid.Epsilon))
	assert.False(t, AreCollinear(pt("a", 0, 0), pt("b", 1, 1), pt("c", 3, 4), euclid.Epsilon))

	mid, dir := PerpendicularBisector(pt("a", 0, 0), pt("b", 2, 0))
	assert.Equal(t, euclid.Pt(1, 0), mid)
	assert.InDelta(t, 0.0, dir.X, 1e-12)
	assert.InDelta(t, 1.0, dir.Y, 1e-12)

	bis := AngleBisector(pt("a", 1, 0), pt("v", 0, 0), pt("b", 0, 1))
	assert.InDelta(t, math.Sqrt2/2, bis.X, 1e-12)
	assert.InDelta(t, math.Sqrt2/2, bis.Y, 1e-12)
}

func TestEntityHelpers(t *testing.T) {
	a, b := pt("a", 0, 0), pt("b", 3, 4)
	assert.Equal(t, 5.0, a.DistanceTo(b))
	assert.True(t, a.ApproxEqual(pt("x", 0, 1e-12), euclid.Epsilon))
	assert.False(t, a.ApproxEqual(b, 1))

	l := newLine("l", "a", "b", "")
	assert.Equal(t, euclid.Vec(3, 4), l.Direction(a, b))
	assert.True(t, l.ContainsPoint(pt("m", 6, 8), a, b, euclid.Epsilon))
	assert.False(t, l.ContainsPoint(pt("m", 6, 7), a, b, euclid.Epsilon))

	c := newCircle("c", "a", "b", "")
	assert.Equal(t, 5.0, c.Radius(a, b))
	assert.True(t, c.ContainsPoint(pt("p", -5, 0), a, b, euclid.Epsilon))
	assert.False(t, c.ContainsPoint(pt("p", 0, 0), a, b, euclid.Epsilon))
	assert.Equal(t, euclid.Circle{Center: euclid.Pt(0, 0), Radius: 5}, c.Shape(a, b))
}
