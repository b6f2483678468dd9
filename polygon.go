package euclid

import "math"

// Polygon is a closed polygon given by its vertices in order. The last
// vertex connects back to the first.
type Polygon []Point

// Area returns the unsigned area using the shoelace formula. Polygons with
// fewer than three vertices have zero area.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// SignedArea returns the shoelace area, positive for anti-clockwise vertex
// order.
func (p Polygon) SignedArea() float64 {
	if len(p) < 3 {
		return 0
	}
	var area float64
	for i := range p {
		j := (i + 1) % len(p)
		area += Vec2(p[i]).Cross(Vec2(p[j]))
	}
	return area / 2
}

// Centroid returns the area centroid. For degenerate polygons whose area is
// within [Epsilon] of zero it returns the unweighted shoelace sums, which is
// the origin for an empty polygon.
func (p Polygon) Centroid() Point {
	var cx, cy, area float64
	for i := range p {
		j := (i + 1) % len(p)
		cross := Vec2(p[i]).Cross(Vec2(p[j]))
		area += cross
		cx += (p[i].X + p[j].X) * cross
		cy += (p[i].Y + p[j].Y) * cross
	}
	area /= 2
	if math.Abs(area) > Epsilon {
		cx /= 6 * area
		cy /= 6 * area
	}
	return Point{X: cx, Y: cy}
}

// IsConvex reports whether all turns have the same orientation. Collinear
// runs are ignored. Polygons with fewer than three vertices are not convex.
func (p Polygon) IsConvex() bool {
	if len(p) < 3 {
		return false
	}

	n := len(p)
	var sign int
	for i := range n {
		a, b, c := p[i], p[(i+1)%n], p[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		if math.Abs(cross) <= Epsilon {
			continue
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}

// Perimeter returns the total edge length.
func (p Polygon) Perimeter() float64 {
	if len(p) < 2 {
		return 0
	}
	var sum float64
	for i := range p {
		sum += p[i].Distance(p[(i+1)%len(p)])
	}
	return sum
}

// BoundingBox returns the smallest axis-aligned rectangle containing all
// vertices. The zero Rect is returned for an empty polygon.
func (p Polygon) BoundingBox() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	r := Rect{p[0].X, p[0].Y, p[0].X, p[0].Y}
	for _, pt := range p[1:] {
		r = r.UnionPoint(pt)
	}
	return r
}

func (p Polygon) Transform(aff Affine) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = aff.Apply(pt)
	}
	return out
}

// RegularPolygon returns the vertices of a regular n-gon inscribed in the
// circle of the given radius, with its first vertex on the positive x-axis.
func RegularPolygon(center Point, radius float64, n int) Polygon {
	if n <= 0 {
		return nil
	}
	out := make(Polygon, n)
	for i := range n {
		th := 2 * math.Pi * float64(i) / float64(n)
		out[i] = center.Translate(VecFromAngle(th).Mul(radius))
	}
	return out
}
