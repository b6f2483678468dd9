package euclid

// Rect is an axis-aligned box, used for the bounds of construction
// objects. (X0, Y0) is the minimum corner once normalized with [Rect.Abs].
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// NewRectFromPoints spans two opposite corners in any order.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// Abs swaps coordinates so that X0 ≤ X1 and Y0 ≤ Y1.
func (r Rect) Abs() Rect {
	return Rect{min(r.X0, r.X1), min(r.Y0, r.Y1), max(r.X0, r.X1), max(r.Y0, r.Y1)}
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Area is signed; a box with flipped corners has negative area.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

func (r Rect) Center() Point {
	return Pt(r.X0, r.Y0).Midpoint(Pt(r.X1, r.Y1))
}

// Contains treats the box as half-open: [X0, X1) × [Y0, Y1).
func (r Rect) Contains(pt Point) bool {
	return r.X0 <= pt.X && pt.X < r.X1 && r.Y0 <= pt.Y && pt.Y < r.Y1
}

// Union grows r to cover o.
func (r Rect) Union(o Rect) Rect {
	return Rect{min(r.X0, o.X0), min(r.Y0, o.Y0), max(r.X1, o.X1), max(r.Y1, o.Y1)}
}

// UnionPoint grows r to cover pt.
func (r Rect) UnionPoint(pt Point) Rect {
	return r.Union(Rect{pt.X, pt.Y, pt.X, pt.Y})
}

func (r Rect) IsInf() bool {
	return Pt(r.X0, r.Y0).IsInf() || Pt(r.X1, r.Y1).IsInf()
}

func (r Rect) IsNaN() bool {
	return Pt(r.X0, r.Y0).IsNaN() || Pt(r.X1, r.Y1).IsNaN()
}
