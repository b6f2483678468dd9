package euclid

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Affine is a plane transform stored column-major as six coefficients
// (a, b, c, d, e, f) of the homogeneous matrix
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// Transforms compose by matrix product, so A.Mul(B) applies B first.
// Constructions use the rigid subset (rotations, reflections and
// translations) as symmetries; the general case describes ellipses.
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Scale stretches the x and y axes independently.
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

func UniformScale(s float64) Affine {
	return Scale(s, s)
}

// Translate moves every point by v.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate turns the plane th radians about the origin, counter-clockwise
// with y pointing up.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// RotateAbout is [Rotate] with center as the fixed point.
func RotateAbout(th float64, center Point) Affine {
	c := Vec2(center)
	return Translate(c.Negate()).ThenRotate(th).ThenTranslate(c)
}

// Reflect mirrors the plane in the line through the origin perpendicular
// to n, which need not be unit length. This is the Householder matrix
// I − 2nnᵀ.
func Reflect(n Vec2) Affine {
	n = n.Normalize()
	xy := -2 * n.X * n.Y
	return Affine{1 - 2*n.X*n.X, xy, xy, 1 - 2*n.Y*n.Y, 0, 0}
}

// ReflectX mirrors in the x axis.
func ReflectX() Affine { return Reflect(Vec(0, 1)) }

// ReflectY mirrors in the y axis.
func ReflectY() Affine { return Reflect(Vec(1, 0)) }

// ReflectAcross mirrors the plane in the line through p1 and p2.
func ReflectAcross(p1, p2 Point) Affine {
	normal := p2.Sub(p1).Perp()
	p := Vec2(p1)
	return Reflect(normal).PreTranslate(p.Negate()).ThenTranslate(p)
}

// Compose is a.Mul(b): b happens first.
func Compose(a, b Affine) Affine {
	return a.Mul(b)
}

func (aff Affine) Coefficients() [6]float64 {
	return [6]float64{aff.N0, aff.N1, aff.N2, aff.N3, aff.N4, aff.N5}
}

// NewAffine is the inverse of [Affine.Coefficients].
func NewAffine(n [6]float64) Affine {
	return Affine{n[0], n[1], n[2], n[3], n[4], n[5]}
}

// Mul is the matrix product aff·o.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenRotate is Rotate(th).Mul(aff).
func (aff Affine) ThenRotate(th float64) Affine {
	return Rotate(th).Mul(aff)
}

// PreTranslate is aff.Mul(Translate(v)).
func (aff Affine) PreTranslate(v Vec2) Affine {
	return aff.Mul(Translate(v))
}

// ThenTranslate is Translate(v).Mul(aff).
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

// Apply maps a point.
func (aff Affine) Apply(pt Point) Point {
	return Point(aff.ApplyVec(Vec2(pt)).Add(aff.Translation()))
}

// ApplyVec maps a displacement, which ignores the translation.
func (aff Affine) ApplyVec(v Vec2) Vec2 {
	return Vec(aff.N0*v.X+aff.N2*v.Y, aff.N1*v.X+aff.N3*v.Y)
}

// Determinant of the linear part. Negative for reflections; its magnitude
// is the area scale factor.
func (aff Affine) Determinant() float64 {
	return aff.N0*aff.N3 - aff.N1*aff.N2
}

// PreservesOrientation reports whether the determinant is positive.
func (aff Affine) PreservesOrientation() bool {
	return aff.Determinant() > 0
}

// IsRigid reports whether the determinant is within [Epsilon] of ±1.
func (aff Affine) IsRigid() bool {
	det := aff.Determinant()
	return math.Abs(det-1) < Epsilon || math.Abs(det+1) < Epsilon
}

// Matrix returns the full 3×3 homogeneous matrix.
func (aff Affine) Matrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		aff.N0, aff.N2, aff.N4,
		aff.N1, aff.N3, aff.N5,
		0, 0, 1,
	})
}

// Inverse computes the inverse transform. It reports false only if the
// matrix is singular; an ill-conditioned matrix, such as a large
// translation, still has an inverse.
func (aff Affine) Inverse() (Affine, bool) {
	if aff.Determinant() == 0 {
		return Affine{}, false
	}
	var inv mat.Dense
	if err := inv.Inverse(aff.Matrix()); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return Affine{}, false
		}
	}
	out := Affine{
		inv.At(0, 0), inv.At(1, 0),
		inv.At(0, 1), inv.At(1, 1),
		inv.At(0, 2), inv.At(1, 2),
	}
	if out.IsNaN() || out.IsInf() {
		return Affine{}, false
	}
	return out, true
}

func (aff Affine) Translation() Vec2 { return Vec(aff.N4, aff.N5) }

func (aff Affine) IsInf() bool {
	for _, n := range aff.Coefficients() {
		if math.IsInf(n, 0) {
			return true
		}
	}
	return false
}

func (aff Affine) IsNaN() bool {
	for _, n := range aff.Coefficients() {
		if math.IsNaN(n) {
			return true
		}
	}
	return false
}
