package euclid

import "math"

// SymmetryKind discriminates the variants of [Symmetry].
type SymmetryKind int

const (
	// Reflection across the line through LinePoint1 and LinePoint2.
	Reflection SymmetryKind = iota + 1
	// Rotation by Angle about Center.
	Rotation
	// Translation by Vector.
	Translation
	// PointSymmetry is a half-turn about Center.
	PointSymmetry
	// GlideReflection reflects across the line through LinePoint1 and
	// LinePoint2, then translates by Vector.
	GlideReflection
)

func (k SymmetryKind) String() string {
	switch k {
	case Reflection:
		return "reflection"
	case Rotation:
		return "rotation"
	case Translation:
		return "translation"
	case PointSymmetry:
		return "point_symmetry"
	case GlideReflection:
		return "glide_reflection"
	default:
		return "unknown"
	}
}

// Symmetry is a symmetry operation. Only the fields relevant to Kind are
// meaningful; use the constructor functions to build one.
type Symmetry struct {
	Kind       SymmetryKind
	LinePoint1 Point
	LinePoint2 Point
	Center     Point
	Angle      float64
	Vector     Vec2
}

func ReflectionSymmetry(p1, p2 Point) Symmetry {
	return Symmetry{Kind: Reflection, LinePoint1: p1, LinePoint2: p2}
}

func RotationSymmetry(center Point, angle float64) Symmetry {
	return Symmetry{Kind: Rotation, Center: center, Angle: angle}
}

func TranslationSymmetry(v Vec2) Symmetry {
	return Symmetry{Kind: Translation, Vector: v}
}

func PointSymmetryAbout(center Point) Symmetry {
	return Symmetry{Kind: PointSymmetry, Center: center}
}

func GlideReflectionSymmetry(p1, p2 Point, v Vec2) Symmetry {
	return Symmetry{Kind: GlideReflection, LinePoint1: p1, LinePoint2: p2, Vector: v}
}

// Transform resolves the symmetry to a concrete transform.
func (s Symmetry) Transform() Affine {
	switch s.Kind {
	case Reflection:
		return ReflectAcross(s.LinePoint1, s.LinePoint2)
	case Rotation:
		return RotateAbout(s.Angle, s.Center)
	case Translation:
		return Translate(s.Vector)
	case PointSymmetry:
		return RotateAbout(math.Pi, s.Center)
	case GlideReflection:
		return Compose(Translate(s.Vector), ReflectAcross(s.LinePoint1, s.LinePoint2))
	default:
		panic("euclid: unknown symmetry kind")
	}
}

// Apply applies the symmetry to pt.
func (s Symmetry) Apply(pt Point) Point {
	return s.Transform().Apply(pt)
}

// RegularPolygonSymmetries returns the dihedral group of a regular n-gon
// centered at center with a vertex on the positive x-axis: n rotations by
// multiples of 2π/n, followed by n reflections.
//
// For even n the reflection axes are spaced π/n apart, alternating between
// axes through opposite vertices and axes through opposite edge midpoints.
// For odd n every axis passes through a vertex.
func RegularPolygonSymmetries(center Point, n int) []Symmetry {
	if n <= 0 {
		return nil
	}
	out := make([]Symmetry, 0, 2*n)
	for i := range n {
		th := 2 * math.Pi * float64(i) / float64(n)
		out = append(out, RotationSymmetry(center, th))
	}

	step := 2 * math.Pi / float64(n)
	if n%2 == 0 {
		step = math.Pi / float64(n)
	}
	for i := range n {
		axis := center.Translate(VecFromAngle(step * float64(i)))
		out = append(out, ReflectionSymmetry(center, axis))
	}
	return out
}
