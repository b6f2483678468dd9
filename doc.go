// Package euclid provides the value types and transformation algebra of a
// straightedge-and-compass construction kernel.
//
// # Values
//
// [Point] and [Vec2] are the basic coordinates. Points are positions, vectors
// are displacements, and the two convert into each other through [Point.Sub]
// and [Point.Translate]. On top of them the package defines the shapes a
// construction produces or inspects: [Segment], [Ray], [Circle], [Arc],
// [Polygon], [Triangle] and [Rect].
//
// All of these are plain values. They carry no identity and no dependency
// information; the construction package wraps them in identified entities.
//
// # Tolerance
//
// Geometric decisions (parallel or not, tangent or secant, collinear or not)
// compare against [Epsilon] unless the caller passes an explicit tolerance.
// Helpers such as [ApproxEqual] and [AngleBetween] make those comparisons
// uniform.
//
// # Transformations
//
// [Affine] is a 2D affine transformation stored as the six free coefficients
// of a 3×3 homogeneous matrix. Transformations compose with [Compose] or
// [Affine.Mul]; Compose(a, b) applies b first. Inversion goes through
// gonum's dense matrix routines.
//
// [Symmetry] describes a rigid motion by kind (reflection, rotation,
// translation, point symmetry, glide reflection) and turns into an [Affine]
// via [Symmetry.Transform]. [RegularPolygonSymmetries] enumerates the
// dihedral group of a regular polygon.
//
// A circle stays a circle under rigid motions and uniform scaling. Under any
// other transform it becomes an [Ellipse]; [Ellipse.IsCircle] recovers the
// circle when the transform preserved it.
package euclid
