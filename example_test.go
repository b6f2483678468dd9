package euclid_test

import (
	"fmt"
	"math"

	"honnef.co/go/euclid"
)

func ExampleCompose() {
	// Rotate a quarter turn about (1, 1), then move right by 2.
	aff := euclid.Compose(
		euclid.Translate(euclid.Vec(2, 0)),
		euclid.RotateAbout(math.Pi/2, euclid.Pt(1, 1)),
	)
	p := aff.Apply(euclid.Pt(2, 1))
	fmt.Printf("(%.2f, %.2f)\n", p.X, p.Y)
	// Output: (3.00, 2.00)
}

func ExampleRegularPolygonSymmetries() {
	for _, s := range euclid.RegularPolygonSymmetries(euclid.Pt(0, 0), 3) {
		fmt.Println(s.Kind)
	}
	// Output:
	// rotation
	// rotation
	// rotation
	// reflection
	// reflection
	// reflection
}

func ExampleTriangle_Classify() {
	tri := euclid.Triangle{A: euclid.Pt(0, 0), B: euclid.Pt(4, 0), C: euclid.Pt(0, 3)}
	side, angle := tri.Classify(1e-9)
	fmt.Println(side, angle, tri.Circumradius())
	// Output: scalene right 2.5
}
