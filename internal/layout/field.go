package layout

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrInvalidField is returned (wrapped) for a FieldSpec the scaling law cannot derive from.
var ErrInvalidField = errors.New("invalid field spec")

// Vec3 is a point or vector in the ground's local frame (Z up).
type Vec3 = [3]float32

// Placement positions one scene part relative to its parent group.
// Rotation holds Euler XYZ angles in radians.
type Placement struct {
	Position Vec3
	Rotation Vec3
}

// FieldSpec is the small set of numbers every other stadium dimension derives from.
type FieldSpec struct {
	Width   float32
	Height  float32
	Stripes int
}

// Validate reports whether the spec can be laid out. Stripes divides the width, so it must be >= 1.
func (f FieldSpec) Validate() error {
	if !(f.Width > 0) {
		return fmt.Errorf("%w: width must be > 0, got %g", ErrInvalidField, f.Width)
	}
	if !(f.Height > 0) {
		return fmt.Errorf("%w: height must be > 0, got %g", ErrInvalidField, f.Height)
	}
	if f.Stripes < 1 {
		return fmt.Errorf("%w: stripes must be >= 1, got %d", ErrInvalidField, f.Stripes)
	}
	return nil
}

// StripeWidth is the width of one grass band.
func (f FieldSpec) StripeWidth() float32 {
	return f.Width / float32(f.Stripes)
}

// MinX and MaxX are the outer touch lines. The stripes are centred on -w/2 + i*sw, so the whole
// field sits half a stripe to the left of the origin.
func (f FieldSpec) MinX() float32 { return -f.Width/2 - f.StripeWidth()/2 }
func (f FieldSpec) MaxX() float32 { return f.Width/2 - f.StripeWidth()/2 }

// Stripe is one grass band of the field surface.
type Stripe struct {
	Center Vec3
	Width  float32
	Height float32
	Dark   bool
}

// Polyline is a white field marking drawn as connected segments.
type Polyline struct {
	Name   string
	Points []Vec3
}

// FieldLayout is everything drawn on the field group: grass stripes and markings.
type FieldLayout struct {
	Stripes  []Stripe
	Markings []Polyline
}

// Elevations separates coplanar surfaces: ground (0) < field surface < markings.
type Elevations struct {
	Surface float32
	Marking float32
}

// DefaultElevations are the standard offsets.
func DefaultElevations() Elevations {
	return Elevations{Surface: 0.3, Marking: 0.4}
}

// Validate checks the strict layering order above the ground plane.
func (e Elevations) Validate() error {
	if !(e.Surface > 0) {
		return fmt.Errorf("surface offset must be above the ground (> 0), got %g", e.Surface)
	}
	if !(e.Marking > e.Surface) {
		return fmt.Errorf("marking offset %g must be above surface offset %g", e.Marking, e.Surface)
	}
	return nil
}

const arcSegments = 50

// Field lays out the grass stripes and all white markings.
func Field(spec FieldSpec, elev Elevations) (FieldLayout, error) {
	if err := spec.Validate(); err != nil {
		return FieldLayout{}, err
	}
	if err := elev.Validate(); err != nil {
		return FieldLayout{}, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	w, h := spec.Width, spec.Height
	sw := spec.StripeWidth()
	z := elev.Marking

	out := FieldLayout{Stripes: make([]Stripe, 0, spec.Stripes)}
	for i := 0; i < spec.Stripes; i++ {
		out.Stripes = append(out.Stripes, Stripe{
			Center: Vec3{-w/2 + float32(i)*sw, 0, elev.Surface},
			Width:  sw,
			Height: h,
			Dark:   i%2 == 1,
		})
	}

	x0, x1 := spec.MinX(), spec.MaxX()
	line := func(name string, pts ...[2]float32) Polyline {
		p := Polyline{Name: name, Points: make([]Vec3, len(pts))}
		for i, xy := range pts {
			p.Points[i] = Vec3{xy[0], xy[1], z}
		}
		return p
	}
	ellipse := func(name string, cx, rx, ry, start, end float32, clockwise bool) Polyline {
		p := Polyline{Name: name}
		for _, xy := range EllipsePoints(cx, 0, rx, ry, start, end, clockwise, arcSegments) {
			p.Points = append(p.Points, Vec3{xy[0], xy[1], z})
		}
		return p
	}
	// goalBox draws the three sides of a goal area that face the field; dir is +1 for the
	// west end (opening towards +x) and -1 for the east end.
	goalBox := func(name string, edge, dir, depth, halfH float32) Polyline {
		front := edge + dir*depth
		return line(name,
			[2]float32{edge, halfH},
			[2]float32{front, halfH},
			[2]float32{front, -halfH},
			[2]float32{edge, -halfH},
		)
	}

	mid := -sw / 2
	out.Markings = []Polyline{
		line("middle", [2]float32{mid, h / 2}, [2]float32{mid, -h / 2}),
		line("top", [2]float32{x0, h / 2}, [2]float32{x1, h / 2}),
		line("bottom", [2]float32{x0, -h / 2}, [2]float32{x1, -h / 2}),
		line("west", [2]float32{x0, h / 2}, [2]float32{x0, -h / 2}),
		line("east", [2]float32{x1, h / 2}, [2]float32{x1, -h / 2}),
		ellipse("centre-circle", mid, h/6, h/6, 0, 2*math32.Pi, false),
		goalBox("west-goal-area", x0, 1, w/6, h/3),
		ellipse("west-arc", x0+w/6, w/12, h/6, math32.Pi/2, 3*math32.Pi/2, true),
		goalBox("east-goal-area", x1, -1, w/6, h/3),
		ellipse("east-arc", x1-w/6, w/12, h/6, math32.Pi/2, 3*math32.Pi/2, false),
		goalBox("west-inner-area", x0, 1, w/12, h/6),
		goalBox("east-inner-area", x1, -1, w/12, h/6),
	}
	return out, nil
}

// EllipsePoints samples segments+1 points along an elliptic arc centred on (cx, cy).
// Angles are radians; clockwise arcs take the complementary sweep from start to end.
func EllipsePoints(cx, cy, rx, ry, start, end float32, clockwise bool, segments int) [][2]float32 {
	if segments < 1 {
		segments = 1
	}
	const twoPi = 2 * math32.Pi
	delta := end - start
	samePoints := math32.Abs(delta) < 1e-6
	for delta < 0 {
		delta += twoPi
	}
	for delta > twoPi {
		delta -= twoPi
	}
	if delta < 1e-6 {
		if samePoints {
			delta = 0
		} else {
			delta = twoPi
		}
	}
	if clockwise && !samePoints {
		if delta == twoPi {
			delta = -twoPi
		} else {
			delta -= twoPi
		}
	}

	pts := make([][2]float32, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := start + float32(i)/float32(segments)*delta
		pts = append(pts, [2]float32{cx + rx*math32.Cos(a), cy + ry*math32.Sin(a)})
	}
	return pts
}
