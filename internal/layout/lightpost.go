package layout

import "github.com/chewxy/math32"

// LightPostDims are the fixed sizes of a light post; they do not scale with the field.
type LightPostDims struct {
	Height     float32
	Radius     float32
	LampRadius float32
	LampHeight float32
	LampSides  int
	LampTilt   Vec3
	Intensity  float32
	Distance   float32
	Angle      float32
}

// DefaultLightPost is the standard post: 50 high with a four-sided lamp.
func DefaultLightPost() LightPostDims {
	return LightPostDims{
		Height:     50,
		Radius:     1,
		LampRadius: 9.75,
		LampHeight: 8,
		LampSides:  4,
		LampTilt:   Vec3{math32.Pi / 12, math32.Pi / 4, 0},
		Intensity:  0.95,
		Distance:   350,
		Angle:      math32.Pi / 3,
	}
}

// LightPost is one post's placement. Rotation[2] turns the lamp around the post's axis.
type LightPost struct {
	Name      string
	Placement Placement
	Dims      LightPostDims
}

// LightPosts places six posts around the stands: one behind each long stand and one at
// every corner, lamps turned towards the field.
func LightPosts(spec FieldSpec, p SeatParams) ([]LightPost, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	w, h := spec.Width, spec.Height
	sw := spec.StripeWidth()
	seatDistX, _ := SeatDistances(spec)
	dx, dy := w/4, h/6
	behind := h/2 + seatDistX + 3*p.Depth
	dims := DefaultLightPost()

	post := func(name string, x, y, rot float32) LightPost {
		return LightPost{
			Name:      name,
			Placement: Placement{Position: Vec3{x, y, 0}, Rotation: Vec3{0, 0, rot}},
			Dims:      dims,
		}
	}
	pi := math32.Pi
	return []LightPost{
		post("top", 0, behind, 0),
		post("bottom", 0, -behind, pi),
		post("top-left", -w/2-dx-sw/2, h/2+dy, pi/4),
		post("top-right", w/2+dx, h/2+dy, -pi/4),
		post("bottom-right", w/2+dx, -h/2-dy, -pi+pi/4),
		post("bottom-left", -w/2-dx-sw/2, -h/2-dy, pi-pi/4),
	}, nil
}
