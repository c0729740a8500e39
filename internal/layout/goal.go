package layout

import "github.com/chewxy/math32"

// GoalEnd selects which end of the field a goal stands on.
type GoalEnd int

const (
	GoalEast GoalEnd = iota // x > 0, net extends towards +x
	GoalWest                // x < 0, net extends towards -x
)

func (e GoalEnd) String() string {
	if e == GoalEast {
		return "east"
	}
	return "west"
}

// sign is the direction the net extends away from the field.
func (e GoalEnd) sign() float32 {
	if e == GoalEast {
		return 1
	}
	return -1
}

// PartKind is the primitive a goal part is built from.
type PartKind int

const (
	PartPost PartKind = iota // cylinder: Size = {radius, length, 0}
	PartNet                  // plane: Size = {width, height, 0}
)

// GoalPart is one post or net panel of a goal.
type GoalPart struct {
	Name      string
	Kind      PartKind
	Placement Placement
	Size      Vec3
	Repeat    [2]float32
}

// Goal holds every part of one goal, positioned relative to the ground.
type Goal struct {
	End   GoalEnd
	Parts []GoalPart
}

// GoalDims are the goal proportions derived from the field.
type GoalDims struct {
	PostRadius float32
	Width      float32
	Height     float32
	Depth      float32
}

const goalPostRadius = 0.5

// GoalDimensions derives goal width (h/3 minus both posts), height (h/12) and depth (w/16).
func GoalDimensions(spec FieldSpec) GoalDims {
	return GoalDims{
		PostRadius: goalPostRadius,
		Width:      spec.Height/3 - goalPostRadius*2,
		Height:     spec.Height / 12,
		Depth:      spec.Width / 16,
	}
}

// Goals lays out both goals, east first.
func Goals(spec FieldSpec) ([]Goal, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return []Goal{goal(spec, GoalEast), goal(spec, GoalWest)}, nil
}

func goal(spec FieldSpec, end GoalEnd) Goal {
	d := GoalDimensions(spec)
	m := end.sign()
	x := m*spec.Width/2 - spec.StripeWidth()/2
	side := spec.Height / 6
	netX := x + m*d.Depth/2

	return Goal{End: end, Parts: []GoalPart{
		{
			Name:      "post-south",
			Kind:      PartPost,
			Placement: Placement{Position: Vec3{x, -side, d.Height / 2}, Rotation: Vec3{-math32.Pi / 2, 0, 0}},
			Size:      Vec3{d.PostRadius, d.Height, 0},
		},
		{
			Name:      "post-north",
			Kind:      PartPost,
			Placement: Placement{Position: Vec3{x, side, d.Height / 2}, Rotation: Vec3{-math32.Pi / 2, 0, 0}},
			Size:      Vec3{d.PostRadius, d.Height, 0},
		},
		{
			Name:      "crossbar",
			Kind:      PartPost,
			Placement: Placement{Position: Vec3{x, 0, d.Height}},
			Size:      Vec3{d.PostRadius, d.Width, 0},
		},
		{
			Name:      "net-south",
			Kind:      PartNet,
			Placement: Placement{Position: Vec3{netX, -side, d.Height / 2}, Rotation: Vec3{math32.Pi / 2, 0, 0}},
			Size:      Vec3{d.Depth, d.Height, 0},
			Repeat:    [2]float32{1, 1},
		},
		{
			Name:      "net-north",
			Kind:      PartNet,
			Placement: Placement{Position: Vec3{netX, side, d.Height / 2}, Rotation: Vec3{math32.Pi / 2, 0, 0}},
			Size:      Vec3{d.Depth, d.Height, 0},
			Repeat:    [2]float32{1, 1},
		},
		{
			Name:      "net-top",
			Kind:      PartNet,
			Placement: Placement{Position: Vec3{netX, 0, d.Height}, Rotation: Vec3{0, 0, math32.Pi / 2}},
			Size:      Vec3{d.Width, d.Depth, 0},
			Repeat:    [2]float32{4, 1},
		},
		{
			Name:      "net-back",
			Kind:      PartNet,
			Placement: Placement{Position: Vec3{x + m*d.Depth, 0, d.Height / 2}, Rotation: Vec3{0, math32.Pi / 2, 3 * math32.Pi / 2}},
			Size:      Vec3{d.Width, d.Height, 0},
			Repeat:    [2]float32{4, 1},
		},
	}}
}
