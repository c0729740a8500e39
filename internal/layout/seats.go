package layout

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Tiers is the number of stacked seating levels in every block.
const Tiers = 3

// Side identifies one of the four seating blocks. The order of the constants is the order the
// wave travels around the stadium.
type Side int

const (
	SideTop Side = iota
	SideLeft
	SideBottom
	SideRight
)

// Sides lists every side in wave order.
var Sides = [...]Side{SideTop, SideLeft, SideBottom, SideRight}

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideLeft:
		return "left"
	case SideBottom:
		return "bottom"
	case SideRight:
		return "right"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// Box is an axis-aligned box in its block's local frame.
type Box struct {
	Center Vec3
	Size   Vec3
}

// SeatParams sizes one seat step.
type SeatParams struct {
	Height float32
	Depth  float32
}

func (p SeatParams) Validate() error {
	if !(p.Height > 0) || !(p.Depth > 0) {
		return fmt.Errorf("seat height and depth must be > 0, got %g and %g", p.Height, p.Depth)
	}
	return nil
}

// SeatBlock is one stand: a group placement and its three tier boxes.
type SeatBlock struct {
	Side      Side
	Placement Placement
	Length    float32
	Tiers     [Tiers]Box
}

// SeatDistances returns the gaps between the field and the left/right (distX) and
// top/bottom (distY) stands.
func SeatDistances(spec FieldSpec) (distX, distY float32) {
	return spec.Width / 4, spec.Height / 8
}

// Seats lays out the four stands in wave order.
func Seats(spec FieldSpec, p SeatParams) ([]SeatBlock, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	blocks := make([]SeatBlock, 0, len(Sides))
	for _, side := range Sides {
		blocks = append(blocks, seatBlock(spec, p, side))
	}
	return blocks, nil
}

func seatBlock(spec FieldSpec, p SeatParams, side Side) SeatBlock {
	w, h := spec.Width, spec.Height
	sw := spec.StripeWidth()
	distX, distY := SeatDistances(spec)
	endGap := h / 8
	front := p.Depth * 3

	b := SeatBlock{Side: side}
	boxX := -sw / 2
	switch side {
	case SideTop:
		b.Length = w + distY*2
		b.Placement.Position = Vec3{0, h/2 + front/2 + distY, 0}
	case SideBottom:
		b.Length = w + distY*2
		boxX = sw / 2
		b.Placement.Position = Vec3{0, -h/2 - front/2 - distY, 0}
		b.Placement.Rotation = Vec3{0, 0, math32.Pi}
	case SideLeft:
		b.Length = h + endGap*2
		b.Placement.Position = Vec3{-w/2 + front/2 - distX, endGap / 2, 0}
		b.Placement.Rotation = Vec3{0, 0, math32.Pi / 2}
	case SideRight:
		b.Length = h + endGap*2
		b.Placement.Position = Vec3{w/2 - sw - front/2 + distX, -endGap / 2, 0}
		b.Placement.Rotation = Vec3{0, 0, 3 * math32.Pi / 2}
	}
	for t := 0; t < Tiers; t++ {
		height := p.Height * float32(t+1)
		b.Tiers[t] = Box{
			Center: Vec3{boxX, front * float32(t), height / 2},
			Size:   Vec3{b.Length, front, height},
		}
	}
	return b
}

// ToGround maps a point in the block's local frame into the ground frame.
func (b SeatBlock) ToGround(p Vec3) Vec3 {
	x, y := rotateZ(p[0], p[1], b.Placement.Rotation[2])
	pos := b.Placement.Position
	return Vec3{pos[0] + x, pos[1] + y, pos[2] + p[2]}
}

func rotateZ(x, y, a float32) (float32, float32) {
	s, c := math32.Sin(a), math32.Cos(a)
	return x*c - y*s, x*s + y*c
}
