package layout

import (
	"fmt"

	"github.com/chewxy/math32"
)

// PeopleParams sizes a spectator and the gap between neighbours (Spacing person widths).
type PeopleParams struct {
	Width   float32
	Height  float32
	Spacing float32
}

func (p PeopleParams) Validate() error {
	if !(p.Width > 0) || !(p.Height > 0) {
		return fmt.Errorf("person width and height must be > 0, got %g and %g", p.Width, p.Height)
	}
	if !(p.Spacing > 0) {
		return fmt.Errorf("person spacing must be > 0, got %g", p.Spacing)
	}
	return nil
}

// SectionCounts is the number of spectators per tier on each side.
type SectionCounts struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// Of returns the count for one side.
func (c SectionCounts) Of(s Side) int {
	switch s {
	case SideTop:
		return c.Top
	case SideLeft:
		return c.Left
	case SideBottom:
		return c.Bottom
	case SideRight:
		return c.Right
	}
	return 0
}

// Total is the number of wave columns.
func (c SectionCounts) Total() int {
	return c.Top + c.Left + c.Bottom + c.Right
}

// Section is the seat positions of one stand. Slots[t][i] is the i-th spectator of tier t in
// wave order; Position Z is the top of the tier's seat.
type Section struct {
	Side   Side
	Facing float32
	Slots  [Tiers][]Vec3
}

// CrowdSections computes the spectator slots for all four stands in wave order. Within a
// side, slots run so that consecutive sides join up into one counter-clockwise loop.
func CrowdSections(spec FieldSpec, seats SeatParams, people PeopleParams, counts SectionCounts) ([]Section, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := seats.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	if err := people.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	for _, s := range Sides {
		if counts.Of(s) < 0 {
			return nil, fmt.Errorf("%w: %s section count must be >= 0, got %d", ErrInvalidField, s, counts.Of(s))
		}
	}

	out := make([]Section, 0, len(Sides))
	for _, s := range Sides {
		block := seatBlock(spec, seats, s)
		out = append(out, section(block, seats, people, counts.Of(s)))
	}
	return out, nil
}

func section(block SeatBlock, seats SeatParams, people PeopleParams, n int) Section {
	sec := Section{Side: block.Side}
	if block.Side == SideLeft || block.Side == SideRight {
		sec.Facing = math32.Pi / 2
	}
	dist := people.Spacing * people.Width
	// Centre of the block's front row, in ground coordinates.
	center := block.ToGround(Vec3{block.Tiers[0].Center[0], 0, 0})
	base := block.Placement.Position

	// along is the ground axis the row runs on, with the sign that matches wave order;
	// back is the axis the tiers step away from the field on.
	var along, back Vec3
	switch block.Side {
	case SideTop:
		along, back = Vec3{-1, 0, 0}, Vec3{0, 1, 0}
	case SideLeft:
		along, back = Vec3{0, -1, 0}, Vec3{-1, 0, 0}
	case SideBottom:
		along, back = Vec3{1, 0, 0}, Vec3{0, -1, 0}
	case SideRight:
		along, back = Vec3{0, 1, 0}, Vec3{1, 0, 0}
	}

	first := -float32(n-1) * dist / 2
	for t := 0; t < Tiers; t++ {
		step := seats.Depth * 2 * float32(t)
		row := make([]Vec3, 0, n)
		for i := 0; i < n; i++ {
			off := first + float32(i)*dist
			var p Vec3
			for k := 0; k < 2; k++ {
				// The row axis is centred on the block; the depth axis starts at the block's front.
				c := base[k]
				if along[k] != 0 {
					c = center[k]
				}
				p[k] = c + along[k]*off + back[k]*step
			}
			p[2] = seats.Height * float32(t+1)
			row = append(row, p)
		}
		sec.Slots[t] = row
	}
	return sec
}
