// Package roster places the spectators on the stands and indexes them by tier and wave column.
package roster

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"stadium/internal/layout"
	"stadium/internal/scene"
)

// CrowdName is the group every spectator is attached to.
const CrowdName = "crowd"

// armOffset divides the half person width to get the gap between body and arm.
const armOffset = 1.75

// Spectator is one person on the stands. Rest is the height (ground Z) the person returns to
// after a wave passes.
type Spectator struct {
	Node   *scene.Node
	Tier   int
	Column int
	Rest   float32
}

// Raise lifts the spectator by d.
func (s *Spectator) Raise(d float32) { s.Node.Transform.Position[2] += d }

// Lower drops the spectator by d.
func (s *Spectator) Lower(d float32) { s.Node.Transform.Position[2] -= d }

// Settle puts the spectator back at rest.
func (s *Spectator) Settle() { s.Node.Transform.Position[2] = s.Rest }

// Height is the current height above the ground.
func (s *Spectator) Height() float32 { return s.Node.Transform.Position[2] }

// Displaced reports whether the spectator is away from rest.
func (s *Spectator) Displaced() bool { return s.Height() != s.Rest }

// Grid indexes spectators as tiers x columns. Every tier has the same number of columns and
// column c is the same physical stack on every tier.
type Grid struct {
	rows [layout.Tiers][]*Spectator
}

// Tiers returns the number of rows.
func (g *Grid) Tiers() int { return layout.Tiers }

// Columns returns the number of wave columns.
func (g *Grid) Columns() int { return len(g.rows[0]) }

// At returns the spectator at (tier, col). ok is false when either index is out of range.
func (g *Grid) At(tier, col int) (*Spectator, bool) {
	if tier < 0 || tier >= layout.Tiers || col < 0 || col >= len(g.rows[tier]) {
		return nil, false
	}
	return g.rows[tier][col], true
}

// Column returns every tier's spectator in column col, bottom tier first. It is empty when col
// is out of range.
func (g *Grid) Column(col int) []*Spectator {
	if col < 0 || col >= g.Columns() {
		return nil
	}
	out := make([]*Spectator, 0, layout.Tiers)
	for t := range g.rows {
		out = append(out, g.rows[t][col])
	}
	return out
}

// Each calls fn for every spectator, tier by tier.
func (g *Grid) Each(fn func(*Spectator)) {
	for _, row := range g.rows {
		for _, s := range row {
			fn(s)
		}
	}
}

// Len is the total number of spectators.
func (g *Grid) Len() int { return layout.Tiers * g.Columns() }

// Options controls how spectators look.
type Options struct {
	People     layout.PeopleParams
	HeadColors [layout.Tiers]uint32
	// Rand picks shirt colours. Nil uses a source seeded with 1.
	Rand *rand.Rand
}

// Populate creates one person per slot under a crowd group attached to ground and returns them
// as a grid. Sections are taken in order and appended column by column.
func Populate(ground *scene.Node, sections []layout.Section, opts Options) (*Grid, error) {
	if ground == nil {
		return nil, errors.New("roster: nil ground")
	}
	if err := opts.People.Validate(); err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	crowd := scene.NewGroup(CrowdName)
	g := &Grid{}
	for _, sec := range sections {
		n := len(sec.Slots[0])
		for t := 1; t < layout.Tiers; t++ {
			if len(sec.Slots[t]) != n {
				return nil, fmt.Errorf("roster: %s section: tier %d has %d slots, tier 0 has %d",
					sec.Side, t, len(sec.Slots[t]), n)
			}
		}
		for i := 0; i < n; i++ {
			col := g.Columns()
			for t := 0; t < layout.Tiers; t++ {
				slot := sec.Slots[t][i]
				node := person(fmt.Sprintf("person-%d-%d", t, col), opts.People, shirtColor(rng), opts.HeadColors[t])
				node.Transform.Position = [3]float32{slot[0], slot[1], slot[2] + opts.People.Height/2}
				node.Transform.Rotation = [3]float32{math32.Pi / 2, sec.Facing, 0}
				crowd.MustAdd(node)
				g.rows[t] = append(g.rows[t], &Spectator{
					Node:   node,
					Tier:   t,
					Column: col,
					Rest:   node.Transform.Position[2],
				})
			}
		}
	}
	if err := ground.Add(crowd); err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	return g, nil
}

// person builds a standing figure in its own Y-up frame, feet at -height/2.
func person(name string, p layout.PeopleParams, shirt, head uint32) *scene.Node {
	w, h := p.Width, p.Height
	group := scene.NewGroup(name)

	headNode := scene.NewMesh("head", scene.ShapeSphere, [3]float32{w / 2}, scene.Material{Color: head})
	headNode.Transform.Position = [3]float32{0, h - w, 0}

	body := scene.NewMesh("body", scene.ShapeBox, [3]float32{w, h, w}, scene.Material{Color: shirt})

	armSize := [3]float32{w / 2, h / 3, w / 2}
	armX := w/2 + (w/2)/armOffset
	left := scene.NewMesh("arm-left", scene.ShapeBox, armSize, scene.Material{Color: shirt})
	left.Transform.Position = [3]float32{-armX, h / 4, 0}
	right := scene.NewMesh("arm-right", scene.ShapeBox, armSize, scene.Material{Color: shirt})
	right.Transform.Position = [3]float32{armX, h / 4, 0}

	return group.MustAdd(headNode, body, left, right)
}

func shirtColor(rng *rand.Rand) uint32 {
	c := colorful.Hsv(rng.Float64()*360, 0.5+rng.Float64()*0.5, 0.4+rng.Float64()*0.6)
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}
