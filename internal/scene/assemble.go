package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"stadium/internal/layout"
)

// Texture names materials refer to; the texture set maps them to loaded images.
const (
	TextureGrassLight = "grass-light"
	TextureGrassDark  = "grass-dark"
	TextureNet        = "net"
	// TextureSky is the optional background panorama; no node refers to it.
	TextureSky = "sky"
)

// GroundName is the name of the single root of all stadium content.
const GroundName = "ground"

// Palette holds the stadium's flat colours (0xRRGGBB).
type Palette struct {
	Ground     uint32
	Grass      uint32
	Marking    uint32
	GoalPost   uint32
	Net        uint32
	SeatsLong  uint32
	SeatsShort uint32
	Post       uint32
	Lamp       uint32
	Light      uint32
}

// DefaultPalette returns the standard stadium colours.
func DefaultPalette() Palette {
	return Palette{
		Ground:     0x202020,
		Grass:      0x2e7d32,
		Marking:    0xffffff,
		GoalPost:   0xffffff,
		Net:        0xdddddd,
		SeatsLong:  0x202030,
		SeatsShort: 0x102010,
		Post:       0x303030,
		Lamp:       0x202020,
		Light:      0xffffff,
	}
}

// Params is everything the assembler needs to build the static stadium.
type Params struct {
	Field        layout.FieldSpec
	Elevations   layout.Elevations
	GroundWidth  float32
	GroundHeight float32
	Seats        layout.SeatParams
	Palette      Palette
}

const (
	grassRepeatY = 10
	netAlphaTest = 0.1
	postSegments = 8
)

// Assemble builds the static stadium (ground, field, goals, stands, light posts) under a new
// ground group. The ground is turned -90 degrees about X so its local Z axis points up.
func Assemble(p Params) (*Node, error) {
	if !(p.GroundWidth > 0) || !(p.GroundHeight > 0) {
		return nil, fmt.Errorf("scene: ground size must be > 0, got %gx%g", p.GroundWidth, p.GroundHeight)
	}
	fieldLayout, err := layout.Field(p.Field, p.Elevations)
	if err != nil {
		return nil, fmt.Errorf("scene: field: %w", err)
	}
	goals, err := layout.Goals(p.Field)
	if err != nil {
		return nil, fmt.Errorf("scene: goals: %w", err)
	}
	blocks, err := layout.Seats(p.Field, p.Seats)
	if err != nil {
		return nil, fmt.Errorf("scene: seats: %w", err)
	}
	posts, err := layout.LightPosts(p.Field, p.Seats)
	if err != nil {
		return nil, fmt.Errorf("scene: light posts: %w", err)
	}

	ground := NewGroup(GroundName)
	ground.Transform.Rotation = [3]float32{-math32.Pi / 2, 0, 0}
	ground.MustAdd(NewMesh("ground-plane", ShapePlane,
		[3]float32{p.GroundWidth, p.GroundHeight, 0},
		Material{Color: p.Palette.Ground}))

	ground.MustAdd(fieldGroup(fieldLayout, p.Palette))
	for _, g := range goals {
		ground.MustAdd(goalGroup(g, p.Palette))
	}
	for _, b := range blocks {
		ground.MustAdd(seatGroup(b, p.Palette))
	}
	for _, lp := range posts {
		ground.MustAdd(lightPostGroup(lp, p.Palette))
	}
	return ground, nil
}

func fieldGroup(f layout.FieldLayout, pal Palette) *Node {
	field := NewGroup("field")
	for i, s := range f.Stripes {
		tex := TextureGrassLight
		if s.Dark {
			tex = TextureGrassDark
		}
		stripe := NewMesh(fmt.Sprintf("stripe-%d", i), ShapePlane,
			[3]float32{s.Width, s.Height, 0},
			Material{Color: pal.Grass, Texture: tex, Repeat: [2]float32{1, grassRepeatY}})
		stripe.Transform.Position = s.Center
		field.MustAdd(stripe)
	}
	for _, m := range f.Markings {
		field.MustAdd(NewLines("marking-"+m.Name, m.Points, pal.Marking))
	}
	return field
}

func goalGroup(g layout.Goal, pal Palette) *Node {
	group := NewGroup("goal-" + g.End.String())
	for _, part := range g.Parts {
		var n *Node
		switch part.Kind {
		case layout.PartPost:
			n = NewMesh(part.Name, ShapeCylinder,
				[3]float32{part.Size[0], part.Size[1], 0},
				Material{Color: pal.GoalPost})
			n.Segments = postSegments
		case layout.PartNet:
			n = NewMesh(part.Name, ShapePlane,
				[3]float32{part.Size[0], part.Size[1], 0},
				Material{Color: pal.Net, Texture: TextureNet, Repeat: part.Repeat, AlphaTest: netAlphaTest})
		default:
			continue
		}
		n.Transform.Position = part.Placement.Position
		n.Transform.Rotation = part.Placement.Rotation
		group.MustAdd(n)
	}
	return group
}

func seatGroup(b layout.SeatBlock, pal Palette) *Node {
	group := NewGroup("seats-" + b.Side.String())
	group.Transform.Position = b.Placement.Position
	group.Transform.Rotation = b.Placement.Rotation
	color := pal.SeatsLong
	if b.Side == layout.SideLeft || b.Side == layout.SideRight {
		color = pal.SeatsShort
	}
	for t, box := range b.Tiers {
		tier := NewMesh(fmt.Sprintf("tier-%d", t), ShapeBox, box.Size, Material{Color: color})
		tier.Transform.Position = box.Center
		group.MustAdd(tier)
	}
	return group
}

func lightPostGroup(lp layout.LightPost, pal Palette) *Node {
	d := lp.Dims
	group := NewGroup("lightpost-" + lp.Name)
	group.Transform.Position = lp.Placement.Position
	group.Transform.Rotation = lp.Placement.Rotation

	post := NewMesh("post", ShapeCylinder, [3]float32{d.Radius, d.Height, 0}, Material{Color: pal.Post})
	post.Segments = postSegments
	post.Transform.Position = [3]float32{0, 0, d.Height / 2}
	post.Transform.Rotation = [3]float32{-math32.Pi / 2, 0, 0}

	lamp := NewMesh("lamp", ShapeCone, [3]float32{d.LampRadius, d.LampHeight, 0},
		Material{Color: pal.Lamp, Emissive: true})
	lamp.Segments = d.LampSides
	lamp.Transform.Position = [3]float32{0, 0, d.Height}
	lamp.Transform.Rotation = d.LampTilt

	spot := NewLight("spot", Light{Color: pal.Light, Intensity: d.Intensity, Distance: d.Distance, Angle: d.Angle})
	spot.Transform.Position = lamp.Transform.Position

	return group.MustAdd(post, lamp, spot)
}
