package roster

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stadium/internal/layout"
	"stadium/internal/scene"
)

var (
	testField  = layout.FieldSpec{Width: 200, Height: 150, Stripes: 12}
	testSeats  = layout.SeatParams{Height: 6, Depth: 4}
	testPeople = layout.PeopleParams{Width: 2, Height: 5, Spacing: 1.5}
)

func populate(t *testing.T, counts layout.SectionCounts) (*scene.Node, *Grid) {
	t.Helper()
	sections, err := layout.CrowdSections(testField, testSeats, testPeople, counts)
	require.NoError(t, err)
	ground := scene.NewGroup(scene.GroundName)
	g, err := Populate(ground, sections, Options{
		People:     testPeople,
		HeadColors: [layout.Tiers]uint32{0xf1c27d, 0xe0ac69, 0x8d5524},
		Rand:       rand.New(rand.NewSource(7)),
	})
	require.NoError(t, err)
	return ground, g
}

func TestPopulateReferenceCounts(t *testing.T) {
	ground, g := populate(t, layout.SectionCounts{Top: 10, Left: 9, Bottom: 10, Right: 9})

	assert.Equal(t, 38, g.Columns())
	assert.Equal(t, 3, g.Tiers())
	assert.Equal(t, 3*38, g.Len())
	require.NoError(t, scene.Validate(ground))

	crowd := ground.Find(CrowdName)
	require.NotNil(t, crowd)
	assert.Len(t, crowd.Children(), 3*38)

	for tier := 0; tier < g.Tiers(); tier++ {
		for col := 0; col < g.Columns(); col++ {
			s, ok := g.At(tier, col)
			require.True(t, ok)
			assert.Equal(t, tier, s.Tier)
			assert.Equal(t, col, s.Column)
			assert.False(t, s.Displaced())
			assert.Equal(t, testSeats.Height*float32(tier+1)+testPeople.Height/2, s.Rest)
		}
	}
}

func TestColumnsAreOneStack(t *testing.T) {
	_, g := populate(t, layout.SectionCounts{Top: 4, Left: 3, Bottom: 4, Right: 3})
	for col := 0; col < g.Columns(); col++ {
		stack := g.Column(col)
		require.Len(t, stack, 3)
		// Tiers of one column share the row coordinate; only the depth axis differs.
		p0 := stack[0].Node.Transform.Position
		for _, s := range stack[1:] {
			p := s.Node.Transform.Position
			sameX := p[0] == p0[0]
			sameY := p[1] == p0[1]
			assert.True(t, sameX != sameY, "column %d: %v vs %v", col, p0, p)
			assert.Greater(t, p[2], p0[2])
		}
	}
}

func TestAtOutOfRange(t *testing.T) {
	_, g := populate(t, layout.SectionCounts{Top: 1, Left: 1, Bottom: 1, Right: 1})
	for _, idx := range [][2]int{{-1, 0}, {3, 0}, {0, -1}, {0, 4}} {
		s, ok := g.At(idx[0], idx[1])
		assert.False(t, ok, "%v", idx)
		assert.Nil(t, s)
	}
	assert.Empty(t, g.Column(4))
	assert.Empty(t, g.Column(-1))
}

func TestEmptyRoster(t *testing.T) {
	ground, g := populate(t, layout.SectionCounts{})
	assert.Zero(t, g.Columns())
	assert.NotNil(t, ground.Find(CrowdName))
	_, ok := g.At(0, 0)
	assert.False(t, ok)
}

func TestRaiseLowerSettle(t *testing.T) {
	_, g := populate(t, layout.SectionCounts{Top: 1})
	s, ok := g.At(0, 0)
	require.True(t, ok)

	s.Raise(7)
	assert.InDelta(t, s.Rest+7, s.Height(), 1e-5)
	s.Lower(3)
	assert.InDelta(t, s.Rest+4, s.Height(), 1e-5)
	assert.True(t, s.Displaced())
	s.Settle()
	assert.Equal(t, s.Rest, s.Height())
	assert.False(t, s.Displaced())
}

func TestPersonGeometry(t *testing.T) {
	n := person("p", testPeople, 0x112233, 0x445566)
	require.Len(t, n.Children(), 4)

	head := n.Find("head")
	require.NotNil(t, head)
	assert.Equal(t, scene.ShapeSphere, head.Shape)
	assert.Equal(t, float32(1), head.Size[0])
	assert.Equal(t, float32(3), head.Transform.Position[1])
	assert.Equal(t, uint32(0x445566), head.Material.Color)

	body := n.Find("body")
	require.NotNil(t, body)
	assert.Equal(t, [3]float32{2, 5, 2}, body.Size)

	left, right := n.Find("arm-left"), n.Find("arm-right")
	require.NotNil(t, left)
	require.NotNil(t, right)
	assert.InDelta(t, -(1 + 1/1.75), left.Transform.Position[0], 1e-5)
	assert.InDelta(t, 1+1/1.75, right.Transform.Position[0], 1e-5)
	assert.Equal(t, float32(1.25), right.Transform.Position[1])
}

func TestPopulateDeterministicColours(t *testing.T) {
	_, a := populate(t, layout.SectionCounts{Top: 3})
	_, b := populate(t, layout.SectionCounts{Top: 3})
	for col := 0; col < 3; col++ {
		sa, _ := a.At(0, col)
		sb, _ := b.At(0, col)
		assert.Equal(t, sa.Node.Find("body").Material.Color, sb.Node.Find("body").Material.Color)
	}
}

func TestPopulateRejectsBadInput(t *testing.T) {
	_, err := Populate(nil, nil, Options{People: testPeople})
	assert.Error(t, err)

	_, err = Populate(scene.NewGroup("g"), nil, Options{})
	assert.Error(t, err)

	ragged := []layout.Section{{Slots: [layout.Tiers][]layout.Vec3{{{0, 0, 1}}, {}, {}}}}
	_, err = Populate(scene.NewGroup("g"), ragged, Options{People: testPeople})
	assert.Error(t, err)
}
