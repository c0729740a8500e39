package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stadium/internal/layout"
)

func standardParams() Params {
	return Params{
		Field:        layout.FieldSpec{Width: 200, Height: 150, Stripes: 12},
		Elevations:   layout.DefaultElevations(),
		GroundWidth:  3000,
		GroundHeight: 2000,
		Seats:        layout.SeatParams{Height: 6, Depth: 4},
		Palette:      DefaultPalette(),
	}
}

func assertVec(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v", i, got)
	}
}

func TestTransformMatrix(t *testing.T) {
	tr := Transform{
		Position: [3]float32{1, 2, 3},
		Rotation: [3]float32{0, 0, math32.Pi / 2},
		Scale:    [3]float32{2, 1, 1},
	}
	// Scale x by 2, turn +x onto +y, then translate.
	assertVec(t, [3]float32{1, 4, 3}, tr.Matrix().Apply([3]float32{1, 0, 0}))

	// Zero scale is treated as 1.
	assertVec(t, [3]float32{5, 6, 7}, Transform{Position: [3]float32{5, 6, 7}}.Matrix().Apply([3]float32{}))

	// Rotation order is X then Y then Z on the matrix, so Z is applied to the point first.
	xyz := Transform{Rotation: [3]float32{math32.Pi / 2, 0, math32.Pi / 2}}
	assertVec(t, [3]float32{0, 0, 1}, xyz.Matrix().Apply([3]float32{1, 0, 0}))
}

func TestGroundTurnsZUp(t *testing.T) {
	ground := NewGroup(GroundName)
	ground.Transform.Rotation = [3]float32{-math32.Pi / 2, 0, 0}
	child := NewGroup("probe")
	child.Transform.Position = [3]float32{0, 0, 10}
	ground.MustAdd(child)

	// Local +Z of the ground is world +Y, local +Y is world -Z.
	assertVec(t, [3]float32{0, 10, 0}, child.WorldMatrix().Apply([3]float32{}))
	assertVec(t, [3]float32{0, 0, -1}, ground.WorldMatrix().Apply([3]float32{0, 1, 0}))
}

func TestAddRejectsSecondParentAndCycles(t *testing.T) {
	a, b, c := NewGroup("a"), NewGroup("b"), NewGroup("c")
	require.NoError(t, a.Add(b))
	require.NoError(t, b.Add(c))

	assert.ErrorIs(t, a.Add(c), ErrHasParent)
	assert.ErrorIs(t, c.Add(a), ErrCycle)
	assert.ErrorIs(t, a.Add(a), ErrCycle)
	assert.Error(t, a.Add(nil))

	assert.True(t, b.Remove(c))
	assert.Nil(t, c.Parent())
	assert.NoError(t, a.Add(c))
	assert.Same(t, a, c.Root())
	assert.NoError(t, Validate(a))
}

func TestValidateDetectsBrokenHierarchy(t *testing.T) {
	a, b := NewGroup("a"), NewGroup("b")
	a.MustAdd(b)
	assert.Error(t, Validate(b), "non-root")
	assert.Error(t, Validate(nil))

	// Listing the same node twice is multi-parenting.
	a.children = append(a.children, b)
	assert.Error(t, Validate(a))
}

func TestAssembleHierarchy(t *testing.T) {
	ground, err := Assemble(standardParams())
	require.NoError(t, err)
	require.NoError(t, Validate(ground))
	assert.Nil(t, ground.Parent())
	assert.Equal(t, GroundName, ground.Name)

	var nodes int
	ground.Walk(func(n *Node, _ Mat4) bool {
		nodes++
		assert.Same(t, ground, n.Root(), n.Name)
		if n != ground {
			require.NotNil(t, n.Parent(), n.Name)
		}
		return true
	})
	assert.Equal(t, ground.Count(), nodes)

	groups := map[string]bool{}
	for _, c := range ground.Children() {
		groups[c.Name] = true
	}
	for _, name := range []string{
		"ground-plane", "field", "goal-east", "goal-west",
		"seats-top", "seats-left", "seats-bottom", "seats-right",
		"lightpost-top", "lightpost-bottom", "lightpost-top-left",
		"lightpost-top-right", "lightpost-bottom-right", "lightpost-bottom-left",
	} {
		assert.True(t, groups[name], "missing %s", name)
	}
}

func TestAssembleLayering(t *testing.T) {
	p := standardParams()
	ground, err := Assemble(p)
	require.NoError(t, err)

	field := ground.Find("field")
	require.NotNil(t, field)
	var stripes, markings int
	for _, c := range field.Children() {
		switch c.Kind {
		case KindMesh:
			stripes++
			assert.Equal(t, p.Elevations.Surface, c.Transform.Position[2])
			assert.Contains(t, []string{TextureGrassLight, TextureGrassDark}, c.Material.Texture)
		case KindLines:
			markings++
			for _, pt := range c.Points {
				assert.Equal(t, p.Elevations.Marking, pt[2])
			}
		}
	}
	assert.Equal(t, p.Field.Stripes, stripes)
	assert.NotZero(t, markings)

	plane := ground.Find("ground-plane")
	require.NotNil(t, plane)
	assert.Equal(t, float32(0), plane.Transform.Position[2])
}

func TestAssembleRejectsInvalidField(t *testing.T) {
	p := standardParams()
	p.Field.Stripes = 0
	_, err := Assemble(p)
	assert.ErrorIs(t, err, layout.ErrInvalidField)

	p = standardParams()
	p.GroundWidth = 0
	_, err = Assemble(p)
	assert.Error(t, err)
}

func TestLightPostLampIsOnTop(t *testing.T) {
	ground, err := Assemble(standardParams())
	require.NoError(t, err)
	post := ground.Find("lightpost-top")
	require.NotNil(t, post)
	lamp := post.Find("lamp")
	require.NotNil(t, lamp)

	// World Y is up; the lamp sits at the post height.
	pos := lamp.WorldMatrix().Apply([3]float32{})
	assert.InDelta(t, layout.DefaultLightPost().Height, pos[1], 1e-3)
}
