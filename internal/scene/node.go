package scene

import (
	"errors"
	"fmt"
)

// Kind is what a node renders as.
type Kind int

const (
	KindGroup Kind = iota
	KindMesh
	KindLines
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	case KindLines:
		return "lines"
	case KindLight:
		return "light"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Shape is the unit primitive a mesh node is built from.
type Shape int

const (
	// ShapeBox: Size = {width (x), height (y), depth (z)}.
	ShapeBox Shape = iota
	// ShapeSphere: Size[0] = radius.
	ShapeSphere
	// ShapeCylinder: Size = {radius, height}, axis along local Y, centred.
	ShapeCylinder
	// ShapeCone: Size = {radius, height}, axis along local Y, centred.
	ShapeCone
	// ShapePlane: Size = {width (x), height (y)}, facing +Z.
	ShapePlane
)

func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeCylinder:
		return "cylinder"
	case ShapeCone:
		return "cone"
	case ShapePlane:
		return "plane"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// Material describes a mesh surface. Color is 0xRRGGBB. Texture names an entry of the
// texture set; an unloaded or missing texture falls back to Color.
type Material struct {
	Color     uint32
	Texture   string
	Repeat    [2]float32
	Emissive  bool
	AlphaTest float32
}

// Light is a spot light attached to a node.
type Light struct {
	Color     uint32
	Intensity float32
	Distance  float32
	Angle     float32
}

// Node is one entity of the scene graph. Each node has at most one parent; a node without a
// parent is a root.
type Node struct {
	Name      string
	Kind      Kind
	Transform Transform

	Shape    Shape
	Size     [3]float32
	Segments int
	Material Material

	Points    [][3]float32
	LineColor uint32

	Light Light

	parent   *Node
	children []*Node
}

// NewGroup returns an empty group node.
func NewGroup(name string) *Node {
	return &Node{Name: name, Kind: KindGroup}
}

// NewMesh returns a mesh node of the given shape and size.
func NewMesh(name string, shape Shape, size [3]float32, mat Material) *Node {
	return &Node{Name: name, Kind: KindMesh, Shape: shape, Size: size, Material: mat}
}

// NewLines returns a polyline node.
func NewLines(name string, points [][3]float32, color uint32) *Node {
	return &Node{Name: name, Kind: KindLines, Points: points, LineColor: color}
}

// NewLight returns a light node.
func NewLight(name string, l Light) *Node {
	return &Node{Name: name, Kind: KindLight, Light: l}
}

var (
	ErrHasParent = errors.New("node already has a parent")
	ErrCycle     = errors.New("node would become its own ancestor")
)

// Add attaches child under n. It fails if child already belongs to a group or is n or one of
// n's ancestors.
func (n *Node) Add(child *Node) error {
	if child == nil {
		return errors.New("scene: nil child")
	}
	if child.parent != nil {
		return fmt.Errorf("scene: add %q to %q: %w (%q)", child.Name, n.Name, ErrHasParent, child.parent.Name)
	}
	for a := n; a != nil; a = a.parent {
		if a == child {
			return fmt.Errorf("scene: add %q to %q: %w", child.Name, n.Name, ErrCycle)
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// MustAdd is Add for construction code whose inputs are freshly created nodes.
func (n *Node) MustAdd(children ...*Node) *Node {
	for _, c := range children {
		if err := n.Add(c); err != nil {
			panic(err)
		}
	}
	return n
}

// Remove detaches child from n. It reports whether child was found.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Root walks up to the top-most ancestor.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Find returns the first node named name in n's subtree, depth first.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// WorldMatrix composes the transforms from the root down to n.
func (n *Node) WorldMatrix() Mat4 {
	m := n.Transform.Matrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Transform.Matrix().Mul(m)
	}
	return m
}

// Walk visits n and its descendants depth first, parents before children, passing each node's
// world matrix. Returning false from fn skips that node's children.
func (n *Node) Walk(fn func(node *Node, world Mat4) bool) {
	var parent Mat4
	if n.parent != nil {
		parent = n.parent.WorldMatrix()
	} else {
		parent = Identity()
	}
	n.walk(parent, fn)
}

func (n *Node) walk(parent Mat4, fn func(*Node, Mat4) bool) {
	world := parent.Mul(n.Transform.Matrix())
	if !fn(n, world) {
		return
	}
	for _, c := range n.children {
		c.walk(world, fn)
	}
}

// Count returns the number of nodes in n's subtree, n included.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.children {
		total += c.Count()
	}
	return total
}

// Validate checks the hierarchy under root: root has no parent, every other node's parent
// pointer matches the group that lists it, and no node is reachable twice.
func Validate(root *Node) error {
	if root == nil {
		return errors.New("scene: nil root")
	}
	if root.parent != nil {
		return fmt.Errorf("scene: root %q has parent %q", root.Name, root.parent.Name)
	}
	seen := make(map[*Node]bool)
	var visit func(n *Node) error
	visit = func(n *Node) error {
		if seen[n] {
			return fmt.Errorf("scene: node %q reachable more than once", n.Name)
		}
		seen[n] = true
		for _, c := range n.children {
			if c.parent != n {
				return fmt.Errorf("scene: node %q listed under %q but parented elsewhere", c.Name, n.Name)
			}
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(root)
}
