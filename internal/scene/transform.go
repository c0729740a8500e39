package scene

import "github.com/chewxy/math32"

// Mat4 is a column-major 4x4 matrix: element (row r, column c) is m[c*4+r]. This is the same
// memory order raylib's Matrix uses, so a Mat4 converts field by field.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{0: 1, 5: 1, 10: 1, 15: 1}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4{0: x, 5: y, 10: z, 15: 1}
}

// RotateX returns a rotation of a radians about the X axis.
func RotateX(a float32) Mat4 {
	s, c := math32.Sin(a), math32.Cos(a)
	m := Identity()
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

// RotateY returns a rotation of a radians about the Y axis.
func RotateY(a float32) Mat4 {
	s, c := math32.Sin(a), math32.Cos(a)
	m := Identity()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

// RotateZ returns a rotation of a radians about the Z axis.
func RotateZ(a float32) Mat4 {
	s, c := math32.Sin(a), math32.Cos(a)
	m := Identity()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// Mul returns m*o, i.e. o is applied first.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * o[c*4+k]
			}
			r[c*4+row] = sum
		}
	}
	return r
}

// Apply transforms a point.
func (m Mat4) Apply(p [3]float32) [3]float32 {
	return [3]float32{
		m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12],
		m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13],
		m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14],
	}
}

// Transform is a node's placement relative to its parent. Rotation holds Euler angles applied
// in X, Y, Z order (the rotation matrix is Rx*Ry*Rz). A zero Scale component means 1.
type Transform struct {
	Position [3]float32
	Rotation [3]float32
	Scale    [3]float32
}

// Matrix returns T * R * S.
func (t Transform) Matrix() Mat4 {
	sx, sy, sz := t.Scale[0], t.Scale[1], t.Scale[2]
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	r := RotateX(t.Rotation[0]).Mul(RotateY(t.Rotation[1])).Mul(RotateZ(t.Rotation[2]))
	return Translate(t.Position[0], t.Position[1], t.Position[2]).Mul(r).Mul(Scale(sx, sy, sz))
}
