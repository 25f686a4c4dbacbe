package scene

import "github.com/chewxy/math32"

// Mat4 is a column-major 4x4 matrix as GLSL expects it: element (row r, col c)
// lives at index r+4*c.
type Mat4 = [16]float32

type Vec3 = [3]float32

func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

func Scale(x, y, z float32) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

func RotateX(a float32) Mat4 {
	c, s := math32.Cos(a), math32.Sin(a)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

func RotateY(a float32) Mat4 {
	c, s := math32.Cos(a), math32.Sin(a)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func RotateZ(a float32) Mat4 {
	c, s := math32.Cos(a), math32.Sin(a)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns a·b, so Mul(a, b) applied to a point runs b first.
func Mul(a, b Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[r+4*c] = a[r]*b[4*c] + a[r+4]*b[1+4*c] + a[r+8]*b[2+4*c] + a[r+12]*b[3+4*c]
		}
	}
	return out
}

// Ortho maps the box to GL clip space (z in [-1,1]).
func Ortho(l, r, b, t, n, f float32) Mat4 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}

// Perspective is a right-handed GL projection looking down -Z.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	nf := 1 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

func LookAt(eye, target, up Vec3) Mat4 {
	f := Normalize(Sub(target, eye))
	s := Normalize(Cross(f, up))
	u := Cross(s, f)
	return Mat4{
		s[0], u[0], -f[0], 0,
		s[1], u[1], -f[1], 0,
		s[2], u[2], -f[2], 0,
		-Dot(s, eye), -Dot(u, eye), Dot(f, eye), 1,
	}
}

// TransformPoint applies m to p with the perspective divide.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	x := m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12]
	y := m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13]
	z := m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14]
	w := m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15]
	if w != 0 && w != 1 {
		x, y, z = x/w, y/w, z/w
	}
	return Vec3{x, y, z}
}

func Add(a, b Vec3) Vec3               { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func Sub(a, b Vec3) Vec3               { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func MulScalar(a Vec3, s float32) Vec3 { return Vec3{a[0] * s, a[1] * s, a[2] * s} }
func Dot(a, b Vec3) float32            { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
func Length(a Vec3) float32            { return math32.Sqrt(Dot(a, a)) }

func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func Normalize(a Vec3) Vec3 {
	l := Length(a)
	if l == 0 {
		return a
	}
	return MulScalar(a, 1/l)
}
