package scene

// Transform places an entity: scale, then rotate X, Y, Z (Euler radians,
// intrinsic XYZ), then translate.
type Transform struct {
	Translation Vec3
	Rotation    Vec3
	Scale       Vec3
}

func At(x, y, z float32) Transform {
	return Transform{Translation: Vec3{x, y, z}, Scale: Vec3{1, 1, 1}}
}

func (t Transform) Rotated(x, y, z float32) Transform {
	t.Rotation = Vec3{x, y, z}
	return t
}

func (t Transform) Matrix() Mat4 {
	r := Mul(Mul(RotateX(t.Rotation[0]), RotateY(t.Rotation[1])), RotateZ(t.Rotation[2]))
	m := Mul(Translate(t.Translation[0], t.Translation[1], t.Translation[2]), r)
	return Mul(m, Scale(t.Scale[0], t.Scale[1], t.Scale[2]))
}
