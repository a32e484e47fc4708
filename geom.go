package vectortext

// Vec2 is a 2D point or extent.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3D point or direction.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns a + b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

// Sub returns a - b.
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Scale returns a * s.
func (a Vec2) Scale(s float32) Vec2 { return Vec2{a.X * s, a.Y * s} }

// Lerp returns a + (b-a)*t.
func (a Vec2) Lerp(b Vec2, t float32) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Mat4 is a column-major 4x4 transform. Element i of column c is at
// index c*4+i, matching the layout GPU uniform buffers expect.
type Mat4 [16]float32

// Mat4Identity returns the identity transform.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Translate returns a translation transform.
func Mat4Translate(x, y, z float32) Mat4 {
	m := Mat4Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Mat4Scale returns a scaling transform.
func Mat4Scale(x, y, z float32) Mat4 {
	m := Mat4Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// Mul returns m * n, the transform that applies n first and m second.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// right returns the first basis column.
func (m Mat4) right() Vec3 { return Vec3{m[0], m[1], m[2]} }

// up returns the second basis column.
func (m Mat4) up() Vec3 { return Vec3{m[4], m[5], m[6]} }

// translation returns the translation column.
func (m Mat4) translation() Vec3 { return Vec3{m[12], m[13], m[14]} }

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Packed returns the color as RGBA8 with R in the low byte, the packing
// the instance record carries.
func (c Color) Packed() uint32 {
	return uint32(channelByte(c.R)) |
		uint32(channelByte(c.G))<<8 |
		uint32(channelByte(c.B))<<16 |
		uint32(channelByte(c.A))<<24
}

func channelByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
