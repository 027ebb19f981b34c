package object

// Color is an opaque 24-bit RGB color tag carried by every drawable entity.
// It satisfies image/color.Color so renderers can use it directly.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Mix blends c with o; weight is the share of c in [0,1].
// Channels are truncated toward zero.
func (c Color) Mix(o Color, weight float64) Color {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*weight + float64(b)*(1-weight))
	}
	return Color{R: mix(c.R, o.R), G: mix(c.G, o.G), B: mix(c.B, o.B)}
}

// Named colors.
var (
	White  = Color{235, 235, 235}
	Black  = Color{18, 18, 22}
	Gray   = Color{90, 92, 98}
	Red    = Color{230, 85, 80}
	Green  = Color{90, 220, 120}
	Yellow = Color{240, 220, 120}
	Cyan   = Color{120, 220, 230}
	Purple = Color{175, 120, 245}
	Orange = Color{255, 170, 70}
	Pink   = Color{255, 120, 200}
	Blue   = Color{80, 160, 255}
)

// Palettes cycled or sampled by entities.
var (
	EnemyColors    = []Color{Orange, Purple, Pink, Red, Blue, Yellow, Green, Cyan}
	BulletColors   = []Color{Yellow, Cyan, Pink, White, Blue, Orange}
	ParticleColors = []Color{Yellow, Orange, Pink, Purple, Cyan, Blue, Green, White}
	DamageColors   = []Color{Red, Orange, Pink, Yellow}
)
