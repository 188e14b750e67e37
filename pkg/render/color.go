// pkg/render/color.go
package render

import (
	"image/color"

	"go-raycaster/internal/config"
)

// Palette holds the colors the renderer fills with.
type Palette struct {
	Background color.RGBA
	Ceiling    color.RGBA
	Floor      color.RGBA
	Overlay    color.RGBA
	Text       color.RGBA
	ErrorText  color.RGBA
	Walls      []color.RGBA // indexed by texture id
}

// DefaultPalette returns the palette from config.
func DefaultPalette() Palette {
	return Palette{
		Background: config.BackgroundColor,
		Ceiling:    config.CeilingColor,
		Floor:      config.FloorColor,
		Overlay:    config.OverlayColor,
		Text:       config.TextColor,
		ErrorText:  config.ErrorTextColor,
		Walls:      config.WallColors,
	}
}

// Wall returns the color of a texture id. Unknown ids wrap around the
// non-zero entries.
func (p Palette) Wall(texture int) color.RGBA {
	if len(p.Walls) < 2 || texture <= 0 {
		return p.Background
	}
	if texture >= len(p.Walls) {
		texture = 1 + (texture-1)%(len(p.Walls)-1)
	}
	return p.Walls[texture]
}

// Shade scales the RGB channels by f, clamped to [0,1].
func Shade(c color.RGBA, f float64) color.RGBA {
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return Shade(c, 0.7)
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(a * 255)
	return c
}
