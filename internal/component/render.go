// internal/component/render.go
package component

import "image/color"

// Sprite is what the presentation layer needs to draw a body.
type Sprite struct {
	Texture int
	Color   color.RGBA
	Scale   float64 // relative to a wall slice
}
