// internal/camera/source.go
package camera

import (
	"image/color"

	"go-raycaster/internal/sector"
	"go-raycaster/internal/types"
	"go-raycaster/pkg/trig"
)

// Pose is where the viewer stands and looks.
type Pose struct {
	X, Y      float64
	Angle     float64 // degrees
	EyeHeight float64 // world units above the floor
	Pitch     float64 // horizon offset in pixels, positive looks up
}

// Billboard is a body drawn as a camera-facing sprite.
type Billboard struct {
	ID      types.EntityID
	X, Y    float64
	Texture int
	Color   color.RGBA
	Scale   float64 // relative to a wall slice
}

// Light is a dynamic point light.
type Light struct {
	X, Y      float64
	Intensity float64
}

// Source is what the camera reads from the world. Implementations must not
// mutate anything while the camera projects.
type Source interface {
	Map() *sector.Map
	Trig() *trig.Tables
	Pose() Pose
	Billboards() []Billboard
	Lights() []Light
}
