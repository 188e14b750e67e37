// internal/camera/camera.go
package camera

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"go-raycaster/internal/config"
	"go-raycaster/internal/sector"
	"go-raycaster/internal/types"
	"go-raycaster/internal/utils"
	"go-raycaster/pkg/trig"
)

// Column is one projected screen column.
type Column struct {
	Hit      bool
	Distance float64 // perpendicular distance, fisheye corrected
	Height   float64 // wall slice height in pixels
	Top      float64 // screen y of the top of the slice, unclipped
	Bottom   float64
	Texture  int
	TexX     int // texture column in [0, TextureSize)
	Face     sector.Face
	Side     int
	Shade    float64 // [0,1]
	CellX    int
	CellY    int
}

// Sprite is a projected billboard.
type Sprite struct {
	ID       types.EntityID
	Distance float64 // depth along the view axis
	ScreenX  float64 // centre column
	Size     float64 // width and height in pixels
	Top      float64
	StartX   int // first column drawn, clipped to the screen
	EndX     int // one past the last column drawn
	Texture  int
	Color    color.RGBA
	Shade    float64
}

// Frame is everything the presentation layer needs for one image. Its
// slices belong to the camera and are overwritten by the next Project.
type Frame struct {
	Columns []Column
	Depth   []float64
	Sprites []Sprite
	Shake   float64
	Horizon float64 // screen y of the horizon
}

// Camera casts one ray per screen column and projects billboards.
type Camera struct {
	Width, Height      int
	FOV                float64
	ProjectionDistance float64

	shake    float64
	shakeDir float64

	columns []Column
	depth   []float64
	sprites []Sprite
}

// New creates a camera for a screen of width x height pixels.
func New(width, height int, fov float64) *Camera {
	return &Camera{
		Width:              width,
		Height:             height,
		FOV:                fov,
		ProjectionDistance: float64(width) / 2 / math.Tan(fov/2*math.Pi/180),
		shakeDir:           1,
		columns:            make([]Column, width),
		depth:              make([]float64, width),
	}
}

// Shake returns the current head-bob offset, always in [0, config.MaxShake].
func (c *Camera) Shake() float64 { return c.shake }

// Update advances the head bob: while the viewer moves the offset sweeps
// between 0 and config.MaxShake, otherwise it settles back to 0.
func (c *Camera) Update(deltaTime float64, moving bool) {
	if !moving {
		c.shake = utils.Approach(c.shake, 0, config.ShakeDecay*deltaTime)
		c.shakeDir = 1
		return
	}
	c.shake += c.shakeDir * config.ShakeSpeed * deltaTime
	if c.shake >= config.MaxShake {
		c.shake = config.MaxShake
		c.shakeDir = -1
	} else if c.shake <= 0 {
		c.shake = 0
		c.shakeDir = 1
	}
}

// RayAngle returns the heading of the ray through column x.
func (c *Camera) RayAngle(viewAngle float64, x int) float64 {
	return trig.Normalize(viewAngle - c.FOV/2 + float64(x)*c.FOV/float64(c.Width))
}

// Project renders src into a Frame.
func (c *Camera) Project(src Source) Frame {
	m, tables, pose := src.Map(), src.Trig(), src.Pose()
	lights := src.Lights()
	horizon := float64(c.Height)/2 + pose.Pitch + c.shake

	for x := 0; x < c.Width; x++ {
		rayAngle := c.RayAngle(pose.Angle, x)
		dirX, dirY := tables.Polar(1, rayAngle)
		col := Column{}
		hit, ok := m.Cast(pose.X, pose.Y, dirX, dirY, config.ViewDistance, config.MaxRaySteps)
		if ok {
			corrected := hit.Distance * tables.Cos(rayAngle-pose.Angle)
			if corrected < 1e-3 {
				corrected = 1e-3
			}
			height := m.CellSize * c.ProjectionDistance / corrected
			texX := int(math.Floor(hit.Frac * config.TextureSize))
			if texX >= config.TextureSize {
				texX = config.TextureSize - 1
			}
			col = Column{
				Hit:      true,
				Distance: corrected,
				Height:   height,
				Top:      horizon - (m.CellSize-pose.EyeHeight)*c.ProjectionDistance/corrected,
				Bottom:   horizon + pose.EyeHeight*c.ProjectionDistance/corrected,
				Texture:  hit.Texture,
				TexX:     texX,
				Face:     hit.Face,
				Side:     hit.Side,
				CellX:    hit.CellX,
				CellY:    hit.CellY,
			}
			dx, dy := hit.Face.Offset()
			col.Shade = shade(corrected, ambient(m, hit.CellX+dx, hit.CellY+dy)+dynamic(lights, hit.X, hit.Y))
			c.depth[x] = corrected
		} else {
			c.depth[x] = config.ViewDistance
		}
		c.columns[x] = col
	}

	c.projectSprites(src, pose, horizon, lights)
	return Frame{
		Columns: c.columns,
		Depth:   c.depth,
		Sprites: c.sprites,
		Shake:   c.shake,
		Horizon: horizon,
	}
}

func (c *Camera) projectSprites(src Source, pose Pose, horizon float64, lights []Light) {
	m, tables := src.Map(), src.Trig()
	c.sprites = c.sprites[:0]

	dirX, dirY := tables.Polar(1, pose.Angle)
	planeLen := math.Tan(c.FOV / 2 * math.Pi / 180)
	planeX, planeY := -dirY*planeLen, dirX*planeLen
	// columns: camera plane, view direction
	inv := mgl64.Mat2{planeX, planeY, dirX, dirY}.Inv()

	for _, bb := range src.Billboards() {
		rel := inv.Mul2x1(mgl64.Vec2{bb.X - pose.X, bb.Y - pose.Y})
		lateral, depth := rel[0], rel[1]
		if depth <= 1e-3 || depth > config.ViewDistance {
			continue
		}
		screenX := float64(c.Width) / 2 * (1 + lateral/depth)
		scale := bb.Scale
		if scale <= 0 {
			scale = 1
		}
		size := scale * m.CellSize * c.ProjectionDistance / depth
		start := int(math.Floor(screenX - size/2))
		end := int(math.Ceil(screenX + size/2))
		if end <= 0 || start >= c.Width {
			continue
		}
		if start < 0 {
			start = 0
		}
		if end > c.Width {
			end = c.Width
		}
		visible := false
		for x := start; x < end; x++ {
			if depth < c.depth[x] {
				visible = true
				break
			}
		}
		if !visible {
			continue
		}
		cx, cy := m.Cell(bb.X, bb.Y)
		bottom := horizon + pose.EyeHeight*c.ProjectionDistance/depth
		c.sprites = append(c.sprites, Sprite{
			ID:       bb.ID,
			Distance: depth,
			ScreenX:  screenX,
			Size:     size,
			Top:      bottom - size,
			StartX:   start,
			EndX:     end,
			Texture:  bb.Texture,
			Color:    bb.Color,
			Shade:    shade(depth, ambient(m, cx, cy)+dynamic(lights, bb.X, bb.Y)),
		})
	}
	sort.SliceStable(c.sprites, func(i, j int) bool {
		return c.sprites[i].Distance > c.sprites[j].Distance
	})
}

// shade is the distance falloff plus extra light, clamped to [0,1].
func shade(dist, light float64) float64 {
	base := utils.Clamp(1-dist/config.ViewDistance, config.MinShade, 1)
	return utils.Clamp(base+light, 0, 1)
}

func ambient(m *sector.Map, x, y int) float64 {
	if s := m.At(x, y); s != nil {
		return s.Light
	}
	return 0
}

// dynamic sums the contribution of lights within config.EffectLightRadius,
// falling off linearly.
func dynamic(lights []Light, x, y float64) float64 {
	total := 0.0
	for _, l := range lights {
		d := math.Hypot(l.X-x, l.Y-y)
		if d < config.EffectLightRadius {
			total += l.Intensity * (1 - d/config.EffectLightRadius)
		}
	}
	return total
}
