package camera

import (
	"math"
	"testing"

	"go-raycaster/internal/config"
	"go-raycaster/internal/sector"
	"go-raycaster/pkg/trig"
)

type fakeSource struct {
	m      *sector.Map
	pose   Pose
	sprite []Billboard
	lights []Light
}

func (f *fakeSource) Map() *sector.Map        { return f.m }
func (f *fakeSource) Trig() *trig.Tables      { return trig.Default() }
func (f *fakeSource) Pose() Pose              { return f.pose }
func (f *fakeSource) Billboards() []Billboard { return f.sprite }
func (f *fakeSource) Lights() []Light         { return f.lights }

// room builds a walled rectangle of w x h cells.
func room(w, h int) *sector.Map {
	m := sector.NewMap(w, h, config.CellSize)
	m.Each(func(s *sector.Sector) {
		if s.X == 0 || s.Y == 0 || s.X == w-1 || s.Y == h-1 {
			s.Kind = sector.Wall
		}
	})
	m.AutoFace(func(*sector.Sector) int { return 1 })
	return m
}

// facingWall stands 224 units in front of the east wall of an 6x11 room,
// close enough that every ray hits that wall.
func facingWall() *fakeSource {
	return &fakeSource{
		m:    room(6, 11),
		pose: Pose{X: 96, Y: 352, Angle: 0, EyeHeight: config.EyeHeight},
	}
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestProjectionDistance(t *testing.T) {
	c := New(320, 200, 60)
	want := 160 / math.Tan(math.Pi/6)
	if !near(c.ProjectionDistance, want, 1e-9) {
		t.Fatalf("ProjectionDistance = %v, want %v", c.ProjectionDistance, want)
	}
	if got := c.RayAngle(0, 0); !near(got, 330, 1e-9) {
		t.Errorf("leftmost ray = %v, want 330", got)
	}
	if got := c.RayAngle(0, 160); !near(got, 0, 1e-9) {
		t.Errorf("centre ray = %v, want 0", got)
	}
}

func TestFlatWallHasNoFisheye(t *testing.T) {
	c := New(config.ScreenWidth, config.ScreenHeight, config.FOV)
	f := c.Project(facingWall())

	if len(f.Columns) != config.ScreenWidth || len(f.Depth) != config.ScreenWidth {
		t.Fatalf("frame has %d columns, %d depths", len(f.Columns), len(f.Depth))
	}
	for x, col := range f.Columns {
		if !col.Hit {
			t.Fatalf("column %d missed", x)
		}
		if !near(col.Distance, 224, 1e-6) {
			t.Fatalf("column %d distance = %v, want 224", x, col.Distance)
		}
		if col.Face != sector.FaceLeft || col.CellX != 5 {
			t.Fatalf("column %d hit face %v of cell %d", x, col.Face, col.CellX)
		}
		if col.TexX < 0 || col.TexX >= config.TextureSize {
			t.Fatalf("column %d texture x %d out of range", x, col.TexX)
		}
		if f.Depth[x] != col.Distance {
			t.Fatalf("depth[%d] = %v, want %v", x, f.Depth[x], col.Distance)
		}
	}
	want := config.CellSize * c.ProjectionDistance / 224
	if !near(f.Columns[160].Height, want, 1e-6) {
		t.Errorf("slice height = %v, want %v", f.Columns[160].Height, want)
	}
}

func TestSliceFollowsEyeHeight(t *testing.T) {
	c := New(config.ScreenWidth, config.ScreenHeight, config.FOV)
	src := facingWall()

	f := c.Project(src)
	col := f.Columns[160]
	if !near((col.Top+col.Bottom)/2, f.Horizon, 1e-6) {
		t.Errorf("standing eye: slice centre %v, horizon %v", (col.Top+col.Bottom)/2, f.Horizon)
	}
	if !near(col.Bottom-col.Top, col.Height, 1e-6) {
		t.Errorf("slice spans %v, height %v", col.Bottom-col.Top, col.Height)
	}

	src.pose.EyeHeight = config.CrouchHeight
	crouched := c.Project(src).Columns[160]
	if crouched.Bottom >= col.Bottom {
		t.Errorf("crouching should raise the floor line: %v >= %v", crouched.Bottom, col.Bottom)
	}

	src.pose.Pitch = 20
	if h := c.Project(src).Horizon; h != float64(config.ScreenHeight)/2+20 {
		t.Errorf("horizon = %v, want %v", h, float64(config.ScreenHeight)/2+20)
	}
}

func TestMissUsesViewDistance(t *testing.T) {
	c := New(config.ScreenWidth, config.ScreenHeight, config.FOV)
	src := &fakeSource{
		m:    sector.NewMap(40, 40, config.CellSize),
		pose: Pose{X: 96, Y: 20 * config.CellSize, EyeHeight: config.EyeHeight},
	}
	f := c.Project(src)
	if f.Columns[160].Hit {
		t.Fatal("centre ray should run out before the map edge")
	}
	if f.Depth[160] != config.ViewDistance {
		t.Errorf("depth = %v, want %v", f.Depth[160], config.ViewDistance)
	}
}

func TestShade(t *testing.T) {
	tests := []struct {
		name        string
		dist, light float64
		want        float64
	}{
		{"at the eye", 0, 0, 1},
		{"half way", config.ViewDistance / 2, 0, 0.5},
		{"far floor clamps", config.ViewDistance, 0, config.MinShade},
		{"light adds", config.ViewDistance, 0.2, config.MinShade + 0.2},
		{"light saturates", 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shade(tt.dist, tt.light); !near(got, tt.want, 1e-9) {
				t.Errorf("shade(%v, %v) = %v, want %v", tt.dist, tt.light, got, tt.want)
			}
		})
	}
}

func TestLightingRaisesShade(t *testing.T) {
	c := New(config.ScreenWidth, config.ScreenHeight, config.FOV)
	src := facingWall()
	base := c.Project(src).Columns[160].Shade

	// the floor cell in front of the struck face carries the ambient light
	src.m.At(4, 5).Light = 0.1
	lit := c.Project(src).Columns[160].Shade
	if !near(lit-base, 0.1, 1e-9) {
		t.Errorf("ambient light added %v, want 0.1", lit-base)
	}

	src.lights = []Light{{X: 300, Y: 352, Intensity: 1}}
	if got := c.Project(src).Columns[160].Shade; got <= lit {
		t.Errorf("dynamic light did not brighten the wall: %v <= %v", got, lit)
	}

	src.lights = []Light{{X: 96, Y: 96, Intensity: 1}}
	if got := c.Project(src).Columns[160].Shade; got != lit {
		t.Errorf("light beyond its radius changed the shade: %v != %v", got, lit)
	}
}

func TestSpriteProjection(t *testing.T) {
	c := New(config.ScreenWidth, config.ScreenHeight, config.FOV)
	src := facingWall()
	src.sprite = []Billboard{
		{ID: 1, X: 96 + 32, Y: 352, Scale: 1},  // near, centred
		{ID: 2, X: 96 + 128, Y: 352 + 40},      // farther, right of centre
		{ID: 3, X: 96 - 64, Y: 352, Scale: 1},  // behind the viewer
		{ID: 4, X: 96 + 300, Y: 352, Scale: 1}, // behind the east wall
	}
	f := c.Project(src)

	if len(f.Sprites) != 2 {
		t.Fatalf("projected %d sprites, want 2", len(f.Sprites))
	}
	if f.Sprites[0].ID != 2 || f.Sprites[1].ID != 1 {
		t.Fatalf("sprites not sorted far to near: %d, %d", f.Sprites[0].ID, f.Sprites[1].ID)
	}

	nearest := f.Sprites[1]
	if !near(nearest.Distance, 32, 1e-6) {
		t.Errorf("depth = %v, want 32", nearest.Distance)
	}
	if !near(nearest.ScreenX, float64(config.ScreenWidth)/2, 1e-6) {
		t.Errorf("screen x = %v, want centre", nearest.ScreenX)
	}
	if want := config.CellSize * c.ProjectionDistance / 32; !near(nearest.Size, want, 1e-6) {
		t.Errorf("size = %v, want %v", nearest.Size, want)
	}
	if nearest.StartX != 0 || nearest.EndX != config.ScreenWidth {
		t.Errorf("a sprite wider than the screen should clip to it: [%d,%d)", nearest.StartX, nearest.EndX)
	}
	if f.Sprites[0].ScreenX <= float64(config.ScreenWidth)/2 {
		t.Errorf("sprite at +Y should be right of centre when facing +X, got %v", f.Sprites[0].ScreenX)
	}
}

func TestShakeStaysInRange(t *testing.T) {
	c := New(config.ScreenWidth, config.ScreenHeight, config.FOV)
	peaked := false
	for i := 0; i < 200; i++ {
		c.Update(1.0/60, true)
		s := c.Shake()
		if s < 0 || s > config.MaxShake {
			t.Fatalf("shake %v out of [0, %v]", s, config.MaxShake)
		}
		if s == config.MaxShake {
			peaked = true
		}
	}
	if !peaked {
		t.Error("shake never reached its maximum while moving")
	}
	for i := 0; i < 120; i++ {
		c.Update(1.0/60, false)
	}
	if c.Shake() != 0 {
		t.Errorf("shake = %v after standing still, want 0", c.Shake())
	}
	if h := c.Project(facingWall()).Horizon; h != float64(config.ScreenHeight)/2 {
		t.Errorf("horizon = %v, want %v", h, float64(config.ScreenHeight)/2)
	}
}
