// pkg/render/raycast_renderer.go
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"go-raycaster/internal/camera"
	"go-raycaster/internal/config"
	"go-raycaster/internal/scene"
)

// mortar is the texel period of the darker seams drawn across wall faces.
const mortar = 16

// RaycastRenderer draws a scene view. It only reads computed state.
type RaycastRenderer struct {
	screenWidth  int
	screenHeight int
	palette      Palette
	fontFace     font.Face
	ShowFPS      bool
}

func NewRaycastRenderer(screenWidth, screenHeight int, palette Palette) *RaycastRenderer {
	return &RaycastRenderer{
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		palette:      palette,
		fontFace:     basicfont.Face7x13,
	}
}

func (r *RaycastRenderer) Draw(screen *ebiten.Image, v scene.View) {
	screen.Fill(r.palette.Background)

	if v.Frame != nil {
		r.drawBackdrop(screen, v.Frame.Horizon)
		r.drawColumns(screen, v.Frame)
		r.drawSprites(screen, v.Frame)
		r.drawCrosshair(screen)
	} else if v.Phase == scene.FadingIn {
		r.drawBackdrop(screen, float64(r.screenHeight)/2)
	}

	if v.Phase != scene.Loading && !v.Phase.Outcome() {
		r.drawHUD(screen, v)
	}
	if v.Opacity < 1 {
		w, h := float32(r.screenWidth), float32(r.screenHeight)
		vector.DrawFilledRect(screen, 0, 0, w, h, WithAlpha(r.palette.Background, 1-v.Opacity), false)
	}
	if v.Overlay != "" {
		r.drawOverlay(screen, v)
	}
	if r.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %.0f FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()))
	}
}

func (r *RaycastRenderer) drawBackdrop(screen *ebiten.Image, horizon float64) {
	w, h := float32(r.screenWidth), float32(r.screenHeight)
	y := float32(horizon)
	if y < 0 {
		y = 0
	} else if y > h {
		y = h
	}
	vector.DrawFilledRect(screen, 0, 0, w, y, r.palette.Ceiling, false)
	vector.DrawFilledRect(screen, 0, y, w, h-y, r.palette.Floor, false)
}

func (r *RaycastRenderer) drawColumns(screen *ebiten.Image, f *camera.Frame) {
	for x, col := range f.Columns {
		if !col.Hit {
			continue
		}
		c := r.palette.Wall(col.Texture)
		if col.Side == 1 {
			c = DarkenColor(c)
		}
		shade := col.Shade
		if col.TexX%mortar == 0 {
			shade *= 0.75
		}
		top, bottom := clip(col.Top, r.screenHeight), clip(col.Bottom, r.screenHeight)
		if bottom <= top {
			continue
		}
		vector.DrawFilledRect(screen, float32(x), top, 1, bottom-top, Shade(c, shade), false)
	}
}

// drawSprites paints billboards far to near, one screen column at a time,
// skipping columns where a wall is closer.
func (r *RaycastRenderer) drawSprites(screen *ebiten.Image, f *camera.Frame) {
	for _, sp := range f.Sprites {
		shaded := Shade(sp.Color, sp.Shade)
		c := color.NRGBA{R: shaded.R, G: shaded.G, B: shaded.B, A: sp.Color.A}
		if c.A == 0 {
			continue
		}
		half := sp.Size * 0.35
		top, bottom := clip(sp.Top, r.screenHeight), clip(sp.Top+sp.Size, r.screenHeight)
		if bottom <= top {
			continue
		}
		for x := sp.StartX; x < sp.EndX; x++ {
			if sp.Distance >= f.Depth[x] {
				continue
			}
			if fx := float64(x) + 0.5; fx < sp.ScreenX-half || fx > sp.ScreenX+half {
				continue
			}
			vector.DrawFilledRect(screen, float32(x), top, 1, bottom-top, c, false)
		}
	}
}

func (r *RaycastRenderer) drawCrosshair(screen *ebiten.Image) {
	cx, cy := float32(r.screenWidth)/2, float32(r.screenHeight)/2
	vector.StrokeLine(screen, cx-4, cy, cx+4, cy, 1, r.palette.Text, false)
	vector.StrokeLine(screen, cx, cy-4, cx, cy+4, 1, r.palette.Text, false)
}

func (r *RaycastRenderer) drawHUD(screen *ebiten.Image, v scene.View) {
	s := v.Status
	hud := fmt.Sprintf("HP %3d  AMMO %3d  KILLS %d", s.Health, s.Ammo, s.Kills)
	clr := r.palette.Text
	if s.Health <= config.PlayerHealth/4 {
		clr = r.palette.ErrorText
	}
	text.Draw(screen, hud, r.fontFace, 4, r.screenHeight-4, clr)
}

func (r *RaycastRenderer) drawOverlay(screen *ebiten.Image, v scene.View) {
	w, h := float32(r.screenWidth), float32(r.screenHeight)
	vector.DrawFilledRect(screen, 0, h/2-14, w, 28, r.palette.Overlay, false)

	clr := r.palette.Text
	lines := []string{v.Overlay}
	if v.Err != nil {
		clr = r.palette.ErrorText
		lines = append(lines, v.Err.Error())
	}
	y := r.screenHeight/2 + 4 - (len(lines)-1)*7
	for _, line := range lines {
		bounds := text.BoundString(r.fontFace, line)
		text.Draw(screen, line, r.fontFace, (r.screenWidth-bounds.Dx())/2, y, clr)
		y += 14
	}
}

func clip(y float64, height int) float32 {
	if y < 0 {
		return 0
	}
	if y > float64(height) {
		return float32(height)
	}
	return float32(y)
}
