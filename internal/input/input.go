// internal/input/input.go
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-raycaster/internal/types"
)

// Bindings maps keys to actions. Held actions fire every frame the key is
// down; edge actions only on the frame it is pressed.
type Bindings struct {
	Forward, Backward, Left, Right   []ebiten.Key
	Strafe, Crouch, LookUp, LookDown []ebiten.Key
	Fire, Open                       []ebiten.Key
	Pause, Quit, Restart             []ebiten.Key
	Confirm, Cancel                  []ebiten.Key
}

// DefaultBindings is the classic arrow-key layout with WASD alternatives.
func DefaultBindings() Bindings {
	return Bindings{
		Forward:  []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW},
		Backward: []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS},
		Left:     []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA},
		Right:    []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD},
		Strafe:   []ebiten.Key{ebiten.KeyAltLeft, ebiten.KeyAltRight},
		Crouch:   []ebiten.Key{ebiten.KeyC, ebiten.KeyControlLeft},
		LookUp:   []ebiten.Key{ebiten.KeyPageUp},
		LookDown: []ebiten.Key{ebiten.KeyPageDown},
		Fire:     []ebiten.Key{ebiten.KeySpace, ebiten.KeyShiftLeft},
		Open:     []ebiten.Key{ebiten.KeyE},
		Pause:    []ebiten.Key{ebiten.KeyP, ebiten.KeyF9},
		Quit:     []ebiten.Key{ebiten.KeyQ},
		Restart:  []ebiten.Key{ebiten.KeyR},
		Confirm:  []ebiten.Key{ebiten.KeyEnter},
		Cancel:   []ebiten.Key{ebiten.KeyEscape},
	}
}

// Poll reads the keyboard into an action snapshot.
func Poll(b Bindings) types.Actions {
	return types.Actions{
		Forward:  held(b.Forward),
		Backward: held(b.Backward),
		Left:     held(b.Left),
		Right:    held(b.Right),
		Strafe:   held(b.Strafe),
		Crouch:   held(b.Crouch),
		LookUp:   held(b.LookUp),
		LookDown: held(b.LookDown),
		Fire:     held(b.Fire),
		Open:     pressed(b.Open),
		Pause:    pressed(b.Pause),
		Quit:     pressed(b.Quit),
		Restart:  pressed(b.Restart),
		Confirm:  pressed(b.Confirm),
		Cancel:   pressed(b.Cancel),
	}
}

func held(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func pressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
