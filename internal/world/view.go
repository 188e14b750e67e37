// internal/world/view.go
package world

import (
	"go-raycaster/internal/camera"
	"go-raycaster/internal/component"
	"go-raycaster/internal/sector"
)

// Pose returns the player's viewpoint.
func (w *World) Pose() camera.Pose {
	b, p := w.ECS.Bodies[w.player], w.ECS.Players[w.player]
	if b == nil {
		return camera.Pose{}
	}
	pose := camera.Pose{X: b.X, Y: b.Y, Angle: b.Angle, EyeHeight: b.Height}
	if p != nil {
		pose.EyeHeight, pose.Pitch = p.EyeHeight, p.Pitch
	}
	return pose
}

// Moving reports whether the player changed position during the last tick.
func (w *World) Moving() bool {
	m := w.ECS.Motions[w.player]
	return m != nil && m.Moved
}

// Billboards lists every visible body except the player, in creation order.
func (w *World) Billboards() []camera.Billboard {
	var out []camera.Billboard
	for _, id := range w.ECS.IDs() {
		if id == w.player {
			continue
		}
		b, sp := w.ECS.Bodies[id], w.ECS.Sprites[id]
		if b == nil || sp == nil || !b.Has(component.FlagVisible) {
			continue
		}
		bb := camera.Billboard{ID: id, X: b.X, Y: b.Y, Texture: sp.Texture, Color: sp.Color, Scale: sp.Scale}
		if ai := w.ECS.AIs[id]; ai != nil && ai.State == component.StateDying {
			// sink while dying
			bb.Scale *= 1 - 0.5*clampUnit(ai.StateTime/ai.Tuning.DyingDuration)
		}
		out = append(out, bb)
	}
	return out
}

// Lights lists the dynamic lights of live effects, dimming as they age.
func (w *World) Lights() []camera.Light {
	var out []camera.Light
	for _, id := range w.ECS.IDsOf(component.KindEffect) {
		fx, b := w.ECS.Effects[id], w.ECS.Bodies[id]
		if fx == nil || b == nil || fx.Light <= 0 {
			continue
		}
		out = append(out, camera.Light{X: b.X, Y: b.Y, Intensity: fx.Light * fx.Remaining()})
	}
	return out
}

// Doors returns the door sectors.
func (w *World) Doors() []*sector.Sector { return w.DoorSystem.Doors() }

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
