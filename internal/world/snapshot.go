// internal/world/snapshot.go
package world

import (
	"go-raycaster/internal/component"
	"go-raycaster/internal/types"
)

// Snapshot is an immutable copy of the observable world state. It is built
// on the simulation goroutine and safe to hand to other goroutines.
type Snapshot struct {
	LevelID   string           `json:"level_id" msgpack:"level_id"`
	Level     string           `json:"level" msgpack:"level"`
	Tick      uint64           `json:"tick" msgpack:"tick"`
	Elapsed   float64          `json:"elapsed" msgpack:"elapsed"`
	Completed bool             `json:"completed" msgpack:"completed"`
	Player    PlayerSnapshot   `json:"player" msgpack:"player"`
	Enemies   []EnemySnapshot  `json:"enemies" msgpack:"enemies"`
	Doors     []DoorSnapshot   `json:"doors" msgpack:"doors"`
	Effects   []EffectSnapshot `json:"effects" msgpack:"effects"`
	Items     int              `json:"items" msgpack:"items"`
}

type PlayerSnapshot struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Angle  float64 `json:"angle" msgpack:"angle"`
	Health int     `json:"health" msgpack:"health"`
	Ammo   int     `json:"ammo" msgpack:"ammo"`
	Kills  int     `json:"kills" msgpack:"kills"`
	Dead   bool    `json:"dead" msgpack:"dead"`
}

type EnemySnapshot struct {
	ID     types.EntityID `json:"id" msgpack:"id"`
	Def    string         `json:"def" msgpack:"def"`
	X      float64        `json:"x" msgpack:"x"`
	Y      float64        `json:"y" msgpack:"y"`
	State  string         `json:"state" msgpack:"state"`
	Health int            `json:"health" msgpack:"health"`
}

type DoorSnapshot struct {
	X     int     `json:"x" msgpack:"x"`
	Y     int     `json:"y" msgpack:"y"`
	State string  `json:"state" msgpack:"state"`
	Open  float64 `json:"open" msgpack:"open"`
}

type EffectSnapshot struct {
	ID        string  `json:"id" msgpack:"id"`
	Kind      string  `json:"kind" msgpack:"kind"`
	Remaining float64 `json:"remaining" msgpack:"remaining"`
}

// Snapshot copies the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		LevelID:   w.ID,
		Level:     w.Level.Name,
		Tick:      w.ticks,
		Elapsed:   w.elapsed,
		Completed: w.completed,
		Items:     w.ECS.Count(component.KindItem),
		Player:    w.Status(),
	}
	for _, id := range w.ECS.IDsOf(component.KindEnemy) {
		b, ai, h := w.ECS.Bodies[id], w.ECS.AIs[id], w.ECS.Healths[id]
		if b == nil || ai == nil {
			continue
		}
		e := EnemySnapshot{ID: id, Def: ai.DefID, X: b.X, Y: b.Y, State: ai.State.String()}
		if h != nil {
			e.Health = h.Value
		}
		s.Enemies = append(s.Enemies, e)
	}
	for _, d := range w.DoorSystem.Doors() {
		s.Doors = append(s.Doors, DoorSnapshot{X: d.X, Y: d.Y, State: d.Door.String(), Open: d.OpenFraction})
	}
	for _, id := range w.ECS.IDsOf(component.KindEffect) {
		if fx := w.ECS.Effects[id]; fx != nil {
			s.Effects = append(s.Effects, EffectSnapshot{ID: fx.ID, Kind: fx.Kind, Remaining: fx.Remaining()})
		}
	}
	return s
}

// Status returns the player's part of the snapshot, for the HUD.
func (w *World) Status() PlayerSnapshot {
	b := w.ECS.Bodies[w.player]
	if b == nil {
		return PlayerSnapshot{Dead: w.playerDead}
	}
	ps := PlayerSnapshot{X: b.X, Y: b.Y, Angle: b.Angle, Dead: w.playerDead}
	if h := w.ECS.Healths[w.player]; h != nil {
		ps.Health = h.Value
	}
	if p := w.ECS.Players[w.player]; p != nil {
		ps.Ammo, ps.Kills = p.Ammo, p.Kills
	}
	return ps
}
