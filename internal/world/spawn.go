// internal/world/spawn.go
package world

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-raycaster/internal/component"
	"go-raycaster/internal/config"
	"go-raycaster/internal/defs"
	"go-raycaster/internal/event"
	"go-raycaster/internal/types"
	"go-raycaster/pkg/grid"
)

func (w *World) spawnAll(s defs.Spawns) error {
	var errs []error
	w.spawnPlayer(s.Player)
	for _, e := range s.Enemies {
		if _, err := w.SpawnEnemy(e); err != nil {
			errs = append(errs, err)
		}
	}
	for _, it := range s.Items {
		x, y := w.sectors.Center(it.X, it.Y)
		if _, err := w.SpawnItem(it.Kind, it.Amount, x, y); err != nil {
			errs = append(errs, err)
		}
	}
	for _, o := range s.Objects {
		if _, err := w.spawnObject(o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// reserve refuses a spawn once config.MaxBodies entities exist.
func (w *World) reserve(kind component.Kind) error {
	if w.ECS.Len() < config.MaxBodies {
		return nil
	}
	w.log.WithFields(logrus.Fields{"kind": kind, "limit": config.MaxBodies}).Warn("spawn refused")
	w.events.Push(event.Event{Type: event.SpawnRefused, Data: kind})
	return fmt.Errorf("%w: %d bodies", ErrCapacity, config.MaxBodies)
}

func (w *World) spawnPlayer(p defs.PlayerSpawn) {
	id := w.ECS.NewEntity(component.KindPlayer)
	x, y := w.sectors.Center(p.X, p.Y)
	w.ECS.Bodies[id] = &component.Body{
		X:       x,
		Y:       y,
		Width:   config.PlayerRadius * 2,
		Length:  config.PlayerRadius * 2,
		Height:  config.EyeHeight,
		Radius:  config.PlayerRadius,
		Angle:   p.Angle,
		SectorX: p.X,
		SectorY: p.Y,
		Flags:   component.FlagBlocking,
	}
	w.ECS.Motions[id] = &component.Motion{
		MaxVelocity:     config.PlayerMaxVelocity,
		Acceleration:    config.PlayerAcceleration,
		MaxRotVelocity:  config.PlayerMaxTurn,
		RotAcceleration: config.PlayerTurnAccel,
	}
	w.ECS.Healths[id] = &component.Health{Value: config.PlayerHealth, Max: config.PlayerHealth}
	w.ECS.Players[id] = &component.Player{EyeHeight: config.EyeHeight, Ammo: config.PlayerStartAmmo}
	w.player = id
}

// SpawnEnemy places an enemy from its spawn entry.
func (w *World) SpawnEnemy(e defs.EnemySpawn) (types.EntityID, error) {
	def, ok := w.enemies[e.Def]
	if !ok {
		return 0, fmt.Errorf("%w: %q", defs.ErrUnknownEnemy, e.Def)
	}
	if err := w.reserve(component.KindEnemy); err != nil {
		return 0, err
	}
	x, y := w.sectors.Center(e.X, e.Y)
	id := w.ECS.NewEntity(component.KindEnemy)
	w.ECS.Bodies[id] = &component.Body{
		X:       x,
		Y:       y,
		Width:   config.EnemyRadius * 2,
		Length:  config.EnemyRadius * 2,
		Height:  w.sectors.CellSize * 0.8,
		Radius:  config.EnemyRadius,
		Angle:   e.Angle,
		SectorX: e.X,
		SectorY: e.Y,
		Flags:   component.FlagBlocking | component.FlagVisible,
	}
	w.ECS.Motions[id] = &component.Motion{
		MaxVelocity:     def.Speed,
		Acceleration:    def.Speed * 4,
		MaxRotVelocity:  def.TurnSpeed,
		RotAcceleration: def.TurnSpeed * 4,
	}
	w.ECS.Healths[id] = &component.Health{Value: def.Health, Max: def.Health}
	ai := &component.AI{DefID: def.ID, Tuning: def.Tuning(w.sectors.CellSize)}
	for _, p := range e.Patrol {
		ai.Patrol = append(ai.Patrol, grid.Point{X: p[0], Y: p[1]})
	}
	w.ECS.AIs[id] = ai
	w.ECS.Sprites[id] = &component.Sprite{Texture: def.Texture, Color: config.EnemyColor, Scale: 0.8}
	return id, nil
}

// SpawnItem places a pickup at a world position.
func (w *World) SpawnItem(kind component.ItemKind, amount int, x, y float64) (types.EntityID, error) {
	s := w.sectors.Locate(x, y)
	if s == nil {
		return 0, ErrOutOfBounds
	}
	if err := w.reserve(component.KindItem); err != nil {
		return 0, err
	}
	id := w.ECS.NewEntity(component.KindItem)
	w.ECS.Bodies[id] = &component.Body{
		X:       x,
		Y:       y,
		Radius:  w.sectors.CellSize / 4,
		SectorX: s.X,
		SectorY: s.Y,
		Flags:   component.FlagPickup | component.FlagVisible,
	}
	w.ECS.Items[id] = &component.Item{Kind: kind, Amount: amount}
	w.ECS.Sprites[id] = &component.Sprite{Color: config.ItemColor, Scale: 0.3}
	return id, nil
}

func (w *World) spawnObject(o defs.ObjectSpawn) (types.EntityID, error) {
	if err := w.reserve(component.KindObject); err != nil {
		return 0, err
	}
	x, y := w.sectors.Center(o.X, o.Y)
	id := w.ECS.NewEntity(component.KindObject)
	flags := component.FlagVisible
	if o.Blocking {
		flags |= component.FlagBlocking
	}
	w.ECS.Bodies[id] = &component.Body{
		X:       x,
		Y:       y,
		Radius:  w.sectors.CellSize / 4,
		SectorX: o.X,
		SectorY: o.Y,
		Flags:   flags,
	}
	w.ECS.Sprites[id] = &component.Sprite{Texture: o.Texture, Color: config.ObjectColor, Scale: 0.6}
	return id, nil
}

// AddEffect spawns a transient effect at a world position. Effects are keyed
// by their source: a new effect replaces the live one from the same source.
// It returns the new effect's id.
func (w *World) AddEffect(source types.EntityID, kind string, x, y float64) (string, error) {
	s := w.sectors.Locate(x, y)
	if s == nil {
		return "", ErrOutOfBounds
	}
	if old := w.effectOf(source); old != 0 {
		w.ECS.Remove(old)
	} else if w.ECS.Count(component.KindEffect) >= config.MaxEffects {
		w.log.WithFields(logrus.Fields{"kind": kind, "limit": config.MaxEffects}).Warn("effect refused")
		w.events.Push(event.Event{Type: event.SpawnRefused, Source: source, Data: component.KindEffect})
		return "", fmt.Errorf("%w: %d effects", ErrCapacity, config.MaxEffects)
	}
	if err := w.reserve(component.KindEffect); err != nil {
		return "", err
	}

	id := w.ECS.NewEntity(component.KindEffect)
	fx := &component.Effect{
		ID:     uuid.NewString(),
		Source: source,
		Kind:   kind,
		TTL:    config.EffectTTL,
		Light:  config.EffectLight,
	}
	w.ECS.Effects[id] = fx
	w.ECS.Bodies[id] = &component.Body{X: x, Y: y, SectorX: s.X, SectorY: s.Y, Flags: component.FlagVisible}
	w.ECS.Sprites[id] = &component.Sprite{Color: config.EffectColor, Scale: 0.25}
	w.events.Push(event.Event{Type: event.EffectAdded, Source: source, X: s.X, Y: s.Y, Data: kind})
	return fx.ID, nil
}

// EffectOf returns the live effect spawned by source, if any.
func (w *World) EffectOf(source types.EntityID) (*component.Effect, bool) {
	id := w.effectOf(source)
	if id == 0 {
		return nil, false
	}
	return w.ECS.Effects[id], true
}

func (w *World) effectOf(source types.EntityID) types.EntityID {
	for id, fx := range w.ECS.Effects {
		if fx.Source == source {
			return id
		}
	}
	return 0
}
