// internal/system/visual_effect.go
package system

import (
	"go-raycaster/internal/component"
	"go-raycaster/internal/entity"
	"go-raycaster/internal/event"
)

// EffectSystem ages transient effects and removes them when their TTL runs
// out. Age is accumulated from the tick deltas, so a long frame and many short
// ones expire an effect at the same simulated time.
type EffectSystem struct {
	ecs    *entity.ECS
	events *event.Queue
}

// NewEffectSystem creates the effect system.
func NewEffectSystem(ecs *entity.ECS, events *event.Queue) *EffectSystem {
	return &EffectSystem{ecs: ecs, events: events}
}

// Update ages every live effect by deltaTime seconds and removes the expired
// ones. It returns how many were removed.
func (s *EffectSystem) Update(deltaTime float64) int {
	removed := 0
	for _, id := range s.ecs.IDsOf(component.KindEffect) {
		fx, ok := s.ecs.Effects[id]
		if !ok {
			continue
		}
		fx.Elapsed += deltaTime * 1000
		if !fx.Expired() {
			if sp := s.ecs.Sprites[id]; sp != nil {
				sp.Color.A = uint8(255 * fx.Remaining())
			}
			continue
		}
		b := s.ecs.Bodies[id]
		ev := event.Event{Type: event.EffectExpired, Source: fx.Source, Data: fx.Kind}
		if b != nil {
			ev.X, ev.Y = b.SectorX, b.SectorY
		}
		if s.ecs.Remove(id) {
			removed++
			s.events.Push(ev)
		}
	}
	return removed
}
