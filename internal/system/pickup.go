// internal/system/pickup.go
package system

import (
	"go-raycaster/internal/component"
	"go-raycaster/internal/entity"
	"go-raycaster/internal/event"
	"go-raycaster/internal/types"
)

// PickupSystem collects items the player overlaps.
type PickupSystem struct {
	ecs    *entity.ECS
	events *event.Queue
}

func NewPickupSystem(ecs *entity.ECS, events *event.Queue) *PickupSystem {
	return &PickupSystem{ecs: ecs, events: events}
}

// Update applies and removes every item the player touches. Health is left
// on the floor while the player is at full health.
func (s *PickupSystem) Update(player types.EntityID) {
	pb, p := s.ecs.Bodies[player], s.ecs.Players[player]
	if pb == nil || p == nil {
		return
	}
	h := s.ecs.Healths[player]
	if h != nil && h.Dead() {
		return
	}
	for _, id := range s.ecs.IDsOf(component.KindItem) {
		ib, it := s.ecs.Bodies[id], s.ecs.Items[id]
		if ib == nil || it == nil || !Overlaps(pb, ib) {
			continue
		}
		switch it.Kind {
		case component.ItemHealth:
			if h == nil || h.Heal(it.Amount) == 0 {
				continue
			}
		case component.ItemAmmo:
			p.Ammo += it.Amount
		case component.ItemKey:
			p.Keys++
		}
		s.events.Push(event.Event{Type: event.ItemPicked, Source: id, X: ib.SectorX, Y: ib.SectorY, Data: it.Kind})
		s.ecs.Remove(id)
	}
}
