// internal/entity/ecs.go
package entity

import (
	"go-raycaster/internal/component"
	"go-raycaster/internal/types"
)

// ECS stores components in maps keyed by entity id. Iteration goes through
// IDs, which keeps creation order so ticks are deterministic.
type ECS struct {
	NextID  types.EntityID
	order   []types.EntityID
	Kinds   map[types.EntityID]component.Kind
	Bodies  map[types.EntityID]*component.Body
	Motions map[types.EntityID]*component.Motion
	Healths map[types.EntityID]*component.Health
	AIs     map[types.EntityID]*component.AI
	Players map[types.EntityID]*component.Player
	Items   map[types.EntityID]*component.Item
	Effects map[types.EntityID]*component.Effect
	Sprites map[types.EntityID]*component.Sprite
}

func NewECS() *ECS {
	return &ECS{
		NextID:  1,
		Kinds:   make(map[types.EntityID]component.Kind),
		Bodies:  make(map[types.EntityID]*component.Body),
		Motions: make(map[types.EntityID]*component.Motion),
		Healths: make(map[types.EntityID]*component.Health),
		AIs:     make(map[types.EntityID]*component.AI),
		Players: make(map[types.EntityID]*component.Player),
		Items:   make(map[types.EntityID]*component.Item),
		Effects: make(map[types.EntityID]*component.Effect),
		Sprites: make(map[types.EntityID]*component.Sprite),
	}
}

// NewEntity allocates an id of the given kind.
func (ecs *ECS) NewEntity(kind component.Kind) types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	ecs.order = append(ecs.order, id)
	ecs.Kinds[id] = kind
	return id
}

// Exists reports whether id is live.
func (ecs *ECS) Exists(id types.EntityID) bool {
	_, ok := ecs.Kinds[id]
	return ok
}

// Kind returns the kind of id, zero when it does not exist.
func (ecs *ECS) Kind(id types.EntityID) component.Kind { return ecs.Kinds[id] }

// Len returns the number of live entities.
func (ecs *ECS) Len() int { return len(ecs.order) }

// IDs returns live ids in creation order. The slice is a copy, so callers may
// remove entities while ranging over it.
func (ecs *ECS) IDs() []types.EntityID {
	out := make([]types.EntityID, len(ecs.order))
	copy(out, ecs.order)
	return out
}

// IDsOf returns live ids of one kind in creation order.
func (ecs *ECS) IDsOf(kind component.Kind) []types.EntityID {
	var out []types.EntityID
	for _, id := range ecs.order {
		if ecs.Kinds[id] == kind {
			out = append(out, id)
		}
	}
	return out
}

// Count returns the number of live entities of one kind.
func (ecs *ECS) Count(kind component.Kind) int {
	n := 0
	for _, id := range ecs.order {
		if ecs.Kinds[id] == kind {
			n++
		}
	}
	return n
}

// Remove deletes id and all its components. It reports whether id existed.
func (ecs *ECS) Remove(id types.EntityID) bool {
	if !ecs.Exists(id) {
		return false
	}
	delete(ecs.Kinds, id)
	delete(ecs.Bodies, id)
	delete(ecs.Motions, id)
	delete(ecs.Healths, id)
	delete(ecs.AIs, id)
	delete(ecs.Players, id)
	delete(ecs.Items, id)
	delete(ecs.Effects, id)
	delete(ecs.Sprites, id)
	for i, o := range ecs.order {
		if o == id {
			ecs.order = append(ecs.order[:i], ecs.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes every entity. Ids are not reused.
func (ecs *ECS) Clear() {
	for _, id := range ecs.IDs() {
		ecs.Remove(id)
	}
}
