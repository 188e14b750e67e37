// internal/system/context.go
package system

import (
	"go-raycaster/internal/component"
	"go-raycaster/internal/sector"
	"go-raycaster/internal/types"
	"go-raycaster/pkg/grid"
	"go-raycaster/pkg/trig"
)

// MapContext is what every system needs from the world. The world implements
// these interfaces so this package never imports it.
type MapContext interface {
	Map() *sector.Map
	Trig() *trig.Tables
}

// AIContext is what AISystem requires from the world.
type AIContext interface {
	MapContext
	PlayerID() types.EntityID
	Pathfinder() *grid.Pathfinder
	OpenDoor(x, y int) bool
}

// CombatContext is what CombatSystem requires from the world.
type CombatContext interface {
	MapContext
	PlayerID() types.EntityID
	AddEffect(source types.EntityID, kind string, x, y float64) (string, error)
	SpawnItem(kind component.ItemKind, amount int, x, y float64) (types.EntityID, error)
}
