// internal/interfaces/world.go
package interfaces

import (
	"go-raycaster/internal/camera"
	"go-raycaster/internal/event"
	"go-raycaster/internal/types"
	"go-raycaster/internal/world"
)

// World is the simulation the scene machine drives.
type World interface {
	camera.Source
	Update(deltaTime float64, actions types.Actions) error
	Events() []event.Event
	Moving() bool
	Status() world.PlayerSnapshot
	Snapshot() world.Snapshot
	NextLevel() string
	Teardown()
}

var _ World = (*world.World)(nil)
