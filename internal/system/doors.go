// internal/system/doors.go
package system

import (
	"go-raycaster/internal/config"
	"go-raycaster/internal/entity"
	"go-raycaster/internal/event"
	"go-raycaster/internal/sector"
)

// DoorSystem animates door sectors. A door only becomes passable when fully
// open and refuses to close while a body stands in it.
type DoorSystem struct {
	ecs    *entity.ECS
	game   MapContext
	events *event.Queue
	doors  []*sector.Sector
}

func NewDoorSystem(ecs *entity.ECS, game MapContext, events *event.Queue) *DoorSystem {
	s := &DoorSystem{ecs: ecs, game: game, events: events}
	game.Map().Each(func(sec *sector.Sector) {
		if sec.Kind == sector.Door {
			s.doors = append(s.doors, sec)
		}
	})
	return s
}

// Doors returns the door sectors in row-major order.
func (s *DoorSystem) Doors() []*sector.Sector { return s.doors }

// Toggle opens a closed or closing door and closes an open or opening one.
// It reports whether (x, y) is a door whose state changed.
func (s *DoorSystem) Toggle(x, y int) bool {
	d := s.door(x, y)
	if d == nil {
		return false
	}
	switch d.Door {
	case sector.DoorClosed, sector.DoorClosing:
		s.set(d, sector.DoorOpening)
		return true
	default:
		if s.Occupied(d) {
			return false
		}
		s.set(d, sector.DoorClosing)
		return true
	}
}

// Open starts opening the door at (x, y). It reports whether (x, y) is a door
// that is open or on its way.
func (s *DoorSystem) Open(x, y int) bool {
	d := s.door(x, y)
	if d == nil {
		return false
	}
	if d.Door == sector.DoorClosed || d.Door == sector.DoorClosing {
		s.set(d, sector.DoorOpening)
	}
	return true
}

func (s *DoorSystem) Update(deltaTime float64) {
	for _, d := range s.doors {
		switch d.Door {
		case sector.DoorOpening:
			d.OpenFraction += config.DoorSpeed * deltaTime
			if d.OpenFraction >= 1 {
				d.OpenFraction = 1
				s.set(d, sector.DoorOpen)
			}
		case sector.DoorOpen:
			d.OpenTimer += deltaTime
			if d.OpenTimer >= config.DoorStayOpen && !s.Occupied(d) {
				s.set(d, sector.DoorClosing)
			}
		case sector.DoorClosing:
			d.OpenFraction -= config.DoorSpeed * deltaTime
			if d.OpenFraction <= 0 {
				d.OpenFraction = 0
				s.set(d, sector.DoorClosed)
			}
		}
	}
}

// Occupied reports whether any dynamic body overlaps the door sector.
func (s *DoorSystem) Occupied(d *sector.Sector) bool {
	cs := s.game.Map().CellSize
	x0, y0 := float64(d.X)*cs, float64(d.Y)*cs
	for id := range s.ecs.Motions {
		b, ok := s.ecs.Bodies[id]
		if !ok {
			continue
		}
		if b.X+b.Radius > x0 && b.X-b.Radius < x0+cs &&
			b.Y+b.Radius > y0 && b.Y-b.Radius < y0+cs {
			return true
		}
	}
	return false
}

func (s *DoorSystem) door(x, y int) *sector.Sector {
	d := s.game.Map().At(x, y)
	if d == nil || d.Kind != sector.Door {
		return nil
	}
	return d
}

func (s *DoorSystem) set(d *sector.Sector, state sector.DoorState) {
	if d.Door == state {
		return
	}
	d.Door = state
	d.OpenTimer = 0
	s.events.Push(event.Event{Type: event.DoorChanged, X: d.X, Y: d.Y, Data: state})
}
