// internal/system/movement.go
package system

import (
	"math"

	"go-raycaster/internal/component"
	"go-raycaster/internal/entity"
	"go-raycaster/internal/types"
	"go-raycaster/internal/utils"
	"go-raycaster/pkg/trig"
)

// MovementSystem moves dynamic bodies: it integrates their velocities and
// resolves collision against the sector grid and blocking bodies.
type MovementSystem struct {
	ecs  *entity.ECS
	game MapContext
}

func NewMovementSystem(ecs *entity.ECS, game MapContext) *MovementSystem {
	return &MovementSystem{ecs: ecs, game: game}
}

// Update steps every dynamic body of the given kind.
func (s *MovementSystem) Update(kind component.Kind, deltaTime float64) {
	for _, id := range s.ecs.IDsOf(kind) {
		s.Step(id, deltaTime)
	}
}

// Step integrates one body. Rotation is never blocked. Translation is tried
// along X and then along Y; an axis whose move would put a corner of the body
// into an impassable sector or into a blocking body is dropped, which lets
// bodies slide along walls.
func (s *MovementSystem) Step(id types.EntityID, deltaTime float64) {
	body, ok := s.ecs.Bodies[id]
	if !ok {
		return
	}
	m, ok := s.ecs.Motions[id]
	if !ok {
		return
	}
	m.Moved, m.Blocked = false, false
	if deltaTime <= 0 {
		return
	}
	tables := s.game.Trig()

	turn := utils.Clamp(m.Turn, -1, 1)
	m.RotVelocity = utils.Approach(m.RotVelocity, turn*m.MaxRotVelocity, m.RotAcceleration*deltaTime)
	m.RotVelocity = utils.Clamp(m.RotVelocity, -m.MaxRotVelocity, m.MaxRotVelocity)
	body.Angle = trig.Normalize(body.Angle + m.RotVelocity*deltaTime)

	step := m.Acceleration * deltaTime
	m.Velocity = utils.Approach(m.Velocity, utils.Clamp(m.Thrust, -1, 1)*m.MaxVelocity, step)
	m.StrafeVelocity = utils.Approach(m.StrafeVelocity, utils.Clamp(m.Side, -1, 1)*m.MaxVelocity, step)
	clampVelocity(m)

	fx, fy := tables.Polar(m.Velocity*deltaTime, body.Angle)
	sx, sy := tables.Polar(m.StrafeVelocity*deltaTime, body.Angle+90)
	dx, dy := fx+sx, fy+sy
	if dx == 0 && dy == 0 {
		return
	}

	// split long moves so a body never skips over a thin sector
	maxStep := body.Radius / 2
	if maxStep <= 0 {
		maxStep = s.game.Map().CellSize / 8
	}
	n := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)) / maxStep))
	if n < 1 {
		n = 1
	}
	dx, dy = dx/float64(n), dy/float64(n)
	for i := 0; i < n; i++ {
		if s.tryMove(id, body, body.X+dx, body.Y) {
			body.X += dx
			m.Moved = true
		} else {
			m.Blocked = true
		}
		if s.tryMove(id, body, body.X, body.Y+dy) {
			body.Y += dy
			m.Moved = true
		} else {
			m.Blocked = true
		}
	}
	body.SectorX, body.SectorY = s.game.Map().Cell(body.X, body.Y)
}

// clampVelocity keeps the combined linear speed and the turn rate within
// their maxima.
func clampVelocity(m *component.Motion) {
	if m.MaxVelocity <= 0 {
		m.Velocity, m.StrafeVelocity = 0, 0
	} else if speed := math.Hypot(m.Velocity, m.StrafeVelocity); speed > m.MaxVelocity {
		k := m.MaxVelocity / speed
		m.Velocity *= k
		m.StrafeVelocity *= k
	}
	m.RotVelocity = utils.Clamp(m.RotVelocity, -m.MaxRotVelocity, m.MaxRotVelocity)
}

func (s *MovementSystem) tryMove(id types.EntityID, body *component.Body, nx, ny float64) bool {
	if s.game.Map().BoxBlocked(nx, ny, body.Radius) {
		return false
	}
	return !s.bodyBlocked(id, body, nx, ny)
}

// bodyBlocked reports whether moving to (nx, ny) would push the body into a
// blocking body. Bodies that already overlap may still move apart.
func (s *MovementSystem) bodyBlocked(id types.EntityID, body *component.Body, nx, ny float64) bool {
	for other, ob := range s.ecs.Bodies {
		if other == id || !ob.Has(component.FlagBlocking) {
			continue
		}
		reach := body.Radius + ob.Radius
		if math.Abs(nx-ob.X) >= reach || math.Abs(ny-ob.Y) >= reach {
			continue
		}
		before := math.Hypot(body.X-ob.X, body.Y-ob.Y)
		after := math.Hypot(nx-ob.X, ny-ob.Y)
		if after <= before {
			return true
		}
	}
	return false
}

// Overlaps reports whether the radius boxes of two bodies intersect.
func Overlaps(a, b *component.Body) bool {
	reach := a.Radius + b.Radius
	return math.Abs(a.X-b.X) < reach && math.Abs(a.Y-b.Y) < reach
}
