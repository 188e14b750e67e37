// internal/system/ai.go
package system

import (
	"math"

	"github.com/sirupsen/logrus"

	"go-raycaster/internal/component"
	"go-raycaster/internal/config"
	"go-raycaster/internal/entity"
	"go-raycaster/internal/event"
	"go-raycaster/internal/types"
	"go-raycaster/internal/utils"
	"go-raycaster/pkg/grid"
	"go-raycaster/pkg/logger"
	"go-raycaster/pkg/trig"
)

// AISystem runs the enemy behaviour state machine. It only sets movement
// intent; MovementSystem moves the enemies afterwards.
type AISystem struct {
	ecs    *entity.ECS
	game   AIContext
	combat *CombatSystem
	events *event.Queue
	log    *logrus.Entry
}

func NewAISystem(ecs *entity.ECS, game AIContext, combat *CombatSystem, events *event.Queue) *AISystem {
	return &AISystem{
		ecs:    ecs,
		game:   game,
		combat: combat,
		events: events,
		log:    logger.For("ai"),
	}
}

// CacheDistances stores every enemy's distance to the player. It runs after
// the player moved and before any enemy decides.
func (s *AISystem) CacheDistances() {
	pb, ok := s.ecs.Bodies[s.game.PlayerID()]
	if !ok {
		return
	}
	for _, id := range s.ecs.IDsOf(component.KindEnemy) {
		ai, body := s.ecs.AIs[id], s.ecs.Bodies[id]
		if ai == nil || body == nil {
			continue
		}
		ai.DistanceToPlayer = math.Hypot(pb.X-body.X, pb.Y-body.Y)
	}
}

func (s *AISystem) Update(deltaTime float64) {
	for _, id := range s.ecs.IDsOf(component.KindEnemy) {
		s.step(id, deltaTime)
	}
}

func (s *AISystem) step(id types.EntityID, deltaTime float64) {
	ai, body, motion := s.ecs.AIs[id], s.ecs.Bodies[id], s.ecs.Motions[id]
	if ai == nil || body == nil || motion == nil {
		return
	}
	ai.StateTime += deltaTime
	ai.PathAge += deltaTime

	if ai.State != component.StateDying && ai.State != component.StateDead {
		ai.CanSeePlayer = s.seesPlayer(ai, body)
		if ai.CanSeePlayer {
			ai.SinceSeen = 0
		} else {
			ai.SinceSeen += deltaTime
		}
	}
	t := ai.Tuning

	switch ai.State {
	case component.StatePatrol:
		if ai.CanSeePlayer && ai.DistanceToPlayer < t.AlertRadius {
			motion.Stop()
			s.SetState(id, component.StateChase)
			return
		}
		s.patrol(ai, body, motion)

	case component.StateChase:
		if ai.CanSeePlayer && ai.DistanceToPlayer <= t.AttackRange {
			motion.Stop()
			s.SetState(id, component.StateAim)
			return
		}
		if ai.SinceSeen >= t.LoseSightTimeout {
			motion.Stop()
			s.SetState(id, component.StatePatrol)
			return
		}
		s.chase(ai, body, motion)

	case component.StateAim:
		motion.Thrust, motion.Side = 0, 0
		if !ai.CanSeePlayer {
			s.SetState(id, component.StateChase)
			return
		}
		s.face(body, motion)
		if ai.StateTime >= t.AimDelay {
			s.SetState(id, component.StateAttack)
			s.combat.EnemyFire(id)
		}

	case component.StateAttack:
		motion.Thrust, motion.Side, motion.Turn = 0, 0, 0
		if ai.StateTime < t.AttackCooldown {
			return
		}
		if ai.CanSeePlayer && ai.DistanceToPlayer <= t.AttackRange {
			s.SetState(id, component.StateAim)
		} else {
			s.SetState(id, component.StateChase)
		}

	case component.StateHurt:
		motion.Stop()
		if ai.StateTime < t.StaggerDuration {
			return
		}
		if h := s.ecs.Healths[id]; h != nil && h.Dead() {
			s.SetState(id, component.StateDying)
			return
		}
		s.SetState(id, ai.PreviousState)

	case component.StateDying:
		motion.Stop()
		if ai.StateTime >= t.DyingDuration {
			s.SetState(id, component.StateDead)
		}

	case component.StateDead:
		motion.Stop()
	}
}

// SetState moves the enemy into st and resets the state clock.
func (s *AISystem) SetState(id types.EntityID, st component.AIState) {
	changeState(s.ecs, s.events, s.log, id, st)
}

// changeState is shared with CombatSystem, which hurts and kills enemies.
// Entering Hurt remembers the state to resume; dying enemies stop blocking.
// A hit while already hurt restarts the stagger and keeps the state to resume.
func changeState(ecs *entity.ECS, events *event.Queue, log *logrus.Entry, id types.EntityID, st component.AIState) {
	ai := ecs.AIs[id]
	if ai == nil {
		return
	}
	if ai.State == st {
		if st == component.StateHurt {
			ai.StateTime = 0
			events.Push(event.Event{Type: event.EnemyStateChanged, Source: id, Data: st})
		}
		return
	}
	if st == component.StateHurt {
		ai.PreviousState = ai.State
	}
	if st == component.StateDying || st == component.StateDead {
		if b := ecs.Bodies[id]; b != nil {
			b.Flags &^= component.FlagBlocking
		}
	}
	log.WithFields(logrus.Fields{"entity": id, "from": ai.State, "to": st}).Debug("enemy state changed")
	ai.State = st
	ai.StateTime = 0
	ai.Path, ai.PathIndex = nil, 0
	events.Push(event.Event{Type: event.EnemyStateChanged, Source: id, Data: st})
}

func (s *AISystem) seesPlayer(ai *component.AI, body *component.Body) bool {
	pid := s.game.PlayerID()
	pb, ok := s.ecs.Bodies[pid]
	if !ok {
		return false
	}
	if h := s.ecs.Healths[pid]; h != nil && h.Dead() {
		return false
	}
	if ai.DistanceToPlayer > config.ViewDistance {
		return false
	}
	return s.game.Map().LineOfSight(body.X, body.Y, pb.X, pb.Y)
}

func (s *AISystem) patrol(ai *component.AI, body *component.Body, motion *component.Motion) {
	if len(ai.Patrol) == 0 {
		motion.Stop()
		return
	}
	wp := ai.Patrol[ai.PatrolIndex%len(ai.Patrol)]
	if s.seek(body, motion, wp) {
		ai.PatrolIndex = (ai.PatrolIndex + 1) % len(ai.Patrol)
	}
}

func (s *AISystem) chase(ai *component.AI, body *component.Body, motion *component.Motion) {
	pb, ok := s.ecs.Bodies[s.game.PlayerID()]
	if !ok {
		motion.Stop()
		return
	}
	if ai.Path == nil || ai.PathAge >= ai.Tuning.RepathInterval {
		s.repath(ai, body, pb)
	}
	if ai.NoPath || ai.PathIndex >= len(ai.Path) {
		// hold position until the player shows up again
		motion.Thrust, motion.Side = 0, 0
		if ai.CanSeePlayer {
			s.face(body, motion)
		} else {
			motion.Turn = 0
		}
		return
	}
	wp := ai.Path[ai.PathIndex]
	if sec := s.game.Map().At(wp.X, wp.Y); sec != nil && !sec.Passable() {
		// a door on the route: open it and wait
		s.game.OpenDoor(wp.X, wp.Y)
		motion.Thrust, motion.Side, motion.Turn = 0, 0, 0
		return
	}
	if s.seek(body, motion, wp) {
		ai.PathIndex++
	}
}

func (s *AISystem) repath(ai *component.AI, body, target *component.Body) {
	m := s.game.Map()
	sx, sy := m.Cell(body.X, body.Y)
	gx, gy := m.Cell(target.X, target.Y)
	path, ok := s.game.Pathfinder().FindPath(grid.Point{X: sx, Y: sy}, grid.Point{X: gx, Y: gy})
	ai.PathAge = 0
	ai.NoPath = !ok
	if !ok {
		ai.Path, ai.PathIndex = []grid.Point{}, 0
		return
	}
	ai.Path, ai.PathIndex = path.Points, 0
	if len(ai.Path) > 1 {
		ai.PathIndex = 1
	}
}

// seek steers towards the centre of cell wp and reports whether it is reached.
func (s *AISystem) seek(body *component.Body, motion *component.Motion, wp grid.Point) bool {
	tx, ty := s.game.Map().Center(wp.X, wp.Y)
	dx, dy := tx-body.X, ty-body.Y
	if math.Hypot(dx, dy) <= config.WaypointReach {
		motion.Thrust, motion.Side = 0, 0
		return true
	}
	s.steer(body, motion, trig.Heading(dx, dy))
	return false
}

// steer turns towards heading and only thrusts when roughly facing it.
func (s *AISystem) steer(body *component.Body, motion *component.Motion, heading float64) {
	delta := trig.Delta(body.Angle, heading)
	motion.Turn = utils.Clamp(delta/30, -1, 1)
	motion.Side = 0
	switch a := math.Abs(delta); {
	case a < 20:
		motion.Thrust = 1
	case a < 60:
		motion.Thrust = 0.4
	default:
		motion.Thrust = 0
	}
}

func (s *AISystem) face(body *component.Body, motion *component.Motion) {
	pb, ok := s.ecs.Bodies[s.game.PlayerID()]
	if !ok {
		return
	}
	delta := trig.Delta(body.Angle, trig.Heading(pb.X-body.X, pb.Y-body.Y))
	motion.Turn = utils.Clamp(delta/30, -1, 1)
}
