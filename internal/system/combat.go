// internal/system/combat.go
package system

import (
	"math"

	"github.com/sirupsen/logrus"

	"go-raycaster/internal/component"
	"go-raycaster/internal/config"
	"go-raycaster/internal/defs"
	"go-raycaster/internal/entity"
	"go-raycaster/internal/event"
	"go-raycaster/internal/types"
	"go-raycaster/internal/utils"
	"go-raycaster/pkg/logger"
	"go-raycaster/pkg/trig"
)

// Effect kinds spawned by combat.
const (
	EffectImpact = "impact"
	EffectMuzzle = "muzzle"
	EffectBlood  = "blood"
)

// CombatSystem resolves the player's hitscan weapon and enemy shots.
type CombatSystem struct {
	ecs     *entity.ECS
	game    CombatContext
	events  *event.Queue
	rng     *utils.PRNGService
	enemies defs.EnemyLibrary
	log     *logrus.Entry
}

func NewCombatSystem(ecs *entity.ECS, game CombatContext, events *event.Queue, rng *utils.PRNGService, enemies defs.EnemyLibrary) *CombatSystem {
	return &CombatSystem{
		ecs:     ecs,
		game:    game,
		events:  events,
		rng:     rng,
		enemies: enemies,
		log:     logger.For("combat"),
	}
}

// Update cools down the player's weapon.
func (s *CombatSystem) Update(deltaTime float64) {
	for _, p := range s.ecs.Players {
		if p.FireCooldown > 0 {
			p.FireCooldown = math.Max(0, p.FireCooldown-deltaTime)
		}
	}
}

// PlayerFire shoots along the player's view. The nearest live enemy inside
// the aim cone and in front of the first wall takes the hit; otherwise the
// wall does. It reports whether a shot was fired.
func (s *CombatSystem) PlayerFire() bool {
	pid := s.game.PlayerID()
	pb, p := s.ecs.Bodies[pid], s.ecs.Players[pid]
	if pb == nil || p == nil || p.FireCooldown > 0 || p.Ammo <= 0 {
		return false
	}
	if h := s.ecs.Healths[pid]; h != nil && h.Dead() {
		return false
	}
	p.Ammo--
	p.FireCooldown = config.PlayerFireCooldown
	s.events.Push(event.Event{Type: event.WeaponFired, Source: pid, Data: p.Ammo})

	m := s.game.Map()
	dirX, dirY := s.game.Trig().Polar(1, pb.Angle)
	wallDist := config.ViewDistance
	hit, wallHit := m.Cast(pb.X, pb.Y, dirX, dirY, config.ViewDistance, config.MaxRaySteps)
	if wallHit {
		wallDist = hit.Distance
	}

	target, targetDist := types.EntityID(0), math.Inf(1)
	for _, id := range s.ecs.IDsOf(component.KindEnemy) {
		ai, eb := s.ecs.AIs[id], s.ecs.Bodies[id]
		if ai == nil || eb == nil || ai.State == component.StateDying || ai.State == component.StateDead {
			continue
		}
		dx, dy := eb.X-pb.X, eb.Y-pb.Y
		dist := math.Hypot(dx, dy)
		if dist >= wallDist || dist >= targetDist {
			continue
		}
		// widen the cone for close targets so their whole body counts
		cone := config.PlayerAimCone
		if dist > 0 {
			cone += math.Atan(eb.Radius/dist) * 180 / math.Pi
		}
		if math.Abs(trig.Delta(pb.Angle, trig.Heading(dx, dy))) > cone {
			continue
		}
		if !m.LineOfSight(pb.X, pb.Y, eb.X, eb.Y) {
			continue
		}
		target, targetDist = id, dist
	}

	if target != 0 {
		eb := s.ecs.Bodies[target]
		s.DamageEnemy(target, config.PlayerShotDamage)
		s.addEffect(pid, EffectBlood, eb.X, eb.Y)
		return true
	}
	if wallHit && !hit.Outside {
		// pull the puff off the wall so it lies inside the open sector
		s.addEffect(pid, EffectImpact, hit.X-dirX, hit.Y-dirY)
	}
	return true
}

// DamageEnemy applies damage. A surviving enemy staggers; a killed one starts
// dying, credits the player and may drop an item.
func (s *CombatSystem) DamageEnemy(id types.EntityID, amount int) {
	ai, h := s.ecs.AIs[id], s.ecs.Healths[id]
	if ai == nil || h == nil || ai.State == component.StateDying || ai.State == component.StateDead {
		return
	}
	if h.Damage(amount) == 0 {
		return
	}
	if !h.Dead() {
		changeState(s.ecs, s.events, s.log, id, component.StateHurt)
		return
	}
	changeState(s.ecs, s.events, s.log, id, component.StateDying)
	s.events.Push(event.Event{Type: event.EnemyKilled, Source: id, Data: ai.DefID})
	if p := s.ecs.Players[s.game.PlayerID()]; p != nil {
		p.Kills++
	}
	s.drop(id, ai.DefID)
}

func (s *CombatSystem) drop(id types.EntityID, defID string) {
	b := s.ecs.Bodies[id]
	if b == nil {
		return
	}
	entry, ok := s.rng.ChooseWeighted(s.enemies[defID].DropTable())
	if !ok || entry.Item == "" {
		return
	}
	if _, err := s.game.SpawnItem(entry.Item, entry.Amount, b.X, b.Y); err != nil {
		s.log.WithError(err).Warn("drop refused")
	}
}

// EnemyFire resolves one shot of enemy id at the player. The hit chance is
// the enemy's accuracy scaled down with distance.
func (s *CombatSystem) EnemyFire(id types.EntityID) bool {
	ai, eb := s.ecs.AIs[id], s.ecs.Bodies[id]
	pid := s.game.PlayerID()
	pb, ph := s.ecs.Bodies[pid], s.ecs.Healths[pid]
	if ai == nil || eb == nil || pb == nil || ph == nil || ph.Dead() {
		return false
	}
	t := ai.Tuning
	chance := t.Accuracy
	if t.AttackRange > 0 {
		chance *= utils.Clamp(1-ai.DistanceToPlayer/(2*t.AttackRange), 0.05, 1)
	}
	hit := s.rng.Chance(chance)
	s.addEffect(id, EffectMuzzle, eb.X, eb.Y)
	s.events.Push(event.Event{Type: event.EnemyAttack, Source: id, Data: hit})
	if !hit {
		return false
	}
	if taken := ph.Damage(t.Damage); taken > 0 {
		s.events.Push(event.Event{Type: event.PlayerHurt, Source: id, Data: taken})
	}
	return true
}

func (s *CombatSystem) addEffect(source types.EntityID, kind string, x, y float64) {
	if _, err := s.game.AddEffect(source, kind, x, y); err != nil {
		s.log.WithError(err).WithField("kind", kind).Warn("effect refused")
	}
}
