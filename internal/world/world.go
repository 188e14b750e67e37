// internal/world/world.go
package world

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-raycaster/internal/component"
	"go-raycaster/internal/config"
	"go-raycaster/internal/defs"
	"go-raycaster/internal/entity"
	"go-raycaster/internal/event"
	"go-raycaster/internal/sector"
	"go-raycaster/internal/system"
	"go-raycaster/internal/types"
	"go-raycaster/internal/utils"
	"go-raycaster/pkg/grid"
	"go-raycaster/pkg/logger"
	"go-raycaster/pkg/trig"
)

var (
	ErrOutOfBounds   = errors.New("world: position outside the map")
	ErrBlocked       = errors.New("world: position inside an impassable sector")
	ErrReentrant     = errors.New("world: Update called during a tick")
	ErrTornDown      = errors.New("world: torn down")
	ErrCapacity      = errors.New("world: capacity reached")
	ErrUnknownEntity = errors.New("world: unknown entity")
)

// Options tune world construction. Zero values pick the defaults.
type Options struct {
	Enemies defs.EnemyLibrary
	Tables  *trig.Tables
	Seed    int64
	// Diagonal enables 8-connected enemy pathfinding.
	Diagonal *bool
}

// World owns the sector grid and every body of a level and advances them
// one tick at a time. It is not safe for concurrent use.
type World struct {
	ID    string
	Level *defs.Level
	ECS   *entity.ECS

	sectors    *sector.Map
	tables     *trig.Tables
	pathfinder *grid.Pathfinder
	events     *event.Queue
	rng        *utils.PRNGService
	enemies    defs.EnemyLibrary

	MovementSystem *system.MovementSystem
	AISystem       *system.AISystem
	CombatSystem   *system.CombatSystem
	DoorSystem     *system.DoorSystem
	EffectSystem   *system.EffectSystem
	PickupSystem   *system.PickupSystem

	player     types.EntityID
	elapsed    float64
	ticks      uint64
	completed  bool
	playerDead bool
	updating   bool
	tornDown   bool

	log *logrus.Entry
}

// New builds a world from a level. The level is validated first; on any
// configuration error nothing is constructed and every problem is returned.
func New(level *defs.Level, opts Options) (*World, error) {
	if level == nil {
		return nil, errors.New("world: nil level")
	}
	enemies := opts.Enemies
	if enemies == nil {
		enemies = defs.DefaultEnemies()
	}
	if err := level.Validate(enemies); err != nil {
		return nil, err
	}
	m, err := level.BuildMap()
	if err != nil {
		return nil, err
	}
	tables := opts.Tables
	if tables == nil {
		tables = trig.Default()
	}
	diagonal := true
	if opts.Diagonal != nil {
		diagonal = *opts.Diagonal
	}

	id := uuid.NewString()
	ecs := entity.NewECS()
	events := event.NewQueue(config.MaxBodies * 4)
	w := &World{
		ID:         id,
		Level:      level,
		ECS:        ecs,
		sectors:    m,
		tables:     tables,
		pathfinder: grid.NewPathfinder(m.PathGrid(), diagonal),
		events:     events,
		rng:        utils.NewPRNGService(opts.Seed),
		enemies:    enemies,
		log:        logger.For("world").WithFields(logrus.Fields{"level_id": id, "level": level.Name}),
	}
	w.MovementSystem = system.NewMovementSystem(ecs, w)
	w.CombatSystem = system.NewCombatSystem(ecs, w, events, w.rng, enemies)
	w.AISystem = system.NewAISystem(ecs, w, w.CombatSystem, events)
	w.DoorSystem = system.NewDoorSystem(ecs, w, events)
	w.EffectSystem = system.NewEffectSystem(ecs, events)
	w.PickupSystem = system.NewPickupSystem(ecs, events)

	if err := w.spawnAll(level.Spawns()); err != nil {
		return nil, fmt.Errorf("level %q: %w", level.Name, err)
	}
	w.log.WithFields(logrus.Fields{
		"width":   m.Width,
		"height":  m.Height,
		"enemies": ecs.Count(component.KindEnemy),
		"seed":    w.rng.Seed(),
	}).Info("world created")
	return w, nil
}

// Load reads the level file at path and builds a world from it.
func Load(path string, opts Options) (*World, error) {
	level, err := defs.LoadLevel(path)
	if err != nil {
		return nil, err
	}
	w, err := New(level, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build level %s: %w", path, err)
	}
	return w, nil
}

// NextLevel returns the path of the level that follows this one, or "".
func (w *World) NextLevel() string { return w.Level.Next }

// Map returns the sector grid.
func (w *World) Map() *sector.Map { return w.sectors }

// Trig returns the shared trig tables.
func (w *World) Trig() *trig.Tables { return w.tables }

// PlayerID returns the player's entity id.
func (w *World) PlayerID() types.EntityID { return w.player }

// Pathfinder returns the enemy pathfinder.
func (w *World) Pathfinder() *grid.Pathfinder { return w.pathfinder }

// Elapsed returns the simulated seconds since construction.
func (w *World) Elapsed() float64 { return w.elapsed }

// Ticks returns the number of completed updates.
func (w *World) Ticks() uint64 { return w.ticks }

// Completed reports whether the player reached an exit.
func (w *World) Completed() bool { return w.completed }

// PlayerDead reports whether the player died.
func (w *World) PlayerDead() bool { return w.playerDead }

// TornDown reports whether Teardown ran.
func (w *World) TornDown() bool { return w.tornDown }

// Events drains the notifications raised since the last call.
func (w *World) Events() []event.Event { return w.events.Drain() }

// Update advances the world by deltaTime seconds. Steps run in a fixed order:
// player input, player movement, enemy distance caching, enemy behaviour and
// movement, doors, pickups, effects, dead enemy removal, then the exit and
// death checks. The simulation step is clamped to config.MaxDeltaTime; effect
// ages and Elapsed advance by the full deltaTime.
func (w *World) Update(deltaTime float64, actions types.Actions) error {
	if w.tornDown {
		return ErrTornDown
	}
	if w.updating {
		return ErrReentrant
	}
	w.updating = true
	defer func() { w.updating = false }()

	if deltaTime <= 0 {
		return nil
	}
	step := deltaTime
	if step > config.MaxDeltaTime {
		step = config.MaxDeltaTime
	}
	w.elapsed += deltaTime
	w.ticks++

	w.CombatSystem.Update(step)
	w.applyInput(step, actions)
	w.MovementSystem.Step(w.player, step)
	w.AISystem.CacheDistances()
	w.AISystem.Update(step)
	w.MovementSystem.Update(component.KindEnemy, step)
	w.DoorSystem.Update(step)
	w.PickupSystem.Update(w.player)
	w.EffectSystem.Update(deltaTime)
	w.removeDead()
	w.checkExit()
	w.checkDeath()
	return nil
}

func (w *World) applyInput(deltaTime float64, a types.Actions) {
	m, p := w.ECS.Motions[w.player], w.ECS.Players[w.player]
	if m == nil || p == nil {
		return
	}
	if w.playerDead {
		m.Thrust, m.Side, m.Turn = 0, 0, 0
		return
	}

	m.Thrust, m.Side, m.Turn = 0, 0, 0
	if a.Forward {
		m.Thrust++
	}
	if a.Backward {
		m.Thrust--
	}
	var lr float64
	if a.Right {
		lr++
	}
	if a.Left {
		lr--
	}
	if a.Strafe {
		m.Side = lr
	} else {
		m.Turn = lr
	}

	p.Crouching = a.Crouch
	eye := config.EyeHeight
	if p.Crouching {
		eye = config.CrouchHeight
	}
	p.EyeHeight = utils.Approach(p.EyeHeight, eye, config.EyeHeight*4*deltaTime)
	if a.LookUp {
		p.Pitch += config.PitchSpeed * deltaTime
	}
	if a.LookDown {
		p.Pitch -= config.PitchSpeed * deltaTime
	}
	p.Pitch = utils.Clamp(p.Pitch, -config.MaxPitch, config.MaxPitch)

	if a.Open {
		w.UseDoor()
	}
	if a.Fire {
		w.CombatSystem.PlayerFire()
	}
}

// UseDoor toggles the door in the sector the player faces. It reports
// whether a door changed state.
func (w *World) UseDoor() bool {
	b := w.ECS.Bodies[w.player]
	if b == nil {
		return false
	}
	dx, dy := w.tables.Polar(w.sectors.CellSize*0.75, b.Angle)
	x, y := w.sectors.Cell(b.X+dx, b.Y+dy)
	return w.DoorSystem.Toggle(x, y)
}

// OpenDoor starts opening the door at (x, y). Enemies use it on their routes.
func (w *World) OpenDoor(x, y int) bool { return w.DoorSystem.Open(x, y) }

// Place moves a body to a world position. Positions outside the map or in an
// impassable sector are refused and the body keeps its previous place.
func (w *World) Place(id types.EntityID, x, y float64) error {
	b, ok := w.ECS.Bodies[id]
	if !ok {
		return ErrUnknownEntity
	}
	s := w.sectors.Locate(x, y)
	if s == nil {
		return ErrOutOfBounds
	}
	if !s.Passable() {
		return ErrBlocked
	}
	b.X, b.Y = x, y
	b.SectorX, b.SectorY = s.X, s.Y
	return nil
}

func (w *World) removeDead() {
	for _, id := range w.ECS.IDsOf(component.KindEnemy) {
		if ai := w.ECS.AIs[id]; ai != nil && ai.Removable() {
			w.ECS.Remove(id)
		}
	}
}

func (w *World) checkExit() {
	if w.completed || w.playerDead {
		return
	}
	b := w.ECS.Bodies[w.player]
	if b == nil {
		return
	}
	if s := w.sectors.At(b.SectorX, b.SectorY); s != nil && s.Exit {
		w.completed = true
		w.events.Push(event.Event{Type: event.LevelComplete, Source: w.player, X: s.X, Y: s.Y})
		w.log.WithField("elapsed", w.elapsed).Info("level complete")
	}
}

func (w *World) checkDeath() {
	if w.playerDead {
		return
	}
	if h := w.ECS.Healths[w.player]; h != nil && h.Dead() {
		w.playerDead = true
		if m := w.ECS.Motions[w.player]; m != nil {
			m.Stop()
		}
		w.events.Push(event.Event{Type: event.PlayerDied, Source: w.player})
		w.log.WithField("elapsed", w.elapsed).Info("player died")
	}
}

// Teardown releases every body. It is idempotent; afterwards Update returns
// ErrTornDown.
func (w *World) Teardown() {
	if w.tornDown {
		return
	}
	w.tornDown = true
	w.ECS.Clear()
	w.events.Drain()
	w.log.Info("world torn down")
}
