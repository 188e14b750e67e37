// internal/system/system_test.go
package system

import (
	"testing"

	"go-raycaster/internal/component"
	"go-raycaster/internal/config"
	"go-raycaster/internal/defs"
	"go-raycaster/internal/entity"
	"go-raycaster/internal/event"
	"go-raycaster/internal/sector"
	"go-raycaster/internal/types"
	"go-raycaster/internal/utils"
	"go-raycaster/pkg/grid"
	"go-raycaster/pkg/logger"
	"go-raycaster/pkg/trig"
)

func init() { logger.Silence() }

// testGame is a minimal world for driving systems directly.
type testGame struct {
	m       *sector.Map
	tables  *trig.Tables
	pf      *grid.Pathfinder
	ecs     *entity.ECS
	events  *event.Queue
	player  types.EntityID
	doors   *DoorSystem
	move    *MovementSystem
	combat  *CombatSystem
	ai      *AISystem
	effects []string
}

func newTestGame(t *testing.T, cells ...string) *testGame {
	t.Helper()
	lvl := &defs.Level{Name: t.Name(), CellSize: config.CellSize, Cells: cells}
	m, err := lvl.BuildMap()
	if err != nil {
		t.Fatalf("BuildMap: %v", err)
	}
	g := &testGame{
		m:      m,
		tables: trig.Default(),
		pf:     grid.NewPathfinder(m.PathGrid(), true),
		ecs:    entity.NewECS(),
		events: event.NewQueue(256),
	}
	g.doors = NewDoorSystem(g.ecs, g, g.events)
	g.move = NewMovementSystem(g.ecs, g)
	g.combat = NewCombatSystem(g.ecs, g, g.events, utils.NewPRNGService(1), defs.DefaultEnemies())
	g.ai = NewAISystem(g.ecs, g, g.combat, g.events)
	return g
}

func (g *testGame) Map() *sector.Map             { return g.m }
func (g *testGame) Trig() *trig.Tables           { return g.tables }
func (g *testGame) PlayerID() types.EntityID     { return g.player }
func (g *testGame) Pathfinder() *grid.Pathfinder { return g.pf }
func (g *testGame) OpenDoor(x, y int) bool       { return g.doors.Open(x, y) }

func (g *testGame) AddEffect(source types.EntityID, kind string, x, y float64) (string, error) {
	g.effects = append(g.effects, kind)
	return kind, nil
}

func (g *testGame) SpawnItem(kind component.ItemKind, amount int, x, y float64) (types.EntityID, error) {
	return g.addItem(kind, amount, x, y), nil
}

func (g *testGame) body(cx, cy int, radius float64, flags component.Flags) *component.Body {
	x, y := g.m.Center(cx, cy)
	return &component.Body{X: x, Y: y, Radius: radius, SectorX: cx, SectorY: cy, Flags: flags}
}

func (g *testGame) addPlayer(cx, cy int, angle float64) types.EntityID {
	id := g.ecs.NewEntity(component.KindPlayer)
	b := g.body(cx, cy, config.PlayerRadius, component.FlagBlocking)
	b.Angle = angle
	g.ecs.Bodies[id] = b
	g.ecs.Motions[id] = &component.Motion{
		MaxVelocity:     config.PlayerMaxVelocity,
		Acceleration:    config.PlayerAcceleration,
		MaxRotVelocity:  config.PlayerMaxTurn,
		RotAcceleration: config.PlayerTurnAccel,
	}
	g.ecs.Healths[id] = &component.Health{Value: config.PlayerHealth, Max: config.PlayerHealth}
	g.ecs.Players[id] = &component.Player{Ammo: config.PlayerStartAmmo}
	g.player = id
	return id
}

func (g *testGame) addEnemy(cx, cy int) types.EntityID {
	def := defs.DefaultEnemies()[defs.DefaultEnemyID]
	id := g.ecs.NewEntity(component.KindEnemy)
	g.ecs.Bodies[id] = g.body(cx, cy, config.EnemyRadius, component.FlagBlocking|component.FlagVisible)
	g.ecs.Motions[id] = &component.Motion{
		MaxVelocity:     def.Speed,
		Acceleration:    def.Speed * 4,
		MaxRotVelocity:  def.TurnSpeed,
		RotAcceleration: def.TurnSpeed * 4,
	}
	g.ecs.Healths[id] = &component.Health{Value: def.Health, Max: def.Health}
	g.ecs.AIs[id] = &component.AI{DefID: def.ID, Tuning: def.Tuning(g.m.CellSize)}
	return id
}

func (g *testGame) addItem(kind component.ItemKind, amount int, x, y float64) types.EntityID {
	id := g.ecs.NewEntity(component.KindItem)
	cx, cy := g.m.Cell(x, y)
	g.ecs.Bodies[id] = &component.Body{X: x, Y: y, Radius: config.CellSize / 4, SectorX: cx, SectorY: cy, Flags: component.FlagPickup}
	g.ecs.Items[id] = &component.Item{Kind: kind, Amount: amount}
	return id
}

func (g *testGame) tick(dt float64) {
	g.ai.CacheDistances()
	g.ai.Update(dt)
	g.move.Update(component.KindEnemy, dt)
	g.doors.Update(dt)
}

func countEvents(events []event.Event, typ event.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}
