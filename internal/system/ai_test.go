// internal/system/ai_test.go
package system

import (
	"testing"

	"go-raycaster/internal/component"
	"go-raycaster/internal/event"
	"go-raycaster/internal/sector"
	"go-raycaster/pkg/grid"
)

func TestEnemyNoticesVisiblePlayerInOneTick(t *testing.T) {
	g := newTestGame(t, "#######", "#.....#", "#######")
	g.addPlayer(5, 1, 180)
	enemy := g.addEnemy(1, 1)

	g.tick(0.016)

	ai := g.ecs.AIs[enemy]
	if ai.State != component.StateChase {
		t.Fatalf("state = %v, want chase", ai.State)
	}
	if !ai.CanSeePlayer {
		t.Error("CanSeePlayer = false with a clear corridor")
	}
	if n := countEvents(g.events.Drain(), event.EnemyStateChanged); n != 1 {
		t.Errorf("got %d state change events, want 1", n)
	}
}

func TestEnemyKeepsPatrollingBehindWall(t *testing.T) {
	g := newTestGame(t, "#######", "#..#..#", "#######")
	g.addPlayer(5, 1, 180)
	enemy := g.addEnemy(1, 1)

	for i := 0; i < 30; i++ {
		g.tick(0.05)
	}
	ai := g.ecs.AIs[enemy]
	if ai.State != component.StatePatrol {
		t.Errorf("state = %v, want patrol while a wall hides the player", ai.State)
	}
	if ai.CanSeePlayer {
		t.Error("CanSeePlayer = true through a wall")
	}
}

func TestEnemyFollowsPatrolRoute(t *testing.T) {
	g := newTestGame(t, "#######", "#..#..#", "#######")
	g.addPlayer(5, 1, 180)
	enemy := g.addEnemy(1, 1)
	ai := g.ecs.AIs[enemy]
	ai.Patrol = []grid.Point{{X: 2, Y: 1}, {X: 1, Y: 1}}

	visited := map[int]bool{}
	for i := 0; i < 400; i++ {
		g.tick(0.02)
		visited[g.ecs.Bodies[enemy].SectorX] = true
	}
	if !visited[1] || !visited[2] {
		t.Errorf("visited sectors %v, want both patrol cells", visited)
	}
	if ai.PatrolIndex < 0 || ai.PatrolIndex >= len(ai.Patrol) {
		t.Errorf("PatrolIndex %d out of range", ai.PatrolIndex)
	}
}

func TestEnemyDyingLastsFullDuration(t *testing.T) {
	g := newTestGame(t, "#######", "#..#..#", "#######")
	g.addPlayer(5, 1, 180)
	enemy := g.addEnemy(1, 1)
	ai := g.ecs.AIs[enemy]
	ai.Tuning.DyingDuration = 1.0

	g.combat.DamageEnemy(enemy, 1000)
	if ai.State != component.StateDying {
		t.Fatalf("state = %v, want dying right after a lethal hit", ai.State)
	}
	if g.ecs.Bodies[enemy].Has(component.FlagBlocking) {
		t.Error("dying enemy still blocks movement")
	}

	for i := 0; i < 3; i++ {
		g.tick(0.25)
		if ai.State != component.StateDying {
			t.Fatalf("tick %d: state = %v before the dying duration elapsed", i, ai.State)
		}
	}
	g.tick(0.25)
	if ai.State != component.StateDead || !ai.Removable() {
		t.Errorf("state = %v, want dead after 1s", ai.State)
	}
}

func TestEnemyHurtResumesPreviousState(t *testing.T) {
	g := newTestGame(t, "#######", "#..#..#", "#######")
	g.addPlayer(5, 1, 180)
	enemy := g.addEnemy(1, 1)
	ai := g.ecs.AIs[enemy]

	g.combat.DamageEnemy(enemy, 10)
	if ai.State != component.StateHurt || ai.PreviousState != component.StatePatrol {
		t.Fatalf("state = %v (previous %v), want hurt from patrol", ai.State, ai.PreviousState)
	}
	g.tick(0.2)
	if ai.State != component.StateHurt {
		t.Fatalf("state = %v, stagger ended early", ai.State)
	}
	g.tick(0.2)
	if ai.State != component.StatePatrol {
		t.Errorf("state = %v, want patrol after the stagger", ai.State)
	}
}

func TestEnemyRestaggersWhenHitAgain(t *testing.T) {
	g := newTestGame(t, "#######", "#..#..#", "#######")
	g.addPlayer(5, 1, 180)
	enemy := g.addEnemy(1, 1)
	ai := g.ecs.AIs[enemy]

	g.combat.DamageEnemy(enemy, 10)
	g.tick(0.2)
	g.events.Drain()
	g.combat.DamageEnemy(enemy, 10)
	if ai.StateTime != 0 || ai.PreviousState != component.StatePatrol {
		t.Fatalf("second hit: clock %v, previous %v; want a fresh stagger resuming patrol", ai.StateTime, ai.PreviousState)
	}
	if n := countEvents(g.events.Drain(), event.EnemyStateChanged); n != 1 {
		t.Errorf("got %d EnemyStateChanged events for the second hit, want 1", n)
	}
	g.tick(0.2)
	if ai.State != component.StateHurt {
		t.Fatalf("state = %v, the second stagger ended early", ai.State)
	}
	g.tick(0.2)
	if ai.State != component.StatePatrol {
		t.Errorf("state = %v, want patrol after the second stagger", ai.State)
	}
}

func TestEnemyAimsThenAttacks(t *testing.T) {
	g := newTestGame(t, "#######", "#.....#", "#######")
	g.addPlayer(3, 1, 180)
	enemy := g.addEnemy(1, 1)

	var events []event.Event
	seen := map[component.AIState]bool{}
	for i := 0; i < 20; i++ {
		g.tick(0.1)
		seen[g.ecs.AIs[enemy].State] = true
		events = append(events, g.events.Drain()...)
	}
	for _, st := range []component.AIState{component.StateAim, component.StateAttack} {
		if !seen[st] {
			t.Errorf("enemy never entered %v", st)
		}
	}
	if countEvents(events, event.EnemyAttack) == 0 {
		t.Error("no EnemyAttack event")
	}
	if len(g.effects) == 0 {
		t.Error("attack spawned no muzzle effect")
	}
}

func TestEnemyOpensDoorOnRoute(t *testing.T) {
	g := newTestGame(t, "#######", "#..D..#", "#######")
	g.addPlayer(5, 1, 180)
	enemy := g.addEnemy(2, 1)
	g.ai.SetState(enemy, component.StateChase)
	g.events.Drain()

	g.tick(0.016)
	if d := g.m.At(3, 1); d.Door != sector.DoorOpening {
		t.Fatalf("door state = %v, want opening", d.Door)
	}

	opened := false
	for i := 0; i < 60 && !opened; i++ {
		g.tick(0.05)
		for _, e := range g.events.Drain() {
			if e.Type == event.DoorChanged && e.Data == sector.DoorOpen {
				opened = true
			}
		}
	}
	if !opened {
		t.Error("door never finished opening")
	}
}

func TestEnemyWithoutPathGivesUp(t *testing.T) {
	g := newTestGame(t, "#######", "#.#...#", "#######")
	g.addPlayer(4, 1, 180)
	enemy := g.addEnemy(1, 1)
	g.ai.SetState(enemy, component.StateChase)
	start := *g.ecs.Bodies[enemy]

	g.tick(0.5)
	ai := g.ecs.AIs[enemy]
	if !ai.NoPath {
		t.Fatal("NoPath = false for a walled-in enemy")
	}
	if ai.State != component.StateChase {
		t.Fatalf("state = %v, want chase until sight is lost long enough", ai.State)
	}
	for i := 0; i < 6; i++ {
		g.tick(0.5)
	}
	if ai.State != component.StatePatrol {
		t.Errorf("state = %v, want patrol after losing sight", ai.State)
	}
	if b := g.ecs.Bodies[enemy]; b.X != start.X || b.Y != start.Y {
		t.Errorf("enemy moved from (%.1f,%.1f) to (%.1f,%.1f) without a path", start.X, start.Y, b.X, b.Y)
	}
}
