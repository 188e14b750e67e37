// internal/component/enemy.go
package component

import "go-raycaster/pkg/grid"

// AIState is the behaviour state of an enemy.
type AIState uint8

const (
	StatePatrol AIState = iota
	StateChase
	StateAim
	StateAttack
	StateHurt
	StateDying
	StateDead
)

func (s AIState) String() string {
	switch s {
	case StatePatrol:
		return "patrol"
	case StateChase:
		return "chase"
	case StateAim:
		return "aim"
	case StateAttack:
		return "attack"
	case StateHurt:
		return "hurt"
	case StateDying:
		return "dying"
	case StateDead:
		return "dead"
	}
	return "unknown"
}

// Tuning holds the per-definition behaviour constants of an enemy.
type Tuning struct {
	AlertRadius      float64
	AttackRange      float64
	AimDelay         float64 // seconds
	AttackCooldown   float64
	StaggerDuration  float64
	DyingDuration    float64
	RepathInterval   float64
	LoseSightTimeout float64
	Damage           int
	Accuracy         float64 // hit chance at point blank, [0,1]
}

// AI is the enemy behaviour component.
type AI struct {
	DefID         string
	State         AIState
	PreviousState AIState // state to resume after Hurt
	StateTime     float64 // seconds spent in State

	DistanceToPlayer float64 // cached once per tick
	CanSeePlayer     bool
	SinceSeen        float64 // seconds since the player was last visible

	Path      []grid.Point
	PathIndex int
	PathAge   float64 // seconds since the path was computed
	NoPath    bool

	Patrol      []grid.Point
	PatrolIndex int

	Tuning Tuning
}

// Removable reports whether the enemy finished dying.
func (a *AI) Removable() bool { return a.State == StateDead }
