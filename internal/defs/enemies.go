// internal/defs/enemies.go
package defs

import (
	"go-raycaster/internal/component"
	"go-raycaster/internal/config"
)

// EnemyDefinition holds all the static data for a specific type of enemy.
// Zero durations and radii fall back to the config defaults.
type EnemyDefinition struct {
	ID              string  `json:"id" yaml:"id"`
	Name            string  `json:"name" yaml:"name"`
	Health          int     `json:"health" yaml:"health"`
	Speed           float64 `json:"speed" yaml:"speed"`                       // units per second
	TurnSpeed       float64 `json:"turn_speed" yaml:"turn_speed"`             // degrees per second
	AlertRadius     float64 `json:"alert_radius" yaml:"alert_radius"`         // cells
	AttackRange     float64 `json:"attack_range" yaml:"attack_range"`         // cells
	AimDelay        float64 `json:"aim_delay" yaml:"aim_delay"`               // seconds
	AttackCooldown  float64 `json:"attack_cooldown" yaml:"attack_cooldown"`   // seconds
	StaggerDuration float64 `json:"stagger_duration" yaml:"stagger_duration"` // seconds
	DyingDuration   float64 `json:"dying_duration" yaml:"dying_duration"`     // seconds
	Damage          int     `json:"damage" yaml:"damage"`
	Accuracy        float64 `json:"accuracy" yaml:"accuracy"`
	Texture         int     `json:"texture" yaml:"texture"`

	Drops []DropEntry `json:"drops,omitempty" yaml:"drops,omitempty"`
}

// EnemyLibrary maps definition ids to definitions.
type EnemyLibrary map[string]EnemyDefinition

// DefaultEnemyID is used by 'e' cells and spawns without a definition.
const DefaultEnemyID = "guard"

// DefaultEnemies returns the built-in library.
func DefaultEnemies() EnemyLibrary {
	return EnemyLibrary{
		DefaultEnemyID: {
			ID:        DefaultEnemyID,
			Name:      "Guard",
			Health:    100,
			Speed:     96,
			TurnSpeed: 180,
			Damage:    config.EnemyDamage,
			Accuracy:  0.8,
			Texture:   1,
		},
		"officer": {
			ID:          "officer",
			Name:        "Officer",
			Health:      150,
			Speed:       128,
			TurnSpeed:   240,
			AlertRadius: 10,
			AimDelay:    0.4,
			Damage:      12,
			Accuracy:    0.9,
			Texture:     2,
		},
	}
}

// Merge returns a library with other's definitions overriding lib's.
func (lib EnemyLibrary) Merge(other EnemyLibrary) EnemyLibrary {
	out := make(EnemyLibrary, len(lib)+len(other))
	for k, v := range lib {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Tuning converts the definition into behaviour constants in world units.
func (d EnemyDefinition) Tuning(cellSize float64) component.Tuning {
	t := component.Tuning{
		AlertRadius:      config.AlertRadius,
		AttackRange:      config.AttackRange,
		AimDelay:         orDefault(d.AimDelay, config.AimDelay),
		AttackCooldown:   orDefault(d.AttackCooldown, config.AttackCooldown),
		StaggerDuration:  orDefault(d.StaggerDuration, config.StaggerDuration),
		DyingDuration:    orDefault(d.DyingDuration, config.DyingDuration),
		RepathInterval:   config.RepathInterval,
		LoseSightTimeout: config.LoseSightTimeout,
		Damage:           d.Damage,
		Accuracy:         orDefault(d.Accuracy, 1),
	}
	if d.AlertRadius > 0 {
		t.AlertRadius = d.AlertRadius * cellSize
	}
	if d.AttackRange > 0 {
		t.AttackRange = d.AttackRange * cellSize
	}
	if t.Damage <= 0 {
		t.Damage = config.EnemyDamage
	}
	return t
}

// DropTable returns the definition's drops, or DefaultDrops.
func (d EnemyDefinition) DropTable() []DropEntry {
	if len(d.Drops) == 0 {
		return DefaultDrops
	}
	return d.Drops
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
