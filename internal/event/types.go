// internal/event/types.go
package event

const (
	LevelComplete     EventType = "LevelComplete"     // the player entered an exit sector
	PlayerDied        EventType = "PlayerDied"        // player health reached zero
	PlayerHurt        EventType = "PlayerHurt"        // Data: damage taken
	EffectAdded       EventType = "EffectAdded"       // Data: effect kind
	EffectExpired     EventType = "EffectExpired"     // Data: effect kind
	DoorChanged       EventType = "DoorChanged"       // Data: sector.DoorState
	EnemyStateChanged EventType = "EnemyStateChanged" // Data: component.AIState
	EnemyAttack       EventType = "EnemyAttack"       // Data: true when the shot hit
	EnemyKilled       EventType = "EnemyKilled"
	WeaponFired       EventType = "WeaponFired"
	ItemPicked        EventType = "ItemPicked" // Data: component.ItemKind
	SpawnRefused      EventType = "SpawnRefused"
)
