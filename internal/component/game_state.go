// internal/component/game_state.go
package component

// Kind is the role of an entity in the world.
type Kind uint8

const (
	KindPlayer Kind = iota + 1
	KindEnemy
	KindItem
	KindObject
	KindEffect
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindItem:
		return "item"
	case KindObject:
		return "object"
	case KindEffect:
		return "effect"
	}
	return "none"
}
