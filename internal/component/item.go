// internal/component/item.go
package component

// ItemKind is what a pickup gives.
type ItemKind string

const (
	ItemHealth ItemKind = "health"
	ItemAmmo   ItemKind = "ammo"
	ItemKey    ItemKind = "key"
)

// Item is a collectible.
type Item struct {
	Kind   ItemKind
	Amount int
}
