// internal/defs/loot_tables.go
package defs

import "go-raycaster/internal/component"

// DropEntry is one row of an enemy's drop table. An empty Item means the
// enemy drops nothing on this roll.
type DropEntry struct {
	Item   component.ItemKind `json:"item" yaml:"item"`
	Amount int                `json:"amount" yaml:"amount"`
	Weight int                `json:"weight" yaml:"weight"`
}

// DefaultDrops is used by definitions without a drop table.
var DefaultDrops = []DropEntry{
	{Item: component.ItemAmmo, Amount: 4, Weight: 3},
	{Item: component.ItemHealth, Amount: 10, Weight: 1},
	{Weight: 2},
}
