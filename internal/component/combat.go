// internal/component/combat.go
package component

// Health is the hit point pool of a body.
type Health struct {
	Value int
	Max   int
}

// Dead reports whether the pool is empty.
func (h *Health) Dead() bool { return h.Value <= 0 }

// Damage subtracts amount, never going below zero, and returns what was taken.
func (h *Health) Damage(amount int) int {
	if amount <= 0 || h.Value <= 0 {
		return 0
	}
	if amount > h.Value {
		amount = h.Value
	}
	h.Value -= amount
	return amount
}

// Heal adds amount up to Max and returns what was restored.
func (h *Health) Heal(amount int) int {
	if amount <= 0 || h.Value >= h.Max {
		return 0
	}
	if h.Value+amount > h.Max {
		amount = h.Max - h.Value
	}
	h.Value += amount
	return amount
}
