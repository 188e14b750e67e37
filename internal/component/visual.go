// internal/component/visual.go
package component

import "go-raycaster/internal/types"

// Effect is a transient body with a time-to-live measured in accumulated
// elapsed milliseconds, so it expires the same way at any frame rate.
type Effect struct {
	ID      string // unique per spawn
	Source  types.EntityID
	Kind    string
	Elapsed float64 // milliseconds
	TTL     float64 // milliseconds
	Light   float64 // dynamic light contribution while alive
}

// Expired reports whether the effect outlived its TTL.
func (e *Effect) Expired() bool { return e.Elapsed >= e.TTL }

// Remaining returns the fraction of life left in [0,1].
func (e *Effect) Remaining() float64 {
	if e.TTL <= 0 {
		return 0
	}
	r := 1 - e.Elapsed/e.TTL
	if r < 0 {
		return 0
	}
	return r
}
