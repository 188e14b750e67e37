// internal/types/types.go
package types

// EntityID identifies a body in the world. Zero is never assigned.
type EntityID uint32

// Actions is the per-tick snapshot of player intents. The simulation never
// reads input devices; an adapter fills this struct once per frame.
type Actions struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Strafe   bool // left/right strafe instead of turning
	Fire     bool
	Open     bool
	Crouch   bool
	LookUp   bool
	LookDown bool

	// Scene-level intents, consumed outside the world tick.
	Pause   bool
	Quit    bool
	Restart bool
	Confirm bool
	Cancel  bool
}

// Moving reports whether any movement intent is held.
func (a Actions) Moving() bool {
	return a.Forward || a.Backward || ((a.Left || a.Right) && a.Strafe)
}
