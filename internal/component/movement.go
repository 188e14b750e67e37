// internal/component/movement.go
package component

// Flags mark collision and interaction capabilities of a body.
type Flags uint8

const (
	FlagBlocking Flags = 1 << iota // other bodies cannot overlap it
	FlagPickup                     // collected when the player overlaps it
	FlagVisible                    // projected as a sprite
)

// Body is the positional part of every simulated entity. Its sector fields are
// a non-owning reference kept in sync by the world.
type Body struct {
	X, Y, Z               float64
	Width, Length, Height float64
	Radius                float64 // collision half-size
	Angle                 float64 // degrees, [0, 360)
	SectorX, SectorY      int
	Flags                 Flags
}

// Has reports whether all of f are set.
func (b *Body) Has(f Flags) bool { return b.Flags&f == f }

// Motion turns a Body into a dynamic body. Velocities approach the target set
// by the intent fields by their acceleration each tick and are always clamped
// to their maximum.
type Motion struct {
	Velocity       float64 // along Angle, units per second
	StrafeVelocity float64 // perpendicular to Angle, positive to the right
	MaxVelocity    float64
	Acceleration   float64

	RotVelocity     float64 // degrees per second
	MaxRotVelocity  float64
	RotAcceleration float64

	// Intent in [-1, 1].
	Thrust float64
	Side   float64
	Turn   float64

	// Moved is set when the body changed position during the last step.
	Moved bool
	// Blocked is set when collision vetoed part of the last step.
	Blocked bool
}

// Stop clears intent and velocity.
func (m *Motion) Stop() {
	m.Thrust, m.Side, m.Turn = 0, 0, 0
	m.Velocity, m.StrafeVelocity, m.RotVelocity = 0, 0, 0
}
