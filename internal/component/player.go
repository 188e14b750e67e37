// internal/component/player.go
package component

// Player holds state specific to the player body.
type Player struct {
	EyeHeight    float64
	Pitch        float64 // horizon offset in pixels, positive looks up
	Crouching    bool
	Ammo         int
	FireCooldown float64 // seconds until the weapon can fire again
	Kills        int
	Keys         int
}
