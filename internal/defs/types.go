// internal/defs/types.go
package defs

import (
	"errors"
	"fmt"
)

// Configuration errors. Level validation wraps these in ValidationError and
// joins every problem found, so a bad level reports all of them at once.
var (
	ErrBadDimensions    = errors.New("level has no cells or ragged rows")
	ErrUnknownCell      = errors.New("unknown cell character")
	ErrNoPlayerStart    = errors.New("level has no player start")
	ErrMultiplePlayers  = errors.New("level has more than one player start")
	ErrSpawnOutOfBounds = errors.New("spawn outside the grid")
	ErrSpawnInWall      = errors.New("spawn inside a wall")
	ErrUnknownEnemy     = errors.New("unknown enemy definition")
	ErrBadFace          = errors.New("bad face override")
)

// ValidationError locates a configuration error in the level.
type ValidationError struct {
	Level string
	What  string
	X, Y  int
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("level %q: %s at (%d,%d): %v", e.Level, e.What, e.X, e.Y, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
