// internal/sector/sector.go
package sector

import "fmt"

// Kind is the passability class of a sector.
type Kind uint8

const (
	Floor Kind = iota
	Wall
	Door
)

func (k Kind) String() string {
	switch k {
	case Floor:
		return "floor"
	case Wall:
		return "wall"
	case Door:
		return "door"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Face indexes the six faces of a sector. Front is the -Y side, Back the +Y
// side, Left the -X side and Right the +X side.
type Face int

const (
	FaceFront Face = iota
	FaceBack
	FaceLeft
	FaceRight
	FaceTop
	FaceBottom
	faceCount
)

// Opposite returns the face a neighbour presents across this one.
func (f Face) Opposite() Face {
	switch f {
	case FaceFront:
		return FaceBack
	case FaceBack:
		return FaceFront
	case FaceLeft:
		return FaceRight
	case FaceRight:
		return FaceLeft
	case FaceTop:
		return FaceBottom
	}
	return FaceTop
}

// Offset returns the grid step towards the neighbour behind a side face.
func (f Face) Offset() (dx, dy int) {
	switch f {
	case FaceFront:
		return 0, -1
	case FaceBack:
		return 0, 1
	case FaceLeft:
		return -1, 0
	case FaceRight:
		return 1, 0
	}
	return 0, 0
}

// SideFaces lists the four vertical faces.
var SideFaces = [4]Face{FaceFront, FaceBack, FaceLeft, FaceRight}

// DoorState is the animation state of a door sector.
type DoorState uint8

const (
	DoorClosed DoorState = iota
	DoorOpening
	DoorOpen
	DoorClosing
)

func (d DoorState) String() string {
	switch d {
	case DoorClosed:
		return "closed"
	case DoorOpening:
		return "opening"
	case DoorOpen:
		return "open"
	case DoorClosing:
		return "closing"
	}
	return "unknown"
}

// Sector is one map cell. Its shape never changes after load; only the door
// fields and the exit flag are mutated, and only by the world tick.
type Sector struct {
	X, Y  int
	Kind  Kind
	Faces [faceCount]int // texture id per face, 0 = open
	Exit  bool
	Light float64 // ambient light contribution in [0,1]

	Door         DoorState
	OpenFraction float64 // 0 closed .. 1 fully open
	OpenTimer    float64 // seconds spent fully open
}

// Face returns the texture id on face f.
func (s *Sector) Face(f Face) int { return s.Faces[f] }

// Passable reports whether bodies may stand in the sector.
func (s *Sector) Passable() bool {
	switch s.Kind {
	case Floor:
		return true
	case Door:
		return s.Door == DoorOpen
	}
	return false
}

// BlocksSight reports whether the sector interrupts a line of sight.
func (s *Sector) BlocksSight() bool {
	switch s.Kind {
	case Wall:
		return true
	case Door:
		return s.OpenFraction < 1
	}
	return false
}

// Solid reports whether the sector draws wall faces towards its neighbours.
func (s *Sector) Solid() bool { return s.Kind != Floor }
