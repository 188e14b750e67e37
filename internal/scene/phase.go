// internal/scene/phase.go
package scene

// Phase identifies a scene state.
type Phase int

const (
	Loading Phase = iota
	FadingIn
	Running
	Paused
	Prompting
	FadingOut
	Complete
	Restart
	Quit
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case FadingIn:
		return "fading_in"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Prompting:
		return "prompting"
	case FadingOut:
		return "fading_out"
	case Complete:
		return "complete"
	case Restart:
		return "restart"
	case Quit:
		return "quit"
	}
	return "unknown"
}

// Outcome reports whether p ends a level run.
func (p Phase) Outcome() bool {
	return p == Complete || p == Restart || p == Quit
}
