// internal/scene/director.go
package scene

import (
	"github.com/sirupsen/logrus"

	"go-raycaster/internal/camera"
	"go-raycaster/internal/event"
	"go-raycaster/internal/interfaces"
	"go-raycaster/internal/types"
	"go-raycaster/internal/world"
	"go-raycaster/pkg/logger"
)

// View is everything the presentation layer needs for one frame.
type View struct {
	Phase   Phase
	Level   string
	Opacity float64       // 0 black .. 1 fully visible
	Frame   *camera.Frame // last projected frame, nil before the first
	Status  world.PlayerSnapshot
	Overlay string
	Err     error
}

// Director runs the scene lifecycle around one world at a time. Only the
// Running phase ticks the world and projects the camera.
type Director struct {
	sm     *StateMachine
	load   interfaces.Loader
	level  string
	next   string
	world  interfaces.World
	camera *camera.Camera
	events *event.Dispatcher

	actions types.Actions
	frame   camera.Frame
	framed  bool
	status  world.PlayerSnapshot
	opacity float64
	overlay string
	err     error

	log *logrus.Entry
}

// NewDirector creates a director that starts loading level. events may be
// nil; world events are dispatched to it after every tick.
func NewDirector(load interfaces.Loader, level string, cam *camera.Camera, events *event.Dispatcher) *Director {
	if events == nil {
		events = event.NewDispatcher()
	}
	d := &Director{
		sm:     NewStateMachine(),
		load:   load,
		level:  level,
		camera: cam,
		events: events,
		log:    logger.For("scene"),
	}
	d.sm.SetState(&loadingState{d: d})
	return d
}

// Update advances the current phase with this frame's input.
func (d *Director) Update(deltaTime float64, actions types.Actions) {
	d.actions = actions
	d.sm.Update(deltaTime)
}

// Phase returns the current phase.
func (d *Director) Phase() Phase { return d.sm.Current().Phase() }

// Done reports whether the player chose to quit.
func (d *Director) Done() bool { return d.Phase() == Quit }

// Err returns the last level load error, or nil.
func (d *Director) Err() error { return d.err }

// World returns the live world, or nil between levels.
func (d *Director) World() interfaces.World { return d.world }

// Level returns the path of the current level.
func (d *Director) Level() string { return d.level }

// Events returns the dispatcher world events are delivered to.
func (d *Director) Events() *event.Dispatcher { return d.events }

// View returns what to present.
func (d *Director) View() View {
	v := View{
		Phase:   d.Phase(),
		Level:   d.level,
		Opacity: d.opacity,
		Status:  d.status,
		Overlay: d.overlay,
		Err:     d.err,
	}
	if d.framed {
		frame := d.frame
		v.Frame = &frame
	}
	return v
}

// Close tears the world down. Safe to call more than once.
func (d *Director) Close() {
	d.teardown()
}

func (d *Director) setState(s State) {
	d.log.WithFields(logrus.Fields{
		"from":  d.Phase().String(),
		"to":    s.Phase().String(),
		"level": d.level,
	}).Info("scene transition")
	d.sm.SetState(s)
}

func (d *Director) fadeOut(outcome Phase) {
	d.setState(&fadeState{d: d, outcome: outcome})
}

func (d *Director) teardown() {
	if d.world == nil {
		return
	}
	d.world.Teardown()
	d.world = nil
	d.framed = false
}
