// internal/scene/states.go
package scene

import (
	"go-raycaster/internal/config"
	"go-raycaster/internal/event"
	"go-raycaster/internal/utils"
)

// loadingState builds the world once per entry. A failed load keeps the
// scene here with the error exposed; confirm retries, quit gives up.
type loadingState struct {
	d         *Director
	attempted bool
}

func (s *loadingState) Phase() Phase { return Loading }

func (s *loadingState) Enter() {
	s.attempted = false
	s.d.opacity = 0
	s.d.overlay = "Loading"
}

func (s *loadingState) Update(deltaTime float64) {
	d := s.d
	if s.attempted {
		switch {
		case d.actions.Quit || d.actions.Cancel:
			d.setState(&outcomeState{d: d, phase: Quit})
		case d.actions.Confirm || d.actions.Restart:
			s.attempted = false
		}
		return
	}
	s.attempted = true

	w, err := d.load(d.level)
	if err != nil {
		d.err = err
		d.overlay = "Failed to load " + d.level
		d.log.WithField("level", d.level).WithError(err).Error("level load failed")
		return
	}
	d.world = w
	d.err = nil
	d.framed = false
	d.status = w.Status()
	d.log.WithField("level", d.level).Info("level loaded")
	d.setState(&fadeState{d: d, in: true})
}

func (s *loadingState) Exit() {}

// fadeState ramps opacity linearly over config.FadeDuration. Fading in ends
// in Running, fading out in the outcome state.
type fadeState struct {
	d       *Director
	in      bool
	outcome Phase
	elapsed float64
}

func (s *fadeState) Phase() Phase {
	if s.in {
		return FadingIn
	}
	return FadingOut
}

func (s *fadeState) Enter() {
	s.elapsed = 0
	s.d.overlay = ""
	if s.in {
		s.d.opacity = 0
	} else {
		s.d.opacity = 1
	}
}

func (s *fadeState) Update(deltaTime float64) {
	s.elapsed += deltaTime
	p := utils.Clamp(s.elapsed/config.FadeDuration, 0, 1)
	if s.in {
		s.d.opacity = p
	} else {
		s.d.opacity = 1 - p
	}
	if p < 1 {
		return
	}
	if s.in {
		s.d.setState(&runningState{d: s.d})
	} else {
		s.d.setState(&outcomeState{d: s.d, phase: s.outcome})
	}
}

func (s *fadeState) Exit() {}

type runningState struct {
	d *Director
}

func (s *runningState) Phase() Phase { return Running }

func (s *runningState) Enter() {
	s.d.opacity = 1
	s.d.overlay = ""
}

func (s *runningState) Update(deltaTime float64) {
	d := s.d
	a := d.actions
	switch {
	case a.Quit:
		d.fadeOut(Quit)
		return
	case a.Restart:
		d.fadeOut(Restart)
		return
	case a.Pause:
		d.setState(&pausedState{d: d})
		return
	}

	if err := d.world.Update(deltaTime, a); err != nil {
		d.log.WithError(err).Error("world update failed")
		return
	}
	events := d.world.Events()
	d.events.DispatchAll(events)

	d.status = d.world.Status()
	d.camera.Update(deltaTime, d.world.Moving())
	d.frame = d.camera.Project(d.world)
	d.framed = true

	for _, e := range events {
		switch e.Type {
		case event.LevelComplete:
			d.fadeOut(Complete)
			return
		case event.PlayerDied:
			d.setState(&promptState{d: d})
			return
		}
	}
}

func (s *runningState) Exit() {}

// pausedState freezes the world and keeps the last frame on screen.
type pausedState struct {
	d *Director
}

func (s *pausedState) Phase() Phase { return Paused }

func (s *pausedState) Enter() { s.d.overlay = "PAUSED" }

func (s *pausedState) Update(deltaTime float64) {
	a := s.d.actions
	switch {
	case a.Pause || a.Cancel:
		s.d.setState(&runningState{d: s.d})
	case a.Quit:
		s.d.fadeOut(Quit)
	case a.Restart:
		s.d.fadeOut(Restart)
	}
}

func (s *pausedState) Exit() {}

// promptState asks whether to restart after the player died.
type promptState struct {
	d *Director
}

func (s *promptState) Phase() Phase { return Prompting }

func (s *promptState) Enter() { s.d.overlay = "YOU DIED - Enter: restart, Esc: quit" }

func (s *promptState) Update(deltaTime float64) {
	a := s.d.actions
	switch {
	case a.Confirm || a.Restart:
		s.d.fadeOut(Restart)
	case a.Cancel || a.Quit:
		s.d.fadeOut(Quit)
	}
}

func (s *promptState) Exit() {}

// outcomeState ends a level run. The world is torn down on entry, before
// anything else is set up.
type outcomeState struct {
	d     *Director
	phase Phase
}

func (s *outcomeState) Phase() Phase { return s.phase }

func (s *outcomeState) Enter() {
	d := s.d
	d.next = ""
	if s.phase == Complete && d.world != nil {
		d.next = d.world.NextLevel()
	}
	d.teardown()
	d.opacity, d.overlay = 0, ""
	if s.phase == Complete {
		d.overlay = "LEVEL COMPLETE"
		if d.next == "" {
			d.opacity = 1
		}
	}
}

func (s *outcomeState) Update(deltaTime float64) {
	d := s.d
	switch s.phase {
	case Restart:
		d.setState(&loadingState{d: d})
	case Complete:
		if d.next != "" {
			d.level = d.next
			d.setState(&loadingState{d: d})
		} else if d.actions.Quit || d.actions.Cancel {
			d.setState(&outcomeState{d: d, phase: Quit})
		}
	}
}

func (s *outcomeState) Exit() {}
