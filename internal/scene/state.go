// internal/scene/state.go
package scene

// State is one phase of the scene lifecycle.
type State interface {
	Enter()
	Update(deltaTime float64)
	Exit()
	Phase() Phase
}

// StateMachine holds the current state.
type StateMachine struct {
	current State
}

// NewStateMachine creates a machine without a current state.
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// SetState exits the current state, then enters newState.
func (sm *StateMachine) SetState(newState State) {
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.current = newState
	if sm.current != nil {
		sm.current.Enter()
	}
}

// Update advances the current state.
func (sm *StateMachine) Update(deltaTime float64) {
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

// Current returns the current state, or nil.
func (sm *StateMachine) Current() State {
	return sm.current
}
