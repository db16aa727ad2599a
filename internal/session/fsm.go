package session

import "github.com/robot-guidance/server/internal/protocol"

// FSM guards the legal phase transitions of a session.
type FSM struct {
	current protocol.Phase
	resume  protocol.Phase
	allowed map[protocol.Phase][]protocol.Phase
}

// newFSM creates an FSM with the protocol's predefined transitions.
func newFSM() *FSM {
	return &FSM{
		current: protocol.PhaseUsername,
		allowed: map[protocol.Phase][]protocol.Phase{
			protocol.PhaseUsername:     {protocol.PhaseConfirmation},
			protocol.PhaseConfirmation: {protocol.PhasePosition, protocol.PhaseCharging},
			protocol.PhasePosition:     {protocol.PhasePosition, protocol.PhasePickup, protocol.PhaseCharging},
			protocol.PhasePickup:       {protocol.PhasePosition, protocol.PhaseCharging},
			protocol.PhaseCharging:     {protocol.PhaseConfirmation, protocol.PhasePosition, protocol.PhasePickup},
		},
	}
}

// Phase returns the current phase.
func (f *FSM) Phase() protocol.Phase {
	return f.current
}

// CanTransitionTo checks if a transition to the target phase is allowed.
func (f *FSM) CanTransitionTo(target protocol.Phase) bool {
	for _, p := range f.allowed[f.current] {
		if p == target {
			return true
		}
	}
	return false
}

// TransitionTo moves to a new phase if allowed.
func (f *FSM) TransitionTo(target protocol.Phase) bool {
	if !f.CanTransitionTo(target) {
		return false
	}
	f.current = target
	return true
}

// EnterCharging remembers the interrupted phase and switches to charging.
func (f *FSM) EnterCharging() {
	f.resume = f.current
	f.current = protocol.PhaseCharging
}

// LeaveCharging restores the phase that was interrupted by the recharge.
func (f *FSM) LeaveCharging() {
	f.current = f.resume
}
