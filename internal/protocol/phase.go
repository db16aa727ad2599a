package protocol

// Phase identifies what the server expects to read next from the client.
type Phase int

const (
	// PhaseUsername expects the initial username announcement.
	PhaseUsername Phase = iota
	// PhaseConfirmation expects the client's confirmation code.
	PhaseConfirmation
	// PhasePosition expects an "OK x y" position report.
	PhasePosition
	// PhasePickup expects the message payload picked up at the current cell.
	PhasePickup
	// PhaseCharging expects "FULL POWER" and nothing else.
	PhaseCharging
)

// Maximum frame lengths per message shape, terminator included.
const (
	maxUsernameFrame     = 20
	maxConfirmationFrame = 7
	maxPositionFrame     = 12
	maxRechargingFrame   = 12
	maxFullPowerFrame    = 12
	maxPickupFrame       = 100
)

// MaxFrame returns the frame length cap for a phase. Phases that accept
// more than one message shape cap at the largest acceptable shape, since
// the framer cannot tell which one is arriving until it is complete.
func MaxFrame(p Phase) int {
	switch p {
	case PhaseUsername:
		return maxUsernameFrame
	case PhaseConfirmation:
		// Confirmation code or RECHARGING.
		return maxRechargingFrame
	case PhasePosition:
		return maxPositionFrame
	case PhasePickup:
		return maxPickupFrame
	case PhaseCharging:
		return maxFullPowerFrame
	default:
		return maxPickupFrame
	}
}

func (p Phase) String() string {
	switch p {
	case PhaseUsername:
		return "username"
	case PhaseConfirmation:
		return "confirmation"
	case PhasePosition:
		return "position"
	case PhasePickup:
		return "pickup"
	case PhaseCharging:
		return "charging"
	default:
		return "unknown"
	}
}
