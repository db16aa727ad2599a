package protocol

import (
	"regexp"
	"strconv"
)

// Kind classifies a parsed client message.
type Kind int

const (
	// KindUsername is the initial username announcement.
	KindUsername Kind = iota
	// KindConfirmation is the client's confirmation code.
	KindConfirmation
	// KindPosition is an "OK x y" position report.
	KindPosition
	// KindRecharging announces a recharge suspension.
	KindRecharging
	// KindFullPower ends a recharge suspension.
	KindFullPower
	// KindPickup is the message payload picked up at the current cell.
	KindPickup
)

// Client message literals.
const (
	Recharging = "RECHARGING"
	FullPower  = "FULL POWER"
)

const (
	maxUsernameLen = 18
	maxPickupLen   = 98
	maxCode        = 65535
)

var (
	positionRe     = regexp.MustCompile(`^OK (-?\d+) (-?\d+)$`)
	confirmationRe = regexp.MustCompile(`^\d{1,5}$`)
)

// Message is a framed client request classified against the phase grammar.
// Text carries the username or pickup payload, Code the confirmation code
// and X, Y the reported position, depending on Kind.
type Message struct {
	Kind Kind
	Text string
	Code uint16
	X, Y int
}

// Parse validates a framed payload (terminator stripped) against the
// grammar of the given phase and classifies it. Grammar misses return
// ErrSyntax; while charging, any complete frame other than FULL POWER
// returns ErrLogic.
func Parse(phase Phase, payload string) (Message, error) {
	switch phase {
	case PhaseUsername:
		if len(payload) > maxUsernameLen {
			return Message{}, ErrSyntax
		}
		return Message{Kind: KindUsername, Text: payload}, nil

	case PhaseConfirmation:
		if payload == Recharging {
			return Message{Kind: KindRecharging}, nil
		}
		if !confirmationRe.MatchString(payload) {
			return Message{}, ErrSyntax
		}
		code, err := strconv.ParseUint(payload, 10, 32)
		if err != nil || code > maxCode {
			return Message{}, ErrSyntax
		}
		return Message{Kind: KindConfirmation, Code: uint16(code)}, nil

	case PhasePosition:
		if payload == Recharging {
			return Message{Kind: KindRecharging}, nil
		}
		m := positionRe.FindStringSubmatch(payload)
		if m == nil {
			return Message{}, ErrSyntax
		}
		x, err := strconv.Atoi(m[1])
		if err != nil {
			return Message{}, ErrSyntax
		}
		y, err := strconv.Atoi(m[2])
		if err != nil {
			return Message{}, ErrSyntax
		}
		return Message{Kind: KindPosition, X: x, Y: y}, nil

	case PhasePickup:
		if payload == Recharging {
			return Message{Kind: KindRecharging}, nil
		}
		if len(payload) > maxPickupLen {
			return Message{}, ErrSyntax
		}
		return Message{Kind: KindPickup, Text: payload}, nil

	case PhaseCharging:
		if payload == FullPower {
			return Message{Kind: KindFullPower}, nil
		}
		return Message{}, ErrLogic

	default:
		return Message{}, ErrSyntax
	}
}
