package protocol

import (
	"errors"
	"testing"
)

func TestParseUsername(t *testing.T) {
	msg, err := Parse(PhaseUsername, "Oompa Loompa")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if msg.Kind != KindUsername || msg.Text != "Oompa Loompa" {
		t.Errorf("Unexpected message %+v", msg)
	}
}

func TestParseConfirmationCode(t *testing.T) {
	msg, err := Parse(PhaseConfirmation, "8892")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if msg.Kind != KindConfirmation || msg.Code != 8892 {
		t.Errorf("Unexpected message %+v", msg)
	}
}

func TestParseConfirmationRejectsNonDigits(t *testing.T) {
	for _, payload := range []string{"12a4", "-1", " 123", "123 ", ""} {
		if _, err := Parse(PhaseConfirmation, payload); !errors.Is(err, ErrSyntax) {
			t.Errorf("Payload %q: expected syntax error, got %v", payload, err)
		}
	}
}

func TestParseConfirmationRejectsOverflow(t *testing.T) {
	if _, err := Parse(PhaseConfirmation, "65536"); !errors.Is(err, ErrSyntax) {
		t.Error("Expected syntax error for value above 16 bits")
	}
	if _, err := Parse(PhaseConfirmation, "99999"); !errors.Is(err, ErrSyntax) {
		t.Error("Expected syntax error for value above 16 bits")
	}
	msg, err := Parse(PhaseConfirmation, "65535")
	if err != nil || msg.Code != 65535 {
		t.Errorf("65535 should parse, got %+v, %v", msg, err)
	}
}

func TestParsePosition(t *testing.T) {
	msg, err := Parse(PhasePosition, "OK -2 13")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if msg.Kind != KindPosition || msg.X != -2 || msg.Y != 13 {
		t.Errorf("Unexpected message %+v", msg)
	}
}

func TestParsePositionRejectsMalformed(t *testing.T) {
	for _, payload := range []string{"OK 1 2 ", "OK  1 2", "ok 1 2", "OK 1", "OK 1 2 3", "OK x y", "OK 1.5 2"} {
		if _, err := Parse(PhasePosition, payload); !errors.Is(err, ErrSyntax) {
			t.Errorf("Payload %q: expected syntax error, got %v", payload, err)
		}
	}
}

func TestParseRechargingWhereAccepted(t *testing.T) {
	for _, phase := range []Phase{PhaseConfirmation, PhasePosition, PhasePickup} {
		msg, err := Parse(phase, Recharging)
		if err != nil {
			t.Fatalf("Phase %v: Parse failed: %v", phase, err)
		}
		if msg.Kind != KindRecharging {
			t.Errorf("Phase %v: expected recharging, got %+v", phase, msg)
		}
	}
}

func TestParsePickup(t *testing.T) {
	msg, err := Parse(PhasePickup, "Secret!")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if msg.Kind != KindPickup || msg.Text != "Secret!" {
		t.Errorf("Unexpected message %+v", msg)
	}
}

func TestParseEmptyPickup(t *testing.T) {
	msg, err := Parse(PhasePickup, "")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if msg.Kind != KindPickup || msg.Text != "" {
		t.Errorf("Unexpected message %+v", msg)
	}
}

func TestParseChargingAcceptsOnlyFullPower(t *testing.T) {
	msg, err := Parse(PhaseCharging, FullPower)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if msg.Kind != KindFullPower {
		t.Errorf("Unexpected message %+v", msg)
	}
	for _, payload := range []string{"OK 1 2", Recharging, "FULL  POWER", ""} {
		if _, err := Parse(PhaseCharging, payload); !errors.Is(err, ErrLogic) {
			t.Errorf("Payload %q: expected logic error, got %v", payload, err)
		}
	}
}

func TestMaxFrameCoversRecharging(t *testing.T) {
	// Phases that also accept RECHARGING must not cap below its frame.
	for _, phase := range []Phase{PhaseConfirmation, PhasePosition, PhasePickup} {
		if MaxFrame(phase) < len(Recharging)+len(Terminator) {
			t.Errorf("Phase %v caps below a RECHARGING frame", phase)
		}
	}
	if MaxFrame(PhaseUsername) != 20 {
		t.Errorf("Username cap = %d, want 20", MaxFrame(PhaseUsername))
	}
	if MaxFrame(PhasePickup) != 100 {
		t.Errorf("Pickup cap = %d, want 100", MaxFrame(PhasePickup))
	}
}

func TestAcceptCodeWire(t *testing.T) {
	if got := AcceptCode(0); got != "0" {
		t.Errorf("AcceptCode(0) = %q", got)
	}
	if got := AcceptCode(65535); got != "65535" {
		t.Errorf("AcceptCode(65535) = %q", got)
	}
}
