package robot

import "testing"

// searchAllExcept marks every target cell except the given ones.
func searchAllExcept(r *Robot, keep ...Vec) {
	unsearched := make(map[Vec]bool, len(keep))
	for _, p := range keep {
		unsearched[p] = true
	}
	for x := -TargetRadius; x <= TargetRadius; x++ {
		for y := -TargetRadius; y <= TargetRadius; y++ {
			if !unsearched[Vec{x, y}] {
				r.searched[Vec{x, y}] = true
			}
		}
	}
}

func TestNextCommandMovesWhileBlind(t *testing.T) {
	r := New()
	if got := NextCommand(r); got != CmdMove {
		t.Errorf("No position: NextCommand = %v, want MOVE", got)
	}
	// Position known but heading not, even on an unsearched target cell.
	r.MoveTo(0, 0)
	if got := NextCommand(r); got != CmdMove {
		t.Errorf("No heading: NextCommand = %v, want MOVE", got)
	}
}

func TestNextCommandPickupOnUnsearchedCell(t *testing.T) {
	r := New()
	r.MoveTo(1, 0)
	r.MoveTo(0, 0)
	if got := NextCommand(r); got != CmdPickup {
		t.Errorf("NextCommand = %v, want GET MESSAGE", got)
	}
	pos, _ := r.Position()
	if !InsideTarget(pos) || r.Searched(pos) {
		t.Error("Pickup emitted outside an unsearched target cell")
	}
}

func TestNextCommandNoPickupOnSearchedCell(t *testing.T) {
	r := New()
	r.MoveTo(1, 0)
	r.MoveTo(0, 0)
	r.MarkSearched()
	if got := NextCommand(r); got == CmdPickup {
		t.Error("Pickup emitted on an already searched cell")
	}
}

func TestNextCommandForwardWhenClosest(t *testing.T) {
	r := New()
	r.MoveTo(5, 0)
	r.MoveTo(4, 0) // heading (-1,0), nearest unsearched (2,0)
	if got := NextCommand(r); got != CmdMove {
		t.Errorf("NextCommand = %v, want MOVE", got)
	}
	if h, _ := r.Heading(); h != (Vec{-1, 0}) {
		t.Errorf("MOVE changed the heading to %v", h)
	}
}

func TestNextCommandTurnsLeftTowardTarget(t *testing.T) {
	r := New()
	r.MoveTo(4, -1)
	r.MoveTo(4, 0) // heading (0,1); nearest unsearched is (2,0)
	if got := NextCommand(r); got != CmdTurnLeft {
		t.Errorf("NextCommand = %v, want TURN LEFT", got)
	}
	if h, _ := r.Heading(); h != (Vec{-1, 0}) {
		t.Errorf("Heading after TURN LEFT = %v, want (-1,0)", h)
	}
}

func TestNextCommandTurnsRightTowardTarget(t *testing.T) {
	r := New()
	r.MoveTo(3, -2)
	r.MoveTo(3, -3) // heading (0,-1); nearest unsearched is (2,-2)
	if got := NextCommand(r); got != CmdTurnRight {
		t.Errorf("NextCommand = %v, want TURN RIGHT", got)
	}
	if h, _ := r.Heading(); h != (Vec{-1, 0}) {
		t.Errorf("Heading after TURN RIGHT = %v, want (-1,0)", h)
	}
}

func TestNextCommandForwardWinsTies(t *testing.T) {
	// From (3,3) heading (0,-1) the nearest unsearched cell is (2,2):
	// forward (3,2) and right (2,3) are both one step away. FORWARD wins.
	r := New()
	r.MoveTo(3, 4)
	r.MoveTo(3, 3)
	if got := NextCommand(r); got != CmdMove {
		t.Errorf("NextCommand = %v, want MOVE on a forward tie", got)
	}
	if h, _ := r.Heading(); h != (Vec{0, -1}) {
		t.Errorf("Tie-broken MOVE changed the heading to %v", h)
	}
}

func TestNextCommandTargetTieBreakIsXMajor(t *testing.T) {
	// Equidistant unsearched cells (2,1) and (2,-1) from (3,0): the
	// x-major scan keeps (2,-1), which a left turn approaches best.
	r := New()
	searchAllExcept(r, Vec{2, 1}, Vec{2, -1})
	r.MoveTo(3, -1)
	r.MoveTo(3, 0) // heading (0,1)
	if got := NextCommand(r); got != CmdTurnLeft {
		t.Errorf("NextCommand = %v, want TURN LEFT toward (2,-1)", got)
	}
}

func TestNextCommandDoneWhenAllSearched(t *testing.T) {
	r := New()
	searchAllExcept(r)
	r.MoveTo(3, 0)
	r.MoveTo(3, 1)
	if got := NextCommand(r); got != CmdDone {
		t.Errorf("NextCommand = %v, want DONE", got)
	}
}

func TestNavigatorReachesTargetFromSeveralStarts(t *testing.T) {
	// Drive a simulated robot from several starts; the navigator must
	// reach an unsearched cell and order a pickup within a bounded
	// number of commands.
	starts := []struct {
		pos, dir Vec
	}{
		{Vec{5, 4}, Vec{-1, 0}},
		{Vec{-6, 0}, Vec{1, 0}},
		{Vec{0, 7}, Vec{0, -1}},
		{Vec{3, -3}, Vec{0, 1}},
	}
	for _, start := range starts {
		r := New()
		pos, dir := start.pos, start.dir
		r.MoveTo(pos.X, pos.Y)
		picked := false
		for i := 0; i < 100 && !picked; i++ {
			switch NextCommand(r) {
			case CmdMove:
				pos = pos.Add(dir)
				r.MoveTo(pos.X, pos.Y)
			case CmdTurnLeft:
				dir = dir.RotateLeft()
				r.MoveTo(pos.X, pos.Y)
			case CmdTurnRight:
				dir = dir.RotateRight()
				r.MoveTo(pos.X, pos.Y)
			case CmdPickup:
				if !InsideTarget(pos) {
					t.Fatalf("Start %v: pickup ordered outside the target area at %v", start.pos, pos)
				}
				picked = true
			case CmdDone:
				t.Fatalf("Start %v: done before any pickup", start.pos)
			}
		}
		if !picked {
			t.Errorf("Start %v: no pickup within 100 commands", start.pos)
		}
	}
}

func TestNearestUnsearchedPrefersFirstInScan(t *testing.T) {
	r := New()
	target, ok := nearestUnsearched(r, Vec{0, 0})
	if !ok {
		t.Fatal("No unsearched cell on a fresh robot")
	}
	// Everything unsearched: distance 0 cell is (0,0) itself.
	if target != (Vec{0, 0}) {
		t.Errorf("Nearest = %v, want (0,0)", target)
	}
	r.searched[Vec{0, 0}] = true
	target, _ = nearestUnsearched(r, Vec{0, 0})
	// Four cells at distance 1; the x-major scan reaches (-1,0) first.
	if target != (Vec{-1, 0}) {
		t.Errorf("Nearest = %v, want (-1,0)", target)
	}
}
