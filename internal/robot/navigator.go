package robot

// Command is the next instruction for a robot.
type Command int

const (
	// CmdMove advances one cell along the current heading.
	CmdMove Command = iota
	// CmdTurnLeft rotates the robot 90 degrees counter-clockwise.
	CmdTurnLeft
	// CmdTurnRight rotates the robot 90 degrees clockwise.
	CmdTurnRight
	// CmdPickup probes the current cell for a message.
	CmdPickup
	// CmdDone means every target cell was searched; nothing left to do.
	CmdDone
)

// NextCommand decides the next command from the robot's inferred state.
//
// With position or heading unknown it forces a MOVE, so that the second
// position report reveals the heading. On an unsearched target cell it
// orders a pickup. Otherwise it steers greedily toward the nearest
// unsearched cell by taxicab distance. Choosing a turn rotates the
// tracked heading immediately; the robot itself only moves on MOVE and
// acknowledges the turn with an unchanged position.
func NextCommand(r *Robot) Command {
	pos, havePos := r.Position()
	heading, haveHeading := r.Heading()
	if !havePos || !haveHeading {
		return CmdMove
	}
	if InsideTarget(pos) && !r.Searched(pos) {
		return CmdPickup
	}
	target, ok := nearestUnsearched(r, pos)
	if !ok {
		return CmdDone
	}

	// Candidate positions after one step forward, or after a turn plus
	// the MOVE that follows it. Ties go FORWARD, RIGHT, LEFT.
	cmd := CmdMove
	best := pos.Add(heading).Taxicab(target)
	if d := pos.Add(heading.RotateRight()).Taxicab(target); d < best {
		cmd, best = CmdTurnRight, d
	}
	if d := pos.Add(heading.RotateLeft()).Taxicab(target); d < best {
		cmd, best = CmdTurnLeft, d
	}

	switch cmd {
	case CmdTurnLeft:
		r.TurnLeft()
	case CmdTurnRight:
		r.TurnRight()
	}
	return cmd
}

// nearestUnsearched scans the target area x-major and keeps the first
// strict minimum, which fixes the tie-break order.
func nearestUnsearched(r *Robot, from Vec) (Vec, bool) {
	var best Vec
	bestDist := -1
	for x := -TargetRadius; x <= TargetRadius; x++ {
		for y := -TargetRadius; y <= TargetRadius; y++ {
			cell := Vec{X: x, Y: y}
			if r.Searched(cell) {
				continue
			}
			if d := from.Taxicab(cell); bestDist < 0 || d < bestDist {
				best, bestDist = cell, d
			}
		}
	}
	return best, bestDist >= 0
}
