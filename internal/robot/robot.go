// Package robot tracks the state inferred from a client's position
// reports and plans the commands that steer it through the target area.
package robot

// TargetRadius bounds the target area: cells with |x| <= 2 and |y| <= 2.
const TargetRadius = 2

const targetCells = (2*TargetRadius + 1) * (2*TargetRadius + 1)

// InsideTarget reports whether p lies in the target area.
func InsideTarget(p Vec) bool {
	return abs(p.X) <= TargetRadius && abs(p.Y) <= TargetRadius
}

// Robot is the per-session model of a remote robot: last reported
// position, inferred heading and the set of target cells already probed.
type Robot struct {
	pos        Vec
	hasPos     bool
	heading    Vec
	hasHeading bool
	searched   map[Vec]bool
}

// New returns a robot with unknown position and heading.
func New() *Robot {
	return &Robot{searched: make(map[Vec]bool)}
}

// Position returns the last reported position, if any arrived yet.
func (r *Robot) Position() (Vec, bool) {
	return r.pos, r.hasPos
}

// Heading returns the inferred unit heading, if known.
func (r *Robot) Heading() (Vec, bool) {
	return r.heading, r.hasHeading
}

// MoveTo records a position report. The first report only sets the
// position. A report equal to the current position is a stationary turn
// acknowledgement and leaves the heading alone. A unit step sets the
// heading to the delta; any other delta is inconsistent with a single
// move and invalidates the heading. The position is always updated.
func (r *Robot) MoveTo(x, y int) {
	p := Vec{X: x, Y: y}
	if !r.hasPos {
		r.pos = p
		r.hasPos = true
		return
	}
	if p == r.pos {
		return
	}
	if p.Taxicab(r.pos) == 1 {
		r.heading = Vec{X: p.X - r.pos.X, Y: p.Y - r.pos.Y}
		r.hasHeading = true
	} else {
		r.hasHeading = false
	}
	r.pos = p
}

// TurnLeft rotates the tracked heading 90 degrees counter-clockwise.
func (r *Robot) TurnLeft() {
	if r.hasHeading {
		r.heading = r.heading.RotateLeft()
	}
}

// TurnRight rotates the tracked heading 90 degrees clockwise.
func (r *Robot) TurnRight() {
	if r.hasHeading {
		r.heading = r.heading.RotateRight()
	}
}

// MarkSearched records the current cell as probed. Reports outside the
// target area, or before the first position arrived, are ignored.
func (r *Robot) MarkSearched() {
	if r.hasPos && InsideTarget(r.pos) {
		r.searched[r.pos] = true
	}
}

// Searched reports whether the cell has already been probed.
func (r *Robot) Searched(p Vec) bool {
	return r.searched[p]
}

// AllSearched reports whether every cell of the target area was probed.
func (r *Robot) AllSearched() bool {
	return len(r.searched) == targetCells
}
