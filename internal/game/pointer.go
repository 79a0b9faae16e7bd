package game

type pointerAction int

const (
	pointerNone pointerAction = iota
	pointerMove
	pointerLeave
)

// pointerTracker turns polled cursor positions into move and leave events.
type pointerTracker struct {
	x, y   int
	inside bool
}

func (p *pointerTracker) update(x, y, width, height int, focused bool) pointerAction {
	in := focused && x >= 0 && y >= 0 && x < width && y < height
	if !in {
		if p.inside {
			p.inside = false
			return pointerLeave
		}
		return pointerNone
	}
	if p.inside && x == p.x && y == p.y {
		return pointerNone
	}
	p.inside = true
	p.x, p.y = x, y
	return pointerMove
}
