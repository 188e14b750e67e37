// internal/sector/raycast.go
package sector

import "math"

// Hit describes where a ray met a blocking sector boundary.
type Hit struct {
	Distance float64 // along the ray, world units
	CellX    int
	CellY    int
	Side     int     // 0: crossed a vertical (x) grid line, 1: a horizontal one
	Face     Face    // face of the hit sector the ray struck
	Texture  int     // texture id of that face
	Frac     float64 // fractional position across the face in [0,1)
	X, Y     float64 // world hit point
	Outside  bool    // the ray left the map
	Sector   *Sector
}

// traverser steps a ray from cell to cell using DDA: each Next call crosses
// exactly one grid line, whichever is closer along the ray.
type traverser struct {
	cx, cy         int
	stepX, stepY   int
	sideX, sideY   float64 // ray length, in cells, to the next x / y grid line
	deltaX, deltaY float64
	dist           float64
	side           int
}

func newTraverser(px, py, dirX, dirY float64) traverser {
	t := traverser{
		cx: int(math.Floor(px)),
		cy: int(math.Floor(py)),
	}
	if dirX == 0 {
		t.deltaX = math.Inf(1)
	} else {
		t.deltaX = math.Abs(1 / dirX)
	}
	if dirY == 0 {
		t.deltaY = math.Inf(1)
	} else {
		t.deltaY = math.Abs(1 / dirY)
	}
	fx, fy := px-float64(t.cx), py-float64(t.cy)
	t.stepX, t.sideX = 1, (1-fx)*t.deltaX
	if dirX < 0 {
		t.stepX, t.sideX = -1, fx*t.deltaX
	}
	t.stepY, t.sideY = 1, (1-fy)*t.deltaY
	if dirY < 0 {
		t.stepY, t.sideY = -1, fy*t.deltaY
	}
	// 0 * Inf is NaN; an axis the ray never crosses stays at Inf
	if math.IsInf(t.deltaX, 1) {
		t.sideX = t.deltaX
	}
	if math.IsInf(t.deltaY, 1) {
		t.sideY = t.deltaY
	}
	return t
}

func (t *traverser) next() {
	if t.sideX < t.sideY {
		t.dist = t.sideX
		t.sideX += t.deltaX
		t.cx += t.stepX
		t.side = 0
	} else {
		t.dist = t.sideY
		t.sideY += t.deltaY
		t.cy += t.stepY
		t.side = 1
	}
}

func (t *traverser) face() Face {
	if t.side == 0 {
		if t.stepX > 0 {
			return FaceLeft
		}
		return FaceRight
	}
	if t.stepY > 0 {
		return FaceFront
	}
	return FaceBack
}

// Cast follows the ray from (ox, oy) along the unit direction (dirX, dirY)
// sector by sector until it meets a wall, a closed part of a door or the map
// edge. ok is false when nothing is hit within maxDist.
func (m *Map) Cast(ox, oy, dirX, dirY, maxDist float64, maxSteps int) (hit Hit, ok bool) {
	cs := m.CellSize
	px, py := ox/cs, oy/cs
	t := newTraverser(px, py, dirX, dirY)

	for step := 0; step < maxSteps; step++ {
		t.next()
		if t.dist*cs > maxDist {
			return Hit{}, false
		}
		hx, hy := px+t.dist*dirX, py+t.dist*dirY
		var frac float64
		if t.side == 0 {
			frac = hy - math.Floor(hy)
		} else {
			frac = hx - math.Floor(hx)
		}
		// keep textures reading left to right on every face
		if (t.side == 0 && dirX < 0) || (t.side == 1 && dirY > 0) {
			frac = 1 - frac
		}
		if frac >= 1 {
			frac = 0
		}

		s := m.At(t.cx, t.cy)
		h := Hit{
			Distance: t.dist * cs,
			CellX:    t.cx,
			CellY:    t.cy,
			Side:     t.side,
			Face:     t.face(),
			Frac:     frac,
			X:        hx * cs,
			Y:        hy * cs,
			Sector:   s,
		}
		switch {
		case s == nil:
			h.Outside = true
			h.Texture = 1
			return h, true
		case s.Kind == Wall:
			h.Texture = s.Faces[h.Face]
			return h, true
		case s.Kind == Door && s.OpenFraction < 1:
			// the door slides aside; its open part lets the ray through
			if frac >= s.OpenFraction {
				h.Frac = frac - s.OpenFraction
				h.Texture = s.Faces[h.Face]
				return h, true
			}
		}
	}
	return Hit{}, false
}

// LineOfSight reports whether the segment between two world points crosses
// only sectors that do not block sight. The starting sector is not tested,
// and the target's own sector counts as visible. Points outside the map are
// never visible.
func (m *Map) LineOfSight(x0, y0, x1, y1 float64) bool {
	if !m.Contains(x0, y0) || !m.Contains(x1, y1) {
		return false
	}
	cs := m.CellSize
	dx, dy := (x1-x0)/cs, (y1-y0)/cs
	length := math.Hypot(dx, dy)
	tx, ty := m.Cell(x1, y1)
	sx, sy := m.Cell(x0, y0)
	if sx == tx && sy == ty {
		return true
	}
	if length == 0 {
		return true
	}
	t := newTraverser(x0/cs, y0/cs, dx/length, dy/length)
	for step := 0; step < m.Width+m.Height+2; step++ {
		t.next()
		if t.cx == tx && t.cy == ty {
			return true
		}
		if t.dist > length {
			return true
		}
		s := m.At(t.cx, t.cy)
		if s == nil || s.BlocksSight() {
			return false
		}
	}
	return true
}

// CellsOnSegment lists the cells a segment passes through, in order, the
// starting cell included. It is used by tests and debugging tools.
func (m *Map) CellsOnSegment(x0, y0, x1, y1 float64) [][2]int {
	cs := m.CellSize
	dx, dy := (x1-x0)/cs, (y1-y0)/cs
	length := math.Hypot(dx, dy)
	sx, sy := m.Cell(x0, y0)
	cells := [][2]int{{sx, sy}}
	if length == 0 {
		return cells
	}
	tx, ty := m.Cell(x1, y1)
	t := newTraverser(x0/cs, y0/cs, dx/length, dy/length)
	for step := 0; step < m.Width+m.Height+2; step++ {
		if t.cx == tx && t.cy == ty {
			break
		}
		t.next()
		if t.dist > length {
			break
		}
		cells = append(cells, [2]int{t.cx, t.cy})
	}
	return cells
}
