// internal/sector/map.go
package sector

import (
	"errors"
	"fmt"
	"math"

	"go-raycaster/internal/config"
	"go-raycaster/pkg/grid"
)

// ErrAsymmetricFaces is returned by Validate when two neighbours disagree on
// whether the boundary between them is solid.
var ErrAsymmetricFaces = errors.New("sector: asymmetric face adjacency")

// Map is the sector grid of a level, indexed by integer (x, y).
type Map struct {
	Width, Height int
	CellSize      float64
	sectors       []Sector
}

// NewMap creates a map of floor sectors.
func NewMap(width, height int, cellSize float64) *Map {
	if cellSize <= 0 {
		cellSize = config.CellSize
	}
	m := &Map{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		sectors:  make([]Sector, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.sectors[y*width+x] = Sector{X: x, Y: y, Kind: Floor}
		}
	}
	return m
}

// InBounds reports whether (x, y) is a cell of the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// At returns the sector at (x, y), or nil outside the map.
func (m *Map) At(x, y int) *Sector {
	if !m.InBounds(x, y) {
		return nil
	}
	return &m.sectors[y*m.Width+x]
}

// Each calls fn for every sector in row-major order.
func (m *Map) Each(fn func(s *Sector)) {
	for i := range m.sectors {
		fn(&m.sectors[i])
	}
}

// Cell returns the cell containing the world position. A position exactly on
// a boundary belongs to the cell with the higher index.
func (m *Map) Cell(wx, wy float64) (x, y int) {
	return int(math.Floor(wx / m.CellSize)), int(math.Floor(wy / m.CellSize))
}

// Locate returns the sector containing the world position, or nil outside the map.
func (m *Map) Locate(wx, wy float64) *Sector {
	x, y := m.Cell(wx, wy)
	return m.At(x, y)
}

// Contains reports whether the world position lies inside the map.
func (m *Map) Contains(wx, wy float64) bool {
	return m.Locate(wx, wy) != nil
}

// Center returns the world position of the centre of cell (x, y).
func (m *Map) Center(x, y int) (wx, wy float64) {
	return (float64(x) + 0.5) * m.CellSize, (float64(y) + 0.5) * m.CellSize
}

// Blocked reports whether a body may not occupy the world position.
// Everything outside the map is blocked.
func (m *Map) Blocked(wx, wy float64) bool {
	s := m.Locate(wx, wy)
	return s == nil || !s.Passable()
}

// BoxBlocked reports whether any corner of the square of half-size r centred
// on (wx, wy) is blocked.
func (m *Map) BoxBlocked(wx, wy, r float64) bool {
	// shrink by a hair so a body touching a wall is not inside it
	e := r - 1e-6
	return m.Blocked(wx-e, wy-e) || m.Blocked(wx+e, wy-e) ||
		m.Blocked(wx-e, wy+e) || m.Blocked(wx+e, wy+e)
}

// AutoFace gives every solid/non-solid boundary a face texture on both sides,
// using the solid sector's texture. Map edges get faces on edge floors.
func (m *Map) AutoFace(texture func(s *Sector) int) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			s := m.At(x, y)
			for _, f := range SideFaces {
				dx, dy := f.Offset()
				n := m.At(x+dx, y+dy)
				switch {
				case s.Solid():
					if s.Faces[f] == 0 {
						s.Faces[f] = texture(s)
					}
				case n == nil:
					if s.Faces[f] == 0 {
						s.Faces[f] = 1
					}
				case n.Solid():
					if s.Faces[f] == 0 {
						s.Faces[f] = texture(n)
					}
				}
			}
		}
	}
}

// Validate checks face symmetry: for every pair of neighbours, A's face
// towards B is solid exactly when B's face towards A is solid.
func (m *Map) Validate() error {
	var errs []error
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			s := m.At(x, y)
			for _, f := range [2]Face{FaceRight, FaceBack} {
				dx, dy := f.Offset()
				n := m.At(x+dx, y+dy)
				if n == nil {
					continue
				}
				a, b := s.Faces[f] != 0, n.Faces[f.Opposite()] != 0
				solid := s.Solid() || n.Solid()
				if a != b || (solid && !a) {
					errs = append(errs, fmt.Errorf("%w: (%d,%d) and (%d,%d)", ErrAsymmetricFaces, x, y, x+dx, y+dy))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// PathGrid derives the pathfinding grid: floors weigh 1, doors
// config.DoorPathWeight, walls 0.
func (m *Map) PathGrid() *grid.Grid {
	g := grid.NewGrid(m.Width, m.Height)
	for _, s := range m.sectors {
		switch s.Kind {
		case Wall:
			g.Set(s.X, s.Y, 0)
		case Door:
			g.Set(s.X, s.Y, config.DoorPathWeight)
		}
	}
	return g
}
