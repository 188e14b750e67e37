// internal/defs/level.go
package defs

import (
	"errors"
	"strings"

	"go-raycaster/internal/component"
)

// Cell characters understood in Level.Cells.
const (
	CellFloor  = '.'
	CellSpace  = ' '
	CellWall   = '#'
	CellDoor   = 'D'
	CellExit   = 'E'
	CellPlayer = 'P'
	CellEnemy  = 'e'
	CellHealth = '+'
	CellAmmo   = 'a'
	CellObject = 'o'
)

// Level is the descriptor a world is built from.
type Level struct {
	Name     string         `json:"name" yaml:"name"`
	CellSize float64        `json:"cell_size,omitempty" yaml:"cell_size,omitempty"`
	Cells    []string       `json:"cells" yaml:"cells"`
	Textures map[string]int `json:"textures,omitempty" yaml:"textures,omitempty"` // wall char -> texture id
	Faces    []FaceSpec     `json:"faces,omitempty" yaml:"faces,omitempty"`
	Lights   []LightSpec    `json:"lights,omitempty" yaml:"lights,omitempty"`
	Player   *PlayerSpawn   `json:"player,omitempty" yaml:"player,omitempty"`
	Enemies  []EnemySpawn   `json:"enemies,omitempty" yaml:"enemies,omitempty"`
	Items    []ItemSpawn    `json:"items,omitempty" yaml:"items,omitempty"`
	Objects  []ObjectSpawn  `json:"objects,omitempty" yaml:"objects,omitempty"`
	Next     string         `json:"next,omitempty" yaml:"next,omitempty"` // path of the following level
}

// FaceSpec overrides the texture of one face of one cell.
type FaceSpec struct {
	X       int    `json:"x" yaml:"x"`
	Y       int    `json:"y" yaml:"y"`
	Face    string `json:"face" yaml:"face"` // front, back, left, right, top, bottom
	Texture int    `json:"texture" yaml:"texture"`
}

// LightSpec sets the ambient light of a cell.
type LightSpec struct {
	X     int     `json:"x" yaml:"x"`
	Y     int     `json:"y" yaml:"y"`
	Value float64 `json:"value" yaml:"value"`
}

// PlayerSpawn is the player start pose, in cells and degrees.
type PlayerSpawn struct {
	X     int     `json:"x" yaml:"x"`
	Y     int     `json:"y" yaml:"y"`
	Angle float64 `json:"angle" yaml:"angle"`
}

// EnemySpawn places one enemy. Patrol lists cells visited in a loop.
type EnemySpawn struct {
	Def    string   `json:"def" yaml:"def"`
	X      int      `json:"x" yaml:"x"`
	Y      int      `json:"y" yaml:"y"`
	Angle  float64  `json:"angle" yaml:"angle"`
	Patrol [][2]int `json:"patrol,omitempty" yaml:"patrol,omitempty"`
}

// ItemSpawn places one pickup.
type ItemSpawn struct {
	Kind   component.ItemKind `json:"kind" yaml:"kind"`
	Amount int                `json:"amount" yaml:"amount"`
	X      int                `json:"x" yaml:"x"`
	Y      int                `json:"y" yaml:"y"`
}

// ObjectSpawn places a decoration, optionally blocking movement.
type ObjectSpawn struct {
	X        int  `json:"x" yaml:"x"`
	Y        int  `json:"y" yaml:"y"`
	Blocking bool `json:"blocking" yaml:"blocking"`
	Texture  int  `json:"texture" yaml:"texture"`
}

// Width returns the number of columns.
func (l *Level) Width() int {
	if len(l.Cells) == 0 {
		return 0
	}
	return len(l.Cells[0])
}

// Height returns the number of rows.
func (l *Level) Height() int { return len(l.Cells) }

// CellAt returns the character at (x, y), or 0 outside the grid.
func (l *Level) CellAt(x, y int) byte {
	if y < 0 || y >= len(l.Cells) || x < 0 || x >= len(l.Cells[y]) {
		return 0
	}
	return l.Cells[y][x]
}

// IsWallChar reports whether c denotes a wall: '#' or a texture digit 1-9, or
// any character mapped in Textures.
func (l *Level) IsWallChar(c byte) bool {
	if c == CellWall || (c >= '1' && c <= '9') {
		return true
	}
	_, ok := l.Textures[string(c)]
	return ok
}

// WallTexture returns the texture id for a wall character.
func (l *Level) WallTexture(c byte) int {
	if id, ok := l.Textures[string(c)]; ok {
		return id
	}
	if c >= '1' && c <= '9' {
		return int(c - '0')
	}
	return 1
}

func knownCell(c byte) bool {
	switch c {
	case CellFloor, CellSpace, CellWall, CellDoor, CellExit, CellPlayer, CellEnemy, CellHealth, CellAmmo, CellObject:
		return true
	}
	return false
}

// Blocking reports whether a spawn may not be placed in the cell.
func (l *Level) blocking(x, y int) bool {
	c := l.CellAt(x, y)
	return l.IsWallChar(c) || c == CellDoor
}

// Validate checks the descriptor against the enemy library. Every problem is
// reported; the result wraps the sentinel errors of this package.
func (l *Level) Validate(enemies EnemyLibrary) error {
	var errs []error
	add := func(what string, x, y int, err error) {
		errs = append(errs, &ValidationError{Level: l.Name, What: what, X: x, Y: y, Err: err})
	}

	w, h := l.Width(), l.Height()
	if w == 0 || h == 0 {
		add("cells", 0, 0, ErrBadDimensions)
		return errors.Join(errs...)
	}
	players := 0
	for y, row := range l.Cells {
		if len(row) != w {
			add("row", 0, y, ErrBadDimensions)
			continue
		}
		for x := 0; x < w; x++ {
			c := row[x]
			if !knownCell(c) && !l.IsWallChar(c) {
				add("cell "+strings.TrimSpace(string(c)), x, y, ErrUnknownCell)
			}
			if c == CellPlayer {
				players++
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if l.Player != nil {
		players++
		l.checkSpawn("player", l.Player.X, l.Player.Y, add)
	}
	switch {
	case players == 0:
		add("player", 0, 0, ErrNoPlayerStart)
	case players > 1:
		add("player", 0, 0, ErrMultiplePlayers)
	}

	for _, e := range l.Enemies {
		l.checkSpawn("enemy", e.X, e.Y, add)
		id := e.Def
		if id == "" {
			id = DefaultEnemyID
		}
		if _, ok := enemies[id]; !ok {
			add("enemy "+id, e.X, e.Y, ErrUnknownEnemy)
		}
		for _, p := range e.Patrol {
			l.checkSpawn("patrol point", p[0], p[1], add)
		}
	}
	for _, it := range l.Items {
		l.checkSpawn("item", it.X, it.Y, add)
	}
	for _, o := range l.Objects {
		l.checkSpawn("object", o.X, o.Y, add)
	}
	for _, f := range l.Faces {
		if f.X < 0 || f.Y < 0 || f.X >= w || f.Y >= h {
			add("face", f.X, f.Y, ErrSpawnOutOfBounds)
		}
		if _, ok := FaceByName(f.Face); !ok {
			add("face "+f.Face, f.X, f.Y, ErrBadFace)
		}
	}
	for _, lt := range l.Lights {
		if lt.X < 0 || lt.Y < 0 || lt.X >= w || lt.Y >= h {
			add("light", lt.X, lt.Y, ErrSpawnOutOfBounds)
		}
	}
	if _, ok := enemies[DefaultEnemyID]; !ok {
		for y, row := range l.Cells {
			if x := strings.IndexByte(row, CellEnemy); x >= 0 {
				add("enemy "+DefaultEnemyID, x, y, ErrUnknownEnemy)
			}
		}
	}
	return errors.Join(errs...)
}

func (l *Level) checkSpawn(what string, x, y int, add func(string, int, int, error)) {
	if x < 0 || y < 0 || x >= l.Width() || y >= l.Height() {
		add(what, x, y, ErrSpawnOutOfBounds)
		return
	}
	if l.blocking(x, y) {
		add(what, x, y, ErrSpawnInWall)
	}
}

// FaceByName maps a face name to its index in sector.Face order
// (front, back, left, right, top, bottom).
func FaceByName(name string) (int, bool) {
	switch strings.ToLower(name) {
	case "front", "north":
		return 0, true
	case "back", "south":
		return 1, true
	case "left", "west":
		return 2, true
	case "right", "east":
		return 3, true
	case "top", "ceiling":
		return 4, true
	case "bottom", "floor":
		return 5, true
	}
	return 0, false
}
