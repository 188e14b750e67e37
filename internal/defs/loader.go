// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"go-raycaster/internal/component"
	"go-raycaster/internal/config"
	"go-raycaster/internal/sector"
	"go-raycaster/pkg/logger"
)

// Format selects the decoder for a descriptor file.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatOf picks the format from the file extension. Anything that is not
// .json is read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

func decode(data []byte, format Format, v any) error {
	if format == FormatJSON {
		return json.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}

// LoadLevel reads and parses a level descriptor. It does not validate it.
func LoadLevel(path string) (*Level, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}
	lvl, err := ParseLevel(file, FormatOf(path))
	if err != nil {
		return nil, err
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if lvl.Next != "" && !filepath.IsAbs(lvl.Next) {
		lvl.Next = filepath.Join(filepath.Dir(path), lvl.Next)
	}
	return lvl, nil
}

// ParseLevel decodes a level descriptor.
func ParseLevel(data []byte, format Format) (*Level, error) {
	var lvl Level
	if err := decode(data, format, &lvl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal level: %w", err)
	}
	if lvl.CellSize <= 0 {
		lvl.CellSize = config.CellSize
	}
	return &lvl, nil
}

// LoadEnemyDefinitions reads an enemy definition file. The result is merged
// over the built-in library so levels can rely on the defaults.
func LoadEnemyDefinitions(path string) (EnemyLibrary, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy definitions file: %w", err)
	}

	var enemyDefs []EnemyDefinition
	if err := decode(file, FormatOf(path), &enemyDefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal enemy definitions: %w", err)
	}

	loaded := make(EnemyLibrary, len(enemyDefs))
	for _, def := range enemyDefs {
		if def.ID == "" {
			return nil, fmt.Errorf("enemy definition %q: %w", def.Name, ErrUnknownEnemy)
		}
		loaded[def.ID] = def
	}

	logger.Log.Infof("Loaded %d enemy definitions", len(loaded))
	return DefaultEnemies().Merge(loaded), nil
}

// Spawns is every placement of a level, collected from both the cell
// characters and the explicit lists.
type Spawns struct {
	Player  PlayerSpawn
	Enemies []EnemySpawn
	Items   []ItemSpawn
	Objects []ObjectSpawn
}

// Spawns collects the placements. The explicit player entry wins over a 'P'
// cell; Validate rejects levels that have both.
func (l *Level) Spawns() Spawns {
	var s Spawns
	for y, row := range l.Cells {
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case CellPlayer:
				s.Player = PlayerSpawn{X: x, Y: y}
			case CellEnemy:
				s.Enemies = append(s.Enemies, EnemySpawn{Def: DefaultEnemyID, X: x, Y: y})
			case CellHealth:
				s.Items = append(s.Items, ItemSpawn{Kind: component.ItemHealth, Amount: 25, X: x, Y: y})
			case CellAmmo:
				s.Items = append(s.Items, ItemSpawn{Kind: component.ItemAmmo, Amount: 8, X: x, Y: y})
			case CellObject:
				s.Objects = append(s.Objects, ObjectSpawn{X: x, Y: y, Blocking: true, Texture: 1})
			}
		}
	}
	if l.Player != nil {
		s.Player = *l.Player
	}
	for _, e := range l.Enemies {
		if e.Def == "" {
			e.Def = DefaultEnemyID
		}
		s.Enemies = append(s.Enemies, e)
	}
	s.Items = append(s.Items, l.Items...)
	s.Objects = append(s.Objects, l.Objects...)
	return s
}

// BuildMap creates the sector grid. Wall faces are filled automatically;
// explicit face overrides are applied to both sides of a boundary so the
// result keeps face symmetry.
func (l *Level) BuildMap() (*sector.Map, error) {
	w, h := l.Width(), l.Height()
	if w == 0 || h == 0 {
		return nil, &ValidationError{Level: l.Name, What: "cells", Err: ErrBadDimensions}
	}
	m := sector.NewMap(w, h, l.CellSize)
	wallTex := make(map[*sector.Sector]int)
	for y, row := range l.Cells {
		for x := 0; x < w && x < len(row); x++ {
			s := m.At(x, y)
			c := row[x]
			switch {
			case l.IsWallChar(c):
				s.Kind = sector.Wall
				wallTex[s] = l.WallTexture(c)
			case c == CellDoor:
				s.Kind = sector.Door
				wallTex[s] = config.DoorTexture
			case c == CellExit:
				s.Exit = true
			}
		}
	}
	m.AutoFace(func(s *sector.Sector) int {
		if t, ok := wallTex[s]; ok {
			return t
		}
		return 1
	})
	m.Each(func(s *sector.Sector) {
		// the exit switch is drawn on the walls around it
		if !s.Exit {
			return
		}
		for _, f := range sector.SideFaces {
			dx, dy := f.Offset()
			if n := m.At(s.X+dx, s.Y+dy); n != nil && n.Kind == sector.Wall {
				s.Faces[f] = config.ExitTexture
				n.Faces[f.Opposite()] = config.ExitTexture
			}
		}
	})

	for _, f := range l.Faces {
		idx, ok := FaceByName(f.Face)
		if !ok || !m.InBounds(f.X, f.Y) {
			return nil, &ValidationError{Level: l.Name, What: "face " + f.Face, X: f.X, Y: f.Y, Err: ErrBadFace}
		}
		face := sector.Face(idx)
		s := m.At(f.X, f.Y)
		if f.Texture <= 0 && s.Solid() {
			return nil, &ValidationError{Level: l.Name, What: "face " + f.Face, X: f.X, Y: f.Y, Err: ErrBadFace}
		}
		s.Faces[face] = f.Texture
		dx, dy := face.Offset()
		if n := m.At(f.X+dx, f.Y+dy); n != nil && (dx != 0 || dy != 0) {
			n.Faces[face.Opposite()] = f.Texture
		}
	}
	for _, lt := range l.Lights {
		if s := m.At(lt.X, lt.Y); s != nil {
			s.Light = clamp01(lt.Value)
		}
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("level %q: %w", l.Name, err)
	}
	return m, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
