// internal/defs/loader_test.go
package defs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go-raycaster/internal/config"
	"go-raycaster/internal/sector"
	"go-raycaster/pkg/logger"
)

func init() { logger.Silence() }

const sampleYAML = `
name: test
cells:
  - "#####"
  - "#P.e#"
  - "#.#D#"
  - "#..E#"
  - "#####"
enemies:
  - def: officer
    x: 1
    y: 3
    patrol: [[1, 3], [2, 3]]
lights:
  - {x: 2, y: 1, value: 0.5}
`

func TestParseLevelYAML(t *testing.T) {
	lvl, err := ParseLevel([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	if lvl.CellSize != config.CellSize {
		t.Errorf("CellSize = %v, want default %v", lvl.CellSize, config.CellSize)
	}
	if err := lvl.Validate(DefaultEnemies()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	sp := lvl.Spawns()
	if sp.Player.X != 1 || sp.Player.Y != 1 {
		t.Errorf("player at (%d,%d), want (1,1)", sp.Player.X, sp.Player.Y)
	}
	if len(sp.Enemies) != 2 {
		t.Fatalf("got %d enemies, want 2", len(sp.Enemies))
	}
	if sp.Enemies[0].Def != DefaultEnemyID || sp.Enemies[1].Def != "officer" {
		t.Errorf("unexpected enemy defs %q, %q", sp.Enemies[0].Def, sp.Enemies[1].Def)
	}
}

func TestParseLevelJSON(t *testing.T) {
	data := `{"name":"j","cells":["###","#P#","###"]}`
	lvl, err := ParseLevel([]byte(data), FormatJSON)
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	if lvl.Width() != 3 || lvl.Height() != 3 {
		t.Errorf("size = %dx%d, want 3x3", lvl.Width(), lvl.Height())
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		want  []error
	}{
		{
			name:  "empty",
			level: Level{Name: "e"},
			want:  []error{ErrBadDimensions},
		},
		{
			name:  "ragged",
			level: Level{Cells: []string{"###", "#P", "###"}},
			want:  []error{ErrBadDimensions},
		},
		{
			name:  "unknown cell",
			level: Level{Cells: []string{"###", "#P?", "###"}},
			want:  []error{ErrUnknownCell},
		},
		{
			name:  "no player",
			level: Level{Cells: []string{"###", "#.#", "###"}},
			want:  []error{ErrNoPlayerStart},
		},
		{
			name:  "two players",
			level: Level{Cells: []string{"####", "#PP#", "####"}},
			want:  []error{ErrMultiplePlayers},
		},
		{
			name: "spawn problems",
			level: Level{
				Cells: []string{"####", "#P.#", "####"},
				Enemies: []EnemySpawn{
					{Def: "ghost", X: 2, Y: 1},
					{X: 0, Y: 0},
					{X: 9, Y: 9},
				},
			},
			want: []error{ErrUnknownEnemy, ErrSpawnInWall, ErrSpawnOutOfBounds},
		},
		{
			name: "bad face",
			level: Level{
				Cells: []string{"###", "#P#", "###"},
				Faces: []FaceSpec{{X: 1, Y: 1, Face: "sideways", Texture: 2}},
			},
			want: []error{ErrBadFace},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.level.Validate(DefaultEnemies())
			if err == nil {
				t.Fatal("expected an error")
			}
			for _, w := range tc.want {
				if !errors.Is(err, w) {
					t.Errorf("error %q does not wrap %v", err, w)
				}
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("error %T is not a ValidationError", err)
			}
		})
	}
}

func TestBuildMap(t *testing.T) {
	lvl, err := ParseLevel([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	m, err := lvl.BuildMap()
	if err != nil {
		t.Fatalf("BuildMap: %v", err)
	}
	if m.Width != 5 || m.Height != 5 {
		t.Fatalf("map size %dx%d", m.Width, m.Height)
	}
	if k := m.At(3, 2).Kind; k != sector.Door {
		t.Errorf("(3,2) kind = %v, want door", k)
	}
	if !m.At(3, 3).Exit {
		t.Error("(3,3) should be the exit")
	}
	// the wall east of the exit shows the exit texture towards it
	if got := m.At(4, 3).Faces[sector.FaceLeft]; got != config.ExitTexture {
		t.Errorf("exit wall face = %d, want %d", got, config.ExitTexture)
	}
	if got := m.At(2, 1).Light; got != 0.5 {
		t.Errorf("light = %v, want 0.5", got)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("built map fails validation: %v", err)
	}
}

func TestBuildMapFaceOverrideIsSymmetric(t *testing.T) {
	lvl := &Level{
		Name:     "faces",
		CellSize: config.CellSize,
		Cells:    []string{"####", "#P3#", "####"},
		Faces:    []FaceSpec{{X: 1, Y: 1, Face: "right", Texture: 5}},
	}
	m, err := lvl.BuildMap()
	if err != nil {
		t.Fatalf("BuildMap: %v", err)
	}
	if m.At(1, 1).Faces[sector.FaceRight] != 5 || m.At(2, 1).Faces[sector.FaceLeft] != 5 {
		t.Error("face override was not applied to both sides")
	}
	if m.At(2, 1).Faces[sector.FaceRight] != 3 {
		t.Errorf("digit wall texture = %d, want 3", m.At(2, 1).Faces[sector.FaceRight])
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	levelPath := filepath.Join(dir, "e1m1.yaml")
	if err := os.WriteFile(levelPath, []byte("cells: ['###', '#P#', '###']\nnext: e1m2.yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	lvl, err := LoadLevel(levelPath)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if lvl.Name != "e1m1" {
		t.Errorf("Name = %q, want file stem", lvl.Name)
	}
	if lvl.Next != filepath.Join(dir, "e1m2.yaml") {
		t.Errorf("Next = %q, want it resolved next to the level", lvl.Next)
	}

	enemyPath := filepath.Join(dir, "enemies.json")
	if err := os.WriteFile(enemyPath, []byte(`[{"id":"dog","name":"Dog","health":40,"speed":200}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := LoadEnemyDefinitions(enemyPath)
	if err != nil {
		t.Fatalf("LoadEnemyDefinitions: %v", err)
	}
	if _, ok := lib["dog"]; !ok {
		t.Error("loaded definition missing")
	}
	if _, ok := lib[DefaultEnemyID]; !ok {
		t.Error("built-in definitions should remain available")
	}

	if _, err := LoadLevel(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestShippedLevels(t *testing.T) {
	enemies, err := LoadEnemyDefinitions(filepath.Join("..", "..", "levels", "enemies.yaml"))
	if err != nil {
		t.Fatalf("LoadEnemyDefinitions: %v", err)
	}
	if enemies["guard"].Accuracy != 0.75 {
		t.Errorf("guard accuracy = %v, want the file's 0.75", enemies["guard"].Accuracy)
	}
	if _, ok := enemies["dog"]; !ok {
		t.Error("dog definition missing")
	}

	path := filepath.Join("..", "..", "levels", "e1m1.yaml")
	for path != "" {
		lvl, err := LoadLevel(path)
		if err != nil {
			t.Fatalf("LoadLevel(%s): %v", path, err)
		}
		if err := lvl.Validate(enemies); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if _, err := lvl.BuildMap(); err != nil {
			t.Fatalf("%s: BuildMap: %v", path, err)
		}
		path = lvl.Next
	}
}
