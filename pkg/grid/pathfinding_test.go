package grid

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func pathCost(pf *Pathfinder, pts []Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pf.StepCost(pts[i-1], pts[i])
	}
	return total
}

func TestFindPathAroundCentreWall(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(1, 1, 0)
	pf := NewPathfinder(g, true)

	path, ok := pf.FindPath(Point{0, 0}, Point{2, 2})
	if !ok {
		t.Fatal("expected a path")
	}
	want := []Point{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}}
	if !reflect.DeepEqual(path.Points, want) {
		t.Fatalf("path = %v, want %v", path.Points, want)
	}
	if path.Cost != 4 {
		t.Errorf("cost = %v, want 4", path.Cost)
	}
	if path.Len() != 4 {
		t.Errorf("len = %d, want 4", path.Len())
	}
}

func TestFindPathDeterministic(t *testing.T) {
	g := NewGrid(8, 6)
	for y := 0; y < 5; y++ {
		g.Set(4, y, 0)
	}
	g.Set(2, 3, 3)
	pf := NewPathfinder(g, true)

	first, ok := pf.FindPath(Point{0, 0}, Point{7, 0})
	if !ok {
		t.Fatal("expected a path")
	}
	for i := 0; i < 10; i++ {
		again, _ := pf.FindPath(Point{0, 0}, Point{7, 0})
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, again.Points, first.Points)
		}
	}
	if got := pathCost(pf, first.Points); math.Abs(got-first.Cost) > 1e-9 {
		t.Errorf("cost %v does not equal sum of edges %v", first.Cost, got)
	}
}

func TestFindPathDiagonalCost(t *testing.T) {
	g := NewGrid(4, 4)
	pf := NewPathfinder(g, true)
	path, ok := pf.FindPath(Point{0, 0}, Point{3, 3})
	if !ok {
		t.Fatal("expected a path")
	}
	if math.Abs(path.Cost-3*math.Sqrt2) > 1e-9 {
		t.Errorf("cost = %v, want 3*sqrt2", path.Cost)
	}
}

func TestFindPathOrthogonalOnly(t *testing.T) {
	g := NewGrid(4, 4)
	pf := NewPathfinder(g, false)
	path, ok := pf.FindPath(Point{0, 0}, Point{3, 3})
	if !ok {
		t.Fatal("expected a path")
	}
	if path.Cost != 6 {
		t.Errorf("cost = %v, want 6", path.Cost)
	}
	for i := 1; i < len(path.Points); i++ {
		a, b := path.Points[i-1], path.Points[i]
		if a.X != b.X && a.Y != b.Y {
			t.Fatalf("diagonal step %v -> %v in 4-connected search", a, b)
		}
	}
}

func TestFindPathWeightedDetour(t *testing.T) {
	// a cheap detour beats a straight line through swamp
	g := NewGrid(5, 3)
	g.Set(1, 1, 10)
	g.Set(2, 1, 10)
	g.Set(3, 1, 10)
	pf := NewPathfinder(g, false)
	path, ok := pf.FindPath(Point{0, 1}, Point{4, 1})
	if !ok {
		t.Fatal("expected a path")
	}
	if path.Cost != 6 {
		t.Errorf("cost = %v, want 6", path.Cost)
	}
}

func TestFindPathNoRoute(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *Grid)
		start Point
		goal  Point
	}{
		{
			name: "goal walled in",
			setup: func(g *Grid) {
				for _, p := range []Point{{3, 2}, {5, 2}, {4, 1}, {4, 3}, {3, 1}, {5, 1}, {3, 3}, {5, 3}} {
					g.Set(p.X, p.Y, 0)
				}
			},
			start: Point{0, 0},
			goal:  Point{4, 2},
		},
		{
			name:  "goal is wall",
			setup: func(g *Grid) { g.Set(2, 2, 0) },
			start: Point{0, 0},
			goal:  Point{2, 2},
		},
		{
			name:  "out of bounds",
			setup: func(g *Grid) {},
			start: Point{0, 0},
			goal:  Point{10, 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(6, 5)
			tt.setup(g)
			pf := NewPathfinder(g, true)
			if _, ok := pf.FindPath(tt.start, tt.goal); ok {
				t.Error("expected no path")
			}
			if _, err := pf.Route(tt.start, tt.goal); !errors.Is(err, ErrNoPath) {
				t.Errorf("Route err = %v, want ErrNoPath", err)
			}
		})
	}
}

func TestFindPathSameCell(t *testing.T) {
	pf := NewPathfinder(NewGrid(2, 2), true)
	path, ok := pf.FindPath(Point{1, 1}, Point{1, 1})
	if !ok || len(path.Points) != 1 || path.Cost != 0 {
		t.Errorf("got %v %v, want single point path", path, ok)
	}
}

func TestHeuristicAdmissible(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
	}{
		{"unit weights", 1},
		{"fractional weights", 0.5},
		{"heavy weights", 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrid(7, 7)
			for y := 0; y < 7; y++ {
				for x := 0; x < 7; x++ {
					g.Set(x, y, tc.weight)
				}
			}
			g.Set(3, 2, 0)
			g.Set(3, 3, 0)
			g.Set(3, 4, 0)
			for _, diagonal := range []bool{false, true} {
				pf := NewPathfinder(g, diagonal)
				start := Point{0, 3}
				for y := 0; y < 7; y++ {
					for x := 0; x < 7; x++ {
						p, ok := pf.FindPath(start, Point{x, y})
						if !ok {
							continue
						}
						if h := pf.Heuristic(start, Point{x, y}); h > p.Cost+1e-9 {
							t.Errorf("diagonal=%v: h(%d,%d) = %v exceeds true cost %v", diagonal, x, y, h, p.Cost)
						}
					}
				}
			}
		})
	}
}

func TestFractionalWeightDiagonalCost(t *testing.T) {
	g := NewGrid(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			g.Set(x, y, 0.5)
		}
	}
	pf := NewPathfinder(g, true)
	p, ok := pf.FindPath(Point{0, 0}, Point{1, 1})
	if !ok {
		t.Fatal("no path across an open grid")
	}
	want := 0.5 * math.Sqrt2
	if math.Abs(p.Cost-want) > 1e-9 {
		t.Errorf("cost = %v, want %v", p.Cost, want)
	}
	if h := pf.Heuristic(Point{0, 0}, Point{1, 1}); math.Abs(h-want) > 1e-9 {
		t.Errorf("heuristic = %v, want the exact diagonal cost %v", h, want)
	}
}
