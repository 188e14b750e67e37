// pkg/grid/pathfinding.go
package grid

import (
	"container/heap"
	"errors"
	"math"

	"go-raycaster/pkg/utils"
)

// ErrNoPath is returned by Route when the goal cannot be reached.
var ErrNoPath = errors.New("grid: no path")

// Path is an ordered route from start to goal, both included.
type Path struct {
	Points []Point
	Cost   float64
}

// Len returns the number of steps in the path.
func (p Path) Len() int {
	if len(p.Points) == 0 {
		return 0
	}
	return len(p.Points) - 1
}

var (
	orthogonal = []Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	diagonal   = []Point{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
)

// Pathfinder runs A* searches over a Grid.
type Pathfinder struct {
	grid     *Grid
	diagonal bool
}

// NewPathfinder creates a pathfinder. With diagonal set, nodes are 8-connected;
// diagonal steps never cut the corner of a wall.
func NewPathfinder(g *Grid, diagonal bool) *Pathfinder {
	return &Pathfinder{grid: g, diagonal: diagonal}
}

// Grid returns the searched grid.
func (pf *Pathfinder) Grid() *Grid { return pf.grid }

// Heuristic estimates the cost between a and b. It never overestimates:
// Manhattan for 4-connected grids, octile for 8-connected ones, both scaled
// by the cheapest node weight.
func (pf *Pathfinder) Heuristic(a, b Point) float64 {
	dx := float64(utils.Abs(a.X - b.X))
	dy := float64(utils.Abs(a.Y - b.Y))
	d := pf.grid.minWeight
	if !pf.diagonal {
		return d * (dx + dy)
	}
	return d*(dx+dy) + (math.Sqrt2-2)*d*math.Min(dx, dy)
}

// StepCost returns the cost of moving from a to the adjacent node b.
func (pf *Pathfinder) StepCost(a, b Point) float64 {
	w := pf.grid.Weight(b.X, b.Y)
	if a.X != b.X && a.Y != b.Y {
		return w * math.Sqrt2
	}
	return w
}

// FindPath finds the cheapest route from start to goal. ok is false when the
// goal is unreachable, out of bounds or a wall; that is a normal outcome.
func (pf *Pathfinder) FindPath(start, goal Point) (Path, bool) {
	g := pf.grid
	if !g.Passable(start.X, start.Y) || !g.Passable(goal.X, goal.Y) {
		return Path{}, false
	}
	if start == goal {
		return Path{Points: []Point{start}}, true
	}

	pq := &PriorityQueue{}
	heap.Init(pq)
	seq := 0
	heap.Push(pq, &searchNode{Point: start, G: 0, F: pf.Heuristic(start, goal), Seq: seq})

	costSoFar := map[Point]float64{start: 0}
	closed := make(map[Point]bool)

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*searchNode)
		if closed[current.Point] {
			continue
		}
		if current.Point == goal {
			return reconstructPath(current), true
		}
		closed[current.Point] = true

		for _, next := range pf.neighbors(current.Point) {
			if closed[next] {
				continue
			}
			newCost := current.G + pf.StepCost(current.Point, next)
			if old, seen := costSoFar[next]; seen && newCost >= old {
				continue
			}
			costSoFar[next] = newCost
			seq++
			heap.Push(pq, &searchNode{
				Point:  next,
				G:      newCost,
				F:      newCost + pf.Heuristic(next, goal),
				Seq:    seq,
				Parent: current,
			})
		}
	}
	return Path{}, false
}

// Route is FindPath reporting an unreachable goal as ErrNoPath.
func (pf *Pathfinder) Route(start, goal Point) (Path, error) {
	p, ok := pf.FindPath(start, goal)
	if !ok {
		return Path{}, ErrNoPath
	}
	return p, nil
}

func (pf *Pathfinder) neighbors(p Point) []Point {
	out := make([]Point, 0, 8)
	for _, d := range orthogonal {
		n := Point{p.X + d.X, p.Y + d.Y}
		if pf.grid.Passable(n.X, n.Y) {
			out = append(out, n)
		}
	}
	if !pf.diagonal {
		return out
	}
	for _, d := range diagonal {
		n := Point{p.X + d.X, p.Y + d.Y}
		if !pf.grid.Passable(n.X, n.Y) {
			continue
		}
		// no corner cutting
		if !pf.grid.Passable(p.X+d.X, p.Y) || !pf.grid.Passable(p.X, p.Y+d.Y) {
			continue
		}
		out = append(out, n)
	}
	return out
}

type searchNode struct {
	Point  Point
	G, F   float64
	Seq    int
	Parent *searchNode
}

// PriorityQueue orders search nodes by F, then by insertion order.
type PriorityQueue []*searchNode

func (pq PriorityQueue) Len() int { return len(pq) }
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].F != pq[j].F {
		return pq[i].F < pq[j].F
	}
	return pq[i].Seq < pq[j].Seq
}
func (pq PriorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *PriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*searchNode))
}
func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

func reconstructPath(node *searchNode) Path {
	path := Path{Cost: node.G}
	for node != nil {
		path.Points = append(path.Points, node.Point)
		node = node.Parent
	}
	for i, j := 0, len(path.Points)-1; i < j; i, j = i+1, j-1 {
		path.Points[i], path.Points[j] = path.Points[j], path.Points[i]
	}
	return path
}
