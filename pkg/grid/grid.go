// pkg/grid/grid.go
package grid

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Node is one cell of the weighted grid. Weight 0 is a wall, anything above
// zero is traversable and multiplies the cost of stepping onto the node.
type Node struct {
	X, Y   int
	Weight float64
}

// Passable reports whether the node can be entered.
func (n Node) Passable() bool { return n.Weight > 0 }

// Grid is a dense rectangular set of nodes indexed by (x, y).
type Grid struct {
	Width, Height int
	nodes         []Node
	minWeight     float64
}

// NewGrid creates a grid where every node has weight 1.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		Width:     width,
		Height:    height,
		nodes:     make([]Node, width*height),
		minWeight: 1,
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.nodes[y*width+x] = Node{X: x, Y: y, Weight: 1}
		}
	}
	return g
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// Set changes the weight of a node. Negative weights are stored as walls.
func (g *Grid) Set(x, y int, weight float64) {
	if !g.InBounds(x, y) {
		return
	}
	if weight < 0 {
		weight = 0
	}
	old := g.nodes[y*g.Width+x].Weight
	g.nodes[y*g.Width+x].Weight = weight
	if weight > 0 && weight < g.minWeight {
		g.minWeight = weight
	} else if old == g.minWeight {
		g.recomputeMinWeight()
	}
}

// At returns the node at (x, y).
func (g *Grid) At(x, y int) (Node, bool) {
	if !g.InBounds(x, y) {
		return Node{}, false
	}
	return g.nodes[y*g.Width+x], true
}

// Passable reports whether (x, y) is inside the grid and not a wall.
func (g *Grid) Passable(x, y int) bool {
	n, ok := g.At(x, y)
	return ok && n.Passable()
}

// Weight returns the weight of (x, y), 0 when out of bounds.
func (g *Grid) Weight(x, y int) float64 {
	n, _ := g.At(x, y)
	return n.Weight
}

func (g *Grid) recomputeMinWeight() {
	min := 0.0
	for _, n := range g.nodes {
		if n.Weight > 0 && (min == 0 || n.Weight < min) {
			min = n.Weight
		}
	}
	if min == 0 {
		min = 1
	}
	g.minWeight = min
}
