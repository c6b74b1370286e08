// Package grid is a 2D weighted occupancy grid usable as a pathfinder.Graph.
//
// Cells are walls or floor with a weight from 1 to 9; entering a cell costs
// its weight, times √2 for a diagonal move.
package grid

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/pdrpinto/pathfinder"
)

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

func (p Point) String() string { return fmt.Sprintf("%d,%d", p.X, p.Y) }

// ParsePoint parses "x,y".
func ParsePoint(s string) (Point, error) {
	var p Point
	if _, err := fmt.Sscanf(s, "%d,%d", &p.X, &p.Y); err != nil {
		return Point{}, fmt.Errorf("grid: bad point %q: %w", s, err)
	}
	return p, nil
}

// MaxWeight is the heaviest floor cell.
const MaxWeight = 9

const wall = 0

var (
	ErrEmptyMap    = errors.New("grid: empty map")
	ErrOutOfBounds = errors.New("grid: point out of bounds")
)

// Grid implements pathfinder.Graph[Point]. It is only read during a search,
// so concurrent searches over an unchanging Grid are safe.
type Grid struct {
	Width, Height int

	// Diagonal enables 8-connected movement. Diagonal moves may not cut
	// corners of walls.
	Diagonal bool

	// Start and Goal are set by map markers, if present.
	Start, Goal       Point
	HasStart, HasGoal bool

	cells     []uint8
	heuristic pathfinder.Heuristic[Point]
}

// New returns an all-floor grid of weight 1.
func New(width, height int) *Grid {
	g := &Grid{Width: width, Height: height, cells: make([]uint8, width*height)}
	for i := range g.cells {
		g.cells[i] = 1
	}
	return g
}

// In reports whether p is inside the grid.
func (g *Grid) In(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Walkable reports whether p is inside the grid and not a wall.
func (g *Grid) Walkable(p Point) bool { return g.In(p) && g.cells[p.Y*g.Width+p.X] != wall }

// Weight returns the weight of p, 0 for walls and points outside.
func (g *Grid) Weight(p Point) int {
	if !g.In(p) {
		return 0
	}
	return int(g.cells[p.Y*g.Width+p.X])
}

// SetWall makes p a wall.
func (g *Grid) SetWall(p Point) error { return g.SetWeight(p, wall) }

// SetWeight sets the weight of p; 0 makes it a wall.
func (g *Grid) SetWeight(p Point, weight int) error {
	if !g.In(p) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	if weight < 0 || weight > MaxWeight {
		return fmt.Errorf("grid: weight %d out of range", weight)
	}
	g.cells[p.Y*g.Width+p.X] = uint8(weight)
	return nil
}

// Walls returns every wall cell.
func (g *Grid) Walls() []Point {
	var walls []Point
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.cells[y*g.Width+x] == wall {
				walls = append(walls, Point{x, y})
			}
		}
	}
	return walls
}

// SetHeuristic overrides the estimate used by EstimateCost. A nil heuristic
// restores the default: Manhattan, or Octile when Diagonal is set.
func (g *Grid) SetHeuristic(h pathfinder.Heuristic[Point]) { g.heuristic = h }

func (g *Grid) EstimateCost(from, to Point) float64 {
	if !g.Walkable(to) {
		return math.Inf(1)
	}
	if g.heuristic != nil {
		return g.heuristic(from, to)
	}
	if g.Diagonal {
		return Octile(from, to)
	}
	return Manhattan(from, to)
}

func (g *Grid) CostOfEdge(from, to Point) float64 {
	cost := float64(g.Weight(to))
	if from.X != to.X && from.Y != to.Y {
		cost *= math.Sqrt2
	}
	return cost
}

var (
	orthogonal = []Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = []Point{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func (g *Grid) Neighbors(p Point, buf []Point) []Point {
	for _, d := range orthogonal {
		np := Point{p.X + d.X, p.Y + d.Y}
		if g.Walkable(np) {
			buf = append(buf, np)
		}
	}
	if !g.Diagonal {
		return buf
	}
	for _, d := range diagonal {
		np := Point{p.X + d.X, p.Y + d.Y}
		if g.Walkable(np) && g.Walkable(Point{p.X + d.X, p.Y}) && g.Walkable(Point{p.X, p.Y + d.Y}) {
			buf = append(buf, np)
		}
	}
	return buf
}

// Clustered returns a grid with walls laid by random walks. Cells in keep are
// never walls.
func Clustered(width, height, clusters, steps int, density float64, r *rand.Rand, keep ...Point) *Grid {
	g := New(width, height)
	kept := make(map[Point]bool, len(keep))
	for _, p := range keep {
		kept[p] = true
	}
	for c := 0; c < clusters; c++ {
		p := Point{r.Intn(width), r.Intn(height)}
		for s := 0; s < steps; s++ {
			if r.Float64() < density && !kept[p] {
				g.cells[p.Y*width+p.X] = wall
			}
			d := orthogonal[r.Intn(4)]
			np := Point{p.X + d.X, p.Y + d.Y}
			if g.In(np) {
				p = np
			}
		}
	}
	return g
}

// PathCost sums the edge costs along path.
func (g *Grid) PathCost(path []Point) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += g.CostOfEdge(path[i-1], path[i])
	}
	return total
}
