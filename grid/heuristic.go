package grid

import (
	"fmt"
	"math"
	"sort"

	"github.com/pdrpinto/pathfinder"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Manhattan is admissible for 4-connected movement with weights >= 1.
func Manhattan(a, b Point) float64 {
	return float64(abs(a.X-b.X) + abs(a.Y-b.Y))
}

// Octile is admissible for 8-connected movement with weights >= 1.
func Octile(a, b Point) float64 {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx < dy {
		dx, dy = dy, dx
	}
	return float64(dx-dy) + math.Sqrt2*float64(dy)
}

// Euclidean is admissible for either movement mode.
func Euclidean(a, b Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// Zero turns the search into Dijkstra's algorithm.
func Zero(_, _ Point) float64 { return 0 }

var heuristics = map[string]pathfinder.Heuristic[Point]{
	"manhattan": Manhattan,
	"octile":    Octile,
	"euclidean": Euclidean,
	"zero":      Zero,
}

// HeuristicNames lists the names accepted by HeuristicByName.
func HeuristicNames() []string {
	names := make([]string, 0, len(heuristics))
	for name := range heuristics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HeuristicByName returns a named heuristic. The empty name selects the grid
// default and returns nil.
func HeuristicByName(name string) (pathfinder.Heuristic[Point], error) {
	if name == "" {
		return nil, nil
	}
	h, ok := heuristics[name]
	if !ok {
		return nil, fmt.Errorf("grid: unknown heuristic %q (want one of %v)", name, HeuristicNames())
	}
	return h, nil
}
