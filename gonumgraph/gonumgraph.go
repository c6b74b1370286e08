// Package gonumgraph exposes gonum weighted graphs to the pathfinder engine.
package gonumgraph

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/graph"

	"github.com/pdrpinto/pathfinder"
)

// Graph adapts a directed gonum graph.Weighted to pathfinder.Graph[int64],
// with node IDs as pathfinder nodes.
type Graph struct {
	weighted  graph.Weighted
	heuristic pathfinder.Heuristic[int64]
}

// New wraps g. A nil heuristic searches in Dijkstra mode.
func New(g graph.Weighted, heuristic pathfinder.Heuristic[int64]) *Graph {
	return &Graph{weighted: g, heuristic: heuristic}
}

func (g *Graph) EstimateCost(from, to int64) float64 {
	if g.weighted.Node(to) == nil {
		return math.Inf(1)
	}
	if g.heuristic == nil {
		return 0
	}
	return g.heuristic(from, to)
}

func (g *Graph) CostOfEdge(from, to int64) float64 {
	w, ok := g.weighted.Weight(from, to)
	if !ok {
		return math.Inf(1)
	}
	return w
}

// Neighbors returns successors of node sorted by ID, since gonum iterators
// do not promise a stable order.
func (g *Graph) Neighbors(node int64, buf []int64) []int64 {
	base := len(buf)
	successors := g.weighted.From(node)
	for successors.Next() {
		buf = append(buf, successors.Node().ID())
	}
	slices.Sort(buf[base:])
	return buf
}

// Nodes converts a path of IDs back to gonum nodes.
func (g *Graph) Nodes(path []int64) []graph.Node {
	nodes := make([]graph.Node, len(path))
	for i, id := range path {
		nodes[i] = g.weighted.Node(id)
	}
	return nodes
}
