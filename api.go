package pathfinder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Graph is the capability set a search needs from the embedding application.
// N must be comparable so it can be used in maps.
type Graph[NodeType comparable] interface {
	// EstimateCost is a lower bound on the cost from one node to another. It
	// returns +Inf when to is provably unreachable from from.
	EstimateCost(from, to NodeType) float64

	// CostOfEdge is the exact cost of the directed edge from -> to, where to
	// is one of Neighbors(from).
	CostOfEdge(from, to NodeType) float64

	// Neighbors appends the nodes reachable from node in one hop to buf[:0]
	// and returns the result. It must be deterministic within one search.
	Neighbors(node NodeType, buf []NodeType) []NodeType
}

// UnitCost can be embedded in a Graph implementation to give every edge a
// cost of 1.
type UnitCost[NodeType comparable] struct{}

func (UnitCost[NodeType]) CostOfEdge(_, _ NodeType) float64 { return 1 }

// Heuristic returns the estimated cost from node a to node b
type Heuristic[NodeType comparable] func(from NodeType, to NodeType) float64

// ZeroHeuristic turns A* into Dijkstra's algorithm.
func ZeroHeuristic[NodeType comparable](_, _ NodeType) float64 { return 0 }

// Funcs adapts plain functions to Graph. A nil Estimate is ZeroHeuristic and
// a nil EdgeCost gives every edge a cost of 1.
type Funcs[NodeType comparable] struct {
	Estimate Heuristic[NodeType]
	EdgeCost func(from, to NodeType) float64
	Adjacent func(node NodeType, buf []NodeType) []NodeType
}

func (f Funcs[NodeType]) EstimateCost(from, to NodeType) float64 {
	if f.Estimate == nil {
		return 0
	}
	return f.Estimate(from, to)
}

func (f Funcs[NodeType]) CostOfEdge(from, to NodeType) float64 {
	if f.EdgeCost == nil {
		return 1
	}
	return f.EdgeCost(from, to)
}

func (f Funcs[NodeType]) Neighbors(node NodeType, buf []NodeType) []NodeType {
	if f.Adjacent == nil {
		return buf[:0]
	}
	return f.Adjacent(node, buf[:0])
}

// Result contains the outcome of a search
type Result[NodeType comparable] struct {
	// Path runs from start to goal inclusive. It is nil when Found is false.
	Path          []NodeType
	TotalCost     float64
	ExpandedNodes int
	Found         bool

	// Table holds the best known step for every discovered node. It is
	// populated whether or not a path was found.
	Table *StepTable[NodeType]
}

// SearchStats summarises one finished search for an Observer.
type SearchStats struct {
	Found         bool
	ExpandedNodes int
	Discovered    int
	PathLength    int
	TotalCost     float64
	Duration      time.Duration
	Err           error
}

// Observer is notified after every FindPath call.
type Observer interface {
	ObserveSearch(stats SearchStats)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(stats SearchStats)

func (f ObserverFunc) ObserveSearch(stats SearchStats) { f(stats) }

// Options defines parameters for the search.
type Options struct {
	// NumberOfWorkers above 1 evaluates neighbour costs on that many
	// goroutines. Graph callbacks must then be safe for concurrent use.
	NumberOfWorkers int

	Queue QueueKind

	// Reopen re-queues finalized nodes when a cheaper route to them is found.
	// Only needed for admissible heuristics that are not consistent.
	Reopen bool

	// MaxExpansions bounds the number of finalized nodes; 0 means unbounded.
	MaxExpansions int

	Logger   *slog.Logger
	Observer Observer
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many worker goroutines should evaluate neighbours.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithQueue selects the priority queue implementation.
func WithQueue(kind QueueKind) Option {
	return func(options *Options) { options.Queue = kind }
}

// WithReopen enables reopening of finalized nodes.
func WithReopen(reopen bool) Option {
	return func(options *Options) { options.Reopen = reopen }
}

// WithMaxExpansions stops the search with ErrExpansionLimit after n nodes
// have been finalized without reaching the goal.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithObserver registers an Observer for search statistics.
func WithObserver(observer Observer) Option {
	return func(options *Options) { options.Observer = observer }
}

func buildOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: 1,
		Queue:           QueueHeap,
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.New(slog.DiscardHandler)
	}
	return searchOptions
}

// Pathfinder runs searches over one graph. It holds no per-search state, so
// each FindPath call gets its own step table and queue.
type Pathfinder[NodeType comparable] struct {
	graph   Graph[NodeType]
	options Options
}

// New returns a Pathfinder over graph.
func New[NodeType comparable](graph Graph[NodeType], options ...Option) *Pathfinder[NodeType] {
	return &Pathfinder[NodeType]{graph: graph, options: buildOptions(options)}
}

// FindPath executes the A* search from startNode to goalNode.
//
// A missing path is not an error: the Result has Found == false and a
// populated Table. Errors are returned for context cancellation, the
// expansion limit, and internal precondition violations; the partial Result
// is returned alongside them.
func (pathfinder *Pathfinder[NodeType]) FindPath(
	contextObject context.Context,
	startNode NodeType,
	goalNode NodeType,
) (Result[NodeType], error) {
	contextObject, span := tracer.Start(contextObject, "pathfinder.FindPath",
		trace.WithAttributes(
			attribute.String("start", fmt.Sprint(startNode)),
			attribute.String("goal", fmt.Sprint(goalNode)),
			attribute.String("queue", pathfinder.options.Queue.String()),
		),
	)
	defer span.End()

	began := time.Now()
	state := newSearch(pathfinder.graph, pathfinder.options)
	err := state.run(contextObject, startNode, goalNode)
	result := state.result()

	logger := pathfinder.options.Logger
	logger.Debug("search finished",
		slog.Any("start", startNode),
		slog.Any("goal", goalNode),
		slog.Bool("found", result.Found),
		slog.Int("expanded", result.ExpandedNodes),
		slog.Int("discovered", result.Table.Len()),
		slog.Float64("cost", result.TotalCost),
	)

	span.SetAttributes(
		attribute.Bool("found", result.Found),
		attribute.Int("expanded", result.ExpandedNodes),
		attribute.Int("discovered", result.Table.Len()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	if pathfinder.options.Observer != nil {
		pathfinder.options.Observer.ObserveSearch(SearchStats{
			Found:         result.Found,
			ExpandedNodes: result.ExpandedNodes,
			Discovered:    result.Table.Len(),
			PathLength:    len(result.Path),
			TotalCost:     result.TotalCost,
			Duration:      time.Since(began),
			Err:           err,
		})
	}
	return result, err
}

// FindPath is shorthand for New(graph, options...).FindPath.
func FindPath[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	options ...Option,
) (Result[NodeType], error) {
	return New(graph, options...).FindPath(contextObject, startNode, goalNode)
}
