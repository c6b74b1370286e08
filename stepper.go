package pathfinder

import (
	"context"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[NodeType comparable] struct {
	Current       NodeType
	HasCurrent    bool
	Open          map[NodeType]bool
	Closed        map[NodeType]bool
	CameFrom      map[NodeType]NodeType
	Done          bool
	Found         bool
	Path          []NodeType
	TotalCost     float64
	StepIndex     int
	ExpandedNodes int
}

// Stepper drives a search one dequeue at a time. It is not safe for
// concurrent use.
type Stepper[NodeType comparable] struct {
	ctx    context.Context
	cancel context.CancelFunc
	state  *search[NodeType]

	stepCount int
	err       error
}

// NewStepper creates a stepper over the same search used by FindPath. The
// start step is queued immediately; the first Step call dequeues it.
func NewStepper[NodeType comparable](
	parent context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	options ...Option,
) *Stepper[NodeType] {
	ctx, cancel := context.WithCancel(parent)
	s := &Stepper[NodeType]{
		ctx:    ctx,
		cancel: cancel,
		state:  newSearch(graph, buildOptions(options)),
	}
	s.err = s.state.begin(ctx, startNode, goalNode)
	return s
}

// Close stops the workers
func (s *Stepper[NodeType]) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.state.end()
}

// Table returns the live step table. It changes with every Step call.
func (s *Stepper[NodeType]) Table() *StepTable[NodeType] { return s.state.table }

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done it keeps returning the final snapshot.
func (s *Stepper[NodeType]) Step() (StepSnapshot[NodeType], error) {
	if s.err != nil {
		return StepSnapshot[NodeType]{Done: true, StepIndex: s.stepCount}, s.err
	}
	if !s.state.done {
		s.stepCount++
		if err := s.state.advance(s.ctx); err != nil {
			s.err = err
			s.state.done = true
			s.state.end()
			return s.snapshot(), err
		}
		if s.state.done {
			s.state.end()
		}
	}
	return s.snapshot(), nil
}

// Run steps until the search is done and returns the final snapshot.
func (s *Stepper[NodeType]) Run() (StepSnapshot[NodeType], error) {
	for {
		snapshot, err := s.Step()
		if err != nil || snapshot.Done {
			return snapshot, err
		}
	}
}

func (s *Stepper[NodeType]) snapshot() StepSnapshot[NodeType] {
	snapshot := StepSnapshot[NodeType]{
		Current:       s.state.current,
		HasCurrent:    s.state.hasCurrent,
		Open:          make(map[NodeType]bool),
		Closed:        make(map[NodeType]bool),
		CameFrom:      make(map[NodeType]NodeType, s.state.table.Len()),
		Done:          s.state.done,
		Found:         s.state.found,
		StepIndex:     s.stepCount,
		ExpandedNodes: s.state.expandedNodes,
	}
	s.state.table.Range(func(step *Step[NodeType]) bool {
		if step.InQueue {
			snapshot.Open[step.To] = true
		} else {
			snapshot.Closed[step.To] = true
		}
		if from, ok := step.From.Get(); ok {
			snapshot.CameFrom[step.To] = from
		}
		return true
	})
	if s.state.found {
		result := s.state.result()
		snapshot.Path = append([]NodeType(nil), result.Path...)
		snapshot.TotalCost = result.TotalCost
	}
	return snapshot
}
