package pathfinder

import "cogentcore.org/core/base/ordmap"

// Step is the best known route to a node at some point of a search.
type Step[N comparable] struct {
	To   N
	From NodeOrNull[N]

	// CostFromStart is the exact cost of the best known route from the start.
	CostFromStart float64

	// CostToGoal is the heuristic estimate from To to the goal, computed once
	// when the node is discovered.
	CostToGoal float64

	// InQueue is true while the node still has a pending queue entry.
	InQueue bool
}

// TotalCost is the queue priority of the step.
func (s *Step[N]) TotalCost() float64 { return s.CostFromStart + s.CostToGoal }

// StepTable maps every node discovered by a search to its Step. Iteration
// follows discovery order.
type StepTable[N comparable] struct {
	steps *ordmap.Map[N, *Step[N]]
}

func newStepTable[N comparable]() *StepTable[N] {
	return &StepTable[N]{steps: ordmap.New[N, *Step[N]]()}
}

// Get returns the step for node.
func (t *StepTable[N]) Get(node N) (*Step[N], bool) {
	if t == nil {
		return nil, false
	}
	return t.steps.ValueByKeyTry(node)
}

// Len returns the number of discovered nodes.
func (t *StepTable[N]) Len() int {
	if t == nil {
		return 0
	}
	return t.steps.Len()
}

// Range calls fn for each step in discovery order until fn returns false.
func (t *StepTable[N]) Range(fn func(step *Step[N]) bool) {
	if t == nil {
		return
	}
	for _, kv := range t.steps.Order {
		if !fn(kv.Value) {
			return
		}
	}
}

// Steps returns the steps in discovery order.
func (t *StepTable[N]) Steps() []*Step[N] {
	if t == nil {
		return nil
	}
	return t.steps.Values()
}

func (t *StepTable[N]) add(step *Step[N]) { t.steps.Add(step.To, step) }

func (t *StepTable[N]) reset() { t.steps.Reset() }

// predecessor returns the From node of node's step.
func (t *StepTable[N]) predecessor(node N) (N, bool) {
	step, ok := t.Get(node)
	if !ok {
		var zero N
		return zero, false
	}
	return step.From.Get()
}
