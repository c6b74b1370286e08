package pathfinder

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/pdrpinto/pathfinder/internal"
)

var tracer = otel.Tracer("github.com/pdrpinto/pathfinder")

// search is the state of one A* run. FindPath drives it to completion and
// Stepper drives it one dequeue at a time.
type search[NodeType comparable] struct {
	graph   Graph[NodeType]
	options Options
	logger  *slog.Logger

	goal  NodeType
	table *StepTable[NodeType]
	queue Queue[NodeType, *Step[NodeType], float64]
	pool  *expandPool[NodeType]

	neighbors []NodeType
	proposals []RelaxProposal[NodeType]

	current       NodeType
	hasCurrent    bool
	expandedNodes int
	done          bool
	found         bool
	path          []NodeType
}

func newSearch[NodeType comparable](graph Graph[NodeType], options Options) *search[NodeType] {
	return &search[NodeType]{
		graph:   graph,
		options: options,
		logger:  options.Logger,
		table:   newStepTable[NodeType](),
	}
}

// begin clears the table and queue and seeds them with the start step.
func (s *search[NodeType]) begin(contextObject context.Context, startNode, goalNode NodeType) error {
	s.goal = goalNode
	s.table.reset()
	s.queue = newQueue[NodeType, *Step[NodeType], float64](s.options.Queue)
	s.path = nil
	s.hasCurrent, s.done, s.found = false, false, false
	s.expandedNodes = 0
	if s.options.NumberOfWorkers > 1 {
		s.pool = newExpandPool(contextObject, s.graph, goalNode, s.options.NumberOfWorkers)
	}

	startStep := &Step[NodeType]{
		To:         startNode,
		From:       Null[NodeType](),
		CostToGoal: s.graph.EstimateCost(startNode, goalNode),
		InQueue:    true,
	}
	s.table.add(startStep)
	return s.queue.Insert(startNode, startStep, startStep.TotalCost())
}

// end releases the worker pool, if any.
func (s *search[NodeType]) end() {
	if s.pool != nil {
		s.pool.close()
		s.pool = nil
	}
}

func (s *search[NodeType]) run(contextObject context.Context, startNode, goalNode NodeType) error {
	defer s.end()
	if err := s.begin(contextObject, startNode, goalNode); err != nil {
		return err
	}
	for !s.done {
		if err := s.advance(contextObject); err != nil {
			return err
		}
	}
	return nil
}

// advance dequeues the cheapest step and either finishes the search on the
// goal or relaxes the step's neighbours.
func (s *search[NodeType]) advance(contextObject context.Context) error {
	if s.done {
		return nil
	}
	if err := contextObject.Err(); err != nil {
		return err
	}
	if s.queue.Len() == 0 {
		s.done = true
		return nil
	}

	currentStep, err := s.queue.RemoveMin()
	if err != nil {
		return err
	}
	currentStep.InQueue = false
	s.current, s.hasCurrent = currentStep.To, true
	s.expandedNodes++

	if currentStep.To == s.goal {
		s.done, s.found = true, true
		s.path = internal.ReconstructPath(s.goal, s.table.predecessor)
		return nil
	}
	if s.options.MaxExpansions > 0 && s.expandedNodes > s.options.MaxExpansions {
		s.done = true
		return fmt.Errorf("%w: %d nodes", ErrExpansionLimit, s.options.MaxExpansions)
	}

	s.neighbors = s.graph.Neighbors(currentStep.To, s.neighbors[:0])
	s.logger.Debug("expand",
		slog.Any("node", currentStep.To),
		slog.Float64("g", currentStep.CostFromStart),
		slog.Float64("h", currentStep.CostToGoal),
		slog.Int("neighbors", len(s.neighbors)),
	)

	if s.pool != nil {
		s.proposals, err = s.pool.expand(contextObject, currentStep.To, currentStep.CostFromStart, s.neighbors, s.proposals[:0])
		if err != nil {
			return err
		}
	} else {
		s.proposals = s.proposals[:0]
		for i, neighbor := range s.neighbors {
			s.proposals = append(s.proposals, RelaxProposal[NodeType]{
				Index:    i,
				FromNode: currentStep.To,
				ToNode:   neighbor,
				GScore:   currentStep.CostFromStart + s.graph.CostOfEdge(currentStep.To, neighbor),
			})
		}
	}

	for _, proposal := range s.proposals {
		if err := s.relax(proposal); err != nil {
			return err
		}
	}
	return nil
}

// relax applies one proposal: discover a new node, lower the cost of a queued
// one, or (with Reopen) requeue a finalized one.
func (s *search[NodeType]) relax(proposal RelaxProposal[NodeType]) error {
	existing, discovered := s.table.Get(proposal.ToNode)
	if !discovered {
		costToGoal := proposal.Estimate
		if !proposal.HasEstimate {
			costToGoal = s.graph.EstimateCost(proposal.ToNode, s.goal)
		}
		step := &Step[NodeType]{
			To:            proposal.ToNode,
			From:          Some(proposal.FromNode),
			CostFromStart: proposal.GScore,
			CostToGoal:    costToGoal,
			InQueue:       true,
		}
		s.table.add(step)
		return s.queue.Insert(step.To, step, step.TotalCost())
	}

	if !(proposal.GScore < existing.CostFromStart) {
		return nil
	}
	if existing.InQueue {
		existing.CostFromStart = proposal.GScore
		existing.From = Some(proposal.FromNode)
		return s.queue.Update(existing.To, existing.TotalCost())
	}
	if s.options.Reopen {
		s.logger.Debug("reopen",
			slog.Any("node", existing.To),
			slog.Float64("old", existing.CostFromStart),
			slog.Float64("new", proposal.GScore),
		)
		existing.CostFromStart = proposal.GScore
		existing.From = Some(proposal.FromNode)
		existing.InQueue = true
		return s.queue.Insert(existing.To, existing, existing.TotalCost())
	}
	return nil
}

func (s *search[NodeType]) result() Result[NodeType] {
	result := Result[NodeType]{
		ExpandedNodes: s.expandedNodes,
		Found:         s.found,
		Table:         s.table,
	}
	if s.found {
		result.Path = s.path
		if goalStep, ok := s.table.Get(s.goal); ok {
			result.TotalCost = goalStep.CostFromStart
		}
	}
	return result
}
