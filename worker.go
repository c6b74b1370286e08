package pathfinder

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ExpandTask represents a request from the orchestrator to the workers.
type ExpandTask[NodeType comparable] struct {
	Index         int
	FromNode      NodeType
	ToNode        NodeType
	CurrentGScore float64

	results chan<- RelaxProposal[NodeType]
}

// RelaxProposal is the cost of reaching ToNode through FromNode. Index is the
// position of ToNode in the neighbour list; proposals are applied in that
// order whatever order the workers finish in.
type RelaxProposal[NodeType comparable] struct {
	Index    int
	FromNode NodeType
	ToNode   NodeType
	GScore   float64

	// Estimate is the heuristic for ToNode when HasEstimate is set. The serial
	// path leaves it unset and evaluates the heuristic only for new nodes.
	Estimate    float64
	HasEstimate bool
}

// expandPool evaluates edge costs and heuristics on a fixed set of worker
// goroutines. Only the orchestrator touches the queue and table.
type expandPool[NodeType comparable] struct {
	graph Graph[NodeType]
	goal  NodeType
	tasks chan ExpandTask[NodeType]
	group *errgroup.Group
}

func newExpandPool[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	goal NodeType,
	numberOfWorkers int,
) *expandPool[NodeType] {
	group, groupContext := errgroup.WithContext(contextObject)
	pool := &expandPool[NodeType]{
		graph: graph,
		goal:  goal,
		tasks: make(chan ExpandTask[NodeType]),
		group: group,
	}
	for i := 0; i < numberOfWorkers; i++ {
		group.Go(func() error {
			for {
				select {
				case <-groupContext.Done():
					return nil
				case task, ok := <-pool.tasks:
					if !ok {
						return nil
					}
					task.results <- pool.evaluate(task)
				}
			}
		})
	}
	return pool
}

func (pool *expandPool[NodeType]) evaluate(task ExpandTask[NodeType]) RelaxProposal[NodeType] {
	return RelaxProposal[NodeType]{
		Index:       task.Index,
		FromNode:    task.FromNode,
		ToNode:      task.ToNode,
		GScore:      task.CurrentGScore + pool.graph.CostOfEdge(task.FromNode, task.ToNode),
		Estimate:    pool.graph.EstimateCost(task.ToNode, pool.goal),
		HasEstimate: true,
	}
}

// expand evaluates every neighbour of fromNode and returns the proposals in
// neighbour order, appended to buf.
func (pool *expandPool[NodeType]) expand(
	contextObject context.Context,
	fromNode NodeType,
	gScore float64,
	neighbors []NodeType,
	buf []RelaxProposal[NodeType],
) ([]RelaxProposal[NodeType], error) {
	// Buffered to the full fan-out so workers never block on delivery.
	results := make(chan RelaxProposal[NodeType], len(neighbors))
	for i, neighbor := range neighbors {
		task := ExpandTask[NodeType]{
			Index:         i,
			FromNode:      fromNode,
			ToNode:        neighbor,
			CurrentGScore: gScore,
			results:       results,
		}
		select {
		case <-contextObject.Done():
			return buf, contextObject.Err()
		case pool.tasks <- task:
		}
	}

	base := len(buf)
	for range neighbors {
		buf = append(buf, RelaxProposal[NodeType]{})
	}
	for range neighbors {
		select {
		case <-contextObject.Done():
			return buf[:base], contextObject.Err()
		case proposal := <-results:
			buf[base+proposal.Index] = proposal
		}
	}
	return buf, nil
}

func (pool *expandPool[NodeType]) close() {
	close(pool.tasks)
	_ = pool.group.Wait()
}
