package pathfinder

import (
	"container/heap"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Queue is an associative min-priority queue keyed by K. Each key appears at
// most once; its cost can be changed in place with Update.
type Queue[K comparable, V any, P constraints.Ordered] interface {
	Insert(key K, value V, cost P) error
	Update(key K, cost P) error
	RemoveMin() (V, error)
	Contains(key K) bool
	Len() int
}

// QueueKind selects the Queue implementation used by the engine.
type QueueKind int

const (
	// QueueHeap is a binary heap with O(log n) operations.
	QueueHeap QueueKind = iota
	// QueueLinear scans every entry on RemoveMin.
	QueueLinear
)

func (k QueueKind) String() string {
	switch k {
	case QueueLinear:
		return "linear"
	default:
		return "heap"
	}
}

func newQueue[K comparable, V any, P constraints.Ordered](kind QueueKind) Queue[K, V, P] {
	if kind == QueueLinear {
		return NewLinearQueue[K, V, P]()
	}
	return NewHeapQueue[K, V, P]()
}

type queueEntry[K comparable, V any, P constraints.Ordered] struct {
	Key   K
	Value V
	Cost  P
	index int
}

// LinearQueue keeps entries in insertion order and finds the minimum by a
// full scan. Ties go to the first entry scanned.
type LinearQueue[K comparable, V any, P constraints.Ordered] struct {
	entries []*queueEntry[K, V, P]
	index   map[K]int
}

// NewLinearQueue returns an empty LinearQueue.
func NewLinearQueue[K comparable, V any, P constraints.Ordered]() *LinearQueue[K, V, P] {
	return &LinearQueue[K, V, P]{index: make(map[K]int)}
}

func (queue *LinearQueue[K, V, P]) Len() int { return len(queue.entries) }

func (queue *LinearQueue[K, V, P]) Contains(key K) bool {
	_, ok := queue.index[key]
	return ok
}

func (queue *LinearQueue[K, V, P]) Insert(key K, value V, cost P) error {
	if _, ok := queue.index[key]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}
	queue.index[key] = len(queue.entries)
	queue.entries = append(queue.entries, &queueEntry[K, V, P]{Key: key, Value: value, Cost: cost})
	return nil
}

func (queue *LinearQueue[K, V, P]) Update(key K, cost P) error {
	i, ok := queue.index[key]
	if !ok {
		return fmt.Errorf("%w: %v", ErrMissingKey, key)
	}
	queue.entries[i].Cost = cost
	return nil
}

func (queue *LinearQueue[K, V, P]) RemoveMin() (V, error) {
	if len(queue.entries) == 0 {
		var zero V
		return zero, ErrEmptyQueue
	}
	best := 0
	for i := 1; i < len(queue.entries); i++ {
		if queue.entries[i].Cost < queue.entries[best].Cost {
			best = i
		}
	}
	entry := queue.entries[best]
	queue.entries = append(queue.entries[:best], queue.entries[best+1:]...)
	delete(queue.index, entry.Key)
	for i := best; i < len(queue.entries); i++ {
		queue.index[queue.entries[i].Key] = i
	}
	return entry.Value, nil
}

// entryHeap implements heap.Interface over queue entries, keeping each
// entry's index current so Update can call heap.Fix.
type entryHeap[K comparable, V any, P constraints.Ordered] []*queueEntry[K, V, P]

func (h entryHeap[K, V, P]) Len() int           { return len(h) }
func (h entryHeap[K, V, P]) Less(i, j int) bool { return h[i].Cost < h[j].Cost }
func (h entryHeap[K, V, P]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap[K, V, P]) Push(x any) {
	entry := x.(*queueEntry[K, V, P])
	entry.index = len(*h)
	*h = append(*h, entry)
}

func (h *entryHeap[K, V, P]) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.index = -1
	*h = old[:n-1]
	return entry
}

// HeapQueue is a binary heap with a key index for in-place decrease-key.
type HeapQueue[K comparable, V any, P constraints.Ordered] struct {
	heap  entryHeap[K, V, P]
	items map[K]*queueEntry[K, V, P]
}

// NewHeapQueue returns an empty HeapQueue.
func NewHeapQueue[K comparable, V any, P constraints.Ordered]() *HeapQueue[K, V, P] {
	return &HeapQueue[K, V, P]{items: make(map[K]*queueEntry[K, V, P])}
}

func (queue *HeapQueue[K, V, P]) Len() int { return queue.heap.Len() }

func (queue *HeapQueue[K, V, P]) Contains(key K) bool {
	_, ok := queue.items[key]
	return ok
}

func (queue *HeapQueue[K, V, P]) Insert(key K, value V, cost P) error {
	if _, ok := queue.items[key]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}
	entry := &queueEntry[K, V, P]{Key: key, Value: value, Cost: cost}
	heap.Push(&queue.heap, entry)
	queue.items[key] = entry
	return nil
}

func (queue *HeapQueue[K, V, P]) Update(key K, cost P) error {
	entry, ok := queue.items[key]
	if !ok {
		return fmt.Errorf("%w: %v", ErrMissingKey, key)
	}
	entry.Cost = cost
	heap.Fix(&queue.heap, entry.index)
	return nil
}

func (queue *HeapQueue[K, V, P]) RemoveMin() (V, error) {
	if queue.heap.Len() == 0 {
		var zero V
		return zero, ErrEmptyQueue
	}
	entry := heap.Pop(&queue.heap).(*queueEntry[K, V, P])
	delete(queue.items, entry.Key)
	return entry.Value, nil
}
