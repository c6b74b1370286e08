package pathfinder

import "fmt"

// NodeOrNull is an optional node. The null value marks the start of a path,
// which has no predecessor. The zero NodeOrNull is null.
type NodeOrNull[N comparable] struct {
	node  N
	valid bool
}

// Null returns the null NodeOrNull.
func Null[N comparable]() NodeOrNull[N] { return NodeOrNull[N]{} }

// Some wraps node.
func Some[N comparable](node N) NodeOrNull[N] { return NodeOrNull[N]{node: node, valid: true} }

func (n NodeOrNull[N]) IsNull() bool  { return !n.valid }
func (n NodeOrNull[N]) NotNull() bool { return n.valid }

// Node returns the wrapped node. It panics if n is null.
func (n NodeOrNull[N]) Node() N {
	if !n.valid {
		panic(ErrNullNode)
	}
	return n.node
}

// Get returns the wrapped node and whether n is non-null.
func (n NodeOrNull[N]) Get() (N, bool) { return n.node, n.valid }

// Equal reports whether both are null or both wrap equal nodes.
func (n NodeOrNull[N]) Equal(other NodeOrNull[N]) bool {
	if n.valid != other.valid {
		return false
	}
	return !n.valid || n.node == other.node
}

// Hash returns 0 for null and hash(node) otherwise.
func (n NodeOrNull[N]) Hash(hash Hasher[N]) uint64 {
	if !n.valid {
		return 0
	}
	return hash(n.node)
}

func (n NodeOrNull[N]) String() string {
	if !n.valid {
		return "<null>"
	}
	return fmt.Sprint(n.node)
}
