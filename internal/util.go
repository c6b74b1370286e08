package internal

// ReconstructPath rebuilds a path by following predecessors back from goal
// until a node without one, then reverses it into start-to-goal order.
func ReconstructPath[NodeType comparable](
	goal NodeType,
	predecessor func(NodeType) (NodeType, bool),
) []NodeType {
	path := []NodeType{goal}
	current := goal
	for {
		previousNode, exists := predecessor(current)
		if !exists {
			break
		}
		path = append(path, previousNode)
		current = previousNode
	}
	Reverse(path)
	return path
}

// Reverse reverses s in place.
func Reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
