package pathfinder

import "hash/maphash"

// Hasher maps a node to a hash value. Equal nodes must hash equally.
type Hasher[N comparable] func(node N) uint64

var processSeed = maphash.MakeSeed()

// DefaultHasher hashes any comparable node with maphash under a seed fixed for
// the lifetime of the process.
func DefaultHasher[N comparable]() Hasher[N] {
	return func(node N) uint64 {
		return maphash.Comparable(processSeed, node)
	}
}
