package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconstructPath(t *testing.T) {
	pred := map[string]string{"d": "c", "c": "b", "b": "a"}
	lookup := func(n string) (string, bool) {
		p, ok := pred[n]
		return p, ok
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ReconstructPath("d", lookup))
	assert.Equal(t, []string{"a"}, ReconstructPath("a", lookup))
}

func TestReverse(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	Reverse(s)
	assert.Equal(t, []int{5, 4, 3, 2, 1}, s)

	var empty []int
	Reverse(empty)
	assert.Empty(t, empty)
}
