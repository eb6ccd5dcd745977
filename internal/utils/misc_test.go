package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtends(t *testing.T) {
	t1 := []int{1, 2, 3}
	assert.Equal(t, []int{1, 2, 3, 4}, Extends(t1, 4))
	assert.NotEqual(t, []int{1, 2, 3, 3}, Extends(t1, 3))
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 1, "c": 2, "a": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
	assert.Empty(t, SortedKeys(map[string]int{}))
}
