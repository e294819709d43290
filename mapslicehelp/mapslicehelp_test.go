package mapslicehelp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestSortedKeys(t *testing.T) {
	m := map[string]struct{}{"b": {}, "A": {}, "a": {}, "_x": {}}
	assert.Equal(t, []string{"A", "_x", "a", "b"}, SortedKeys(m))
	assert.Empty(t, SortedKeys(map[string]int{}))
}

func TestOrderedMapKeys(t *testing.T) {
	m := orderedmap.New[string, int]()
	m.Set("z", 1)
	m.Set("a", 2)
	m.Set("m", 3)
	assert.Equal(t, []string{"z", "a", "m"}, OrderedMapKeys(m))
}

func TestWithout(t *testing.T) {
	got := Without([]string{"a", "LAT", "b", "wkt"}, AsKeys([]string{"wkt", "LAT"}))
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestAsIndex(t *testing.T) {
	assert.Equal(t, map[string]int{"a": 0, "b": 1}, AsIndex([]string{"a", "b", "a"}))
}
