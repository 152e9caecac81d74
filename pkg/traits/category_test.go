package traits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNodes() []CategoryNode {
	return []CategoryNode{
		{ID: 1, Name: "morphological"},
		{ID: 2, Name: "trophic"},
		{ID: 3, Name: "size", ParentID: 1},
		{ID: 4, Name: "biomass", ParentID: 1},
		{ID: 5, Name: "diet", ParentID: 2},
	}
}

func TestCategoryIndexLookups(t *testing.T) {
	idx, err := NewCategoryIndex(testNodes())
	require.NoError(t, err)

	assert.Equal(t, 5, idx.Len())
	assert.True(t, idx.Exists("size"))
	assert.False(t, idx.Exists("habitat"))

	p, ok := idx.Parent("size")
	assert.True(t, ok)
	assert.Equal(t, "morphological", p.Name)

	_, ok = idx.Parent("morphological")
	assert.False(t, ok, "roots have no parent")

	children := idx.Children("morphological")
	assert.Len(t, children, 2)
}

func TestCategoryIndexPath(t *testing.T) {
	idx, err := NewCategoryIndex(testNodes())
	require.NoError(t, err)

	path := idx.Path("diet")
	require.Len(t, path, 2)
	assert.Equal(t, "trophic", path[0].Name)
	assert.Equal(t, "diet", path[1].Name)

	assert.Nil(t, idx.Path("unknown"))
}

func TestCategoryIndexDetectsCycle(t *testing.T) {
	nodes := []CategoryNode{
		{ID: 1, Name: "a", ParentID: 3},
		{ID: 2, Name: "b", ParentID: 1},
		{ID: 3, Name: "c", ParentID: 2},
	}

	_, err := NewCategoryIndex(nodes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestCategoryIndexToleratesOrphanParent(t *testing.T) {
	nodes := []CategoryNode{
		{ID: 1, Name: "a", ParentID: 99},
	}

	idx, err := NewCategoryIndex(nodes)
	require.NoError(t, err)
	assert.True(t, idx.Exists("a"))
	assert.Len(t, idx.Path("a"), 1)
}
