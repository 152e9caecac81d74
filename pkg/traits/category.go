package traits

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/razinkele/traitstore/pkg/errcode"
)

// CategoryNode is one row of the trait_categories table. ParentID is
// zero for root categories.
type CategoryNode struct {
	ID          int64
	Name        string
	ParentID    int64
	Description string
}

// CategoryIndex is an in-memory parent/child view of the category
// hierarchy. It is built once when the store opens; cycle detection
// happens here instead of at every traversal.
type CategoryIndex struct {
	byID     map[int64]CategoryNode
	byName   map[string]CategoryNode
	children map[int64][]int64
}

// NewCategoryIndex builds the index and verifies the hierarchy is a
// forest. A parent reference that loops back returns CategoryCycleError.
func NewCategoryIndex(nodes []CategoryNode) (*CategoryIndex, error) {
	idx := &CategoryIndex{
		byID:     make(map[int64]CategoryNode, len(nodes)),
		byName:   make(map[string]CategoryNode, len(nodes)),
		children: make(map[int64][]int64),
	}
	for _, n := range nodes {
		idx.byID[n.ID] = n
		idx.byName[n.Name] = n
		if n.ParentID != 0 {
			idx.children[n.ParentID] = append(idx.children[n.ParentID], n.ID)
		}
	}

	for _, n := range nodes {
		if err := idx.checkCycle(n); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func (idx *CategoryIndex) checkCycle(start CategoryNode) error {
	seen := map[int64]bool{start.ID: true}
	cur := start
	for cur.ParentID != 0 {
		parent, ok := idx.byID[cur.ParentID]
		if !ok {
			// Orphaned parent reference; import validation rejects
			// these, but the index stays usable without the parent.
			return nil
		}
		if seen[parent.ID] {
			return &gn.Error{
				Code: errcode.CategoryCycleError,
				Msg:  "Trait category hierarchy contains a cycle through '%s'",
				Vars: []any{parent.Name},
				Err: fmt.Errorf("category cycle through %q (id %d)",
					parent.Name, parent.ID),
			}
		}
		seen[parent.ID] = true
		cur = parent
	}
	return nil
}

// Exists reports whether a category name is known.
func (idx *CategoryIndex) Exists(name string) bool {
	_, ok := idx.byName[name]
	return ok
}

// Parent returns the parent of a category, if it has one.
func (idx *CategoryIndex) Parent(name string) (CategoryNode, bool) {
	n, ok := idx.byName[name]
	if !ok || n.ParentID == 0 {
		return CategoryNode{}, false
	}
	p, ok := idx.byID[n.ParentID]
	return p, ok
}

// Children returns the direct children of a category.
func (idx *CategoryIndex) Children(name string) []CategoryNode {
	n, ok := idx.byName[name]
	if !ok {
		return nil
	}
	ids := idx.children[n.ID]
	res := make([]CategoryNode, 0, len(ids))
	for _, id := range ids {
		res = append(res, idx.byID[id])
	}
	return res
}

// Path returns the lineage from root to the named category.
func (idx *CategoryIndex) Path(name string) []CategoryNode {
	n, ok := idx.byName[name]
	if !ok {
		return nil
	}
	var rev []CategoryNode
	rev = append(rev, n)
	for n.ParentID != 0 {
		p, ok := idx.byID[n.ParentID]
		if !ok {
			break
		}
		rev = append(rev, p)
		n = p
	}
	res := make([]CategoryNode, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		res = append(res, rev[i])
	}
	return res
}

// Len returns the number of categories in the index.
func (idx *CategoryIndex) Len() int {
	return len(idx.byID)
}
