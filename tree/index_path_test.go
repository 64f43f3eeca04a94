package tree

import (
	"slices"
	"testing"
)

func TestIndexPathHelpers(t *testing.T) {
	p := IndexPath{2, 0, 3}
	if !p.Parent().Equal(IndexPath{2, 0}) {
		t.Errorf("Parent = %v", p.Parent())
	}
	if p.Last() != 3 {
		t.Errorf("Last = %d", p.Last())
	}
	if (IndexPath{}).Last() != -1 {
		t.Error("root Last should be -1")
	}
	if !p.Sibling(1).Equal(IndexPath{2, 0, 1}) {
		t.Errorf("Sibling = %v", p.Sibling(1))
	}
	// Appending to a parent must not clobber the original path.
	parent := p.Parent()
	_ = append(parent, 9)
	if p[2] != 3 {
		t.Errorf("Parent aliased the original path: %v", p)
	}
	if !(IndexPath{2}).IsAncestorOf(p) || p.IsAncestorOf(p) {
		t.Error("IsAncestorOf is wrong")
	}
}

func TestRemoveDescendants(t *testing.T) {
	paths := []IndexPath{{1, 2}, {0}, {1}, {0, 4, 1}, {2}, {1}}
	got := RemoveDescendants(paths)
	want := []IndexPath{{0}, {1}, {2}}
	if !slices.EqualFunc(got, want, IndexPath.Equal) {
		t.Errorf("RemoveDescendants = %v, want %v", got, want)
	}
}

func TestSortDescending(t *testing.T) {
	paths := []IndexPath{{0}, {1, 0}, {1}, {0, 2}}
	SortDescending(paths)
	want := []IndexPath{{1, 0}, {1}, {0, 2}, {0}}
	if !slices.EqualFunc(paths, want, IndexPath.Equal) {
		t.Errorf("SortDescending = %v, want %v", paths, want)
	}
}

func TestCommonAncestor(t *testing.T) {
	got := CommonAncestor([]IndexPath{{0, 1, 2}, {0, 1, 5}, {0, 1}})
	if !got.Equal(IndexPath{0, 1}) {
		t.Errorf("CommonAncestor = %v", got)
	}
	if got := CommonAncestor([]IndexPath{{0}, {1}}); len(got) != 0 {
		t.Errorf("CommonAncestor of siblings = %v", got)
	}
}
