package tree

import (
	"cmp"
	"slices"
)

// IndexPath locates a node by the child positions taken from a root.
// The empty path addresses the root itself.
//
// Index paths are ephemeral: any mutation that changes the shape of the tree
// at or before a path invalidates it.
type IndexPath []int

// Clone returns a copy that does not share storage with p.
func (p IndexPath) Clone() IndexPath {
	if p == nil {
		return nil
	}
	return slices.Clone(p)
}

// Parent returns the path of the parent node. The parent of the root is the root.
func (p IndexPath) Parent() IndexPath {
	if len(p) == 0 {
		return IndexPath{}
	}
	return p[:len(p)-1:len(p)-1]
}

// Last returns the index of the node within its parent, or -1 for the root.
func (p IndexPath) Last() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// Child returns the path of the i-th child of p.
func (p IndexPath) Child(i int) IndexPath {
	out := make(IndexPath, len(p)+1)
	copy(out, p)
	out[len(p)] = i
	return out
}

// Sibling returns the path of p's sibling at index i.
func (p IndexPath) Sibling(i int) IndexPath {
	return p.Parent().Child(i)
}

// Equal reports whether both paths address the same node.
func (p IndexPath) Equal(other IndexPath) bool {
	return slices.Equal(p, other)
}

// IsAncestorOf reports whether p is a strict ancestor of other.
func (p IndexPath) IsAncestorOf(other IndexPath) bool {
	return len(p) < len(other) && slices.Equal(p, other[:len(p)])
}

// Compare orders paths in document (pre-order) order.
// An ancestor sorts before its descendants.
func Compare(a, b IndexPath) int {
	return slices.Compare(a, b)
}

// SortDescending sorts paths so that the last node in document order comes
// first. Removing nodes in this order keeps the remaining paths valid.
func SortDescending(paths []IndexPath) {
	slices.SortFunc(paths, func(a, b IndexPath) int {
		return cmp.Compare(0, Compare(a, b))
	})
}

// RemoveDescendants drops every path that has an ancestor in the set.
// The result is in document order.
func RemoveDescendants(paths []IndexPath) []IndexPath {
	sorted := slices.Clone(paths)
	slices.SortFunc(sorted, Compare)
	out := make([]IndexPath, 0, len(sorted))
	for _, p := range sorted {
		if len(out) > 0 {
			prev := out[len(out)-1]
			if prev.Equal(p) || prev.IsAncestorOf(p) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// CommonAncestor returns the deepest path that is an ancestor-or-self of
// every given path.
func CommonAncestor(paths []IndexPath) IndexPath {
	if len(paths) == 0 {
		return IndexPath{}
	}
	common := paths[0].Clone()
	for _, p := range paths[1:] {
		n := 0
		for n < len(common) && n < len(p) && common[n] == p[n] {
			n++
		}
		common = common[:n]
	}
	return common
}
