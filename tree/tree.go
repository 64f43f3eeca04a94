// Package tree provides traversal and addressing over any hierarchy whose
// children can be listed by a function.
//
// Every traversal is synchronous and keeps its state on the stack, so
// concurrent traversals of the same immutable tree are safe.
package tree

// Signal controls a traversal from an Enter callback.
type Signal int

const (
	// Continue descends into the node's children.
	Continue Signal = iota
	// Skip does not descend into the node's children but continues with its siblings.
	Skip
	// Stop ends the traversal; Leave is not called for the remaining nodes.
	Stop
)

// MaxDepth bounds every traversal. A tree deeper than this is treated as
// malformed and its deeper levels are not visited.
const MaxDepth = 1024

// ChildrenFunc lists the children of a node in order.
type ChildrenFunc[T any] func(node T) []T

// Predicate reports whether a node matches.
type Predicate[T any] func(node T, path IndexPath) bool

// Visitor receives pre-order Enter and post-order Leave callbacks.
// The path argument is only valid for the duration of the call; Clone it to keep it.
type Visitor[T any] struct {
	Enter func(node T, path IndexPath, parents []T) Signal
	Leave func(node T, path IndexPath, parents []T)
}

type options struct {
	reverse bool
	skip    bool
}

// Option changes traversal order or scope.
type Option func(*options)

// Reverse visits children last-to-first. Combined with pre-order traversal
// this yields front-to-back order, which is what hit testing needs.
func Reverse() Option {
	return func(o *options) { o.reverse = true }
}

// ExcludeRoot starts the traversal at the root's children.
func ExcludeRoot() Option {
	return func(o *options) { o.skip = true }
}

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Visit walks the tree rooted at root in pre-order.
//
// A node that appears among its own ancestors (a cycle) is not entered
// again, so a malformed tree cannot make Visit loop forever.
func Visit[T comparable](root T, children ChildrenFunc[T], v Visitor[T], opts ...Option) {
	o := buildOptions(opts)
	w := walker[T]{
		children: children,
		visitor:  v,
		reverse:  o.reverse,
		active:   make(map[T]struct{}),
	}
	if o.skip {
		w.active[root] = struct{}{}
		w.parents = append(w.parents, root)
		w.walkChildren(root)
		return
	}
	w.walk(root)
}

type walker[T comparable] struct {
	children ChildrenFunc[T]
	visitor  Visitor[T]
	reverse  bool
	path     IndexPath
	parents  []T
	active   map[T]struct{}
	stopped  bool
}

func (w *walker[T]) walk(node T) {
	if _, cycle := w.active[node]; cycle || len(w.path) > MaxDepth {
		return
	}
	if w.visitor.Enter != nil {
		switch w.visitor.Enter(node, w.path, w.parents) {
		case Stop:
			w.stopped = true
			return
		case Skip:
			w.leave(node)
			return
		}
	}

	w.active[node] = struct{}{}
	w.parents = append(w.parents, node)
	w.walkChildren(node)
	w.parents = w.parents[:len(w.parents)-1]
	delete(w.active, node)

	if !w.stopped {
		w.leave(node)
	}
}

func (w *walker[T]) walkChildren(node T) {
	kids := w.children(node)
	n := len(kids)
	for i := range n {
		idx := i
		if w.reverse {
			idx = n - 1 - i
		}
		w.path = append(w.path, idx)
		w.walk(kids[idx])
		w.path = w.path[:len(w.path)-1]
		if w.stopped {
			return
		}
	}
}

func (w *walker[T]) leave(node T) {
	if w.visitor.Leave != nil {
		w.visitor.Leave(node, w.path, w.parents)
	}
}

// FindIndexPath returns the path of the first node matching pred.
func FindIndexPath[T comparable](root T, children ChildrenFunc[T], pred Predicate[T], opts ...Option) (IndexPath, bool) {
	var found IndexPath
	ok := false
	Visit(root, children, Visitor[T]{
		Enter: func(node T, path IndexPath, _ []T) Signal {
			if pred(node, path) {
				found = path.Clone()
				ok = true
				return Stop
			}
			return Continue
		},
	}, opts...)
	if found == nil && ok {
		found = IndexPath{}
	}
	return found, ok
}

// Find returns the first node matching pred.
func Find[T comparable](root T, children ChildrenFunc[T], pred Predicate[T], opts ...Option) (T, bool) {
	var found T
	ok := false
	Visit(root, children, Visitor[T]{
		Enter: func(node T, path IndexPath, _ []T) Signal {
			if pred(node, path) {
				found = node
				ok = true
				return Stop
			}
			return Continue
		},
	}, opts...)
	return found, ok
}

// FindAll returns every node matching pred in traversal order.
func FindAll[T comparable](root T, children ChildrenFunc[T], pred Predicate[T], opts ...Option) []T {
	var found []T
	Visit(root, children, Visitor[T]{
		Enter: func(node T, path IndexPath, _ []T) Signal {
			if pred(node, path) {
				found = append(found, node)
			}
			return Continue
		},
	}, opts...)
	return found
}

// Match is the per-node decision of FindAllIndexPaths.
type Match int

const (
	// Exclude leaves the node out and descends into its children.
	Exclude Match = iota
	// Include adds the node and descends into its children.
	Include
	// IncludeAndSkip adds the node without descending.
	IncludeAndSkip
	// ExcludeAndSkip leaves the node and its subtree out.
	ExcludeAndSkip
)

// MatchFunc decides how FindAllIndexPaths treats a node.
type MatchFunc[T any] func(node T, path IndexPath) Match

// Matching adapts a predicate to a MatchFunc that always descends.
func Matching[T any](pred Predicate[T]) MatchFunc[T] {
	return func(node T, path IndexPath) Match {
		if pred(node, path) {
			return Include
		}
		return Exclude
	}
}

// FindAllIndexPaths collects the paths of nodes that match, letting the
// callback prune subtrees, e.g. to match an artboard without its children.
func FindAllIndexPaths[T comparable](root T, children ChildrenFunc[T], match MatchFunc[T], opts ...Option) []IndexPath {
	var found []IndexPath
	Visit(root, children, Visitor[T]{
		Enter: func(node T, path IndexPath, _ []T) Signal {
			switch match(node, path) {
			case Include:
				found = append(found, path.Clone())
			case IncludeAndSkip:
				found = append(found, path.Clone())
				return Skip
			case ExcludeAndSkip:
				return Skip
			}
			return Continue
		},
	}, opts...)
	return found
}

// Access returns the node at path.
func Access[T any](root T, children ChildrenFunc[T], path IndexPath) (T, bool) {
	node := root
	for _, i := range path {
		kids := children(node)
		if i < 0 || i >= len(kids) {
			var zero T
			return zero, false
		}
		node = kids[i]
	}
	return node, true
}

// AccessPath returns every node from the root to the node at path, inclusive.
func AccessPath[T any](root T, children ChildrenFunc[T], path IndexPath) ([]T, bool) {
	nodes := make([]T, 0, len(path)+1)
	node := root
	nodes = append(nodes, node)
	for _, i := range path {
		kids := children(node)
		if i < 0 || i >= len(kids) {
			return nil, false
		}
		node = kids[i]
		nodes = append(nodes, node)
	}
	return nodes, true
}
