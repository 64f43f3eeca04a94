package tree

import (
	"slices"
	"strings"
	"testing"
)

type node struct {
	name string
	kids []*node
}

func n(name string, kids ...*node) *node { return &node{name: name, kids: kids} }

func kids(x *node) []*node { return x.kids }

//	root
//	├── a
//	│   ├── a1
//	│   └── a2
//	└── b
//	    └── b1
func sample() *node {
	return n("root",
		n("a", n("a1"), n("a2")),
		n("b", n("b1")),
	)
}

func names(nodes []*node) string {
	out := make([]string, 0, len(nodes))
	for _, x := range nodes {
		out = append(out, x.name)
	}
	return strings.Join(out, ",")
}

func TestVisitOrder(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		wantEnter string
		wantLeave string
	}{
		{"forward", nil, "root,a,a1,a2,b,b1", "a1,a2,a,b1,b,root"},
		{"reverse", []Option{Reverse()}, "root,b,b1,a,a2,a1", "b1,b,a2,a1,a,root"},
		{"exclude root", []Option{ExcludeRoot()}, "a,a1,a2,b,b1", "a1,a2,a,b1,b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entered, left []*node
			Visit(sample(), kids, Visitor[*node]{
				Enter: func(x *node, _ IndexPath, _ []*node) Signal {
					entered = append(entered, x)
					return Continue
				},
				Leave: func(x *node, _ IndexPath, _ []*node) {
					left = append(left, x)
				},
			}, tt.opts...)
			if got := names(entered); got != tt.wantEnter {
				t.Errorf("enter order = %s, want %s", got, tt.wantEnter)
			}
			if got := names(left); got != tt.wantLeave {
				t.Errorf("leave order = %s, want %s", got, tt.wantLeave)
			}
		})
	}
}

func TestVisitSkipAndStop(t *testing.T) {
	var entered []*node
	Visit(sample(), kids, Visitor[*node]{
		Enter: func(x *node, _ IndexPath, _ []*node) Signal {
			entered = append(entered, x)
			switch x.name {
			case "a":
				return Skip
			case "b1":
				return Stop
			}
			return Continue
		},
	})
	if got := names(entered); got != "root,a,b,b1" {
		t.Errorf("entered = %s", got)
	}
}

func TestVisitParentsAndPaths(t *testing.T) {
	var gotPath IndexPath
	var gotParents []*node
	Visit(sample(), kids, Visitor[*node]{
		Enter: func(x *node, path IndexPath, parents []*node) Signal {
			if x.name == "a2" {
				gotPath = path.Clone()
				gotParents = slices.Clone(parents)
				return Stop
			}
			return Continue
		},
	})
	if !gotPath.Equal(IndexPath{0, 1}) {
		t.Errorf("path = %v, want [0 1]", gotPath)
	}
	if got := names(gotParents); got != "root,a" {
		t.Errorf("parents = %s, want root,a", got)
	}
}

func TestVisitCycleTerminates(t *testing.T) {
	root := sample()
	// a2 -> root makes the tree cyclic.
	root.kids[0].kids[1].kids = []*node{root}

	count := 0
	Visit(root, kids, Visitor[*node]{
		Enter: func(*node, IndexPath, []*node) Signal {
			count++
			return Continue
		},
	})
	if count != 6 {
		t.Errorf("visited %d nodes, want 6", count)
	}
}

func TestFind(t *testing.T) {
	root := sample()
	isLeaf := func(x *node, _ IndexPath) bool { return len(x.kids) == 0 }

	first, ok := Find(root, kids, isLeaf)
	if !ok || first.name != "a1" {
		t.Errorf("Find = %v, %v", first, ok)
	}

	top, ok := Find(root, kids, isLeaf, Reverse())
	if !ok || top.name != "b1" {
		t.Errorf("Find(Reverse) = %v, %v", top, ok)
	}

	if got := names(FindAll(root, kids, isLeaf)); got != "a1,a2,b1" {
		t.Errorf("FindAll = %s", got)
	}

	path, ok := FindIndexPath(root, kids, func(x *node, _ IndexPath) bool { return x.name == "b1" })
	if !ok || !path.Equal(IndexPath{1, 0}) {
		t.Errorf("FindIndexPath = %v, %v", path, ok)
	}

	path, ok = FindIndexPath(root, kids, func(x *node, _ IndexPath) bool { return x.name == "root" })
	if !ok || path == nil || len(path) != 0 {
		t.Errorf("FindIndexPath(root) = %v, %v", path, ok)
	}

	if _, ok := Find(root, kids, func(x *node, _ IndexPath) bool { return x.name == "zzz" }); ok {
		t.Error("Find should report missing nodes")
	}
}

func TestFindAllIndexPaths(t *testing.T) {
	root := sample()
	tests := []struct {
		name  string
		match MatchFunc[*node]
		want  []IndexPath
	}{
		{
			name: "include and skip stops at a",
			match: func(x *node, _ IndexPath) Match {
				if x.name == "a" {
					return IncludeAndSkip
				}
				if x.name == "root" {
					return Exclude
				}
				return Include
			},
			want: []IndexPath{{0}, {1}, {1, 0}},
		},
		{
			name: "exclude and skip prunes b",
			match: func(x *node, _ IndexPath) Match {
				if x.name == "b" {
					return ExcludeAndSkip
				}
				if x.name == "root" {
					return Exclude
				}
				return Include
			},
			want: []IndexPath{{0}, {0, 0}, {0, 1}},
		},
		{
			name:  "matching adapter",
			match: Matching(func(x *node, _ IndexPath) bool { return strings.HasSuffix(x.name, "1") }),
			want:  []IndexPath{{0, 0}, {1, 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindAllIndexPaths(root, kids, tt.match)
			if !slices.EqualFunc(got, tt.want, IndexPath.Equal) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccess(t *testing.T) {
	root := sample()
	got, ok := Access(root, kids, IndexPath{0, 1})
	if !ok || got.name != "a2" {
		t.Errorf("Access = %v, %v", got, ok)
	}
	if _, ok := Access(root, kids, IndexPath{5}); ok {
		t.Error("Access out of range should fail")
	}
	chain, ok := AccessPath(root, kids, IndexPath{1, 0})
	if !ok || names(chain) != "root,b,b1" {
		t.Errorf("AccessPath = %s, %v", names(chain), ok)
	}
	if _, ok := AccessPath(root, kids, IndexPath{1, 3}); ok {
		t.Error("AccessPath out of range should fail")
	}
}
