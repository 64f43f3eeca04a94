package sketch

import "github.com/noya-app/noyastate/tree"

// Visit walks the layer tree rooted at root in pre-order.
func Visit(root *Layer, v tree.Visitor[*Layer], opts ...tree.Option) {
	tree.Visit(root, Children, v, opts...)
}

// Find returns the first layer matching pred.
func Find(root *Layer, pred func(*Layer) bool, opts ...tree.Option) (*Layer, bool) {
	return tree.Find(root, Children, func(l *Layer, _ tree.IndexPath) bool { return pred(l) }, opts...)
}

// FindAll returns every layer matching pred in document order.
func FindAll(root *Layer, pred func(*Layer) bool, opts ...tree.Option) []*Layer {
	return tree.FindAll(root, Children, func(l *Layer, _ tree.IndexPath) bool { return pred(l) }, opts...)
}

// FindByID returns the layer with the given object ID.
func FindByID(root *Layer, id string) (*Layer, bool) {
	return Find(root, func(l *Layer) bool { return l.ObjectID == id })
}

// IndexPathOf returns the index path of the layer with the given ID.
func IndexPathOf(root *Layer, id string) (tree.IndexPath, bool) {
	return tree.FindIndexPath(root, Children, func(l *Layer, _ tree.IndexPath) bool {
		return l.ObjectID == id
	})
}

// IndexPathsOf returns the index paths of every layer whose ID is in ids,
// in document order. Unknown IDs are ignored.
func IndexPathsOf(root *Layer, ids []string) []tree.IndexPath {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return tree.FindAllIndexPaths(root, Children, tree.Matching(func(l *Layer, _ tree.IndexPath) bool {
		_, ok := want[l.ObjectID]
		return ok
	}))
}

// Access returns the layer at path below root.
func Access(root *Layer, path tree.IndexPath) (*Layer, bool) {
	return tree.Access(root, Children, path)
}

// AccessPath returns the layers from root to the layer at path, inclusive.
func AccessPath(root *Layer, path tree.IndexPath) ([]*Layer, bool) {
	return tree.AccessPath(root, Children, path)
}

// PageIndexOf returns the index of the page with the given ID.
func (f *File) PageIndexOf(id string) int {
	for i, p := range f.Pages {
		if p.ObjectID == id {
			return i
		}
	}
	return -1
}

// LayerLocation is where a layer lives in a file.
type LayerLocation struct {
	PageIndex int
	IndexPath tree.IndexPath
}

// Locate finds the page and index path of a layer anywhere in the file.
func (f *File) Locate(id string) (LayerLocation, bool) {
	for i, p := range f.Pages {
		if path, ok := IndexPathOf(p, id); ok {
			return LayerLocation{PageIndex: i, IndexPath: path}, true
		}
	}
	return LayerLocation{}, false
}

// SymbolMasters returns every symbol master in the file.
func (f *File) SymbolMasters() []*Layer {
	var out []*Layer
	for _, p := range f.Pages {
		out = append(out, FindAll(p, func(l *Layer) bool { return l.Class == KindSymbolMaster })...)
	}
	return out
}

// SymbolMaster returns the master with the given symbol ID.
func (f *File) SymbolMaster(symbolID string) (*Layer, bool) {
	if symbolID == "" {
		return nil, false
	}
	for _, p := range f.Pages {
		if m, ok := Find(p, func(l *Layer) bool {
			return l.Class == KindSymbolMaster && l.SymbolID == symbolID
		}); ok {
			return m, true
		}
	}
	return nil, false
}
