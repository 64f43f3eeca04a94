package noyastate

import (
	"slices"

	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

// Draft is a copy-on-write session over a state. Reads go through the
// working state; a node is copied the first time it is requested for
// writing, together with every ancestor up to the file, so the base state is
// never modified and shares all untouched subtrees with the result.
type Draft struct {
	state    *ApplicationState
	fileCopy bool
	owned    map[*sketch.Layer]struct{}
}

// newDraft starts a session. The base state is never written to.
func newDraft(base *ApplicationState) *Draft {
	return &Draft{
		state: base.clone(),
		owned: make(map[*sketch.Layer]struct{}),
	}
}

// State returns the working state. Its top-level fields and selection
// collections may be assigned freely; the document must be changed through
// File, Page and Layer.
func (d *Draft) State() *ApplicationState { return d.state }

// Sketch returns the current document for reading.
func (d *Draft) Sketch() *sketch.File { return d.state.Sketch }

// File returns the document for writing.
func (d *Draft) File() *sketch.File {
	if !d.fileCopy {
		d.state.Sketch = d.state.Sketch.ShallowClone()
		d.fileCopy = true
	}
	return d.state.Sketch
}

// own marks a layer created during this session as writable.
func (d *Draft) own(l *sketch.Layer) *sketch.Layer {
	d.owned[l] = struct{}{}
	return l
}

func (d *Draft) isOwned(l *sketch.Layer) bool {
	_, ok := d.owned[l]
	return ok
}

// Page returns page i for writing.
func (d *Draft) Page(i int) *sketch.Layer {
	f := d.File()
	p := f.Pages[i]
	if !d.isOwned(p) {
		p = d.own(p.ShallowClone())
		f.Pages[i] = p
	}
	return p
}

// Layer returns the layer at path on page pageIndex for writing. Every
// ancestor on the way is copied. It returns nil for a stale path.
func (d *Draft) Layer(pageIndex int, path tree.IndexPath) *sketch.Layer {
	if pageIndex < 0 || pageIndex >= len(d.state.Sketch.Pages) {
		return nil
	}
	if _, ok := sketch.Access(d.state.Sketch.Pages[pageIndex], path); !ok {
		return nil
	}
	node := d.Page(pageIndex)
	for _, i := range path {
		child := node.Layers[i]
		if !d.isOwned(child) {
			child = d.own(child.ShallowClone())
			node.Layers[i] = child
		}
		node = child
	}
	return node
}

// LayerByID locates a layer anywhere in the document and returns it for
// writing.
func (d *Draft) LayerByID(id string) (*sketch.Layer, sketch.LayerLocation, bool) {
	loc, ok := d.state.Sketch.Locate(id)
	if !ok {
		return nil, loc, false
	}
	return d.Layer(loc.PageIndex, loc.IndexPath), loc, true
}

// RemoveLayer detaches the layer at path from its parent and returns it.
func (d *Draft) RemoveLayer(pageIndex int, path tree.IndexPath) *sketch.Layer {
	if len(path) == 0 {
		return nil
	}
	parent := d.Layer(pageIndex, path.Parent())
	if parent == nil || path.Last() >= len(parent.Layers) {
		return nil
	}
	removed := parent.Layers[path.Last()]
	parent.Layers = slices.Delete(parent.Layers, path.Last(), path.Last()+1)
	return removed
}

// InsertLayers inserts layers into the parent at parentPath before index.
// An out-of-range index appends.
func (d *Draft) InsertLayers(pageIndex int, parentPath tree.IndexPath, index int, layers ...*sketch.Layer) bool {
	parent := d.Layer(pageIndex, parentPath)
	if parent == nil || !parent.Class.IsParent() {
		return false
	}
	if index < 0 || index > len(parent.Layers) {
		index = len(parent.Layers)
	}
	parent.Layers = slices.Insert(parent.Layers, index, layers...)
	return true
}

// Finish ends the session and returns the new state.
func (d *Draft) Finish() *ApplicationState {
	s := d.state
	d.state = nil
	d.owned = nil
	return s
}
