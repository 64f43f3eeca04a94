package noyastate

import (
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

// GetCurrentPageIndex returns the index of the selected page. A state whose
// selected page no longer exists falls back to the first page.
func GetCurrentPageIndex(s *ApplicationState) int {
	if s == nil || s.Sketch == nil || len(s.Sketch.Pages) == 0 {
		return -1
	}
	if i := s.Sketch.PageIndexOf(s.SelectedPage); i >= 0 {
		return i
	}
	return 0
}

// GetCurrentPage returns the selected page, or nil for an empty document.
func GetCurrentPage(s *ApplicationState) *sketch.Layer {
	i := GetCurrentPageIndex(s)
	if i < 0 {
		return nil
	}
	return s.Sketch.Pages[i]
}

// GetIndexPathOfLayer returns the index path of a layer on the current page.
func GetIndexPathOfLayer(s *ApplicationState, id string) (tree.IndexPath, bool) {
	page := GetCurrentPage(s)
	if page == nil {
		return nil, false
	}
	return sketch.IndexPathOf(page, id)
}

// GetSelectedLayerIndexPaths returns the paths of the selected layers in
// document order.
func GetSelectedLayerIndexPaths(s *ApplicationState) []tree.IndexPath {
	page := GetCurrentPage(s)
	if page == nil {
		return nil
	}
	return sketch.IndexPathsOf(page, s.SelectedLayerIDs)
}

// GetSelectedLayerIndexPathsExcludingDescendants drops selected layers that
// have a selected ancestor.
func GetSelectedLayerIndexPathsExcludingDescendants(s *ApplicationState) []tree.IndexPath {
	return tree.RemoveDescendants(GetSelectedLayerIndexPaths(s))
}

// GetSelectedLayers returns the selected layers in document order.
func GetSelectedLayers(s *ApplicationState) []*sketch.Layer {
	page := GetCurrentPage(s)
	if page == nil {
		return nil
	}
	paths := GetSelectedLayerIndexPaths(s)
	out := make([]*sketch.Layer, 0, len(paths))
	for _, p := range paths {
		if l, ok := sketch.Access(page, p); ok {
			out = append(out, l)
		}
	}
	return out
}

// GetSelectedLayersOfKind returns the selected layers whose kind matches.
func GetSelectedLayersOfKind(s *ApplicationState, match func(sketch.Kind) bool) []*sketch.Layer {
	var out []*sketch.Layer
	for _, l := range GetSelectedLayers(s) {
		if match(l.Class) {
			out = append(out, l)
		}
	}
	return out
}

// targetIDs returns ids, or the selection when ids is empty.
func targetIDs(s *ApplicationState, ids IDList) []string {
	if len(ids) > 0 {
		return ids
	}
	return s.SelectedLayerIDs
}

// targetPaths returns the current-page paths of ids (or of the selection)
// in document order.
func targetPaths(s *ApplicationState, ids IDList) []tree.IndexPath {
	page := GetCurrentPage(s)
	if page == nil {
		return nil
	}
	return sketch.IndexPathsOf(page, targetIDs(s, ids))
}

func visitAll(fn func(*sketch.Layer)) tree.Visitor[*sketch.Layer] {
	return tree.Visitor[*sketch.Layer]{
		Enter: func(l *sketch.Layer, _ tree.IndexPath, _ []*sketch.Layer) tree.Signal {
			fn(l)
			return tree.Continue
		},
	}
}
