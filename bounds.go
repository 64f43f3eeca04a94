package noyastate

import (
	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
)

// GroupPolicy decides how parent layers contribute to a bounding rect.
type GroupPolicy int

const (
	// GroupNone uses each layer's own frame.
	GroupNone GroupPolicy = iota
	// GroupChildrenOnly replaces a parent's frame with its children's bounds.
	GroupChildrenOnly
	// GroupFull unions a parent's frame with all of its descendants.
	GroupFull
)

// BoundingRectOptions configure GetBoundingRect.
type BoundingRectOptions struct {
	GroupPolicy   GroupPolicy
	IncludeHidden bool
}

// GetBoundingRect unions the bounds of the layers with the given IDs in
// root's coordinate space. ok is false when no layer contributed.
func GetBoundingRect(root *sketch.Layer, ids []string, opts BoundingRectOptions) (r geometry.Rect, ok bool) {
	for _, b := range GetBoundingRectMap(root, ids, opts) {
		if !ok {
			r, ok = b, true
			continue
		}
		r = r.Union(b)
	}
	return r, ok
}

// GetBoundingRectMap returns the bounds of each layer with one of the given
// IDs in root's coordinate space.
func GetBoundingRectMap(root *sketch.Layer, ids []string, opts BoundingRectOptions) map[string]geometry.Rect {
	out := make(map[string]geometry.Rect, len(ids))
	for _, path := range sketch.IndexPathsOf(root, ids) {
		l, _ := sketch.Access(root, path)
		if len(path) == 0 || (!l.IsVisible && !opts.IncludeHidden) {
			continue
		}
		ctm := GetLayerTransformAtIndexPath(root, path, geometry.Identity())
		if b, ok := boundsOf(ctm, l, opts); ok {
			out[l.ObjectID] = b
		}
	}
	return out
}

func boundsOf(ctm geometry.Matrix, l *sketch.Layer, opts BoundingRectOptions) (geometry.Rect, bool) {
	own := layerBounds(ctm, l)
	if opts.GroupPolicy == GroupNone || len(sketch.Children(l)) == 0 {
		return own, true
	}
	childCtm := GetLayerTransform(ctm, l)
	var (
		union geometry.Rect
		found bool
	)
	if opts.GroupPolicy == GroupFull {
		union, found = own, true
	}
	for _, child := range l.Layers {
		if !child.IsVisible && !opts.IncludeHidden {
			continue
		}
		b, ok := boundsOf(childCtm, child, opts)
		if !ok {
			continue
		}
		if !found {
			union, found = b, true
			continue
		}
		union = union.Union(b)
	}
	if !found {
		return own, true
	}
	return union, true
}

// childrenLocalBounds unions the rotated frames of l's children in l's own
// coordinates.
func childrenLocalBounds(l *sketch.Layer) (geometry.Rect, bool) {
	var (
		r  geometry.Rect
		ok bool
	)
	for _, child := range l.Layers {
		b := layerBounds(geometry.Identity(), child)
		if !ok {
			r, ok = b, true
			continue
		}
		r = r.Union(b)
	}
	return r, ok
}
