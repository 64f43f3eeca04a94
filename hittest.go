package noyastate

import (
	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

// hitTolerance is how far from an open path a click still hits it, in page units.
const hitTolerance = 4

// LayerTraversalOptions configure hit testing and marquee selection.
type LayerTraversalOptions struct {
	// ClickThroughGroups returns the deepest layer instead of its outermost group.
	ClickThroughGroups bool
	// IncludeArtboardLayers lets an artboard itself be hit on its background.
	IncludeArtboardLayers bool
	IncludeHiddenLayers   bool
	IncludeLockedLayers   bool
}

// GetLayerAtPoint returns the topmost layer of the current page under a
// point in page coordinates, or nil.
//
// Layers are visited front to back. An artboard under the point occludes
// everything below it, whether or not one of its children is hit.
func GetLayerAtPoint(s *ApplicationState, point geometry.Point, opts LayerTraversalOptions) *sketch.Layer {
	page := GetCurrentPage(s)
	if page == nil {
		return nil
	}
	type frame struct {
		ctm      geometry.Matrix
		occludes bool
	}
	var (
		hit    *sketch.Layer
		done   bool
		frames = []frame{{ctm: geometry.Identity()}}
	)
	target := func(l *sketch.Layer, parents []*sketch.Layer) *sketch.Layer {
		if opts.ClickThroughGroups {
			return l
		}
		for _, p := range parents {
			if p.Class.IsGroupLike() {
				return p
			}
		}
		return l
	}
	sketch.Visit(page, tree.Visitor[*sketch.Layer]{
		Enter: func(l *sketch.Layer, _ tree.IndexPath, parents []*sketch.Layer) tree.Signal {
			if done {
				return tree.Stop
			}
			tr := GetLayerTransform(frames[len(frames)-1].ctm, l)
			f := frame{ctm: tr}
			if (!l.IsVisible && !opts.IncludeHiddenLayers) || (l.IsLocked && !opts.IncludeLockedLayers) {
				frames = append(frames, f)
				return tree.Skip
			}
			local := tr.Invert().TransformPoint(point)
			switch {
			case l.Class.IsArtboardLike():
				f.occludes = inFrame(l, local, 0)
				frames = append(frames, f)
				if !f.occludes {
					return tree.Skip
				}
				return tree.Continue
			case l.Class.IsGroupLike():
				frames = append(frames, f)
				return tree.Continue
			}
			if hitShape(l, local) {
				hit = target(l, parents)
				done = true
				return tree.Stop
			}
			frames = append(frames, f)
			return tree.Skip
		},
		Leave: func(l *sketch.Layer, _ tree.IndexPath, parents []*sketch.Layer) {
			f := frames[len(frames)-1]
			frames = frames[:len(frames)-1]
			if f.occludes && !done {
				done = true
				if opts.IncludeArtboardLayers {
					hit = target(l, parents)
				}
			}
		},
	}, tree.ExcludeRoot(), tree.Reverse())
	return hit
}

func inFrame(l *sketch.Layer, local geometry.Point, tolerance float64) bool {
	r := geometry.Rect{Width: l.Frame.Width, Height: l.Frame.Height}
	return r.Inset(geometry.Insets{Top: -tolerance, Right: -tolerance, Bottom: -tolerance, Left: -tolerance}).Contains(local)
}

func hitShape(l *sketch.Layer, local geometry.Point) bool {
	if l.Class.IsPointsLayer() && len(l.Points) >= 3 && (l.IsClosed || hasEnabledFill(l)) {
		return curvePointsPath(l).Contains(local)
	}
	if l.Class.IsPointsLayer() {
		return inFrame(l, local, hitTolerance)
	}
	return inFrame(l, local, 0)
}

func hasEnabledFill(l *sketch.Layer) bool {
	if l.Style == nil {
		return false
	}
	for _, f := range l.Style.Fills {
		if f.IsEnabled {
			return true
		}
	}
	return false
}

// MarqueeMode decides whether a layer must be inside the marquee or only touch it.
type MarqueeMode int

const (
	MarqueeIntersects MarqueeMode = iota
	MarqueeContains
)

// GetLayersInRect returns the layers of the current page selected by a
// marquee in page coordinates. Top-level layers and children of artboards
// are candidates; groups are taken whole. An artboard is returned itself
// only when the marquee covers it entirely.
func GetLayersInRect(s *ApplicationState, rect geometry.Rect, mode MarqueeMode, opts LayerTraversalOptions) []*sketch.Layer {
	page := GetCurrentPage(s)
	if page == nil {
		return nil
	}
	var out []*sketch.Layer
	selectable := func(l *sketch.Layer) bool {
		return (l.IsVisible || opts.IncludeHiddenLayers) && (!l.IsLocked || opts.IncludeLockedLayers)
	}
	matches := func(b geometry.Rect) bool {
		if mode == MarqueeContains {
			return rect.ContainsRect(b)
		}
		return rect.Intersects(b)
	}
	for _, l := range page.Layers {
		if !selectable(l) {
			continue
		}
		b := layerBounds(geometry.Identity(), l)
		if l.Class.IsArtboardLike() {
			if rect.ContainsRect(b) {
				out = append(out, l)
				continue
			}
			ctm := GetLayerTransform(geometry.Identity(), l)
			for _, child := range l.Layers {
				if selectable(child) && matches(layerBounds(ctm, child)) {
					out = append(out, child)
				}
			}
			continue
		}
		if matches(b) {
			out = append(out, l)
		}
	}
	return out
}
