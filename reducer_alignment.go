package noyastate

import (
	"cmp"
	"slices"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

// minDistributeLayers is the fewest layers distribution moves anything for.
const minDistributeLayers = 3

func alignmentReducer(s *ApplicationState, action Action, _ RenderContext) (*ApplicationState, bool) {
	switch a := action.(type) {
	case AlignLayers:
		return alignLayers(s, a.Type), true
	case DistributeLayers:
		return distributeLayers(s, a.Axis), true
	}
	return s, false
}

// pageBounds returns the page-space bounds of the layer at path.
func pageBounds(page *sketch.Layer, path tree.IndexPath) geometry.Rect {
	l, _ := sketch.Access(page, path)
	return layerBounds(GetLayerTransformAtIndexPath(page, path, geometry.Identity()), l)
}

// moveOnPage shifts an owned layer by a page-space delta.
func moveOnPage(d *Draft, pi int, p tree.IndexPath, delta geometry.Point) bool {
	if delta.ApproxEqual(geometry.Point{}, fitEpsilon) {
		return false
	}
	parentCtm := GetLayerTransformAtIndexPath(d.Sketch().Pages[pi], p, geometry.Identity())
	local := parentCtm.Linear().Invert().TransformVector(delta)
	l := d.Layer(pi, p)
	l.Frame.X += local.X
	l.Frame.Y += local.Y
	return true
}

func alignLayers(s *ApplicationState, t AlignmentType) *ApplicationState {
	page := GetCurrentPage(s)
	paths := GetSelectedLayerIndexPathsExcludingDescendants(s)
	if len(paths) == 0 {
		return s
	}

	var target geometry.Rect
	if len(paths) == 1 {
		parentPath := paths[0].Parent()
		if len(parentPath) == 0 {
			return s
		}
		parent, _ := sketch.Access(page, parentPath)
		target = layerBounds(GetLayerTransformAtIndexPath(page, parentPath, geometry.Identity()), parent)
	} else {
		for i, p := range paths {
			if b := pageBounds(page, p); i == 0 {
				target = b
			} else {
				target = target.Union(b)
			}
		}
	}

	return editLayers(s, paths, func(d *Draft, pi int, p tree.IndexPath) bool {
		b := pageBounds(d.Sketch().Pages[pi], p)
		var delta geometry.Point
		switch t {
		case AlignLeft:
			delta.X = target.MinX() - b.MinX()
		case AlignCenterHorizontal:
			delta.X = target.MidX() - b.MidX()
		case AlignRight:
			delta.X = target.MaxX() - b.MaxX()
		case AlignTop:
			delta.Y = target.MinY() - b.MinY()
		case AlignCenterVertical:
			delta.Y = target.MidY() - b.MidY()
		case AlignBottom:
			delta.Y = target.MaxY() - b.MaxY()
		}
		return moveOnPage(d, pi, p, delta)
	})
}

func distributeLayers(s *ApplicationState, axis Axis) *ApplicationState {
	page := GetCurrentPage(s)
	paths := GetSelectedLayerIndexPathsExcludingDescendants(s)
	if len(paths) < minDistributeLayers {
		return s
	}
	lo := func(r geometry.Rect) float64 {
		if axis == Vertical {
			return r.MinY()
		}
		return r.MinX()
	}
	size := func(r geometry.Rect) float64 {
		if axis == Vertical {
			return r.Height
		}
		return r.Width
	}

	type item struct {
		id     string
		bounds geometry.Rect
	}
	items := make([]item, len(paths))
	for i, p := range paths {
		l, _ := sketch.Access(page, p)
		items[i] = item{id: l.ObjectID, bounds: pageBounds(page, p)}
	}
	slices.SortStableFunc(items, func(a, b item) int { return cmp.Compare(lo(a.bounds), lo(b.bounds)) })

	first, last := items[0].bounds, items[len(items)-1].bounds
	span := lo(last) + size(last) - lo(first)
	total := 0.0
	for _, it := range items {
		total += size(it.bounds)
	}
	gap := (span - total) / float64(len(items)-1)

	want := make(map[string]float64, len(items))
	pos := lo(first)
	for _, it := range items {
		want[it.id] = pos - lo(it.bounds)
		pos += size(it.bounds) + gap
	}

	return editLayers(s, paths, func(d *Draft, pi int, p tree.IndexPath) bool {
		l, _ := sketch.Access(d.Sketch().Pages[pi], p)
		shift := want[l.ObjectID]
		delta := geometry.Pt(shift, 0)
		if axis == Vertical {
			delta = geometry.Pt(0, shift)
		}
		return moveOnPage(d, pi, p, delta)
	})
}
