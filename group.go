package noyastate

import (
	"math"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

// MinLayerSize is the smallest width or height a resize produces.
const MinLayerSize = 0.5

const fitEpsilon = 1e-9

// fixGroupFrameHierarchy refits the layer at path, if it is a group, and
// every group above it, innermost first, so each group's frame is the
// bounding box of its children again. Artboards keep their frames.
func fixGroupFrameHierarchy(d *Draft, pageIndex int, path tree.IndexPath) {
	for k := len(path); k >= 1; k-- {
		p := path[:k]
		l, ok := sketch.Access(d.Sketch().Pages[pageIndex], p)
		if !ok || !l.Class.IsGroupLike() {
			continue
		}
		refitGroup(d, pageIndex, p)
	}
}

// fixGroupsContaining refits the groups around each of the given layers,
// wherever they now live. IDs that no longer exist are skipped.
func fixGroupsContaining(d *Draft, ids ...string) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if loc, ok := d.Sketch().Locate(id); ok {
			fixGroupFrameHierarchy(d, loc.PageIndex, loc.IndexPath)
		}
	}
}

func refitGroup(d *Draft, pageIndex int, path tree.IndexPath) {
	current, _ := sketch.Access(d.Sketch().Pages[pageIndex], path)
	r, ok := childrenLocalBounds(current)
	if !ok {
		return
	}
	w, h := current.Frame.Width, current.Frame.Height
	if r.ApproxEqual(geometry.Rect{Width: w, Height: h}, fitEpsilon) {
		return
	}

	for i := range current.Layers {
		child := d.Layer(pageIndex, path.Child(i))
		child.Frame.X -= r.X
		child.Frame.Y -= r.Y
	}

	g := d.Layer(pageIndex, path)
	rf := geometry.Concat(GetLayerRotationTransform(g), GetLayerFlipTransform(g)).Linear()
	c := geometry.Pt(w/2, h/2)
	c2 := geometry.Pt(r.Width/2, r.Height/2)
	shift := rf.TransformPoint(r.Origin().Add(c2).Sub(c))
	origin := g.Frame.Rect().Origin().Add(c).Sub(c2).Add(shift)
	g.Frame = g.Frame.WithRect(geometry.Rect{X: origin.X, Y: origin.Y, Width: r.Width, Height: r.Height})
}

// scaleChildren scales the frames of the children of the owned layer at
// path about its origin, recursing into nested groups.
func scaleChildren(d *Draft, pageIndex int, path tree.IndexPath, sx, sy float64) {
	l, ok := sketch.Access(d.Sketch().Pages[pageIndex], path)
	if !ok {
		return
	}
	for i, child := range l.Layers {
		c := d.Layer(pageIndex, path.Child(i))
		c.Frame.X *= sx
		c.Frame.Y *= sy
		c.Frame.Width = math.Max(MinLayerSize, c.Frame.Width*sx)
		c.Frame.Height = math.Max(MinLayerSize, c.Frame.Height*sy)
		if child.Class.IsGroupLike() {
			scaleChildren(d, pageIndex, path.Child(i), sx, sy)
		}
	}
}

// resizeLayer sets the width or height of an owned layer, keeping its
// proportions when the frame asks for it. Groups scale their children.
func resizeLayer(d *Draft, pageIndex int, path tree.IndexPath, width, height *float64) {
	l := d.Layer(pageIndex, path)
	old := l.Frame
	w, h := old.Width, old.Height
	switch {
	case width != nil:
		w = math.Max(MinLayerSize, *width)
		if old.ConstrainProportions && old.Width > 0 {
			h = math.Max(MinLayerSize, old.Height*w/old.Width)
		}
	case height != nil:
		h = math.Max(MinLayerSize, *height)
		if old.ConstrainProportions && old.Height > 0 {
			w = math.Max(MinLayerSize, old.Width*h/old.Height)
		}
	}
	if w == old.Width && h == old.Height {
		return
	}
	l.Frame.Width, l.Frame.Height = w, h
	if l.Class.IsGroupLike() && old.Width > 0 && old.Height > 0 {
		scaleChildren(d, pageIndex, path, w/old.Width, h/old.Height)
	}
}

// parentIDs returns the IDs of the parents of the layers at paths. The page
// itself is left out.
func parentIDs(root *sketch.Layer, paths []tree.IndexPath) []string {
	var out []string
	for _, p := range paths {
		if len(p) < 2 {
			continue
		}
		if parent, ok := sketch.Access(root, p.Parent()); ok {
			out = append(out, parent.ObjectID)
		}
	}
	return out
}
