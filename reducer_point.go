package noyastate

import (
	"maps"
	"math"
	"slices"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/selection"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

// minPathPoints is the fewest points a path layer keeps; deleting below it
// deletes the layer.
const minPathPoints = 2

func pointReducer(s *ApplicationState, action Action, _ RenderContext) (*ApplicationState, bool) {
	switch a := action.(type) {
	case SelectPoint:
		return selectPoint(s, a), true
	case SelectAllPoints:
		return selectAllPoints(s), true
	case DeletePoint:
		return deletePoints(s), true
	case SetPointX:
		return editSelectedPoints(s, func(l *sketch.Layer, indices []int) bool {
			return movePoints(l, indices, func(p geometry.Point) geometry.Point {
				return geometry.Pt(a.Mode.apply(p.X, a.Value), p.Y)
			})
		}), true
	case SetPointY:
		return editSelectedPoints(s, func(l *sketch.Layer, indices []int) bool {
			return movePoints(l, indices, func(p geometry.Point) geometry.Point {
				return geometry.Pt(p.X, a.Mode.apply(p.Y, a.Value))
			})
		}), true
	case SetPointCurveMode:
		return editSelectedPoints(s, func(l *sketch.Layer, indices []int) bool {
			changed := false
			for _, i := range indices {
				changed = setCurveMode(l, i, a.CurveMode) || changed
			}
			return changed
		}), true
	case SetPointCornerRadius:
		return editSelectedPoints(s, func(l *sketch.Layer, indices []int) bool {
			changed := false
			for _, i := range indices {
				cp := &l.Points[i]
				changed = set(&cp.CornerRadius, math.Max(0, a.Mode.apply(cp.CornerRadius, a.Value))) || changed
			}
			return changed
		}), true
	case InsertPointInPath:
		return insertPointInPath(s, a), true
	case SetIsClosed:
		return editPathLayer(s, a, a.LayerID, func(l *sketch.Layer) bool {
			return set(&l.IsClosed, a.Closed)
		}), true
	case SelectControlPoint:
		return selectControlPoint(s, a), true
	}
	return s, false
}

// pathLayer returns the path of a points layer on the current page.
func pathLayer(s *ApplicationState, id string) (*sketch.Layer, tree.IndexPath, bool) {
	page := GetCurrentPage(s)
	if page == nil {
		return nil, nil, false
	}
	p, ok := sketch.IndexPathOf(page, id)
	if !ok {
		return nil, nil, false
	}
	l, _ := sketch.Access(page, p)
	return l, p, l.Class.IsPointsLayer()
}

func validIndices(indices []int, n int) []int {
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < n && !slices.Contains(out, i) {
			out = append(out, i)
		}
	}
	slices.Sort(out)
	return out
}

func selectPoint(s *ApplicationState, a SelectPoint) *ApplicationState {
	l, _, ok := pathLayer(s, a.LayerID)
	if !ok || a.Index < 0 || a.Index >= len(l.Points) {
		logMissing(a, "layerId", a.LayerID, "index", a.Index)
		return s
	}
	d := newDraft(s)
	st := d.State()
	if a.Mode == selection.Replace {
		st.SelectedPointLists = map[string][]int{}
	}
	next := selection.Updated(st.SelectedPointLists[a.LayerID], []int{a.Index}, a.Mode)
	if len(next) == 0 {
		delete(st.SelectedPointLists, a.LayerID)
	} else {
		st.SelectedPointLists[a.LayerID] = next
	}
	st.SelectedControlPoint = nil
	return d.Finish()
}

func selectAllPoints(s *ApplicationState) *ApplicationState {
	ids := slices.Collect(maps.Keys(s.SelectedPointLists))
	if len(ids) == 0 {
		ids = s.SelectedLayerIDs
	}
	lists := make(map[string][]int)
	for _, id := range ids {
		l, _, ok := pathLayer(s, id)
		if !ok {
			continue
		}
		all := make([]int, len(l.Points))
		for i := range all {
			all[i] = i
		}
		lists[id] = all
	}
	if len(lists) == 0 {
		return s
	}
	d := newDraft(s)
	st := d.State()
	st.SelectedPointLists = lists
	st.SelectedControlPoint = nil
	return d.Finish()
}

// selectedPointPaths returns the layers with selected points in document order.
func selectedPointPaths(s *ApplicationState) []tree.IndexPath {
	page := GetCurrentPage(s)
	if page == nil {
		return nil
	}
	return sketch.IndexPathsOf(page, slices.Sorted(maps.Keys(s.SelectedPointLists)))
}

// editSelectedPoints runs fn on each points layer with selected points and
// refits its frame to the edited points.
func editSelectedPoints(s *ApplicationState, fn func(l *sketch.Layer, indices []int) bool) *ApplicationState {
	page := GetCurrentPage(s)
	return editLayers(s, selectedPointPaths(s), func(d *Draft, pi int, p tree.IndexPath) bool {
		orig, _ := sketch.Access(page, p)
		if !orig.Class.IsPointsLayer() {
			return false
		}
		indices := validIndices(s.SelectedPointLists[orig.ObjectID], len(orig.Points))
		if len(indices) == 0 {
			return false
		}
		l := d.Layer(pi, p)
		if !fn(l, indices) {
			return false
		}
		refitPath(l)
		return true
	})
}

func editPathLayer(s *ApplicationState, action Action, id string, fn func(l *sketch.Layer) bool) *ApplicationState {
	_, path, ok := pathLayer(s, id)
	if !ok {
		logMissing(action, "layerId", id)
		return s
	}
	return editLayers(s, []tree.IndexPath{path}, func(d *Draft, pi int, p tree.IndexPath) bool {
		l := d.Layer(pi, p)
		if !fn(l) {
			return false
		}
		refitPath(l)
		return true
	})
}

// movePoints moves points, with their handles, to where fn maps their
// position in layer pixels.
func movePoints(l *sketch.Layer, indices []int, fn func(geometry.Point) geometry.Point) bool {
	w, h := l.Frame.Width, l.Frame.Height
	if w <= 0 || h <= 0 {
		return false
	}
	changed := false
	for _, i := range indices {
		cp := &l.Points[i]
		from := geometry.Pt(cp.Point.X*w, cp.Point.Y*h)
		to := fn(from)
		if to.ApproxEqual(from, fitEpsilon) {
			continue
		}
		dx, dy := (to.X-from.X)/w, (to.Y-from.Y)/h
		cp.Point = sketch.PointString{X: cp.Point.X + dx, Y: cp.Point.Y + dy}
		cp.CurveFrom = sketch.PointString{X: cp.CurveFrom.X + dx, Y: cp.CurveFrom.Y + dy}
		cp.CurveTo = sketch.PointString{X: cp.CurveTo.X + dx, Y: cp.CurveTo.Y + dy}
		changed = true
	}
	return changed
}

// neighbors returns the points before and after i, wrapping on closed
// paths. Open path ends use the point itself.
func neighbors(l *sketch.Layer, i int) (prev, next geometry.Point) {
	n := len(l.Points)
	prev, next = l.Points[i].Point.Point(), l.Points[i].Point.Point()
	if i > 0 || l.IsClosed {
		prev = l.Points[(i-1+n)%n].Point.Point()
	}
	if i < n-1 || l.IsClosed {
		next = l.Points[(i+1)%n].Point.Point()
	}
	return prev, next
}

func setCurveMode(l *sketch.Layer, i int, mode sketch.CurveMode) bool {
	cp := &l.Points[i]
	before := *cp
	cp.CurveMode = mode
	p := cp.Point.Point()
	switch mode {
	case sketch.CurveModeStraight, sketch.CurveModeNone:
		cp.HasCurveFrom, cp.HasCurveTo = false, false
		cp.CurveFrom, cp.CurveTo = cp.Point, cp.Point
	default:
		if !cp.HasCurveFrom && !cp.HasCurveTo {
			prev, next := neighbors(l, i)
			d := next.Sub(prev).Mul(0.25)
			cp.CurveFrom = sketch.PointString(p.Add(d))
			cp.CurveTo = sketch.PointString(p.Sub(d))
		}
		cp.HasCurveFrom, cp.HasCurveTo = true, true
		from := cp.CurveFrom.Point().Sub(p)
		to := cp.CurveTo.Point().Sub(p)
		switch mode {
		case sketch.CurveModeMirrored:
			cp.CurveTo = sketch.PointString(p.Sub(from))
		case sketch.CurveModeAsymmetric:
			if fl := from.Length(); fl > 0 {
				cp.CurveTo = sketch.PointString(p.Sub(from.Mul(to.Length() / fl)))
			}
		}
	}
	return *cp != before
}

func insertPointInPath(s *ApplicationState, a InsertPointInPath) *ApplicationState {
	l, _, ok := pathLayer(s, a.LayerID)
	if !ok {
		logMissing(a, "layerId", a.LayerID)
		return s
	}
	n := len(l.Points)
	segments := n - 1
	if l.IsClosed {
		segments = n
	}
	if a.SegmentIndex < 0 || a.SegmentIndex >= segments || n == 0 {
		return s
	}
	t := clamp01(a.T)
	i, j := a.SegmentIndex, (a.SegmentIndex+1)%n
	next := editPathLayer(s, a, a.LayerID, func(l *sketch.Layer) bool {
		from, to := &l.Points[i], &l.Points[j]
		var inserted sketch.CurvePoint
		if !from.HasCurveFrom && !to.HasCurveTo {
			p := from.Point.Point().Lerp(to.Point.Point(), t)
			inserted = sketch.StraightPoint(p.X, p.Y)
		} else {
			c1, c2 := segmentControls(*from, *to)
			p0, p1, p2, p3 := from.Point.Point(), c1.Point(), c2.Point(), to.Point.Point()
			p01, p12, p23 := p0.Lerp(p1, t), p1.Lerp(p2, t), p2.Lerp(p3, t)
			p012, p123 := p01.Lerp(p12, t), p12.Lerp(p23, t)
			mid := p012.Lerp(p123, t)
			from.CurveFrom, from.HasCurveFrom = sketch.PointString(p01), true
			to.CurveTo, to.HasCurveTo = sketch.PointString(p23), true
			inserted = sketch.CurvePoint{
				Point:        sketch.PointString(mid),
				CurveTo:      sketch.PointString(p012),
				CurveFrom:    sketch.PointString(p123),
				HasCurveTo:   true,
				HasCurveFrom: true,
				CurveMode:    sketch.CurveModeAsymmetric,
			}
		}
		l.Points = slices.Insert(l.Points, i+1, inserted)
		return true
	})
	if next == s {
		return s
	}
	next.SelectedPointLists = map[string][]int{a.LayerID: {i + 1}}
	next.SelectedControlPoint = nil
	return next
}

func deletePoints(s *ApplicationState) *ApplicationState {
	page := GetCurrentPage(s)
	paths := selectedPointPaths(s)
	if len(paths) == 0 {
		return s
	}
	pi := GetCurrentPageIndex(s)
	d := newDraft(s)
	var removed []tree.IndexPath
	changed := false
	for _, p := range paths {
		orig, _ := sketch.Access(page, p)
		if !orig.Class.IsPointsLayer() {
			continue
		}
		indices := validIndices(s.SelectedPointLists[orig.ObjectID], len(orig.Points))
		if len(indices) == 0 {
			continue
		}
		changed = true
		if len(orig.Points)-len(indices) < minPathPoints {
			removed = append(removed, p)
			continue
		}
		l := d.Layer(pi, p)
		kept := make([]sketch.CurvePoint, 0, len(l.Points)-len(indices))
		for i, cp := range l.Points {
			if !slices.Contains(indices, i) {
				kept = append(kept, cp)
			}
		}
		l.Points = kept
		refitPath(l)
		fixGroupFrameHierarchy(d, pi, p.Parent())
	}
	if !changed {
		return s
	}
	parents := parentIDs(page, removed)
	tree.SortDescending(removed)
	for _, p := range removed {
		d.RemoveLayer(pi, p)
	}
	fixGroupsContaining(d, parents...)
	st := d.State()
	st.SelectedPointLists = map[string][]int{}
	st.SelectedControlPoint = nil
	st.pruneSelection()
	return d.Finish()
}

func selectControlPoint(s *ApplicationState, a SelectControlPoint) *ApplicationState {
	l, _, ok := pathLayer(s, a.LayerID)
	if !ok || a.PointIndex < 0 || a.PointIndex >= len(l.Points) {
		logMissing(a, "layerId", a.LayerID, "index", a.PointIndex)
		return s
	}
	ref := ControlPointRef{LayerID: a.LayerID, PointIndex: a.PointIndex, ControlPointType: a.ControlPointType}
	if s.SelectedControlPoint != nil && *s.SelectedControlPoint == ref {
		return s
	}
	d := newDraft(s)
	st := d.State()
	st.SelectedControlPoint = &ref
	st.SelectedPointLists = map[string][]int{a.LayerID: {a.PointIndex}}
	return d.Finish()
}

// refitPath resizes an owned points layer to the bounds of its points and
// handles, keeping every point where it is on the page.
func refitPath(l *sketch.Layer) {
	w, h := l.Frame.Width, l.Frame.Height
	abs := func(p sketch.PointString) geometry.Point { return geometry.Pt(p.X*w, p.Y*h) }
	pts := make([]geometry.Point, 0, len(l.Points)*3)
	for _, cp := range l.Points {
		pts = append(pts, abs(cp.Point))
		if cp.HasCurveFrom {
			pts = append(pts, abs(cp.CurveFrom))
		}
		if cp.HasCurveTo {
			pts = append(pts, abs(cp.CurveTo))
		}
	}
	r, ok := geometry.BoundingRect(pts)
	if !ok {
		return
	}
	r.Width = math.Max(r.Width, MinLayerSize)
	r.Height = math.Max(r.Height, MinLayerSize)
	if r.ApproxEqual(geometry.Rect{Width: w, Height: h}, fitEpsilon) {
		return
	}

	norm := func(p sketch.PointString) sketch.PointString {
		q := abs(p)
		return sketch.PointString{X: (q.X - r.X) / r.Width, Y: (q.Y - r.Y) / r.Height}
	}
	for i := range l.Points {
		cp := &l.Points[i]
		cp.Point, cp.CurveFrom, cp.CurveTo = norm(cp.Point), norm(cp.CurveFrom), norm(cp.CurveTo)
	}

	rf := geometry.Concat(GetLayerRotationTransform(l), GetLayerFlipTransform(l)).Linear()
	c := geometry.Pt(w/2, h/2)
	c2 := geometry.Pt(r.Width/2, r.Height/2)
	origin := l.Frame.Rect().Origin().Add(c).Sub(c2).Add(rf.TransformPoint(r.Origin().Add(c2).Sub(c)))
	l.Frame = l.Frame.WithRect(geometry.Rect{X: origin.X, Y: origin.Y, Width: r.Width, Height: r.Height})
}
