package noyastate

import (
	"slices"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/selection"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

func layerReducer(s *ApplicationState, action Action, ctx RenderContext) (*ApplicationState, bool) {
	switch a := action.(type) {
	case AddDrawnLayer:
		return addDrawnLayer(s, a, ctx), true
	case DeleteLayer:
		return deleteLayers(s, a), true
	case DuplicateLayer:
		return duplicateLayer(s, a), true
	case GroupLayers:
		return groupLayers(s, a), true
	case UngroupLayers:
		return ungroupLayers(s, a), true
	case MoveLayer:
		return moveLayer(s, a), true
	case SelectLayer:
		return selectLayer(s, a), true
	case SelectAllLayers:
		return selectAllLayers(s), true
	case DeselectAllLayers:
		if len(s.SelectedLayerIDs) == 0 {
			return s, true
		}
		d := newDraft(s)
		d.State().SelectedLayerIDs = []string{}
		return d.Finish(), true
	case SetLayerVisible:
		return updateLayers(s, targetPaths(s, a.LayerIDs), func(l *sketch.Layer) bool {
			return set(&l.IsVisible, a.Visible)
		}), true
	case SetLayerIsLocked:
		return updateLayers(s, targetPaths(s, a.LayerIDs), func(l *sketch.Layer) bool {
			return set(&l.IsLocked, a.Locked)
		}), true
	case SetLayerName:
		return updateLayerByID(s, a, a.LayerID, func(l *sketch.Layer) bool {
			return set(&l.Name, a.Name)
		}), true
	case SetExpandedInLayerList:
		expanded := sketch.ExpandedCollapsed
		if a.Expanded {
			expanded = sketch.ExpandedExpanded
		}
		return updateLayerByID(s, a, a.LayerID, func(l *sketch.Layer) bool {
			return set(&l.LayerListExpandedType, expanded)
		}), true
	case SetIsolatedLayer:
		return setIsolatedLayer(s, a), true
	case BringToFront:
		return reorderLayers(s, a.LayerIDs, true), true
	case SendToBack:
		return reorderLayers(s, a.LayerIDs, false), true
	}
	return s, false
}

// set assigns v to *dst and reports whether the value changed.
func set[T comparable](dst *T, v T) bool {
	if *dst == v {
		return false
	}
	*dst = v
	return true
}

// updateLayers runs fn on a writable copy of each layer at paths on the
// current page. fn reports whether it changed anything; when nothing
// changes s is returned.
func updateLayers(s *ApplicationState, paths []tree.IndexPath, fn func(l *sketch.Layer) bool) *ApplicationState {
	if len(paths) == 0 {
		return s
	}
	pi := GetCurrentPageIndex(s)
	page := s.Sketch.Pages[pi]
	d := newDraft(s)
	changed := false
	for _, p := range paths {
		current, _ := sketch.Access(page, p)
		if !fn(current.ShallowClone()) {
			continue
		}
		fn(d.Layer(pi, p))
		changed = true
	}
	if !changed {
		return s
	}
	return d.Finish()
}

// updateLayerByID is updateLayers for one layer on any page. A missing
// layer is logged.
func updateLayerByID(s *ApplicationState, action Action, id string, fn func(l *sketch.Layer) bool) *ApplicationState {
	loc, ok := s.Sketch.Locate(id)
	if !ok {
		logMissing(action, "layerId", id)
		return s
	}
	current, _ := sketch.Access(s.Sketch.Pages[loc.PageIndex], loc.IndexPath)
	if !fn(current.ShallowClone()) {
		return s
	}
	d := newDraft(s)
	fn(d.Layer(loc.PageIndex, loc.IndexPath))
	return d.Finish()
}

var drawnLayerNames = map[sketch.Kind]string{
	sketch.KindRectangle: "Rectangle",
	sketch.KindOval:      "Oval",
	sketch.KindTriangle:  "Triangle",
	sketch.KindStar:      "Star",
	sketch.KindPolygon:   "Polygon",
	sketch.KindShapePath: "Path",
	sketch.KindText:      "Text",
	sketch.KindArtboard:  "Artboard",
	sketch.KindSlice:     "Slice",
}

func newDrawnLayer(kind sketch.Kind, r geometry.Rect) *sketch.Layer {
	name := drawnLayerNames[kind]
	switch kind {
	case sketch.KindRectangle:
		return sketch.NewRectangle(name, r)
	case sketch.KindOval:
		return sketch.NewOval(name, r)
	case sketch.KindTriangle, sketch.KindStar, sketch.KindPolygon:
		l := sketch.NewRectangle(name, r)
		l.Class = kind
		switch kind {
		case sketch.KindTriangle:
			l.Points = sketch.TrianglePoints()
		case sketch.KindStar:
			l.Points = sketch.StarPoints(5, 0.5)
		default:
			l.Points = sketch.PolygonPoints(5)
		}
		return l
	case sketch.KindShapePath:
		return sketch.NewShapePath(name, r, []sketch.CurvePoint{
			sketch.StraightPoint(0, 0),
			sketch.StraightPoint(1, 1),
		})
	case sketch.KindText:
		t := sketch.NewText(name, r, "")
		if r.Width >= 1 {
			t.TextBehaviour = sketch.TextBehaviourAutoHeight
		}
		return t
	case sketch.KindArtboard:
		return sketch.NewArtboard(name, r)
	case sketch.KindSlice:
		l := sketch.NewGroup(name, r, nil)
		l.Class = sketch.KindSlice
		l.Layers = nil
		return l
	}
	return nil
}

func addDrawnLayer(s *ApplicationState, a AddDrawnLayer, ctx RenderContext) *ApplicationState {
	page := GetCurrentPage(s)
	r := geometry.RectFromPoints(a.Rect.Origin(), geometry.Pt(a.Rect.MaxX(), a.Rect.MaxY()))
	layer := newDrawnLayer(a.Kind, r)
	if page == nil || layer == nil {
		return s
	}

	parentPath := tree.IndexPath{}
	if a.Kind != sketch.KindArtboard {
		for i := len(page.Layers) - 1; i >= 0; i-- {
			ab := page.Layers[i]
			if ab.Class.IsArtboardLike() && ab.IsVisible && layerBounds(geometry.Identity(), ab).ContainsRect(r) {
				parentPath = tree.IndexPath{i}
				break
			}
		}
	}
	reparent(layer, geometry.Identity(), childSpaceTransform(page, parentPath))

	pi := GetCurrentPageIndex(s)
	d := newDraft(s)
	d.own(layer)
	if layer.Class == sketch.KindText {
		measureTextFrame(ctx, layer)
	}
	d.InsertLayers(pi, parentPath, -1, layer)
	st := d.State()
	st.SelectedLayerIDs = []string{layer.ObjectID}
	st.InteractionState = InteractionState{Type: InteractionNone}
	if layer.Class == sketch.KindText {
		st.SelectedText = &TextSelection{LayerID: layer.ObjectID}
		st.InteractionState = InteractionState{Type: InteractionEditText}
	}
	return d.Finish()
}

func deleteLayers(s *ApplicationState, a DeleteLayer) *ApplicationState {
	page := GetCurrentPage(s)
	paths := tree.RemoveDescendants(targetPaths(s, a.LayerIDs))
	if len(paths) == 0 {
		if len(a.LayerIDs) > 0 {
			logMissing(a, "layerIds", []string(a.LayerIDs))
		}
		return s
	}
	pi := GetCurrentPageIndex(s)
	d := newDraft(s)

	masters := make(map[string]bool)
	for _, p := range paths {
		l, _ := sketch.Access(page, p)
		sketch.Visit(l, visitAll(func(c *sketch.Layer) {
			if c.Class == sketch.KindSymbolMaster {
				masters[c.SymbolID] = true
			}
		}))
	}
	if len(masters) > 0 {
		detachInstancesOf(d, masters, "")
	}

	parents := parentIDs(page, paths)
	tree.SortDescending(paths)
	for _, p := range paths {
		d.RemoveLayer(pi, p)
	}
	fixGroupsContaining(d, parents...)
	d.State().pruneSelection()
	return d.Finish()
}

func duplicateLayer(s *ApplicationState, a DuplicateLayer) *ApplicationState {
	page := GetCurrentPage(s)
	paths := tree.RemoveDescendants(targetPaths(s, a.LayerIDs))
	if len(paths) == 0 {
		return s
	}
	pi := GetCurrentPageIndex(s)
	d := newDraft(s)
	ids := make([]string, 0, len(paths))
	tree.SortDescending(paths)
	for _, p := range paths {
		orig, _ := sketch.Access(page, p)
		dup := d.own(duplicateLayers([]*sketch.Layer{orig})[0])
		if orig.Class.IsArtboardLike() {
			dup.Frame.X += orig.Frame.Width + 100
		}
		d.InsertLayers(pi, p.Parent(), p.Last()+1, dup)
		ids = append(ids, dup.ObjectID)
	}
	slices.Reverse(ids)
	d.State().SelectedLayerIDs = ids
	return d.Finish()
}

// groupInsertIndex is where a new container replacing the layers at paths
// goes among the remaining children of parentPath: just above the topmost
// of them.
func groupInsertIndex(paths []tree.IndexPath, parentPath tree.IndexPath) int {
	top := paths[len(paths)-1]
	k := top[len(parentPath)]
	removed := 0
	for _, p := range paths {
		if len(p) == len(parentPath)+1 && p.Last() <= k {
			removed++
		}
	}
	return k - removed + 1
}

// commonParent is the deepest parent layer containing every path.
func commonParent(page *sketch.Layer, paths []tree.IndexPath) tree.IndexPath {
	parents := make([]tree.IndexPath, len(paths))
	for i, p := range paths {
		parents[i] = p.Parent()
	}
	common := tree.CommonAncestor(parents)
	for len(common) > 0 {
		if l, ok := sketch.Access(page, common); ok && l.Class.IsParent() {
			break
		}
		common = common.Parent()
	}
	return common
}

func groupLayers(s *ApplicationState, a GroupLayers) *ApplicationState {
	page := GetCurrentPage(s)
	paths := tree.RemoveDescendants(targetPaths(s, a.LayerIDs))
	if len(paths) == 0 {
		return s
	}
	for _, p := range paths {
		if l, _ := sketch.Access(page, p); l.Class.IsArtboardLike() {
			return s
		}
	}
	pi := GetCurrentPageIndex(s)
	parentPath := commonParent(page, paths)
	parentCtm := childSpaceTransform(page, parentPath)
	toParent := parentCtm.Invert()

	froms := make([]geometry.Matrix, len(paths))
	var bounds geometry.Rect
	for i, p := range paths {
		l, _ := sketch.Access(page, p)
		froms[i] = GetLayerTransformAtIndexPath(page, p, geometry.Identity())
		b := layerBounds(toParent.Multiply(froms[i]), l)
		if i == 0 {
			bounds = b
		} else {
			bounds = bounds.Union(b)
		}
	}

	name := a.Name
	if name == "" {
		name = "Group"
	}
	d := newDraft(s)
	group := d.own(sketch.NewGroup(name, bounds, nil))
	groupCtm := parentCtm.Multiply(geometry.Translate(bounds.X, bounds.Y))
	for i, p := range paths {
		orig, _ := sketch.Access(page, p)
		c := d.own(orig.ShallowClone())
		reparent(c, froms[i], groupCtm)
		group.Layers = append(group.Layers, c)
	}

	oldParents := parentIDs(page, paths)
	index := groupInsertIndex(paths, parentPath)
	desc := slices.Clone(paths)
	tree.SortDescending(desc)
	for _, p := range desc {
		d.RemoveLayer(pi, p)
	}
	d.InsertLayers(pi, parentPath, index, group)
	fixGroupsContaining(d, oldParents...)
	fixGroupsContaining(d, group.ObjectID)

	st := d.State()
	st.SelectedLayerIDs = []string{group.ObjectID}
	st.SelectedPointLists = map[string][]int{}
	return d.Finish()
}

func ungroupLayers(s *ApplicationState, a UngroupLayers) *ApplicationState {
	page := GetCurrentPage(s)
	var groups []tree.IndexPath
	for _, p := range tree.RemoveDescendants(targetPaths(s, a.LayerIDs)) {
		if l, _ := sketch.Access(page, p); l.Class.IsGroupLike() {
			groups = append(groups, p)
		}
	}
	if len(groups) == 0 {
		return s
	}
	pi := GetCurrentPageIndex(s)
	d := newDraft(s)
	parents := parentIDs(page, groups)
	var selected []string
	tree.SortDescending(groups)
	for _, p := range groups {
		current := d.Sketch().Pages[pi]
		g, _ := sketch.Access(current, p)
		parentCtm := GetLayerTransformAtIndexPath(current, p, geometry.Identity())
		groupCtm := GetLayerTransform(parentCtm, g)
		children := make([]*sketch.Layer, len(g.Layers))
		for i, child := range g.Layers {
			c := d.own(child.ShallowClone())
			reparent(c, groupCtm, parentCtm)
			children[i] = c
		}
		d.RemoveLayer(pi, p)
		d.InsertLayers(pi, p.Parent(), p.Last(), children...)
		ids := make([]string, len(children))
		for i, c := range children {
			ids[i] = c.ObjectID
		}
		selected = append(ids, selected...)
	}
	fixGroupsContaining(d, parents...)
	st := d.State()
	st.SelectedLayerIDs = selected
	st.pruneSelection()
	return d.Finish()
}

// movedOrder returns the children of a parent after moving the ones at
// indices so they start at index in the list without them.
func movedOrder(children []*sketch.Layer, indices []int, index int) []*sketch.Layer {
	var moved, rest []*sketch.Layer
	before := 0
	for i, c := range children {
		if slices.Contains(indices, i) {
			moved = append(moved, c)
			if i < index {
				before++
			}
			continue
		}
		rest = append(rest, c)
	}
	at := min(max(index-before, 0), len(rest))
	return slices.Concat(rest[:at], moved, rest[at:])
}

func moveLayer(s *ApplicationState, a MoveLayer) *ApplicationState {
	page := GetCurrentPage(s)
	if page == nil {
		return s
	}
	dest, ok := sketch.IndexPathOf(page, a.DestinationID)
	if !ok {
		logMissing(a, "destinationId", a.DestinationID)
		return s
	}
	paths := tree.RemoveDescendants(targetPaths(s, a.LayerIDs))
	if len(paths) == 0 {
		return s
	}
	for _, p := range paths {
		if p.Equal(dest) || p.IsAncestorOf(dest) {
			return s
		}
	}
	destLayer, _ := sketch.Access(page, dest)

	var parentPath tree.IndexPath
	var index int
	switch a.Position {
	case Inside:
		if !destLayer.Class.IsParent() {
			return s
		}
		parentPath, index = dest, len(destLayer.Layers)
	case Above:
		parentPath, index = dest.Parent(), dest.Last()+1
	default:
		parentPath, index = dest.Parent(), dest.Last()
	}
	if len(parentPath) > 0 {
		for _, p := range paths {
			if l, _ := sketch.Access(page, p); l.Class.IsArtboardLike() {
				return s
			}
		}
	}

	parent, _ := sketch.Access(page, parentPath)
	sameParent := true
	indices := make([]int, len(paths))
	for i, p := range paths {
		sameParent = sameParent && p.Parent().Equal(parentPath)
		indices[i] = p.Last()
	}
	pi := GetCurrentPageIndex(s)
	if sameParent {
		next := movedOrder(parent.Layers, indices, index)
		if slices.Equal(next, parent.Layers) {
			return s
		}
		d := newDraft(s)
		d.Layer(pi, parentPath).Layers = next
		return d.Finish()
	}

	parentID := parent.ObjectID
	d := newDraft(s)
	moved := make([]*sketch.Layer, len(paths))
	froms := make([]geometry.Matrix, len(paths))
	for i, p := range paths {
		orig, _ := sketch.Access(page, p)
		moved[i] = d.own(orig.ShallowClone())
		froms[i] = GetLayerTransformAtIndexPath(page, p, geometry.Identity())
	}
	oldParents := parentIDs(page, paths)
	desc := slices.Clone(paths)
	tree.SortDescending(desc)
	for _, p := range desc {
		d.RemoveLayer(pi, p)
	}

	current := d.Sketch().Pages[pi]
	newParentPath := tree.IndexPath{}
	if len(parentPath) > 0 {
		newParentPath, _ = sketch.IndexPathOf(current, parentID)
	}
	switch a.Position {
	case Inside:
		index = -1
	default:
		newDest, _ := sketch.IndexPathOf(current, a.DestinationID)
		index = newDest.Last()
		if a.Position == Above {
			index++
		}
	}
	to := childSpaceTransform(current, newParentPath)
	for i, l := range moved {
		reparent(l, froms[i], to)
	}
	d.InsertLayers(pi, newParentPath, index, moved...)
	fixGroupsContaining(d, oldParents...)
	fixGroupsContaining(d, moved[0].ObjectID)
	return d.Finish()
}

func selectLayer(s *ApplicationState, a SelectLayer) *ApplicationState {
	page := GetCurrentPage(s)
	if page == nil {
		return s
	}
	ids := make([]string, 0, len(a.LayerIDs))
	for _, id := range a.LayerIDs {
		if a.Mode == selection.Difference {
			ids = append(ids, id)
			continue
		}
		if _, ok := sketch.FindByID(page, id); ok {
			ids = append(ids, id)
		}
	}
	next := selection.Updated(s.SelectedLayerIDs, ids, a.Mode)
	if slices.Equal(next, s.SelectedLayerIDs) {
		return s
	}
	d := newDraft(s)
	st := d.State()
	st.SelectedLayerIDs = next
	if st.SelectedText != nil && !slices.Contains(next, st.SelectedText.LayerID) {
		st.SelectedText = nil
	}
	return d.Finish()
}

func selectAllLayers(s *ApplicationState) *ApplicationState {
	page := GetCurrentPage(s)
	if page == nil {
		return s
	}
	siblings := page.Layers
	paths := GetSelectedLayerIndexPaths(s)
	if len(paths) > 0 {
		parent := paths[0].Parent()
		shared := true
		for _, p := range paths[1:] {
			shared = shared && p.Parent().Equal(parent)
		}
		if shared {
			l, _ := sketch.Access(page, parent)
			siblings = l.Layers
		}
	}
	ids := make([]string, 0, len(siblings))
	for _, l := range siblings {
		if l.IsVisible && !l.IsLocked {
			ids = append(ids, l.ObjectID)
		}
	}
	if slices.Equal(ids, s.SelectedLayerIDs) {
		return s
	}
	d := newDraft(s)
	d.State().SelectedLayerIDs = ids
	return d.Finish()
}

func setIsolatedLayer(s *ApplicationState, a SetIsolatedLayer) *ApplicationState {
	if a.LayerID != "" {
		if _, ok := GetIndexPathOfLayer(s, a.LayerID); !ok {
			logMissing(a, "layerId", a.LayerID)
			return s
		}
	}
	if s.IsolatedLayerID == a.LayerID {
		return s
	}
	d := newDraft(s)
	d.State().IsolatedLayerID = a.LayerID
	return d.Finish()
}

// reorderLayers moves the targets to the front (end) or back (start) of
// their parents, keeping their relative order.
func reorderLayers(s *ApplicationState, ids IDList, front bool) *ApplicationState {
	page := GetCurrentPage(s)
	paths := tree.RemoveDescendants(targetPaths(s, ids))
	if len(paths) == 0 {
		return s
	}
	byParent := make(map[string][]int)
	parents := make(map[string]tree.IndexPath)
	var order []string
	for _, p := range paths {
		parent, _ := sketch.Access(page, p.Parent())
		if _, ok := parents[parent.ObjectID]; !ok {
			order = append(order, parent.ObjectID)
			parents[parent.ObjectID] = p.Parent()
		}
		byParent[parent.ObjectID] = append(byParent[parent.ObjectID], p.Last())
	}

	pi := GetCurrentPageIndex(s)
	d := newDraft(s)
	changed := false
	for _, id := range order {
		parentPath := parents[id]
		parent, _ := sketch.Access(page, parentPath)
		index := 0
		if front {
			index = len(parent.Layers)
		}
		next := movedOrder(parent.Layers, byParent[id], index)
		if slices.Equal(next, parent.Layers) {
			continue
		}
		d.Layer(pi, parentPath).Layers = next
		changed = true
	}
	if !changed {
		return s
	}
	return d.Finish()
}
