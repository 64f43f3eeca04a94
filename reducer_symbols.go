package noyastate

import (
	"slices"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

// SymbolsPageName is the page new symbol masters are placed on.
const SymbolsPageName = "Symbols"

// symbolSpacing separates masters laid out side by side.
const symbolSpacing = 100

func symbolsReducer(s *ApplicationState, action Action, _ RenderContext) (*ApplicationState, bool) {
	switch a := action.(type) {
	case CreateSymbol:
		return createSymbol(s, a), true
	case DetachSymbol:
		return detachSymbol(s, a), true
	case SetOverrideValue:
		return setOverrideValue(s, a), true
	case SetSymbolInstanceSource:
		return setSymbolInstanceSource(s, a), true
	case DuplicateSymbol:
		return duplicateSymbol(s, a), true
	case SetSymbolName:
		return setSymbolName(s, a), true
	}
	return s, false
}

// detachAt replaces the instance at path with a group holding a copy of
// its master's layers, overrides applied. Nested instances stay instances.
// It returns the group's ID.
func detachAt(d *Draft, pageIndex int, path tree.IndexPath) string {
	inst, ok := sketch.Access(d.Sketch().Pages[pageIndex], path)
	if !ok || inst.Class != sketch.KindSymbolInstance {
		return ""
	}
	group, ok := resolveInstance(d.Sketch(), inst, 0, false)
	if !ok {
		group = inst.ShallowClone()
		group.Class = sketch.KindGroup
		group.SymbolID = ""
		group.OverrideValues = nil
		group.Layers = []*sketch.Layer{}
	}
	detached := d.own(sketch.CopyWithNewIDs(group, nil))
	d.RemoveLayer(pageIndex, path)
	d.InsertLayers(pageIndex, path.Parent(), path.Last(), detached)
	return detached.ObjectID
}

// symbolsPage returns the index of the page masters are added to,
// creating it when the document has none.
func symbolsPage(d *Draft) int {
	for i, p := range d.Sketch().Pages {
		if p.Name == SymbolsPageName {
			return i
		}
	}
	f := d.File()
	f.Pages = append(f.Pages, d.own(sketch.NewPage(SymbolsPageName)))
	return len(f.Pages) - 1
}

// nextSymbolX is the x position right of every master on the page.
func nextSymbolX(page *sketch.Layer) float64 {
	x, found := 0.0, false
	for _, l := range page.Layers {
		if l.Class != sketch.KindSymbolMaster {
			continue
		}
		if !found || l.Frame.Rect().MaxX() > x {
			x = l.Frame.Rect().MaxX()
		}
		found = true
	}
	if !found {
		return 0
	}
	return x + symbolSpacing
}

func createSymbol(s *ApplicationState, a CreateSymbol) *ApplicationState {
	page := GetCurrentPage(s)
	paths := tree.RemoveDescendants(targetPaths(s, a.LayerIDs))
	if len(paths) == 0 {
		return s
	}
	for _, p := range paths {
		if l, _ := sketch.Access(page, p); l.Class == sketch.KindSymbolMaster {
			return s
		}
	}
	name := a.Name
	if name == "" {
		name = "Symbol"
	}
	pi := GetCurrentPageIndex(s)

	if first, _ := sketch.Access(page, paths[0]); len(paths) == 1 && first.Class == sketch.KindArtboard {
		d := newDraft(s)
		m := d.Layer(pi, paths[0])
		m.Class = sketch.KindSymbolMaster
		m.SymbolID = sketch.NewObjectID()
		if a.Name != "" {
			m.Name = a.Name
		}
		d.State().SelectedLayerIDs = []string{m.ObjectID}
		return d.Finish()
	}
	for _, p := range paths {
		if l, _ := sketch.Access(page, p); l.Class.IsArtboardLike() {
			return s
		}
	}

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

	d := newDraft(s)
	localCtm := parentCtm.Multiply(geometry.Translate(bounds.X, bounds.Y))
	children := make([]*sketch.Layer, len(paths))
	for i, p := range paths {
		orig, _ := sketch.Access(page, p)
		children[i] = d.own(orig.ShallowClone())
		reparent(children[i], froms[i], localCtm)
	}
	master := d.own(sketch.NewSymbolMaster(name, geometry.Rect{Width: bounds.Width, Height: bounds.Height}, children))
	instance := d.own(sketch.NewSymbolInstance(master, bounds))

	oldParents := parentIDs(page, paths)
	index := groupInsertIndex(paths, parentPath)
	desc := slices.Clone(paths)
	tree.SortDescending(desc)
	for _, p := range desc {
		d.RemoveLayer(pi, p)
	}
	d.InsertLayers(pi, parentPath, index, instance)
	fixGroupsContaining(d, oldParents...)

	spi := symbolsPage(d)
	master.Frame.X = nextSymbolX(d.Sketch().Pages[spi])
	d.InsertLayers(spi, tree.IndexPath{}, -1, master)

	d.State().SelectedLayerIDs = []string{instance.ObjectID}
	return d.Finish()
}

func detachSymbol(s *ApplicationState, a DetachSymbol) *ApplicationState {
	page := GetCurrentPage(s)
	var paths []tree.IndexPath
	for _, p := range targetPaths(s, a.LayerIDs) {
		if l, _ := sketch.Access(page, p); l.Class == sketch.KindSymbolInstance {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return s
	}
	pi := GetCurrentPageIndex(s)
	d := newDraft(s)
	tree.SortDescending(paths)
	for _, p := range paths {
		old, _ := sketch.Access(d.Sketch().Pages[pi], p)
		id := detachAt(d, pi, p)
		st := d.State()
		if i := slices.Index(st.SelectedLayerIDs, old.ObjectID); i >= 0 {
			st.SelectedLayerIDs[i] = id
		}
	}
	d.State().pruneSelection()
	return d.Finish()
}

func setOverrideValue(s *ApplicationState, a SetOverrideValue) *ApplicationState {
	if _, _, ok := sketch.ParseOverrideName(a.OverrideName); !ok {
		logMissing(a, "overrideName", a.OverrideName)
		return s
	}
	return updateLayers(s, targetPaths(s, a.LayerIDs), func(l *sketch.Layer) bool {
		if l.Class != sketch.KindSymbolInstance {
			return false
		}
		i := slices.IndexFunc(l.OverrideValues, func(ov sketch.OverrideValue) bool {
			return ov.OverrideName == a.OverrideName
		})
		switch {
		case a.Value == nil && i < 0:
			return false
		case a.Value == nil:
			l.OverrideValues = slices.Delete(l.OverrideValues, i, i+1)
		case i < 0:
			l.OverrideValues = append(l.OverrideValues, sketch.OverrideValue{OverrideName: a.OverrideName, Value: *a.Value})
		default:
			return set(&l.OverrideValues[i].Value, *a.Value)
		}
		return true
	})
}

func setSymbolInstanceSource(s *ApplicationState, a SetSymbolInstanceSource) *ApplicationState {
	master, ok := s.Sketch.SymbolMaster(a.SymbolID)
	if !ok {
		logMissing(a, "symbolId", a.SymbolID)
		return s
	}
	page := GetCurrentPage(s)
	return editLayers(s, GetSelectedLayerIndexPaths(s), func(d *Draft, pi int, p tree.IndexPath) bool {
		if l, _ := sketch.Access(page, p); l.Class != sketch.KindSymbolInstance || l.SymbolID == a.SymbolID {
			return false
		}
		l := d.Layer(pi, p)
		l.SymbolID = a.SymbolID
		l.OverrideValues = []sketch.OverrideValue{}
		l.Frame.Width = master.Frame.Width
		l.Frame.Height = master.Frame.Height
		return true
	})
}

func duplicateSymbol(s *ApplicationState, a DuplicateSymbol) *ApplicationState {
	ids := []string(a.SymbolIDs)
	if len(ids) == 0 {
		ids = s.SelectedSymbolIDs
	}
	d := newDraft(s)
	var created []string
	for _, id := range ids {
		master, ok := d.Sketch().SymbolMaster(id)
		if !ok {
			logMissing(a, "symbolId", id)
			continue
		}
		loc, _ := d.Sketch().Locate(master.ObjectID)
		dup := d.own(duplicateLayers([]*sketch.Layer{master})[0])
		dup.Name = master.Name + " Copy"
		parent, _ := sketch.Access(d.Sketch().Pages[loc.PageIndex], loc.IndexPath.Parent())
		dup.Frame.X = nextSymbolX(parent)
		d.InsertLayers(loc.PageIndex, loc.IndexPath.Parent(), loc.IndexPath.Last()+1, dup)
		created = append(created, dup.SymbolID)
	}
	if len(created) == 0 {
		return s
	}
	d.State().SelectedSymbolIDs = created
	return d.Finish()
}

func setSymbolName(s *ApplicationState, a SetSymbolName) *ApplicationState {
	master, ok := s.Sketch.SymbolMaster(a.SymbolID)
	if !ok {
		logMissing(a, "symbolId", a.SymbolID)
		return s
	}
	return updateLayerByID(s, a, master.ObjectID, func(l *sketch.Layer) bool {
		return set(&l.Name, a.Name)
	})
}
