package noyastate

import (
	"slices"
	"strings"

	"github.com/noya-app/noyastate/selection"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

func themeReducer(s *ApplicationState, action Action, ctx RenderContext) (*ApplicationState, bool) {
	switch a := action.(type) {
	case SetThemeTab:
		if s.SelectedThemeTab == a.Tab {
			return s, true
		}
		d := newDraft(s)
		d.State().SelectedThemeTab = a.Tab
		return d.Finish(), true
	case SelectThemeItems:
		return selectThemeItems(s, a), true

	case AddSwatch:
		name := a.Name
		if name == "" {
			name = "Color"
		}
		d := newDraft(s)
		sw := sketch.Swatch{ObjectID: sketch.NewObjectID(), Name: name, Value: a.Color}
		f := d.File()
		f.Document.SharedSwatches.Objects = append(f.Document.SharedSwatches.Objects, sw)
		d.State().SelectedSwatchIDs = []string{sw.ObjectID}
		return d.Finish(), true
	case SetSwatchName:
		return editSwatches(s, a, selection.One(a.ID), func(sw *sketch.Swatch) bool { return set(&sw.Name, a.Name) }), true
	case SetSwatchColor:
		return editSwatches(s, a, selection.One(a.ID), func(sw *sketch.Swatch) bool { return set(&sw.Value, a.Color) }), true
	case RemoveSwatches:
		return removeSwatches(s, a), true
	case DuplicateSwatches:
		return duplicateSwatches(s, a), true

	case AddLayerStyle:
		return addSharedStyle(s, a.Name, "Style", false, ctx), true
	case AddTextStyle:
		return addSharedStyle(s, a.Name, "Text Style", true, ctx), true
	case SetLayerStyleName:
		return renameSharedStyle(s, a, false, a.ID, a.Name), true
	case SetTextStyleName:
		return renameSharedStyle(s, a, true, a.ID, a.Name), true
	case UpdateLayerStyle:
		return updateLayerStyle(s, a), true
	case RemoveLayerStyles:
		return removeSharedStyles(s, a.IDs, false), true
	case RemoveTextStyles:
		return removeSharedStyles(s, a.IDs, true), true
	case SetLayerSharedStyle:
		return setSharedStyle(s, a, a.LayerIDs, a.SharedStyleID, false, ctx), true
	case SetTextSharedStyle:
		return setSharedStyle(s, a, a.LayerIDs, a.SharedStyleID, true, ctx), true

	case GroupThemeItems:
		return groupThemeItems(s, a), true
	}
	return s, false
}

// themeSelection returns the selection list of a theme tab.
func themeSelection(st *ApplicationState, tab ThemeTab) *[]string {
	switch tab {
	case ThemeTabLayerStyles:
		return &st.SelectedLayerStyleIDs
	case ThemeTabTextStyles:
		return &st.SelectedTextStyleIDs
	case ThemeTabSymbols:
		return &st.SelectedSymbolIDs
	default:
		return &st.SelectedSwatchIDs
	}
}

func selectThemeItems(s *ApplicationState, a SelectThemeItems) *ApplicationState {
	current := *themeSelection(s, a.Tab)
	next := selection.Updated(current, a.IDs, a.Mode)
	if slices.Equal(next, current) {
		return s
	}
	d := newDraft(s)
	*themeSelection(d.State(), a.Tab) = next
	return d.Finish()
}

func editSwatches(s *ApplicationState, action Action, ids []string, fn func(sw *sketch.Swatch) bool) *ApplicationState {
	d := newDraft(s)
	changed := false
	for _, id := range ids {
		i := slices.IndexFunc(s.Sketch.Document.SharedSwatches.Objects, func(sw sketch.Swatch) bool { return sw.ObjectID == id })
		if i < 0 {
			logMissing(action, "swatchId", id)
			continue
		}
		sw := s.Sketch.Document.SharedSwatches.Objects[i]
		if !fn(&sw) {
			continue
		}
		d.File().Document.SharedSwatches.Objects[i] = sw
		changed = true
	}
	if !changed {
		return s
	}
	return d.Finish()
}

func removeSwatches(s *ApplicationState, a RemoveSwatches) *ApplicationState {
	ids := []string(a.IDs)
	if len(ids) == 0 {
		ids = s.SelectedSwatchIDs
	}
	remove := func(sw sketch.Swatch) bool { return slices.Contains(ids, sw.ObjectID) }
	if !slices.ContainsFunc(s.Sketch.Document.SharedSwatches.Objects, remove) {
		return s
	}
	d := newDraft(s)
	f := d.File()
	f.Document.SharedSwatches.Objects = slices.DeleteFunc(f.Document.SharedSwatches.Objects, remove)
	st := d.State()
	st.SelectedSwatchIDs = selection.Updated(st.SelectedSwatchIDs, ids, selection.Difference)
	return d.Finish()
}

func duplicateSwatches(s *ApplicationState, a DuplicateSwatches) *ApplicationState {
	ids := []string(a.IDs)
	if len(ids) == 0 {
		ids = s.SelectedSwatchIDs
	}
	d := newDraft(s)
	var created []string
	for _, sw := range s.Sketch.Document.SharedSwatches.Objects {
		if !slices.Contains(ids, sw.ObjectID) {
			continue
		}
		sw.ObjectID = sketch.NewObjectID()
		f := d.File()
		f.Document.SharedSwatches.Objects = append(f.Document.SharedSwatches.Objects, sw)
		created = append(created, sw.ObjectID)
	}
	if len(created) == 0 {
		return s
	}
	d.State().SelectedSwatchIDs = created
	return d.Finish()
}

// sharedStyles returns the layer or text style list of a file.
func sharedStyles(f *sketch.File, text bool) *[]sketch.SharedStyle {
	if text {
		return &f.Document.LayerTextStyles.Objects
	}
	return &f.Document.LayerStyles.Objects
}

// linkStyle gives an owned layer a copy of a shared style, keeping the
// layer style's own ID.
func linkStyle(l *sketch.Layer, shared sketch.SharedStyle, text bool, ctx RenderContext) {
	if text {
		if l.Class != sketch.KindText {
			return
		}
		applyTextSharedStyle(l, shared)
		measureTextFrame(ctx, l)
		return
	}
	style := shared.Value.Clone()
	if l.Style != nil {
		style.ObjectID = l.Style.ObjectID
	}
	if l.Style != nil && l.Style.TextStyle != nil && style.TextStyle == nil {
		style.TextStyle = l.Style.TextStyle
	}
	l.Style = style
	l.SharedStyleID = shared.ObjectID
}

func addSharedStyle(s *ApplicationState, name, fallback string, text bool, ctx RenderContext) *ApplicationState {
	if name == "" {
		name = fallback
	}
	var source *sketch.Layer
	for _, l := range GetSelectedLayers(s) {
		if !text || l.Class == sketch.KindText {
			source = l
			break
		}
	}
	value := sketch.NewStyle()
	if source != nil && source.Style != nil {
		value = source.Style.Clone()
		value.ObjectID = sketch.NewObjectID()
	}
	if text && value.TextStyle == nil {
		value.TextStyle = &sketch.TextStyle{EncodedAttributes: sketch.DefaultStringAttributes()}
	}
	shared := sketch.SharedStyle{ObjectID: sketch.NewObjectID(), Name: name, Value: value}

	d := newDraft(s)
	styles := sharedStyles(d.File(), text)
	*styles = append(*styles, shared)
	if source != nil {
		path, _ := GetIndexPathOfLayer(s, source.ObjectID)
		linkStyle(d.Layer(GetCurrentPageIndex(s), path), shared, text, ctx)
	}
	st := d.State()
	if text {
		st.SelectedTextStyleIDs = []string{shared.ObjectID}
	} else {
		st.SelectedLayerStyleIDs = []string{shared.ObjectID}
	}
	return d.Finish()
}

func renameSharedStyle(s *ApplicationState, action Action, text bool, id, name string) *ApplicationState {
	styles := *sharedStyles(s.Sketch, text)
	i := slices.IndexFunc(styles, func(st sketch.SharedStyle) bool { return st.ObjectID == id })
	if i < 0 {
		logMissing(action, "styleId", id)
		return s
	}
	if styles[i].Name == name {
		return s
	}
	d := newDraft(s)
	(*sharedStyles(d.File(), text))[i].Name = name
	return d.Finish()
}

// forEachLayer runs fn on a writable copy of every layer in the document
// matching pred.
func forEachLayer(d *Draft, pred func(l *sketch.Layer) bool, fn func(l *sketch.Layer)) {
	for pi, page := range d.Sketch().Pages {
		paths := tree.FindAllIndexPaths(page, sketch.Children, tree.Matching(func(l *sketch.Layer, _ tree.IndexPath) bool {
			return pred(l)
		}))
		for _, p := range paths {
			fn(d.Layer(pi, p))
		}
	}
}

func updateLayerStyle(s *ApplicationState, a UpdateLayerStyle) *ApplicationState {
	styles := s.Sketch.Document.LayerStyles.Objects
	i := slices.IndexFunc(styles, func(st sketch.SharedStyle) bool { return st.ObjectID == a.ID })
	if i < 0 {
		logMissing(a, "styleId", a.ID)
		return s
	}
	selected := GetSelectedLayers(s)
	if len(selected) == 0 || selected[0].Style == nil {
		return s
	}
	value := selected[0].Style.Clone()
	value.ObjectID = styles[i].Value.ObjectID

	d := newDraft(s)
	f := d.File()
	f.Document.LayerStyles.Objects[i].Value = value
	shared := f.Document.LayerStyles.Objects[i]
	forEachLayer(d, func(l *sketch.Layer) bool { return l.SharedStyleID == a.ID }, func(l *sketch.Layer) {
		linkStyle(l, shared, false, RenderContext{})
	})
	return d.Finish()
}

func removeSharedStyles(s *ApplicationState, ids IDList, text bool) *ApplicationState {
	if len(ids) == 0 {
		ids = *themeSelection(s, ThemeTabLayerStyles)
		if text {
			ids = *themeSelection(s, ThemeTabTextStyles)
		}
	}
	remove := func(st sketch.SharedStyle) bool { return slices.Contains(ids, st.ObjectID) }
	if !slices.ContainsFunc(*sharedStyles(s.Sketch, text), remove) {
		return s
	}
	d := newDraft(s)
	styles := sharedStyles(d.File(), text)
	*styles = slices.DeleteFunc(*styles, remove)
	forEachLayer(d, func(l *sketch.Layer) bool { return slices.Contains(ids, l.SharedStyleID) }, func(l *sketch.Layer) {
		l.SharedStyleID = ""
	})
	st := d.State()
	if text {
		st.SelectedTextStyleIDs = selection.Updated(st.SelectedTextStyleIDs, ids, selection.Difference)
	} else {
		st.SelectedLayerStyleIDs = selection.Updated(st.SelectedLayerStyleIDs, ids, selection.Difference)
	}
	return d.Finish()
}

func setSharedStyle(s *ApplicationState, action Action, ids IDList, styleID string, text bool, ctx RenderContext) *ApplicationState {
	if styleID == "" {
		return updateLayers(s, targetPaths(s, ids), func(l *sketch.Layer) bool {
			return set(&l.SharedStyleID, "")
		})
	}
	shared, ok := findSharedStyle(*sharedStyles(s.Sketch, text), styleID)
	if !ok {
		logMissing(action, "styleId", styleID)
		return s
	}
	return editLayers(s, targetPaths(s, ids), func(d *Draft, pi int, p tree.IndexPath) bool {
		if l, _ := sketch.Access(d.Sketch().Pages[pi], p); text && l.Class != sketch.KindText {
			return false
		}
		linkStyle(d.Layer(pi, p), shared, text, ctx)
		return true
	})
}

// themeItemName prefixes the last path segment of name with group.
func themeItemName(name, group string) string {
	base := name
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		base = name[i+1:]
	}
	group = strings.Trim(group, "/")
	if group == "" {
		return base
	}
	return group + "/" + base
}

func groupThemeItems(s *ApplicationState, a GroupThemeItems) *ApplicationState {
	ids := []string(a.IDs)
	if len(ids) == 0 {
		ids = *themeSelection(s, a.Tab)
	}
	if len(ids) == 0 {
		return s
	}
	d := newDraft(s)
	changed := false
	switch a.Tab {
	case ThemeTabSwatches:
		for i, sw := range s.Sketch.Document.SharedSwatches.Objects {
			if name := themeItemName(sw.Name, a.GroupName); slices.Contains(ids, sw.ObjectID) && name != sw.Name {
				d.File().Document.SharedSwatches.Objects[i].Name = name
				changed = true
			}
		}
	case ThemeTabLayerStyles, ThemeTabTextStyles:
		text := a.Tab == ThemeTabTextStyles
		for i, st := range *sharedStyles(s.Sketch, text) {
			if name := themeItemName(st.Name, a.GroupName); slices.Contains(ids, st.ObjectID) && name != st.Name {
				(*sharedStyles(d.File(), text))[i].Name = name
				changed = true
			}
		}
	case ThemeTabSymbols:
		forEachLayer(d, func(l *sketch.Layer) bool {
			return l.Class == sketch.KindSymbolMaster && slices.Contains(ids, l.SymbolID) &&
				themeItemName(l.Name, a.GroupName) != l.Name
		}, func(l *sketch.Layer) {
			l.Name = themeItemName(l.Name, a.GroupName)
			changed = true
		})
	}
	if !changed {
		return s
	}
	return d.Finish()
}
