package noyastate

import (
	"fmt"
	"slices"

	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

func pageReducer(s *ApplicationState, action Action, _ RenderContext) (*ApplicationState, bool) {
	switch a := action.(type) {
	case AddPage:
		return addPage(s, a.Name), true
	case DeletePage:
		return deletePage(s, a), true
	case SetPageName:
		return setPageName(s, a), true
	case DuplicatePage:
		return duplicatePage(s, a), true
	case SelectPage:
		return selectPage(s, a), true
	case MovePage:
		return movePage(s, a), true
	}
	return s, false
}

func addPage(s *ApplicationState, name string) *ApplicationState {
	d := newDraft(s)
	f := d.File()
	if name == "" {
		name = fmt.Sprintf("Page %d", len(f.Pages)+1)
	}
	page := d.own(sketch.NewPage(name))
	f.Pages = append(f.Pages, page)
	st := d.State()
	st.SelectedPage = page.ObjectID
	st.clearPageSelection()
	return d.Finish()
}

func deletePage(s *ApplicationState, a DeletePage) *ApplicationState {
	i := s.Sketch.PageIndexOf(a.PageID)
	if i < 0 {
		logMissing(a, "pageId", a.PageID)
		return s
	}
	if len(s.Sketch.Pages) == 1 {
		return s
	}
	page := s.Sketch.Pages[i]

	d := newDraft(s)
	masters := make(map[string]bool)
	for _, m := range sketch.FindAll(page, func(l *sketch.Layer) bool { return l.Class == sketch.KindSymbolMaster }) {
		masters[m.SymbolID] = true
	}
	if len(masters) > 0 {
		detachInstancesOf(d, masters, page.ObjectID)
	}

	f := d.File()
	f.Pages = slices.Delete(f.Pages, i, i+1)
	delete(f.User, page.ObjectID)
	st := d.State()
	if st.SelectedPage == page.ObjectID {
		st.SelectedPage = f.Pages[max(0, i-1)].ObjectID
		st.clearPageSelection()
	}
	return d.Finish()
}

// detachInstancesOf replaces every instance of the given symbols with a
// group, on every page except the one with skipPageID.
func detachInstancesOf(d *Draft, symbolIDs map[string]bool, skipPageID string) {
	for range maxSymbolDepth {
		found := false
		for pi, page := range d.Sketch().Pages {
			if page.ObjectID == skipPageID {
				continue
			}
			paths := tree.FindAllIndexPaths(page, sketch.Children, tree.Matching(func(l *sketch.Layer, _ tree.IndexPath) bool {
				return l.Class == sketch.KindSymbolInstance && symbolIDs[l.SymbolID]
			}))
			tree.SortDescending(paths)
			for _, p := range paths {
				detachAt(d, pi, p)
				found = true
			}
		}
		if !found {
			return
		}
	}
}

func setPageName(s *ApplicationState, a SetPageName) *ApplicationState {
	i := s.Sketch.PageIndexOf(a.PageID)
	if i < 0 {
		logMissing(a, "pageId", a.PageID)
		return s
	}
	if s.Sketch.Pages[i].Name == a.Name {
		return s
	}
	d := newDraft(s)
	d.Page(i).Name = a.Name
	return d.Finish()
}

func duplicatePage(s *ApplicationState, a DuplicatePage) *ApplicationState {
	i := s.Sketch.PageIndexOf(a.PageID)
	if i < 0 {
		logMissing(a, "pageId", a.PageID)
		return s
	}
	d := newDraft(s)
	f := d.File()
	page := d.own(duplicateLayers([]*sketch.Layer{f.Pages[i]})[0])
	page.Name = f.Pages[i].Name + " Copy"
	f.Pages = slices.Insert(f.Pages, i+1, page)
	if vp, ok := f.User[a.PageID]; ok {
		f.User[page.ObjectID] = vp
	}
	st := d.State()
	st.SelectedPage = page.ObjectID
	st.clearPageSelection()
	return d.Finish()
}

func selectPage(s *ApplicationState, a SelectPage) *ApplicationState {
	if s.Sketch.PageIndexOf(a.PageID) < 0 {
		logMissing(a, "pageId", a.PageID)
		return s
	}
	if s.SelectedPage == a.PageID {
		return s
	}
	d := newDraft(s)
	st := d.State()
	st.SelectedPage = a.PageID
	st.clearPageSelection()
	return d.Finish()
}

func movePage(s *ApplicationState, a MovePage) *ApplicationState {
	n := len(s.Sketch.Pages)
	if a.SourceIndex < 0 || a.SourceIndex >= n || a.DestinationIndex < 0 || a.DestinationIndex >= n ||
		a.SourceIndex == a.DestinationIndex {
		return s
	}
	d := newDraft(s)
	f := d.File()
	page := f.Pages[a.SourceIndex]
	f.Pages = slices.Delete(f.Pages, a.SourceIndex, a.SourceIndex+1)
	f.Pages = slices.Insert(f.Pages, a.DestinationIndex, page)
	return d.Finish()
}
