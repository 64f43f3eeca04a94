package noyastate

import (
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/textedit"
	"github.com/noya-app/noyastate/tree"
)

func textEditorReducer(s *ApplicationState, action Action, ctx RenderContext) (*ApplicationState, bool) {
	switch a := action.(type) {
	case SetTextSelection:
		id := a.LayerID
		if id == "" && s.SelectedText != nil {
			id = s.SelectedText.LayerID
		}
		return setTextSelection(s, a, id, func(l *sketch.Layer) textedit.Range {
			return a.Range.Clamp(l.AttributedString.Len())
		}), true
	case MoveCursor:
		return moveTextRange(s, ctx, func(r textedit.Range, text []rune, para textedit.Paragraph) textedit.Range {
			return textedit.Move(r, text, para, a.Direction, a.Unit)
		}), true
	case MoveTextSelection:
		return moveTextRange(s, ctx, func(r textedit.Range, text []rune, para textedit.Paragraph) textedit.Range {
			return textedit.Extend(r, text, para, a.Direction, a.Unit)
		}), true
	case SelectAllText:
		return moveTextRange(s, ctx, func(textedit.Range, []rune, textedit.Paragraph) textedit.Range {
			return textedit.SelectAll()
		}), true
	case SelectContainingText:
		return setTextSelection(s, a, a.LayerID, func(l *sketch.Layer) textedit.Range {
			return textedit.SelectContaining(a.Offset, []rune(l.AttributedString.String), GetLayerParagraph(ctx, l), a.Unit)
		}), true
	case InsertText:
		return editText(s, ctx, func(l *sketch.Layer, r textedit.Range) (*sketch.AttributedString, textedit.Range) {
			return textedit.Insert(l.AttributedString, r, a.Text)
		}), true
	case DeleteText:
		return editText(s, ctx, func(l *sketch.Layer, r textedit.Range) (*sketch.AttributedString, textedit.Range) {
			return textedit.Delete(l.AttributedString, r, GetLayerParagraph(ctx, l), a.Direction, a.Unit)
		}), true
	}
	return s, false
}

// GetSelectedTextLayerParagraph lays out the text layer being edited. It
// returns nil when no text is being edited.
func GetSelectedTextLayerParagraph(s *ApplicationState, ctx RenderContext) textedit.Paragraph {
	if s.SelectedText == nil {
		return nil
	}
	l, _, ok := textLayer(s, s.SelectedText.LayerID)
	if !ok {
		return nil
	}
	return GetLayerParagraph(ctx, l)
}

// textLayer returns a text layer on the current page.
func textLayer(s *ApplicationState, id string) (*sketch.Layer, tree.IndexPath, bool) {
	page := GetCurrentPage(s)
	if page == nil || id == "" {
		return nil, nil, false
	}
	p, ok := sketch.IndexPathOf(page, id)
	if !ok {
		return nil, nil, false
	}
	l, _ := sketch.Access(page, p)
	if l.Class != sketch.KindText {
		return nil, nil, false
	}
	if l.AttributedString == nil {
		l = l.ShallowClone()
		l.AttributedString = sketch.NewAttributedString("", sketch.DefaultStringAttributes())
	}
	return l, p, true
}

// setTextSelection starts or continues editing layer id with the range
// computed by rangeFor.
func setTextSelection(s *ApplicationState, action Action, id string, rangeFor func(l *sketch.Layer) textedit.Range) *ApplicationState {
	l, _, ok := textLayer(s, id)
	if !ok {
		logMissing(action, "layerId", id)
		return s
	}
	sel := TextSelection{LayerID: id, Range: rangeFor(l)}
	if s.SelectedText != nil && *s.SelectedText == sel && s.InteractionState.Type == InteractionEditText {
		return s
	}
	d := newDraft(s)
	st := d.State()
	st.SelectedText = &sel
	st.SelectedLayerIDs = []string{id}
	st.InteractionState = InteractionState{Type: InteractionEditText}
	return d.Finish()
}

// moveTextRange changes the range of the text being edited.
func moveTextRange(s *ApplicationState, ctx RenderContext, fn func(r textedit.Range, text []rune, para textedit.Paragraph) textedit.Range) *ApplicationState {
	if s.SelectedText == nil {
		return s
	}
	l, _, ok := textLayer(s, s.SelectedText.LayerID)
	if !ok {
		return s
	}
	next := fn(s.SelectedText.Range, []rune(l.AttributedString.String), GetLayerParagraph(ctx, l))
	if next == s.SelectedText.Range {
		return s
	}
	d := newDraft(s)
	d.State().SelectedText = &TextSelection{LayerID: s.SelectedText.LayerID, Range: next}
	return d.Finish()
}

// editText replaces the string of the text being edited, resizes the layer
// to fit and moves the range.
func editText(s *ApplicationState, ctx RenderContext, fn func(l *sketch.Layer, r textedit.Range) (*sketch.AttributedString, textedit.Range)) *ApplicationState {
	if s.SelectedText == nil {
		return s
	}
	orig, path, ok := textLayer(s, s.SelectedText.LayerID)
	if !ok {
		return s
	}
	as, r := fn(orig, s.SelectedText.Range)
	if as == orig.AttributedString {
		return s
	}
	pi := GetCurrentPageIndex(s)
	d := newDraft(s)
	l := d.Layer(pi, path)
	l.AttributedString = as
	measureTextFrame(ctx, l)
	fixGroupFrameHierarchy(d, pi, path.Parent())
	d.State().SelectedText = &TextSelection{LayerID: orig.ObjectID, Range: r}
	return d.Finish()
}
