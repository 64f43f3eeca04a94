package noyastate

import (
	"math"
	"slices"

	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

// MinFontSize is the smallest font size a setter produces.
const MinFontSize = 1

func textStyleReducer(s *ApplicationState, action Action, ctx RenderContext) (*ApplicationState, bool) {
	switch a := action.(type) {
	case SetTextColor:
		return editTextAttributes(s, ctx, func(attrs *sketch.StringAttributes) {
			c := a.Color
			attrs.Color = &c
		}), true
	case SetTextFontName:
		return editTextAttributes(s, ctx, func(attrs *sketch.StringAttributes) {
			attrs.Font.Attributes.Name = a.Name
		}), true
	case SetTextFontSize:
		return editTextAttributes(s, ctx, func(attrs *sketch.StringAttributes) {
			attrs.Font.Attributes.Size = math.Max(MinFontSize, a.Mode.apply(attrs.FontSize(), a.Value))
		}), true
	case SetTextLetterSpacing:
		return editTextAttributes(s, ctx, func(attrs *sketch.StringAttributes) {
			attrs.Kerning = a.Mode.apply(attrs.Kerning, a.Value)
		}), true
	case SetTextLineSpacing:
		return editTextAttributes(s, ctx, func(attrs *sketch.StringAttributes) {
			ps := paragraphStyle(attrs)
			v := math.Max(0, a.Mode.apply(ps.MinimumLineHeight, a.Value))
			ps.MinimumLineHeight, ps.MaximumLineHeight = v, v
		}), true
	case SetTextDecoration:
		return editTextAttributes(s, ctx, func(attrs *sketch.StringAttributes) {
			attrs.UnderlineStyle, attrs.StrikethroughStyle = 0, 0
			switch a.Decoration {
			case DecorationUnderline:
				attrs.UnderlineStyle = 1
			case DecorationStrikethrough:
				attrs.StrikethroughStyle = 1
			}
		}), true
	case SetTextTransform:
		return editTextAttributes(s, ctx, func(attrs *sketch.StringAttributes) {
			attrs.TextTransform = a.Transform
		}), true
	case SetTextAlignment:
		return editTextLayers(s, ctx, func(l *sketch.Layer) {
			applyWholeText(l, func(attrs *sketch.StringAttributes) {
				paragraphStyle(attrs).Alignment = a.Alignment
			})
		}), true
	case SetTextVerticalAlignment:
		return editTextLayers(s, ctx, func(l *sketch.Layer) {
			textStyleOf(l).VerticalAlignment = a.Alignment
		}), true
	case SetTextBehaviour:
		return editTextLayers(s, ctx, func(l *sketch.Layer) {
			l.TextBehaviour = a.Behaviour
		}), true
	}
	return s, false
}

func paragraphStyle(attrs *sketch.StringAttributes) *sketch.ParagraphStyle {
	if attrs.ParagraphStyle == nil {
		attrs.ParagraphStyle = &sketch.ParagraphStyle{}
	}
	return attrs.ParagraphStyle
}

// textStyleOf returns an owned layer's text style, creating it.
func textStyleOf(l *sketch.Layer) *sketch.TextStyle {
	if l.Style == nil {
		l.Style = sketch.NewStyle()
	}
	if l.Style.TextStyle == nil {
		l.Style.TextStyle = &sketch.TextStyle{EncodedAttributes: l.AttributedString.AttributesAt(0).Clone()}
	}
	return l.Style.TextStyle
}

// applyWholeText applies fn to every run of an owned text layer and to its
// default attributes.
func applyWholeText(l *sketch.Layer, fn func(*sketch.StringAttributes)) {
	if l.AttributedString == nil {
		l.AttributedString = sketch.NewAttributedString("", sketch.DefaultStringAttributes())
	}
	l.AttributedString = l.AttributedString.ApplyAttributes(0, l.AttributedString.Len(), fn)
	fn(&textStyleOf(l).EncodedAttributes)
}

// styledTextPaths returns the text layers a text style action targets: the
// one being edited, or the selected ones.
func styledTextPaths(s *ApplicationState) []tree.IndexPath {
	if s.SelectedText != nil {
		if _, p, ok := textLayer(s, s.SelectedText.LayerID); ok {
			return []tree.IndexPath{p}
		}
	}
	page := GetCurrentPage(s)
	return slices.DeleteFunc(GetSelectedLayerIndexPaths(s), func(p tree.IndexPath) bool {
		l, _ := sketch.Access(page, p)
		return l.Class != sketch.KindText
	})
}

func editTextLayers(s *ApplicationState, ctx RenderContext, fn func(l *sketch.Layer)) *ApplicationState {
	return editLayers(s, styledTextPaths(s), func(d *Draft, pi int, p tree.IndexPath) bool {
		l := d.Layer(pi, p)
		fn(l)
		measureTextFrame(ctx, l)
		return true
	})
}

// editTextAttributes applies fn to the selected range of the text being
// edited or, without one, to the whole of every targeted text layer.
func editTextAttributes(s *ApplicationState, ctx RenderContext, fn func(*sketch.StringAttributes)) *ApplicationState {
	if sel := s.SelectedText; sel != nil && !sel.Range.IsCollapsed() {
		return editTextLayers(s, ctx, func(l *sketch.Layer) {
			if l.AttributedString == nil {
				return
			}
			l.AttributedString = l.AttributedString.ApplyAttributes(sel.Range.Min(), sel.Range.Max(), fn)
		})
	}
	return editTextLayers(s, ctx, func(l *sketch.Layer) {
		applyWholeText(l, fn)
	})
}
