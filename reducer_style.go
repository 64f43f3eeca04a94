package noyastate

import (
	"cmp"
	"math"
	"slices"

	"github.com/noya-app/noyastate/sketch"
)

// minGradientStops is how many stops a gradient keeps at least.
const minGradientStops = 2

func styleReducer(s *ApplicationState, action Action, _ RenderContext) (*ApplicationState, bool) {
	switch a := action.(type) {
	case AddNewFill:
		return editStyles(s, func(st *sketch.Style) bool {
			st.Fills = append(st.Fills, sketch.NewFill(sketch.DefaultFillColor))
			return true
		}), true
	case AddNewBorder:
		return editStyles(s, func(st *sketch.Style) bool {
			st.Borders = append(st.Borders, sketch.NewBorder(sketch.DefaultBorderColor))
			return true
		}), true
	case AddNewShadow:
		return editStyles(s, func(st *sketch.Style) bool {
			st.Shadows = append(st.Shadows, sketch.NewShadow())
			return true
		}), true
	case DeleteFill:
		return editStyles(s, func(st *sketch.Style) bool { return deleteAt(&st.Fills, a.Index) }), true
	case DeleteBorder:
		return editStyles(s, func(st *sketch.Style) bool { return deleteAt(&st.Borders, a.Index) }), true
	case DeleteShadow:
		return editStyles(s, func(st *sketch.Style) bool { return deleteAt(&st.Shadows, a.Index) }), true
	case MoveFill:
		return editStyles(s, func(st *sketch.Style) bool { return moveAt(st.Fills, a.From, a.To) }), true
	case MoveBorder:
		return editStyles(s, func(st *sketch.Style) bool { return moveAt(st.Borders, a.From, a.To) }), true
	case MoveShadow:
		return editStyles(s, func(st *sketch.Style) bool { return moveAt(st.Shadows, a.From, a.To) }), true

	case SetFillEnabled:
		return editFill(s, a.Index, func(f *sketch.Fill) bool { return set(&f.IsEnabled, a.Enabled) }), true
	case SetFillColor:
		return editFill(s, a.Index, func(f *sketch.Fill) bool { return set(&f.Color, a.Color) }), true
	case SetFillType:
		return editFill(s, a.Index, func(f *sketch.Fill) bool {
			if a.Type == sketch.FillTypeGradient && len(f.Gradient.Stops) < minGradientStops {
				f.Gradient = sketch.DefaultGradient(f.Color)
			}
			return set(&f.FillType, a.Type)
		}), true

	case SetBorderEnabled:
		return editBorder(s, a.Index, func(b *sketch.Border) bool { return set(&b.IsEnabled, a.Enabled) }), true
	case SetBorderColor:
		return editBorder(s, a.Index, func(b *sketch.Border) bool { return set(&b.Color, a.Color) }), true
	case SetBorderWidth:
		return editBorder(s, a.Index, func(b *sketch.Border) bool {
			return set(&b.Thickness, math.Max(0, a.Mode.apply(b.Thickness, a.Value)))
		}), true
	case SetBorderPosition:
		return editBorder(s, a.Index, func(b *sketch.Border) bool { return set(&b.Position, a.Position) }), true

	case SetShadowEnabled:
		return editShadow(s, a.Index, func(sh *sketch.Shadow) bool { return set(&sh.IsEnabled, a.Enabled) }), true
	case SetShadowColor:
		return editShadow(s, a.Index, func(sh *sketch.Shadow) bool { return set(&sh.Color, a.Color) }), true
	case SetShadowX:
		return editShadow(s, a.Index, func(sh *sketch.Shadow) bool {
			return set(&sh.OffsetX, a.Mode.apply(sh.OffsetX, a.Value))
		}), true
	case SetShadowY:
		return editShadow(s, a.Index, func(sh *sketch.Shadow) bool {
			return set(&sh.OffsetY, a.Mode.apply(sh.OffsetY, a.Value))
		}), true
	case SetShadowBlur:
		return editShadow(s, a.Index, func(sh *sketch.Shadow) bool {
			return set(&sh.BlurRadius, math.Max(0, a.Mode.apply(sh.BlurRadius, a.Value)))
		}), true
	case SetShadowSpread:
		return editShadow(s, a.Index, func(sh *sketch.Shadow) bool {
			return set(&sh.Spread, a.Mode.apply(sh.Spread, a.Value))
		}), true

	case SetGradientType:
		return editFill(s, a.Index, func(f *sketch.Fill) bool {
			if len(f.Gradient.Stops) < minGradientStops {
				f.Gradient = sketch.DefaultGradient(f.Color)
			}
			changed := set(&f.FillType, sketch.FillTypeGradient)
			return set(&f.Gradient.GradientType, a.Type) || changed
		}), true
	case AddGradientStop:
		return editFill(s, a.Index, func(f *sketch.Fill) bool {
			stop := sketch.GradientStop{Color: a.Color, Position: clamp01(a.Position)}
			f.Gradient.Stops = append(f.Gradient.Stops, stop)
			sortStops(f.Gradient.Stops)
			return true
		}), true
	case DeleteGradientStop:
		return editSelectedGradient(s, a, func(g *sketch.Gradient, stop int) (int, bool) {
			if len(g.Stops) <= minGradientStops {
				return stop, false
			}
			g.Stops = slices.Delete(g.Stops, stop, stop+1)
			return max(0, stop-1), true
		}), true
	case SetGradientStopColor:
		return editSelectedGradient(s, a, func(g *sketch.Gradient, stop int) (int, bool) {
			return stop, set(&g.Stops[stop].Color, a.Color)
		}), true
	case SetGradientStopPosition:
		return editSelectedGradient(s, a, func(g *sketch.Gradient, stop int) (int, bool) {
			if !set(&g.Stops[stop].Position, clamp01(a.Value)) {
				return stop, false
			}
			moved := g.Stops[stop]
			sortStops(g.Stops)
			return slices.Index(g.Stops, moved), true
		}), true
	case SetSelectedGradient:
		return setSelectedGradient(s, a), true
	}
	return s, false
}

// editStyles runs fn on the style of every selected layer.
func editStyles(s *ApplicationState, fn func(st *sketch.Style) bool) *ApplicationState {
	return updateLayers(s, GetSelectedLayerIndexPaths(s), func(l *sketch.Layer) bool {
		if l.Style == nil {
			l.Style = sketch.NewStyle()
		}
		return fn(l.Style)
	})
}

func editFill(s *ApplicationState, i int, fn func(f *sketch.Fill) bool) *ApplicationState {
	return editStyles(s, func(st *sketch.Style) bool {
		return i >= 0 && i < len(st.Fills) && fn(&st.Fills[i])
	})
}

func editBorder(s *ApplicationState, i int, fn func(b *sketch.Border) bool) *ApplicationState {
	return editStyles(s, func(st *sketch.Style) bool {
		return i >= 0 && i < len(st.Borders) && fn(&st.Borders[i])
	})
}

func editShadow(s *ApplicationState, i int, fn func(sh *sketch.Shadow) bool) *ApplicationState {
	return editStyles(s, func(st *sketch.Style) bool {
		return i >= 0 && i < len(st.Shadows) && fn(&st.Shadows[i])
	})
}

func deleteAt[T any](items *[]T, i int) bool {
	if i < 0 || i >= len(*items) {
		return false
	}
	*items = slices.Delete(*items, i, i+1)
	return true
}

func moveAt[T any](items []T, from, to int) bool {
	if from == to || from < 0 || to < 0 || from >= len(items) || to >= len(items) {
		return false
	}
	item := items[from]
	if from < to {
		copy(items[from:to], items[from+1:to+1])
	} else {
		copy(items[to+1:from+1], items[to:from])
	}
	items[to] = item
	return true
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

func sortStops(stops []sketch.GradientStop) {
	slices.SortStableFunc(stops, func(a, b sketch.GradientStop) int {
		return cmp.Compare(a.Position, b.Position)
	})
}

// gradientAt returns the gradient a ref points at inside st.
func gradientAt(st *sketch.Style, ref GradientRef) *sketch.Gradient {
	if st == nil {
		return nil
	}
	switch ref.StyleType {
	case StyleBorder:
		if ref.FillIndex >= 0 && ref.FillIndex < len(st.Borders) {
			return &st.Borders[ref.FillIndex].Gradient
		}
	default:
		if ref.FillIndex >= 0 && ref.FillIndex < len(st.Fills) {
			return &st.Fills[ref.FillIndex].Gradient
		}
	}
	return nil
}

// editSelectedGradient edits the stop addressed by SelectedGradient. fn
// returns the index the selection should follow.
func editSelectedGradient(s *ApplicationState, action Action, fn func(g *sketch.Gradient, stop int) (int, bool)) *ApplicationState {
	if s.SelectedGradient == nil {
		return s
	}
	ref := *s.SelectedGradient
	nextStop := ref.StopIndex
	next := updateLayerByID(s, action, ref.LayerID, func(l *sketch.Layer) bool {
		g := gradientAt(l.Style, ref)
		if g == nil || ref.StopIndex < 0 || ref.StopIndex >= len(g.Stops) {
			return false
		}
		var changed bool
		nextStop, changed = fn(g, ref.StopIndex)
		return changed
	})
	if next != s && nextStop != ref.StopIndex {
		ref.StopIndex = nextStop
		next.SelectedGradient = &ref
	}
	return next
}

func setSelectedGradient(s *ApplicationState, a SetSelectedGradient) *ApplicationState {
	if a.Ref == nil {
		if s.SelectedGradient == nil {
			return s
		}
		d := newDraft(s)
		d.State().SelectedGradient = nil
		return d.Finish()
	}
	if _, ok := s.Sketch.Locate(a.Ref.LayerID); !ok {
		logMissing(a, "layerId", a.Ref.LayerID)
		return s
	}
	if s.SelectedGradient != nil && *s.SelectedGradient == *a.Ref {
		return s
	}
	ref := *a.Ref
	d := newDraft(s)
	d.State().SelectedGradient = &ref
	return d.Finish()
}
