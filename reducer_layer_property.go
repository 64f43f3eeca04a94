package noyastate

import (
	"math"

	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

func layerPropertyReducer(s *ApplicationState, action Action, ctx RenderContext) (*ApplicationState, bool) {
	switch a := action.(type) {
	case SetLayerX:
		return editFrames(s, a.LayerIDs, func(l *sketch.Layer) bool {
			return set(&l.Frame.X, a.Mode.apply(l.Frame.X, a.Value))
		}), true
	case SetLayerY:
		return editFrames(s, a.LayerIDs, func(l *sketch.Layer) bool {
			return set(&l.Frame.Y, a.Mode.apply(l.Frame.Y, a.Value))
		}), true
	case SetLayerWidth:
		return resizeLayers(s, a.LayerIDs, ctx, func(f sketch.Frame) (*float64, *float64) {
			w := a.Mode.apply(f.Width, a.Value)
			return &w, nil
		}), true
	case SetLayerHeight:
		return resizeLayers(s, a.LayerIDs, ctx, func(f sketch.Frame) (*float64, *float64) {
			h := a.Mode.apply(f.Height, a.Value)
			return nil, &h
		}), true
	case SetLayerRotation:
		return editFrames(s, a.LayerIDs, func(l *sketch.Layer) bool {
			return set(&l.Rotation, normalizeDegrees(a.Mode.apply(l.Rotation, a.Value)))
		}), true
	case SetFixedRadius:
		return editFrames(s, a.LayerIDs, func(l *sketch.Layer) bool {
			if !l.Class.IsPointsLayer() {
				return false
			}
			r := math.Max(0, a.Mode.apply(l.FixedRadius, a.Value))
			changed := set(&l.FixedRadius, r)
			for i := range l.Points {
				changed = set(&l.Points[i].CornerRadius, r) || changed
			}
			return changed
		}), true
	case SetLayerOpacity:
		return editFrames(s, a.LayerIDs, func(l *sketch.Layer) bool {
			v := math.Max(0, math.Min(1, a.Mode.apply(l.Style.Opacity(), a.Value)))
			if l.Style == nil {
				l.Style = sketch.NewStyle()
			}
			if l.Style.ContextSettings == nil {
				if v == 1 {
					return false
				}
				l.Style.ContextSettings = &sketch.ContextSettings{Opacity: 1}
			}
			return set(&l.Style.ContextSettings.Opacity, v)
		}), true
	case SetConstrainProportions:
		return editFrames(s, a.LayerIDs, func(l *sketch.Layer) bool {
			return set(&l.Frame.ConstrainProportions, a.Value)
		}), true
	case SetIsFlippedHorizontal:
		return editFrames(s, a.LayerIDs, func(l *sketch.Layer) bool {
			return set(&l.IsFlippedHorizontal, a.Value)
		}), true
	case SetIsFlippedVertical:
		return editFrames(s, a.LayerIDs, func(l *sketch.Layer) bool {
			return set(&l.IsFlippedVertical, a.Value)
		}), true
	case SetBlockContent:
		return updateLayerByID(s, a, a.LayerID, func(l *sketch.Layer) bool {
			if l.Class != sketch.KindSymbolInstance {
				return false
			}
			return set(&l.BlockText, a.Content)
		}), true
	}
	return s, false
}

// editLayers runs fn on each target with a draft and refits the groups
// around every layer it changed. fn reports whether it changed anything;
// when nothing changes s is returned.
func editLayers(s *ApplicationState, paths []tree.IndexPath, fn func(d *Draft, pageIndex int, path tree.IndexPath) bool) *ApplicationState {
	if len(paths) == 0 {
		return s
	}
	pi := GetCurrentPageIndex(s)
	d := newDraft(s)
	changed := false
	for _, p := range paths {
		if !fn(d, pi, p) {
			continue
		}
		changed = true
		fixGroupFrameHierarchy(d, pi, p.Parent())
	}
	if !changed {
		return s
	}
	return d.Finish()
}

// editFrames is editLayers for edits of a single layer's own fields.
func editFrames(s *ApplicationState, ids IDList, fn func(l *sketch.Layer) bool) *ApplicationState {
	return editLayers(s, targetPaths(s, ids), func(d *Draft, pi int, p tree.IndexPath) bool {
		return fn(d.Layer(pi, p))
	})
}

func resizeLayers(s *ApplicationState, ids IDList, ctx RenderContext, size func(sketch.Frame) (w, h *float64)) *ApplicationState {
	return editLayers(s, targetPaths(s, ids), func(d *Draft, pi int, p tree.IndexPath) bool {
		l := d.Layer(pi, p)
		before, behaviour := l.Frame, l.TextBehaviour
		w, h := size(before)
		if l.Class == sketch.KindText {
			switch {
			case h != nil:
				l.TextBehaviour = sketch.TextBehaviourFixed
			case l.TextBehaviour == sketch.TextBehaviourAutoWidth:
				l.TextBehaviour = sketch.TextBehaviourAutoHeight
			}
		}
		resizeLayer(d, pi, p, w, h)
		l = d.Layer(pi, p)
		if l.Class == sketch.KindText {
			measureTextFrame(ctx, l)
		}
		return l.Frame != before || l.TextBehaviour != behaviour
	})
}
