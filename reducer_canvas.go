package noyastate

import (
	"math"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
)

func canvasReducer(s *ApplicationState, action Action, ctx RenderContext) (*ApplicationState, bool) {
	switch a := action.(type) {
	case SetTab:
		if s.CurrentTab == a.Tab {
			return s, true
		}
		d := newDraft(s)
		d.State().CurrentTab = a.Tab
		return d.Finish(), true
	case SetKeyModifier:
		mods := s.KeyModifiers
		switch a.Modifier {
		case ModifierShift:
			mods.Shift = a.Value
		case ModifierAlt:
			mods.Alt = a.Value
		case ModifierControl:
			mods.Control = a.Value
		case ModifierMeta:
			mods.Meta = a.Value
		}
		if mods == s.KeyModifiers {
			return s, true
		}
		d := newDraft(s)
		d.State().KeyModifiers = mods
		return d.Finish(), true
	case SetInteractionType:
		if s.InteractionState.Type == a.Type {
			return s, true
		}
		d := newDraft(s)
		d.State().InteractionState = InteractionState{Type: a.Type}
		return d.Finish(), true
	case SetZoom:
		vp := GetViewport(s)
		return setViewport(s, zoomAbout(vp, a.Mode.apply(vp.ZoomValue, a.Value), ctx.visibleCanvasRect().Center())), true
	case ZoomToFit:
		return zoomToFit(s, a, ctx), true
	case Pan:
		vp := GetViewport(s)
		origin := vp.ScrollOrigin.Point().Add(geometry.Pt(a.DX, a.DY))
		vp.ScrollOrigin = sketch.PointString(origin)
		return setViewport(s, vp), true
	}
	return s, false
}

func clampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// zoomAbout changes the zoom keeping the page point under the canvas point
// anchor fixed.
func zoomAbout(vp sketch.Viewport, zoom float64, anchor geometry.Point) sketch.Viewport {
	zoom = clampZoom(zoom)
	pagePoint := CanvasToPage(vp, anchor)
	vp.ZoomValue = zoom
	vp.ScrollOrigin = sketch.PointString(anchor.Sub(pagePoint.Mul(zoom)))
	return vp
}

func setViewport(s *ApplicationState, vp sketch.Viewport) *ApplicationState {
	page := GetCurrentPage(s)
	if page == nil {
		return s
	}
	if GetViewport(s) == vp {
		return s
	}
	d := newDraft(s)
	d.File().User[page.ObjectID] = vp
	return d.Finish()
}

func zoomToFit(s *ApplicationState, a ZoomToFit, ctx RenderContext) *ApplicationState {
	page := GetCurrentPage(s)
	if page == nil {
		return s
	}
	var ids []string
	if a.Target == ZoomSelection {
		ids = s.SelectedLayerIDs
	} else {
		for _, l := range page.Layers {
			ids = append(ids, l.ObjectID)
		}
	}
	bounds, ok := GetBoundingRect(page, ids, BoundingRectOptions{GroupPolicy: GroupChildrenOnly})
	if !ok {
		return s
	}
	visible := ctx.visibleCanvasRect()
	avail := visible.Inset(geometry.Insets{
		Top: zoomToFitPadding, Left: zoomToFitPadding, Bottom: zoomToFitPadding, Right: zoomToFitPadding,
	})
	if avail.Width <= 0 || avail.Height <= 0 {
		return s
	}
	zoom := 1.0
	if bounds.Width > 0 && bounds.Height > 0 {
		zoom = math.Min(avail.Width/bounds.Width, avail.Height/bounds.Height)
	}
	zoom = clampZoom(zoom)
	origin := avail.Center().Sub(bounds.Center().Mul(zoom))
	return setViewport(s, sketch.Viewport{ZoomValue: zoom, ScrollOrigin: sketch.PointString(origin)})
}
