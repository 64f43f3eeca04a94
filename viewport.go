package noyastate

import (
	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
)

// Zoom limits.
const (
	MinZoom = 0.01
	MaxZoom = 256
)

// zoomToFitPadding is the margin kept around framed content, in screen units.
const zoomToFitPadding = 20

// GetViewport returns the current page's zoom and scroll origin.
func GetViewport(s *ApplicationState) sketch.Viewport {
	page := GetCurrentPage(s)
	if page != nil {
		if vp, ok := s.Sketch.User[page.ObjectID]; ok && vp.ZoomValue > 0 {
			return vp
		}
	}
	return sketch.Viewport{ZoomValue: 1}
}

// CanvasToPage converts a point on the canvas to page coordinates.
func CanvasToPage(vp sketch.Viewport, p geometry.Point) geometry.Point {
	return p.Sub(vp.ScrollOrigin.Point()).Mul(1 / vp.ZoomValue)
}

// PageToCanvas converts a page point to canvas coordinates.
func PageToCanvas(vp sketch.Viewport, p geometry.Point) geometry.Point {
	return p.Mul(vp.ZoomValue).Add(vp.ScrollOrigin.Point())
}

// GetVisiblePageRect returns the part of the page visible on the canvas.
func GetVisiblePageRect(s *ApplicationState, ctx RenderContext) geometry.Rect {
	vp := GetViewport(s)
	visible := ctx.visibleCanvasRect()
	return geometry.RectFromPoints(
		CanvasToPage(vp, visible.Origin()),
		CanvasToPage(vp, geometry.Pt(visible.MaxX(), visible.MaxY())),
	)
}
