package noyastate

import (
	"math"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/textedit"
)

// FontManager measures text. It is implemented by the renderer; package
// paragraph provides one backed by go-text/typesetting.
//
// Results must not be cached across reducer calls: fonts may finish loading
// between two dispatches and change every measurement.
type FontManager interface {
	// LayoutText lays out as, breaking lines at width. A width of zero or
	// less only breaks at newlines.
	LayoutText(as *sketch.AttributedString, width float64) textedit.Paragraph
}

// RenderContext carries what the renderer knows and the reducers need.
// It is passed to every call; nothing in it is retained.
type RenderContext struct {
	CanvasSize   geometry.Size
	CanvasInsets geometry.Insets
	FontManager  FontManager
}

// visibleCanvasRect is the part of the canvas not covered by UI chrome, in
// screen coordinates.
func (ctx RenderContext) visibleCanvasRect() geometry.Rect {
	return geometry.Rect{Width: ctx.CanvasSize.Width, Height: ctx.CanvasSize.Height}.Inset(ctx.CanvasInsets)
}

// GetLayerParagraph lays out a text layer at its frame width. Auto-width
// layers are laid out unbounded. It returns nil for non-text layers or
// without a font manager.
func GetLayerParagraph(ctx RenderContext, layer *sketch.Layer) textedit.Paragraph {
	if ctx.FontManager == nil || layer == nil || layer.Class != sketch.KindText {
		return nil
	}
	width := layer.Frame.Width
	if layer.TextBehaviour == sketch.TextBehaviourAutoWidth {
		width = 0
	}
	return ctx.FontManager.LayoutText(layer.AttributedString, width)
}

// measureTextFrame resizes an auto-sized text layer to its content. The
// layer must be owned by the caller.
func measureTextFrame(ctx RenderContext, layer *sketch.Layer) {
	if layer.TextBehaviour == sketch.TextBehaviourFixed {
		return
	}
	para := GetLayerParagraph(ctx, layer)
	if para == nil {
		return
	}
	size := para.Size()
	if layer.TextBehaviour == sketch.TextBehaviourAutoWidth {
		layer.Frame.Width = math.Ceil(size.Width)
	}
	layer.Frame.Height = math.Ceil(size.Height)
}
