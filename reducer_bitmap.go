package noyastate

import (
	"math"

	"github.com/noya-app/noyastate/bitmap"
	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

func bitmapReducer(s *ApplicationState, action Action, ctx RenderContext) (*ApplicationState, bool) {
	switch a := action.(type) {
	case FloodFillBitmap:
		return editBitmap(s, a, a.LayerID, func(p *bitmap.Pixmap, toPixel func(geometry.Point) geometry.Point) int {
			pt := toPixel(a.Point)
			return bitmap.FloodFill(p, int(math.Floor(pt.X)), int(math.Floor(pt.Y)), a.Color.NRGBA())
		}), true
	case DrawBitmapRectangle:
		return editBitmap(s, a, a.LayerID, func(p *bitmap.Pixmap, toPixel func(geometry.Point) geometry.Point) int {
			return bitmap.Rectangle(p, toPixel(a.Origin), toPixel(a.Current), a.Modifiers, a.Color.NRGBA())
		}), true
	case DrawBitmapPencil:
		return editBitmap(s, a, a.LayerID, func(p *bitmap.Pixmap, toPixel func(geometry.Point) geometry.Point) int {
			points := make([]geometry.Point, len(a.Points))
			for i, pt := range a.Points {
				points[i] = toPixel(pt)
			}
			width := toPixel(geometry.Pt(a.LineWidth, 0)).X - toPixel(geometry.Point{}).X
			return bitmap.Pencil(p, points, width, a.Color.NRGBA())
		}), true
	case InsertBitmap:
		return insertBitmap(s, a, ctx), true
	}
	return s, false
}

// editBitmap decodes the image of a bitmap layer on the current page, runs
// fn on its pixels and stores the result as PNG. The result replaces the
// image in place unless another layer uses it too, in which case the layer
// gets a new reference. toPixel maps the layer's own coordinates to pixel
// coordinates.
func editBitmap(s *ApplicationState, action Action, id string, fn func(p *bitmap.Pixmap, toPixel func(geometry.Point) geometry.Point) int) *ApplicationState {
	page := GetCurrentPage(s)
	if page == nil {
		return s
	}
	l, ok := sketch.FindByID(page, id)
	if !ok || l.Class != sketch.KindBitmap || l.Image == nil {
		logMissing(action, "layerId", id)
		return s
	}
	pix, _, err := bitmap.Decode(s.Sketch.Images[l.Image.Ref])
	if err != nil {
		Logger().Warn("noyastate: bitmap not editable", "layerId", id, "ref", l.Image.Ref, "err", err)
		return s
	}
	sx, sy := 1.0, 1.0
	if l.Frame.Width > 0 && l.Frame.Height > 0 {
		sx = float64(pix.Width()) / l.Frame.Width
		sy = float64(pix.Height()) / l.Frame.Height
	}
	toPixel := func(p geometry.Point) geometry.Point { return geometry.Pt(p.X*sx, p.Y*sy) }
	if fn(pix, toPixel) == 0 {
		return s
	}
	data, err := bitmap.EncodePNG(pix)
	if err != nil {
		Logger().Error("noyastate: bitmap encode failed", "layerId", id, "err", err)
		return s
	}
	d := newDraft(s)
	ref := l.Image.Ref
	if imageRefCount(s.Sketch, ref) > 1 {
		ref = newImageRef()
		path, _ := sketch.IndexPathOf(page, id)
		owned := d.Layer(GetCurrentPageIndex(s), path)
		owned.Image = &sketch.ImageRef{Ref: ref, RefClass: l.Image.RefClass}
	}
	d.File().Images[ref] = data
	return d.Finish()
}

// imageRefCount counts the layers and image overrides using ref.
func imageRefCount(f *sketch.File, ref string) int {
	n := 0
	for _, page := range f.Pages {
		sketch.Visit(page, visitAll(func(l *sketch.Layer) {
			if l.Image != nil && l.Image.Ref == ref {
				n++
			}
			for _, ov := range l.OverrideValues {
				if ov.Value == ref {
					n++
				}
			}
		}))
	}
	return n
}

func newImageRef() string { return "images/" + sketch.NewObjectID() + ".png" }

func insertBitmap(s *ApplicationState, a InsertBitmap, ctx RenderContext) *ApplicationState {
	pix, _, err := bitmap.Decode(a.Data)
	if err != nil {
		Logger().Warn("noyastate: cannot insert bitmap", "name", a.Name, "err", err)
		return s
	}
	data, err := bitmap.EncodePNG(pix)
	if err != nil {
		Logger().Error("noyastate: bitmap encode failed", "name", a.Name, "err", err)
		return s
	}
	name := a.Name
	if name == "" {
		name = "Image"
	}
	w, h := float64(pix.Width()), float64(pix.Height())
	c := GetVisiblePageRect(s, ctx).Center()
	frame := geometry.Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}

	pi := GetCurrentPageIndex(s)
	d := newDraft(s)
	ref := newImageRef()
	d.File().Images[ref] = data
	layer := d.own(sketch.NewBitmap(name, frame, ref))
	d.InsertLayers(pi, tree.IndexPath{}, -1, layer)
	st := d.State()
	st.SelectedLayerIDs = []string{layer.ObjectID}
	return d.Finish()
}
