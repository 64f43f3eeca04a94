// Package sketch is the in-memory document model. It follows the Sketch
// file format: a File holds pages, each page is a tree of layers, and
// documents carry shared styles, swatches and embedded images.
//
// Values in this package are plain data. The reducers in the root package
// treat them as immutable and copy a node before changing it.
package sketch

import (
	"github.com/noya-app/noyastate/geometry"
)

// Frame is a layer's position and size in its parent's coordinate space.
type Frame struct {
	ConstrainProportions bool    `json:"constrainProportions"`
	Height               float64 `json:"height"`
	Width                float64 `json:"width"`
	X                    float64 `json:"x"`
	Y                    float64 `json:"y"`
}

// Rect returns the frame as a geometry.Rect.
func (f Frame) Rect() geometry.Rect {
	return geometry.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

// WithRect returns the frame moved and resized to r, keeping its flags.
func (f Frame) WithRect(r geometry.Rect) Frame {
	f.X, f.Y, f.Width, f.Height = r.X, r.Y, r.Width, r.Height
	return f
}

// FrameOf creates a frame from a rectangle.
func FrameOf(r geometry.Rect) Frame {
	return Frame{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// ExpandedType is the disclosure state of a layer in the layer list.
type ExpandedType int

const (
	ExpandedUndecided ExpandedType = iota
	ExpandedCollapsed
	ExpandedExpanded
)

// ImageRef points into File.Images.
type ImageRef struct {
	Ref      string `json:"_ref"`
	RefClass string `json:"_ref_class"`
}

// OverrideValue replaces one property of a nested layer of a symbol
// instance. See ParseOverrideName for the name format.
type OverrideValue struct {
	OverrideName string `json:"overrideName"`
	Value        string `json:"value"`
}

// ExportFormat is one export setting of a layer.
type ExportFormat struct {
	ObjectID     string  `json:"do_objectID"`
	AbsoluteSize float64 `json:"absoluteSize"`
	FileFormat   string  `json:"fileFormat"`
	Name         string  `json:"name"`
	NamingScheme int     `json:"namingScheme"`
	Scale        float64 `json:"scale"`
}

// ExportOptions lists a layer's export settings.
type ExportOptions struct {
	ExportFormats []ExportFormat `json:"exportFormats"`
}

// Layer is any node of a page tree, including the page itself. Which
// optional fields are meaningful depends on Class.
type Layer struct {
	Class                 Kind          `json:"_class"`
	ObjectID              string        `json:"do_objectID"`
	Name                  string        `json:"name"`
	Frame                 Frame         `json:"frame"`
	Rotation              float64       `json:"rotation"`
	IsFlippedHorizontal   bool          `json:"isFlippedHorizontal"`
	IsFlippedVertical     bool          `json:"isFlippedVertical"`
	IsVisible             bool          `json:"isVisible"`
	IsLocked              bool          `json:"isLocked"`
	LayerListExpandedType ExpandedType  `json:"layerListExpandedType"`
	HasClippingMask       bool          `json:"hasClippingMask,omitempty"`
	SharedStyleID         string        `json:"sharedStyleID,omitempty"`
	Style                 *Style        `json:"style,omitempty"`
	ExportOptions         ExportOptions `json:"exportOptions"`

	// Parent kinds.
	Layers []*Layer `json:"layers,omitempty"`

	// Artboards and symbol masters.
	HasBackgroundColor bool   `json:"hasBackgroundColor,omitempty"`
	BackgroundColor    *Color `json:"backgroundColor,omitempty"`

	// Symbol masters and instances.
	SymbolID       string          `json:"symbolID,omitempty"`
	OverrideValues []OverrideValue `json:"overrideValues,omitempty"`
	BlockText      string          `json:"blockText,omitempty"`

	// Path kinds.
	Points      []CurvePoint `json:"points,omitempty"`
	IsClosed    bool         `json:"isClosed,omitempty"`
	FixedRadius float64      `json:"fixedRadius,omitempty"`

	// Text.
	AttributedString *AttributedString `json:"attributedString,omitempty"`
	TextBehaviour    TextBehaviour     `json:"textBehaviour,omitempty"`

	// Bitmap.
	Image *ImageRef `json:"image,omitempty"`
}

// Children lists a layer's children; nil for leaf kinds.
func Children(l *Layer) []*Layer {
	if l == nil || !l.Class.IsParent() {
		return nil
	}
	return l.Layers
}

func newLayer(kind Kind, name string, frame geometry.Rect) *Layer {
	return &Layer{
		Class:     kind,
		ObjectID:  NewObjectID(),
		Name:      name,
		Frame:     FrameOf(frame),
		IsVisible: true,
		Style:     NewStyle(),
	}
}

// NewPage returns an empty page.
func NewPage(name string) *Layer {
	p := newLayer(KindPage, name, geometry.Rect{})
	p.Layers = []*Layer{}
	return p
}

// NewArtboard returns an empty artboard with a white background.
func NewArtboard(name string, frame geometry.Rect) *Layer {
	a := newLayer(KindArtboard, name, frame)
	a.Layers = []*Layer{}
	bg := White
	a.BackgroundColor = &bg
	return a
}

// NewGroup returns a group holding layers. The caller is responsible for
// expressing the children's frames relative to frame.
func NewGroup(name string, frame geometry.Rect, layers []*Layer) *Layer {
	g := newLayer(KindGroup, name, frame)
	g.Layers = layers
	if g.Layers == nil {
		g.Layers = []*Layer{}
	}
	return g
}

// NewRectangle returns a rectangle with the default shape style.
func NewRectangle(name string, frame geometry.Rect) *Layer {
	r := newLayer(KindRectangle, name, frame)
	r.Style = DefaultShapeStyle()
	r.Points = RectanglePoints()
	r.IsClosed = true
	return r
}

// NewOval returns an oval with the default shape style.
func NewOval(name string, frame geometry.Rect) *Layer {
	o := newLayer(KindOval, name, frame)
	o.Style = DefaultShapeStyle()
	o.Points = OvalPoints()
	o.IsClosed = true
	return o
}

// NewShapePath returns an open path through points normalized to frame.
func NewShapePath(name string, frame geometry.Rect, points []CurvePoint) *Layer {
	p := newLayer(KindShapePath, name, frame)
	p.Style = NewStyle()
	p.Style.Borders = append(p.Style.Borders, NewBorder(DefaultBorderColor))
	p.Points = points
	return p
}

// NewText returns an auto-width text layer.
func NewText(name string, frame geometry.Rect, s string) *Layer {
	t := newLayer(KindText, name, frame)
	attrs := DefaultStringAttributes()
	t.AttributedString = NewAttributedString(s, attrs)
	t.Style.TextStyle = &TextStyle{EncodedAttributes: attrs.Clone()}
	t.TextBehaviour = TextBehaviourAutoWidth
	return t
}

// NewBitmap returns a bitmap layer showing the image stored under ref.
func NewBitmap(name string, frame geometry.Rect, ref string) *Layer {
	b := newLayer(KindBitmap, name, frame)
	b.Image = &ImageRef{Ref: ref, RefClass: "MSImageData"}
	return b
}

// NewSymbolMaster returns a master holding layers with a fresh symbol ID.
func NewSymbolMaster(name string, frame geometry.Rect, layers []*Layer) *Layer {
	m := newLayer(KindSymbolMaster, name, frame)
	m.SymbolID = NewObjectID()
	m.Layers = layers
	if m.Layers == nil {
		m.Layers = []*Layer{}
	}
	bg := White
	m.BackgroundColor = &bg
	return m
}

// NewSymbolInstance returns an instance of master placed at frame.
func NewSymbolInstance(master *Layer, frame geometry.Rect) *Layer {
	i := newLayer(KindSymbolInstance, master.Name, frame)
	i.SymbolID = master.SymbolID
	i.OverrideValues = []OverrideValue{}
	return i
}
