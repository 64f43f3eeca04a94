package sketch

import "slices"

// FillType selects what a fill or border paints with.
type FillType int

const (
	FillTypeColor    FillType = 0
	FillTypeGradient FillType = 1
	FillTypePattern  FillType = 4
)

// GradientType selects the gradient geometry.
type GradientType int

const (
	GradientLinear GradientType = iota
	GradientRadial
	GradientAngular
)

// BorderPosition places a border relative to the path.
type BorderPosition int

const (
	BorderCenter BorderPosition = iota
	BorderInside
	BorderOutside
)

// GradientStop is one color of a gradient at a position in [0, 1].
type GradientStop struct {
	Color    Color   `json:"color"`
	Position float64 `json:"position"`
}

// Gradient describes a color ramp. From and To are normalized to the layer frame.
type Gradient struct {
	ElipseLength float64        `json:"elipseLength"`
	From         PointString    `json:"from"`
	GradientType GradientType   `json:"gradientType"`
	To           PointString    `json:"to"`
	Stops        []GradientStop `json:"stops"`
}

// DefaultGradient is the gradient a fill gets when switched to gradient mode.
func DefaultGradient(c Color) Gradient {
	end := c
	end.Alpha = 0
	return Gradient{
		From:         PointString{X: 0.5, Y: 0},
		GradientType: GradientLinear,
		To:           PointString{X: 0.5, Y: 1},
		Stops: []GradientStop{
			{Color: c, Position: 0},
			{Color: end, Position: 1},
		},
	}
}

// ContextSettings carries opacity and blend mode.
type ContextSettings struct {
	BlendMode int     `json:"blendMode"`
	Opacity   float64 `json:"opacity"`
}

// Fill paints the inside of a shape.
type Fill struct {
	IsEnabled bool     `json:"isEnabled"`
	FillType  FillType `json:"fillType"`
	Color     Color    `json:"color"`
	Gradient  Gradient `json:"gradient"`
}

// Border strokes the outline of a shape.
type Border struct {
	IsEnabled bool           `json:"isEnabled"`
	FillType  FillType       `json:"fillType"`
	Color     Color          `json:"color"`
	Gradient  Gradient       `json:"gradient"`
	Position  BorderPosition `json:"position"`
	Thickness float64        `json:"thickness"`
}

// Shadow is a drop shadow.
type Shadow struct {
	IsEnabled  bool    `json:"isEnabled"`
	BlurRadius float64 `json:"blurRadius"`
	Color      Color   `json:"color"`
	OffsetX    float64 `json:"offsetX"`
	OffsetY    float64 `json:"offsetY"`
	Spread     float64 `json:"spread"`
}

// TextStyle holds the default attributes of a text layer and its vertical alignment.
type TextStyle struct {
	EncodedAttributes StringAttributes  `json:"encodedAttributes"`
	VerticalAlignment VerticalAlignment `json:"verticalAlignment"`
}

// Style is the appearance of a layer. It has its own object ID.
type Style struct {
	ObjectID        string           `json:"do_objectID"`
	Fills           []Fill           `json:"fills"`
	Borders         []Border         `json:"borders"`
	Shadows         []Shadow         `json:"shadows"`
	ContextSettings *ContextSettings `json:"contextSettings,omitempty"`
	TextStyle       *TextStyle       `json:"textStyle,omitempty"`
	WindingRule     int              `json:"windingRule"`
}

// NewStyle returns an empty style with a fresh ID.
func NewStyle() *Style {
	return &Style{ObjectID: NewObjectID(), Fills: []Fill{}, Borders: []Border{}, Shadows: []Shadow{}}
}

// NewFill returns an enabled solid fill.
func NewFill(c Color) Fill {
	return Fill{IsEnabled: true, FillType: FillTypeColor, Color: c, Gradient: DefaultGradient(c)}
}

// NewBorder returns an enabled one-point center border.
func NewBorder(c Color) Border {
	return Border{IsEnabled: true, FillType: FillTypeColor, Color: c, Gradient: DefaultGradient(c), Position: BorderCenter, Thickness: 1}
}

// NewShadow returns an enabled default drop shadow.
func NewShadow() Shadow {
	return Shadow{IsEnabled: true, BlurRadius: 4, Color: DefaultShadowColor, OffsetY: 2}
}

// DefaultShapeStyle is the style of newly drawn rectangles and ovals.
func DefaultShapeStyle() *Style {
	s := NewStyle()
	s.Fills = append(s.Fills, NewFill(DefaultFillColor))
	s.Borders = append(s.Borders, NewBorder(DefaultBorderColor))
	return s
}

// Opacity returns the style's opacity, 1 when unset.
func (s *Style) Opacity() float64 {
	if s == nil || s.ContextSettings == nil {
		return 1
	}
	return s.ContextSettings.Opacity
}

// Clone returns a deep copy that keeps the same object ID.
func (s *Style) Clone() *Style {
	if s == nil {
		return nil
	}
	out := *s
	out.Fills = slices.Clone(s.Fills)
	for i := range out.Fills {
		out.Fills[i].Gradient = out.Fills[i].Gradient.Clone()
	}
	out.Borders = slices.Clone(s.Borders)
	for i := range out.Borders {
		out.Borders[i].Gradient = out.Borders[i].Gradient.Clone()
	}
	out.Shadows = slices.Clone(s.Shadows)
	if s.ContextSettings != nil {
		cs := *s.ContextSettings
		out.ContextSettings = &cs
	}
	if s.TextStyle != nil {
		ts := *s.TextStyle
		ts.EncodedAttributes = ts.EncodedAttributes.Clone()
		out.TextStyle = &ts
	}
	return &out
}

// Clone returns a copy of the gradient with its own stops.
func (g Gradient) Clone() Gradient {
	g.Stops = slices.Clone(g.Stops)
	return g
}
