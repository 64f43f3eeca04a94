package sketch

import "fmt"

// Kind is the layer class, serialized as Sketch's "_class" value.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindPage
	KindArtboard
	KindGroup
	KindShapeGroup
	KindRectangle
	KindOval
	KindShapePath
	KindTriangle
	KindStar
	KindPolygon
	KindText
	KindBitmap
	KindSymbolMaster
	KindSymbolInstance
	KindSlice
)

var kindNames = [...]string{
	KindUnknown:        "unknown",
	KindPage:           "page",
	KindArtboard:       "artboard",
	KindGroup:          "group",
	KindShapeGroup:     "shapeGroup",
	KindRectangle:      "rectangle",
	KindOval:           "oval",
	KindShapePath:      "shapePath",
	KindTriangle:       "triangle",
	KindStar:           "star",
	KindPolygon:        "polygon",
	KindText:           "text",
	KindBitmap:         "bitmap",
	KindSymbolMaster:   "symbolMaster",
	KindSymbolInstance: "symbolInstance",
	KindSlice:          "slice",
}

// String returns the Sketch class name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a Sketch class name to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s && Kind(k) != KindUnknown {
			return Kind(k), nil
		}
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// IsParent reports whether layers of this kind own child layers.
func (k Kind) IsParent() bool {
	switch k {
	case KindPage, KindArtboard, KindGroup, KindShapeGroup, KindSymbolMaster:
		return true
	}
	return false
}

// IsGroupLike reports whether the kind's frame is derived from its children.
func (k Kind) IsGroupLike() bool {
	return k == KindGroup || k == KindShapeGroup
}

// IsArtboardLike reports whether the kind is a fixed-frame top-level container.
func (k Kind) IsArtboardLike() bool {
	return k == KindArtboard || k == KindSymbolMaster
}

// IsPointsLayer reports whether the kind's geometry is a list of curve points.
func (k Kind) IsPointsLayer() bool {
	switch k {
	case KindRectangle, KindOval, KindShapePath, KindTriangle, KindStar, KindPolygon:
		return true
	}
	return false
}
