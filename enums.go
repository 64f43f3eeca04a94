package noyastate

import (
	"fmt"
	"slices"
)

// enum gives an int-backed type wire names taken from a table indexed by value.
type enum interface{ ~int }

func enumString[T enum](names []string, v T) string {
	if int(v) >= 0 && int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%d", int(v))
}

func parseEnum[T enum](names []string, what, s string) (T, error) {
	if i := slices.Index(names, s); i >= 0 {
		return T(i), nil
	}
	return 0, fmt.Errorf("%w: unknown %s %q", ErrMalformedAction, what, s)
}

// Tab is the editor's top-level view.
type Tab int

const (
	TabCanvas Tab = iota
	TabTheme
)

var tabNames = []string{"canvas", "theme"}

func (t Tab) String() string                { return enumString(tabNames, t) }
func (t Tab) MarshalText() ([]byte, error)  { return []byte(t.String()), nil }
func (t *Tab) UnmarshalText(b []byte) error { return unmarshalEnum(t, tabNames, "tab", b) }

// ThemeTab is the asset list shown in the theme tab.
type ThemeTab int

const (
	ThemeTabSwatches ThemeTab = iota
	ThemeTabLayerStyles
	ThemeTabTextStyles
	ThemeTabSymbols
)

var themeTabNames = []string{"swatches", "layerStyles", "textStyles", "symbols"}

func (t ThemeTab) String() string               { return enumString(themeTabNames, t) }
func (t ThemeTab) MarshalText() ([]byte, error) { return []byte(t.String()), nil }
func (t *ThemeTab) UnmarshalText(b []byte) error {
	return unmarshalEnum(t, themeTabNames, "theme tab", b)
}

// InteractionType is what the pointer is currently doing on the canvas.
type InteractionType int

const (
	InteractionNone InteractionType = iota
	InteractionMarquee
	InteractionPanning
	InteractionDrawing
	InteractionMoving
	InteractionScaling
	InteractionRotating
	InteractionEditPath
	InteractionEditText
	InteractionEditBitmap
)

var interactionNames = []string{
	"none", "marquee", "panning", "drawing", "moving", "scaling", "rotating",
	"editPath", "editText", "editBitmap",
}

func (t InteractionType) String() string               { return enumString(interactionNames, t) }
func (t InteractionType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }
func (t *InteractionType) UnmarshalText(b []byte) error {
	return unmarshalEnum(t, interactionNames, "interaction", b)
}

// SetMode says how a numeric setter combines its value with the current one.
type SetMode int

const (
	// Replace installs the value.
	Replace SetMode = iota
	// Adjust adds the value as a delta.
	Adjust
)

var setModeNames = []string{"replace", "adjust"}

func (m SetMode) String() string                { return enumString(setModeNames, m) }
func (m SetMode) MarshalText() ([]byte, error)  { return []byte(m.String()), nil }
func (m *SetMode) UnmarshalText(b []byte) error { return unmarshalEnum(m, setModeNames, "set mode", b) }

// apply combines current with value.
func (m SetMode) apply(current, value float64) float64 {
	if m == Adjust {
		return current + value
	}
	return value
}

// MovePosition places moved layers relative to a destination layer.
type MovePosition int

const (
	Above MovePosition = iota
	Below
	Inside
)

var movePositionNames = []string{"above", "below", "inside"}

func (p MovePosition) String() string               { return enumString(movePositionNames, p) }
func (p MovePosition) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
func (p *MovePosition) UnmarshalText(b []byte) error {
	return unmarshalEnum(p, movePositionNames, "position", b)
}

// ControlPointType names one handle of a curve point.
type ControlPointType int

const (
	ControlPointFrom ControlPointType = iota
	ControlPointTo
)

var controlPointNames = []string{"curveFrom", "curveTo"}

func (c ControlPointType) String() string               { return enumString(controlPointNames, c) }
func (c ControlPointType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }
func (c *ControlPointType) UnmarshalText(b []byte) error {
	return unmarshalEnum(c, controlPointNames, "control point", b)
}

// StyleType selects fills or borders.
type StyleType int

const (
	StyleFill StyleType = iota
	StyleBorder
)

var styleTypeNames = []string{"fill", "border"}

func (s StyleType) String() string                { return enumString(styleTypeNames, s) }
func (s StyleType) MarshalText() ([]byte, error)  { return []byte(s.String()), nil }
func (s *StyleType) UnmarshalText(b []byte) error { return unmarshalEnum(s, styleTypeNames, "style type", b) }

// AlignmentType is an edge or center to align layers to.
type AlignmentType int

const (
	AlignLeft AlignmentType = iota
	AlignCenterHorizontal
	AlignRight
	AlignTop
	AlignCenterVertical
	AlignBottom
)

var alignmentNames = []string{"left", "centerHorizontal", "right", "top", "centerVertical", "bottom"}

func (a AlignmentType) String() string               { return enumString(alignmentNames, a) }
func (a AlignmentType) MarshalText() ([]byte, error) { return []byte(a.String()), nil }
func (a *AlignmentType) UnmarshalText(b []byte) error {
	return unmarshalEnum(a, alignmentNames, "alignment", b)
}

// Axis is a distribution direction.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

var axisNames = []string{"horizontal", "vertical"}

func (a Axis) String() string                { return enumString(axisNames, a) }
func (a Axis) MarshalText() ([]byte, error)  { return []byte(a.String()), nil }
func (a *Axis) UnmarshalText(b []byte) error { return unmarshalEnum(a, axisNames, "axis", b) }

// TextDecoration is underline or strikethrough.
type TextDecoration int

const (
	DecorationNone TextDecoration = iota
	DecorationUnderline
	DecorationStrikethrough
)

var decorationNames = []string{"none", "underline", "strikethrough"}

func (d TextDecoration) String() string               { return enumString(decorationNames, d) }
func (d TextDecoration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }
func (d *TextDecoration) UnmarshalText(b []byte) error {
	return unmarshalEnum(d, decorationNames, "decoration", b)
}

// KeyModifier is a modifier key tracked by the canvas.
type KeyModifier int

const (
	ModifierShift KeyModifier = iota
	ModifierAlt
	ModifierControl
	ModifierMeta
)

var modifierNames = []string{"shiftKey", "altKey", "ctrlKey", "metaKey"}

func (k KeyModifier) String() string               { return enumString(modifierNames, k) }
func (k KeyModifier) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *KeyModifier) UnmarshalText(b []byte) error {
	return unmarshalEnum(k, modifierNames, "key modifier", b)
}

// ZoomTarget is what zoomToFit frames.
type ZoomTarget int

const (
	ZoomSelection ZoomTarget = iota
	ZoomPage
)

var zoomTargetNames = []string{"selection", "page"}

func (z ZoomTarget) String() string               { return enumString(zoomTargetNames, z) }
func (z ZoomTarget) MarshalText() ([]byte, error) { return []byte(z.String()), nil }
func (z *ZoomTarget) UnmarshalText(b []byte) error {
	return unmarshalEnum(z, zoomTargetNames, "zoom target", b)
}

func unmarshalEnum[T enum](dst *T, names []string, what string, b []byte) error {
	v, err := parseEnum[T](names, what, string(b))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
