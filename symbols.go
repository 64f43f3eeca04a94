package noyastate

import (
	"slices"
	"strconv"

	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

// maxSymbolDepth bounds nested instance resolution. A master that contains
// an instance of itself resolves to nothing at this depth.
const maxSymbolDepth = 16

// GetSymbols returns every symbol master in the document.
func GetSymbols(s *ApplicationState) []*sketch.Layer {
	return s.Sketch.SymbolMasters()
}

// GetSymbolMaster returns the master with the given symbol ID.
func GetSymbolMaster(s *ApplicationState, symbolID string) (*sketch.Layer, bool) {
	return s.Sketch.SymbolMaster(symbolID)
}

// ResolveSymbolInstance expands an instance into a group holding a copy of
// its master's layers with every override applied, nested instances
// expanded the same way. The group takes the instance's ID, frame and
// transform. ok is false when the instance cannot be rendered: its master
// is missing or nesting is too deep.
func ResolveSymbolInstance(file *sketch.File, instance *sketch.Layer) (*sketch.Layer, bool) {
	return resolveInstance(file, instance, 0, true)
}

func resolveInstance(file *sketch.File, instance *sketch.Layer, depth int, recursive bool) (*sketch.Layer, bool) {
	if instance == nil || instance.Class != sketch.KindSymbolInstance || depth >= maxSymbolDepth {
		return nil, false
	}
	master, ok := file.SymbolMaster(instance.SymbolID)
	if !ok {
		Logger().Warn("noyastate: unresolved symbol", "layerId", instance.ObjectID, "symbolId", instance.SymbolID)
		return nil, false
	}

	group := instance.ShallowClone()
	group.Class = sketch.KindGroup
	group.SymbolID = ""
	group.OverrideValues = nil
	group.Layers = make([]*sketch.Layer, len(master.Layers))
	for i, child := range master.Layers {
		group.Layers[i] = child.DeepClone()
	}

	for _, ov := range instance.OverrideValues {
		applyOverride(file, group, ov)
	}

	if recursive {
		group.Layers = expandNested(file, group.Layers, depth)
	}
	return group, true
}

// expandNested replaces nested instances with their resolved groups and
// drops the ones that cannot be resolved.
func expandNested(file *sketch.File, layers []*sketch.Layer, depth int) []*sketch.Layer {
	out := make([]*sketch.Layer, 0, len(layers))
	for _, l := range layers {
		switch {
		case l.Class == sketch.KindSymbolInstance:
			resolved, ok := resolveInstance(file, l, depth+1, true)
			if !ok {
				continue
			}
			out = append(out, resolved)
		case len(l.Layers) > 0:
			l.Layers = expandNested(file, l.Layers, depth)
			out = append(out, l)
		default:
			out = append(out, l)
		}
	}
	return out
}

// applyOverride applies one override to the resolved copy under group.
// Overrides addressing a nested instance are handed down to it; overrides
// whose target does not exist are ignored.
func applyOverride(file *sketch.File, group *sketch.Layer, ov sketch.OverrideValue) {
	path, prop, ok := sketch.ParseOverrideName(ov.OverrideName)
	if !ok {
		return
	}
	target, ok := findOwnedLayer(group, path[0])
	if !ok {
		return
	}
	if len(path) > 1 {
		if target.Class != sketch.KindSymbolInstance {
			return
		}
		nested := sketch.OverrideValue{OverrideName: sketch.OverrideName(path[1:], prop), Value: ov.Value}
		target.OverrideValues = slices.DeleteFunc(target.OverrideValues, func(v sketch.OverrideValue) bool {
			return v.OverrideName == nested.OverrideName
		})
		target.OverrideValues = append(target.OverrideValues, nested)
		return
	}
	applyProperty(file, target, prop, ov.Value)
}

// findOwnedLayer finds a descendant of root without entering nested
// instances, which only resolve later.
func findOwnedLayer(root *sketch.Layer, id string) (*sketch.Layer, bool) {
	return sketch.Find(root, func(l *sketch.Layer) bool { return l.ObjectID == id }, tree.ExcludeRoot())
}

func applyProperty(file *sketch.File, l *sketch.Layer, prop sketch.OverrideProperty, value string) {
	switch prop {
	case sketch.OverrideStringValue:
		if l.Class == sketch.KindText && l.AttributedString != nil {
			l.AttributedString = l.AttributedString.ReplaceRange(0, l.AttributedString.Len(), value)
		}
	case sketch.OverrideSymbolID:
		if l.Class == sketch.KindSymbolInstance {
			l.SymbolID = value
		}
	case sketch.OverrideLayerStyle:
		if shared, ok := findSharedStyle(file.Document.LayerStyles.Objects, value); ok {
			l.Style = shared.Value.Clone()
			l.SharedStyleID = shared.ObjectID
		}
	case sketch.OverrideTextStyle:
		if shared, ok := findSharedStyle(file.Document.LayerTextStyles.Objects, value); ok && l.Class == sketch.KindText {
			applyTextSharedStyle(l, shared)
		}
	case sketch.OverrideImage:
		if l.Class == sketch.KindBitmap && l.Image != nil {
			l.Image.Ref = value
		}
	case sketch.OverrideIsVisible:
		if visible, err := strconv.ParseBool(value); err == nil {
			l.IsVisible = visible
		}
	}
}

func findSharedStyle(styles []sketch.SharedStyle, id string) (sketch.SharedStyle, bool) {
	for _, s := range styles {
		if s.ObjectID == id && s.Value != nil {
			return s, true
		}
	}
	return sketch.SharedStyle{}, false
}

// applyTextSharedStyle restyles an owned text layer with a shared text style.
func applyTextSharedStyle(l *sketch.Layer, shared sketch.SharedStyle) {
	style := shared.Value.Clone()
	if l.Style != nil {
		style.ObjectID = l.Style.ObjectID
	}
	l.Style = style
	l.SharedStyleID = shared.ObjectID
	if style.TextStyle != nil && l.AttributedString != nil {
		attrs := style.TextStyle.EncodedAttributes
		l.AttributedString = l.AttributedString.ApplyAttributes(0, l.AttributedString.Len(), func(a *sketch.StringAttributes) {
			*a = attrs.Clone()
		})
	}
}
