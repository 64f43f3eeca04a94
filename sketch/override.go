package sketch

import "strings"

// OverrideProperty is the property an override value replaces.
type OverrideProperty string

const (
	OverrideStringValue OverrideProperty = "stringValue"
	OverrideSymbolID    OverrideProperty = "symbolID"
	OverrideLayerStyle  OverrideProperty = "layerStyle"
	OverrideTextStyle   OverrideProperty = "textStyle"
	OverrideImage       OverrideProperty = "image"
	OverrideIsVisible   OverrideProperty = "isVisible"
)

// OverrideName builds an override name from the object IDs leading from the
// master to the target layer (one per nesting level) and a property:
// "outerID/innerID_stringValue".
func OverrideName(path []string, prop OverrideProperty) string {
	return strings.Join(path, "/") + "_" + string(prop)
}

// ParseOverrideName splits an override name into its layer ID path and
// property. ok is false for names without a property suffix.
func ParseOverrideName(name string) (path []string, prop OverrideProperty, ok bool) {
	i := strings.LastIndexByte(name, '_')
	if i <= 0 || i == len(name)-1 {
		return nil, "", false
	}
	ids := strings.Split(name[:i], "/")
	for _, id := range ids {
		if id == "" {
			return nil, "", false
		}
	}
	return ids, OverrideProperty(name[i+1:]), true
}

// OverrideValueFor returns the value of the named override.
func (l *Layer) OverrideValueFor(name string) (string, bool) {
	for _, ov := range l.OverrideValues {
		if ov.OverrideName == name {
			return ov.Value, true
		}
	}
	return "", false
}
