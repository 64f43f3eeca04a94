package noyastate

import (
	"github.com/noya-app/noyastate/sketch"
)

// duplicateLayers deep-copies layers with new IDs. Masters copied together
// with instances of them are relinked: those instances point at the new
// masters and their override names at the new nested IDs.
func duplicateLayers(layers []*sketch.Layer) []*sketch.Layer {
	ids := make(map[string]string)
	symbols := make(map[string]string)
	out := make([]*sketch.Layer, len(layers))
	for i, l := range layers {
		out[i] = sketch.CopyWithNewIDs(l, nil)
		recordIDs(l, out[i], ids, symbols)
	}
	for _, l := range out {
		sketch.Visit(l, visitAll(func(c *sketch.Layer) {
			if c.Class != sketch.KindSymbolInstance {
				return
			}
			newSymbol, ok := symbols[c.SymbolID]
			if !ok {
				return
			}
			c.SymbolID = newSymbol
			for j, ov := range c.OverrideValues {
				c.OverrideValues[j].OverrideName = remapOverrideName(ov.OverrideName, ids)
			}
		}))
	}
	return out
}

func recordIDs(orig, dup *sketch.Layer, ids, symbols map[string]string) {
	ids[orig.ObjectID] = dup.ObjectID
	if orig.Class == sketch.KindSymbolMaster {
		symbols[orig.SymbolID] = dup.SymbolID
	}
	for i, child := range orig.Layers {
		recordIDs(child, dup.Layers[i], ids, symbols)
	}
}

func remapOverrideName(name string, ids map[string]string) string {
	path, prop, ok := sketch.ParseOverrideName(name)
	if !ok {
		return name
	}
	for i, id := range path {
		if mapped, ok := ids[id]; ok {
			path[i] = mapped
		}
	}
	return sketch.OverrideName(path, prop)
}
