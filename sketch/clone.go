package sketch

import "slices"

// ShallowClone copies the layer and every field it owns except child
// layers, which stay shared with l. This is the unit of copy-on-write.
func (l *Layer) ShallowClone() *Layer {
	out := *l
	if l.Layers != nil {
		out.Layers = slices.Clone(l.Layers)
	}
	out.Points = slices.Clone(l.Points)
	out.OverrideValues = slices.Clone(l.OverrideValues)
	out.ExportOptions.ExportFormats = slices.Clone(l.ExportOptions.ExportFormats)
	out.Style = l.Style.Clone()
	out.AttributedString = l.AttributedString.Clone()
	if l.BackgroundColor != nil {
		c := *l.BackgroundColor
		out.BackgroundColor = &c
	}
	if l.Image != nil {
		img := *l.Image
		out.Image = &img
	}
	return &out
}

// DeepClone copies the whole subtree, keeping every ID.
func (l *Layer) DeepClone() *Layer {
	out := l.ShallowClone()
	for i, child := range out.Layers {
		out.Layers[i] = child.DeepClone()
	}
	return out
}

// CopyWithNewIDs deep-copies the subtree and gives every layer, style and
// export format a new ID from gen. Masters get a new symbol ID too, so a
// copied master is never linked to the original's instances; instances keep
// pointing at their master.
func CopyWithNewIDs(l *Layer, gen IDGenerator) *Layer {
	if gen == nil {
		gen = NewObjectID
	}
	out := l.ShallowClone()
	out.ObjectID = gen()
	if out.Style != nil {
		out.Style.ObjectID = gen()
	}
	for i := range out.ExportOptions.ExportFormats {
		out.ExportOptions.ExportFormats[i].ObjectID = gen()
	}
	if out.Class == KindSymbolMaster {
		out.SymbolID = gen()
	}
	for i, child := range out.Layers {
		out.Layers[i] = CopyWithNewIDs(child, gen)
	}
	return out
}
