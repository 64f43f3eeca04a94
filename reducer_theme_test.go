package noyastate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noya-app/noyastate/selection"
	"github.com/noya-app/noyastate/sketch"
)

func swatchNames(s *ApplicationState) []string {
	var names []string
	for _, sw := range s.Sketch.Document.SharedSwatches.Objects {
		names = append(names, sw.Name)
	}
	return names
}

func TestSwatches(t *testing.T) {
	s := newTestState(t)
	blue := sketch.Color{Blue: 1, Alpha: 1}

	s = reduce(s, AddSwatch{Color: blue})
	swatches := s.Sketch.Document.SharedSwatches.Objects
	require.Len(t, swatches, 1)
	id := swatches[0].ObjectID
	assert.Equal(t, "Color", swatches[0].Name)
	assert.Equal(t, []string{id}, s.SelectedSwatchIDs)

	renamed := reduce(s, SetSwatchName{ID: id, Name: "Ocean"})
	assert.Equal(t, []string{"Ocean"}, swatchNames(renamed))
	assert.Same(t, renamed, reduce(renamed, SetSwatchName{ID: id, Name: "Ocean"}))
	assert.Same(t, s, reduce(s, SetSwatchColor{ID: "missing", Color: blue}))

	dup := reduce(renamed, DuplicateSwatches{})
	assert.Equal(t, []string{"Ocean", "Ocean"}, swatchNames(dup))
	require.Len(t, dup.SelectedSwatchIDs, 1)
	assert.NotEqual(t, id, dup.SelectedSwatchIDs[0])
	assert.Len(t, renamed.Sketch.Document.SharedSwatches.Objects, 1)

	removed := reduce(dup, RemoveSwatches{IDs: IDList{id}})
	assert.Len(t, removed.Sketch.Document.SharedSwatches.Objects, 1)
	assert.Same(t, removed, reduce(removed, RemoveSwatches{IDs: IDList{id}}))
}

func TestThemeItemName(t *testing.T) {
	tests := []struct {
		name, group, want string
	}{
		{"Red", "Brand", "Brand/Red"},
		{"Old/Red", "Brand", "Brand/Red"},
		{"Old/Red", "", "Red"},
		{"Red", "/Brand/Primary/", "Brand/Primary/Red"},
	}
	for _, tt := range tests {
		if got := themeItemName(tt.name, tt.group); got != tt.want {
			t.Errorf("themeItemName(%q, %q) = %q, want %q", tt.name, tt.group, got, tt.want)
		}
	}
}

func TestGroupThemeItems(t *testing.T) {
	s := reduce(newTestState(t), AddSwatch{Name: "Red"}, AddSwatch{Name: "Blue"})
	first := s.Sketch.Document.SharedSwatches.Objects[0].ObjectID

	next := reduce(s, GroupThemeItems{Tab: ThemeTabSwatches, IDs: IDList{first}, GroupName: "Brand"})
	assert.Equal(t, []string{"Brand/Red", "Blue"}, swatchNames(next))

	selected := reduce(s, GroupThemeItems{Tab: ThemeTabSwatches, GroupName: "Brand"})
	assert.Equal(t, []string{"Red", "Brand/Blue"}, swatchNames(selected))

	assert.Same(t, next, reduce(next, GroupThemeItems{Tab: ThemeTabSwatches, IDs: IDList{first}, GroupName: "Brand"}))
}

func TestSelectThemeItems(t *testing.T) {
	s := newTestState(t)
	next := reduce(s, SelectThemeItems{Tab: ThemeTabLayerStyles, IDs: IDList{"x", "y"}})
	assert.Equal(t, []string{"x", "y"}, next.SelectedLayerStyleIDs)
	assert.Empty(t, next.SelectedSwatchIDs)

	next = reduce(next, SelectThemeItems{Tab: ThemeTabLayerStyles, IDs: IDList{"x"}, Mode: selection.Difference})
	assert.Equal(t, []string{"y"}, next.SelectedLayerStyleIDs)
	assert.Same(t, next, reduce(next, SelectThemeItems{Tab: ThemeTabLayerStyles, IDs: IDList{"y"}}))

	tab := reduce(s, SetThemeTab{Tab: ThemeTabTextStyles})
	assert.Equal(t, ThemeTabTextStyles, tab.SelectedThemeTab)
	assert.Same(t, tab, reduce(tab, SetThemeTab{Tab: ThemeTabTextStyles}))
}

func TestSharedLayerStyles(t *testing.T) {
	red := sketch.Color{Red: 1, Alpha: 1}
	s := newTestState(t, rect("a", 0, 0, 10, 10), rect("b", 20, 0, 10, 10))
	s = reduce(s, SelectLayer{LayerIDs: IDList{"a"}}, AddLayerStyle{Name: "Card"})

	styles := s.Sketch.Document.LayerStyles.Objects
	require.Len(t, styles, 1)
	id := styles[0].ObjectID
	assert.Equal(t, "Card", styles[0].Name)
	assert.Equal(t, []string{id}, s.SelectedLayerStyleIDs)
	a := s.Sketch.Pages[0].Layers[0]
	assert.Equal(t, id, a.SharedStyleID)
	assert.NotEqual(t, styles[0].Value.ObjectID, a.Style.ObjectID)

	s = reduce(s, SetLayerSharedStyle{LayerIDs: IDList{"b"}, SharedStyleID: id})
	assert.Equal(t, id, s.Sketch.Pages[0].Layers[1].SharedStyleID)

	t.Run("update propagates", func(t *testing.T) {
		next := reduce(s, SetFillColor{Index: 0, Color: red}, UpdateLayerStyle{ID: id})
		assert.Equal(t, red, next.Sketch.Document.LayerStyles.Objects[0].Value.Fills[0].Color)
		assert.Equal(t, red, next.Sketch.Pages[0].Layers[1].Style.Fills[0].Color)
	})

	t.Run("rename", func(t *testing.T) {
		next := reduce(s, SetLayerStyleName{ID: id, Name: "Panel"})
		assert.Equal(t, "Panel", next.Sketch.Document.LayerStyles.Objects[0].Name)
		assert.Same(t, s, reduce(s, SetLayerStyleName{ID: "missing", Name: "Panel"}))
	})

	t.Run("remove unlinks layers", func(t *testing.T) {
		next := reduce(s, RemoveLayerStyles{})
		assert.Empty(t, next.Sketch.Document.LayerStyles.Objects)
		assert.Empty(t, next.SelectedLayerStyleIDs)
		for _, l := range next.Sketch.Pages[0].Layers {
			assert.Empty(t, l.SharedStyleID)
		}
	})

	t.Run("unlink one layer", func(t *testing.T) {
		next := reduce(s, SetLayerSharedStyle{LayerIDs: IDList{"b"}})
		assert.Empty(t, next.Sketch.Pages[0].Layers[1].SharedStyleID)
		assert.Equal(t, id, next.Sketch.Pages[0].Layers[0].SharedStyleID)
	})
}

func TestSharedTextStyles(t *testing.T) {
	s := newTestState(t, rect("a", 0, 0, 10, 10), newTextLayer("t", "Hello", 0, 20))
	s = reduce(s, AddTextStyle{})

	styles := s.Sketch.Document.LayerTextStyles.Objects
	require.Len(t, styles, 1)
	assert.Equal(t, "Text Style", styles[0].Name)
	require.NotNil(t, styles[0].Value.TextStyle)
	id := styles[0].ObjectID

	assert.Same(t, s, reduce(s, SetTextSharedStyle{LayerIDs: IDList{"a"}, SharedStyleID: id}), "text styles only apply to text")

	next := reduce(s, SetTextSharedStyle{LayerIDs: IDList{"t"}, SharedStyleID: id})
	assert.Equal(t, id, next.Sketch.Pages[0].Layers[1].SharedStyleID)

	removed := reduce(next, RemoveTextStyles{IDs: IDList{id}})
	assert.Empty(t, removed.Sketch.Document.LayerTextStyles.Objects)
	assert.Empty(t, removed.Sketch.Pages[0].Layers[1].SharedStyleID)
}
