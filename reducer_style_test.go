package noyastate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noya-app/noyastate/sketch"
)

func styleOf(s *ApplicationState) *sketch.Style {
	return s.Sketch.Pages[0].Layers[0].Style
}

func TestFillsAndBorders(t *testing.T) {
	s := newTestState(t, rect("a", 0, 0, 10, 10))
	assert.Same(t, s, reduce(s, AddNewFill{}), "nothing selected")

	s = reduce(s, SelectLayer{LayerIDs: IDList{"a"}})
	require.Len(t, styleOf(s).Fills, 1)

	red := sketch.Color{Red: 1, Alpha: 1}
	added := reduce(s, AddNewFill{}, SetFillColor{Index: 1, Color: red})
	require.Len(t, styleOf(added).Fills, 2)
	assert.Len(t, styleOf(s).Fills, 1, "base state must not change")

	moved := reduce(added, MoveFill{From: 1, To: 0})
	assert.Equal(t, red, styleOf(moved).Fills[0].Color)
	assert.Same(t, added, reduce(added, MoveFill{From: 0, To: 5}))

	assert.Empty(t, styleOf(reduce(s, DeleteFill{Index: 0})).Fills)
	assert.Same(t, s, reduce(s, DeleteFill{Index: 3}))

	tests := []struct {
		name   string
		action SetBorderWidth
		want   float64
	}{
		{"replace", SetBorderWidth{Value: 4}, 4},
		{"adjust", SetBorderWidth{Value: 2, Mode: Adjust}, 3},
		{"clamped at zero", SetBorderWidth{Value: -5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := reduce(s, tt.action)
			assert.InDelta(t, tt.want, styleOf(next).Borders[0].Thickness, testEpsilon)
		})
	}
}

func TestSetFillTypeGradient(t *testing.T) {
	s := newTestState(t, rect("a", 0, 0, 10, 10))
	s = reduce(s, SelectLayer{LayerIDs: IDList{"a"}})

	next := reduce(s, SetFillType{Index: 0, Type: sketch.FillTypeGradient})
	fill := styleOf(next).Fills[0]
	assert.Equal(t, sketch.FillTypeGradient, fill.FillType)
	assert.GreaterOrEqual(t, len(fill.Gradient.Stops), minGradientStops)

	radial := reduce(s, SetGradientType{Index: 0, Type: sketch.GradientRadial})
	fill = styleOf(radial).Fills[0]
	assert.Equal(t, sketch.FillTypeGradient, fill.FillType)
	assert.Equal(t, sketch.GradientRadial, fill.Gradient.GradientType)
}

func TestGradientStops(t *testing.T) {
	s := newTestState(t, rect("a", 0, 0, 10, 10))
	s = reduce(s,
		SelectLayer{LayerIDs: IDList{"a"}},
		SetFillType{Index: 0, Type: sketch.FillTypeGradient},
		AddGradientStop{Index: 0, Color: sketch.Color{Blue: 1, Alpha: 1}, Position: 0.5},
	)
	stops := styleOf(s).Fills[0].Gradient.Stops
	require.Len(t, stops, 3)
	assert.InDelta(t, 0.5, stops[1].Position, testEpsilon)

	assert.Same(t, s, reduce(s, DeleteGradientStop{}), "no gradient selected")

	s = reduce(s, SetSelectedGradient{Ref: &GradientRef{LayerID: "a", FillIndex: 0, StopIndex: 0}})
	require.NotNil(t, s.SelectedGradient)

	t.Run("position keeps stops sorted", func(t *testing.T) {
		next := reduce(s, SetGradientStopPosition{Value: 0.75})
		stops := styleOf(next).Fills[0].Gradient.Stops
		for i := 1; i < len(stops); i++ {
			assert.LessOrEqual(t, stops[i-1].Position, stops[i].Position)
		}
		assert.Equal(t, 1, next.SelectedGradient.StopIndex)
		assert.InDelta(t, 0.75, stops[1].Position, testEpsilon)
	})

	t.Run("delete stops at two", func(t *testing.T) {
		next := reduce(s, DeleteGradientStop{})
		assert.Len(t, styleOf(next).Fills[0].Gradient.Stops, 2)
		assert.Same(t, next, reduce(next, DeleteGradientStop{}))
	})

	t.Run("end editing", func(t *testing.T) {
		next := reduce(s, SetSelectedGradient{})
		assert.Nil(t, next.SelectedGradient)
		assert.Same(t, next, reduce(next, SetSelectedGradient{}))
	})

	assert.Same(t, s, reduce(s, SetSelectedGradient{Ref: &GradientRef{LayerID: "missing"}}))
}
