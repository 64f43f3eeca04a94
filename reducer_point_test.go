package noyastate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/selection"
	"github.com/noya-app/noyastate/sketch"
)

// pixelPoints returns a points layer's points in page pixels, assuming no
// rotation and a page-level layer.
func pixelPoints(l *sketch.Layer) []geometry.Point {
	out := make([]geometry.Point, len(l.Points))
	for i, cp := range l.Points {
		out[i] = geometry.Pt(l.Frame.X+cp.Point.X*l.Frame.Width, l.Frame.Y+cp.Point.Y*l.Frame.Height)
	}
	return out
}

func TestSelectPoint(t *testing.T) {
	s := newTestState(t, rect("r", 0, 0, 100, 50), rect("q", 0, 0, 10, 10))

	next := reduce(s, SelectPoint{LayerID: "r", Index: 1})
	assert.Equal(t, map[string][]int{"r": {1}}, next.SelectedPointLists)

	next = reduce(next, SelectPoint{LayerID: "r", Index: 3, Mode: selection.Intersection})
	assert.Equal(t, []int{1, 3}, next.SelectedPointLists["r"])

	next = reduce(next, SelectPoint{LayerID: "q", Index: 0, Mode: selection.Intersection})
	assert.Len(t, next.SelectedPointLists, 2)

	replaced := reduce(next, SelectPoint{LayerID: "q", Index: 2})
	assert.Equal(t, map[string][]int{"q": {2}}, replaced.SelectedPointLists)

	removed := reduce(next, SelectPoint{LayerID: "q", Index: 0, Mode: selection.Difference})
	assert.NotContains(t, removed.SelectedPointLists, "q")

	assert.Same(t, s, reduce(s, SelectPoint{LayerID: "r", Index: 4}))
	assert.Same(t, s, reduce(s, SelectPoint{LayerID: "nope", Index: 0}))
}

func TestSelectAllPoints(t *testing.T) {
	s := newTestState(t, rect("r", 0, 0, 100, 50))
	assert.Same(t, s, reduce(s, SelectAllPoints{}))

	next := reduce(s, SelectLayer{LayerIDs: IDList{"r"}}, SelectAllPoints{})
	assert.Equal(t, []int{0, 1, 2, 3}, next.SelectedPointLists["r"])
}

func TestSetPointXRefitsFrame(t *testing.T) {
	s := newTestState(t, rect("r", 10, 10, 100, 50))
	s = reduce(s, SelectPoint{LayerID: "r", Index: 1})

	next := reduce(s, SetPointX{Value: 150})
	l := next.Sketch.Pages[0].Layers[0]
	assertRectNear(t, geometry.Rect{X: 10, Y: 10, Width: 150, Height: 50}, l.Frame.Rect())

	want := []geometry.Point{{X: 10, Y: 10}, {X: 160, Y: 10}, {X: 110, Y: 60}, {X: 10, Y: 60}}
	for i, p := range pixelPoints(l) {
		assert.True(t, p.ApproxEqual(want[i], testEpsilon), "point %d = %v, want %v", i, p, want[i])
	}

	t.Run("adjust", func(t *testing.T) {
		next := reduce(s, SetPointY{Value: -10, Mode: Adjust})
		l := next.Sketch.Pages[0].Layers[0]
		assertRectNear(t, geometry.Rect{X: 10, Y: 0, Width: 100, Height: 60}, l.Frame.Rect())
	})

	t.Run("no point selected", func(t *testing.T) {
		plain := newTestState(t, rect("r", 10, 10, 100, 50))
		assert.Same(t, plain, reduce(plain, SetPointX{Value: 150}))
	})
}

func TestDeletePoint(t *testing.T) {
	s := newTestState(t, rect("r", 0, 0, 100, 100))

	t.Run("removes the selected points", func(t *testing.T) {
		next := reduce(s, SelectPoint{LayerID: "r", Index: 2}, DeletePoint{})
		l := next.Sketch.Pages[0].Layers[0]
		assert.Len(t, l.Points, 3)
		assert.Empty(t, next.SelectedPointLists)
	})

	t.Run("too few points removes the layer", func(t *testing.T) {
		next := reduce(s,
			SelectPoint{LayerID: "r", Index: 0},
			SelectPoint{LayerID: "r", Index: 1, Mode: selection.Intersection},
			SelectPoint{LayerID: "r", Index: 2, Mode: selection.Intersection},
			DeletePoint{},
		)
		assert.Empty(t, next.Sketch.Pages[0].Layers)
	})

	t.Run("nothing selected", func(t *testing.T) {
		assert.Same(t, s, reduce(s, DeletePoint{}))
	})
}

func TestSetPointCurveMode(t *testing.T) {
	s := newTestState(t, rect("r", 0, 0, 100, 100))
	s = reduce(s, SelectPoint{LayerID: "r", Index: 1})

	mirrored := reduce(s, SetPointCurveMode{CurveMode: sketch.CurveModeMirrored})
	cp := mirrored.Sketch.Pages[0].Layers[0].Points[1]
	assert.Equal(t, sketch.CurveModeMirrored, cp.CurveMode)
	assert.True(t, cp.HasCurveFrom)
	assert.True(t, cp.HasCurveTo)
	p := cp.Point.Point()
	from := cp.CurveFrom.Point().Sub(p)
	to := cp.CurveTo.Point().Sub(p)
	assert.True(t, from.Add(to).ApproxEqual(geometry.Point{}, testEpsilon), "handles %v and %v are not mirrored", from, to)

	straight := reduce(mirrored, SetPointCurveMode{CurveMode: sketch.CurveModeStraight})
	cp = straight.Sketch.Pages[0].Layers[0].Points[1]
	assert.False(t, cp.HasCurveFrom)
	assert.Equal(t, cp.Point, cp.CurveFrom)

	assert.Same(t, s, reduce(s, SetPointCurveMode{CurveMode: sketch.CurveModeStraight}))
}

func TestInsertPointInPath(t *testing.T) {
	s := newTestState(t, rect("r", 0, 0, 100, 100))

	next := reduce(s, InsertPointInPath{LayerID: "r", SegmentIndex: 0, T: 0.25})
	l := next.Sketch.Pages[0].Layers[0]
	require.Len(t, l.Points, 5)
	assert.True(t, l.Points[1].Point.Point().ApproxEqual(geometry.Pt(0.25, 0), testEpsilon))
	assert.Equal(t, map[string][]int{"r": {1}}, next.SelectedPointLists)
	assertRectNear(t, geometry.Rect{Width: 100, Height: 100}, l.Frame.Rect())

	t.Run("closing segment", func(t *testing.T) {
		next := reduce(s, InsertPointInPath{LayerID: "r", SegmentIndex: 3, T: 0.5})
		l := next.Sketch.Pages[0].Layers[0]
		require.Len(t, l.Points, 5)
		assert.True(t, l.Points[4].Point.Point().ApproxEqual(geometry.Pt(0, 0.5), testEpsilon))
	})

	t.Run("curved segment keeps its shape", func(t *testing.T) {
		oval := sketch.NewOval("o", geometry.Rect{Width: 100, Height: 100})
		oval.ObjectID = "o"
		s := newTestState(t, oval)
		next := reduce(s, InsertPointInPath{LayerID: "o", SegmentIndex: 0, T: 0.5})
		l := next.Sketch.Pages[0].Layers[0]
		require.Len(t, l.Points, 5)
		assert.Equal(t, sketch.CurveModeAsymmetric, l.Points[1].CurveMode)
		assertRectNear(t, geometry.Rect{Width: 100, Height: 100}, l.Frame.Rect())
	})

	t.Run("invalid segment", func(t *testing.T) {
		assert.Same(t, s, reduce(s, InsertPointInPath{LayerID: "r", SegmentIndex: 4, T: 0.5}))
	})
}

func TestSetIsClosedAndControlPoint(t *testing.T) {
	s := newTestState(t, rect("r", 0, 0, 100, 100))

	open := reduce(s, SetIsClosed{LayerID: "r", Closed: false})
	assert.False(t, open.Sketch.Pages[0].Layers[0].IsClosed)
	assert.Same(t, open, reduce(open, SetIsClosed{LayerID: "r", Closed: false}))

	next := reduce(s, SelectControlPoint{LayerID: "r", PointIndex: 2, ControlPointType: ControlPointTo})
	require.NotNil(t, next.SelectedControlPoint)
	assert.Equal(t, ControlPointRef{LayerID: "r", PointIndex: 2, ControlPointType: ControlPointTo}, *next.SelectedControlPoint)
	assert.Equal(t, map[string][]int{"r": {2}}, next.SelectedPointLists)
	assert.Same(t, next, reduce(next, SelectControlPoint{LayerID: "r", PointIndex: 2, ControlPointType: ControlPointTo}))
}
