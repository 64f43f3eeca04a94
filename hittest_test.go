package noyastate

import (
	"slices"
	"testing"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
)

// hitTestState lays out, bottom to top: a square, a rotated bar, a group, an
// artboard and a hidden square over the first one.
func hitTestState(t *testing.T) *ApplicationState {
	t.Helper()
	bar := rect("bar", 0, 200, 100, 20)
	bar.Rotation = 90
	board := sketch.NewArtboard("Board", geometry.Rect{X: 400, Y: 0, Width: 200, Height: 200})
	board.ObjectID = "board"
	board.Layers = []*sketch.Layer{rect("inner", 10, 10, 20, 20)}
	hidden := rect("hidden", 0, 0, 100, 100)
	hidden.IsVisible = false
	return newTestState(t,
		rect("back", 0, 0, 100, 100),
		bar,
		group("g", 200, 0, 100, 100, rect("child", 0, 0, 50, 50)),
		board,
		hidden,
	)
}

func hitID(l *sketch.Layer) string {
	if l == nil {
		return ""
	}
	return l.ObjectID
}

func TestGetLayerAtPoint(t *testing.T) {
	s := hitTestState(t)
	tests := []struct {
		name  string
		point geometry.Point
		opts  LayerTraversalOptions
		want  string
	}{
		{"plain layer", geometry.Pt(50, 50), LayerTraversalOptions{}, "back"},
		{"hidden layer when included", geometry.Pt(50, 50), LayerTraversalOptions{IncludeHiddenLayers: true}, "hidden"},
		{"group is returned whole", geometry.Pt(210, 10), LayerTraversalOptions{}, "g"},
		{"click through groups", geometry.Pt(210, 10), LayerTraversalOptions{ClickThroughGroups: true}, "child"},
		{"empty part of a group", geometry.Pt(280, 80), LayerTraversalOptions{}, ""},
		{"artboard child", geometry.Pt(415, 15), LayerTraversalOptions{}, "inner"},
		{"artboard background", geometry.Pt(550, 150), LayerTraversalOptions{}, ""},
		{"artboard background when included", geometry.Pt(550, 150), LayerTraversalOptions{IncludeArtboardLayers: true}, "board"},
		{"rotated layer", geometry.Pt(50, 170), LayerTraversalOptions{}, "bar"},
		{"outside rotated layer", geometry.Pt(10, 205), LayerTraversalOptions{}, ""},
		{"empty canvas", geometry.Pt(-50, -50), LayerTraversalOptions{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hitID(GetLayerAtPoint(s, tt.point, tt.opts)); got != tt.want {
				t.Errorf("GetLayerAtPoint(%v) = %q, want %q", tt.point, got, tt.want)
			}
		})
	}
}

func TestGetLayerAtPointFrontToBack(t *testing.T) {
	board := sketch.NewArtboard("Board", geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	board.ObjectID = "board"
	s := newTestState(t,
		rect("under", 0, 0, 100, 100),
		board,
		group("outer", 200, 0, 100, 100, group("inner", 0, 0, 100, 100, rect("leaf", 0, 0, 100, 100))),
		rect("top", 250, 50, 10, 10),
	)
	tests := []struct {
		name  string
		point geometry.Point
		opts  LayerTraversalOptions
		want  string
	}{
		{"artboard occludes layers below", geometry.Pt(50, 50), LayerTraversalOptions{}, ""},
		{"nested groups return the outermost", geometry.Pt(210, 10), LayerTraversalOptions{}, "outer"},
		{"click through nested groups", geometry.Pt(210, 10), LayerTraversalOptions{ClickThroughGroups: true}, "leaf"},
		{"later sibling wins", geometry.Pt(255, 55), LayerTraversalOptions{ClickThroughGroups: true}, "top"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hitID(GetLayerAtPoint(s, tt.point, tt.opts)); got != tt.want {
				t.Errorf("GetLayerAtPoint(%v) = %q, want %q", tt.point, got, tt.want)
			}
		})
	}
}

func TestGetLayerAtPointLocked(t *testing.T) {
	locked := rect("locked", 0, 0, 10, 10)
	locked.IsLocked = true
	s := newTestState(t, rect("under", 0, 0, 10, 10), locked)

	if got := hitID(GetLayerAtPoint(s, geometry.Pt(5, 5), LayerTraversalOptions{})); got != "under" {
		t.Errorf("locked layer should be skipped, got %q", got)
	}
	if got := hitID(GetLayerAtPoint(s, geometry.Pt(5, 5), LayerTraversalOptions{IncludeLockedLayers: true})); got != "locked" {
		t.Errorf("IncludeLockedLayers: got %q, want %q", got, "locked")
	}
}

func TestGetLayersInRect(t *testing.T) {
	s := hitTestState(t)
	tests := []struct {
		name string
		rect geometry.Rect
		mode MarqueeMode
		want []string
	}{
		{"contains", geometry.Rect{X: -10, Y: -10, Width: 120, Height: 120}, MarqueeContains, []string{"back"}},
		{"intersects group", geometry.Rect{X: 195, Y: -5, Width: 10, Height: 10}, MarqueeIntersects, []string{"g"}},
		{"artboard children", geometry.Rect{X: 405, Y: 5, Width: 30, Height: 30}, MarqueeIntersects, []string{"inner"}},
		{"whole artboard", geometry.Rect{X: 390, Y: -10, Width: 300, Height: 300}, MarqueeContains, []string{"board"}},
		{"nothing", geometry.Rect{X: -100, Y: -100, Width: 10, Height: 10}, MarqueeIntersects, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, l := range GetLayersInRect(s, tt.rect, tt.mode, LayerTraversalOptions{}) {
				got = append(got, l.ObjectID)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("GetLayersInRect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetBoundingRect(t *testing.T) {
	g := group("g", 100, 100, 50, 50, rect("a", 0, 0, 10, 10), rect("b", 40, 40, 10, 10))
	s := newTestState(t, g, rect("c", 0, 0, 10, 10))
	page := s.Sketch.Pages[0]

	tests := []struct {
		name string
		ids  []string
		opts BoundingRectOptions
		want geometry.Rect
	}{
		{"single", []string{"c"}, BoundingRectOptions{}, geometry.Rect{Width: 10, Height: 10}},
		{"nested layer in page space", []string{"b"}, BoundingRectOptions{}, geometry.Rect{X: 140, Y: 140, Width: 10, Height: 10}},
		{"union", []string{"a", "c"}, BoundingRectOptions{}, geometry.Rect{Width: 110, Height: 110}},
		{"group children only", []string{"g"}, BoundingRectOptions{GroupPolicy: GroupChildrenOnly}, geometry.Rect{X: 100, Y: 100, Width: 50, Height: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetBoundingRect(page, tt.ids, tt.opts)
			if !ok {
				t.Fatal("GetBoundingRect() ok = false")
			}
			if !got.ApproxEqual(tt.want, testEpsilon) {
				t.Errorf("GetBoundingRect() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, ok := GetBoundingRect(page, []string{"missing"}, BoundingRectOptions{}); ok {
		t.Error("GetBoundingRect(missing) ok = true")
	}
}

func TestGetLayerTransformRotatesAboutCenter(t *testing.T) {
	l := rect("r", 10, 10, 20, 10)
	l.Rotation = 180
	m := GetLayerTransform(geometry.Identity(), l)

	got := layerBounds(geometry.Identity(), l)
	if !got.ApproxEqual(geometry.Rect{X: 10, Y: 10, Width: 20, Height: 10}, testEpsilon) {
		t.Errorf("bounds of a half-turned layer = %+v", got)
	}
	if p := m.TransformPoint(geometry.Pt(0, 0)); !p.ApproxEqual(geometry.Pt(30, 20), testEpsilon) {
		t.Errorf("origin maps to %v, want (30, 20)", p)
	}
}
