package sketch

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/tree"
)

func TestShallowCloneSharesOnlyChildren(t *testing.T) {
	child := NewRectangle("r", geometry.Rect{Width: 10, Height: 10})
	g := NewGroup("g", geometry.Rect{Width: 10, Height: 10}, []*Layer{child})
	g.ExportOptions.ExportFormats = []ExportFormat{{Scale: 1}}

	c := g.ShallowClone()
	c.Name = "changed"
	c.Style.Fills = append(c.Style.Fills, NewFill(Black))
	c.Layers = append(c.Layers, NewOval("o", geometry.Rect{}))
	c.ExportOptions.ExportFormats[0].Scale = 2

	if g.Name != "g" || len(g.Style.Fills) != 0 || len(g.Layers) != 1 || g.ExportOptions.ExportFormats[0].Scale != 1 {
		t.Error("ShallowClone shares state with the original")
	}
	if c.Layers[0] != child {
		t.Error("ShallowClone should share child layers")
	}
}

func TestCopyWithNewIDs(t *testing.T) {
	text := NewText("t", geometry.Rect{Width: 10, Height: 10}, "hi")
	master := NewSymbolMaster("m", geometry.Rect{Width: 100, Height: 100}, []*Layer{text})
	inst := NewSymbolInstance(master, geometry.Rect{Width: 100, Height: 100})
	g := NewGroup("g", geometry.Rect{}, []*Layer{master, inst})

	seen := map[string]bool{}
	Visit(g, visitAll(func(l *Layer) {
		seen[l.ObjectID] = true
		seen[l.Style.ObjectID] = true
	}))

	cp := CopyWithNewIDs(g, Sequential("id-"))
	Visit(cp, visitAll(func(l *Layer) {
		if seen[l.ObjectID] || seen[l.Style.ObjectID] {
			t.Errorf("layer %q kept an old ID", l.Name)
		}
	}))
	if cp.Layers[0].SymbolID == master.SymbolID {
		t.Error("copied master must get a new symbol ID")
	}
	if cp.Layers[1].SymbolID != master.SymbolID {
		t.Error("copied instance must keep its symbol ID")
	}
}

func TestChildren(t *testing.T) {
	r := NewRectangle("r", geometry.Rect{})
	r.Layers = []*Layer{NewOval("stray", geometry.Rect{})}
	if Children(r) != nil {
		t.Error("leaf kinds have no children")
	}
	if Children(nil) != nil {
		t.Error("nil layer has no children")
	}
}

func TestPointStringJSON(t *testing.T) {
	b, err := json.Marshal(StraightPoint(0.5, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"point":"{0.5, 1}"`) {
		t.Errorf("marshal = %s", b)
	}
	var p CurvePoint
	if err := json.Unmarshal(b, &p); err != nil {
		t.Fatal(err)
	}
	if p.Point.X != 0.5 || p.Point.Y != 1 {
		t.Errorf("unmarshal = %+v", p.Point)
	}

	tests := []string{"0.5, 1", "{0.5}", "{a, b}", ""}
	for _, in := range tests {
		if _, err := ParsePointString(in); !errors.Is(err, ErrMalformedPoint) {
			t.Errorf("ParsePointString(%q) err = %v", in, err)
		}
	}
}

func TestKindJSON(t *testing.T) {
	var l Layer
	if err := json.Unmarshal([]byte(`{"_class":"symbolInstance","do_objectID":"x"}`), &l); err != nil {
		t.Fatal(err)
	}
	if l.Class != KindSymbolInstance {
		t.Errorf("Class = %v", l.Class)
	}
	err := json.Unmarshal([]byte(`{"_class":"spaceship"}`), &l)
	if !errors.Is(err, ErrUnknownClass) {
		t.Errorf("unknown class err = %v", err)
	}
}

func TestDecodeEncode(t *testing.T) {
	f := NewFile()
	f.Pages[0].Layers = append(f.Pages[0].Layers, NewRectangle("r", geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}))
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	r := got.Pages[0].Layers[0]
	if r.Class != KindRectangle || r.Frame.Rect() != (geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}) {
		t.Errorf("decoded layer = %+v", r)
	}

	_, err = Decode(strings.NewReader(`{"pages":[]}`))
	if !errors.Is(err, ErrNoPages) {
		t.Errorf("Decode(no pages) err = %v", err)
	}
}

func TestParseOverrideName(t *testing.T) {
	tests := []struct {
		in   string
		path []string
		prop OverrideProperty
		ok   bool
	}{
		{"body_stringValue", []string{"body"}, OverrideStringValue, true},
		{"A/B_symbolID", []string{"A", "B"}, OverrideSymbolID, true},
		{"UUID-WITH_UNDERSCORE_image", []string{"UUID-WITH_UNDERSCORE"}, OverrideImage, true},
		{"noproperty", nil, "", false},
		{"_stringValue", nil, "", false},
		{"A//B_stringValue", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			path, prop, ok := ParseOverrideName(tt.in)
			if ok != tt.ok || prop != tt.prop || strings.Join(path, "/") != strings.Join(tt.path, "/") {
				t.Errorf("ParseOverrideName(%q) = %v, %q, %v", tt.in, path, prop, ok)
			}
			if ok && OverrideName(path, prop) != tt.in {
				t.Errorf("OverrideName round trip = %q", OverrideName(path, prop))
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff000080")
	if err != nil {
		t.Fatal(err)
	}
	if c.Red != 1 || c.Green != 0 || c.Hex() != "#ff000080" {
		t.Errorf("ParseHex = %+v (%s)", c, c.Hex())
	}
	if c, _ := ParseHex("#fff"); c != White {
		t.Errorf("ParseHex(#fff) = %+v", c)
	}
	if _, err := ParseHex("#12"); err == nil {
		t.Error("short hex should fail")
	}
}

func TestFileLocate(t *testing.T) {
	f := NewFile()
	r := NewRectangle("r", geometry.Rect{})
	g := NewGroup("g", geometry.Rect{}, []*Layer{r})
	second := NewPage("Second")
	second.Layers = []*Layer{g}
	f.Pages = append(f.Pages, second)

	loc, ok := f.Locate(r.ObjectID)
	if !ok || loc.PageIndex != 1 || !loc.IndexPath.Equal([]int{0, 0}) {
		t.Errorf("Locate = %+v, %v", loc, ok)
	}
	if paths := IndexPathsOf(second, []string{r.ObjectID, g.ObjectID, "missing"}); len(paths) != 2 {
		t.Errorf("IndexPathsOf = %v", paths)
	}
}

func visitAll(fn func(*Layer)) tree.Visitor[*Layer] {
	return tree.Visitor[*Layer]{
		Enter: func(l *Layer, _ tree.IndexPath, _ []*Layer) tree.Signal {
			fn(l)
			return tree.Continue
		},
	}
}
