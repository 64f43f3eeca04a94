package paragraph

import (
	"strconv"
	"testing"

	"github.com/noya-app/noyastate/sketch"
)

func layoutWith(m *FontManager, s string) *Paragraph {
	return m.Layout(sketch.NewAttributedString(s, sketch.DefaultStringAttributes()), 0)
}

func TestShapeCacheReusesRuns(t *testing.T) {
	m := NewFontManager()
	first := layoutWith(m, "Hello world")
	st := m.ShapeStats()
	if st.Misses != 1 || st.Hits != 0 {
		t.Fatalf("after first layout: %+v, want 1 miss", st)
	}

	second := layoutWith(m, "Hello world")
	st = m.ShapeStats()
	if st.Hits != 1 || st.Len != 1 {
		t.Errorf("after second layout: %+v, want 1 hit and 1 entry", st)
	}
	if first.Size() != second.Size() {
		t.Errorf("cached layout size = %v, want %v", second.Size(), first.Size())
	}
}

func TestShapeCacheKeysBySize(t *testing.T) {
	m := NewFontManager()
	face := m.Face(FamilyRegular)
	calls := 0
	shape := func() []float64 { calls++; return []float64{1} }
	m.shapes.advances(shapeKey{text: "a", face: face, size: sizeBits(12)}, shape)
	m.shapes.advances(shapeKey{text: "a", face: face, size: sizeBits(13)}, shape)
	m.shapes.advances(shapeKey{text: "a", face: face, size: sizeBits(12)}, shape)
	if calls != 2 {
		t.Errorf("shape called %d times, want 2", calls)
	}
}

func TestShapeCacheEvictsOldest(t *testing.T) {
	c := newShapeCache()
	face := testManager.Face(FamilyRegular)
	shape := func() []float64 { return nil }
	for i := range shapeShards * shapeShardCap * 2 {
		c.advances(shapeKey{text: strconv.Itoa(i), face: face}, shape)
	}
	if n := c.stats().Len; n > shapeShards*shapeShardCap {
		t.Errorf("Len = %d, want at most %d", n, shapeShards*shapeShardCap)
	}
	for _, s := range c.shards {
		if s.lru.len != len(s.entries) {
			t.Fatalf("list length %d != entries %d", s.lru.len, len(s.entries))
		}
	}
}
