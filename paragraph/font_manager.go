package paragraph

import (
	"slices"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/bidi"

	"github.com/noya-app/noyastate"
)

// Names of the bundled faces.
const (
	FamilyRegular = "Go"
	FamilyBold    = "Go Bold"
	FamilyItalic  = "Go Italic"
	FamilyMono    = "Go Mono"
)

// FontManager resolves font names to faces and shapes text.
//
// FontManager is safe for concurrent use. Parsed fonts are shared; a
// shaping face and HarfbuzzShaper are taken per call since neither is safe
// for concurrent use.
type FontManager struct {
	mu    sync.RWMutex
	faces map[string]*Face

	shaperPool sync.Pool
	shapes     *shapeCache
}

// NewFontManager returns a manager with the Go fonts registered.
func NewFontManager() *FontManager {
	m := &FontManager{
		faces:  make(map[string]*Face),
		shapes: newShapeCache(),
		shaperPool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
	for name, data := range map[string][]byte{
		FamilyRegular: goregular.TTF,
		FamilyBold:    gobold.TTF,
		FamilyItalic:  goitalic.TTF,
		FamilyMono:    gomono.TTF,
	} {
		if err := m.Register(name, data); err != nil {
			noyastate.Logger().Error("paragraph: bundled font failed to parse", "family", name, "err", err)
		}
	}
	return m
}

// Register parses data and makes it available under name. Names are
// matched case-insensitively.
func (m *FontManager) Register(name string, data []byte) error {
	f, err := ParseFace(name, data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.faces[foldName(name)] = f
	m.mu.Unlock()
	noyastate.Logger().Debug("paragraph: registered font", "family", name)
	return nil
}

// Families returns the registered names, sorted.
func (m *FontManager) Families() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.faces))
	for _, f := range m.faces {
		out = append(out, f.name)
	}
	slices.Sort(out)
	return out
}

// ShapeStats reports how often shaped runs were reused.
func (m *FontManager) ShapeStats() ShapeStats { return m.shapes.stats() }

// Face returns the face registered under name, or the closest bundled
// face based on the name's style words.
func (m *FontManager) Face(name string) *Face {
	key := foldName(name)
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f, ok := m.faces[key]; ok {
		return f
	}
	fallback := FamilyRegular
	switch {
	case strings.Contains(key, "mono"), strings.Contains(key, "courier"), strings.Contains(key, "menlo"):
		fallback = FamilyMono
	case strings.Contains(key, "bold"), strings.Contains(key, "black"), strings.Contains(key, "heavy"):
		fallback = FamilyBold
	case strings.Contains(key, "italic"), strings.Contains(key, "oblique"):
		fallback = FamilyItalic
	}
	return m.faces[foldName(fallback)]
}

// shape returns the glyphs for text[start:end] at size.
func (m *FontManager) shape(text []rune, start, end int, face *Face, size float64) []shaping.Glyph {
	if start >= end || face == nil {
		return nil
	}
	input := shaping.Input{
		Text:      text,
		RunStart:  start,
		RunEnd:    end,
		Direction: direction(text[start:end]),
		Face:      font.NewFace(face.shaped),
		Size:      floatToFixed(size),
		Script:    detectScript(text[start:end]),
		Language:  language.NewLanguage("en"),
	}
	hb := m.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	m.shaperPool.Put(hb)
	return out.Glyphs
}

// direction returns right-to-left when the first strong character is
// Hebrew or Arabic. Advances are collected per cluster, so only shaping is
// affected; offsets stay in logical order.
func direction(runes []rune) di.Direction {
	for _, r := range runes {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return di.DirectionLTR
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		}
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
