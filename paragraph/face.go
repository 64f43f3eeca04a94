package paragraph

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Metrics are vertical font metrics at a given size, in points.
type Metrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// Height returns ascent plus descent.
func (m Metrics) Height() float64 { return m.Ascent + m.Descent }

// Face is a parsed font usable for both shaping and metrics.
type Face struct {
	name   string
	shaped *font.Font
	sfnt   *opentype.Font
}

// ParseFace parses TrueType or OpenType data.
func ParseFace(name string, data []byte) (*Face, error) {
	gt, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFont, name, err)
	}
	ot, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFont, name, err)
	}
	return &Face{name: name, shaped: gt.Font, sfnt: ot}, nil
}

// Name returns the name the face was registered under.
func (f *Face) Name() string { return f.name }

// Metrics returns the face's vertical metrics at size.
func (f *Face) Metrics(size float64) Metrics {
	var buf sfnt.Buffer
	m, err := f.sfnt.Metrics(&buf, floatToFixed(size), xfont.HintingNone)
	if err != nil {
		return Metrics{Ascent: size * 0.8, Descent: size * 0.2}
	}
	out := Metrics{
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
	}
	out.LineGap = max(fixedToFloat(m.Height)-out.Ascent-out.Descent, 0)
	return out
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
