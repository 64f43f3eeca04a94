package sketch

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// SharedStyle is a named, reusable style.
type SharedStyle struct {
	ObjectID string `json:"do_objectID"`
	Name     string `json:"name"`
	Value    *Style `json:"value"`
}

// SharedStyleContainer holds shared styles the way the file format nests them.
type SharedStyleContainer struct {
	Objects []SharedStyle `json:"objects"`
}

// Swatch is a named color.
type Swatch struct {
	ObjectID string `json:"do_objectID"`
	Name     string `json:"name"`
	Value    Color  `json:"value"`
}

// SwatchContainer holds swatches.
type SwatchContainer struct {
	Objects []Swatch `json:"objects"`
}

// Assets are the document's color and gradient presets.
type Assets struct {
	Colors    []Color    `json:"colors"`
	Gradients []Gradient `json:"gradients"`
}

// Document holds document-wide resources.
type Document struct {
	ObjectID        string               `json:"do_objectID"`
	Assets          Assets               `json:"assets"`
	LayerStyles     SharedStyleContainer `json:"layerStyles"`
	LayerTextStyles SharedStyleContainer `json:"layerTextStyles"`
	SharedSwatches  SwatchContainer      `json:"sharedSwatches"`
}

// Viewport is the per-page canvas position stored in the user dictionary.
type Viewport struct {
	ZoomValue    float64     `json:"zoomValue"`
	ScrollOrigin PointString `json:"scrollOrigin"`
}

// File is a whole document.
type File struct {
	Document Document            `json:"document"`
	Pages    []*Layer            `json:"pages"`
	User     map[string]Viewport `json:"user,omitempty"`
	Images   map[string][]byte   `json:"images,omitempty"`
}

// NewFile returns a document with one empty page.
func NewFile() *File {
	return &File{
		Document: Document{
			ObjectID:        NewObjectID(),
			LayerStyles:     SharedStyleContainer{Objects: []SharedStyle{}},
			LayerTextStyles: SharedStyleContainer{Objects: []SharedStyle{}},
			SharedSwatches:  SwatchContainer{Objects: []Swatch{}},
		},
		Pages:  []*Layer{NewPage("Page 1")},
		User:   map[string]Viewport{},
		Images: map[string][]byte{},
	}
}

// ShallowClone copies the file and its top-level collections. Pages and
// images are shared with f.
func (f *File) ShallowClone() *File {
	out := *f
	out.Pages = slices.Clone(f.Pages)
	out.Document.LayerStyles.Objects = slices.Clone(f.Document.LayerStyles.Objects)
	out.Document.LayerTextStyles.Objects = slices.Clone(f.Document.LayerTextStyles.Objects)
	out.Document.SharedSwatches.Objects = slices.Clone(f.Document.SharedSwatches.Objects)
	out.User = make(map[string]Viewport, len(f.User))
	for k, v := range f.User {
		out.User[k] = v
	}
	out.Images = make(map[string][]byte, len(f.Images))
	for k, v := range f.Images {
		out.Images[k] = v
	}
	return &out
}

// Decode reads a document from JSON.
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("sketch: decode: %w", err)
	}
	if len(f.Pages) == 0 {
		return nil, ErrNoPages
	}
	if f.User == nil {
		f.User = map[string]Viewport{}
	}
	if f.Images == nil {
		f.Images = map[string][]byte{}
	}
	return &f, nil
}

// Encode writes a document as indented JSON.
func Encode(w io.Writer, f *File) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("sketch: encode: %w", err)
	}
	return nil
}
