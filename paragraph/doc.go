// Package paragraph lays out attributed text for caret and hit queries.
//
// A FontManager resolves font names to faces, shapes each attribute run with
// go-text/typesetting and breaks lines at Unicode line break opportunities.
// The resulting Paragraph implements textedit.Paragraph.
//
// Font names that are not registered resolve to the bundled Go fonts, so
// layout is deterministic on machines without the document's fonts.
package paragraph
