// Package bitmap edits raster images embedded in a document.
//
// Images are decoded into a Pixmap, painted with the pencil, rectangle and
// flood fill tools, and encoded back to PNG. Painting replaces pixels; it
// does not blend.
package bitmap
