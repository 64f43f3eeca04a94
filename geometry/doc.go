// Package geometry provides the 2D primitives the document model is built on:
// points, axis-aligned rectangles and 2x3 affine matrices.
//
// # Coordinate System
//
// Uses the same coordinates as the Sketch file format:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// Layer frames are always expressed in their parent's coordinate space, so
// the transform of a layer is the product of its ancestors' transforms.
package geometry
