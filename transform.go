package noyastate

import (
	"math"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

// GetLayerRotationTransform rotates about the frame's center, in the
// parent's coordinates. Sketch rotations are counter-clockwise degrees.
func GetLayerRotationTransform(l *sketch.Layer) geometry.Matrix {
	if l.Rotation == 0 {
		return geometry.Identity()
	}
	return geometry.RotateAbout(-l.Rotation*math.Pi/180, l.Frame.Rect().Center())
}

// GetLayerFlipTransform mirrors about the frame's center.
func GetLayerFlipTransform(l *sketch.Layer) geometry.Matrix {
	if !l.IsFlippedHorizontal && !l.IsFlippedVertical {
		return geometry.Identity()
	}
	sx, sy := 1.0, 1.0
	if l.IsFlippedHorizontal {
		sx = -1
	}
	if l.IsFlippedVertical {
		sy = -1
	}
	return geometry.ScaleAbout(sx, sy, l.Frame.Rect().Center())
}

// GetLayerTransform maps the layer's own coordinates (where its children
// and points live) through ctm, the transform of its parent's coordinates.
func GetLayerTransform(ctm geometry.Matrix, l *sketch.Layer) geometry.Matrix {
	return geometry.Concat(
		ctm,
		GetLayerRotationTransform(l),
		GetLayerFlipTransform(l),
		geometry.Translate(l.Frame.X, l.Frame.Y),
	)
}

// GetLayerTransformAtIndexPath returns the transform from the coordinates
// of the layer at path's parent (the space its frame is expressed in) to the
// space of root, composed with ctm. Ancestors are applied root first.
func GetLayerTransformAtIndexPath(root *sketch.Layer, path tree.IndexPath, ctm geometry.Matrix) geometry.Matrix {
	nodes, ok := sketch.AccessPath(root, path)
	if !ok {
		return ctm
	}
	// nodes[0] is root and the last node is the layer itself.
	for _, ancestor := range nodes[1 : len(nodes)-1] {
		ctm = GetLayerTransform(ctm, ancestor)
	}
	return ctm
}

// childSpaceTransform maps the coordinates of the children of the node at
// path to root's space. The empty path is root itself.
func childSpaceTransform(root *sketch.Layer, path tree.IndexPath) geometry.Matrix {
	if len(path) == 0 {
		return geometry.Identity()
	}
	l, ok := sketch.Access(root, path)
	if !ok {
		return geometry.Identity()
	}
	return GetLayerTransform(GetLayerTransformAtIndexPath(root, path, geometry.Identity()), l)
}

// layerBounds is the bounding box of the layer's frame after its own
// rotation and flip, mapped through ctm.
func layerBounds(ctm geometry.Matrix, l *sketch.Layer) geometry.Rect {
	local := geometry.Rect{Width: l.Frame.Width, Height: l.Frame.Height}
	return local.Transform(GetLayerTransform(ctm, l))
}

// reparent rewrites an owned layer's frame, rotation and flips so that it
// keeps its position on the page when it moves from a parent whose space
// maps to the page by from, to one that maps by to.
func reparent(l *sketch.Layer, from, to geometry.Matrix) {
	m := to.Invert().Multiply(from)
	if m.ApproxEqual(geometry.Identity(), 1e-12) {
		return
	}
	r := l.Frame.Rect()
	center := m.TransformPoint(r.Center())

	linear := m.Linear().Multiply(geometry.Concat(GetLayerRotationTransform(l), GetLayerFlipTransform(l)).Linear())
	if m.IsReflection() {
		l.IsFlippedHorizontal = !l.IsFlippedHorizontal
	}
	flip := geometry.Identity()
	if l.IsFlippedHorizontal {
		flip.A = -1
	}
	if l.IsFlippedVertical {
		flip.E = -1
	}
	rotation := linear.Multiply(flip)
	l.Rotation = normalizeDegrees(-rotation.RotationRadians() * 180 / math.Pi)

	l.Frame.X = center.X - r.Width/2
	l.Frame.Y = center.Y - r.Height/2
}

// normalizeDegrees maps an angle into (-180, 180] and snaps values within
// rounding error of zero.
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	switch {
	case deg > 180:
		deg -= 360
	case deg <= -180:
		deg += 360
	}
	if math.Abs(deg) < 1e-9 {
		return 0
	}
	return deg
}
