package bitmap

import (
	"image"
	"image/color"
	"strconv"
)

// FloodFill paints the 4-connected region of pixels exactly equal to the
// pixel at (x, y) with c, and returns the number of pixels painted.
func FloodFill(p *Pixmap, x, y int, c color.NRGBA) int {
	if !p.InBounds(x, y) {
		return 0
	}
	target := p.GetPixel(x, y)
	if target == c {
		return 0
	}

	visited := make(map[string]bool)
	stack := []image.Point{{X: x, Y: y}}
	painted := 0

	for len(stack) > 0 {
		pt := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		key := pointKey(pt.X, pt.Y)
		if visited[key] {
			continue
		}
		visited[key] = true

		if !p.InBounds(pt.X, pt.Y) || p.GetPixel(pt.X, pt.Y) != target {
			continue
		}
		p.SetPixel(pt.X, pt.Y, c)
		painted++

		for _, adj := range [4]image.Point{
			{X: pt.X, Y: pt.Y - 1},
			{X: pt.X, Y: pt.Y + 1},
			{X: pt.X - 1, Y: pt.Y},
			{X: pt.X + 1, Y: pt.Y},
		} {
			if !visited[pointKey(adj.X, adj.Y)] {
				stack = append(stack, adj)
			}
		}
	}
	return painted
}

func pointKey(x, y int) string {
	return strconv.Itoa(x) + "," + strconv.Itoa(y)
}
