package grid

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/pdrpinto/pathfinder"
)

var (
	wallColor   = color.RGBA{0x20, 0x20, 0x20, 0xff}
	openColor   = color.RGBA{0xa6, 0xe3, 0xa1, 0xff}
	closedColor = color.RGBA{0x89, 0xb4, 0xfa, 0xff}
	pathColor   = color.RGBA{0xf3, 0x8b, 0xa8, 0xff}
	startColor  = color.RGBA{0x40, 0xa0, 0x2b, 0xff}
	goalColor   = color.RGBA{0xd2, 0x0f, 0x39, 0xff}
)

func floorColor(weight int) color.RGBA {
	shade := uint8(255 - (weight-1)*12)
	return color.RGBA{shade, shade, shade, 0xff}
}

// Image draws one pixel per cell: walls, floor shaded by weight, discovered
// cells from table (open and closed), the path, then start and goal.
func (g *Grid) Image(path []Point, table *pathfinder.StepTable[Point]) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if w := g.Weight(Point{x, y}); w == wall {
				img.SetRGBA(x, y, wallColor)
			} else {
				img.SetRGBA(x, y, floorColor(w))
			}
		}
	}
	table.Range(func(step *pathfinder.Step[Point]) bool {
		if step.InQueue {
			img.SetRGBA(step.To.X, step.To.Y, openColor)
		} else {
			img.SetRGBA(step.To.X, step.To.Y, closedColor)
		}
		return true
	})
	for _, p := range path {
		img.SetRGBA(p.X, p.Y, pathColor)
	}
	if len(path) > 0 {
		img.SetRGBA(path[0].X, path[0].Y, startColor)
		last := path[len(path)-1]
		img.SetRGBA(last.X, last.Y, goalColor)
	}
	return img
}

// Render writes the grid image as PNG, each cell scale pixels wide.
func (g *Grid) Render(w io.Writer, path []Point, table *pathfinder.StepTable[Point], scale int) error {
	src := g.Image(path, table)
	if scale <= 1 {
		return png.Encode(w, src)
	}
	dst := image.NewRGBA(image.Rect(0, 0, g.Width*scale, g.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return png.Encode(w, dst)
}
