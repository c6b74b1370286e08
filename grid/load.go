package grid

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Parse reads a text map. '#' is a wall, '.' and ' ' are floor of weight 1,
// '1'-'9' are weighted floor, 'S' and 'G' mark the start and goal on floor of
// weight 1. Short lines are padded with walls.
func Parse(r io.Reader) (*Grid, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	if len(lines) == 0 || width == 0 {
		return nil, ErrEmptyMap
	}

	g := New(width, len(lines))
	for y, line := range lines {
		for x := 0; x < width; x++ {
			p := Point{x, y}
			if x >= len(line) {
				g.cells[y*width+x] = wall
				continue
			}
			switch c := line[x]; {
			case c == '#':
				g.cells[y*width+x] = wall
			case c == '.' || c == ' ':
			case c >= '1' && c <= '9':
				g.cells[y*width+x] = c - '0'
			case c == 'S':
				g.Start, g.HasStart = p, true
			case c == 'G':
				g.Goal, g.HasGoal = p, true
			default:
				return nil, fmt.Errorf("grid: line %d column %d: unexpected %q", y+1, x+1, c)
			}
		}
	}
	return g, nil
}

// FromImage builds a grid with one cell per pixel. Pixels with luminance
// below threshold are walls; lighter pixels are floor whose weight grows
// from 1 (white) to MaxWeight (at the threshold).
func FromImage(img image.Image, threshold uint8) *Grid {
	bounds := img.Bounds()
	g := New(bounds.Dx(), bounds.Dy())
	span := 255 - int(threshold)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			lum := int(color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray).Y)
			switch {
			case lum < int(threshold):
				g.cells[y*g.Width+x] = wall
			case span == 0:
				g.cells[y*g.Width+x] = 1
			default:
				g.cells[y*g.Width+x] = uint8(1 + (255-lum)*(MaxWeight-1)/span)
			}
		}
	}
	return g
}

// DefaultThreshold is the luminance below which image pixels are walls.
const DefaultThreshold = 128

// Load reads a map file. Files ending in .txt or .map are text maps; anything
// else is decoded as an image (PNG, GIF, JPEG, BMP, TIFF or WebP).
func Load(path string, threshold uint8) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".map":
		g, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return g, nil
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return FromImage(img, threshold), nil
}

// Format renders the grid as a text map with path cells drawn as '*'.
func (g *Grid) Format(path []Point) string {
	onPath := make(map[Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}
	var b strings.Builder
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := Point{x, y}
			switch w := g.cells[y*g.Width+x]; {
			case g.HasStart && p == g.Start:
				b.WriteByte('S')
			case g.HasGoal && p == g.Goal:
				b.WriteByte('G')
			case onPath[p]:
				b.WriteByte('*')
			case w == wall:
				b.WriteByte('#')
			case w == 1:
				b.WriteByte('.')
			default:
				b.WriteByte('0' + w)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
