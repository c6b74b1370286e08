package grid

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/pdrpinto/pathfinder"
)

const maze = `
S..#....
.#.#.##.
.#...#..
.####.#.
......#G
`

func parse(t *testing.T, text string) *Grid {
	t.Helper()
	g, err := Parse(strings.NewReader(strings.TrimPrefix(text, "\n")))
	require.NoError(t, err)
	return g
}

func TestParse(t *testing.T) {
	g := parse(t, maze)
	assert.Equal(t, 8, g.Width)
	assert.Equal(t, 5, g.Height)
	assert.True(t, g.HasStart)
	assert.True(t, g.HasGoal)
	assert.Equal(t, Point{0, 0}, g.Start)
	assert.Equal(t, Point{7, 4}, g.Goal)
	assert.False(t, g.Walkable(Point{3, 0}))
	assert.True(t, g.Walkable(Point{2, 0}))
	assert.False(t, g.Walkable(Point{-1, 0}))
	assert.Equal(t, 1, g.Weight(g.Start))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, ErrEmptyMap)

	_, err = Parse(strings.NewReader("..x\n"))
	assert.Error(t, err)
}

func TestParseWeightsAndPadding(t *testing.T) {
	g := parse(t, ".5\n9\n")
	assert.Equal(t, 5, g.Weight(Point{1, 0}))
	assert.Equal(t, 9, g.Weight(Point{0, 1}))
	assert.False(t, g.Walkable(Point{1, 1}))
}

func TestFormatRoundTrip(t *testing.T) {
	g := parse(t, maze)
	assert.Equal(t, strings.TrimPrefix(maze, "\n"), g.Format(nil))
}

func TestSolveMaze(t *testing.T) {
	g := parse(t, maze)
	result, err := pathfinder.FindPath[Point](context.Background(), g, g.Start, g.Goal)
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, 15.0, result.TotalCost)
	assert.Equal(t, result.TotalCost, g.PathCost(result.Path))
	for i := 1; i < len(result.Path); i++ {
		assert.Equal(t, 1.0, Manhattan(result.Path[i-1], result.Path[i]))
		assert.True(t, g.Walkable(result.Path[i]))
	}
}

func TestNeighborsNoCornerCutting(t *testing.T) {
	g := parse(t, "...\n.#.\n...\n")
	g.Diagonal = true

	got := g.Neighbors(Point{0, 0}, nil)
	assert.ElementsMatch(t, []Point{{1, 0}, {0, 1}}, got)

	got = g.Neighbors(Point{1, 0}, nil)
	assert.ElementsMatch(t, []Point{{0, 0}, {2, 0}}, got)

	open := New(3, 3)
	open.Diagonal = true
	assert.Len(t, open.Neighbors(Point{1, 1}, nil), 8)
	assert.InDelta(t, math.Sqrt2, open.CostOfEdge(Point{1, 1}, Point{2, 2}), 1e-12)
}

func TestEstimateCostToWallIsInfinite(t *testing.T) {
	g := parse(t, "..#\n")
	assert.True(t, math.IsInf(g.EstimateCost(Point{0, 0}, Point{2, 0}), 1))

	result, err := pathfinder.FindPath[Point](context.Background(), g, Point{0, 0}, Point{2, 0})
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestHeuristicsMatchDijkstra(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for trial := 0; trial < 10; trial++ {
		for _, diagonalMoves := range []bool{false, true} {
			start, goal := Point{0, 0}, Point{29, 19}
			g := Clustered(30, 20, 6, 120, 0.4, r, start, goal)
			for i := 0; i < 60; i++ {
				p := Point{r.Intn(30), r.Intn(20)}
				if g.Walkable(p) {
					require.NoError(t, g.SetWeight(p, 1+r.Intn(MaxWeight)))
				}
			}
			g.Diagonal = diagonalMoves

			g.SetHeuristic(Zero)
			reference, err := pathfinder.FindPath[Point](context.Background(), g, start, goal)
			require.NoError(t, err)

			names := []string{"euclidean"}
			if diagonalMoves {
				names = append(names, "octile")
			} else {
				names = append(names, "manhattan")
			}
			for _, name := range names {
				h, err := HeuristicByName(name)
				require.NoError(t, err)
				g.SetHeuristic(h)
				result, err := pathfinder.FindPath[Point](context.Background(), g, start, goal)
				require.NoError(t, err)
				require.Equal(t, reference.Found, result.Found, name)
				if result.Found {
					assert.InDelta(t, reference.TotalCost, result.TotalCost, 1e-9, name)
				}
			}
		}
	}
}

func TestHeuristicByName(t *testing.T) {
	h, err := HeuristicByName("")
	assert.NoError(t, err)
	assert.Nil(t, h)

	_, err = HeuristicByName("nope")
	assert.Error(t, err)
	assert.Equal(t, []string{"euclidean", "manhattan", "octile", "zero"}, HeuristicNames())
	assert.InDelta(t, 2+math.Sqrt2, Octile(Point{0, 0}, Point{3, 1}), 1e-12)
}

func testImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetGray(1, 0, color.Gray{Y: 0})
	img.SetGray(2, 1, color.Gray{Y: 128})
	return img
}

func TestFromImage(t *testing.T) {
	g := FromImage(testImage(), DefaultThreshold)
	assert.Equal(t, 4, g.Width)
	assert.Equal(t, 2, g.Height)
	assert.False(t, g.Walkable(Point{1, 0}))
	assert.Equal(t, 1, g.Weight(Point{0, 0}))
	assert.Equal(t, MaxWeight, g.Weight(Point{2, 1}))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "maze.txt")
	require.NoError(t, os.WriteFile(text, []byte(strings.TrimPrefix(maze, "\n")), 0o644))
	g, err := Load(text, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, Point{7, 4}, g.Goal)

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage()))
	bitmap := filepath.Join(dir, "maze.bmp")
	require.NoError(t, os.WriteFile(bitmap, buf.Bytes(), 0o644))
	g, err = Load(bitmap, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Width)
	assert.False(t, g.Walkable(Point{1, 0}))

	_, err = Load(filepath.Join(dir, "missing.png"), DefaultThreshold)
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	g := parse(t, maze)
	result, err := pathfinder.FindPath[Point](context.Background(), g, g.Start, g.Goal)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.Render(&buf, result.Path, result.Table, 4))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 20), img.Bounds())

	r, gr, b, _ := img.At(3*4+1, 0).RGBA()
	wr, wg, wb, _ := wallColor.RGBA()
	assert.Equal(t, []uint32{wr, wg, wb}, []uint32{r, gr, b})

	small := g.Image(result.Path, nil)
	assert.Equal(t, startColor, small.RGBAAt(0, 0))
	assert.Equal(t, goalColor, small.RGBAAt(7, 4))
}
