package heatmap

import "math"

// Point is a normalized plate-crossing location in [-1, 1] on both axes.
type Point struct {
	X float64
	Y float64
}

// Params are the density estimator tunables. They are fixed configuration,
// not derived values: the estimator trades true continuous KDE for a
// bounded-radius discrete approximation, which keeps cost at
// O(points * radius^2) plus O(cells * blur passes).
type Params struct {
	GridSize        int
	InfluenceRadius int
	Sigma           float64
	BlurPasses      int
}

func DefaultParams() Params {
	return Params{
		GridSize:        110,
		InfluenceRadius: 7,
		Sigma:           2.5,
		BlurPasses:      3,
	}
}

func (p Params) withDefaults() Params {
	def := DefaultParams()
	if p.GridSize < 2 {
		p.GridSize = def.GridSize
	}
	if p.InfluenceRadius < 1 {
		p.InfluenceRadius = def.InfluenceRadius
	}
	if p.Sigma <= 0 {
		p.Sigma = float64(p.InfluenceRadius) / 2.8
	}
	if p.BlurPasses <= 0 {
		p.BlurPasses = def.BlurPasses
	}

	return p
}

// Grid is a square matrix of non-negative density values. After normalization
// the maximum cell is exactly 1 whenever at least one point contributed; an
// all-zero grid is the valid "no data" state.
type Grid struct {
	Size  int
	Max   float64
	cells []float64
}

func newGrid(size int) *Grid {
	return &Grid{
		Size:  size,
		cells: make([]float64, size*size),
	}
}

// At returns the value at (row, col); row 0 is the top of the zone (y = +1).
func (g *Grid) At(row, col int) float64 {
	if row < 0 || row >= g.Size || col < 0 || col >= g.Size {
		return 0
	}
	return g.cells[row*g.Size+col]
}

func (g *Grid) IsEmpty() bool {
	return g.Max <= 0
}

// BuildDensity accumulates a truncated-Gaussian kernel around every point,
// smooths the result, and normalizes it to [0, 1] against the grid's own
// maximum. Density is relative within one build, not an absolute count.
func BuildDensity(points []Point, params Params) *Grid {
	params = params.withDefaults()
	g := newGrid(params.GridSize)

	radius := params.InfluenceRadius
	radiusSq := float64(radius * radius)
	twoSigmaSq := 2 * params.Sigma * params.Sigma

	for _, p := range points {
		// Domain [-1,1] to index space [0,N-1], Y inverted: row 0 = y=+1.
		cx := (p.X + 1) / 2 * float64(g.Size-1)
		cy := (1 - p.Y) / 2 * float64(g.Size-1)

		rowLo := maxInt(0, int(math.Floor(cy))-radius)
		rowHi := minInt(g.Size-1, int(math.Ceil(cy))+radius)
		colLo := maxInt(0, int(math.Floor(cx))-radius)
		colHi := minInt(g.Size-1, int(math.Ceil(cx))+radius)

		for row := rowLo; row <= rowHi; row++ {
			for col := colLo; col <= colHi; col++ {
				dr := float64(row) - cy
				dc := float64(col) - cx
				distSq := dr*dr + dc*dc
				if distSq > radiusSq {
					continue
				}
				g.cells[row*g.Size+col] += math.Exp(-distSq / twoSigmaSq)
			}
		}
	}

	for pass := 0; pass < params.BlurPasses; pass++ {
		g.blurOnce()
	}

	g.normalize()

	return g
}

// blurOnce applies one pass of the fixed 3x3 binomial kernel with zero-padded
// borders. Border handling must be identical on every call so repeated builds
// of the same points are reproducible.
func (g *Grid) blurOnce() {
	const (
		cornerWeight = 0.0625
		edgeWeight   = 0.125
		centerWeight = 0.25
	)

	next := make([]float64, len(g.cells))
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			acc := g.At(row, col) * centerWeight
			acc += (g.At(row-1, col) + g.At(row+1, col) + g.At(row, col-1) + g.At(row, col+1)) * edgeWeight
			acc += (g.At(row-1, col-1) + g.At(row-1, col+1) + g.At(row+1, col-1) + g.At(row+1, col+1)) * cornerWeight
			next[row*g.Size+col] = acc
		}
	}
	g.cells = next
}

func (g *Grid) normalize() {
	max := 0.0
	for _, v := range g.cells {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		g.Max = 0
		return
	}

	for i := range g.cells {
		g.cells[i] /= max
	}
	g.Max = 1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
