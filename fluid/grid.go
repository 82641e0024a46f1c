package fluid

import "math"

// SpatialHashGrid buckets particle indices into uniform cells of side
// CellSize (== the kernel smoothing radius). Cells spanning the configured
// bounding box are pre-created once; Clear reuses their backing slices
// rather than reallocating the map, following the same clear-but-keep-
// capacity pattern as a broad-phase collision grid.
type SpatialHashGrid struct {
	CellSize   float32
	OriginX    float32
	OriginY    float32
	Cols, Rows int

	cells map[GridKey][]int
}

// NewSpatialHashGrid pre-creates buckets for the full extent of box at the
// given cell size, with a one-cell margin on every side to absorb the
// transient overshoot of predicted positions before boundary resolution
// clamps them back in.
func NewSpatialHashGrid(box AABB, cellSize float32) *SpatialHashGrid {
	cols := int(math.Ceil(float64(box.Width()/cellSize))) + 2
	rows := int(math.Ceil(float64(box.Height()/cellSize))) + 2
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	g := &SpatialHashGrid{
		CellSize: cellSize,
		OriginX:  box.Min[0] - cellSize,
		OriginY:  box.Min[1] - cellSize,
		Cols:     cols,
		Rows:     rows,
		cells:    make(map[GridKey][]int, cols*rows),
	}

	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			g.cells[GridKey{i, j}] = make([]int, 0, 8)
		}
	}

	return g
}

// KeyOf returns the cell key of a world position, offset by one cell so
// that pre-created buckets cover a margin around the configured box.
func (g *SpatialHashGrid) KeyOf(x, y float32) GridKey {
	i := int(math.Floor(float64((x - g.OriginX) / g.CellSize)))
	j := int(math.Floor(float64((y - g.OriginY) / g.CellSize)))
	return GridKey{i, j}
}

// Clear empties every bucket in place, retaining capacity.
func (g *SpatialHashGrid) Clear() {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
}

// Insert appends particle index idx to the bucket for key, creating the
// bucket lazily if it falls outside the pre-created margin.
func (g *SpatialHashGrid) Insert(key GridKey, idx int) {
	g.cells[key] = append(g.cells[key], idx)
}

// Cell returns the (possibly empty) bucket for key. Missing keys return nil,
// which ranges as zero iterations - safe for the neighbour search's 3x3 walk.
func (g *SpatialHashGrid) Cell(key GridKey) []int {
	return g.cells[key]
}

// Cells exposes the full key->bucket mapping for visualization (getGrid).
func (g *SpatialHashGrid) Cells() map[GridKey][]int {
	return g.cells
}
