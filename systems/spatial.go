// Package systems implements the per-tick layout systems: scattering, the
// spatial grid and the force simulator.
package systems

import (
	"math"

	"github.com/pthm-cable/smallworld/components"
)

// DefaultCellSize is the grid cell edge length used when none is configured.
const DefaultCellSize = 100.0

// cellKey addresses a grid cell by its floored coordinates.
type cellKey struct {
	X, Y int32
}

// neighborOffsets covers a cell and its eight surrounding cells.
var neighborOffsets = [9]cellKey{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {0, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// SpatialGrid buckets node indices into square cells. The grid is unbounded:
// cells exist only where nodes are, so nodes drifting anywhere stay indexed.
// It is rebuilt from scratch each tick.
type SpatialGrid struct {
	cellSize float32
	cells    map[cellKey][]int
	nodeCell []cellKey
	indexed  []bool
}

// NewSpatialGrid creates a grid with the given cell size.
func NewSpatialGrid(cellSize float32) *SpatialGrid {
	if !(cellSize > 0) || math.IsInf(float64(cellSize), 0) {
		cellSize = DefaultCellSize
	}
	return &SpatialGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
	}
}

// CellSize returns the cell edge length.
func (g *SpatialGrid) CellSize() float32 {
	return g.cellSize
}

// Clear removes all nodes while keeping cell storage for reuse.
func (g *SpatialGrid) Clear() {
	// Stale keys pile up as nodes move; drop them once they dominate.
	if len(g.cells) > 4*len(g.nodeCell)+64 {
		clear(g.cells)
	}
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
	g.nodeCell = g.nodeCell[:0]
	g.indexed = g.indexed[:0]
}

// Rebuild indexes every position. Non-finite positions are left out.
func (g *SpatialGrid) Rebuild(positions []components.Position) {
	g.Clear()
	for i, p := range positions {
		key, ok := g.cellOf(p)
		g.nodeCell = append(g.nodeCell, key)
		g.indexed = append(g.indexed, ok)
		if ok {
			g.cells[key] = append(g.cells[key], i)
		}
	}
}

// Len returns the number of positions passed to the last Rebuild.
func (g *SpatialGrid) Len() int {
	return len(g.nodeCell)
}

// Cell returns the cell coordinates of node i and whether it is indexed.
func (g *SpatialGrid) Cell(i int) (x, y int32, ok bool) {
	if i < 0 || i >= len(g.nodeCell) || !g.indexed[i] {
		return 0, 0, false
	}
	k := g.nodeCell[i]
	return k.X, k.Y, true
}

// ForEachPair calls fn once for every unordered pair (i, j), i < j, whose cells
// are equal or adjacent. Pairs are visited in ascending i, then by cell
// offset, then insertion order.
func (g *SpatialGrid) ForEachPair(fn func(i, j int)) {
	for i, key := range g.nodeCell {
		if !g.indexed[i] {
			continue
		}
		for _, off := range neighborOffsets {
			bucket, ok := g.cells[cellKey{X: key.X + off.X, Y: key.Y + off.Y}]
			if !ok {
				continue
			}
			for _, j := range bucket {
				if j <= i {
					continue
				}
				fn(i, j)
			}
		}
	}
}

// cellOf floors p onto the grid.
func (g *SpatialGrid) cellOf(p components.Position) (cellKey, bool) {
	if !p.Finite() {
		return cellKey{}, false
	}
	cx, okX := floorCell(p.X, g.cellSize)
	cy, okY := floorCell(p.Y, g.cellSize)
	return cellKey{X: cx, Y: cy}, okX && okY
}

func floorCell(v, size float32) (int32, bool) {
	f := math.Floor(float64(v) / float64(size))
	// Keep one cell of headroom so offsets cannot overflow.
	if f <= math.MinInt32+1 || f >= math.MaxInt32-1 {
		return 0, false
	}
	return int32(f), true
}
