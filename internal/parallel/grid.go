package parallel

import (
	"github.com/gogpu/tileraster/internal/raster"
)

// Grid partitions an image into horizontal strip tiles and tracks the
// dirty y-range of edge writes between flushes.
//
// Grid implements raster.CellWriter: the edge rasterizer writes cells
// through Row and MarkDirty without knowing about tiles.
//
// Grid is not safe for concurrent use. Accumulation is single-threaded by
// contract; only resolve runs in parallel, on detached tile buffers.
type Grid struct {
	width      int
	height     int
	tileHeight int
	tiles      []*Tile

	// Dirty y-range since the last flush. minDirtyY > maxDirtyY means
	// nothing is dirty.
	minDirtyY int
	maxDirtyY int
}

// Compile-time check: the edge rasterizer accumulates through the grid.
var _ raster.CellWriter = (*Grid)(nil)

// NewGrid creates a grid of strip tiles covering width x height pixels.
// tileHeight is clamped to [1, height]. The framebuffers start zeroed.
func NewGrid(width, height, tileHeight int) *Grid {
	if tileHeight < 1 {
		tileHeight = 1
	}
	if tileHeight > height {
		tileHeight = height
	}

	n := (height + tileHeight - 1) / tileHeight
	g := &Grid{
		width:      width,
		height:     height,
		tileHeight: tileHeight,
		tiles:      make([]*Tile, n),
	}
	for i := range g.tiles {
		startY := i * tileHeight
		h := tileHeight
		if startY+h > height {
			h = height - startY
		}
		g.tiles[i] = NewTile(i, startY, width, h)
	}
	g.resetDirtyRange()
	return g
}

// Width returns the image width in pixels.
func (g *Grid) Width() int { return g.width }

// Height returns the image height in pixels.
func (g *Grid) Height() int { return g.height }

// TileHeight returns the strip height (the last strip may be shorter).
func (g *Grid) TileHeight() int { return g.tileHeight }

// Tiles returns all tiles, top to bottom. The slice must not be modified.
func (g *Grid) Tiles() []*Tile { return g.tiles }

// TileCount returns the number of strip tiles.
func (g *Grid) TileCount() int { return len(g.tiles) }

// TileFor returns the tile owning image scanline y, clamped to the grid.
func (g *Grid) TileFor(y int) *Tile {
	i := y / g.tileHeight
	if i < 0 {
		i = 0
	}
	if i >= len(g.tiles) {
		i = len(g.tiles) - 1
	}
	return g.tiles[i]
}

// Row returns the cell slices for image scanline y.
func (g *Grid) Row(y int) (covers, areas []int32, mask []uint32) {
	t := g.TileFor(y)
	local := y - t.StartY
	off := local * t.Width
	wpr := t.WordsPerRow()
	return t.Covers()[off : off+t.Width],
		t.Areas()[off : off+t.Width],
		t.Mask()[local*wpr : (local+1)*wpr]
}

// MarkDirty flags scanline y's tile and widens the global dirty range.
func (g *Grid) MarkDirty(y int) {
	g.TileFor(y).Dirty = true
	if y < g.minDirtyY {
		g.minDirtyY = y
	}
	if y > g.maxDirtyY {
		g.maxDirtyY = y
	}
}

// DirtyTiles returns the tiles flagged since the last flush, top to bottom.
func (g *Grid) DirtyTiles() []*Tile {
	var dirty []*Tile
	for _, t := range g.tiles {
		if t.Dirty {
			dirty = append(dirty, t)
		}
	}
	return dirty
}

// DirtyHeight returns the height of the global dirty y-range in rows,
// zero when nothing is dirty.
func (g *Grid) DirtyHeight() int {
	if g.minDirtyY > g.maxDirtyY {
		return 0
	}
	return g.maxDirtyY - g.minDirtyY + 1
}

// ResetDirtyRange clears the global dirty y-range. Per-tile flags are
// cleared by the flush path after a tile resolves (Pool.Resolve or the
// serial loop in the caller) or by Clear.
func (g *Grid) ResetDirtyRange() {
	g.resetDirtyRange()
}

func (g *Grid) resetDirtyRange() {
	g.minDirtyY = g.height
	g.maxDirtyY = -1
}

// Clear fills every framebuffer with argb and zeroes all accumulation
// state: cells, masks, dirty flags and the dirty range.
func (g *Grid) Clear(argb uint32) {
	for _, t := range g.tiles {
		t.Fill(argb)
		t.ZeroCells()
	}
	g.resetDirtyRange()
}

// Compose copies the tile framebuffers into dst, row-major over the whole
// image. dst must hold width*height words. Tiles span the full image
// width, so composition is a straight per-strip copy.
func (g *Grid) Compose(dst []uint32) {
	for _, t := range g.tiles {
		copy(dst[t.StartY*g.width:], t.Frame())
	}
}
