// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "math"

// CellWriter provides access to one scanline's worth of cell storage.
// It is implemented by the tile grid (avoids an import cycle with the
// tile/worker package, which imports this one).
type CellWriter interface {
	// Row returns the cover, area and active-mask slices for image
	// scanline y. The cover and area slices are width cells long; the
	// mask holds one bit per column, packed into uint32 words.
	Row(y int) (covers, areas []int32, mask []uint32)

	// MarkDirty records that scanline y received cell writes.
	MarkDirty(y int)
}

// EdgeRasterizer walks oriented line segments and distributes their signed
// cover/area contributions into per-pixel cells.
//
// Coordinates are in pixel space. Edges may extend past the image on any
// side: the walker clips vertically and clamps horizontally, preserving the
// winding integral for off-image geometry (an edge left of the image
// contributes its full cover to column zero, matching the behavior of
// clamped analytic rasterizers).
//
// An EdgeRasterizer is not safe for concurrent use.
type EdgeRasterizer struct {
	width  int
	height int
	cells  CellWriter
}

// NewEdgeRasterizer creates an edge rasterizer for an image of the given
// dimensions, writing cells through the given CellWriter.
func NewEdgeRasterizer(width, height int, cells CellWriter) *EdgeRasterizer {
	return &EdgeRasterizer{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// Line accumulates the contribution of the oriented segment (x0,y0)-(x1,y1)
// into the cell buffers. Non-finite coordinates and segments entirely above
// or below the image contribute nothing.
func (er *EdgeRasterizer) Line(x0, y0, x1, y1 float64) {
	if !isFinite(x0) || !isFinite(y0) || !isFinite(x1) || !isFinite(y1) {
		return
	}

	// Direction is determined before the swap so that upward edges carry
	// negative winding.
	dir := int32(1)
	if y0 > y1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
		dir = -1
	}

	height := float64(er.height)
	if y1 <= 0 || y0 >= height || y0 == y1 {
		return
	}

	dxdy := (x1 - x0) / (y1 - y0)

	// Vertical clip to [0, height], advancing x along the slope.
	if y0 < 0 {
		x0 += dxdy * -y0
		y0 = 0
	}
	if y1 > height {
		x1 = x0 + dxdy*(height-y0)
		y1 = height
	}

	// Split into per-scanline segments. Each segment's y range is local to
	// its scanline, in [0, 1].
	y := int(math.Floor(y0))
	cx, cy := x0, y0
	for cy < y1 {
		segEnd := float64(y + 1)
		if segEnd > y1 {
			segEnd = y1
		}
		nx := x0 + dxdy*(segEnd-y0)
		er.addSegment(y, cx, cy-float64(y), nx, segEnd-float64(y), dir)
		cx, cy = nx, segEnd
		y++
	}
}

// addSegment distributes the cover and area of a segment that lies entirely
// within scanline y. The local y coordinates y0l and y1l are in [0, 1] with
// y0l <= y1l; dir carries the winding sign.
func (er *EdgeRasterizer) addSegment(y int, xa, y0l, xb, y1l float64, dir int32) {
	y0f := FixedFrac(y0l)
	y1f := FixedFrac(y1l)
	distY := (y1f - y0f) * dir
	if distY == 0 {
		return
	}

	covers, areas, mask := er.cells.Row(y)
	er.cells.MarkDirty(y)

	ix0 := clampColumn(int(math.Floor(xa)), er.width)
	ix1 := clampColumn(int(math.Floor(xb)), er.width)

	// Fast path: the segment stays within one pixel column.
	if ix0 == ix1 {
		fx := clampFrac(FixedFrac((xa+xb)*0.5 - float64(ix0)))
		covers[ix0] += distY
		areas[ix0] += (distY * fx) >> CoverShift
		mask[ix0>>5] |= 1 << uint(ix0&31)
		return
	}

	// The segment crosses column boundaries: walk columns from ix0 toward
	// ix1, splitting the segment at each vertical pixel boundary. Per-column
	// cover comes from the y-fraction consumed between boundaries; the last
	// column takes the remainder so that the total distY is conserved
	// exactly despite per-boundary rounding.
	step := 1
	if ix1 < ix0 {
		step = -1
	}
	dydx := (y1l - y0l) / (xb - xa)

	prevX := xa
	prevYf := y0f
	consumed := int32(0)
	for col := ix0; col != ix1; col += step {
		borderX := float64(col)
		if step > 0 {
			borderX = float64(col + 1)
		}
		ybf := FixedFrac(y0l + (borderX-xa)*dydx)
		d := (ybf - prevYf) * dir
		fx := clampFrac(FixedFrac((prevX+borderX)*0.5 - float64(col)))
		covers[col] += d
		areas[col] += (d * fx) >> CoverShift
		mask[col>>5] |= 1 << uint(col&31)
		consumed += d
		prevX = borderX
		prevYf = ybf
	}

	d := distY - consumed
	fx := clampFrac(FixedFrac((prevX+xb)*0.5 - float64(ix1)))
	covers[ix1] += d
	areas[ix1] += (d * fx) >> CoverShift
	mask[ix1>>5] |= 1 << uint(ix1&31)
}

// clampColumn clamps a column index to [0, width-1].
func clampColumn(ix, width int) int {
	if ix < 0 {
		return 0
	}
	if ix >= width {
		return width - 1
	}
	return ix
}

// isFinite reports whether v is neither NaN nor infinite.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
