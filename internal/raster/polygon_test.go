// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"slices"
	"testing"
)

// squareCW is a clockwise unit-ish square in image coordinates (y down).
var squareCW = []float64{1, 1, 3, 1, 3, 3, 1, 3}

// squareCCW is the same square with reversed traversal.
var squareCCW = []float64{1, 3, 3, 3, 3, 1, 1, 1}

func accumulate(t *testing.T, width, height int, vertices []float64, contours []int) *cellGrid {
	t.Helper()
	g := newCellGrid(width, height)
	er := NewEdgeRasterizer(width, height, g)
	er.Polygon(vertices, contours)
	return g
}

// =============================================================================
// Winding Normalization
// =============================================================================

func TestPolygon_WindingNormalized(t *testing.T) {
	cw := accumulate(t, 8, 8, squareCW, nil)
	ccw := accumulate(t, 8, 8, squareCCW, nil)

	if !slices.Equal(cw.covers, ccw.covers) {
		t.Error("covers differ between CW and CCW traversal of the same square")
	}
	if !slices.Equal(cw.areas, ccw.areas) {
		t.Error("areas differ between CW and CCW traversal of the same square")
	}
}

func TestPolygon_OverlapAdditive(t *testing.T) {
	// Accumulating the same square twice, once per orientation, must
	// produce double cover (not cancellation) thanks to normalization.
	g := newCellGrid(8, 8)
	er := NewEdgeRasterizer(8, 8, g)
	er.Polygon(squareCW, nil)
	er.Polygon(squareCCW, nil)

	single := accumulate(t, 8, 8, squareCW, nil)
	for i := range g.covers {
		if g.covers[i] != 2*single.covers[i] {
			t.Fatalf("covers[%d] = %d, want %d (additive winding)",
				i, g.covers[i], 2*single.covers[i])
		}
	}
}

// =============================================================================
// Contour Lists
// =============================================================================

func TestPolygon_TwoContours(t *testing.T) {
	// Outer square plus inner square; both contours must contribute.
	vertices := []float64{1, 1, 7, 1, 7, 7, 1, 7, 3, 3, 5, 3, 5, 5, 3, 5}
	g := accumulate(t, 8, 8, vertices, []int{4, 4})

	// Row 4 crosses both squares: outer edges at x=1 and x=7, inner at
	// x=3 and x=5.
	for _, x := range []int{1, 3, 5, 7} {
		if g.cover(x, 4) == 0 {
			t.Errorf("cover(%d,4) = 0, want edge crossing", x)
		}
	}
}

func TestPolygon_MalformedContoursFallBack(t *testing.T) {
	vertices := []float64{1, 1, 7, 1, 7, 7, 1, 7, 3, 3, 5, 3, 5, 5, 3, 5}

	single := accumulate(t, 8, 8, vertices, nil)

	tests := []struct {
		name     string
		contours []int
	}{
		{"zero entry", []int{0, 8}},
		{"negative entry", []int{-4, 12}},
		{"sum too small", []int{4, 3}},
		{"sum too large", []int{4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := accumulate(t, 8, 8, vertices, tt.contours)
			if !slices.Equal(g.covers, single.covers) {
				t.Error("malformed contour list did not degrade to single contour")
			}
		})
	}
}

func TestPolygon_TooFewPoints(t *testing.T) {
	g := accumulate(t, 8, 8, []float64{1, 1, 3, 3}, nil)
	for i, c := range g.covers {
		if c != 0 {
			t.Fatalf("covers[%d] = %d for two-point input", i, c)
		}
	}
}

// =============================================================================
// Closed-Contour Invariant
// =============================================================================

func TestPolygon_RowsConserveWinding(t *testing.T) {
	// For any closed contour, up and down crossings cancel: every row's
	// total cover is zero.
	star := []float64{4, 0.5, 5, 3, 7.5, 3, 5.5, 4.5, 6.5, 7, 4, 5.5, 1.5, 7, 2.5, 4.5, 0.5, 3, 3, 3}
	g := accumulate(t, 8, 8, star, nil)

	for y := 0; y < 8; y++ {
		if sum := g.rowCoverSum(y); sum != 0 {
			t.Errorf("row %d cover sum = %d, want 0", y, sum)
		}
	}
}
