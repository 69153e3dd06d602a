// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster implements analytic coverage rasterization over cover/area
// cell buffers.
//
// Coverage is accumulated per pixel as a pair of signed 32-bit values:
//
//   - cover: the signed sub-pixel vertical extent of edges crossing the
//     pixel column, in Q24.8 units (CoverOne == one full pixel of height).
//   - area: the portion of the cover that lies left of the edge within the
//     pixel, pre-scaled so that the resolve sweep's running prefix minus the
//     cell's area yields the pixel's signed coverage directly.
//
// The resolve kernels (see resolve.go and resolve4.go) convert accumulated
// cells into 8-bit alpha and blend a solid paint into an ARGB framebuffer.
package raster

import "math"

// Sub-pixel scale for cover and area arithmetic. One pixel of vertical
// extent equals CoverOne; alpha conversion divides back out by CoverShift.
const (
	// CoverShift is the number of fractional bits in cover/area values.
	CoverShift = 8

	// CoverOne is one full pixel of coverage (256).
	CoverOne = 1 << CoverShift

	// CoverTwo is two full pixels of coverage, the even-odd folding period.
	CoverTwo = CoverOne * 2
)

// FixedFrac converts a floating-point value to Q24.8, rounding half away
// from zero. Rounding (rather than truncating) keeps sub-pixel samples
// symmetric around pixel centers, which the last-column winding correction
// in the edge walker depends on.
func FixedFrac(v float64) int32 {
	return int32(math.Round(v * CoverOne))
}

// clampFrac clamps an x-fraction to one pixel's worth of Q24.8 units.
// Fractions can land outside [0, CoverOne] when a segment's column index was
// clamped to the image, so the midpoint lies outside the clamped column.
func clampFrac(fx int32) int32 {
	if fx < 0 {
		return 0
	}
	if fx > CoverOne {
		return CoverOne
	}
	return fx
}
