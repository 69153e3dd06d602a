// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

// Polygon accumulates a polygon given as a flat vertex array
// [x0,y0, x1,y1, ...] with an optional per-contour vertex-count list.
//
// Each sub-contour's winding is normalized by its signed area: contours
// wound positively (clockwise in image coordinates, y down) are traversed
// in reverse, so that overlapping same-color fills stay additive under the
// non-zero rule instead of cancelling. This matches painter's-algorithm
// compositing of SVG-style scenes.
//
// A contour list with an entry <= 0, or whose entries do not sum to the
// point count, is ignored and the vertices are treated as one contour.
func (er *EdgeRasterizer) Polygon(vertices []float64, contours []int) {
	n := len(vertices) / 2
	if n < 3 {
		return
	}

	if !validContours(contours, n) {
		contours = nil
	}
	if contours == nil {
		er.contour(vertices[:n*2])
		return
	}

	start := 0
	for _, k := range contours {
		er.contour(vertices[start*2 : (start+k)*2])
		start += k
	}
}

// contour emits the edges of one closed sub-contour, normalizing winding.
func (er *EdgeRasterizer) contour(v []float64) {
	k := len(v) / 2
	if k < 2 {
		return
	}

	// Signed double area (shoelace). Positive means the traversal winds
	// clockwise in image coordinates and must be reversed.
	area2 := 0.0
	for i := 0; i < k; i++ {
		j := i + 1
		if j == k {
			j = 0
		}
		area2 += v[i*2]*v[j*2+1] - v[j*2]*v[i*2+1]
	}

	reverse := area2 > 0
	for i := 0; i < k; i++ {
		j := i + 1
		if j == k {
			j = 0
		}
		if reverse {
			// Reverse traversal: same edges, flipped orientation.
			er.Line(v[j*2], v[j*2+1], v[i*2], v[i*2+1])
		} else {
			er.Line(v[i*2], v[i*2+1], v[j*2], v[j*2+1])
		}
	}
}

// validContours reports whether the contour-count list partitions n points.
func validContours(contours []int, n int) bool {
	if contours == nil {
		return false
	}
	sum := 0
	for _, k := range contours {
		if k <= 0 {
			return false
		}
		sum += k
	}
	return sum == n
}
