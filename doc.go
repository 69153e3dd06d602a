// Package tileraster is a CPU-side analytic coverage rasterizer with tiled
// deferred resolve.
//
// Filled polygons — possibly multi-contour, with holes — are accumulated as
// signed cover/area cells over a grid of horizontal strip tiles, then
// resolved into an anti-aliased ARGB framebuffer when a paint color is
// flushed. Accumulation is single-threaded and cheap; resolve is deferred,
// sparse (driven by per-row active-cell bitmasks) and optionally parallel
// across tiles through a persistent worker pool.
//
// Basic usage:
//
//	r, err := tileraster.New(512, 512)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Dispose()
//
//	r.AddPolygon([]float64{100, 100, 400, 120, 250, 420}, nil)
//	if err := r.Flush(0xFF2060C0); err != nil {
//		log.Fatal(err)
//	}
//	img := r.Image()
//
// Polygons accumulated between flushes share one paint color and compose
// additively; across flushes the framebuffer composes in flush order.
// Overlapping same-color fills do not cancel under the non-zero rule:
// each sub-contour's winding is normalized by its signed area.
//
// The package produces no log output by default; see SetLogger.
package tileraster
