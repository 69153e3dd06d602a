package tileraster

import (
	"image"
	"testing"

	"golang.org/x/image/vector"
)

// Cross-checks against golang.org/x/image/vector, the reference analytic
// rasterizer. On integer-aligned axis-parallel rectangles both rasterizers
// compute exact 0-or-full coverage, so the covered pixel sets must match
// exactly.

func xVectorCoverage(t *testing.T, width, height int, poly []float64) *image.Alpha {
	t.Helper()
	z := vector.NewRasterizer(width, height)
	z.MoveTo(float32(poly[0]), float32(poly[1]))
	for i := 2; i < len(poly); i += 2 {
		z.LineTo(float32(poly[i]), float32(poly[i+1]))
	}
	z.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

func TestReference_IntegerRectanglesMatchXImageVector(t *testing.T) {
	rects := [][4]float64{
		{2, 3, 6, 6},
		{0, 0, 8, 8},
		{1, 0, 2, 7},
		{5, 5, 6, 6},
	}
	for _, rc := range rects {
		x0, y0, x1, y1 := rc[0], rc[1], rc[2], rc[3]
		poly := []float64{x0, y0, x1, y0, x1, y1, x0, y1}

		r := mustNew(t, 8, 8)
		if err := r.Clear(Black); err != nil {
			t.Fatal(err)
		}
		if err := r.DrawPolygon(poly, White, true); err != nil {
			t.Fatal(err)
		}
		buf := r.Buffer()

		ref := xVectorCoverage(t, 8, 8, poly)

		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				refCovered := ref.AlphaAt(x, y).A == 0xFF
				refEmpty := ref.AlphaAt(x, y).A == 0
				if !refCovered && !refEmpty {
					t.Fatalf("rect %v: reference has partial alpha %d at (%d,%d); expected exact coverage",
						rc, ref.AlphaAt(x, y).A, x, y)
				}

				got := pixel(buf, 8, x, y)
				if refCovered && got != White {
					t.Errorf("rect %v: pixel (%d,%d) = %08x, reference covered", rc, x, y, got)
				}
				if refEmpty && got != Black {
					t.Errorf("rect %v: pixel (%d,%d) = %08x, reference empty", rc, x, y, got)
				}
			}
		}
	}
}
