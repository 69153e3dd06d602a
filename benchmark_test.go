package tileraster

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"golang.org/x/image/vector"
)

// benchScene accumulates a mid-complexity scene: a star plus a hexagon.
func benchScene(r *Rasterizer) {
	_ = r.AddPolygon(star(256, 256, 200, 80), nil)
	_ = r.AddPolygon(regularPolygon(256, 300, 150, 6), nil)
}

func benchmarkFlush(b *testing.B, opts ...Option) {
	r, err := New(512, 512, opts...)
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = r.Dispose() }()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchScene(r)
		if err := r.Flush(0xFF336699); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFlush_SerialScalar(b *testing.B) {
	benchmarkFlush(b, WithWorkers(false), WithSIMD(false))
}

func BenchmarkFlush_SerialSIMD(b *testing.B) {
	benchmarkFlush(b, WithWorkers(false), WithSIMD(true))
}

func BenchmarkFlush_Parallel(b *testing.B) {
	benchmarkFlush(b, WithWorkers(true), WithSIMD(false), WithMinParallelDirtyHeight(1))
}

func BenchmarkFlush_ParallelSIMD(b *testing.B) {
	benchmarkFlush(b, WithWorkers(true), WithSIMD(true), WithMinParallelDirtyHeight(1))
}

// BenchmarkXImageVector is the golang.org/x/image/vector baseline over the
// same star shape.
func BenchmarkXImageVector(b *testing.B) {
	dst := image.NewRGBA(image.Rect(0, 0, 512, 512))
	src := image.NewUniform(color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xFF})
	pts := star(256, 256, 200, 80)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		z := vector.NewRasterizer(512, 512)
		z.DrawOp = draw.Over
		z.MoveTo(float32(pts[0]), float32(pts[1]))
		for j := 2; j < len(pts); j += 2 {
			z.LineTo(float32(pts[j]), float32(pts[j+1]))
		}
		z.ClosePath()
		z.Draw(dst, dst.Bounds(), src, image.Point{})
	}
}

func BenchmarkAddPolygon(b *testing.B) {
	r, err := New(512, 512)
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = r.Dispose() }()

	// Many-sided polygon stresses the edge walker.
	pts := regularPolygon(256, 256, 200, 64)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.AddPolygon(pts, nil); err != nil {
			b.Fatal(err)
		}
		if i%64 == 63 {
			b.StopTimer()
			_ = r.Clear(White) // bound cell magnitudes
			b.StartTimer()
		}
	}
}

// BenchmarkResolveOnly measures the deferred resolve in isolation by
// re-accumulating outside the timer.
func BenchmarkResolveOnly(b *testing.B) {
	r, err := New(512, 512, WithWorkers(false))
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = r.Dispose() }()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		benchScene(r)
		b.StartTimer()
		if err := r.Flush(0xFF336699); err != nil {
			b.Fatal(err)
		}
	}
}
