package tileraster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// defaultFlatness is the curve flattening tolerance in device pixels used
// by AddPath. 0.25 is below the threshold of visual perception.
const defaultFlatness = 0.25

// AddPath flattens a vector path into polygon contours and accumulates
// them. Curves are approximated with the default flatness tolerance; use
// FlattenPath directly to control it.
func (r *Rasterizer) AddPath(p *path.Data) error {
	if r.disposed {
		return ErrDisposed
	}
	vertices, contours := FlattenPath(p, defaultFlatness)
	return r.AddPolygon(vertices, contours)
}

// FlattenPath converts a path's command stream into the flat vertex array
// and contour-count list consumed by AddPolygon. Each subpath becomes one
// contour; subpaths are closed implicitly (the rasterizer joins the last
// point back to the first). Subpaths with fewer than three points are
// dropped. flatness is the maximum curve deviation in pixels; values <= 0
// fall back to the default.
func FlattenPath(p *path.Data, flatness float64) (vertices []float64, contours []int) {
	if p == nil {
		return nil, nil
	}
	if flatness <= 0 {
		flatness = defaultFlatness
	}

	f := flattener{flatness: flatness}

	var current vec.Vec2
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			f.endContour()
			current = p.Coords[coordIdx]
			f.point(current)
			coordIdx++

		case path.CmdLineTo:
			current = p.Coords[coordIdx]
			f.point(current)
			coordIdx++

		case path.CmdQuadTo:
			f.quadratic(current, p.Coords[coordIdx], p.Coords[coordIdx+1])
			current = p.Coords[coordIdx+1]
			coordIdx += 2

		case path.CmdCubeTo:
			f.cubic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2])
			current = p.Coords[coordIdx+2]
			coordIdx += 3

		case path.CmdClose:
			// Contours close implicitly; nothing to emit.
		}
	}
	f.endContour()

	return f.vertices, f.contours
}

// flattener collects flattened contour points.
type flattener struct {
	flatness float64
	vertices []float64
	contours []int
	count    int // points in the open contour
}

// point appends one vertex to the open contour.
func (f *flattener) point(v vec.Vec2) {
	f.vertices = append(f.vertices, v.X, v.Y)
	f.count++
}

// endContour finalizes the open contour, dropping degenerate ones.
func (f *flattener) endContour() {
	if f.count >= 3 {
		f.contours = append(f.contours, f.count)
	} else if f.count > 0 {
		f.vertices = f.vertices[:len(f.vertices)-2*f.count]
	}
	f.count = 0
}

// quadratic flattens a quadratic Bézier from p0 via control p1 to p2.
// The segment count comes from the curve's error vector e = (P0-2P1+P2)/4:
// n = ceil(sqrt(|e| / flatness)).
func (f *flattener) quadratic(p0, p1, p2 vec.Vec2) {
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	if errLen := e.Length(); errLen > f.flatness {
		n = int(math.Ceil(math.Sqrt(errLen / f.flatness)))
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		f.point(pt)
	}
}

// cubic flattens a cubic Bézier using Wang's formula for the segment count.
func (f *flattener) cubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * f.flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).
			Add(p1.Mul(3 * omt2 * t)).
			Add(p2.Mul(3 * omt * t2)).
			Add(p3.Mul(t2 * t))
		f.point(pt)
	}
}
