package tileraster

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gogpu/tileraster/internal/parallel"
	"github.com/gogpu/tileraster/internal/raster"
)

// Rasterizer accumulates filled polygons into tiled cover/area cells and
// resolves them into an ARGB framebuffer on Flush.
//
// The zero value is not usable; create instances with New. Accumulation
// (AddPolygon, AddPath, DrawPolygon without flush) must stay on one
// goroutine; Flush parallelizes internally across tiles.
type Rasterizer struct {
	width  int
	height int
	cfg    config

	grid  *parallel.Grid
	edges *raster.EdgeRasterizer

	fillRule FillRule

	// pool is created lazily on the first parallel flush. poolFailed
	// latches a creation failure so every later flush stays serial.
	pool       *parallel.Pool
	poolFailed bool

	disposed bool
}

// New creates a rasterizer for a width x height image, cleared to opaque
// white. Returns ErrInvalidDimensions if either dimension is not positive.
func New(width, height int, opts ...Option) (*Rasterizer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	grid := parallel.NewGrid(width, height, cfg.tileHeight)
	grid.Clear(0xFFFFFFFF)

	return &Rasterizer{
		width:    width,
		height:   height,
		cfg:      cfg,
		grid:     grid,
		edges:    raster.NewEdgeRasterizer(width, height, grid),
		fillRule: cfg.fillRule,
	}, nil
}

// Width returns the image width in pixels.
func (r *Rasterizer) Width() int { return r.width }

// Height returns the image height in pixels.
func (r *Rasterizer) Height() int { return r.height }

// TileCount returns the number of horizontal strip tiles.
func (r *Rasterizer) TileCount() int { return r.grid.TileCount() }

// DirtyTileCount returns the number of tiles with unresolved cell writes.
func (r *Rasterizer) DirtyTileCount() int { return len(r.grid.DirtyTiles()) }

// SetFillRule sets the fill rule for subsequent accumulation and flushes.
// The rule in effect at Flush decides how the whole batch resolves, so it
// should not change between accumulating a batch and flushing it.
func (r *Rasterizer) SetFillRule(rule FillRule) {
	r.fillRule = rule
}

// FillRule returns the current fill rule.
func (r *Rasterizer) FillRule() FillRule {
	return r.fillRule
}

// Clear fills the framebuffer with argb and discards all accumulated
// cells, masks and dirty state.
func (r *Rasterizer) Clear(argb uint32) error {
	if r.disposed {
		return ErrDisposed
	}
	r.grid.Clear(argb)
	return nil
}

// AddPolygon accumulates a polygon given as a flat [x0,y0, x1,y1, ...]
// vertex array in pixel coordinates, with an optional per-contour
// vertex-count list. Inputs with fewer than three points contribute
// nothing; so do non-finite coordinates and geometry entirely outside the
// image. A malformed contour list degrades to a single contour.
func (r *Rasterizer) AddPolygon(vertices []float64, contours []int) error {
	if r.disposed {
		return ErrDisposed
	}
	if len(vertices) < 6 {
		return nil
	}
	r.edges.Polygon(vertices, contours)
	return nil
}

// Flush resolves every dirty tile, blending the paint color into the
// framebuffer under the current fill rule. It returns once all tiles are
// resolved; afterwards all cells and masks are zero and no tile is dirty.
//
// If a worker job fails, Flush returns the failures as joined *WorkerError
// values and the affected tiles' framebuffers are indeterminate.
func (r *Rasterizer) Flush(argb uint32) error {
	if r.disposed {
		return ErrDisposed
	}

	dirty := r.grid.DirtyTiles()
	if len(dirty) == 0 {
		return nil
	}
	rule := raster.FillRule(r.fillRule)

	if r.cfg.useWorkers && len(dirty) >= 2 && r.grid.DirtyHeight() >= r.cfg.minParallelDirtyHeight {
		if pool := r.ensurePool(); pool != nil {
			Logger().Debug("tileraster: parallel flush",
				"tiles", len(dirty), "dirtyHeight", r.grid.DirtyHeight())
			failures := pool.Resolve(dirty, argb, rule, r.cfg.useSIMD)
			if len(failures) > 0 {
				errs := make([]error, len(failures))
				for i, f := range failures {
					errs[i] = &WorkerError{Tile: f.Tile, Err: f.Err}
				}
				return errors.Join(errs...)
			}
			r.grid.ResetDirtyRange()
			return nil
		}
	}

	Logger().Debug("tileraster: serial flush", "tiles", len(dirty))
	for _, t := range dirty {
		if r.cfg.useSIMD {
			raster.ResolveTile4(t.Covers(), t.Areas(), t.Mask(), t.Frame(),
				t.Width, t.Height, argb, rule)
		} else {
			raster.ResolveTile(t.Covers(), t.Areas(), t.Mask(), t.Frame(),
				t.Width, t.Height, argb, rule)
		}
		t.Dirty = false
	}
	r.grid.ResetDirtyRange()
	return nil
}

// ensurePool returns the worker pool, creating it on first use. A creation
// failure is logged once and latched; all flushes then stay serial.
func (r *Rasterizer) ensurePool() *parallel.Pool {
	if r.pool != nil {
		return r.pool
	}
	if r.poolFailed {
		return nil
	}

	// Pool size is min(configured, tiles, host parallelism - 1); a
	// non-positive configuration means "as many as the host allows".
	hostCap := runtime.GOMAXPROCS(0) - 1
	if hostCap < 1 {
		hostCap = 1
	}
	n := r.cfg.workerCount
	if n <= 0 || n > hostCap {
		n = hostCap
	}
	if n > r.grid.TileCount() {
		n = r.grid.TileCount()
	}

	pool, err := parallel.NewPool(n)
	if err != nil {
		Logger().Warn("tileraster: worker pool creation failed, resolving serially", "err", err)
		r.poolFailed = true
		return nil
	}
	Logger().Debug("tileraster: worker pool created", "workers", n)
	r.pool = pool
	return pool
}

// Buffer returns a copy of the composed framebuffer: width*height packed
// ARGB words, row-major. Returns nil after Dispose.
func (r *Rasterizer) Buffer() []uint32 {
	if r.disposed {
		return nil
	}
	dst := make([]uint32, r.width*r.height)
	r.grid.Compose(dst)
	return dst
}

// Dispose shuts down the worker pool and releases the rasterizer. Any
// further use, including a second Dispose, returns ErrDisposed.
func (r *Rasterizer) Dispose() error {
	if r.disposed {
		return ErrDisposed
	}
	r.disposed = true
	if r.pool != nil {
		r.pool.Close()
		r.pool = nil
	}
	Logger().Debug("tileraster: disposed")
	return nil
}
