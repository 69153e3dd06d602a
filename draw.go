package tileraster

// DrawOption configures a single DrawPolygon call.
type DrawOption func(*drawOptions)

type drawOptions struct {
	contours []int
	rule     FillRule
	ruleSet  bool
}

// WithContours supplies the per-contour vertex-count list for this draw,
// partitioning the vertex array into sub-contours (holes under even-odd).
func WithContours(counts []int) DrawOption {
	return func(o *drawOptions) {
		o.contours = counts
	}
}

// WithWinding selects the fill rule for this draw. The rule is applied to
// the rasterizer before accumulating, exactly as SetFillRule would be, so
// it also governs the flush that resolves this batch.
func WithWinding(rule FillRule) DrawOption {
	return func(o *drawOptions) {
		o.rule = rule
		o.ruleSet = true
	}
}

// DrawPolygon accumulates a polygon and, when flushNow is set, immediately
// flushes it with the given paint. It is shorthand for an optional
// SetFillRule, an AddPolygon, and an optional Flush.
func (r *Rasterizer) DrawPolygon(vertices []float64, argb uint32, flushNow bool, opts ...DrawOption) error {
	if r.disposed {
		return ErrDisposed
	}

	var o drawOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.ruleSet {
		r.SetFillRule(o.rule)
	}

	if err := r.AddPolygon(vertices, o.contours); err != nil {
		return err
	}
	if flushNow {
		return r.Flush(argb)
	}
	return nil
}
