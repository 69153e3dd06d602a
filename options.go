package tileraster

// FillRule specifies how per-pixel signed coverage maps to alpha.
type FillRule int

const (
	// FillRuleNonZero fills everything with non-zero winding (default).
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd fills where the winding number is odd.
	FillRuleEvenOdd
)

// Option configures a Rasterizer during creation.
//
// Example:
//
//	// Default configuration.
//	r, err := tileraster.New(800, 600)
//
//	// Small tiles, serial resolve only.
//	r, err := tileraster.New(800, 600,
//		tileraster.WithTileHeight(16),
//		tileraster.WithWorkers(false))
type Option func(*config)

// config holds the resolved Rasterizer configuration.
type config struct {
	tileHeight             int
	useSIMD                bool
	useWorkers             bool
	workerCount            int
	minParallelDirtyHeight int
	fillRule               FillRule
}

// defaultConfig returns the default configuration.
func defaultConfig() config {
	return config{
		tileHeight:             64,
		useSIMD:                true,
		useWorkers:             true,
		workerCount:            0, // resolved to max(1, GOMAXPROCS-1)
		minParallelDirtyHeight: 256,
		fillRule:               FillRuleNonZero,
	}
}

// WithTileHeight sets the vertical strip size in pixels. Values are
// clamped to [1, image height] at construction. The default is 64.
func WithTileHeight(h int) Option {
	return func(c *config) {
		c.tileHeight = h
	}
}

// WithSIMD enables or disables the 4-lane resolve kernel. Both kernels
// produce bit-identical output; this is a performance switch only.
// Enabled by default.
func WithSIMD(enabled bool) Option {
	return func(c *config) {
		c.useSIMD = enabled
	}
}

// WithWorkers enables or disables parallel resolve through the worker
// pool. Enabled by default; small dirty regions resolve serially either
// way (see WithMinParallelDirtyHeight).
func WithWorkers(enabled bool) Option {
	return func(c *config) {
		c.useWorkers = enabled
	}
}

// WithWorkerCount sets the worker pool size. Values <= 0 resolve to
// max(1, GOMAXPROCS-1); any value is capped by both the tile count and
// max(1, GOMAXPROCS-1).
func WithWorkerCount(n int) Option {
	return func(c *config) {
		c.workerCount = n
	}
}

// WithMinParallelDirtyHeight sets the smallest dirty-region height, in
// rows, for which a flush dispatches to the worker pool. Smaller regions
// resolve serially in the caller's goroutine. The default is 256.
func WithMinParallelDirtyHeight(h int) Option {
	return func(c *config) {
		c.minParallelDirtyHeight = h
	}
}

// WithFillRule sets the initial fill rule. The default is FillRuleNonZero.
func WithFillRule(rule FillRule) Option {
	return func(c *config) {
		c.fillRule = rule
	}
}
