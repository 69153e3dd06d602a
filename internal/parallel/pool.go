package parallel

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/tileraster/internal/raster"
)

// Pool is a set of long-lived worker goroutines that resolve tiles.
//
// Each worker owns a single receiving channel for jobs. A job carries a
// tile's detached buffers together with the resolve parameters; the worker
// runs the masked resolve and sends the same buffers back on the job's
// reply channel. The orchestrator re-attaches them to the originating
// tile, so no buffer is ever shared between goroutines.
//
// Pool is safe for concurrent use after creation.
type Pool struct {
	workers int
	jobs    []chan job
	wg      sync.WaitGroup
	running atomic.Bool
}

// job carries one tile's detached buffers and resolve parameters.
type job struct {
	tile    int
	width   int
	height  int
	buffers Buffers
	argb    uint32
	rule    raster.FillRule
	simd    bool
	reply   chan<- result
}

// result returns the buffers and the job outcome.
type result struct {
	tile    int
	buffers Buffers
	err     error
}

// Failure describes a failed resolve job.
type Failure struct {
	// Tile is the index of the tile whose job failed.
	Tile int

	// Err is the cause.
	Err error
}

// NewPool creates a pool with the given number of workers and starts them.
// Returns an error if workers is not positive.
func NewPool(workers int) (*Pool, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("parallel: invalid worker count %d", workers)
	}

	p := &Pool{
		workers: workers,
		jobs:    make([]chan job, workers),
	}
	for i := range p.jobs {
		p.jobs[i] = make(chan job, 1)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(p.jobs[i])
	}
	return p, nil
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// worker drains its job channel until Close.
func (p *Pool) worker(jobs <-chan job) {
	defer p.wg.Done()
	for j := range jobs {
		err := runJob(&j)
		j.reply <- result{tile: j.tile, buffers: j.buffers, err: err}
	}
}

// runJob executes one resolve, converting a panic into a job error so a
// failing tile surfaces to the flush caller instead of crashing the pool.
func runJob(j *job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parallel: resolve panic: %v", r)
		}
	}()

	b := &j.buffers
	if j.simd {
		raster.ResolveTile4(b.Covers, b.Areas, b.Mask, b.Frame, j.width, j.height, j.argb, j.rule)
	} else {
		raster.ResolveTile(b.Covers, b.Areas, b.Mask, b.Frame, j.width, j.height, j.argb, j.rule)
	}
	return nil
}

// Resolve dispatches the given tiles to the workers and blocks until every
// job has completed and all buffers are re-attached. Tiles that resolved
// successfully have their dirty flag cleared; failed tiles are reported in
// the returned slice and keep their (indeterminate) framebuffer.
func (p *Pool) Resolve(tiles []*Tile, argb uint32, rule raster.FillRule, simd bool) []Failure {
	if len(tiles) == 0 || !p.running.Load() {
		return nil
	}

	reply := make(chan result, len(tiles))
	byIndex := make(map[int]*Tile, len(tiles))
	for i, t := range tiles {
		byIndex[t.Index] = t
		p.jobs[i%p.workers] <- job{
			tile:    t.Index,
			width:   t.Width,
			height:  t.Height,
			buffers: t.Detach(),
			argb:    argb,
			rule:    rule,
			simd:    simd,
			reply:   reply,
		}
	}

	var failures []Failure
	for range tiles {
		res := <-reply
		t := byIndex[res.tile]
		t.Attach(res.buffers)
		if res.err != nil {
			failures = append(failures, Failure{Tile: res.tile, Err: res.err})
			continue
		}
		t.Dirty = false
	}
	return failures
}

// Close stops the workers after their queued jobs finish. Safe to call
// more than once.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	for _, ch := range p.jobs {
		close(ch)
	}
	p.wg.Wait()
}
