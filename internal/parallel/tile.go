// Package parallel provides the tiled accumulation state and the worker
// pool for parallel resolve.
//
// The image is divided into horizontal strips ("tiles") of equal height,
// the last strip possibly shorter. Each tile owns four buffers: signed
// cover and area cells, an ARGB framebuffer, and a per-row active-cell
// bitmask. During a parallel flush a tile's buffers are moved into a worker
// job and moved back with the result; they are never aliased by two
// goroutines at once.
package parallel

// Tile is one horizontal strip of the image.
//
// Tile methods are not safe for concurrent use; during a parallel flush
// each tile is owned by exactly one worker job.
type Tile struct {
	// Index is the tile's position in the grid, top to bottom.
	Index int

	// StartY is the image scanline of the tile's first row.
	StartY int

	// Width is the image width; every tile spans the full width.
	Width int

	// Height is the strip height in rows.
	Height int

	// Dirty is set when any cell in the tile received an edge write
	// since the last resolve.
	Dirty bool

	buffers Buffers
}

// Buffers bundles the four per-tile buffers that travel into worker jobs.
// Ownership moves with the value: after Tile.Detach the tile holds no
// buffers until Attach returns them.
type Buffers struct {
	// Covers holds width*height signed cover cells (Q24.8).
	Covers []int32

	// Areas holds width*height signed area cells (Q24.8).
	Areas []int32

	// Mask is the active-cell bitmask, ceil(width/32) words per row.
	// Bit x%32 of word x/32 in a row represents column x.
	Mask []uint32

	// Frame holds width*height ARGB pixels (0xAARRGGBB).
	Frame []uint32
}

// NewTile allocates a tile and its buffers. The framebuffer starts zeroed;
// callers fill it through Fill or the grid's Clear.
func NewTile(index, startY, width, height int) *Tile {
	wordsPerRow := (width + 31) / 32
	return &Tile{
		Index:  index,
		StartY: startY,
		Width:  width,
		Height: height,
		buffers: Buffers{
			Covers: make([]int32, width*height),
			Areas:  make([]int32, width*height),
			Mask:   make([]uint32, wordsPerRow*height),
			Frame:  make([]uint32, width*height),
		},
	}
}

// WordsPerRow returns the number of mask words per tile row.
func (t *Tile) WordsPerRow() int {
	return (t.Width + 31) / 32
}

// Detach takes the tile's buffers for transfer into a worker job.
// Detaching a tile whose buffers are already in flight is a programmer
// error and panics: it would alias the buffers across goroutines.
func (t *Tile) Detach() Buffers {
	if t.buffers.Covers == nil {
		panic("parallel: tile buffers already detached")
	}
	b := t.buffers
	t.buffers = Buffers{}
	return b
}

// Attach returns buffers taken by Detach.
func (t *Tile) Attach(b Buffers) {
	if t.buffers.Covers != nil {
		panic("parallel: tile buffers already attached")
	}
	t.buffers = b
}

// Attached reports whether the tile currently owns its buffers.
func (t *Tile) Attached() bool {
	return t.buffers.Covers != nil
}

// Covers returns the cover cells. Valid only while attached.
func (t *Tile) Covers() []int32 { return t.buffers.Covers }

// Areas returns the area cells. Valid only while attached.
func (t *Tile) Areas() []int32 { return t.buffers.Areas }

// Mask returns the active-cell bitmask. Valid only while attached.
func (t *Tile) Mask() []uint32 { return t.buffers.Mask }

// Frame returns the ARGB framebuffer. Valid only while attached.
func (t *Tile) Frame() []uint32 { return t.buffers.Frame }

// Fill sets every framebuffer pixel to argb.
func (t *Tile) Fill(argb uint32) {
	frame := t.buffers.Frame
	for i := range frame {
		frame[i] = argb
	}
}

// ZeroCells clears the cover, area and mask buffers and the dirty flag.
func (t *Tile) ZeroCells() {
	clear(t.buffers.Covers)
	clear(t.buffers.Areas)
	clear(t.buffers.Mask)
	t.Dirty = false
}
