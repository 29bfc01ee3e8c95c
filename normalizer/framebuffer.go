// SPDX-License-Identifier: EPL-2.0

package normalizer

// frame is one analysis window: equal-length planar samples for every channel.
type frame struct {
	index   uint64
	samples [][]float64
}

// size returns the number of samples per channel.
func (f *frame) size() int {
	return len(f.samples[0])
}

// frameBuffer accumulates planar input until a full frame is available for
// every channel. Channels always advance together.
type frameBuffer struct {
	frameSize int
	pending   [][]float64
	head      int // read offset into pending
	next      uint64
	free      []*frame
}

func newFrameBuffer(channels, frameSize int) *frameBuffer {
	b := &frameBuffer{
		frameSize: frameSize,
		pending:   make([][]float64, channels),
	}
	for c := range b.pending {
		b.pending[c] = make([]float64, 0, frameSize)
	}
	return b
}

// len returns the number of buffered samples per channel.
func (b *frameBuffer) len() int {
	return len(b.pending[0]) - b.head
}

// write appends one chunk. Callers guarantee len(in) matches the channel
// count and all channels hold the same number of samples.
func (b *frameBuffer) write(in [][]float64) {
	for c, samples := range in {
		b.pending[c] = append(b.pending[c], samples...)
	}
}

// nextFrame pops the oldest full frame. When no full frame is left it compacts
// the pending storage and returns false.
func (b *frameBuffer) nextFrame() (*frame, bool) {
	if b.len() < b.frameSize {
		b.compact()
		return nil, false
	}

	f := b.alloc(b.frameSize)
	for c := range b.pending {
		copy(f.samples[c], b.pending[c][b.head:b.head+b.frameSize])
	}
	b.head += b.frameSize
	return f, true
}

// drain pops whatever is left as a short frame. It returns false when
// nothing is pending.
func (b *frameBuffer) drain() (*frame, bool) {
	n := b.len()
	if n == 0 {
		return nil, false
	}

	f := b.alloc(n)
	for c := range b.pending {
		copy(f.samples[c], b.pending[c][b.head:])
	}
	b.head += n
	b.compact()
	return f, true
}

// release hands a consumed full-size frame back for reuse.
func (b *frameBuffer) release(f *frame) {
	if f.size() == b.frameSize {
		b.free = append(b.free, f)
	}
}

func (b *frameBuffer) alloc(size int) *frame {
	idx := b.next
	b.next++

	if size == b.frameSize && len(b.free) > 0 {
		f := b.free[len(b.free)-1]
		b.free = b.free[:len(b.free)-1]
		f.index = idx
		return f
	}

	f := &frame{index: idx, samples: make([][]float64, len(b.pending))}
	for c := range f.samples {
		f.samples[c] = make([]float64, size)
	}
	return f
}

func (b *frameBuffer) compact() {
	if b.head == 0 {
		return
	}
	for c := range b.pending {
		n := copy(b.pending[c], b.pending[c][b.head:])
		b.pending[c] = b.pending[c][:n]
	}
	b.head = 0
}
