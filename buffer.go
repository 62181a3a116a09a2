package patchrt

import "sync"

// Buffer is one block-sized signal buffer, reused across DSP edges.
type Buffer []float32

// BufferPool hands out fixed-size Buffers and recycles them between
// blocks. It exists so that steady-state block processing performs no
// heap allocation on the audio path, per spec's allocation discipline.
type BufferPool struct {
	blockSize int
	pool      sync.Pool
}

// NewBufferPool builds a pool of buffers of the given block size.
func NewBufferPool(blockSize int) *BufferPool {
	bp := &BufferPool{blockSize: blockSize}
	bp.pool.New = func() any {
		return make(Buffer, bp.blockSize)
	}
	return bp
}

// Get returns a zeroed buffer of the pool's block size.
func (bp *BufferPool) Get() Buffer {
	b := bp.pool.Get().(Buffer)
	for i := range b {
		b[i] = 0
	}
	return b
}

// Put returns a buffer to the pool for reuse.
func (bp *BufferPool) Put(b Buffer) {
	if len(b) != bp.blockSize {
		return
	}
	bp.pool.Put(b)
}

// BlockSize reports the fixed size of buffers vended by this pool.
func (bp *BufferPool) BlockSize() int { return bp.blockSize }
