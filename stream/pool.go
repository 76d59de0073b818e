package stream

import (
	"sync"
	"sync/atomic"
)

const (
	// Buffer strategy thresholds. The ordering inline < pooled ceiling is
	// load-bearing; the chunk buffer reuses the pooled ceiling.
	inlineBufSize = 24
	maxPooledSize = 64 << 10
)

// byte buffer pool shared by pooled and chunked writes
var bufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, 512)
		return &buf
	},
}

// checkouts tracks live buffers so tests can detect leaked checkouts.
var checkouts atomic.Int64

func getBuf(size uint64) *[]byte {
	checkouts.Add(1)
	buf := bufPool.Get().(*[]byte)
	if uint64(cap(*buf)) < size {
		*buf = make([]byte, 0, size)
	}
	return buf
}

func putBuf(buf *[]byte) {
	checkouts.Add(-1)
	if buf == nil || cap(*buf) > maxPooledSize {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	bufPool.Put(buf)
}
