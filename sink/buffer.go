package sink

import (
	"io"

	"github.com/wippyai/binstream"
	"github.com/wippyai/binstream/errors"
)

// Buffer is an in-memory Sink and Source with an explicit position.
// Writing past the end grows the buffer; a position beyond the end
// zero-fills the gap on the next write. The zero value is ready to use.
type Buffer struct {
	data []byte
	pos  int64
}

var (
	_ binstream.Sink   = (*Buffer)(nil)
	_ binstream.Source = (*Buffer)(nil)
)

// NewBuffer creates a Buffer with the given initial capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]byte, 0, capacity)}
}

// WriteBytes writes p at the current position, growing as needed.
func (b *Buffer) WriteBytes(p []byte) (int, error) {
	end := b.pos + int64(len(p))
	if old := int64(len(b.data)); end > old {
		if end > int64(cap(b.data)) {
			grown := make([]byte, end, growCap(cap(b.data), end))
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:end]
			// retained capacity may hold bytes from before a Reset
			if b.pos > old {
				clear(b.data[old:b.pos])
			}
		}
	}
	copy(b.data[b.pos:end], p)
	b.pos = end
	return len(p), nil
}

// ReadBytes reads up to len(p) bytes from the current position.
func (b *Buffer) ReadBytes(p []byte) (int, error) {
	if b.pos >= int64(len(b.data)) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += int64(n)
	return n, nil
}

// Position returns the current read/write position.
func (b *Buffer) Position() int64 { return b.pos }

// SetPosition moves the read/write position. Positions past the end are
// legal; the gap zero-fills on the next write.
func (b *Buffer) SetPosition(pos int64) error {
	if pos < 0 {
		return errors.InvalidArgument(errors.PhaseWrite, "negative position")
	}
	b.pos = pos
	return nil
}

// Bytes returns the written contents. The slice aliases internal storage
// and is valid until the next write.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the number of bytes written.
func (b *Buffer) Len() int { return len(b.data) }

// Reset discards the contents and rewinds to the start, retaining storage.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.pos = 0
}

// growCap doubles until need fits, with a floor for tiny buffers.
func growCap(have int, need int64) int64 {
	c := int64(have)
	if c < 64 {
		c = 64
	}
	for c < need {
		c *= 2
	}
	return c
}
