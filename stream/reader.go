package stream

import (
	"io"
	"unicode/utf8"

	"github.com/wippyai/binstream"
	"github.com/wippyai/binstream/errors"
)

// DefaultMaxStringSize caps string bodies the Reader will allocate (16 MiB),
// a guard against corrupt or hostile prefixes. Raise it with
// WithMaxStringSize for trusted streams.
const DefaultMaxStringSize = 16 << 20

// Reader consumes streams produced by Writer: 7-bit varint prefixes and
// UTF-8 bodies. Not safe for concurrent use.
type Reader struct {
	src binstream.Source
	max uint64
	b   [1]byte
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMaxStringSize sets the largest string body ReadString will allocate.
func WithMaxStringSize(n uint64) ReaderOption {
	return func(r *Reader) { r.max = n }
}

// NewReader creates a Reader over src.
func NewReader(src binstream.Source, opts ...ReaderOption) (*Reader, error) {
	if src == nil {
		return nil, errors.InvalidArgument(errors.PhaseRead, "nil source")
	}
	r := &Reader{src: src, max: DefaultMaxStringSize}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Position reports the source position.
func (r *Reader) Position() int64 { return r.src.Position() }

func (r *Reader) readByte() (byte, error) {
	for {
		n, err := r.src.ReadBytes(r.b[:])
		if n == 1 {
			return r.b[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

func (r *Reader) readFull(p []byte, what string, start int64) error {
	for len(p) > 0 {
		n, err := r.src.ReadBytes(p)
		p = p[n:]
		if err != nil {
			if err == io.EOF && len(p) > 0 {
				return errors.Truncated(errors.PhaseRead, what, start)
			}
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
	return nil
}

// ReadUvarint reads a 7-bit varint length prefix. An encoding that does not
// fit a uint64, whether by running past ten bytes or by carrying payload
// bits above bit 63 in the tenth byte, is rejected. A clean end of stream
// before the first byte returns io.EOF.
func (r *Reader) ReadUvarint() (uint64, error) {
	start := r.src.Position()
	var result uint64
	var shift uint
	for {
		b, err := r.readByte()
		if err != nil {
			if err == io.EOF && shift > 0 {
				return 0, errors.Truncated(errors.PhaseRead, "length prefix", start)
			}
			return 0, err
		}
		// The tenth byte holds only bit 63
		if shift == 63 && b&0x7f > 1 {
			return 0, errors.InvalidPrefix("length prefix overflows 64 bits", start)
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 70 {
			return 0, errors.InvalidPrefix("length prefix exceeds ten bytes", start)
		}
	}
}

// ReadString reads a length-prefixed string.
func (r *Reader) ReadString() (string, error) {
	start := r.src.Position()
	size, err := r.ReadUvarint()
	if err != nil {
		return "", err
	}
	if size > r.max {
		return "", errors.Overflow(errors.PhaseRead,
			"string body exceeds reader limit", size)
	}
	if size == 0 {
		return "", nil
	}
	buf := make([]byte, size)
	if err := r.readFull(buf, "string body", start); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadChar reads the UTF-8 encoding of one BMP code unit, the counterpart
// of Writer.WriteChar.
func (r *Reader) ReadChar() (uint16, error) {
	start := r.src.Position()
	b0, err := r.readByte()
	if err != nil {
		return 0, err
	}
	if b0 < 0x80 {
		return uint16(b0), nil
	}

	var n int
	switch {
	case b0&0xE0 == 0xC0:
		n = 2
	case b0&0xF0 == 0xE0:
		n = 3
	default:
		// 4-byte sequences decode past the BMP and have no single-unit read
		return 0, errors.New(errors.PhaseRead, errors.KindInvalidCodeUnit).
			Offset(start).
			Value(b0).
			Detail("byte 0x%02X does not start a BMP character", b0).
			Build()
	}

	var seq [utf8.UTFMax]byte
	seq[0] = b0
	if err := r.readFull(seq[1:n], "character", start); err != nil {
		return 0, err
	}
	c, size := utf8.DecodeRune(seq[:n])
	if c == utf8.RuneError && size <= 1 {
		return 0, errors.New(errors.PhaseRead, errors.KindInvalidCodeUnit).
			Offset(start).
			Detail("malformed character sequence % X", seq[:n]).
			Build()
	}
	return uint16(c), nil
}
