package stream

import (
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/binstream"
	"github.com/wippyai/binstream/encoding"
	"github.com/wippyai/binstream/errors"
)

// Writer encodes UTF-16 code units and strings to a Sink. The encoding is
// classified once at construction; writes dispatch on the cached profile.
//
// A Writer owns its sink for the writer's lifetime and is NOT safe for
// concurrent use. A sink failure mid-body leaves the stream tail undefined;
// reposition the sink before writing again.
type Writer struct {
	sink binstream.Sink
	enc  encoding.Encoding
	prof encoding.Profile
}

// Option configures a Writer.
type Option func(*Writer)

// WithEncoding sets the text encoding. The default is UTF-8 substituting
// '?' for unpaired surrogates, which is fast-path eligible.
func WithEncoding(enc encoding.Encoding) Option {
	return func(w *Writer) { w.enc = enc }
}

// New creates a Writer that owns sink for its lifetime.
func New(sink binstream.Sink, opts ...Option) (*Writer, error) {
	if sink == nil {
		return nil, errors.InvalidArgument(errors.PhaseClassify, "nil sink")
	}
	w := &Writer{sink: sink, enc: encoding.Default()}
	for _, opt := range opts {
		opt(w)
	}
	if w.enc == nil {
		return nil, errors.InvalidArgument(errors.PhaseClassify, "nil encoding")
	}
	w.prof = encoding.Classify(w.enc)
	Logger().Debug("writer classified",
		zap.Int("code_page", w.enc.CodePage()),
		zap.Bool("fast_utf8", w.prof.FastUTF8),
		zap.Int("max_bytes_per_unit", w.prof.MaxBytesPerUnit))
	return w, nil
}

// FastUTF8 reports whether writes take the specialized UTF-8 path.
// Exposed for white-box inspection; the output bytes are the contract.
func (w *Writer) FastUTF8() bool { return w.prof.FastUTF8 }

// worstCase is the encoded-size upper bound for n code units: the worst
// per-unit width plus slack for encoder flush state. Computed in 64-bit
// before any comparison so multi-gigabyte inputs never wrap.
func worstCase(n, maxPerUnit int) uint64 {
	return (uint64(n) + 1) * uint64(maxPerUnit)
}

// WriteChar writes the encoded bytes of one UTF-16 code unit, without a
// length prefix. A surrogate half is treated as an isolated unit and
// resolved through the fallback.
func (w *Writer) WriteChar(c uint16) error {
	if w.prof.FastUTF8 {
		// At most 3 bytes for a BMP unit and a fast-eligible replacement
		// is at most 1, so a pooled checkout is never needed here.
		var arr [utf8.UTFMax]byte
		out, err := encoding.AppendUTF16(arr[:0], []uint16{c}, w.prof.Fallback)
		if err != nil {
			return err
		}
		return w.writeAll(out)
	}

	worst := worstCase(1, w.prof.MaxBytesPerUnit)
	if worst <= inlineBufSize {
		var arr [inlineBufSize]byte
		out, err := w.enc.NewEncoder().Encode(arr[:0], []uint16{c}, true)
		if err != nil {
			return err
		}
		return w.writeAll(out)
	}

	// Only a replacement wider than the inline buffer lands here.
	buf := getBuf(worst)
	defer putBuf(buf)
	out, err := w.enc.NewEncoder().Encode((*buf)[:0], []uint16{c}, true)
	*buf = out[:0]
	if err != nil {
		return err
	}
	return w.writeAll(out)
}

// WriteChars writes the encoded bytes of a code-unit sequence, without a
// length prefix. The buffer strategy follows the worst-case byte expansion;
// all strategies produce byte-identical output.
func (w *Writer) WriteChars(chars []uint16) error {
	worst := worstCase(len(chars), w.prof.MaxBytesPerUnit)
	switch {
	case worst <= inlineBufSize:
		var arr [inlineBufSize]byte
		out, err := w.encodeAll(arr[:0], chars)
		if err != nil {
			return err
		}
		return w.writeAll(out)

	case worst <= maxPooledSize:
		buf := getBuf(worst)
		defer putBuf(buf)
		out, err := w.encodeAll((*buf)[:0], chars)
		*buf = out[:0]
		if err != nil {
			return err
		}
		return w.writeAll(out)

	default:
		return w.writeChunked(chars)
	}
}

// WriteString writes a 7-bit varint count of encoded bytes followed by
// exactly that many body bytes. The count is exact, never an estimate, and
// is computed before the prefix touches the sink, so an encoding error
// leaves the sink untouched.
func (w *Writer) WriteString(s string) error {
	if w.prof.FastUTF8 {
		size, err := encoding.StringLength(s, w.prof.Fallback)
		if err != nil {
			return err
		}
		if err := w.writePrefix(size); err != nil {
			return err
		}
		if size == 0 {
			return nil
		}
		return w.writeStringBody(s)
	}
	// Generic encodings consume UTF-16 code units.
	return w.WriteUTF16String(utf16.Encode([]rune(s)))
}

// WriteUTF16String is WriteString for a raw code-unit sequence.
func (w *Writer) WriteUTF16String(chars []uint16) error {
	if w.prof.FastUTF8 {
		size, err := encoding.UTF16Length(chars, w.prof.Fallback)
		if err != nil {
			return err
		}
		if err := w.writePrefix(size); err != nil {
			return err
		}
		if size == 0 {
			return nil
		}
		return w.WriteChars(chars)
	}
	return w.writeGenericString(chars)
}

// encodeAll encodes a complete sequence in one shot.
func (w *Writer) encodeAll(dst []byte, chars []uint16) ([]byte, error) {
	if w.prof.FastUTF8 {
		return encoding.AppendUTF16(dst, chars, w.prof.Fallback)
	}
	return w.enc.NewEncoder().Encode(dst, chars, true)
}

// chunkUnits is how many code units fit one chunk buffer at worst case,
// never less than one so the chunk loop always advances even when a single
// replacement outgrows the standard chunk buffer.
func (w *Writer) chunkUnits() int {
	n := maxPooledSize/w.prof.MaxBytesPerUnit - 1
	if n < 1 {
		n = 1
	}
	return n
}

// chunkBufSize is the chunk buffer size: the standard ceiling, or the
// worst case of one chunk when a wide replacement exceeds it.
func (w *Writer) chunkBufSize(units int) uint64 {
	size := uint64(maxPooledSize)
	if wc := worstCase(units, w.prof.MaxBytesPerUnit); wc > size {
		size = wc
	}
	return size
}

// writeChunked loops a fixed pooled buffer over the input. The stateful
// encoder carries a trailing high surrogate between chunks, so output is
// byte-identical to a whole-input encode.
func (w *Writer) writeChunked(chars []uint16) error {
	enc := w.enc.NewEncoder()
	units := w.chunkUnits()
	buf := getBuf(w.chunkBufSize(units))
	defer putBuf(buf)

	Logger().Debug("chunked write",
		zap.Int("input_units", len(chars)),
		zap.Int("chunk_units", units))
	for len(chars) > 0 {
		n := units
		if n > len(chars) {
			n = len(chars)
		}
		out, err := enc.Encode((*buf)[:0], chars[:n], n == len(chars))
		*buf = out[:0]
		if err != nil {
			return err
		}
		if err := w.writeAll(out); err != nil {
			return err
		}
		chars = chars[n:]
	}
	return nil
}

// writeStringBody streams the UTF-8 bytes of s after its prefix. Chunks
// split at rune starts, so malformed-byte substitution is unaffected by
// chunking.
func (w *Writer) writeStringBody(s string) error {
	if len(s) <= inlineBufSize {
		var arr [inlineBufSize]byte
		out, err := encoding.AppendString(arr[:0], s, w.prof.Fallback)
		if err != nil {
			return err
		}
		return w.writeAll(out)
	}

	buf := getBuf(maxPooledSize)
	defer putBuf(buf)
	for len(s) > 0 {
		n := len(s)
		if n > maxPooledSize {
			n = maxPooledSize
			for n > 0 && !utf8.RuneStart(s[n]) {
				n--
			}
			if n == 0 {
				// nothing but continuation bytes; any split is safe
				n = maxPooledSize
			}
		}
		out, err := encoding.AppendString((*buf)[:0], s[:n], w.prof.Fallback)
		*buf = out[:0]
		if err != nil {
			return err
		}
		if err := w.writeAll(out); err != nil {
			return err
		}
		s = s[n:]
	}
	return nil
}

// writeGenericString prefixes strings for non-fast encodings. Inputs within
// the pooling ceiling encode once into a scratch buffer and prefix with the
// actual length. Past the ceiling the exact length is not cheaply
// computable, so a counting pre-pass runs first; the pre-pass also
// validates, keeping encoding failures ahead of the prefix.
func (w *Writer) writeGenericString(chars []uint16) error {
	worst := worstCase(len(chars), w.prof.MaxBytesPerUnit)

	if worst <= inlineBufSize {
		var arr [inlineBufSize]byte
		out, err := w.enc.NewEncoder().Encode(arr[:0], chars, true)
		if err != nil {
			return err
		}
		if err := w.writePrefix(uint64(len(out))); err != nil {
			return err
		}
		return w.writeAll(out)
	}

	if worst <= maxPooledSize {
		buf := getBuf(worst)
		defer putBuf(buf)
		out, err := w.enc.NewEncoder().Encode((*buf)[:0], chars, true)
		*buf = out[:0]
		if err != nil {
			return err
		}
		if err := w.writePrefix(uint64(len(out))); err != nil {
			return err
		}
		return w.writeAll(out)
	}

	size, err := w.countChunked(chars)
	if err != nil {
		return err
	}
	if err := w.writePrefix(size); err != nil {
		return err
	}
	return w.writeChunked(chars)
}

// countChunked measures the encoded size of chars without emitting output.
func (w *Writer) countChunked(chars []uint16) (uint64, error) {
	enc := w.enc.NewEncoder()
	units := w.chunkUnits()
	buf := getBuf(w.chunkBufSize(units))
	defer putBuf(buf)

	var total uint64
	for len(chars) > 0 {
		n := units
		if n > len(chars) {
			n = len(chars)
		}
		out, err := enc.Encode((*buf)[:0], chars[:n], n == len(chars))
		*buf = out[:0]
		if err != nil {
			return 0, err
		}
		total += uint64(len(out))
		chars = chars[n:]
	}
	return total, nil
}

// writePrefix writes the 7-bit varint byte count. The prefix precedes all
// body bytes and is never included in the count itself.
func (w *Writer) writePrefix(size uint64) error {
	var arr [maxUvarintLen]byte
	return w.writeAll(AppendUvarint(arr[:0], size))
}

// writeAll pushes p to the sink, propagating sink errors verbatim.
func (w *Writer) writeAll(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	n, err := w.sink.WriteBytes(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}
