package encoding

import (
	"unicode/utf8"

	"github.com/wippyai/binstream/errors"
)

const (
	surrSelf = 0xE000 // first code point above the surrogate range
	surrMin  = 0xD800
	surrHalf = 0xDC00 // first low surrogate
)

func isSurrogate(c uint16) bool     { return c >= surrMin && c < surrSelf }
func isHighSurrogate(c uint16) bool { return c >= surrMin && c < surrHalf }
func isLowSurrogate(c uint16) bool  { return c >= surrHalf && c < surrSelf }

// combineSurrogates maps a valid surrogate pair to its code point.
func combineSurrogates(high, low uint16) rune {
	return 0x10000 + (rune(high)-surrMin)<<10 + (rune(low) - surrHalf)
}

// UTF8 is the UTF-8 encoding with a configurable fallback. The zero value
// throws on unpaired surrogates.
type UTF8 struct {
	fb Fallback
}

var _ Encoding = UTF8{}

// NewUTF8 returns a UTF-8 encoding with the given fallback.
func NewUTF8(fb Fallback) UTF8 {
	return UTF8{fb: fb}
}

// Default returns the default writer encoding: UTF-8 substituting '?' for
// unpaired surrogates. The one-byte replacement keeps it fast-path eligible.
func Default() UTF8 {
	return UTF8{fb: ReplaceWith("?")}
}

func (UTF8) CodePage() int { return CodePageUTF8 }

func (u UTF8) Fallback() Fallback { return u.fb }

func (u UTF8) MaxBytesPerUnit() int {
	// A BMP unit needs at most 3 bytes; a surrogate pair is 4 bytes for
	// 2 units. Only a wide replacement can exceed 3.
	if n := u.fb.EncodedLen(); n > 3 {
		return n
	}
	return 3
}

func (u UTF8) NewEncoder() Encoder {
	return &utf8Encoder{fb: u.fb}
}

// appendUnit appends the UTF-8 bytes for a non-surrogate BMP code unit.
func appendUnit(dst []byte, c uint16) []byte {
	switch {
	case c < 0x80:
		return append(dst, byte(c))
	case c < 0x800:
		return append(dst, byte(0xC0|c>>6), byte(0x80|c&0x3F))
	default:
		return append(dst, byte(0xE0|c>>12), byte(0x80|c>>6&0x3F), byte(0x80|c&0x3F))
	}
}

func appendFallback(dst []byte, fb Fallback, c uint16, off int64) ([]byte, error) {
	if fb.Policy == FallbackThrow {
		return dst, errors.InvalidCodeUnit(errors.PhaseEncode, c, off)
	}
	return append(dst, fb.Replacement...), nil
}

// AppendUTF16 appends the UTF-8 encoding of a complete code-unit sequence
// to dst. Unpaired surrogates go through the fallback.
func AppendUTF16(dst []byte, src []uint16, fb Fallback) ([]byte, error) {
	var err error
	for i := 0; i < len(src); i++ {
		c := src[i]
		if !isSurrogate(c) {
			dst = appendUnit(dst, c)
			continue
		}
		if isHighSurrogate(c) && i+1 < len(src) && isLowSurrogate(src[i+1]) {
			dst = utf8.AppendRune(dst, combineSurrogates(c, src[i+1]))
			i++
			continue
		}
		if dst, err = appendFallback(dst, fb, c, int64(i)); err != nil {
			return dst, err
		}
	}
	return dst, nil
}

// UTF16Length reports the exact UTF-8 byte length of a complete code-unit
// sequence. Under a throw fallback it also validates: an unpaired surrogate
// yields an error before any byte would be written.
func UTF16Length(src []uint16, fb Fallback) (uint64, error) {
	var n uint64
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c < 0x80:
			n++
		case c < 0x800:
			n += 2
		case !isSurrogate(c):
			n += 3
		case isHighSurrogate(c) && i+1 < len(src) && isLowSurrogate(src[i+1]):
			n += 4
			i++
		default:
			if fb.Policy == FallbackThrow {
				return 0, errors.InvalidCodeUnit(errors.PhaseEncode, c, int64(i))
			}
			n += uint64(fb.EncodedLen())
		}
	}
	return n, nil
}

// StringLength reports the exact UTF-8 byte length of a Go string, resolving
// malformed bytes through the fallback. Valid strings cost a single scan.
func StringLength(s string, fb Fallback) (uint64, error) {
	if utf8.ValidString(s) {
		return uint64(len(s)), nil
	}
	var n uint64
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if fb.Policy == FallbackThrow {
				return 0, errors.New(errors.PhaseEncode, errors.KindInvalidCodeUnit).
					Offset(int64(i)).
					Value(s[i]).
					Detail("malformed UTF-8 byte 0x%02X", s[i]).
					Build()
			}
			n += uint64(fb.EncodedLen())
		} else {
			n += uint64(size)
		}
		i += size
	}
	return n, nil
}

// AppendString appends the UTF-8 encoding of a Go string, resolving
// malformed bytes through the fallback.
func AppendString(dst []byte, s string, fb Fallback) ([]byte, error) {
	if utf8.ValidString(s) {
		return append(dst, s...), nil
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if fb.Policy == FallbackThrow {
				return dst, errors.New(errors.PhaseEncode, errors.KindInvalidCodeUnit).
					Offset(int64(i)).
					Value(s[i]).
					Detail("malformed UTF-8 byte 0x%02X", s[i]).
					Build()
			}
			dst = append(dst, fb.Replacement...)
		} else {
			dst = append(dst, s[i:i+size]...)
		}
		i += size
	}
	return dst, nil
}

// utf8Encoder is the stateful chunk encoder. A trailing high surrogate is
// held until the next Encode call so pairs split across chunk boundaries
// still combine.
type utf8Encoder struct {
	fb         Fallback
	off        int64 // input units consumed so far
	pendingOff int64
	pending    uint16
	hasPending bool
}

var _ Encoder = (*utf8Encoder)(nil)

func (e *utf8Encoder) Reset() {
	e.off = 0
	e.pendingOff = 0
	e.pending = 0
	e.hasPending = false
}

func (e *utf8Encoder) Encode(dst []byte, src []uint16, final bool) ([]byte, error) {
	var err error
	i := 0

	if e.hasPending {
		switch {
		case len(src) > 0 && isLowSurrogate(src[0]):
			dst = utf8.AppendRune(dst, combineSurrogates(e.pending, src[0]))
			e.hasPending = false
			i = 1
		case len(src) > 0 || final:
			if dst, err = appendFallback(dst, e.fb, e.pending, e.pendingOff); err != nil {
				return dst, err
			}
			e.hasPending = false
		}
	}

	for ; i < len(src); i++ {
		c := src[i]
		if !isSurrogate(c) {
			dst = appendUnit(dst, c)
			continue
		}
		if isHighSurrogate(c) {
			if i+1 < len(src) {
				if isLowSurrogate(src[i+1]) {
					dst = utf8.AppendRune(dst, combineSurrogates(c, src[i+1]))
					i++
					continue
				}
				if dst, err = appendFallback(dst, e.fb, c, e.off+int64(i)); err != nil {
					return dst, err
				}
				continue
			}
			if final {
				if dst, err = appendFallback(dst, e.fb, c, e.off+int64(i)); err != nil {
					return dst, err
				}
			} else {
				e.pending = c
				e.pendingOff = e.off + int64(i)
				e.hasPending = true
			}
			continue
		}
		// low surrogate with no preceding high
		if dst, err = appendFallback(dst, e.fb, c, e.off+int64(i)); err != nil {
			return dst, err
		}
	}

	e.off += int64(len(src))
	return dst, nil
}
