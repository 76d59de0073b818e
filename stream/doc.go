// Package stream implements the encoding-aware binary writer and its
// reading counterpart.
//
// # Writer
//
// Writer exposes three operations:
//
//	WriteChar(c)         encoded bytes of one UTF-16 code unit, no prefix
//	WriteChars(chars)    encoded bytes of a code-unit sequence, no prefix
//	WriteString(s)       7-bit varint byte count, then exactly that many bytes
//
// The encoding is classified once at construction (see the encoding
// package); effectively-UTF-8 encodings take a fast path with direct
// byte-count formulas. Each write selects a buffer strategy from the
// input's worst-case byte expansion: a fixed inline array, a pooled scratch
// buffer, or a chunked loop over a fixed pool buffer. The three strategies
// are byte-identical; size arithmetic is 64-bit throughout, so writes past
// 2^31-1 bytes complete with a correct sink position.
//
// Length prefixes are exact. For fast UTF-8 the length comes from a direct
// pre-pass formula; otherwise small inputs encode into a scratch buffer and
// prefix with the actual size, and chunked inputs run a counting pass
// first. In every case encoding errors surface before the prefix reaches
// the sink.
//
// # Failure model
//
// No error is swallowed or retried. Sink errors propagate verbatim; pooled
// buffers are released on every exit path. After a sink failure mid-body
// the stream tail is undefined and the caller must reposition before
// writing again.
//
// # Reader
//
// Reader decodes what Writer produces: ReadUvarint, ReadString, ReadChar.
// String bodies are capped by WithMaxStringSize against hostile prefixes.
package stream
