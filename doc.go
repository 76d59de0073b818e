// Package binstream provides an encoding-aware binary stream writer with
// fast-path UTF-8 dispatch, pooled scratch buffers, and 7-bit varint
// length prefixes.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	binstream/          Root package with the Sink and Source interfaces
//	├── stream/         Writer and Reader for length-prefixed binary streams
//	├── encoding/       Encoding descriptors, UTF-8 classifier and codec
//	├── sink/           In-memory, counting, and file-backed sinks
//	├── errors/         Structured error types for debugging
//	└── cmd/binspect/   CLI inspector for length-prefixed streams
//
// # Quick Start
//
// Write length-prefixed strings to an in-memory sink and read them back:
//
//	buf := sink.NewBuffer(64)
//	w, err := stream.New(buf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	w.WriteString("hello")
//	w.WriteString("world")
//
//	buf.SetPosition(0)
//	r, _ := stream.NewReader(buf)
//	s, _ := r.ReadString() // "hello"
//
// # Encoding Dispatch
//
// A Writer classifies its encoding once at construction. Encodings that are
// effectively UTF-8 (UTF-8 code page, throw fallback or a one-byte
// replacement) take a specialized fast path: single characters encode into a
// four-byte scratch array, and string lengths are computed by a direct
// byte-count formula instead of a scratch encode. Everything else goes
// through the encoding's stateful Encoder.
//
// # Buffer Strategy
//
// Each write picks one of three strategies from the input's worst-case byte
// expansion, computed in 64-bit arithmetic:
//
//	Strategy   Worst case          Storage
//	─────────────────────────────────────────────────────
//	inline     <= 24 bytes         fixed stack array
//	pooled     <= 64 KiB           buffer from a shared pool
//	chunked    unbounded           64 KiB pool buffer, looped
//
// All three produce byte-identical output. Pooled buffers are returned on
// every exit path, including errors. Inputs whose encoded size exceeds
// 2^31-1 bytes are supported; the sink position always reflects the true
// byte count.
//
// # Thread Safety
//
// A Writer or Reader instance is NOT safe for concurrent use; use one per
// goroutine or synchronize externally. The buffer pool is process-wide and
// safe for concurrent checkout.
package binstream
