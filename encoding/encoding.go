package encoding

// CodePageUTF8 is the code page identifier for UTF-8.
const CodePageUTF8 = 65001

// Encoding describes a text encoding's effective capabilities. Classification
// is driven entirely by the values these methods report, never by the
// concrete type: an encoding that embeds UTF8 but overrides CodePage is a
// different encoding, while one that preserves the code page is not.
type Encoding interface {
	// CodePage identifies the encoding.
	CodePage() int

	// Fallback reports the policy for code units the encoding cannot
	// represent, such as unpaired surrogates.
	Fallback() Fallback

	// MaxBytesPerUnit is the worst-case encoded size of one UTF-16 code
	// unit, including the fallback replacement.
	MaxBytesPerUnit() int

	// NewEncoder returns a stateful encoder. Encoders retain partial
	// surrogate-pair state between calls and are not safe for concurrent
	// use.
	NewEncoder() Encoder
}

// Encoder converts UTF-16 code units to encoded bytes. Encode appends the
// encoding of src to dst and returns the extended slice. A high surrogate at
// the end of src is held back until the next call; final flushes it through
// the fallback instead.
type Encoder interface {
	Encode(dst []byte, src []uint16, final bool) ([]byte, error)
	Reset()
}

// Profile is the classification of an Encoding, computed once per writer.
type Profile struct {
	Fallback Fallback

	// FastUTF8 marks encodings eligible for the specialized UTF-8 path:
	// the UTF-8 code page with a throw fallback or a replacement no wider
	// than one byte.
	FastUTF8 bool

	MaxBytesPerUnit int
}

// Classify derives the immutable Profile for enc.
func Classify(enc Encoding) Profile {
	fb := enc.Fallback()
	fast := enc.CodePage() == CodePageUTF8 &&
		(fb.Policy == FallbackThrow || fb.EncodedLen() <= 1)
	return Profile{
		Fallback:        fb,
		FastUTF8:        fast,
		MaxBytesPerUnit: enc.MaxBytesPerUnit(),
	}
}
