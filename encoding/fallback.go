package encoding

// FallbackPolicy selects how unencodable code units are handled.
type FallbackPolicy int

const (
	// FallbackThrow rejects unencodable input with an error.
	FallbackThrow FallbackPolicy = iota

	// FallbackReplace substitutes a fixed replacement string.
	FallbackReplace
)

// Fallback is an encoding's policy for code units it cannot represent.
// The zero value throws.
type Fallback struct {
	Replacement string
	Policy      FallbackPolicy
}

// Throw is the rejecting fallback.
var Throw = Fallback{Policy: FallbackThrow}

// ReplaceWith returns a substituting fallback.
func ReplaceWith(s string) Fallback {
	return Fallback{Policy: FallbackReplace, Replacement: s}
}

// EncodedLen reports the UTF-8 byte width of the replacement string.
// It is zero for a throw fallback.
func (f Fallback) EncodedLen() int {
	if f.Policy == FallbackThrow {
		return 0
	}
	return len(f.Replacement)
}
