// Package encoding provides the text-encoding descriptors and the UTF-8
// codec used by the stream writer.
//
// An Encoding is a capability descriptor: code page, fallback policy, and
// worst-case byte width per UTF-16 code unit. Classify reduces it to an
// immutable Profile, and the profile alone decides whether a writer takes
// the specialized UTF-8 fast path. Classification queries runtime behavior,
// so a type embedding UTF8 that overrides CodePage is classified by what it
// reports, not by what it embeds:
//
//	type mislabeled struct{ encoding.UTF8 }
//
//	func (mislabeled) CodePage() int { return 1200 }
//
//	encoding.Classify(mislabeled{}).FastUTF8 // false
//
// All input uses UTF-16 code-unit semantics: a surrogate half that does not
// form a pair is an isolated unit resolved through the Fallback, either
// rejected (FallbackThrow) or substituted (FallbackReplace). The stateful
// Encoder carries a trailing high surrogate across chunk boundaries, so
// chunked encoding is byte-identical to whole-input encoding.
package encoding
