package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseClassify Phase = "classify" // encoding classification
	PhaseEncode   Phase = "encode"   // code units to bytes
	PhaseWrite    Phase = "write"    // bytes to sink
	PhaseRead     Phase = "read"     // bytes from source
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindInvalidCodeUnit Kind = "invalid_code_unit"
	KindOverflow        Kind = "overflow"
	KindTruncated       Kind = "truncated"
	KindInvalidPrefix   Kind = "invalid_prefix"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Offset int64 // byte or code-unit offset in the input, -1 when unknown
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Offset sets the input offset
func (b *Builder) Offset(off int64) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidArgument creates an invalid argument error
func InvalidArgument(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Detail: detail,
		Offset: -1,
	}
}

// InvalidCodeUnit creates an error for a code unit the active encoding rejects
func InvalidCodeUnit(phase Phase, unit uint16, offset int64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidCodeUnit,
		Detail: fmt.Sprintf("unpaired surrogate 0x%04X", unit),
		Offset: offset,
		Value:  unit,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, detail string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: detail,
		Value:  value,
		Offset: -1,
	}
}

// Truncated creates an error for input that ends mid-value
func Truncated(phase Phase, what string, offset int64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Detail: fmt.Sprintf("stream ends inside %s", what),
		Offset: offset,
	}
}

// InvalidPrefix creates an error for a malformed length prefix
func InvalidPrefix(detail string, offset int64) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindInvalidPrefix,
		Detail: detail,
		Offset: offset,
	}
}
