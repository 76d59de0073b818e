// Package errors provides structured error types for the binstream library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes an input offset, the offending value,
// and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindInvalidCodeUnit).
//		Offset(42).
//		Value(unit).
//		Detail("unpaired surrogate 0x%04X", unit).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidCodeUnit(errors.PhaseEncode, unit, 42)
//	err := errors.Truncated(errors.PhaseRead, "string body", pos)
//
// All errors implement the standard error interface and support errors.Is/As.
// Sink and source I/O failures are never wrapped; they propagate verbatim.
package errors
