package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseEncode,
				Kind:   KindInvalidCodeUnit,
				Offset: 42,
				Value:  uint16(0xD800),
				Detail: "unpaired surrogate 0xD800",
			},
			contains: []string{"[encode]", "invalid_code_unit", "offset 42", "unpaired surrogate 0xD800"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase:  PhaseRead,
				Kind:   KindTruncated,
				Offset: -1,
			},
			contains: []string{"[read]", "truncated"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseWrite,
				Kind:   KindOverflow,
				Offset: -1,
				Detail: "size exceeds limit",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[write]", "overflow", "size exceeds limit", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_OffsetOmittedWhenUnknown(t *testing.T) {
	err := InvalidArgument(PhaseClassify, "nil sink")
	if strings.Contains(err.Error(), "offset") {
		t.Errorf("error message %q should not mention an offset", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseWrite,
		Kind:  KindOverflow,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	// Test with errors.Unwrap
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseEncode,
		Kind:   KindInvalidCodeUnit,
		Offset: 7,
	}

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindInvalidCodeUnit}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseRead, Kind: KindInvalidCodeUnit}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindOverflow}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Phase: PhaseEncode, Kind: KindInvalidCodeUnit}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindInvalidCodeUnit).
		Offset(12).
		Value(uint16(0xDC00)).
		Cause(cause).
		Detail("unpaired %s surrogate", "low").
		Build()

	if err.Phase != PhaseEncode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseEncode)
	}
	if err.Kind != KindInvalidCodeUnit {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidCodeUnit)
	}
	if err.Offset != 12 {
		t.Errorf("Offset = %v, want 12", err.Offset)
	}
	if err.Value != uint16(0xDC00) {
		t.Errorf("Value = %v, want 0xDC00", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "unpaired low surrogate" {
		t.Errorf("Detail = %v, want 'unpaired low surrogate'", err.Detail)
	}
}

func TestBuilder_DefaultOffset(t *testing.T) {
	err := New(PhaseWrite, KindOverflow).Build()
	if err.Offset != -1 {
		t.Errorf("Offset = %v, want -1", err.Offset)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidArgument", func(t *testing.T) {
		err := InvalidArgument(PhaseClassify, "nil sink")
		if err.Kind != KindInvalidArgument {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidArgument)
		}
		if err.Detail != "nil sink" {
			t.Errorf("Detail = %v, want 'nil sink'", err.Detail)
		}
	})

	t.Run("InvalidCodeUnit", func(t *testing.T) {
		err := InvalidCodeUnit(PhaseEncode, 0xD800, 9)
		if err.Kind != KindInvalidCodeUnit {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidCodeUnit)
		}
		if err.Offset != 9 {
			t.Errorf("Offset = %v, want 9", err.Offset)
		}
		if !strings.Contains(err.Detail, "0xD800") {
			t.Errorf("Detail = %v, should contain the code unit", err.Detail)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseRead, "string body exceeds reader limit", uint64(1<<40))
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
		if err.Value != uint64(1<<40) {
			t.Errorf("Value = %v, want 1<<40", err.Value)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		err := Truncated(PhaseRead, "length prefix", 100)
		if err.Kind != KindTruncated {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTruncated)
		}
		if err.Offset != 100 {
			t.Errorf("Offset = %v, want 100", err.Offset)
		}
		if !strings.Contains(err.Detail, "length prefix") {
			t.Errorf("Detail = %v, should name the value", err.Detail)
		}
	})

	t.Run("InvalidPrefix", func(t *testing.T) {
		err := InvalidPrefix("length prefix exceeds ten bytes", 0)
		if err.Phase != PhaseRead {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseRead)
		}
		if err.Kind != KindInvalidPrefix {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidPrefix)
		}
	})
}
