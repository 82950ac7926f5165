package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidFormat, cause, "failed to parse")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeOverflow, "test"),
			code:     ErrCodeOverflow,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeOverflow, "test"),
			code:     ErrCodeOutOfMemory,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("build: %w", New(ErrCodeOutOfMemory, "inner")),
			code:     ErrCodeOutOfMemory,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeCorruptFile, "x")); got != ErrCodeCorruptFile {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeCorruptFile)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(New(ErrCodeOutOfMemory, "x")) {
		t.Error("OUT_OF_MEMORY should be fatal")
	}
	if !IsFatal(fmt.Errorf("wrap: %w", New(ErrCodeOverflow, "x"))) {
		t.Error("wrapped OVERFLOW should be fatal")
	}
	if IsFatal(New(ErrCodeInvalidInput, "x")) {
		t.Error("INVALID_INPUT should not be fatal")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "bad %d", 3)); got != "bad 3" {
		t.Errorf("UserMessage() = %q, want %q", got, "bad 3")
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q, want %q", got, "plain")
	}
}

func TestSizeError(t *testing.T) {
	err := Wrap(ErrCodeOverflow, &SizeError{Vertices: 10, Edges: 5000000000, Limit: 2147483647}, "edge count exceeds int32")

	var se *SizeError
	if !errors.As(err, &se) {
		t.Fatal("errors.As should find SizeError")
	}
	if se.Edges != 5000000000 {
		t.Errorf("Edges = %d, want 5000000000", se.Edges)
	}
	want := "OVERFLOW: edge count exceeds int32: V: 10 E: 5000000000 (limit 2147483647)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
