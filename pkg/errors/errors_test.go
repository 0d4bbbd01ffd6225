package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidBounds, "component %s has zero width", "chart-1")

	if err.Code != ErrCodeInvalidBounds {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidBounds)
	}
	if err.Message != "component chart-1 has zero width" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeStore, cause, "saving layout %s", "abc")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeNotFound, "layout missing"),
			want: "NOT_FOUND: layout missing",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeStore, stderrors.New("timeout"), "fetch failed"),
			want: "STORE_ERROR: fetch failed: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodePlacementFailed, "no slot for 4x2")

	if !Is(err, ErrCodePlacementFailed) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is should not match a different code")
	}

	// Works through wrapping
	wrapped := fmt.Errorf("arrange: %w", err)
	if !Is(wrapped, ErrCodePlacementFailed) {
		t.Error("Is should unwrap standard wrappers")
	}

	if Is(stderrors.New("plain"), ErrCodePlacementFailed) {
		t.Error("Is should reject non-structured errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidConfig, "bad columns")); got != ErrCodeInvalidConfig {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeInvalidConfig)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeNotFound, "layout missing")); got != "layout missing" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
