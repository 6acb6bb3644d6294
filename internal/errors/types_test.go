package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestWrap_Nil(t *testing.T) {
	if err := Wrap(nil, ErrCodeExecution, "x"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestError_MessageIncludesCause(t *testing.T) {
	err := Wrap(stderrors.New("exec: not found"), ErrCodeExecution, "failed to start shell")
	if !strings.Contains(err.Error(), "failed to start shell") || !strings.Contains(err.Error(), "exec: not found") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestIs_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrCodePolicyViolation, "blocked: mkfs"))
	if !stderrors.Is(err, PolicyViolation) {
		t.Error("expected errors.Is to match PolicyViolation")
	}
	if stderrors.Is(err, Execution) {
		t.Error("policy violation should not match Execution")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeValidation, "bad"), http.StatusBadRequest},
		{New(ErrCodePolicyViolation, "bad"), http.StatusForbidden},
		{New(ErrCodeCapabilityUnavailable, "bad"), http.StatusServiceUnavailable},
		{New(ErrCodeExecution, "bad"), http.StatusInternalServerError},
		{New(ErrCodePanicCaptured, "bad"), http.StatusInternalServerError},
		{New(ErrCodeNotFound, "bad"), http.StatusNotFound},
		{stderrors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", New(ErrCodeValidation, "bad")), http.StatusBadRequest},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestCodeOf_Plain(t *testing.T) {
	if got := CodeOf(stderrors.New("x")); got != ErrCodeInternal {
		t.Errorf("CodeOf(plain) = %s, want %s", got, ErrCodeInternal)
	}
}
