package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOfAndCodeOf_UnwrapThroughWrapping(t *testing.T) {
	base := Validation("invalid_quantity", fmt.Errorf("quantity must be at least 1"))
	wrapped := fmt.Errorf("add to cart: %w", base)

	if got := StatusOf(wrapped); got != http.StatusBadRequest {
		t.Fatalf("StatusOf = %d, want 400", got)
	}
	if got := CodeOf(wrapped); got != "invalid_quantity" {
		t.Fatalf("CodeOf = %q, want invalid_quantity", got)
	}
}

func TestStatusOf_UnknownErrorDefaultsTo500(t *testing.T) {
	err := errors.New("something broke")
	if got := StatusOf(err); got != http.StatusInternalServerError {
		t.Fatalf("StatusOf = %d, want 500", got)
	}
	if got := CodeOf(err); got != "internal_error" {
		t.Fatalf("CodeOf = %q, want internal_error", got)
	}
}

func TestIsStorage(t *testing.T) {
	if IsStorage(Validation("x", nil)) {
		t.Fatalf("validation error classed as storage")
	}
	if IsStorage(NotFound("x", nil)) {
		t.Fatalf("not-found error classed as storage")
	}
	if !IsStorage(Storage("x", errors.New("db down"))) {
		t.Fatalf("storage error not classed as storage")
	}
	if !IsStorage(errors.New("plain")) {
		t.Fatalf("unknown errors must be treated as storage")
	}
}

func TestError_MessageFallbacks(t *testing.T) {
	if got := New(0, "", nil).Error(); got != "api error" {
		t.Fatalf("empty error message = %q", got)
	}
	if got := New(0, "some_code", nil).Error(); got != "some_code" {
		t.Fatalf("code-only message = %q", got)
	}
	if got := New(http.StatusTeapot, "", nil).Error(); got != "api error (418)" {
		t.Fatalf("status-only message = %q", got)
	}
}
