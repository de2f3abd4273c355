package errors

import "testing"

func TestErrorHelpers(t *testing.T) {
	err := NewInvalidArgument("bad")
	if !IsInvalidArgument(err) {
		t.Fatal("expected invalid argument")
	}

	wrapped := WrapInternal(err, "ctx")
	if !IsInternal(wrapped) {
		t.Fatal("expected internal")
	}

	if !IsSessionNotFound(ErrSessionNotFound) {
		t.Fatal("expected session not found")
	}
	if IsInvalidCredentials(ErrUserDisabled) {
		t.Fatal("disabled must not read as bad credentials")
	}
}
