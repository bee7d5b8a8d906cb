package httperr

import "testing"

func TestMessage(t *testing.T) {
	if got := Message(CodeInvalidCredentials); got != "Invalid credentials. Please check your email and password." {
		t.Errorf("unexpected message: %q", got)
	}
	if got := Message(CodeEmailInUse); got != "This email is already registered. Please login instead." {
		t.Errorf("unexpected message: %q", got)
	}
	if got := Message("auth/unheard-of"); got != genericMessage {
		t.Errorf("unknown code should map to the generic message, got %q", got)
	}
}
