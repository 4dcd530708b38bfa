package services

import (
	"testing"

	"github.com/lborres/tasuku/core"
)

// Requirement: the bearer token is the text after the last space of the
// header value; a value without a scheme prefix is taken whole.
func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer scheme", header: "Bearer abc123", want: "abc123"},
		{name: "no scheme", header: "abc123", want: "abc123"},
		{name: "extra spaces", header: "Bearer  abc123", want: "abc123"},
		{name: "unusual scheme", header: "Token abc123", want: "abc123"},
		{name: "empty header", header: "", want: ""},
		{name: "trailing space", header: "Bearer ", want: ""},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := TokenFromHeader(test.header); got != test.want {
				t.Errorf("TokenFromHeader(%q) = %q, want %q", test.header, got, test.want)
			}
		})
	}
}

// Requirement: a missing or empty Authorization header is rejected before
// any session lookup, with its own error.
func TestGuard_AuthenticateMissingHeader(t *testing.T) {
	guard := NewGuard(NewSessionManager(DefaultSessionConfig(), NewFakeStorage(), nil))

	for _, header := range []string{"", "Bearer "} {
		if _, err := guard.Authenticate(header); err != core.ErrMissingAuthHeader {
			t.Errorf("Authenticate(%q) error = %v, want ErrMissingAuthHeader", header, err)
		}
	}
}

// Requirement: a well-formed header resolves through the session manager;
// unknown tokens surface as absent sessions.
func TestGuard_Authenticate(t *testing.T) {
	storage := NewFakeStorage()
	sessions := NewSessionManager(DefaultSessionConfig(), storage, nil)
	guard := NewGuard(sessions)

	issued, err := sessions.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	session, err := guard.Authenticate("Bearer " + issued.ID)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if session.UserID != "user-1" {
		t.Errorf("UserID = %s, want user-1", session.UserID)
	}

	if _, err := guard.Authenticate("Bearer bogus"); err != core.ErrSessionNotFound {
		t.Errorf("Authenticate() with unknown token = %v, want ErrSessionNotFound", err)
	}
}

// Requirement: ownership is strict identity equality with no admin bypass.
func TestGuard_AuthorizeOwnership(t *testing.T) {
	guard := NewGuard(nil)

	if err := guard.AuthorizeOwnership("user-1", "user-1"); err != nil {
		t.Errorf("owner access should be allowed: %v", err)
	}
	if err := guard.AuthorizeOwnership("user-2", "user-1"); err != core.ErrForbidden {
		t.Errorf("cross-user access error = %v, want ErrForbidden", err)
	}
}
