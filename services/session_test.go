package services

import (
	"testing"
	"time"

	"github.com/lborres/tasuku/core"
	"github.com/lborres/tasuku/pkg/cache"
)

// Requirement: Issue persists a session with an unguessable token and the
// configured TTL.
func TestSessionManager_Issue(t *testing.T) {
	// Arrange
	storage := NewFakeStorage()
	sm := NewSessionManager(SessionConfig{TTL: time.Hour}, storage, nil)

	// Act
	session, err := sm.Issue("user-1")

	// Assert
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if len(session.ID) != sessionTokenLength {
		t.Errorf("token length = %d, want %d", len(session.ID), sessionTokenLength)
	}
	if session.UserID != "user-1" {
		t.Errorf("UserID = %s, want user-1", session.UserID)
	}
	ttl := session.ExpiresAt.Sub(session.CreatedAt)
	if ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}
	if storage.SessionCount() != 1 {
		t.Errorf("stored sessions = %d, want 1", storage.SessionCount())
	}
}

// Requirement: concurrent logins are not deduplicated - each Issue yields
// its own valid session.
func TestSessionManager_IssueMultipleSessionsPerUser(t *testing.T) {
	storage := NewFakeStorage()
	sm := NewSessionManager(DefaultSessionConfig(), storage, nil)

	first, _ := sm.Issue("user-1")
	second, _ := sm.Issue("user-1")

	if first.ID == second.ID {
		t.Fatal("two logins must produce distinct sessions")
	}
	if _, err := sm.Resolve(first.ID); err != nil {
		t.Errorf("first session should resolve: %v", err)
	}
	if _, err := sm.Resolve(second.ID); err != nil {
		t.Errorf("second session should resolve: %v", err)
	}
}

// Requirement: Resolve returns the session before expiry and absence for
// unknown or empty tokens.
func TestSessionManager_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		token   func(sm *SessionManager) string
		wantErr error
	}{
		{
			name: "valid token resolves",
			token: func(sm *SessionManager) string {
				s, _ := sm.Issue("user-1")
				return s.ID
			},
			wantErr: nil,
		},
		{
			name:    "unknown token is absent",
			token:   func(sm *SessionManager) string { return "no-such-token" },
			wantErr: core.ErrSessionNotFound,
		},
		{
			name:    "empty token is invalid",
			token:   func(sm *SessionManager) string { return "" },
			wantErr: core.ErrInvalidToken,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			sm := NewSessionManager(DefaultSessionConfig(), NewFakeStorage(), nil)
			token := test.token(sm)

			// Act
			_, err := sm.Resolve(token)

			// Assert
			if err != test.wantErr {
				t.Errorf("Resolve() error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

// Requirement: a session never outlives its expiry - the first resolve past
// expiresAt deletes the record, and later resolves stay absent (no
// resurrection).
func TestSessionManager_ResolveExpiredDeletesEagerly(t *testing.T) {
	storage := NewFakeStorage()
	sm := NewSessionManager(SessionConfig{TTL: time.Hour}, storage, nil)

	session, _ := sm.Issue("user-1")
	// Force the record past its expiry.
	session.ExpiresAt = time.Now().Add(-time.Second)

	if _, err := sm.Resolve(session.ID); err != core.ErrSessionNotFound {
		t.Fatalf("Resolve() error = %v, want ErrSessionNotFound", err)
	}
	if storage.SessionCount() != 0 {
		t.Error("expired session should be deleted on first access")
	}
	if _, err := sm.Resolve(session.ID); err != core.ErrSessionNotFound {
		t.Errorf("second Resolve() error = %v, want ErrSessionNotFound", err)
	}
}

// Requirement: an expired session observed through the cache is also
// deleted, not served.
func TestSessionManager_ResolveExpiredCachedSession(t *testing.T) {
	storage := NewFakeStorage()
	c := cache.NewInMemoryCache(core.CacheConfig{})
	sm := NewSessionManager(SessionConfig{TTL: time.Hour}, storage, c)

	session, _ := sm.Issue("user-1")
	session.ExpiresAt = time.Now().Add(-time.Second)

	if _, err := sm.Resolve(session.ID); err != core.ErrSessionNotFound {
		t.Fatalf("Resolve() error = %v, want ErrSessionNotFound", err)
	}
	if storage.SessionCount() != 0 {
		t.Error("expired session should be deleted from storage")
	}
}

// Requirement: Revoke makes every subsequent resolve return absence, and
// revoking twice is safe - the second call reports nothing to revoke.
func TestSessionManager_Revoke(t *testing.T) {
	sm := NewSessionManager(DefaultSessionConfig(), NewFakeStorage(), nil)
	session, _ := sm.Issue("user-1")

	existed, err := sm.Revoke(session.ID)
	if err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if !existed {
		t.Error("first Revoke() should report a revoked session")
	}

	if _, err := sm.Resolve(session.ID); err != core.ErrSessionNotFound {
		t.Errorf("Resolve() after revoke = %v, want ErrSessionNotFound", err)
	}

	existed, err = sm.Revoke(session.ID)
	if err != nil {
		t.Fatalf("second Revoke() error = %v", err)
	}
	if existed {
		t.Error("second Revoke() should report nothing to revoke")
	}
}

// Requirement: a revoked session stays absent even when a stale cache entry
// exists.
func TestSessionManager_RevokeInvalidatesCache(t *testing.T) {
	storage := NewFakeStorage()
	c := cache.NewInMemoryCache(core.CacheConfig{})
	sm := NewSessionManager(DefaultSessionConfig(), storage, c)

	session, _ := sm.Issue("user-1")
	if _, err := sm.Resolve(session.ID); err != nil {
		t.Fatalf("warm-up Resolve() error = %v", err)
	}

	if _, err := sm.Revoke(session.ID); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if _, err := sm.Resolve(session.ID); err != core.ErrSessionNotFound {
		t.Errorf("Resolve() after revoke = %v, want ErrSessionNotFound", err)
	}
}

// Requirement: SweepExpired removes only sessions past their expiry.
func TestSessionManager_SweepExpired(t *testing.T) {
	storage := NewFakeStorage()
	sm := NewSessionManager(SessionConfig{TTL: time.Hour}, storage, nil)

	live, _ := sm.Issue("user-1")
	stale, _ := sm.Issue("user-2")
	stale.ExpiresAt = time.Now().Add(-time.Minute)

	count, err := sm.SweepExpired()
	if err != nil {
		t.Fatalf("SweepExpired() error = %v", err)
	}
	if count != 1 {
		t.Errorf("SweepExpired() = %d, want 1", count)
	}
	if _, err := sm.Resolve(live.ID); err != nil {
		t.Errorf("live session should survive the sweep: %v", err)
	}
}
