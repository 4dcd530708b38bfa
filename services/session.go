// Package services contains the business logic: session lifecycle,
// authentication, the authorization guard, task operations and tag
// reconciliation.
package services

import (
	"fmt"
	"time"

	"github.com/lborres/tasuku/core"
	"github.com/lborres/tasuku/pkg/crypto"
)

// sessionTokenLength gives 43 * 6 = 258 bits of entropy. The token doubles
// as the session record's primary key.
const sessionTokenLength = 43

// SessionConfig carries the session policy tunables.
type SessionConfig struct {
	TTL time.Duration
}

// DefaultSessionConfig returns the default policy: 24 hour sessions.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{TTL: 24 * time.Hour}
}

// SessionManager issues, resolves and revokes sessions. Expiry is lazy: an
// expired record is deleted on first resolve, and SweepExpired exists as an
// optional periodic cleanup on top.
type SessionManager struct {
	config  SessionConfig
	storage core.SessionStorage
	cache   core.Cache // optional, nil disables caching
	nanoid  *crypto.NanoIDGenerator
}

func NewSessionManager(config SessionConfig, storage core.SessionStorage, cache core.Cache) *SessionManager {
	if config.TTL <= 0 {
		config = DefaultSessionConfig()
	}
	nanoid, _ := crypto.NewNanoID("")
	return &SessionManager{config: config, storage: storage, cache: cache, nanoid: nanoid}
}

// Issue creates and persists a fresh session for the user. Concurrent logins
// are not deduplicated; each call produces its own valid session.
func (sm *SessionManager) Issue(userID string) (*core.Session, error) {
	token, err := sm.nanoid.Generate(sessionTokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &core.Session{
		ID:        token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(sm.config.TTL),
	}

	if err := sm.storage.CreateSession(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// We don't fail the request if caching fails
	if sm.cache != nil {
		_ = sm.cache.Set(session.ID, session)
	}

	return session, nil
}

// Resolve looks up the session for a bearer token. A missing record and an
// expired one are indistinguishable to the caller; expired records are
// deleted on the way out so they can never resurrect.
func (sm *SessionManager) Resolve(token string) (*core.Session, error) {
	if token == "" {
		return nil, core.ErrInvalidToken
	}

	now := time.Now()

	// Try cache first if caching is enabled
	if sm.cache != nil {
		if session, err := sm.cache.Get(token); err == nil {
			if session.Expired(now) {
				return nil, sm.expire(token)
			}
			return session, nil
		}
		// Cache miss - fall through to storage
	}

	session, err := sm.storage.GetSession(token)
	if err != nil {
		return nil, err
	}

	if session.Expired(now) {
		return nil, sm.expire(token)
	}

	if sm.cache != nil {
		_ = sm.cache.Set(token, session)
	}

	return session, nil
}

// expire removes a session that was observed past its expiry and reports it
// as absent. Losing the delete race to a concurrent resolve is fine - the
// record is gone either way.
func (sm *SessionManager) expire(token string) error {
	if sm.cache != nil {
		_ = sm.cache.Delete(token)
	}
	if _, err := sm.storage.DeleteSession(token); err != nil {
		return fmt.Errorf("failed to delete expired session: %w", err)
	}
	return core.ErrSessionNotFound
}

// Revoke deletes the session and reports whether a record existed. Revoking
// an already-gone session is not an error.
func (sm *SessionManager) Revoke(token string) (bool, error) {
	if token == "" {
		return false, core.ErrInvalidToken
	}

	if sm.cache != nil {
		_ = sm.cache.Delete(token)
	}

	existed, err := sm.storage.DeleteSession(token)
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	return existed, nil
}

// SweepExpired removes every session past its expiry and returns the count.
func (sm *SessionManager) SweepExpired() (int, error) {
	return sm.storage.DeleteExpiredSessions(time.Now())
}
