package services

import (
	"strings"

	"github.com/lborres/tasuku/core"
)

// Guard is the per-request gate: it resolves a presented credential into an
// identity and enforces ownership on resource operations.
type Guard struct {
	sessions *SessionManager
}

var _ core.Authenticator = (*Guard)(nil)

func NewGuard(sessions *SessionManager) *Guard {
	return &Guard{sessions: sessions}
}

// TokenFromHeader extracts the bearer token from an Authorization header
// value: the text after the last space ("Bearer <token>"), or the whole
// value when it carries no scheme prefix.
func TokenFromHeader(header string) string {
	if header == "" {
		return ""
	}
	if i := strings.LastIndexByte(header, ' '); i >= 0 {
		return header[i+1:]
	}
	return header
}

// Authenticate resolves the Authorization header value into a session. A
// missing header or token is Unauthenticated before any lookup happens.
func (g *Guard) Authenticate(header string) (*core.Session, error) {
	token := TokenFromHeader(header)
	if token == "" {
		return nil, core.ErrMissingAuthHeader
	}
	return g.sessions.Resolve(token)
}

// AuthorizeOwnership allows the operation only when the authenticated user
// is the resource's owner. There is no admin bypass.
func (g *Guard) AuthorizeOwnership(userID, ownerID string) error {
	if userID != ownerID {
		return core.ErrForbidden
	}
	return nil
}
