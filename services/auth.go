package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lborres/tasuku/core"
)

const (
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 255
)

// AuthService handles registration, login, logout and identity lookup.
type AuthService struct {
	users     core.UserStorage
	passwords core.PasswordHandler
	sessions  *SessionManager
}

var _ core.AuthProvider = (*AuthService)(nil)

func NewAuthService(users core.UserStorage, passwords core.PasswordHandler, sessions *SessionManager) *AuthService {
	return &AuthService{users: users, passwords: passwords, sessions: sessions}
}

// Register creates a new user with a salted, stretched credential. The
// plaintext is never stored and the credential field is never echoed back
// (it is excluded from the model's JSON form).
func (s *AuthService) Register(input core.RegisterInput) (*core.User, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	// Check if user already exists. The storage unique constraint still
	// backstops a racing registration.
	existing, err := s.users.GetUserByEmail(input.Email)
	if err != nil && !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, core.ErrUserExists
	}

	stored, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &core.User{
		Email:      input.Email,
		Credential: stored,
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and issues a session. An unknown email and
// a wrong password are deliberately indistinguishable to the caller, so
// responses cannot be used to enumerate accounts. A corrupt stored
// credential surfaces as its own error - it is a data defect, not a wrong
// password.
func (s *AuthService) Login(input core.LoginInput) (*core.LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, core.ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(input.Email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := s.passwords.Verify(input.Password, user.Credential)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrInvalidCredentials
	}

	session, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &core.LoginResult{User: user, Session: session}, nil
}

// Logout revokes the session behind the token. A token that does not
// resolve (missing, expired, already revoked) reports ErrSessionNotFound -
// there is no separate "already logged out" outcome.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return core.ErrMissingAuthHeader
	}

	if _, err := s.sessions.Resolve(token); err != nil {
		return err
	}

	// A concurrent logout may win the delete; both callers still end up
	// logged out, which is the outcome that matters.
	if _, err := s.sessions.Revoke(token); err != nil {
		return err
	}
	return nil
}

// CurrentUser returns the account behind a resolved session.
func (s *AuthService) CurrentUser(session *core.Session) (*core.User, error) {
	user, err := s.users.GetUserByID(session.UserID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func validateRegisterInput(input core.RegisterInput) error {
	switch {
	case input.Email == "":
		return core.ErrEmailRequired
	case len(input.Email) > maxEmailLength:
		return core.ErrEmailTooLong
	case !strings.Contains(input.Email, "@"):
		return core.ErrInvalidEmail
	case input.Password == "":
		return core.ErrPasswordRequired
	case len(input.Password) < minPasswordLength:
		return core.ErrPasswordTooShort
	case len(input.Password) > maxPasswordLength:
		return core.ErrPasswordTooLong
	}
	return nil
}
