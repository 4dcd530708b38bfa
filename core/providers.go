package core

import "time"

// Inputs and results crossing the service boundary. HTTP adapters bind
// request bodies straight into these.

// RegisterInput contains the data needed to register a new user
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput contains the credentials for authentication
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult contains the authenticated user and their fresh session. The
// session ID is the access token handed to the client.
type LoginResult struct {
	User    *User
	Session *Session
}

// TaskInput is the request shape shared by task create and update. A nil
// Tags pointer means "leave the tag set untouched"; an empty slice clears
// it. The distinction must not be collapsed.
type TaskInput struct {
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	Status      TaskStatus    `json:"status"`
	Priority    *TaskPriority `json:"priority"`
	Tags        *[]string     `json:"tags"`
	StartedAt   *time.Time    `json:"startedAt"`
	ExpiresAt   *time.Time    `json:"expiresAt"`
	CompletedAt *time.Time    `json:"completedAt"`
}

// AuthProvider is the authentication surface consumed by HTTP adapters.
type AuthProvider interface {
	Register(input RegisterInput) (*User, error)
	Login(input LoginInput) (*LoginResult, error)
	Logout(token string) error
	CurrentUser(session *Session) (*User, error)
}

// TaskProvider is the task surface consumed by HTTP adapters. Every method
// takes the authenticated user's ID; ownership is enforced inside.
type TaskProvider interface {
	Create(userID string, input TaskInput) (*Task, error)
	Get(userID, taskID string) (*Task, error)
	List(userID string) ([]*Task, error)
	Update(userID, taskID string, input TaskInput) (*Task, error)
	Delete(userID, taskID string) error
}

// Authenticator resolves a raw Authorization header value into a session.
type Authenticator interface {
	Authenticate(header string) (*Session, error)
}
