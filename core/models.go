package core

import "time"

// User represents a registered account.
//
// This is the "identity" - who someone is. The Credential field holds the
// stretched password digest and its salt joined by a "." and is never
// serialized.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Credential string    `json:"-"` // "<digest>.<salt>", never expose in JSON
	CreatedAt  time.Time `json:"createdAt"`
}

// Session represents an active login.
//
// The ID is an unguessable random string and doubles as the bearer token
// presented by clients. If no record exists for a token, the caller is
// unauthenticated - there is no other source of truth.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session has passed its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TaskPriority is the optional urgency of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of work owned by exactly one user.
//
// UserID is set from the authenticated identity at creation and never
// changes afterwards.
type Task struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	Title       string        `json:"title"`
	Description *string       `json:"description,omitempty"`
	Status      TaskStatus    `json:"status"`
	Priority    *TaskPriority `json:"priority,omitempty"`
	StartedAt   *time.Time    `json:"startedAt,omitempty"`
	ExpiresAt   *time.Time    `json:"expiresAt,omitempty"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Tags        []*Tag        `json:"tags"`
}

// Tag is a user-scoped label. The pair (UserID, Name) is unique: two users
// may both own a "work" tag, one user may not own two.
type Tag struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultTagColor is assigned to newly created tags. Colors are not
// user-settable.
const DefaultTagColor = "#6b7280"
