package core

import "time"

// Storage ports. Adapters translate these into a concrete backing store;
// services never see driver types. Every method is a potential blocking
// boundary, so callers must not hold in-process locks across them -
// atomicity is delegated to the store (unique constraints, transactions).

// UserStorage defines user persistence.
type UserStorage interface {
	// CreateUser persists the user and fills ID and CreatedAt.
	// A duplicate email yields ErrUserExists.
	CreateUser(u *User) error

	GetUserByID(id string) (*User, error)
	GetUserByEmail(email string) (*User, error)
}

// SessionStorage defines session persistence. Session IDs are chosen by the
// caller, not the store.
type SessionStorage interface {
	CreateSession(s *Session) error

	// GetSession returns ErrSessionNotFound when no record exists.
	GetSession(id string) (*Session, error)

	// DeleteSession reports whether a record existed. Deleting an absent
	// session is not an error.
	DeleteSession(id string) (bool, error)

	// DeleteExpiredSessions removes every session whose expiry is at or
	// before now and returns how many were removed.
	DeleteExpiredSessions(now time.Time) (int, error)
}

// TaskStorage defines task persistence. Reads return the task with its tags
// loaded.
type TaskStorage interface {
	// CreateTask persists the task and fills ID, CreatedAt and UpdatedAt.
	CreateTask(t *Task) error

	// GetTask returns ErrTaskNotFound when no record exists.
	GetTask(id string) (*Task, error)

	// ListUserTasks returns the user's tasks in creation order.
	ListUserTasks(userID string) ([]*Task, error)

	// UpdateTask rewrites the mutable fields and refreshes UpdatedAt.
	// Returns ErrTaskNotFound when no record exists.
	UpdateTask(t *Task) error

	// DeleteTask returns ErrTaskNotFound when no record exists.
	DeleteTask(id string) error
}

// TagStorage defines tag persistence and the task<->tag association.
type TagStorage interface {
	// UpsertTag finds the tag with (t.UserID, t.Name) or creates it, relying
	// on the store's unique constraint so concurrent creators converge on a
	// single row. It fills ID, Color and CreatedAt on return.
	UpsertTag(t *Tag) error

	// ListTaskTags returns the tags associated with the task.
	ListTaskTags(taskID string) ([]*Tag, error)

	// AttachTags associates the tags with the task. Already-associated tags
	// are skipped, never an error.
	AttachTags(taskID string, tagIDs []string) error

	// ReplaceTaskTags atomically removes every association for the task and
	// inserts the given set. An empty set clears all associations.
	ReplaceTaskTags(taskID string, tagIDs []string) error
}

// Storage is the full persistence surface consumed by the services.
type Storage interface {
	UserStorage
	SessionStorage
	TaskStorage
	TagStorage
}
