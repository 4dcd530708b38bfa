package pgx

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lborres/tasuku/core"
)

func (a *Adapter) CreateUser(user *core.User) error {
	ctx := context.Background()

	query := `INSERT INTO public.users (email, credential) VALUES ($1, $2) RETURNING id, created_at`
	var id string
	var createdAt time.Time

	err := a.pool.QueryRow(ctx, query, user.Email, user.Credential).Scan(&id, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrUserExists
		}
		return err
	}

	user.ID = id
	user.CreatedAt = createdAt
	return nil
}

func (a *Adapter) GetUserByID(id string) (*core.User, error) {
	ctx := context.Background()
	q := `SELECT id, email, credential, created_at FROM public.users WHERE id = $1`

	user := &core.User{}
	err := a.pool.QueryRow(ctx, q, id).Scan(&user.ID, &user.Email, &user.Credential, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (a *Adapter) GetUserByEmail(email string) (*core.User, error) {
	ctx := context.Background()
	q := `SELECT id, email, credential, created_at FROM public.users WHERE email = $1`

	user := &core.User{}
	err := a.pool.QueryRow(ctx, q, email).Scan(&user.ID, &user.Email, &user.Credential, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
