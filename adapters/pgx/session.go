package pgx

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lborres/tasuku/core"
)

func (a *Adapter) CreateSession(session *core.Session) error {
	ctx := context.Background()

	query := `INSERT INTO public.sessions (id, user_id, created_at, expires_at) VALUES ($1, $2, $3, $4)`
	_, err := a.pool.Exec(ctx, query, session.ID, session.UserID, session.CreatedAt, session.ExpiresAt)
	return err
}

func (a *Adapter) GetSession(id string) (*core.Session, error) {
	ctx := context.Background()
	q := `SELECT id, user_id, created_at, expires_at FROM public.sessions WHERE id = $1`

	session := &core.Session{}
	err := a.pool.QueryRow(ctx, q, id).Scan(&session.ID, &session.UserID, &session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (a *Adapter) DeleteSession(id string) (bool, error) {
	ctx := context.Background()

	tag, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (a *Adapter) DeleteExpiredSessions(now time.Time) (int, error) {
	ctx := context.Background()

	tag, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
