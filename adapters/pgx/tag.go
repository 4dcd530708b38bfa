package pgx

import (
	"context"

	"github.com/lborres/tasuku/core"
)

// UpsertTag converges concurrent creators of the same (user, name) on one
// row. The no-op update makes RETURNING yield the existing row on conflict.
func (a *Adapter) UpsertTag(tag *core.Tag) error {
	ctx := context.Background()

	query := `INSERT INTO public.tags (user_id, name, color) VALUES ($1, $2, $3)
	          ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
	          RETURNING id, color, created_at`

	err := a.pool.QueryRow(ctx, query, tag.UserID, tag.Name, tag.Color).Scan(&tag.ID, &tag.Color, &tag.CreatedAt)
	return err
}

func (a *Adapter) ListTaskTags(taskID string) ([]*core.Tag, error) {
	ctx := context.Background()
	query := `SELECT t.id, t.user_id, t.name, t.color, t.created_at
	          FROM public.task_tags tt
	          JOIN public.tags t ON t.id = tt.tag_id
	          WHERE tt.task_id = $1
	          ORDER BY t.name`

	rows, err := a.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*core.Tag{}
	for rows.Next() {
		tag := &core.Tag{}
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.Color, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}

func (a *Adapter) AttachTags(taskID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	ctx := context.Background()

	query := `INSERT INTO public.task_tags (task_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, tagID := range tagIDs {
		if _, err := a.pool.Exec(ctx, query, taskID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceTaskTags swaps the task's whole association set in one
// transaction, so readers never observe a half-replaced set.
func (a *Adapter) ReplaceTaskTags(taskID string, tagIDs []string) error {
	ctx := context.Background()

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM public.task_tags WHERE task_id = $1`, taskID); err != nil {
		return err
	}

	query := `INSERT INTO public.task_tags (task_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx, query, taskID, tagID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
