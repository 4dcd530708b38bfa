package pgx

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lborres/tasuku/core"
)

func (a *Adapter) CreateTask(task *core.Task) error {
	ctx := context.Background()

	query := `INSERT INTO public.tasks (user_id, title, description, status, priority, started_at, expires_at, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`

	var id string
	var createdAt, updatedAt time.Time
	err := a.pool.QueryRow(ctx, query,
		task.UserID, task.Title, task.Description, task.Status, task.Priority, task.StartedAt, task.ExpiresAt, task.CompletedAt,
	).Scan(&id, &createdAt, &updatedAt)

	if err != nil {
		return err
	}

	task.ID = id
	task.CreatedAt = createdAt
	task.UpdatedAt = updatedAt
	return nil
}

func (a *Adapter) GetTask(id string) (*core.Task, error) {
	ctx := context.Background()
	q := `SELECT id, user_id, title, description, status, priority, started_at, expires_at, completed_at, created_at, updated_at
	      FROM public.tasks WHERE id = $1`

	task := &core.Task{}
	err := a.pool.QueryRow(ctx, q, id).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.StartedAt, &task.ExpiresAt, &task.CompletedAt, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrTaskNotFound
		}
		return nil, err
	}

	tags, err := a.ListTaskTags(task.ID)
	if err != nil {
		return nil, err
	}
	task.Tags = tags
	return task, nil
}

func (a *Adapter) ListUserTasks(userID string) ([]*core.Task, error) {
	ctx := context.Background()
	query := `SELECT id, user_id, title, description, status, priority, started_at, expires_at, completed_at, created_at, updated_at
	          FROM public.tasks WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := a.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*core.Task{}
	byID := make(map[string]*core.Task)
	for rows.Next() {
		task := &core.Task{Tags: []*core.Tag{}}
		err := rows.Scan(
			&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status, &task.Priority,
			&task.StartedAt, &task.ExpiresAt, &task.CompletedAt, &task.CreatedAt, &task.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
		byID[task.ID] = task
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(tasks) == 0 {
		return tasks, nil
	}

	// One pass over the user's associations instead of a query per task.
	tagQuery := `SELECT tt.task_id, t.id, t.user_id, t.name, t.color, t.created_at
	             FROM public.task_tags tt
	             JOIN public.tags t ON t.id = tt.tag_id
	             WHERE t.user_id = $1
	             ORDER BY t.name`

	tagRows, err := a.pool.Query(ctx, tagQuery, userID)
	if err != nil {
		return nil, err
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var taskID string
		tag := &core.Tag{}
		if err := tagRows.Scan(&taskID, &tag.ID, &tag.UserID, &tag.Name, &tag.Color, &tag.CreatedAt); err != nil {
			return nil, err
		}
		if task, ok := byID[taskID]; ok {
			task.Tags = append(task.Tags, tag)
		}
	}
	if err = tagRows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (a *Adapter) UpdateTask(task *core.Task) error {
	ctx := context.Background()
	query := `UPDATE public.tasks
	          SET title = $1, description = $2, status = $3, priority = $4, started_at = $5, expires_at = $6, completed_at = $7, updated_at = now()
	          WHERE id = $8 RETURNING updated_at`

	var updatedAt time.Time
	err := a.pool.QueryRow(ctx, query,
		task.Title, task.Description, task.Status, task.Priority, task.StartedAt, task.ExpiresAt, task.CompletedAt, task.ID,
	).Scan(&updatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return core.ErrTaskNotFound
		}
		return err
	}

	task.UpdatedAt = updatedAt
	return nil
}

func (a *Adapter) DeleteTask(id string) error {
	ctx := context.Background()

	tag, err := a.pool.Exec(ctx, `DELETE FROM public.tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}
