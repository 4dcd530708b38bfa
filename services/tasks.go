package services

import (
	"fmt"

	"github.com/lborres/tasuku/core"
)

// TaskService implements the owner-scoped task operations. Existence is
// checked before ownership on single-task reads, so a missing ID reports
// not-found to any caller; ownership mismatches on existing tasks report
// forbidden.
type TaskService struct {
	storage core.TaskStorage
	tags    *TagReconciler
	guard   *Guard
}

var _ core.TaskProvider = (*TaskService)(nil)

func NewTaskService(storage core.TaskStorage, tags *TagReconciler, guard *Guard) *TaskService {
	return &TaskService{storage: storage, tags: tags, guard: guard}
}

// Create persists a task owned by the authenticated user and attaches its
// requested tags. The owner is fixed here and never changes afterwards.
func (s *TaskService) Create(userID string, input core.TaskInput) (*core.Task, error) {
	if err := validateTaskInput(input); err != nil {
		return nil, err
	}

	task := &core.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		StartedAt:   input.StartedAt,
		ExpiresAt:   input.ExpiresAt,
		CompletedAt: input.CompletedAt,
		Tags:        []*core.Tag{},
	}
	if err := s.storage.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if input.Tags != nil {
		tags, err := s.tags.ResolveOrCreate(userID, *input.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.tags.Attach(task.ID, tags); err != nil {
			return nil, err
		}
		task.Tags = tags
	}

	return task, nil
}

// Get returns the task when it exists and belongs to the caller.
func (s *TaskService) Get(userID, taskID string) (*core.Task, error) {
	task, err := s.storage.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.AuthorizeOwnership(userID, task.UserID); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns the caller's tasks in creation order.
func (s *TaskService) List(userID string) ([]*core.Task, error) {
	return s.storage.ListUserTasks(userID)
}

// Update rewrites the task's fields and reconciles its tag set. An omitted
// tags field leaves the set untouched; a present one - even empty -
// replaces it entirely. The owner is immutable.
func (s *TaskService) Update(userID, taskID string, input core.TaskInput) (*core.Task, error) {
	if err := validateTaskInput(input); err != nil {
		return nil, err
	}

	task, err := s.storage.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.AuthorizeOwnership(userID, task.UserID); err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Status = input.Status
	task.Priority = input.Priority
	task.StartedAt = input.StartedAt
	task.ExpiresAt = input.ExpiresAt
	task.CompletedAt = input.CompletedAt

	if err := s.storage.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	newTags, err := s.tags.ReplaceAll(task.ID, userID, input.Tags)
	if err != nil {
		return nil, err
	}
	if newTags != nil {
		task.Tags = newTags
	}

	return task, nil
}

// Delete removes the task when it exists and belongs to the caller.
func (s *TaskService) Delete(userID, taskID string) error {
	task, err := s.storage.GetTask(taskID)
	if err != nil {
		return err
	}
	if err := s.guard.AuthorizeOwnership(userID, task.UserID); err != nil {
		return err
	}
	return s.storage.DeleteTask(task.ID)
}

func validateTaskInput(input core.TaskInput) error {
	switch {
	case input.Title == "":
		return core.ErrTitleRequired
	case !input.Status.Valid():
		return core.ErrInvalidStatus
	case input.Priority != nil && !input.Priority.Valid():
		return core.ErrInvalidPriority
	}
	return nil
}
