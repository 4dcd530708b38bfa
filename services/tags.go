package services

import (
	"fmt"

	"github.com/lborres/tasuku/core"
)

// TagReconciler translates requested tag names into persisted, user-scoped
// Tag records and maintains the task<->tag association.
type TagReconciler struct {
	storage core.TagStorage
}

func NewTagReconciler(storage core.TagStorage) *TagReconciler {
	return &TagReconciler{storage: storage}
}

// ResolveOrCreate maps each name to the user's tag with that name, creating
// missing ones with the default color. Resolution never crosses user
// boundaries. Races between concurrent creators of the same (user, name)
// converge on a single row via the storage unique constraint - a conflict
// means "someone else created it, fetch and continue", never an error.
func (r *TagReconciler) ResolveOrCreate(userID string, names []string) ([]*core.Tag, error) {
	tags := make([]*core.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if name == "" {
			return nil, core.ErrTagNameRequired
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		tag := &core.Tag{
			UserID: userID,
			Name:   name,
			Color:  core.DefaultTagColor,
		}
		if err := r.storage.UpsertTag(tag); err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// Attach associates the tags with the task. Attaching an already-associated
// tag is a no-op, not a duplicate-key error.
func (r *TagReconciler) Attach(taskID string, tags []*core.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	ids := make([]string, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}
	if err := r.storage.AttachTags(taskID, ids); err != nil {
		return fmt.Errorf("failed to attach tags: %w", err)
	}
	return nil
}

// ReplaceAll applies partial-update semantics to a task's tag set. A nil
// names pointer leaves the set untouched and returns a nil slice. A present
// value - including an empty sequence - atomically replaces the whole set
// and returns the new one, so an empty sequence clears all tags.
func (r *TagReconciler) ReplaceAll(taskID, userID string, names *[]string) ([]*core.Tag, error) {
	if names == nil {
		return nil, nil
	}

	tags, err := r.ResolveOrCreate(userID, *names)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}
	if err := r.storage.ReplaceTaskTags(taskID, ids); err != nil {
		return nil, fmt.Errorf("failed to replace tags: %w", err)
	}

	return tags, nil
}
