package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lborres/tasuku/core"
)

// FakeStorage is a test-only fake implementing core.Storage. It keeps
// records in maps and exposes error fields for behavior injection.
type FakeStorage struct {
	mu sync.RWMutex

	users     map[string]*core.User // by id
	sessions  map[string]*core.Session
	tasks     map[string]*core.Task
	taskOrder []string
	tags      map[string]*core.Tag        // by id
	tagKeys   map[string]string           // userID + "\x00" + name -> tag id
	taskTags  map[string]map[string]bool  // taskID -> tag id set

	seq int

	createUserErr    error
	getUserErr       error
	createSessionErr error
	getSessionErr    error
	deleteSessionErr error
	taskErr          error
	tagErr           error
}

var _ core.Storage = (*FakeStorage)(nil)

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		users:    make(map[string]*core.User),
		sessions: make(map[string]*core.Session),
		tasks:    make(map[string]*core.Task),
		tags:     make(map[string]*core.Tag),
		tagKeys:  make(map[string]string),
		taskTags: make(map[string]map[string]bool),
	}
}

func (f *FakeStorage) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

// UserStorage

func (f *FakeStorage) CreateUser(u *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createUserErr != nil {
		return f.createUserErr
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return core.ErrUserExists
		}
	}
	u.ID = f.nextID("user")
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return nil
}

func (f *FakeStorage) GetUserByID(id string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	return u, nil
}

func (f *FakeStorage) GetUserByEmail(email string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, core.ErrUserNotFound
}

// SessionStorage

func (f *FakeStorage) CreateSession(s *core.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createSessionErr != nil {
		return f.createSessionErr
	}
	f.sessions[s.ID] = s
	return nil
}

func (f *FakeStorage) GetSession(id string) (*core.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getSessionErr != nil {
		return nil, f.getSessionErr
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return s, nil
}

func (f *FakeStorage) DeleteSession(id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteSessionErr != nil {
		return false, f.deleteSessionErr
	}
	if _, ok := f.sessions[id]; !ok {
		return false, nil
	}
	delete(f.sessions, id)
	return true, nil
}

func (f *FakeStorage) DeleteExpiredSessions(now time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for id, s := range f.sessions {
		if s.Expired(now) {
			delete(f.sessions, id)
			count++
		}
	}
	return count, nil
}

// SessionCount reports the number of stored sessions.
func (f *FakeStorage) SessionCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.sessions)
}

// TaskStorage

func (f *FakeStorage) CreateTask(t *core.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.taskErr != nil {
		return f.taskErr
	}
	t.ID = f.nextID("task")
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	stored := *t
	f.tasks[t.ID] = &stored
	f.taskOrder = append(f.taskOrder, t.ID)
	return nil
}

func (f *FakeStorage) GetTask(id string) (*core.Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.taskErr != nil {
		return nil, f.taskErr
	}
	return f.getTaskLocked(id)
}

func (f *FakeStorage) getTaskLocked(id string) (*core.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, core.ErrTaskNotFound
	}
	out := *t
	out.Tags = f.taskTagsLocked(id)
	return &out, nil
}

func (f *FakeStorage) ListUserTasks(userID string) ([]*core.Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.taskErr != nil {
		return nil, f.taskErr
	}
	out := []*core.Task{}
	for _, id := range f.taskOrder {
		t, ok := f.tasks[id]
		if !ok || t.UserID != userID {
			continue
		}
		task, _ := f.getTaskLocked(id)
		out = append(out, task)
	}
	return out, nil
}

func (f *FakeStorage) UpdateTask(t *core.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.taskErr != nil {
		return f.taskErr
	}
	if _, ok := f.tasks[t.ID]; !ok {
		return core.ErrTaskNotFound
	}
	t.UpdatedAt = time.Now()
	stored := *t
	f.tasks[t.ID] = &stored
	return nil
}

func (f *FakeStorage) DeleteTask(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.taskErr != nil {
		return f.taskErr
	}
	if _, ok := f.tasks[id]; !ok {
		return core.ErrTaskNotFound
	}
	delete(f.tasks, id)
	delete(f.taskTags, id)
	return nil
}

// TagStorage

func (f *FakeStorage) UpsertTag(t *core.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tagErr != nil {
		return f.tagErr
	}
	key := t.UserID + "\x00" + t.Name
	if id, ok := f.tagKeys[key]; ok {
		existing := f.tags[id]
		t.ID = existing.ID
		t.Color = existing.Color
		t.CreatedAt = existing.CreatedAt
		return nil
	}
	t.ID = f.nextID("tag")
	t.CreatedAt = time.Now()
	stored := *t
	f.tags[t.ID] = &stored
	f.tagKeys[key] = t.ID
	return nil
}

func (f *FakeStorage) ListTaskTags(taskID string) ([]*core.Tag, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.tagErr != nil {
		return nil, f.tagErr
	}
	return f.taskTagsLocked(taskID), nil
}

func (f *FakeStorage) taskTagsLocked(taskID string) []*core.Tag {
	out := []*core.Tag{}
	for id := range f.taskTags[taskID] {
		if tag, ok := f.tags[id]; ok {
			out = append(out, tag)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *FakeStorage) AttachTags(taskID string, tagIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tagErr != nil {
		return f.tagErr
	}
	set, ok := f.taskTags[taskID]
	if !ok {
		set = make(map[string]bool)
		f.taskTags[taskID] = set
	}
	for _, id := range tagIDs {
		set[id] = true
	}
	return nil
}

func (f *FakeStorage) ReplaceTaskTags(taskID string, tagIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tagErr != nil {
		return f.tagErr
	}
	set := make(map[string]bool, len(tagIDs))
	for _, id := range tagIDs {
		set[id] = true
	}
	f.taskTags[taskID] = set
	return nil
}
