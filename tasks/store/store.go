package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mazid79/MemoraTodoApp/logger"
	"github.com/mazid79/MemoraTodoApp/tasks"
	"github.com/mazid79/MemoraTodoApp/tasks/notify"
	"github.com/mazid79/MemoraTodoApp/tasks/persist"
)

// Syncer receives the full task list after every mutation and is
// responsible for getting it to durable storage eventually. Calls must
// not block the mutation path.
type Syncer interface {
	Enqueue(list []tasks.Task)
}

// Snapshot is an immutable view of store state handed to consumers.
type Snapshot struct {
	Tasks []tasks.Task `json:"tasks"`
	Theme tasks.Theme  `json:"theme"`
}

// TaskStore owns the authoritative in-memory task list and the theme
// flag. Mutations keep the reminder invariant intact (a task has a
// pending notification iff it has a due date and is not completed)
// and hand each new snapshot to the syncer. The store never validates
// titles; that stays with the caller.
//
// Consumers only ever see copies; the store exclusively owns the list.
type TaskStore struct {
	mu        sync.RWMutex
	list      []tasks.Task
	theme     tasks.Theme
	reminders *notify.Scheduler
	syncer    Syncer
	logger    *logger.Logger
	listeners []func(Snapshot)
}

// New builds a store, loading the persisted list through the gateway.
// An absent blob starts an empty list. A corrupt blob is returned as an
// error: the caller treats it as fatal at startup.
func New(ctx context.Context, gateway persist.Gateway, reminders *notify.Scheduler, syncer Syncer, lg *logger.Logger) (*TaskStore, error) {
	s := &TaskStore{
		theme:     tasks.ThemeLight,
		reminders: reminders,
		syncer:    syncer,
		logger:    lg,
	}

	blob, ok, err := gateway.Load(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		list, err := persist.DecodeTasks(blob)
		if err != nil {
			return nil, err
		}
		s.list = list
	}

	lg.Info("task store initialized", map[string]any{
		"task_count": len(s.list),
	})

	return s, nil
}

// Rearm schedules reminders for every task that should have one. Called
// once at startup, since in-process timers do not survive a restart.
func (s *TaskStore) Rearm(ctx context.Context) {
	for _, t := range s.Tasks() {
		if t.HasReminder() {
			s.reminders.ScheduleForTask(ctx, t)
		}
	}
}

// AddTask creates a task with a fresh id and inserts it at the head of
// the list. An empty title is accepted as-is.
func (s *TaskStore) AddTask(ctx context.Context, title string, dueDate *time.Time) tasks.Task {
	t := tasks.Task{
		ID:    uuid.New().String(),
		Title: title,
	}
	if dueDate != nil {
		d := *dueDate
		t.DueDate = &d
	}

	s.mu.Lock()
	s.list = append([]tasks.Task{t}, s.list...)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if t.DueDate != nil {
		s.reminders.ScheduleForTask(ctx, t)
	}

	s.logger.Task(t.ID, "task added", map[string]any{
		"has_due_date": t.DueDate != nil,
	})

	s.afterMutation(snap)
	return t
}

// ToggleTask flips the completed flag for the matching task. Completing
// cancels any pending reminder; un-completing a task with a due date
// re-arms it, even when that date is already in the past. Unknown ids
// are a no-op.
func (s *TaskStore) ToggleTask(ctx context.Context, id string) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.list[idx].Completed = !s.list[idx].Completed
	updated := s.list[idx]
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if updated.Completed {
		s.reminders.CancelForTask(ctx, id)
	} else if updated.DueDate != nil {
		s.reminders.ScheduleForTask(ctx, updated)
	}

	s.logger.Task(id, "task toggled", map[string]any{
		"completed": updated.Completed,
	})

	s.afterMutation(snap)
}

// DeleteTask cancels the task's reminder and removes it from the list.
// The cancel happens even when the id is unknown, mirroring how a
// repeated delete stays harmless.
func (s *TaskStore) DeleteTask(ctx context.Context, id string) {
	s.reminders.CancelForTask(ctx, id)

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.list = append(s.list[:idx], s.list[idx+1:]...)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Task(id, "task deleted")

	s.afterMutation(snap)
}

// EditTask replaces the title and due date of the matching task,
// keeping its completed flag and position. The old reminder is always
// cancelled; a new one is armed whenever a due date is given, even on a
// completed task. Unknown ids are a no-op.
func (s *TaskStore) EditTask(ctx context.Context, id, newTitle string, newDueDate *time.Time) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.list[idx].Title = newTitle
	if newDueDate != nil {
		d := *newDueDate
		s.list[idx].DueDate = &d
	} else {
		s.list[idx].DueDate = nil
	}
	updated := s.list[idx]
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.reminders.CancelForTask(ctx, id)
	if updated.DueDate != nil {
		s.reminders.ScheduleForTask(ctx, updated)
	}

	s.logger.Task(id, "task edited", map[string]any{
		"has_due_date": updated.DueDate != nil,
	})

	s.afterMutation(snap)
}

// ToggleTheme flips the theme flag between light and dark. The theme is
// in-memory only and is not written to the gateway.
func (s *TaskStore) ToggleTheme() {
	s.mu.Lock()
	s.theme = s.theme.Toggled()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// Task returns a copy of the task with the given id.
func (s *TaskStore) Task(id string) (tasks.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return tasks.Task{}, false
	}
	return s.list[idx].Clone(), true
}

// Tasks returns a copy of the current list, newest first.
func (s *TaskStore) Tasks() []tasks.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return tasks.CloneList(s.list)
}

// Theme returns the current theme flag.
func (s *TaskStore) Theme() tasks.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.theme
}

// Snapshot returns the full consumer-facing view of store state.
func (s *TaskStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

// OnChange registers a listener invoked with a fresh snapshot after
// every state change. Listeners run on the mutating goroutine and
// should return quickly. Registration is not safe concurrently with
// mutations; wire listeners up before serving traffic.
func (s *TaskStore) OnChange(fn func(Snapshot)) {
	s.listeners = append(s.listeners, fn)
}

func (s *TaskStore) afterMutation(snap Snapshot) {
	s.syncer.Enqueue(snap.Tasks)
	s.publish(snap)
}

func (s *TaskStore) publish(snap Snapshot) {
	for _, fn := range s.listeners {
		fn(snap)
	}
}

// indexLocked finds the position of a task by id; -1 when absent.
// Callers must hold the lock.
func (s *TaskStore) indexLocked(id string) int {
	for i, t := range s.list {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// snapshotLocked copies current state. Callers must hold the lock.
func (s *TaskStore) snapshotLocked() Snapshot {
	return Snapshot{
		Tasks: tasks.CloneList(s.list),
		Theme: s.theme,
	}
}
