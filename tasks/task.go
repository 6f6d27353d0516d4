package tasks

import "time"

// Task is a single to-do item. The ID doubles as the notification
// identifier: at most one reminder is ever pending per task.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}

// Clone returns a copy sharing no memory with the receiver.
func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	return out
}

// CloneList deep-copies a task list.
func CloneList(list []Task) []Task {
	out := make([]Task, len(list))
	for i, t := range list {
		out[i] = t.Clone()
	}
	return out
}

// HasReminder reports whether the task should have a pending reminder:
// a due date is set and the task is not completed.
func (t Task) HasReminder() bool {
	return t.DueDate != nil && !t.Completed
}

// Theme is the process-wide UI theme flag. It is never persisted and
// resets to light on restart.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggled returns the opposite theme.
func (th Theme) Toggled() Theme {
	if th == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Progress returns the completed/total ratio for a list snapshot.
// An empty list counts as zero progress.
func Progress(list []Task) float64 {
	if len(list) == 0 {
		return 0
	}

	done := 0
	for _, t := range list {
		if t.Completed {
			done++
		}
	}

	return float64(done) / float64(len(list))
}
