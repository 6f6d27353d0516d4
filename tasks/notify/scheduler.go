package notify

import (
	"context"
	"time"

	"github.com/mazid79/MemoraTodoApp/logger"
	"github.com/mazid79/MemoraTodoApp/tasks"
)

// ReminderTitle is the fixed title every reminder fires with; the task
// title becomes the body.
const ReminderTitle = "Task Reminder! ⏰"

// Scheduler translates a task's due-date intent into gateway calls,
// keyed by task id. Gateway failures are logged and swallowed: reminder
// delivery is best-effort and must never block or fail a mutation.
type Scheduler struct {
	gateway Gateway
	logger  *logger.Logger
}

// NewScheduler creates a scheduler on top of the given gateway.
func NewScheduler(gateway Gateway, lg *logger.Logger) *Scheduler {
	return &Scheduler{
		gateway: gateway,
		logger:  lg,
	}
}

// ScheduleForTask arms a reminder at the task's due date. No-op when
// the task has no due date.
func (s *Scheduler) ScheduleForTask(ctx context.Context, t tasks.Task) {
	if t.DueDate == nil {
		return
	}

	if err := s.gateway.Schedule(ctx, t.ID, ReminderTitle, t.Title, *t.DueDate); err != nil {
		s.logger.Reminder(t.ID, "failed to schedule reminder", map[string]any{
			"error":   err.Error(),
			"fire_at": t.DueDate.Format(time.RFC3339),
		})
		return
	}

	s.logger.Reminder(t.ID, "reminder scheduled", map[string]any{
		"fire_at": t.DueDate.Format(time.RFC3339),
	})
}

// CancelForTask disarms any pending reminder for the id.
func (s *Scheduler) CancelForTask(ctx context.Context, id string) {
	if err := s.gateway.Cancel(ctx, id); err != nil {
		s.logger.Reminder(id, "failed to cancel reminder", map[string]any{
			"error": err.Error(),
		})
		return
	}

	s.logger.Reminder(id, "reminder cancelled")
}
