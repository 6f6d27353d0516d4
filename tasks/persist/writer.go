package persist

import (
	"context"
	"sync"
	"time"

	"github.com/mazid79/MemoraTodoApp/logger"
	"github.com/mazid79/MemoraTodoApp/tasks"
)

const saveTimeout = 10 * time.Second

// Writer keeps durable storage eventually consistent with in-memory
// state without blocking mutations. Each Enqueue captures a full
// snapshot; only the most recent snapshot is kept while a save is in
// flight, so rapid mutations coalesce into one write. Failed saves are
// retried with doubling backoff and then abandoned with an error log;
// durability stays best-effort, but failures are observable.
type Writer struct {
	gateway Gateway
	logger  *logger.Logger
	retries int
	backoff time.Duration

	mu       sync.Mutex
	cond     *sync.Cond
	latest   *string
	inFlight bool

	kick     chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWriter creates a write-behind writer for the given gateway.
func NewWriter(gateway Gateway, lg *logger.Logger, retries int, backoff time.Duration) *Writer {
	w := &Writer{
		gateway: gateway,
		logger:  lg,
		retries: retries,
		backoff: backoff,
		kick:    make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Start begins the background save loop.
func (w *Writer) Start() {
	w.wg.Add(1)
	go w.run()
}

// Enqueue schedules a save of the given snapshot. The snapshot is
// serialized immediately so the caller can keep mutating its own state.
// Enqueue never blocks on the gateway.
func (w *Writer) Enqueue(list []tasks.Task) {
	blob, err := EncodeTasks(list)
	if err != nil {
		w.logger.Error("failed to encode task list for saving", map[string]any{
			"error":      err.Error(),
			"task_count": len(list),
		})
		return
	}

	w.mu.Lock()
	w.latest = &blob
	w.mu.Unlock()

	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// Flush blocks until every enqueued snapshot has been handed to the
// gateway (or abandoned after retries). Used by tests and at shutdown.
func (w *Writer) Flush() {
	w.mu.Lock()
	for w.latest != nil || w.inFlight {
		w.cond.Wait()
	}
	w.mu.Unlock()
}

// Stop drains any pending snapshot and stops the save loop.
func (w *Writer) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	w.wg.Wait()
}

func (w *Writer) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopCh:
			w.drain()
			return
		case <-w.kick:
			w.drain()
		}
	}
}

// drain saves snapshots until none are pending.
func (w *Writer) drain() {
	for {
		w.mu.Lock()
		if w.latest == nil {
			w.inFlight = false
			w.cond.Broadcast()
			w.mu.Unlock()
			return
		}
		blob := *w.latest
		w.latest = nil
		w.inFlight = true
		w.mu.Unlock()

		w.save(blob)
	}
}

// save attempts one snapshot write with retries and doubling backoff.
func (w *Writer) save(blob string) {
	delay := w.backoff

	for attempt := 1; attempt <= w.retries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := w.gateway.Save(ctx, blob)
		cancel()

		if err == nil {
			w.logger.Debug("task list saved", map[string]any{
				"blob_bytes": len(blob),
				"attempt":    attempt,
			})
			return
		}

		w.logger.Warn("task list save failed", map[string]any{
			"error":   err.Error(),
			"attempt": attempt,
			"retries": w.retries,
		})

		if attempt < w.retries {
			time.Sleep(delay)
			delay *= 2
		}
	}

	w.logger.Error("task list save abandoned", map[string]any{
		"attempts":   w.retries,
		"blob_bytes": len(blob),
	})
}
