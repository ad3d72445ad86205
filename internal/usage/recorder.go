package usage

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ubuygold/folioapi/internal/model"
)

// Store is the persistence the Recorder writes through.
type Store interface {
	CreateUsageLog(entry *model.UsageLog) error
	TouchAPIKey(id uint, at time.Time) error
}

// Recorder persists usage logs on a background worker so that writing a
// record never delays the response it describes.
type Recorder struct {
	store  Store
	logger *slog.Logger
	queue  chan model.UsageLog
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewRecorder starts the worker. queueSize below 1 is treated as 1.
func NewRecorder(store Store, queueSize int, logger *slog.Logger) *Recorder {
	if queueSize < 1 {
		queueSize = 1
	}
	r := &Recorder{
		store:  store,
		logger: logger.With("component", "usage"),
		queue:  make(chan model.UsageLog, queueSize),
	}
	r.wg.Add(1)
	go r.worker()
	return r
}

// Record queues entry for persistence. It reports false when the entry was
// dropped because the queue is full or the recorder has been closed.
func (r *Recorder) Record(entry model.UsageLog) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.logger.Warn("Dropping usage record: recorder closed", "api_key_id", entry.APIKeyID, "endpoint", entry.Endpoint)
		return false
	}
	select {
	case r.queue <- entry:
		return true
	default:
		r.logger.Error("Failed to queue usage record: queue is full", "api_key_id", entry.APIKeyID, "endpoint", entry.Endpoint)
		return false
	}
}

func (r *Recorder) worker() {
	defer r.wg.Done()
	for entry := range r.queue {
		r.write(entry)
	}
}

func (r *Recorder) write(entry model.UsageLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := r.store.CreateUsageLog(&entry); err != nil {
		r.logger.Error("Failed to write usage record", "api_key_id", entry.APIKeyID, "error", err)
		return
	}
	if err := r.store.TouchAPIKey(entry.APIKeyID, entry.CreatedAt); err != nil {
		r.logger.Warn("Failed to update key last-used time", "api_key_id", entry.APIKeyID, "error", err)
	}
}

// Close stops accepting records and waits until every queued record is written.
// It is safe to call more than once.
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	r.wg.Wait()
	r.logger.Info("Usage recorder shutdown complete.")
}
