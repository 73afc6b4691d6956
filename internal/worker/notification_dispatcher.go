package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

const deliverTimeout = 5 * time.Second

// Sink persists and delivers a single notification.
type Sink interface {
	Deliver(ctx context.Context, n model.Notification) error
}

// NotificationDispatcher fans notifications out to a fixed pool of workers
// so that request handlers never wait on delivery.
type NotificationDispatcher struct {
	sink      Sink
	workers   int
	queueSize int
	logger    *slog.Logger

	mu      sync.RWMutex
	jobs    chan model.Notification
	running bool
	baseCtx context.Context
	wg      sync.WaitGroup
}

// NewNotificationDispatcher constructs the dispatcher worker pool.
func NewNotificationDispatcher(sink Sink, workers, queueSize int, logger *slog.Logger) *NotificationDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &NotificationDispatcher{
		sink:      sink,
		workers:   workers,
		queueSize: queueSize,
		logger:    logger,
	}
}

// Start launches background delivery. Calling Start twice is a no-op.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}

	d.baseCtx = context.WithoutCancel(ctx)
	d.jobs = make(chan model.Notification, d.queueSize)
	d.running = true
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(d.jobs)
	}
}

// Stop closes the queue and waits for queued notifications to be delivered.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}

// Notify enqueues n. When the dispatcher is stopped or the queue is full the
// notification is delivered on the caller's goroutine instead of being dropped.
func (d *NotificationDispatcher) Notify(ctx context.Context, n model.Notification) {
	d.mu.RLock()
	if d.running {
		select {
		case d.jobs <- n:
			d.mu.RUnlock()
			return
		default:
		}
	}
	d.mu.RUnlock()

	d.logger.Debug("notification queue unavailable, delivering inline", slog.Int64("user_id", n.UserID))
	d.deliver(context.WithoutCancel(ctx), n)
}

// Pending returns the number of queued notifications.
func (d *NotificationDispatcher) Pending() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.jobs == nil {
		return 0
	}
	return len(d.jobs)
}

func (d *NotificationDispatcher) worker(jobs <-chan model.Notification) {
	defer d.wg.Done()
	for n := range jobs {
		d.deliver(d.baseCtx, n)
	}
}

func (d *NotificationDispatcher) deliver(ctx context.Context, n model.Notification) {
	ctx, cancel := context.WithTimeout(ctx, deliverTimeout)
	defer cancel()

	if err := d.sink.Deliver(ctx, n); err != nil {
		d.logger.Error("notification delivery failed",
			slog.Int64("user_id", n.UserID),
			slog.String("type", string(n.Type)),
			slog.String("error", err.Error()),
		)
	}
}
