package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/audyningrum27/simtrendi/internal/domain/notification"
	"github.com/audyningrum27/simtrendi/internal/pkg/metrics"
	"github.com/audyningrum27/simtrendi/internal/pkg/sse"
	"github.com/audyningrum27/simtrendi/internal/pkg/validator"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.Repository
	hub    *sse.Hub
	config Config

	queue    chan *notification.Notification
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once

	// stopMu guards stopped so nothing is queued after the workers exit.
	stopMu  sync.RWMutex
	stopped bool
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(repo notification.Repository, hub *sse.Hub, cfg Config) notification.Service {
	// Set defaults
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		config: cfg,
		queue:  make(chan *notification.Notification, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	// Start background workers
	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

// worker drains the queue, inserting in batches of up to BatchSize or every FlushInterval.
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]*notification.Notification, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		metrics.SetNotificationQueueDepth(len(s.queue))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.repo.CreateBatch(ctx, batch); err != nil {
			slog.Error("Failed to batch insert notifications", "worker", id, "count", len(batch), "error", err)
			for _, n := range batch {
				metrics.RecordNotificationFailure(n.Category)
			}
		} else {
			slog.Debug("Inserted notifications", "worker", id, "count", len(batch))
			for _, n := range batch {
				s.publish(n)
			}
		}

		batch = batch[:0]
	}

	for {
		select {
		case n := <-s.queue:
			batch = append(batch, n)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			for {
				select {
				case n := <-s.queue:
					batch = append(batch, n)
					if len(batch) >= s.config.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// Notify implements leave.NotificationSink. The notification is queued for the
// batch workers, or written directly when the queue is full or the service is stopped.
func (s *service) Notify(ctx context.Context, employeeID, message string, audience notification.Audience, category string) error {
	n, err := newNotification(notification.CreateNotificationRequest{
		EmployeeID: employeeID,
		Message:    message,
		Audience:   audience,
		Category:   category,
	})
	if err != nil {
		return err
	}

	s.stopMu.RLock()
	defer s.stopMu.RUnlock()
	if s.stopped {
		return s.directInsert(ctx, n)
	}

	select {
	case s.queue <- n:
		metrics.SetNotificationQueueDepth(len(s.queue))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		// Queue full, try direct insert
		return s.directInsert(ctx, n)
	}
}

func newNotification(req notification.CreateNotificationRequest) (*notification.Notification, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &notification.Notification{
		EmployeeID: req.EmployeeID,
		Message:    req.Message,
		Audience:   req.Audience,
		Category:   req.Category,
		IsRead:     false,
		CreatedAt:  time.Now(),
	}, nil
}

// directInsert writes a single notification synchronously.
func (s *service) directInsert(ctx context.Context, n *notification.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	s.publish(n)
	return nil
}

// publish pushes employee-audience notifications to that employee's open streams.
func (s *service) publish(n *notification.Notification) {
	if n.Audience != notification.AudienceEmployee {
		return
	}
	s.hub.Publish(n.EmployeeID, sse.Event{
		EmployeeID: n.EmployeeID,
		Event:      "notification",
		Data:       toResponse(n),
	})
}

// toResponse converts a Notification entity to NotificationResponse
func toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:         n.ID,
		EmployeeID: n.EmployeeID,
		Message:    n.Message,
		Audience:   n.Audience,
		Category:   n.Category,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

func toResponses(ns []*notification.Notification) []notification.NotificationResponse {
	responses := make([]notification.NotificationResponse, len(ns))
	for i, n := range ns {
		responses[i] = toResponse(n)
	}
	return responses
}

// Create stores a notification immediately and returns it.
func (s *service) Create(ctx context.Context, req notification.CreateNotificationRequest) (notification.NotificationResponse, error) {
	n, err := newNotification(req)
	if err != nil {
		return notification.NotificationResponse{}, err
	}
	if err := s.directInsert(ctx, n); err != nil {
		return notification.NotificationResponse{}, err
	}
	return toResponse(n), nil
}

// ListForEmployee returns an employee's notifications, newest first.
func (s *service) ListForEmployee(ctx context.Context, employeeID string) ([]notification.NotificationResponse, error) {
	if validator.IsEmpty(employeeID) {
		return nil, validator.ValidationErrors{{Field: "id_pegawai", Message: "id_pegawai is required"}}
	}

	ns, err := s.repo.List(ctx, notification.ListNotificationsRequest{
		EmployeeID: &employeeID,
		Audience:   notification.AudienceEmployee,
	})
	if err != nil {
		return nil, err
	}
	return toResponses(ns), nil
}

// ListForAdmin returns admin notifications, newest first, optionally of one category.
func (s *service) ListForAdmin(ctx context.Context, category *string) ([]notification.NotificationResponse, error) {
	if category != nil && validator.IsEmpty(*category) {
		category = nil
	}

	ns, err := s.repo.List(ctx, notification.ListNotificationsRequest{
		Audience: notification.AudienceAdmin,
		Category: category,
	})
	if err != nil {
		return nil, err
	}
	return toResponses(ns), nil
}

// MarkAsRead marks one notification as read.
func (s *service) MarkAsRead(ctx context.Context, id string) error {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	return s.repo.MarkAsRead(ctx, id)
}

// Subscribe opens an SSE stream for an employee. The returned channel closes
// when ctx ends or the hub shuts down; cleanup releases the subscription.
func (s *service) Subscribe(ctx context.Context, employeeID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(employeeID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				resp, ok := event.Data.(notification.NotificationResponse)
				if !ok {
					continue
				}
				select {
				case out <- notification.SSEEvent{Event: event.Event, Data: resp}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop flushes queued notifications and stops the workers. Later Notify calls write directly.
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		s.stopMu.Lock()
		s.stopped = true
		s.stopMu.Unlock()

		close(s.stopCh)
		s.wg.Wait()
		metrics.SetNotificationQueueDepth(0)
		slog.Info("Notification service stopped")
	})
}
