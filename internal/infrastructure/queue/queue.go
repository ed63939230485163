package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusPending TaskStatus = "PENDING"
	TaskStatusRunning TaskStatus = "RUNNING"
	TaskStatusSuccess TaskStatus = "SUCCESS"
	TaskStatusFailed  TaskStatus = "FAILED"
)

// Task is one unit of background work
type Task struct {
	ID          uuid.UUID
	Name        string
	Key         string // de-duplication key; empty disables de-duplication
	Payload     json.RawMessage
	RequestID   string
	Status      TaskStatus
	Error       string
	EnqueuedAt  time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

func (t *Task) start() {
	now := time.Now()
	t.Status = TaskStatusRunning
	t.StartedAt = &now
}

func (t *Task) finish(err error) {
	now := time.Now()
	t.CompletedAt = &now
	if err != nil {
		t.Status = TaskStatusFailed
		t.Error = err.Error()
		return
	}
	t.Status = TaskStatusSuccess
}

// dedupeKey scopes a task key by task name
func (t *Task) dedupeKey() string {
	return t.Name + ":" + t.Key
}

// Handler executes tasks of one name
type Handler func(ctx context.Context, payload json.RawMessage) error

// Config holds queue configuration
type Config struct {
	Workers     int
	Capacity    int
	TaskTimeout time.Duration
	DedupeTTL   time.Duration
}

// DefaultConfig returns default queue configuration
func DefaultConfig() Config {
	return Config{
		Workers:     2,
		Capacity:    100,
		TaskTimeout: 300 * time.Second,
		DedupeTTL:   10 * time.Minute,
	}
}

// Queue runs named tasks on a fixed worker pool. Tasks are attempted once;
// a failed task is logged and dropped. While a task with a given key is
// queued or running, enqueuing the same name and key is a no-op.
type Queue struct {
	config   Config
	dedupe   shared.IdempotencyStore
	logger   *zap.Logger
	handlers map[string]Handler

	tasks   chan *Task
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.RWMutex
	running bool
}

// New creates a queue. dedupe may be nil to disable de-duplication.
func New(config Config, dedupe shared.IdempotencyStore, logger *zap.Logger) *Queue {
	defaults := DefaultConfig()
	if config.Workers < 1 {
		config.Workers = defaults.Workers
	}
	if config.Capacity < 1 {
		config.Capacity = defaults.Capacity
	}
	if config.TaskTimeout <= 0 {
		config.TaskTimeout = defaults.TaskTimeout
	}
	if config.DedupeTTL <= 0 {
		config.DedupeTTL = defaults.DedupeTTL
	}
	return &Queue{
		config:   config,
		dedupe:   dedupe,
		logger:   logger.Named("queue"),
		handlers: make(map[string]Handler),
		tasks:    make(chan *Task, config.Capacity),
	}
}

// Register binds a handler to a task name. Call before Start.
func (q *Queue) Register(name string, handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[name] = handler
}

// Start starts the worker pool
func (q *Queue) Start(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		return nil
	}
	q.running = true

	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	q.cancel = cancel

	for i := 0; i < q.config.Workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, i)
	}

	q.logger.Info("Task queue started",
		zap.Int("workers", q.config.Workers),
		zap.Duration("task_timeout", q.config.TaskTimeout),
	)
	return nil
}

// Stop stops accepting tasks and lets workers drain the buffer. When ctx
// expires first, running tasks are cancelled and the rest are dropped.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return nil
	}
	q.running = false
	close(q.tasks)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.cancel()
		q.logger.Info("Task queue stopped gracefully")
		return nil
	case <-ctx.Done():
		q.cancel()
		q.logger.Warn("Task queue stop timed out")
		return ctx.Err()
	}
}

// Enqueue submits a task. It reports false without error when a task with
// the same name and key is already pending.
func (q *Queue) Enqueue(ctx context.Context, name, key string, payload any) (bool, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("encode %s payload: %w", name, err)
	}

	q.mu.RLock()
	defer q.mu.RUnlock()

	if !q.running {
		return false, ErrQueueNotRunning
	}
	if _, ok := q.handlers[name]; !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}

	task := &Task{
		ID:         uuid.New(),
		Name:       name,
		Key:        key,
		Payload:    raw,
		RequestID:  logger.GetRequestID(ctx),
		Status:     TaskStatusPending,
		EnqueuedAt: time.Now(),
	}

	if q.dedupe != nil && key != "" {
		fresh, err := q.dedupe.MarkProcessed(ctx, task.dedupeKey(), q.config.DedupeTTL)
		if err != nil {
			return false, fmt.Errorf("de-duplicate %s: %w", name, err)
		}
		if !fresh {
			logger.L(ctx).Debug("Task already pending",
				zap.String("task", name),
				zap.String("key", key),
			)
			return false, nil
		}
	}

	select {
	case q.tasks <- task:
		logger.L(ctx).Debug("Task enqueued",
			zap.String("task_id", task.ID.String()),
			zap.String("task", name),
			zap.String("key", key),
		)
		return true, nil
	default:
		q.release(ctx, task)
		return false, ErrQueueFull
	}
}

// Pending returns the number of buffered tasks
func (q *Queue) Pending() int {
	return len(q.tasks)
}

func (q *Queue) worker(ctx context.Context, workerID int) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-q.tasks:
			if !ok {
				return
			}
			q.process(ctx, task, workerID)
		}
	}
}

func (q *Queue) process(ctx context.Context, task *Task, workerID int) {
	taskCtx, cancel := context.WithTimeout(ctx, q.config.TaskTimeout)
	defer cancel()

	log := q.logger.With(
		zap.Int("worker_id", workerID),
		zap.String("task_id", task.ID.String()),
		zap.String("task", task.Name),
	)
	if task.RequestID != "" {
		log = log.With(zap.String("request_id", task.RequestID))
		taskCtx = logger.WithRequestID(taskCtx, task.RequestID)
	}
	taskCtx = logger.WithContext(taskCtx, log)

	q.mu.RLock()
	handler := q.handlers[task.Name]
	q.mu.RUnlock()

	task.start()
	err := q.run(taskCtx, handler, task)
	task.finish(err)
	q.release(taskCtx, task)

	if err != nil {
		log.Error("Task failed",
			zap.Duration("elapsed", task.CompletedAt.Sub(*task.StartedAt)),
			zap.Error(err),
		)
		return
	}
	log.Info("Task completed", zap.Duration("elapsed", task.CompletedAt.Sub(*task.StartedAt)))
}

func (q *Queue) run(ctx context.Context, handler Handler, task *Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return handler(ctx, task.Payload)
}

func (q *Queue) release(ctx context.Context, task *Task) {
	if q.dedupe == nil || task.Key == "" {
		return
	}
	if err := q.dedupe.Release(context.WithoutCancel(ctx), task.dedupeKey()); err != nil {
		q.logger.Warn("Failed to release task key",
			zap.String("task", task.Name),
			zap.String("key", task.Key),
			zap.Error(err),
		)
	}
}
