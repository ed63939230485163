package queue

import "errors"

var (
	// ErrQueueNotRunning is returned when enqueuing on a stopped queue
	ErrQueueNotRunning = errors.New("task queue is not running")

	// ErrQueueFull is returned when the task buffer is full
	ErrQueueFull = errors.New("task queue is full")

	// ErrUnknownTask is returned when no handler is registered for a task name
	ErrUnknownTask = errors.New("no handler registered for task")
)
