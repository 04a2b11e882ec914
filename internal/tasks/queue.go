// Package tasks runs fulfillment side effects (emails, datastore inserts)
// off the request path. Tasks are retried with exponential backoff; tasks
// that exhaust their attempts or cannot be queued are logged and written to
// an optional dead-letter sink.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"saylani-fulfillment/internal/log"
	"saylani-fulfillment/internal/metrics"
)

var (
	ErrQueueFull = errors.New("task queue is full")
	ErrClosed    = errors.New("task queue is closed")
)

const (
	KindEmail  = "email"
	KindRecord = "record"
)

// Task is one detached side effect.
type Task struct {
	ID     string
	Kind   string
	Target string // recipient or table, for logs
	Run    func(ctx context.Context) error
}

// New builds a task with a fresh id.
func New(kind, target string, run func(ctx context.Context) error) Task {
	return Task{ID: uuid.NewString(), Kind: kind, Target: target, Run: run}
}

// Enqueuer accepts tasks without blocking.
type Enqueuer interface {
	Enqueue(t Task) error
}

// DeadLetters receives tasks that could not be completed.
type DeadLetters interface {
	Append(rec any) error
}

// DeadLetter is what gets written for a dropped task.
type DeadLetter struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"`
	Target   string    `json:"target"`
	Error    string    `json:"error"`
	Attempts int       `json:"attempts"`
	FailedAt time.Time `json:"failed_at"`
}

type Config struct {
	Workers   int
	QueueSize int
	MaxTries  int
	// Timeout bounds a single attempt.
	Timeout time.Duration
	// InitialInterval is the first retry delay.
	InitialInterval time.Duration
	DeadLetters     DeadLetters
}

type Queue struct {
	cfg  Config
	jobs chan Task

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool

	wg        sync.WaitGroup
	startOnce sync.Once
	started   bool
}

func NewQueue(cfg Config) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.MaxTries <= 0 {
		cfg.MaxTries = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 500 * time.Millisecond
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		cfg:    cfg,
		jobs:   make(chan Task, cfg.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the workers. Subsequent calls are no-ops.
func (q *Queue) Start() {
	q.startOnce.Do(func() {
		q.mu.Lock()
		q.started = true
		q.mu.Unlock()
		for i := 0; i < q.cfg.Workers; i++ {
			q.wg.Add(1)
			go func() {
				defer q.wg.Done()
				for t := range q.jobs {
					q.run(t)
				}
			}()
		}
		logger := log.WithComponent("tasks")
		logger.Info().
			Int("workers", q.cfg.Workers).
			Int("queue_size", q.cfg.QueueSize).
			Msg("task workers started")
	})
}

// Enqueue hands a task to the workers. It never blocks.
func (q *Queue) Enqueue(t Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.reject(t, ErrClosed)
		return ErrClosed
	}
	select {
	case q.jobs <- t:
		return nil
	default:
		q.reject(t, ErrQueueFull)
		return ErrQueueFull
	}
}

// Shutdown stops intake and waits for queued tasks to finish. If ctx expires
// first, in-flight attempts are cancelled and ctx.Err() is returned. Tasks
// still buffered in a queue that was never started are rejected with
// ErrClosed so they reach the dead-letter sink.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	started := q.started
	q.mu.Unlock()

	if !started {
		for t := range q.jobs {
			q.reject(t, ErrClosed)
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		q.cancel()
		return nil
	case <-ctx.Done():
		q.cancel()
		<-done
		return ctx.Err()
	}
}

func (q *Queue) run(t Task) {
	logger := log.WithComponent("tasks").With().
		Str("task_id", t.ID).
		Str("kind", t.Kind).
		Str("target", t.Target).
		Logger()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = q.cfg.InitialInterval

	attempts := 0
	_, err := backoff.Retry(q.ctx, func() (struct{}, error) {
		attempts++
		ctx, cancel := context.WithTimeout(q.ctx, q.cfg.Timeout)
		defer cancel()
		return struct{}{}, t.Run(ctx)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(q.cfg.MaxTries)),
		backoff.WithNotify(func(err error, next time.Duration) {
			metrics.TasksTotal.WithLabelValues(t.Kind, "retry").Inc()
			logger.Warn().Err(err).Int("attempt", attempts).Dur("retry_in", next).Msg("task attempt failed")
		}),
	)
	if err == nil {
		metrics.TasksTotal.WithLabelValues(t.Kind, "ok").Inc()
		logger.Info().Int("attempts", attempts).Msg("task completed")
		return
	}
	metrics.TasksTotal.WithLabelValues(t.Kind, "failed").Inc()
	logger.Error().Err(err).Int("attempts", attempts).Msg("task failed; dropping")
	q.deadLetter(t, err, attempts)
}

func (q *Queue) reject(t Task, reason error) {
	metrics.TasksTotal.WithLabelValues(t.Kind, "rejected").Inc()
	logger := log.WithComponent("tasks")
	logger.Error().Err(reason).
		Str("task_id", t.ID).
		Str("kind", t.Kind).
		Str("target", t.Target).
		Msg("task rejected")
	q.deadLetter(t, reason, 0)
}

func (q *Queue) deadLetter(t Task, err error, attempts int) {
	if q.cfg.DeadLetters == nil {
		return
	}
	rec := DeadLetter{
		ID:       t.ID,
		Kind:     t.Kind,
		Target:   t.Target,
		Error:    err.Error(),
		Attempts: attempts,
		FailedAt: time.Now().UTC(),
	}
	if werr := q.cfg.DeadLetters.Append(rec); werr != nil {
		logger := log.WithComponent("tasks")
		logger.Error().Err(fmt.Errorf("write dead letter %s: %w", t.ID, werr)).Msg("dead letter lost")
	}
}
