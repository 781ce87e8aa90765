package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/pkg/errs"
)

var (
	ErrQueueFull   = errs.New("worker queue is full")
	ErrPoolStopped = errs.New("worker pool is stopped")
)

type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pool is a fixed-size set of long-lived workers draining a FIFO queue.
// Pool size caps contention on the distributed lock and the database
// connection pool while still letting independent cabinets proceed in
// parallel. The pool is constructed and owned by the composition root;
// Start/Stop run under the fx lifecycle.
type Pool struct {
	size        int
	stopTimeout time.Duration
	queue       chan Task
	logger      *slog.Logger

	mu      sync.Mutex
	alive   int
	stopped bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

func NewPool(cfg config.WorkerConfig, logger *slog.Logger) *Pool {
	return &Pool{
		size:        cfg.Size,
		stopTimeout: cfg.StopTimeout,
		queue:       make(chan Task, cfg.QueueCapacity),
		logger:      logger,
		stopCh:      make(chan struct{}),
	}
}

// Start tops the pool up to exactly size live workers. Calling it again is
// safe: only the missing workers are spawned.
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		p.stopCh = make(chan struct{})
		p.stopped = false
	}

	missing := p.size - p.alive
	for range missing {
		p.alive++
		p.wg.Add(1)
		go p.workerLoop(p.stopCh)
	}
	if missing > 0 {
		p.logger.Info("worker pool started", "spawned", missing, "size", p.size)
	}
}

// Stop signals all workers to exit and joins them, bounded by the configured
// stop timeout. In-flight tasks run to completion.
func (p *Pool) Stop() error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	close(p.stopCh)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("worker pool stopped")
		return nil
	case <-time.After(p.stopTimeout):
		p.logger.Warn("worker pool stop timed out", "timeout", p.stopTimeout)
		return ErrPoolStopped
	}
}

// Enqueue pushes a task onto the FIFO queue without blocking.
func (p *Pool) Enqueue(task Task) error {
	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()
	if stopped {
		return ErrPoolStopped
	}

	select {
	case p.queue <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *Pool) workerLoop(stopCh <-chan struct{}) {
	defer func() {
		p.mu.Lock()
		p.alive--
		p.mu.Unlock()
		p.wg.Done()
	}()

	for {
		select {
		case <-stopCh:
			return
		case task := <-p.queue:
			p.runTask(task)
		}
	}
}

func (p *Pool) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker task panicked", "task", task.Name, "panic", r)
		}
	}()

	start := time.Now()
	if err := task.Run(context.Background()); err != nil {
		p.logger.Error("worker task failed",
			"task", task.Name,
			"duration", time.Since(start),
			"error", err.Error())
		return
	}
	p.logger.Info("worker task completed", "task", task.Name, "duration", time.Since(start))
}
