package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"quiz-folio/internal/config"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultMailWorkers     = 2
	defaultMailQueueSize   = 100
	defaultMailSendTimeout = 30 * time.Second
)

// ErrDispatcherClosed is returned by Submit after Shutdown has started.
var ErrDispatcherClosed = errors.New("mail dispatcher is shut down")

// MailJob is one unit of mail work. Run receives a context bounded by the send timeout.
type MailJob struct {
	Kind string
	Run  func(ctx context.Context) error
}

// MailResult is the outcome of one job.
type MailResult struct {
	JobID string
	Err   error
}

// MailDispatcher runs mail jobs on a bounded worker pool.
type MailDispatcher interface {
	// Submit queues job and returns its id and a channel that receives exactly one result.
	Submit(job MailJob) (string, <-chan MailResult, error)
	// Shutdown stops accepting jobs and waits for queued ones to finish.
	Shutdown(ctx context.Context) error
}

type queuedMailJob struct {
	id     string
	job    MailJob
	result chan MailResult
}

type mailDispatcher struct {
	queue       chan queuedMailJob
	sendTimeout time.Duration
	baseCtx     context.Context
	cancel      context.CancelFunc

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewMailDispatcher starts cfg.Workers workers reading from a queue of cfg.QueueSize.
func NewMailDispatcher(cfg config.MailConfig) MailDispatcher {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultMailWorkers
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultMailQueueSize
	}
	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = defaultMailSendTimeout
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	d := &mailDispatcher{
		queue:       make(chan queuedMailJob, queueSize),
		sendTimeout: timeout,
		baseCtx:     baseCtx,
		cancel:      cancel,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	logger.Get().Info("Mail dispatcher started",
		zap.Int("workers", workers),
		zap.Int("queueSize", queueSize),
		zap.Duration("sendTimeout", timeout))
	return d
}

func (d *mailDispatcher) Submit(job MailJob) (string, <-chan MailResult, error) {
	if job.Run == nil {
		return "", nil, fmt.Errorf("mail job %q has no run function", job.Kind)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return "", nil, ErrDispatcherClosed
	}

	queued := queuedMailJob{
		id:     uuid.NewString(),
		job:    job,
		result: make(chan MailResult, 1),
	}
	select {
	case d.queue <- queued:
		logger.Get().Debug("Mail job queued", zap.String("jobID", queued.id), zap.String("kind", job.Kind))
		return queued.id, queued.result, nil
	default:
		logger.Get().Warn("Mail queue is full, rejecting job", zap.String("kind", job.Kind))
		return "", nil, domain.NewMailQueueFullError()
	}
}

func (d *mailDispatcher) worker(n int) {
	defer d.wg.Done()
	for queued := range d.queue {
		d.run(n, queued)
	}
}

func (d *mailDispatcher) run(worker int, queued queuedMailJob) {
	ctx, cancel := context.WithTimeout(d.baseCtx, d.sendTimeout)
	defer cancel()

	start := time.Now()
	err := safeRun(ctx, queued.job.Run)

	fields := []zap.Field{
		zap.String("jobID", queued.id),
		zap.String("kind", queued.job.Kind),
		zap.Int("worker", worker),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		logger.Get().Error("Mail job failed", append(fields, zap.Error(err))...)
	} else {
		logger.Get().Info("Mail job finished", fields...)
	}

	queued.result <- MailResult{JobID: queued.id, Err: err}
	close(queued.result)
}

func safeRun(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mail job panicked: %v", r)
		}
	}()
	return fn(ctx)
}

func (d *mailDispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		logger.Get().Info("Mail dispatcher drained")
		return nil
	case <-ctx.Done():
		// Abort in-flight sends; workers still deliver their results.
		d.cancel()
		return fmt.Errorf("mail dispatcher shutdown: %w", ctx.Err())
	}
}

// awaitMailResult blocks until the job result arrives or ctx ends.
func awaitMailResult(ctx context.Context, results <-chan MailResult) (MailResult, error) {
	select {
	case res := <-results:
		return res, nil
	case <-ctx.Done():
		return MailResult{}, ctx.Err()
	}
}
