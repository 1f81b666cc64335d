package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Worker polls the queue and dispatches jobs to registered handlers.
type Worker struct {
	queue    *Queue
	config   WorkerConfig
	handlers map[string]Handler
	mu       sync.RWMutex
	wg       sync.WaitGroup
}

// NewWorker creates a polling worker over the queue.
func NewWorker(queue *Queue, config WorkerConfig) *Worker {
	return &Worker{
		queue:    queue,
		config:   config,
		handlers: make(map[string]Handler),
	}
}

// RegisterHandler registers a handler for its job type.
func (w *Worker) RegisterHandler(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[handler.GetType()] = handler
	log.Info().Str("type", handler.GetType()).Msg("Registered job handler")
}

// Start launches the worker goroutines. They stop when ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	log.Info().Int("concurrency", w.config.Concurrency).Msg("Starting job workers")

	for i := 0; i < w.config.Concurrency; i++ {
		w.wg.Add(1)
		go w.run(ctx, i+1)
	}
}

// Wait blocks until all worker goroutines exit.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context, workerID int) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", workerID).Msg("Job worker stopping")
			return
		case <-ticker.C:
			if err := w.processNext(ctx, workerID); err != nil {
				log.Error().Int("worker", workerID).Err(err).Msg("Job processing error")
			}
		}
	}
}

func (w *Worker) processNext(ctx context.Context, workerID int) error {
	job, err := w.queue.Dequeue(ctx)
	if err != nil {
		return err
	}
	if job == nil {
		return nil
	}

	logger := log.With().
		Int("worker", workerID).
		Str("job_id", job.ID.String()).
		Str("type", job.Type).
		Logger()

	w.mu.RLock()
	handler, ok := w.handlers[job.Type]
	w.mu.RUnlock()

	if !ok {
		logger.Error().Msg("No handler registered for job type")
		return w.queue.MarkFailed(ctx, job.ID, fmt.Errorf("no handler registered for job type: %s", job.Type))
	}

	jobCtx, cancel := context.WithTimeout(ctx, w.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := handler.Handle(jobCtx, job); err != nil {
		logger.Error().Dur("duration", time.Since(start)).Err(err).Msg("Job failed")
		return w.queue.MarkFailed(ctx, job.ID, err)
	}

	logger.Info().Dur("duration", time.Since(start)).Msg("Job completed")
	return w.queue.MarkCompleted(ctx, job.ID)
}
