package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// JobProcessor defines the interface for processing jobs
type JobProcessor interface {
	ProcessJobs(ctx context.Context) error
}

// Worker runs a JobProcessor on a fixed interval until stopped.
type Worker struct {
	name         string
	processor    JobProcessor
	pollInterval time.Duration
	logger       *zap.Logger
	stopChan     chan struct{}
	doneChan     chan struct{}
}

func NewWorker(name string, processor JobProcessor, pollInterval time.Duration, logger *zap.Logger) *Worker {
	return &Worker{
		name:         name,
		processor:    processor,
		pollInterval: pollInterval,
		logger:       logger.With(zap.String("worker", name)),
		stopChan:     make(chan struct{}),
		doneChan:     make(chan struct{}),
	}
}

// Start blocks running the polling loop. Run it in its own goroutine.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	defer close(w.doneChan)

	w.logger.Info("worker started", zap.Duration("interval", w.pollInterval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker stopped: context cancelled")
			return
		case <-w.stopChan:
			w.logger.Info("worker stopped: stop signal received")
			return
		case <-ticker.C:
			if err := w.processor.ProcessJobs(ctx); err != nil {
				w.logger.Error("job run failed", zap.Error(err))
			}
		}
	}
}

// Stop signals the loop to exit and waits for the current run to finish.
func (w *Worker) Stop() {
	select {
	case <-w.stopChan:
	default:
		close(w.stopChan)
	}
	<-w.doneChan
}
