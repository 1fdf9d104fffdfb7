// Package worker moves buffered audit events to their sink in the background.
package worker

import (
	"context"
	"time"

	"custody/pkg/platform/audit"
)

// Source yields buffered events, oldest first.
type Source interface {
	DequeueBatch(n int) []audit.Event
}

// Sink delivers one batch. It owns error handling; the worker never retries.
type Sink func(ctx context.Context, batch []audit.Event)

// Worker drains a Source into a Sink whenever it is woken or the interval
// elapses, and once more when its context ends.
type Worker struct {
	source    Source
	sink      Sink
	wake      <-chan struct{}
	interval  time.Duration
	batchSize int
}

func NewWorker(source Source, sink Sink, wake <-chan struct{}, interval time.Duration, batchSize int) *Worker {
	if interval <= 0 {
		interval = time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Worker{source: source, sink: sink, wake: wake, interval: interval, batchSize: batchSize}
}

// Run blocks until ctx is done, then drains what is left with a fresh
// context bounded by the interval.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.interval)
			w.Drain(drainCtx)
			cancel()
			return nil
		case <-w.wake:
			w.Drain(ctx)
		case <-ticker.C:
			w.Drain(ctx)
		}
	}
}

// Drain delivers batches until the source is empty.
func (w *Worker) Drain(ctx context.Context) {
	for {
		batch := w.source.DequeueBatch(w.batchSize)
		if len(batch) == 0 {
			return
		}
		w.sink(ctx, batch)
	}
}
