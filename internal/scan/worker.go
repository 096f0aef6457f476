// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package scan

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Processor is the part of the orchestrator a worker drives
type Processor interface {
	ProcessNextPending(ctx context.Context) ProcessResult
}

// Worker runs a fixed number of goroutines that claim and process pending
// scans, sleeping for the poll interval whenever the queue is empty.
type Worker struct {
	processor    Processor
	concurrency  int
	pollInterval time.Duration
	log          *logrus.Entry
}

func NewWorker(processor Processor, concurrency int, pollInterval time.Duration, log *logrus.Entry) *Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &Worker{
		processor:    processor,
		concurrency:  concurrency,
		pollInterval: pollInterval,
		log:          log,
	}
}

// Run blocks until ctx is canceled
func (w *Worker) Run(ctx context.Context) error {
	w.log.WithFields(logrus.Fields{
		"concurrency":   w.concurrency,
		"poll_interval": w.pollInterval,
	}).Info("scan worker started")

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < w.concurrency; i++ {
		id := i
		g.Go(func() error {
			w.loop(ctx, id)
			return nil
		})
	}
	err := g.Wait()
	w.log.Info("scan worker stopped")
	return err
}

func (w *Worker) loop(ctx context.Context, id int) {
	log := w.log.WithField("worker", id)
	for {
		if ctx.Err() != nil {
			return
		}

		res := w.processor.ProcessNextPending(ctx)
		if res.Processed {
			log.WithFields(logrus.Fields{
				"scan_id": res.ScanID,
				"status":  res.Status,
			}).Debug("processed scan")
			continue
		}
		if res.Error != "" {
			log.WithField("error", res.Error).Warn(res.Message)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.pollInterval):
		}
	}
}
