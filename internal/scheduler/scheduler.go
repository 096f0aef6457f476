// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

// Package scheduler runs periodic scan triggers and the stale-scan watchdog.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/regrada-ai/aidebt-be/internal/scan"
)

// Jobs is the part of the scan orchestrator the scheduler drives
type Jobs interface {
	TriggerScheduled(ctx context.Context) (scan.TriggerResult, error)
	FailStale(ctx context.Context) (int, error)
}

// Scheduler registers jobs with robfig/cron. A job that is still running
// when its next tick fires is skipped.
type Scheduler struct {
	cron    *cron.Cron
	jobs    Jobs
	timeout time.Duration
	log     *logrus.Entry
}

func New(jobs Jobs, log *logrus.Entry) *Scheduler {
	logger := cron.PrintfLogger(log)
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		jobs:    jobs,
		timeout: 5 * time.Minute,
		log:     log,
	}
}

// Register adds the scheduled scan job when schedule is set and the watchdog
// when watchdogEvery is positive. It returns the number of jobs added.
func (s *Scheduler) Register(schedule string, watchdogEvery time.Duration) (int, error) {
	added := 0
	if schedule != "" {
		if _, err := s.cron.AddFunc(schedule, func() { s.RunScheduledScans(context.Background()) }); err != nil {
			return added, fmt.Errorf("invalid scan schedule %q: %w", schedule, err)
		}
		added++
	}
	if watchdogEvery > 0 {
		spec := fmt.Sprintf("@every %s", watchdogEvery)
		if _, err := s.cron.AddFunc(spec, func() { s.RunWatchdog(context.Background()) }); err != nil {
			return added, fmt.Errorf("invalid watchdog interval %s: %w", watchdogEvery, err)
		}
		added++
	}
	return added, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.WithField("jobs", len(s.cron.Entries())).Info("scheduler started")
}

// Stop stops scheduling and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stopped before running jobs finished")
	}
}

// RunScheduledScans queues a full scan of every active repository
func (s *Scheduler) RunScheduledScans(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.jobs.TriggerScheduled(ctx)
	if err != nil {
		s.log.WithError(err).Error("scheduled scan trigger failed")
		return
	}
	entry := s.log.WithFields(logrus.Fields{"queued": res.Queued, "failed": res.Failed})
	if !res.Success {
		entry.Warn("scheduled scans partially queued")
		return
	}
	entry.Info("scheduled scans queued")
}

// RunWatchdog fails scans stuck in processing
func (s *Scheduler) RunWatchdog(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.jobs.FailStale(ctx)
	if err != nil {
		s.log.WithError(err).Error("stale scan watchdog failed")
		return
	}
	if n > 0 {
		s.log.WithField("failed", n).Warn("watchdog failed stale scans")
	}
}
