// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/regrada-ai/aidebt-be/internal/config"
	"github.com/regrada-ai/aidebt-be/internal/scan"
	"github.com/regrada-ai/aidebt-be/internal/scheduler"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Process pending scans and run scheduled jobs",
	RunE:  runWorker,
}

func runWorker(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Storage == config.StorageMemory {
		return fmt.Errorf("worker needs shared storage, use serve --worker with STORAGE=memory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	return runBackground(ctx, a)
}

// runBackground runs the scan worker and the scheduler until ctx is canceled
func runBackground(ctx context.Context, a *app) error {
	jobs := scheduler.New(a.orchestrator, a.log.WithField("component", "scheduler"))
	if _, err := jobs.Register(a.cfg.ScanSchedule, a.watchdogInterval()); err != nil {
		return err
	}
	jobs.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		jobs.Stop(stopCtx)
	}()

	worker := scan.NewWorker(a.orchestrator, a.cfg.ScanWorkers, a.cfg.ScanPollInterval, a.log.WithField("component", "worker"))
	return worker.Run(ctx)
}
