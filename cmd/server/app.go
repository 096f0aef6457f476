// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"

	"github.com/regrada-ai/aidebt-be/internal/alerts"
	"github.com/regrada-ai/aidebt-be/internal/api"
	"github.com/regrada-ai/aidebt-be/internal/api/handlers"
	"github.com/regrada-ai/aidebt-be/internal/config"
	"github.com/regrada-ai/aidebt-be/internal/detection"
	"github.com/regrada-ai/aidebt-be/internal/notify"
	"github.com/regrada-ai/aidebt-be/internal/scan"
	"github.com/regrada-ai/aidebt-be/internal/source/github"
	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/internal/storage/memory"
	"github.com/regrada-ai/aidebt-be/internal/storage/postgres"
	"github.com/regrada-ai/aidebt-be/internal/storage/s3"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// app holds the wired components shared by the serve and worker commands
type app struct {
	cfg *config.Config
	log *logrus.Logger

	db      *bun.DB
	memory  *memory.Store
	redis   *redis.Client
	stores  api.Stores
	archive storage.ReportArchive

	alerts       *alerts.Service
	orchestrator *scan.Orchestrator
}

func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, cfg.NewLogger(), nil
}

func newApp(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}
	if err := a.openStorage(ctx); err != nil {
		return nil, err
	}
	if err := a.openRedis(ctx); err != nil {
		a.close()
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.S3Bucket != "" {
		archive, err := s3.NewService(ctx, cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			a.close()
			return nil, err
		}
		a.archive = archive
		log.WithField("bucket", cfg.S3Bucket).Info("report archive enabled")
	}

	a.alerts = alerts.NewService(
		alerts.NewEngine(alerts.Rules{ScoreDropThreshold: cfg.AlertScoreDropThreshold}),
		a.stores.Alerts,
		a.newDispatcher(awsCfg),
		log.WithField("component", "alerts"),
	)

	var classifier detection.Classifier
	if cfg.OpenAIAPIKey != "" {
		classifier = detection.NewOpenAIClassifier(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		log.WithField("model", cfg.OpenAIModel).Info("model classifier enabled")
	}

	a.orchestrator = scan.NewOrchestrator(scan.Deps{
		Repositories: a.stores.Repositories,
		Scans:        a.stores.Scans,
		Results:      a.stores.Results,
		Scores:       a.stores.Scores,
		Sources:      github.NewFactory(a.stores.Organizations, cfg.GitHubAPIURL, cfg.GitHubRequestsPerSecond, log.WithField("component", "github")),
		Detector:     detection.NewDetector(classifier, cfg.DetectionParallelism, log.WithField("component", "detection")),
		Alerts:       a.alerts,
		Archive:      a.archive,
	}, scan.Config{
		MaxFiles:     cfg.ScanMaxFiles,
		MaxPRs:       cfg.ScanMaxPRs,
		StaleTimeout: cfg.ScanStaleTimeout,
	}, log.WithField("component", "scan"))

	return a, nil
}

func (a *app) openStorage(ctx context.Context) error {
	switch a.cfg.Storage {
	case config.StorageMemory:
		a.memory = memory.NewStore()
		a.stores = api.Stores{
			Organizations: a.memory.Organizations(),
			APIKeys:       a.memory.APIKeys(),
			Repositories:  a.memory.Repositories(),
			Scans:         a.memory.Scans(),
			Results:       a.memory.Results(),
			Scores:        a.memory.Scores(),
			Alerts:        a.memory.Alerts(),
		}
		a.log.Warn("using in-memory storage, data is lost on exit")
		return nil
	default:
		db, err := postgres.Open(ctx, a.cfg.DatabaseURL, a.cfg.DatabaseDebug)
		if err != nil {
			return err
		}
		a.db = db
		a.stores = api.Stores{
			Organizations: postgres.NewOrganizationRepository(db),
			APIKeys:       postgres.NewAPIKeyRepository(db),
			Repositories:  postgres.NewRepositoryRepository(db),
			Scans:         postgres.NewScanRepository(db),
			Results:       postgres.NewResultRepository(db),
			Scores:        postgres.NewScoreRepository(db),
			Alerts:        postgres.NewAlertRepository(db),
		}
		a.log.Info("connected to PostgreSQL")
		return nil
	}
}

func (a *app) openRedis(ctx context.Context) error {
	if a.cfg.RedisURL == "" {
		a.log.Warn("REDIS_URL not set, API key caching and rate limiting are disabled")
		return nil
	}
	opt, err := redis.ParseURL(a.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	a.redis = client
	a.log.Info("connected to Redis")
	return nil
}

func (a *app) newDispatcher(awsCfg aws.Config) *notify.Dispatcher {
	return notify.NewDispatcher(a.stores.Organizations, aidebt.AlertSeverity(a.cfg.AlertMinSeverity), a.log.WithField("component", "notify"),
		notify.NewEmail(awsCfg, a.cfg.AlertEmailFrom, a.cfg.AlertEmailFromName, a.cfg.AlertRecipients()),
		notify.NewTopic(awsCfg, a.cfg.AlertSNSTopicARN),
		notify.NewPubSub(a.redis, a.cfg.AlertRedisChannel),
	)
}

func (a *app) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{}
	if a.db != nil {
		checks["database"] = func(ctx context.Context) error { return a.db.PingContext(ctx) }
	}
	if a.redis != nil {
		checks["redis"] = func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }
	}
	return checks
}

// watchdogInterval is how often stale processing scans are swept
func (a *app) watchdogInterval() time.Duration {
	if a.cfg.ScanStaleTimeout <= 0 {
		return 0
	}
	if every := a.cfg.ScanStaleTimeout / 4; every > time.Minute {
		return every
	}
	return time.Minute
}

func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
