// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/regrada-ai/aidebt-be/internal/api"
	"github.com/regrada-ai/aidebt-be/internal/api/handlers"
	"github.com/regrada-ai/aidebt-be/internal/api/middleware"
	"github.com/regrada-ai/aidebt-be/internal/storage"
)

var serveWithWorker bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API. With --worker the scan worker and scheduler run in
the same process, which is required when STORAGE=memory.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWithWorker, "worker", false, "also run the scan worker and scheduler")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	if a.memory != nil {
		if err := bootstrapMemory(ctx, a); err != nil {
			return err
		}
		serveWithWorker = true
	}

	gin.SetMode(cfg.GinMode)
	router := api.NewRouter(api.Options{
		Stores:        a.stores,
		Scanner:       a.orchestrator,
		AlertService:  a.alerts,
		Archive:       a.archive,
		ReportExpiry:  cfg.ReportURLExpiry,
		Redis:         a.redis,
		HealthChecks:  a.healthChecks(),
		AllowedOrigin: cfg.AllowedOrigins(),
		GinMode:       cfg.GinMode,
		Log:           log,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	background, stopBackground := context.WithCancel(ctx)
	defer stopBackground()
	stopped := make(chan struct{})
	if serveWithWorker {
		go func() {
			defer close(stopped)
			if err := runBackground(background, a); err != nil {
				log.WithError(err).Error("background jobs stopped")
			}
		}()
	} else {
		close(stopped)
	}

	go func() {
		log.WithFields(logrus.Fields{"port": cfg.Port, "mode": cfg.GinMode}).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	stopBackground()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		log.Warn("background jobs did not stop in time")
	}
	log.Info("server stopped")
	return nil
}

// bootstrapMemory creates a development organization and prints an admin key
func bootstrapMemory(ctx context.Context, a *app) error {
	org := &storage.Organization{
		Name:          "Local Development",
		Slug:          "local",
		Tier:          "team",
		GitHubOrgName: a.cfg.GitHubOrg,
		GitHubToken:   a.cfg.GitHubToken,
		AlertEmails:   a.cfg.AlertRecipients(),
	}
	if err := a.stores.Organizations.Create(ctx, org); err != nil {
		return err
	}

	secret, hash, prefix, err := handlers.GenerateAPIKey()
	if err != nil {
		return err
	}
	if err := a.stores.APIKeys.Create(ctx, &storage.APIKey{
		OrganizationID: org.ID,
		KeyHash:        hash,
		KeyPrefix:      prefix,
		Name:           "bootstrap",
		Tier:           org.Tier,
		Scopes:         []string{handlers.ScopeAdmin},
		RateLimitRPM:   middleware.RateLimitForTier(org.Tier),
	}); err != nil {
		return err
	}

	a.log.WithFields(logrus.Fields{
		"organization_id": org.ID,
		"api_key":         secret,
	}).Warn("bootstrapped in-memory organization")
	return nil
}
