// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

// Package api assembles the HTTP surface of the governance service.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/regrada-ai/aidebt-be/internal/alerts"
	"github.com/regrada-ai/aidebt-be/internal/api/handlers"
	"github.com/regrada-ai/aidebt-be/internal/api/middleware"
	"github.com/regrada-ai/aidebt-be/internal/storage"
)

// Stores are the repositories the API reads and writes
type Stores struct {
	Organizations storage.OrganizationRepository
	APIKeys       storage.APIKeyRepository
	Repositories  storage.RepositoryRepository
	Scans         storage.ScanRepository
	Results       storage.ResultRepository
	Scores        storage.ScoreRepository
	Alerts        storage.AlertRepository
}

// Scanner is the orchestrator surface used by the API
type Scanner interface {
	handlers.ScanService
	handlers.EventHandler
}

// Options configure the router. Redis and Archive may be nil.
type Options struct {
	Stores        Stores
	Scanner       Scanner
	AlertService  *alerts.Service
	Archive       storage.ReportArchive
	ReportExpiry  time.Duration
	Redis         *redis.Client
	HealthChecks  map[string]handlers.HealthCheck
	AllowedOrigin []string
	GinMode       string
	Log           *logrus.Logger
}

// NewRouter builds the gin engine with every route registered
func NewRouter(opts Options) *gin.Engine {
	log := opts.Log.WithField("component", "api")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.NewCORSMiddleware(opts.AllowedOrigin, opts.GinMode, log))

	authMiddleware := middleware.NewAuthMiddleware(opts.Stores.APIKeys, opts.Redis, log)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(opts.Redis, log)

	healthHandler := handlers.NewHealthHandler(opts.HealthChecks)
	repoHandler := handlers.NewRepositoryHandler(opts.Stores.Repositories, log)
	scanHandler := handlers.NewScanHandler(opts.Scanner, opts.Stores.Scans, opts.Stores.Results, opts.Archive, opts.ReportExpiry, log)
	scoreHandler := handlers.NewScoreHandler(opts.Stores.Scores, opts.Stores.Repositories, log)
	alertHandler := handlers.NewAlertHandler(opts.Stores.Alerts, opts.AlertService, log)
	orgHandler := handlers.NewOrganizationHandler(opts.Stores.Organizations, log)
	apiKeyHandler := handlers.NewAPIKeyHandler(opts.Stores.APIKeys, opts.Stores.Organizations, authMiddleware, log)
	webhookHandler := handlers.NewWebhookHandler(opts.Stores.Repositories, opts.Scanner, log)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/webhooks/github/:repositoryID", webhookHandler.GitHubWebhook)

	v1 := r.Group("/v1")
	v1.Use(authMiddleware.Authenticate(), rateLimitMiddleware.Limit())
	{
		admin := middleware.RequireScope(handlers.ScopeAdmin)
		scansRead := middleware.RequireScope(handlers.ScopeScansRead)
		scansWrite := middleware.RequireScope(handlers.ScopeScansWrite)
		scoresRead := middleware.RequireScope(handlers.ScopeScoresRead)
		alertsWrite := middleware.RequireScope(handlers.ScopeAlertsWrite)

		repos := v1.Group("/repositories")
		{
			repos.POST("", admin, repoHandler.ConnectRepository)
			repos.GET("", scansRead, repoHandler.ListRepositories)
			repos.GET("/:repositoryID", scansRead, repoHandler.GetRepository)
			repos.DELETE("/:repositoryID", admin, repoHandler.DeactivateRepository)
		}

		scans := v1.Group("/scans")
		{
			scans.POST("", scansWrite, scanHandler.TriggerScan)
			scans.GET("", scansRead, scanHandler.ListScans)
			scans.POST("/process-next", admin, scanHandler.ProcessNext)
			scans.GET("/:scanID", scansRead, scanHandler.GetScan)
			scans.GET("/:scanID/files", scansRead, scanHandler.ListFileResults)
			scans.GET("/:scanID/pull-requests", scansRead, scanHandler.ListPRResults)
			scans.GET("/:scanID/report", scansRead, scanHandler.GetReportURL)
			scans.POST("/:scanID/process", scansWrite, scanHandler.ProcessScan)
		}

		scores := v1.Group("/scores", scoresRead)
		{
			scores.GET("/debt", scoreHandler.GetDebtScore)
			scores.GET("/debt/history", scoreHandler.ListDebtScoreHistory)
			scores.GET("/repositories", scoreHandler.ListRepositoryScores)
			scores.GET("/team", scoreHandler.ListTeamScores)
			scores.GET("/adoption", scoreHandler.GetAdoptionScore)
		}

		alertRoutes := v1.Group("/alerts")
		{
			alertRoutes.GET("", scoresRead, alertHandler.ListAlerts)
			alertRoutes.GET("/:alertID", scoresRead, alertHandler.GetAlert)
			alertRoutes.POST("/:alertID/acknowledge", alertsWrite, alertHandler.AcknowledgeAlert)
			alertRoutes.POST("/:alertID/dismiss", alertsWrite, alertHandler.DismissAlert)
			alertRoutes.POST("/:alertID/resolve", alertsWrite, alertHandler.ResolveAlert)
		}

		orgs := v1.Group("/organizations")
		{
			orgs.GET("/current", orgHandler.GetCurrentOrganization)
			orgs.PUT("/current", admin, orgHandler.UpdateCurrentOrganization)
		}

		keys := v1.Group("/api-keys", admin)
		{
			keys.GET("", apiKeyHandler.ListAPIKeys)
			keys.POST("", apiKeyHandler.CreateAPIKey)
			keys.DELETE("/:keyID", apiKeyHandler.RevokeAPIKey)
		}
	}

	return r
}
