// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/regrada-ai/aidebt-be/internal/api/types"
	"github.com/regrada-ai/aidebt-be/internal/scan"
	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// ScanService is the part of the orchestrator the scan endpoints drive
type ScanService interface {
	Trigger(ctx context.Context, req scan.TriggerRequest) scan.TriggerResult
	ProcessNextPending(ctx context.Context) scan.ProcessResult
	ProcessScan(ctx context.Context, id string) scan.ProcessResult
}

type ScanHandler struct {
	service      ScanService
	scans        storage.ScanRepository
	results      storage.ResultRepository
	archive      storage.ReportArchive
	reportExpiry time.Duration
	log          *logrus.Entry
	now          func() time.Time
}

// NewScanHandler wires the scan endpoints. archive may be nil, in which case
// report links are unavailable.
func NewScanHandler(service ScanService, scans storage.ScanRepository, results storage.ResultRepository, archive storage.ReportArchive, reportExpiry time.Duration, log *logrus.Entry) *ScanHandler {
	if reportExpiry <= 0 {
		reportExpiry = 15 * time.Minute
	}
	return &ScanHandler{
		service:      service,
		scans:        scans,
		results:      results,
		archive:      archive,
		reportExpiry: reportExpiry,
		log:          log,
		now:          time.Now,
	}
}

// TriggerScan queues scans
// @Summary Trigger scans
// @Description Queue a scan of one repository, or of every active repository when repository_id is omitted.
// @Tags scans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body types.TriggerScanRequest true "Scan request"
// @Success 202 {object} scan.TriggerResult
// @Success 207 {object} scan.TriggerResult
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Router /v1/scans [post]
func (h *ScanHandler) TriggerScan(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	var req types.TriggerScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request parameters")
		return
	}

	res := h.service.Trigger(c.Request.Context(), scan.TriggerRequest{
		OrganizationID: orgID,
		RepositoryID:   req.RepositoryID,
		Type:           req.ScanType,
		Trigger:        scan.TriggerManual,
		Ref:            req.Ref,
		PRNumber:       req.PRNumber,
	})

	switch {
	case res.Success:
		c.JSON(http.StatusAccepted, res)
	case res.Code == scan.CodeNotFound:
		respondError(c, http.StatusNotFound, "NOT_FOUND", res.Message)
	case res.Code == scan.CodeInactive:
		respondError(c, http.StatusConflict, "CONFLICT", res.Message)
	case res.Code == scan.CodeInvalidRequest:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", res.Message)
	case res.Queued > 0:
		c.JSON(http.StatusMultiStatus, res)
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", res.Message)
	}
}

// ListScans lists scans newest first
// @Summary List scans
// @Tags scans
// @Produce json
// @Security BearerAuth
// @Param repository_id query string false "Repository ID"
// @Param status query string false "Scan status" Enums(pending, processing, completed, failed)
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} types.ScanListResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /v1/scans [get]
func (h *ScanHandler) ListScans(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	status := aidebt.ScanStatus(c.Query("status"))
	switch status {
	case "", aidebt.ScanStatusPending, aidebt.ScanStatusProcessing, aidebt.ScanStatusCompleted, aidebt.ScanStatusFailed:
	default:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "unknown scan status")
		return
	}

	scans, err := h.scans.List(c.Request.Context(), orgID, storage.ScanFilter{
		RepositoryID: c.Query("repository_id"),
		Status:       status,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		h.log.WithError(err).WithField("organization_id", orgID).Error("failed to list scans")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch scans")
		return
	}
	c.JSON(http.StatusOK, types.ScanListResponse{Scans: scans, Count: len(scans)})
}

// GetScan returns one scan with its summary
// @Summary Get a scan
// @Tags scans
// @Produce json
// @Security BearerAuth
// @Param scanID path string true "Scan ID"
// @Success 200 {object} aidebt.Scan
// @Failure 404 {object} types.ErrorResponse
// @Router /v1/scans/{scanID} [get]
func (h *ScanHandler) GetScan(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	s, ok := h.loadScan(c, orgID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s)
}

// ListFileResults lists the files of a scan, highest AI probability first
// @Summary List file results of a scan
// @Tags scans
// @Produce json
// @Security BearerAuth
// @Param scanID path string true "Scan ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} types.FileResultListResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /v1/scans/{scanID}/files [get]
func (h *ScanHandler) ListFileResults(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}
	s, ok := h.loadScan(c, orgID)
	if !ok {
		return
	}

	files, err := h.results.ListFileResults(c.Request.Context(), orgID, s.ID, limit, offset)
	if err != nil {
		h.log.WithError(err).WithField("scan_id", s.ID).Error("failed to list file results")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch file results")
		return
	}
	c.JSON(http.StatusOK, types.FileResultListResponse{Files: files, Count: len(files)})
}

// ListPRResults lists the pull requests of a scan
// @Summary List pull request results of a scan
// @Tags scans
// @Produce json
// @Security BearerAuth
// @Param scanID path string true "Scan ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} types.PRResultListResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /v1/scans/{scanID}/pull-requests [get]
func (h *ScanHandler) ListPRResults(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}
	s, ok := h.loadScan(c, orgID)
	if !ok {
		return
	}

	prs, err := h.results.ListPRResults(c.Request.Context(), orgID, s.ID, limit, offset)
	if err != nil {
		h.log.WithError(err).WithField("scan_id", s.ID).Error("failed to list pull request results")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch pull request results")
		return
	}
	c.JSON(http.StatusOK, types.PRResultListResponse{PullRequests: prs, Count: len(prs)})
}

// GetReportURL returns a short-lived link to the archived report of a completed scan
// @Summary Get a scan report link
// @Tags scans
// @Produce json
// @Security BearerAuth
// @Param scanID path string true "Scan ID"
// @Success 200 {object} types.ReportURLResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Router /v1/scans/{scanID}/report [get]
func (h *ScanHandler) GetReportURL(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	if h.archive == nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Report archive is not configured")
		return
	}
	s, ok := h.loadScan(c, orgID)
	if !ok {
		return
	}
	if s.Status != aidebt.ScanStatusCompleted {
		respondError(c, http.StatusConflict, "CONFLICT", "Scan has not completed")
		return
	}

	url, err := h.archive.ReportURL(c.Request.Context(), storage.ReportKey(s.OrganizationID, s.RepositoryID, s.ID), h.reportExpiry)
	if err != nil {
		h.log.WithError(err).WithField("scan_id", s.ID).Error("failed to presign report")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create report link")
		return
	}
	c.JSON(http.StatusOK, types.ReportURLResponse{URL: url, ExpiresAt: h.now().Add(h.reportExpiry)})
}

// ProcessNext claims and processes the oldest pending scan of any organization
// @Summary Process the next pending scan
// @Description Requires the admin scope. Returns processed=false when the queue is empty.
// @Tags scans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} scan.ProcessResult
// @Failure 403 {object} types.ErrorResponse
// @Failure 500 {object} scan.ProcessResult
// @Router /v1/scans/process-next [post]
func (h *ScanHandler) ProcessNext(c *gin.Context) {
	h.respondProcess(c, h.service.ProcessNextPending(c.Request.Context()))
}

// ProcessScan claims and processes one pending scan of the organization
// @Summary Process a pending scan
// @Tags scans
// @Produce json
// @Security BearerAuth
// @Param scanID path string true "Scan ID"
// @Success 200 {object} scan.ProcessResult
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} scan.ProcessResult
// @Router /v1/scans/{scanID}/process [post]
func (h *ScanHandler) ProcessScan(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	s, ok := h.loadScan(c, orgID)
	if !ok {
		return
	}
	h.respondProcess(c, h.service.ProcessScan(c.Request.Context(), s.ID))
}

// respondProcess answers 500 only when the processing attempt itself broke;
// a scan that failed is a successful request reporting a failed scan.
func (h *ScanHandler) respondProcess(c *gin.Context, res scan.ProcessResult) {
	if !res.Processed && !res.Success {
		c.JSON(http.StatusInternalServerError, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ScanHandler) loadScan(c *gin.Context, orgID string) (*aidebt.Scan, bool) {
	s, err := h.scans.Get(c.Request.Context(), orgID, c.Param("scanID"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Scan not found")
			return nil, false
		}
		h.log.WithError(err).Error("failed to fetch scan")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch scan")
		return nil, false
	}
	return s, true
}
