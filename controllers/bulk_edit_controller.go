package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/engine"
)

// BulkEditController handles filter previews and synchronous bulk edits.
type BulkEditController struct {
	service   BulkEditServiceAPI
	validator *RequestValidator
}

func NewBulkEditController(service BulkEditServiceAPI) *BulkEditController {
	return &BulkEditController{
		service:   service,
		validator: NewRequestValidator(),
	}
}

// PreviewFilter returns the items a filter criterion would select, without
// modifying anything.
func (bc *BulkEditController) PreviewFilter(c *gin.Context) {
	params, err := bc.validator.ParseFilterPreview(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	items, total, err := bc.service.PreviewFilter(ctx, params)
	if err != nil {
		bc.respondError(c, err, "failed to preview filter")
		return
	}

	totalPages := total / int64(params.PerPage)
	if total%int64(params.PerPage) != 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"meta": gin.H{
			"page":       params.Page,
			"perPage":    params.PerPage,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// RunBulkEdit applies one edit operation to every item in the request and
// returns the per-item report with the overall verdict.
func (bc *BulkEditController) RunBulkEdit(c *gin.Context) {
	req, err := bc.validator.ParseBulkEdit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	report, verdict, err := bc.service.RunBulkEdit(ctx, req)
	if err != nil {
		if errors.Is(err, engine.ErrRemoteUnavailable) {
			// The whole batch was aborted; no partial report exists.
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   err.Error(),
				"verdict": verdict,
			})
			return
		}
		bc.respondError(c, err, "failed to run bulk edit")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":  report,
		"verdict": verdict,
	})
}

// GetHistory lists recent bulk edit jobs from the audit trail.
func (bc *BulkEditController) GetHistory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	limit := DefaultHistoryLimit
	if _, perPage, err := bc.validator.ParsePagination(c); err == nil {
		limit = perPage
	}

	records, err := bc.service.ListHistory(ctx, limit)
	if err != nil {
		zap.L().Error("failed to list job history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list job history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": records})
}

// GetHistoryRecord returns the audit record for a single job id.
func (bc *BulkEditController) GetHistoryRecord(c *gin.Context) {
	jobID := c.Param("id")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job id is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	record, err := bc.service.GetJobRecord(ctx, jobID)
	if err != nil {
		bc.respondError(c, err, "failed to read job record")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (bc *BulkEditController) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, engine.ErrInvalidFilterCriterion),
		errors.Is(err, engine.ErrInvalidOperationParameter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrRemoteUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		zap.L().Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
