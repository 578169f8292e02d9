package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/services"
)

// BulkEditJobHandler handles the async bulk edit queue endpoints.
type BulkEditJobHandler struct {
	redis     *redis.Client
	validator *RequestValidator
}

func NewBulkEditJobHandler(rdb *redis.Client) *BulkEditJobHandler {
	return &BulkEditJobHandler{
		redis:     rdb,
		validator: NewRequestValidator(),
	}
}

// CreateJob validates the request, enqueues it, and returns 202 with the
// job id. Malformed operations are rejected here so a bad request never
// reaches the worker.
func (h *BulkEditJobHandler) CreateJob(c *gin.Context) {
	req, err := h.validator.ParseBulkEdit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	jobID := uuid.New().String()
	if err := services.EnqueueJob(ctx, h.redis, jobID, req); err != nil {
		zap.L().Error("failed to enqueue bulk edit job", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue job"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": jobID,
		"status": "pending",
	})
}

// GetJobStatus reads a job's current state from Redis.
func (h *BulkEditJobHandler) GetJobStatus(c *gin.Context) {
	jobID := c.Param("id")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job id is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	val, err := h.redis.Get(ctx, services.JobKey(jobID)).Result()
	if err == redis.Nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	if err != nil {
		zap.L().Error("failed to read job status", zap.String("job_id", jobID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read job status"})
		return
	}

	c.Data(http.StatusOK, "application/json", []byte(val))
}
