package controllers

import (
	"context"
	"time"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/models"
	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/services"
)

// Default configuration values
const (
	DefaultContextTimeout = 30 * time.Second
	DefaultHistoryLimit   = 50
)

// BulkEditServiceAPI defines the interface for bulk edit operations.
type BulkEditServiceAPI interface {
	PreviewFilter(ctx context.Context, params services.FilterPreviewParams) ([]models.ItemSnapshot, int64, error)
	RunBulkEdit(ctx context.Context, req services.BulkEditRequest) (*models.BatchReport, models.Verdict, error)
	RecordJob(ctx context.Context, jobID, field string, report *models.BatchReport, verdict models.Verdict) (*models.EditJobRecord, error)
	ListHistory(ctx context.Context, limit int) ([]models.EditJobRecord, error)
	GetJobRecord(ctx context.Context, jobID string) (*models.EditJobRecord, error)
}
