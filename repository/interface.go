package repository

import (
	"context"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/models"
)

// JobHistoryRepo persists the audit trail of completed bulk edit jobs.
// This interface uses plain Go types to make swapping adapters easier.
type JobHistoryRepo interface {
	Save(ctx context.Context, record *models.EditJobRecord) error
	FindByID(ctx context.Context, jobID string) (*models.EditJobRecord, error)
	ListRecent(ctx context.Context, limit int) ([]models.EditJobRecord, error)
}
