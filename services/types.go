package services

import (
	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/engine"
)

// BulkEditRequest is one bulk edit as the caller describes it: the
// confirmed item selection plus the operation's wire form.
type BulkEditRequest struct {
	ItemIDs []string             `json:"item_ids"`
	Spec    engine.OperationSpec `json:"operation"`
}

// FilterPreviewParams describes one candidate-list request.
type FilterPreviewParams struct {
	Criterion engine.FilterCriterion
	Page      int
	PerPage   int
}
