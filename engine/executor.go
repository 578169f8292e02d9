package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/models"
)

// CatalogGateway is the slice of the remote catalog service the executor
// drives: per-item reads, variant resolution, and field writes. Every call
// is an independent failure domain.
type CatalogGateway interface {
	GetItem(ctx context.Context, id string) (*models.ItemSnapshot, error)
	GetMutableVariant(ctx context.Context, itemID string) (*models.VariantHandle, error)
	UpdateItemField(ctx context.Context, itemID string, field EditableField, value string) error
	UpdateVariantField(ctx context.Context, variantID string, field EditableField, value string) error
}

// Executor runs one bulk edit: the per-item read-modify-write sequence
// over a candidate list. Items are processed sequentially by default;
// a concurrency greater than one enables a bounded worker pool whose
// report ordering still matches the input order.
type Executor struct {
	gateway     CatalogGateway
	concurrency int
}

func NewExecutor(gateway CatalogGateway, concurrency int) *Executor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Executor{gateway: gateway, concurrency: concurrency}
}

// Execute applies the operation to every item and returns the aggregated
// report. A failure for one item is recorded as that item's outcome and
// execution continues; only ErrRemoteUnavailable aborts the whole batch,
// since no subsequent call could plausibly succeed.
func (e *Executor) Execute(ctx context.Context, itemIDs []string, op EditOperation) (*models.BatchReport, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	outcomes := make([]models.ItemOutcome, len(itemIDs))

	if e.concurrency == 1 {
		for i, id := range itemIDs {
			outcome, err := e.processItem(ctx, id, op)
			if err != nil {
				return nil, err
			}
			outcomes[i] = outcome
		}
		return models.NewBatchReport(outcomes), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, id := range itemIDs {
		i, id := i, id
		g.Go(func() error {
			outcome, err := e.processItem(gctx, id, op)
			if err != nil {
				// Batch-fatal: the group context cancels remaining work.
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return models.NewBatchReport(outcomes), nil
}

// processItem runs Pending -> Planned -> Dispatched -> {Updated|Error} for
// one item. The returned error is non-nil only when the gateway itself is
// unreachable; everything else becomes the item's outcome.
func (e *Executor) processItem(ctx context.Context, itemID string, op EditOperation) (models.ItemOutcome, error) {
	field := op.Field()

	if RequiresVariant(field) {
		variant, err := e.gateway.GetMutableVariant(ctx, itemID)
		if err != nil {
			if errors.Is(err, ErrRemoteUnavailable) {
				return models.ItemOutcome{}, err
			}
			if errors.Is(err, ErrNotFound) {
				// Zero sub-resources is an error, never a skip: the caller
				// asked for a write that has no target.
				return errorOutcome(itemID, "item has no variants"), nil
			}
			return errorOutcome(itemID, fmt.Sprintf("variant lookup failed: %v", err)), nil
		}
		return e.dispatchVariant(ctx, itemID, variant, op)
	}

	item, err := e.gateway.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, ErrRemoteUnavailable) {
			return models.ItemOutcome{}, err
		}
		if errors.Is(err, ErrNotFound) {
			return errorOutcome(itemID, "item not found"), nil
		}
		return errorOutcome(itemID, fmt.Sprintf("item lookup failed: %v", err)), nil
	}

	change, err := Plan(op, itemFieldValue(item, field))
	if err != nil {
		return errorOutcome(itemID, err.Error()), nil
	}
	if change.Skip {
		return skippedOutcome(itemID, change), nil
	}

	if err := e.gateway.UpdateItemField(ctx, itemID, field, change.NewValue); err != nil {
		if errors.Is(err, ErrRemoteUnavailable) {
			return models.ItemOutcome{}, err
		}
		zap.L().Warn("item field update failed",
			zap.String("item_id", itemID),
			zap.String("field", string(field)),
			zap.Error(err),
		)
		return errorOutcome(itemID, err.Error()), nil
	}

	return updatedOutcome(itemID, change), nil
}

func (e *Executor) dispatchVariant(ctx context.Context, itemID string, variant *models.VariantHandle, op EditOperation) (models.ItemOutcome, error) {
	field := op.Field()

	change, err := Plan(op, variantFieldValue(variant, field))
	if err != nil {
		return errorOutcome(itemID, err.Error()), nil
	}
	if change.Skip {
		return skippedOutcome(itemID, change), nil
	}

	if err := e.gateway.UpdateVariantField(ctx, variant.ID, field, change.NewValue); err != nil {
		if errors.Is(err, ErrRemoteUnavailable) {
			return models.ItemOutcome{}, err
		}
		zap.L().Warn("variant field update failed",
			zap.String("item_id", itemID),
			zap.String("variant_id", variant.ID),
			zap.String("field", string(field)),
			zap.Error(err),
		)
		return errorOutcome(itemID, err.Error()), nil
	}

	if change.CompareAt != nil {
		if err := e.gateway.UpdateVariantField(ctx, variant.ID, FieldCompareAtPrice, *change.CompareAt); err != nil {
			if errors.Is(err, ErrRemoteUnavailable) {
				return models.ItemOutcome{}, err
			}
			return errorOutcome(itemID, fmt.Sprintf("price updated but compare-at sync failed: %v", err)), nil
		}
	}

	return updatedOutcome(itemID, change), nil
}

func itemFieldValue(item *models.ItemSnapshot, field EditableField) string {
	switch field {
	case FieldTitle:
		return item.Title
	case FieldProductType:
		return item.ProductType
	case FieldCategory:
		return item.CategoryID
	}
	return ""
}

func variantFieldValue(v *models.VariantHandle, field EditableField) string {
	switch field {
	case FieldPrice:
		return formatAmount(v.Price)
	case FieldCompareAtPrice:
		if v.CompareAtPrice == nil {
			return ""
		}
		return formatAmount(*v.CompareAtPrice)
	case FieldCost:
		if v.Cost == nil {
			return ""
		}
		return formatAmount(*v.Cost)
	case FieldBarcode:
		return v.Barcode
	case FieldSKU:
		return v.SKU
	}
	return ""
}

func updatedOutcome(itemID string, change PlannedChange) models.ItemOutcome {
	return models.ItemOutcome{
		ItemID:        itemID,
		OriginalValue: change.OriginalValue,
		NewValue:      change.NewValue,
		Status:        models.OutcomeUpdated,
	}
}

func skippedOutcome(itemID string, change PlannedChange) models.ItemOutcome {
	return models.ItemOutcome{
		ItemID:        itemID,
		OriginalValue: change.OriginalValue,
		NewValue:      change.OriginalValue,
		Status:        models.OutcomeSkipped,
		ErrorDetail:   change.SkipReason,
	}
}

func errorOutcome(itemID, detail string) models.ItemOutcome {
	return models.ItemOutcome{
		ItemID:      itemID,
		Status:      models.OutcomeError,
		ErrorDetail: detail,
	}
}
