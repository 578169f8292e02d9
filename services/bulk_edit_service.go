package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/engine"
	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/models"
	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/repository"
)

// CatalogGateway is the full remote catalog surface the service needs:
// the executor's read/write calls plus candidate search.
type CatalogGateway interface {
	engine.CatalogGateway
	Search(ctx context.Context, query string, limit int) ([]models.ItemSnapshot, error)
}

// CategoryResolver maps a taxonomy path selection to the remote service's
// opaque category identifier.
type CategoryResolver interface {
	ResolveCategory(ctx context.Context, path string) (string, error)
}

// BulkEditService orchestrates one bulk edit end to end: filter
// compilation, candidate refinement, batch execution, classification, and
// the audit trail.
type BulkEditService struct {
	gateway  CatalogGateway
	executor *engine.Executor
	resolver CategoryResolver
	history  repository.JobHistoryRepo
	archiver *ReportArchiver
}

func NewBulkEditService(
	gw CatalogGateway,
	executor *engine.Executor,
	resolver CategoryResolver,
	history repository.JobHistoryRepo,
	archiver *ReportArchiver,
) *BulkEditService {
	return &BulkEditService{
		gateway:  gw,
		executor: executor,
		resolver: resolver,
		history:  history,
		archiver: archiver,
	}
}

// PreviewFilter returns the candidate set for a criterion. The remote
// query narrows the search; the compiled refinement predicate restores
// exact semantics over whatever the remote returned. Snapshots are fetched
// fresh on every call, never cached across requests.
func (s *BulkEditService) PreviewFilter(ctx context.Context, params FilterPreviewParams) ([]models.ItemSnapshot, int64, error) {
	compiled, err := engine.Compile(params.Criterion)
	if err != nil {
		return nil, 0, err
	}

	var candidates []models.ItemSnapshot
	if compiled.DirectLookupID != "" {
		item, err := s.gateway.GetItem(ctx, compiled.DirectLookupID)
		if err != nil {
			if errors.Is(err, engine.ErrNotFound) {
				// A missing identifier is zero candidates, not an error.
				return []models.ItemSnapshot{}, 0, nil
			}
			return nil, 0, err
		}
		candidates = []models.ItemSnapshot{*item}
	} else {
		found, err := s.gateway.Search(ctx, compiled.Query, 0)
		if err != nil {
			return nil, 0, err
		}
		for _, item := range found {
			if compiled.Refine(item) {
				candidates = append(candidates, item)
			}
		}
	}

	total := int64(len(candidates))
	page, perPage := params.Page, params.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}
	start := (page - 1) * perPage
	if start >= len(candidates) {
		return []models.ItemSnapshot{}, total, nil
	}
	end := start + perPage
	if end > len(candidates) {
		end = len(candidates)
	}
	return candidates[start:end], total, nil
}

// RunBulkEdit validates the operation, executes the batch, and classifies
// the outcome. Validation failures surface before any remote call; a
// gateway-level outage surfaces as a Failure verdict with no partial
// report.
func (s *BulkEditService) RunBulkEdit(ctx context.Context, req BulkEditRequest) (*models.BatchReport, models.Verdict, error) {
	op, err := s.buildOperation(ctx, req.Spec)
	if err != nil {
		return nil, models.Verdict{}, err
	}

	report, err := s.executor.Execute(ctx, req.ItemIDs, op)
	if err != nil {
		if errors.Is(err, engine.ErrRemoteUnavailable) {
			zap.L().Error("bulk edit aborted: catalog unreachable", zap.Error(err))
			return nil, models.Verdict{
				Status:  models.VerdictFailure,
				Message: "catalog service unavailable, no items were processed",
			}, err
		}
		return nil, models.Verdict{}, err
	}

	verdict := engine.Classify(report)
	zap.L().Info("bulk edit completed",
		zap.String("field", string(op.Field())),
		zap.Int("items", len(req.ItemIDs)),
		zap.Int("updated", report.UpdatedCount),
		zap.Int("skipped", report.SkippedCount),
		zap.Int("errors", report.ErrorCount),
		zap.String("verdict", string(verdict.Status)),
	)
	return report, verdict, nil
}

// buildOperation resolves a category path selection through the lookup
// collaborator before constructing the typed operation.
func (s *BulkEditService) buildOperation(ctx context.Context, spec engine.OperationSpec) (engine.EditOperation, error) {
	if engine.EditableField(spec.Field) == engine.FieldCategory && spec.CategoryID == "" && spec.CategoryPath != "" {
		categoryID, err := s.resolver.ResolveCategory(ctx, spec.CategoryPath)
		if err != nil {
			if errors.Is(err, engine.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown category %q", engine.ErrInvalidOperationParameter, spec.CategoryPath)
			}
			return nil, err
		}
		spec.CategoryID = categoryID
	}
	return engine.BuildOperation(spec)
}

// RecordJob persists the audit record for a completed job and archives the
// per-item report. Archive failures degrade to a record without a report
// URL rather than failing the job.
func (s *BulkEditService) RecordJob(ctx context.Context, jobID, field string, report *models.BatchReport, verdict models.Verdict) (*models.EditJobRecord, error) {
	record := &models.EditJobRecord{
		JobID:     jobID,
		Field:     field,
		Verdict:   string(verdict.Status),
		Message:   verdict.Message,
		CreatedAt: time.Now().UTC(),
	}
	if report != nil {
		record.ItemCount = len(report.Outcomes)
		record.UpdatedCount = report.UpdatedCount
		record.SkippedCount = report.SkippedCount
		record.ErrorCount = report.ErrorCount
	}

	if s.archiver != nil && report != nil {
		url, err := s.archiver.Archive(ctx, jobID, report)
		if err != nil {
			zap.L().Warn("failed to archive batch report", zap.String("job_id", jobID), zap.Error(err))
		} else {
			record.ReportURL = url
		}
	}

	if s.history != nil {
		if err := s.history.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("save job record: %w", err)
		}
	}
	return record, nil
}

// ListHistory returns the most recent bulk edit records.
func (s *BulkEditService) ListHistory(ctx context.Context, limit int) ([]models.EditJobRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.ListRecent(ctx, limit)
}

// GetJobRecord returns the audit record of one completed job.
func (s *BulkEditService) GetJobRecord(ctx context.Context, jobID string) (*models.EditJobRecord, error) {
	if s.history == nil {
		return nil, fmt.Errorf("%w: job %s", engine.ErrNotFound, jobID)
	}
	return s.history.FindByID(ctx, jobID)
}
