package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/engine"
	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/services"
)

// Validation constants
const (
	MaxPageSize   = 250
	MaxPageNumber = 1000000
	MaxBatchSize  = 1000
)

// FilterPreviewRequest is the JSON body for a candidate-list request.
type FilterPreviewRequest struct {
	Field     string `json:"field" validate:"required,oneof=title description item_id"`
	Condition string `json:"condition" validate:"required,oneof=is contains does_not_contain starts_with ends_with empty"`
	Value     string `json:"value"`
}

// BulkEditHTTPRequest is the JSON body for starting a bulk edit.
type BulkEditHTTPRequest struct {
	ItemIDs   []string             `json:"item_ids"`
	Operation engine.OperationSpec `json:"operation" validate:"required"`
}

// RequestValidator handles all input validation.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

// ParsePagination validates and parses pagination parameters.
func (rv *RequestValidator) ParsePagination(c *gin.Context) (int, int, error) {
	pageStr := c.DefaultQuery("page", "1")
	perPageStr := c.DefaultQuery("perPage", "50")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, 0, errors.New("invalid page number")
	}
	if page > MaxPageNumber {
		page = MaxPageNumber
	}

	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		return 0, 0, errors.New("invalid page size")
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	return page, perPage, nil
}

// ParseFilterPreview parses and validates a filter preview request. The
// condition/field legality rules are enforced by the engine before any
// remote call is made.
func (rv *RequestValidator) ParseFilterPreview(c *gin.Context) (services.FilterPreviewParams, error) {
	var req FilterPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return services.FilterPreviewParams{}, fmt.Errorf("invalid request body: %w", err)
	}
	if err := rv.validate.Struct(&req); err != nil {
		return services.FilterPreviewParams{}, fmt.Errorf("validation failed: %w", err)
	}

	criterion := engine.FilterCriterion{
		Field:     engine.FilterField(req.Field),
		Condition: engine.Condition(req.Condition),
		Value:     req.Value,
	}
	if err := engine.ValidateCriterion(criterion); err != nil {
		return services.FilterPreviewParams{}, err
	}

	page, perPage, err := rv.ParsePagination(c)
	if err != nil {
		return services.FilterPreviewParams{}, err
	}

	return services.FilterPreviewParams{
		Criterion: criterion,
		Page:      page,
		PerPage:   perPage,
	}, nil
}

// ParseBulkEdit parses and validates a bulk edit request. Operation
// parameters are validated up front so no partial batch is ever attempted
// for a malformed operation.
func (rv *RequestValidator) ParseBulkEdit(c *gin.Context) (services.BulkEditRequest, error) {
	var req BulkEditHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return services.BulkEditRequest{}, fmt.Errorf("invalid request body: %w", err)
	}
	if err := rv.validate.Struct(&req); err != nil {
		return services.BulkEditRequest{}, fmt.Errorf("validation failed: %w", err)
	}
	if len(req.ItemIDs) > MaxBatchSize {
		return services.BulkEditRequest{}, fmt.Errorf("batch too large (max %d items)", MaxBatchSize)
	}

	if err := validateOperationSpec(req.Operation); err != nil {
		return services.BulkEditRequest{}, err
	}

	return services.BulkEditRequest{
		ItemIDs: req.ItemIDs,
		Spec:    req.Operation,
	}, nil
}

// validateOperationSpec rejects malformed operations before they are
// enqueued or executed. Category-by-path specs defer the id resolution to
// the lookup collaborator, so only the path's presence is checked here.
func validateOperationSpec(spec engine.OperationSpec) error {
	if engine.EditableField(spec.Field) == engine.FieldCategory && spec.CategoryID == "" {
		if spec.CategoryPath == "" {
			return fmt.Errorf("%w: category edits require a category id or path", engine.ErrInvalidOperationParameter)
		}
		return nil
	}
	_, err := engine.BuildOperation(spec)
	return err
}
