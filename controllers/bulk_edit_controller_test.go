package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/engine"
	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/models"
	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/services"
)

type fakeBulkEditService struct {
	previewCalled int
	runCalled     int
	lastRequest   services.BulkEditRequest

	previewFn func(ctx context.Context, params services.FilterPreviewParams) ([]models.ItemSnapshot, int64, error)
	runFn     func(ctx context.Context, req services.BulkEditRequest) (*models.BatchReport, models.Verdict, error)
}

func (f *fakeBulkEditService) PreviewFilter(ctx context.Context, params services.FilterPreviewParams) ([]models.ItemSnapshot, int64, error) {
	f.previewCalled++
	if f.previewFn != nil {
		return f.previewFn(ctx, params)
	}
	return []models.ItemSnapshot{}, 0, nil
}

func (f *fakeBulkEditService) RunBulkEdit(ctx context.Context, req services.BulkEditRequest) (*models.BatchReport, models.Verdict, error) {
	f.runCalled++
	f.lastRequest = req
	if f.runFn != nil {
		return f.runFn(ctx, req)
	}
	return models.NewBatchReport(nil), models.Verdict{Status: models.VerdictFailure}, nil
}

func (f *fakeBulkEditService) RecordJob(ctx context.Context, jobID, field string, report *models.BatchReport, verdict models.Verdict) (*models.EditJobRecord, error) {
	return nil, nil
}

func (f *fakeBulkEditService) ListHistory(ctx context.Context, limit int) ([]models.EditJobRecord, error) {
	return nil, nil
}

func (f *fakeBulkEditService) GetJobRecord(ctx context.Context, jobID string) (*models.EditJobRecord, error) {
	return nil, fmt.Errorf("%w: job %s", engine.ErrNotFound, jobID)
}

func newTestRouter(svc BulkEditServiceAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewBulkEditController(svc)
	router := gin.New()
	router.POST("/bulk-edits/preview", controller.PreviewFilter)
	router.POST("/bulk-edits/", controller.RunBulkEdit)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestPreviewFilterEndpoint(t *testing.T) {
	fakeService := &fakeBulkEditService{
		previewFn: func(ctx context.Context, params services.FilterPreviewParams) ([]models.ItemSnapshot, int64, error) {
			return []models.ItemSnapshot{{ID: "1", Title: "Blue Shirt"}}, 1, nil
		},
	}
	router := newTestRouter(fakeService)

	recorder := postJSON(t, router, "/bulk-edits/preview", FilterPreviewRequest{
		Field:     "title",
		Condition: "contains",
		Value:     "shirt",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	if fakeService.previewCalled != 1 {
		t.Fatalf("preview called %d times", fakeService.previewCalled)
	}

	var resp struct {
		Items []models.ItemSnapshot `json:"items"`
		Meta  struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Meta.Total != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPreviewFilterRejectsBadCriterion(t *testing.T) {
	fakeService := &fakeBulkEditService{}
	router := newTestRouter(fakeService)

	tests := []struct {
		name string
		body FilterPreviewRequest
	}{
		{"unknown condition", FilterPreviewRequest{Field: "title", Condition: "regex", Value: "x"}},
		{"empty on title", FilterPreviewRequest{Field: "title", Condition: "empty"}},
		{"item id with contains", FilterPreviewRequest{Field: "item_id", Condition: "contains", Value: "12"}},
		{"malformed item id", FilterPreviewRequest{Field: "item_id", Condition: "is", Value: "12ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, router, "/bulk-edits/preview", tt.body)
			if recorder.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", recorder.Code)
			}
		})
	}
	if fakeService.previewCalled != 0 {
		t.Fatal("invalid criteria must not reach the service")
	}
}

func TestRunBulkEditEndpoint(t *testing.T) {
	fakeService := &fakeBulkEditService{
		runFn: func(ctx context.Context, req services.BulkEditRequest) (*models.BatchReport, models.Verdict, error) {
			report := models.NewBatchReport([]models.ItemOutcome{
				{ItemID: "1", Status: models.OutcomeUpdated, OriginalValue: "a", NewValue: "b"},
			})
			return report, models.Verdict{Status: models.VerdictSuccess, Message: "updated 1 of 1 items"}, nil
		},
	}
	router := newTestRouter(fakeService)

	recorder := postJSON(t, router, "/bulk-edits/", BulkEditHTTPRequest{
		ItemIDs:   []string{"1"},
		Operation: engine.OperationSpec{Field: "title", Mode: "prepend", Text: "Sale:"},
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	if fakeService.lastRequest.Spec.Field != "title" {
		t.Fatalf("unexpected request forwarded: %+v", fakeService.lastRequest)
	}

	var resp struct {
		Verdict models.Verdict `json:"verdict"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Verdict.Status != models.VerdictSuccess {
		t.Fatalf("verdict = %q", resp.Verdict.Status)
	}
}

func TestRunBulkEditRejectsInvalidOperation(t *testing.T) {
	fakeService := &fakeBulkEditService{}
	router := newTestRouter(fakeService)

	amount := -5.0
	recorder := postJSON(t, router, "/bulk-edits/", BulkEditHTTPRequest{
		ItemIDs:   []string{"1"},
		Operation: engine.OperationSpec{Field: "price", Mode: "set", Amount: &amount},
	})

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
	if fakeService.runCalled != 0 {
		t.Fatal("invalid operations must be rejected before execution")
	}
}

func TestRunBulkEditRemoteOutageIsBadGateway(t *testing.T) {
	fakeService := &fakeBulkEditService{
		runFn: func(ctx context.Context, req services.BulkEditRequest) (*models.BatchReport, models.Verdict, error) {
			verdict := models.Verdict{
				Status:  models.VerdictFailure,
				Message: "catalog service unavailable, no items were processed",
			}
			return nil, verdict, fmt.Errorf("%w: connection refused", engine.ErrRemoteUnavailable)
		},
	}
	router := newTestRouter(fakeService)

	recorder := postJSON(t, router, "/bulk-edits/", BulkEditHTTPRequest{
		ItemIDs:   []string{"1", "2"},
		Operation: engine.OperationSpec{Field: "title", Mode: "prepend", Text: "Sale:"},
	})

	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", recorder.Code)
	}

	var resp struct {
		Verdict models.Verdict `json:"verdict"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Verdict.Status != models.VerdictFailure {
		t.Fatalf("verdict = %q, want failure", resp.Verdict.Status)
	}
}
