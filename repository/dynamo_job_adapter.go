package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/engine"
	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/models"
)

// DynamoJobAdapter is a DynamoDB-backed JobHistoryRepo. Records live in a
// table with primary key `job_id` (string).
type DynamoJobAdapter struct {
	client *dynamodb.Client
	table  string
}

func NewDynamoJobAdapter(client *dynamodb.Client, table string) *DynamoJobAdapter {
	return &DynamoJobAdapter{client: client, table: table}
}

type ddbJobRecord struct {
	JobID        string  `dynamodbav:"job_id"`
	Field        string  `dynamodbav:"field"`
	Verdict      string  `dynamodbav:"verdict"`
	Message      string  `dynamodbav:"message"`
	ItemCount    int     `dynamodbav:"item_count"`
	UpdatedCount int     `dynamodbav:"updated_count"`
	SkippedCount int     `dynamodbav:"skipped_count"`
	ErrorCount   int     `dynamodbav:"error_count"`
	ReportURL    *string `dynamodbav:"report_url,omitempty"`
	CreatedAt    string  `dynamodbav:"created_at"`
}

func (d *DynamoJobAdapter) Save(ctx context.Context, record *models.EditJobRecord) error {
	dr := ddbJobRecord{
		JobID:        record.JobID,
		Field:        record.Field,
		Verdict:      record.Verdict,
		Message:      record.Message,
		ItemCount:    record.ItemCount,
		UpdatedCount: record.UpdatedCount,
		SkippedCount: record.SkippedCount,
		ErrorCount:   record.ErrorCount,
		CreatedAt:    record.CreatedAt.Format(time.RFC3339),
	}
	if record.ReportURL != "" {
		dr.ReportURL = &record.ReportURL
	}

	item, err := attributevalue.MarshalMap(dr)
	if err != nil {
		return fmt.Errorf("marshal job record: %w", err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{TableName: &d.table, Item: item})
	if err != nil {
		return fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	return nil
}

func (d *DynamoJobAdapter) FindByID(ctx context.Context, jobID string) (*models.EditJobRecord, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"job_id": jobID})
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{TableName: &d.table, Key: key})
	if err != nil {
		return nil, fmt.Errorf("dynamodb GetItem failed: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("%w: job %s", engine.ErrNotFound, jobID)
	}
	var dr ddbJobRecord
	if err := attributevalue.UnmarshalMap(out.Item, &dr); err != nil {
		return nil, fmt.Errorf("unmarshal job record: %w", err)
	}
	record := fromDDB(dr)
	return &record, nil
}

// ListRecent scans the table and returns the newest records first.
// Job history stays small (one record per bulk edit), so a table scan is
// acceptable here the same way it is for the candidate-set sizes involved.
func (d *DynamoJobAdapter) ListRecent(ctx context.Context, limit int) ([]models.EditJobRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	input := &dynamodb.ScanInput{TableName: &d.table}
	var records []models.EditJobRecord
	paginator := dynamodb.NewScanPaginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan page failed: %w", err)
		}
		for _, it := range page.Items {
			var dr ddbJobRecord
			if err := attributevalue.UnmarshalMap(it, &dr); err != nil {
				return nil, fmt.Errorf("unmarshal job record: %w", err)
			}
			records = append(records, fromDDB(dr))
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func fromDDB(dr ddbJobRecord) models.EditJobRecord {
	record := models.EditJobRecord{
		JobID:        dr.JobID,
		Field:        dr.Field,
		Verdict:      dr.Verdict,
		Message:      dr.Message,
		ItemCount:    dr.ItemCount,
		UpdatedCount: dr.UpdatedCount,
		SkippedCount: dr.SkippedCount,
		ErrorCount:   dr.ErrorCount,
	}
	if dr.ReportURL != nil {
		record.ReportURL = *dr.ReportURL
	}
	if t, err := time.Parse(time.RFC3339, dr.CreatedAt); err == nil {
		record.CreatedAt = t
	}
	return record
}
