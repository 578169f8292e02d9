package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/models"
)

// ReportArchiver renders a batch report to CSV, stores it in S3, and
// returns a presigned download URL so operators can keep the per-item
// evidence after the job result expires.
type ReportArchiver struct {
	s3Client      *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	prefix        string
	linkExpiry    time.Duration
}

func NewReportArchiver(s3Client *s3.Client, presignClient *s3.PresignClient, bucket, prefix string) *ReportArchiver {
	return &ReportArchiver{
		s3Client:      s3Client,
		presignClient: presignClient,
		bucket:        bucket,
		prefix:        prefix,
		linkExpiry:    24 * time.Hour,
	}
}

// Archive uploads the report CSV and returns a presigned GET URL.
func (a *ReportArchiver) Archive(ctx context.Context, jobID string, report *models.BatchReport) (string, error) {
	body, err := renderReportCSV(report)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%sbulk_edit_report_%s.csv", a.prefix, jobID)
	_, err = a.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	presignedReq, err := a.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = a.linkExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign report: %w", err)
	}
	return presignedReq.URL, nil
}

func renderReportCSV(report *models.BatchReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"item_id", "status", "original_value", "new_value", "changed", "detail"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, o := range report.Outcomes {
		row := []string{
			o.ItemID,
			string(o.Status),
			o.OriginalValue,
			o.NewValue,
			strconv.FormatBool(o.Changed()),
			o.ErrorDetail,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
