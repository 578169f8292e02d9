package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/models"
)

const (
	JobQueueKey  = "bulk_edit:queue"
	jobKeyFormat = "bulk_edit:job:%s"
	jobTTL       = 24 * time.Hour
)

// JobStatus is the Redis-stored state of one async bulk edit job.
type JobStatus struct {
	Status    string              `json:"status"`
	CreatedAt string              `json:"created_at"`
	Request   BulkEditRequest     `json:"request"`
	Report    *models.BatchReport `json:"report,omitempty"`
	Verdict   *models.Verdict     `json:"verdict,omitempty"`
	ReportURL string              `json:"report_url,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// JobKey returns the Redis key holding a job's status.
func JobKey(jobID string) string {
	return fmt.Sprintf(jobKeyFormat, jobID)
}

// EnqueueJob stores the job metadata and pushes the job id onto the queue.
func EnqueueJob(ctx context.Context, rdb *redis.Client, jobID string, req BulkEditRequest) error {
	status := JobStatus{
		Status:    models.JobStatusPending,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Request:   req,
	}
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal job status: %w", err)
	}
	if err := rdb.Set(ctx, JobKey(jobID), data, jobTTL).Err(); err != nil {
		return fmt.Errorf("failed to store job status: %w", err)
	}
	if err := rdb.RPush(ctx, JobQueueKey, jobID).Err(); err != nil {
		rdb.Del(ctx, JobKey(jobID))
		return fmt.Errorf("failed to enqueue job: %w", err)
	}
	return nil
}

// StartBulkEditWorker starts a background worker that consumes job ids
// from the Redis queue and runs each bulk edit through the service.
func StartBulkEditWorker(ctx context.Context, rdb *redis.Client, svc *BulkEditService) {
	if rdb == nil || svc == nil {
		zap.L().Warn("bulk edit worker not started: missing dependencies")
		return
	}

	go func() {
		zap.L().Info("bulk edit worker started", zap.String("queue", JobQueueKey))
		for {
			select {
			case <-ctx.Done():
				zap.L().Info("bulk edit worker stopping")
				return
			default:
			}

			// BLPop with no timeout blocks until a job is available.
			res, err := rdb.BLPop(ctx, 0*time.Second, JobQueueKey).Result()
			if err != nil {
				if err == context.Canceled || err == context.DeadlineExceeded {
					return
				}
				zap.L().Error("redis BLPop failed", zap.Error(err))
				time.Sleep(500 * time.Millisecond)
				continue
			}
			if len(res) < 2 {
				continue
			}
			processJob(ctx, rdb, svc, res[1])
		}
	}()
}

func processJob(ctx context.Context, rdb *redis.Client, svc *BulkEditService, jobID string) {
	status, err := loadJobStatus(ctx, rdb, jobID)
	if err != nil {
		zap.L().Error("failed to read job status", zap.String("job_id", jobID), zap.Error(err))
		return
	}

	status.Status = models.JobStatusProcessing
	storeJobStatus(ctx, rdb, jobID, status)

	report, verdict, err := svc.RunBulkEdit(ctx, status.Request)
	if err != nil && report == nil && verdict.Status == "" {
		// Validation failure or unexpected error before execution started.
		status.Status = models.JobStatusFailed
		status.Error = err.Error()
		storeJobStatus(ctx, rdb, jobID, status)
		return
	}

	status.Report = report
	status.Verdict = &verdict
	status.Status = models.JobStatusDone
	if err != nil {
		// Remote outage: the verdict is already a Failure.
		status.Error = err.Error()
	}

	record, recordErr := svc.RecordJob(ctx, jobID, status.Request.Spec.Field, report, verdict)
	if recordErr != nil {
		zap.L().Error("failed to record job history", zap.String("job_id", jobID), zap.Error(recordErr))
	} else if record != nil {
		status.ReportURL = record.ReportURL
	}

	storeJobStatus(ctx, rdb, jobID, status)
	zap.L().Info("bulk edit job finished",
		zap.String("job_id", jobID),
		zap.String("verdict", string(verdict.Status)),
	)
}

func loadJobStatus(ctx context.Context, rdb *redis.Client, jobID string) (JobStatus, error) {
	val, err := rdb.Get(ctx, JobKey(jobID)).Result()
	if err != nil {
		return JobStatus{}, err
	}
	var status JobStatus
	if err := json.Unmarshal([]byte(val), &status); err != nil {
		return JobStatus{}, fmt.Errorf("failed to parse job status: %w", err)
	}
	return status, nil
}

func storeJobStatus(ctx context.Context, rdb *redis.Client, jobID string, status JobStatus) {
	data, err := json.Marshal(status)
	if err != nil {
		zap.L().Error("failed to marshal job status", zap.String("job_id", jobID), zap.Error(err))
		return
	}
	if err := rdb.Set(ctx, JobKey(jobID), data, jobTTL).Err(); err != nil {
		zap.L().Error("failed to store job status", zap.String("job_id", jobID), zap.Error(err))
	}
}
