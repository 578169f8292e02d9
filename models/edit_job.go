package models

import "time"

// Bulk edit job statuses stored with the job metadata.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusDone       = "done"
	JobStatusFailed     = "failed"
)

// EditJobRecord is the persisted audit record of one completed bulk edit.
type EditJobRecord struct {
	JobID        string    `json:"job_id"`
	Field        string    `json:"field"`
	Verdict      string    `json:"verdict"`
	Message      string    `json:"message"`
	ItemCount    int       `json:"item_count"`
	UpdatedCount int       `json:"updated_count"`
	SkippedCount int       `json:"skipped_count"`
	ErrorCount   int       `json:"error_count"`
	ReportURL    string    `json:"report_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
