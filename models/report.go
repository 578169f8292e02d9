package models

// OutcomeStatus is the terminal state of one item inside a batch.
type OutcomeStatus string

const (
	OutcomeUpdated OutcomeStatus = "updated"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeError   OutcomeStatus = "error"
)

// ItemOutcome records the result of the read-modify-write sequence for a
// single item. Created once during batch execution and never mutated.
type ItemOutcome struct {
	ItemID        string        `json:"item_id"`
	OriginalValue string        `json:"original_value"`
	NewValue      string        `json:"new_value"`
	Status        OutcomeStatus `json:"status"`
	ErrorDetail   string        `json:"error_detail,omitempty"`
}

// Changed reports whether the write produced an actual value change.
// A remote API can report success for a write that left the value as it
// was; this comparison is what distinguishes a real update from a no-op.
func (o ItemOutcome) Changed() bool {
	return o.Status == OutcomeUpdated && o.NewValue != o.OriginalValue
}

// BatchReport aggregates the per-item outcomes of one bulk edit.
// Outcomes keep the order the candidate list was supplied in.
type BatchReport struct {
	Outcomes     []ItemOutcome `json:"outcomes"`
	UpdatedCount int           `json:"updated_count"`
	SkippedCount int           `json:"skipped_count"`
	ErrorCount   int           `json:"error_count"`
}

// NewBatchReport derives the aggregate counts from the outcome list.
func NewBatchReport(outcomes []ItemOutcome) *BatchReport {
	r := &BatchReport{Outcomes: outcomes}
	for _, o := range outcomes {
		switch o.Status {
		case OutcomeUpdated:
			r.UpdatedCount++
		case OutcomeSkipped:
			r.SkippedCount++
		case OutcomeError:
			r.ErrorCount++
		}
	}
	return r
}

// ChangedCount returns how many updated items actually changed value.
func (r *BatchReport) ChangedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Changed() {
			n++
		}
	}
	return n
}

// VerdictStatus is the classified result of a whole batch.
type VerdictStatus string

const (
	VerdictSuccess        VerdictStatus = "success"
	VerdictNoOpWarning    VerdictStatus = "no_changes"
	VerdictPartialFailure VerdictStatus = "partial_failure"
	VerdictFailure        VerdictStatus = "failure"
)

// Verdict is the single user-facing outcome of a bulk edit request.
type Verdict struct {
	Status  VerdictStatus `json:"status"`
	Message string        `json:"message"`
}
