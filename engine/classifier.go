package engine

import (
	"fmt"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/models"
)

// Classify turns a batch report into the single user-facing verdict.
// The decision table is evaluated top to bottom, first match wins.
//
// The NoOpWarning branch exists because the remote API reports success for
// writes that leave the value unchanged; without the before/after
// comparison an operator could not tell "nothing changed because nothing
// needed to" from "nothing changed at all".
func Classify(report *models.BatchReport) models.Verdict {
	if report == nil || len(report.Outcomes) == 0 {
		return models.Verdict{
			Status:  models.VerdictFailure,
			Message: "no items to update",
		}
	}

	total := len(report.Outcomes)

	if report.ErrorCount == total {
		return models.Verdict{
			Status:  models.VerdictFailure,
			Message: fmt.Sprintf("all %d items failed to update", total),
		}
	}

	if report.ErrorCount > 0 {
		return models.Verdict{
			Status:  models.VerdictPartialFailure,
			Message: fmt.Sprintf("%d of %d items failed to update", report.ErrorCount, total),
		}
	}

	if report.ChangedCount() == 0 {
		return models.Verdict{
			Status:  models.VerdictNoOpWarning,
			Message: "completed, but no values changed",
		}
	}

	return models.Verdict{
		Status:  models.VerdictSuccess,
		Message: fmt.Sprintf("updated %d of %d items", report.ChangedCount(), total),
	}
}
