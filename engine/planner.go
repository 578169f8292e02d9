package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// PlannedChange is the computed result of applying one operation to one
// item's current field value. The executor dispatches it; nothing here
// touches the network.
type PlannedChange struct {
	OriginalValue string
	NewValue      string

	// CompareAt carries the pre-adjustment price when a price edit also
	// syncs the compare-at price. Computed from the original value, not
	// the adjusted one.
	CompareAt *string

	// Skip marks a plan that legitimately has nothing to change, e.g. a
	// capitalize pass over an empty title. Distinct from a no-op write:
	// skipped items are never dispatched.
	Skip       bool
	SkipReason string
}

func skipChange(oldValue, reason string) PlannedChange {
	return PlannedChange{OriginalValue: oldValue, NewValue: oldValue, Skip: true, SkipReason: reason}
}

// Plan computes the new field value for one item. Equal old and new values
// still produce a dispatchable plan: the no-op decision belongs to the
// result classifier, which needs the definitive per-item record.
func Plan(op EditOperation, oldValue string) (PlannedChange, error) {
	switch o := op.(type) {
	case TitleEdit:
		return planTitle(o, oldValue)
	case PriceEdit:
		return planPrice(o, oldValue)
	case CostEdit:
		return PlannedChange{OriginalValue: oldValue, NewValue: formatAmount(o.Amount)}, nil
	case BarcodeEdit:
		return PlannedChange{OriginalValue: oldValue, NewValue: o.Value}, nil
	case SKUEdit:
		return PlannedChange{OriginalValue: oldValue, NewValue: o.Value}, nil
	case TypeEdit:
		return PlannedChange{OriginalValue: oldValue, NewValue: o.Value}, nil
	case CategoryEdit:
		return PlannedChange{OriginalValue: oldValue, NewValue: o.CategoryID}, nil
	}
	return PlannedChange{}, fmt.Errorf("%w: unsupported operation %T", ErrInvalidOperationParameter, op)
}

func planTitle(op TitleEdit, oldValue string) (PlannedChange, error) {
	switch op.Mode {
	case TitlePrepend:
		newValue := op.Text
		if oldValue != "" {
			newValue = op.Text + " " + oldValue
		}
		return PlannedChange{OriginalValue: oldValue, NewValue: newValue}, nil

	case TitleAppend:
		newValue := op.Text
		if oldValue != "" {
			newValue = oldValue + " " + op.Text
		}
		return PlannedChange{OriginalValue: oldValue, NewValue: newValue}, nil

	case TitleReplace, TitleRemove:
		replacement := op.Replacement
		if op.Mode == TitleRemove {
			replacement = ""
		}
		if op.Regex {
			re, err := regexp.Compile(op.Text)
			if err != nil {
				return PlannedChange{}, fmt.Errorf("%w: invalid pattern: %v", ErrInvalidOperationParameter, err)
			}
			return PlannedChange{OriginalValue: oldValue, NewValue: re.ReplaceAllString(oldValue, replacement)}, nil
		}
		return PlannedChange{OriginalValue: oldValue, NewValue: strings.ReplaceAll(oldValue, op.Text, replacement)}, nil

	case TitleCapitalize:
		if oldValue == "" {
			return skipChange(oldValue, "title is empty"), nil
		}
		return PlannedChange{OriginalValue: oldValue, NewValue: capitalize(oldValue, op.Style)}, nil

	case TitleTruncate:
		if op.Length <= 0 {
			return PlannedChange{}, fmt.Errorf("%w: truncate length must be greater than zero", ErrInvalidOperationParameter)
		}
		if oldValue == "" {
			return skipChange(oldValue, "title is empty"), nil
		}
		runes := []rune(oldValue)
		if len(runes) > op.Length {
			return PlannedChange{OriginalValue: oldValue, NewValue: string(runes[:op.Length])}, nil
		}
		return PlannedChange{OriginalValue: oldValue, NewValue: oldValue}, nil
	}

	return PlannedChange{}, fmt.Errorf("%w: unknown title mode %q", ErrInvalidOperationParameter, op.Mode)
}

func planPrice(op PriceEdit, oldValue string) (PlannedChange, error) {
	if op.Mode == PriceSet {
		change := PlannedChange{OriginalValue: oldValue, NewValue: formatAmount(op.Amount)}
		if op.SyncCompareAt {
			original := originalOrZero(oldValue)
			change.CompareAt = &original
		}
		return change, nil
	}

	if strings.TrimSpace(oldValue) == "" {
		return skipChange(oldValue, "no current price to adjust"), nil
	}
	current, err := strconv.ParseFloat(oldValue, 64)
	if err != nil {
		return PlannedChange{}, fmt.Errorf("%w: current price %q is not numeric", ErrInvalidOperationParameter, oldValue)
	}

	var adjusted float64
	switch op.Mode {
	case PriceAdjustAbsolute:
		if op.Direction == DirectionIncrease {
			adjusted = current + op.Amount
		} else {
			adjusted = current - op.Amount
		}
	case PriceAdjustPercent:
		pct := op.Amount / 100
		if op.Direction == DirectionIncrease {
			adjusted = current * (1 + pct)
		} else {
			adjusted = current * (1 - pct)
		}
	default:
		return PlannedChange{}, fmt.Errorf("%w: unknown price mode %q", ErrInvalidOperationParameter, op.Mode)
	}

	if adjusted < 0 {
		adjusted = 0
	}

	change := PlannedChange{OriginalValue: oldValue, NewValue: formatAmount(adjusted)}
	if op.SyncCompareAt {
		// Copy the pre-adjustment price, not the adjusted one.
		original := formatAmount(current)
		change.CompareAt = &original
	}
	return change, nil
}

func capitalize(s string, style CapitalizeStyle) string {
	switch style {
	case CapitalizeUpper:
		return strings.ToUpper(s)
	case CapitalizeLower:
		return strings.ToLower(s)
	case CapitalizeFirst:
		runes := []rune(strings.ToLower(s))
		runes[0] = unicode.ToUpper(runes[0])
		return string(runes)
	case CapitalizeWords:
		words := strings.Split(s, " ")
		for i, w := range words {
			if w == "" {
				continue
			}
			runes := []rune(strings.ToLower(w))
			runes[0] = unicode.ToUpper(runes[0])
			words[i] = string(runes)
		}
		return strings.Join(words, " ")
	}
	return s
}

func originalOrZero(oldValue string) string {
	if v, err := strconv.ParseFloat(oldValue, 64); err == nil {
		return formatAmount(v)
	}
	return formatAmount(0)
}

// formatAmount renders monetary values the way the remote API expects
// them: two decimal places, plain notation.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
