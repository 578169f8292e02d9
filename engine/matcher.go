package engine

import "strings"

// Condition is the comparison applied between a field value and a target.
type Condition string

const (
	ConditionIs             Condition = "is"
	ConditionContains       Condition = "contains"
	ConditionDoesNotContain Condition = "does_not_contain"
	ConditionStartsWith     Condition = "starts_with"
	ConditionEndsWith       Condition = "ends_with"
	ConditionEmpty          Condition = "empty"
)

// Matches evaluates a single condition against a field value. All string
// comparisons are case-insensitive to stay consistent with the remote
// service's case-insensitive search, so remote and local filtering agree.
//
// The function is total: an unrecognized condition matches everything
// (fail open) rather than silently excluding all candidates. Request
// validation rejects unknown conditions before they reach this point, so
// the fail-open branch is unreachable through the API surface.
func Matches(fieldValue string, condition Condition, target string) bool {
	value := strings.ToLower(fieldValue)
	want := strings.ToLower(target)

	switch condition {
	case ConditionIs:
		return value == want
	case ConditionContains:
		return strings.Contains(value, want)
	case ConditionDoesNotContain:
		return !strings.Contains(value, want)
	case ConditionStartsWith:
		return strings.HasPrefix(value, want)
	case ConditionEndsWith:
		return strings.HasSuffix(value, want)
	case ConditionEmpty:
		return strings.TrimSpace(fieldValue) == ""
	default:
		return true
	}
}
