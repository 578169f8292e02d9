package engine

import (
	"fmt"
	"strings"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/models"
)

// FilterField is the item field a filter criterion targets.
type FilterField string

const (
	FilterFieldTitle       FilterField = "title"
	FilterFieldDescription FilterField = "description"
	FilterFieldItemID      FilterField = "item_id"
)

// FilterCriterion selects candidate items for a bulk edit.
// Immutable for the duration of one request.
type FilterCriterion struct {
	Field     FilterField `json:"field"`
	Condition Condition   `json:"condition"`
	Value     string      `json:"value"`
}

// CompiledFilter is the result of compiling a criterion: either a direct
// single-item lookup, or a remote search query plus a local refinement
// predicate over whatever candidate set the remote query returns.
type CompiledFilter struct {
	// DirectLookupID is set when the criterion targets the item id.
	// The remote search DSL is bypassed entirely in that case.
	DirectLookupID string

	// Query is the remote search fragment. Empty means an unscoped search
	// (the remote DSL cannot express the condition at all, e.g. "empty").
	Query string

	criterion FilterCriterion
}

// Refine reports whether a candidate actually satisfies the criterion.
// The remote query is a superset approximation: its wildcard semantics are
// coarser than the condition vocabulary exposed here, and negation may be
// ignored for some field kinds, so every candidate passes through this
// exact predicate before it is shown to the operator.
func (f CompiledFilter) Refine(item models.ItemSnapshot) bool {
	return Matches(filterFieldValue(item, f.criterion.Field), f.criterion.Condition, f.criterion.Value)
}

// ValidateCriterion enforces the condition/field legality rules before any
// remote call is attempted.
func ValidateCriterion(c FilterCriterion) error {
	switch c.Field {
	case FilterFieldTitle, FilterFieldDescription, FilterFieldItemID:
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidFilterCriterion, c.Field)
	}

	switch c.Condition {
	case ConditionIs, ConditionContains, ConditionDoesNotContain, ConditionStartsWith, ConditionEndsWith:
		if strings.TrimSpace(c.Value) == "" {
			return fmt.Errorf("%w: condition %q requires a value", ErrInvalidFilterCriterion, c.Condition)
		}
	case ConditionEmpty:
		if c.Field != FilterFieldDescription {
			return fmt.Errorf("%w: condition %q is only valid for the description field", ErrInvalidFilterCriterion, c.Condition)
		}
	default:
		return fmt.Errorf("%w: unknown condition %q", ErrInvalidFilterCriterion, c.Condition)
	}

	if c.Field == FilterFieldItemID {
		if c.Condition != ConditionIs {
			return fmt.Errorf("%w: item id filters support only the %q condition", ErrInvalidFilterCriterion, ConditionIs)
		}
		if !isWellFormedItemID(c.Value) {
			return fmt.Errorf("%w: malformed item id %q", ErrInvalidFilterCriterion, c.Value)
		}
	}

	return nil
}

// Compile turns a criterion into a remote query plus a local refinement
// predicate. It performs no network calls itself.
func Compile(c FilterCriterion) (CompiledFilter, error) {
	if err := ValidateCriterion(c); err != nil {
		return CompiledFilter{}, err
	}

	compiled := CompiledFilter{criterion: c}

	if c.Field == FilterFieldItemID {
		compiled.DirectLookupID = strings.TrimSpace(c.Value)
		return compiled, nil
	}

	field := string(c.Field)
	value := sanitizeQueryValue(c.Value)

	switch c.Condition {
	case ConditionIs:
		compiled.Query = fmt.Sprintf("%s:%q", field, value)
	case ConditionContains:
		compiled.Query = fmt.Sprintf("%s:*%s*", field, value)
	case ConditionStartsWith, ConditionEndsWith:
		// The remote DSL has no native prefix/suffix operator, so both
		// lower to the same wildcard form and rely on Refine for exactness.
		compiled.Query = fmt.Sprintf("%s:*%s*", field, value)
	case ConditionDoesNotContain:
		compiled.Query = fmt.Sprintf("-%s:*%s*", field, value)
	case ConditionEmpty:
		// Not expressible remotely: fetch unscoped, refine locally.
		compiled.Query = ""
	}

	return compiled, nil
}

func filterFieldValue(item models.ItemSnapshot, field FilterField) string {
	switch field {
	case FilterFieldTitle:
		return item.Title
	case FilterFieldDescription:
		return item.Description
	case FilterFieldItemID:
		return item.ID
	}
	return ""
}

// sanitizeQueryValue strips characters that would break out of the query
// fragment. Exactness is restored by the refinement pass.
func sanitizeQueryValue(v string) string {
	replacer := strings.NewReplacer(`"`, "", "*", "", ":", " ")
	return strings.TrimSpace(replacer.Replace(v))
}

func isWellFormedItemID(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
