package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// EditableField is the item field a bulk edit operation writes to.
type EditableField string

const (
	FieldTitle       EditableField = "title"
	FieldPrice       EditableField = "price"
	FieldCost        EditableField = "cost"
	FieldBarcode     EditableField = "barcode"
	FieldSKU         EditableField = "sku"
	FieldProductType EditableField = "product_type"
	FieldCategory    EditableField = "category"

	// FieldCompareAtPrice is an internal write target used when a price
	// edit also syncs the compare-at price. It is not user-selectable.
	FieldCompareAtPrice EditableField = "compare_at_price"
)

// RequiresVariant reports whether writes to the field go through the
// item's mutable variant rather than the item itself.
func RequiresVariant(f EditableField) bool {
	switch f {
	case FieldPrice, FieldCompareAtPrice, FieldCost, FieldBarcode, FieldSKU:
		return true
	}
	return false
}

// EditOperation is one configured bulk transformation. Each implementation
// carries the parameters of its field kind and validates them before any
// batch execution is attempted.
type EditOperation interface {
	Field() EditableField
	Validate() error
}

// Title operation modes.
type TitleMode string

const (
	TitlePrepend    TitleMode = "prepend"
	TitleAppend     TitleMode = "append"
	TitleReplace    TitleMode = "replace"
	TitleRemove     TitleMode = "remove"
	TitleCapitalize TitleMode = "capitalize"
	TitleTruncate   TitleMode = "truncate"
)

// Capitalization styles for TitleCapitalize.
type CapitalizeStyle string

const (
	CapitalizeWords CapitalizeStyle = "words"
	CapitalizeUpper CapitalizeStyle = "upper"
	CapitalizeLower CapitalizeStyle = "lower"
	CapitalizeFirst CapitalizeStyle = "first"
)

// TitleEdit transforms the item title (or any free-text item field).
type TitleEdit struct {
	Mode        TitleMode
	Text        string
	Replacement string
	Regex       bool
	Style       CapitalizeStyle
	Length      int
}

func (TitleEdit) Field() EditableField { return FieldTitle }

func (op TitleEdit) Validate() error {
	switch op.Mode {
	case TitlePrepend, TitleAppend:
		if op.Text == "" {
			return fmt.Errorf("%w: %s requires text", ErrInvalidOperationParameter, op.Mode)
		}
	case TitleReplace, TitleRemove:
		if op.Text == "" {
			return fmt.Errorf("%w: %s requires a search text", ErrInvalidOperationParameter, op.Mode)
		}
		if op.Regex {
			if _, err := regexp.Compile(op.Text); err != nil {
				return fmt.Errorf("%w: invalid pattern: %v", ErrInvalidOperationParameter, err)
			}
		}
	case TitleCapitalize:
		switch op.Style {
		case CapitalizeWords, CapitalizeUpper, CapitalizeLower, CapitalizeFirst:
		default:
			return fmt.Errorf("%w: unknown capitalize style %q", ErrInvalidOperationParameter, op.Style)
		}
	case TitleTruncate:
		if op.Length <= 0 {
			return fmt.Errorf("%w: truncate length must be greater than zero", ErrInvalidOperationParameter)
		}
	default:
		return fmt.Errorf("%w: unknown title mode %q", ErrInvalidOperationParameter, op.Mode)
	}
	return nil
}

// Price operation modes and directions.
type PriceMode string

const (
	PriceSet            PriceMode = "set"
	PriceAdjustAbsolute PriceMode = "adjust_absolute"
	PriceAdjustPercent  PriceMode = "adjust_percent"
)

type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
)

// PriceTarget selects which of the variant's price fields is written.
type PriceTarget string

const (
	TargetPrice     PriceTarget = "price"
	TargetCompareAt PriceTarget = "compare_at"
)

// PriceEdit sets or adjusts the variant price (or compare-at price).
// SyncCompareAt copies the pre-adjustment price into the compare-at price
// as part of the same operation.
type PriceEdit struct {
	Mode          PriceMode
	Target        PriceTarget
	Direction     Direction
	Amount        float64
	SyncCompareAt bool
}

func (op PriceEdit) Field() EditableField {
	if op.Target == TargetCompareAt {
		return FieldCompareAtPrice
	}
	return FieldPrice
}

func (op PriceEdit) Validate() error {
	switch op.Target {
	case TargetPrice, TargetCompareAt, "":
	default:
		return fmt.Errorf("%w: unknown price target %q", ErrInvalidOperationParameter, op.Target)
	}

	switch op.Mode {
	case PriceSet:
		if op.Amount < 0 {
			return fmt.Errorf("%w: price must not be negative", ErrInvalidOperationParameter)
		}
	case PriceAdjustAbsolute:
		if op.Direction != DirectionIncrease && op.Direction != DirectionDecrease {
			return fmt.Errorf("%w: adjustment requires a direction", ErrInvalidOperationParameter)
		}
		if op.Amount <= 0 {
			return fmt.Errorf("%w: adjustment amount must be greater than zero", ErrInvalidOperationParameter)
		}
	case PriceAdjustPercent:
		if op.Direction != DirectionIncrease && op.Direction != DirectionDecrease {
			return fmt.Errorf("%w: adjustment requires a direction", ErrInvalidOperationParameter)
		}
		if op.Amount <= 0 || op.Amount > 100 {
			return fmt.Errorf("%w: percentage must be in (0,100]", ErrInvalidOperationParameter)
		}
	default:
		return fmt.Errorf("%w: unknown price mode %q", ErrInvalidOperationParameter, op.Mode)
	}

	if op.SyncCompareAt && op.Target == TargetCompareAt {
		return fmt.Errorf("%w: compare-at sync is only valid when editing the price", ErrInvalidOperationParameter)
	}
	return nil
}

// CostEdit sets the variant's per-unit cost.
type CostEdit struct {
	Amount float64
}

func (CostEdit) Field() EditableField { return FieldCost }

func (op CostEdit) Validate() error {
	if op.Amount < 0 {
		return fmt.Errorf("%w: cost must not be negative", ErrInvalidOperationParameter)
	}
	return nil
}

// BarcodeEdit sets the variant barcode. The remote service is authoritative
// on format; any non-empty string is accepted as-is.
type BarcodeEdit struct {
	Value string
}

func (BarcodeEdit) Field() EditableField { return FieldBarcode }

func (op BarcodeEdit) Validate() error {
	if strings.TrimSpace(op.Value) == "" {
		return fmt.Errorf("%w: barcode value is required", ErrInvalidOperationParameter)
	}
	return nil
}

// SKUEdit sets the variant SKU.
type SKUEdit struct {
	Value string
}

func (SKUEdit) Field() EditableField { return FieldSKU }

func (op SKUEdit) Validate() error {
	if strings.TrimSpace(op.Value) == "" {
		return fmt.Errorf("%w: sku value is required", ErrInvalidOperationParameter)
	}
	return nil
}

// TypeEdit sets the item's product type.
type TypeEdit struct {
	Value string
}

func (TypeEdit) Field() EditableField { return FieldProductType }

func (op TypeEdit) Validate() error {
	if strings.TrimSpace(op.Value) == "" {
		return fmt.Errorf("%w: product type value is required", ErrInvalidOperationParameter)
	}
	return nil
}

// CategoryEdit sets the item's taxonomy category. The identifier is opaque
// and comes from the category lookup collaborator; its existence is not
// validated here.
type CategoryEdit struct {
	CategoryID string
}

func (CategoryEdit) Field() EditableField { return FieldCategory }

func (op CategoryEdit) Validate() error {
	if strings.TrimSpace(op.CategoryID) == "" {
		return fmt.Errorf("%w: category id is required", ErrInvalidOperationParameter)
	}
	return nil
}

// OperationSpec is the wire form of an edit operation: a flat bag of
// parameters tagged with the target field. BuildOperation turns it into
// the typed operation for its field kind.
type OperationSpec struct {
	Field string `json:"field"`

	// Title parameters.
	Mode        string `json:"mode,omitempty"`
	Text        string `json:"text,omitempty"`
	Replacement string `json:"replacement,omitempty"`
	Regex       bool   `json:"regex,omitempty"`
	Style       string `json:"style,omitempty"`
	Length      int    `json:"length,omitempty"`

	// Price parameters. Amount doubles as the cost amount.
	Target        string   `json:"target,omitempty"`
	Direction     string   `json:"direction,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	SyncCompareAt bool     `json:"sync_compare_at,omitempty"`

	// Set-style parameters. CategoryPath is resolved to a CategoryID by
	// the category lookup collaborator before the operation is built.
	Value        string `json:"value,omitempty"`
	CategoryID   string `json:"category_id,omitempty"`
	CategoryPath string `json:"category_path,omitempty"`
}

// BuildOperation constructs and validates the typed operation described by
// a spec. The returned operation is safe to hand to the batch executor.
func BuildOperation(spec OperationSpec) (EditOperation, error) {
	var op EditOperation

	switch EditableField(spec.Field) {
	case FieldTitle:
		op = TitleEdit{
			Mode:        TitleMode(spec.Mode),
			Text:        spec.Text,
			Replacement: spec.Replacement,
			Regex:       spec.Regex,
			Style:       CapitalizeStyle(spec.Style),
			Length:      spec.Length,
		}
	case FieldPrice:
		if spec.Amount == nil {
			return nil, fmt.Errorf("%w: price edits require an amount", ErrInvalidOperationParameter)
		}
		op = PriceEdit{
			Mode:          PriceMode(spec.Mode),
			Target:        PriceTarget(spec.Target),
			Direction:     Direction(spec.Direction),
			Amount:        *spec.Amount,
			SyncCompareAt: spec.SyncCompareAt,
		}
	case FieldCost:
		if spec.Amount == nil {
			return nil, fmt.Errorf("%w: cost edits require an amount", ErrInvalidOperationParameter)
		}
		op = CostEdit{Amount: *spec.Amount}
	case FieldBarcode:
		op = BarcodeEdit{Value: spec.Value}
	case FieldSKU:
		op = SKUEdit{Value: spec.Value}
	case FieldProductType:
		op = TypeEdit{Value: spec.Value}
	case FieldCategory:
		op = CategoryEdit{CategoryID: spec.CategoryID}
	default:
		return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidOperationParameter, spec.Field)
	}

	if err := op.Validate(); err != nil {
		return nil, err
	}
	return op, nil
}
