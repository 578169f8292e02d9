package models

// ItemSnapshot is a read-only view of a catalog item, fetched from the
// remote catalog service at filter time. The service owns the item; this
// snapshot is never mutated locally, only replaced by a fresh fetch.
type ItemSnapshot struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ProductType string `json:"product_type"`
	Vendor      string `json:"vendor"`
	Status      string `json:"status"`
	CategoryID  string `json:"category_id,omitempty"`
}

// VariantHandle identifies an item's single mutable variant plus the field
// values writes are computed from. Price-family, barcode, SKU and cost
// writes require resolving this handle first.
type VariantHandle struct {
	ID             string   `json:"id"`
	ItemID         string   `json:"item_id"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compare_at_price,omitempty"`
	Cost           *float64 `json:"cost,omitempty"`
	Barcode        string   `json:"barcode,omitempty"`
	SKU            string   `json:"sku,omitempty"`
}
