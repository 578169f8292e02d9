package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/engine"
	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/models"
)

// Client calls the remote catalog service's admin HTTP API. It is the only
// component that constructs transport-level requests; the engine hands it
// query strings and handle/value pairs.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type itemPayload struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"body_html"`
	ProductType string `json:"product_type"`
	Vendor      string `json:"vendor"`
	Status      string `json:"status"`
	CategoryID  string `json:"category_id,omitempty"`
}

type variantPayload struct {
	ID             int64   `json:"id"`
	ProductID      int64   `json:"product_id"`
	Price          string  `json:"price"`
	CompareAtPrice *string `json:"compare_at_price"`
	Cost           *string `json:"cost"`
	Barcode        string  `json:"barcode"`
	SKU            string  `json:"sku"`
}

// Search runs a remote query and returns the candidate snapshots. The
// remote query is best-effort; callers refine the result locally.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.ItemSnapshot, error) {
	if limit <= 0 {
		limit = 250
	}
	params := url.Values{"limit": {strconv.Itoa(limit)}}
	if query != "" {
		params.Set("query", query)
	}

	var out struct {
		Products []itemPayload `json:"products"`
	}
	if err := c.get(ctx, "/products.json?"+params.Encode(), &out); err != nil {
		return nil, err
	}

	snapshots := make([]models.ItemSnapshot, 0, len(out.Products))
	for _, p := range out.Products {
		snapshots = append(snapshots, toSnapshot(p))
	}
	return snapshots, nil
}

func (c *Client) GetItem(ctx context.Context, id string) (*models.ItemSnapshot, error) {
	var out struct {
		Product itemPayload `json:"product"`
	}
	if err := c.get(ctx, "/products/"+url.PathEscape(id)+".json", &out); err != nil {
		return nil, err
	}
	snapshot := toSnapshot(out.Product)
	return &snapshot, nil
}

// GetMutableVariant resolves the item's single mutable variant. Items
// without variants return ErrNotFound.
func (c *Client) GetMutableVariant(ctx context.Context, itemID string) (*models.VariantHandle, error) {
	var out struct {
		Variants []variantPayload `json:"variants"`
	}
	if err := c.get(ctx, "/products/"+url.PathEscape(itemID)+"/variants.json", &out); err != nil {
		return nil, err
	}
	if len(out.Variants) == 0 {
		return nil, fmt.Errorf("%w: item %s has no variants", engine.ErrNotFound, itemID)
	}

	v := out.Variants[0]
	handle := &models.VariantHandle{
		ID:      strconv.FormatInt(v.ID, 10),
		ItemID:  strconv.FormatInt(v.ProductID, 10),
		Barcode: v.Barcode,
		SKU:     v.SKU,
	}
	if price, err := strconv.ParseFloat(v.Price, 64); err == nil {
		handle.Price = price
	}
	if v.CompareAtPrice != nil {
		if compareAt, err := strconv.ParseFloat(*v.CompareAtPrice, 64); err == nil {
			handle.CompareAtPrice = &compareAt
		}
	}
	if v.Cost != nil {
		if cost, err := strconv.ParseFloat(*v.Cost, 64); err == nil {
			handle.Cost = &cost
		}
	}
	return handle, nil
}

func (c *Client) UpdateItemField(ctx context.Context, itemID string, field engine.EditableField, value string) error {
	attr, err := itemAttribute(field)
	if err != nil {
		return err
	}
	body := map[string]map[string]string{"product": {attr: value}}
	return c.put(ctx, "/products/"+url.PathEscape(itemID)+".json", body)
}

func (c *Client) UpdateVariantField(ctx context.Context, variantID string, field engine.EditableField, value string) error {
	attr, err := variantAttribute(field)
	if err != nil {
		return err
	}
	body := map[string]map[string]string{"variant": {attr: value}}
	return c.put(ctx, "/variants/"+url.PathEscape(variantID)+".json", body)
}

// ResolveCategory turns a taxonomy path selection ("A > B > C") into the
// remote service's opaque category identifier.
func (c *Client) ResolveCategory(ctx context.Context, path string) (string, error) {
	params := url.Values{"path": {path}}
	var out struct {
		CategoryID string `json:"category_id"`
	}
	if err := c.get(ctx, "/taxonomy/resolve.json?"+params.Encode(), &out); err != nil {
		return "", err
	}
	if out.CategoryID == "" {
		return "", fmt.Errorf("%w: category %q", engine.ErrNotFound, path)
	}
	return out.CategoryID, nil
}

func itemAttribute(field engine.EditableField) (string, error) {
	switch field {
	case engine.FieldTitle:
		return "title", nil
	case engine.FieldProductType:
		return "product_type", nil
	case engine.FieldCategory:
		return "category_id", nil
	}
	return "", fmt.Errorf("field %s is not an item attribute", field)
}

func variantAttribute(field engine.EditableField) (string, error) {
	switch field {
	case engine.FieldPrice:
		return "price", nil
	case engine.FieldCompareAtPrice:
		return "compare_at_price", nil
	case engine.FieldCost:
		return "cost", nil
	case engine.FieldBarcode:
		return "barcode", nil
	case engine.FieldSKU:
		return "sku", nil
	}
	return "", fmt.Errorf("field %s is not a variant attribute", field)
}

func toSnapshot(p itemPayload) models.ItemSnapshot {
	return models.ItemSnapshot{
		ID:          strconv.FormatInt(p.ID, 10),
		Title:       p.Title,
		Description: p.Description,
		ProductType: p.ProductType,
		Vendor:      p.Vendor,
		Status:      p.Status,
		CategoryID:  p.CategoryID,
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) put(ctx context.Context, path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

// do executes the request and maps transport and status failures onto the
// engine's error kinds: connection/auth failures mean the gateway itself
// is unreachable, 404 means the addressed resource does not exist, and
// anything else >= 300 is an ordinary per-item error.
func (c *Client) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("X-Catalog-Access-Token", c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		zap.L().Warn("catalog request failed", zap.String("url", req.URL.Path), zap.Error(err))
		return fmt.Errorf("%w: %v", engine.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", engine.ErrRemoteUnavailable, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", engine.ErrNotFound, req.URL.Path)
	case resp.StatusCode >= 300:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("catalog returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
