package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/engine"
)

func TestSearchBuildsQueryAndDecodesProducts(t *testing.T) {
	var gotQuery, gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotToken = r.Header.Get("X-Catalog-Access-Token")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"products": []map[string]interface{}{
				{"id": 101, "title": "Blue Shirt", "body_html": "desc", "product_type": "Apparel"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token")
	items, err := client.Search(context.Background(), "title:*shirt*", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "title:*shirt*" {
		t.Fatalf("query param = %q", gotQuery)
	}
	if gotToken != "secret-token" {
		t.Fatalf("token header = %q", gotToken)
	}
	if len(items) != 1 || items[0].ID != "101" || items[0].Description != "desc" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestGetItemNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.GetItem(context.Background(), "404404")
	if !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthFailureIsRemoteUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "expired")
	_, err := client.GetItem(context.Background(), "1")
	if !errors.Is(err, engine.ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
}

func TestConnectionFailureIsRemoteUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := NewClient(server.URL, "")
	_, err := client.GetItem(context.Background(), "1")
	if !errors.Is(err, engine.ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
}

func TestGetMutableVariant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/7/variants.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"variants": []map[string]interface{}{
				{"id": 900, "product_id": 7, "price": "20.00", "compare_at_price": "25.00", "sku": "SKU-1"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	variant, err := client.GetMutableVariant(context.Background(), "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if variant.ID != "900" || variant.Price != 20.00 {
		t.Fatalf("unexpected variant: %+v", variant)
	}
	if variant.CompareAtPrice == nil || *variant.CompareAtPrice != 25.00 {
		t.Fatalf("compare-at = %v", variant.CompareAtPrice)
	}
}

func TestGetMutableVariantEmptyListIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"variants": []interface{}{}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.GetMutableVariant(context.Background(), "7")
	if !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateVariantFieldSendsScopedPayload(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if err := client.UpdateVariantField(context.Background(), "900", engine.FieldPrice, "22.00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/variants/900.json" {
		t.Fatalf("request was %s %s", gotMethod, gotPath)
	}
	if gotBody["variant"]["price"] != "22.00" {
		t.Fatalf("unexpected body: %+v", gotBody)
	}
}

func TestResolveCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("path"); got != "Apparel > Shirts" {
			t.Errorf("path param = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"category_id": "gid-42"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	id, err := client.ResolveCategory(context.Background(), "Apparel > Shirts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "gid-42" {
		t.Fatalf("category id = %q", id)
	}
}

func TestResolveCategoryUnknownPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"category_id": ""})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.ResolveCategory(context.Background(), "No > Such")
	if !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
