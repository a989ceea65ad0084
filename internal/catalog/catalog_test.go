package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xenking/kirana-storefront/internal/domain/product"
)

const feedJSON = `[
	{"id": "tomato", "name": "Fresh Tomatoes", "price": 30, "unit": "1 kg",
	 "category": "vegetables", "image": "img/tomato.jpg",
	 "description": "Farm fresh tomatoes", "originalPrice": 40, "discount": 25},
	{"id": "milk", "name": "Cow Milk", "price": 25.50, "unit": "1 litre",
	 "category": "dairy", "image": "img/milk.jpg",
	 "description": "Fresh cow milk delivered daily",
	 "features": ["Pasteurized", "No preservatives"]},
	{"id": "paneer", "name": "Paneer", "price": 90, "unit": "200 g",
	 "category": "dairy", "image": "img/paneer.jpg",
	 "description": "Soft cottage cheese made from milk"},
	{"id": "rice", "name": "Basmati Rice", "price": 120, "unit": "1 kg",
	 "category": "groceries", "image": "img/rice.jpg",
	 "description": "Long grain aromatic rice"}
]`

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	return New(Config{URL: url, HTTPClient: http.DefaultClient}, zap.NewNop())
}

func loadTestCatalog(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(feedJSON))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)
	require.NoError(t, c.Load(context.Background()))
	return c
}

func TestLoad_Success(t *testing.T) {
	c := loadTestCatalog(t)

	products := c.Products()
	require.Len(t, products, 4)
	assert.Equal(t, "tomato", products[0].ID)
	assert.True(t, products[1].Price.Equal(decimal.RequireFromString("25.50")))
	assert.Equal(t, 25, products[0].Discount)
	assert.Equal(t, []string{"Pasteurized", "No preservatives"}, products[1].Features)

	p, ok := c.Get("rice")
	require.True(t, ok)
	assert.Equal(t, "Basmati Rice", p.Name)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestLoad_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	err := newTestClient(t, srv.URL).Load(context.Background())

	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Error(), "unexpected status 500")
}

func TestLoad_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	err := newTestClient(t, srv.URL).Load(context.Background())

	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
}

func TestLoad_NotAnArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error": "oops"}`))
	}))
	t.Cleanup(srv.Close)

	err := newTestClient(t, srv.URL).Load(context.Background())

	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Error(), "not a product array")
}

func TestLoad_UnknownCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "x", "name": "X", "price": 1, "category": "electronics"}]`))
	}))
	t.Cleanup(srv.Close)

	err := newTestClient(t, srv.URL).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, product.ErrUnknownCategory)
}

func TestLoad_GzipCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := pgzip.NewWriter(f)
	_, err = gz.Write([]byte(feedJSON))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	c := New(Config{CachePath: path}, zap.NewNop())
	require.NoError(t, c.Load(context.Background()))
	assert.Len(t, c.Products(), 4)
}

func TestLoad_PlainCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(feedJSON), 0o644))

	c := New(Config{CachePath: path}, zap.NewNop())
	require.NoError(t, c.Load(context.Background()))
	assert.Len(t, c.Products(), 4)
}

func TestLoad_MissingCache(t *testing.T) {
	c := New(Config{CachePath: filepath.Join(t.TempDir(), "nope.json")}, zap.NewNop())

	err := c.Load(context.Background())

	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
}

func TestFilter(t *testing.T) {
	c := loadTestCatalog(t)

	tests := []struct {
		name     string
		category product.Category
		term     string
		wantIDs  []string
	}{
		{name: "no filters match everything", wantIDs: []string{"tomato", "milk", "paneer", "rice"}},
		{name: "dairy only, feed order kept", category: product.CategoryDairy, wantIDs: []string{"milk", "paneer"}},
		{name: "term matches name and description", term: "milk", wantIDs: []string{"milk", "paneer"}},
		{name: "term is case-insensitive", term: "MILK", wantIDs: []string{"milk", "paneer"}},
		{name: "category and term combine", category: product.CategoryDairy, term: "cottage", wantIDs: []string{"paneer"}},
		{name: "no matches", term: "chocolate", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(c.Products(), tt.category, tt.term)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			if tt.wantIDs == nil {
				assert.Empty(t, ids)
				return
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSortProducts(t *testing.T) {
	c := loadTestCatalog(t)

	tests := []struct {
		name    string
		key     SortKey
		wantIDs []string
	}{
		{name: "name ascending", key: SortNameAsc, wantIDs: []string{"rice", "milk", "tomato", "paneer"}},
		{name: "name descending", key: SortNameDesc, wantIDs: []string{"paneer", "tomato", "milk", "rice"}},
		{name: "price ascending", key: SortPriceAsc, wantIDs: []string{"milk", "tomato", "paneer", "rice"}},
		{name: "price descending", key: SortPriceDesc, wantIDs: []string{"rice", "paneer", "tomato", "milk"}},
		{name: "unknown key keeps order", key: "rating", wantIDs: []string{"tomato", "milk", "paneer", "rice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := c.Products()
			SortProducts(view, tt.key)
			ids := make([]string, len(view))
			for i, p := range view {
				ids[i] = p.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
