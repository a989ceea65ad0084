package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xenking/kirana-storefront/internal/domain/cart"
	"github.com/xenking/kirana-storefront/internal/domain/order"
	"github.com/xenking/kirana-storefront/internal/domain/product"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func testItems() []cart.LineItem {
	return []cart.LineItem{
		{ProductID: "rice", Name: "Basmati Rice", Price: d("120"), Image: "img/rice.jpg",
			Category: product.CategoryGroceries, Unit: "1 kg", Quantity: 3},
		{ProductID: "milk", Name: "Cow Milk", Price: d("25.5"), Image: "img/milk.jpg",
			Category: product.CategoryDairy, Unit: "1 litre", Quantity: 2},
	}
}

func testOrder() *order.Order {
	return &order.Order{
		ID:        "PK-2025-123456789",
		CreatedAt: time.Date(2025, time.March, 10, 15, 4, 5, 0, time.UTC),
		Customer: order.Customer{
			FirstName: "Asha", LastName: "Patil",
			Email: "asha@example.com", Phone: "9123456789",
		},
		Delivery: order.Delivery{
			Address: "12 MG Road", Area: "Shivajinagar", Pincode: "411001",
			Landmark: "Near the temple",
			Date:     time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
			Slot:     order.SlotMorning, Notes: "Ring twice",
		},
		Payment: order.PaymentCOD,
		Items:   testItems(),
		Totals: order.Totals{
			Subtotal: d("411"), DeliveryFee: d("50"), GrandTotal: d("461"),
		},
	}
}

// --- Store ---

func TestStore_GetAbsentKey(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("k", []byte(`{"a":1}`)))
	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)

	// Set replaces, never appends.
	require.NoError(t, s.Set("k", []byte(`{}`)))
	got, err = s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), got)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set("k", []byte("x")))

	require.NoError(t, s.Delete("k"))
	require.NoError(t, s.Delete("k"))

	_, err := s.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

// --- CartRepository ---

func TestCartRepository_LoadAbsentIsEmpty(t *testing.T) {
	repo := NewCartRepository(newTestStore(t))

	items, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(newTestStore(t))
	want := testItems()

	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCartRepository_SaveEmptyClearsItems(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(newTestStore(t))
	require.NoError(t, repo.Save(ctx, testItems()))

	require.NoError(t, repo.Save(ctx, nil))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCartRepository_CorruptPayloadIsError(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(cartKey, []byte("not json at all")))
	repo := NewCartRepository(store)

	_, err := repo.Load(context.Background())
	require.Error(t, err)
}

func TestCartRepository_UsesLocalStorageKey(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	repo := NewCartRepository(store)

	require.NoError(t, repo.Save(context.Background(), testItems()))

	_, statErr := os.Stat(filepath.Join(dir, "patilKiranaCart.json"))
	assert.NoError(t, statErr)
}

// --- OrderRepository ---

func TestOrderRepository_CurrentAbsent(t *testing.T) {
	repo := NewOrderRepository(newTestStore(t), zap.NewNop())

	_, err := repo.Current(context.Background())
	assert.ErrorIs(t, err, order.ErrNoOrder)
}

func TestOrderRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestStore(t), zap.NewNop())
	want := testOrder()

	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOrderRepository_SaveReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestStore(t), zap.NewNop())

	first := testOrder()
	require.NoError(t, repo.Save(ctx, first))

	second := testOrder()
	second.ID = "PK-2025-987654321"
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PK-2025-987654321", got.ID)
}

func TestOrderRepository_CorruptPayloadIsNoOrder(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(orderKey, []byte(`{"orderId": 42}`)))
	repo := NewOrderRepository(store, zap.NewNop())

	_, err := repo.Current(context.Background())
	assert.ErrorIs(t, err, order.ErrNoOrder)
}

func TestOrderRepository_MissingIDIsNoOrder(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(orderKey, []byte(`{"customer": {}}`)))
	repo := NewOrderRepository(store, zap.NewNop())

	_, err := repo.Current(context.Background())
	assert.ErrorIs(t, err, order.ErrNoOrder)
}
