package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/kirana-storefront/internal/domain/product"
)

// Free delivery applies at or above the threshold; below it a flat charge is
// added. Amounts are INR major units.
var (
	FreeDeliveryThreshold = decimal.NewFromInt(500)
	DeliveryCharge        = decimal.NewFromInt(50)
)

// LineItem is one product-and-quantity entry in the cart. Display and pricing
// fields are copied from the catalog product at add time, so later catalog
// changes never affect an existing cart.
type LineItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Image     string
	Category  product.Category
	Unit      string
	Quantity  int
}

// Total returns price * quantity for this line.
func (li LineItem) Total() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Repository persists the cart between sessions.
type Repository interface {
	// Load returns the stored cart, nil when no cart was saved yet.
	Load(ctx context.Context) ([]LineItem, error)
	// Save replaces the stored cart with the given items.
	Save(ctx context.Context, items []LineItem) error
}

// Summary is the read-side cart state handed to the display on refresh.
type Summary struct {
	Items       []LineItem
	ItemCount   int
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	GrandTotal  decimal.Decimal
}

// Notification is a transient "added to cart" event for the display layer.
type Notification struct {
	ID          uuid.UUID
	ProductName string
}

// Display renders cart state. Calls are best-effort: the engine recovers and
// logs panics instead of letting display failures reach cart mutations.
type Display interface {
	RefreshCart(Summary)
	Notify(Notification)
}

// Engine owns the mutable line-item collection. Insertion order is retained
// for display. At most one line item exists per product identifier.
type Engine struct {
	items   []LineItem
	repo    Repository
	display Display
	lg      *zap.Logger
}

// NewEngine loads any persisted cart and refreshes the display. A missing or
// unreadable stored cart starts the session empty; load problems are logged,
// never returned.
func NewEngine(ctx context.Context, repo Repository, display Display, lg *zap.Logger) *Engine {
	e := &Engine{repo: repo, display: display, lg: lg}

	items, err := repo.Load(ctx)
	if err != nil {
		lg.Warn("cart load failed, starting empty", zap.Error(err))
	} else {
		e.items = items
	}

	e.refresh()
	return e
}

// Add puts one unit of the product into the cart: an existing line item is
// incremented by exactly 1, otherwise a new line with quantity 1 is appended.
// The cart is persisted, the display refreshed, and an "added" notification
// emitted.
func (e *Engine) Add(ctx context.Context, p product.Product) {
	if li := e.find(p.ID); li != nil {
		li.Quantity++
	} else {
		e.items = append(e.items, LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
			Category:  p.Category,
			Unit:      p.Unit,
			Quantity:  1,
		})
	}

	e.persist(ctx)
	e.refresh()
	e.notify(p.Name)
}

// Remove deletes the line item with the given product id. Removing an absent
// id is a no-op, not an error.
func (e *Engine) Remove(ctx context.Context, productID string) {
	kept := e.items[:0]
	for _, li := range e.items {
		if li.ProductID != productID {
			kept = append(kept, li)
		}
	}
	e.items = kept

	e.persist(ctx)
	e.refresh()
}

// SetQuantity sets the line item's quantity to n (absolute, not a delta).
// n <= 0 removes the line. An absent id is a no-op.
func (e *Engine) SetQuantity(ctx context.Context, productID string, n int) {
	li := e.find(productID)
	if li == nil {
		return
	}
	if n <= 0 {
		e.Remove(ctx, productID)
		return
	}

	li.Quantity = n
	e.persist(ctx)
	e.refresh()
}

// Clear empties the cart.
func (e *Engine) Clear(ctx context.Context) {
	e.items = nil
	e.persist(ctx)
	e.refresh()
}

// Items returns a snapshot copy of the ordered line items.
func (e *Engine) Items() []LineItem {
	out := make([]LineItem, len(e.items))
	copy(out, e.items)
	return out
}

// Subtotal is the sum of price * quantity over all line items.
func (e *Engine) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range e.items {
		total = total.Add(li.Total())
	}
	return total
}

// ItemCount is the sum of quantities, not the distinct line count.
func (e *Engine) ItemCount() int {
	count := 0
	for _, li := range e.items {
		count += li.Quantity
	}
	return count
}

// DeliveryFee is zero at or above the free-delivery threshold, otherwise the
// flat delivery charge.
func (e *Engine) DeliveryFee() decimal.Decimal {
	if e.Subtotal().GreaterThanOrEqual(FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return DeliveryCharge
}

// GrandTotal is subtotal plus delivery fee.
func (e *Engine) GrandTotal() decimal.Decimal {
	return e.Subtotal().Add(e.DeliveryFee())
}

// Summary snapshots the full read-side state for presentation adapters.
func (e *Engine) Summary() Summary {
	return Summary{
		Items:       e.Items(),
		ItemCount:   e.ItemCount(),
		Subtotal:    e.Subtotal(),
		DeliveryFee: e.DeliveryFee(),
		GrandTotal:  e.GrandTotal(),
	}
}

func (e *Engine) find(productID string) *LineItem {
	for i := range e.items {
		if e.items[i].ProductID == productID {
			return &e.items[i]
		}
	}
	return nil
}

// persist writes the full cart back to storage synchronously. Writes are
// best-effort: failures are logged, not surfaced.
func (e *Engine) persist(ctx context.Context) {
	if err := e.repo.Save(ctx, e.items); err != nil {
		e.lg.Error("cart save failed", zap.Error(err))
	}
}

func (e *Engine) refresh() {
	if e.display == nil {
		return
	}
	defer e.recoverDisplay("refresh")
	e.display.RefreshCart(e.Summary())
}

func (e *Engine) notify(productName string) {
	if e.display == nil {
		return
	}
	defer e.recoverDisplay("notify")
	e.display.Notify(Notification{ID: uuid.New(), ProductName: productName})
}

func (e *Engine) recoverDisplay(op string) {
	if r := recover(); r != nil {
		e.lg.Error("display call panicked", zap.String("op", op), zap.Any("panic", r))
	}
}
