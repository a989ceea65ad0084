// Package display renders catalog, cart, and order state for the terminal.
// It is a pure consumer of engine state: everything it shows comes through
// the read accessors, never from engine internals.
package display

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/xenking/kirana-storefront/internal/domain/cart"
	"github.com/xenking/kirana-storefront/internal/domain/order"
	"github.com/xenking/kirana-storefront/internal/domain/product"
)

// INR formats an amount as Indian rupees with two decimal places.
func INR(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

var _ cart.Display = (*Terminal)(nil)

// Terminal implements the cart display contract on a writer.
type Terminal struct {
	out io.Writer
}

// NewTerminal returns a Terminal writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// RefreshCart prints the cart badge line after each mutation.
func (t *Terminal) RefreshCart(s cart.Summary) {
	fmt.Fprintf(t.out, "Cart: %d item(s), %s\n", s.ItemCount, INR(s.Subtotal))
}

// Notify prints the transient "added to cart" message.
func (t *Terminal) Notify(n cart.Notification) {
	fmt.Fprintf(t.out, "%s added to cart!\n", n.ProductName)
}

// RenderCart prints the full cart table with totals.
func (t *Terminal) RenderCart(s cart.Summary) {
	if len(s.Items) == 0 {
		fmt.Fprintln(t.out, "Your cart is empty. Add some products to get started!")
		return
	}

	w := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tUNIT\tQTY\tPRICE\tTOTAL")
	for _, li := range s.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", li.Name, li.Unit, li.Quantity, INR(li.Price), INR(li.Total()))
	}
	_ = w.Flush()

	fmt.Fprintf(t.out, "\nSubtotal:\t%s\n", INR(s.Subtotal))
	fmt.Fprintf(t.out, "Delivery:\t%s\n", feeLabel(s.DeliveryFee))
	fmt.Fprintf(t.out, "Total:\t\t%s\n", INR(s.GrandTotal))
}

// RenderProducts prints a filtered catalog view.
func (t *Terminal) RenderProducts(products []product.Product) {
	if len(products) == 0 {
		fmt.Fprintln(t.out, "No products found.")
		return
	}

	w := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tUNIT")
	for _, p := range products {
		price := INR(p.Price)
		if p.Discount > 0 {
			price = fmt.Sprintf("%s (%d%% OFF)", price, p.Discount)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t/%s\n", p.ID, p.Name, p.Category.DisplayName(), price, p.Unit)
	}
	_ = w.Flush()
}

// RenderOrder prints the confirmation view of a placed order.
func (t *Terminal) RenderOrder(o *order.Order) {
	fmt.Fprintf(t.out, "Order %s placed on %s\n", o.ID, o.CreatedAt.Format("2 January 2006"))
	fmt.Fprintf(t.out, "Delivery: %s, %s\n", o.Delivery.Date.Format("2 January 2006"), o.Delivery.Slot.DisplayName())
	fmt.Fprintf(t.out, "Payment: %s\n", o.Payment.DisplayName())
	fmt.Fprintf(t.out, "Customer: %s %s <%s> %s\n", o.Customer.FirstName, o.Customer.LastName, o.Customer.Email, o.Customer.Phone)
	fmt.Fprintf(t.out, "Address: %s, %s, Pune, Maharashtra %s\n", o.Delivery.Address, o.Delivery.Area, o.Delivery.Pincode)
	if o.Delivery.Landmark != "" {
		fmt.Fprintf(t.out, "Landmark: %s\n", o.Delivery.Landmark)
	}

	fmt.Fprintln(t.out)
	w := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tQTY\tPRICE\tTOTAL")
	for _, li := range o.Items {
		fmt.Fprintf(w, "%s (%s)\t%d\t%s\t%s\n", li.Name, li.Unit, li.Quantity, INR(li.Price), INR(li.Total()))
	}
	_ = w.Flush()

	fmt.Fprintf(t.out, "\nSubtotal:\t%s\n", INR(o.Totals.Subtotal))
	fmt.Fprintf(t.out, "Delivery:\t%s\n", feeLabel(o.Totals.DeliveryFee))
	fmt.Fprintf(t.out, "Total:\t\t%s\n", INR(o.Totals.GrandTotal))
}

func feeLabel(fee decimal.Decimal) string {
	if fee.IsZero() {
		return "FREE"
	}
	return INR(fee)
}
