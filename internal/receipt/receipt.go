// Package receipt renders the downloadable plain-text receipt for a placed
// order. The format is free text for humans, not machine parsing.
package receipt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xenking/kirana-storefront/internal/domain/order"
)

const dateLayout = "2 January 2006"

// Filename is the suggested download name for an order's receipt.
func Filename(o *order.Order) string {
	return fmt.Sprintf("PatilKirana_Order_%s.txt", o.ID)
}

// Render produces the receipt text.
func Render(o *order.Order) string {
	var b strings.Builder

	b.WriteString("PATIL KIRANA - ORDER RECEIPT\n")
	b.WriteString("============================\n\n")

	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&b, "Order Date: %s\n", o.CreatedAt.Format(dateLayout))
	fmt.Fprintf(&b, "Delivery Date: %s\n", o.Delivery.Date.Format(dateLayout))
	fmt.Fprintf(&b, "Delivery Time: %s\n\n", o.Delivery.Slot.DisplayName())

	b.WriteString("CUSTOMER DETAILS:\n")
	fmt.Fprintf(&b, "Name: %s %s\n", o.Customer.FirstName, o.Customer.LastName)
	fmt.Fprintf(&b, "Email: %s\n", o.Customer.Email)
	fmt.Fprintf(&b, "Phone: %s\n\n", o.Customer.Phone)

	b.WriteString("DELIVERY ADDRESS:\n")
	fmt.Fprintf(&b, "%s\n", o.Delivery.Address)
	fmt.Fprintf(&b, "%s\n", o.Delivery.Area)
	fmt.Fprintf(&b, "Pune, Maharashtra %s\n", o.Delivery.Pincode)
	if o.Delivery.Landmark != "" {
		fmt.Fprintf(&b, "Landmark: %s\n", o.Delivery.Landmark)
	}
	b.WriteString("\n")

	b.WriteString("ORDER ITEMS:\n")
	for _, li := range o.Items {
		fmt.Fprintf(&b, "%s (%s) - Qty: %d - ₹%s\n", li.Name, li.Unit, li.Quantity, li.Total().StringFixed(2))
	}
	b.WriteString("\n")

	b.WriteString("PAYMENT SUMMARY:\n")
	fmt.Fprintf(&b, "Subtotal: ₹%s\n", o.Totals.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Delivery Charges: %s\n", feeLabel(o.Totals.DeliveryFee))
	fmt.Fprintf(&b, "Total: ₹%s\n\n", o.Totals.GrandTotal.StringFixed(2))

	fmt.Fprintf(&b, "Payment Method: %s\n\n", o.Payment.DisplayName())

	b.WriteString("Thank you for shopping with Patil Kirana!\n")
	b.WriteString("Contact: +91 98765 43210\n")

	return b.String()
}

func feeLabel(fee decimal.Decimal) string {
	if fee.IsZero() {
		return "FREE"
	}
	return "₹" + fee.StringFixed(2)
}
