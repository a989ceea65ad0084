package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/xenking/kirana-storefront/internal/domain/cart"
	"github.com/xenking/kirana-storefront/internal/domain/order"
	"github.com/xenking/kirana-storefront/internal/domain/product"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func sampleOrder() *order.Order {
	return &order.Order{
		ID:        "PK-2025-12345642",
		CreatedAt: time.Date(2025, time.March, 10, 15, 4, 5, 0, time.UTC),
		Customer: order.Customer{
			FirstName: "Asha", LastName: "Patil",
			Email: "asha@example.com", Phone: "9123456789",
		},
		Delivery: order.Delivery{
			Address: "12 MG Road", Area: "Shivajinagar", Pincode: "411001",
			Landmark: "Near the temple",
			Date:     time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
			Slot:     order.SlotMorning,
		},
		Payment: order.PaymentCOD,
		Items: []cart.LineItem{
			{ProductID: "rice", Name: "Basmati Rice", Price: d("40"), Unit: "1 kg",
				Category: product.CategoryGroceries, Quantity: 3},
			{ProductID: "milk", Name: "Cow Milk", Price: d("25"), Unit: "1 litre",
				Category: product.CategoryDairy, Quantity: 2},
		},
		Totals: order.Totals{
			Subtotal: d("170"), DeliveryFee: d("50"), GrandTotal: d("220"),
		},
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "PatilKirana_Order_PK-2025-12345642.txt", Filename(sampleOrder()))
}

func TestRender(t *testing.T) {
	got := Render(sampleOrder())

	assert.True(t, strings.HasPrefix(got, "PATIL KIRANA - ORDER RECEIPT\n============================\n"))

	for _, want := range []string{
		"Order ID: PK-2025-12345642\n",
		"Order Date: 10 March 2025\n",
		"Delivery Date: 12 March 2025\n",
		"Delivery Time: Morning (8:00 AM - 12:00 PM)\n",
		"Name: Asha Patil\n",
		"Email: asha@example.com\n",
		"Phone: 9123456789\n",
		"12 MG Road\nShivajinagar\nPune, Maharashtra 411001\n",
		"Landmark: Near the temple\n",
		"Basmati Rice (1 kg) - Qty: 3 - ₹120.00\n",
		"Cow Milk (1 litre) - Qty: 2 - ₹50.00\n",
		"Subtotal: ₹170.00\n",
		"Delivery Charges: ₹50.00\n",
		"Total: ₹220.00\n",
		"Payment Method: Cash on Delivery\n",
		"Thank you for shopping with Patil Kirana!\n",
		"Contact: +91 98765 43210\n",
	} {
		assert.Contains(t, got, want)
	}
}

func TestRender_FreeDelivery(t *testing.T) {
	o := sampleOrder()
	o.Totals = order.Totals{Subtotal: d("600"), DeliveryFee: decimal.Zero, GrandTotal: d("600")}

	got := Render(o)
	assert.Contains(t, got, "Delivery Charges: FREE\n")
	assert.NotContains(t, got, "Delivery Charges: ₹")
}

func TestRender_NoLandmark(t *testing.T) {
	o := sampleOrder()
	o.Delivery.Landmark = ""

	assert.NotContains(t, Render(o), "Landmark:")
}

func TestRender_ItemsInCartOrder(t *testing.T) {
	got := Render(sampleOrder())

	rice := strings.Index(got, "Basmati Rice")
	milk := strings.Index(got, "Cow Milk")
	assert.True(t, rice >= 0 && milk > rice, "items must keep cart order")
}
