package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/kirana-storefront/internal/domain/cart"
)

// ErrNoOrder is returned when no order snapshot is stored.
var ErrNoOrder = errors.New("no order found")

// TimeSlot is the closed set of delivery windows.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

// ParseTimeSlot validates a raw delivery-time value.
func ParseTimeSlot(s string) (TimeSlot, error) {
	switch t := TimeSlot(s); t {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return t, nil
	default:
		return "", errors.Errorf("unknown delivery time slot %q", s)
	}
}

// DisplayName maps a time slot to its storefront label.
func (t TimeSlot) DisplayName() string {
	switch t {
	case SlotMorning:
		return "Morning (8:00 AM - 12:00 PM)"
	case SlotAfternoon:
		return "Afternoon (12:00 PM - 4:00 PM)"
	case SlotEvening:
		return "Evening (4:00 PM - 8:00 PM)"
	}
	return string(t)
}

// PaymentMethod is the closed set of supported payment options.
type PaymentMethod string

const (
	PaymentCOD PaymentMethod = "cod"
	PaymentUPI PaymentMethod = "upi"
)

// ParsePaymentMethod validates a raw payment-method value.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch p := PaymentMethod(s); p {
	case PaymentCOD, PaymentUPI:
		return p, nil
	default:
		return "", errors.Errorf("unknown payment method %q", s)
	}
}

// DisplayName maps a payment method to its storefront label.
func (p PaymentMethod) DisplayName() string {
	switch p {
	case PaymentCOD:
		return "Cash on Delivery"
	case PaymentUPI:
		return "UPI Payment"
	}
	return string(p)
}

// Customer holds the contact fields captured at checkout.
type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Delivery holds the address and scheduling fields captured at checkout.
type Delivery struct {
	Address  string
	Area     string
	Pincode  string
	Landmark string // optional
	Date     time.Time
	Slot     TimeSlot
	Notes    string // optional
}

// Totals is the pricing triple computed from the cart at submission time.
type Totals struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	GrandTotal  decimal.Decimal
}

// Order is the immutable snapshot created at checkout. It is decoupled from
// further cart mutation: items and totals are value copies.
type Order struct {
	ID        string
	CreatedAt time.Time
	Customer  Customer
	Delivery  Delivery
	Payment   PaymentMethod
	Items     []cart.LineItem
	Totals    Totals
}

// Repository persists the current order snapshot for the confirmation view.
type Repository interface {
	// Save stores the order, replacing any previous snapshot.
	Save(ctx context.Context, o *Order) error
	// Current returns the stored order, or ErrNoOrder when absent.
	Current(ctx context.Context) (*Order, error)
}
