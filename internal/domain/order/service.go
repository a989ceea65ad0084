package order

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/xenking/kirana-storefront/internal/domain/cart"
)

// ErrEmptyCart is returned when checkout is attempted with zero items. The
// caller recovers by sending the user back to the catalog.
var ErrEmptyCart = errors.New("cart is empty")

// FieldError describes a single missing or malformed checkout field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates per-field checkout failures. Order placement is
// halted; the cart and the form input are left untouched.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("checkout validation failed: %s", strings.Join(names, ", "))
}

// CheckoutForm is the raw checkout input prior to validation. All values are
// the field texts as submitted; the service trims and validates them.
type CheckoutForm struct {
	FirstName     string `form:"firstName" validate:"required"`
	LastName      string `form:"lastName" validate:"required"`
	Email         string `form:"email" validate:"required,storemail"`
	Phone         string `form:"phone" validate:"required,inmobile"`
	Address       string `form:"address" validate:"required"`
	Area          string `form:"area" validate:"required"`
	Pincode       string `form:"pincode" validate:"required,punepin"`
	Landmark      string `form:"landmark"`
	DeliveryDate  string `form:"deliveryDate" validate:"required"`
	DeliveryTime  string `form:"deliveryTime" validate:"required"`
	Notes         string `form:"notes"`
	PaymentMethod string `form:"paymentMethod" validate:"required"`
}

func (f CheckoutForm) trimmed() CheckoutForm {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.Area = strings.TrimSpace(f.Area)
	f.Pincode = strings.TrimSpace(f.Pincode)
	f.Landmark = strings.TrimSpace(f.Landmark)
	f.DeliveryDate = strings.TrimSpace(f.DeliveryDate)
	f.DeliveryTime = strings.TrimSpace(f.DeliveryTime)
	f.Notes = strings.TrimSpace(f.Notes)
	f.PaymentMethod = strings.TrimSpace(f.PaymentMethod)
	return f
}

// Cart is the slice of the cart engine the assembler needs: read accessors
// for the snapshot and totals, plus Clear on successful placement.
type Cart interface {
	Items() []cart.LineItem
	ItemCount() int
	Subtotal() decimal.Decimal
	DeliveryFee() decimal.Decimal
	GrandTotal() decimal.Decimal
	Clear(ctx context.Context)
}

// Service assembles immutable order snapshots from the cart and the checkout
// form.
type Service struct {
	cart     Cart
	orders   Repository
	validate *validator.Validate

	now     func() time.Time
	randInt func(n int) int
}

// NewService creates an order Service over the given cart and order store.
func NewService(c Cart, orders Repository) *Service {
	return &Service{
		cart:     c,
		orders:   orders,
		validate: newFormValidator(),
		now:      time.Now,
		randInt:  rand.Intn,
	}
}

// PlaceOrder validates the checkout form, snapshots the cart and its totals
// into a new Order, persists it, and clears the cart. The returned order is
// never mutated afterwards.
func (s *Service) PlaceOrder(ctx context.Context, form CheckoutForm) (*Order, error) {
	if s.cart.ItemCount() == 0 {
		return nil, ErrEmptyCart
	}

	form = form.trimmed()

	delivery, payment, verr := s.parseForm(form)
	if verr != nil {
		return nil, verr
	}

	now := s.now()
	o := &Order{
		ID:        s.newOrderID(now),
		CreatedAt: now,
		Customer: Customer{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Email:     form.Email,
			Phone:     form.Phone,
		},
		Delivery: delivery,
		Payment:  payment,
		Items:    s.cart.Items(),
		Totals: Totals{
			Subtotal:    s.cart.Subtotal(),
			DeliveryFee: s.cart.DeliveryFee(),
			GrandTotal:  s.cart.GrandTotal(),
		},
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, errors.Wrap(err, "save order")
	}

	s.cart.Clear(ctx)

	return o, nil
}

// parseForm runs tag validation and converts the scheduling and payment
// fields to their typed forms, accumulating every field failure so the user
// gets feedback for the whole form at once.
func (s *Service) parseForm(form CheckoutForm) (Delivery, PaymentMethod, error) {
	var fields []FieldError

	if err := s.validate.Struct(form); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return Delivery{}, "", errors.Wrap(err, "validate form")
		}
		for _, fe := range ves {
			fields = append(fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
	}

	failed := func(name string) bool {
		for _, f := range fields {
			if f.Field == name {
				return true
			}
		}
		return false
	}

	var date time.Time
	if !failed("deliveryDate") {
		var err error
		date, err = time.Parse("2006-01-02", form.DeliveryDate)
		if err != nil {
			fields = append(fields, FieldError{Field: "deliveryDate", Message: "please enter a valid date (YYYY-MM-DD)"})
		} else if tomorrow := s.now().AddDate(0, 0, 1); date.Before(tomorrow.Truncate(24 * time.Hour)) {
			fields = append(fields, FieldError{Field: "deliveryDate", Message: "delivery starts tomorrow at the earliest"})
		}
	}

	var slot TimeSlot
	if !failed("deliveryTime") {
		var err error
		if slot, err = ParseTimeSlot(form.DeliveryTime); err != nil {
			fields = append(fields, FieldError{Field: "deliveryTime", Message: "please choose morning, afternoon or evening"})
		}
	}

	var payment PaymentMethod
	if !failed("paymentMethod") {
		var err error
		if payment, err = ParsePaymentMethod(form.PaymentMethod); err != nil {
			fields = append(fields, FieldError{Field: "paymentMethod", Message: "please choose cod or upi"})
		}
	}

	if len(fields) > 0 {
		return Delivery{}, "", &ValidationError{Fields: fields}
	}

	return Delivery{
		Address:  form.Address,
		Area:     form.Area,
		Pincode:  form.Pincode,
		Landmark: form.Landmark,
		Date:     date,
		Slot:     slot,
		Notes:    form.Notes,
	}, payment, nil
}

// newOrderID builds an id of the form PK-<year>-<last six digits of unix
// millis><random 0..999>. Uniqueness is probabilistic, which is acceptable
// for this single-tenant flow: a later order replaces the stored snapshot.
func (s *Service) newOrderID(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return fmt.Sprintf("PK-%d-%s%d", now.Year(), ms, s.randInt(1000))
}
