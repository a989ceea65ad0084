package localstore

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/kirana-storefront/internal/domain/cart"
	"github.com/xenking/kirana-storefront/internal/domain/order"
	"github.com/xenking/kirana-storefront/internal/domain/product"
)

// Wire shapes mirror the storefront's stored JSON: the cart is an array of
// line-item objects, the order an object with customer/delivery/payment/
// items/totals sections.

func encodeDecimal(e *jx.Encoder, d decimal.Decimal) {
	e.Num(jx.Num(d.String()))
}

func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(n.String())
}

func encodeLineItems(e *jx.Encoder, items []cart.LineItem) {
	e.Arr(func(e *jx.Encoder) {
		for _, li := range items {
			encodeLineItem(e, li)
		}
	})
}

func encodeLineItem(e *jx.Encoder, li cart.LineItem) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(li.ProductID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(li.Name) })
		e.Field("price", func(e *jx.Encoder) { encodeDecimal(e, li.Price) })
		e.Field("image", func(e *jx.Encoder) { e.Str(li.Image) })
		e.Field("category", func(e *jx.Encoder) { e.Str(string(li.Category)) })
		e.Field("unit", func(e *jx.Encoder) { e.Str(li.Unit) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(li.Quantity) })
	})
}

func decodeLineItems(d *jx.Decoder) ([]cart.LineItem, error) {
	var items []cart.LineItem
	err := d.Arr(func(d *jx.Decoder) error {
		li, err := decodeLineItem(d)
		if err != nil {
			return err
		}
		items = append(items, li)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func decodeLineItem(d *jx.Decoder) (cart.LineItem, error) {
	var li cart.LineItem
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			li.ProductID, err = d.Str()
		case "name":
			li.Name, err = d.Str()
		case "price":
			li.Price, err = decodeDecimal(d)
		case "image":
			li.Image, err = d.Str()
		case "category":
			var raw string
			if raw, err = d.Str(); err == nil {
				li.Category, err = product.ParseCategory(raw)
			}
		case "unit":
			li.Unit, err = d.Str()
		case "quantity":
			li.Quantity, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
	return li, err
}

func encodeOrder(e *jx.Encoder, o *order.Order) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("orderId", func(e *jx.Encoder) { e.Str(o.ID) })
		e.Field("orderDate", func(e *jx.Encoder) { e.Str(o.CreatedAt.Format(time.RFC3339)) })
		e.Field("customer", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("firstName", func(e *jx.Encoder) { e.Str(o.Customer.FirstName) })
				e.Field("lastName", func(e *jx.Encoder) { e.Str(o.Customer.LastName) })
				e.Field("email", func(e *jx.Encoder) { e.Str(o.Customer.Email) })
				e.Field("phone", func(e *jx.Encoder) { e.Str(o.Customer.Phone) })
			})
		})
		e.Field("delivery", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("address", func(e *jx.Encoder) { e.Str(o.Delivery.Address) })
				e.Field("area", func(e *jx.Encoder) { e.Str(o.Delivery.Area) })
				e.Field("pincode", func(e *jx.Encoder) { e.Str(o.Delivery.Pincode) })
				e.Field("landmark", func(e *jx.Encoder) { e.Str(o.Delivery.Landmark) })
				e.Field("date", func(e *jx.Encoder) { e.Str(o.Delivery.Date.Format("2006-01-02")) })
				e.Field("time", func(e *jx.Encoder) { e.Str(string(o.Delivery.Slot)) })
				e.Field("notes", func(e *jx.Encoder) { e.Str(o.Delivery.Notes) })
			})
		})
		e.Field("payment", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("method", func(e *jx.Encoder) { e.Str(string(o.Payment)) })
			})
		})
		e.Field("items", func(e *jx.Encoder) { encodeLineItems(e, o.Items) })
		e.Field("totals", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("subtotal", func(e *jx.Encoder) { encodeDecimal(e, o.Totals.Subtotal) })
				e.Field("deliveryCharges", func(e *jx.Encoder) { encodeDecimal(e, o.Totals.DeliveryFee) })
				e.Field("total", func(e *jx.Encoder) { encodeDecimal(e, o.Totals.GrandTotal) })
			})
		})
	})
}

func decodeOrder(d *jx.Decoder) (*order.Order, error) {
	var o order.Order
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "orderId":
			o.ID, err = d.Str()
		case "orderDate":
			var raw string
			if raw, err = d.Str(); err == nil {
				o.CreatedAt, err = time.Parse(time.RFC3339, raw)
			}
		case "customer":
			err = decodeCustomer(d, &o.Customer)
		case "delivery":
			err = decodeDelivery(d, &o.Delivery)
		case "payment":
			err = d.Obj(func(d *jx.Decoder, key string) error {
				if key != "method" {
					return d.Skip()
				}
				raw, err := d.Str()
				if err != nil {
					return err
				}
				o.Payment, err = order.ParsePaymentMethod(raw)
				return err
			})
		case "items":
			o.Items, err = decodeLineItems(d)
		case "totals":
			err = decodeTotals(d, &o.Totals)
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if o.ID == "" {
		return nil, errors.New("order payload missing orderId")
	}
	return &o, nil
}

func decodeCustomer(d *jx.Decoder, c *order.Customer) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "firstName":
			c.FirstName, err = d.Str()
		case "lastName":
			c.LastName, err = d.Str()
		case "email":
			c.Email, err = d.Str()
		case "phone":
			c.Phone, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decodeDelivery(d *jx.Decoder, dl *order.Delivery) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "address":
			dl.Address, err = d.Str()
		case "area":
			dl.Area, err = d.Str()
		case "pincode":
			dl.Pincode, err = d.Str()
		case "landmark":
			dl.Landmark, err = d.Str()
		case "date":
			var raw string
			if raw, err = d.Str(); err == nil {
				dl.Date, err = time.Parse("2006-01-02", raw)
			}
		case "time":
			var raw string
			if raw, err = d.Str(); err == nil {
				dl.Slot, err = order.ParseTimeSlot(raw)
			}
		case "notes":
			dl.Notes, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decodeTotals(d *jx.Decoder, t *order.Totals) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "subtotal":
			t.Subtotal, err = decodeDecimal(d)
		case "deliveryCharges":
			t.DeliveryFee, err = decodeDecimal(d)
		case "total":
			t.GrandTotal, err = decodeDecimal(d)
		default:
			err = d.Skip()
		}
		return err
	})
}
