package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/xenking/kirana-storefront/internal/catalog"
	"github.com/xenking/kirana-storefront/internal/display"
	"github.com/xenking/kirana-storefront/internal/domain/cart"
	"github.com/xenking/kirana-storefront/internal/domain/order"
	"github.com/xenking/kirana-storefront/internal/domain/product"
	"github.com/xenking/kirana-storefront/internal/receipt"
)

const usage = `usage: storefront <command> [flags]

commands:
  products   list the catalog (filter, search, sort)
  add        add a product to the cart by id
  remove     remove a product from the cart
  qty        set a line item's quantity
  cart       show the cart
  clear      empty the cart
  checkout   place an order
  confirm    show the placed order
  receipt    write the order receipt to a file
`

// commands holds the wired dependencies shared by all subcommands.
type commands struct {
	lg      *zap.Logger
	term    *display.Terminal
	engine  *cart.Engine
	catalog *catalog.Client
	orders  *order.Service
	history order.Repository
	metrics *metrics
}

func (c *commands) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "products":
		return c.products(ctx, rest)
	case "add":
		return c.add(ctx, rest)
	case "remove":
		return c.remove(ctx, rest)
	case "qty":
		return c.qty(ctx, rest)
	case "cart":
		c.term.RenderCart(c.engine.Summary())
		return nil
	case "clear":
		c.engine.Clear(ctx)
		return nil
	case "checkout":
		return c.checkout(ctx, rest)
	case "confirm":
		return c.confirm(ctx)
	case "receipt":
		return c.receipt(ctx, rest)
	default:
		fmt.Fprint(os.Stderr, usage)
		return errors.Errorf("unknown command %q", cmd)
	}
}

func (c *commands) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	category := fs.String("category", "", "filter by category (vegetables|fruits|dairy|groceries|spices)")
	search := fs.String("search", "", "search in product names and descriptions")
	sortKey := fs.String("sort", "", "sort order (name-asc|name-desc|price-asc|price-desc)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cat product.Category
	if *category != "" {
		var err error
		if cat, err = product.ParseCategory(*category); err != nil {
			return err
		}
	}

	if err := c.loadCatalog(ctx); err != nil {
		return err
	}

	view := catalog.Filter(c.catalog.Products(), cat, *search)
	catalog.SortProducts(view, catalog.SortKey(*sortKey))
	c.term.RenderProducts(view)
	return nil
}

func (c *commands) add(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: add <product-id>...")
	}

	if err := c.loadCatalog(ctx); err != nil {
		return err
	}

	for _, id := range args {
		p, ok := c.catalog.Get(id)
		if !ok {
			return errors.Errorf("product %q not found", id)
		}
		c.engine.Add(ctx, p)
		c.metrics.itemsAdded.Add(ctx, 1,
			metric.WithAttributes(attribute.String("category", string(p.Category))))
	}
	return nil
}

func (c *commands) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: remove <product-id>")
	}
	c.engine.Remove(ctx, args[0])
	return nil
}

func (c *commands) qty(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: qty <product-id> <quantity>")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Wrap(err, "parse quantity")
	}
	c.engine.SetQuantity(ctx, args[0], n)
	return nil
}

func (c *commands) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	var form order.CheckoutForm
	fs.StringVar(&form.FirstName, "first", "", "first name")
	fs.StringVar(&form.LastName, "last", "", "last name")
	fs.StringVar(&form.Email, "email", "", "email address")
	fs.StringVar(&form.Phone, "phone", "", "10-digit mobile number")
	fs.StringVar(&form.Address, "address", "", "street address")
	fs.StringVar(&form.Area, "area", "", "area / locality")
	fs.StringVar(&form.Pincode, "pincode", "", "6-digit Pune pincode")
	fs.StringVar(&form.Landmark, "landmark", "", "landmark (optional)")
	fs.StringVar(&form.DeliveryDate, "date", "", "delivery date (YYYY-MM-DD)")
	fs.StringVar(&form.DeliveryTime, "time", "", "delivery slot (morning|afternoon|evening)")
	fs.StringVar(&form.Notes, "notes", "", "delivery notes (optional)")
	fs.StringVar(&form.PaymentMethod, "payment", "", "payment method (cod|upi)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	o, err := c.orders.PlaceOrder(ctx, form)
	if err != nil {
		return c.reportCheckoutError(err)
	}

	c.metrics.ordersPlaced.Add(ctx, 1,
		metric.WithAttributes(attribute.String("payment", string(o.Payment))))

	fmt.Printf("Order %s placed successfully!\n", o.ID)
	c.term.RenderOrder(o)
	return nil
}

// reportCheckoutError turns the checkout error taxonomy into user-facing
// feedback. Validation failures keep the cart and form input intact.
func (c *commands) reportCheckoutError(err error) error {
	if errors.Is(err, order.ErrEmptyCart) {
		fmt.Println("Your cart is empty. Please add some products first.")
		fmt.Println("Run `storefront products` to browse the catalog.")
		return err
	}

	var verr *order.ValidationError
	if errors.As(err, &verr) {
		fmt.Println("Please fill in all required fields correctly:")
		for _, f := range verr.Fields {
			fmt.Printf("  %s: %s\n", f.Field, f.Message)
		}
		return err
	}

	return err
}

func (c *commands) confirm(ctx context.Context) error {
	o, err := c.history.Current(ctx)
	if errors.Is(err, order.ErrNoOrder) {
		fmt.Println("No order found.")
		return nil
	}
	if err != nil {
		return err
	}
	c.term.RenderOrder(o)
	return nil
}

func (c *commands) receipt(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("receipt", flag.ContinueOnError)
	out := fs.String("o", "", "output path (default: PatilKirana_Order_<id>.txt)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	o, err := c.history.Current(ctx)
	if errors.Is(err, order.ErrNoOrder) {
		fmt.Println("No order found.")
		return nil
	}
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = receipt.Filename(o)
	}
	if err := os.WriteFile(path, []byte(receipt.Render(o)), 0o644); err != nil {
		return errors.Wrap(err, "write receipt")
	}

	fmt.Printf("Receipt written to %s\n", path)
	return nil
}

// loadCatalog fetches the product feed, downgrading failures to an empty
// catalog message so a broken feed never crashes a session.
func (c *commands) loadCatalog(ctx context.Context) error {
	if err := c.catalog.Load(ctx); err != nil {
		var lerr *catalog.LoadError
		if errors.As(err, &lerr) {
			c.lg.Warn("catalog unavailable", zap.String("source", lerr.Source), zap.Error(lerr.Err))
			fmt.Println("Failed to load products. Please try again later.")
		}
		return err
	}
	return nil
}
