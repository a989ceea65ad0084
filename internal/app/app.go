// Package app wires the storefront together: local store, catalog client,
// cart engine, order assembler, and terminal display are constructed once
// here and passed explicitly to the commands that need them.
package app

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/xenking/kirana-storefront/internal/catalog"
	"github.com/xenking/kirana-storefront/internal/display"
	"github.com/xenking/kirana-storefront/internal/domain/cart"
	"github.com/xenking/kirana-storefront/internal/domain/order"
	"github.com/xenking/kirana-storefront/internal/storage/localstore"
)

// metrics holds the storefront's counters.
type metrics struct {
	itemsAdded   metric.Int64Counter
	ordersPlaced metric.Int64Counter
}

func newMetrics(m *app.Metrics) (*metrics, error) {
	meter := m.MeterProvider().Meter("kirana-storefront")

	itemsAdded, err := meter.Int64Counter("storefront.cart.items_added",
		metric.WithDescription("Products added to the cart"))
	if err != nil {
		return nil, errors.Wrap(err, "items_added counter")
	}

	ordersPlaced, err := meter.Int64Counter("storefront.orders.placed",
		metric.WithDescription("Orders placed"))
	if err != nil {
		return nil, errors.Wrap(err, "orders_placed counter")
	}

	return &metrics{itemsAdded: itemsAdded, ordersPlaced: ordersPlaced}, nil
}

// Run builds all dependencies and dispatches the subcommand in args. Each
// invocation is one storefront "page visit": session state lives in the
// local store between runs.
func Run(ctx context.Context, lg *zap.Logger, m *app.Metrics, cfg *Config, args []string) error {
	store, err := localstore.New(cfg.StoreDir)
	if err != nil {
		return errors.Wrap(err, "open local store")
	}

	mx, err := newMetrics(m)
	if err != nil {
		return errors.Wrap(err, "init metrics")
	}

	term := display.NewTerminal(os.Stdout)
	engine := cart.NewEngine(ctx, localstore.NewCartRepository(store), term, lg)
	orderRepo := localstore.NewOrderRepository(store, lg)

	cmds := &commands{
		lg:      lg,
		term:    term,
		engine:  engine,
		orders:  order.NewService(engine, orderRepo),
		history: orderRepo,
		metrics: mx,
		catalog: catalog.New(catalog.Config{
			URL:       cfg.CatalogURL,
			CachePath: cfg.CatalogCache,
			Timeout:   cfg.HTTPTimeout,
		}, lg),
	}

	return cmds.dispatch(ctx, args)
}
