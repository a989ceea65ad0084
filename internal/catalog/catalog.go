// Package catalog loads and queries the product catalog. The catalog is
// fetched once per session from a static feed (HTTP or a gzip-compressed
// local cache) and held immutable in memory.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/xenking/kirana-storefront/internal/domain/product"
)

// LoadError indicates the catalog source was unreachable or returned a
// malformed payload. Callers recover by showing an empty catalog state.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog from %s: %s", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Config holds the catalog source settings.
type Config struct {
	// URL of the product feed. When empty, CachePath is read instead.
	URL string
	// CachePath is a local product feed file; ".gz" files are decompressed.
	CachePath string
	// Timeout bounds a single feed fetch.
	Timeout time.Duration
	// HTTPClient overrides the default instrumented client. Used in tests.
	HTTPClient *http.Client
}

// Client holds the session's product catalog.
type Client struct {
	cfg  Config
	http *http.Client
	lg   *zap.Logger

	group singleflight.Group

	mu       sync.RWMutex
	products []product.Product
	byID     map[string]product.Product
}

// New creates a catalog Client. No fetch happens until Load.
func New(cfg Config, lg *zap.Logger) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		}
	}
	return &Client{cfg: cfg, http: hc, lg: lg}
}

// Load fetches the product feed and replaces the in-memory catalog.
// Concurrent calls are collapsed into a single in-flight fetch.
func (c *Client) Load(ctx context.Context) error {
	_, err, _ := c.group.Do("load", func() (interface{}, error) {
		products, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}

		byID := make(map[string]product.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		c.mu.Lock()
		c.products = products
		c.byID = byID
		c.mu.Unlock()

		c.lg.Info("catalog loaded", zap.Int("products", len(products)))
		return nil, nil
	})
	return err
}

// Products returns a snapshot of the catalog in feed order.
func (c *Client) Products() []product.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]product.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given id, if present.
func (c *Client) Get(id string) (product.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	return p, ok
}

func (c *Client) fetch(ctx context.Context) ([]product.Product, error) {
	if c.cfg.URL != "" {
		return c.fetchHTTP(ctx)
	}
	return c.readCache()
}

func (c *Client) fetchHTTP(ctx context.Context) ([]product.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, &LoadError{Source: c.cfg.URL, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &LoadError{Source: c.cfg.URL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return nil, &LoadError{Source: c.cfg.URL, Err: errors.Errorf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LoadError{Source: c.cfg.URL, Err: errors.Wrap(err, "read body")}
	}

	products, err := ParseProducts(data)
	if err != nil {
		return nil, &LoadError{Source: c.cfg.URL, Err: err}
	}
	return products, nil
}

func (c *Client) readCache() ([]product.Product, error) {
	path := c.cfg.CachePath

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, &LoadError{Source: path, Err: errors.Wrap(err, "open gzip")}
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Source: path, Err: errors.Wrap(err, "read cache")}
	}

	products, err := ParseProducts(data)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return products, nil
}
