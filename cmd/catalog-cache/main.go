// Command catalog-cache downloads the product feed and writes it to a
// gzip-compressed local cache file, so the storefront can browse offline.
package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"

	"github.com/xenking/kirana-storefront/internal/catalog"
)

func main() {
	var (
		feedURL string
		outPath string
		timeout time.Duration
	)

	flag.StringVar(&feedURL, "url", "", "product feed URL (or KIRANA_CATALOG_URL env)")
	flag.StringVar(&outPath, "out", "data/products.json.gz", "output cache file")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "fetch timeout")
	flag.Parse()

	if feedURL == "" {
		feedURL = os.Getenv("KIRANA_CATALOG_URL")
	}
	if feedURL == "" {
		slog.Error("feed URL is required: set --url or KIRANA_CATALOG_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, feedURL, outPath, timeout); err != nil {
		slog.Error("catalog cache failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog cache written", slog.String("path", outPath))
}

func run(ctx context.Context, feedURL, outPath string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "fetch feed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read feed")
	}

	// Validate before caching so a broken feed never replaces a good cache.
	products, err := catalog.ParseProducts(data)
	if err != nil {
		return errors.Wrap(err, "validate feed")
	}
	slog.Info("feed fetched", slog.Int("products", len(products)))

	return writeGz(outPath, data)
}

func writeGz(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create cache dir")
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "catalog.*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}

	gz := pgzip.NewWriter(tmp)
	if _, err := gz.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "write cache")
	}
	if err := gz.Close(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "flush cache")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "close cache")
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "replace cache")
	}
	return nil
}
