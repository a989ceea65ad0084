package app

import (
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the storefront configuration, loadable from environment
// variables (KIRANA_ prefix) or YAML config files. Command arguments are
// parsed separately per subcommand.
type Config struct {
	StoreDir     string        `default:".kirana" usage:"directory for the local session store"`
	CatalogURL   string        `usage:"product feed URL (KIRANA_CATALOG_URL)"`
	CatalogCache string        `default:"data/products.json" usage:"local product feed file, used when no URL is set (.gz supported)"`
	HTTPTimeout  time.Duration `default:"10s" usage:"catalog fetch timeout"`
}

// LoadConfig loads configuration from environment variables and YAML files.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "KIRANA",
		SkipFlags: true,
		Files:     []string{"config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}
