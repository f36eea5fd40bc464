// internal/config/config.go
//
// This package handles configuration and the .techshop directory structure.
// Every directory the storefront runs from gets a .techshop/ folder holding
// persisted state, logs, and the project config file.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ShopDirName is the name of the directory we create per project.
	ShopDirName = ".techshop"

	defaultStoreName = "TechShop"
	defaultCurrency  = "$"
)

const defaultShopConfigYAML = `# techshop configuration
version: 1

store:
  name: TechShop
  currency: "$"
  # Path to a catalog override file (YAML). Leave empty for the built-in catalog.
  # catalog: catalog.yaml

checkout:
  # When true, checkout asks for confirmation before placing the order.
  # The default matches the classic flow: the order summary is an
  # acknowledgement only and the cart always clears.
  confirm: false

server:
  host: 127.0.0.1
  port: 3000
  static_dir: public
`

// StoreConfig describes storefront presentation settings.
type StoreConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
	Catalog  string `yaml:"catalog,omitempty"`
}

// CheckoutConfig captures checkout behavior preferences.
type CheckoutConfig struct {
	Confirm bool `yaml:"confirm"`
}

// ServerConfig models the asset server section of config.yaml.
type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
}

// ShopConfig models .techshop/config.yaml.
type ShopConfig struct {
	Version  int            `yaml:"version"`
	Store    StoreConfig    `yaml:"store"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Server   ServerConfig   `yaml:"server"`
}

// Config holds the runtime configuration for the storefront.
type Config struct {
	// WorkDir is the directory the storefront was launched from.
	WorkDir string

	// ShopDir is WorkDir/.techshop
	ShopDir string

	Shop ShopConfig
}

// InitShopDir creates the .techshop directory structure in the given
// working directory. This is called when the TUI starts up.
//
// Structure created:
// .techshop/
// ├── state/        <- Persisted cart snapshots
// └── logs/         <- Journey log
func InitShopDir(workDir string) error {
	shopDir := filepath.Join(workDir, ShopDirName)

	dirs := []string{
		filepath.Join(shopDir, "state"),
		filepath.Join(shopDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return ensureShopConfig(filepath.Join(shopDir, "config.yaml"))
}

// New creates a Config populated from .techshop/config.yaml, falling back
// to defaults when the file is absent.
func New(workDir string) (*Config, error) {
	cfg := &Config{
		WorkDir: workDir,
		ShopDir: filepath.Join(workDir, ShopDirName),
		Shop:    defaultShopConfig(),
	}
	if err := cfg.loadShopConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// StateDir returns the directory backing the key-value store.
func (c *Config) StateDir() string {
	return filepath.Join(c.ShopDir, "state")
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.ShopDir, "logs")
}

// LogbookPath returns the journey log location.
func (c *Config) LogbookPath() string {
	return filepath.Join(c.LogsDir(), "techshop.log")
}

// ConfigPath returns the on-disk location of the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.ShopDir, "config.yaml")
}

// StoreName returns the display name for the storefront header.
func (c *Config) StoreName() string {
	return c.Shop.Store.Name
}

// Currency returns the display currency symbol.
func (c *Config) Currency() string {
	return c.Shop.Store.Currency
}

// CatalogPath returns the resolved catalog override path, or "" when the
// built-in catalog should be used.
func (c *Config) CatalogPath() string {
	return c.Shop.Store.Catalog
}

// CheckoutConfirm reports whether checkout should ask before placing the order.
func (c *Config) CheckoutConfirm() bool {
	return c.Shop.Checkout.Confirm
}

func (c *Config) loadShopConfig() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ShopConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.WorkDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Shop = parsed
	return nil
}

func defaultShopConfig() ShopConfig {
	return ShopConfig{
		Version: 1,
		Store: StoreConfig{
			Name:     defaultStoreName,
			Currency: defaultCurrency,
		},
		Server: ServerConfig{
			Host:      "127.0.0.1",
			Port:      3000,
			StaticDir: "public",
		},
	}
}

func (sc *ShopConfig) applyDefaults() {
	if sc.Version == 0 {
		sc.Version = 1
	}
	if strings.TrimSpace(sc.Store.Name) == "" {
		sc.Store.Name = defaultStoreName
	}
	if strings.TrimSpace(sc.Store.Currency) == "" {
		sc.Store.Currency = defaultCurrency
	}
	if sc.Server.Port == 0 {
		sc.Server.Port = 3000
	}
	if strings.TrimSpace(sc.Server.Host) == "" {
		sc.Server.Host = "127.0.0.1"
	}
	if strings.TrimSpace(sc.Server.StaticDir) == "" {
		sc.Server.StaticDir = "public"
	}
}

func (sc *ShopConfig) normalize(base string) {
	sc.Store.Name = strings.TrimSpace(sc.Store.Name)
	sc.Store.Currency = strings.TrimSpace(sc.Store.Currency)
	sc.Store.Catalog = resolvePath(base, sc.Store.Catalog)
	sc.Server.Host = strings.TrimSpace(sc.Server.Host)
	sc.Server.StaticDir = resolvePath(base, sc.Server.StaticDir)
}

func (sc *ShopConfig) validate() error {
	if sc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if sc.Server.Port < 0 || sc.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureShopConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultShopConfigYAML), 0o644)
}
