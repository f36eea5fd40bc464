package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDefaultsWhenMissing(t *testing.T) {
	workDir := t.TempDir()
	c, err := New(workDir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if c.Shop.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Shop.Version)
	}
	if c.StoreName() != defaultStoreName {
		t.Fatalf("expected default store name %q, got %q", defaultStoreName, c.StoreName())
	}
	if c.Shop.Server.Port != 3000 {
		t.Fatalf("expected default port 3000, got %d", c.Shop.Server.Port)
	}
	if c.CheckoutConfirm() {
		t.Fatalf("checkout confirmation must be off by default")
	}
}

func TestNewParsesYaml(t *testing.T) {
	workDir := t.TempDir()
	shopDir := filepath.Join(workDir, ShopDirName)
	if err := os.MkdirAll(shopDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
store:
  name: Gadget Garage
  currency: "€"
  catalog: catalog.yaml
checkout:
  confirm: true
server:
  host: 0.0.0.0
  port: 8080
  static_dir: assets
`)
	if err := os.WriteFile(filepath.Join(shopDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := New(workDir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if c.StoreName() != "Gadget Garage" {
		t.Fatalf("wrong store name: %s", c.StoreName())
	}
	if c.Currency() != "€" {
		t.Fatalf("wrong currency: %s", c.Currency())
	}
	if !strings.HasPrefix(c.CatalogPath(), workDir) {
		t.Fatalf("expected catalog path to be resolved, got %s", c.CatalogPath())
	}
	if !c.CheckoutConfirm() {
		t.Fatalf("expected checkout confirmation enabled")
	}
	if c.Shop.Server.Port != 8080 {
		t.Fatalf("wrong port: %d", c.Shop.Server.Port)
	}
	if !strings.HasPrefix(c.Shop.Server.StaticDir, workDir) {
		t.Fatalf("expected static dir to be resolved, got %s", c.Shop.Server.StaticDir)
	}
}

func TestNewValidation(t *testing.T) {
	workDir := t.TempDir()
	shopDir := filepath.Join(workDir, ShopDirName)
	if err := os.MkdirAll(shopDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
server:
  port: 123456
`)
	if err := os.WriteFile(filepath.Join(shopDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(workDir); err == nil {
		t.Fatalf("expected validation error but got none")
	}
}

func TestInitShopDirWritesDefaultConfig(t *testing.T) {
	workDir := t.TempDir()
	if err := InitShopDir(workDir); err != nil {
		t.Fatalf("InitShopDir: %v", err)
	}
	for _, sub := range []string{"state", "logs"} {
		if _, err := os.Stat(filepath.Join(workDir, ShopDirName, sub)); err != nil {
			t.Fatalf("expected %s directory: %v", sub, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(workDir, ShopDirName, "config.yaml"))
	if err != nil {
		t.Fatalf("expected default config file: %v", err)
	}
	if !strings.Contains(string(data), "version: 1") {
		t.Fatalf("default config missing version marker")
	}

	// A second init must not clobber an edited config.
	if err := os.WriteFile(filepath.Join(workDir, ShopDirName, "config.yaml"), []byte("version: 1\nstore:\n  name: Kept\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := InitShopDir(workDir); err != nil {
		t.Fatalf("InitShopDir (second): %v", err)
	}
	data, err = os.ReadFile(filepath.Join(workDir, ShopDirName, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Kept") {
		t.Fatalf("second init overwrote existing config")
	}
}
