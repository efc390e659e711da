package market_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	market "astock-api/pkg/market"
	_ "astock-api/pkg/market/providers/eastmoney"
	_ "astock-api/pkg/market/providers/tushare"
)

func TestLoadMarketConfig(t *testing.T) {
	dir := t.TempDir()
	configYAML := `
default: eastmoney
providers:
  eastmoney:
    type: eastmoney
    timeout: 6s
    http_timeout: 12s
    max_retries: 4
  tushare:
    type: tushare
    token: test-token
    timeout: 6s
`
	path := filepath.Join(dir, "market.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := market.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Default != "eastmoney" {
		t.Fatalf("unexpected default: %s", cfg.Default)
	}

	providers, err := cfg.BuildProviders()
	if err != nil {
		t.Fatalf("BuildProviders error: %v", err)
	}
	if len(providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(providers))
	}
	if _, ok := providers["eastmoney"]; !ok {
		t.Fatalf("provider map missing eastmoney")
	}
}

func TestMarketConfigInvalidType(t *testing.T) {
	dir := t.TempDir()
	configYAML := `
providers:
  demo:
    type: foobar
`
	path := filepath.Join(dir, "market.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := market.LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported type error, got %v", err)
	}
}

func TestMarketConfigEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	configYAML := `
default: tushare
providers:
  tushare:
    type: tushare
    token: ${TUSHARE_TOKEN}
    timeout: ${TUSHARE_TIMEOUT}
`
	path := filepath.Join(dir, "market.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("TUSHARE_TOKEN", "secret-token")
	t.Setenv("TUSHARE_TIMEOUT", "7s")

	cfg, err := market.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	provider := cfg.Providers["tushare"]
	if provider.Token != "secret-token" {
		t.Fatalf("token not expanded, got %q", provider.Token)
	}
	if provider.Timeout.String() != "7s" {
		t.Fatalf("timeout not expanded, got %s", provider.Timeout)
	}
}

func TestMarketConfigMissingToken(t *testing.T) {
	dir := t.TempDir()
	configYAML := `
providers:
  tushare:
    type: tushare
`
	path := filepath.Join(dir, "market.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := market.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if _, err := cfg.BuildProviders(); err == nil {
		t.Fatalf("expected token error from tushare builder")
	}
}
