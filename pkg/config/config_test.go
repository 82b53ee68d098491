package config

import (
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if !cfg.DB.IsSQLite() {
		t.Fatalf("expected sqlite default driver, got %q", cfg.DB.Driver)
	}
	if got := cfg.JWT.Expiration(); got != 24*time.Hour {
		t.Fatalf("expected 24h token lifetime from default, got %v", got)
	}
	if cfg.Pricing.TaxRatePercent != 8 || cfg.Pricing.FreeShippingThreshold != 100 || cfg.Pricing.FlatShippingFee != 8 {
		t.Fatalf("unexpected pricing defaults: %+v", cfg.Pricing)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvAppEnv, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("HH_DB_DRIVER", "oracle")

	if _, err := Load(); err == nil {
		t.Fatal("expected unsupported driver to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8080")
	t.Setenv("HH_JWT_SECRET", "test-secret")
}
