package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "DB_DSN", "REDIS_ADDR", "CART_DIR", "TAX_RATE_BPS", "SHUTDOWN_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("RedisAddr = %q, want empty", cfg.RedisAddr)
	}
	if cfg.CartDir != "data/carts" {
		t.Fatalf("CartDir = %q", cfg.CartDir)
	}
	if cfg.TaxRateBps != 800 {
		t.Fatalf("TaxRateBps = %d", cfg.TaxRateBps)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("ShutdownTimeout = %s", cfg.ShutdownTimeout)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("TAX_RATE_BPS", "925")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "30")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.TaxRateBps != 925 {
		t.Fatalf("TaxRateBps = %d", cfg.TaxRateBps)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Fatalf("ShutdownTimeout = %s", cfg.ShutdownTimeout)
	}
}

func TestFromEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("TAX_RATE_BPS", "eight percent")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "soon")

	cfg := FromEnv()
	if cfg.TaxRateBps != 800 {
		t.Fatalf("TaxRateBps = %d, want default 800", cfg.TaxRateBps)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("ShutdownTimeout = %s, want default", cfg.ShutdownTimeout)
	}
}
