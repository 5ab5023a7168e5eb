package vexen

import (
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig("postgres://vexen@localhost/vexen", "s3cret")

	if cfg.DatabaseURL != "postgres://vexen@localhost/vexen" {
		t.Fatalf("unexpected database url: %s", cfg.DatabaseURL)
	}
	if cfg.SecretKey != "s3cret" {
		t.Fatalf("unexpected secret: %s", cfg.SecretKey)
	}
	if cfg.Algorithm != AlgorithmHS256 {
		t.Fatalf("expected HS256 default, got %s", cfg.Algorithm)
	}
	if cfg.Echo {
		t.Fatal("expected echo off by default")
	}
	if cfg.PoolSize != DefaultPoolSize || cfg.MaxOverflow != DefaultMaxOverflow {
		t.Fatalf("unexpected pool defaults: %d/%d", cfg.PoolSize, cfg.MaxOverflow)
	}
	if cfg.AccessTokenTTL != DefaultAccessTokenTTL {
		t.Fatalf("unexpected access ttl: %s", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != DefaultRefreshTokenTTL {
		t.Fatalf("unexpected refresh ttl: %s", cfg.RefreshTokenTTL)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("VEXEN_DATABASE_URL", "postgres://env@localhost/env")
	t.Setenv("VEXEN_SECRET_KEY", "env-secret")
	t.Setenv("VEXEN_ALGORITHM", "hs512")
	t.Setenv("VEXEN_SQL_ECHO", "true")
	t.Setenv("VEXEN_POOL_SIZE", "20")
	t.Setenv("VEXEN_MAX_OVERFLOW", "40")
	t.Setenv("VEXEN_ACCESS_TOKEN_TTL", "5m")
	t.Setenv("VEXEN_REFRESH_TOKEN_TTL", "72h")

	cfg := ConfigFromEnv()
	if cfg.DatabaseURL != "postgres://env@localhost/env" {
		t.Fatalf("unexpected database url: %s", cfg.DatabaseURL)
	}
	if cfg.SecretKey != "env-secret" {
		t.Fatalf("unexpected secret: %s", cfg.SecretKey)
	}
	if cfg.Algorithm != AlgorithmHS512 {
		t.Fatalf("expected HS512, got %s", cfg.Algorithm)
	}
	if !cfg.Echo {
		t.Fatal("expected echo on")
	}
	if cfg.PoolSize != 20 || cfg.MaxOverflow != 40 {
		t.Fatalf("unexpected pool settings: %d/%d", cfg.PoolSize, cfg.MaxOverflow)
	}
	if cfg.AccessTokenTTL != 5*time.Minute {
		t.Fatalf("unexpected access ttl: %s", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 72*time.Hour {
		t.Fatalf("unexpected refresh ttl: %s", cfg.RefreshTokenTTL)
	}
}

func TestConfigFromEnvFallsBackOnBadValues(t *testing.T) {
	t.Setenv("VEXEN_DATABASE_URL", "postgres://env@localhost/env")
	t.Setenv("VEXEN_SECRET_KEY", "env-secret")
	t.Setenv("VEXEN_SQL_ECHO", "maybe")
	t.Setenv("VEXEN_POOL_SIZE", "-3")
	t.Setenv("VEXEN_ACCESS_TOKEN_TTL", "soon")

	cfg := ConfigFromEnv()
	if cfg.Echo {
		t.Fatal("expected echo fallback to off")
	}
	if cfg.PoolSize != DefaultPoolSize {
		t.Fatalf("expected pool size fallback, got %d", cfg.PoolSize)
	}
	if cfg.AccessTokenTTL != DefaultAccessTokenTTL {
		t.Fatalf("expected access ttl fallback, got %s", cfg.AccessTokenTTL)
	}
}
