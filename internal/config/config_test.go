package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MIMAMORI_TOKEN_SIGNING_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.S3Bucket != "mimamori-compass" {
		t.Errorf("bucket = %q, want %q", cfg.S3Bucket, "mimamori-compass")
	}
	if cfg.Production() {
		t.Error("default env should not be production")
	}
}

func TestLoadRequiresSigningKey(t *testing.T) {
	t.Setenv("MIMAMORI_TOKEN_SIGNING_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing signing key")
	}
}

func TestLoadProduction(t *testing.T) {
	t.Setenv("MIMAMORI_TOKEN_SIGNING_KEY", "test-key")
	t.Setenv("MIMAMORI_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Production() {
		t.Error("expected production mode")
	}
}
