package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Addr() != ":8080" {
		t.Errorf("unexpected addr %s", cfg.Server.Addr())
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Site.BaseURL != defaultBaseURL {
		t.Errorf("expected default base url, got %s", cfg.Site.BaseURL)
	}
	if cfg.Site.Name != defaultSiteName {
		t.Errorf("expected default site name, got %s", cfg.Site.Name)
	}
	if cfg.Paths.TemplatesDir != "templates" || cfg.Paths.PublicDir != "public" {
		t.Errorf("unexpected paths: %+v", cfg.Paths)
	}
	if cfg.DevMode {
		t.Errorf("dev mode should default to false")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("unexpected log level %s", cfg.LogLevel)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"PORT":                  "7070",
		"SITE_PORT":             "9090",
		"SITE_READ_TIMEOUT":     "20s",
		"SITE_BASE_URL":         "https://staging.hongshengyuan.tech/",
		"SITE_DEFAULT_OG_IMAGE": "https://staging.hongshengyuan.tech/images/og.jpg",
		"DEV":                   "1",
		"LOG_LEVEL":             "debug",
	}
	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("SITE_PORT should win over PORT, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("unexpected read timeout %s", cfg.Server.ReadTimeout)
	}
	if cfg.Site.BaseURL != "https://staging.hongshengyuan.tech" {
		t.Errorf("trailing slash should be trimmed, got %s", cfg.Site.BaseURL)
	}
	if !cfg.DevMode {
		t.Errorf("DEV=1 should enable dev mode")
	}
	if got := cfg.Site.URL("/product/oled-lamp"); got != "https://staging.hongshengyuan.tech/product/oled-lamp" {
		t.Errorf("unexpected site url %s", got)
	}
	if got := cfg.Site.URL("/"); got != "https://staging.hongshengyuan.tech" {
		t.Errorf("root url should be the base url, got %s", got)
	}
}

func TestLoadFallsBackToCloudRunPort(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{"PORT": "3000"}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Errorf("expected PORT fallback, got %s", cfg.Server.Port)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local overrides\nSITE_NAME=\"红盛源 (dev)\"\nexport SITE_PORT=8181\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(WithEnvMap(map[string]string{"SITE_PORT": "9999"}), WithoutSystemEnv(), WithEnvFile(path))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Site.Name != "红盛源 (dev)" {
		t.Errorf("expected name from .env, got %q", cfg.Site.Name)
	}
	if cfg.Server.Port != "9999" {
		t.Errorf("explicit env map should win over .env, got %s", cfg.Server.Port)
	}
}

func TestLoadMissingDotEnvIsIgnored(t *testing.T) {
	_, err := Load(WithoutSystemEnv(), WithEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	if err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"SITE_PORT":             "http",
		"SITE_BASE_URL":         "hongshengyuan.tech",
		"SITE_DEFAULT_OG_IMAGE": "/images/og.jpg",
	}
	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := map[string]bool{"Server.Port": true, "Site.BaseURL": true, "Site.DefaultOGImage": true}
	fields := verr.Fields()
	if len(fields) != len(want) {
		t.Fatalf("unexpected fields %v", fields)
	}
	for _, f := range fields {
		if !want[f] {
			t.Errorf("unexpected invalid field %s", f)
		}
	}
}
