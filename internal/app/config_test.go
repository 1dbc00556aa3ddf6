package app

import (
	"flag"
	"strings"
	"testing"
	"time"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParseConfigEnvOverridesFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := parseConfig(fs, []string{"-a", ":9000", "-jwt-secret", "flag-secret"}, envOf(map[string]string{
		"RUN_ADDRESS":      ":9100",
		"DATABASE_URI":     "postgres://ledger:hunter2@db:5432/ledger",
		"SHUTDOWN_TIMEOUT": "10s",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RunAddress != ":9100" {
		t.Errorf("RunAddress=%q want :9100", cfg.RunAddress)
	}
	if cfg.JWTSecretKey != "flag-secret" {
		t.Errorf("JWTSecretKey=%q", cfg.JWTSecretKey)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout=%s", cfg.ShutdownTimeout)
	}
	if cfg.InMemory() {
		t.Error("DSN configured, InMemory must be false")
	}
	if masked := cfg.MaskDBPassword(); strings.Contains(masked, "hunter2") || !strings.HasPrefix(masked, "postgres://ledger:") || !strings.HasSuffix(masked, "@db:5432/ledger") {
		t.Errorf("masked DSN %q", masked)
	}
}

func TestParseConfigDefaultsAndErrors(t *testing.T) {
	cfg, err := parseConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil, envOf(map[string]string{"JWT_SECRET_KEY": "s"}))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.InMemory() || cfg.RunAddress != "localhost:8080" || cfg.LogLevel != "info" {
		t.Fatalf("defaults=%+v", cfg)
	}

	if _, err := parseConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil, envOf(nil)); err == nil {
		t.Fatal("missing JWT secret accepted")
	}
	if _, err := parseConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil, envOf(map[string]string{
		"JWT_SECRET_KEY":   "s",
		"SHUTDOWN_TIMEOUT": "soon",
	})); err == nil {
		t.Fatal("bad SHUTDOWN_TIMEOUT accepted")
	}
}
