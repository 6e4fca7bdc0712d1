package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr() != "localhost:9877" {
		t.Fatalf("addr = %s", cfg.Addr())
	}
	if cfg.MaxClients != 10 || cfg.MaxBuffer != 1<<20 {
		t.Fatalf("limits = %d / %d", cfg.MaxClients, cfg.MaxBuffer)
	}
	if cfg.ClientTimeout.Std() != 300*time.Second {
		t.Fatalf("client timeout = %v", cfg.ClientTimeout.Std())
	}
	if cfg.MutateDelay.Std() != 100*time.Millisecond {
		t.Fatalf("mutate delay = %v", cfg.MutateDelay.Std())
	}
}

func TestYAMLFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "livebridge.yaml")
	data := []byte("port: 9900\nmax_clients: 4\nclient_timeout: 30s\nlog_level: debug\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9900 || cfg.MaxClients != 4 {
		t.Fatalf("file not applied: %+v", cfg)
	}
	if cfg.ClientTimeout.Std() != 30*time.Second {
		t.Fatalf("client timeout = %v", cfg.ClientTimeout.Std())
	}
	if cfg.Host != "localhost" {
		t.Fatalf("unset field should keep default, got %s", cfg.Host)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "livebridge.yaml")
	if err := os.WriteFile(path, []byte("port: 9900\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LIVEBRIDGE_PORT", "9901")
	t.Setenv("LIVEBRIDGE_MUTATE_DELAY", "250ms")
	t.Setenv("LIVEBRIDGE_ETCD_ENDPOINTS", "localhost:2379, localhost:2380")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9901 {
		t.Fatalf("env should win over file, port = %d", cfg.Port)
	}
	if cfg.MutateDelay.Std() != 250*time.Millisecond {
		t.Fatalf("mutate delay = %v", cfg.MutateDelay.Std())
	}
	if len(cfg.EtcdEndpoints) != 2 || cfg.EtcdEndpoints[1] != "localhost:2380" {
		t.Fatalf("endpoints = %v", cfg.EtcdEndpoints)
	}
}

func TestInvalidValues(t *testing.T) {
	t.Setenv("LIVEBRIDGE_PORT", "not-a-port")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for bad port")
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidation(t *testing.T) {
	t.Setenv("LIVEBRIDGE_MAX_CLIENTS", "0")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for zero max_clients")
	}
}
