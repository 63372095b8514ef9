// # internal/config/config_test.go
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	content := `
scan_paths = ["./src"]

[languages]
go = true
python = false

[exclude]
dirs = [".git"]
files = ["*.log"]

[watch]
debounce = "1s"
max_events_per_sec = 10.0

[output]
tsv = "usages.tsv"
markdown = "usages.md"

[server]
addr = "127.0.0.1:9000"
openapi = "api/openapi.yaml"

[history]
path = "refscope.db"
window = "48h"
`
	tmpfile, err := os.CreateTemp("", "config*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.ScanPaths) != 1 || cfg.ScanPaths[0] != "./src" {
		t.Errorf("Expected ScanPaths [./src], got %v", cfg.ScanPaths)
	}
	if !cfg.Languages["go"] || cfg.Languages["python"] {
		t.Errorf("Expected go enabled, python disabled, got %v", cfg.Languages)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Watch.MaxEventsPerSec != 10.0 {
		t.Errorf("Expected max_events_per_sec 10, got %v", cfg.Watch.MaxEventsPerSec)
	}
	if cfg.Output.TSV != "usages.tsv" {
		t.Errorf("Expected TSV usages.tsv, got %s", cfg.Output.TSV)
	}
	if cfg.Output.Markdown != "usages.md" {
		t.Errorf("Expected Markdown usages.md, got %s", cfg.Output.Markdown)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Expected server addr 127.0.0.1:9000, got %s", cfg.Server.Addr)
	}
	if cfg.History.Path != "refscope.db" {
		t.Errorf("Expected history path refscope.db, got %s", cfg.History.Path)
	}
	if cfg.History.Window != "48h" {
		t.Errorf("Expected history window 48h, got %s", cfg.History.Window)
	}
}

func TestLoadDefaults(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Expected default debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.ScanPaths) != 1 || cfg.ScanPaths[0] != "." {
		t.Errorf("Expected default ScanPaths [.], got %v", cfg.ScanPaths)
	}
	if cfg.Server.Addr == "" {
		t.Error("Expected a default server addr")
	}
	if cfg.History.Window != "24h" {
		t.Errorf("Expected default history window 24h, got %s", cfg.History.Window)
	}
}
