package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Validation.Inference != "rdfs" {
		t.Errorf("expected default inference rdfs, got %s", cfg.Validation.Inference)
	}
	if !cfg.Validation.AttachOffender {
		t.Error("expected offender attachment enabled by default")
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected default debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected default log level warn, got %s", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "unknown inference mode",
			modify:  func(c *Config) { c.Validation.Inference = "full" },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Watch.Debounce = -time.Second },
			wantErr: true,
		},
		{
			name:    "owlrl inference",
			modify:  func(c *Config) { c.Validation.Inference = "owlrl" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
validation:
  shapes:
    - "shapes/**/*.ttl"
  inference: "none"
  abort_on_error: true
report:
  output: "/tmp/report.txt"
watch:
  debounce: 2s
  metrics_addr: ":9091"
log:
  level: "debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if len(cfg.Validation.ShapeGlobs) != 1 || cfg.Validation.ShapeGlobs[0] != "shapes/**/*.ttl" {
		t.Errorf("unexpected shape globs: %v", cfg.Validation.ShapeGlobs)
	}
	if cfg.Validation.Inference != "none" {
		t.Errorf("expected inference none, got %s", cfg.Validation.Inference)
	}
	if !cfg.Validation.AbortOnError {
		t.Error("expected abort_on_error true")
	}
	if cfg.Report.Output != "/tmp/report.txt" {
		t.Errorf("expected report output /tmp/report.txt, got %s", cfg.Report.Output)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Watch.MetricsAddr != ":9091" {
		t.Errorf("expected metrics addr :9091, got %s", cfg.Watch.MetricsAddr)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestSaveAndReload(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Validation.Inference = "both"
	cfg.Report.Output = "out.txt"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.Validation.Inference != "both" {
		t.Errorf("expected inference both after reload, got %s", loaded.Validation.Inference)
	}
	if loaded.Report.Output != "out.txt" {
		t.Errorf("expected output out.txt after reload, got %s", loaded.Report.Output)
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	other := &Config{}
	other.Validation.Inference = "owlrl"
	other.Validation.MetaSHACL = true
	other.Watch.MetricsAddr = ":9100"

	base.Merge(other)

	if base.Validation.Inference != "owlrl" {
		t.Errorf("expected merged inference owlrl, got %s", base.Validation.Inference)
	}
	if !base.Validation.MetaSHACL {
		t.Error("expected merged meta_shacl true")
	}
	if base.Watch.MetricsAddr != ":9100" {
		t.Errorf("expected merged metrics addr :9100, got %s", base.Watch.MetricsAddr)
	}
	// Unset fields in the overlay keep base values.
	if base.Log.Level != "warn" {
		t.Errorf("expected log level warn preserved, got %s", base.Log.Level)
	}
	if base.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected debounce preserved, got %v", base.Watch.Debounce)
	}

	base.Merge(nil)
	if base.Validation.Inference != "owlrl" {
		t.Error("merging nil must be a no-op")
	}
}
