package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := `
app:
  data_dir: /tmp/leadgen
search:
  concurrency: 4
  fallback_domain_lookup: true
  cache_domains: true
enrich:
  overrides:
    - name: Andy Wong
      company: Meta
      designation: Engineering
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.DataDir != "/tmp/leadgen" {
		t.Errorf("data_dir = %q", cfg.App.DataDir)
	}
	if cfg.Search.Concurrency != 4 || !cfg.Search.FallbackDomainLookup || !cfg.Search.CacheDomains {
		t.Errorf("search = %+v", cfg.Search)
	}
	if len(cfg.Enrich.Overrides) != 1 || cfg.Enrich.Overrides[0].Designation != "Engineering" {
		t.Errorf("overrides = %+v", cfg.Enrich.Overrides)
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	var cfg Config
	cfg.Search.Concurrency = -1
	cfg.Enrich.Overrides = []OverrideRule{
		{Name: " Andy Wong ", Company: " Meta ", Designation: " Engineering "},
		{Name: "andy wong", Company: "meta", Designation: "Something Else"}, // dup
		{Name: "", Company: "Meta", Designation: "X"},                       // invalid
	}

	out, res := NormalizeAndValidate(cfg)
	if res.OK() {
		t.Error("negative concurrency and empty name should produce errors")
	}
	if len(out.Enrich.Overrides) != 1 {
		t.Fatalf("normalized overrides = %+v, want 1 entry", out.Enrich.Overrides)
	}
	r := out.Enrich.Overrides[0]
	if r.Name != "Andy Wong" || r.Company != "Meta" || r.Designation != "Engineering" {
		t.Errorf("normalized rule = %+v", r)
	}
	if len(res.Warnings) == 0 {
		t.Error("duplicate override should warn")
	}
}

func TestEnsureUserConfig(t *testing.T) {
	dataDir := t.TempDir()
	defaultPath := filepath.Join(t.TempDir(), "default.yml")
	if err := os.WriteFile(defaultPath, []byte("app:\n  data_dir: .\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatalf("EnsureUserConfig: %v", err)
	}
	if _, err := os.Stat(userPath); err != nil {
		t.Fatalf("user config not created: %v", err)
	}

	// second call reuses the copy instead of overwriting
	if err := os.WriteFile(userPath, []byte("app:\n  data_dir: /custom\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	again, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatalf("EnsureUserConfig again: %v", err)
	}
	cfg, err := Load(again)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.DataDir != "/custom" {
		t.Errorf("user edits were clobbered: %q", cfg.App.DataDir)
	}
}
