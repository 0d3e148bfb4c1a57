package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/dxfkit/aci"
	"github.com/tsawler/dxfkit/labels"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Tolerance != 1e-6 {
		t.Errorf("default tolerance = %g", cfg.Tolerance)
	}
	if cfg.Markers.RemovedLayer != "DIFF_REMOVED" || cfg.Markers.AddedLayer != "DIFF_ADDED" {
		t.Errorf("default markers = %+v", cfg.Markers)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dxfdiff.toml")
	content := `
tolerance = 0.001

[markers]
removed_layer = "OLD"
added_layer = "NEW"
removed_color = "#FF0000"
added_color = "3"

[labels]
filter_non_parts = false
sort = "desc"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Tolerance != 0.001 {
		t.Errorf("tolerance = %g", cfg.Tolerance)
	}
	if cfg.Markers.RemovedLayer != "OLD" || cfg.Markers.AddedLayer != "NEW" {
		t.Errorf("markers = %+v", cfg.Markers)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}

	opts := cfg.extractOptions()
	if opts.FilterNonParts || opts.Sort != labels.SortDesc {
		t.Errorf("extract options = %+v", opts)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != defaultConfig() {
		t.Errorf("empty path should return defaults, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config)
		ok     bool
	}{
		{"defaults", func(c *config) {}, true},
		{"tolerance at lower bound", func(c *config) { c.Tolerance = 1e-8 }, true},
		{"tolerance at upper bound", func(c *config) { c.Tolerance = 1e-1 }, true},
		{"tolerance too small", func(c *config) { c.Tolerance = 1e-9 }, false},
		{"tolerance too large", func(c *config) { c.Tolerance = 0.5 }, false},
		{"tolerance zero", func(c *config) { c.Tolerance = 0 }, false},
		{"empty marker layer", func(c *config) { c.Markers.RemovedLayer = "" }, false},
		{"same marker layers", func(c *config) { c.Markers.AddedLayer = "diff_removed" }, false},
		{"bad color", func(c *config) { c.Markers.AddedColor = "greenish" }, false},
		{"color index out of range", func(c *config) { c.Markers.RemovedColor = "256" }, false},
		{"hex color", func(c *config) { c.Markers.RemovedColor = "#AA0000" }, true},
		{"bad sort order", func(c *config) { c.Labels.Sort = "random" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateResolvesColors(t *testing.T) {
	cfg := defaultConfig()
	cfg.Markers.RemovedColor = "#FF0000"
	cfg.Markers.AddedColor = "5"
	if err := cfg.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := cfg.markerOptions()
	if m.RemovedColor != aci.Red || m.AddedColor != 5 {
		t.Errorf("marker colors = %d, %d; want %d, 5", m.RemovedColor, m.AddedColor, aci.Red)
	}
	if m.RemovedLayer != "DIFF_REMOVED" || m.AddedLayer != "DIFF_ADDED" {
		t.Errorf("marker layers = %+v", m)
	}
}

func TestResolveColor(t *testing.T) {
	if got, err := resolveColor("7"); err != nil || got != 7 {
		t.Errorf("resolveColor(7) = %d, %v", got, err)
	}
	if got, err := resolveColor("#FF0000"); err != nil || got != aci.Red {
		t.Errorf("resolveColor(#FF0000) = %d, %v", got, err)
	}
	if _, err := resolveColor("0"); err == nil {
		t.Error("index 0 should be rejected")
	}
}
