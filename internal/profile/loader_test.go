package profile

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setupProfiles(t *testing.T) (string, *Loader) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "profiles", "default.yaml"), `
version: "base"
enhance:
  enhancing_level: 90
  item_level: 90
  tool_bonus: 0
prices:
  protection: 11500000
`)
	writeFile(t, filepath.Join(dir, "profiles", "mwi.yaml"), `
version: "mwi-1"
enhance:
  tool_bonus: 10
`)
	writeFile(t, filepath.Join(dir, "profiles", "mwi", "items", "oak_bow.yaml"), `
enhance:
  item_level: 90
  enhancing_level: 100
  target_level: 9
prices:
  base_item: 720000000
  material_per_attempt: 8979591
`)
	return dir, NewLoader(dir)
}

func TestLoadMergedLayering(t *testing.T) {
	_, l := setupProfiles(t)

	cfg, err := l.LoadMerged("mwi", "oak_bow")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != "mwi-1" {
		t.Errorf("version = %q, want game layer's %q", cfg.Version, "mwi-1")
	}
	if cfg.Enhance.ToolBonus == nil || *cfg.Enhance.ToolBonus != 10 {
		t.Errorf("tool_bonus not taken from game layer: %v", cfg.Enhance.ToolBonus)
	}
	if cfg.Enhance.EnhancingLevel == nil || *cfg.Enhance.EnhancingLevel != 100 {
		t.Errorf("enhancing_level not overridden by item layer: %v", cfg.Enhance.EnhancingLevel)
	}
	if cfg.Prices == nil || cfg.Prices.Protection == nil || *cfg.Prices.Protection != 11500000 {
		t.Error("default-layer protection price lost in merge")
	}
	if cfg.Prices.BaseItem == nil || *cfg.Prices.BaseItem != 720000000 {
		t.Error("item-layer base price missing")
	}
}

func TestLoadMergedCacheAndInvalidate(t *testing.T) {
	dir, l := setupProfiles(t)

	if _, err := l.LoadMerged("mwi", "oak_bow"); err != nil {
		t.Fatal(err)
	}
	// the cache must serve the old view until invalidated
	writeFile(t, filepath.Join(dir, "profiles", "mwi.yaml"), `
version: "mwi-2"
`)
	cfg, err := l.LoadMerged("mwi", "oak_bow")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != "mwi-1" {
		t.Errorf("version = %q before invalidate, want cached %q", cfg.Version, "mwi-1")
	}
	l.Invalidate()
	cfg, err = l.LoadMerged("mwi", "oak_bow")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != "mwi-2" {
		t.Errorf("version = %q after invalidate, want %q", cfg.Version, "mwi-2")
	}
}

func TestValidateRaw(t *testing.T) {
	bad := func(v float64) *float64 { return &v }
	level := func(v int) *int { return &v }

	tests := []struct {
		name string
		cfg  RawConfig
		want string
	}{
		{"target out of range", RawConfig{Enhance: EnhanceConfig{TargetLevel: level(21)}}, "target_level"},
		{"negative price", RawConfig{Prices: &PriceConfig{Protection: bad(-5)}}, "prices.protection"},
		{"bad base rate", RawConfig{Enhance: EnhanceConfig{BaseRates: []float64{0.5, 1.5}}}, "base_rates[1]"},
		{"zero guzzling", RawConfig{Enhance: EnhanceConfig{GuzzlingBonus: bad(0)}}, "guzzling_bonus"},
	}
	for _, tt := range tests {
		err := ValidateRaw(tt.cfg)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: err = %v, want mention of %q", tt.name, err, tt.want)
		}
	}

	if err := ValidateRaw(RawConfig{}); err != nil {
		t.Errorf("empty config should validate: %v", err)
	}
}

func TestResolveNormalizes(t *testing.T) {
	_, l := setupProfiles(t)
	r := LoaderResolver{Loader: l}

	_, ep, err := r.Resolve("mwi", "oak_bow", Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	// level 100 vs item 90 with +10 tool: 1 + (10 + 0.05*10)/100
	if math.Abs(ep.Multiplier-1.105) > 1e-12 {
		t.Errorf("multiplier = %f, want 1.105", ep.Multiplier)
	}
	if ep.TargetLevel != 9 {
		t.Errorf("target = %d, want 9", ep.TargetLevel)
	}
	if ep.GuzzlingBonus != 1 {
		t.Errorf("guzzling default = %f, want 1", ep.GuzzlingBonus)
	}
	p := ep.EnhanceParams()
	if p.BaseItemPrice != 720000000 || p.ProtectionPrice != 11500000 {
		t.Errorf("prices not carried into engine params: %+v", p)
	}
	if len(p.SuccessRates) < p.TargetLevel {
		t.Fatalf("rates too short: %d for target %d", len(p.SuccessRates), p.TargetLevel)
	}
	// base 0.50 scaled by 1.105
	if math.Abs(p.SuccessRates[0]-0.5525) > 1e-12 {
		t.Errorf("rate[0] = %f, want 0.5525", p.SuccessRates[0])
	}
}

func TestResolveOverridesAndValidation(t *testing.T) {
	_, l := setupProfiles(t)
	r := LoaderResolver{Loader: l}

	target := 5
	_, ep, err := r.Resolve("mwi", "oak_bow", Overrides{TargetLevel: &target})
	if err != nil {
		t.Fatal(err)
	}
	if ep.TargetLevel != 5 {
		t.Errorf("override target = %d, want 5", ep.TargetLevel)
	}

	badTarget := 40
	if _, _, err := r.Resolve("mwi", "oak_bow", Overrides{TargetLevel: &badTarget}); err == nil {
		t.Error("out-of-range override must fail validation")
	}
}
