package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/game/item profile files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "profiles", "default.yaml")
}
func (p Paths) GamePath(game string) string {
	return filepath.Join(p.BaseDir, "profiles", game+".yaml")
}
func (p Paths) ItemPath(game, item string) string {
	return filepath.Join(p.BaseDir, "profiles", game, "items", item+".yaml")
}

// Loader reads YAML profiles and merges default → game → item.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: "game" or "game/item" or "$default"
}

// NewLoader creates a profile loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// WatchPaths lists the files backing a game/item pair, for hot-reload.
func (l *Loader) WatchPaths(game, item string) []string {
	paths := []string{l.paths.DefaultPath(), l.paths.GamePath(game)}
	if item != "" {
		paths = append(paths, l.paths.ItemPath(game, item))
	}
	return paths
}

// LoadMerged loads and merges default → game → item (item optional).
// It returns the merged RawConfig (without normalization).
func (l *Loader) LoadMerged(game, item string) (RawConfig, error) {
	key := game
	if item != "" {
		key = game + "/" + item
	}
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	gameCfg, _ := readYAML(l.paths.GamePath(game)) // game file may not exist
	var itemCfg RawConfig
	if item != "" {
		itemCfg, _ = readYAML(l.paths.ItemPath(game, item)) // item file optional
	}

	merged := mergeRaw(mergeRaw(defCfg, gameCfg), itemCfg)

	l.mu.Lock()
	l.cache[game] = mergeRaw(defCfg, gameCfg)
	l.cache[key] = merged
	l.cache["$default"] = defCfg
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears the loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw overlays 'b' onto 'a': scalars win when non-zero, pointers win
// when the base side is unset, and the base-rate slice is replaced wholesale
// when provided.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	out.Enhance = mergeEnhance(out.Enhance, b.Enhance)

	switch {
	case out.Prices == nil && b.Prices != nil:
		c := *b.Prices
		out.Prices = &c
	case out.Prices != nil && b.Prices != nil:
		merged := mergePrices(*out.Prices, *b.Prices)
		out.Prices = &merged
	}

	return out
}

func mergeEnhance(a, b EnhanceConfig) EnhanceConfig {
	out := a
	if b.EnhancingLevel != nil {
		out.EnhancingLevel = b.EnhancingLevel
	}
	if b.ItemLevel != nil {
		out.ItemLevel = b.ItemLevel
	}
	if b.ToolBonus != nil {
		out.ToolBonus = b.ToolBonus
	}
	if b.TargetLevel != nil {
		out.TargetLevel = b.TargetLevel
	}
	if b.BlessedTea != nil {
		out.BlessedTea = b.BlessedTea
	}
	if b.GuzzlingBonus != nil {
		out.GuzzlingBonus = b.GuzzlingBonus
	}
	if len(b.BaseRates) > 0 {
		out.BaseRates = append([]float64(nil), b.BaseRates...)
	}
	return out
}

func mergePrices(a, b PriceConfig) PriceConfig {
	out := a
	if b.BaseItem != nil {
		out.BaseItem = b.BaseItem
	}
	if b.MaterialPerAttempt != nil {
		out.MaterialPerAttempt = b.MaterialPerAttempt
	}
	if b.Protection != nil {
		out.Protection = b.Protection
	}
	if b.PhilosopherMirror != nil {
		out.PhilosopherMirror = b.PhilosopherMirror
	}
	return out
}
