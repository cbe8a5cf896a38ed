// types.go
package profile

// Raw config loaded from YAML; defaults merge under game and item overlays.
type RawConfig struct {
	Version string         `yaml:"version"`
	Enhance EnhanceConfig  `yaml:"enhance"`
	Prices  *PriceConfig   `yaml:"prices,omitempty"`
	Notes   string         `yaml:"notes,omitempty"`
}

type EnhanceConfig struct {
	EnhancingLevel *int       `yaml:"enhancing_level"`
	ItemLevel      *int       `yaml:"item_level"`
	ToolBonus      *float64   `yaml:"tool_bonus,omitempty"`
	TargetLevel    *int       `yaml:"target_level,omitempty"`
	BlessedTea     *bool      `yaml:"blessed_tea,omitempty"`
	GuzzlingBonus  *float64   `yaml:"guzzling_bonus,omitempty"`
	BaseRates      []float64  `yaml:"base_rates,omitempty"` // overrides the built-in table when set
}

type PriceConfig struct {
	BaseItem           *float64 `yaml:"base_item,omitempty"`
	MaterialPerAttempt *float64 `yaml:"material_per_attempt,omitempty"`
	Protection         *float64 `yaml:"protection,omitempty"`
	PhilosopherMirror  *float64 `yaml:"philosopher_mirror,omitempty"`
}

// EngineParams is the normalized form handed to internal/enhance.
type EngineParams struct {
	Multiplier             float64
	SuccessRates           []float64
	TargetLevel            int
	BaseItemPrice          float64
	MaterialCostPerAttempt float64
	ProtectionPrice        float64
	PhilosopherMirrorPrice float64
	BlessedTea             bool
	GuzzlingBonus          float64
	Version                string // effective config version for tracing
}
