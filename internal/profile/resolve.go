// resolve.go
package profile

import "github.com/idlekit/enhance-backend/internal/enhance"

// Overrides carries per-request tweaks layered on top of a merged profile,
// e.g. query parameters of one calculation request.
type Overrides struct {
	EnhancingLevel *int
	ItemLevel      *int
	ToolBonus      *float64
	TargetLevel    *int
	BlessedTea     *bool
	GuzzlingBonus  *float64
	BaseItemPrice  *float64
	MaterialPrice  *float64
	ProtectPrice   *float64
	MirrorPrice    *float64
}

// Resolver merges default → game → item → overrides into engine params.
type Resolver interface {
	Resolve(game, item string, o Overrides) (RawConfig, EngineParams, error)
}

// LoaderResolver resolves against a profile Loader.
type LoaderResolver struct {
	Loader *Loader
}

func (r LoaderResolver) Resolve(game, item string, o Overrides) (RawConfig, EngineParams, error) {
	cfg, err := r.Loader.LoadMerged(game, item)
	if err != nil {
		return RawConfig{}, EngineParams{}, err
	}
	cfg = applyOverrides(cfg, o)
	if err := ValidateRaw(cfg); err != nil {
		return RawConfig{}, EngineParams{}, err
	}
	return cfg, Normalize(cfg), nil
}

func applyOverrides(cfg RawConfig, o Overrides) RawConfig {
	if o.EnhancingLevel != nil {
		cfg.Enhance.EnhancingLevel = o.EnhancingLevel
	}
	if o.ItemLevel != nil {
		cfg.Enhance.ItemLevel = o.ItemLevel
	}
	if o.ToolBonus != nil {
		cfg.Enhance.ToolBonus = o.ToolBonus
	}
	if o.TargetLevel != nil {
		cfg.Enhance.TargetLevel = o.TargetLevel
	}
	if o.BlessedTea != nil {
		cfg.Enhance.BlessedTea = o.BlessedTea
	}
	if o.GuzzlingBonus != nil {
		cfg.Enhance.GuzzlingBonus = o.GuzzlingBonus
	}
	if o.BaseItemPrice != nil || o.MaterialPrice != nil || o.ProtectPrice != nil || o.MirrorPrice != nil {
		if cfg.Prices == nil {
			cfg.Prices = &PriceConfig{}
		}
		if o.BaseItemPrice != nil {
			cfg.Prices.BaseItem = o.BaseItemPrice
		}
		if o.MaterialPrice != nil {
			cfg.Prices.MaterialPerAttempt = o.MaterialPrice
		}
		if o.ProtectPrice != nil {
			cfg.Prices.Protection = o.ProtectPrice
		}
		if o.MirrorPrice != nil {
			cfg.Prices.PhilosopherMirror = o.MirrorPrice
		}
	}
	return cfg
}

// Normalize turns a validated RawConfig into EngineParams: the success
// multiplier is derived from skill/item levels and the tool bonus, then
// applied to the base-rate table (profile override or built-in).
func Normalize(cfg RawConfig) EngineParams {
	var ep EngineParams
	ep.Version = cfg.Version
	ep.TargetLevel = enhance.MaxEnhancementLevel
	if cfg.Enhance.TargetLevel != nil {
		ep.TargetLevel = *cfg.Enhance.TargetLevel
	}

	mp := enhance.MultiplierParams{}
	if cfg.Enhance.EnhancingLevel != nil {
		mp.EnhancingLevel = *cfg.Enhance.EnhancingLevel
	}
	if cfg.Enhance.ItemLevel != nil {
		mp.ItemLevel = *cfg.Enhance.ItemLevel
	}
	if cfg.Enhance.ToolBonus != nil {
		mp.ToolBonus = *cfg.Enhance.ToolBonus
	}
	ep.Multiplier = enhance.GetSuccessMultiplier(mp)

	if len(cfg.Enhance.BaseRates) > 0 {
		rates := make([]float64, len(cfg.Enhance.BaseRates))
		for i, r := range cfg.Enhance.BaseRates {
			r *= ep.Multiplier
			if r > 1 {
				r = 1
			}
			rates[i] = r
		}
		ep.SuccessRates = rates
	} else {
		ep.SuccessRates = enhance.ApplyMultiplierToBaseRates(ep.Multiplier, 0)
	}

	if cfg.Enhance.BlessedTea != nil {
		ep.BlessedTea = *cfg.Enhance.BlessedTea
	}
	ep.GuzzlingBonus = 1
	if cfg.Enhance.GuzzlingBonus != nil {
		ep.GuzzlingBonus = *cfg.Enhance.GuzzlingBonus
	}

	if cfg.Prices != nil {
		if cfg.Prices.BaseItem != nil {
			ep.BaseItemPrice = *cfg.Prices.BaseItem
		}
		if cfg.Prices.MaterialPerAttempt != nil {
			ep.MaterialCostPerAttempt = *cfg.Prices.MaterialPerAttempt
		}
		if cfg.Prices.Protection != nil {
			ep.ProtectionPrice = *cfg.Prices.Protection
		}
		if cfg.Prices.PhilosopherMirror != nil {
			ep.PhilosopherMirrorPrice = *cfg.Prices.PhilosopherMirror
		}
	}
	return ep
}

// EnhanceParams converts normalized engine params into the core input struct.
func (ep EngineParams) EnhanceParams() enhance.Params {
	return enhance.Params{
		BaseItemPrice:          ep.BaseItemPrice,
		MaterialCostPerAttempt: ep.MaterialCostPerAttempt,
		ProtectionPrice:        ep.ProtectionPrice,
		SuccessRates:           ep.SuccessRates,
		TargetLevel:            ep.TargetLevel,
		PhilosopherMirrorPrice: ep.PhilosopherMirrorPrice,
		BlessedTea:             ep.BlessedTea,
		GuzzlingBonus:          ep.GuzzlingBonus,
	}
}
