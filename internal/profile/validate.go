package profile

import (
	"fmt"
	"strings"

	"github.com/idlekit/enhance-backend/internal/enhance"
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	if cfg.Enhance.EnhancingLevel != nil && *cfg.Enhance.EnhancingLevel < 0 {
		errs = append(errs, "enhance.enhancing_level must be >= 0")
	}
	if cfg.Enhance.ItemLevel != nil && *cfg.Enhance.ItemLevel < 0 {
		errs = append(errs, "enhance.item_level must be >= 0")
	}
	if cfg.Enhance.TargetLevel != nil {
		if *cfg.Enhance.TargetLevel < 1 || *cfg.Enhance.TargetLevel > enhance.MaxEnhancementLevel {
			errs = append(errs, fmt.Sprintf("enhance.target_level must be in [1,%d]", enhance.MaxEnhancementLevel))
		}
	}
	if cfg.Enhance.GuzzlingBonus != nil && *cfg.Enhance.GuzzlingBonus <= 0 {
		errs = append(errs, "enhance.guzzling_bonus must be > 0")
	}
	for i, r := range cfg.Enhance.BaseRates {
		if !(r >= 0 && r <= 1) {
			errs = append(errs, fmt.Sprintf("enhance.base_rates[%d] must be in [0,1]", i))
		}
	}
	if len(cfg.Enhance.BaseRates) > 0 && cfg.Enhance.TargetLevel != nil &&
		len(cfg.Enhance.BaseRates) < *cfg.Enhance.TargetLevel {
		errs = append(errs, "enhance.base_rates must cover every level below target_level")
	}

	if cfg.Prices != nil {
		check := func(name string, v *float64) {
			if v != nil && *v < 0 {
				errs = append(errs, "prices."+name+" must be >= 0")
			}
		}
		check("base_item", cfg.Prices.BaseItem)
		check("material_per_attempt", cfg.Prices.MaterialPerAttempt)
		check("protection", cfg.Prices.Protection)
		check("philosopher_mirror", cfg.Prices.PhilosopherMirror)
	}

	if len(errs) > 0 {
		return fmt.Errorf("profile validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
