package enhance

import (
	"fmt"
	"math"
)

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

func validateStatsParams(p StatsParams) error {
	if p.TargetLevel < 1 || p.TargetLevel > MaxEnhancementLevel {
		return fmt.Errorf("%w: got %d", ErrInvalidTargetLevel, p.TargetLevel)
	}
	if len(p.SuccessRates) < p.TargetLevel {
		return fmt.Errorf("%w: have %d rates, need %d", ErrInvalidRates, len(p.SuccessRates), p.TargetLevel)
	}
	for i, r := range p.SuccessRates[:p.TargetLevel] {
		if err := validateProb(r); err != nil {
			return fmt.Errorf("%w: successRates[%d]=%v", ErrInvalidProb, i, r)
		}
	}
	if p.ProtectFrom < 0 || p.ProtectFrom > p.TargetLevel {
		return fmt.Errorf("%w: got %d with target %d", ErrInvalidProtectFrom, p.ProtectFrom, p.TargetLevel)
	}
	return nil
}

func validateParams(p Params) error {
	if p.BaseItemPrice < 0 {
		return fmt.Errorf("%w: baseItemPrice=%v", ErrNegativePrice, p.BaseItemPrice)
	}
	if p.MaterialCostPerAttempt < 0 {
		return fmt.Errorf("%w: materialCostPerAttempt=%v", ErrNegativePrice, p.MaterialCostPerAttempt)
	}
	if p.ProtectionPrice < 0 {
		return fmt.Errorf("%w: protectionPrice=%v", ErrNegativePrice, p.ProtectionPrice)
	}
	return validateStatsParams(StatsParams{
		TargetLevel:  p.TargetLevel,
		SuccessRates: p.SuccessRates,
	})
}
