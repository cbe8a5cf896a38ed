package enhance

// StrategyResult is the cheapest purely linear way (no fusion) to bring one
// item from level 0 to Level.
type StrategyResult struct {
	Level           int     `json:"level"`
	ProtectFrom     int     `json:"protectFrom"`
	Attempts        float64 `json:"attempts"`
	ProtectionCount float64 `json:"protectionCount"`
	BaseCost        float64 `json:"baseCost"`
	MaterialCost    float64 `json:"materialCost"`
	ProtectionCost  float64 `json:"protectionCost"`
	TotalCost       float64 `json:"totalCost"`
}

// bestStrategyFor sweeps every viable protection threshold for reaching
// level and keeps the cheapest. Thresholds below 2 are skipped (there is
// nothing to protect before the second attempt); 0 means no protection.
// Ties go to the first candidate evaluated, i.e. the smallest threshold.
func bestStrategyFor(p Params, level int) (StrategyResult, error) {
	var best StrategyResult
	found := false
	for protectFrom := 0; protectFrom <= level; protectFrom++ {
		if protectFrom == 1 {
			continue
		}
		stats, err := CalculateEnhancementStats(StatsParams{
			TargetLevel:   level,
			SuccessRates:  p.SuccessRates,
			ProtectFrom:   protectFrom,
			BlessedTea:    p.BlessedTea,
			GuzzlingBonus: p.GuzzlingBonus,
		})
		if err != nil {
			return StrategyResult{}, err
		}
		cand := StrategyResult{
			Level:           level,
			ProtectFrom:     protectFrom,
			Attempts:        stats.Attempts,
			ProtectionCount: stats.ProtectionCount,
			BaseCost:        p.BaseItemPrice,
			MaterialCost:    p.MaterialCostPerAttempt * stats.Attempts,
			ProtectionCost:  p.ProtectionPrice * stats.ProtectionCount,
		}
		cand.TotalCost = cand.BaseCost + cand.MaterialCost + cand.ProtectionCost
		if !found || cand.TotalCost < best.TotalCost {
			best = cand
			found = true
		}
	}
	return best, nil
}

// strategiesUpTo computes the cheapest linear strategy for every level from
// 1 to target. Index 0 is a synthetic entry carrying only the base item price.
func strategiesUpTo(p Params, target int) ([]StrategyResult, error) {
	out := make([]StrategyResult, target+1)
	out[0] = StrategyResult{BaseCost: p.BaseItemPrice, TotalCost: p.BaseItemPrice}
	for level := 1; level <= target; level++ {
		best, err := bestStrategyFor(p, level)
		if err != nil {
			return nil, err
		}
		out[level] = best
	}
	return out, nil
}
