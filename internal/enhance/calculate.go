// Package enhance computes the minimum expected cost of raising an item to a
// target enhancement level. It combines an absorbing Markov chain (expected
// attempts and protection use per protection threshold), a per-level
// threshold search, and an optional Philosopher's Mirror fusion pass.
//
// Everything here is pure: each call allocates its own matrices and tables,
// so all exported functions are safe for concurrent use.
package enhance

// Params is the full input of one cost calculation. Prices are in game
// currency; SuccessRates[i] is the chance of enhancing from level i to i+1.
type Params struct {
	BaseItemPrice          float64   `json:"baseItemPrice"`
	MaterialCostPerAttempt float64   `json:"materialCostPerAttempt"`
	ProtectionPrice        float64   `json:"protectionPrice"`
	SuccessRates           []float64 `json:"successRates"`
	TargetLevel            int       `json:"targetLevel"`
	PhilosopherMirrorPrice float64   `json:"philosopherMirrorPrice,omitempty"` // <= 0 disables fusion
	BlessedTea             bool      `json:"blessedTea,omitempty"`
	GuzzlingBonus          float64   `json:"guzzlingBonus,omitempty"` // <= 0 means 1.0
}

// Result is the answer returned to the caller: the best linear strategy for
// the target level plus fusion fields when a mirror chain is cheaper.
// TotalCost is authoritative regardless of which strategy won.
type Result struct {
	StrategyResult
	UsedMirror       bool           `json:"usedMirror"`
	MirrorStartLevel int            `json:"mirrorStartLevel,omitempty"`
	MirrorCount      int            `json:"mirrorCount,omitempty"`
	ConsumedItems    []ConsumedItem `json:"consumedItems,omitempty"`
}

// Calculate finds the minimum expected cost to reach Params.TargetLevel.
// It evaluates every protection threshold for every sub-target level, then
// lets the mirror pass recombine the per-level optima where that is cheaper.
func Calculate(p Params) (Result, error) {
	if err := validateParams(p); err != nil {
		return Result{}, err
	}

	strategies, err := strategiesUpTo(p, p.TargetLevel)
	if err != nil {
		return Result{}, err
	}
	targetCosts := make([]float64, len(strategies))
	for i, s := range strategies {
		targetCosts[i] = s.TotalCost
	}

	plan := planMirror(p, targetCosts)

	res := Result{StrategyResult: strategies[p.TargetLevel]}
	if plan.UsedMirror {
		res.UsedMirror = true
		res.MirrorStartLevel = plan.MirrorStartLevel
		res.MirrorCount = plan.MirrorCount
		res.ConsumedItems = plan.ConsumedItems
		res.TotalCost = plan.TotalCost
	}
	return res, nil
}
