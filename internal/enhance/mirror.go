package enhance

// minMirrorLevel is the lowest level a fusion can produce: it consumes one
// item at level-2 and one at level-1, so both inputs must exist below it.
const minMirrorLevel = 3

// ConsumedItem is one input tier of a fusion chain.
type ConsumedItem struct {
	Level    int     `json:"level"`
	Quantity int     `json:"quantity"`
	CostEach float64 `json:"costEach"`
}

// MirrorPlan describes a fusion-based path to the target level. It is only
// produced when it beats the linear strategy.
type MirrorPlan struct {
	UsedMirror       bool           `json:"usedMirror"`
	MirrorStartLevel int            `json:"mirrorStartLevel,omitempty"`
	MirrorCount      int            `json:"mirrorCount,omitempty"`
	ConsumedItems    []ConsumedItem `json:"consumedItems,omitempty"`
	TotalCost        float64        `json:"totalCost"`
}

// fusionFib is the item-count recurrence: fib(0)=fib(1)=1, then the usual
// Fibonacci sum. fib(n) lower-tier and fib(n+1) upper-tier items feed a chain
// of n fusion steps.
func fusionFib(n int) int {
	a, b := 1, 1
	for ; n > 0; n-- {
		a, b = b, a+b
	}
	return a
}

// mirrorFib counts catalysts across the chain: mirrorFib(0)=1, mirrorFib(1)=2,
// mirrorFib(n)=mirrorFib(n-1)+mirrorFib(n-2)+1.
func mirrorFib(n int) int {
	if n == 0 {
		return 1
	}
	a, b := 1, 2
	for ; n > 1; n-- {
		a, b = b, a+b+1
	}
	return b
}

// planMirror runs the bottom-up fusion pass over targetCosts (minimum cost
// per level, index 0 = bare item). Whenever fusing two cheaper sub-items
// beats the current cost of a level, the entry is overwritten so later levels
// build on it. The first level where fusion wins anchors the closed-form
// Fibonacci reconstruction of total item and catalyst counts.
//
// targetCosts is modified in place.
func planMirror(p Params, targetCosts []float64) MirrorPlan {
	target := p.TargetLevel
	plan := MirrorPlan{TotalCost: targetCosts[target]}
	if p.PhilosopherMirrorPrice <= 0 || target < minMirrorLevel {
		return plan
	}

	startLevel := 0
	for level := minMirrorLevel; level <= target; level++ {
		fused := targetCosts[level-2] + targetCosts[level-1] + p.PhilosopherMirrorPrice
		if fused < targetCosts[level] {
			targetCosts[level] = fused
			if startLevel == 0 {
				startLevel = level
			}
		}
	}
	if startLevel == 0 {
		return plan
	}

	n := target - startLevel
	lowerQty := fusionFib(n)
	upperQty := fusionFib(n + 1)
	mirrors := mirrorFib(n)
	lowerCost := targetCosts[startLevel-2]
	upperCost := targetCosts[startLevel-1]

	plan.UsedMirror = true
	plan.MirrorStartLevel = startLevel
	plan.MirrorCount = mirrors
	plan.ConsumedItems = []ConsumedItem{
		{Level: startLevel - 2, Quantity: lowerQty, CostEach: lowerCost},
		{Level: startLevel - 1, Quantity: upperQty, CostEach: upperCost},
	}
	plan.TotalCost = float64(lowerQty)*lowerCost + float64(upperQty)*upperCost +
		float64(mirrors)*p.PhilosopherMirrorPrice
	return plan
}
