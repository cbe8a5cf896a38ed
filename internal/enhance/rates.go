package enhance

// MaxEnhancementLevel is the highest enhancement level items can reach.
const MaxEnhancementLevel = 20

// baseSuccessRates[i] is the unmodified chance to enhance from level i to i+1.
var baseSuccessRates = [MaxEnhancementLevel]float64{
	0.50, 0.45, 0.45,
	0.40, 0.40, 0.40,
	0.35, 0.35, 0.35,
	0.30, 0.30, 0.30,
	0.25, 0.25, 0.25,
	0.20, 0.20, 0.20,
	0.15, 0.15,
}

// MultiplierParams describes the player side of an enhancement attempt.
type MultiplierParams struct {
	EnhancingLevel int     // player's effective Enhancing skill level
	ItemLevel      int     // item level requirement of the piece being enhanced
	ToolBonus      float64 // flat tool bonus in percent, e.g. 5.1 for +5.1%
}

// GetSuccessMultiplier converts skill level and tool bonus into a multiplier
// applied to every base success rate.
// - At or above the item level, each level of advantage adds 0.05%.
// - Below the item level, the penalty scales linearly up to -50%.
func GetSuccessMultiplier(p MultiplierParams) float64 {
	if p.EnhancingLevel >= p.ItemLevel || p.ItemLevel <= 0 {
		advantage := 0.05 * float64(p.EnhancingLevel-p.ItemLevel)
		return 1 + (p.ToolBonus+advantage)/100
	}
	ratio := float64(p.EnhancingLevel) / float64(p.ItemLevel)
	return 1 - 0.5*(1-ratio) + p.ToolBonus/100
}

// ApplyMultiplierToBaseRates scales the base rate table by multiplier and
// caps each entry at 100%. maxLevel outside 1..MaxEnhancementLevel means the
// full table.
func ApplyMultiplierToBaseRates(multiplier float64, maxLevel int) []float64 {
	if maxLevel <= 0 || maxLevel > MaxEnhancementLevel {
		maxLevel = MaxEnhancementLevel
	}
	rates := make([]float64, maxLevel)
	for i := 0; i < maxLevel; i++ {
		r := baseSuccessRates[i] * multiplier
		if r > 1 {
			r = 1
		}
		rates[i] = r
	}
	return rates
}
