package enhance

import "gonum.org/v1/gonum/mat"

// teaJumpChance is the fraction of successes that skip an extra level while
// Blessed Tea is active, before the drink-concentration bonus.
const teaJumpChance = 0.01

// StatsParams configures one absorbing-chain evaluation.
type StatsParams struct {
	TargetLevel   int
	SuccessRates  []float64 // SuccessRates[i] = chance of i -> i+1
	ProtectFrom   int       // 0 disables protection; otherwise protect at levels >= ProtectFrom
	BlessedTea    bool
	GuzzlingBonus float64 // tea effect multiplier; <= 0 means 1.0
}

// Stats holds the expected consumption of one enhancement run.
type Stats struct {
	Attempts        float64 `json:"attempts"`
	ProtectionCount float64 `json:"protectionCount"`
}

// CalculateEnhancementStats models levels 0..TargetLevel as an absorbing
// Markov chain (TargetLevel absorbing) and returns the expected number of
// attempts and protection items consumed on the way from level 0.
//
// From transient state i: success moves to i+1, or to i+2 with chance
// p*teaJumpChance*guzzling carved out of p when Blessed Tea is active.
// Failure drops to i-1 when protection applies at i, else resets to 0.
// Transitions past the target leave the transient set and count as absorption.
func CalculateEnhancementStats(p StatsParams) (Stats, error) {
	if err := validateStatsParams(p); err != nil {
		return Stats{}, err
	}
	guzzling := p.GuzzlingBonus
	if guzzling <= 0 {
		guzzling = 1
	}

	// a = I - Q over the transient states 0..n-1.
	n := p.TargetLevel
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		success := p.SuccessRates[i]
		if p.BlessedTea {
			jump := success * teaJumpChance * guzzling
			if i+1 < n {
				row[i+1] += success - jump
			}
			if i+2 < n {
				row[i+2] += jump
			}
		} else if i+1 < n {
			row[i+1] += success
		}
		dest := 0
		if p.ProtectFrom > 0 && i >= p.ProtectFrom {
			dest = i - 1
		}
		row[dest] += 1 - success
		for j := 0; j < n; j++ {
			v := -row[j]
			if i == j {
				v += 1
			}
			a.Set(i, j, v)
		}
	}

	// Row 0 of the fundamental matrix (I-Q)^-1 gives expected visits to each
	// transient state starting from level 0. Solving (I-Q)^T v = e0 yields
	// that row without inverting the whole matrix.
	e0 := mat.NewVecDense(n, nil)
	e0.SetVec(0, 1)
	var visits mat.VecDense
	if err := visits.SolveVec(a.T(), e0); err != nil {
		return Stats{}, ErrSingularModel
	}

	var stats Stats
	for i := 0; i < n; i++ {
		stats.Attempts += visits.AtVec(i)
	}
	if p.ProtectFrom > 0 {
		for i := p.ProtectFrom; i < n; i++ {
			stats.ProtectionCount += visits.AtVec(i) * (1 - p.SuccessRates[i])
		}
	}
	return stats, nil
}
