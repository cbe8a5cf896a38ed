package enhance

import "errors"

var (
	ErrInvalidTargetLevel = errors.New("target level must be between 1 and 20")
	ErrInvalidRates       = errors.New("success rates must cover every level below the target")
	ErrInvalidProb        = errors.New("invalid probability; must be 0..1")
	ErrInvalidProtectFrom = errors.New("protect_from must be between 0 and the target level")
	ErrNegativePrice      = errors.New("prices must be non-negative")
	ErrSingularModel      = errors.New("transition model is singular; expected visits unsolvable")
)
