package market

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownItem = errors.New("item not present in market snapshot")
	ErrNoPrice     = errors.New("item has neither ask nor bid price")
)

// MaterialLine is one material consumed per enhancement attempt.
type MaterialLine struct {
	Name  string  // market listing name, e.g. "Philosopher's Stone"
	Count float64 // units per attempt
}

// ItemSpec names everything one enhancement run buys on the market.
type ItemSpec struct {
	Item       string         // the gear piece being enhanced
	Materials  []MaterialLine // per-attempt enhancement materials
	Protection string         // protection item; empty disables the lookup
	Mirror     string         // fusion catalyst; empty disables the lookup
}

// Quote carries the price inputs of one cost calculation, all in game currency.
type Quote struct {
	BaseItemPrice          float64 `json:"baseItemPrice"`
	MaterialCostPerAttempt float64 `json:"materialCostPerAttempt"`
	ProtectionPrice        float64 `json:"protectionPrice"`
	PhilosopherMirrorPrice float64 `json:"philosopherMirrorPrice"`
}

// BuildQuote prices an ItemSpec against a snapshot. Buying uses the ask side;
// a listing with no ask falls back to bid (thin markets list only one side).
func BuildQuote(s *Snapshot, spec ItemSpec) (Quote, error) {
	var q Quote
	var err error

	if q.BaseItemPrice, err = s.BuyPrice(spec.Item); err != nil {
		return Quote{}, fmt.Errorf("base item %q: %w", spec.Item, err)
	}
	for _, m := range spec.Materials {
		p, err := s.BuyPrice(m.Name)
		if err != nil {
			return Quote{}, fmt.Errorf("material %q: %w", m.Name, err)
		}
		q.MaterialCostPerAttempt += p * m.Count
	}
	if spec.Protection != "" {
		if q.ProtectionPrice, err = s.BuyPrice(spec.Protection); err != nil {
			return Quote{}, fmt.Errorf("protection %q: %w", spec.Protection, err)
		}
	}
	if spec.Mirror != "" {
		if q.PhilosopherMirrorPrice, err = s.BuyPrice(spec.Mirror); err != nil {
			return Quote{}, fmt.Errorf("mirror %q: %w", spec.Mirror, err)
		}
	}
	return q, nil
}
