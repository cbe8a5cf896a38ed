// Package market decodes marketplace price snapshots into the price inputs
// of a cost calculation. Fetching live market data stays with the caller;
// this package only parses an already-obtained JSON dump.
package market

import (
	"errors"
	"time"

	"github.com/tidwall/gjson"
)

var ErrBadSnapshot = errors.New("malformed market snapshot")

// Listing is one market entry. A side with no orders is reported as -1 in
// the dump and stored as NoPrice here.
type Listing struct {
	Ask float64
	Bid float64
}

// NoPrice marks an empty order-book side.
const NoPrice = -1

// Snapshot is a point-in-time view of the marketplace.
type Snapshot struct {
	FetchedAt time.Time
	Listings  map[string]Listing
}

// ParseSnapshot decodes a marketplace dump of the form
//
//	{"time": 1700000000, "market": {"Item Name": {"ask": 120, "bid": 100}, ...}}
//
// Listings missing both sides are kept (priced NoPrice) so lookups can
// distinguish "unlisted" from "unknown item".
func ParseSnapshot(data []byte) (*Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrBadSnapshot
	}
	root := gjson.ParseBytes(data)
	marketNode := root.Get("market")
	if !marketNode.Exists() || !marketNode.IsObject() {
		return nil, ErrBadSnapshot
	}

	s := &Snapshot{Listings: make(map[string]Listing)}
	if t := root.Get("time"); t.Exists() {
		s.FetchedAt = time.Unix(t.Int(), 0)
	}
	marketNode.ForEach(func(key, value gjson.Result) bool {
		l := Listing{Ask: NoPrice, Bid: NoPrice}
		if a := value.Get("ask"); a.Exists() {
			l.Ask = a.Float()
		}
		if b := value.Get("bid"); b.Exists() {
			l.Bid = b.Float()
		}
		s.Listings[key.String()] = l
		return true
	})
	return s, nil
}

// Stale reports whether the snapshot is older than maxAge at time now.
// Snapshots without a timestamp are always stale.
func (s *Snapshot) Stale(maxAge time.Duration, now time.Time) bool {
	if s.FetchedAt.IsZero() {
		return true
	}
	return now.Sub(s.FetchedAt) > maxAge
}

// BuyPrice returns what one unit of name costs to buy right now: the ask
// side, falling back to bid when no sell orders exist.
func (s *Snapshot) BuyPrice(name string) (float64, error) {
	l, ok := s.Listings[name]
	if !ok {
		return 0, ErrUnknownItem
	}
	switch {
	case l.Ask >= 0:
		return l.Ask, nil
	case l.Bid >= 0:
		return l.Bid, nil
	}
	return 0, ErrNoPrice
}
