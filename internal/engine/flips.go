package engine

import (
	"math"
	"sort"

	"ge-flipper/internal/db"
)

const (
	// DefaultLimit is the page size returned when the caller asks for none.
	DefaultLimit = 50
	// MaxLimit is the hard cap on requested page size.
	MaxLimit = 200
)

// EffectiveLimit clamps a requested result count to [1, MaxLimit], using
// DefaultLimit when v <= 0.
func EffectiveLimit(v int) int {
	if v <= 0 {
		return DefaultLimit
	}
	if v > MaxLimit {
		return MaxLimit
	}
	return v
}

// PrevMarginMap reduces the previous snapshot set to item id -> net margin.
// Only rows with both prices present and a positive spread produce an entry;
// everything else is as good as no previous snapshot.
func PrevMarginMap(rows []db.PrevPriceRow) map[int]int {
	margins := make(map[int]int, len(rows))
	for _, row := range rows {
		if row.HighPrice == nil || row.LowPrice == nil {
			continue
		}
		high, low := *row.HighPrice, *row.LowPrice
		if high <= 0 || low <= 0 || high <= low {
			continue
		}
		margins[row.ItemID] = NetMargin(low, high)
	}
	return margins
}

// ComputeFlips derives the filtered flip opportunity list from the current
// snapshot set. prevMargins may be nil when no previous snapshot exists; the
// change fields then stay nil on every result. The returned slice is
// unsorted; rank with SortOpportunities.
func ComputeFlips(snaps []db.SnapshotRow, prevMargins map[int]int, f FlipFilters) []FlipOpportunity {
	flips := []FlipOpportunity{}

	for _, snap := range snaps {
		// Need both prices and a real spread to flip at all.
		if snap.HighPrice == nil || snap.LowPrice == nil {
			continue
		}
		high, low := *snap.HighPrice, *snap.LowPrice
		if high <= 0 || low <= 0 || high <= low {
			continue
		}

		netMargin := NetMargin(low, high)
		if netMargin <= 0 {
			continue // tax ate the spread
		}
		roi := ROI(low, high)

		geLimit := 0
		if snap.GELimit != nil {
			geLimit = *snap.GELimit
		}
		maxProfit := netMargin * geLimit

		highVolume, lowVolume := 0, 0
		if snap.HighVolume != nil {
			highVolume = *snap.HighVolume
		}
		if snap.LowVolume != nil {
			lowVolume = *snap.LowVolume
		}
		volume := highVolume + lowVolume

		// Caller filters, cheapest first; order matters for short-circuiting.
		if netMargin < f.MinMargin {
			continue
		}
		if roi < f.MinRoi {
			continue
		}
		if f.MaxBuyPrice > 0 && low > f.MaxBuyPrice {
			continue
		}
		if f.MinVolume > 0 && volume < f.MinVolume {
			continue
		}

		var marginChange *int
		var marginChangePct *float64
		if prev, ok := prevMargins[snap.ItemID]; ok {
			change := netMargin - prev
			marginChange = &change
			if prev != 0 {
				pct := round2(float64(change) / math.Abs(float64(prev)) * 100)
				marginChangePct = &pct
			}
		}

		flips = append(flips, FlipOpportunity{
			ItemID:          snap.ItemID,
			Name:            snap.Name,
			InstantBuy:      low,
			InstantSell:     high,
			RawMargin:       high - low,
			NetMargin:       netMargin,
			RoiPercent:      round2(roi),
			GELimit:         geLimit,
			MaxProfit:       maxProfit,
			Volume:          volume,
			HighVolume:      highVolume,
			LowVolume:       lowVolume,
			MarginChange:    marginChange,
			MarginChangePct: marginChangePct,
		})
	}
	return flips
}

// SortOpportunities ranks flips in place by the named numeric field.
// Unknown sort keys read as a constant 0, which leaves the input order
// intact under the stable sort. dir "asc" ascends; anything else descends.
func SortOpportunities(flips []FlipOpportunity, sortBy, dir string) {
	key := sortKeyAccessor(sortBy)
	asc := dir == "asc"
	sort.SliceStable(flips, func(i, j int) bool {
		a, b := key(flips[i]), key(flips[j])
		if asc {
			return a < b
		}
		return a > b
	})
}

// sortKeyAccessor maps a sort key name to a field accessor. Nil-able change
// fields read as 0, matching the zero-default policy of the filters.
func sortKeyAccessor(sortBy string) func(FlipOpportunity) float64 {
	switch sortBy {
	case "", "maxProfit":
		return func(f FlipOpportunity) float64 { return float64(f.MaxProfit) }
	case "netMargin":
		return func(f FlipOpportunity) float64 { return float64(f.NetMargin) }
	case "roiPercent":
		return func(f FlipOpportunity) float64 { return f.RoiPercent }
	case "rawMargin":
		return func(f FlipOpportunity) float64 { return float64(f.RawMargin) }
	case "instantBuy":
		return func(f FlipOpportunity) float64 { return float64(f.InstantBuy) }
	case "instantSell":
		return func(f FlipOpportunity) float64 { return float64(f.InstantSell) }
	case "volume":
		return func(f FlipOpportunity) float64 { return float64(f.Volume) }
	case "geLimit":
		return func(f FlipOpportunity) float64 { return float64(f.GELimit) }
	case "marginChange":
		return func(f FlipOpportunity) float64 {
			if f.MarginChange == nil {
				return 0
			}
			return float64(*f.MarginChange)
		}
	case "marginChangePct":
		return func(f FlipOpportunity) float64 {
			if f.MarginChangePct == nil {
				return 0
			}
			return *f.MarginChangePct
		}
	case "itemId":
		return func(f FlipOpportunity) float64 { return float64(f.ItemID) }
	default:
		return func(FlipOpportunity) float64 { return 0 }
	}
}

// round2 rounds to 2 decimal places for display fields.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
