package engine

import (
	"ge-flipper/internal/db"
)

// EvaluateWatchlist enriches each watchlist entry with the current margin,
// ROI and trigger state. prices is the latest snapshot set keyed by item id;
// entries whose item has no usable prices are reported untriggered with all
// current fields absent.
//
// An entry triggers when every configured threshold holds; an unset
// threshold is vacuously true, so an entry with only MaxBuyPrice set
// triggers purely on the buy price.
func EvaluateWatchlist(entries []db.WatchlistItem, prices map[int]db.SnapshotRow) []WatchlistItemData {
	result := make([]WatchlistItemData, 0, len(entries))

	for _, entry := range entries {
		data := WatchlistItemData{
			ID:          entry.ID,
			ItemID:      entry.ItemID,
			ItemName:    entry.ItemName,
			MinMargin:   entry.MinMargin,
			MinRoi:      entry.MinRoi,
			MaxBuyPrice: entry.MaxBuyPrice,
			Notes:       entry.Notes,
		}

		snap, ok := prices[entry.ItemID]
		if ok && snap.HighPrice != nil && snap.LowPrice != nil && *snap.HighPrice > 0 && *snap.LowPrice > 0 {
			high, low := *snap.HighPrice, *snap.LowPrice
			margin := NetMargin(low, high)
			roi := round2(ROI(low, high))
			data.InstantBuy = &low
			data.InstantSell = &high
			data.CurrentMargin = &margin
			data.CurrentRoi = &roi

			marginOK := entry.MinMargin == nil || margin >= *entry.MinMargin
			roiOK := entry.MinRoi == nil || roi >= *entry.MinRoi
			priceOK := entry.MaxBuyPrice == nil || low <= *entry.MaxBuyPrice
			data.IsTriggered = marginOK && roiOK && priceOK
		}

		result = append(result, data)
	}
	return result
}
