package engine

// FlipOpportunity is one profitable flip candidate, derived from the latest
// snapshot set. Never persisted; recomputed on every query.
type FlipOpportunity struct {
	ItemID      int     `json:"itemId"`
	Name        string  `json:"name"`
	InstantBuy  int     `json:"instantBuy"`  // low price: what you pay to acquire immediately
	InstantSell int     `json:"instantSell"` // high price: what you receive to sell immediately
	RawMargin   int     `json:"rawMargin"`
	NetMargin   int     `json:"netMargin"` // after 1% sell tax
	RoiPercent  float64 `json:"roiPercent"`
	GELimit     int     `json:"geLimit"`
	MaxProfit   int     `json:"maxProfit"` // net margin * GE limit, per 4h cycle
	Volume      int     `json:"volume"`
	HighVolume  int     `json:"highVolume"`
	LowVolume   int     `json:"lowVolume"`

	// Change vs the previous snapshot set; nil when the item had no valid
	// previous margin or no previous snapshot exists.
	MarginChange    *int     `json:"marginChange"`
	MarginChangePct *float64 `json:"marginChangePct"`
}

// FlipFilters holds the caller-supplied filter and ranking parameters for a
// flip query. Zero values mean "no filter" throughout.
type FlipFilters struct {
	MinMargin   int
	MinRoi      float64
	MaxBuyPrice int
	MinVolume   int
	SortBy      string // one of the sort keys below; default maxProfit
	SortDir     string // "asc" or "desc"; default desc
	Limit       int    // 0 = default
}

// WatchlistItemData is a watchlist entry enriched with current market state.
// Current* fields are nil when the latest snapshot carries no usable prices
// for the item; in that case IsTriggered is always false.
type WatchlistItemData struct {
	ID            int      `json:"id"`
	ItemID        int      `json:"itemId"`
	ItemName      string   `json:"itemName"`
	MinMargin     *int     `json:"minMargin"`
	MinRoi        *float64 `json:"minRoi"`
	MaxBuyPrice   *int     `json:"maxBuyPrice"`
	Notes         *string  `json:"notes"`
	CurrentMargin *int     `json:"currentMargin,omitempty"`
	CurrentRoi    *float64 `json:"currentRoi,omitempty"`
	InstantBuy    *int     `json:"instantBuy,omitempty"`
	InstantSell   *int     `json:"instantSell,omitempty"`
	IsTriggered   bool     `json:"isTriggered"`
}
