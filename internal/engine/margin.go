package engine

// The Grand Exchange charges a 1% tax on the sell side, truncated toward
// zero at the unit level. All margin math in this package is integer gp.

// NetMargin returns the per-unit profit of buying at buy and selling at
// sell, after the 1% sell tax.
func NetMargin(buy, sell int) int {
	tax := sell / 100
	return sell - buy - tax
}

// ROI returns the net margin as a percentage of the buy price, at full
// precision. A non-positive buy price yields 0 rather than an error.
func ROI(buy, sell int) float64 {
	if buy <= 0 {
		return 0
	}
	return float64(NetMargin(buy, sell)) / float64(buy) * 100
}
