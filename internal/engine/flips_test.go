package engine

import (
	"testing"
	"time"

	"ge-flipper/internal/db"
)

func intPtr(v int) *int { return &v }

func snap(itemID int, name string, high, low *int, geLimit *int, highVol, lowVol *int) db.SnapshotRow {
	return db.SnapshotRow{
		ItemID:     itemID,
		Timestamp:  time.Unix(1_700_000_000, 0).UTC(),
		HighPrice:  high,
		LowPrice:   low,
		HighVolume: highVol,
		LowVolume:  lowVol,
		Name:       name,
		GELimit:    geLimit,
	}
}

func TestComputeFlips_SkipsUnusableSnapshots(t *testing.T) {
	snaps := []db.SnapshotRow{
		snap(1, "missing high", nil, intPtr(100), intPtr(10), nil, nil),
		snap(2, "missing low", intPtr(100), nil, intPtr(10), nil, nil),
		snap(3, "inverted spread", intPtr(90), intPtr(100), intPtr(10), nil, nil),
		snap(4, "zero price", intPtr(100), intPtr(0), intPtr(10), nil, nil),
		snap(5, "taxed to zero", intPtr(101), intPtr(100), intPtr(10), nil, nil),
		snap(6, "viable", intPtr(110), intPtr(100), intPtr(10), nil, nil),
	}
	flips := ComputeFlips(snaps, nil, FlipFilters{})
	if len(flips) != 1 {
		t.Fatalf("ComputeFlips = %d results, want only the viable one", len(flips))
	}
	f := flips[0]
	if f.ItemID != 6 || f.NetMargin != 9 || f.RawMargin != 10 {
		t.Fatalf("viable flip = %+v", f)
	}
	if f.RoiPercent != 9.0 {
		t.Errorf("RoiPercent = %v, want 9.0", f.RoiPercent)
	}
	if f.MaxProfit != 90 {
		t.Errorf("MaxProfit = %d, want 90 (margin 9 * limit 10)", f.MaxProfit)
	}
}

func TestComputeFlips_MissingLimitAndVolumesDefaultToZero(t *testing.T) {
	snaps := []db.SnapshotRow{
		snap(1, "no limit", intPtr(110), intPtr(100), nil, intPtr(7), nil),
	}
	flips := ComputeFlips(snaps, nil, FlipFilters{})
	if len(flips) != 1 {
		t.Fatalf("got %d flips, want 1", len(flips))
	}
	if flips[0].GELimit != 0 || flips[0].MaxProfit != 0 {
		t.Errorf("GELimit/MaxProfit = %d/%d, want 0/0", flips[0].GELimit, flips[0].MaxProfit)
	}
	if flips[0].Volume != 7 || flips[0].HighVolume != 7 || flips[0].LowVolume != 0 {
		t.Errorf("volumes = %d/%d/%d, want 7/7/0", flips[0].Volume, flips[0].HighVolume, flips[0].LowVolume)
	}
}

func TestComputeFlips_Filters(t *testing.T) {
	snaps := []db.SnapshotRow{
		snap(1, "thin volume", intPtr(110), intPtr(100), intPtr(10), intPtr(500), intPtr(499)),
		snap(2, "enough volume", intPtr(110), intPtr(100), intPtr(10), intPtr(500), intPtr(500)),
	}

	flips := ComputeFlips(snaps, nil, FlipFilters{MinVolume: 1000})
	if len(flips) != 1 || flips[0].ItemID != 2 {
		t.Fatalf("MinVolume=1000 kept %+v, want item 2 only", flips)
	}

	flips = ComputeFlips(snaps, nil, FlipFilters{MinMargin: 10})
	if len(flips) != 0 {
		t.Fatalf("MinMargin=10 should exclude margin-9 flips, got %d", len(flips))
	}

	flips = ComputeFlips(snaps, nil, FlipFilters{MinRoi: 9.5})
	if len(flips) != 0 {
		t.Fatalf("MinRoi=9.5 should exclude 9%% ROI flips, got %d", len(flips))
	}

	// MaxBuyPrice of 0 means unset, not "nothing may cost more than 0".
	flips = ComputeFlips(snaps, nil, FlipFilters{MaxBuyPrice: 0})
	if len(flips) != 2 {
		t.Fatalf("MaxBuyPrice=0 should filter nothing, got %d", len(flips))
	}
	flips = ComputeFlips(snaps, nil, FlipFilters{MaxBuyPrice: 99})
	if len(flips) != 0 {
		t.Fatalf("MaxBuyPrice=99 should exclude 100 gp buys, got %d", len(flips))
	}
}

func TestComputeFlips_MarginChange(t *testing.T) {
	snaps := []db.SnapshotRow{
		snap(1, "tracked", intPtr(110), intPtr(100), nil, nil, nil),
		snap(2, "untracked", intPtr(220), intPtr(200), nil, nil, nil),
	}

	// No previous snapshot set: every change field stays nil.
	for _, f := range ComputeFlips(snaps, nil, FlipFilters{}) {
		if f.MarginChange != nil || f.MarginChangePct != nil {
			t.Fatalf("item %d has change fields without a previous set", f.ItemID)
		}
	}

	prev := map[int]int{1: 4}
	flips := ComputeFlips(snaps, prev, FlipFilters{})
	byID := map[int]FlipOpportunity{}
	for _, f := range flips {
		byID[f.ItemID] = f
	}

	tracked := byID[1]
	if tracked.MarginChange == nil || *tracked.MarginChange != 5 {
		t.Fatalf("MarginChange = %v, want 5", tracked.MarginChange)
	}
	if tracked.MarginChangePct == nil || *tracked.MarginChangePct != 125.0 {
		t.Fatalf("MarginChangePct = %v, want 125.0", tracked.MarginChangePct)
	}
	untracked := byID[2]
	if untracked.MarginChange != nil || untracked.MarginChangePct != nil {
		t.Fatal("item without previous margin must keep nil change fields")
	}
}

func TestComputeFlips_ZeroPrevMarginGuardsDivision(t *testing.T) {
	snaps := []db.SnapshotRow{
		snap(1, "item", intPtr(110), intPtr(100), nil, nil, nil),
	}
	flips := ComputeFlips(snaps, map[int]int{1: 0}, FlipFilters{})
	if len(flips) != 1 {
		t.Fatalf("got %d flips, want 1", len(flips))
	}
	f := flips[0]
	if f.MarginChange == nil || *f.MarginChange != 9 {
		t.Fatalf("MarginChange = %v, want 9", f.MarginChange)
	}
	if f.MarginChangePct != nil {
		t.Fatalf("MarginChangePct = %v, want nil for zero previous margin", *f.MarginChangePct)
	}
}

func TestComputeFlips_SignFlippingPrevMarginUsesAbsBase(t *testing.T) {
	snaps := []db.SnapshotRow{
		snap(1, "item", intPtr(107), intPtr(100), nil, nil, nil), // margin 6
	}
	flips := ComputeFlips(snaps, map[int]int{1: -3}, FlipFilters{})
	if len(flips) != 1 {
		t.Fatalf("got %d flips, want 1", len(flips))
	}
	// (6 - -3) / |-3| * 100 = 300
	if got := flips[0].MarginChangePct; got == nil || *got != 300.0 {
		t.Fatalf("MarginChangePct = %v, want 300.0", got)
	}
}

func TestPrevMarginMap(t *testing.T) {
	rows := []db.PrevPriceRow{
		{ItemID: 1, HighPrice: intPtr(110), LowPrice: intPtr(100)},
		{ItemID: 2, HighPrice: intPtr(90), LowPrice: intPtr(100)}, // inverted
		{ItemID: 3, HighPrice: nil, LowPrice: intPtr(100)},        // missing
		{ItemID: 4, HighPrice: intPtr(101), LowPrice: intPtr(100)}, // valid spread, zero margin
	}
	margins := PrevMarginMap(rows)
	if len(margins) != 2 {
		t.Fatalf("PrevMarginMap kept %d entries, want 2", len(margins))
	}
	if margins[1] != 9 {
		t.Errorf("margins[1] = %d, want 9", margins[1])
	}
	if m, ok := margins[4]; !ok || m != 0 {
		t.Errorf("margins[4] = %d, %v; want 0, true", m, ok)
	}
}

func TestSortOpportunities(t *testing.T) {
	flips := []FlipOpportunity{
		{ItemID: 1, MaxProfit: 100, NetMargin: 3},
		{ItemID: 2, MaxProfit: 300, NetMargin: 1},
		{ItemID: 3, MaxProfit: 200, NetMargin: 2},
	}

	SortOpportunities(flips, "maxProfit", "desc")
	if flips[0].ItemID != 2 || flips[2].ItemID != 1 {
		t.Fatalf("maxProfit desc order = %d,%d,%d", flips[0].ItemID, flips[1].ItemID, flips[2].ItemID)
	}

	SortOpportunities(flips, "maxProfit", "asc")
	if flips[0].ItemID != 1 || flips[2].ItemID != 2 {
		t.Fatalf("maxProfit asc order = %d,%d,%d", flips[0].ItemID, flips[1].ItemID, flips[2].ItemID)
	}

	SortOpportunities(flips, "netMargin", "desc")
	if flips[0].ItemID != 1 {
		t.Fatalf("netMargin desc first = %d, want 1", flips[0].ItemID)
	}

	// Unknown key reads as constant 0: stable sort keeps current order.
	before := [3]int{flips[0].ItemID, flips[1].ItemID, flips[2].ItemID}
	SortOpportunities(flips, "definitely-not-a-field", "desc")
	after := [3]int{flips[0].ItemID, flips[1].ItemID, flips[2].ItemID}
	if before != after {
		t.Fatalf("unknown sort key reordered results: %v -> %v", before, after)
	}
}

func TestSortOpportunities_NilChangeFieldsReadAsZero(t *testing.T) {
	neg := -5
	pos := 5
	flips := []FlipOpportunity{
		{ItemID: 1, MarginChange: &neg},
		{ItemID: 2},
		{ItemID: 3, MarginChange: &pos},
	}
	SortOpportunities(flips, "marginChange", "desc")
	if flips[0].ItemID != 3 || flips[1].ItemID != 2 || flips[2].ItemID != 1 {
		t.Fatalf("marginChange desc order = %d,%d,%d, want 3,2,1",
			flips[0].ItemID, flips[1].ItemID, flips[2].ItemID)
	}
}

func TestEffectiveLimit(t *testing.T) {
	if got := EffectiveLimit(0); got != DefaultLimit {
		t.Errorf("EffectiveLimit(0) = %d, want %d", got, DefaultLimit)
	}
	if got := EffectiveLimit(-3); got != DefaultLimit {
		t.Errorf("EffectiveLimit(-3) = %d, want %d", got, DefaultLimit)
	}
	if got := EffectiveLimit(75); got != 75 {
		t.Errorf("EffectiveLimit(75) = %d, want 75", got)
	}
	if got := EffectiveLimit(5000); got != MaxLimit {
		t.Errorf("EffectiveLimit(5000) = %d, want %d", got, MaxLimit)
	}
}
