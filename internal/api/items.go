package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ge-flipper/internal/logger"
)

// timeframePoints maps a timeframe name to the number of trailing 5-minute
// buckets it covers.
var timeframePoints = map[string]int{
	"1h":  12,
	"6h":  72,
	"24h": 288,
}

type pricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	HighPrice *int      `json:"highPrice"`
	LowPrice  *int      `json:"lowPrice"`
}

type latestPrice struct {
	HighPrice *int      `json:"highPrice"`
	LowPrice  *int      `json:"lowPrice"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleItemDetail(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "Invalid item ID")
		return
	}

	item, ok := s.db.GetItem(itemID)
	if !ok {
		writeError(w, 404, "Item not found")
		return
	}

	maxPoints, ok := timeframePoints[r.URL.Query().Get("timeframe")]
	if !ok {
		maxPoints = timeframePoints["24h"]
	}

	var latest *latestPrice
	if snap, ok := s.db.LatestSnapshotForItem(itemID); ok {
		latest = &latestPrice{
			HighPrice: snap.HighPrice,
			LowPrice:  snap.LowPrice,
			Timestamp: snap.Timestamp,
		}
	}

	// Upstream history is best effort: a failed fetch degrades to an empty
	// chart, it doesn't fail the item page.
	timeseries := []pricePoint{}
	if ts, err := s.timeseries.FetchTimeseries(r.Context(), itemID, "5m"); err == nil {
		points := ts.Data
		if len(points) > maxPoints {
			points = points[len(points)-maxPoints:]
		}
		for _, p := range points {
			timeseries = append(timeseries, pricePoint{
				Timestamp: time.Unix(p.Timestamp, 0).UTC(),
				HighPrice: p.AvgHighPrice,
				LowPrice:  p.AvgLowPrice,
			})
		}
	} else {
		logger.Warn("API", fmt.Sprintf("timeseries fetch for item %d failed: %v", itemID, err))
	}

	writeJSON(w, 200, map[string]interface{}{
		"item":        item,
		"latestPrice": latest,
		"timeseries":  timeseries,
	})
}

func (s *Server) handleItemSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len(q) < 2 {
		writeJSON(w, 200, map[string]interface{}{"results": []struct{}{}})
		return
	}
	writeJSON(w, 200, map[string]interface{}{"results": s.db.SearchItems(q, 20)})
}
