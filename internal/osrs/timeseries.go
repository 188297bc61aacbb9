package osrs

import (
	"context"
	"fmt"
)

// TimeseriesPoint is one bucket of the /timeseries response.
type TimeseriesPoint struct {
	Timestamp       int64 `json:"timestamp"`
	AvgHighPrice    *int  `json:"avgHighPrice"`
	AvgLowPrice     *int  `json:"avgLowPrice"`
	HighPriceVolume int   `json:"highPriceVolume"`
	LowPriceVolume  int   `json:"lowPriceVolume"`
}

// TimeseriesData mirrors the /timeseries response for a single item.
type TimeseriesData struct {
	Data []TimeseriesPoint `json:"data"`
}

// FetchTimeseries fetches the price history for one item at the given
// timestep ("5m", "1h" or "6h"; empty defaults to "5m").
func (c *Client) FetchTimeseries(ctx context.Context, itemID int, timestep string) (*TimeseriesData, error) {
	switch timestep {
	case "":
		timestep = "5m"
	case "5m", "1h", "6h", "24h":
	default:
		return nil, fmt.Errorf("osrs api /timeseries: unsupported timestep %q", timestep)
	}
	var ts TimeseriesData
	path := fmt.Sprintf("/timeseries?id=%d&timestep=%s", itemID, timestep)
	if err := c.getJSON(ctx, path, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}
