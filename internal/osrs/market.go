package osrs

import (
	"context"
	"fmt"
)

// MappingItem mirrors one entry of the /mapping response (item catalog).
type MappingItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Examine  string `json:"examine"`
	Members  bool   `json:"members"`
	LowAlch  int    `json:"lowalch"`
	HighAlch int    `json:"highalch"`
	Limit    int    `json:"limit"` // GE buy limit per 4h window; 0 = unknown
	Value    int    `json:"value"`
	Icon     string `json:"icon"`
}

// LatestPrice holds the most recent instant buy/sell prices for one item.
// High is the instant-sell price, Low the instant-buy price; either may be
// absent when no trade has been observed.
type LatestPrice struct {
	High     *int   `json:"high"`
	HighTime *int64 `json:"highTime"`
	Low      *int   `json:"low"`
	LowTime  *int64 `json:"lowTime"`
}

// LatestData mirrors the /latest response, keyed by item id (as a string).
type LatestData struct {
	Data map[string]LatestPrice `json:"data"`
}

// FiveMinPrice holds 5-minute average price and volume data for one item.
type FiveMinPrice struct {
	AvgHighPrice    *int `json:"avgHighPrice"`
	HighPriceVolume int  `json:"highPriceVolume"`
	AvgLowPrice     *int `json:"avgLowPrice"`
	LowPriceVolume  int  `json:"lowPriceVolume"`
}

// FiveMinData mirrors the /5m response, keyed by item id (as a string).
type FiveMinData struct {
	Data map[string]FiveMinPrice `json:"data"`
}

// FetchMapping fetches the full item catalog (id, name, GE limit, ...).
func (c *Client) FetchMapping(ctx context.Context) ([]MappingItem, error) {
	var items []MappingItem
	if err := c.getJSON(ctx, "/mapping", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FetchLatest fetches the latest instant buy/sell prices for all items.
func (c *Client) FetchLatest(ctx context.Context) (*LatestData, error) {
	var latest LatestData
	if err := c.getJSON(ctx, "/latest", &latest); err != nil {
		return nil, err
	}
	if latest.Data == nil {
		return nil, fmt.Errorf("osrs api /latest: empty response")
	}
	return &latest, nil
}

// Fetch5m fetches 5-minute average prices, which carry the trade volumes
// joined against /latest entries during sync.
func (c *Client) Fetch5m(ctx context.Context) (*FiveMinData, error) {
	var fiveMin FiveMinData
	if err := c.getJSON(ctx, "/5m", &fiveMin); err != nil {
		return nil, err
	}
	if fiveMin.Data == nil {
		return nil, fmt.Errorf("osrs api /5m: empty response")
	}
	return &fiveMin, nil
}
