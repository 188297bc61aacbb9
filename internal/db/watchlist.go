package db

import "time"

// WatchlistItem is a persisted user watch entry. Threshold fields are nil
// when the user set no threshold; a nil threshold never blocks an alert.
type WatchlistItem struct {
	ID          int      `json:"id"`
	ItemID      int      `json:"itemId"`
	ItemName    string   `json:"itemName"`
	MinMargin   *int     `json:"minMargin"`
	MinRoi      *float64 `json:"minRoi"`
	MaxBuyPrice *int     `json:"maxBuyPrice"`
	Notes       *string  `json:"notes"`
	CreatedAt   string   `json:"createdAt"`
}

// GetWatchlist returns all watchlist entries, newest first.
func (d *DB) GetWatchlist() []WatchlistItem {
	rows, err := d.sql.Query(`
		SELECT w.id, w.item_id, i.name, w.min_margin, w.min_roi, w.max_buy_price, w.notes, w.created_at
		  FROM watchlist w
		  JOIN items i ON i.id = w.item_id
		 ORDER BY w.created_at DESC, w.id DESC
	`)
	if err != nil {
		return []WatchlistItem{}
	}
	defer rows.Close()

	items := []WatchlistItem{}
	for rows.Next() {
		var item WatchlistItem
		var createdAt int64
		if err := rows.Scan(&item.ID, &item.ItemID, &item.ItemName, &item.MinMargin, &item.MinRoi,
			&item.MaxBuyPrice, &item.Notes, &createdAt); err != nil {
			continue
		}
		item.CreatedAt = time.Unix(createdAt, 0).UTC().Format(time.RFC3339)
		items = append(items, item)
	}
	return items
}

// GetWatchlistEntry returns one entry by its row id, or false.
func (d *DB) GetWatchlistEntry(id int) (WatchlistItem, bool) {
	var item WatchlistItem
	var createdAt int64
	err := d.sql.QueryRow(`
		SELECT w.id, w.item_id, i.name, w.min_margin, w.min_roi, w.max_buy_price, w.notes, w.created_at
		  FROM watchlist w
		  JOIN items i ON i.id = w.item_id
		 WHERE w.id = ?
	`, id).Scan(&item.ID, &item.ItemID, &item.ItemName, &item.MinMargin, &item.MinRoi,
		&item.MaxBuyPrice, &item.Notes, &createdAt)
	if err != nil {
		return WatchlistItem{}, false
	}
	item.CreatedAt = time.Unix(createdAt, 0).UTC().Format(time.RFC3339)
	return item, true
}

// AddWatchlistItem inserts a new entry and returns it with the assigned id.
func (d *DB) AddWatchlistItem(itemID int, minMargin *int, minRoi *float64, maxBuyPrice *int, notes *string) (WatchlistItem, error) {
	res, err := d.sql.Exec(`
		INSERT INTO watchlist (item_id, min_margin, min_roi, max_buy_price, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, itemID, minMargin, minRoi, maxBuyPrice, notes, time.Now().Unix())
	if err != nil {
		return WatchlistItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return WatchlistItem{}, err
	}
	entry, _ := d.GetWatchlistEntry(int(id))
	return entry, nil
}

// WatchlistUpdate is a partial update; a field is only applied when its
// corresponding set flag is true, so explicit nulls can clear a threshold.
type WatchlistUpdate struct {
	MinMargin      *int
	MinMarginSet   bool
	MinRoi         *float64
	MinRoiSet      bool
	MaxBuyPrice    *int
	MaxBuyPriceSet bool
	Notes          *string
	NotesSet       bool
}

// UpdateWatchlistItem updates an entry. Returns false if the id is unknown.
func (d *DB) UpdateWatchlistItem(id int, upd WatchlistUpdate) bool {
	current, ok := d.GetWatchlistEntry(id)
	if !ok {
		return false
	}
	if upd.MinMarginSet {
		current.MinMargin = upd.MinMargin
	}
	if upd.MinRoiSet {
		current.MinRoi = upd.MinRoi
	}
	if upd.MaxBuyPriceSet {
		current.MaxBuyPrice = upd.MaxBuyPrice
	}
	if upd.NotesSet {
		current.Notes = upd.Notes
	}
	_, err := d.sql.Exec(`
		UPDATE watchlist
		   SET min_margin = ?, min_roi = ?, max_buy_price = ?, notes = ?
		 WHERE id = ?
	`, current.MinMargin, current.MinRoi, current.MaxBuyPrice, current.Notes, id)
	return err == nil
}

// DeleteWatchlistItem removes an entry. Returns false if the id is unknown.
func (d *DB) DeleteWatchlistItem(id int) bool {
	res, err := d.sql.Exec("DELETE FROM watchlist WHERE id = ?", id)
	if err != nil {
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}
