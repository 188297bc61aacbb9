package db

import (
	"database/sql"
	"fmt"
	"time"

	"ge-flipper/internal/logger"
)

// SnapshotRow is one price snapshot joined with its item metadata, as
// consumed by the flip engine. Prices and volumes are nil when the sync
// run observed no trade on that side.
type SnapshotRow struct {
	ItemID     int
	Timestamp  time.Time
	HighPrice  *int
	LowPrice   *int
	HighVolume *int
	LowVolume  *int
	Name       string
	Members    bool
	GELimit    *int
}

// PrevPriceRow is the lightweight snapshot shape used for previous-margin
// lookups; only the prices matter.
type PrevPriceRow struct {
	ItemID    int
	HighPrice *int
	LowPrice  *int
}

// SnapshotInsert is the write shape produced by a sync run.
type SnapshotInsert struct {
	ItemID     int
	HighPrice  *int
	LowPrice   *int
	HighVolume *int
	LowVolume  *int
}

// LatestTimestamp returns the most recent snapshot timestamp, or false when
// no snapshots exist at all.
func (d *DB) LatestTimestamp() (time.Time, bool) {
	var ts int64
	err := d.sql.QueryRow("SELECT MAX(timestamp) FROM price_snapshots").Scan(&ts)
	if err != nil || ts == 0 {
		return time.Time{}, false
	}
	return time.Unix(ts, 0).UTC(), true
}

// PrevTimestamp returns the most recent distinct snapshot timestamp strictly
// before the given one, or false when there is none.
func (d *DB) PrevTimestamp(before time.Time) (time.Time, bool) {
	var ts sql.NullInt64
	err := d.sql.QueryRow(
		"SELECT MAX(timestamp) FROM price_snapshots WHERE timestamp < ?",
		before.Unix(),
	).Scan(&ts)
	if err != nil || !ts.Valid || ts.Int64 == 0 {
		return time.Time{}, false
	}
	return time.Unix(ts.Int64, 0).UTC(), true
}

// SnapshotsAt returns all snapshots recorded at ts, joined with item metadata.
func (d *DB) SnapshotsAt(ts time.Time) []SnapshotRow {
	rows, err := d.sql.Query(`
		SELECT s.item_id, s.timestamp, s.high_price, s.low_price, s.high_volume, s.low_volume,
		       i.name, i.members, i.ge_limit
		  FROM price_snapshots s
		  JOIN items i ON i.id = s.item_id
		 WHERE s.timestamp = ?
	`, ts.Unix())
	if err != nil {
		return []SnapshotRow{}
	}
	defer rows.Close()

	var snaps []SnapshotRow
	for rows.Next() {
		var s SnapshotRow
		var unix int64
		if err := rows.Scan(&s.ItemID, &unix, &s.HighPrice, &s.LowPrice, &s.HighVolume, &s.LowVolume,
			&s.Name, &s.Members, &s.GELimit); err != nil {
			continue
		}
		s.Timestamp = time.Unix(unix, 0).UTC()
		snaps = append(snaps, s)
	}
	if snaps == nil {
		return []SnapshotRow{}
	}
	return snaps
}

// PrevPricesAt returns the price-only snapshot set at ts, used to build the
// previous-margin map.
func (d *DB) PrevPricesAt(ts time.Time) []PrevPriceRow {
	rows, err := d.sql.Query(
		"SELECT item_id, high_price, low_price FROM price_snapshots WHERE timestamp = ?",
		ts.Unix(),
	)
	if err != nil {
		return []PrevPriceRow{}
	}
	defer rows.Close()

	var prices []PrevPriceRow
	for rows.Next() {
		var p PrevPriceRow
		if err := rows.Scan(&p.ItemID, &p.HighPrice, &p.LowPrice); err != nil {
			continue
		}
		prices = append(prices, p)
	}
	if prices == nil {
		return []PrevPriceRow{}
	}
	return prices
}

// SnapshotForItemAt returns the snapshot for one item at ts, or false.
func (d *DB) SnapshotForItemAt(itemID int, ts time.Time) (SnapshotRow, bool) {
	var s SnapshotRow
	var unix int64
	err := d.sql.QueryRow(`
		SELECT s.item_id, s.timestamp, s.high_price, s.low_price, s.high_volume, s.low_volume,
		       i.name, i.members, i.ge_limit
		  FROM price_snapshots s
		  JOIN items i ON i.id = s.item_id
		 WHERE s.item_id = ? AND s.timestamp = ?
	`, itemID, ts.Unix()).Scan(&s.ItemID, &unix, &s.HighPrice, &s.LowPrice, &s.HighVolume, &s.LowVolume,
		&s.Name, &s.Members, &s.GELimit)
	if err != nil {
		return SnapshotRow{}, false
	}
	s.Timestamp = time.Unix(unix, 0).UTC()
	return s, true
}

// LatestSnapshotForItem returns the most recent snapshot for one item,
// regardless of the global latest timestamp.
func (d *DB) LatestSnapshotForItem(itemID int) (SnapshotRow, bool) {
	var s SnapshotRow
	var unix int64
	err := d.sql.QueryRow(`
		SELECT s.item_id, s.timestamp, s.high_price, s.low_price, s.high_volume, s.low_volume,
		       i.name, i.members, i.ge_limit
		  FROM price_snapshots s
		  JOIN items i ON i.id = s.item_id
		 WHERE s.item_id = ?
		 ORDER BY s.timestamp DESC
		 LIMIT 1
	`, itemID).Scan(&s.ItemID, &unix, &s.HighPrice, &s.LowPrice, &s.HighVolume, &s.LowVolume,
		&s.Name, &s.Members, &s.GELimit)
	if err != nil {
		return SnapshotRow{}, false
	}
	s.Timestamp = time.Unix(unix, 0).UTC()
	return s, true
}

// InsertSnapshots writes one snapshot per entry at ts. Duplicate
// (item, timestamp) pairs are skipped silently so overlapping syncs stay
// idempotent. Returns the number of rows actually inserted.
func (d *DB) InsertSnapshots(ts time.Time, entries []SnapshotInsert) (int, error) {
	tx, err := d.sql.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO price_snapshots
			(item_id, timestamp, high_price, low_price, high_volume, low_volume)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	unix := ts.Unix()
	count := 0
	for _, e := range entries {
		res, err := stmt.Exec(e.ItemID, unix, e.HighPrice, e.LowPrice, e.HighVolume, e.LowVolume)
		if err != nil {
			return count, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			count++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteSnapshotsBefore prunes snapshots older than cutoff and returns the
// number of rows removed.
func (d *DB) DeleteSnapshotsBefore(cutoff time.Time) int64 {
	res, err := d.sql.Exec("DELETE FROM price_snapshots WHERE timestamp < ?", cutoff.Unix())
	if err != nil {
		logger.Warn("DB", fmt.Sprintf("snapshot cleanup failed: %v", err))
		return 0
	}
	n, _ := res.RowsAffected()
	return n
}
