package db

import (
	"database/sql"
	"time"
)

// Item is one row of the GE item catalog, upserted from the upstream mapping.
// HighAlch and GELimit are nil when upstream reports no value.
type Item struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Examine  *string `json:"examine"`
	Members  bool    `json:"members"`
	HighAlch *int    `json:"highalch"`
	GELimit  *int    `json:"geLimit"`
	Icon     *string `json:"icon"`
}

// UpsertItems inserts or updates catalog items in one transaction.
// Returns the number of rows written.
func (d *DB) UpsertItems(items []Item) (int, error) {
	tx, err := d.sql.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO items (id, name, examine, members, highalch, ge_limit, icon, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			examine = excluded.examine,
			members = excluded.members,
			highalch = excluded.highalch,
			ge_limit = excluded.ge_limit,
			icon = excluded.icon,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	count := 0
	for _, item := range items {
		if _, err := stmt.Exec(item.ID, item.Name, item.Examine, item.Members, item.HighAlch, item.GELimit, item.Icon, now); err != nil {
			return count, err
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// GetItem returns one item by id, or false if it doesn't exist.
func (d *DB) GetItem(id int) (Item, bool) {
	var item Item
	err := d.sql.QueryRow(`
		SELECT id, name, examine, members, highalch, ge_limit, icon
		  FROM items
		 WHERE id = ?
	`, id).Scan(&item.ID, &item.Name, &item.Examine, &item.Members, &item.HighAlch, &item.GELimit, &item.Icon)
	if err != nil {
		return Item{}, false
	}
	return item, true
}

// SearchItems returns up to limit items whose name contains q, name ascending.
func (d *DB) SearchItems(q string, limit int) []Item {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.sql.Query(`
		SELECT id, name, examine, members, highalch, ge_limit, icon
		  FROM items
		 WHERE name LIKE '%' || ? || '%'
		 ORDER BY name ASC
		 LIMIT ?
	`, q, limit)
	if err != nil {
		return []Item{}
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Examine, &item.Members, &item.HighAlch, &item.GELimit, &item.Icon); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

// ItemCount returns the number of catalog items.
func (d *DB) ItemCount() int {
	var count int
	if err := d.sql.QueryRow("SELECT COUNT(*) FROM items").Scan(&count); err != nil && err != sql.ErrNoRows {
		return 0
	}
	return count
}
