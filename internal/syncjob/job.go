package syncjob

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ge-flipper/internal/db"
	"ge-flipper/internal/logger"
	"ge-flipper/internal/osrs"

	"golang.org/x/sync/errgroup"
)

// Source is the upstream market data feed a sync run pulls from.
type Source interface {
	FetchMapping(ctx context.Context) ([]osrs.MappingItem, error)
	FetchLatest(ctx context.Context) (*osrs.LatestData, error)
	Fetch5m(ctx context.Context) (*osrs.FiveMinData, error)
}

// Job pulls the item catalog and current prices from the upstream feed,
// merges them into the store, and prunes expired snapshot history.
type Job struct {
	Source        Source
	DB            *db.DB
	RetentionDays int

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// Result summarizes one sync run.
type Result struct {
	Items    int       `json:"items"`
	Prices   int       `json:"prices"`
	Cleaned  int64     `json:"cleaned"`
	SyncedAt time.Time `json:"syncedAt"`
}

// New creates a sync job over the given source and store.
func New(source Source, database *db.DB, retentionDays int) *Job {
	if retentionDays <= 0 {
		retentionDays = 7
	}
	return &Job{Source: source, DB: database, RetentionDays: retentionDays, now: time.Now}
}

// Run performs one full sync. The three upstream fetches run concurrently
// and all must succeed before anything is written; a fetch failure aborts
// the run with no partial commit. Snapshot rows that already exist for this
// run's timestamp are skipped silently, so overlapping runs are safe.
func (j *Job) Run(ctx context.Context) (Result, error) {
	start := j.now()

	var (
		mapping []osrs.MappingItem
		latest  *osrs.LatestData
		fiveMin *osrs.FiveMinData
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mapping, err = j.Source.FetchMapping(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = j.Source.FetchLatest(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		fiveMin, err = j.Source.Fetch5m(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("sync fetch: %w", err)
	}

	now := j.now().UTC().Truncate(time.Second)

	items := make([]db.Item, 0, len(mapping))
	for _, m := range mapping {
		items = append(items, db.Item{
			ID:       m.ID,
			Name:     m.Name,
			Examine:  nilIfEmpty(m.Examine),
			Members:  m.Members,
			HighAlch: nilIfZero(m.HighAlch),
			GELimit:  nilIfZero(m.Limit),
			Icon:     nilIfEmpty(m.Icon),
		})
	}
	itemCount, err := j.DB.UpsertItems(items)
	if err != nil {
		return Result{}, fmt.Errorf("sync upsert items: %w", err)
	}

	entries := make([]db.SnapshotInsert, 0, len(latest.Data))
	for idStr, price := range latest.Data {
		itemID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		// An item with no observed trade on either side carries no signal.
		if price.High == nil && price.Low == nil {
			continue
		}
		entry := db.SnapshotInsert{
			ItemID:    itemID,
			HighPrice: price.High,
			LowPrice:  price.Low,
		}
		if vol, ok := fiveMin.Data[idStr]; ok {
			highVol, lowVol := vol.HighPriceVolume, vol.LowPriceVolume
			entry.HighVolume = &highVol
			entry.LowVolume = &lowVol
		}
		entries = append(entries, entry)
	}
	priceCount, err := j.DB.InsertSnapshots(now, entries)
	if err != nil {
		return Result{}, fmt.Errorf("sync insert snapshots: %w", err)
	}

	cutoff := now.Add(-time.Duration(j.RetentionDays) * 24 * time.Hour)
	cleaned := j.DB.DeleteSnapshotsBefore(cutoff)

	logger.Success("SYNC", fmt.Sprintf("%d items, %d prices, %d pruned in %s",
		itemCount, priceCount, cleaned, time.Since(start).Round(time.Millisecond)))

	return Result{Items: itemCount, Prices: priceCount, Cleaned: cleaned, SyncedAt: now}, nil
}

func nilIfZero(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
