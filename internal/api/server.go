package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"ge-flipper/internal/config"
	"ge-flipper/internal/db"
	"ge-flipper/internal/engine"
	"ge-flipper/internal/osrs"
	"ge-flipper/internal/syncjob"

	"github.com/rs/cors"
)

// TimeseriesProvider fetches per-item price history from upstream. Satisfied
// by *osrs.Client; faked in tests.
type TimeseriesProvider interface {
	FetchTimeseries(ctx context.Context, itemID int, timestep string) (*osrs.TimeseriesData, error)
}

// Server is the HTTP API that connects the store, the flip engine and the
// sync job. Handlers hold no state of their own; every query reads the
// store fresh so concurrent syncs can never serve a stale "latest".
type Server struct {
	cfg        *config.Config
	db         *db.DB
	timeseries TimeseriesProvider
	job        *syncjob.Job
	version    string
}

// NewServer creates a Server with the given config, store, upstream client
// and sync job.
func NewServer(cfg *config.Config, database *db.DB, ts TimeseriesProvider, job *syncjob.Job, version string) *Server {
	return &Server{
		cfg:        cfg,
		db:         database,
		timeseries: ts,
		job:        job,
		version:    version,
	}
}

// Handler returns the HTTP handler with all API routes and CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/flips", s.handleGetFlips)
	mux.HandleFunc("POST /api/sync", s.handleRunSync)
	mux.HandleFunc("GET /api/sync", s.handleSyncStatus)
	mux.HandleFunc("GET /api/watchlist", s.handleGetWatchlist)
	mux.HandleFunc("POST /api/watchlist", s.handleAddWatchlist)
	mux.HandleFunc("PATCH /api/watchlist/{id}", s.handleUpdateWatchlist)
	mux.HandleFunc("DELETE /api/watchlist/{id}", s.handleDeleteWatchlist)
	mux.HandleFunc("GET /api/item/{id}", s.handleItemDetail)
	mux.HandleFunc("GET /api/items/search", s.handleItemSearch)
	return cors.AllowAll().Handler(mux)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// queryInt parses an integer query parameter, falling back to 0 on garbage
// so a malformed filter never fails the request.
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}

func queryFloat(r *http.Request, key string) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(key), 64)
	if err != nil {
		return 0
	}
	return v
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok", "version": s.version})
}

type flipsResponse struct {
	Data     []engine.FlipOpportunity `json:"data"`
	Total    int                      `json:"total"`
	LastSync *time.Time               `json:"lastSync"`
}

func (s *Server) handleGetFlips(w http.ResponseWriter, r *http.Request) {
	filters := engine.FlipFilters{
		MinMargin:   queryInt(r, "minMargin"),
		MinRoi:      queryFloat(r, "minRoi"),
		MaxBuyPrice: queryInt(r, "maxBuyPrice"),
		MinVolume:   queryInt(r, "minVolume"),
		SortBy:      r.URL.Query().Get("sortBy"),
		SortDir:     r.URL.Query().Get("sortDir"),
		Limit:       queryInt(r, "limit"),
	}

	latest, ok := s.db.LatestTimestamp()
	if !ok {
		// Nothing synced yet: an empty board, not an error.
		writeJSON(w, 200, flipsResponse{Data: []engine.FlipOpportunity{}})
		return
	}

	var prevMargins map[int]int
	if prev, ok := s.db.PrevTimestamp(latest); ok {
		prevMargins = engine.PrevMarginMap(s.db.PrevPricesAt(prev))
	}

	flips := engine.ComputeFlips(s.db.SnapshotsAt(latest), prevMargins, filters)
	engine.SortOpportunities(flips, filters.SortBy, sortDir(filters.SortDir))

	total := len(flips)
	limit := engine.EffectiveLimit(filters.Limit)
	if len(flips) > limit {
		flips = flips[:limit]
	}

	writeJSON(w, 200, flipsResponse{Data: flips, Total: total, LastSync: &latest})
}

// sortDir normalizes the direction parameter: anything but "asc" descends.
func sortDir(v string) string {
	if v == "asc" {
		return "asc"
	}
	return "desc"
}

func (s *Server) handleRunSync(w http.ResponseWriter, r *http.Request) {
	result, err := s.job.Run(r.Context())
	if err != nil {
		writeJSON(w, 500, map[string]string{
			"error":   "Failed to sync data from OSRS Wiki",
			"details": err.Error(),
		})
		return
	}
	writeJSON(w, 200, map[string]interface{}{
		"success":  true,
		"items":    result.Items,
		"prices":   result.Prices,
		"cleaned":  result.Cleaned,
		"syncedAt": result.SyncedAt,
	})
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	var lastSync *time.Time
	if ts, ok := s.db.LatestTimestamp(); ok {
		lastSync = &ts
	}
	writeJSON(w, 200, map[string]interface{}{
		"lastSync":  lastSync,
		"itemCount": s.db.ItemCount(),
	})
}
