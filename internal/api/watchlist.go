package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ge-flipper/internal/db"
	"ge-flipper/internal/engine"
)

func (s *Server) handleGetWatchlist(w http.ResponseWriter, r *http.Request) {
	entries := s.db.GetWatchlist()

	// Current prices at the latest global timestamp, keyed by item id.
	prices := map[int]db.SnapshotRow{}
	if latest, ok := s.db.LatestTimestamp(); ok {
		for _, snap := range s.db.SnapshotsAt(latest) {
			prices[snap.ItemID] = snap
		}
	}

	writeJSON(w, 200, map[string]interface{}{
		"data": engine.EvaluateWatchlist(entries, prices),
	})
}

type addWatchlistRequest struct {
	ItemID      int      `json:"itemId"`
	MinMargin   *int     `json:"minMargin"`
	MinRoi      *float64 `json:"minRoi"`
	MaxBuyPrice *int     `json:"maxBuyPrice"`
	Notes       *string  `json:"notes"`
}

func (s *Server) handleAddWatchlist(w http.ResponseWriter, r *http.Request) {
	var req addWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid json")
		return
	}
	if req.ItemID == 0 {
		writeError(w, 400, "itemId is required")
		return
	}
	if _, ok := s.db.GetItem(req.ItemID); !ok {
		writeError(w, 404, "Item not found")
		return
	}
	entry, err := s.db.AddWatchlistItem(req.ItemID, req.MinMargin, req.MinRoi, req.MaxBuyPrice, req.Notes)
	if err != nil {
		writeError(w, 500, "Failed to add to watchlist")
		return
	}
	writeJSON(w, 201, entry)
}

func (s *Server) handleUpdateWatchlist(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "Invalid ID")
		return
	}

	// Distinguish "field absent" from "field explicitly null": absent keys
	// leave the stored value alone, nulls clear it.
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, 400, "invalid json")
		return
	}
	var upd db.WatchlistUpdate
	if v, ok := raw["minMargin"]; ok {
		upd.MinMarginSet = true
		json.Unmarshal(v, &upd.MinMargin)
	}
	if v, ok := raw["minRoi"]; ok {
		upd.MinRoiSet = true
		json.Unmarshal(v, &upd.MinRoi)
	}
	if v, ok := raw["maxBuyPrice"]; ok {
		upd.MaxBuyPriceSet = true
		json.Unmarshal(v, &upd.MaxBuyPrice)
	}
	if v, ok := raw["notes"]; ok {
		upd.NotesSet = true
		json.Unmarshal(v, &upd.Notes)
	}

	if !s.db.UpdateWatchlistItem(id, upd) {
		writeError(w, 404, "Item not found")
		return
	}
	entry, _ := s.db.GetWatchlistEntry(id)
	writeJSON(w, 200, entry)
}

func (s *Server) handleDeleteWatchlist(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "Invalid ID")
		return
	}
	if !s.db.DeleteWatchlistItem(id) {
		writeError(w, 404, "Item not found")
		return
	}
	writeJSON(w, 200, map[string]bool{"success": true})
}
