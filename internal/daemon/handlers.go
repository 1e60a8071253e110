// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package daemon

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/lirios/ostree-sync/internal/catalog"
	"github.com/lirios/ostree-sync/internal/common"
	"github.com/lirios/ostree-sync/internal/config"
	"github.com/lirios/ostree-sync/internal/logger"
)

// FeedsHandler lists the configured feeds
func FeedsHandler(w http.ResponseWriter, r *http.Request) {
	// Get from context
	ctx := r.Context()
	cfg, ok := ctx.Value(KeyConfig).(*config.Config)
	if !ok {
		logger.Error("Unable to retrieve configuration from context")
		http.Error(w, "no configuration found", http.StatusUnprocessableEntity)
		return
	}

	feeds := []common.FeedResponse{}
	for _, feed := range cfg.Feeds {
		feeds = append(feeds, common.FeedResponse{URL: feed.URL, Branches: feed.Branches})
	}

	EncodeJSONReply(w, r, feeds)
}

// SyncHandler starts a sync run for a configured feed
func SyncHandler(w http.ResponseWriter, r *http.Request) {
	// Get from context
	ctx := r.Context()
	cfg, ok := ctx.Value(KeyConfig).(*config.Config)
	if !ok {
		logger.Error("Unable to retrieve configuration from context")
		http.Error(w, "no configuration found", http.StatusUnprocessableEntity)
		return
	}
	runner, ok := ctx.Value(KeyRunner).(*Runner)
	if !ok {
		logger.Error("Unable to retrieve runner from context")
		http.Error(w, "no runner found", http.StatusUnprocessableEntity)
		return
	}

	// Decode request
	var req common.SyncRequest
	if err := DecodeJSONBody(w, r, &req); err != nil {
		HandleDecodeError(w, err)
		return
	}

	feed := cfg.FindFeed(req.URL)
	if feed == nil {
		http.Error(w, "feed not configured", http.StatusNotFound)
		return
	}

	run, err := runner.Start(feed)
	if err != nil {
		if errors.Is(err, ErrSyncInFlight) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		logger.Errorf("Failed to start sync of %s: %v", feed.URL, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	js, err := json.Marshal(common.SyncResponse{RunID: run.ID})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	w.Write(js)
}

// RunsHandler lists all sync runs
func RunsHandler(w http.ResponseWriter, r *http.Request) {
	// Get from context
	ctx := r.Context()
	runner, ok := ctx.Value(KeyRunner).(*Runner)
	if !ok {
		logger.Error("Unable to retrieve runner from context")
		http.Error(w, "no runner found", http.StatusUnprocessableEntity)
		return
	}

	runs := []common.RunResponse{}
	for _, run := range runner.Runs.List() {
		runs = append(runs, runResponse(run))
	}

	EncodeJSONReply(w, r, runs)
}

// RunHandler returns a single sync run
func RunHandler(w http.ResponseWriter, r *http.Request) {
	// Get from context
	ctx := r.Context()
	runner, ok := ctx.Value(KeyRunner).(*Runner)
	if !ok {
		logger.Error("Unable to retrieve runner from context")
		http.Error(w, "no runner found", http.StatusUnprocessableEntity)
		return
	}

	runID := chi.URLParam(r, "runID")
	run := runner.Runs.Get(runID)
	if run == nil {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}

	EncodeJSONReply(w, r, runResponse(run))
}

// UnitsHandler lists the cataloged content units
func UnitsHandler(w http.ResponseWriter, r *http.Request) {
	// Get from context
	ctx := r.Context()
	cat, ok := ctx.Value(KeyCatalog).(*catalog.Catalog)
	if !ok {
		logger.Error("Unable to retrieve catalog from context")
		http.Error(w, "no catalog found", http.StatusUnprocessableEntity)
		return
	}

	units := []common.UnitResponse{}
	err := cat.Walk(func(unit *catalog.Unit) error {
		units = append(units, common.UnitResponse{
			TypeID:      unit.TypeID,
			Key:         unit.Key,
			Metadata:    unit.Metadata,
			StoragePath: unit.StoragePath,
		})
		return nil
	})
	if err != nil {
		logger.Errorf("Failed to walk the catalog: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	EncodeJSONReply(w, r, units)
}

func runResponse(run *Run) common.RunResponse {
	resp := common.RunResponse{
		ID:      run.ID,
		URL:     run.FeedURL,
		Stage:   run.Stage,
		Detail:  run.Detail,
		State:   string(run.State),
		Error:   run.Error,
		Started: run.Started.Format(time.RFC3339),
	}
	if !run.Finished.IsZero() {
		resp.Finished = run.Finished.Format(time.RFC3339)
	}
	return resp
}
