// Package httpapi serves shared memories over HTTP. The API is read-only:
// only GET routes exist, so mutating methods are answered by the router
// with 405.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/dmitrijs2005/memorymap/internal/buildinfo"
	"github.com/dmitrijs2005/memorymap/internal/common"
	"github.com/dmitrijs2005/memorymap/internal/logging"
	"github.com/dmitrijs2005/memorymap/internal/models"
	"github.com/dmitrijs2005/memorymap/internal/repositories/kv"
	"github.com/dmitrijs2005/memorymap/internal/share"
	"github.com/dmitrijs2005/memorymap/internal/store"
	"github.com/dmitrijs2005/memorymap/internal/timeline"
)

// NoMemoriesMessage accompanies an empty shared view.
const NoMemoriesMessage = "No memories found"

// SnapshotLoader returns the persisted record collection exactly as stored.
// A nil value means the store is empty.
type SnapshotLoader interface {
	LoadState(ctx context.Context) ([]byte, error)
}

// StoreLoader reads the memories key from the key-value store per call.
type StoreLoader struct {
	Repo kv.Repository
}

func (l StoreLoader) LoadState(ctx context.Context) ([]byte, error) {
	b, err := l.Repo.Get(ctx, store.KeyMemories)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorPersistence, err)
	}
	return b, nil
}

// Handler answers share and health requests.
type Handler struct {
	loader SnapshotLoader
	cache  *viewCache
	loc    *time.Location
	logger logging.Logger
}

// NewHandler builds a Handler. A cacheSize of zero disables caching; a nil
// loc groups the timeline in UTC.
func NewHandler(loader SnapshotLoader, cacheSize int, cacheTTL time.Duration, loc *time.Location, logger logging.Logger) *Handler {
	return &Handler{
		loader: loader,
		cache:  newViewCache(cacheSize, cacheTTL),
		loc:    loc,
		logger: logger.With("module", "httpapi"),
	}
}

// SharedResponse is the JSON body of a resolved share link.
type SharedResponse struct {
	ReadOnly bool                  `json:"readonly"`
	Mode     models.AccessMode     `json:"mode"`
	IDs      []int64               `json:"ids"`
	Count    int                   `json:"count"`
	Memories []models.MemoryRecord `json:"memories"`
	Timeline []timeline.Year       `json:"timeline"`
	Message  string                `json:"message,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type liveResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// Shared resolves the share link in the request URI.
func (h *Handler) Shared(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	d, err := share.Decode(r.URL.RequestURI())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	// The stored value is read on every request; the cache only skips
	// decoding and resolving when it is unchanged.
	raw, err := h.loader.LoadState(ctx)
	if err != nil {
		h.logger.Error(ctx, "failed to load shared memories", "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, common.ErrorPersistence) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, errorResponse{Error: "failed to load shared memories"})
		return
	}

	version := xxhash.Sum64(raw)
	view, ok := h.cache.get(version, d)
	if !ok {
		view = share.Resolve(d, store.DecodeSnapshot(ctx, raw, h.logger))
		h.cache.add(version, d, view)
	}

	recs := view.Records()
	resp := SharedResponse{
		ReadOnly: true,
		Mode:     view.Mode(),
		IDs:      d.RecordIDs,
		Count:    view.Len(),
		Memories: recs,
		Timeline: timeline.Group(recs, h.loc),
	}
	if view.Empty() {
		resp.Message = NoMemoriesMessage
	}
	writeJSON(w, http.StatusOK, resp)
}

// Live is the liveness check.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, liveResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   buildinfo.Version(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
