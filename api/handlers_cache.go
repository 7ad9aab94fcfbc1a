package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/status-im/user-directory/cache"
	"github.com/status-im/user-directory/interfaces"
)

// queryStateView is the JSON form of a cache entry
type queryStateView struct {
	Key            string                 `json:"key"`
	Status         interfaces.QueryStatus `json:"status"`
	FetchStatus    interfaces.FetchStatus `json:"fetch_status"`
	IsInvalidated  bool                   `json:"is_invalidated"`
	DataUpdatedAt  *time.Time             `json:"data_updated_at,omitempty"`
	ErrorUpdatedAt *time.Time             `json:"error_updated_at,omitempty"`
	FetchCount     int                    `json:"fetch_count"`
	Error          string                 `json:"error,omitempty"`
	Data           any                    `json:"data,omitempty"`
}

type cacheSnapshotResponse struct {
	Entries []queryStateView   `json:"entries"`
	Stats   cache.ServiceStats `json:"stats"`
}

func newQueryStateView(state interfaces.QueryState) queryStateView {
	view := queryStateView{
		Key:           state.Key,
		Status:        state.Status,
		FetchStatus:   state.FetchStatus,
		IsInvalidated: state.IsInvalidated,
		FetchCount:    state.FetchCount,
		Data:          state.Data,
	}
	if !state.DataUpdatedAt.IsZero() {
		t := state.DataUpdatedAt
		view.DataUpdatedAt = &t
	}
	if !state.ErrorUpdatedAt.IsZero() {
		t := state.ErrorUpdatedAt
		view.ErrorUpdatedAt = &t
	}
	if state.Err != nil {
		view.Error = state.Err.Error()
	}
	return view
}

func (s *Server) snapshotViews() []queryStateView {
	states := s.cacheService.Snapshot()
	views := make([]queryStateView, 0, len(states))
	for _, state := range states {
		views = append(views, newQueryStateView(state))
	}
	return views
}

// handleCacheSnapshot returns every cache entry
func (s *Server) handleCacheSnapshot(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, cacheSnapshotResponse{
		Entries: s.snapshotViews(),
		Stats:   s.cacheService.Stats(),
	})
}

// handleCacheInvalidate invalidates entries by key prefix, all of them when
// no prefix is given
func (s *Server) handleCacheInvalidate(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	s.sendJSONResponse(w, invalidateResponse{Invalidated: s.cacheService.InvalidatePrefix(prefix)})
}

// handleCacheClear drops all entries
func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.cacheService.Clear()
	s.sendJSONResponse(w, map[string]string{"status": "ok"})
}

// handleCacheRemove drops a single entry
func (s *Server) handleCacheRemove(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if s.cacheService.Remove(key) == 0 {
		s.sendError(w, http.StatusNotFound, fmt.Sprintf("no cache entry %q", key))
		return
	}
	s.sendJSONResponse(w, map[string]string{"removed": key})
}
