// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
)

// CommunityDependencies defines the interface for community ranking reads.
type CommunityDependencies interface {
	TopN(ctx context.Context, n int) ([]Entry, error)
}

// CommunityHandler handles community top-N requests.
type CommunityHandler struct {
	deps     CommunityDependencies
	maxLimit int
}

// NewCommunityHandler creates a new community handler.
func NewCommunityHandler(deps CommunityDependencies, maxLimit int) *CommunityHandler {
	return &CommunityHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetTop handles GET /v1/community/top?limit=N requests.
func (h *CommunityHandler) HandleGetTop(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_community_top"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.TopN(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
