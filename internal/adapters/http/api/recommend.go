// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kitforge/kitforge/internal/domain/compose"
)

// RecommendDependencies defines the interface for recommendation operations.
type RecommendDependencies interface {
	Recommend(ctx context.Context, input RecommendInput) (*Recommendation, error)
}

// RecommendHandler handles recommendation requests.
type RecommendHandler struct {
	deps RecommendDependencies
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps RecommendDependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// HandlePostRecommendation handles POST /v1/recommendations requests.
func (h *RecommendHandler) HandlePostRecommendation(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_recommendation"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req intentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	rec, err := h.deps.Recommend(r.Context(), req.input())
	if err != nil {
		status, code := composeErrorStatus(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// composeErrorStatus translates composition failures into response codes.
// A request the catalog cannot legally satisfy is the client's problem,
// not a server fault.
func composeErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, compose.ErrExoticConflict):
		return http.StatusUnprocessableEntity, "exotic_conflict"
	case errors.Is(err, compose.ErrLockedItemNotFound):
		return http.StatusUnprocessableEntity, "locked_item_not_found"
	case errors.Is(err, compose.ErrLockedClassMismatch):
		return http.StatusUnprocessableEntity, "locked_class_mismatch"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
