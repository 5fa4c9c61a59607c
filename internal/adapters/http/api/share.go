// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// ShareDependencies defines the interface for share submission processing.
type ShareDependencies interface {
	Share(ctx context.Context, submissionID string, input RecommendInput) (buildID string, duplicate, accepted bool)
}

// ShareHandler handles community share submissions.
type ShareHandler struct {
	deps ShareDependencies
}

// NewShareHandler creates a new share handler.
func NewShareHandler(deps ShareDependencies) *ShareHandler {
	return &ShareHandler{deps: deps}
}

// shareRequest mirrors the schema for POST /v1/builds/share.
type shareRequest struct {
	SubmissionID string `json:"submission_id"`
	intentRequest
}

func (s shareRequest) validateShare() error {
	if strings.TrimSpace(s.SubmissionID) == "" {
		return errors.New("missing submission_id")
	}
	return s.validate()
}

// HandlePostShare handles POST /v1/builds/share requests.
func (h *ShareHandler) HandlePostShare(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_share"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validateShare(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	buildID, duplicate, accepted := h.deps.Share(r.Context(), req.SubmissionID, req.input())
	if duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}
	if !accepted {
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", BuildID: buildID, Duplicate: false})
}
