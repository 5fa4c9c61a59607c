// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	repository "github.com/kitforge/kitforge/internal/adapters/repository"
	service "github.com/kitforge/kitforge/internal/app"
	"github.com/kitforge/kitforge/internal/domain/model"
)

// RecommendInput mirrors the service-level recommendation input.
type RecommendInput = service.RecommendInput

// Recommendation mirrors the service-level recommendation result.
type Recommendation = service.Recommendation

// Entry mirrors the read shape returned by community ranking queries.
type Entry = repository.Entry

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Recommend resolves intent and produces a scored build plus alternatives.
	Recommend(ctx context.Context, input RecommendInput) (*Recommendation, error)

	// Share accepts a community submission for async ranking. Returns false
	// accepted on backpressure.
	Share(ctx context.Context, submissionID string, input RecommendInput) (buildID string, duplicate, accepted bool)

	// Read operations expose community ranking data.
	TopN(ctx context.Context, n int) ([]Entry, error)
	Rank(ctx context.Context, buildID string) (Entry, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	recommendHandler *RecommendHandler
	shareHandler     *ShareHandler
	communityHandler *CommunityHandler
	rankHandler      *RankHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxCommunityLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		recommendHandler: NewRecommendHandler(deps),
		shareHandler:     NewShareHandler(deps),
		communityHandler: NewCommunityHandler(deps, maxCommunityLimit),
		rankHandler:      NewRankHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/v1/recommendations", MetricsMiddleware(s.recommendHandler.HandlePostRecommendation, "recommendations"))
	mux.HandleFunc("/v1/builds/share", MetricsMiddleware(s.shareHandler.HandlePostShare, "share"))
	mux.HandleFunc("/v1/community/top", MetricsMiddleware(s.communityHandler.HandleGetTop, "community_top"))
	mux.HandleFunc("/v1/community/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "community_rank"))
}

// intentRequest carries the two intent input paths shared by the recommend
// and share endpoints. Text and filters may both be set; filters win, and
// the options block layers over whichever path resolved the intent.
type intentRequest struct {
	Text    string                    `json:"text"`
	Filters *model.Filters            `json:"filters,omitempty"`
	Options *service.RecommendOptions `json:"options,omitempty"`
}

func (r intentRequest) validate() error {
	if strings.TrimSpace(r.Text) == "" && r.Filters == nil {
		return errors.New("either text or filters must be provided")
	}
	return nil
}

func (r intentRequest) input() RecommendInput {
	return RecommendInput{RawText: r.Text, Filters: r.Filters, Options: r.Options}
}

type ackResponse struct {
	Status    string `json:"status"`
	BuildID   string `json:"build_id,omitempty"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
