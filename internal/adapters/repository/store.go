// Package repository defines the community vault interface and errors.
package repository

import (
	"context"

	"github.com/kitforge/kitforge/internal/domain/model"
)

// Entry represents a ranked community build.
type Entry struct {
	Rank     int            `json:"rank"`
	BuildID  string         `json:"build_id"`
	Score    int            `json:"score"`
	Class    model.Class    `json:"class"`
	Activity model.Activity `json:"activity"`
	Tier     string         `json:"tier"`
}

// Store provides read/write access to the community ranking state.
type Store interface {
	// Submit records a score for a build if higher than the existing one.
	// Returns true if the store updated the score, false otherwise.
	Submit(ctx context.Context, buildID string, score int, class model.Class, activity model.Activity, tier string) (bool, error)

	// Rank returns the current rank and score for a build.
	// Returns ErrNotFound if the build is unknown.
	Rank(ctx context.Context, buildID string) (Entry, error)

	// TopN returns the top-N entries ordered by score desc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of builds tracked in the vault.
	Count(ctx context.Context) int
}
