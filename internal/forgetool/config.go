package forgetool

import "time"

// Config holds configuration for the smoke test
type Config struct {
	BaseURL    string        // Base URL of the service
	NumShares  int           // Number of share submissions to generate
	TopN       int           // Number of top entries to fetch
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for submissions
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// Share represents a share submission to be posted
type Share struct {
	SubmissionID string   `json:"submission_id"`
	Text         string   `json:"text,omitempty"`
	Filters      *Filters `json:"filters,omitempty"`

	// BuildID is filled in from the service's ack.
	BuildID string `json:"build_id,omitempty"`
}

// Filters mirrors the structured intent shape accepted by the API
type Filters struct {
	Class      string   `json:"class,omitempty"`
	Element    string   `json:"element,omitempty"`
	Activity   string   `json:"activity,omitempty"`
	Playstyle  string   `json:"playstyle,omitempty"`
	FocusStats []string `json:"focus_stats,omitempty"`
}

// Entry represents a community ranking entry
type Entry struct {
	Rank     int    `json:"rank"`
	BuildID  string `json:"build_id"`
	Score    int    `json:"score"`
	Class    string `json:"class"`
	Activity string `json:"activity"`
	Tier     string `json:"tier"`
}

// AckResponse represents the response from a share submission
type AckResponse struct {
	Status    string `json:"status"`
	BuildID   string `json:"build_id"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds smoke test statistics
type Stats struct {
	SharesGenerated   int
	SharesSubmitted   int
	SharesSuccessful  int
	SharesDuplicate   int
	SharesFailed      int
	RanksRetrieved    int
	TopEntries        int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
