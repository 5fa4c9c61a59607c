package forgetool

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// retrieveRanks fetches the community rank for every accepted build.
func retrieveRanks(ctx context.Context, config *Config, shares []Share, stats *Stats) ([]Entry, error) {
	// Only accepted shares have a build id to look up.
	buildIDs := make([]string, 0, len(shares))
	for _, share := range shares {
		if share.BuildID != "" {
			buildIDs = append(buildIDs, share.BuildID)
		}
	}

	log.Printf("retrieving ranks for %d builds with %d workers...", len(buildIDs), config.Workers)

	client := newHTTPClient(config.Timeout)

	rankings := make([]Entry, len(buildIDs))
	var (
		retrieved int64
		failed    int64
	)

	var lastReport time.Time
	reportInterval := 1 * time.Second

	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
					buildID := buildIDs[index]
					entry, err := retrieveSingleRank(ctx, client, config.BaseURL, buildID)

					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("failed to get rank for %s: %v", buildID, err)
						}
					} else {
						rankings[index] = entry
						atomic.AddInt64(&retrieved, 1)
					}

					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&retrieved) + atomic.LoadInt64(&failed)
						log.Printf("rank progress: %d/%d retrieved (success: %d, failed: %d)",
							total, len(buildIDs), atomic.LoadInt64(&retrieved), atomic.LoadInt64(&failed))
					}
				}
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := range buildIDs {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()

	// Filter out empty entries (failed retrievals)
	validRankings := make([]Entry, 0, len(rankings))
	for _, entry := range rankings {
		if entry.BuildID != "" {
			validRankings = append(validRankings, entry)
		}
	}

	stats.RanksRetrieved = len(validRankings)

	log.Printf(`rank retrieval completed:
   Retrieved: %d
   Failed: %d
`, len(validRankings), int(atomic.LoadInt64(&failed)))

	return validRankings, nil
}

// retrieveSingleRank fetches the ranking entry for a single build.
func retrieveSingleRank(ctx context.Context, client *HTTPClient, baseURL, buildID string) (Entry, error) {
	url := fmt.Sprintf("%s/v1/community/rank/%s", baseURL, buildID)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return Entry{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return Entry{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var entry Entry
	if err := unmarshalJSON(body, &entry); err != nil {
		return Entry{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return entry, nil
}

// getTop fetches the top N community entries.
func getTop(ctx context.Context, config *Config, stats *Stats) ([]Entry, error) {
	log.Printf("getting top %d community entries...", config.TopN)

	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/v1/community/top?limit=%d", config.BaseURL, config.TopN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var top []Entry
	if err := unmarshalJSON(body, &top); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.TopEntries = len(top)
	log.Printf("retrieved %d community entries", len(top))

	return top, nil
}
