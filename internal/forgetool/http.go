package forgetool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitShares posts submissions concurrently using a worker pool
func submitShares(ctx context.Context, config *Config, shares []Share, stats *Stats) error {
	log.Printf("submitting %d shares with %d workers...", len(shares), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/v1/builds/share"

	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	var lastReport time.Time
	reportInterval := 1 * time.Second

	shareChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range shareChan {
				select {
				case <-ctx.Done():
					return
				default:
					result, buildID := submitSingleShare(ctx, client, url, shares[index])
					if buildID != "" {
						shares[index].BuildID = buildID
					}

					atomic.AddInt64(&submitted, 1)
					switch result {
					case "success":
						atomic.AddInt64(&successful, 1)
					case "duplicate":
						atomic.AddInt64(&duplicate, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						log.Printf("progress: %d/%d submitted (success: %d, duplicate: %d, failed: %d)",
							total, len(shares), atomic.LoadInt64(&successful), atomic.LoadInt64(&duplicate), atomic.LoadInt64(&failed))
					}
				}
			}
		}()
	}

	go func() {
		defer close(shareChan)
		for i := range shares {
			select {
			case <-ctx.Done():
				return
			case shareChan <- i:
			}
		}
	}()

	wg.Wait()

	stats.SharesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.SharesSuccessful = int(atomic.LoadInt64(&successful))
	stats.SharesDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.SharesFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`share submission completed:
   Successful: %d
   Duplicate: %d
   Failed: %d
`, stats.SharesSuccessful, stats.SharesDuplicate, stats.SharesFailed)

	return nil
}

// submitSingleShare posts one submission and returns the result and the
// assigned build id, if any.
func submitSingleShare(ctx context.Context, client *HTTPClient, url string, share Share) (string, string) {
	resp, err := client.Post(ctx, url, share)
	if err != nil {
		return "failed", ""
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed", ""
	}

	switch resp.StatusCode {
	case StatusAccepted:
		var ack AckResponse
		if err := unmarshalJSON(body, &ack); err == nil && ack.Status == "accepted" {
			return "success", ack.BuildID
		}
		return "success", ""
	case StatusOK:
		// Duplicate submission
		return "duplicate", ""
	default:
		return "failed", ""
	}
}
