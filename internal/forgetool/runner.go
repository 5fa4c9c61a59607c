package forgetool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kitforge/kitforge/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete share smoke test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting kitforge share test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("shares", config.NumShares),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.String("logFile", config.LogFile),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate share submissions
	shares, err := generateShares(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("share generation failed: %w", err)
	}

	// Step 3: Submit shares concurrently
	if err := submitShares(ctx, config, shares, stats); err != nil {
		return fmt.Errorf("share submission failed: %w", err)
	}

	// Step 4: Wait for async evaluation
	logger.Get().Info(ctx, "waiting for shares to be evaluated")
	time.Sleep(ProcessingDelay)

	// Step 5: Retrieve ranks concurrently
	rankings, err := retrieveRanks(ctx, config, shares, stats)
	if err != nil {
		return fmt.Errorf("rank retrieval failed: %w", err)
	}

	// Step 6: Get the community top list
	top, err := getTop(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("top list retrieval failed: %w", err)
	}

	// Step 7: Verify results
	if err := verifyResults(config, rankings, top); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 8: Save submissions to file
	if err := saveSharesToFile(ctx, config, shares); err != nil {
		logger.Get().Warn(ctx, "failed to save shares to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveSharesToFile saves the generated submissions to a JSON file.
func saveSharesToFile(ctx context.Context, config *Config, shares []Share) error {
	if len(shares) == 0 {
		return fmt.Errorf("no shares to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_shares_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, share := range shares {
		jsonData, err := marshalJSON(share)
		if err != nil {
			return fmt.Errorf("failed to marshal share %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write share %d: %w", i, err)
		}

		if i < len(shares)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "shares saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, sharesPerSecond float64

	if stats.SharesSubmitted > 0 {
		successRate = float64(stats.SharesSuccessful) / float64(stats.SharesSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		sharesPerSecond = float64(stats.SharesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("sharesGenerated", stats.SharesGenerated),
		logger.Int("sharesSubmitted", stats.SharesSubmitted),
		logger.Int("sharesSuccessful", stats.SharesSuccessful),
		logger.Int("sharesDuplicate", stats.SharesDuplicate),
		logger.Int("sharesFailed", stats.SharesFailed),
		logger.Int("ranksRetrieved", stats.RanksRetrieved),
		logger.Int("topEntries", stats.TopEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("sharesPerSecond", sharesPerSecond))
}
