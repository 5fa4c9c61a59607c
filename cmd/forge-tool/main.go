package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/kitforge/kitforge/internal/forgetool"
)

// Default configuration constants.
const (
	defaultNumShares   = 1000
	defaultTopN        = 50
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numShares  = flag.Int("shares", defaultNumShares, "Number of share submissions to generate and post")
		topN       = flag.Int("top", defaultTopN, "Number of top entries to fetch from the community list")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated shares (default: generated_shares_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		catalogOut = flag.String("catalog-out", "", "Write a sample catalog YAML to this path and exit")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		forgetool.ShowHelp()
		return
	}

	if *catalogOut != "" {
		if err := forgetool.WriteSampleCatalog(*catalogOut); err != nil {
			os.Stderr.WriteString("Failed to write catalog: " + err.Error() + "\n")
			return
		}
		os.Stdout.WriteString("Sample catalog written to " + *catalogOut + "\n")
		return
	}

	// Setup logging
	if err := forgetool.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &forgetool.Config{
		BaseURL:    *baseURL,
		NumShares:  *numShares,
		TopN:       *topN,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the test
	if err := forgetool.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
