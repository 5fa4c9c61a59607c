package forgetool

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/kitforge/kitforge/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "test_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	if err := logger.InitWithWriter(multiWriter); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the forge tool.
func ShowHelp() {
	os.Stdout.WriteString(`KitForge Smoke Test Tool
========================

A concurrent tool for exercising the KitForge build recommendation service.

Usage:
  go run cmd/forge-tool/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -shares int
        Number of share submissions to generate and post (default 1000)
  -top int
        Number of top entries to fetch from the community list (default 50)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated shares (default: generated_shares_TIMESTAMP.json)
  -log string
        Log file for test output (default: test_log_TIMESTAMP.log)
  -catalog-out string
        Write a sample catalog YAML to this path and exit
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed a local catalog
  go run cmd/forge-tool/main.go -catalog-out catalog.yaml

  # Test with default settings
  go run cmd/forge-tool/main.go

  # Test with custom parameters
  go run cmd/forge-tool/main.go -shares 5000 -workers 16 -url http://localhost:8080
`)
}
