package filter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
	"github.com/AL-ANWARTECH/phishing-detector/internal/utils"
	"go.uber.org/zap"
)

// CliFilter implements a command-line surface for phishing detection
type CliFilter struct {
	service *core.PhishingDetectorService
	store   core.ResultStore
	logger  *zap.Logger
	verbose bool
}

// NewCliFilter creates a new CLI filter
func NewCliFilter(service *core.PhishingDetectorService, store core.ResultStore, logger *zap.Logger, verbose bool) (*CliFilter, error) {
	return &CliFilter{
		service: service,
		store:   store,
		logger:  logger,
		verbose: verbose,
	}, nil
}

// ProcessEmail analyzes an email and displays the results
func (f *CliFilter) ProcessEmail(ctx context.Context, rawEmail string) (*core.AnalysisResult, error) {
	startTime := time.Now()
	result := f.service.AnalyzeEmail(ctx, rawEmail)
	duration := time.Since(startTime)

	features := result.Features
	if features != nil {
		fmt.Printf("\n=== Email Summary ===\n")
		fmt.Printf("From: %s\n", features.FromAddress)
		fmt.Printf("To: %s\n", features.ToAddress)
		fmt.Printf("Subject: %s\n", features.Subject)
		fmt.Printf("Links: %d, attachments: %d\n", len(features.Links), features.AttachmentCount)

		if f.verbose {
			fmt.Printf("\nBody preview:\n%s\n", utils.TruncateText(features.Body, 500))
		}
	}

	fmt.Printf("\n=== Results ===\n")
	if result.Error != "" {
		fmt.Printf("Analysis error: %s\n", result.Error)
	} else if result.IsPhishing {
		fmt.Printf("PHISHING DETECTED (confidence: %.2f%%)\n", result.ConfidenceScore)
	} else {
		fmt.Printf("Safe email (confidence: %.2f%%)\n", result.ConfidenceScore)
	}

	if f.verbose {
		fmt.Printf("Rule score: %.0f\n", result.RuleScore)
		fmt.Printf("ML prediction: %d (confidence: %.2f)\n", result.MLPrediction, result.MLConfidence)
		fmt.Printf("URL score: %.2f\n", result.URLScore)
		fmt.Printf("Rule reasons: %s\n", strings.Join(result.RuleReasons, ", "))
		fmt.Printf("URL reasons: %s\n", strings.Join(result.URLReasons, ", "))
	}
	fmt.Printf("Processing time: %v\n", duration)

	if f.store != nil {
		if err := f.store.SaveResult(ctx, rawEmail, result); err != nil {
			f.logger.Error("Failed to persist analysis result", zap.Error(err))
		}
	}

	return result, nil
}

// Start is a no-op for the CLI filter
func (f *CliFilter) Start() error {
	return nil
}

// Stop is a no-op for the CLI filter
func (f *CliFilter) Stop() error {
	return nil
}
