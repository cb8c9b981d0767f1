package ports

import (
	"context"

	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
)

// EmailFilter defines the interface for an analysis surface: something that
// receives raw emails, runs them through the detector and owns persistence
// of the outcome
type EmailFilter interface {
	// ProcessEmail analyzes raw email text and returns the outcome
	ProcessEmail(ctx context.Context, rawEmail string) (*core.AnalysisResult, error)

	// Start starts the surface (HTTP listener, IMAP poll loop, ...)
	Start() error

	// Stop stops the surface
	Stop() error
}
