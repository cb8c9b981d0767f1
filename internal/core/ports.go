package core

import (
	"context"
)

// ResultStore defines the interface for persisting analysis outcomes and
// the threat-intel domain/URL lists that seed the URL analyzer
type ResultStore interface {
	// SaveResult persists an analysis outcome together with the raw email
	SaveResult(ctx context.Context, rawEmail string, result *AnalysisResult) error

	// History returns the most recent analysis outcomes, newest first
	History(ctx context.Context, limit int) ([]StoredResult, error)

	// AddMaliciousURL records a known-bad URL; adding a duplicate is a no-op
	AddMaliciousURL(ctx context.Context, url, reportedBy string) error

	// AddMaliciousDomain records a known-bad domain; duplicates are a no-op
	AddMaliciousDomain(ctx context.Context, domain, reportedBy string) error

	// MaliciousURLs returns all recorded known-bad URLs
	MaliciousURLs(ctx context.Context) ([]string, error)

	// MaliciousDomains returns all recorded known-bad domains
	MaliciousDomains(ctx context.Context) ([]string, error)
}
