package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
	"go.uber.org/zap"
)

// MemoryStore is an in-memory implementation of the ResultStore interface,
// intended for tests and single-shot CLI runs
type MemoryStore struct {
	mu      sync.RWMutex
	results []core.StoredResult
	urls    map[string]struct{}
	domains map[string]struct{}
	nextID  int64
	logger  *zap.Logger
}

// NewMemoryStore creates a new in-memory result store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		urls:    make(map[string]struct{}),
		domains: make(map[string]struct{}),
		nextID:  1,
		logger:  logger,
	}
}

// SaveResult persists an analysis outcome
func (s *MemoryStore) SaveResult(ctx context.Context, rawEmail string, result *core.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	analyzedAt := result.AnalyzedAt
	if analyzedAt.IsZero() {
		analyzedAt = time.Now()
	}

	s.results = append(s.results, core.StoredResult{
		ID:              s.nextID,
		IsPhishing:      result.IsPhishing,
		ConfidenceScore: result.ConfidenceScore,
		RuleScore:       result.RuleScore,
		MLPrediction:    result.MLPrediction,
		MLConfidence:    result.MLConfidence,
		URLScore:        result.URLScore,
		RuleReasons:     strings.Join(result.RuleReasons, ", "),
		URLReasons:      strings.Join(result.URLReasons, ", "),
		AnalyzedAt:      analyzedAt,
	})
	s.nextID++
	return nil
}

// History returns the most recent analysis outcomes, newest first
func (s *MemoryStore) History(ctx context.Context, limit int) ([]core.StoredResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.results) {
		limit = len(s.results)
	}

	out := make([]core.StoredResult, 0, limit)
	for i := len(s.results) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.results[i])
	}
	return out, nil
}

// AddMaliciousURL records a known-bad URL
func (s *MemoryStore) AddMaliciousURL(ctx context.Context, url, reportedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls[url] = struct{}{}
	return nil
}

// AddMaliciousDomain records a known-bad domain
func (s *MemoryStore) AddMaliciousDomain(ctx context.Context, domain, reportedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.domains[domain] = struct{}{}
	return nil
}

// MaliciousURLs returns all recorded known-bad URLs
func (s *MemoryStore) MaliciousURLs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.urls))
	for u := range s.urls {
		out = append(out, u)
	}
	return out, nil
}

// MaliciousDomains returns all recorded known-bad domains
func (s *MemoryStore) MaliciousDomains(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.domains))
	for d := range s.domains {
		out = append(out, d)
	}
	return out, nil
}
