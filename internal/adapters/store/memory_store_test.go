package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleResult(score float64) *core.AnalysisResult {
	return &core.AnalysisResult{
		IsPhishing:      score > 50,
		ConfidenceScore: score,
		RuleScore:       30,
		MLPrediction:    1,
		MLConfidence:    0.8,
		URLScore:        20,
		RuleReasons:     []string{"Suspicious keyword in subject: urgent", "Urgency indicator detected"},
		URLReasons:      []string{"URL shortener domain: bit.ly"},
		AnalyzedAt:      time.Now(),
	}
}

func TestMemoryStoreSaveAndHistory(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, s.SaveResult(ctx, fmt.Sprintf("email %d", i), sampleResult(float64(i*20))))
	}

	history, err := s.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Newest first
	assert.Equal(t, int64(3), history[0].ID)
	assert.Equal(t, int64(2), history[1].ID)
	assert.Equal(t, 60.0, history[0].ConfidenceScore)
	assert.True(t, history[0].IsPhishing)
	assert.Equal(t, "Suspicious keyword in subject: urgent, Urgency indicator detected", history[0].RuleReasons)
}

func TestMemoryStoreHistoryLimitLargerThanStored(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, s.SaveResult(ctx, "only one", sampleResult(10)))

	history, err := s.History(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestMemoryStoreHistoryEmpty(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())

	history, err := s.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMemoryStoreSaveFillsAnalyzedAt(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	result := sampleResult(10)
	result.AnalyzedAt = time.Time{}
	require.NoError(t, s.SaveResult(ctx, "raw", result))

	history, err := s.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].AnalyzedAt.IsZero())
}

func TestMemoryStoreThreatIntel(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, s.AddMaliciousURL(ctx, "http://evil.tk/login", "analyst"))
	require.NoError(t, s.AddMaliciousURL(ctx, "http://evil.tk/login", "analyst"))
	require.NoError(t, s.AddMaliciousDomain(ctx, "evil.tk", "feed"))

	urls, err := s.MaliciousURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://evil.tk/login"}, urls)

	domains, err := s.MaliciousDomains(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"evil.tk"}, domains)
}
