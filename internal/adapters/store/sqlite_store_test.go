package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "results.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreSaveAndHistory(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	first := sampleResult(80)
	second := sampleResult(20)
	require.NoError(t, s.SaveResult(ctx, "phishy email", first))
	require.NoError(t, s.SaveResult(ctx, "harmless email", second))

	history, err := s.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Newest first
	assert.Equal(t, 20.0, history[0].ConfidenceScore)
	assert.False(t, history[0].IsPhishing)
	assert.Equal(t, 80.0, history[1].ConfidenceScore)
	assert.True(t, history[1].IsPhishing)
	assert.Equal(t, "URL shortener domain: bit.ly", history[1].URLReasons)
	assert.WithinDuration(t, time.Now(), history[1].AnalyzedAt, time.Minute)
}

func TestSQLiteStoreHistoryDefaultLimit(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		require.NoError(t, s.SaveResult(ctx, "email", sampleResult(float64(i))))
	}

	history, err := s.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, history, 10)
}

func TestSQLiteStoreThreatIntelDeduplicates(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddMaliciousURL(ctx, "http://evil.tk/login", "analyst"))
	require.NoError(t, s.AddMaliciousURL(ctx, "http://evil.tk/login", "feed"))
	require.NoError(t, s.AddMaliciousDomain(ctx, "evil.tk", "feed"))
	require.NoError(t, s.AddMaliciousDomain(ctx, "fake-bank.com", "analyst"))

	urls, err := s.MaliciousURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://evil.tk/login"}, urls)

	domains, err := s.MaliciousDomains(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"evil.tk", "fake-bank.com"}, domains)
}

func TestSQLiteStoreReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.SaveResult(ctx, "email", sampleResult(70)))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	history, err := reopened.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 70.0, history[0].ConfidenceScore)
}
