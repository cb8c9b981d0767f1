package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the ResultStore interface
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite result store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS analysis_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email_content TEXT,
			is_phishing BOOLEAN,
			confidence_score REAL,
			rule_score REAL,
			ml_prediction INTEGER,
			ml_confidence REAL,
			url_score REAL,
			rule_reasons TEXT,
			url_reasons TEXT,
			analyzed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS malicious_urls (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT UNIQUE,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			reported_by TEXT DEFAULT 'system'
		)`,
		`CREATE TABLE IF NOT EXISTS malicious_domains (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			domain TEXT UNIQUE,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			reported_by TEXT DEFAULT 'system'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyzed_at ON analysis_results(analyzed_at)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	logger.Info("SQLite result store initialized", zap.String("path", dbPath))

	return &SQLiteStore{db: db, logger: logger}, nil
}

// SaveResult persists an analysis outcome
func (s *SQLiteStore) SaveResult(ctx context.Context, rawEmail string, result *core.AnalysisResult) error {
	analyzedAt := result.AnalyzedAt
	if analyzedAt.IsZero() {
		analyzedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analysis_results
		(email_content, is_phishing, confidence_score, rule_score,
		 ml_prediction, ml_confidence, url_score, rule_reasons, url_reasons, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rawEmail, result.IsPhishing, result.ConfidenceScore, result.RuleScore,
		result.MLPrediction, result.MLConfidence, result.URLScore,
		strings.Join(result.RuleReasons, ", "), strings.Join(result.URLReasons, ", "),
		analyzedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert analysis result: %w", err)
	}
	return nil
}

// History returns the most recent analysis outcomes, newest first
func (s *SQLiteStore) History(ctx context.Context, limit int) ([]core.StoredResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, is_phishing, confidence_score, rule_score,
		       ml_prediction, ml_confidence, url_score, rule_reasons, url_reasons, analyzed_at
		FROM analysis_results
		ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var results []core.StoredResult
	for rows.Next() {
		var r core.StoredResult
		var analyzedAt string
		if err := rows.Scan(&r.ID, &r.IsPhishing, &r.ConfidenceScore, &r.RuleScore,
			&r.MLPrediction, &r.MLConfidence, &r.URLScore, &r.RuleReasons, &r.URLReasons, &analyzedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, analyzedAt); err == nil {
			r.AnalyzedAt = ts
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// AddMaliciousURL records a known-bad URL; duplicates are ignored
func (s *SQLiteStore) AddMaliciousURL(ctx context.Context, url, reportedBy string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO malicious_urls (url, reported_by) VALUES (?, ?)
	`, url, reportedBy)
	if err != nil {
		return fmt.Errorf("failed to insert malicious URL: %w", err)
	}
	return nil
}

// AddMaliciousDomain records a known-bad domain; duplicates are ignored
func (s *SQLiteStore) AddMaliciousDomain(ctx context.Context, domain, reportedBy string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO malicious_domains (domain, reported_by) VALUES (?, ?)
	`, domain, reportedBy)
	if err != nil {
		return fmt.Errorf("failed to insert malicious domain: %w", err)
	}
	return nil
}

// MaliciousURLs returns all recorded known-bad URLs
func (s *SQLiteStore) MaliciousURLs(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `SELECT url FROM malicious_urls`)
}

// MaliciousDomains returns all recorded known-bad domains
func (s *SQLiteStore) MaliciousDomains(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `SELECT domain FROM malicious_domains`)
}

func (s *SQLiteStore) queryStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query threat intel: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan threat intel row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
