package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the ResultStore interface
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL result store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS analysis_results (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			email_content TEXT,
			is_phishing BOOLEAN,
			confidence_score DOUBLE,
			rule_score DOUBLE,
			ml_prediction INT,
			ml_confidence DOUBLE,
			url_score DOUBLE,
			rule_reasons TEXT,
			url_reasons TEXT,
			analyzed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_analyzed_at (analyzed_at)
		)`,
		`CREATE TABLE IF NOT EXISTS malicious_urls (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			url VARCHAR(2048),
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			reported_by VARCHAR(255) DEFAULT 'system',
			UNIQUE KEY uniq_url (url(500))
		)`,
		`CREATE TABLE IF NOT EXISTS malicious_domains (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			domain VARCHAR(255) UNIQUE,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			reported_by VARCHAR(255) DEFAULT 'system'
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	logger.Info("MySQL result store initialized")

	return &MySQLStore{db: db, logger: logger}, nil
}

// SaveResult persists an analysis outcome
func (s *MySQLStore) SaveResult(ctx context.Context, rawEmail string, result *core.AnalysisResult) error {
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
		analyzedAt.Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("failed to insert analysis result: %w", err)
	}
	return nil
}

// History returns the most recent analysis outcomes, newest first
func (s *MySQLStore) History(ctx context.Context, limit int) ([]core.StoredResult, error) {
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
		if ts, err := time.Parse("2006-01-02 15:04:05", analyzedAt); err == nil {
			r.AnalyzedAt = ts
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// AddMaliciousURL records a known-bad URL; duplicates are ignored
func (s *MySQLStore) AddMaliciousURL(ctx context.Context, url, reportedBy string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT IGNORE INTO malicious_urls (url, reported_by) VALUES (?, ?)
	`, url, reportedBy)
	if err != nil {
		return fmt.Errorf("failed to insert malicious URL: %w", err)
	}
	return nil
}

// AddMaliciousDomain records a known-bad domain; duplicates are ignored
func (s *MySQLStore) AddMaliciousDomain(ctx context.Context, domain, reportedBy string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT IGNORE INTO malicious_domains (domain, reported_by) VALUES (?, ?)
	`, domain, reportedBy)
	if err != nil {
		return fmt.Errorf("failed to insert malicious domain: %w", err)
	}
	return nil
}

// MaliciousURLs returns all recorded known-bad URLs
func (s *MySQLStore) MaliciousURLs(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `SELECT url FROM malicious_urls`)
}

// MaliciousDomains returns all recorded known-bad domains
func (s *MySQLStore) MaliciousDomains(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `SELECT domain FROM malicious_domains`)
}

func (s *MySQLStore) queryStrings(ctx context.Context, query string) ([]string, error) {
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
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
