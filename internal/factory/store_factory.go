package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AL-ANWARTECH/phishing-detector/internal/adapters/store"
	"github.com/AL-ANWARTECH/phishing-detector/internal/config"
	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
	"go.uber.org/zap"
)

// StoreFactory creates result stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateResultStore creates a result store based on the configuration
func (f *StoreFactory) CreateResultStore() (core.ResultStore, error) {
	storeType := f.cfg.GetString("store.type")

	switch storeType {
	case "memory":
		return store.NewMemoryStore(f.logger), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("store.sqlite_path")
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(sqlitePath, f.logger)
	case "mysql":
		return store.NewMySQLStore(f.cfg.GetString("store.mysql_dsn"), f.logger)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeType)
	}
}

// HistoryLimit returns the configured default history page size
func (f *StoreFactory) HistoryLimit() int {
	return f.cfg.GetInt("store.history_limit")
}
