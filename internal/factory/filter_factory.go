package factory

import (
	"fmt"

	"github.com/AL-ANWARTECH/phishing-detector/internal/adapters/filter"
	"github.com/AL-ANWARTECH/phishing-detector/internal/config"
	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
	"github.com/AL-ANWARTECH/phishing-detector/internal/ports"
	"go.uber.org/zap"
)

// FilterFactory creates email filters based on configuration
type FilterFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.PhishingDetectorService
	store   core.ResultStore
}

// NewFilterFactory creates a new filter factory
func NewFilterFactory(cfg *config.Config, logger *zap.Logger, service *core.PhishingDetectorService, store core.ResultStore) *FilterFactory {
	return &FilterFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
		store:   store,
	}
}

// CreateEmailFilter creates an email filter based on the configuration
func (f *FilterFactory) CreateEmailFilter() (ports.EmailFilter, error) {
	filterType := f.cfg.GetString("server.filter_type")

	switch filterType {
	case "http":
		return filter.NewHTTPFilter(
			f.service,
			f.store,
			f.logger,
			f.cfg.GetString("server.listen_address"),
			f.cfg.GetInt("store.history_limit"),
		), nil
	case "imap":
		pollInterval, err := f.cfg.GetDuration("imap.poll_interval")
		if err != nil {
			return nil, fmt.Errorf("invalid imap poll interval: %w", err)
		}
		return filter.NewIMAPFilter(
			f.service,
			f.store,
			f.logger,
			f.cfg.GetString("imap.server"),
			f.cfg.GetString("imap.username"),
			f.cfg.GetString("imap.password"),
			f.cfg.GetString("imap.folder"),
			pollInterval,
			f.cfg.GetInt("imap.max_messages"),
			filter.AlertConfig{
				Enabled:      f.cfg.GetBool("alerts.enabled"),
				SMTPAddress:  f.cfg.GetString("alerts.smtp_address"),
				SMTPUsername: f.cfg.GetString("alerts.smtp_username"),
				SMTPPassword: f.cfg.GetString("alerts.smtp_password"),
				From:         f.cfg.GetString("alerts.from"),
				To:           f.cfg.GetString("alerts.to"),
			},
		), nil
	case "cli":
		return filter.NewCliFilter(
			f.service,
			f.store,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
		)
	default:
		return nil, fmt.Errorf("unsupported filter type: %s", filterType)
	}
}
