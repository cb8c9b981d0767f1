package factory

import (
	"context"
	"fmt"
	"os"

	"github.com/AL-ANWARTECH/phishing-detector/internal/config"
	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
	"github.com/AL-ANWARTECH/phishing-detector/internal/training"
	"github.com/AL-ANWARTECH/phishing-detector/internal/whitelist"
	"go.uber.org/zap"
)

// DetectorFactory assembles the detector service from configuration
type DetectorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewDetectorFactory creates a new detector factory
func NewDetectorFactory(cfg *config.Config, logger *zap.Logger) *DetectorFactory {
	return &DetectorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateDetectorService builds the detector with its sub-scorers. The URL
// analyzer's suspicious-domain set is extended with threat intel from the
// store, an existing model file is loaded when autoload is on, and the
// fixture corpus is used as a fallback when the classifier would otherwise
// start untrained.
func (f *DetectorFactory) CreateDetectorService(resultStore core.ResultStore) (*core.PhishingDetectorService, error) {
	classifier := core.NewTextClassifier(f.logger)

	modelPath := f.cfg.GetString("model.path")
	if f.cfg.GetBool("model.autoload") && modelPath != "" {
		if file, err := os.Open(modelPath); err == nil {
			loadErr := classifier.Load(file)
			file.Close()
			if loadErr != nil {
				return nil, fmt.Errorf("failed to load classifier model: %w", loadErr)
			}
			f.logger.Info("Loaded classifier model", zap.String("path", modelPath))
		}
	}

	if !classifier.IsTrained() && f.cfg.GetBool("model.train_on_start") {
		classifier.Train(training.SampleData())
		f.logger.Info("Classifier bootstrapped from fixture corpus")
	}

	urlAnalyzer := core.NewURLAnalyzer()
	if resultStore != nil {
		if domains, err := resultStore.MaliciousDomains(context.Background()); err == nil && len(domains) > 0 {
			urlAnalyzer.AddSuspiciousDomains(domains)
			f.logger.Info("Loaded threat-intel domains", zap.Int("count", len(domains)))
		}
	}

	whitelistChecker := whitelist.NewChecker(f.cfg.GetStringSlice("detector.whitelisted_domains"), f.logger)

	return core.NewPhishingDetectorService(
		core.NewFeatureExtractor(f.logger),
		core.NewRuleEngine(),
		classifier,
		urlAnalyzer,
		whitelistChecker,
		f.logger,
		f.cfg.GetFloat64("detector.rule_weight"),
		f.cfg.GetFloat64("detector.ml_weight"),
		f.cfg.GetFloat64("detector.threshold"),
	), nil
}

// SaveModel persists the classifier state to the configured model path
func (f *DetectorFactory) SaveModel(service *core.PhishingDetectorService) error {
	modelPath := f.cfg.GetString("model.path")
	if modelPath == "" {
		return nil
	}

	file, err := os.Create(modelPath)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer file.Close()

	if err := service.Classifier().Save(file); err != nil {
		return err
	}
	f.logger.Info("Saved classifier model", zap.String("path", modelPath))
	return nil
}
