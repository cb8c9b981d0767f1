package core

import (
	"context"
	"time"

	"github.com/AL-ANWARTECH/phishing-detector/internal/metrics"
	"github.com/AL-ANWARTECH/phishing-detector/internal/whitelist"
	"go.uber.org/zap"
)

// PhishingDetectorService merges the rule engine, the text classifier and
// the URL analyzer into a single calibrated verdict. It is the only entry
// point the outer surfaces call; it never propagates a raw failure and
// always hands back a usable AnalysisResult.
type PhishingDetectorService struct {
	extractor  *FeatureExtractor
	rules      *RuleEngine
	classifier *TextClassifier
	urls       *URLAnalyzer
	whitelist  *whitelist.Checker
	logger     *zap.Logger
	ruleWeight float64
	mlWeight   float64
	threshold  float64
}

// NewPhishingDetectorService creates a new detector service
func NewPhishingDetectorService(
	extractor *FeatureExtractor,
	rules *RuleEngine,
	classifier *TextClassifier,
	urls *URLAnalyzer,
	whitelistChecker *whitelist.Checker,
	logger *zap.Logger,
	ruleWeight float64,
	mlWeight float64,
	threshold float64,
) *PhishingDetectorService {
	return &PhishingDetectorService{
		extractor:  extractor,
		rules:      rules,
		classifier: classifier,
		urls:       urls,
		whitelist:  whitelistChecker,
		logger:     logger,
		ruleWeight: ruleWeight,
		mlWeight:   mlWeight,
		threshold:  threshold,
	}
}

// AnalyzeEmail runs the full detection pipeline over raw email text. Any
// failure inside the pipeline is converted into an error-tagged result with
// IsPhishing=false and ConfidenceScore=0 rather than surfaced to the caller.
func (s *PhishingDetectorService) AnalyzeEmail(ctx context.Context, rawEmail string) (result *AnalysisResult) {
	startTime := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Analysis pipeline panicked", zap.Any("panic", r))
			result = &AnalysisResult{
				IsPhishing:      false,
				ConfidenceScore: 0,
				Error:           "internal analysis error",
				AnalyzedAt:      time.Now(),
			}
			metrics.RecordAnalysis(false, true, 0, time.Since(startTime))
		}
	}()

	features := s.extractor.Extract(rawEmail)

	if s.whitelist != nil && s.whitelist.IsWhitelisted(features.SenderDomain) {
		s.logger.Info("Skipping analysis for whitelisted sender",
			zap.String("sender", features.FromAddress),
			zap.String("action", "whitelist_bypass"))
		result = &AnalysisResult{
			IsPhishing:      false,
			ConfidenceScore: 0,
			MLConfidence:    0.5,
			RuleReasons:     []string{"Sender domain is whitelisted"},
			URLReasons:      []string{},
			Features:        features,
			AnalyzedAt:      time.Now(),
		}
		metrics.RecordAnalysis(false, false, 0, time.Since(startTime))
		return result
	}

	ruleScore, ruleReasons := s.rules.Evaluate(features)

	// An untrained classifier defaults to a neutral legitimate prediction so
	// the pipeline always produces a verdict
	mlPrediction, mlConfidence := 0, 0.5
	if s.classifier.IsTrained() {
		prediction, confidence, err := s.classifier.Predict(features)
		if err == nil {
			mlPrediction, mlConfidence = prediction, confidence
		} else {
			s.logger.Warn("Classifier prediction failed, using neutral default", zap.Error(err))
		}
	}

	urlScore, urlReasons := s.urls.AnalyzeEmailURLs(features)

	hybridScore := s.calculateHybridScore(float64(ruleScore), mlPrediction, mlConfidence, urlScore)
	isPhishing := hybridScore > s.threshold

	result = &AnalysisResult{
		IsPhishing:      isPhishing,
		ConfidenceScore: hybridScore,
		RuleScore:       float64(ruleScore),
		MLPrediction:    mlPrediction,
		MLConfidence:    mlConfidence,
		URLScore:        urlScore,
		RuleReasons:     ruleReasons,
		URLReasons:      urlReasons,
		Features:        features,
		AnalyzedAt:      time.Now(),
	}

	s.logger.Debug("Email analyzed",
		zap.Bool("is_phishing", isPhishing),
		zap.Float64("confidence_score", hybridScore),
		zap.Int("rule_score", ruleScore),
		zap.Int("ml_prediction", mlPrediction),
		zap.Float64("url_score", urlScore),
		zap.Duration("duration", time.Since(startTime)))
	metrics.RecordAnalysis(isPhishing, false, hybridScore, time.Since(startTime))

	return result
}

// calculateHybridScore combines the three sub-scores into one value capped
// at 100. A "legitimate" classifier prediction contributes 0 regardless of
// its confidence; the URL term carries a fixed 0.4 share and the rule/ml
// terms are each scaled by 0.6 of their configured weight.
func (s *PhishingDetectorService) calculateHybridScore(ruleScore float64, mlPrediction int, mlConfidence float64, urlScore float64) float64 {
	normalizedRuleScore := ruleScore / 100.0
	normalizedURLScore := urlScore / 100.0

	mlContribution := float64(mlPrediction) * mlConfidence

	hybridScore := (s.ruleWeight * 0.6 * normalizedRuleScore * 100) +
		(s.mlWeight * 0.6 * mlContribution * 100) +
		(0.4 * normalizedURLScore * 100)

	if hybridScore > 100 {
		hybridScore = 100
	}
	return hybridScore
}

// Train feeds labeled examples to the text classifier
func (s *PhishingDetectorService) Train(examples []LabeledExample) error {
	phishing, legitimate := 0, 0
	for _, example := range examples {
		if example.Label == 1 {
			phishing++
		} else {
			legitimate++
		}
	}

	s.classifier.Train(examples)
	metrics.RecordTraining(phishing, legitimate)

	s.logger.Info("Detector training complete",
		zap.Int("phishing_examples", phishing),
		zap.Int("legitimate_examples", legitimate))
	return nil
}

// Classifier exposes the owned classifier for persistence by the boundary
func (s *PhishingDetectorService) Classifier() *TextClassifier {
	return s.classifier
}

// Threshold returns the configured phishing threshold
func (s *PhishingDetectorService) Threshold() float64 {
	return s.threshold
}
