package filter

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
	"github.com/AL-ANWARTECH/phishing-detector/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// HTTPFilter exposes the detector over a JSON API
type HTTPFilter struct {
	service      *core.PhishingDetectorService
	store        core.ResultStore
	logger       *zap.Logger
	listenAddr   string
	historyLimit int
	server       *http.Server
}

// NewHTTPFilter creates a new HTTP filter
func NewHTTPFilter(
	service *core.PhishingDetectorService,
	store core.ResultStore,
	logger *zap.Logger,
	listenAddr string,
	historyLimit int,
) *HTTPFilter {
	return &HTTPFilter{
		service:      service,
		store:        store,
		logger:       logger,
		listenAddr:   listenAddr,
		historyLimit: historyLimit,
	}
}

type analyzeRequest struct {
	EmailContent string `json:"email_content" binding:"required"`
}

type analyzeResponse struct {
	IsPhishing      bool     `json:"is_phishing"`
	ConfidenceScore float64  `json:"confidence_score"`
	RuleScore       float64  `json:"rule_score"`
	MLPrediction    int      `json:"ml_prediction"`
	MLConfidence    float64  `json:"ml_confidence"`
	URLScore        float64  `json:"url_score"`
	RuleReasons     []string `json:"rule_reasons"`
	URLReasons      []string `json:"url_reasons"`
	Error           string   `json:"error,omitempty"`
}

// Router builds the gin engine with all routes registered
func (f *HTTPFilter) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/analyze", f.handleAnalyze)
	r.GET("/health", f.handleHealth)
	r.GET("/history", f.handleHistory)
	r.GET("/stats", f.handleStats)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func (f *HTTPFilter) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no email content provided"})
		return
	}

	result := f.service.AnalyzeEmail(c.Request.Context(), req.EmailContent)

	if f.store != nil {
		if err := f.store.SaveResult(c.Request.Context(), req.EmailContent, result); err != nil {
			f.logger.Error("Failed to persist analysis result", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, analyzeResponse{
		IsPhishing:      result.IsPhishing,
		ConfidenceScore: result.ConfidenceScore,
		RuleScore:       result.RuleScore,
		MLPrediction:    result.MLPrediction,
		MLConfidence:    result.MLConfidence,
		URLScore:        result.URLScore,
		RuleReasons:     result.RuleReasons,
		URLReasons:      result.URLReasons,
		Error:           result.Error,
	})
}

func (f *HTTPFilter) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"ml_model_trained": f.service.Classifier().IsTrained(),
		"system":           "phishing_detector",
	})
}

func (f *HTTPFilter) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.Snapshot())
}

func (f *HTTPFilter) handleHistory(c *gin.Context) {
	if f.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "result store not configured"})
		return
	}

	limit := f.historyLimit
	if v, ok := c.GetQuery("limit"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	results, err := f.store.History(c.Request.Context(), limit)
	if err != nil {
		f.logger.Error("Failed to load analysis history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

// ProcessEmail analyzes raw email text directly, bypassing HTTP. Used by
// tests and by callers holding a filter reference.
func (f *HTTPFilter) ProcessEmail(ctx context.Context, rawEmail string) (*core.AnalysisResult, error) {
	result := f.service.AnalyzeEmail(ctx, rawEmail)
	if f.store != nil {
		if err := f.store.SaveResult(ctx, rawEmail, result); err != nil {
			f.logger.Error("Failed to persist analysis result", zap.Error(err))
		}
	}
	return result, nil
}

// Start starts the HTTP listener
func (f *HTTPFilter) Start() error {
	f.server = &http.Server{
		Addr:         f.listenAddr,
		Handler:      f.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	f.logger.Info("HTTP filter starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the HTTP listener down
func (f *HTTPFilter) Stop() error {
	if f.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return f.server.Shutdown(ctx)
}
