package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Analyses by final verdict (phishing, safe, error)
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phishing_analyses_total",
			Help: "Total number of email analyses by verdict",
		},
		[]string{"verdict"},
	)

	// End-to-end analysis latency
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "phishing_analysis_duration_seconds",
			Help:    "Email analysis duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
		},
	)

	// Training examples ingested by label
	TrainingExamplesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phishing_training_examples_total",
			Help: "Total number of training examples ingested by label",
		},
		[]string{"label"},
	)

	// Confidence score distribution of completed analyses
	ConfidenceScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "phishing_confidence_score",
			Help:    "Hybrid confidence score distribution",
			Buckets: prometheus.LinearBuckets(0, 10, 11), // 0 to 100
		},
	)
)

// Stats is a point-in-time snapshot of the cumulative analysis counters,
// served verbatim on the stats endpoint
type Stats struct {
	TotalAnalyses    int64   `json:"total_analyses"`
	PhishingDetected int64   `json:"phishing_detected"`
	SafeEmails       int64   `json:"safe_emails"`
	ErrorCount       int64   `json:"error_count"`
	PhishingRate     float64 `json:"phishing_rate"`
	SuccessRate      float64 `json:"success_rate"`
	AvgAnalysisTime  float64 `json:"avg_analysis_time"`
	MaxAnalysisTime  float64 `json:"max_analysis_time"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
}

// tracker accumulates process-local counters. Prometheus owns the exposition
// format; this keeps the raw numbers the stats endpoint reports.
var tracker = struct {
	sync.Mutex
	started   time.Time
	total     int64
	phishing  int64
	safe      int64
	errors    int64
	totalTime float64
	maxTime   float64
}{started: time.Now()}

// RecordAnalysis records one completed analysis
func RecordAnalysis(isPhishing bool, failed bool, score float64, duration time.Duration) {
	verdict := "safe"
	switch {
	case failed:
		verdict = "error"
	case isPhishing:
		verdict = "phishing"
	}
	AnalysesTotal.WithLabelValues(verdict).Inc()
	AnalysisDuration.Observe(duration.Seconds())
	if !failed {
		ConfidenceScore.Observe(score)
	}

	tracker.Lock()
	defer tracker.Unlock()
	tracker.total++
	switch {
	case failed:
		tracker.errors++
	case isPhishing:
		tracker.phishing++
	default:
		tracker.safe++
	}
	seconds := duration.Seconds()
	tracker.totalTime += seconds
	if seconds > tracker.maxTime {
		tracker.maxTime = seconds
	}
}

// Snapshot returns the cumulative analysis counters with derived rates
func Snapshot() Stats {
	tracker.Lock()
	defer tracker.Unlock()

	s := Stats{
		TotalAnalyses:    tracker.total,
		PhishingDetected: tracker.phishing,
		SafeEmails:       tracker.safe,
		ErrorCount:       tracker.errors,
		MaxAnalysisTime:  tracker.maxTime,
		UptimeSeconds:    time.Since(tracker.started).Seconds(),
	}
	if tracker.total > 0 {
		s.PhishingRate = float64(tracker.phishing) / float64(tracker.total) * 100
		s.SuccessRate = float64(tracker.total-tracker.errors) / float64(tracker.total) * 100
		s.AvgAnalysisTime = tracker.totalTime / float64(tracker.total)
	}
	return s
}

// RecordTraining records a training batch
func RecordTraining(phishing, legitimate int) {
	TrainingExamplesTotal.WithLabelValues("phishing").Add(float64(phishing))
	TrainingExamplesTotal.WithLabelValues("legitimate").Add(float64(legitimate))
}
