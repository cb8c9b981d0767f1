package core

import (
	"time"
)

// EmailFeatures is the structured representation of a raw email consumed by
// every scorer. All string fields default to "" and Links may be empty; none
// of the fields are ever nil on a value produced by the extractor.
type EmailFeatures struct {
	Subject         string
	Body            string
	FromAddress     string
	ToAddress       string
	ReplyTo         string
	SenderDomain    string
	ReplyDomain     string
	Links           []string
	AttachmentCount int
}

// LabeledExample pairs email features with a ground-truth label for
// classifier training. Label 1 means phishing, 0 means legitimate.
type LabeledExample struct {
	Features *EmailFeatures
	Label    int
}

// AnalysisResult represents the outcome of a full hybrid analysis
type AnalysisResult struct {
	IsPhishing      bool
	ConfidenceScore float64
	RuleScore       float64
	MLPrediction    int
	MLConfidence    float64
	URLScore        float64
	RuleReasons     []string
	URLReasons      []string
	Features        *EmailFeatures
	Error           string
	AnalyzedAt      time.Time
}

// StoredResult is an analysis outcome as read back from a result store.
// Reason lists are flattened to comma-joined strings on write.
type StoredResult struct {
	ID              int64
	IsPhishing      bool
	ConfidenceScore float64
	RuleScore       float64
	MLPrediction    int
	MLConfidence    float64
	URLScore        float64
	RuleReasons     string
	URLReasons      string
	AnalyzedAt      time.Time
}
