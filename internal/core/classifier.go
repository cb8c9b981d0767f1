package core

import (
	"encoding/gob"
	"io"
	"math"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var nonLetterPattern = regexp.MustCompile(`[^a-z\s]`)

// classifierState is the full serializable state of the classifier. It
// round-trips exactly through Save/Load.
type classifierState struct {
	Vocabulary      map[string]struct{}
	PhishingWords   map[string]int
	LegitimateWords map[string]int
	PhishingCount   int
	LegitimateCount int
	Trained         bool
}

func newClassifierState() classifierState {
	return classifierState{
		Vocabulary:      make(map[string]struct{}),
		PhishingWords:   make(map[string]int),
		LegitimateWords: make(map[string]int),
	}
}

// TextClassifier is a binary Naive Bayes classifier with Laplace smoothing
// over bag-of-words features from the subject and body. Train and Load take
// the write lock; concurrent Predict calls share a read lock.
type TextClassifier struct {
	mu     sync.RWMutex
	state  classifierState
	logger *zap.Logger
}

// NewTextClassifier creates an untrained classifier
func NewTextClassifier(logger *zap.Logger) *TextClassifier {
	return &TextClassifier{
		state:  newClassifierState(),
		logger: logger,
	}
}

// tokenize lowercases the text, strips everything but letters and
// whitespace and splits on whitespace.
func tokenize(subject, body string) []string {
	combined := strings.ToLower(subject + " " + body)
	combined = nonLetterPattern.ReplaceAllString(combined, "")
	return strings.Fields(combined)
}

// IsTrained reports whether at least one Train or Load call has completed
func (c *TextClassifier) IsTrained() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Trained
}

// Train accumulates word and example counts from the labeled examples.
// Repeated calls add to the existing state rather than resetting it. An
// empty batch still marks the classifier trained; Predict tolerates the
// degenerate zero-count state by defaulting to legitimate.
func (c *TextClassifier) Train(examples []LabeledExample) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, example := range examples {
		words := tokenize(example.Features.Subject, example.Features.Body)
		if example.Label == 1 {
			c.state.PhishingCount++
			for _, word := range words {
				c.state.PhishingWords[word]++
				c.state.Vocabulary[word] = struct{}{}
			}
		} else {
			c.state.LegitimateCount++
			for _, word := range words {
				c.state.LegitimateWords[word]++
				c.state.Vocabulary[word] = struct{}{}
			}
		}
	}

	c.state.Trained = true
	c.logger.Info("Classifier trained",
		zap.Int("examples", len(examples)),
		zap.Int("phishing_examples", c.state.PhishingCount),
		zap.Int("legitimate_examples", c.state.LegitimateCount),
		zap.Int("vocabulary_size", len(c.state.Vocabulary)))
}

// Predict classifies the email as phishing (1) or legitimate (0) with a
// confidence in [0,1]. It returns ErrModelNotTrained before the first Train.
//
// Probabilities are accumulated in log space so long bodies cannot
// underflow the per-class product; the comparison outcome is identical to
// the plain product form.
func (c *TextClassifier) Predict(features *EmailFeatures) (int, float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.state.Trained {
		return 0, 0, ErrModelNotTrained
	}

	totalExamples := c.state.PhishingCount + c.state.LegitimateCount
	if totalExamples == 0 {
		return 0, 0.5, nil
	}
	words := tokenize(features.Subject, features.Body)

	totalPhishingWords := 0
	for _, n := range c.state.PhishingWords {
		totalPhishingWords += n
	}
	totalLegitimateWords := 0
	for _, n := range c.state.LegitimateWords {
		totalLegitimateWords += n
	}
	vocabSize := len(c.state.Vocabulary)

	phishingLog := math.Log(float64(c.state.PhishingCount) / float64(totalExamples))
	legitimateLog := math.Log(float64(c.state.LegitimateCount) / float64(totalExamples))

	for _, word := range words {
		phishingLog += math.Log(float64(c.state.PhishingWords[word]+1) / float64(totalPhishingWords+vocabSize))
		legitimateLog += math.Log(float64(c.state.LegitimateWords[word]+1) / float64(totalLegitimateWords+vocabSize))
	}

	// Normalize via the max so the exponentials stay in range
	maxLog := math.Max(phishingLog, legitimateLog)
	phishingScore := math.Exp(phishingLog - maxLog)
	legitimateScore := math.Exp(legitimateLog - maxLog)

	total := phishingScore + legitimateScore
	if total == 0 {
		return 0, 0.5, nil
	}

	if phishingScore > legitimateScore {
		return 1, phishingScore / total, nil
	}
	return 0, legitimateScore / total, nil
}

// Save serializes the full classifier state
func (c *TextClassifier) Save(w io.Writer) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := gob.NewEncoder(w).Encode(&c.state); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// Load replaces the classifier state with a previously saved one. On a
// decode failure the prior in-memory state is left untouched.
func (c *TextClassifier) Load(r io.Reader) error {
	loaded := newClassifierState()
	if err := gob.NewDecoder(r).Decode(&loaded); err != nil {
		return &PersistenceError{Op: "load", Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = loaded
	c.logger.Info("Classifier state loaded",
		zap.Int("phishing_examples", loaded.PhishingCount),
		zap.Int("legitimate_examples", loaded.LegitimateCount),
		zap.Int("vocabulary_size", len(loaded.Vocabulary)))
	return nil
}
