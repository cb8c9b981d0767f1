package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func classifierTrainingSet() []LabeledExample {
	return []LabeledExample{
		{Features: &EmailFeatures{Subject: "urgent verify your account", Body: "click here to verify your bank account now"}, Label: 1},
		{Features: &EmailFeatures{Subject: "security alert", Body: "your password was reset click here immediately"}, Label: 1},
		{Features: &EmailFeatures{Subject: "account suspended", Body: "urgent action required login now to restore access"}, Label: 1},
		{Features: &EmailFeatures{Subject: "meeting tomorrow", Body: "hi team the meeting is at ten see you there"}, Label: 0},
		{Features: &EmailFeatures{Subject: "lunch plans", Body: "shall we grab lunch on friday at the usual place"}, Label: 0},
		{Features: &EmailFeatures{Subject: "project update", Body: "the latest build passed all checks great work everyone"}, Label: 0},
	}
}

func TestClassifierPredictUntrained(t *testing.T) {
	classifier := NewTextClassifier(zap.NewNop())

	_, _, err := classifier.Predict(&EmailFeatures{Subject: "hello"})
	assert.ErrorIs(t, err, ErrModelNotTrained)
	assert.False(t, classifier.IsTrained())
}

func TestClassifierPredictPhishing(t *testing.T) {
	classifier := NewTextClassifier(zap.NewNop())
	classifier.Train(classifierTrainingSet())
	require.True(t, classifier.IsTrained())

	label, confidence, err := classifier.Predict(&EmailFeatures{
		Subject: "urgent verify your account",
		Body:    "click here now to verify your bank password",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, label)
	assert.Greater(t, confidence, 0.5)
	assert.LessOrEqual(t, confidence, 1.0)
}

func TestClassifierPredictLegitimate(t *testing.T) {
	classifier := NewTextClassifier(zap.NewNop())
	classifier.Train(classifierTrainingSet())

	label, confidence, err := classifier.Predict(&EmailFeatures{
		Subject: "meeting tomorrow",
		Body:    "see you at the meeting with the team",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, label)
	assert.Greater(t, confidence, 0.5)
}

func TestClassifierEmptyTrainingBatch(t *testing.T) {
	classifier := NewTextClassifier(zap.NewNop())
	classifier.Train(nil)

	require.True(t, classifier.IsTrained())
	label, confidence, err := classifier.Predict(&EmailFeatures{Subject: "anything"})
	require.NoError(t, err)
	assert.Equal(t, 0, label)
	assert.Equal(t, 0.5, confidence)
}

func TestClassifierTwoExampleCorpus(t *testing.T) {
	classifier := NewTextClassifier(zap.NewNop())

	phishing := &EmailFeatures{
		Subject: "URGENT: Account Security Alert",
		Body:    "Your account has been suspended. Click here now to verify your account.",
	}
	classifier.Train([]LabeledExample{
		{Features: &EmailFeatures{
			Subject: "Meeting Reminder",
			Body:    "Just a reminder about our meeting tomorrow at 2 PM.",
		}, Label: 0},
		{Features: phishing, Label: 1},
	})

	label, confidence, err := classifier.Predict(phishing)
	require.NoError(t, err)
	assert.Equal(t, 1, label)
	assert.Greater(t, confidence, 0.5)
}

func TestClassifierIncrementalTraining(t *testing.T) {
	classifier := NewTextClassifier(zap.NewNop())
	set := classifierTrainingSet()
	classifier.Train(set[:3])
	classifier.Train(set[3:])

	label, _, err := classifier.Predict(&EmailFeatures{
		Subject: "urgent security alert",
		Body:    "verify your account now",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, label)
}

func TestClassifierConfidenceGrowsWithReinforcement(t *testing.T) {
	classifier := NewTextClassifier(zap.NewNop())
	classifier.Train(classifierTrainingSet())

	query := &EmailFeatures{Subject: "urgent", Body: "verify your account now"}
	_, before, err := classifier.Predict(query)
	require.NoError(t, err)

	// Feed more phishing examples reusing the query vocabulary
	reinforcement := []LabeledExample{
		{Features: &EmailFeatures{Subject: "urgent", Body: "verify your account now"}, Label: 1},
		{Features: &EmailFeatures{Subject: "urgent", Body: "verify your account now"}, Label: 1},
	}
	classifier.Train(reinforcement)

	_, after, err := classifier.Predict(query)
	require.NoError(t, err)
	assert.Greater(t, after, before)
}

func TestClassifierLongBodyStaysFinite(t *testing.T) {
	classifier := NewTextClassifier(zap.NewNop())
	classifier.Train(classifierTrainingSet())

	// Thousands of tokens would underflow a plain probability product
	body := strings.Repeat("verify your account urgent click here now bank ", 2000)
	label, confidence, err := classifier.Predict(&EmailFeatures{Subject: "urgent", Body: body})
	require.NoError(t, err)
	assert.Equal(t, 1, label)
	assert.False(t, confidence != confidence, "confidence must not be NaN")
	assert.Greater(t, confidence, 0.5)
	assert.LessOrEqual(t, confidence, 1.0)
}

func TestClassifierSaveLoadRoundTrip(t *testing.T) {
	original := NewTextClassifier(zap.NewNop())
	original.Train(classifierTrainingSet())

	query := &EmailFeatures{Subject: "urgent verify account", Body: "click here now"}
	wantLabel, wantConfidence, err := original.Predict(query)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, original.Save(&buf))

	restored := NewTextClassifier(zap.NewNop())
	require.NoError(t, restored.Load(&buf))
	require.True(t, restored.IsTrained())

	gotLabel, gotConfidence, err := restored.Predict(query)
	require.NoError(t, err)
	assert.Equal(t, wantLabel, gotLabel)
	assert.InDelta(t, wantConfidence, gotConfidence, 1e-12)
}

func TestClassifierLoadFailureKeepsState(t *testing.T) {
	classifier := NewTextClassifier(zap.NewNop())
	classifier.Train(classifierTrainingSet())

	err := classifier.Load(bytes.NewReader([]byte("not a gob stream")))
	require.Error(t, err)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "load", perr.Op)

	// Prior state survives the failed load
	assert.True(t, classifier.IsTrained())
	label, _, err := classifier.Predict(&EmailFeatures{Subject: "urgent verify account", Body: "click here"})
	require.NoError(t, err)
	assert.Equal(t, 1, label)
}
