package training

import (
	"path/filepath"
	"testing"

	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSampleDataBalanced(t *testing.T) {
	data := SampleData()
	require.Len(t, data, 6)

	phishing, legitimate := 0, 0
	for _, example := range data {
		require.NotNil(t, example.Features)
		assert.NotEmpty(t, example.Features.Subject)
		assert.NotEmpty(t, example.Features.Body)
		switch example.Label {
		case 1:
			phishing++
		case 0:
			legitimate++
		default:
			t.Fatalf("unexpected label %d", example.Label)
		}
	}
	assert.Equal(t, 3, phishing)
	assert.Equal(t, 3, legitimate)
}

func TestGenerateDataSizeAndLabels(t *testing.T) {
	data := GenerateData(50, 42)
	require.Len(t, data, 50)

	for _, example := range data {
		require.NotNil(t, example.Features)
		assert.Contains(t, []int{0, 1}, example.Label)
		assert.NotEmpty(t, example.Features.Subject)
	}
}

func TestGenerateDataDeterministicForSeed(t *testing.T) {
	first := GenerateData(20, 7)
	second := GenerateData(20, 7)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Label, second[i].Label)
		assert.Equal(t, first[i].Features.Subject, second[i].Features.Subject)
	}
}

func TestGenerateDataDoesNotMutateBase(t *testing.T) {
	before := SampleData()[0].Features.Subject
	GenerateData(30, 1)
	assert.Equal(t, before, SampleData()[0].Features.Subject)
}

func TestSaveLoadDataRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training_data.json")
	original := SampleData()

	require.NoError(t, SaveData(path, original))

	loaded, err := LoadData(path)
	require.NoError(t, err)
	require.Len(t, loaded, len(original))

	for i := range original {
		assert.Equal(t, original[i].Label, loaded[i].Label)
		assert.Equal(t, original[i].Features.Subject, loaded[i].Features.Subject)
		assert.Equal(t, original[i].Features.Body, loaded[i].Features.Body)
		assert.Equal(t, original[i].Features.SenderDomain, loaded[i].Features.SenderDomain)
		assert.Equal(t, original[i].Features.Links, loaded[i].Features.Links)
	}
}

func TestLoadDataMissingFile(t *testing.T) {
	_, err := LoadData(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestEvaluateOnFixtures(t *testing.T) {
	classifier := core.NewTextClassifier(zap.NewNop())
	classifier.Train(SampleData())

	m := Evaluate(classifier, SampleData())

	assert.Equal(t, 6, m.Examples)
	// The classifier sees its own training set, so every metric is near 1
	assert.GreaterOrEqual(t, m.Accuracy, 0.8)
	assert.GreaterOrEqual(t, m.Precision, 0.8)
	assert.GreaterOrEqual(t, m.Recall, 0.8)
	assert.GreaterOrEqual(t, m.F1, 0.8)
}

func TestEvaluateEmptySet(t *testing.T) {
	classifier := core.NewTextClassifier(zap.NewNop())
	classifier.Train(SampleData())

	m := Evaluate(classifier, nil)
	assert.Zero(t, m.Examples)
	assert.Zero(t, m.Accuracy)
}
