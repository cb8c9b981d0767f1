package training

import (
	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
)

// Metrics summarizes classifier performance over a labeled test set. The
// phishing label (1) is the positive class.
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Examples  int     `json:"examples"`
}

// Evaluate runs the classifier over the labeled examples and computes
// standard binary classification metrics. Prediction errors count as a miss.
func Evaluate(classifier *core.TextClassifier, examples []core.LabeledExample) Metrics {
	var truePos, falsePos, trueNeg, falseNeg int

	for _, example := range examples {
		predicted, _, err := classifier.Predict(example.Features)
		if err != nil {
			predicted = -1
		}
		switch {
		case predicted == 1 && example.Label == 1:
			truePos++
		case predicted == 1 && example.Label == 0:
			falsePos++
		case predicted == 0 && example.Label == 0:
			trueNeg++
		default:
			falseNeg++
		}
	}

	m := Metrics{Examples: len(examples)}
	if len(examples) == 0 {
		return m
	}

	m.Accuracy = float64(truePos+trueNeg) / float64(len(examples))
	if truePos+falsePos > 0 {
		m.Precision = float64(truePos) / float64(truePos+falsePos)
	}
	if truePos+falseNeg > 0 {
		m.Recall = float64(truePos) / float64(truePos+falseNeg)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
