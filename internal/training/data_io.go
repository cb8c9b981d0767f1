package training

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
)

type labeledRecord struct {
	Features struct {
		Subject         string   `json:"subject"`
		Body            string   `json:"body"`
		FromAddress     string   `json:"from_address"`
		ToAddress       string   `json:"to_address"`
		ReplyTo         string   `json:"reply_to"`
		SenderDomain    string   `json:"sender_domain"`
		ReplyDomain     string   `json:"reply_domain"`
		Links           []string `json:"links"`
		AttachmentCount int      `json:"attachment_count"`
	} `json:"features"`
	Label int `json:"label"`
}

// LoadData reads labeled examples from a JSON file
func LoadData(path string) ([]core.LabeledExample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read training data file: %w", err)
	}

	var records []labeledRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse training data: %w", err)
	}

	examples := make([]core.LabeledExample, 0, len(records))
	for _, r := range records {
		examples = append(examples, core.LabeledExample{
			Features: &core.EmailFeatures{
				Subject:         r.Features.Subject,
				Body:            r.Features.Body,
				FromAddress:     r.Features.FromAddress,
				ToAddress:       r.Features.ToAddress,
				ReplyTo:         r.Features.ReplyTo,
				SenderDomain:    r.Features.SenderDomain,
				ReplyDomain:     r.Features.ReplyDomain,
				Links:           r.Features.Links,
				AttachmentCount: r.Features.AttachmentCount,
			},
			Label: r.Label,
		})
	}
	return examples, nil
}

// SaveData writes labeled examples to a JSON file in the format LoadData reads
func SaveData(path string, examples []core.LabeledExample) error {
	records := make([]labeledRecord, 0, len(examples))
	for _, example := range examples {
		var r labeledRecord
		r.Features.Subject = example.Features.Subject
		r.Features.Body = example.Features.Body
		r.Features.FromAddress = example.Features.FromAddress
		r.Features.ToAddress = example.Features.ToAddress
		r.Features.ReplyTo = example.Features.ReplyTo
		r.Features.SenderDomain = example.Features.SenderDomain
		r.Features.ReplyDomain = example.Features.ReplyDomain
		r.Features.Links = example.Features.Links
		r.Features.AttachmentCount = example.Features.AttachmentCount
		r.Label = example.Label
		records = append(records, r)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode training data: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write training data file: %w", err)
	}
	return nil
}
