package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRulesShortenerSenderDomain(t *testing.T) {
	engine := NewRuleEngine()
	score, reasons := engine.Evaluate(&EmailFeatures{
		SenderDomain: "bit.ly",
		ReplyDomain:  "bit.ly",
	})

	assert.GreaterOrEqual(t, score, 20)
	assert.Contains(t, reasons, "Suspicious sender domain")
}

func TestRulesDomainMismatch(t *testing.T) {
	engine := NewRuleEngine()
	score, reasons := engine.Evaluate(&EmailFeatures{
		SenderDomain: "example.com",
		ReplyDomain:  "fake-bank.com",
	})

	assert.Equal(t, 15, score)
	assert.Equal(t, []string{"Sender and reply-to domains don't match"}, reasons)
}

func TestRulesNoMismatchWhenReplyDomainEmpty(t *testing.T) {
	engine := NewRuleEngine()
	score, _ := engine.Evaluate(&EmailFeatures{SenderDomain: "example.com"})
	assert.Equal(t, 0, score)
}

func TestRulesKeywordPerMatch(t *testing.T) {
	engine := NewRuleEngine()
	// "urgent" and "security alert" each score, plus the "urgent" urgency indicator
	score, reasons := engine.Evaluate(&EmailFeatures{
		Subject: "URGENT: Security Alert",
	})

	assert.Equal(t, 25, score)
	assert.Contains(t, reasons, "Suspicious keyword in subject: urgent")
	assert.Contains(t, reasons, "Suspicious keyword in subject: security alert")
	assert.Contains(t, reasons, "Urgency indicator detected")
}

func TestRulesBodyPatterns(t *testing.T) {
	engine := NewRuleEngine()
	score, reasons := engine.Evaluate(&EmailFeatures{
		Body: "your account was suspended, please do a password reset",
	})

	// "account.*suspended" and "password.*reset" both match
	assert.Equal(t, 20, score)
	assert.Equal(t, []string{
		"Suspicious pattern found in body",
		"Suspicious pattern found in body",
	}, reasons)
}

func TestRulesLinkCountAndAttachments(t *testing.T) {
	engine := NewRuleEngine()
	links := []string{"http://a", "http://b", "http://c", "http://d", "http://e", "http://f"}
	score, reasons := engine.Evaluate(&EmailFeatures{
		Links:           links,
		AttachmentCount: 2,
	})

	assert.Equal(t, 25, score)
	assert.Contains(t, reasons, "Excessive number of links")
	assert.Contains(t, reasons, "Multiple attachments detected")
}

func TestRulesSuspiciousTLD(t *testing.T) {
	engine := NewRuleEngine()
	score, reasons := engine.Evaluate(&EmailFeatures{SenderDomain: "free-money.xyz"})

	assert.Equal(t, 10, score)
	assert.Contains(t, reasons, "Suspicious top-level domain")
}

func TestRulesScoreCappedAt100(t *testing.T) {
	engine := NewRuleEngine()
	score, _ := engine.Evaluate(&EmailFeatures{
		Subject:         "urgent immediate action verify account security alert login now click here limited time act now bank paypal amazon apple microsoft today asap",
		Body:            "password reset account suspended confirm information urgent action click here now",
		SenderDomain:    "bit.ly",
		ReplyDomain:     "scam.xyz",
		Links:           make([]string, 10),
		AttachmentCount: 3,
	})

	assert.Equal(t, 100, score)
}

func TestRulesFixtureEmail(t *testing.T) {
	engine := NewRuleEngine()
	score, reasons := engine.Evaluate(&EmailFeatures{
		Subject:      "URGENT: Account Security Alert",
		Body:         "Dear Customer, Your account has been suspended. Please click here to verify: http://fake-bank-login.com/verify",
		SenderDomain: "example.com",
		ReplyDomain:  "fake-bank.com",
		Links:        []string{"http://fake-bank-login.com/verify"},
	})

	assert.Greater(t, score, 30)
	assert.NotEmpty(t, reasons)
}
