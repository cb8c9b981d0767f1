package core

import (
	"fmt"
	"regexp"
	"strings"
)

// RuleEngine scores an email against a fixed set of heuristic rules. Every
// rule is independently additive and appends a reason per trigger; reasons
// are intentionally not de-duplicated.
type RuleEngine struct {
	shortenerDomains   []string
	suspiciousKeywords []string
	suspiciousPatterns []*regexp.Regexp
	suspiciousTLDs     []string
	urgencyIndicators  []string
}

// NewRuleEngine creates a rule engine with the built-in rule sets
func NewRuleEngine() *RuleEngine {
	patterns := []string{
		`password.*reset`,
		`account.*suspended`,
		`confirm.*information`,
		`urgent.*action`,
		`click.*here.*now`,
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}

	return &RuleEngine{
		shortenerDomains: []string{
			"bit.ly", "tinyurl.com", "t.co", "ow.ly", "bit.do",
			"tiny.cc", "rebrand.ly", "is.gd", "v.gd",
		},
		suspiciousKeywords: []string{
			"urgent", "immediate action", "verify account", "security alert",
			"login now", "click here", "limited time", "act now",
			"bank", "paypal", "amazon", "apple", "microsoft",
		},
		suspiciousPatterns: compiled,
		suspiciousTLDs:     []string{"tk", "ml", "ga", "cf", "xyz"},
		urgencyIndicators:  []string{"urgent", "immediate", "asap", "today", "now"},
	}
}

// Evaluate applies every rule to the feature record and returns the capped
// score with the reasons in trigger order.
func (r *RuleEngine) Evaluate(features *EmailFeatures) (int, []string) {
	score := 0
	reasons := []string{}

	senderDomain := strings.ToLower(features.SenderDomain)
	replyDomain := strings.ToLower(features.ReplyDomain)
	subject := strings.ToLower(features.Subject)
	body := strings.ToLower(features.Body)

	// Rule 1: sender domain is a known URL shortener
	for _, domain := range r.shortenerDomains {
		if senderDomain == domain {
			score += 20
			reasons = append(reasons, "Suspicious sender domain")
			break
		}
	}

	// Rule 2: sender and reply-to domains disagree
	if senderDomain != "" && replyDomain != "" && senderDomain != replyDomain {
		score += 15
		reasons = append(reasons, "Sender and reply-to domains don't match")
	}

	// Rule 3: suspicious subject keywords, scored per match
	for _, keyword := range r.suspiciousKeywords {
		if strings.Contains(subject, keyword) {
			score += 10
			reasons = append(reasons, fmt.Sprintf("Suspicious keyword in subject: %s", keyword))
		}
	}

	// Rule 4: suspicious body patterns, scored per match
	for _, pattern := range r.suspiciousPatterns {
		if pattern.MatchString(body) {
			score += 10
			reasons = append(reasons, "Suspicious pattern found in body")
		}
	}

	// Rule 5: excessive link count
	if len(features.Links) > 5 {
		score += 15
		reasons = append(reasons, "Excessive number of links")
	}

	// Rule 6: suspicious top-level domain
	for _, tld := range r.suspiciousTLDs {
		if strings.HasSuffix(senderDomain, tld) {
			score += 10
			reasons = append(reasons, "Suspicious top-level domain")
		}
	}

	// Rule 7: urgency indicators in subject or body
	for _, indicator := range r.urgencyIndicators {
		if strings.Contains(subject, indicator) || strings.Contains(body, indicator) {
			score += 5
			reasons = append(reasons, "Urgency indicator detected")
		}
	}

	// Rule 8: multiple attachments
	if features.AttachmentCount > 1 {
		score += 10
		reasons = append(reasons, "Multiple attachments detected")
	}

	if score > 100 {
		score = 100
	}
	return score, reasons
}
