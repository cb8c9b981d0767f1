package whitelist

import (
	"strings"

	"go.uber.org/zap"
)

// Checker answers whether a sender domain is trusted enough to skip
// phishing analysis entirely
type Checker struct {
	domains map[string]struct{}
	logger  *zap.Logger
}

// NewChecker creates a checker over the configured trusted domains
func NewChecker(domains []string, logger *zap.Logger) *Checker {
	normalized := make(map[string]struct{}, len(domains))
	for _, domain := range domains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain != "" {
			normalized[domain] = struct{}{}
		}
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized sender whitelist", zap.Int("domains", len(normalized)))
	}

	return &Checker{domains: normalized, logger: logger}
}

// IsWhitelisted reports whether the sender domain is trusted. An empty
// domain is never whitelisted.
func (c *Checker) IsWhitelisted(senderDomain string) bool {
	if senderDomain == "" || len(c.domains) == 0 {
		return false
	}

	_, ok := c.domains[strings.ToLower(senderDomain)]
	if ok && c.logger != nil {
		c.logger.Debug("Sender domain is whitelisted", zap.String("domain", senderDomain))
	}
	return ok
}
