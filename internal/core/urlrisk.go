package core

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
)

var brandNames = []string{"paypal", "amazon", "microsoft", "google", "apple", "bank"}

// URLAnalyzer scores individual URLs for structural phishing indicators.
// The built-in shortener set can be extended at runtime with threat-intel
// domains loaded from a result store.
type URLAnalyzer struct {
	mu                sync.RWMutex
	suspiciousDomains map[string]struct{}
	suspiciousTLDs    []string
}

// NewURLAnalyzer creates a URL analyzer with the built-in shortener set
func NewURLAnalyzer() *URLAnalyzer {
	defaults := []string{
		"bit.ly", "tinyurl.com", "t.co", "ow.ly", "bit.do",
		"tiny.cc", "rebrand.ly", "is.gd", "v.gd", "goo.gl",
	}
	domains := make(map[string]struct{}, len(defaults))
	for _, d := range defaults {
		domains[d] = struct{}{}
	}

	return &URLAnalyzer{
		suspiciousDomains: domains,
		suspiciousTLDs:    []string{".tk", ".ml", ".ga", ".cf", ".xyz"},
	}
}

// AddSuspiciousDomains merges additional known-bad domains into the set
func (a *URLAnalyzer) AddSuspiciousDomains(domains []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			a.suspiciousDomains[d] = struct{}{}
		}
	}
}

// AnalyzeURL scores a single URL. Malformed URLs never raise; they score 0
// with a diagnostic reason.
func (a *URLAnalyzer) AnalyzeURL(rawURL string) (int, []string) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, []string{fmt.Sprintf("Error analyzing URL: %v", err)}
	}

	host := strings.ToLower(parsed.Host)
	score := 0
	reasons := []string{}

	a.mu.RLock()
	_, knownBad := a.suspiciousDomains[host]
	a.mu.RUnlock()
	if knownBad {
		score += 30
		reasons = append(reasons, fmt.Sprintf("URL shortener domain: %s", host))
	}

	if ip := net.ParseIP(host); ip != nil && ip.To4() != nil {
		score += 25
		reasons = append(reasons, "IP address used instead of domain")
	}

	for _, tld := range a.suspiciousTLDs {
		if strings.HasSuffix(host, tld) {
			score += 20
			reasons = append(reasons, fmt.Sprintf("Suspicious TLD in: %s", host))
			break
		}
	}

	// Brand name hiding in an interior label of the hostname, e.g.
	// secure.paypal.evil.com
	labels := strings.Split(host, ".")
	if len(labels) >= 3 {
		for _, label := range labels[1 : len(labels)-1] {
			for _, brand := range brandNames {
				if label == brand {
					score += 35
					reasons = append(reasons, fmt.Sprintf("Suspicious subdomain: %s", label))
				}
			}
		}
	}

	if len(rawURL) > 100 {
		score += 10
		reasons = append(reasons, "Very long URL")
	}

	// An "@" after the scheme hides the real destination behind userinfo
	if len(rawURL) > 8 && strings.Contains(rawURL[8:], "@") {
		score += 25
		reasons = append(reasons, "Suspicious @ character in URL")
	}

	if score > 100 {
		score = 100
	}
	return score, reasons
}

// AnalyzeEmailURLs scores every link in the feature record and reports the
// arithmetic mean across them (0 when there are no links). A single
// high-risk URL among many benign ones is diluted by the averaging; that is
// the documented policy, not an accident.
func (a *URLAnalyzer) AnalyzeEmailURLs(features *EmailFeatures) (float64, []string) {
	totalScore := 0
	allReasons := []string{}

	for _, link := range features.Links {
		score, reasons := a.AnalyzeURL(link)
		totalScore += score
		allReasons = append(allReasons, reasons...)
	}

	if len(features.Links) == 0 {
		return 0, allReasons
	}

	avg := float64(totalScore) / float64(len(features.Links))
	if avg > 100 {
		avg = 100
	}
	return avg, allReasons
}
