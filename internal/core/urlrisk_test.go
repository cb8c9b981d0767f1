package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeURLIPAddress(t *testing.T) {
	analyzer := NewURLAnalyzer()
	score, reasons := analyzer.AnalyzeURL("http://192.168.1.1/login")

	assert.GreaterOrEqual(t, score, 25)
	assert.Contains(t, reasons, "IP address used instead of domain")
}

func TestAnalyzeURLShortener(t *testing.T) {
	analyzer := NewURLAnalyzer()
	score, reasons := analyzer.AnalyzeURL("https://bit.ly/urgent-verify")

	assert.GreaterOrEqual(t, score, 30)
	assert.Contains(t, reasons, "URL shortener domain: bit.ly")
}

func TestAnalyzeURLBrandSubdomain(t *testing.T) {
	analyzer := NewURLAnalyzer()
	score, reasons := analyzer.AnalyzeURL("http://secure.paypal.evil-site.com/verify")

	assert.GreaterOrEqual(t, score, 35)
	assert.Contains(t, reasons, "Suspicious subdomain: paypal")
}

func TestAnalyzeURLTwoLabelHostNotBrandFlagged(t *testing.T) {
	analyzer := NewURLAnalyzer()
	_, reasons := analyzer.AnalyzeURL("https://paypal-login.com/signin")

	// brand matching only looks at interior labels, which a two-label
	// host does not have
	for _, r := range reasons {
		assert.NotContains(t, r, "Suspicious subdomain")
	}
}

func TestAnalyzeURLUserinfoObfuscation(t *testing.T) {
	analyzer := NewURLAnalyzer()
	score, reasons := analyzer.AnalyzeURL("http://trusted.com@evil.tk/login")

	assert.Contains(t, reasons, "Suspicious @ character in URL")
	assert.GreaterOrEqual(t, score, 25)
}

func TestAnalyzeURLLongURL(t *testing.T) {
	analyzer := NewURLAnalyzer()
	long := "http://example.com/" + strings.Repeat("a", 100)
	_, reasons := analyzer.AnalyzeURL(long)

	assert.Contains(t, reasons, "Very long URL")
}

func TestAnalyzeURLSuspiciousTLD(t *testing.T) {
	analyzer := NewURLAnalyzer()
	score, reasons := analyzer.AnalyzeURL("http://login-update.xyz/account")

	assert.GreaterOrEqual(t, score, 20)
	assert.Contains(t, reasons, "Suspicious TLD in: login-update.xyz")
}

func TestAnalyzeURLScoreCapped(t *testing.T) {
	analyzer := NewURLAnalyzer()
	// shortener + TLD-like + brand + "@" + length all at once
	long := "http://bit.ly@secure.bank.login.xyz/" + strings.Repeat("x", 120)
	score, _ := analyzer.AnalyzeURL(long)

	assert.LessOrEqual(t, score, 100)
	assert.GreaterOrEqual(t, score, 0)
}

func TestAnalyzeEmailURLsAverage(t *testing.T) {
	analyzer := NewURLAnalyzer()
	features := &EmailFeatures{
		Links: []string{
			"http://192.168.1.1/login",      // 25
			"https://safe-site.com/account", // 0
		},
	}

	avg, reasons := analyzer.AnalyzeEmailURLs(features)

	assert.InDelta(t, 12.5, avg, 0.001)
	assert.Len(t, reasons, 1)
}

func TestAnalyzeEmailURLsNoLinks(t *testing.T) {
	analyzer := NewURLAnalyzer()
	avg, reasons := analyzer.AnalyzeEmailURLs(&EmailFeatures{})

	assert.Zero(t, avg)
	assert.Empty(t, reasons)
}

func TestAddSuspiciousDomains(t *testing.T) {
	analyzer := NewURLAnalyzer()
	analyzer.AddSuspiciousDomains([]string{"Fake-Bank.com", " "})

	score, reasons := analyzer.AnalyzeURL("http://fake-bank.com/login")
	assert.GreaterOrEqual(t, score, 30)
	assert.Contains(t, reasons, "URL shortener domain: fake-bank.com")
}
