package filter

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"
)

// AlertConfig describes where phishing alerts are dispatched
type AlertConfig struct {
	Enabled      bool
	SMTPAddress  string
	SMTPUsername string
	SMTPPassword string
	From         string
	To           string
}

// IMAPFilter polls an IMAP mailbox, runs every recent message through the
// detector and dispatches an alert email when phishing is found
type IMAPFilter struct {
	service      *core.PhishingDetectorService
	store        core.ResultStore
	logger       *zap.Logger
	server       string
	username     string
	password     string
	folder       string
	pollInterval time.Duration
	maxMessages  uint32
	alerts       AlertConfig

	queue    chan string
	stopCh   chan struct{}
	lastSeen uint32
}

// NewIMAPFilter creates a new IMAP polling filter
func NewIMAPFilter(
	service *core.PhishingDetectorService,
	store core.ResultStore,
	logger *zap.Logger,
	server string,
	username string,
	password string,
	folder string,
	pollInterval time.Duration,
	maxMessages int,
	alerts AlertConfig,
) *IMAPFilter {
	if folder == "" {
		folder = "INBOX"
	}
	if maxMessages <= 0 {
		maxMessages = 10
	}

	return &IMAPFilter{
		service:      service,
		store:        store,
		logger:       logger,
		server:       server,
		username:     username,
		password:     password,
		folder:       folder,
		pollInterval: pollInterval,
		maxMessages:  uint32(maxMessages),
		alerts:       alerts,
		queue:        make(chan string, 64),
		stopCh:       make(chan struct{}),
	}
}

// ProcessEmail analyzes a single raw message, persists the result and
// dispatches an alert when the verdict is phishing
func (f *IMAPFilter) ProcessEmail(ctx context.Context, rawEmail string) (*core.AnalysisResult, error) {
	result := f.service.AnalyzeEmail(ctx, rawEmail)

	if f.store != nil {
		if err := f.store.SaveResult(ctx, rawEmail, result); err != nil {
			f.logger.Error("Failed to persist analysis result", zap.Error(err))
		}
	}

	if result.IsPhishing && f.alerts.Enabled {
		if err := f.sendAlert(result); err != nil {
			f.logger.Error("Failed to send phishing alert", zap.Error(err))
		}
	}

	status := "SAFE"
	if result.IsPhishing {
		status = "PHISHING"
	}
	f.logger.Info("Mailbox message processed",
		zap.String("status", status),
		zap.Float64("confidence_score", result.ConfidenceScore))

	return result, nil
}

// Start launches the worker and the poll loop
func (f *IMAPFilter) Start() error {
	if f.server == "" {
		return fmt.Errorf("imap server address not configured")
	}

	go f.worker()
	go f.pollLoop()

	f.logger.Info("IMAP filter starting",
		zap.String("server", f.server),
		zap.String("folder", f.folder),
		zap.Duration("poll_interval", f.pollInterval))
	return nil
}

// Stop stops the poll loop and the worker
func (f *IMAPFilter) Stop() error {
	close(f.stopCh)
	return nil
}

func (f *IMAPFilter) worker() {
	for {
		select {
		case raw := <-f.queue:
			if _, err := f.ProcessEmail(context.Background(), raw); err != nil {
				f.logger.Error("Failed to process queued message", zap.Error(err))
			}
		case <-f.stopCh:
			return
		}
	}
}

func (f *IMAPFilter) pollLoop() {
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	if err := f.pollOnce(); err != nil {
		f.logger.Error("Mailbox poll failed", zap.Error(err))
	}

	for {
		select {
		case <-ticker.C:
			if err := f.pollOnce(); err != nil {
				f.logger.Error("Mailbox poll failed", zap.Error(err))
			}
		case <-f.stopCh:
			return
		}
	}
}

// fetchWindow returns the sequence-number range to fetch given the current
// mailbox size, the high-water mark from the previous poll and the per-poll
// cap. A mailbox that shrank since the last poll (expunge) resets the mark,
// so messages near the new tail may be fetched a second time.
func fetchWindow(total, lastSeen, maxMessages uint32) (from, to uint32, ok bool) {
	if total < lastSeen {
		lastSeen = 0
	}
	if total == 0 || total == lastSeen {
		return 0, 0, false
	}
	from = lastSeen + 1
	if total > maxMessages && total-maxMessages+1 > from {
		from = total - maxMessages + 1
	}
	return from, total, true
}

// pollOnce fetches the most recent messages from the mailbox and enqueues
// the ones not seen on a previous poll
func (f *IMAPFilter) pollOnce() error {
	c, err := client.DialTLS(f.server, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to IMAP server: %w", err)
	}
	defer c.Logout()

	if err := c.Login(f.username, f.password); err != nil {
		return fmt.Errorf("IMAP login failed: %w", err)
	}

	mbox, err := c.Select(f.folder, true)
	if err != nil {
		return fmt.Errorf("failed to select folder %q: %w", f.folder, err)
	}

	from, to, ok := fetchWindow(mbox.Messages, f.lastSeen, f.maxMessages)
	if !ok {
		f.lastSeen = mbox.Messages
		return nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddRange(from, to)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem()}

	messages := make(chan *imap.Message, f.maxMessages)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, items, messages)
	}()

	enqueued := 0
	for msg := range messages {
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		raw, err := io.ReadAll(body)
		if err != nil {
			f.logger.Warn("Failed to read message body", zap.Error(err))
			continue
		}
		select {
		case f.queue <- string(raw):
			enqueued++
		case <-f.stopCh:
			return nil
		}
	}

	if err := <-done; err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	f.lastSeen = mbox.Messages
	f.logger.Debug("Mailbox polled",
		zap.Uint32("total_messages", mbox.Messages),
		zap.Int("enqueued", enqueued))
	return nil
}

// sendAlert dispatches a phishing alert email over SMTP
func (f *IMAPFilter) sendAlert(result *core.AnalysisResult) error {
	subject := "Phishing Alert - Suspicious Email Detected"
	body := fmt.Sprintf(
		"A suspicious email has been detected by the phishing detection system.\r\n\r\n"+
			"Detection Result:\r\n"+
			"- Confidence Score: %.2f%%\r\n"+
			"- Rule Score: %.0f%%\r\n"+
			"- ML Prediction: %d (Confidence: %.2f)\r\n"+
			"- URL Score: %.2f%%\r\n\r\n"+
			"Rule Reasons: %s\r\n"+
			"URL Reasons: %s\r\n\r\n"+
			"The original email content has been logged for review.\r\n",
		result.ConfidenceScore, result.RuleScore, result.MLPrediction, result.MLConfidence,
		result.URLScore, strings.Join(result.RuleReasons, ", "), strings.Join(result.URLReasons, ", "))

	msg := strings.NewReader(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		f.alerts.From, f.alerts.To, subject, body))

	var auth sasl.Client
	if f.alerts.SMTPUsername != "" {
		auth = sasl.NewPlainClient("", f.alerts.SMTPUsername, f.alerts.SMTPPassword)
	}

	if err := smtp.SendMail(f.alerts.SMTPAddress, auth, f.alerts.From, []string{f.alerts.To}, msg); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}

	f.logger.Info("Phishing alert sent", zap.String("to", f.alerts.To))
	return nil
}
