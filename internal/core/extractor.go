package core

import (
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"regexp"
	"strings"

	"github.com/AL-ANWARTECH/phishing-detector/internal/utils"
	"go.uber.org/zap"
)

var urlPattern = regexp.MustCompile(`https?://[a-zA-Z0-9$\-_@.&+!*'(),%/:;=?#~\[\]]+`)

// RFC 5322 field name followed by a colon: printable ASCII minus space and
// the colon itself
var headerLinePattern = regexp.MustCompile(`^[!-9;-~]+:`)

// FeatureExtractor turns raw email text into an EmailFeatures record. It is
// total: malformed or partial input yields empty fields, never an error.
type FeatureExtractor struct {
	logger *zap.Logger
}

// NewFeatureExtractor creates a new feature extractor
func NewFeatureExtractor(logger *zap.Logger) *FeatureExtractor {
	return &FeatureExtractor{logger: logger}
}

// Extract parses raw email text and derives the feature record consumed by
// the rule engine, classifier and URL analyzer.
func (e *FeatureExtractor) Extract(raw string) *EmailFeatures {
	features := &EmailFeatures{Links: []string{}}

	if !startsWithHeaderBlock(raw) {
		// Headerless content still gets scanned as a bare body so link and
		// keyword scoring keep working.
		e.logger.Debug("Input has no header block, treating it as a bare body")
		features.Body = raw
		features.Links = urlPattern.FindAllString(features.Body, -1)
		return features
	}

	msg, err := mail.ReadMessage(strings.NewReader(raw))
	if err != nil {
		e.logger.Debug("Failed to parse message headers, treating input as body", zap.Error(err))
		features.Body = raw
		features.Links = urlPattern.FindAllString(features.Body, -1)
		return features
	}

	features.Subject = msg.Header.Get("Subject")
	features.FromAddress = msg.Header.Get("From")
	features.ToAddress = msg.Header.Get("To")
	features.ReplyTo = msg.Header.Get("Reply-To")
	features.SenderDomain = extractSenderDomain(features.FromAddress)
	features.ReplyDomain = extractReplyDomain(features.ReplyTo)

	body, attachments := e.extractBody(msg)
	features.Body = body
	features.AttachmentCount = attachments
	features.Links = urlPattern.FindAllString(body, -1)

	return features
}

// startsWithHeaderBlock reports whether every line up to the first blank
// line is a header field or a folded continuation. net/mail accepts prose
// such as "check this out http://..." as a header line because the colon in
// the URL satisfies its key/value split, which would swallow the body.
func startsWithHeaderBlock(raw string) bool {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			return true
		}
		if line[0] == ' ' || line[0] == '\t' {
			continue
		}
		if !headerLinePattern.MatchString(line) {
			return false
		}
	}
	return true
}

// extractBody returns the decoded message body and the attachment count.
// For multipart messages the first text/plain part wins; otherwise the last
// text/html part seen is used.
func (e *FeatureExtractor) extractBody(msg *mail.Message) (string, int) {
	contentType := msg.Header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return decodePayload(msg.Body, msg.Header.Get("Content-Transfer-Encoding")), 0
	}

	boundary, ok := params["boundary"]
	if !ok {
		return decodePayload(msg.Body, msg.Header.Get("Content-Transfer-Encoding")), 0
	}

	var plainBody, htmlBody string
	attachments := 0
	e.walkParts(multipart.NewReader(msg.Body, boundary), &plainBody, &htmlBody, &attachments)

	if plainBody != "" {
		return plainBody, attachments
	}
	return htmlBody, attachments
}

// walkParts scans parts recursively, recording the first text/plain part,
// the last text/html part and the attachment count.
func (e *FeatureExtractor) walkParts(mr *multipart.Reader, plainBody, htmlBody *string, attachments *int) {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return
		}
		if err != nil {
			e.logger.Debug("Stopped reading multipart body", zap.Error(err))
			return
		}

		disposition, _, _ := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
		if disposition == "attachment" {
			*attachments++
			continue
		}

		partType, partParams, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err != nil {
			continue
		}

		switch {
		case partType == "text/plain":
			if *plainBody == "" {
				*plainBody = decodePayload(part, part.Header.Get("Content-Transfer-Encoding"))
			}
		case partType == "text/html":
			*htmlBody = decodePayload(part, part.Header.Get("Content-Transfer-Encoding"))
		case strings.HasPrefix(partType, "multipart/"):
			if boundary, ok := partParams["boundary"]; ok {
				e.walkParts(multipart.NewReader(part, boundary), plainBody, htmlBody, attachments)
			}
		}
	}
}

// decodePayload reads a payload, undoes its transfer encoding and converts
// it to UTF-8. Decoding failures fall back to the raw bytes rather than
// surfacing an error.
func decodePayload(r io.Reader, transferEncoding string) string {
	raw, err := io.ReadAll(r)
	if err != nil {
		return ""
	}

	switch strings.ToLower(strings.TrimSpace(transferEncoding)) {
	case "base64":
		if decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw))); err == nil {
			raw = decoded
		}
	case "quoted-printable":
		if decoded, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(string(raw)))); err == nil {
			raw = decoded
		}
	}

	return utils.DecodeBytes(raw)
}

// extractSenderDomain returns the domain after the last "@" in a From
// header, with a trailing angle bracket stripped.
func extractSenderDomain(from string) string {
	if !strings.Contains(from, "@") {
		return ""
	}
	domain := from[strings.LastIndex(from, "@")+1:]
	if idx := strings.Index(domain, ">"); idx >= 0 {
		domain = domain[:idx]
	}
	return strings.TrimSpace(domain)
}

// extractReplyDomain returns the domain after the "@" in a Reply-To header
func extractReplyDomain(replyTo string) string {
	if replyTo == "" || !strings.Contains(replyTo, "@") {
		return ""
	}
	domain := replyTo[strings.LastIndex(replyTo, "@")+1:]
	if idx := strings.Index(domain, ">"); idx >= 0 {
		domain = domain[:idx]
	}
	return strings.TrimSpace(domain)
}
