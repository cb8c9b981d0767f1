package utils

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeBytes converts a raw payload to a UTF-8 string. Valid UTF-8 passes
// through untouched; anything else is retried as Latin-1 and, failing that,
// copied with the undecodable bytes dropped. It never returns an error so
// feature extraction stays total over arbitrary input.
func DecodeBytes(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	if decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b); err == nil && utf8.Valid(decoded) {
		return string(decoded)
	}

	// Last resort: keep only the bytes that form valid UTF-8 sequences
	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r != utf8.RuneError || size > 1 {
			out = append(out, b[:size]...)
		}
		b = b[size:]
	}
	return string(out)
}

// TruncateText safely truncates text to maxSize bytes without splitting a
// UTF-8 sequence. A maxSize <= 0 disables truncation.
func TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated
}
