package slog

import (
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/newsgenie"
)

// Ensure LoggingTextExtractor implements newsgenie.TextExtractor.
var _ newsgenie.TextExtractor = (*LoggingTextExtractor)(nil)

// LoggingTextExtractor wraps a TextExtractor with logging.
type LoggingTextExtractor struct {
	next   newsgenie.TextExtractor
	logger *slog.Logger
}

// NewLoggingTextExtractor creates a new LoggingTextExtractor.
func NewLoggingTextExtractor(next newsgenie.TextExtractor, logger *slog.Logger) *LoggingTextExtractor {
	return &LoggingTextExtractor{next: next, logger: logger}
}

// ExtractText delegates to the wrapped extractor and logs input and output sizes.
func (e *LoggingTextExtractor) ExtractText(pageURL, html string) (text string) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"url", pageURL,
			"bytes", len(html),
			"chars", utf8.RuneCountInString(text),
			"found", text != "",
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.ExtractText(pageURL, html)
}
