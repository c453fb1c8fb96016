// Package goquery implements newsgenie.TextExtractor with an ordered chain of
// extraction strategies over the raw HTML and its goquery document.
package goquery

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsgenie"
	"golang.org/x/net/html"
)

// DefaultMaxParseBytes is the largest document that is parsed into a DOM.
// Larger documents only go through the regex-based strategies.
const DefaultMaxParseBytes = 5 << 20

// Strategy names the extraction step that produced a result.
type Strategy string

// Strategies in the order they are attempted.
const (
	StrategyNone           Strategy = ""
	StrategyStructuredData Strategy = "ld+json"
	StrategySite           Strategy = "site"
	StrategyGeneric        Strategy = "generic"
	StrategyHeuristic      Strategy = "heuristic"
	StrategyStripped       Strategy = "stripped"
)

// Ensure Extractor implements newsgenie.TextExtractor at compile time.
var _ newsgenie.TextExtractor = (*Extractor)(nil)

// Extractor recovers article body text from arbitrary news pages.
//
// Strategies are tried in a fixed order and the first one producing more
// than newsgenie.MinContentLength characters wins:
//
//   - LD+JSON articleBody
//   - site-specific containers
//   - generic content containers
//   - the content heuristic, if one is configured
//   - tag stripping of the raw HTML
//
// Extractor holds no mutable state and is safe for concurrent use.
type Extractor struct {
	heuristic     newsgenie.ContentHeuristic
	logger        *slog.Logger
	maxParseBytes int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithHeuristic sets the content-density heuristic run after the selector
// strategies. Without one, that step is skipped.
func WithHeuristic(h newsgenie.ContentHeuristic) Option {
	return func(e *Extractor) {
		e.heuristic = h
	}
}

// WithLogger sets the logger receiving per-strategy debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithMaxParseBytes sets the DOM construction size ceiling.
// Defaults to DefaultMaxParseBytes.
func WithMaxParseBytes(n int) Option {
	return func(e *Extractor) {
		e.maxParseBytes = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		logger:        slog.New(slog.DiscardHandler),
		maxParseBytes: DefaultMaxParseBytes,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// page is the input shared by all strategies of one extraction.
type page struct {
	rawURL string
	raw    string
	url    *url.URL
	doc    *goquery.Document // nil until built, or when construction failed
}

type strategy struct {
	name     Strategy
	needsDOM bool
	fn       func(p *page) (string, error)
}

// ExtractText returns the article body found in rawHTML, or the empty string.
func (e *Extractor) ExtractText(pageURL, rawHTML string) string {
	text, _ := e.Extract(pageURL, rawHTML)
	return text
}

// Extract is like ExtractText but also reports which strategy produced the
// text. The strategy is StrategyNone when the text is empty.
func (e *Extractor) Extract(pageURL, rawHTML string) (string, Strategy) {
	p := &page{rawURL: pageURL, raw: rawHTML}

	strategies := []strategy{
		{name: StrategyStructuredData, fn: fromStructuredData},
		{name: StrategySite, needsDOM: true, fn: fromSiteSelectors},
		{name: StrategyGeneric, needsDOM: true, fn: fromGenericSelectors},
		{name: StrategyHeuristic, needsDOM: true, fn: e.fromHeuristic},
		{name: StrategyStripped, fn: fromStrippedHTML},
	}

	built := false
	for _, s := range strategies {
		if s.needsDOM {
			if !built {
				e.buildDocument(p)
				built = true
			}
			if p.doc == nil {
				continue
			}
		}

		text, ok := e.run(s, p)
		if ok {
			e.logger.Debug("extraction strategy matched",
				"strategy", string(s.name),
				"chars", utf8.RuneCountInString(text),
			)
			return text, s.name
		}
	}

	return "", StrategyNone
}

// run executes one strategy, turning errors and panics into "no result".
func (e *Extractor) run(s strategy, p *page) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("extraction strategy failed",
				"strategy", string(s.name),
				"err", fmt.Sprintf("panic: %v", r),
			)
			text, ok = "", false
		}
	}()

	text, err := s.fn(p)
	if err != nil {
		e.logger.Debug("extraction strategy failed",
			"strategy", string(s.name),
			"err", err,
		)
		return "", false
	}

	text = strings.TrimSpace(text)
	if !qualifies(text) {
		return "", false
	}
	return text, true
}

// buildDocument parses the raw HTML once. On failure p.doc stays nil and the
// DOM strategies are skipped.
func (e *Extractor) buildDocument(p *page) {
	if e.maxParseBytes > 0 && len(p.raw) > e.maxParseBytes {
		e.logger.Debug("skipping DOM construction",
			"bytes", len(p.raw),
			"limit", e.maxParseBytes,
		)
		return
	}

	var base *url.URL
	if p.rawURL != "" {
		u, err := url.Parse(p.rawURL)
		if err != nil || !u.IsAbs() {
			e.logger.Debug("skipping DOM construction", "url", p.rawURL, "err", "invalid base URL")
			return
		}
		base = u
	}

	root, err := html.Parse(strings.NewReader(p.raw))
	if err != nil {
		e.logger.Debug("skipping DOM construction", "err", err)
		return
	}

	doc := goquery.NewDocumentFromNode(root)
	doc.Url = base
	p.url = base
	p.doc = doc
}

// fromHeuristic runs the configured content heuristic over the document.
func (e *Extractor) fromHeuristic(p *page) (string, error) {
	if e.heuristic == nil || len(p.doc.Nodes) == 0 {
		return "", nil
	}
	return e.heuristic.MainText(p.doc.Nodes[0], p.url)
}

// qualifies reports whether trimmed text is long enough to be an article body.
func qualifies(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) > newsgenie.MinContentLength
}
