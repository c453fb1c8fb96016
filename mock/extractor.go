package mock

import (
	"net/url"

	"github.com/fwojciec/newsgenie"
	"golang.org/x/net/html"
)

var _ newsgenie.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of newsgenie.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(pageURL, html string) string
}

func (e *TextExtractor) ExtractText(pageURL, html string) string {
	return e.ExtractTextFn(pageURL, html)
}

var _ newsgenie.ContentHeuristic = (*ContentHeuristic)(nil)

// ContentHeuristic is a mock implementation of newsgenie.ContentHeuristic.
type ContentHeuristic struct {
	MainTextFn func(doc *html.Node, pageURL *url.URL) (string, error)
	NameFn     func() string
}

func (h *ContentHeuristic) MainText(doc *html.Node, pageURL *url.URL) (string, error) {
	return h.MainTextFn(doc, pageURL)
}

func (h *ContentHeuristic) Name() string {
	return h.NameFn()
}
