// Package readability implements newsgenie.ContentHeuristic with
// go-shiori/go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/newsgenie"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// Ensure Heuristic implements newsgenie.ContentHeuristic at compile time.
var _ newsgenie.ContentHeuristic = (*Heuristic)(nil)

// Heuristic scores the parsed document with the Readability algorithm and
// returns the text of the best candidate.
type Heuristic struct{}

// NewHeuristic creates a new Heuristic.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Name returns "readability".
func (h *Heuristic) Name() string {
	return "readability"
}

// MainText returns the plain text of the article found in doc.
func (h *Heuristic) MainText(doc *html.Node, pageURL *url.URL) (string, error) {
	if doc == nil {
		return "", newsgenie.Errorf(newsgenie.EINVALID, "nil document")
	}

	article, err := readability.FromDocument(doc, pageURL)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(article.TextContent), nil
}
