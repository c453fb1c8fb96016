// Package trafilatura implements newsgenie.ContentHeuristic with
// go-trafilatura.
package trafilatura

import (
	"net/url"
	"strings"

	"github.com/fwojciec/newsgenie"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Heuristic implements newsgenie.ContentHeuristic at compile time.
var _ newsgenie.ContentHeuristic = (*Heuristic)(nil)

// Heuristic extracts the main text with trafilatura, falling back to its
// bundled readability and dom-distiller implementations.
type Heuristic struct{}

// NewHeuristic creates a new Heuristic.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Name returns "trafilatura".
func (h *Heuristic) Name() string {
	return "trafilatura"
}

// MainText returns the plain text of the main content in doc.
func (h *Heuristic) MainText(doc *html.Node, pageURL *url.URL) (string, error) {
	if doc == nil {
		return "", newsgenie.Errorf(newsgenie.EINVALID, "nil document")
	}

	opts := trafilatura.Options{
		OriginalURL:    pageURL,
		EnableFallback: true,
	}

	result, err := trafilatura.ExtractDocument(doc, opts)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result.ContentText), nil
}
