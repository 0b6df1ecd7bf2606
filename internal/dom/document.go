// Package dom wraps an HTML parse tree with the small query surface the rubric
// needs: CSS selection, normalized text, attribute reads and raw-source access.
package dom

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var doctypePattern = regexp.MustCompile(`(?i)^<!doctype\s+html\s*>`)

// Document is a parsed submission. It keeps the raw markup alongside the tree
// because some checks (the doctype prefix) look at the source, not the DOM.
type Document struct {
	raw  string
	root *goquery.Document
}

// Parse builds a Document from raw markup. The HTML5 parser recovers from
// malformed input, so an error here means the reader itself failed.
func Parse(raw string) (*Document, error) {
	root, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return &Document{raw: raw, root: root}, nil
}

// Raw returns the markup exactly as submitted.
func (d *Document) Raw() string { return d.raw }

// Find selects elements with a CSS selector.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.root.Find(selector)
}

// Count returns the number of elements matching selector.
func (d *Document) Count(selector string) int {
	return d.root.Find(selector).Length()
}

// Any reports whether at least one element matching selector satisfies fn.
func (d *Document) Any(selector string, fn func(*goquery.Selection) bool) bool {
	found := false
	d.root.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if fn(s) {
			found = true
			return false
		}
		return true
	})
	return found
}

// FirstContaining returns the first element matching selector whose normalized
// text contains phrase. The result is empty (Length 0) when nothing matches.
func (d *Document) FirstContaining(selector, phrase string) *goquery.Selection {
	return d.root.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return Contains(s.Text(), phrase)
	}).First()
}

// HasHTMLDoctype reports whether the trimmed source starts with <!DOCTYPE html>.
func (d *Document) HasHTMLDoctype() bool {
	src := strings.TrimSpace(strings.TrimPrefix(d.raw, "\ufeff"))
	return doctypePattern.MatchString(src)
}

// Text returns the normalized text of the whole subtree.
func Text(s *goquery.Selection) string {
	return Normalize(s.Text())
}

// OwnText returns the normalized text of the selection's direct text children,
// ignoring text that lives inside nested elements.
func OwnText(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
				b.WriteByte(' ')
			}
		}
	}
	return Normalize(b.String())
}

// Attr returns the raw value of the named attribute on the first element.
func Attr(s *goquery.Selection, name string) (string, bool) {
	return s.Attr(name)
}

// NonEmptyAttr reports whether the attribute is present with non-blank content.
func NonEmptyAttr(s *goquery.Selection, name string) bool {
	v, ok := s.Attr(name)
	return ok && strings.TrimSpace(v) != ""
}

// NumericAttr reports whether the attribute holds a finite number.
func NumericAttr(s *goquery.Selection, name string) bool {
	v, ok := s.Attr(name)
	if !ok {
		return false
	}
	return IsNumeric(v)
}

// IsNumeric reports whether the trimmed value parses as a finite number.
// Blank values are not numeric.
func IsNumeric(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return false
	}
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
