// Package parser extracts anchors, forms and titles from HTML pages.
package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NoTitle is reported for pages without a usable <title>.
const NoTitle = "No title"

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

// Parse parses an HTML document.
func Parse(body string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// Hrefs returns the raw href value of every anchor, in document order.
// Values are not resolved or filtered.
func (d *Document) Hrefs() []string {
	hrefs := make([]string, 0)
	d.doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs = append(hrefs, href)
	})
	return hrefs
}

// Forms returns every form element, in document order.
func (d *Document) Forms() []*goquery.Selection {
	forms := make([]*goquery.Selection, 0)
	d.doc.Find("form").Each(func(i int, s *goquery.Selection) {
		forms = append(forms, s)
	})
	return forms
}

// Title returns the trimmed text of the first <title> element.
// ok is false when the page has none.
func (d *Document) Title() (title string, ok bool) {
	sel := d.doc.Find("title").First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}

// ExtractTitle returns the page title, or NoTitle when it is missing or the
// body cannot be parsed.
func ExtractTitle(body string) string {
	doc, err := Parse(body)
	if err != nil {
		return NoTitle
	}
	title, ok := doc.Title()
	if !ok {
		return NoTitle
	}
	return title
}
