// Package htmltext extracts readable text from HTML documents.
package htmltext

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BlockSeparator ends the text of every block element. A tab is a sentence
// delimiter for the extractor, so headings and paragraphs never merge
// into one phrase.
const BlockSeparator = "\t"

var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Head:     true,
}

var blocks = map[atom.Atom]bool{
	atom.Title: true, atom.P: true, atom.Div: true, atom.Br: true,
	atom.Li: true, atom.Ul: true, atom.Ol: true, atom.Tr: true, atom.Td: true, atom.Th: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Section: true, atom.Article: true, atom.Header: true, atom.Footer: true,
	atom.Blockquote: true, atom.Pre: true, atom.Table: true, atom.Dt: true, atom.Dd: true,
}

// Extract parses an HTML document and returns its visible text. Runs of
// whitespace collapse to a single space.
func Extract(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipped[n.DataAtom] {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.Join(strings.Fields(n.Data), " "); text != "" {
				if buf.Len() > 0 && !strings.HasSuffix(buf.String(), BlockSeparator) {
					buf.WriteByte(' ')
				}
				buf.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blocks[n.DataAtom] && buf.Len() > 0 && !strings.HasSuffix(buf.String(), BlockSeparator) {
			buf.WriteString(BlockSeparator)
		}
	}
	walk(doc)

	return strings.TrimSuffix(buf.String(), BlockSeparator), nil
}

// FromString is Extract for in-memory markup. Unparseable input is
// returned unchanged.
func FromString(s string) string {
	text, err := Extract(strings.NewReader(s))
	if err != nil {
		return s
	}
	return text
}
