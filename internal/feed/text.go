// ABOUTME: Reduces status HTML to a single normalised line of plain text
// ABOUTME: Block breaks become spaces; control runes are dropped so rows never break

package feed

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// PlainText flattens raw status HTML to one NFC-normalised line.
func PlainText(raw string) string {
	var b strings.Builder
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		b.WriteString(raw)
	} else {
		extractText(doc, &b)
	}
	return normalizeLine(b.String())
}

func extractText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style":
			return
		case "br", "p", "div", "li":
			b.WriteByte(' ')
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, b)
	}
}

func normalizeLine(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
