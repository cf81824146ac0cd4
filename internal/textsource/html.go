package textsource

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ExtractHTML returns the visible text of an HTML document with head, script
// and style content removed and whitespace collapsed to single spaces.
// Optional end tags are inferred by the parser, so an unclosed head does not
// hide the body.
func ExtractHTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if hidden(n.Data) {
				return
			}
		case html.TextNode:
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(sb.String()), " "), nil
}

func hidden(tag string) bool {
	switch tag {
	case "head", "title", "script", "style", "noscript", "template":
		return true
	}
	return false
}
